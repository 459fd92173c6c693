package world

import (
	"fmt"
	"math"

	"github.com/cory-johannsen/wasteland/internal/errors"
)

// TradeQuote is a computed buy or sell price.
type TradeQuote struct {
	Action      string `json:"action"`
	BasePrice   int    `json:"base_price"`
	CHA         int    `json:"cha"`
	BarterSkill int    `json:"barter_skill"`
	FinalPrice  int    `json:"final_price"`
	Discount    string `json:"discount"`
}

// Quote prices an item of base value for a trader with effective CHA cha and
// Barter level barter. Each point of CHA above 5 and each Barter level moves the
// price 5% in the trader's favour; buying never drops below half price and
// selling never exceeds 150%.
//
// Postcondition: FinalPrice >= 1; InvalidInput for base < 1 or an unknown action.
func Quote(cha, barter, base int, action string) (TradeQuote, error) {
	if base < 1 {
		return TradeQuote{}, errors.InvalidInput("Base price must be positive")
	}
	modifier := 1.0 - float64(cha-5)*0.05 - float64(barter)*0.05
	q := TradeQuote{BasePrice: base, CHA: cha, BarterSkill: barter}
	switch action {
	case "buy":
		q.Action = "Buy"
		q.FinalPrice = max(1, int(math.RoundToEven(float64(base)*math.Max(0.5, modifier))))
		pct := int(math.RoundToEven((1 - float64(q.FinalPrice)/float64(base)) * 100))
		q.Discount = fmt.Sprintf("%d%%", pct)
	case "sell":
		q.Action = "Sell"
		q.FinalPrice = max(1, int(math.RoundToEven(float64(base)*math.Min(1.5, 2.0-modifier))))
		pct := int(math.RoundToEven((float64(q.FinalPrice)/float64(base) - 1) * 100))
		q.Discount = fmt.Sprintf("%+d%%", pct)
	default:
		return TradeQuote{}, errors.InvalidInput("Action must be 'buy' or 'sell'")
	}
	return q, nil
}
