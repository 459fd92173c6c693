package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger to provide logged dice rolling.
// All rolls are logged at debug level with expression and dice values.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs each roll to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Roll rolls count dice with the given number of sides and returns the faces in roll order.
//
// Precondition: count >= 0; sides >= 1.
// Postcondition: len(result) == count; every value is in [1, sides].
func (r *Roller) Roll(count, sides int) []int {
	if count <= 0 {
		return []int{}
	}
	res := Roll(Expression{Count: count, Sides: sides}, r.src)
	r.log(res)
	return res.Dice
}

// RollExpr parses expr and rolls it, logging the result.
//
// Postcondition: Returns a RollResult or a parse error.
func (r *Roller) RollExpr(expr string) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	res := Roll(e, r.src)
	r.log(res)
	return res, nil
}

// D20 rolls a single twenty-sided die.
func (r *Roller) D20() int {
	return r.Roll(1, 20)[0]
}

// Intn exposes the underlying Source for uniform table picks.
//
// Precondition: n > 0.
func (r *Roller) Intn(n int) int {
	return r.src.Intn(n)
}

func (r *Roller) log(res RollResult) {
	r.logger.Debug("dice roll",
		zap.String("expression", res.Expression),
		zap.Ints("dice", res.Dice),
		zap.Int("total", res.Total()),
	)
}
