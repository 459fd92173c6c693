package world

import "github.com/cory-johannsen/wasteland/internal/game/dice"

// RollWeather picks a weather row by weight.
func (t *Tables) RollWeather(src dice.Source) Weather {
	total := 0
	for _, w := range t.Weather {
		total += w.Weight
	}
	roll := src.Intn(total) + 1
	cumulative := 0
	for _, w := range t.Weather {
		cumulative += w.Weight
		if roll <= cumulative {
			return w
		}
	}
	return t.Weather[0]
}
