package game

import (
	"errors"

	"github.com/trytobebee/gridsnake/pkg/config"
)

// ErrNoFreeCell means every cell is covered by the snake. The grid is far
// larger than any snake a player reaches, so this should never surface.
var ErrNoFreeCell = errors.New("no free cell for food")

// placeFood picks a uniformly random cell not covered by the snake. After
// config.MaxFoodAttempts misses it scans the board row by row instead.
func (s *State) placeFood() (Point, error) {
	for attempts := 0; attempts < config.MaxFoodAttempts; attempts++ {
		pos := Point{
			X: s.rng.Intn(s.GridSize),
			Y: s.rng.Intn(s.GridSize),
		}
		if !s.Occupied(pos) {
			return pos, nil
		}
	}
	return s.scanFreeCell()
}

func (s *State) scanFreeCell() (Point, error) {
	taken := make(map[Point]struct{}, len(s.Snake))
	for _, seg := range s.Snake {
		taken[seg] = struct{}{}
	}
	for y := 0; y < s.GridSize; y++ {
		for x := 0; x < s.GridSize; x++ {
			p := Point{X: x, Y: y}
			if _, ok := taken[p]; !ok {
				return p, nil
			}
		}
	}
	return Point{}, ErrNoFreeCell
}
