package game

import (
	"errors"
	"math/rand"
	"testing"
)

func fillBoard(s *State, skip *Point) {
	s.Snake = s.Snake[:0]
	for y := 0; y < s.GridSize; y++ {
		for x := 0; x < s.GridSize; x++ {
			p := Point{X: x, Y: y}
			if skip != nil && p == *skip {
				continue
			}
			s.Snake = append(s.Snake, p)
		}
	}
}

func TestPlaceFoodFindsLastFreeCell(t *testing.T) {
	s, err := NewState(3, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatal(err)
	}
	free := Point{X: 2, Y: 0}
	fillBoard(s, &free)

	pos, err := s.placeFood()
	if err != nil {
		t.Fatalf("placeFood: %v", err)
	}
	if pos != free {
		t.Errorf("expected %v, got %v", free, pos)
	}
}

func TestPlaceFoodFullBoard(t *testing.T) {
	s, err := NewState(3, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatal(err)
	}
	fillBoard(s, nil)

	if _, err := s.placeFood(); !errors.Is(err, ErrNoFreeCell) {
		t.Fatalf("expected ErrNoFreeCell, got %v", err)
	}
}

// Eating the last free cell ends the game instead of looping forever.
func TestStepBoardFullEndsGame(t *testing.T) {
	s, err := NewState(3, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatal(err)
	}
	s.Reset()
	// Snake covers everything but (0,0); head at (1,0) heading left onto food
	s.Snake = []Point{
		{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 1, Y: 1},
		{X: 0, Y: 1}, {X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2},
	}
	s.Heading = Left
	s.Food = Point{X: 0, Y: 0}

	res := Step(s)

	if !res.Ate || res.Collision != CollisionBoardFull {
		t.Fatalf("expected board-full result, got %+v", res)
	}
	if !errors.Is(res.Err, ErrNoFreeCell) {
		t.Errorf("expected ErrNoFreeCell, got %v", res.Err)
	}
	if s.Status != GameOver || s.FoodPlaced {
		t.Errorf("expected GameOver without food, got %v placed=%v", s.Status, s.FoodPlaced)
	}
	if s.Snapshot().Food != nil {
		t.Error("snapshot must not report food on a full board")
	}
}

func TestResetAfterFullBoardPlacesFood(t *testing.T) {
	s, err := NewState(3, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatal(err)
	}
	s.Reset()
	s.FoodPlaced = false
	s.RecordGameOver()

	s.Reset()

	if !s.FoodPlaced {
		t.Fatal("expected food to be placed after reset")
	}
	if s.Occupied(s.Food) || !s.InBounds(s.Food) {
		t.Errorf("food %v must be on a free cell", s.Food)
	}
}
