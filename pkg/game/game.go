package game

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/trytobebee/gridsnake/pkg/config"
)

// ErrGridTooSmall is returned when the board cannot hold the starting snake
var ErrGridTooSmall = errors.New("grid too small")

// NewState creates a game state in the NotStarted phase with the starting
// snake and one food already placed, so an idle screen has something to draw.
func NewState(gridSize int, rng *rand.Rand) (*State, error) {
	if gridSize < config.MinGridSize {
		return nil, fmt.Errorf("new state with grid %d (min %d): %w", gridSize, config.MinGridSize, ErrGridTooSmall)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	s := &State{
		GridSize: gridSize,
		rng:      rng,
	}
	s.arrange()
	return s, nil
}

// arrange puts the snake, heading and food in their starting positions
func (s *State) arrange() {
	mid := s.GridSize / 2
	s.Snake = []Point{{X: mid, Y: mid}, {X: mid, Y: mid + 1}}
	s.Heading = Up
	s.Pending = None
	s.Score = 0
	s.CrashPoint = nil
	food, err := s.placeFood()
	s.Food, s.FoodPlaced = food, err == nil
}

// Reset starts a fresh game. HighScore is kept.
func (s *State) Reset() {
	s.arrange()
	s.Status = Playing
}

// RecordGameOver ends the current game and raises the high score
func (s *State) RecordGameOver() Outcome {
	s.Status = GameOver
	if s.Score > s.HighScore {
		s.HighScore = s.Score
	}
	return Outcome{
		Score:        s.Score,
		HighScore:    s.HighScore,
		NewHighScore: s.Score == s.HighScore && s.Score > 0,
	}
}

// Head returns the first snake segment
func (s *State) Head() Point {
	return s.Snake[0]
}

// SetPending queues a direction change for the next step. A change that
// reverses the current heading is rejected; the heading is the one applied
// by the last step, not an earlier queued value.
func (s *State) SetPending(d Direction) bool {
	if d == None || s.Status != Playing {
		return false
	}
	if d == s.Heading.Opposite() {
		return false
	}
	s.Pending = d
	return true
}

// InBounds reports whether p lies on the board
func (s *State) InBounds(p Point) bool {
	return p.X >= 0 && p.X < s.GridSize && p.Y >= 0 && p.Y < s.GridSize
}

// Occupied reports whether any snake segment is at p
func (s *State) Occupied(p Point) bool {
	for _, seg := range s.Snake {
		if seg == p {
			return true
		}
	}
	return false
}

// Step advances the game by one tick
func Step(s *State) StepResult {
	if s.Status != Playing {
		return StepResult{}
	}

	dir := s.Heading
	if s.Pending != None {
		dir = s.Pending
	}
	s.Heading = dir
	s.Pending = None

	newHead := s.Head().Add(dir.Delta())

	// Wall
	if !s.InBounds(newHead) {
		return s.crash(newHead, CollisionWall)
	}

	// Body, checked against the pre-move snake: the tail cell is still
	// occupied even though it would be vacated this step.
	if s.Occupied(newHead) {
		return s.crash(newHead, CollisionSelf)
	}

	s.Snake = append([]Point{newHead}, s.Snake...)

	if newHead != s.Food || !s.FoodPlaced {
		s.Snake = s.Snake[:len(s.Snake)-1]
		return StepResult{Moved: true}
	}

	s.Score++
	if s.Score > s.HighScore {
		s.HighScore = s.Score
	}
	res := StepResult{Moved: true, Ate: true}

	food, err := s.placeFood()
	if err != nil {
		s.FoodPlaced = false
		outcome := s.RecordGameOver()
		res.Collision = CollisionBoardFull
		res.Outcome = &outcome
		res.Err = err
		return res
	}
	s.Food = food
	return res
}

func (s *State) crash(at Point, kind Collision) StepResult {
	s.CrashPoint = &at
	outcome := s.RecordGameOver()
	return StepResult{Collision: kind, Outcome: &outcome}
}

// Snapshot copies the state for read-only consumers
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		GridSize:  s.GridSize,
		Snake:     append([]Point(nil), s.Snake...),
		Heading:   s.Heading.String(),
		Score:     s.Score,
		HighScore: s.HighScore,
		Status:    s.Status.String(),
	}
	if s.FoodPlaced {
		food := s.Food
		snap.Food = &food
	}
	if s.CrashPoint != nil {
		crash := *s.CrashPoint
		snap.CrashPoint = &crash
	}
	return snap
}
