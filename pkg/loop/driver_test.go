package loop

import (
	"context"
	"errors"
	"image"
	"image/color"
	"math/rand"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/trytobebee/gridsnake/pkg/config"
	"github.com/trytobebee/gridsnake/pkg/game"
	"github.com/trytobebee/gridsnake/pkg/input"
)

// countingSurface counts frames
type countingSurface struct {
	frames int
}

func (s *countingSurface) Size() (int, int)                          { return config.WindowWidth, config.WindowHeight }
func (s *countingSurface) Clear()                                    { s.frames++ }
func (s *countingSurface) FillRect(r image.Rectangle, c color.Color) {}

// recordingDisplay keeps the last values shown
type recordingDisplay struct {
	prompt    bool
	score     int
	highScore int
	gameOver  *game.Outcome
}

func (d *recordingDisplay) ShowStartPrompt() { d.prompt = true }
func (d *recordingDisplay) SetScores(score, highScore int) {
	d.score, d.highScore = score, highScore
}
func (d *recordingDisplay) ShowGameOver(o game.Outcome) { d.gameOver = &o }
func (d *recordingDisplay) ClearMessage() {
	d.prompt = false
	d.gameOver = nil
}

type observerFunc func(game.Snapshot)

func (f observerFunc) Observe(s game.Snapshot) { f(s) }

type fixture struct {
	mock    *clock.Mock
	surface *countingSurface
	display *recordingDisplay
	driver  *Driver
}

func newFixture(t *testing.T, observers ...Observer) *fixture {
	t.Helper()
	state, err := game.NewState(config.GridSize, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	f := &fixture{
		mock:    clock.NewMock(),
		surface: &countingSurface{},
		display: &recordingDisplay{},
	}
	f.driver = New(state, f.surface, Options{
		Clock:     f.mock,
		Interval:  config.TickInterval,
		Display:   f.display,
		Observers: observers,
	})
	return f
}

// parkFood moves the food where the snake will not reach it
func (f *fixture) parkFood() {
	f.driver.State().Food = game.Point{X: 0, Y: 0}
}

func TestDriverStart(t *testing.T) {
	f := newFixture(t)
	if f.driver.Phase() != Idle {
		t.Fatalf("expected Idle, got %v", f.driver.Phase())
	}

	f.driver.Start()

	if f.driver.Phase() != Running || f.driver.State().Status != game.Playing {
		t.Errorf("expected Running/Playing, got %v/%v", f.driver.Phase(), f.driver.State().Status)
	}
	if !f.driver.Scheduler().Pending() {
		t.Error("first tick not scheduled")
	}
	if f.surface.frames != 1 {
		t.Errorf("expected one frame, got %d", f.surface.frames)
	}

	// Starting again while running changes nothing
	f.driver.State().Score = 4
	f.driver.Start()
	if f.driver.State().Score != 4 {
		t.Error("second start reset a running game")
	}
}

func TestDriverTickMovesAndReschedules(t *testing.T) {
	f := newFixture(t)
	f.driver.Start()
	f.parkFood()

	f.driver.Tick()

	s := f.driver.State()
	if s.Head() != (game.Point{X: 10, Y: 9}) || len(s.Snake) != 2 {
		t.Errorf("unexpected snake %v", s.Snake)
	}
	if !f.driver.Scheduler().Pending() {
		t.Error("next tick not scheduled")
	}
}

func TestDriverTickUpdatesScores(t *testing.T) {
	f := newFixture(t)
	f.driver.Start()
	f.driver.State().Food = game.Point{X: 10, Y: 9}

	f.driver.Tick()

	if f.display.score != 1 || f.display.highScore != 1 {
		t.Errorf("expected scores 1/1 on display, got %d/%d", f.display.score, f.display.highScore)
	}
}

func TestDriverGameOverStops(t *testing.T) {
	f := newFixture(t)
	f.driver.Start()
	f.parkFood()

	// Ten steps reach row 0, the eleventh leaves the board
	for i := 0; i < 11; i++ {
		f.driver.Tick()
	}

	if f.driver.Phase() != Stopped || f.driver.State().Status != game.GameOver {
		t.Fatalf("expected Stopped/GameOver, got %v/%v", f.driver.Phase(), f.driver.State().Status)
	}
	if f.driver.Scheduler().Pending() {
		t.Error("timer still armed after game over")
	}
	if f.display.gameOver == nil || f.display.gameOver.NewHighScore {
		t.Errorf("expected game over without high score, got %+v", f.display.gameOver)
	}

	head := f.driver.State().Head()
	f.driver.Tick()
	if f.driver.State().Head() != head {
		t.Error("tick after game over moved the snake")
	}
}

func TestDriverRestart(t *testing.T) {
	f := newFixture(t)
	f.driver.Start()
	f.driver.State().Food = game.Point{X: 10, Y: 9}
	f.driver.Tick()
	f.parkFood()
	for f.driver.Phase() == Running {
		f.driver.Tick()
	}

	if !f.driver.HandleKey(input.KeyStart) {
		t.Fatal("start key must not quit")
	}

	s := f.driver.State()
	if s.Status != game.Playing || s.Score != 0 || s.Heading != game.Up || len(s.Snake) != 2 {
		t.Errorf("restart did not reset the game: %+v", s.Snapshot())
	}
	if s.HighScore != 1 || f.display.highScore != 1 || f.display.score != 0 {
		t.Errorf("expected high score 1 kept, got state %d display %d/%d", s.HighScore, f.display.score, f.display.highScore)
	}
	if f.display.gameOver != nil {
		t.Error("game-over message not cleared on restart")
	}
}

func TestDriverStopPreventsTick(t *testing.T) {
	f := newFixture(t)
	f.driver.Start()
	c := f.driver.Scheduler().C()

	f.driver.Stop()
	f.mock.Add(config.TickInterval)

	if fired(c) || f.driver.Scheduler().Pending() {
		t.Error("tick fired after stop")
	}
	if f.driver.Phase() != Stopped {
		t.Errorf("expected Stopped, got %v", f.driver.Phase())
	}
}

func TestDriverRun(t *testing.T) {
	frames := make(chan game.Snapshot, 16)
	f := newFixture(t, observerFunc(func(s game.Snapshot) { frames <- s }))
	keys := make(chan input.Key)
	errc := make(chan error, 1)

	go func() { errc <- f.driver.Run(context.Background(), keys) }()

	next := func() game.Snapshot {
		t.Helper()
		select {
		case s := <-frames:
			return s
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for a frame")
			return game.Snapshot{}
		}
	}

	if snap := next(); snap.Status != "not_started" {
		t.Fatalf("expected idle frame, got %+v", snap)
	}
	if !f.display.prompt {
		t.Error("start prompt not shown")
	}

	keys <- input.KeyStart
	if snap := next(); snap.Status != "playing" {
		t.Fatalf("expected playing frame, got %+v", snap)
	}

	// A direction queued before the tick is applied by that tick
	keys <- input.KeyLeft
	f.mock.Add(config.TickInterval)
	snap := next()
	if snap.Snake[0] != (game.Point{X: 9, Y: 10}) || snap.Heading != "LEFT" {
		t.Errorf("expected head (9,10) heading LEFT, got %v %s", snap.Snake[0], snap.Heading)
	}

	keys <- input.KeyQuit
	select {
	case err := <-errc:
		if err != nil {
			t.Errorf("expected nil error on quit, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return on quit")
	}
	if f.driver.Scheduler().Pending() {
		t.Error("timer left armed after Run returned")
	}
}

func TestDriverRunContextCancel(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)

	go func() { errc <- f.driver.Run(ctx, make(chan input.Key)) }()
	cancel()

	select {
	case err := <-errc:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return on cancel")
	}
}
