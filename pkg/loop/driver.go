package loop

import (
	"context"
	"io"
	"log"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/trytobebee/gridsnake/pkg/config"
	"github.com/trytobebee/gridsnake/pkg/game"
	"github.com/trytobebee/gridsnake/pkg/input"
	"github.com/trytobebee/gridsnake/pkg/renderer"
)

// Phase is the driver lifecycle
type Phase int

const (
	Idle Phase = iota
	Running
	Stopped
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Display shows the score fields and the start and game-over messages
type Display interface {
	ShowStartPrompt()
	SetScores(score, highScore int)
	ShowGameOver(o game.Outcome)
	ClearMessage()
}

// Observer receives a copy of the state after every frame
type Observer interface {
	Observe(snap game.Snapshot)
}

// Options configures a Driver. Zero values pick the defaults.
type Options struct {
	Clock     clock.Clock
	Interval  time.Duration
	Display   Display
	Renderer  *renderer.Renderer
	Observers []Observer
	Logger    *log.Logger
}

// Driver runs the game: it owns the state and the scheduler, applies keys
// and steps the simulation on every tick. All of its methods must be called
// from one goroutine; Run is that goroutine in production.
type Driver struct {
	state     *game.State
	surface   renderer.Surface
	renderer  *renderer.Renderer
	display   Display
	observers []Observer
	sched     *Scheduler
	interval  time.Duration
	phase     Phase
	logger    *log.Logger
}

// New creates a driver in the Idle phase
func New(state *game.State, surface renderer.Surface, opts Options) *Driver {
	d := &Driver{
		state:     state,
		surface:   surface,
		renderer:  opts.Renderer,
		display:   opts.Display,
		observers: opts.Observers,
		sched:     NewScheduler(opts.Clock),
		interval:  opts.Interval,
		logger:    opts.Logger,
	}
	if d.renderer == nil {
		d.renderer = renderer.New()
	}
	if d.display == nil {
		d.display = nopDisplay{}
	}
	if d.interval <= 0 {
		d.interval = config.TickInterval
	}
	if d.logger == nil {
		d.logger = log.New(io.Discard, "", 0)
	}
	return d
}

// Phase returns the current lifecycle phase
func (d *Driver) Phase() Phase {
	return d.phase
}

// Scheduler exposes the tick scheduler
func (d *Driver) Scheduler() *Scheduler {
	return d.sched
}

// State returns the game state owned by the driver
func (d *Driver) State() *game.State {
	return d.state
}

// Start begins a new game. It is a no-op while a game is running.
func (d *Driver) Start() {
	if d.phase == Running {
		return
	}
	// Release the old timer before anything touches the state
	d.sched.Cancel()
	d.state.Reset()
	d.phase = Running
	d.logger.Printf("game started (high score %d)", d.state.HighScore)

	d.display.ClearMessage()
	d.display.SetScores(d.state.Score, d.state.HighScore)
	d.sched.Schedule(d.interval)
	d.frame()
}

// Stop cancels the pending tick
func (d *Driver) Stop() {
	d.sched.Cancel()
	if d.phase == Running {
		d.phase = Stopped
	}
}

// Tick advances the game by one step and draws the result
func (d *Driver) Tick() {
	if d.phase != Running {
		return
	}

	score, high := d.state.Score, d.state.HighScore
	res := game.Step(d.state)
	if res.Err != nil {
		d.logger.Printf("tick: %v", res.Err)
	}
	if d.state.Score != score || d.state.HighScore != high {
		d.display.SetScores(d.state.Score, d.state.HighScore)
	}

	if res.Outcome != nil {
		d.sched.Cancel()
		d.phase = Stopped
		d.logger.Printf("game over: %s collision, score %d, high score %d",
			res.Collision, res.Outcome.Score, res.Outcome.HighScore)
		d.display.ShowGameOver(*res.Outcome)
	} else {
		d.sched.Schedule(d.interval)
	}
	d.frame()
}

// HandleKey applies one key. It reports false when the key asks to quit.
func (d *Driver) HandleKey(k input.Key) bool {
	switch input.Handle(d.state, k) {
	case input.ActionStart:
		d.Start()
	case input.ActionQuit:
		return false
	}
	return true
}

// Run draws the idle screen and then processes keys and ticks until the
// context is cancelled, the key channel closes or a quit key arrives.
func (d *Driver) Run(ctx context.Context, keys <-chan input.Key) error {
	defer d.Stop()

	d.display.ShowStartPrompt()
	d.display.SetScores(d.state.Score, d.state.HighScore)
	d.frame()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case k, ok := <-keys:
			if !ok {
				return nil
			}
			if !d.HandleKey(k) {
				return nil
			}
		case <-d.sched.C():
			d.sched.fired()
			d.Tick()
		}
	}
}

// frame renders the state, presents it and notifies observers
func (d *Driver) frame() {
	d.renderer.Render(d.surface, d.state)
	if f, ok := d.surface.(renderer.Flusher); ok {
		if err := f.Flush(); err != nil {
			d.logger.Printf("flush: %v", err)
		}
	}
	if len(d.observers) == 0 {
		return
	}
	snap := d.state.Snapshot()
	for _, o := range d.observers {
		o.Observe(snap)
	}
}

type nopDisplay struct{}

func (nopDisplay) ShowStartPrompt()          {}
func (nopDisplay) SetScores(int, int)        {}
func (nopDisplay) ShowGameOver(game.Outcome) {}
func (nopDisplay) ClearMessage()             {}
