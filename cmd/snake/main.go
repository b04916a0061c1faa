package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/gdamore/tcell/v2"
	"github.com/trytobebee/gridsnake/pkg/config"
	"github.com/trytobebee/gridsnake/pkg/game"
	"github.com/trytobebee/gridsnake/pkg/input"
	"github.com/trytobebee/gridsnake/pkg/loop"
	"github.com/trytobebee/gridsnake/pkg/record"
	"github.com/trytobebee/gridsnake/pkg/renderer"
	"github.com/trytobebee/gridsnake/pkg/spectate"
	"github.com/trytobebee/gridsnake/pkg/window"
)

// ErrUnknownUI is returned for an unsupported -ui value
var ErrUnknownUI = errors.New("unknown ui")

type options struct {
	ui       string
	seed     int64
	spectate string
	record   string
	logPath  string
}

func main() {
	var opts options
	flag.StringVar(&opts.ui, "ui", "ansi", "frontend: ansi, tcell or window")
	flag.Int64Var(&opts.seed, "seed", 0, "random seed for food placement (0 = time based)")
	flag.StringVar(&opts.spectate, "spectate", "", "serve a read-only websocket feed on this address, e.g. :8080")
	flag.StringVar(&opts.record, "record", "", "write every frame to this JSONL file for cmd/replay")
	flag.StringVar(&opts.logPath, "log", "", "append the log to this file")
	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	logger, closeLog, err := openLog(opts)
	if err != nil {
		return err
	}
	defer closeLog()

	seed := opts.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	state, err := game.NewState(config.GridSize, rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	driverOpts := loop.Options{
		Interval: config.TickInterval,
		Logger:   logger,
	}

	if opts.record != "" {
		rec, err := record.Create(opts.record, clock.New(), logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := rec.Close(); err != nil {
				logger.Println("record:", err)
			}
			if n := rec.Dropped(); n > 0 {
				logger.Printf("record: dropped %d frames", n)
			}
		}()
		driverOpts.Observers = append(driverOpts.Observers, rec)
	}

	if opts.spectate != "" {
		hub := spectate.NewHub(config.GridSize, config.TickInterval, logger)
		srv, err := spectate.Listen(opts.spectate, hub)
		if err != nil {
			return err
		}
		logger.Printf("spectator feed on ws://%s%s", srv.Addr(), config.SpectatePath)
		go func() {
			if err := srv.Serve(ctx); err != nil {
				logger.Println("spectate:", err)
			}
		}()
		driverOpts.Observers = append(driverOpts.Observers, hub)
	}

	switch opts.ui {
	case "ansi":
		err = runANSI(ctx, state, driverOpts)
	case "tcell":
		err = runTcell(ctx, state, driverOpts)
	case "window":
		err = runWindow(ctx, state, driverOpts)
	default:
		return fmt.Errorf("%w %q (want ansi, tcell or window)", ErrUnknownUI, opts.ui)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// openLog picks the log destination. Terminal frontends own the screen, so
// without a file their log is discarded.
func openLog(opts options) (*log.Logger, func(), error) {
	if opts.logPath != "" {
		f, err := os.OpenFile(opts.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log: %w", err)
		}
		return log.New(f, "snake: ", log.LstdFlags), func() { f.Close() }, nil
	}
	var out io.Writer = io.Discard
	if opts.ui == "window" {
		out = os.Stderr
	}
	return log.New(out, "snake: ", log.LstdFlags), func() {}, nil
}

func runANSI(ctx context.Context, state *game.State, opts loop.Options) error {
	// Initialize input handler
	inputHandler := input.NewKeyboardHandler()
	if err := inputHandler.Start(); err != nil {
		return fmt.Errorf("open keyboard: %w", err)
	}
	defer inputHandler.Stop()

	// Initialize renderer
	render := renderer.NewTerminalRenderer(os.Stdout, config.TerminalWidth, config.TerminalHeight)
	render.HideCursor()
	defer render.ShowCursor()

	opts.Display = render
	err := loop.New(state, render, opts).Run(ctx, inputHandler.Keys())
	fmt.Print("\r\n  Thanks for playing!\r\n")
	return err
}

func runTcell(ctx context.Context, state *game.State, opts loop.Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("tcell screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("tcell init: %w", err)
	}
	defer screen.Fini()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	keys := make(chan input.Key)
	go func() {
		for {
			switch ev := screen.PollEvent().(type) {
			case nil:
				return
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				k := input.FromTcell(ev)
				if k == input.KeyUnknown {
					continue
				}
				select {
				case keys <- k:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	render := renderer.NewTcellRenderer(screen, config.TerminalWidth, config.TerminalHeight)
	opts.Display = render
	return loop.New(state, render, opts).Run(ctx, keys)
}

func runWindow(ctx context.Context, state *game.State, opts loop.Options) error {
	pal := renderer.DefaultPalette()
	canvas := renderer.NewCanvas(config.WindowWidth, config.WindowHeight, pal.Background)
	keys := make(chan input.Key, 8)
	win := window.New(canvas, keys)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts.Display = win
	driver := loop.New(state, canvas, opts)
	errc := make(chan error, 1)
	go func() {
		err := driver.Run(ctx, keys)
		// Closing the game loop closes the window too
		win.Close()
		errc <- err
	}()

	// ebiten must run on the main goroutine
	if err := win.Run(); err != nil {
		cancel()
		<-errc
		return err
	}
	cancel()
	return <-errc
}
