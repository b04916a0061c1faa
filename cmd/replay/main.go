package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/trytobebee/gridsnake/pkg/config"
	"github.com/trytobebee/gridsnake/pkg/game"
	"github.com/trytobebee/gridsnake/pkg/record"
	"github.com/trytobebee/gridsnake/pkg/renderer"
)

// Plays a recording made with snake -record in the terminal.
func main() {
	speed := flag.Duration("speed", config.TickInterval, "delay between frames")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-speed d] recording.jsonl\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if *speed <= 0 {
		fmt.Fprintf(os.Stderr, "Error: -speed must be positive, got %v\n", *speed)
		os.Exit(2)
	}
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := replay(flag.Arg(0), *speed); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func replay(path string, speed time.Duration) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	frames, err := record.Read(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	screen := renderer.NewTerminalRenderer(os.Stdout, config.TerminalWidth, config.TerminalHeight)
	screen.HideCursor()
	defer screen.ShowCursor()

	r := renderer.New()
	var flushErr error
	err = record.Play(ctx, frames, clock.New(), speed, func(fr record.Frame) {
		snap := fr.State
		r.RenderSnapshot(screen, snap)
		screen.SetScores(snap.Score, snap.HighScore)
		if snap.Status == game.GameOver.String() {
			screen.ShowGameOver(game.Outcome{
				Score:        snap.Score,
				HighScore:    snap.HighScore,
				NewHighScore: snap.Score > 0 && snap.Score == snap.HighScore,
			})
		} else {
			screen.ClearMessage()
		}
		if err := screen.Flush(); err != nil && flushErr == nil {
			flushErr = err
		}
	})
	if err != nil {
		return err
	}
	fmt.Printf("\n  replayed %d frames\n", len(frames))
	return flushErr
}
