package record

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/benbjohnson/clock"
)

// ErrBadInterval is returned by Play for a non-positive frame interval
var ErrBadInterval = errors.New("frame interval must be positive")

// maxLine bounds a single recorded frame; a full 20x20 board is far below it
const maxLine = 1 << 20

// Read parses a recording. Blank lines are skipped and a malformed line
// is an error naming its line number.
func Read(r io.Reader) ([]Frame, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLine)

	var frames []Frame
	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var f Frame
		if err := json.Unmarshal(scanner.Bytes(), &f); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		frames = append(frames, f)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return frames, nil
}

// Play calls show for each frame, one per interval. The first frame is
// shown immediately. Play returns ctx.Err() if cancelled early.
func Play(ctx context.Context, frames []Frame, clk clock.Clock, interval time.Duration, show func(Frame)) error {
	if interval <= 0 {
		return fmt.Errorf("play at %v: %w", interval, ErrBadInterval)
	}
	if len(frames) == 0 {
		return nil
	}
	if clk == nil {
		clk = clock.New()
	}
	ticker := clk.Ticker(interval)
	defer ticker.Stop()

	show(frames[0])
	for _, f := range frames[1:] {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			show(f)
		}
	}
	return nil
}
