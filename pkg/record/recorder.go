package record

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/trytobebee/gridsnake/pkg/game"
)

// Frame is one line of a recording
type Frame struct {
	Step  int           `json:"step"`
	Time  time.Time     `json:"time"`
	State game.Snapshot `json:"state"`
}

// Recorder writes every observed frame as a JSON line. Writing happens on
// a background goroutine so the game loop never waits on the disk.
type Recorder struct {
	clock  clock.Clock
	logger *log.Logger
	closer io.Closer
	writer *bufio.Writer

	frames chan Frame
	wg     sync.WaitGroup

	mu      sync.Mutex
	step    int
	dropped int
	closed  bool
}

// Create opens path for writing, creating its directory if needed
func Create(path string, clk clock.Clock, logger *log.Logger) (*Recorder, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create records dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create record file: %w", err)
	}
	r := NewRecorder(f, clk, logger)
	r.closer = f
	return r, nil
}

// NewRecorder records to w. A nil clock uses the wall clock.
func NewRecorder(w io.Writer, clk clock.Clock, logger *log.Logger) *Recorder {
	if clk == nil {
		clk = clock.New()
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	r := &Recorder{
		clock:  clk,
		logger: logger,
		writer: bufio.NewWriter(w),
		frames: make(chan Frame, 1000), // Buffer up to 1000 frames
	}

	// Start background writer
	r.wg.Add(1)
	go r.writeLoop()
	return r
}

// Observe queues a frame. It never blocks; frames are dropped while the
// buffer is full.
func (r *Recorder) Observe(snap game.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	frame := Frame{Step: r.step, Time: r.clock.Now(), State: snap}
	r.step++

	select {
	case r.frames <- frame:
	default:
		r.dropped++
	}
}

// Dropped returns the number of frames lost to a full buffer
func (r *Recorder) Dropped() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

// Close flushes the pending frames and closes the file
func (r *Recorder) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.mu.Unlock()

	close(r.frames)
	r.wg.Wait()

	err := r.writer.Flush()
	if r.closer != nil {
		if cerr := r.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func (r *Recorder) writeLoop() {
	defer r.wg.Done()

	encoder := json.NewEncoder(r.writer)
	for frame := range r.frames {
		if err := encoder.Encode(frame); err != nil {
			r.logger.Printf("record frame %d: %v", frame.Step, err)
		}
	}
}
