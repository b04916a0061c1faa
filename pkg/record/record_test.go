package record

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/trytobebee/gridsnake/pkg/game"
)

func snapshot(score int) game.Snapshot {
	return game.Snapshot{
		GridSize:  20,
		Snake:     []game.Point{{X: 10, Y: 10}, {X: 10, Y: 11}},
		Heading:   "UP",
		Food:      &game.Point{X: 3, Y: 4},
		Score:     score,
		HighScore: score,
		Status:    "playing",
	}
}

func TestRecorderWritesFrames(t *testing.T) {
	var buf bytes.Buffer
	mock := clock.NewMock()
	r := NewRecorder(&buf, mock, nil)

	for i := 0; i < 3; i++ {
		r.Observe(snapshot(i))
		mock.Add(100 * time.Millisecond)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	frames, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(frames))
	}
	start := time.Unix(0, 0)
	for i, f := range frames {
		if f.Step != i {
			t.Errorf("frame %d: expected step %d, got %d", i, i, f.Step)
		}
		if f.State.Score != i {
			t.Errorf("frame %d: expected score %d, got %d", i, i, f.State.Score)
		}
		if want := start.Add(time.Duration(i) * 100 * time.Millisecond); !f.Time.Equal(want) {
			t.Errorf("frame %d: expected time %v, got %v", i, want, f.Time)
		}
	}
	if f := frames[0].State.Food; f == nil || *f != (game.Point{X: 3, Y: 4}) {
		t.Errorf("expected food (3,4), got %v", f)
	}
}

func TestRecorderIgnoresFramesAfterClose(t *testing.T) {
	var buf bytes.Buffer
	r := NewRecorder(&buf, clock.NewMock(), nil)
	r.Observe(snapshot(1))
	r.Close()
	r.Observe(snapshot(2))
	if err := r.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}

	frames, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(frames) != 1 {
		t.Errorf("expected 1 frame, got %d", len(frames))
	}
}

func TestCreateMakesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records", "game.jsonl")
	r, err := Create(path, nil, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	r.Observe(snapshot(5))
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open recording: %v", err)
	}
	defer f.Close()
	frames, err := Read(f)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(frames) != 1 || frames[0].State.Score != 5 {
		t.Errorf("unexpected frames %+v", frames)
	}
}

func TestReadReportsBadLine(t *testing.T) {
	in := `{"step":0,"state":{"gridSize":20}}` + "\n\n" + "not json\n"
	_, err := Read(strings.NewReader(in))
	if err == nil || !strings.Contains(err.Error(), "line 3") {
		t.Errorf("expected an error naming line 3, got %v", err)
	}
}

func TestPlayPacesFrames(t *testing.T) {
	frames := []Frame{{Step: 0}, {Step: 1}, {Step: 2}}
	mock := clock.NewMock()
	shown := make(chan int, len(frames))
	done := make(chan error, 1)

	go func() {
		done <- Play(context.Background(), frames, mock, 100*time.Millisecond, func(f Frame) {
			shown <- f.Step
		})
	}()

	if got := <-shown; got != 0 {
		t.Fatalf("expected frame 0 first, got %d", got)
	}
	for want := 1; want < len(frames); want++ {
		select {
		case got := <-shown:
			t.Fatalf("frame %d shown before its tick", got)
		default:
		}
		mock.Add(100 * time.Millisecond)
		if got := <-shown; got != want {
			t.Fatalf("expected frame %d, got %d", want, got)
		}
	}
	if err := <-done; err != nil {
		t.Errorf("Play: %v", err)
	}
}

func TestPlayCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	count := 0
	err := Play(ctx, []Frame{{Step: 0}, {Step: 1}}, clock.NewMock(), time.Second, func(Frame) { count++ })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if count != 1 {
		t.Errorf("expected only the first frame, got %d", count)
	}
}

func TestPlayRejectsBadInterval(t *testing.T) {
	tests := []struct {
		name     string
		interval time.Duration
	}{
		{"zero", 0},
		{"negative", -time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count := 0
			err := Play(context.Background(), []Frame{{Step: 0}, {Step: 1}}, clock.NewMock(), tt.interval, func(Frame) { count++ })
			if !errors.Is(err, ErrBadInterval) {
				t.Errorf("expected ErrBadInterval, got %v", err)
			}
			if count != 0 {
				t.Errorf("expected no frames shown, got %d", count)
			}
		})
	}
}
