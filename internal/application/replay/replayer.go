package replay

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/younwookim/mover/internal/application/system"
)

// Replayer feeds recorded frames back one at a time.
type Replayer struct {
	data ReplayData
	next int
}

func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{data: data}
}

// LoadReplay reads a recording written by Recorder.Save.
func LoadReplay(filename string) (*ReplayData, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open replay: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ReadReplay(f)
}

// ReadReplay decodes a recording and rejects frames with negative dt.
func ReadReplay(r io.Reader) (*ReplayData, error) {
	data := &ReplayData{}
	if err := json.NewDecoder(r).Decode(data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	if err := data.validate(); err != nil {
		return nil, err
	}
	return data, nil
}

// GetInput returns the next frame's input and dt. ok is false once the
// recording is exhausted.
func (r *Replayer) GetInput() (in system.InputState, dt float64, ok bool) {
	if r.Done() {
		return system.InputState{}, 0, false
	}
	f := r.data.Frames[r.next]
	r.next++
	return f.Input(), f.DT, true
}

// CurrentFrame is the number of frames already returned.
func (r *Replayer) CurrentFrame() int { return r.next }

func (r *Replayer) TotalFrames() int { return len(r.data.Frames) }

// Stage is the ID of the stage the session was recorded on.
func (r *Replayer) Stage() string { return r.data.Stage }

func (r *Replayer) Done() bool { return r.next >= len(r.data.Frames) }

// Reset rewinds to the first frame.
func (r *Replayer) Reset() { r.next = 0 }

// CreateTestReplayData builds frames of an idle player aiming at
// (aimX, aimY) on stage "test".
func CreateTestReplayData(frames int, dt, aimX, aimY float64) ReplayData {
	data := ReplayData{
		Version:   Version,
		Stage:     "test",
		StartTime: time.Now().Format(time.RFC3339),
		Frames:    make([]FrameInput, frames),
	}
	for i := range data.Frames {
		data.Frames[i] = frameOf(i, system.InputState{AimX: aimX, AimY: aimY}, dt)
	}
	return data
}
