package timeline

import (
	"context"
	"errors"
)

// ErrUnavailable means the editing application or project cannot be reached.
var ErrUnavailable = errors.New("timeline host unavailable")

// Element is a handle to one timed item in a track. Start and End are in
// timeline frames.
type Element struct {
	ID    int64
	Kind  string
	Start int64
	End   int64
}

// TimeRange converts the element's frame range to seconds.
func (e Element) TimeRange(frameRate float64) (float64, float64) {
	return float64(e.Start) / frameRate, float64(e.End) / frameRate
}

// Host is the editing application's timeline as seen by the synchronizer.
type Host interface {
	// ordered names of tracks of the given kind
	TrackNames(ctx context.Context, kind string) ([]string, error)
	// ordered elements of the first track named track
	Elements(ctx context.Context, kind, track string) ([]Element, error)
	FrameRate(ctx context.Context) (float64, error)
	// ok is false when the element has no text sub-resource
	ElementText(ctx context.Context, el Element) (text string, ok bool, err error)
	SetElementText(ctx context.Context, el Element, text string) error
}

// Renderer is implemented by hosts that can queue a render of the timeline.
type Renderer interface {
	SubmitRender(ctx context.Context) (string, error)
}
