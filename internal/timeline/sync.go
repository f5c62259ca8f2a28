package timeline

import (
	"context"
	"fmt"
	"math"

	"github.com/mgpai22/textsync/internal/subtitle"
)

const (
	DefaultTrackKind   = "video"
	DefaultElementKind = "Text+"
)

type Options struct {
	TrackKind   string // kind passed to Host.TrackNames, default "video"
	ElementKind string // kind of text overlay elements, default "Text+"
}

// Synchronizer moves text between a subtitle sequence and one named track.
// Relevant elements are numbered 1..N in track order; only elements of the
// element kind that expose a text sub-resource take a number.
type Synchronizer struct {
	host Host
	opts Options
}

// UpdateResult summarizes an Update call.
type UpdateResult struct {
	TrackFound bool
	Elements   int // numbered elements in the track
	Updated    int // elements whose text was written
	Unmatched  int // numbered elements without a record, left untouched
}

func NewSynchronizer(host Host, opts Options) (*Synchronizer, error) {
	if host == nil {
		return nil, fmt.Errorf("%w: no host", ErrUnavailable)
	}
	if opts.TrackKind == "" {
		opts.TrackKind = DefaultTrackKind
	}
	if opts.ElementKind == "" {
		opts.ElementKind = DefaultElementKind
	}
	return &Synchronizer{host: host, opts: opts}, nil
}

// numbered text overlay element
type textElement struct {
	number  int
	element Element
	text    string
}

// Export reads the track into a sequence numbered from 1. A missing track
// yields an empty sequence.
func (s *Synchronizer) Export(ctx context.Context, track string) (subtitle.Sequence, error) {
	elements, found, err := s.textElements(ctx, track)
	if err != nil {
		return nil, err
	}
	seq := subtitle.Sequence{}
	if !found || len(elements) == 0 {
		return seq, nil
	}

	frameRate, err := s.frameRate(ctx)
	if err != nil {
		return nil, err
	}

	for _, te := range elements {
		start, end := te.element.TimeRange(frameRate)
		seq = append(seq, subtitle.Record{
			ID:    te.number,
			Start: start,
			End:   end,
			Text:  te.text,
		})
	}
	return seq, nil
}

// Update writes record text into the element with the same number. The
// first record with a matching id wins; elements without a record keep
// their text. Timing is never written. All element reads finish before the
// first write, so a read failure leaves the track untouched.
func (s *Synchronizer) Update(
	ctx context.Context,
	track string,
	seq subtitle.Sequence,
) (UpdateResult, error) {
	var result UpdateResult

	elements, found, err := s.textElements(ctx, track)
	if err != nil {
		return result, err
	}
	if !found {
		return result, nil
	}
	result.TrackFound = true
	result.Elements = len(elements)

	type write struct {
		element Element
		text    string
	}
	var writes []write
	for _, te := range elements {
		rec, ok := seq.Find(te.number)
		if !ok {
			result.Unmatched++
			continue
		}
		writes = append(writes, write{element: te.element, text: rec.Text})
	}

	for _, w := range writes {
		if err := s.host.SetElementText(ctx, w.element, w.text); err != nil {
			return result, fmt.Errorf("set text of element %d: %w", w.element.ID, err)
		}
		result.Updated++
	}
	return result, nil
}

func (s *Synchronizer) textElements(ctx context.Context, track string) ([]textElement, bool, error) {
	names, err := s.host.TrackNames(ctx, s.opts.TrackKind)
	if err != nil {
		return nil, false, fmt.Errorf("list %s tracks: %w", s.opts.TrackKind, err)
	}
	found := false
	for _, name := range names {
		if name == track {
			found = true
			break
		}
	}
	if !found {
		return nil, false, nil
	}

	elements, err := s.host.Elements(ctx, s.opts.TrackKind, track)
	if err != nil {
		return nil, true, fmt.Errorf("list elements of track %q: %w", track, err)
	}

	var out []textElement
	number := 1
	for _, el := range elements {
		if el.Kind != s.opts.ElementKind {
			continue
		}
		text, ok, err := s.host.ElementText(ctx, el)
		if err != nil {
			return nil, true, fmt.Errorf("read text of element %d: %w", el.ID, err)
		}
		if !ok {
			continue
		}
		out = append(out, textElement{number: number, element: el, text: text})
		number++
	}
	return out, true, nil
}

func (s *Synchronizer) frameRate(ctx context.Context) (float64, error) {
	rate, err := s.host.FrameRate(ctx)
	if err != nil {
		return 0, fmt.Errorf("read frame rate: %w", err)
	}
	if !(rate > 0) || math.IsInf(rate, 0) {
		return 0, fmt.Errorf("timeline frame rate must be positive and finite, got %v", rate)
	}
	return rate, nil
}
