package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mgpai22/textsync/internal/timeline"
)

// NewElement describes an element appended to a track.
type NewElement struct {
	Kind    string
	Start   int64
	End     int64
	Text    string
	HasText bool
}

// FrameRate returns the timeline frame rate.
func (s *Store) FrameRate(ctx context.Context) (float64, error) {
	var rate float64
	if err := s.db.QueryRowContext(ctx, "SELECT frame_rate FROM timeline WHERE id = 1").Scan(&rate); err != nil {
		return 0, fmt.Errorf("read frame rate: %w", err)
	}
	return rate, nil
}

// TrackNames lists track names of a kind in track order.
func (s *Store) TrackNames(ctx context.Context, kind string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name FROM tracks WHERE kind = ? ORDER BY position",
		kind,
	)
	if err != nil {
		return nil, fmt.Errorf("query tracks: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan track: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Elements lists the elements of the first track of kind named track.
func (s *Store) Elements(ctx context.Context, kind, track string) ([]timeline.Element, error) {
	trackID, err := s.trackID(ctx, kind, track)
	if err != nil {
		return nil, err
	}
	if trackID == 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, start_frame, end_frame FROM elements
        WHERE track_id = ? ORDER BY position`,
		trackID,
	)
	if err != nil {
		return nil, fmt.Errorf("query elements: %w", err)
	}
	defer rows.Close()

	var elements []timeline.Element
	for rows.Next() {
		var el timeline.Element
		if err := rows.Scan(&el.ID, &el.Kind, &el.Start, &el.End); err != nil {
			return nil, fmt.Errorf("scan element: %w", err)
		}
		elements = append(elements, el)
	}
	return elements, rows.Err()
}

// ElementText reads the element's text sub-resource.
func (s *Store) ElementText(ctx context.Context, el timeline.Element) (string, bool, error) {
	var (
		hasText bool
		text    sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT has_text, text FROM elements WHERE id = ?",
		el.ID,
	).Scan(&hasText, &text)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read element %d text: %w", el.ID, err)
	}
	if !hasText {
		return "", false, nil
	}
	return text.String, true, nil
}

// SetElementText replaces the element's text. Elements without a text
// sub-resource are rejected.
func (s *Store) SetElementText(ctx context.Context, el timeline.Element, text string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE elements SET text = ? WHERE id = ? AND has_text = 1",
		text, el.ID,
	)
	if err != nil {
		return fmt.Errorf("update element %d text: %w", el.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("element %d has no text sub-resource", el.ID)
	}
	return nil
}

// AddTrack appends a track of kind. Names need not be unique; lookups use
// the first track with a name.
func (s *Store) AddTrack(ctx context.Context, kind, name string) error {
	_, err := s.addTrack(ctx, s.db, kind, name)
	return err
}

// AddElement appends an element to the first track of kind named track,
// creating the track when it does not exist.
func (s *Store) AddElement(ctx context.Context, kind, track string, el NewElement) (timeline.Element, error) {
	if el.End < el.Start {
		return timeline.Element{}, fmt.Errorf("element ends at frame %d before it starts at %d", el.End, el.Start)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return timeline.Element{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var trackID int64
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM tracks WHERE kind = ? AND name = ? ORDER BY position LIMIT 1",
		kind, track,
	).Scan(&trackID)
	if errors.Is(err, sql.ErrNoRows) {
		trackID, err = s.addTrack(ctx, tx, kind, track)
	}
	if err != nil {
		return timeline.Element{}, fmt.Errorf("resolve track %q: %w", track, err)
	}

	var text any
	if el.HasText {
		text = el.Text
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO elements (track_id, position, kind, start_frame, end_frame, has_text, text)
        VALUES (?, (SELECT COALESCE(MAX(position), 0) + 1 FROM elements WHERE track_id = ?), ?, ?, ?, ?, ?)`,
		trackID, trackID, el.Kind, el.Start, el.End, el.HasText, text,
	)
	if err != nil {
		return timeline.Element{}, fmt.Errorf("insert element: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return timeline.Element{}, fmt.Errorf("last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return timeline.Element{}, fmt.Errorf("commit element: %w", err)
	}
	return timeline.Element{ID: id, Kind: el.Kind, Start: el.Start, End: el.End}, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) addTrack(ctx context.Context, db execer, kind, name string) (int64, error) {
	res, err := db.ExecContext(ctx,
		`INSERT INTO tracks (kind, position, name)
        VALUES (?, (SELECT COALESCE(MAX(position), 0) + 1 FROM tracks WHERE kind = ?), ?)`,
		kind, kind, name,
	)
	if err != nil {
		return 0, fmt.Errorf("insert track: %w", err)
	}
	return res.LastInsertId()
}

func (s *Store) trackID(ctx context.Context, kind, track string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM tracks WHERE kind = ? AND name = ? ORDER BY position LIMIT 1",
		kind, track,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("find track %q: %w", track, err)
	}
	return id, nil
}
