package project

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Render job statuses.
const (
	RenderQueued = "queued"
)

// RenderJob is a queued render of the timeline.
type RenderJob struct {
	ID        string
	Status    string
	CreatedAt time.Time
}

// SubmitRender queues a render of the timeline and returns the job id.
func (s *Store) SubmitRender(ctx context.Context) (string, error) {
	id := uuid.NewString()
	now := time.Now().UTC()
	if _, err := s.db.ExecContext(ctx,
		"INSERT INTO render_jobs (id, status, created_at) VALUES (?, ?, ?)",
		id, RenderQueued, now.Format(time.RFC3339Nano),
	); err != nil {
		return "", fmt.Errorf("insert render job: %w", err)
	}
	return id, nil
}

// RenderJobs lists render jobs oldest first.
func (s *Store) RenderJobs(ctx context.Context) ([]RenderJob, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, status, created_at FROM render_jobs ORDER BY created_at, rowid",
	)
	if err != nil {
		return nil, fmt.Errorf("query render jobs: %w", err)
	}
	defer rows.Close()

	var jobs []RenderJob
	for rows.Next() {
		var (
			job     RenderJob
			created string
		)
		if err := rows.Scan(&job.ID, &job.Status, &created); err != nil {
			return nil, fmt.Errorf("scan render job: %w", err)
		}
		job.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("parse render job time: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}
