package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"boardeval/internal/ap"
)

// Run is one persisted evaluation run: the aggregate results of scoring
// one model's responses against one exam.
type Run struct {
	ID        string
	ModelName string
	Results   ap.TestResults
	CreatedAt time.Time
}

// RunSummary is the listing view of a run, without the per-question
// results payload.
type RunSummary struct {
	ID           string
	Exam         ap.APTest
	ModelName    string
	TotalScore   float64
	NumQuestions int
	AverageScore float64
	CreatedAt    time.Time
}

// Accuracy returns the run's average score as a percentage.
func (r RunSummary) Accuracy() float64 {
	return r.AverageScore * 100
}

// ErrRunNotFound is returned by GetRun for unknown run IDs.
var ErrRunNotFound = errors.New("run not found")

// SaveRun persists a run and returns its generated ID.
func (s *Store) SaveRun(ctx context.Context, modelName string, results *ap.TestResults) (string, error) {
	id := uuid.NewString()

	periodJSON, err := json.Marshal(results.TimePeriodStats)
	if err != nil {
		return "", fmt.Errorf("marshal time period stats: %w", err)
	}
	confJSON, err := json.Marshal(results.ConfidenceStats)
	if err != nil {
		return "", fmt.Errorf("marshal confidence stats: %w", err)
	}
	resultsJSON, err := json.Marshal(results.Results)
	if err != nil {
		return "", fmt.Errorf("marshal results: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, exam, model_name, total_score, num_questions,
			average_score, time_period_stats, confidence_stats, results, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, string(results.Test), modelName,
		results.TotalScore, results.NumQuestions, results.AverageScore,
		string(periodJSON), string(confJSON), string(resultsJSON),
		results.Timestamp.UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	return id, nil
}

// GetRun fetches a full run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, exam, model_name, total_score, num_questions, average_score,
			time_period_stats, confidence_stats, results, created_at
		FROM runs WHERE id = ?`, id)

	var run Run
	var exam string
	var periodJSON, confJSON, resultsJSON string
	err := row.Scan(&run.ID, &exam, &run.ModelName,
		&run.Results.TotalScore, &run.Results.NumQuestions, &run.Results.AverageScore,
		&periodJSON, &confJSON, &resultsJSON, &run.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan run: %w", err)
	}

	run.Results.Test = ap.APTest(exam)
	run.Results.Timestamp = run.CreatedAt
	if err := json.Unmarshal([]byte(periodJSON), &run.Results.TimePeriodStats); err != nil {
		return nil, fmt.Errorf("unmarshal time period stats: %w", err)
	}
	if err := json.Unmarshal([]byte(confJSON), &run.Results.ConfidenceStats); err != nil {
		return nil, fmt.Errorf("unmarshal confidence stats: %w", err)
	}
	if err := json.Unmarshal([]byte(resultsJSON), &run.Results.Results); err != nil {
		return nil, fmt.Errorf("unmarshal results: %w", err)
	}

	return &run, nil
}

// ListRuns returns run summaries, most recent first.
func (s *Store) ListRuns(ctx context.Context) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, exam, model_name, total_score, num_questions, average_score, created_at
		FROM runs ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		var exam string
		if err := rows.Scan(&r.ID, &exam, &r.ModelName,
			&r.TotalScore, &r.NumQuestions, &r.AverageScore, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run summary: %w", err)
		}
		r.Exam = ap.APTest(exam)
		out = append(out, r)
	}
	return out, rows.Err()
}
