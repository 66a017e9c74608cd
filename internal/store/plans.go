package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/weso-m/goodeats/internal/planner"
)

// StoredPlan is one persisted planning run.
type StoredPlan struct {
	ID        int64
	Mode      planner.Mode
	Seed      int64
	Plan      planner.WeekPlan
	CreatedAt time.Time
}

// PlanRepository is a database-backed repository for week plans.
type PlanRepository struct {
	db *sql.DB
}

// NewPlanRepository creates a new PlanRepository.
func NewPlanRepository(d *DB) *PlanRepository {
	return &PlanRepository{db: d.SQL}
}

// Save inserts a finished plan and returns its row id.
func (r *PlanRepository) Save(ctx context.Context, plan *planner.WeekPlan) (int64, error) {
	data, err := json.Marshal(plan)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal plan: %w", err)
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO plans (mode, seed, plan_data, created_at) VALUES (?, ?, ?, ?)`,
		string(plan.Mode), plan.Seed, string(data), time.Now().UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert plan: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted plan id: %w", err)
	}
	return id, nil
}

// Get retrieves a stored plan by row id. Returns nil when not found.
func (r *PlanRepository) Get(ctx context.Context, id int64) (*StoredPlan, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, mode, seed, plan_data, created_at FROM plans WHERE id = ?`, id)

	sp, err := scanPlan(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plan %d: %w", id, err)
	}
	return sp, nil
}

// ListRecent retrieves the N most recent stored plans, newest first.
func (r *PlanRepository) ListRecent(ctx context.Context, limit int) ([]StoredPlan, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, mode, seed, plan_data, created_at FROM plans ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent plans: %w", err)
	}
	defer rows.Close()

	var plans []StoredPlan
	for rows.Next() {
		sp, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plan row: %w", err)
		}
		plans = append(plans, *sp)
	}
	return plans, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlan(row rowScanner) (*StoredPlan, error) {
	var (
		sp   StoredPlan
		mode string
		data string
	)
	if err := row.Scan(&sp.ID, &mode, &sp.Seed, &data, &sp.CreatedAt); err != nil {
		return nil, err
	}
	sp.Mode = planner.Mode(mode)
	if err := json.Unmarshal([]byte(data), &sp.Plan); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan data: %w", err)
	}
	return &sp, nil
}
