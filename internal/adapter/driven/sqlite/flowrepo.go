package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/adalabs/parent-dashboard/internal/domain/model"
	"github.com/adalabs/parent-dashboard/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.FlowStore = (*FlowRepo)(nil)

// FlowRepo is the SQLite implementation of the FlowStore port interface.
type FlowRepo struct {
	db *DB
}

// NewFlowRepo creates a new FlowRepo backed by the given DB.
func NewFlowRepo(db *DB) *FlowRepo {
	return &FlowRepo{db: db}
}

// Create persists a new pending flow. A zero CreatedAt is filled with
// the current time.
func (r *FlowRepo) Create(ctx context.Context, flow model.LoginFlow) error {
	const query = `INSERT INTO login_flows (state, verifier, created_at, expires_at) VALUES (?, ?, ?, ?)`

	createdAt := flow.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := r.db.Writer.ExecContext(ctx, query, flow.State, flow.Verifier, formatTime(createdAt), formatTime(flow.ExpiresAt))
	if err != nil {
		return fmt.Errorf("create login flow: %w", err)
	}

	return nil
}

// Consume retrieves and deletes the flow for the given state in a single
// transaction, so a state can only ever be consumed once. The loser of a
// race, like any unknown state, sees (nil, nil).
func (r *FlowRepo) Consume(ctx context.Context, state string) (*model.LoginFlow, error) {
	tx, err := r.db.Writer.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback after commit is a no-op.

	const selectQuery = `SELECT state, verifier, created_at, expires_at FROM login_flows WHERE state = ?`

	flow, err := scanLoginFlow(tx.QueryRowContext(ctx, selectQuery, state))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("consume login flow: %w", err)
	}

	const deleteQuery = `DELETE FROM login_flows WHERE state = ?`

	if _, err := tx.ExecContext(ctx, deleteQuery, state); err != nil {
		return nil, fmt.Errorf("delete consumed login flow: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit login flow consume: %w", err)
	}

	return flow, nil
}

// DeleteExpired removes flows whose expiry is before now and reports how
// many were removed.
func (r *FlowRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	const query = `DELETE FROM login_flows WHERE expires_at < ?`

	result, err := r.db.Writer.ExecContext(ctx, query, formatTime(now))
	if err != nil {
		return 0, fmt.Errorf("delete expired login flows: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("check rows affected: %w", err)
	}

	return rows, nil
}

func scanLoginFlow(s scanner) (*model.LoginFlow, error) {
	var flow model.LoginFlow
	var createdAt, expiresAt string

	err := s.Scan(&flow.State, &flow.Verifier, &createdAt, &expiresAt)
	if err != nil {
		return nil, err
	}

	if flow.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if flow.ExpiresAt, err = parseTime(expiresAt); err != nil {
		return nil, fmt.Errorf("parse expires_at: %w", err)
	}

	return &flow, nil
}
