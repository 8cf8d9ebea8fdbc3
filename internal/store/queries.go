// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/olegiv/featreq-go/internal/model"
)

// Queries wraps a database handle and exposes typed query methods.
type Queries struct {
	db *sql.DB
}

// New creates a Queries instance for the given database.
func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

const userColumns = "id, username, password_hash, is_admin, created_at"

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt)
	return u, err
}

// CountUsers returns the total number of registered users.
func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return count, nil
}

// CreateUserParams holds the fields for creating a user.
type CreateUserParams struct {
	Username     string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}

// CreateUser inserts a new user and returns it with its assigned ID.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (model.User, error) {
	row := q.db.QueryRowContext(ctx,
		`INSERT INTO users (username, password_hash, is_admin, created_at)
		 VALUES (?, ?, ?, ?)
		 RETURNING `+userColumns,
		arg.Username, arg.PasswordHash, arg.IsAdmin, arg.CreatedAt,
	)
	return scanUser(row)
}

// GetUserByID returns the user with the given ID.
func (q *Queries) GetUserByID(ctx context.Context, id int64) (model.User, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ?", id)
	return scanUser(row)
}

// GetUserByUsername returns the user with the given username.
func (q *Queries) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username = ?", username)
	return scanUser(row)
}

// UpdateUserPasswordHash replaces a user's stored password hash.
// Used for transparent rehashing when argon2 parameters change.
func (q *Queries) UpdateUserPasswordHash(ctx context.Context, id int64, passwordHash string) error {
	_, err := q.db.ExecContext(ctx,
		"UPDATE users SET password_hash = ? WHERE id = ?", passwordHash, id)
	if err != nil {
		return fmt.Errorf("updating password hash: %w", err)
	}
	return nil
}

// ListUsers returns all users ordered by creation time.
func (q *Queries) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY created_at ASC, id ASC")
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

const featureRequestColumns = "id, title, description, priority, status, submitter_id, contact_info, created_at, updated_at"

func scanFeatureRequest(row *sql.Row) (model.FeatureRequest, error) {
	var fr model.FeatureRequest
	var contactInfo sql.NullString
	err := row.Scan(&fr.ID, &fr.Title, &fr.Description, &fr.Priority, &fr.Status,
		&fr.SubmitterID, &contactInfo, &fr.CreatedAt, &fr.UpdatedAt)
	if contactInfo.Valid {
		fr.ContactInfo = &contactInfo.String
	}
	return fr, err
}

// CreateFeatureRequestParams holds the fields for creating a feature request.
type CreateFeatureRequestParams struct {
	Title       string
	Description string
	Priority    model.Priority
	Status      model.Status
	SubmitterID int64
	ContactInfo *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateFeatureRequest inserts a new feature request and returns it.
func (q *Queries) CreateFeatureRequest(ctx context.Context, arg CreateFeatureRequestParams) (model.FeatureRequest, error) {
	row := q.db.QueryRowContext(ctx,
		`INSERT INTO feature_requests (title, description, priority, status, submitter_id, contact_info, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 RETURNING `+featureRequestColumns,
		arg.Title, arg.Description, string(arg.Priority), string(arg.Status),
		arg.SubmitterID, nullString(arg.ContactInfo), arg.CreatedAt, arg.UpdatedAt,
	)
	return scanFeatureRequest(row)
}

// GetFeatureRequestByID returns the feature request with the given ID.
// Returns sql.ErrNoRows if it does not exist.
func (q *Queries) GetFeatureRequestByID(ctx context.Context, id int64) (model.FeatureRequest, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+featureRequestColumns+" FROM feature_requests WHERE id = ?", id)
	return scanFeatureRequest(row)
}

// ListFeatureRequestsParams holds the optional filters for listing feature
// requests. A nil SubmitterID means no owner restriction (admin view).
type ListFeatureRequestsParams struct {
	SubmitterID *int64
	Search      string
	Status      model.Status
}

// ListFeatureRequests returns feature requests matching the filters, newest
// first. The title search is a case-insensitive substring match.
func (q *Queries) ListFeatureRequests(ctx context.Context, arg ListFeatureRequestsParams) ([]model.FeatureRequest, error) {
	var (
		conds []string
		args  []any
	)
	if arg.SubmitterID != nil {
		conds = append(conds, "submitter_id = ?")
		args = append(args, *arg.SubmitterID)
	}
	if arg.Search != "" {
		conds = append(conds, "title LIKE '%' || ? || '%'")
		args = append(args, arg.Search)
	}
	if arg.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, string(arg.Status))
	}

	query := "SELECT " + featureRequestColumns + " FROM feature_requests"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing feature requests: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var requests []model.FeatureRequest
	for rows.Next() {
		var fr model.FeatureRequest
		var contactInfo sql.NullString
		if err := rows.Scan(&fr.ID, &fr.Title, &fr.Description, &fr.Priority, &fr.Status,
			&fr.SubmitterID, &contactInfo, &fr.CreatedAt, &fr.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning feature request: %w", err)
		}
		if contactInfo.Valid {
			fr.ContactInfo = &contactInfo.String
		}
		requests = append(requests, fr)
	}
	return requests, rows.Err()
}

// UpdateFeatureRequestParams holds the full row state for an update.
// Updates are whole-row writes: concurrent updates to the same row race and
// the last write wins at the storage layer.
type UpdateFeatureRequestParams struct {
	ID          int64
	Title       string
	Description string
	Priority    model.Priority
	Status      model.Status
	ContactInfo *string
	UpdatedAt   time.Time
}

// UpdateFeatureRequest writes the given row state and returns the updated
// row. SubmitterID and CreatedAt are never touched. Returns sql.ErrNoRows
// if the ID does not exist.
func (q *Queries) UpdateFeatureRequest(ctx context.Context, arg UpdateFeatureRequestParams) (model.FeatureRequest, error) {
	row := q.db.QueryRowContext(ctx,
		`UPDATE feature_requests
		 SET title = ?, description = ?, priority = ?, status = ?, contact_info = ?, updated_at = ?
		 WHERE id = ?
		 RETURNING `+featureRequestColumns,
		arg.Title, arg.Description, string(arg.Priority), string(arg.Status),
		nullString(arg.ContactInfo), arg.UpdatedAt, arg.ID,
	)
	return scanFeatureRequest(row)
}

// DeleteExpiredSessions removes expired session rows. Called from the
// scheduler so request handling never pays for pruning.
func (q *Queries) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		"DELETE FROM sessions WHERE expiry < julianday('now')")
	if err != nil {
		return 0, fmt.Errorf("deleting expired sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
