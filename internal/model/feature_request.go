// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Priority is the submitter-declared urgency of a feature request.
type Priority string

// Priority values.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities returns all valid priority values.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// Valid reports whether p is one of the known priority values.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Status is the triage state of a feature request. Values form a flat set,
// not an ordered progression: any status may follow any other, and transition
// policy is left to the admin's judgment.
type Status string

// Status values.
const (
	StatusOpen       Status = "open"
	StatusInReview   Status = "in_review"
	StatusApproved   Status = "approved"
	StatusRejected   Status = "rejected"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Statuses returns all valid status values.
func Statuses() []Status {
	return []Status{
		StatusOpen,
		StatusInReview,
		StatusApproved,
		StatusRejected,
		StatusInProgress,
		StatusCompleted,
	}
}

// Valid reports whether s is one of the known status values.
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInReview, StatusApproved,
		StatusRejected, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// FeatureRequest is the core business entity: a submitted idea tracked
// through the flat status set. SubmitterID is stamped by the server from the
// authenticated principal at creation and never changes afterwards.
type FeatureRequest struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    Priority  `json:"priority"`
	Status      Status    `json:"status"`
	SubmitterID int64     `json:"submitterId"`
	ContactInfo *string   `json:"contactInfo"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
