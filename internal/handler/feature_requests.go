// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/featreq-go/internal/middleware"
	"github.com/olegiv/featreq-go/internal/model"
	"github.com/olegiv/featreq-go/internal/store"
)

// FeatureRequestHandler handles the feature request endpoints.
type FeatureRequestHandler struct {
	queries *store.Queries
}

// NewFeatureRequestHandler creates a new FeatureRequestHandler.
func NewFeatureRequestHandler(db *sql.DB) *FeatureRequestHandler {
	return &FeatureRequestHandler{queries: store.New(db)}
}

// List handles GET /api/feature-requests?search=&status=.
// Non-admins only ever see their own submissions; admins see everything.
// Results are newest first. An unknown status value is ignored rather than
// rejected.
func (h *FeatureRequestHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	params := store.ListFeatureRequestsParams{
		Search: r.URL.Query().Get("search"),
	}

	if !user.IsAdmin {
		params.SubmitterID = &user.ID
	}

	if status := model.Status(r.URL.Query().Get("status")); status.Valid() {
		params.Status = status
	}

	requests, err := h.queries.ListFeatureRequests(r.Context(), params)
	if err != nil {
		writeInternalError(w, "listing feature requests", "error", err)
		return
	}
	if requests == nil {
		requests = []model.FeatureRequest{}
	}

	writeJSON(w, http.StatusOK, requests)
}

// createFeatureRequestRequest is the request body for creating a feature
// request. The submitter is always the authenticated principal; a
// client-supplied submitterId has no field to land in and is discarded.
type createFeatureRequestRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Priority    string  `json:"priority" validate:"required,oneof=low medium high"`
	ContactInfo *string `json:"contactInfo"`
}

// Create handles POST /api/feature-requests.
func (h *FeatureRequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	var req createFeatureRequestRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if details := validateStruct(req); details != nil {
		writeValidationError(w, details)
		return
	}

	now := time.Now().UTC()
	created, err := h.queries.CreateFeatureRequest(r.Context(), store.CreateFeatureRequestParams{
		Title:       req.Title,
		Description: req.Description,
		Priority:    model.Priority(req.Priority),
		Status:      model.StatusOpen,
		SubmitterID: user.ID,
		ContactInfo: req.ContactInfo,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		writeInternalError(w, "creating feature request", "error", err)
		return
	}

	writeJSON(w, http.StatusOK, created)
}

// updateFeatureRequestRequest is the partial request body for PATCH. Nil
// fields are left unchanged.
type updateFeatureRequestRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Description *string `json:"description" validate:"omitempty,min=1"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=low medium high"`
	Status      *string `json:"status" validate:"omitempty,oneof=open in_review approved rejected in_progress completed"`
	ContactInfo *string `json:"contactInfo"`
}

// Update handles PATCH /api/feature-requests/{id}. Admin only (enforced by
// route middleware). The partial payload is merged onto the stored row and
// written back whole, so concurrent updates resolve to last write wins.
func (h *FeatureRequestHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Feature request not found")
		return
	}

	var req updateFeatureRequestRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if details := validateStruct(req); details != nil {
		writeValidationError(w, details)
		return
	}

	existing, err := h.queries.GetFeatureRequestByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeMessage(w, http.StatusNotFound, "Feature request not found")
			return
		}
		writeInternalError(w, "loading feature request", "error", err, "id", id)
		return
	}

	if req.Title != nil {
		existing.Title = *req.Title
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.Priority != nil {
		existing.Priority = model.Priority(*req.Priority)
	}
	if req.Status != nil {
		existing.Status = model.Status(*req.Status)
	}
	if req.ContactInfo != nil {
		existing.ContactInfo = req.ContactInfo
	}

	updated, err := h.queries.UpdateFeatureRequest(r.Context(), store.UpdateFeatureRequestParams{
		ID:          existing.ID,
		Title:       existing.Title,
		Description: existing.Description,
		Priority:    existing.Priority,
		Status:      existing.Status,
		ContactInfo: existing.ContactInfo,
		UpdatedAt:   time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeMessage(w, http.StatusNotFound, "Feature request not found")
			return
		}
		writeInternalError(w, "updating feature request", "error", err, "id", id)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}
