// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"net/http"

	"github.com/olegiv/featreq-go/internal/model"
	"github.com/olegiv/featreq-go/internal/store"
)

// AdminHandler handles the admin-only route namespace. The admin flag itself
// is never mutable through the API; granting it is an out-of-band operation
// against the database.
type AdminHandler struct {
	queries *store.Queries
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(db *sql.DB) *AdminHandler {
	return &AdminHandler{queries: store.New(db)}
}

// ListUsers handles GET /api/admin/users.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.queries.ListUsers(r.Context())
	if err != nil {
		writeInternalError(w, "listing users", "error", err)
		return
	}
	if users == nil {
		users = []model.User{}
	}
	writeJSON(w, http.StatusOK, users)
}
