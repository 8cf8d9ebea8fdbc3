// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/featreq-go/internal/auth"
	"github.com/olegiv/featreq-go/internal/middleware"
	"github.com/olegiv/featreq-go/internal/model"
	"github.com/olegiv/featreq-go/internal/store"
)

// AuthHandler handles registration, login, logout and the current-user
// endpoint.
type AuthHandler struct {
	queries        *store.Queries
	sessionManager *scs.SessionManager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *sql.DB, sm *scs.SessionManager) *AuthHandler {
	return &AuthHandler{
		queries:        store.New(db),
		sessionManager: sm,
	}
}

// credentialsRequest is the request body for register and login.
type credentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register handles POST /api/register. The first user ever registered is
// granted the admin flag automatically; the new user is logged in right away.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if details := validateStruct(req); details != nil {
		writeMessage(w, http.StatusBadRequest, joinedValidationMessage(details))
		return
	}

	// Reject duplicates up front for a friendly message. The unique index on
	// username stays authoritative for concurrent registrations.
	if _, err := h.queries.GetUserByUsername(r.Context(), req.Username); err == nil {
		writeMessage(w, http.StatusBadRequest, "Username already exists")
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		writeInternalError(w, "checking username", "error", err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeInternalError(w, "hashing password", "error", err)
		return
	}

	count, err := h.queries.CountUsers(r.Context())
	if err != nil {
		writeInternalError(w, "counting users", "error", err)
		return
	}

	user, err := h.queries.CreateUser(r.Context(), store.CreateUserParams{
		Username:     req.Username,
		PasswordHash: hash,
		IsAdmin:      count == 0, // First user gets admin privileges
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		if isUniqueViolation(err) {
			writeMessage(w, http.StatusBadRequest, "Username already exists")
			return
		}
		writeInternalError(w, "creating user", "error", err)
		return
	}

	if err := h.startSession(r, user); err != nil {
		writeInternalError(w, "starting session", "error", err)
		return
	}

	slog.Info("user registered", "user_id", user.ID, "username", user.Username, "is_admin", user.IsAdmin)
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Registration successful",
		"user":    user.Public(),
	})
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if details := validateStruct(req); details != nil {
		writeMessage(w, http.StatusBadRequest, joinedValidationMessage(details))
		return
	}

	user, err := h.queries.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeMessage(w, http.StatusBadRequest, "Incorrect username.")
			return
		}
		writeInternalError(w, "loading user", "error", err)
		return
	}

	// A verification error is indistinguishable from a wrong password on
	// purpose: parse or crypto failures must fail closed.
	ok, err := auth.CheckPassword(req.Password, user.PasswordHash)
	if err != nil {
		slog.Warn("password verification error", "user_id", user.ID, "error", err)
	}
	if !ok {
		writeMessage(w, http.StatusBadRequest, "Incorrect password.")
		return
	}

	// Upgrade the stored hash transparently when parameters have changed.
	if auth.NeedsRehash(user.PasswordHash) {
		if newHash, err := auth.HashPassword(req.Password); err == nil {
			if err := h.queries.UpdateUserPasswordHash(r.Context(), user.ID, newHash); err != nil {
				slog.Warn("rehashing password", "user_id", user.ID, "error", err)
			}
		}
	}

	if err := h.startSession(r, user); err != nil {
		writeInternalError(w, "starting session", "error", err)
		return
	}

	slog.Info("user logged in", "user_id", user.ID, "username", user.Username)
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user":    user.Public(),
	})
}

// Logout handles POST /api/logout. The session record is deleted server-side
// and the cookie is expired on the client.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		writeInternalError(w, "destroying session", "error", err)
		return
	}
	writeMessage(w, http.StatusOK, "Logout successful")
}

// CurrentUser handles GET /api/user and returns the authenticated principal.
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		writeMessage(w, http.StatusUnauthorized, "Not logged in")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// startSession rotates the session token and binds it to the user.
func (h *AuthHandler) startSession(r *http.Request, user model.User) error {
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		return err
	}
	h.sessionManager.Put(r.Context(), middleware.SessionKeyUserID, user.ID)
	return nil
}

// isUniqueViolation reports whether err is a SQLite unique constraint error.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
