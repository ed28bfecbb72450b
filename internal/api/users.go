package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/hourbook-app/hourbook/internal/auth"
	"github.com/hourbook-app/hourbook/internal/domain"
)

// ─── Auth Handlers ──────────────────────────────────────────────────────────
//
// POST /api/auth/signup — register a principal
// POST /api/auth/login  — exchange credentials for a bearer token
// GET  /api/auth/user   — current principal

type signupRequest struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayname"`
	Password    string `json:"password"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	u := &domain.User{
		Name:         req.Name,
		DisplayName:  strings.TrimSpace(req.DisplayName),
		PasswordHash: hash,
	}
	if err := s.users.CreateUser(r.Context(), u); err != nil {
		if err == domain.ErrNameTaken {
			writeError(w, http.StatusConflict, "name already taken")
			return
		}
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":          u.ID,
		"name":        u.Name,
		"displayname": u.DisplayName,
	})
}

type loginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := s.users.UserByName(r.Context(), strings.TrimSpace(req.Name))
	if err == domain.ErrUserNotFound {
		// Same response as a wrong password: never confirm which part failed.
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := s.auth.IssueToken(u)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user": map[string]any{
			"id":          u.ID,
			"name":        u.Name,
			"displayname": u.DisplayName,
		},
	})
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	u, err := s.users.UserByID(r.Context(), p.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":          u.ID,
		"name":        u.Name,
		"displayname": u.DisplayName,
	})
}
