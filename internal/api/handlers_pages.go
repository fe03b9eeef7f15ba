// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package api

import (
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/allocarte/internal/auth"
	"github.com/tomtom215/allocarte/internal/authz"
	"github.com/tomtom215/allocarte/internal/logging"
	"github.com/tomtom215/allocarte/internal/validation"
)

// Page files under the static directory.
const (
	loginPageFile      = "login.html"
	indicatorsPageFile = "indicateurs.html"
)

// maxLoginBodyBytes bounds login request bodies.
const maxLoginBodyBytes = 16 << 10

// LoginPage serves the login page, or redirects to /dashboard when the
// request already carries a session.
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if auth.GetAuthSubject(r.Context()) != nil {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}
	h.servePage(w, r, loginPageFile)
}

// Login handles POST /auth.
//
// @Summary Log in
// @Description Checks the credentials, starts a session and redirects to /dashboard. Rejected attempts answer 200 with a text message and a link back to the login page.
// @Tags Auth
// @Accept x-www-form-urlencoded,json
// @Produce html
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Success 302 {string} string "Redirect to /dashboard"
// @Success 200 {string} string "Login rejected"
// @Failure 429 {string} string "Too many attempts"
// @Router /auth [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxLoginBodyBytes)

	req, ok := parseLoginRequest(r)
	if !ok {
		http.Error(w, "Requête invalide", http.StatusBadRequest)
		return
	}

	if verr := validation.ValidateStruct(&req); verr != nil {
		writeLoginFailure(w, loginValidationText(verr))
		return
	}

	subject, err := h.login.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if auth.IsLoginError(err) {
			writeLoginFailure(w, err.Error())
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Msg("Login failed on user store")
		writeText(w, http.StatusOK, sqlErrorText)
		return
	}

	started, err := h.sessions.Start(w, r, subject)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to start session")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	logging.Ctx(r.Context()).Info().
		Str("username", started.Username).
		Str("role", started.Role).
		Str("auth_method", started.AuthMethod.String()).
		Msg("User logged in")
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// parseLoginRequest reads a JSON or form body.
func parseLoginRequest(r *http.Request) (validation.LoginRequest, bool) {
	var req validation.LoginRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, false
		}
		return req, true
	}
	if err := r.ParseForm(); err != nil {
		return req, false
	}
	req.Username = r.PostForm.Get("username")
	req.Password = r.PostForm.Get("password")
	return req, true
}

// loginValidationText maps a rejected login form to the login messages.
// Oversized values can never match a stored account.
func loginValidationText(verr *validation.RequestValidationError) string {
	if verr.HasTag("required") {
		return auth.ErrMissingCredentials.Error()
	}
	for _, fe := range verr.Errors() {
		if fe.Field() == "username" {
			return auth.ErrUnknownUser.Error()
		}
	}
	return auth.ErrWrongPassword.Error()
}

func writeLoginFailure(w http.ResponseWriter, text string) {
	writeText(w, http.StatusOK, text+retourLink)
}

func writeText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(text))
}

// Dashboard serves the dashboard page of the subject's role.
//
// @Summary Dashboard page
// @Description Serves the admin or user dashboard, as the authorization policy decides for the session role.
// @Tags Pages
// @Produce html
// @Success 200 {string} string "Dashboard page"
// @Success 302 {string} string "Redirect to / without a session"
// @Router /dashboard [get]
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	subject := auth.GetAuthSubject(r.Context())
	if subject == nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	page := authz.DashboardUserFile
	if h.enforcer != nil {
		page = h.enforcer.DashboardPage(subject.Role)
	}
	h.servePage(w, r, page)
}

// DashboardRedirect keeps the old dashboard URL working.
func (h *Handler) DashboardRedirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// Indicators serves the complementary indicators page.
func (h *Handler) Indicators(w http.ResponseWriter, r *http.Request) {
	h.servePage(w, r, indicatorsPageFile)
}

// Logout ends the session, drops its engine and redirects to the login page.
//
// @Summary Log out
// @Tags Auth
// @Success 302 {string} string "Redirect to /"
// @Router /logout [get]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if subject := auth.GetAuthSubject(r.Context()); subject != nil {
		if h.engines != nil && subject.SessionID != "" {
			h.engines.Drop(subject.SessionID)
		}
		logging.Ctx(r.Context()).Info().Str("username", subject.Username).Msg("User logged out")
	}
	if err := h.sessions.End(w, r); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Failed to destroy session")
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// Static serves files from the static directory. The role dashboards are
// only reachable through /dashboard.
func (h *Handler) Static() http.Handler {
	files := http.FileServer(http.Dir(h.staticDir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch path.Clean("/" + r.URL.Path) {
		case "/" + authz.DashboardAdminFile, "/" + authz.DashboardUserFile:
			http.Redirect(w, r, "/dashboard", http.StatusFound)
			return
		case "/" + indicatorsPageFile:
			if auth.GetAuthSubject(r.Context()) == nil {
				http.Redirect(w, r, "/", http.StatusFound)
				return
			}
		}
		setStaticCacheHeaders(w, r.URL.Path)
		files.ServeHTTP(w, r)
	})
}

// setStaticCacheHeaders lets browsers revalidate HTML and cache assets.
func setStaticCacheHeaders(w http.ResponseWriter, urlPath string) {
	switch strings.ToLower(filepath.Ext(urlPath)) {
	case ".js", ".css", ".png", ".jpg", ".jpeg", ".svg", ".ico", ".woff", ".woff2", ".geojson":
		w.Header().Set("Cache-Control", "public, max-age=3600")
	default:
		w.Header().Set("Cache-Control", "no-cache")
	}
}

// servePage serves one HTML file of the static directory.
func (h *Handler) servePage(w http.ResponseWriter, r *http.Request, name string) {
	w.Header().Set("Cache-Control", "no-store")
	http.ServeFile(w, r, filepath.Join(h.staticDir, name))
}
