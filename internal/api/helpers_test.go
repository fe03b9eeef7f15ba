// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/allocarte/internal/auth"
	"github.com/tomtom215/allocarte/internal/authz"
	"github.com/tomtom215/allocarte/internal/config"
	"github.com/tomtom215/allocarte/internal/dataset"
	"github.com/tomtom215/allocarte/internal/logging"
	ws "github.com/tomtom215/allocarte/internal/websocket"
)

//nolint:gochecknoinits // init ensures consistent logging for tests
func init() {
	logging.Init(logging.Config{
		Level:  "info",
		Format: "console",
		Output: io.Discard,
	})
}

const (
	payloadV1 = `[
		{"annee_mois":"2023-01","region":"Bretagne","departement":"29","nb_alloc":100,"depense":1000},
		{"annee_mois":"2023-01","region":"Normandie","departement":"14","nb_alloc":300,"depense":4000},
		{"annee_mois":"2023-02","region":"Normandie","departement":"50","nb_alloc":200,"depense":3000}
	]`
	payloadV2 = `[
		{"annee_mois":"2024-01","region":"Bretagne","departement":"35","nb_alloc":150,"depense":1500},
		{"annee_mois":"2024-01","region":"Normandie","departement":"14","nb_alloc":310,"depense":4100},
		{"annee_mois":"2024-01","region":"Occitanie","departement":"31","nb_alloc":500,"depense":9000}
	]`
)

// Page bodies written to the static directory.
var pages = map[string]string{
	"login.html":           "<h1>login</h1>",
	"dashboard_admin.html": "<h1>admin dashboard</h1>",
	"dashboard_user.html":  "<h1>user dashboard</h1>",
	"indicateurs.html":     "<h1>indicateurs</h1>",
	"style.css":            "body{}",
}

type fakeAccounts struct {
	accounts map[string]*auth.Account
	err      error
}

func (f *fakeAccounts) FindAccount(_ context.Context, username string) (*auth.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	account, ok := f.accounts[username]
	if !ok {
		return nil, auth.ErrAccountNotFound
	}
	return account, nil
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

type testEnv struct {
	t           *testing.T
	router      http.Handler
	handler     *Handler
	loader      *dataset.Loader
	engines     *EngineRegistry
	accounts    *fakeAccounts
	hub         *ws.Hub
	datasetPath string
}

type envOptions struct {
	loaded    bool
	rateLimit bool
	db        Pinger
}

func newTestEnv(t *testing.T, opts envOptions) *testEnv {
	t.Helper()

	staticDir := t.TempDir()
	for name, body := range pages {
		if err := os.WriteFile(filepath.Join(staticDir, name), []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	datasetPath := filepath.Join(t.TempDir(), "evolution_indicateurs_cles_ac.json")
	if err := os.WriteFile(datasetPath, []byte(payloadV1), 0o600); err != nil {
		t.Fatal(err)
	}
	loader := dataset.NewLoader(dataset.FileSource{Path: datasetPath})
	t.Cleanup(func() { _ = loader.Close() })
	if opts.loaded {
		if err := loader.Load(context.Background()); err != nil {
			t.Fatalf("Load: %v", err)
		}
	}

	adminHash, err := auth.HashPassword("admin1234")
	if err != nil {
		t.Fatal(err)
	}
	userHash, err := auth.HashPassword("user1234")
	if err != nil {
		t.Fatal(err)
	}
	accounts := &fakeAccounts{accounts: map[string]*auth.Account{
		"admin": {ID: "1", Username: "admin", PasswordHash: adminHash, Role: auth.RoleAdmin},
		"user":  {ID: "2", Username: "user", PasswordHash: userHash, Role: auth.RoleUser},
		"alice": {ID: "3", Username: "alice", PasswordHash: userHash, Role: auth.RoleUser},
	}}

	cfg := &config.Config{
		Security: config.SecurityConfig{
			SessionTimeout:    time.Hour,
			RateLimitReqs:     3,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: !opts.rateLimit,
			CORSOrigins:       []string{"http://allowed.example"},
			EngineCacheSize:   16,
		},
		Web: config.WebConfig{StaticDir: staticDir},
	}

	enforcer, err := authz.NewEnforcer(nil)
	if err != nil {
		t.Fatal(err)
	}

	hub := ws.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = hub.RunWithContext(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	db := opts.db
	if db == nil {
		db = fakePinger{}
	}

	engines := NewEngineRegistry(loader, cfg.Security.EngineCacheSize, cfg.Security.SessionTimeout)
	handler := NewHandler(HandlerDeps{
		Config:   cfg,
		DB:       db,
		Login:    auth.NewAuthenticator(accounts),
		Sessions: auth.NewStoreSessions(auth.NewMemorySessionStore(), auth.DefaultCookieConfig()),
		Enforcer: enforcer,
		Loader:   loader,
		Engines:  engines,
		Hub:      hub,
	})
	chiMw := NewChiMiddlewareFromSecurity(cfg.Security.CORSOrigins, cfg.Security.RateLimitReqs,
		cfg.Security.RateLimitWindow, cfg.Security.RateLimitDisabled)

	return &testEnv{
		t:           t,
		router:      NewRouter(handler, chiMw).SetupChi(),
		handler:     handler,
		loader:      loader,
		engines:     engines,
		accounts:    accounts,
		hub:         hub,
		datasetPath: datasetPath,
	}
}

// do sends one request through the router.
func (e *testEnv) do(method, target string, body io.Reader, contentType string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	e.t.Helper()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) postForm(username, password string) *httptest.ResponseRecorder {
	e.t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	return e.do(http.MethodPost, "/auth", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", nil)
}

// login logs in and returns the session cookies.
func (e *testEnv) login(username, password string) []*http.Cookie {
	e.t.Helper()
	rec := e.postForm(username, password)
	if rec.Code != http.StatusFound {
		e.t.Fatalf("login %s: status = %d, body = %q", username, rec.Code, rec.Body.String())
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		e.t.Fatalf("login %s: no session cookie", username)
	}
	return cookies
}

// postJSON sends a JSON body with the session cookies.
func (e *testEnv) postJSON(target string, v interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	e.t.Helper()
	body, err := json.Marshal(v)
	if err != nil {
		e.t.Fatal(err)
	}
	return e.do(http.MethodPost, target, strings.NewReader(string(body)), "application/json", cookies)
}

// writeDataset replaces the dataset file.
func (e *testEnv) writeDataset(payload string) {
	e.t.Helper()
	if err := os.WriteFile(e.datasetPath, []byte(payload), 0o600); err != nil {
		e.t.Fatal(err)
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %q)", err, rec.Body.String())
	}
	return env
}

type filterView struct {
	Dimension string   `json:"dimension"`
	AllLabel  string   `json:"all_label"`
	Options   []string `json:"options"`
	Selected  []string `json:"selected"`
}

type filtersData struct {
	Filters []filterView              `json:"filters"`
	Outputs map[string]json.RawMessage `json:"outputs"`
}

func decodeFilters(t *testing.T, rec *httptest.ResponseRecorder) filtersData {
	t.Helper()
	env := decodeEnvelope(t, rec)
	if !env.Success {
		t.Fatalf("request failed: %+v", env.Error)
	}
	var data filtersData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode filters: %v", err)
	}
	return data
}

func (d filtersData) view(dim string) filterView {
	for _, f := range d.Filters {
		if f.Dimension == dim {
			return f
		}
	}
	return filterView{}
}

var errStore = errors.New("connection refused")
