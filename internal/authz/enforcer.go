// Allocarte - Unemployment Insurance Indicators Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/allocarte

// Package authz decides what each role may see and do, using Casbin RBAC.
//
// Subjects are roles ("admin", "user"). Objects are request paths or page
// objects under /pages/, matched with keyMatch2. The admin role inherits
// every user permission.
package authz

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	fileadapter "github.com/casbin/casbin/v2/persist/file-adapter"

	"github.com/tomtom215/allocarte/internal/cache"
	"github.com/tomtom215/allocarte/internal/metrics"
)

//go:embed model.conf
var embeddedModel string

//go:embed policy.csv
var embeddedPolicy string

// Page objects.
const (
	PageDashboardAdmin = "/pages/dashboard_admin"
	PageDashboardUser  = "/pages/dashboard_user"

	// ActionView is the action for page objects.
	ActionView = "view"
)

// Dashboard page files served per role.
const (
	DashboardAdminFile = "dashboard_admin.html"
	DashboardUserFile  = "dashboard_user.html"
)

// EnforcerConfig holds configuration for the Casbin enforcer.
type EnforcerConfig struct {
	// ModelPath is the path to the Casbin model file.
	// If empty, uses embedded model.
	ModelPath string

	// PolicyPath is the path to the Casbin policy file.
	// If empty, uses embedded policy.
	PolicyPath string

	// CacheSize bounds the decision cache. Zero disables caching.
	CacheSize int

	// CacheTTL is how long to cache decisions.
	CacheTTL time.Duration
}

// DefaultEnforcerConfig returns default configuration.
func DefaultEnforcerConfig() *EnforcerConfig {
	return &EnforcerConfig{
		CacheSize: 1024,
		CacheTTL:  5 * time.Minute,
	}
}

// Enforcer wraps the Casbin enforcer with a decision cache.
type Enforcer struct {
	config   *EnforcerConfig
	enforcer *casbin.SyncedEnforcer

	mu    sync.RWMutex
	cache *cache.LRU[string, bool]
}

// NewEnforcer creates a new authorization enforcer.
func NewEnforcer(config *EnforcerConfig) (*Enforcer, error) {
	if config == nil {
		config = DefaultEnforcerConfig()
	}

	var m model.Model
	var err error
	if config.ModelPath != "" && fileExists(config.ModelPath) {
		m, err = model.NewModelFromFile(config.ModelPath)
	} else {
		m, err = model.NewModelFromString(embeddedModel)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load casbin model: %w", err)
	}

	var enforcer *casbin.SyncedEnforcer
	if config.PolicyPath != "" && fileExists(config.PolicyPath) {
		enforcer, err = casbin.NewSyncedEnforcer(m, fileadapter.NewAdapter(config.PolicyPath))
	} else {
		enforcer, err = casbin.NewSyncedEnforcer(m)
		if err == nil {
			err = loadEmbeddedPolicy(enforcer, embeddedPolicy)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	e := &Enforcer{config: config, enforcer: enforcer}
	e.resetCache()
	return e, nil
}

func (e *Enforcer) resetCache() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.config.CacheSize <= 0 {
		e.cache = nil
		return
	}
	e.cache = cache.NewLRU[string, bool](e.config.CacheSize, e.config.CacheTTL)
}

func (e *Enforcer) decisions() *cache.LRU[string, bool] {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cache
}

// loadEmbeddedPolicy parses and loads the embedded policy CSV.
func loadEmbeddedPolicy(enforcer *casbin.SyncedEnforcer, policy string) error {
	for _, line := range strings.Split(policy, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		ptype, rule := parts[0], parts[1:]

		switch ptype {
		case "p":
			if len(rule) < 3 {
				return fmt.Errorf("malformed policy line %q", line)
			}
			if _, err := enforcer.AddPolicy(rule[0], rule[1], rule[2]); err != nil {
				return fmt.Errorf("failed to add policy %v: %w", rule, err)
			}
		case "g":
			if len(rule) < 2 {
				return fmt.Errorf("malformed grouping line %q", line)
			}
			if _, err := enforcer.AddGroupingPolicy(rule[0], rule[1]); err != nil {
				return fmt.Errorf("failed to add grouping policy %v: %w", rule, err)
			}
		}
	}
	return nil
}

// Enforce checks if role can perform action on object.
func (e *Enforcer) Enforce(role, object, action string) (bool, error) {
	key := role + "\x00" + object + "\x00" + action
	decisions := e.decisions()
	if decisions != nil {
		if allowed, ok := decisions.Get(key); ok {
			metrics.RecordAuthzDecision(role, action, allowed)
			return allowed, nil
		}
	}

	allowed, err := e.enforcer.Enforce(role, object, action)
	if err != nil {
		return false, fmt.Errorf("enforcement failed: %w", err)
	}
	if decisions != nil {
		decisions.Add(key, allowed)
	}
	metrics.RecordAuthzDecision(role, action, allowed)
	return allowed, nil
}

// DashboardPage returns the dashboard file for role: the admin page when the
// role may view it, the user page otherwise.
func (e *Enforcer) DashboardPage(role string) string {
	if ok, err := e.Enforce(role, PageDashboardAdmin, ActionView); err == nil && ok {
		return DashboardAdminFile
	}
	return DashboardUserFile
}

// GetPolicy returns all policy rules.
func (e *Enforcer) GetPolicy() [][]string {
	//nolint:errcheck // GetPolicy only fails if enforcer is nil, which is a programming error
	policies, _ := e.enforcer.GetPolicy()
	return policies
}

// GetRolesForUser returns the roles role inherits.
func (e *Enforcer) GetRolesForUser(role string) ([]string, error) {
	return e.enforcer.GetRolesForUser(role)
}

// ErrNoAdapter is returned by LoadPolicy when the embedded policy is in use.
var ErrNoAdapter = errors.New("no policy adapter configured; using embedded policy")

// LoadPolicy reloads the policy file and drops cached decisions.
func (e *Enforcer) LoadPolicy() error {
	if e.config.PolicyPath == "" {
		return ErrNoAdapter
	}
	if err := e.enforcer.LoadPolicy(); err != nil {
		return err
	}
	e.resetCache()
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
