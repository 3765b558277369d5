// Package testutils builds fully wired ledger apps backed by in-memory
// SQLite for HTTP tests.
package testutils

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirasaad/ledger/infra"
	infraeventbus "github.com/amirasaad/ledger/infra/eventbus"
	infrarepo "github.com/amirasaad/ledger/infra/repository"
	"github.com/amirasaad/ledger/pkg/app"
	"github.com/amirasaad/ledger/pkg/config"
	"github.com/amirasaad/ledger/webapi"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestConfig returns a configuration suitable for tests.
func TestConfig() *config.App {
	return &config.App{
		Env:       "test",
		Server:    &config.Server{Scheme: "http", Host: "localhost", Port: 3000},
		Log:       &config.Log{Format: "text"},
		DB:        &config.DB{Url: "file:" + uuid.NewString() + "?mode=memory&cache=shared", ConnMaxLifetime: time.Hour, AutoMigrate: true},
		Auth:      &config.Auth{Strategy: "none", Jwt: &config.Jwt{Expiry: time.Hour}},
		Redis:     &config.Redis{},
		RateLimit: &config.RateLimit{MaxRequests: 1000, Window: time.Second},
		Ledger:    &config.Ledger{},
	}
}

// TestApp bundles the pieces a handler test needs.
type TestApp struct {
	Fiber *fiber.App
	App   *app.App
	DB    *gorm.DB
	Bus   *infraeventbus.MemoryEventBus
}

// NewTestApp wires the ledger against a fresh in-memory database. cfg may be
// nil, in which case TestConfig is used.
func NewTestApp(t testing.TB, cfg *config.App) *TestApp {
	t.Helper()
	if cfg == nil {
		cfg = TestConfig()
	}
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	bus := infraeventbus.NewWithMemory(slog.Default(), infraeventbus.WithHistory())
	a := app.New(&app.Deps{
		Uow:      infrarepo.NewUoW(db),
		EventBus: bus,
		Logger:   slog.Default(),
	}, cfg)
	return &TestApp{Fiber: webapi.SetupApp(a), App: a, DB: db, Bus: bus}
}

// MakeRequest is a helper for making HTTP requests in tests.
func (ta *TestApp) MakeRequest(t testing.TB, method, path, body, token string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := ta.Fiber.Test(req, -1)
	require.NoError(t, err)
	return resp
}
