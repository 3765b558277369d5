package initializer

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/amirasaad/ledger/infra"
	infra_eventbus "github.com/amirasaad/ledger/infra/eventbus"
	"github.com/amirasaad/ledger/pkg/config"
	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testConfig() *config.App {
	return &config.App{
		Env: "test",
		Log: &config.Log{Format: "text", TimeFormat: time.RFC3339},
		DB: &config.DB{
			Url:             "file::memory:",
			ConnMaxLifetime: time.Hour,
			AutoMigrate:     true,
		},
		Redis: &config.Redis{},
	}
}

func TestInitializeDependencies_MemoryBus(t *testing.T) {
	deps, cleanup, err := InitializeDependencies(context.Background(), testConfig())
	require.NoError(t, err)
	defer cleanup()

	assert.NotNil(t, deps.Uow)
	assert.NotNil(t, deps.Logger)
	require.IsType(t, &infra_eventbus.MemoryEventBus{}, deps.EventBus)

	bus := deps.EventBus.(*infra_eventbus.MemoryEventBus)
	require.NoError(t, bus.Emit(context.Background(), account.TransactionRecorded{AccountID: 1}))
	assert.Empty(t, bus.Published(), "the default bus keeps no event history")
}

func TestInitializeDependencies_RedisFailureClosesDatabase(t *testing.T) {
	var opened *gorm.DB
	openDB = func(cnf *config.DB, appEnv string) (*gorm.DB, error) {
		db, err := infra.NewDBConnection(cnf, appEnv)
		opened = db
		return db, err
	}
	t.Cleanup(func() { openDB = infra.NewDBConnection })

	cfg := testConfig()
	cfg.Redis = &config.Redis{URL: "redis://127.0.0.1:1/0", Stream: "s", Group: "g"}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, cleanup, err := InitializeDependencies(ctx, cfg)
	require.Error(t, err)
	assert.Nil(t, cleanup)

	require.NotNil(t, opened)
	sqlDB, err := opened.DB()
	require.NoError(t, err)
	assert.Error(t, sqlDB.Ping(), "database must be closed")
}

func TestInitializeDependencies_BadDatabase(t *testing.T) {
	cfg := testConfig()
	cfg.DB.Url = "oracle://nope"
	_, _, err := InitializeDependencies(context.Background(), cfg)
	assert.Error(t, err)
}

func TestEventFactories(t *testing.T) {
	factory, ok := EventFactories()[account.TransactionRecordedEventType]
	require.True(t, ok)
	assert.Equal(t, account.TransactionRecordedEventType, factory().EventType())
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, &config.Log{Format: "json", Prefix: "[ledger]"})
	logger.Info("hello", "accountID", 7)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["msg"])
	assert.EqualValues(t, 7, line["accountID"])
}
