package database

import (
	"context"
	"testing"
	"time"

	"github.com/dialop/LightBnB/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(env string) *config.Config {
	obs := config.DefaultObservabilityConfig()
	obs.Environment = env

	return &config.Config{
		Primary: config.Primary{Env: env},
		Database: config.DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "vagrant",
			Password: "pa:ss@word",
			Name:     "lightbnb",
			SSLMode:  "disable",
		},
		Observability: obs,
	}
}

// newLazyPool creates a pool without connecting; pgxpool only dials on
// first use when MinConns is zero.
func newLazyPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	cfg, err := pgxpool.ParseConfig(testConfig("test").Database.DSN())
	require.NoError(t, err)

	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	require.NoError(t, err)

	return pool
}

func TestNewPoolConfig_ParsesDSN(t *testing.T) {
	log := zerolog.Nop()

	poolCfg, err := newPoolConfig(testConfig("test"), &log, nil)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", poolCfg.ConnConfig.Host)
	assert.Equal(t, uint16(5432), poolCfg.ConnConfig.Port)
	assert.Equal(t, "vagrant", poolCfg.ConnConfig.User)
	assert.Equal(t, "pa:ss@word", poolCfg.ConnConfig.Password)
	assert.Equal(t, "lightbnb", poolCfg.ConnConfig.Database)
}

func TestNewPoolConfig_AppliesPoolSettings(t *testing.T) {
	log := zerolog.Nop()
	cfg := testConfig("test")
	cfg.Database.MaxOpenConns = 20
	cfg.Database.MaxIdleConns = 2
	cfg.Database.ConnMaxLifetime = 300
	cfg.Database.ConnMaxIdleTime = 60

	poolCfg, err := newPoolConfig(cfg, &log, nil)
	require.NoError(t, err)

	assert.Equal(t, int32(20), poolCfg.MaxConns)
	assert.Equal(t, int32(2), poolCfg.MinConns)
	assert.Equal(t, 5*time.Minute, poolCfg.MaxConnLifetime)
	assert.Equal(t, time.Minute, poolCfg.MaxConnIdleTime)
}

func TestNewPoolConfig_ZeroSettingsKeepDefaults(t *testing.T) {
	log := zerolog.Nop()

	defaults, err := pgxpool.ParseConfig(testConfig("test").Database.DSN())
	require.NoError(t, err)

	poolCfg, err := newPoolConfig(testConfig("test"), &log, nil)
	require.NoError(t, err)

	assert.Equal(t, defaults.MaxConns, poolCfg.MaxConns)
	assert.Equal(t, defaults.MaxConnLifetime, poolCfg.MaxConnLifetime)
}

func TestBuildTracer_NothingEnabled(t *testing.T) {
	log := zerolog.Nop()
	cfg := testConfig("production")
	cfg.Observability.Logging.SlowQueryThreshold = 0

	assert.Nil(t, buildTracer(cfg, &log, nil))
}

func TestBuildTracer_SlowQueryOnly(t *testing.T) {
	log := zerolog.Nop()
	cfg := testConfig("production")

	tracer := buildTracer(cfg, &log, nil)

	slow, ok := tracer.(*slowQueryTracer)
	require.True(t, ok, "expected *slowQueryTracer, got %T", tracer)
	assert.Equal(t, 100*time.Millisecond, slow.threshold)
}

func TestBuildTracer_LocalChainsTracers(t *testing.T) {
	log := zerolog.New(nil).Level(zerolog.DebugLevel)
	cfg := testConfig("local")

	tracer := buildTracer(cfg, &log, nil)

	multi, ok := tracer.(*multiTracer)
	require.True(t, ok, "expected *multiTracer, got %T", tracer)
	require.Len(t, multi.tracers, 2)
	assert.IsType(t, &slowQueryTracer{}, multi.tracers[0])

	traceLog, ok := multi.tracers[1].(*tracelog.TraceLog)
	require.True(t, ok)
	assert.Equal(t, tracelog.LogLevelDebug, traceLog.LogLevel)
}

func TestWrapAndClose(t *testing.T) {
	pool := newLazyPool(t)

	db := Wrap(pool, nil)
	require.NotNil(t, db.log)
	assert.Same(t, pool, db.Pool)

	assert.NoError(t, db.Close())
}
