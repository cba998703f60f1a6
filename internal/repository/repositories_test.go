package repository

import (
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRepositories_SharesPool(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	logger := zerolog.Nop()
	repos := NewRepositories(mock, &logger)

	require.NotNil(t, repos.Users)
	require.NotNil(t, repos.Reservations)
	require.NotNil(t, repos.Properties)
	assert.Same(t, mock, repos.Users.pool)
	assert.Same(t, mock, repos.Reservations.pool)
	assert.Same(t, mock, repos.Properties.pool)
}

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, normalizeLimit(0))
	assert.Equal(t, DefaultLimit, normalizeLimit(-1))
	assert.Equal(t, 3, normalizeLimit(3))
}
