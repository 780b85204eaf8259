package utils_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/carrentpro/crp_backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPosthogClientDisabledWithoutAPIKey(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	client := utils.InitializePosthogClient("", logger)

	require.NotNil(t, client)
	assert.False(t, client.IsInitialized())

	// Both must be safe no-ops on a disabled client.
	client.Enqueue("user-1", "api_v1_rentals", map[string]any{"method": "POST"})
	client.Close()
}

func TestPosthogClientNilReceiverIsSafe(t *testing.T) {
	var client *utils.PosthogClientWrapper

	assert.False(t, client.IsInitialized())
	client.Enqueue("user-1", "api_v1_rentals", nil)
	client.Close()
}
