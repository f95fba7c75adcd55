package testutil

import (
	"io"
	"testing"
	"time"

	"github.com/cwmarketing/loyalty-go/internal/transport"
	"github.com/cwmarketing/loyalty-go/pkg/config"
	"github.com/cwmarketing/loyalty-go/pkg/logger"
)

// NewTransport builds a transport pointed at the fixture server with
// fast retry settings and a silent logger.
func NewTransport(t *testing.T, s *APIServer) *transport.Client {
	t.Helper()
	cfg := config.APIConfig{
		BaseURL:          s.URL,
		CompanyAccessKey: "test-access-key",
		LoyaltyID:        "test-loyalty-id",
		Timeout:          2 * time.Second,
		RetryMax:         1,
		RetryBaseDelay:   time.Millisecond,
		DefaultPageLimit: 100,
	}
	client, err := transport.New(cfg, NewLogger(), nil)
	if err != nil {
		t.Fatalf("transport.New: %v", err)
	}
	return client
}

// NewLogger returns a logger that discards all output.
func NewLogger() *logger.Logger {
	return logger.New(logger.Options{Output: io.Discard})
}
