package server

import (
	"context"
	"testing"
	"time"

	"StratLab/internal/service/ratelimit"
	xhttp "StratLab/pkg/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApp_RunContextShutsDown(t *testing.T) {
	reg := prometheus.NewRegistry()
	srv := xhttp.NewServer(nil,
		xhttp.WithHost("127.0.0.1"),
		xhttp.WithPort(0),
		xhttp.WithMetrics("/metrics", reg, reg),
		xhttp.WithTimeouts(time.Second, time.Second, time.Second),
	)
	app := New(srv, ratelimit.New(1, 1), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.RunContext(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
	assert.Equal(t, "127.0.0.1:0", srv.Addr())
}
