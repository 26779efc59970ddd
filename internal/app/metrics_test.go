package app_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dshills/layerkeys/internal/app"
	"github.com/dshills/layerkeys/internal/config"
)

func TestMetricsHandler(t *testing.T) {
	a, _ := newApp(t, config.Default())
	require.False(t, a.HandleSpec("Ctrl+P").IsError())

	reg, err := a.MetricsRegistry()
	require.NoError(t, err)
	require.NotNil(t, reg)

	srv := httptest.NewServer(app.MetricsHandler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `layerkeys_dispatches_total{action="layer.newPaint",status="ok"} 1`)
	require.Contains(t, string(body), "go_goroutines")

	health, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	health.Body.Close()
	require.Equal(t, http.StatusOK, health.StatusCode)
}

func TestMetricsRegistryDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Dispatcher.EnableMetrics = false
	a, _ := newApp(t, cfg)

	reg, err := a.MetricsRegistry()
	require.NoError(t, err)
	require.Nil(t, reg)
}
