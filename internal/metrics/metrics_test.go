package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordMutation(t *testing.T) {
	m := New()
	m.RecordMutation("create", OutcomeSuccess)
	m.RecordMutation("create", OutcomeSuccess)
	m.RecordMutation("create", OutcomeConflict)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.productMutations.WithLabelValues("create", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.productMutations.WithLabelValues("create", OutcomeConflict)))

	var nilMetrics *Metrics
	assert.NotPanics(t, func() { nilMetrics.RecordMutation("delete", OutcomeError) })
}

func TestMiddlewareAndHandler(t *testing.T) {
	m := New()
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/metrics", m.Handler())
	app.Get("/products/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/products/7", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/products/:id", "204")))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "http_requests_total")
	assert.Contains(t, string(body), `route="/products/:id"`)
}
