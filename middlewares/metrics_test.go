package middlewares_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ryob/internal"
	"github.com/dmitrymomot/ryob/middlewares"
)

func TestMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	app := internal.New(
		internal.WithMiddleware(middlewares.Metrics(middlewares.NewHTTPMetrics(reg))),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.GET("/topics/{id}", func(c internal.Context) error {
				return c.String(http.StatusOK, c.Param("id"))
			})
		})),
	)

	get(app, "/topics/1")
	get(app, "/topics/2")
	get(app, "/nowhere")

	expected := `
# HELP ryob_http_requests_total Total number of HTTP requests.
# TYPE ryob_http_requests_total counter
ryob_http_requests_total{method="GET",route="/topics/{id}",status="200"} 2
ryob_http_requests_total{method="GET",route="unmatched",status="404"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "ryob_http_requests_total"))

	n, err := testutil.GatherAndCount(reg, "ryob_http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
