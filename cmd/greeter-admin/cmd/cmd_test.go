package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sirosfoundation/go-hello-server/internal/api"
	"github.com/sirosfoundation/go-hello-server/internal/app"
	"github.com/sirosfoundation/go-hello-server/internal/server"
	"github.com/sirosfoundation/go-hello-server/pkg/config"
	"github.com/sirosfoundation/go-hello-server/pkg/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServers struct {
	admin  *httptest.Server
	public *httptest.Server
}

func newTestServers(t *testing.T) *testServers {
	t.Helper()

	collector := metrics.NewCollector()
	collector.Begin()
	collector.Observe(http.MethodGet, "/", http.StatusOK, time.Millisecond)

	s := &testServers{
		admin:  httptest.NewServer(server.NewAdminRouter(zap.NewNop(), "2.0.0", collector)),
		public: httptest.NewServer(app.New(config.Default(), zap.NewNop())),
	}
	t.Cleanup(func() {
		s.admin.Close()
		s.public.Close()
	})
	return s
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestStatusCommand_Table(t *testing.T) {
	s := newTestServers(t)

	out, err := run(t, "status", "--url", s.admin.URL, "--output", "table")
	require.NoError(t, err)

	assert.Contains(t, out, "SERVICE")
	assert.Contains(t, out, api.ServiceName)
	assert.Contains(t, out, "2.0.0")
	assert.Contains(t, out, "greeting")
}

func TestStatusCommand_JSON(t *testing.T) {
	s := newTestServers(t)

	out, err := run(t, "status", "--url", s.admin.URL, "--output", "json")
	require.NoError(t, err)

	assert.Contains(t, out, `"status": "ok"`)
	assert.Contains(t, out, `"version": "2.0.0"`)
}

func TestHealthCommand(t *testing.T) {
	s := newTestServers(t)

	out, err := run(t, "health", "--url", s.admin.URL)
	require.NoError(t, err)
	assert.Equal(t, "ok\n", out)
}

func TestHealthCommand_Unreachable(t *testing.T) {
	s := newTestServers(t)
	url := s.admin.URL
	s.admin.Close()

	_, err := run(t, "health", "--url", url)
	assert.Error(t, err)
}

func TestMetricsCommand(t *testing.T) {
	s := newTestServers(t)

	out, err := run(t, "metrics", "--url", s.admin.URL, "--prefix", "greeter_http_requests_total")
	require.NoError(t, err)

	assert.Equal(t, `greeter_http_requests_total{method="GET",route="/",status="200"} 1`, strings.TrimSpace(out))
}

func TestGreetCommand(t *testing.T) {
	s := newTestServers(t)

	out, err := run(t, "greet", "--public-url", s.public.URL)
	require.NoError(t, err)
	assert.Equal(t, "Hello World\n", out)
}

func TestGreetCommand_WrongServer(t *testing.T) {
	s := newTestServers(t)

	// The admin listener has no public route
	_, err := run(t, "greet", "--public-url", s.admin.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestClient_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/fail" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("fine"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL + "/")

	data, err := client.Get("/ok")
	require.NoError(t, err)
	assert.Equal(t, "fine", string(data))

	_, err = client.Get("/fail")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API error (500): boom")
}

func TestPrintTable(t *testing.T) {
	var out bytes.Buffer
	printTable(&out, []string{"A", "LONGER"}, [][]string{{"value", "x"}})

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "A      LONGER  ", lines[0])
	assert.Equal(t, "-----  ------  ", lines[1])
	assert.Equal(t, "value  x       ", lines[2])
}
