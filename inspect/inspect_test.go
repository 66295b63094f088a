package inspect_test

import (
	"context"
	"encoding/json"
	htmltemplate "html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	texttemplate "text/template"

	"github.com/gin-gonic/gin"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/ioc/di"
	"github.com/kbukum/ioc/inspect"
	"github.com/kbukum/ioc/logger"
)

type Greeter interface{ Greet() string }

type Store interface{ Name() string }

type english struct{}

func (english) Greet() string { return "hello" }

type storeGreeter struct{ store Store }

func (g *storeGreeter) Greet() string { return "hello from " + g.store.Name() }

type fixedStore struct{}

func (fixedStore) Name() string { return "fixed" }

type errorBody struct {
	Error struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func newServer(t *testing.T, cfg inspect.Config) (*inspect.Server, *di.DefaultContainer) {
	t.Helper()
	cfg.ApplyDefaults()
	c := di.NewContainer(di.WithLogger(logger.Nop()))
	t.Cleanup(c.Reset)
	return inspect.New(cfg, "inspect-test", c, logger.Nop()), c
}

func get(t *testing.T, srv *inspect.Server, target string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func registerBlocked(t *testing.T, c di.Container) {
	t.Helper()
	impl := di.Implement[*storeGreeter](di.Ctor1(func(s Store) *storeGreeter { return &storeGreeter{store: s} }))
	require.NoError(t, c.Register(context.Background(), di.KeyOf[Greeter](), impl))
}

func TestHealthz(t *testing.T) {
	srv, c := newServer(t, inspect.Config{})

	rec := get(t, srv, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[map[string]any](t, rec)
	assert.Equal(t, "inspect-test", body["service"])
	assert.Equal(t, "up", body["status"])

	registerBlocked(t, c)
	rec = get(t, srv, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode[map[string]any](t, rec)
	assert.Equal(t, "degraded", body["status"])

	components, ok := body["components"].([]any)
	require.True(t, ok)
	require.Len(t, components, 1)
	container := components[0].(map[string]any)
	assert.Equal(t, "container", container["name"])
	assert.Contains(t, container["message"], "inspect_test.Greeter")
}

func TestVersion(t *testing.T) {
	srv, _ := newServer(t, inspect.Config{})

	rec := get(t, srv, "/version")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[struct {
		Data map[string]any `json:"data"`
	}](t, rec)
	assert.Equal(t, "dev", body.Data["version"])
	assert.Contains(t, body.Data, "build_date")
}

func TestBindings(t *testing.T) {
	srv, c := newServer(t, inspect.Config{})
	ctx := context.Background()

	require.NoError(t, di.RegisterValue[Store](c, fixedStore{}))
	require.NoError(t, c.RegisterLifecycle(ctx, di.KeyOf[Greeter](), di.Value[Greeter](english{}), di.Singleton))

	rec := get(t, srv, "/bindings")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[struct {
		Data []inspect.Binding `json:"data"`
	}](t, rec)
	require.Len(t, body.Data, 2)
	for _, b := range body.Data {
		assert.Equal(t, "singleton", b.Lifecycle)
		assert.True(t, b.Materialized)
	}
	assert.Equal(t, "inspect_test.Greeter", body.Data[0].Type)
	assert.Equal(t, "inspect_test.Store", body.Data[1].Type)
}

func TestDiagnose(t *testing.T) {
	srv, c := newServer(t, inspect.Config{})
	registerBlocked(t, c)

	t.Run("blocked", func(t *testing.T) {
		rec := get(t, srv, "/bindings/inspect_test.Greeter/diagnose")
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode[struct {
			Data inspect.Diagnosis `json:"data"`
		}](t, rec)
		assert.False(t, body.Data.Value)
		assert.Equal(t, -1, body.Data.Selected)
		assert.Empty(t, body.Data.Resolvable)
		require.Len(t, body.Data.Blocked, 1)
		require.Len(t, body.Data.Blocked[0].Missing, 1)
		assert.Equal(t, 0, body.Data.Blocked[0].Missing[0].Position)
		assert.Equal(t, "github.com/kbukum/ioc/inspect_test.Store", body.Data.Blocked[0].Missing[0].Key)
	})

	t.Run("resolvable after dependency", func(t *testing.T) {
		require.NoError(t, di.RegisterValue[Store](c, fixedStore{}))

		rec := get(t, srv, "/bindings/inspect_test.Greeter/diagnose")
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode[struct {
			Data inspect.Diagnosis `json:"data"`
		}](t, rec)
		assert.Equal(t, 0, body.Data.Selected)
		require.Len(t, body.Data.Resolvable, 1)
		assert.Equal(t, 1, body.Data.Resolvable[0].Arity)
		assert.Empty(t, body.Data.Blocked)
	})

	t.Run("value binding", func(t *testing.T) {
		rec := get(t, srv, "/bindings/inspect_test.Store/diagnose")
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode[struct {
			Data inspect.Diagnosis `json:"data"`
		}](t, rec)
		assert.True(t, body.Data.Value)
		assert.Equal(t, -1, body.Data.Selected)
	})

	t.Run("qualified key", func(t *testing.T) {
		key := url.PathEscape(di.KeyOf[Greeter]().String())
		rec := get(t, srv, "/bindings/"+key+"/diagnose")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		body := decode[struct {
			Data inspect.Diagnosis `json:"data"`
		}](t, rec)
		assert.Equal(t, "github.com/kbukum/ioc/inspect_test.Greeter", body.Data.Key)
	})

	t.Run("unknown key", func(t *testing.T) {
		rec := get(t, srv, "/bindings/nope.Missing/diagnose")
		require.Equal(t, http.StatusNotFound, rec.Code)

		body := decode[errorBody](t, rec)
		assert.Equal(t, "NOT_REGISTERED", body.Error.Code)
		assert.Equal(t, "nope.Missing", body.Error.Details["key"])
	})
}

func TestAmbiguousShortName(t *testing.T) {
	srv, c := newServer(t, inspect.Config{})
	// Both print as "template.FuncMap".
	require.NoError(t, di.RegisterValue(c, texttemplate.FuncMap{}))
	require.NoError(t, di.RegisterValue(c, htmltemplate.FuncMap{}))

	rec := get(t, srv, "/bindings/template.FuncMap/diagnose")
	require.Equal(t, http.StatusConflict, rec.Code)

	body := decode[errorBody](t, rec)
	assert.Equal(t, "AMBIGUOUS_KEY", body.Error.Code)
	assert.ElementsMatch(t, []any{"html/template.FuncMap", "text/template.FuncMap"}, body.Error.Details["candidates"])

	rec = get(t, srv, "/bindings/"+url.PathEscape("text/template.FuncMap")+"/diagnose")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	diag := decode[struct {
		Data inspect.Diagnosis `json:"data"`
	}](t, rec)
	assert.Equal(t, "text/template.FuncMap", diag.Data.Key)
	assert.True(t, diag.Data.Value)
}

func TestResolveDisabled(t *testing.T) {
	srv, c := newServer(t, inspect.Config{})
	require.NoError(t, di.RegisterValue[Store](c, fixedStore{}))

	rec := get(t, srv, "/bindings/inspect_test.Store/resolve")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResolve(t *testing.T) {
	srv, c := newServer(t, inspect.Config{AllowResolve: true})
	registerBlocked(t, c)

	rec := get(t, srv, "/bindings/inspect_test.Greeter/resolve")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	failure := decode[errorBody](t, rec)
	assert.Equal(t, "RESOLUTION_FAILED", failure.Error.Code)
	assert.Equal(t, "*inspect_test.storeGreeter", failure.Error.Details["target"])

	require.NoError(t, di.RegisterValue[Store](c, fixedStore{}))

	rec = get(t, srv, "/bindings/inspect_test.Greeter/resolve")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[struct {
		Data inspect.Resolution `json:"data"`
	}](t, rec)
	assert.Equal(t, "*inspect_test.storeGreeter", body.Data.Type)
	assert.Equal(t, "github.com/kbukum/ioc/inspect_test.Greeter", body.Data.Key)
}

func TestRequestID(t *testing.T) {
	srv, _ := newServer(t, inspect.Config{})

	rec := get(t, srv, "/version", inspect.HeaderRequestID, "req-42")
	assert.Equal(t, "req-42", rec.Header().Get(inspect.HeaderRequestID))

	rec = get(t, srv, "/version")
	assert.Len(t, rec.Header().Get(inspect.HeaderRequestID), 36)
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(inspect.Recovery(logger.Nop()), inspect.RequestID())
	engine.GET("/boom", func(*gin.Context) { panic("boom") })

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode[errorBody](t, rec)
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
}

func TestStartStop(t *testing.T) {
	c := di.NewContainer(di.WithLogger(logger.Nop()))
	// Port 0 picks a free port; ApplyDefaults would replace it.
	srv := inspect.New(inspect.Config{Host: "127.0.0.1", Port: 0}, "inspect-test", c, logger.Nop())
	ctx := context.Background()

	require.NoError(t, srv.Start(ctx))
	t.Cleanup(func() { _ = srv.Stop(ctx) })

	resp, err := http.Get("http://" + srv.Addr() + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMetrics(t *testing.T) {
	srv, c := newServer(t, inspect.Config{})
	ctx := context.Background()

	require.NoError(t, di.RegisterValue[Store](c, fixedStore{}))
	registerBlocked(t, c)
	require.NoError(t, c.RegisterLifecycle(ctx, di.KeyOf[fixedStore](), di.Value(fixedStore{}), di.Singleton))

	get(t, srv, "/bindings")
	get(t, srv, "/bindings")
	get(t, srv, "/bindings/nope.Missing/diagnose")

	expected := `
# HELP ioc_container_bindings Number of bindings in the container by lifecycle
# TYPE ioc_container_bindings gauge
ioc_container_bindings{container_id="` + c.ID() + `",lifecycle="scoped"} 1
ioc_container_bindings{container_id="` + c.ID() + `",lifecycle="singleton"} 2
`
	require.NoError(t, promtestutil.GatherAndCompare(srv.Metrics().Registry(), strings.NewReader(expected), "ioc_container_bindings"))

	n, err := promtestutil.GatherAndCount(srv.Metrics().Registry(), "ioc_inspect_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n, "one series per method, route and status")

	rec := get(t, srv, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `ioc_inspect_http_requests_total{method="GET",route="/bindings",status="200"} 2`)
	assert.Contains(t, rec.Body.String(), `ioc_container_singletons_materialized{container_id="`+c.ID()+`"} 2`)
}
