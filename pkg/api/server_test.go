package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cortexkv/kvdb/pkg/store"
)

func newTestServer(t *testing.T) (http.Handler, *store.Engine) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "active.kvdb")
	engine := store.New(path)
	assert.NoError(t, engine.Open())
	t.Cleanup(func() { _ = engine.Close() })

	router := NewRouter(engine, ServerConfig{Port: 0, APIKey: "secret"})
	return router, engine
}

func authed(req *http.Request) *http.Request {
	req.Header.Set("X-API-Key", "secret")
	return req
}

func TestHealth_RequiresAPIKey(t *testing.T) {
	router, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHealth_OK(t *testing.T) {
	router, _ := newTestServer(t)

	req := authed(httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestPutGetDelete_RoundTrip(t *testing.T) {
	router, _ := newTestServer(t)

	putReq := authed(httptest.NewRequest(http.MethodPut, "/api/v1/kv/mykey", bytes.NewReader([]byte("myvalue"))))
	putRec := httptest.NewRecorder()
	router.ServeHTTP(putRec, putReq)
	assert.Equal(t, http.StatusOK, putRec.Code)

	getReq := authed(httptest.NewRequest(http.MethodGet, "/api/v1/kv/mykey", nil))
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, getReq)
	assert.Equal(t, http.StatusOK, getRec.Code)
	assert.Equal(t, "myvalue", getRec.Body.String())

	delReq := authed(httptest.NewRequest(http.MethodDelete, "/api/v1/kv/mykey", nil))
	delRec := httptest.NewRecorder()
	router.ServeHTTP(delRec, delReq)
	assert.Equal(t, http.StatusOK, delRec.Code)

	getReq2 := authed(httptest.NewRequest(http.MethodGet, "/api/v1/kv/mykey", nil))
	getRec2 := httptest.NewRecorder()
	router.ServeHTTP(getRec2, getReq2)
	assert.Equal(t, http.StatusNotFound, getRec2.Code)
}

func TestPut_InsertModeRejectsExistingKey(t *testing.T) {
	router, _ := newTestServer(t)

	first := authed(httptest.NewRequest(http.MethodPut, "/api/v1/kv/k?mode=insert", bytes.NewReader([]byte("v1"))))
	firstRec := httptest.NewRecorder()
	router.ServeHTTP(firstRec, first)
	assert.Equal(t, http.StatusOK, firstRec.Code)
	assert.Contains(t, firstRec.Body.String(), `"changed":true`)

	second := authed(httptest.NewRequest(http.MethodPut, "/api/v1/kv/k?mode=insert", bytes.NewReader([]byte("v2"))))
	secondRec := httptest.NewRecorder()
	router.ServeHTTP(secondRec, second)
	assert.Equal(t, http.StatusOK, secondRec.Code)
	assert.Contains(t, secondRec.Body.String(), `"changed":false`)

	getReq := authed(httptest.NewRequest(http.MethodGet, "/api/v1/kv/k", nil))
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, getReq)
	assert.Equal(t, "v1", getRec.Body.String())
}

func TestStats_ReportsKeyCount(t *testing.T) {
	router, _ := newTestServer(t)

	put := authed(httptest.NewRequest(http.MethodPut, "/api/v1/kv/a", bytes.NewReader([]byte("1"))))
	router.ServeHTTP(httptest.NewRecorder(), put)

	statsReq := authed(httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil))
	statsRec := httptest.NewRecorder()
	router.ServeHTTP(statsRec, statsReq)

	assert.Equal(t, http.StatusOK, statsRec.Code)
	assert.Contains(t, statsRec.Body.String(), `"keys":1`)
}

func TestMetricsEndpoint_Unauthenticated(t *testing.T) {
	router, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
