package api

import (
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crosswarped.com/ladder"
	"crosswarped.com/ladder/pkg/source"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(t *testing.T, load bool) *gin.Engine {
	t.Helper()
	solver := ladder.CreateSolver(rand.New(rand.NewPCG(1, 2)), ladder.SolverParams{})
	if load {
		err := solver.Load(t.Context(),
			source.File("../../testdata/4-letter.json"),
			source.File("../../testdata/common.txt"))
		require.NoError(t, err)
	}
	return NewRouter(NewHandlers(solver))
}

func serve(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandlePath(t *testing.T) {
	router := newRouter(t, true)

	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		wantStatus int
		wantFound  bool
		wantPath   []string
	}{
		{"get ladder", http.MethodGet, "/v1/ladder/path?start=cold&end=warm", "", http.StatusOK, true,
			[]string{"cold", "cord", "card", "ward", "warm"}},
		{"post ladder", http.MethodPost, "/v1/ladder/path", `{"start":"warm","end":"cold"}`, http.StatusOK, true,
			[]string{"warm", "ward", "card", "cord", "cold"}},
		{"no ladder", http.MethodGet, "/v1/ladder/path?start=cold&end=cave", "", http.StatusOK, false, []string{}},
		{"missing word", http.MethodGet, "/v1/ladder/path?start=cold", "", http.StatusOK, false, []string{}},
		{"wrong length", http.MethodGet, "/v1/ladder/path?start=colder&end=warm", "", http.StatusBadRequest, false, nil},
		{"bad body", http.MethodPost, "/v1/ladder/path", `{"start":`, http.StatusBadRequest, false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(t, router, tt.method, tt.target, tt.body)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			if tt.wantStatus != http.StatusOK {
				var resp ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.NotEmpty(t, resp.Error)
				assert.NotEmpty(t, resp.RequestID)
				return
			}

			var resp PathResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantFound, resp.Found)
			assert.Equal(t, tt.wantPath, resp.Path)
			assert.Equal(t, max(len(tt.wantPath)-1, 0), resp.Steps)
			assert.NotEmpty(t, resp.RequestID)
		})
	}
}

func TestHandlePath_NotReady(t *testing.T) {
	router := newRouter(t, false)

	w := serve(t, router, http.MethodGet, "/v1/ladder/path?start=cold&end=warm", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "not-ready")

	w = serve(t, router, http.MethodGet, "/v1/ladder/random", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHandleHealth(t *testing.T) {
	w := serve(t, newRouter(t, false), http.MethodGet, "/v1/ladder/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = serve(t, newRouter(t, true), http.MethodGet, "/v1/ladder/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, HealthResponse{Ready: true, Size: 11, WordLength: 4}, resp)
}

func TestHandleRandom(t *testing.T) {
	w := serve(t, newRouter(t, true), http.MethodGet, "/v1/ladder/random", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp RandomPairResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Path)
	assert.Equal(t, resp.One, resp.Path[0])
	assert.Equal(t, resp.Two, resp.Path[len(resp.Path)-1])
	assert.Equal(t, len(resp.Path)-1, resp.Steps)
}

func TestHandleRandom_Timeout(t *testing.T) {
	solver := ladder.CreateSolver(rand.New(rand.NewPCG(1, 2)), ladder.SolverParams{})
	require.NoError(t, solver.Load(t.Context(),
		source.File("../../testdata/4-letter.json"),
		source.File("../../testdata/common.txt")))
	router := NewRouter(NewHandlers(solver).WithRandomTimeout(time.Nanosecond))

	w := serve(t, router, http.MethodGet, "/v1/ladder/random", "")
	assert.Equal(t, http.StatusGatewayTimeout, w.Code, w.Body.String())
}

func TestMetrics(t *testing.T) {
	router := newRouter(t, true)
	serve(t, router, http.MethodGet, "/v1/ladder/path?start=cold&end=warm", "")

	w := serve(t, router, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ladder_path_queries_total")
}
