// Package api exposes a Solver over HTTP.
//
// Routes, relative to the group passed to RegisterRoutes:
//
//	GET  /ladder/health               readiness and lexicon size
//	GET  /ladder/path?start=&end=     shortest ladder
//	POST /ladder/path                 shortest ladder, PathRequest body
//	GET  /ladder/random               random connected pair of common words
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"crosswarped.com/ladder"
)

// Solver is the part of *ladder.Solver the handlers use.
type Solver interface {
	IsReady() bool
	Size() int
	WordLength() int
	Path(start, end string) (ladder.Path, error)
	RandomCommonWordPair(ctx context.Context) (ladder.Pair, error)
}

type PathRequest struct {
	Start string `json:"start" form:"start"`
	End   string `json:"end" form:"end"`
}

type PathResponse struct {
	RequestID string   `json:"request_id"`
	Found     bool     `json:"found"`
	Path      []string `json:"path"`
	Steps     int      `json:"steps"`
}

type RandomPairResponse struct {
	RequestID string   `json:"request_id"`
	One       string   `json:"one"`
	Two       string   `json:"two"`
	Path      []string `json:"path"`
	Steps     int      `json:"steps"`
}

type HealthResponse struct {
	Ready      bool `json:"ready"`
	Size       int  `json:"size"`
	WordLength int  `json:"word_length"`
}

type ErrorResponse struct {
	RequestID string `json:"request_id"`
	Error     string `json:"error"`
}

type Handlers struct {
	solver Solver

	// randomTimeout bounds the sampling loop of HandleRandom.
	randomTimeout time.Duration
}

func NewHandlers(solver Solver) *Handlers {
	return &Handlers{
		solver:        solver,
		randomTimeout: 5 * time.Second,
	}
}

// WithRandomTimeout sets how long HandleRandom may keep sampling pairs.
func (h *Handlers) WithRandomTimeout(d time.Duration) *Handlers {
	h.randomTimeout = d
	return h
}

// RegisterRoutes registers the ladder routes under rg.
func RegisterRoutes(rg *gin.RouterGroup, h *Handlers) {
	g := rg.Group("/ladder")
	g.GET("/health", h.HandleHealth)
	g.GET("/path", h.HandlePath)
	g.POST("/path", h.HandlePath)
	g.GET("/random", h.HandleRandom)
}

// NewRouter returns an engine serving the ladder routes under /v1 and Prometheus metrics at
// /metrics.
func NewRouter(h *Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	RegisterRoutes(router.Group("/v1"), h)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return router
}

// HandleHealth reports 200 once a lexicon is loaded and 503 before.
func (h *Handlers) HandleHealth(c *gin.Context) {
	resp := HealthResponse{
		Ready:      h.solver.IsReady(),
		Size:       h.solver.Size(),
		WordLength: h.solver.WordLength(),
	}
	status := http.StatusOK
	if !resp.Ready {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}

// HandlePath answers a ladder query from query parameters (GET) or a JSON body (POST). A pair
// with no ladder is a 200 with found=false.
func (h *Handlers) HandlePath(c *gin.Context) {
	requestID := uuid.NewString()

	var req PathRequest
	var err error
	if c.Request.Method == http.MethodPost {
		err = c.ShouldBindJSON(&req)
	} else {
		err = c.ShouldBindQuery(&req)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{RequestID: requestID, Error: "invalid request: " + err.Error()})
		return
	}

	p, err := h.solver.Path(req.Start, req.End)
	if err != nil {
		h.fail(c, requestID, err)
		return
	}
	c.JSON(http.StatusOK, PathResponse{
		RequestID: requestID,
		Found:     p.Found(),
		Path:      nonNil(p.Words()),
		Steps:     p.Steps(),
	})
}

// HandleRandom returns a random connected pair of common words.
func (h *Handlers) HandleRandom(c *gin.Context) {
	requestID := uuid.NewString()

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.randomTimeout)
	defer cancel()

	pair, err := h.solver.RandomCommonWordPair(ctx)
	if err != nil {
		h.fail(c, requestID, err)
		return
	}
	c.JSON(http.StatusOK, RandomPairResponse{
		RequestID: requestID,
		One:       pair.One,
		Two:       pair.Two,
		Path:      nonNil(pair.Path.Words()),
		Steps:     pair.Path.Steps(),
	})
}

func (h *Handlers) fail(c *gin.Context, requestID string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("Ladder request failed", slog.String("request_id", requestID), slog.String("error", err.Error()))
	}
	c.JSON(status, ErrorResponse{RequestID: requestID, Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ladder.ErrNotReady):
		return http.StatusServiceUnavailable
	case errors.Is(err, ladder.ErrInvalidParameter):
		return http.StatusBadRequest
	case errors.Is(err, ladder.ErrNoElements):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func nonNil(words []string) []string {
	if words == nil {
		return []string{}
	}
	return words
}
