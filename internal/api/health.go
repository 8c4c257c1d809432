// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taibuivan/weavepost/internal/platform/ctxutil"
	"github.com/taibuivan/weavepost/internal/platform/respond"
)

// HealthDependencies holds the injectable dependency checkers for the /ready endpoint.
type HealthDependencies struct {
	// StoreName labels the store check ("weaviate", "postgres" or "memory").
	StoreName string

	// CheckStore pings the configured store. A failure makes the service unready.
	CheckStore func(ctx context.Context) error

	// CheckCache pings Redis. Nil when the feed cache is disabled.
	// A failure only degrades the service: reads fall back to the store.
	CheckCache func(ctx context.Context) error
}

type healthHandler struct {
	dependencies HealthDependencies
}

// checkResult is one entry of the readiness report. Causes are logged, not returned.
type checkResult struct {
	Name string `json:"name"`
	IsOK bool   `json:"ok"`
}

// NewHealthHandlers creates the /health and /ready http.HandlerFuncs.
func NewHealthHandlers(deps HealthDependencies) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{dependencies: deps}
	return handler.liveness, handler.readiness
}

// liveness handles GET /health (liveness check).
func (handler *healthHandler) liveness(writer http.ResponseWriter, _ *http.Request) {
	respond.OK(writer, map[string]string{"status": "ok"})
}

// readiness handles GET /ready (readiness check).
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	results := make([]checkResult, 0, 2)

	storeOK := handler.run(ctx, handler.dependencies.StoreName, handler.dependencies.CheckStore, &results)
	cacheOK := handler.run(ctx, "redis", handler.dependencies.CheckCache, &results)

	status, httpStatus := "ready", http.StatusOK
	switch {
	case !storeOK:
		status, httpStatus = "unavailable", http.StatusServiceUnavailable
	case !cacheOK:
		status = "degraded"
	}

	respond.JSON(writer, httpStatus, map[string]any{
		"status": status,
		"checks": results,
	})
}

// run executes one optional check and appends its result.
func (handler *healthHandler) run(ctx context.Context, name string, check func(context.Context) error, results *[]checkResult) bool {
	if check == nil {
		return true
	}

	result := checkResult{Name: name, IsOK: true}
	if err := check(ctx); err != nil {
		result.IsOK = false
		ctxutil.GetLogger(ctx).ErrorContext(ctx, "readiness_check_failed", slog.String("dependency", name), slog.Any("error", err))
	}
	*results = append(*results, result)
	return result.IsOK
}
