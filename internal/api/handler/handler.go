// Package handler provides HTTP handlers for all API endpoints. The stats
// endpoint runs the aggregation engine directly against the cached nflverse
// assets; Postgres is only needed for the health probe.
package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/LearnThinkCreate/nfl-calculate-stats/internal/api/respond"
	"github.com/LearnThinkCreate/nfl-calculate-stats/internal/config"
	"github.com/LearnThinkCreate/nfl-calculate-stats/internal/db"
	"github.com/LearnThinkCreate/nfl-calculate-stats/internal/pbp"
	"github.com/LearnThinkCreate/nfl-calculate-stats/internal/stats"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	loader stats.Loader
	pool   *db.Pool // nil when no database is configured
	cfg    *config.Config
	logger *slog.Logger
}

// New creates a Handler with shared dependencies.
func New(loader stats.Loader, pool *db.Pool, cfg *config.Config, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{loader: loader, pool: pool, cfg: cfg, logger: logger}
}

// Root serves API info at /.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "NFL Stats API",
		"version": "1.0.0",
		"status":  "running",
	})
}

// HealthCheck returns basic health status.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if h.pool == nil {
		respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
			"status":    "healthy",
			"database":  "not configured",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	if err := h.pool.HealthCheck(r.Context()); err != nil {
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// GetStats computes aggregated statistics for the requested seasons.
//
// Query parameters: seasons (comma-separated years), summary_level
// (week|season), stat_type (player|team), season_type (REG|POST|ALL).
// All are optional; defaults mirror the engine's.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	params, err := parseStatParams(r)
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_PARAMETER", err.Error())
		return
	}

	rows, err := stats.Calculate(r.Context(), h.loader, params, h.logger)
	if err != nil {
		h.writeStatsError(w, err)
		return
	}

	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"data":  rows,
		"count": len(rows),
	})
}

func (h *Handler) writeStatsError(w http.ResponseWriter, err error) {
	var perr *stats.InvalidParameterError
	if errors.As(err, &perr) {
		respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_PARAMETER", perr.Error(),
			"allowed: "+perr.Allowed)
		return
	}
	var nderr *stats.NoDataError
	if errors.As(err, &nderr) {
		respond.WriteError(w, http.StatusNotFound, "NO_DATA", nderr.Error())
		return
	}
	var serr *pbp.SchemaError
	var derr *pbp.DataIntegrityError
	if errors.As(err, &serr) || errors.As(err, &derr) {
		respond.WriteError(w, http.StatusBadGateway, "UPSTREAM_DATA", err.Error())
		return
	}
	h.logger.Error("stats calculation failed", "error", err)
	respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "stats calculation failed")
}

func parseStatParams(r *http.Request) (stats.Params, error) {
	q := r.URL.Query()
	p := stats.Params{
		SummaryLevel: stats.SummaryLevel(q.Get("summary_level")),
		StatType:     stats.StatType(q.Get("stat_type")),
		SeasonType:   stats.SeasonType(strings.ToUpper(q.Get("season_type"))),
	}
	if raw := q.Get("seasons"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			season, err := strconv.Atoi(part)
			if err != nil {
				return stats.Params{}, &stats.InvalidParameterError{
					Param: "seasons", Value: part, Allowed: "comma-separated years",
				}
			}
			p.Seasons = append(p.Seasons, season)
		}
	}
	return p, nil
}
