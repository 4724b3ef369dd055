package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"foodops-server/internal/infra/httpserver"
	"foodops-server/internal/stats/httpapi/internal"
	"foodops-server/internal/stats/usecases"
)

func NewStatsController(statsService usecases.StatsService) *StatsController {
	return &StatsController{
		statsService: statsService,
	}
}

var _ httpserver.Controller = &StatsController{}

type StatsController struct {
	statsService usecases.StatsService
}

func (c *StatsController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /v1/incoming-stats", c.getIncomingStats())
}

func (c *StatsController) getIncomingStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		month, err := intQueryParam(r, "month", 0)
		if err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, "month must be a number")
			return
		}

		year, err := intQueryParam(r, "year", 0)
		if err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, "year must be a number")
			return
		}

		unit := httpserver.GetQueryParam(r, "unit")

		stats, err := c.statsService.GetIncomingStats(r.Context(), month, year, unit)
		if err != nil {
			if errors.Is(err, usecases.ErrInvalidMonth) {
				httpserver.ReplyWithError(w, http.StatusBadRequest, err.Error())
				return
			}
			slog.Error("getting incoming stats", slog.String("error", err.Error()))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, "failed to compute incoming stats")
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToIncomingStatsResponse(stats))
	}
}

func intQueryParam(r *http.Request, name string, fallback int) (int, error) {
	raw := httpserver.GetQueryParam(r, name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
