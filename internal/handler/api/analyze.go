package api

import (
	"errors"

	models "TrendGuard/internal/domain/models"
	drepo "TrendGuard/internal/domain/repository"
	"TrendGuard/internal/service/coingecko"
	"TrendGuard/internal/usecase"
	xhttp "TrendGuard/pkg/http"
	xlogger "TrendGuard/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AnalyzeHandler implements the Echo HTTP surface over the analyze use case.
type AnalyzeHandler struct {
	logger   *xlogger.Logger
	analyzer *usecase.Analyzer
}

func NewAnalyzeHandler(logger *xlogger.Logger, analyzer *usecase.Analyzer) *AnalyzeHandler {
	return &AnalyzeHandler{logger: logger, analyzer: analyzer}
}

func (h *AnalyzeHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/analyze", h.Analyze)
	g.GET("/symbols", h.Symbols)
	g.GET("/health", h.Health)
}

func (h *AnalyzeHandler) Analyze(c echo.Context) error {
	req := &models.AnalyzeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.analyzer.Analyze(c.Request().Context(), req.Symbol, req.Days, usecase.Preference(req.Source))
	if err != nil {
		if errors.Is(err, drepo.ErrNoData) {
			return xhttp.AppErrorResponse(c,
				xhttp.NoDataError("no data available; crypto pairs use the -USD suffix, e.g. BTC-USD").
					WithParam("symbol", req.Symbol))
		}
		h.logger.Error("analyze usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

// Symbols lists the crypto symbols resolvable without a best-effort guess.
func (h *AnalyzeHandler) Symbols(c echo.Context) error {
	return xhttp.SuccessResponse(c, coingecko.KnownSymbols())
}

func (h *AnalyzeHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}
