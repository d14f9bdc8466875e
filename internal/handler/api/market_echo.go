package api

import (
	"net/http"
	"time"

	"github.com/cuongccna/tradingjournalai-sub000/internal/domain/models"
	"github.com/cuongccna/tradingjournalai-sub000/internal/domain/service"
	"github.com/cuongccna/tradingjournalai-sub000/internal/service/metrics"
	"github.com/cuongccna/tradingjournalai-sub000/internal/service/ratelimit"
	"github.com/cuongccna/tradingjournalai-sub000/internal/services/signals"
	xhttp "github.com/cuongccna/tradingjournalai-sub000/pkg/http"
	applogger "github.com/cuongccna/tradingjournalai-sub000/pkg/logger"

	"github.com/labstack/echo/v4"
)

// alertCaps is implemented by services that report the caps they apply.
type alertCaps interface {
	AlertCap() int
	SingleFetchAlertCap() int
}

// MarketEchoHandler serves the aggregation endpoints under /market and /api/market.
type MarketEchoHandler struct {
	svc       service.MarketService
	limiter   *ratelimit.Limiter
	logger    *applogger.Logger
	alertCap  int
	singleCap int
}

func NewMarketEchoHandler(svc service.MarketService, limiter *ratelimit.Limiter, logger *applogger.Logger) *MarketEchoHandler {
	if logger == nil {
		logger = applogger.Nop()
	}
	metrics.Register()
	h := &MarketEchoHandler{
		svc:       svc,
		limiter:   limiter,
		logger:    logger,
		alertCap:  signals.PortfolioAlertCap,
		singleCap: signals.SingleFetchAlertCap,
	}
	if caps, ok := svc.(alertCaps); ok {
		h.alertCap = caps.AlertCap()
		h.singleCap = caps.SingleFetchAlertCap()
	}
	return h
}

func (h *MarketEchoHandler) RegisterRoutes(e *echo.Echo) {
	for _, prefix := range []string{"/market", "/api/market"} {
		g := e.Group(prefix, ratelimit.Middleware(h.limiter))
		g.GET("/portfolio-data", h.PortfolioData)
		g.GET("/alerts", h.Alerts)
		g.GET("/symbol/:symbol", h.Symbol)
		g.GET("/binance-data", h.BinanceData)
	}
}

func (h *MarketEchoHandler) PortfolioData(c echo.Context) error {
	start := time.Now()
	req := &models.MarketQuery{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		metrics.Observe("portfolio_data", start, http.StatusBadRequest)
		return xhttp.BadRequestResponse(c, verr)
	}

	res := h.svc.Aggregate(c.Request().Context(), req.UserID, req.SymbolList)
	h.logger.Debug("portfolio data served",
		applogger.Int("symbols", len(req.SymbolList)),
		applogger.Int("quotes", len(res.Quotes)),
		applogger.Int("alerts", len(res.Alerts)),
		applogger.Duration("elapsed", time.Since(start)))
	metrics.Observe("portfolio_data", start, http.StatusOK)
	return xhttp.SuccessResponse(c, res, xhttp.Meta{"alertCap": h.alertCap})
}

func (h *MarketEchoHandler) Alerts(c echo.Context) error {
	start := time.Now()
	req := &models.MarketQuery{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		metrics.Observe("alerts", start, http.StatusBadRequest)
		return xhttp.BadRequestResponse(c, verr)
	}

	alerts := h.svc.Alerts(c.Request().Context(), req.UserID, req.SymbolList)
	metrics.Observe("alerts", start, http.StatusOK)
	return xhttp.SuccessResponse(c, alerts, xhttp.Meta{"alertCap": h.alertCap, "count": len(alerts)})
}

func (h *MarketEchoHandler) Symbol(c echo.Context) error {
	req := &models.SymbolQuery{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	return xhttp.SuccessResponse(c, h.svc.Classify(req.Symbol))
}

func (h *MarketEchoHandler) BinanceData(c echo.Context) error {
	start := time.Now()
	req := &models.MarketQuery{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		metrics.Observe("binance_data", start, http.StatusBadRequest)
		return xhttp.BadRequestResponse(c, verr)
	}

	res := h.svc.CryptoSnapshot(c.Request().Context(), req.SymbolList)
	metrics.Observe("binance_data", start, http.StatusOK)
	return xhttp.SuccessResponse(c, res, xhttp.Meta{"alertCap": h.singleCap})
}
