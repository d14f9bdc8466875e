package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/cuongccna/tradingjournalai-sub000/internal/domain/models"
	"github.com/cuongccna/tradingjournalai-sub000/internal/domain/service"
	"github.com/cuongccna/tradingjournalai-sub000/internal/service/metrics"
	xhttp "github.com/cuongccna/tradingjournalai-sub000/pkg/http"
	applogger "github.com/cuongccna/tradingjournalai-sub000/pkg/logger"

	"github.com/labstack/echo/v4"
)

type NewsEchoHandler struct {
	svc    service.NewsService
	logger *applogger.Logger
}

func NewNewsEchoHandler(svc service.NewsService, logger *applogger.Logger) *NewsEchoHandler {
	if logger == nil {
		logger = applogger.Nop()
	}
	metrics.Register()
	return &NewsEchoHandler{svc: svc, logger: logger}
}

func (h *NewsEchoHandler) RegisterRoutes(e *echo.Echo) {
	for _, prefix := range []string{"/news", "/api/news"} {
		g := e.Group(prefix)
		g.GET("", h.All)
		g.GET("/category/:category", h.Category)
		g.GET("/search", h.Search)
		g.GET("/ticker/:ticker", h.Ticker)
		g.GET("/status", h.Status)
	}
}

func (h *NewsEchoHandler) All(c echo.Context) error {
	req, verr := h.bind(c)
	if verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	return h.respond(c, "news", time.Now(), func() ([]models.NewsArticle, error) {
		return h.svc.All(c.Request().Context(), req.UserID, req.Limit)
	})
}

func (h *NewsEchoHandler) Category(c echo.Context) error {
	req, verr := h.bind(c)
	if verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	cat, ok := models.ParseNewsCategory(strings.ToLower(req.Category))
	if !ok {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestErrorf("category", "unknown category %q", req.Category).
			WithParam("allowed", []models.NewsCategory{models.NewsStock, models.NewsCrypto, models.NewsForex, models.NewsGeneral}))
	}
	return h.respond(c, "news_category", time.Now(), func() ([]models.NewsArticle, error) {
		return h.svc.ByCategory(c.Request().Context(), req.UserID, cat, req.Limit)
	})
}

func (h *NewsEchoHandler) Search(c echo.Context) error {
	req, verr := h.bind(c)
	if verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if strings.TrimSpace(req.Q) == "" {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("q", "q is required"))
	}
	return h.respond(c, "news_search", time.Now(), func() ([]models.NewsArticle, error) {
		return h.svc.Search(c.Request().Context(), req.UserID, req.Q, req.Limit)
	})
}

func (h *NewsEchoHandler) Ticker(c echo.Context) error {
	req, verr := h.bind(c)
	if verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if req.Ticker == "" {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("ticker", "ticker is required"))
	}
	return h.respond(c, "news_ticker", time.Now(), func() ([]models.NewsArticle, error) {
		return h.svc.ForTicker(c.Request().Context(), req.UserID, req.Ticker, req.Limit)
	})
}

func (h *NewsEchoHandler) Status(c echo.Context) error {
	req, verr := h.bind(c)
	if verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	return xhttp.SuccessResponse(c, h.svc.Status(c.Request().Context(), req.UserID))
}

func (h *NewsEchoHandler) bind(c echo.Context) (*models.NewsQuery, []xhttp.ValidationError) {
	req := &models.NewsQuery{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return nil, verr
	}
	return req, nil
}

func (h *NewsEchoHandler) respond(c echo.Context, endpoint string, start time.Time, fetch func() ([]models.NewsArticle, error)) error {
	articles, err := fetch()
	if err != nil {
		appErr := xhttp.UpstreamError("failed to fetch news", err)
		h.logger.Error("news usecase error", applogger.String("endpoint", endpoint), applogger.Error(err))
		metrics.Observe(endpoint, start, appErr.Status)
		return xhttp.AppErrorResponse(c, appErr)
	}
	if articles == nil {
		articles = []models.NewsArticle{}
	}
	metrics.Observe(endpoint, start, http.StatusOK)
	return xhttp.SuccessResponse(c, articles, xhttp.Meta{"count": len(articles)})
}
