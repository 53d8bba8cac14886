package api

import (
	"net/http"
	"time"

	"StratLab/internal/domain/models"
	svcmetrics "StratLab/internal/service/metrics"
	"StratLab/internal/usecase"
	xhttp "StratLab/pkg/http"
	"StratLab/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Handler serves the indicator and strategy endpoints.
type Handler struct {
	indicators *usecase.IndicatorService
	strategies *usecase.StrategyService
	metrics    *svcmetrics.APIMetrics
	logger     *logger.Logger
}

func NewHandler(ind *usecase.IndicatorService, st *usecase.StrategyService, m *svcmetrics.APIMetrics, l *logger.Logger) *Handler {
	if l == nil {
		l = logger.Nop()
	}
	return &Handler{indicators: ind, strategies: st, metrics: m, logger: l}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	g := e.Group("/api/v1")
	g.GET("/indicators", h.ListIndicators)
	g.POST("/indicators/calc", h.Calc)
	g.POST("/strategies/validate", h.ValidateStrategy)
	g.POST("/strategies/evaluate", h.EvaluateStrategy)
}

func (h *Handler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

type descriptorResponse struct {
	Name         string   `json:"name"`
	Timeframes   []string `json:"timeframes"`
	Fields       []string `json:"fields,omitempty"`
	DefaultField string   `json:"default_field,omitempty"`
}

func (h *Handler) ListIndicators(c echo.Context) error {
	descs := h.indicators.Descriptors()
	out := make([]descriptorResponse, len(descs))
	for i, d := range descs {
		out[i] = descriptorResponse{Name: d.Name, Timeframes: d.Timeframes, Fields: d.Fields, DefaultField: d.DefaultField}
	}
	return c.JSON(http.StatusOK, map[string]any{"indicators": out})
}

func (h *Handler) Calc(c echo.Context) error {
	start := time.Now()
	req := &models.CalcRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		h.metrics.Observe("calc", start, "ERR_BAD_REQUEST")
		return xhttp.BadRequestResponse(c, verr)
	}
	frame, err := models.BarsFrame(req.Bars)
	if err != nil {
		h.metrics.Observe("calc", start, "ERR_BAD_REQUEST")
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()))
	}

	res, err := h.indicators.Calc(c.Request().Context(), usecase.CalcParams{
		Name:      req.Name,
		Params:    req.Params,
		Timeframe: req.Timeframe,
		Field:     req.Field,
		Frame:     frame,
	})
	if err != nil {
		appErr := calcAppError(err)
		h.metrics.Observe("calc", start, appErr.Code)
		if appErr.Status >= http.StatusInternalServerError {
			h.logger.Error("api.calc failed", logger.String("indicator", req.Name), logger.Error(err))
		}
		return xhttp.AppErrorResponse(c, appErr)
	}

	cacheState := "miss"
	if res.Cached {
		cacheState = "hit"
	}
	c.Response().Header().Set("X-Cache", cacheState)
	out := *res
	out.Values = res.Values.Tail(req.Tail)
	h.metrics.Observe("calc", start, "")
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) ValidateStrategy(c echo.Context) error {
	start := time.Now()
	var payload any
	if err := xhttp.DecodeJSON(c, &payload); err != nil {
		h.metrics.Observe("validate", start, "ERR_BAD_REQUEST")
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()))
	}

	st, rep := h.strategies.Validate(c.Request().Context(), payload)
	if rep != nil {
		h.metrics.Observe("validate", start, "ERR_VALIDATION")
		return c.JSON(rep.Status, rep)
	}
	h.metrics.Observe("validate", start, "")
	return c.JSON(http.StatusOK, map[string]any{"ok": true, "strategy": st})
}

type evaluateResponse struct {
	OK      bool   `json:"ok"`
	Name    string `json:"name"`
	Last    bool   `json:"last"`
	Warmup  int    `json:"warmup"`
	Signals []bool `json:"signals"`
}

func (h *Handler) EvaluateStrategy(c echo.Context) error {
	start := time.Now()
	req := &models.EvaluateRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		h.metrics.Observe("evaluate", start, "ERR_BAD_REQUEST")
		return xhttp.BadRequestResponse(c, verr)
	}
	frame, err := models.BarsFrame(req.Bars)
	if err != nil {
		h.metrics.Observe("evaluate", start, "ERR_BAD_REQUEST")
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()))
	}

	res, rep, err := h.strategies.Evaluate(c.Request().Context(), req.Strategy, frame)
	switch {
	case rep != nil:
		h.metrics.Observe("evaluate", start, "ERR_VALIDATION")
		return c.JSON(rep.Status, rep)
	case err != nil:
		appErr := calcAppError(err)
		h.metrics.Observe("evaluate", start, appErr.Code)
		return xhttp.AppErrorResponse(c, appErr)
	}

	signals := res.Signals.Values
	if req.Tail > 0 && req.Tail < len(signals) {
		signals = signals[len(signals)-req.Tail:]
	}
	h.metrics.Observe("evaluate", start, "")
	return c.JSON(http.StatusOK, evaluateResponse{
		OK:      true,
		Name:    res.Strategy.Name,
		Last:    res.Signals.Last,
		Warmup:  res.Signals.Warmup,
		Signals: signals,
	})
}
