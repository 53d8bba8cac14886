package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"StratLab/internal/domain/models"
	"StratLab/internal/domain/service"
	"StratLab/internal/indicators"
	"StratLab/internal/service/cache"
	"StratLab/pkg/logger"
)

// IndicatorService computes indicators through the registry with metrics,
// logging and an optional result cache.
type IndicatorService struct {
	registry *indicators.Registry
	cache    cache.BytesCache
	ttl      time.Duration
	metrics  service.Metrics
	log      *logger.Logger
}

// IndicatorOption configures an IndicatorService.
type IndicatorOption func(*IndicatorService)

// WithResultCache caches computed series in c for ttl.
func WithResultCache(c cache.BytesCache, ttl time.Duration) IndicatorOption {
	return func(s *IndicatorService) {
		s.cache = c
		s.ttl = ttl
	}
}

func NewIndicatorService(registry *indicators.Registry, m service.Metrics, log *logger.Logger, opts ...IndicatorOption) *IndicatorService {
	if m == nil {
		m = service.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	s := &IndicatorService{registry: registry, metrics: m, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type CalcParams struct {
	Name      string
	Params    models.Params
	Timeframe string
	Field     string
	Frame     *models.Frame
}

type CalcResult struct {
	Name   string        `json:"name"`
	Field  string        `json:"field,omitempty"`
	Warmup int           `json:"warmup"`
	Values models.Series `json:"values"`
	Cached bool          `json:"-"`
}

// Descriptors lists registered indicators.
func (s *IndicatorService) Descriptors() []indicators.Descriptor {
	return s.registry.Descriptors()
}

// Calc dispatches one indicator calculation. Errors are *indicators.CalcError.
func (s *IndicatorService) Calc(ctx context.Context, p CalcParams) (*CalcResult, error) {
	name := strings.ToLower(p.Name)
	start := time.Now()

	key := ""
	if s.cache != nil {
		key = calcKey(p)
		if res, ok := s.lookup(ctx, key); ok {
			s.metrics.RecordCalc(name, "cached", time.Since(start))
			return res, nil
		}
	}

	values, err := s.registry.Calc(p.Name, p.Frame, p.Params, p.Timeframe, p.Field)
	if err != nil {
		status := "error"
		var ce *indicators.CalcError
		if errors.As(err, &ce) {
			status = string(ce.Code)
		}
		s.metrics.RecordCalc(name, status, time.Since(start))
		s.log.Warn("indicator.calc failed",
			logger.String("indicator", name),
			logger.String("status", status),
			logger.Error(err),
		)
		return nil, err
	}

	res := &CalcResult{
		Name:   name,
		Warmup: s.registry.Warmup(name, p.Params),
		Values: values,
	}
	if d, ok := s.registry.Lookup(name); ok && len(d.Fields) > 0 {
		res.Field = d.ResolveField(p.Field)
	}
	s.metrics.RecordCalc(name, "ok", time.Since(start))
	s.log.Debug("indicator.calc done",
		logger.String("indicator", name),
		logger.Int("rows", len(values)),
		logger.Int("warmup", res.Warmup),
		logger.Duration("took", time.Since(start)),
	)

	if s.cache != nil {
		s.store(ctx, key, res)
	}
	return res, nil
}

func (s *IndicatorService) lookup(ctx context.Context, key string) (*CalcResult, bool) {
	b, ok, err := s.cache.GetBytes(ctx, key)
	switch {
	case err != nil:
		s.metrics.RecordCache("error")
		s.log.Warn("indicator.cache get failed", logger.Error(err))
		return nil, false
	case !ok:
		s.metrics.RecordCache("miss")
		return nil, false
	}
	var res CalcResult
	if err := json.Unmarshal(b, &res); err != nil {
		s.metrics.RecordCache("error")
		return nil, false
	}
	s.metrics.RecordCache("hit")
	res.Cached = true
	return &res, true
}

func (s *IndicatorService) store(ctx context.Context, key string, res *CalcResult) {
	b, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := s.cache.SetBytes(ctx, key, b, s.ttl); err != nil {
		s.log.Warn("indicator.cache set failed", logger.Error(err))
	}
}

// calcKey hashes everything that determines a calculation's output.
func calcKey(p CalcParams) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s|", strings.ToLower(p.Name), strings.ToLower(p.Timeframe), p.Field)
	params, _ := json.Marshal(p.Params)
	h.Write(params)
	if p.Frame != nil {
		for _, t := range p.Frame.Index {
			fmt.Fprintf(h, "|%d", t.Unix())
		}
		for _, name := range p.Frame.Columns() {
			col, _ := p.Frame.Column(name)
			b, _ := json.Marshal(col)
			fmt.Fprintf(h, "|%s=", name)
			h.Write(b)
		}
	}
	return "calc:" + hex.EncodeToString(h.Sum(nil))
}
