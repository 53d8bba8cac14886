package usecase

import (
	"context"
	"errors"
	"fmt"

	"StratLab/internal/domain/models"
	"StratLab/internal/domain/service"
	"StratLab/internal/strategy"
	"StratLab/pkg/logger"
)

// StrategyService validates strategy payloads and evaluates them over frames.
type StrategyService struct {
	schema  *strategy.Schema
	eval    *Evaluator
	metrics service.Metrics
	log     *logger.Logger
}

func NewStrategyService(schema *strategy.Schema, eval *Evaluator, m service.Metrics, log *logger.Logger) *StrategyService {
	if m == nil {
		m = service.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &StrategyService{schema: schema, eval: eval, metrics: m, log: log}
}

// Validate builds a strategy from payload. On schema failure the formatted
// report is returned instead of the strategy.
func (s *StrategyService) Validate(_ context.Context, payload any) (*strategy.Strategy, *strategy.Report) {
	st, err := s.schema.ParseStrategy(payload)
	if err == nil {
		s.metrics.RecordValidation(true, nil)
		s.log.Debug("strategy.validate ok", logger.String("name", st.Name))
		return st, nil
	}

	var ve *strategy.ValidationError
	if !errors.As(err, &ve) {
		ve = &strategy.ValidationError{Violations: []strategy.Violation{{Type: strategy.TypeValueError, Msg: err.Error()}}}
	}
	rep := strategy.FormatValidationError(ve)
	s.metrics.RecordValidation(false, rep.Codes())
	s.log.Info("strategy.validate rejected",
		logger.Int("errors", len(rep.Errors)),
		logger.Strings("codes", rep.Codes()),
	)
	return nil, &rep
}

type EvaluateResult struct {
	Strategy *strategy.Strategy
	Signals  *Signals
}

// Evaluate validates payload and runs it over f. A schema failure yields a
// report; a computation failure yields an error wrapping *indicators.CalcError.
func (s *StrategyService) Evaluate(ctx context.Context, payload any, f *models.Frame) (*EvaluateResult, *strategy.Report, error) {
	st, rep := s.Validate(ctx, payload)
	if rep != nil {
		return nil, rep, nil
	}
	sig, err := s.eval.Evaluate(st, f)
	if err != nil {
		s.log.Warn("strategy.evaluate failed", logger.String("name", st.Name), logger.Error(err))
		return nil, nil, fmt.Errorf("evaluate %s: %w", st.Name, err)
	}
	return &EvaluateResult{Strategy: st, Signals: sig}, nil, nil
}
