package service

import "time"

// Metrics records indicator and strategy outcomes.
type Metrics interface {
	RecordCalc(indicator, status string, d time.Duration)
	RecordValidation(ok bool, codes []string)
	RecordCache(result string)
}

// NopMetrics discards everything.
type NopMetrics struct{}

func (NopMetrics) RecordCalc(string, string, time.Duration) {}
func (NopMetrics) RecordValidation(bool, []string)          {}
func (NopMetrics) RecordCache(string)                       {}
