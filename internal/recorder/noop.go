package recorder

import "github.com/M-Billingsley/day-trade-monitor/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordCycle(_ *CycleSnapshot) error                     { return nil }
func (n *NoopRecorder) RecordBacktest(_ string, _ *model.BacktestResult) error { return nil }
func (n *NoopRecorder) Close() error                                           { return nil }
