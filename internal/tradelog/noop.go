package tradelog

import "github.com/M-Billingsley/day-trade-monitor/internal/model"

// NoopStore is a no-op implementation used when SQLite is not configured.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (n *NoopStore) Append(_ model.TradeLogEntry) error  { return nil }
func (n *NoopStore) All() ([]model.TradeLogEntry, error) { return nil, nil }
func (n *NoopStore) Close() error                        { return nil }
