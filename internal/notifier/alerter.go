package notifier

import (
	"log"
	"sync"
	"time"

	"github.com/M-Billingsley/day-trade-monitor/internal/model"
)

// Cooldown is the minimum spacing between alerts for the same ticker.
const Cooldown = 15 * time.Minute

// alertWindow bounds auto alerts to the morning session.
var alertWindow = struct{ startH, startM, endH, endM int }{9, 30, 12, 0}

// Alerter fans STRONG BUY alerts out to the configured senders, at most once
// per ticker per cooldown window. The cooldown timestamp is stamped on every
// attempt, whether or not any sender delivered.
type Alerter struct {
	Senders []Sender
	Loc     *time.Location

	mu        sync.Mutex
	lastAlert map[string]time.Time
}

// NewAlerter builds an alerter pinned to US Eastern time.
func NewAlerter(senders []Sender) (*Alerter, error) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return nil, err
	}
	return &Alerter{Senders: senders, Loc: loc, lastAlert: make(map[string]time.Time)}, nil
}

// MaybeAlert dispatches an alert for the record if it qualifies.
// Returns true when an attempt was made.
func (a *Alerter) MaybeAlert(rec model.SignalRecord, now time.Time) bool {
	if rec.Label != model.LabelStrongBuy {
		return false
	}
	et := now.In(a.Loc)
	m := et.Hour()*60 + et.Minute()
	if m < alertWindow.startH*60+alertWindow.startM || m > alertWindow.endH*60+alertWindow.endM {
		return false
	}

	a.mu.Lock()
	if last, ok := a.lastAlert[rec.Ticker]; ok && now.Sub(last) <= Cooldown {
		a.mu.Unlock()
		return false
	}
	a.lastAlert[rec.Ticker] = now
	a.mu.Unlock()

	msg := FormatAlert(rec, et)
	for _, s := range a.Senders {
		if err := s.Send(msg); err != nil {
			log.Printf("[WARN] %s alert for %s failed: %v", s.Name(), rec.Ticker, err)
		}
	}
	return true
}
