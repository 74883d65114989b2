// Package backtest replays a ticker's intraday bars day by day and re-applies
// the reduced morning entry rule, resolving each simulated trade by forward
// scan within its own session.
package backtest

import (
	"math"
	"time"

	"github.com/M-Billingsley/day-trade-monitor/internal/model"
	"github.com/M-Billingsley/day-trade-monitor/internal/strategy"
)

const (
	// MinBars is the minimum intraday bar count for a run; below it the
	// simulator reports insufficient data and computes nothing.
	MinBars = 200
	// LookbackSessions bounds the run to the most recent trading days.
	LookbackSessions = 60

	profitMult = 1.03 // capped win exit level
	stopMult   = 0.98 // capped loss exit level
	winPL      = 3.0  // fixed win, percent
	lossPL     = -2.0 // fixed loss, percent
	timeStopHr = 12   // time-stop exit once a scanned bar reaches this hour
)

// Simulator runs historical intraday replays in a fixed reference timezone.
type Simulator struct {
	Rule strategy.EntryRule
	Loc  *time.Location
}

// NewSimulator builds a simulator pinned to US Eastern time using the
// reduced backtest entry rule.
func NewSimulator() (*Simulator, error) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return nil, err
	}
	return &Simulator{Rule: strategy.BacktestEntryRule(), Loc: loc}, nil
}

// Run simulates the entry rule over 15-minute bars. The benchmark series is
// fetched alongside the ticker for parity with the live evaluator; the
// current rule set does not score against it.
//
// A signal whose session ends before any exit rule triggers stays in the
// signal count but produces no trade; every rate and average divides by the
// signal count.
func (s *Simulator) Run(bars, benchmark []model.PriceBar) *model.BacktestResult {
	_ = benchmark
	if len(bars) < MinBars {
		return &model.BacktestResult{InsufficientData: true}
	}

	res := &model.BacktestResult{}
	currentStreak := 0
	currentIsWin := false

	for _, day := range s.sessions(bars) {
		if len(day) == 0 {
			continue
		}
		sessionOpen := day[0].Open
		if sessionOpen <= 0 {
			continue
		}
		for i, bar := range day {
			at := bar.Time.In(s.Loc)
			// the looser hour filter sits on top of the rule's own window;
			// together they trim the window's first quarter hour
			if at.Hour() <= 9 || at.Hour() >= 12 {
				continue
			}
			chgFromOpen := (bar.Close - sessionOpen) / sessionOpen * 100
			if !s.Rule.Allows(chgFromOpen, at) {
				continue
			}

			res.Signals++
			entry := bar.Close
			pl, exited := scanExit(day[i+1:], entry, s.Loc)
			if !exited {
				continue
			}

			res.TotalPL += pl
			res.TradePL = append(res.TradePL, pl)
			if pl > 0 {
				res.Wins++
				if currentIsWin {
					currentStreak++
				} else {
					currentStreak = 1
					currentIsWin = true
				}
				if currentStreak > res.MaxWinStreak {
					res.MaxWinStreak = currentStreak
				}
			} else {
				if !currentIsWin {
					currentStreak++
				} else {
					currentStreak = 1
					currentIsWin = false
				}
				if currentStreak > res.MaxLossStreak {
					res.MaxLossStreak = currentStreak
				}
			}
		}
	}

	aggregate(res)
	return res
}

// scanExit walks the remaining bars of the session: capped win at +3%, capped
// loss at -2%, or an uncapped time-stop exit at the first bar at or past noon.
func scanExit(future []model.PriceBar, entry float64, loc *time.Location) (pl float64, exited bool) {
	for _, bar := range future {
		exitP := bar.Close
		if exitP >= entry*profitMult {
			return winPL, true
		}
		if exitP <= entry*stopMult {
			return lossPL, true
		}
		if bar.Time.In(loc).Hour() >= timeStopHr {
			return (exitP - entry) / entry * 100, true
		}
	}
	return 0, false
}

// sessions partitions the bars by Eastern calendar date, preserving order,
// and keeps the trailing LookbackSessions days.
func (s *Simulator) sessions(bars []model.PriceBar) [][]model.PriceBar {
	var days [][]model.PriceBar
	lastKey := ""
	for _, bar := range bars {
		key := bar.Time.In(s.Loc).Format("2006-01-02")
		if key != lastKey {
			days = append(days, nil)
			lastKey = key
		}
		days[len(days)-1] = append(days[len(days)-1], bar)
	}
	if len(days) > LookbackSessions {
		days = days[len(days)-LookbackSessions:]
	}
	return days
}

func aggregate(res *model.BacktestResult) {
	if res.Signals == 0 {
		return
	}
	res.WinRate = float64(res.Wins) / float64(res.Signals) * 100
	res.AvgPL = res.TotalPL / float64(res.Signals)

	var sumWin, sumLoss float64
	var nWin, nLoss int
	for _, pl := range res.TradePL {
		if pl > 0 {
			sumWin += pl
			nWin++
		} else if pl < 0 {
			sumLoss += pl
			nLoss++
		}
	}
	if nWin > 0 {
		res.AvgWin = sumWin / float64(nWin)
	}
	if nLoss > 0 {
		res.AvgLoss = sumLoss / float64(nLoss)
	}
	if sumLoss < 0 {
		res.ProfitFactor = sumWin / -sumLoss
	} else {
		res.ProfitFactor = math.Inf(1)
	}
}
