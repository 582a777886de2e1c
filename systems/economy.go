package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/sanctuary/config"
)

// Economy tracks currency, score and game time for a session.
type Economy struct {
	Currency int
	Score    int
	GameTime float64 // Seconds of PLAYING time this session

	paidIntervals int
	cfg           config.EconomyConfig
}

// NewEconomy creates an economy with the configured starting balance.
func NewEconomy(cfg config.EconomyConfig) *Economy {
	e := &Economy{cfg: cfg}
	e.Reset()
	return e
}

// Reset restores the starting balance, zero score and zero game time.
func (e *Economy) Reset() {
	e.Currency = e.cfg.InitialCurrency
	e.Score = 0
	e.GameTime = 0
	e.paidIntervals = 0
}

// Elapse advances game time.
func (e *Economy) Elapse(dt float64) {
	if dt > 0 {
		e.GameTime += dt
	}
}

// CollectIncome pays passive income once for every income interval completed
// since the last call and returns the amount paid.
func (e *Economy) CollectIncome() int {
	completed := int(math.Floor(e.GameTime / e.cfg.IncomeInterval))
	if completed <= e.paidIntervals {
		return 0
	}
	paid := (completed - e.paidIntervals) * e.cfg.Income
	e.paidIntervals = completed
	e.Currency += paid
	return paid
}

// Feed buys food for habitat id. The player must stand within feed range of
// the habitat's feeding point and afford the cost; otherwise nothing changes.
func (e *Economy) Feed(habitats *HabitatRegistry, id int, player mgl64.Vec3) bool {
	h, ok := habitats.Get(id)
	if !ok {
		return false
	}
	if PlanarDistance(player, h.FeedingPoint) >= e.cfg.FeedRange {
		return false
	}
	if e.Currency < e.cfg.FeedCost {
		return false
	}
	e.Currency -= e.cfg.FeedCost
	habitats.Deposit(id, e.cfg.FoodPerFeed)
	return true
}

// FeedNearest feeds the first habitat whose feeding point is in range.
// It returns the habitat id, or -1 when nothing was bought.
func (e *Economy) FeedNearest(habitats *HabitatRegistry, player mgl64.Vec3) int {
	h, ok := habitats.FirstInRange(player, e.cfg.FeedRange)
	if !ok {
		return -1
	}
	if !e.Feed(habitats, h.ID, player) {
		return -1
	}
	return h.ID
}

// AwardInterception credits a dart hit.
func (e *Economy) AwardInterception() {
	e.Score += e.cfg.InterceptionReward
}
