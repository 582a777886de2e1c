package telemetry

// Collector accumulates events within time windows and produces WindowStats.
// Windows are measured in unpaused simulation seconds.
type Collector struct {
	windowDurationSec float64
	windowStart       float64

	// Event counters for current window
	meals         int
	deaths        int
	captures      int
	spawns        int
	retargets     int
	giveUps       int
	interceptions int
	dartsFired    int
	dartsExpired  int
	foodBought    int
	income        int
	gameOvers     int
	resets        int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
func NewCollector(windowDurationSec float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 10
	}
	return &Collector{windowDurationSec: windowDurationSec}
}

// Record counts an event in the current window.
func (c *Collector) Record(ev Event) {
	switch ev.Type {
	case EventMeal:
		c.meals++
	case EventAnimalDied:
		c.deaths++
	case EventAnimalCaptured:
		c.captures++
	case EventPoacherSpawned:
		c.spawns++
	case EventPoacherRetargeted:
		c.retargets++
	case EventPoacherGaveUp:
		c.giveUps++
	case EventPoacherNeutralized:
		c.interceptions++
	case EventDartFired:
		c.dartsFired++
	case EventDartExpired:
		c.dartsExpired++
	case EventFoodBought:
		c.foodBought += ev.Amount
	case EventIncome:
		c.income += ev.Amount
	case EventGameOver:
		c.gameOvers++
	case EventSessionReset:
		c.resets++
	}
}

// ShouldFlush returns true if the current window has run its full length.
func (c *Collector) ShouldFlush(now float64) bool {
	return now-c.windowStart >= c.windowDurationSec
}

// Census is the state of the world sampled at the end of a window.
type Census struct {
	Session        int
	GameTime       float64
	Alive          int
	Dead           int
	Captured       int
	PoachersActive int
	DartsActive    int
	Currency       int
	Score          int
	FoodTotal      int
	Happiness      []float64 // Living animals only
	Health         []float64 // Living animals only
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(now float64, census Census) WindowStats {
	happyMean, happyStd, happyP10, happyP50, happyP90 := ComputeVitalStats(census.Happiness)
	healthMean, healthStd, healthP10, healthP50, healthP90 := ComputeVitalStats(census.Health)

	var interceptRate float64
	if c.dartsFired > 0 {
		interceptRate = float64(c.interceptions) / float64(c.dartsFired)
	}

	stats := WindowStats{
		WindowStart: c.windowStart,
		WindowEnd:   now,
		Session:     census.Session,
		GameTime:    census.GameTime,

		Alive:          census.Alive,
		Dead:           census.Dead,
		Captured:       census.Captured,
		PoachersActive: census.PoachersActive,
		DartsActive:    census.DartsActive,

		Meals:         c.meals,
		Deaths:        c.deaths,
		Captures:      c.captures,
		Spawns:        c.spawns,
		Retargets:     c.retargets,
		GiveUps:       c.giveUps,
		Interceptions: c.interceptions,
		DartsFired:    c.dartsFired,
		DartsExpired:  c.dartsExpired,
		InterceptRate: interceptRate,
		FoodBought:    c.foodBought,
		Income:        c.income,
		GameOvers:     c.gameOvers,
		Resets:        c.resets,

		Currency:  census.Currency,
		Score:     census.Score,
		FoodTotal: census.FoodTotal,

		HappinessMean: happyMean,
		HappinessStd:  happyStd,
		HappinessP10:  happyP10,
		HappinessP50:  happyP50,
		HappinessP90:  happyP90,

		HealthMean: healthMean,
		HealthStd:  healthStd,
		HealthP10:  healthP10,
		HealthP50:  healthP50,
		HealthP90:  healthP90,
		HealthMin:  MinOrZero(census.Health),
	}

	// Reset for next window
	c.windowStart = now
	c.meals = 0
	c.deaths = 0
	c.captures = 0
	c.spawns = 0
	c.retargets = 0
	c.giveUps = 0
	c.interceptions = 0
	c.dartsFired = 0
	c.dartsExpired = 0
	c.foodBought = 0
	c.income = 0
	c.gameOvers = 0
	c.resets = 0

	return stats
}
