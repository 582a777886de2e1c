package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStart float64 `csv:"-"`
	WindowEnd   float64 `csv:"window_end"`
	Session     int     `csv:"session"`
	GameTime    float64 `csv:"game_time"`

	// Population at window end
	Alive          int `csv:"alive"`
	Dead           int `csv:"dead"`
	Captured       int `csv:"captured"`
	PoachersActive int `csv:"poachers_active"`
	DartsActive    int `csv:"darts_active"`

	// Events during window
	Meals         int     `csv:"meals"`
	Deaths        int     `csv:"deaths"`
	Captures      int     `csv:"captures"`
	Spawns        int     `csv:"spawns"`
	Retargets     int     `csv:"retargets"`
	GiveUps       int     `csv:"give_ups"`
	Interceptions int     `csv:"interceptions"`
	DartsFired    int     `csv:"darts_fired"`
	DartsExpired  int     `csv:"darts_expired"`
	InterceptRate float64 `csv:"intercept_rate"`
	FoodBought    int     `csv:"food_bought"`
	Income        int     `csv:"income"`
	GameOvers     int     `csv:"game_overs"`
	Resets        int     `csv:"resets"`

	// Economy at window end
	Currency  int `csv:"currency"`
	Score     int `csv:"score"`
	FoodTotal int `csv:"food_total"`

	// Vitals distribution over living animals (sampled at window end)
	HappinessMean float64 `csv:"happiness_mean"`
	HappinessStd  float64 `csv:"happiness_std"`
	HappinessP10  float64 `csv:"happiness_p10"`
	HappinessP50  float64 `csv:"happiness_p50"`
	HappinessP90  float64 `csv:"happiness_p90"`

	HealthMean float64 `csv:"health_mean"`
	HealthStd  float64 `csv:"health_std"`
	HealthP10  float64 `csv:"health_p10"`
	HealthP50  float64 `csv:"health_p50"`
	HealthP90  float64 `csv:"health_p90"`
	HealthMin  float64 `csv:"health_min"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeVitalStats returns mean, sample standard deviation and the 10th,
// 50th and 90th percentiles. All zero for an empty slice.
func ComputeVitalStats(values []float64) (mean, std, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	if n == 1 {
		mean = values[0]
	} else {
		mean, std = stat.MeanStdDev(values, nil)
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, std, p10, p50, p90
}

// MinOrZero returns the smallest value, or 0 for an empty slice.
func MinOrZero(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return floats.Min(values)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("window_start", s.WindowStart),
		slog.Float64("window_end", s.WindowEnd),
		slog.Int("session", s.Session),
		slog.Float64("game_time", s.GameTime),
		slog.Int("alive", s.Alive),
		slog.Int("dead", s.Dead),
		slog.Int("captured", s.Captured),
		slog.Int("poachers_active", s.PoachersActive),
		slog.Int("captures", s.Captures),
		slog.Int("interceptions", s.Interceptions),
		slog.Int("darts_fired", s.DartsFired),
		slog.Float64("intercept_rate", s.InterceptRate),
		slog.Int("meals", s.Meals),
		slog.Int("food_bought", s.FoodBought),
		slog.Int("currency", s.Currency),
		slog.Int("score", s.Score),
		slog.Float64("happiness_mean", s.HappinessMean),
		slog.Float64("health_mean", s.HealthMean),
		slog.Float64("health_min", s.HealthMin),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEnd,
		"session", s.Session,
		"game_time", s.GameTime,
		"alive", s.Alive,
		"dead", s.Dead,
		"captured", s.Captured,
		"poachers_active", s.PoachersActive,
		"darts_active", s.DartsActive,
		"meals", s.Meals,
		"deaths", s.Deaths,
		"captures", s.Captures,
		"spawns", s.Spawns,
		"interceptions", s.Interceptions,
		"darts_fired", s.DartsFired,
		"intercept_rate", s.InterceptRate,
		"food_bought", s.FoodBought,
		"income", s.Income,
		"currency", s.Currency,
		"score", s.Score,
		"food_total", s.FoodTotal,
		"happiness_mean", s.HappinessMean,
		"happiness_p10", s.HappinessP10,
		"happiness_p50", s.HappinessP50,
		"happiness_p90", s.HappinessP90,
		"health_mean", s.HealthMean,
		"health_p10", s.HealthP10,
		"health_min", s.HealthMin,
	)
}
