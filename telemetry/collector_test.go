package telemetry

import (
	"math"
	"testing"
)

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(10)

	c.Record(NewMealEvent(1, 3, 0))
	c.Record(NewMealEvent(2, 4, 0))
	c.Record(Event{Type: EventDartFired, Time: 3})
	c.Record(Event{Type: EventDartFired, Time: 4})
	c.Record(Event{Type: EventDartFired, Time: 5})
	c.Record(Event{Type: EventDartFired, Time: 6})
	c.Record(NewNeutralizedEvent(6.5, 1, 2, 100))
	c.Record(NewCaptureEvent(7, 5, 9))
	c.Record(NewFoodBoughtEvent(8, 1, 5))
	c.Record(NewFoodBoughtEvent(8.5, 2, 5))
	c.Record(Event{Type: EventIncome, Time: 9, Amount: 25})

	if c.ShouldFlush(9.9) {
		t.Error("window should not be due before its length has passed")
	}
	if !c.ShouldFlush(10) {
		t.Fatal("window should be due at its length")
	}

	stats := c.Flush(10, Census{
		Session:   2,
		GameTime:  10,
		Alive:     3,
		Captured:  1,
		Currency:  950,
		Score:     100,
		FoodTotal: 10,
		Happiness: []float64{60, 80, 100},
		Health:    []float64{90, 100, 50},
	})

	if stats.Meals != 2 || stats.Captures != 1 || stats.Interceptions != 1 {
		t.Errorf("unexpected counts: %+v", stats)
	}
	if stats.DartsFired != 4 || math.Abs(stats.InterceptRate-0.25) > 1e-9 {
		t.Errorf("intercept rate = %v from %d darts, want 0.25 from 4", stats.InterceptRate, stats.DartsFired)
	}
	if stats.FoodBought != 10 || stats.Income != 25 {
		t.Errorf("food bought %d income %d, want 10 and 25", stats.FoodBought, stats.Income)
	}
	if stats.Session != 2 || stats.Alive != 3 || stats.Score != 100 {
		t.Errorf("census not carried into stats: %+v", stats)
	}
	if math.Abs(stats.HappinessMean-80) > 1e-9 {
		t.Errorf("happiness mean = %v, want 80", stats.HappinessMean)
	}
	if stats.HealthMin != 50 {
		t.Errorf("health min = %v, want 50", stats.HealthMin)
	}
	if stats.WindowStart != 0 || stats.WindowEnd != 10 {
		t.Errorf("window = [%v, %v], want [0, 10]", stats.WindowStart, stats.WindowEnd)
	}

	// Counters reset and the next window starts at the flush time
	if c.ShouldFlush(15) {
		t.Error("next window should start at the previous flush")
	}
	next := c.Flush(20, Census{})
	if next.Meals != 0 || next.DartsFired != 0 || next.InterceptRate != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
	if next.WindowStart != 10 {
		t.Errorf("next window start = %v, want 10", next.WindowStart)
	}
}

func TestCollectorDefaultWindow(t *testing.T) {
	c := NewCollector(0)
	if c.ShouldFlush(9.9) {
		t.Error("should not flush before the 10s fallback window")
	}
	if !c.ShouldFlush(10) {
		t.Error("should flush at the 10s fallback window")
	}
}
