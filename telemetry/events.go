// Package telemetry provides session statistics, bookmarking and output files.
package telemetry

// EventType identifies telemetry events.
type EventType string

const (
	EventMeal               EventType = "meal"
	EventAnimalDied         EventType = "animal_died"
	EventAnimalCaptured     EventType = "animal_captured"
	EventPoacherSpawned     EventType = "poacher_spawned"
	EventPoacherRetargeted  EventType = "poacher_retargeted"
	EventPoacherGaveUp      EventType = "poacher_gave_up"
	EventPoacherNeutralized EventType = "poacher_neutralized"
	EventDartFired          EventType = "dart_fired"
	EventDartExpired        EventType = "dart_expired"
	EventFoodBought         EventType = "food_bought"
	EventIncome             EventType = "income"
	EventGameOver           EventType = "game_over"
	EventSessionReset       EventType = "session_reset"
)

// Event is a single thing that happened during a tick.
// Only the fields relevant to the event type are set.
type Event struct {
	Type     EventType `json:"type" msgpack:"type"`
	Time     float64   `json:"time" msgpack:"time"`
	EntityID uint32    `json:"entity_id,omitempty" msgpack:"entity_id,omitempty"`
	TargetID uint32    `json:"target_id,omitempty" msgpack:"target_id,omitempty"`
	Habitat  int       `json:"habitat,omitempty" msgpack:"habitat,omitempty"`
	Amount   int       `json:"amount,omitempty" msgpack:"amount,omitempty"`
}

// NewMealEvent records an animal eating one food unit.
func NewMealEvent(now float64, animalID uint32, habitat int) Event {
	return Event{Type: EventMeal, Time: now, EntityID: animalID, Habitat: habitat}
}

// NewCaptureEvent records a poacher taking an animal.
func NewCaptureEvent(now float64, poacherID, animalID uint32) Event {
	return Event{Type: EventAnimalCaptured, Time: now, EntityID: poacherID, TargetID: animalID}
}

// NewNeutralizedEvent records a dart hitting a poacher.
func NewNeutralizedEvent(now float64, dartID, poacherID uint32, reward int) Event {
	return Event{Type: EventPoacherNeutralized, Time: now, EntityID: dartID, TargetID: poacherID, Amount: reward}
}

// NewFoodBoughtEvent records a feed purchase.
func NewFoodBoughtEvent(now float64, habitat, units int) Event {
	return Event{Type: EventFoodBought, Time: now, Habitat: habitat, Amount: units}
}
