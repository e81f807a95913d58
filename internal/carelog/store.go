// Package carelog keeps the in-memory history of care events for a kept
// animal: feedings, sheddings, and weight measurements. Each log is capped so
// a long-running process holds a bounded window of recent history. Persistence
// beyond process memory is deliberately out of scope.
package carelog

import (
	"sync"
	"time"
)

// Log caps match the history windows the sensors were designed around.
const (
	maxFeedings  = 50
	maxSheddings = 20
	maxWeights   = 50
)

// gramsPerUnit converts the accepted weight units to grams.
var gramsPerUnit = map[string]float64{
	"g":  1,
	"kg": 1000,
	"oz": 28.349523125,
	"lb": 453.59237,
}

// FeedingEvent records one feeding.
type FeedingEvent struct {
	At       time.Time
	FoodType string
	FoodSize string
	Notes    string
}

// SheddingEvent records one shed, complete or partial.
type SheddingEvent struct {
	At       time.Time
	Complete bool
	Notes    string
}

// WeightEvent records one weight measurement in its original unit.
type WeightEvent struct {
	At     time.Time
	Weight float64
	Unit   string
	Notes  string
}

// Grams returns the measurement converted to grams. An unknown unit is
// treated as grams.
func (e WeightEvent) Grams() float64 {
	if factor, ok := gramsPerUnit[e.Unit]; ok {
		return e.Weight * factor
	}
	return e.Weight
}

// Trend classifies the weight development between the last two measurements.
type Trend string

const (
	TrendIncreasing   Trend = "increasing"
	TrendDecreasing   Trend = "decreasing"
	TrendStable       Trend = "stable"
	TrendInsufficient Trend = "insufficient_data"
)

// Store is a concurrency-safe in-memory care event log.
type Store struct {
	mu        sync.RWMutex
	now       func() time.Time
	feedings  []FeedingEvent
	sheddings []SheddingEvent
	weights   []WeightEvent
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{now: time.Now}
}

// LogFeeding appends a feeding event, evicting the oldest entry once the cap
// is reached. It returns the recorded event.
func (s *Store) LogFeeding(foodType, foodSize, notes string) FeedingEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	event := FeedingEvent{At: s.now(), FoodType: foodType, FoodSize: foodSize, Notes: notes}
	s.feedings = append(s.feedings, event)
	if len(s.feedings) > maxFeedings {
		s.feedings = s.feedings[len(s.feedings)-maxFeedings:]
	}
	return event
}

// LogShedding appends a shedding event.
func (s *Store) LogShedding(complete bool, notes string) SheddingEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	event := SheddingEvent{At: s.now(), Complete: complete, Notes: notes}
	s.sheddings = append(s.sheddings, event)
	if len(s.sheddings) > maxSheddings {
		s.sheddings = s.sheddings[len(s.sheddings)-maxSheddings:]
	}
	return event
}

// LogWeight appends a weight measurement.
func (s *Store) LogWeight(weight float64, unit, notes string) WeightEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	event := WeightEvent{At: s.now(), Weight: weight, Unit: unit, Notes: notes}
	s.weights = append(s.weights, event)
	if len(s.weights) > maxWeights {
		s.weights = s.weights[len(s.weights)-maxWeights:]
	}
	return event
}

// LastFeeding returns the most recent feeding, if any.
func (s *Store) LastFeeding() (FeedingEvent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.feedings) == 0 {
		return FeedingEvent{}, false
	}
	return s.feedings[len(s.feedings)-1], true
}

// LastShedding returns the most recent shedding, if any.
func (s *Store) LastShedding() (SheddingEvent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.sheddings) == 0 {
		return SheddingEvent{}, false
	}
	return s.sheddings[len(s.sheddings)-1], true
}

// LastWeight returns the most recent weight measurement, if any.
func (s *Store) LastWeight() (WeightEvent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.weights) == 0 {
		return WeightEvent{}, false
	}
	return s.weights[len(s.weights)-1], true
}

// Counts returns the number of retained feeding, shedding, and weight events.
func (s *Store) Counts() (feedings, sheddings, weights int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.feedings), len(s.sheddings), len(s.weights)
}

// WeightTrend compares the last two measurements in grams. A change of more
// than 2% either way counts as a trend; fewer than two measurements is
// insufficient data.
func (s *Store) WeightTrend() Trend {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.weights) < 2 {
		return TrendInsufficient
	}
	current := s.weights[len(s.weights)-1].Grams()
	previous := s.weights[len(s.weights)-2].Grams()

	switch {
	case current > previous*1.02:
		return TrendIncreasing
	case current < previous*0.98:
		return TrendDecreasing
	default:
		return TrendStable
	}
}
