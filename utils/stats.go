package utils

import "time"

// Stats for performance monitoring
type Stats struct {
	GenerationsPerSecond float64
	AveragePopulation    float64
	TotalGenerations     int
	StartTime            time.Time
	PeakPopulation       int
	Births               int
	Deaths               int
}

// NewStats starts tracking a run whose generation 0 holds population cells
func NewStats(population int) *Stats {
	return &Stats{
		StartTime:         time.Now(),
		AveragePopulation: float64(population),
		PeakPopulation:    population,
	}
}

// Update records a completed generation
func (s *Stats) Update(generation, population, births, deaths int, duration time.Duration) {
	s.TotalGenerations = generation
	if duration > 0 {
		s.GenerationsPerSecond = 1.0 / duration.Seconds()
	}

	// Simple moving average for population
	if s.AveragePopulation == 0 {
		s.AveragePopulation = float64(population)
	} else {
		s.AveragePopulation = (s.AveragePopulation * 0.9) + (float64(population) * 0.1)
	}

	s.PeakPopulation = max(s.PeakPopulation, population)
	s.Births += births
	s.Deaths += deaths
}

// Runtime returns the time since the run started
func (s *Stats) Runtime() time.Duration {
	return time.Since(s.StartTime)
}
