// Package engine provides the tick loop driving the shard's daily and weekly
// township cycles.
package engine

import (
	"fmt"
	"log/slog"
	"time"
)

// TickSchedule defines when each layer runs relative to the tick counter.
const (
	TicksPerHour = 60    // 60 ticks = 1 shard-hour
	TicksPerDay  = 1440  // 24 hours × 60
	TicksPerWeek = 10080 // 7 days × 1440
)

// Engine drives the shard forward.
type Engine struct {
	Tick     uint64        // Current tick counter (monotonic, never resets)
	Speed    float64       // Multiplier: 1.0 = real-time, 0 = paused
	Interval time.Duration // Base tick interval (default 1 second)
	Running  bool

	// Callbacks for each tick layer — populated during setup.
	OnTick func(tick uint64) // Every tick (shard-minute)
	OnHour func(tick uint64) // Every 60 ticks
	OnDay  func(tick uint64) // Every 1440 ticks
	OnWeek func(tick uint64) // Every 10080 ticks
}

// NewEngine creates a tick engine with default settings.
func NewEngine() *Engine {
	return &Engine{
		Tick:     0,
		Speed:    1.0,
		Interval: time.Second,
		Running:  false,
	}
}

// Run starts the tick loop. Blocks until Stop() is called.
func (e *Engine) Run() {
	e.Running = true
	slog.Info("tick engine started", "tick", e.Tick, "speed", e.Speed)

	for e.Running {
		if e.Speed <= 0 {
			// Paused — sleep briefly and check again.
			time.Sleep(100 * time.Millisecond)
			continue
		}

		start := time.Now()

		e.step()

		// Sleep for the remainder of the tick interval, adjusted for speed.
		elapsed := time.Since(start)
		target := time.Duration(float64(e.Interval) / e.Speed)
		if elapsed < target {
			time.Sleep(target - elapsed)
		}
	}

	slog.Info("tick engine stopped", "tick", e.Tick)
}

// Stop halts the tick loop.
func (e *Engine) Stop() {
	e.Running = false
}

// step advances the shard by one tick.
func (e *Engine) step() {
	e.Tick++

	// Every tick: visitor counting and other fast updates.
	if e.OnTick != nil {
		e.OnTick(e.Tick)
	}

	// Every shard-hour: lookout memory decay, housekeeping.
	if e.Tick%TicksPerHour == 0 && e.OnHour != nil {
		e.OnHour(e.Tick)
	}

	// Every shard-day: fee charging, fame conversion, world save.
	if e.Tick%TicksPerDay == 0 && e.OnDay != nil {
		e.OnDay(e.Tick)
	}

	// Every shard-week: activity evaluation.
	if e.Tick%TicksPerWeek == 0 && e.OnWeek != nil {
		e.OnWeek(e.Tick)
	}
}

// ShardTime returns a human-readable shard time string from a tick number.
func ShardTime(tick uint64) string {
	totalMinutes := tick
	minutes := totalMinutes % 60
	totalHours := totalMinutes / 60
	hours := totalHours % 24
	totalDays := totalHours / 24
	days := totalDays%7 + 1
	weeks := totalDays/7 + 1

	return fmt.Sprintf("Week %d Day %d, %d:%02d", weeks, days, hours, minutes)
}
