package utils

import (
	"sync"
	"time"
)

// A pausable stopwatch. Also tracks laps, used for per superstep timing.
type Watch struct {
	mu           sync.RWMutex
	paused       bool
	pauseTime    time.Time
	startTime    time.Time
	adjustedTime time.Time
	lapTime      time.Time
}

func (w *Watch) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.paused {
		panic("watch cant start because paused")
	}
	w.startTime = time.Now()
	w.adjustedTime = w.startTime
	w.lapTime = w.startTime
}

func (w *Watch) Elapsed() time.Duration {
	w.mu.RLock()
	defer w.mu.RUnlock()
	mNow := time.Now()
	if w.paused {
		return mNow.Sub(w.adjustedTime) - mNow.Sub(w.pauseTime)
	}
	return mNow.Sub(w.adjustedTime)
}

func (w *Watch) AbsoluteElapsed() time.Duration {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return time.Since(w.startTime)
}

// Time since the previous lap (or start), then begins a new lap. Paused time is not counted.
func (w *Watch) Lap() time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	now := time.Now()
	d := now.Sub(w.lapTime)
	w.lapTime = now
	return d
}

func (w *Watch) Pause() time.Duration { // returns currently elapsed time
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.paused {
		panic("watch already paused")
	}
	w.pauseTime = time.Now()
	w.paused = true
	return w.pauseTime.Sub(w.adjustedTime)
}

func (w *Watch) UnPause() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.paused {
		panic("watch wasn't paused")
	}
	w.paused = false
	gap := time.Since(w.pauseTime)
	w.adjustedTime = w.adjustedTime.Add(gap)
	w.lapTime = w.lapTime.Add(gap)
}
