package main

import "time"

// FadeFunc draws one frame of a fade. terminal is true exactly once, on the
// last call, with opacity 0.
type FadeFunc func(opacity float64, terminal bool)

// Fade is a one-shot linear opacity ramp from 1 to 0. It does not schedule
// itself; the owner advances it with Tick from its frame loop.
type Fade struct {
	draw  FadeFunc
	start time.Time
	end   time.Time
	slope float64 // opacity lost per millisecond
	dead  bool
}

// NewFade draws full opacity immediately and starts fading once delay has
// passed.
func NewFade(draw FadeFunc, now time.Time, delay, duration time.Duration) *Fade {
	f := &Fade{
		draw:  draw,
		start: now.Add(delay),
	}
	f.end = f.start.Add(duration)
	if duration > 0 {
		f.slope = 1 / float64(duration.Milliseconds())
	}
	draw(1, false)
	return f
}

// Tick advances the fade to now and reports whether it is still alive.
func (f *Fade) Tick(now time.Time) bool {
	if f.dead {
		return false
	}
	if now.Before(f.start) {
		return true
	}
	if now.Before(f.end) {
		elapsed := float64(now.Sub(f.start).Milliseconds())
		f.draw(1-f.slope*elapsed, false)
		return true
	}
	f.Kill()
	f.draw(0, true)
	return false
}

func (f *Fade) Kill() {
	f.dead = true
}

func (f *Fade) Dead() bool {
	return f.dead
}

// marchingAnts is the looping dash-offset driver for selection outlines.
type marchingAnts struct {
	running bool
	offset  int
	last    time.Time
	draw    func(offset int)
}

func (a *marchingAnts) Start(now time.Time, offset int, draw func(offset int)) {
	a.running = true
	a.offset = offset
	a.last = now
	a.draw = draw
}

func (a *marchingAnts) Stop() {
	a.running = false
	a.draw = nil
}

func (a *marchingAnts) Running() bool {
	return a.running
}

// Tick steps the offset once per elapsed interval and redraws.
func (a *marchingAnts) Tick(now time.Time) bool {
	if !a.running {
		return false
	}
	steps := int(now.Sub(a.last) / antsInterval)
	if steps <= 0 {
		return true
	}
	a.last = a.last.Add(time.Duration(steps) * antsInterval)
	a.offset += steps
	if a.draw != nil {
		a.draw(a.offset)
	}
	return a.running
}
