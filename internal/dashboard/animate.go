package dashboard

import (
	"sync"
	"time"
)

// DefaultFrame is the sampling interval of value animations.
const DefaultFrame = 16 * time.Millisecond

// Interpolate returns the value between start and end at progress, which is
// clamped to [0, 1].
func Interpolate(start, end, progress float64) float64 {
	switch {
	case progress <= 0:
		return start
	case progress >= 1:
		return end
	}
	return start + (end-start)*progress
}

// Animator moves a displayed value towards a target over time. At most one
// animation is pending per Animator; starting a new one cancels the previous
// and no frame of a cancelled animation reaches its sink.
type Animator struct {
	frame time.Duration

	mu   sync.Mutex
	gen  uint64
	stop chan struct{}
}

func NewAnimator(frame time.Duration) *Animator {
	if frame <= 0 {
		frame = DefaultFrame
	}
	return &Animator{frame: frame}
}

// Animate calls sink with interpolated values from start to end over
// duration, ending with end itself. A non-positive duration jumps to end.
func (a *Animator) Animate(start, end float64, duration time.Duration, sink func(float64)) {
	a.mu.Lock()
	if a.stop != nil {
		close(a.stop)
		a.stop = nil
	}
	a.gen++
	gen := a.gen

	if duration <= 0 {
		sink(end)
		a.mu.Unlock()
		return
	}

	stop := make(chan struct{})
	a.stop = stop
	a.mu.Unlock()

	go a.run(gen, stop, start, end, duration, sink)
}

// Running reports whether an animation is in progress.
func (a *Animator) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stop != nil
}

func (a *Animator) run(gen uint64, stop chan struct{}, start, end float64, duration time.Duration, sink func(float64)) {
	ticker := time.NewTicker(a.frame)
	defer ticker.Stop()

	begin := time.Now()
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			progress := float64(now.Sub(begin)) / float64(duration)
			if !a.emit(gen, Interpolate(start, end, progress), progress >= 1, sink) {
				return
			}
			if progress >= 1 {
				return
			}
		}
	}
}

// emit delivers one frame unless the animation was superseded.
func (a *Animator) emit(gen uint64, v float64, last bool, sink func(float64)) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.gen != gen {
		return false
	}
	sink(v)
	if last {
		a.stop = nil
	}
	return true
}
