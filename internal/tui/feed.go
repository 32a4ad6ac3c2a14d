package tui

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/san-kum/reentry/internal/dynamo"
)

const (
	maxTrail = 1200
	maxDelay = 100 * time.Millisecond
)

type trailPoint struct {
	pos         dynamo.Vec2
	temperature float64
}

// Feed is an Observer that keeps a thinned copy of a running trajectory for
// display. OnStep runs on the simulation goroutine and sleeps for the
// current delay, which paces the run to something watchable.
type Feed struct {
	mu       sync.Mutex
	latest   dynamo.Sample
	count    int
	every    int
	trail    []trailPoint
	peakTemp float64
	maxQ     float64

	delay atomic.Int64
}

// FeedView is a consistent copy of a Feed taken at one instant.
type FeedView struct {
	Latest   dynamo.Sample
	Count    int
	Trail    []dynamo.Vec2
	Temps    []float64
	PeakTemp float64
	MaxQ     float64
}

func NewFeed(delay time.Duration) *Feed {
	f := &Feed{every: 1, trail: make([]trailPoint, 0, maxTrail)}
	f.SetDelay(delay)
	return f
}

func (f *Feed) OnStep(s dynamo.Sample) {
	f.mu.Lock()
	f.latest = s
	f.count++
	if f.count%f.every == 0 {
		f.trail = append(f.trail, trailPoint{pos: s.Position, temperature: s.Temperature})
		if len(f.trail) >= maxTrail {
			f.thin()
		}
	}
	f.peakTemp = math.Max(f.peakTemp, s.Temperature)
	f.maxQ = math.Max(f.maxQ, s.DynamicPressure())
	f.mu.Unlock()

	if d := f.Delay(); d > 0 {
		time.Sleep(d)
	}
}

// thin halves the trail and the sampling rate. Caller holds mu.
func (f *Feed) thin() {
	kept := f.trail[:0]
	for i := 0; i < len(f.trail); i += 2 {
		kept = append(kept, f.trail[i])
	}
	f.trail = kept
	f.every *= 2
}

func (f *Feed) Delay() time.Duration {
	return time.Duration(f.delay.Load())
}

// SetDelay sets the per-step pause, clamped to [0, 100ms].
func (f *Feed) SetDelay(d time.Duration) {
	d = max(0, min(d, maxDelay))
	f.delay.Store(int64(d))
}

func (f *Feed) View() FeedView {
	f.mu.Lock()
	defer f.mu.Unlock()
	v := FeedView{
		Latest:   f.latest,
		Count:    f.count,
		Trail:    make([]dynamo.Vec2, len(f.trail)),
		Temps:    make([]float64, len(f.trail)),
		PeakTemp: f.peakTemp,
		MaxQ:     f.maxQ,
	}
	for i, p := range f.trail {
		v.Trail[i] = p.pos
		v.Temps[i] = p.temperature
	}
	return v
}
