package trajectory

import (
	"context"
	"sync"
)

// Outcome pairs a run's result with its error.
type Outcome struct {
	Label  string
	Result *Result
	Err    error
}

// Ensemble runs independent predictions concurrently, one goroutine each.
type Ensemble struct {
	labels  []string
	runners []*Runner
}

func NewEnsemble() *Ensemble {
	return &Ensemble{}
}

func (e *Ensemble) Add(label string, r *Runner) {
	e.labels = append(e.labels, label)
	e.runners = append(e.runners, r)
}

func (e *Ensemble) Len() int { return len(e.runners) }

// Run returns one outcome per runner in the order they were added. A
// failing run does not stop the others.
func (e *Ensemble) Run(ctx context.Context) []Outcome {
	out := make([]Outcome, len(e.runners))

	var wg sync.WaitGroup
	for i, r := range e.runners {
		wg.Add(1)
		go func(idx int, r *Runner) {
			defer wg.Done()
			res, err := r.Run(ctx)
			out[idx] = Outcome{Label: e.labels[idx], Result: res, Err: err}
		}(i, r)
	}
	wg.Wait()

	return out
}
