// Package storage persists finished predictions for later review.
package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/san-kum/reentry/internal/dynamo"
	"github.com/san-kum/reentry/internal/trajectory"
)

var ErrNotFound = errors.New("storage: run not found")

// Backend stores run metadata with the per-step trace.
type Backend interface {
	Init() error
	Close() error

	Save(meta *RunMetadata, trace []dynamo.Sample) (string, error)
	List() ([]RunMetadata, error)
	Load(id string) (*RunMetadata, error)
	LoadTrace(id string) ([]dynamo.Sample, error)
}

type RunMetadata struct {
	ID          string                   `json:"id"`
	Timestamp   time.Time                `json:"timestamp"`
	Scenario    string                   `json:"scenario"`
	Body        string                   `json:"body"`
	Vehicle     string                   `json:"vehicle"`
	Integrator  string                   `json:"integrator"`
	StepSize    float64                  `json:"step_size"`
	MaxSteps    int                      `json:"max_steps"`
	Angle       float64                  `json:"angle"`
	Success     bool                     `json:"success"`
	Termination string                   `json:"termination"`
	Error       string                   `json:"error,omitempty"`
	Landing     *trajectory.LandingPoint `json:"landing,omitempty"`
	Steps       int                      `json:"steps"`
	FlightTime  float64                  `json:"flight_time"`
	ImpactTime  float64                  `json:"impact_time"`
	Metrics     map[string]float64       `json:"metrics"`
}

// NewRunMetadata summarises a finished run. runErr is the error the run
// returned, if any.
func NewRunMetadata(scenario string, settings trajectory.Settings, snap trajectory.Snapshot, body string, res *trajectory.Result, runErr error) *RunMetadata {
	meta := &RunMetadata{
		Timestamp:  time.Now().UTC(),
		Scenario:   scenario,
		Body:       body,
		Vehicle:    snap.Vehicle,
		Integrator: settings.Integrator,
		StepSize:   settings.StepSize,
		MaxSteps:   settings.MaxSteps,
		Angle:      snap.Angle,
		Success:    runErr == nil,
	}
	if runErr != nil {
		meta.Error = runErr.Error()
	}
	if res == nil {
		return meta
	}
	meta.Termination = res.Termination.String()
	meta.Steps = len(res.Samples)
	meta.Metrics = res.Metrics
	if l := res.Landing; l != nil {
		p := l.Point
		meta.Landing = &p
		meta.FlightTime = l.FlightTime
		meta.ImpactTime = l.ImpactTime
	}
	return meta
}

func newRunID(body string, ts time.Time) string {
	return fmt.Sprintf("%s_%d", body, ts.UnixNano())
}

// Open returns an initialised backend of the given kind rooted at dir.
func Open(kind, dir string) (Backend, error) {
	var b Backend
	switch kind {
	case "fs", "":
		b = NewFS(dir)
	case "sqlite":
		b = NewSQLite(filepath.Join(dir, "runs.db"))
	case "memory":
		b = NewSQLite("")
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", kind)
	}
	if err := b.Init(); err != nil {
		return nil, err
	}
	return b, nil
}
