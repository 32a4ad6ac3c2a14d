// Package export renders prediction results for other programs.
package export

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/san-kum/reentry/internal/dynamo"
	"github.com/san-kum/reentry/internal/storage"
	"github.com/san-kum/reentry/internal/trajectory"
)

const (
	MsgNonConvergence = "Simulation did not converge within maximum steps"
	MsgWillNotImpact  = "Trajectory will not impact planet surface"
)

// Response is {success, landingPoint, planet, steps} on success and
// {error} on failure.
type Response struct {
	Success      bool                     `json:"success,omitempty"`
	LandingPoint *trajectory.LandingPoint `json:"landingPoint,omitempty"`
	Planet       string                   `json:"planet,omitempty"`
	Steps        int                      `json:"steps,omitempty"`
	Termination  string                   `json:"termination,omitempty"`
	FlightTime   float64                  `json:"flightTime,omitempty"`
	ImpactTime   float64                  `json:"impactTime,omitempty"`
	Error        string                   `json:"error,omitempty"`
}

func FromLanding(l *trajectory.Landing) Response {
	p := l.Point
	return Response{
		Success:      true,
		LandingPoint: &p,
		Planet:       l.Body,
		Steps:        l.Steps,
		Termination:  l.Termination.String(),
		FlightTime:   l.FlightTime,
		ImpactTime:   l.ImpactTime,
	}
}

func FromError(err error) Response {
	switch {
	case errors.Is(err, dynamo.ErrNonConvergence):
		return Response{Error: MsgNonConvergence}
	case errors.Is(err, dynamo.ErrWillNotImpact):
		return Response{Error: MsgWillNotImpact}
	default:
		return Response{Error: err.Error()}
	}
}

// FromRun picks the shape for a landing and error pair as returned by
// Runner.RunToCompletion.
func FromRun(l *trajectory.Landing, err error) Response {
	if err != nil {
		return FromError(err)
	}
	return FromLanding(l)
}

// FromMetadata rebuilds the response of a stored run.
func FromMetadata(m *storage.RunMetadata) Response {
	if !m.Success {
		return Response{Error: m.Error}
	}
	return Response{
		Success:      true,
		LandingPoint: m.Landing,
		Planet:       m.Body,
		Steps:        m.Steps,
		Termination:  m.Termination,
		FlightTime:   m.FlightTime,
		ImpactTime:   m.ImpactTime,
	}
}

func Write(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// TraceData is a stored run with every sample.
type TraceData struct {
	Run     *storage.RunMetadata `json:"run"`
	Samples []dynamo.Sample      `json:"samples"`
}

func WriteTrace(w io.Writer, meta *storage.RunMetadata, samples []dynamo.Sample) error {
	return Write(w, TraceData{Run: meta, Samples: samples})
}
