package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/san-kum/reentry/internal/dynamo"
)

const (
	metadataFile = "metadata.json"
	traceFile    = "trace.csv"
)

var traceHeader = []string{
	"step", "time", "x", "y", "vx", "vy", "ax", "ay", "lx", "ly",
	"altitude", "density", "temperature",
}

// FS keeps one directory per run holding metadata.json and trace.csv.
type FS struct {
	baseDir string
}

func NewFS(baseDir string) *FS {
	return &FS{baseDir: baseDir}
}

func (s *FS) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *FS) Close() error { return nil }

func (s *FS) Save(meta *RunMetadata, trace []dynamo.Sample) (string, error) {
	if meta.ID == "" {
		meta.ID = newRunID(meta.Body, meta.Timestamp)
	}
	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, traceFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(traceHeader); err != nil {
		return "", err
	}
	for _, s := range trace {
		if err := w.Write(encodeSample(s)); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return meta.ID, nil
}

func (s *FS) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *FS) Load(id string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, metadataFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *FS) LoadTrace(id string) ([]dynamo.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, id, traceFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(traceHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []dynamo.Sample{}, nil
	}

	samples := make([]dynamo.Sample, 0, len(records)-1)
	for i, record := range records[1:] {
		s, err := decodeSample(record)
		if err != nil {
			return nil, fmt.Errorf("trace row %d: %w", i+1, err)
		}
		samples = append(samples, s)
	}
	return samples, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func encodeSample(s dynamo.Sample) []string {
	return []string{
		strconv.Itoa(s.Step),
		formatFloat(s.Time),
		formatFloat(s.Position.X), formatFloat(s.Position.Y),
		formatFloat(s.Velocity.X), formatFloat(s.Velocity.Y),
		formatFloat(s.Acceleration.X), formatFloat(s.Acceleration.Y),
		formatFloat(s.Load.X), formatFloat(s.Load.Y),
		formatFloat(s.Altitude),
		formatFloat(s.Density),
		formatFloat(s.Temperature),
	}
}

func decodeSample(record []string) (dynamo.Sample, error) {
	if len(record) != len(traceHeader) {
		return dynamo.Sample{}, fmt.Errorf("want %d fields, got %d", len(traceHeader), len(record))
	}
	step, err := strconv.Atoi(record[0])
	if err != nil {
		return dynamo.Sample{}, err
	}
	vals := make([]float64, len(record)-1)
	for i, field := range record[1:] {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return dynamo.Sample{}, err
		}
		vals[i] = v
	}
	return dynamo.Sample{
		Step:         step,
		Time:         vals[0],
		Position:     dynamo.V(vals[1], vals[2]),
		Velocity:     dynamo.V(vals[3], vals[4]),
		Acceleration: dynamo.V(vals[5], vals[6]),
		Load:         dynamo.V(vals[7], vals[8]),
		Altitude:     vals[9],
		Density:      vals[10],
		Temperature:  vals[11],
	}, nil
}
