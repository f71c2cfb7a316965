// Package store archives analysis runs on disk. Each run is a directory
// holding meta.json with the report summary and samples.json with the raw
// response, so runs can be reloaded and compared later.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"regulab/internal/pipeline"
	"regulab/internal/step"
)

type Store struct {
	root string
}

func New(root string) *Store {
	return &Store{root: root}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.root, 0755)
}

// RunMeta is the persisted summary of one analysis run.
type RunMeta struct {
	ID             string             `json:"id"`
	CreatedAt      time.Time          `json:"created_at"`
	Num            []float64          `json:"num"`
	Den            []float64          `json:"den"`
	Expression     string             `json:"expression"`
	Stable         bool               `json:"stable"`
	Metrics        map[string]float64 `json:"metrics"`
	Recommendation string             `json:"recommendation,omitempty"`
}

// Save archives the report and returns the generated run id.
func (s *Store) Save(rep *pipeline.Report) (string, error) {
	if rep.Response == nil {
		return "", fmt.Errorf("store: report has no response to archive")
	}

	id := time.Now().UTC().Format("run_20060102T150405")
	dir := filepath.Join(s.root, id)
	for n := 1; ; n++ {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			break
		}
		dir = filepath.Join(s.root, fmt.Sprintf("%s_%d", id, n))
	}
	id = filepath.Base(dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	meta := RunMeta{
		ID:         id,
		CreatedAt:  time.Now().UTC(),
		Num:        rep.System.Num(),
		Den:        rep.System.Den(),
		Expression: rep.Expression,
		Stable:     rep.Response.Stable,
		Metrics:    definedMetrics(rep.Response.Metrics),
	}
	if rep.RecommendationErr == nil {
		meta.Recommendation = string(rep.Recommendation.Type)
	}

	if err := writeJSON(filepath.Join(dir, "meta.json"), meta); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(dir, "samples.json"), rep.Response.Samples); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Load(id string) (*RunMeta, error) {
	data, err := os.ReadFile(filepath.Join(s.root, id, "meta.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadSamples(id string) ([]step.Sample, error) {
	data, err := os.ReadFile(filepath.Join(s.root, id, "samples.json"))
	if err != nil {
		return nil, err
	}
	var samples []step.Sample
	if err := json.Unmarshal(data, &samples); err != nil {
		return nil, err
	}
	return samples, nil
}

// List returns the archived run ids, oldest first.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			ids = append(ids, e.Name())
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func definedMetrics(m step.Metrics) map[string]float64 {
	out := make(map[string]float64)
	put := func(name string, f step.Measure) {
		if f.Defined {
			out[name] = f.Value
		}
	}
	put("steady_state", m.SteadyState)
	put("overshoot", m.Overshoot)
	put("settling_time", m.SettlingTime)
	put("rise_time", m.RiseTime)
	put("peak_time", m.PeakTime)
	return out
}

func writeJSON(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
