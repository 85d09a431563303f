// Package storage persists analysis runs: a metadata JSON per run plus CSV
// files with the sampled response curves.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/christmascoding/regelungsmaster/internal/pipeline"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	ZPK        bool      `json:"zpk"`
	Num        string    `json:"num,omitempty"`
	Den        string    `json:"den,omitempty"`
	Zeros      string    `json:"zeros,omitempty"`
	Poles      string    `json:"poles,omitempty"`
	Controller string    `json:"controller"`
	Kp         float64   `json:"kp"`
	Ki         float64   `json:"ki"`
	Kd         float64   `json:"kd"`
	LeadLag    bool      `json:"leadlag"`
	Z          float64   `json:"z,omitempty"`
	P          float64   `json:"p,omitempty"`

	Stable      bool     `json:"stable"`
	Oscillatory bool     `json:"oscillatory"`
	ClosedPoles []string `json:"closed_poles"`
	Notices     []string `json:"notices,omitempty"`
}

// Save persists one analysis run and returns its id.
func (s *Store) Save(in pipeline.Input, result *pipeline.Result) (string, error) {
	runID := fmt.Sprintf("analysis_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Timestamp:   time.Now(),
		ZPK:         in.ZPK,
		Num:         in.Num,
		Den:         in.Den,
		Zeros:       in.Zeros,
		Poles:       in.Poles,
		Controller:  string(in.Controller),
		Kp:          in.Kp,
		Ki:          in.Ki,
		Kd:          in.Kd,
		LeadLag:     in.LeadLag,
		Z:           in.Z,
		P:           in.P,
		Stable:      result.Stability.Stable,
		Oscillatory: result.Stability.Oscillatory,
		Notices:     result.Notices,
	}
	for _, p := range result.ClosedPoles {
		meta.ClosedPoles = append(meta.ClosedPoles, strconv.FormatComplex(p, 'g', 6, 128))
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if result.Step != nil {
		rows := make([][]float64, len(result.Step.Time))
		for i := range rows {
			rows[i] = []float64{result.Step.Time[i], result.Step.Output[i]}
		}
		if err := writeCSV(filepath.Join(runDir, "step.csv"), []string{"time", "output"}, rows); err != nil {
			return "", err
		}
	}

	if result.Freq != nil {
		db := result.Freq.GainDB()
		deg := result.Freq.PhaseDeg()
		rows := make([][]float64, len(result.Freq.Omega))
		for i := range rows {
			rows[i] = []float64{result.Freq.Omega[i], db[i], deg[i]}
		}
		if err := writeCSV(filepath.Join(runDir, "frequency.csv"), []string{"omega", "gain_db", "phase_deg"}, rows); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func writeCSV(path string, header []string, rows [][]float64) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = strconv.FormatFloat(v, 'f', 6, 64)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) List() ([]RunMetadata, error) {
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
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSeries reads one of a run's CSV files ("step" or "frequency") back as
// a header plus numeric columns.
func (s *Store) LoadSeries(runID, name string) ([]string, [][]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, name+".csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 1 {
		return nil, nil, fmt.Errorf("storage: empty series %s", name)
	}

	header := records[0]
	cols := make([][]float64, len(header))
	for i := 1; i < len(records); i++ {
		for j, field := range records[i] {
			if j >= len(cols) {
				break
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, err
			}
			cols[j] = append(cols[j], v)
		}
	}
	return header, cols, nil
}
