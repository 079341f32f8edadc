// Package storage persists completed runs: one directory per run with the
// metadata and run averages in metadata.json and the per-block means in
// blocks.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"ljmd/internal/config"
	"ljmd/internal/run"
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
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	N         int                `json:"n"`
	Box       float64            `json:"box"`
	Density   float64            `json:"density"`
	NBlock    int                `json:"nblock"`
	NStep     int                `json:"nstep"`
	RCut      float64            `json:"r_cut"`
	Dt        float64            `json:"dt"`
	Averages  map[string]float64 `json:"averages"`
}

func (s *Store) Save(n int, box float64, p *config.Params, result *run.Result) (string, error) {
	runID := fmt.Sprintf("nve_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	avgs := make(map[string]float64, len(result.Names))
	for i, name := range result.Names {
		avgs[name] = result.Avg.Means[i]
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		N:         n,
		Box:       box,
		Density:   float64(n) / (box * box * box),
		NBlock:    p.NBlock,
		NStep:     p.NStep,
		RCut:      p.RCut,
		Dt:        p.Dt,
		Averages:  avgs,
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

	csvFile, err := os.Create(filepath.Join(runDir, "blocks.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := append([]string{"block"}, result.Names...)
	if err := w.Write(header); err != nil {
		return "", err
	}
	for i, b := range result.Blocks {
		row := []string{strconv.Itoa(i + 1)}
		for _, mean := range b.Means {
			row = append(row, strconv.FormatFloat(mean, 'f', 8, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	return runID, nil
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
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
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

// LoadBlocks reads back the per-block means: one series per observable
// name, indexed by block.
func (s *Store) LoadBlocks(runID string) (names []string, blocks [][]float64, err error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "blocks.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 1 {
		return nil, nil, fmt.Errorf("run %s has no block data", runID)
	}

	names = records[0][1:]
	blocks = make([][]float64, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make([]float64, 0, len(record)-1)
		for _, field := range record[1:] {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("run %s: bad block value %q", runID, field)
			}
			row = append(row, val)
		}
		blocks = append(blocks, row)
	}
	return names, blocks, nil
}
