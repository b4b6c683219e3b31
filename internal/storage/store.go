package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/boxsim/internal/log"
	"github.com/san-kum/boxsim/internal/sim"
)

const (
	metadataFile = "metadata.json"
	statesFile   = "states.csv"
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
	ID          string             `json:"id"`
	Scenario    string             `json:"scenario"`
	Timestamp   time.Time          `json:"timestamp"`
	Timestep    float64            `json:"timestep"`
	SubSteps    int                `json:"sub_steps"`
	Frames      int                `json:"frames"`
	LowerBound  float64            `json:"lower_bound"`
	UpperBound  float64            `json:"upper_bound"`
	Gravity     float64            `json:"gravity"`
	Bodies      []string           `json:"bodies"`
	EnergyDrift float64            `json:"energy_drift"`
	Metrics     map[string]float64 `json:"metrics"`
}

// NewRunID returns "<scenario>_<8 hex chars>".
func NewRunID(scenario string) string {
	return fmt.Sprintf("%s_%s", scenario, uuid.NewString()[:8])
}

// Save writes meta and the per-frame states of result into a new run
// directory. meta.ID is assigned when empty.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	if meta.ID == "" {
		meta.ID = NewRunID(meta.Scenario)
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	meta.Bodies = result.BodyIDs
	meta.Frames = result.FramesRun
	meta.EnergyDrift = result.EnergyDrift
	meta.Metrics = result.Metrics

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

	if err := writeStates(filepath.Join(runDir, statesFile), result); err != nil {
		return "", err
	}

	log.Debug("saved run %s to %s", meta.ID, runDir)
	return meta.ID, nil
}

func writeStates(path string, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{"time"}
	for _, id := range result.BodyIDs {
		header = append(header, id+"_y", id+"_v")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range result.Times {
		row := []string{strconv.FormatFloat(result.Times[i], 'f', 6, 64)}
		for j := range result.BodyIDs {
			row = append(row,
				strconv.FormatFloat(result.Positions[i][j], 'f', 6, 64),
				strconv.FormatFloat(result.Velocities[i][j], 'f', 6, 64),
			)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns every readable run, newest first.
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
			log.Debug("skipping %s: %v", entry.Name(), err)
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// States is the tabular content of states.csv.
type States struct {
	Columns []string
	Times   []float64
	Rows    [][]float64
}

// Column returns one column by name, e.g. "a_y".
func (st *States) Column(name string) []float64 {
	idx := -1
	for i, c := range st.Columns {
		if c == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	out := make([]float64, 0, len(st.Rows))
	for _, row := range st.Rows {
		if idx < len(row) {
			out = append(out, row[idx])
		}
	}
	return out
}

// PositionColumns lists the "<id>_y" columns in file order.
func (st *States) PositionColumns() []string {
	var cols []string
	for _, c := range st.Columns {
		if strings.HasSuffix(c, "_y") {
			cols = append(cols, c)
		}
	}
	return cols
}

func (s *Store) LoadStates(runID string) (*States, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, statesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	st := &States{}
	if len(records) == 0 {
		return st, nil
	}
	st.Columns = records[0][1:]

	for _, record := range records[1:] {
		if len(record) == 0 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}

		row := make([]float64, 0, len(record)-1)
		for _, field := range record[1:] {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("run %s: bad value %q at t=%s: %w", runID, field, record[0], err)
			}
			row = append(row, val)
		}
		st.Times = append(st.Times, t)
		st.Rows = append(st.Rows, row)
	}

	return st, nil
}

// RunDir is the directory holding runID's files.
func (s *Store) RunDir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}
