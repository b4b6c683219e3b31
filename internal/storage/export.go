package storage

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
)

type ExportData struct {
	Run     RunMetadata `json:"run"`
	Columns []string    `json:"columns"`
	Times   []float64   `json:"times"`
	States  [][]float64 `json:"states"`
}

// ExportJSON writes a stored run, metadata and states, to w.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	states, err := s.LoadStates(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		Run:     *meta,
		Columns: states.Columns,
		Times:   states.Times,
		States:  states.Rows,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func (s *Store) ExportJSONFile(path, runID string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return s.ExportJSON(file, runID)
}

// CopyStates copies states.csv of runID to w unchanged.
func (s *Store) CopyStates(w io.Writer, runID string) error {
	file, err := os.Open(filepath.Join(s.RunDir(runID), statesFile))
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(w, file)
	return err
}
