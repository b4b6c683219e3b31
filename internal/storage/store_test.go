package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/boxsim/internal/sim"
)

func testResult() *sim.Result {
	return &sim.Result{
		BodyIDs:    []string{"a", "b"},
		Times:      []float64{0, 1},
		Positions:  [][]float64{{100, 200}, {101, 198}},
		Velocities: [][]float64{{0, 0}, {1, -2}},
		Metrics:    map[string]float64{"energy": 1.5},
		FramesRun:  1,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(RunMetadata{Scenario: "two-box", Timestep: 1, SubSteps: 14}, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "two-box_") {
		t.Errorf("unexpected run id %q", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Scenario != "two-box" || meta.SubSteps != 14 || meta.Frames != 1 {
		t.Errorf("unexpected metadata: %+v", meta)
	}
	if meta.Metrics["energy"] != 1.5 {
		t.Errorf("expected energy 1.5, got %f", meta.Metrics["energy"])
	}
	if len(meta.Bodies) != 2 {
		t.Errorf("expected 2 bodies, got %v", meta.Bodies)
	}

	states, err := st.LoadStates(runID)
	if err != nil {
		t.Fatalf("load states failed: %v", err)
	}
	if len(states.Rows) != 2 || len(states.Times) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(states.Rows))
	}

	want := []string{"a_y", "a_v", "b_y", "b_v"}
	if strings.Join(states.Columns, ",") != strings.Join(want, ",") {
		t.Errorf("expected columns %v, got %v", want, states.Columns)
	}

	b := states.Column("b_y")
	if len(b) != 2 || b[1] != 198 {
		t.Errorf("unexpected b_y column %v", b)
	}
	if got := states.PositionColumns(); len(got) != 2 || got[0] != "a_y" {
		t.Errorf("unexpected position columns %v", got)
	}
	if states.Column("zz") != nil {
		t.Error("expected nil for unknown column")
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	for i := 0; i < 2; i++ {
		if _, err := st.Save(RunMetadata{Scenario: "drop"}, testResult()); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestStoreList_MissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "missing"))
	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Errorf("expected empty list, got %v, %v", runs, err)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runID, err := st.Save(RunMetadata{ID: "fixed", Scenario: "drop"}, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID != "fixed" {
		t.Errorf("expected given id to be kept, got %s", runID)
	}

	for _, name := range []string{metadataFile, statesFile} {
		if _, err := os.Stat(filepath.Join(tmpDir, runID, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	runID, err := st.Save(RunMetadata{Scenario: "collide"}, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	var buf bytes.Buffer
	if err := st.ExportJSON(&buf, runID); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("export is not valid json: %v", err)
	}
	if data.Run.ID != runID || len(data.States) != 2 || len(data.Columns) != 4 {
		t.Errorf("unexpected export: %+v", data)
	}

	buf.Reset()
	if err := st.CopyStates(&buf, runID); err != nil {
		t.Fatalf("copy states failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "time,a_y,a_v,b_y,b_v") {
		t.Errorf("unexpected csv header: %q", buf.String())
	}
}
