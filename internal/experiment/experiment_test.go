package experiment

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/boxsim/internal/config"
	"github.com/san-kum/boxsim/internal/dynamo"
)

func TestExperimentRun(t *testing.T) {
	s := config.GetPreset("two-box")
	s.Frames = 50

	exp := New(s)
	if err := exp.Setup(); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	result, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Times) != 51 {
		t.Errorf("expected 51 recorded frames, got %d", len(result.Times))
	}
	for _, name := range NewRegistry().ListMetrics() {
		if _, ok := result.Metrics[name]; !ok {
			t.Errorf("metric %s missing from result", name)
		}
	}
	if result.Metrics["containment"] != 1 {
		t.Errorf("expected bodies to stay contained, got %f", result.Metrics["containment"])
	}

	meta := exp.Metadata()
	if meta.Scenario != "two-box" || meta.SubSteps != 14 {
		t.Errorf("unexpected metadata %+v", meta)
	}
}

func TestExperimentRun_NotSetup(t *testing.T) {
	if _, err := New(config.GetPreset("drop")).Run(context.Background()); err == nil {
		t.Error("expected error when running without setup")
	}
}

func TestExperimentSetup_Invalid(t *testing.T) {
	s := config.GetPreset("two-box")
	s.Springs = append(s.Springs, config.SpringConfig{A: "a", B: "ghost", Stiffness: 1})

	if err := New(s).Setup(); !errors.Is(err, dynamo.ErrUnknownBody) {
		t.Errorf("expected ErrUnknownBody, got %v", err)
	}

	s = config.GetPreset("two-box")
	if err := New(s).Setup("nope"); err == nil {
		t.Error("expected error for unknown metric")
	}
}

func TestCompareSubSteps(t *testing.T) {
	s := config.GetPreset("collide")
	s.Frames = 100

	counts := []int{1, 4, 14}
	out, err := CompareSubSteps(context.Background(), s, counts)
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	if len(out) != len(counts) {
		t.Fatalf("expected %d comparisons, got %d", len(counts), len(out))
	}
	for i, c := range out {
		if c.SubSteps != counts[i] {
			t.Errorf("expected results in input order, got %d at %d", c.SubSteps, i)
		}
		if len(c.Final) != 2 {
			t.Errorf("expected 2 final positions, got %d", len(c.Final))
		}
	}
	if s.SubSteps != 14 {
		t.Error("compare must not modify the input scenario")
	}
}
