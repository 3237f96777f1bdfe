// cmd/tracesplit/preprocess_test.go
package tracesplit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mwiater/tracesplit/internal/summary"
)

const traceCSV = `component,start,latency
PlanningComponent::Proc,1,10
PlanningComponent::Proc,2,11
PlanningComponent::Proc,3,12
`

func writeTrace(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestPreprocessCmd(t *testing.T) {
	dir := t.TempDir()
	writeTrace(t, dir, "run.csv", traceCSV)

	out, err := execute(t, "preprocess", dir)
	if err != nil {
		t.Fatalf("preprocess failed: %v\n%s", err, out)
	}
	b, err := os.ReadFile(filepath.Join(dir, "planning.csv"))
	if err != nil {
		t.Fatalf("planning.csv not written: %v", err)
	}
	if string(b) != traceCSV {
		t.Errorf("Expected full table in planning.csv, got %q", string(b))
	}
	if !strings.Contains(out, "Wrote 1 outputs from 1 files") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestPreprocessCmd_DryRun(t *testing.T) {
	dir := t.TempDir()
	writeTrace(t, dir, "run.csv", traceCSV)

	out, err := execute(t, "preprocess", dir, "--dry-run")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "planning.csv")); !os.IsNotExist(err) {
		t.Errorf("dry run must not write planning.csv (stat err: %v)", err)
	}
	if !strings.Contains(out, "Would write 1 outputs") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestPreprocessCmd_ConfigRoot(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "dataset1")
	if err := os.Mkdir(data, 0o755); err != nil {
		t.Fatal(err)
	}
	writeTrace(t, data, "run.csv", traceCSV)

	cfgPath := filepath.Join(dir, "tracesplit.yaml")
	content := "root: " + data + "\nmapping: lab\nmappings:\n  lab:\n    - component: PlanningComponent::Proc\n      label: plan\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if out, err := execute(t, "preprocess", "--config", cfgPath); err != nil {
		t.Fatalf("preprocess failed: %v\n%s", err, out)
	}
	if _, err := os.Stat(filepath.Join(data, "plan.csv")); err != nil {
		t.Errorf("expected plan.csv from the custom mapping: %v", err)
	}
}

func TestPreprocessCmd_Errors(t *testing.T) {
	if _, err := execute(t, "preprocess", filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for a missing root")
	}
	if _, err := execute(t, "preprocess", t.TempDir(), "--mapping", "nope"); err == nil {
		t.Error("expected error for an unknown mapping")
	}
}

func TestSummarizeCmd(t *testing.T) {
	dir := t.TempDir()
	writeTrace(t, dir, "run.csv", traceCSV)

	if out, err := execute(t, "preprocess", dir); err != nil {
		t.Fatalf("preprocess failed: %v\n%s", err, out)
	}

	out, err := execute(t, "summarize", dir, "--json")
	if err != nil {
		t.Fatalf("summarize failed: %v\n%s", err, out)
	}
	var res summary.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if len(res.Tasks) != 1 || res.Tasks[0].Label != "planning" || res.Tasks[0].Mean != 11 {
		t.Errorf("unexpected summary: %+v", res.Tasks)
	}

	out, err = execute(t, "summarize", dir)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "planning") || !strings.Contains(out, "11.000") {
		t.Errorf("unexpected table output: %s", out)
	}
}
