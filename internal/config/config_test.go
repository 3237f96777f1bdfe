// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/mwiater/tracesplit/internal/mapping"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New())
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Root != "." || cfg.Mapping != mapping.General || cfg.SubMapping != mapping.Perception {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if !cfg.SkipExisting || cfg.WriteEmptySubTasks || cfg.Column != "latency" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoad_File(t *testing.T) {
	yaml := `
root: data/dataset1
mapping: lab
write_empty_subtasks: true
mappings:
  lab:
    - component: PlanningComponent::Proc
      label: plan
    - component: ControlComponent::Proc
      label: ctl
`
	path := filepath.Join(t.TempDir(), "tracesplit.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	v := viper.New()
	v.Set("config", path)
	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Root != "data/dataset1" || cfg.Mapping != "lab" || !cfg.WriteEmptySubTasks {
		t.Errorf("file values not applied: %+v", cfg)
	}

	tasks, _, err := cfg.Resolve()
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if !reflect.DeepEqual(tasks.Labels(), []string{"plan", "ctl"}) {
		t.Errorf("custom mapping order lost: %v", tasks.Labels())
	}
}

func TestLoad_MappingNameCase(t *testing.T) {
	yaml := `
mapping: Lab
mappings:
  Lab:
    - component: PlanningComponent::Proc
      label: plan
`
	path := filepath.Join(t.TempDir(), "tracesplit.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	v := viper.New()
	v.Set("config", path)
	cfg, err := Load(v)
	if err != nil {
		t.Fatal(err)
	}
	tasks, _, err := cfg.Resolve()
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if !reflect.DeepEqual(tasks.Labels(), []string{"plan"}) {
		t.Errorf("unexpected labels %v", tasks.Labels())
	}
}

func TestLoad_Errors(t *testing.T) {
	v := viper.New()
	v.Set("config", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := Load(v); err == nil {
		t.Error("expected error for missing config file")
	}

	v = viper.New()
	v.Set("mapping", "")
	if _, err := Load(v); err == nil {
		t.Error("expected error for empty mapping")
	}
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("TRACESPLIT_MAPPING", "perception")
	t.Setenv("TRACESPLIT_SKIP_EXISTING", "false")

	cfg, err := Load(viper.New())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Mapping != mapping.Perception || cfg.SkipExisting {
		t.Errorf("environment not applied: %+v", cfg)
	}
}

func TestResolve(t *testing.T) {
	cfg := Config{Mapping: mapping.General, SubMapping: mapping.Perception, Composite: "perception"}
	tasks, sub, err := cfg.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	if tasks.Name != mapping.General || sub.Name != mapping.Perception {
		t.Errorf("unexpected mappings: %s %s", tasks.Name, sub.Name)
	}

	// The perception table never produces the composite label itself.
	cfg.Mapping = mapping.Perception
	_, sub, err = cfg.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	if len(sub.Entries) != 0 {
		t.Errorf("expected no sub-task split, got %v", sub.Labels())
	}

	// A sub-task sharing the composite label would overwrite the aggregate.
	cfg = Config{Mapping: mapping.Perception, SubMapping: mapping.Perception, Composite: "fusion"}
	if _, _, err := cfg.Resolve(); err == nil || !strings.Contains(err.Error(), "composite label") {
		t.Errorf("Expected composite label conflict, got %v", err)
	}

	cfg.Mapping = "nope"
	if _, _, err := cfg.Resolve(); err == nil {
		t.Error("expected unknown mapping error")
	}
}
