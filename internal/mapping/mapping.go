// internal/mapping/mapping.go
package mapping

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

const (
	// General maps top-level pipeline components to task labels.
	General = "general"
	// Perception maps perception sub-components to task labels.
	Perception = "perception"
)

// Entry pairs a component name with the task label its rows are saved under.
type Entry struct {
	Component string `mapstructure:"component" json:"component"`
	Label     string `mapstructure:"label" json:"label"`
}

// Mapping is an ordered list of entries. Order matters: a file belongs to the
// first entry whose component appears in it.
type Mapping struct {
	Name    string
	Entries []Entry
}

// Counter reports how many rows were produced by a component.
type Counter interface {
	Count(component string) int
}

var builtins = map[string]Mapping{
	General: {
		Name: General,
		Entries: []Entry{
			{Component: "RTKLocalizationComponent::Proc", Label: "localization"},
			{Component: "FusionComponent::Proc", Label: "perception"},
			{Component: "TrafficLightsPerceptionComponent::OnReceiveImage", Label: "trafficlight"},
			{Component: "PlanningComponent::Proc", Label: "planning"},
			{Component: "LaneDetectionComponent::OnReceiveImage", Label: "lane"},
			{Component: "ControlComponent::Proc", Label: "control"},
			{Component: "PredictionComponent::PredictionEndToEndProc", Label: "prediction"},
		},
	},
	Perception: {
		Name: Perception,
		Entries: []Entry{
			{Component: "FusionComponent::Proc", Label: "fusion"},
			{Component: "FusionCameraDetectionComponent::OnReceiveImage", Label: "fusion_camera"},
			{Component: "RadarDetectionComponent::Proc", Label: "radar"},
			{Component: "DetectionComponent::Proc", Label: "detection"},
			{Component: "RecognitionComponent::Proc", Label: "recognition"},
		},
	},
}

// Builtin returns a copy of the built-in mapping with the given name.
func Builtin(name string) (Mapping, bool) {
	m, ok := builtins[name]
	if !ok {
		return Mapping{}, false
	}
	return m.clone(), true
}

// Registry resolves mapping names to mappings. Custom mappings shadow
// built-ins of the same name.
type Registry struct {
	custom map[string]Mapping
}

// NewRegistry builds a registry from custom tables keyed by name. Every
// custom table is validated. Names are case-insensitive and stored in lower
// case.
func NewRegistry(custom map[string][]Entry) (*Registry, error) {
	r := &Registry{custom: make(map[string]Mapping)}
	for name, entries := range custom {
		name = strings.ToLower(name)
		m := Mapping{Name: name, Entries: append([]Entry(nil), entries...)}
		if err := m.Validate(); err != nil {
			return nil, err
		}
		r.custom[name] = m
	}
	return r, nil
}

// Lookup returns the mapping registered under name.
func (r *Registry) Lookup(name string) (Mapping, error) {
	key := strings.ToLower(name)
	if m, ok := r.custom[key]; ok {
		return m.clone(), nil
	}
	if m, ok := Builtin(key); ok {
		return m, nil
	}
	return Mapping{}, fmt.Errorf("unknown mapping %q (available: %s)", name, strings.Join(r.Names(), ", "))
}

// Names lists the built-in mapping names followed by custom names, each group
// sorted.
func (r *Registry) Names() []string {
	var names []string
	for _, n := range []string{General, Perception} {
		if _, shadowed := r.custom[n]; !shadowed {
			names = append(names, n)
		}
	}
	var custom []string
	for n := range r.custom {
		custom = append(custom, n)
	}
	sort.Strings(custom)
	return append(names, custom...)
}

// Validate checks that the mapping has entries, that every entry has both a
// component and a label, and that no component is listed twice.
func (m Mapping) Validate() error {
	if len(m.Entries) == 0 {
		return fmt.Errorf("mapping %q has no entries", m.Name)
	}
	seen := make(map[string]struct{}, len(m.Entries))
	for i, e := range m.Entries {
		if e.Component == "" {
			return fmt.Errorf("mapping %q entry %d: component is required", m.Name, i)
		}
		if e.Label == "" {
			return fmt.Errorf("mapping %q entry %d: label is required", m.Name, i)
		}
		if strings.ContainsAny(e.Label, `/\`) {
			return fmt.Errorf("mapping %q entry %d: label %q must not contain a path separator", m.Name, i, e.Label)
		}
		if strings.HasPrefix(e.Label, ".") {
			return fmt.Errorf("mapping %q entry %d: label %q must not start with a dot", m.Name, i, e.Label)
		}
		if _, dup := seen[e.Component]; dup {
			return fmt.Errorf("mapping %q: component %q listed twice", m.Name, e.Component)
		}
		seen[e.Component] = struct{}{}
	}
	return nil
}

// ErrNoMatch is returned by Match when no entry's component has any rows.
var ErrNoMatch = errors.New("no mapping entry matches")

// Match returns the first entry, in mapping order, whose component has at
// least one row in t. Later entries are not consulted once one matches.
func (m Mapping) Match(t Counter) (Entry, error) {
	for _, e := range m.Entries {
		if t.Count(e.Component) > 0 {
			return e, nil
		}
	}
	return Entry{}, ErrNoMatch
}

// Labels returns the output labels in mapping order.
func (m Mapping) Labels() []string {
	labels := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		labels[i] = e.Label
	}
	return labels
}

// HasLabel reports whether label is one of the mapping's outputs.
func (m Mapping) HasLabel(label string) bool {
	for _, e := range m.Entries {
		if e.Label == label {
			return true
		}
	}
	return false
}

func (m Mapping) clone() Mapping {
	return Mapping{Name: m.Name, Entries: append([]Entry(nil), m.Entries...)}
}
