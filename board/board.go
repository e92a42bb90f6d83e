package board

import (
	_ "embed"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Default is the board used when a workspace does not name one.
const Default = "activity-board"

// Profile is the part of a board's configuration the generator queries:
// which pins exist, what every program must include and set up, and which
// optional hardware is fitted.
type Profile struct {
	Name     string   `yaml:"name"`
	Title    string   `yaml:"title,omitempty"`
	Pins     []int    `yaml:"pins"`
	ADC      []int    `yaml:"adc,omitempty"`
	Includes []string `yaml:"includes,omitempty"`
	Setup    []string `yaml:"setup,omitempty"`
	Features []string `yaml:"features,omitempty"`
}

//go:embed profiles.yaml
var builtinYAML []byte

var builtins = func() map[string]*Profile {
	profiles, err := Parse(builtinYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded board profiles: %v", err))
	}
	m := make(map[string]*Profile, len(profiles))
	for _, p := range profiles {
		m[p.Name] = p
	}
	return m
}()

// Parse decodes a YAML list of profiles.
func Parse(data []byte) ([]*Profile, error) {
	var profiles []*Profile
	if err := yaml.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("decode board profiles: %w", err)
	}
	for i, p := range profiles {
		if p == nil || p.Name == "" {
			return nil, fmt.Errorf("board profile %d has no name", i)
		}
	}
	return profiles, nil
}

// Load reads extra profiles from a YAML file.
func Load(path string) ([]*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read board profiles %s: %w", path, err)
	}
	return Parse(data)
}

// Builtin returns one of the embedded profiles.
func Builtin(name string) (*Profile, bool) {
	p, ok := builtins[name]
	return p, ok
}

// Lookup returns the named profile, searching extra before the embedded set.
// An empty name selects Default.
func Lookup(name string, extra ...*Profile) (*Profile, error) {
	if name == "" {
		name = Default
	}
	for _, p := range extra {
		if p.Name == name {
			return p, nil
		}
	}
	if p, ok := builtins[name]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("unknown board %q", name)
}

// Names lists the embedded board names in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for n := range builtins {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

func (p *Profile) HasPin(pin int) bool {
	return slices.Contains(p.Pins, pin)
}

func (p *Profile) HasADC(ch int) bool {
	return slices.Contains(p.ADC, ch)
}

func (p *Profile) Supports(feature string) bool {
	return slices.Contains(p.Features, feature)
}
