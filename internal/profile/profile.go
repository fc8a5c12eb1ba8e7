// Package profile provides declarative validation profiles loaded from
// YAML. A profile names a rule set - required format, required tags,
// excluded tags, and dynamic-tag argument rules - which compiles into a
// Value carrying those rules, ready to validate candidates.
//
// Profiles live in .tdf/profiles.yaml (repository) and ~/.tdf/profiles.yaml
// (user). Both files are loaded when present; a repository profile shadows a
// user profile with the same name.
package profile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/jpl-au/tdf/internal/tdf"
)

var (
	// ErrNotFound is returned when a named profile does not exist.
	ErrNotFound = errors.New("profile not found")
	// ErrInvalidRule is returned when a profile rule cannot be compiled.
	ErrInvalidRule = errors.New("invalid profile rule")
)

// Dynamic rule kinds.
const (
	KindNonEmpty = "nonempty"
	KindRegexp   = "regexp"
	KindEnum     = "enum"
	KindInt      = "int"
)

// DynamicRule constrains the argument of a dynamic tag. Kind selects the
// check; the remaining fields parameterise it.
type DynamicRule struct {
	Kind    string   `yaml:"kind"`
	Pattern string   `yaml:"pattern,omitempty"` // regexp
	Values  []string `yaml:"values,omitempty"`  // enum
	Min     *int     `yaml:"min,omitempty"`     // int
	Max     *int     `yaml:"max,omitempty"`     // int
}

// Profile is a named validation rule set.
type Profile struct {
	Name    string                 `yaml:"-"`
	Format  string                 `yaml:"format,omitempty"`
	Require []string               `yaml:"require,omitempty"`
	Exclude []string               `yaml:"exclude,omitempty"`
	Dynamic map[string]DynamicRule `yaml:"dynamic,omitempty"`
}

// Set holds the profiles from all loaded files.
type Set struct {
	profiles map[string]Profile
}

// file is the YAML document shape.
type file struct {
	Profiles map[string]Profile `yaml:"profiles"`
}

// LocalPath returns the path to the repository profiles file.
func LocalPath() string {
	return filepath.Join(".tdf", "profiles.yaml")
}

// GlobalPath returns the path to the user profiles file: ~/.tdf/profiles.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tdf", "profiles.yaml")
}

// Load reads the user file then the repository file. Repository profiles
// shadow user profiles with the same name. Missing files are not errors.
func Load() (*Set, error) {
	s := &Set{profiles: map[string]Profile{}}
	if p := GlobalPath(); p != "" {
		if err := s.loadFile(p); err != nil {
			return nil, err
		}
	}
	if err := s.loadFile(LocalPath()); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadFile reads profiles from a single file.
func LoadFile(path string) (*Set, error) {
	s := &Set{profiles: map[string]Profile{}}
	if err := s.loadFile(path); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Set) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot read profiles file %s: %w", path, err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("malformed profiles file %s: %w", path, err)
	}
	for name, p := range f.Profiles {
		p.Name = name
		s.profiles[name] = p
	}
	return nil
}

// Names returns the loaded profile names in sorted order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.profiles))
	for n := range s.profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Get returns the named profile.
func (s *Set) Get(name string) (Profile, error) {
	p, ok := s.profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return p, nil
}

// Compile returns a Value carrying the named profile's rules.
func (s *Set) Compile(name string) (*tdf.Value, error) {
	p, err := s.Get(name)
	if err != nil {
		return nil, err
	}
	return p.Compile()
}

// Compile builds the rule carrier for this profile. Dynamic rule prefixes
// are stored with a trailing ':' whether or not the file includes one.
func (p Profile) Compile() (*tdf.Value, error) {
	v := tdf.New()
	if p.Format != "" {
		v.RequireFormat(p.Format)
	}
	for _, tag := range p.Require {
		v.RequireTag(tag)
	}
	for _, tag := range p.Exclude {
		v.ExcludeTag(tag)
	}
	for prefix, rule := range p.Dynamic {
		pred, err := rule.predicate()
		if err != nil {
			return nil, fmt.Errorf("profile %s, prefix %s: %w", p.Name, prefix, err)
		}
		if prefix == "" || prefix[len(prefix)-1] != ':' {
			prefix += ":"
		}
		v.SetValidator(prefix, pred)
	}
	return v, nil
}

// predicate compiles a dynamic rule into an argument check.
func (r DynamicRule) predicate() (tdf.Predicate, error) {
	switch r.Kind {
	case KindNonEmpty:
		return func(arg string) bool { return arg != "" }, nil

	case KindRegexp:
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRule, err)
		}
		return re.MatchString, nil

	case KindEnum:
		if len(r.Values) == 0 {
			return nil, fmt.Errorf("%w: enum rule needs values", ErrInvalidRule)
		}
		allowed := make(map[string]struct{}, len(r.Values))
		for _, val := range r.Values {
			allowed[val] = struct{}{}
		}
		return func(arg string) bool {
			_, ok := allowed[arg]
			return ok
		}, nil

	case KindInt:
		min, max := r.Min, r.Max
		return func(arg string) bool {
			n, err := strconv.Atoi(arg)
			if err != nil {
				return false
			}
			if min != nil && n < *min {
				return false
			}
			if max != nil && n > *max {
				return false
			}
			return true
		}, nil

	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidRule, r.Kind)
	}
}
