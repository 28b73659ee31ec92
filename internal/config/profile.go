package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// ErrUnknownProfile is returned when a profile name is not registered.
var ErrUnknownProfile = errors.New("unknown profile")

// Mode selects how a tree target treats its files.
type Mode string

// Tree modes.
const (
	ModeRender Mode = "render"
	ModeCopy   Mode = "copy"
)

// FileTarget renders one template file. Paths are relative to the project root.
type FileTarget struct {
	From     string `yaml:"from"`
	To       string `yaml:"to"`
	Validate bool   `yaml:"validate"` // check the output as OpenAPI when the run asks for it
}

// TreeTarget renders or copies a whole directory.
type TreeTarget struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
	Mode Mode   `yaml:"mode"`
}

// Profile is one fixed layout of template sources and destinations.
type Profile struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Tokens      []Token      `yaml:"tokens"`
	Files       []FileTarget `yaml:"files"`
	Trees       []TreeTarget `yaml:"trees"`
}

// Validate checks that the profile is usable.
func (p Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("profile name is required")
	}
	if len(p.Tokens) == 0 {
		return fmt.Errorf("profile %q: at least one token is required", p.Name)
	}
	for _, t := range p.Tokens {
		if !t.Valid() {
			return fmt.Errorf("profile %q: unknown token %q", p.Name, t)
		}
	}
	if len(p.Files) == 0 && len(p.Trees) == 0 {
		return fmt.Errorf("profile %q: no files or trees to render", p.Name)
	}
	for i, f := range p.Files {
		if f.From == "" || f.To == "" {
			return fmt.Errorf("profile %q: file target %d needs both from and to", p.Name, i)
		}
	}
	for i, t := range p.Trees {
		if t.From == "" || t.To == "" {
			return fmt.Errorf("profile %q: tree target %d needs both from and to", p.Name, i)
		}
		switch t.Mode {
		case ModeRender, ModeCopy:
		default:
			return fmt.Errorf("profile %q: tree target %d has invalid mode %q (use render or copy)", p.Name, i, t.Mode)
		}
	}
	return nil
}

// builtinProfiles mirror the two layouts the docs repositories use.
var builtinProfiles = []Profile{
	{
		Name:        "templates",
		Description: "Render openapi.json and the snippet templates kept under templates/",
		Tokens:      AllTokens,
		Files: []FileTarget{
			{From: "templates/openapi.json", To: "openapi.json", Validate: true},
		},
		Trees: []TreeTarget{
			{From: "templates/snippets", To: "../snippets/whitelabel", Mode: ModeRender},
		},
	},
	{
		Name:        "snippets",
		Description: "Render config.mdx and openapi.json, then copy snippets/ verbatim",
		Tokens:      []Token{TokenCompanyName, TokenAPIEndpoint},
		Files: []FileTarget{
			{From: "templates/config.mdx.tmpl", To: "snippets/config.mdx"},
			{From: "templates/openapi.json.tmpl", To: "openapi.json", Validate: true},
		},
		Trees: []TreeTarget{
			{From: "snippets", To: "../snippets/whitelabel", Mode: ModeCopy},
		},
	},
}

// Registry holds profiles by name.
type Registry struct {
	profiles map[string]Profile
}

// DefaultRegistry returns a registry with the built-in profiles.
func DefaultRegistry() *Registry {
	r := &Registry{profiles: make(map[string]Profile, len(builtinProfiles))}
	for _, p := range builtinProfiles {
		r.profiles[p.Name] = p
	}
	return r
}

// Add registers p, replacing any profile with the same name.
func (r *Registry) Add(p Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	r.profiles[p.Name] = p
	return nil
}

// Get returns the named profile.
func (r *Registry) Get(name string) (Profile, error) {
	p, ok := r.profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w %q (available: %v)", ErrUnknownProfile, name, r.Names())
	}
	return p, nil
}

// Names returns registered profile names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// File is the on-disk layout of a profile config file.
type File struct {
	Profiles []Profile `yaml:"profiles"`
}

// LoadFile reads extra profiles from a YAML file into r.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	for _, p := range f.Profiles {
		if len(p.Tokens) == 0 {
			p.Tokens = AllTokens
		}
		for i := range p.Trees {
			if p.Trees[i].Mode == "" {
				p.Trees[i].Mode = ModeRender
			}
		}
		if err := r.Add(p); err != nil {
			return fmt.Errorf("config %s: %w", path, err)
		}
	}
	return nil
}

// LoadRegistry returns the default registry, extended by path when set.
func LoadRegistry(path string) (*Registry, error) {
	r := DefaultRegistry()
	if path == "" {
		return r, nil
	}
	if err := r.LoadFile(path); err != nil {
		return nil, err
	}
	return r, nil
}
