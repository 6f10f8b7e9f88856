// Package motifset loads named motif definitions from YAML and compiles
// them to bitap patterns
package motifset

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/virus-evolution/gomotif/pkg/alphabet"
	"github.com/virus-evolution/gomotif/pkg/motif"
)

// Search modes
const (
	ModeExact        = "exact"
	ModeSubstitution = "substitution"
	ModeIndelLast    = "indel-last"
	ModeIndelFirst   = "indel-first"
)

var (
	ErrNoMotifs      = errors.New("no motifs defined")
	ErrBadMode       = errors.New("unknown search mode")
	ErrDuplicateName = errors.New("duplicate motif name")
	ErrMissingField  = errors.New("missing required field")
	ErrExactIndel    = errors.New("indel modes do not support exact (upper case) positions")
)

// ValidMode reports whether mode names a search mode
func ValidMode(mode string) bool {
	switch mode {
	case ModeExact, ModeSubstitution, ModeIndelLast, ModeIndelFirst:
		return true
	}
	return false
}

// Definition is one motif entry of a YAML motif set
type Definition struct {
	Name      string   `yaml:"name"`
	Pattern   string   `yaml:"pattern"`
	Alphabet  string   `yaml:"alphabet"`
	Mode      string   `yaml:"mode"`
	MaxErrors *int     `yaml:"max_errors"`
	MinScore  *float64 `yaml:"min_score"`
}

// Set is an ordered list of motif definitions
type Set struct {
	Motifs []Definition `yaml:"motifs"`
}

// Compiled is a validated definition with its compiled pattern. Fields left
// unset in the definition are filled from the defaults passed to Compile.
type Compiled struct {
	Name      string
	Mode      string
	MaxErrors int
	MinScore  float64
	HasMin    bool
	Motif     *motif.MotifWithExactMask
	Pattern   *motif.BitapPattern
}

// Defaults are applied to definitions which leave a field unset
type Defaults struct {
	Alphabet  string
	Mode      string
	MaxErrors int
	MinScore  *float64
}

// Load decodes a motif set, rejecting unknown fields
func Load(r io.Reader) (*Set, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var s Set
	if err := dec.Decode(&s); err != nil {
		if err == io.EOF {
			return nil, ErrNoMotifs
		}
		return nil, fmt.Errorf("decoding motif set: %w", err)
	}
	if len(s.Motifs) == 0 {
		return nil, ErrNoMotifs
	}
	return &s, nil
}

// LoadFile is Load for a file path
func LoadFile(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Single builds a set holding one unnamed motif
func Single(pattern string) *Set {
	return &Set{Motifs: []Definition{{Name: pattern, Pattern: pattern}}}
}

// Compile validates every definition and builds its pattern. Errors name
// the offending entry.
func (s *Set) Compile(d Defaults) ([]Compiled, error) {
	seen := make(map[string]bool, len(s.Motifs))
	out := make([]Compiled, 0, len(s.Motifs))
	for i, def := range s.Motifs {
		c, err := def.compile(d)
		if err != nil {
			name := def.Name
			if name == "" {
				name = fmt.Sprintf("#%d", i+1)
			}
			return nil, fmt.Errorf("motif %s: %w", name, err)
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, c.Name)
		}
		seen[c.Name] = true
		out = append(out, c)
	}
	return out, nil
}

func (def Definition) compile(d Defaults) (Compiled, error) {
	if def.Pattern == "" {
		return Compiled{}, fmt.Errorf("%w: pattern", ErrMissingField)
	}
	c := Compiled{Name: def.Name, Mode: def.Mode, MaxErrors: d.MaxErrors}
	if c.Name == "" {
		c.Name = def.Pattern
	}
	if c.Mode == "" {
		c.Mode = d.Mode
	}
	c.Mode = strings.ToLower(c.Mode)
	if !ValidMode(c.Mode) {
		return Compiled{}, fmt.Errorf("%w: %q", ErrBadMode, c.Mode)
	}
	if def.MaxErrors != nil {
		c.MaxErrors = *def.MaxErrors
	}
	if c.MaxErrors < 0 {
		return Compiled{}, fmt.Errorf("%w: got %d", motif.ErrNegativeErrors, c.MaxErrors)
	}
	switch {
	case def.MinScore != nil:
		c.MinScore, c.HasMin = *def.MinScore, true
	case d.MinScore != nil:
		c.MinScore, c.HasMin = *d.MinScore, true
	}

	name := def.Alphabet
	if name == "" {
		name = d.Alphabet
	}
	if name == "" {
		name = "nucleotide"
	}
	a, err := alphabet.ByName(name)
	if err != nil {
		return Compiled{}, err
	}
	if c.Motif, err = motif.ParseWithExactMask(a, def.Pattern); err != nil {
		return Compiled{}, err
	}

	hasExact := c.Motif.ExactMask().Any()
	if hasExact && (c.Mode == ModeIndelLast || c.Mode == ModeIndelFirst) {
		return Compiled{}, ErrExactIndel
	}
	if hasExact {
		c.Pattern, err = c.Motif.BitapPattern()
	} else {
		c.Pattern, err = c.Motif.Motif().BitapPattern()
	}
	if err != nil {
		return Compiled{}, err
	}
	return c, nil
}
