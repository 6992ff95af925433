package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"dario.cat/mergo"
	"github.com/pelletier/go-toml/v2"
)

//go:embed default.toml
var defaultConfig []byte

// Layout controls indentation and line wrapping of the emitted code.
// All values are in columns.
type Layout struct {
	// Budget is the maximum line width.
	Budget int `toml:"budget"`
	// Margin is the indentation of top-level blocks.
	Margin int `toml:"margin"`
	// Tab is the indentation step of nested statements.
	Tab int `toml:"tab"`
	// Indent is the indentation step of declarations within a block
	// and of continuation lines.
	Indent int `toml:"indent"`
}

// Family is the value rule shared by a group of enumerations.
type Family struct {
	// Base is the value of the first constant without an explicit value.
	Base int64 `toml:"base"`
	// Offset is added to every emitted non-sentinel value. It bridges
	// differing base-indexing conventions, e.g. +1 for enumerations
	// used as indices into 1-based arrays.
	Offset int64 `toml:"offset"`
}

type Config struct {
	Imports []string `toml:"imports"`
	// Suffix is appended to native symbols to name the low-level
	// interfaces.
	Suffix string `toml:"suffix"`
	Layout Layout `toml:"layout"`
	// Types maps native scalar type names to target declarations.
	Types map[string]string `toml:"types"`
	// DerivedTypes lists struct names that are declared elsewhere
	// (e.g. in a header block) and may be referenced.
	DerivedTypes []string `toml:"derived-types"`
	// ReturnNames maps native return type names to the name of the
	// trailing output parameter wrappers get.
	ReturnNames map[string]string `toml:"return-names"`
	Families    map[string]Family `toml:"family"`
}

// Family returns the family named tag. The empty tag is the default
// family (base 0, no offset).
func (c *Config) Family(tag string) (Family, bool) {
	if tag == "" {
		return Family{}, true
	}
	fam, ok := c.Families[tag]
	return fam, ok
}

// Validate checks the layout for values that cannot produce sensible
// output.
func (c *Config) Validate() error {
	l := c.Layout
	if l.Margin < 0 || l.Tab < 0 || l.Indent < 0 {
		return errors.New("layout: negative indentation")
	}
	if minBudget := l.Margin + 2*l.Tab + 3*l.Indent + 8; l.Budget < minBudget {
		return fmt.Errorf("layout: budget %v too small for the configured indentation (need at least %v)", l.Budget, minBudget)
	}
	if len(c.Types) == 0 {
		return errors.New("empty type table")
	}
	return nil
}

type Error struct {
	filePath string
	err      error  // short, single-line error
	str      string // full, multi-line error string, or err string, if none
}

// Error returns a short error message.
func (e *Error) Error() string {
	return e.filePath + ": " + e.err.Error()
}

// String returns the full multi-line error string.
func (e *Error) String() string {
	if e.str != "" {
		return "Error in file " + strconv.Quote(e.filePath) + ":\n" + e.str
	} else {
		return e.Error()
	}
}

func (e *Error) Unwrap() error {
	return e.err
}

func decode(path string, data []byte) (_ *Config, err error) {
	defer func() {
		if err != nil {
			if tErr := (&toml.DecodeError{}); errors.As(err, &tErr) {
				err = &Error{filePath: path, err: err, str: tErr.String()}
			} else if tErr := (&toml.StrictMissingError{}); errors.As(err, &tErr) {
				err = &Error{filePath: path, err: err, str: tErr.String()}
			} else {
				err = &Error{filePath: path, err: err}
			}
		}
	}()

	c := &Config{}
	err = toml.NewDecoder(bytes.NewReader(data)).
		DisallowUnknownFields().
		Decode(c)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Default returns a fresh copy of the built-in configuration.
func Default() *Config {
	c, err := decode("default.toml", defaultConfig)
	if err != nil {
		panic("programmer error: invalid default config: " + err.Error())
	}
	return c
}

// Load reads the configuration file at path, merges in the files it
// imports (relative to its own directory) and falls back to [Default]
// for everything left unset.
func Load(path string) (*Config, error) {
	c, err := load(path)
	if err != nil {
		return nil, err
	}
	if err := mergo.Merge(c, Default()); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, &Error{filePath: path, err: err}
	}
	return c, nil
}

func load(path string) (*Config, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := decode(path, file)
	if err != nil {
		return nil, err
	}

	var importedCs []*Config // collect imported files first so their imports don't leak into our file's imports
	for _, imp := range c.Imports {
		if !filepath.IsAbs(imp) {
			imp = filepath.Join(filepath.Dir(path), imp)
		}
		newC, err := load(imp)
		if err != nil {
			return nil, err
		}
		importedCs = append(importedCs, newC)
	}
	for _, newC := range importedCs {
		if err := mergo.Merge(c, newC, mergo.WithAppendSlice); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// WriteDefault writes the built-in configuration to path as a starting
// point for a user configuration. It fails if path exists.
func WriteDefault(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0666)
	if err != nil {
		return err
	}
	if _, err := f.Write(defaultConfig); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
