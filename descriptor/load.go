package descriptor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Load reads a descriptor file. The format is chosen by extension:
// ".toml" or ".yaml"/".yml". Unknown fields are rejected.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	set, err := Decode(filepath.Ext(path), data)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}
	return set, nil
}

// LoadAll loads every file in paths and concatenates the declarations
// in argument order.
func LoadAll(paths ...string) (*Set, error) {
	res := &Set{}
	for _, path := range paths {
		set, err := Load(path)
		if err != nil {
			return nil, err
		}
		res.Append(set)
	}
	return res, nil
}

// Decode decodes descriptor data in the format given by ext (a file
// extension including the dot).
func Decode(ext string, data []byte) (*Set, error) {
	set := &Set{}
	switch strings.ToLower(ext) {
	case ".toml":
		err := toml.NewDecoder(bytes.NewReader(data)).
			DisallowUnknownFields().
			Decode(set)
		if err != nil {
			if tErr := (&toml.DecodeError{}); errors.As(err, &tErr) {
				return nil, fmt.Errorf("%w\n%v", err, tErr.String())
			}
			return nil, err
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(set); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported descriptor format %q", ext)
	}
	return set, nil
}
