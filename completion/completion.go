// Package completion generates bash completion scripts for programs
// that take indexed integer and real parameters, e.g. the drivers of a
// solver library, whose values may be enumeration constants.
package completion

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/iancoleman/strcase"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/refaktor/fwrapgen/descriptor"
)

// AccessIn marks options the program reads. Only those are offered.
const AccessIn = "IN"

//go:embed completion.bash.tmpl
var templateSrc string

var scriptTemplate = template.Must(template.New("completion.bash.tmpl").Funcs(template.FuncMap{
	"wrap": wrapWords,
	"join": strings.Join,
}).Parse(templateSrc))

// Option is an integer or real parameter of the program.
type Option struct {
	Name   string `toml:"name"`
	Access string `toml:"access"`
	// Enum names the enumeration whose constants the option takes.
	Enum string `toml:"enum"`
	// Flags are extra command line flags (e.g. "-o", "--ord") that take
	// the enum constants directly, with TrimPrefix cut from each.
	Flags      []string `toml:"flags"`
	TrimPrefix string   `toml:"trim-prefix"`
}

// Flag is a command line flag with a fixed set of values.
type Flag struct {
	Names  []string `toml:"names"`
	Values []string `toml:"values"`
}

type Spec struct {
	Program      string   `toml:"program"`
	LongOptions  []string `toml:"long-options"`
	ShortOptions []string `toml:"short-options"`
	// IntFlags select an integer option by name, e.g. "-i", "--iparm".
	IntFlags   []string `toml:"int-flags"`
	IntOptions []Option `toml:"int-option"`
	// RealFlags select a real option by name.
	RealFlags   []string          `toml:"real-flags"`
	RealOptions []Option          `toml:"real-option"`
	Enums       []descriptor.Enum `toml:"enum"`
	Flags       []Flag            `toml:"flag"`
}

// Load reads a completion spec from a TOML file.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	spec := &Spec{}
	err = toml.NewDecoder(bytes.NewReader(data)).
		DisallowUnknownFields().
		Decode(spec)
	if err != nil {
		if tErr := (&toml.DecodeError{}); errors.As(err, &tErr) {
			return nil, fmt.Errorf("%v: %w\n%v", path, err, tErr.String())
		}
		return nil, fmt.Errorf("%v: %w", path, err)
	}
	return spec, nil
}

type completionCase struct {
	Pattern string
	Words   []string
}

type scriptData struct {
	Func         string
	LongOptions  []string
	ShortOptions []string
	Cases        []completionCase
}

func (s *Spec) enum(name string) (descriptor.Enum, bool) {
	for _, e := range s.Enums {
		if e.Name == name {
			return e, true
		}
	}
	return descriptor.Enum{}, false
}

func inputNames(opts []Option) []string {
	var res []string
	for _, o := range opts {
		if o.Access == AccessIn {
			res = append(res, o.Name)
		}
	}
	return res
}

// cases returns the completions offered after each option, in script
// order.
func (s *Spec) cases() ([]completionCase, error) {
	var res []completionCase
	addCase := func(flags []string, words []string) {
		if len(flags) == 0 || len(words) == 0 {
			return
		}
		res = append(res, completionCase{Pattern: strings.Join(flags, "|"), Words: words})
	}

	addCase(s.IntFlags, inputNames(s.IntOptions))
	addCase(s.RealFlags, inputNames(s.RealOptions))

	lower := cases.Lower(language.Und)
	for _, o := range s.IntOptions {
		if o.Access != AccessIn || o.Enum == "" {
			continue
		}
		e, ok := s.enum(o.Enum)
		if !ok {
			return nil, fmt.Errorf("option %v: unknown enum %v", o.Name, o.Enum)
		}
		var values, trimmed []string
		prefix := lower.String(o.TrimPrefix)
		for _, v := range e.Values {
			name := lower.String(v.Name)
			values = append(values, name)
			trimmed = append(trimmed, strings.TrimPrefix(name, prefix))
		}
		addCase([]string{o.Name}, values)
		addCase(o.Flags, trimmed)
	}

	for _, f := range s.Flags {
		if len(f.Values) != 0 {
			addCase(f.Names, []string{strings.Join(f.Values, " ")})
		}
	}
	return res, nil
}

// Generate writes the completion script of spec to w.
func Generate(w io.Writer, spec *Spec) error {
	if spec.Program == "" {
		return errors.New("missing program name")
	}
	cs, err := spec.cases()
	if err != nil {
		return err
	}
	return scriptTemplate.Execute(w, scriptData{
		Func:         "_" + strcase.ToSnake(spec.Program) + "_completion",
		LongOptions:  spec.LongOptions,
		ShortOptions: spec.ShortOptions,
		Cases:        cs,
	})
}

// wrapWords returns head followed by words, one per line. head starts
// at column indent. Continuation lines end in a backslash and align with
// the first word.
func wrapWords(indent int, head string, words []string) string {
	return head + strings.Join(words, " \\\n"+strings.Repeat(" ", indent+len(head)))
}
