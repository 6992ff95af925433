package completion

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const specTOML = `
program = "pastix"
long-options = ["--threads", "--ord", "--verbose", "--help"]
short-options = ["-t", "-o", "-v", "-h"]
int-flags = ["-i", "--iparm"]
real-flags = ["-d", "--dparm"]

[[int-option]]
name = "iparm_verbose"
access = "IN"
enum = "pastix_verbose_t"

[[int-option]]
name = "iparm_nnzs"
access = "OUT"

[[int-option]]
name = "iparm_ordering"
access = "IN"
enum = "pastix_order_t"
flags = ["-o", "--ord"]
trim-prefix = "PastixOrder"

[[real-option]]
name = "dparm_epsilon_refinement"
access = "IN"

[[real-option]]
name = "dparm_relative_error"
access = "OUT"

[[enum]]
name = "pastix_verbose_t"
[[enum.value]]
name = "PastixVerboseNot"
[[enum.value]]
name = "PastixVerboseNo"

[[enum]]
name = "pastix_order_t"
[[enum.value]]
name = "PastixOrderScotch"
[[enum.value]]
name = "PastixOrderMetis"

[[flag]]
names = ["-v", "--verbose"]
values = ["0", "1", "2"]
`

// ~ stands for the alignment of continuation lines.
const wantScript = `#!/usr/bin/env bash

BINARY_DIR=$1

_pastix_completion()
{
    local LONG_OPTIONS=("--threads --ord --verbose --help")
    local SHORT_OPTIONS=("-t -o -v -h")

    local i cur=${COMP_WORDS[COMP_CWORD]}

    COMPREPLY=($(compgen -W "${LONG_OPTIONS[@]} ${SHORT_OPTIONS[@]}" -- $cur))

    prev=${COMP_WORDS[COMP_CWORD-1]}
    case $prev in
        -i|--iparm)
            COMPREPLY=($(compgen -W "iparm_verbose \
~iparm_ordering" -- $cur))
            ;;
        -d|--dparm)
            COMPREPLY=($(compgen -W "dparm_epsilon_refinement" -- $cur))
            ;;
        iparm_verbose)
            COMPREPLY=($(compgen -W "pastixverbosenot \
~pastixverboseno" -- $cur))
            ;;
        iparm_ordering)
            COMPREPLY=($(compgen -W "pastixorderscotch \
~pastixordermetis" -- $cur))
            ;;
        -o|--ord)
            COMPREPLY=($(compgen -W "scotch \
~metis" -- $cur))
            ;;
        -v|--verbose)
            COMPREPLY=($(compgen -W "0 1 2" -- $cur))
            ;;
        *)
            # For remaining options with one argument, we don't suggest anything
            ;;
    esac
}

# Add the dynamic completion to the executable
# Make sure the executable is in the PATH variable
cd $BINARY_DIR
for e in $(find . -maxdepth 1 -executable -type f | cut -d "/" -f 2)
do
    complete -F _pastix_completion $e
done
cd -
`

func loadSpec(t *testing.T, text string) *Spec {
	t.Helper()
	path := filepath.Join(t.TempDir(), "completion.toml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0666))
	spec, err := Load(path)
	require.NoError(t, err)
	return spec
}

func TestGenerate(t *testing.T) {
	spec := loadSpec(t, specTOML)

	var b strings.Builder
	require.NoError(t, Generate(&b, spec))
	want := strings.ReplaceAll(wantScript, "~", strings.Repeat(" ", 37))
	require.Equal(t, want, b.String())
}

func TestGenerateUnknownEnum(t *testing.T) {
	spec := loadSpec(t, specTOML)
	spec.Enums = spec.Enums[:1]

	err := Generate(&strings.Builder{}, spec)
	require.ErrorContains(t, err, "option iparm_ordering: unknown enum pastix_order_t")
}

func TestGenerateMissingProgram(t *testing.T) {
	err := Generate(&strings.Builder{}, &Spec{})
	require.Error(t, err)
}

func TestGenerateOutputOnly(t *testing.T) {
	require := require.New(t)

	spec := loadSpec(t, specTOML)
	cs, err := spec.cases()
	require.NoError(err)
	for _, c := range cs {
		require.NotContains(c.Words, "iparm_nnzs")
		require.NotContains(c.Words, "dparm_relative_error")
	}

	// Without input options there is nothing to offer after -d.
	spec.RealOptions = spec.RealOptions[1:]
	cs, err = spec.cases()
	require.NoError(err)
	for _, c := range cs {
		require.NotEqual("-d|--dparm", c.Pattern)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "completion.toml")
	require.NoError(t, os.WriteFile(path, []byte("program = \"x\"\ncolour = 1\n"), 0666))
	_, err := Load(path)
	require.Error(t, err)
}
