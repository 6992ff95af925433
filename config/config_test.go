package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	require := require.New(t)

	c := Default()
	require.NoError(c.Validate())
	require.Equal("_c", c.Suffix)
	require.Equal(Layout{Budget: 78, Margin: 2, Tab: 2, Indent: 3}, c.Layout)
	require.Equal("integer(kind=c_int)", c.Types["int"])
	require.Equal("real(kind=c_double)", c.Types["double"])
	require.Equal("info", c.ReturnNames["int"])

	fam, ok := c.Family("")
	require.True(ok)
	require.Equal(Family{}, fam)
	_, ok = c.Family("parm")
	require.False(ok)

	// Default must hand out independent copies.
	c.Types["int"] = "changed"
	require.Equal("integer(kind=c_int)", Default().Types["int"])
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0666))
	return path
}

func TestLoadMergesImports(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	writeFile(t, dir, "pastix.toml", `
derived-types = ["pastix_order_t"]

[types]
pastix_int_t = "integer(kind=pastix_int_t)"
"int" = "integer(kind=c_int32_t)"

[family.parm]
offset = 1
`)
	path := writeFile(t, dir, "main.toml", `
imports = ["pastix.toml"]
derived-types = ["spmatrix_t"]

[layout]
budget = 100

[return-names]
spmatrix_t = "spm"
`)

	c, err := Load(path)
	require.NoError(err)

	require.Equal(100, c.Layout.Budget)
	require.Equal(2, c.Layout.Margin, "unset layout values fall back to defaults")
	require.Equal("_c", c.Suffix)
	require.Equal([]string{"spmatrix_t", "pastix_order_t"}, c.DerivedTypes)
	require.Equal("integer(kind=pastix_int_t)", c.Types["pastix_int_t"])
	require.Equal("integer(kind=c_int32_t)", c.Types["int"], "imported values win over defaults")
	require.Equal("real(kind=c_double)", c.Types["double"])
	require.Equal("spm", c.ReturnNames["spmatrix_t"])
	require.Equal("info", c.ReturnNames["int"])

	fam, ok := c.Family("parm")
	require.True(ok)
	require.Equal(Family{Offset: 1}, fam)
}

func TestLoadErrors(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	path := writeFile(t, dir, "bad.toml", "suffix = \"_c\"\nunknown-key = 1\n")
	_, err := Load(path)
	require.Error(err)
	var cErr *Error
	require.True(errors.As(err, &cErr))
	require.True(strings.HasPrefix(cErr.Error(), path+": "))
	require.Contains(cErr.String(), "Error in file")

	path = writeFile(t, dir, "small.toml", "[layout]\nbudget = 10\n")
	_, err = Load(path)
	require.ErrorContains(err, "too small")

	path = writeFile(t, dir, "importer.toml", "imports = [\"missing.toml\"]\n")
	_, err = Load(path)
	require.Error(err)
}

func TestBindingList(t *testing.T) {
	require := require.New(t)

	src := `# comment
[enabled]
pastixInit  "void pastixInit()"

[disabled]
pastixFinalize
`
	bl, err := ReadBindingList("bindings.txt", strings.NewReader(src))
	require.NoError(err)
	require.True(bl.IsEnabled("pastixInit"))
	require.False(bl.IsEnabled("pastixFinalize"))
	require.True(bl.IsEnabled("unlisted"))
	require.Equal([]string{"pastixFinalize", "pastixInit"}, bl.Symbols())

	var nilList *BindingList
	require.True(nilList.IsEnabled("anything"))

	out := string(bl.Format(map[string]string{
		"pastixInit":     "void pastixInit()",
		"pastixFinalize": "void pastixFinalize()",
		"spmInit":        "void spmInit(spmatrix_t *spm)",
	}))
	require.Contains(out, "[enabled]\npastixInit \"void pastixInit()\"\nspmInit    \"void spmInit(spmatrix_t *spm)\"\n")
	require.Contains(out, "[disabled]\npastixFinalize \"void pastixFinalize()\"\n")

	reread, err := ReadBindingList("bindings.txt", strings.NewReader(out))
	require.NoError(err)
	require.Equal(map[string]bool{"pastixInit": true, "spmInit": true, "pastixFinalize": false}, reread.Enabled)
}

func TestBindingListErrors(t *testing.T) {
	require := require.New(t)

	_, err := ReadBindingList("b.txt", strings.NewReader("foo\n"))
	require.ErrorContains(err, "b.txt: line 1: expected symbol \"foo\" to be under a section")

	_, err = ReadBindingList("b.txt", strings.NewReader("[export]\n"))
	require.ErrorContains(err, "invalid section name [export]")

	_, err = ReadBindingList("b.txt", strings.NewReader("[enabled]\nfoo\n[disabled]\nfoo\n"))
	require.ErrorContains(err, "line 4: cannot have symbol \"foo\" in both")
}

func TestWriteDefault(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(WriteDefault(path))
	c, err := Load(path)
	require.NoError(err)
	require.Equal(Default(), c)

	require.ErrorIs(WriteDefault(path), os.ErrExist)
}
