package typemap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/refaktor/fwrapgen/descriptor"
)

func TestMap(t *testing.T) {
	m := New(map[string]string{
		"int":    "integer(kind=c_int)",
		"double": "real(kind=c_double)",
	}, "spmatrix_t")

	tests := []struct {
		name  string
		typ   descriptor.Type
		role  Role
		want  Mapping
		iface string
		errIs error
	}{
		{
			name:  "scalar value",
			typ:   descriptor.Type{Name: "double"},
			role:  Argument,
			want:  Mapping{Decl: "real(kind=c_double)", Passing: ByValue},
			iface: "real(kind=c_double)",
		},
		{
			name:  "scalar pointer",
			typ:   descriptor.Type{Name: "int", Indirection: descriptor.Pointer},
			role:  Argument,
			want:  Mapping{Decl: "integer(kind=c_int)", Passing: ByAddress},
			iface: "type(c_ptr)",
		},
		{
			name:  "scalar double pointer",
			typ:   descriptor.Type{Name: "int", Indirection: descriptor.DoublePointer},
			role:  Argument,
			want:  Mapping{Decl: "integer(kind=c_int)", Passing: Deferred},
			iface: "type(c_ptr)",
		},
		{
			name:  "struct value",
			typ:   descriptor.Type{Kind: descriptor.Derived, Name: "spmatrix_t"},
			role:  Field,
			want:  Mapping{Decl: "type(spmatrix_t)", Passing: ByValue, Derived: "spmatrix_t"},
			iface: "type(spmatrix_t)",
		},
		{
			name:  "struct pointer return",
			typ:   descriptor.Type{Kind: descriptor.Derived, Name: "spmatrix_t", Indirection: descriptor.Pointer},
			role:  Return,
			want:  Mapping{Decl: "type(spmatrix_t)", Passing: ByAddress, Derived: "spmatrix_t"},
			iface: "type(c_ptr)",
		},
		{
			name:  "opaque pointer in any role",
			typ:   descriptor.Type{Kind: descriptor.Opaque, Name: "pastix_data_t", Indirection: descriptor.DoublePointer},
			role:  Field,
			want:  Mapping{Decl: "type(c_ptr)", Passing: Deferred, Opaque: true},
			iface: "type(c_ptr)",
		},
		{
			name:  "file pointer",
			typ:   descriptor.Type{Kind: descriptor.File, Name: "FILE", Indirection: descriptor.Pointer},
			role:  Argument,
			want:  Mapping{Decl: "type(c_ptr)", Passing: ByAddress, Opaque: true},
			iface: "type(c_ptr)",
		},
		{
			name:  "unknown scalar",
			typ:   descriptor.Type{Name: "long double"},
			role:  Argument,
			errIs: ErrUnknownType,
		},
		{
			name:  "unknown struct",
			typ:   descriptor.Type{Kind: descriptor.Derived, Name: "pastix_order_t", Indirection: descriptor.Pointer},
			role:  Argument,
			errIs: ErrUnknownType,
		},
		{
			name:  "scalar name is not a struct",
			typ:   descriptor.Type{Kind: descriptor.Derived, Name: "int"},
			role:  Field,
			errIs: ErrUnknownType,
		},
		{
			name:  "opaque by value",
			typ:   descriptor.Type{Kind: descriptor.Opaque, Name: "void"},
			role:  Argument,
			errIs: ErrInvalidType,
		},
		{
			name:  "missing name",
			typ:   descriptor.Type{Indirection: descriptor.Pointer},
			role:  Argument,
			errIs: ErrInvalidType,
		},
		{
			name:  "bad indirection",
			typ:   descriptor.Type{Name: "int", Indirection: 3},
			role:  Argument,
			errIs: ErrInvalidType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			got, err := m.Map(tt.typ, tt.role)
			if tt.errIs != nil {
				require.ErrorIs(err, tt.errIs)
				return
			}
			require.NoError(err)
			require.Equal(tt.want, got)
			require.Equal(tt.iface, got.InterfaceDecl())
		})
	}
}

func TestNewCopiesTable(t *testing.T) {
	require := require.New(t)

	table := map[string]string{"int": "integer(kind=c_int)"}
	m := New(table)
	table["int"] = "changed"
	table["double"] = "real(kind=c_double)"

	got, err := m.Map(descriptor.Type{Name: "int"}, Argument)
	require.NoError(err)
	require.Equal("integer(kind=c_int)", got.Decl)

	_, err = m.Map(descriptor.Type{Name: "double"}, Argument)
	require.ErrorIs(err, ErrUnknownType)
	require.False(m.IsDerived("int"))
}
