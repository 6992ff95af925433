package unit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refaktor/fwrapgen/config"
)

func TestModuleName(t *testing.T) {
	assert.Equal(t, "pastixf", Unit{Filename: "wrappers/fortran90/src/pastixf.f90"}.ModuleName())
	assert.Equal(t, "spmf", Unit{Filename: "spmf.F90"}.ModuleName())
	assert.Equal(t, "bindings", Unit{Filename: "bindings"}.ModuleName())
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Unit{Filename: "pastixf.f90", Version: "6.0.0"}.Validate())
	assert.NoError(t, Unit{Filename: "pastixf.f90", Version: "v6.2.1-rc1"}.Validate())
	assert.NoError(t, Unit{Filename: "pastixf.f90"}.Validate())
	assert.Error(t, Unit{}.Validate())
	assert.Error(t, Unit{Filename: "9lives.f90"}.Validate())
	assert.Error(t, Unit{Filename: "pastix-f.f90"}.Validate())
	assert.ErrorContains(t, Unit{Filename: "pastixf.f90", Version: "six"}.Validate(), "invalid version")
}

func TestSemVer(t *testing.T) {
	assert.Equal(t, "v6.0.0", Unit{Version: "6.0"}.SemVer())
	assert.Equal(t, "v6.0.3", Unit{Version: "v6.0.3"}.SemVer())
	assert.Equal(t, "", Unit{Version: "latest"}.SemVer())
}

func TestAssemble(t *testing.T) {
	require := require.New(t)

	u := Unit{
		Filename:    "src/spmf.f90",
		Description: "SPM Fortran 90 wrapper",
		Version:     "1.2",
		Authors:     []string{"Jane Doe", "John Roe"},
		Date:        "2024-03-01",
		Copyright:   []string{"2017-2024 Bordeaux INP, CNRS (LaBRI UMR 5800), Inria,", "Univ. Bordeaux. All rights reserved."},
		Header:      "  integer, parameter :: spm_int_t = c_int32_t\n",
		Footer:      "  ! end of generated code",
	}
	got, err := Assemble(u, config.Default().Layout, Blocks{
		Enums:      []string{"  ! enum a\n"},
		Structs:    []string{"  type, bind(c) :: s\n  end type s\n"},
		Interfaces: []string{"  interface\n  end interface\n", "  interface\n  end interface\n"},
		Wrappers:   []string{"  subroutine f()\n  end subroutine f\n"},
	})
	require.NoError(err)
	require.Equal(`!
! @file spmf.f90
!
! SPM Fortran 90 wrapper
!
! @copyright 2017-2024 Bordeaux INP, CNRS (LaBRI UMR 5800), Inria,
!            Univ. Bordeaux. All rights reserved.
!
! @version 1.2.0
! @author Jane Doe
! @author John Roe
! @date 2024-03-01
!
! This file has been automatically generated with fwrapgen
!
module spmf
  use iso_c_binding
  integer, parameter :: spm_int_t = c_int32_t
  implicit none

  ! enum a

  type, bind(c) :: s
  end type s

  interface
  end interface

  interface
  end interface

contains

  subroutine f()
  end subroutine f

  ! end of generated code

end module spmf
`, got)
}

func TestAssembleEmpty(t *testing.T) {
	got, err := Assemble(Unit{Filename: "empty.f90", Generator: "gen"}, config.Layout{Margin: 4}, Blocks{})
	require.NoError(t, err)
	require.Equal(t, `!
! @file empty.f90
!
! This file has been automatically generated with gen
!
module empty
    use iso_c_binding
    implicit none

contains

end module empty
`, got)

	_, err = Assemble(Unit{}, config.Layout{}, Blocks{})
	require.Error(t, err)
}
