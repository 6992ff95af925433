/*
Package fwrapgen generates Fortran 2003 bindings (iso_c_binding) for C libraries.

Native functions, structs and enumerations are described by structured descriptor files. For every function, fwrapgen emits a low-level interface block that matches the C ABI exactly, and an ergonomic wrapper subroutine that adapts pointer passing, opaque handles, double-indirection outputs and return values.

# Architecture pipeline (for developers)

Each element in the pipeline has distinct sub-packages that do a specific part. These are then "glued" together in the [Generate] function and the fwrapgen command.
 1. [config]: Parse user-supplied 'config.toml' and 'bindings.txt' files
 2. [descriptor]: Load the function, struct and enum descriptors
 3. [typemap]: Map native types to declarations and passing conventions
 4. [binder]: Render enums, structs, interfaces and wrappers
 5. [unit]: Assemble the blocks into one module file
*/
package fwrapgen
