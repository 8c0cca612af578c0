// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package manifest

import (
	"fmt"
)

type PathNotFoundError struct {
	Path string
}

func (e PathNotFoundError) Error() string {
	return fmt.Sprintf("manifest '%s' does not exist", e.Path)
}

type UnsupportedFormatError struct {
	Path string
	Ext  string
}

func (e UnsupportedFormatError) Error() string {
	if e.Ext == "" {
		return fmt.Sprintf("manifest '%s' has no file extension; expected .yaml, .yml or .json", e.Path)
	}
	return fmt.Sprintf("manifest '%s' has unsupported extension '%s'; expected .yaml, .yml or .json", e.Path, e.Ext)
}

type SyntaxError struct {
	Path string
	Err  error
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("manifest '%s' cannot be decoded: %v", e.Path, e.Err)
}

func (e SyntaxError) Unwrap() error {
	return e.Err
}

type InvalidConfigError struct {
	Reason string
}

func (e InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid manifest: %s", e.Reason)
}

// UnresolvedVariableError names a declared variable that has neither a
// caller-supplied override nor a default.
type UnresolvedVariableError struct {
	Name string
}

func (e UnresolvedVariableError) Error() string {
	return fmt.Sprintf("variable '%s' has no value: supply an override or declare a default", e.Name)
}

// VariableCycleError names a variable whose default refers, directly or
// through other variables, back to itself.
type VariableCycleError struct {
	Name string
}

func (e VariableCycleError) Error() string {
	return fmt.Sprintf("variable '%s' is part of a reference cycle", e.Name)
}
