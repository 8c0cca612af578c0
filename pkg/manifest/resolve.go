// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package manifest

import (
	"fmt"
	"strconv"
	"strings"
)

// ResolveVariables returns a copy of the document with every occurrence
// of ${var.NAME} replaced for each declared variable. A caller override
// wins over the declared default; a variable with neither fails with
// UnresolvedVariableError whether or not it is referenced.
//
// Substitution is textual and whole-document: strings anywhere in the
// tree, including inside the variable block itself, are rewritten.
// Numbers and booleans are stringified into the surrounding text even
// when the placeholder is the entire string value; that is the chosen
// semantic, not a fallback. Defaults may reference other variables;
// cycles fail with VariableCycleError.
func ResolveVariables(doc *Document, overrides map[string]string) (*Document, error) {
	decls, err := doc.Variables()
	if err != nil {
		return nil, err
	}

	raw := make(map[string]any, len(decls))
	for _, decl := range decls {
		if value, ok := overrides[decl.Name]; ok {
			raw[decl.Name] = value
			continue
		}
		if decl.HasDefault {
			raw[decl.Name] = decl.Default
			continue
		}
		return nil, UnresolvedVariableError{Name: decl.Name}
	}

	expanded := make(map[string]string, len(raw))
	for _, decl := range decls {
		if _, err := expandVariable(decl.Name, raw, map[string]bool{}, expanded); err != nil {
			return nil, err
		}
	}

	resolved := &Document{
		Path:      doc.Path,
		Root:      substitute(doc.Root, expanded),
		kindOrder: doc.kindOrder,
		idOrder:   doc.idOrder,
		varOrder:  doc.varOrder,
	}

	return resolved, nil
}

// expandVariable computes the final string form of one variable,
// recursively expanding references to other declared variables. The
// expanding set detects direct and indirect self-reference.
func expandVariable(name string, raw map[string]any, expanding map[string]bool, expanded map[string]string) (string, error) {
	if value, ok := expanded[name]; ok {
		return value, nil
	}
	if expanding[name] {
		return "", VariableCycleError{Name: name}
	}
	expanding[name] = true
	defer delete(expanding, name)

	value := stringify(raw[name])
	for other := range raw {
		placeholder := placeholderFor(other)
		if other == name || !strings.Contains(value, placeholder) {
			continue
		}
		replacement, err := expandVariable(other, raw, expanding, expanded)
		if err != nil {
			return "", err
		}
		value = strings.ReplaceAll(value, placeholder, replacement)
	}
	if strings.Contains(value, placeholderFor(name)) {
		return "", VariableCycleError{Name: name}
	}

	expanded[name] = value

	return value, nil
}

// substitute walks the decoded value universe exhaustively: strings are
// rewritten, mappings and sequences recurse, every other scalar passes
// through unchanged. The input is never mutated.
func substitute(value any, vars map[string]string) any {
	switch v := value.(type) {
	case string:
		result := v
		for name, replacement := range vars {
			result = strings.ReplaceAll(result, placeholderFor(name), replacement)
		}
		return result
	case map[string]any:
		result := make(map[string]any, len(v))
		for key, item := range v {
			result[key] = substitute(item, vars)
		}
		return result
	case []any:
		result := make([]any, len(v))
		for i, item := range v {
			result[i] = substitute(item, vars)
		}
		return result
	default:
		return value
	}
}

func placeholderFor(name string) string {
	return "${var." + name + "}"
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
