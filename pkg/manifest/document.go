// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package manifest

import (
	"github.com/goccy/go-json"
)

// Resource kinds understood by the governance registry.
const (
	KindAgent  = "agent"
	KindPolicy = "policy"
)

const (
	resourceBlockKey = "resource"
	variableBlockKey = "variable"
	defaultKey       = "default"
)

// Document is a parsed, pre-substitution manifest. Root holds the decoded
// tree exactly as it appeared in the source file; the unexported order
// indexes remember the source order of resource and variable entries so
// that plan and apply output is reproducible.
type Document struct {
	Path string
	Root any

	kindOrder []string
	idOrder   map[string][]string
	varOrder  []string
}

// VariableDecl is one entry of the top-level variable block.
type VariableDecl struct {
	Name       string
	Default    any
	HasDefault bool
}

// ResourceDescriptor is a single declared resource, detached from the
// document it came from. Attributes carry the declared id under "id" as
// well. Descriptors are never mutated after extraction.
type ResourceDescriptor struct {
	Kind       string         `json:"Kind"`
	ID         string         `json:"ID"`
	Attributes map[string]any `json:"Attributes"`
}

func (d *Document) ToJSON() string {
	result, _ := json.Marshal(d.Root)

	return string(result)
}

// Variables returns the declared variables in source order. A declaration
// that is not a mapping is a shape violation the shallow validator does
// not cover, so it surfaces here.
func (d *Document) Variables() ([]VariableDecl, error) {
	root, ok := d.Root.(map[string]any)
	if !ok {
		return nil, InvalidConfigError{Reason: "manifest root must be a mapping"}
	}

	raw, ok := root[variableBlockKey]
	if !ok {
		return nil, nil
	}

	block, ok := raw.(map[string]any)
	if !ok {
		return nil, InvalidConfigError{Reason: "the 'variable' block must be a mapping"}
	}

	decls := make([]VariableDecl, 0, len(block))
	for _, name := range d.orderedKeys(d.varOrder, block) {
		decl, ok := block[name].(map[string]any)
		if !ok {
			return nil, InvalidConfigError{Reason: "variable '" + name + "' must be a mapping"}
		}

		def, hasDefault := decl[defaultKey]
		decls = append(decls, VariableDecl{
			Name:       name,
			Default:    def,
			HasDefault: hasDefault,
		})
	}

	return decls, nil
}

// orderedKeys returns the recorded source order when it covers the block,
// falling back to lexicographic order for documents assembled in code.
func (d *Document) orderedKeys(recorded []string, block map[string]any) []string {
	if len(recorded) == len(block) {
		complete := true
		for _, key := range recorded {
			if _, ok := block[key]; !ok {
				complete = false
				break
			}
		}
		if complete {
			return recorded
		}
	}

	return sortedKeys(block)
}
