// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Parse reads and decodes a manifest file. The declared format follows
// the file extension: .yaml/.yml decode as YAML, .json decodes as JSON.
// Anything else fails with UnsupportedFormatError before the file content
// is looked at.
func Parse(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, PathNotFoundError{Path: path}
		}
		return nil, fmt.Errorf("failed to read manifest '%s': %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAML(path, data)
	case ".json":
		return parseJSON(path, data)
	default:
		return nil, UnsupportedFormatError{Path: path, Ext: filepath.Ext(path)}
	}
}

func parseYAML(path string, data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, SyntaxError{Path: path, Err: err}
	}

	doc := &Document{Path: path, idOrder: map[string][]string{}}

	// An empty file decodes to no document node at all. Leave Root nil so
	// the validator reports the shape violation.
	if len(root.Content) == 0 {
		return doc, nil
	}

	value, err := decodeYAMLNode(root.Content[0])
	if err != nil {
		return nil, SyntaxError{Path: path, Err: err}
	}
	doc.Root = value

	recordYAMLOrder(root.Content[0], doc)

	return doc, nil
}

// decodeYAMLNode converts a yaml.Node tree into the generic value
// universe the rest of the package walks: map[string]any, []any and
// plain scalars.
func decodeYAMLNode(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.MappingNode:
		result := make(map[string]any, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			value, err := decodeYAMLNode(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			result[key] = value
		}
		return result, nil
	case yaml.SequenceNode:
		result := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			value, err := decodeYAMLNode(item)
			if err != nil {
				return nil, err
			}
			result = append(result, value)
		}
		return result, nil
	case yaml.AliasNode:
		return decodeYAMLNode(node.Alias)
	default:
		var value any
		if err := node.Decode(&value); err != nil {
			return nil, err
		}
		return value, nil
	}
}

// recordYAMLOrder captures the source order of resource kinds, resource
// ids per kind and variable names.
func recordYAMLOrder(root *yaml.Node, doc *Document) {
	if root.Kind != yaml.MappingNode {
		return
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i].Value, root.Content[i+1]
		if value.Kind != yaml.MappingNode {
			continue
		}

		switch key {
		case resourceBlockKey:
			for j := 0; j+1 < len(value.Content); j += 2 {
				kind, entries := value.Content[j].Value, value.Content[j+1]
				doc.kindOrder = append(doc.kindOrder, kind)
				if entries.Kind != yaml.MappingNode {
					continue
				}
				for k := 0; k+1 < len(entries.Content); k += 2 {
					doc.idOrder[kind] = append(doc.idOrder[kind], entries.Content[k].Value)
				}
			}
		case variableBlockKey:
			for j := 0; j+1 < len(value.Content); j += 2 {
				doc.varOrder = append(doc.varOrder, value.Content[j].Value)
			}
		}
	}
}

func parseJSON(path string, data []byte) (*Document, error) {
	var root any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, SyntaxError{Path: path, Err: err}
	}

	doc := &Document{Path: path, Root: root, idOrder: map[string][]string{}}

	// gjson iterates object members in source order, which the decoded
	// map has already lost.
	if res := gjson.GetBytes(data, resourceBlockKey); res.IsObject() {
		res.ForEach(func(kind, entries gjson.Result) bool {
			doc.kindOrder = append(doc.kindOrder, kind.String())
			if entries.IsObject() {
				entries.ForEach(func(id, _ gjson.Result) bool {
					doc.idOrder[kind.String()] = append(doc.idOrder[kind.String()], id.String())
					return true
				})
			}
			return true
		})
	}
	if vars := gjson.GetBytes(data, variableBlockKey); vars.IsObject() {
		vars.ForEach(func(name, _ gjson.Result) bool {
			doc.varOrder = append(doc.varOrder, name.String())
			return true
		})
	}

	return doc, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return keys
}
