// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package manifest

import (
	"fmt"
)

// ExtractResources returns the declared resources of one kind in source
// order, so plan output and apply order match the author's file. A kind
// with no entries yields an empty slice, not an error. The declared id
// is merged into the attributes under "id" for convenience; the mapping
// key stays authoritative.
func (d *Document) ExtractResources(kind string) ([]ResourceDescriptor, error) {
	root, ok := d.Root.(map[string]any)
	if !ok {
		return nil, InvalidConfigError{Reason: "manifest root must be a mapping"}
	}

	rawBlock, ok := root[resourceBlockKey]
	if !ok {
		return []ResourceDescriptor{}, nil
	}
	block, ok := rawBlock.(map[string]any)
	if !ok {
		return nil, InvalidConfigError{Reason: "the 'resource' block must be a mapping"}
	}

	rawKind, ok := block[kind]
	if !ok {
		return []ResourceDescriptor{}, nil
	}
	entries, ok := rawKind.(map[string]any)
	if !ok {
		return nil, InvalidConfigError{Reason: fmt.Sprintf("'resource.%s' must be a mapping of id to attributes", kind)}
	}

	descriptors := make([]ResourceDescriptor, 0, len(entries))
	for _, id := range d.orderedKeys(d.idOrder[kind], entries) {
		attrs, ok := entries[id].(map[string]any)
		if !ok {
			return nil, InvalidConfigError{Reason: fmt.Sprintf("'resource.%s.%s' must be a mapping", kind, id)}
		}

		merged := make(map[string]any, len(attrs)+1)
		for key, value := range attrs {
			merged[key] = value
		}
		merged["id"] = id

		descriptors = append(descriptors, ResourceDescriptor{
			Kind:       kind,
			ID:         id,
			Attributes: merged,
		})
	}

	return descriptors, nil
}
