// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package manifest

import (
	"fmt"
)

// Validate asserts the top-level shape of a parsed document: the root is
// a mapping, and the resource and variable blocks, when present, are
// mappings too. Validation is deliberately shallow; attribute schemas
// are the registry's concern at apply time.
func Validate(doc *Document) error {
	root, ok := doc.Root.(map[string]any)
	if !ok {
		return InvalidConfigError{Reason: "manifest root must be a mapping"}
	}

	for _, block := range []string{resourceBlockKey, variableBlockKey} {
		raw, ok := root[block]
		if !ok {
			continue
		}
		if _, ok := raw.(map[string]any); !ok {
			return InvalidConfigError{Reason: fmt.Sprintf("the '%s' block must be a mapping", block)}
		}
	}

	return nil
}
