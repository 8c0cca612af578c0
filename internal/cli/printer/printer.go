// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package printer

import (
	"bytes"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/tidwall/pretty"
	"gopkg.in/yaml.v3"

	"github.com/platform-engineering-labs/custodia/internal/cli/renderer"
	"github.com/platform-engineering-labs/custodia/internal/engine"
)

type Consumer string

const (
	ConsumerHuman   Consumer = "human"
	ConsumerMachine Consumer = "machine"
)

type MachineReadablePrinter[T any] struct {
	w      io.Writer
	format string
}

func NewMachineReadablePrinter[T any](w io.Writer, format string) *MachineReadablePrinter[T] {
	return &MachineReadablePrinter[T]{
		w:      w,
		format: format,
	}
}

func (p *MachineReadablePrinter[T]) Print(v *T) error {
	var data []byte
	var err error
	switch p.format {
	case "json":
		data, err = json.Marshal(v)
		if err != nil {
			return fmt.Errorf("json marshal: %w", err)
		}
		data = pretty.PrettyOptions(data, &pretty.Options{
			Width:  80,
			Indent: "  ",
		})
	case "yaml":
		intermediate, convertErr := roundtripJSON(v)
		if convertErr != nil {
			return fmt.Errorf("convert to yaml: %w", convertErr)
		}

		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err = enc.Encode(intermediate); err != nil {
			return fmt.Errorf("yaml encode: %w", err)
		}
		data = buf.Bytes()
	default:
		return fmt.Errorf("unsupported format: %s", p.format)
	}
	if !bytes.HasSuffix(data, []byte("\n")) {
		data = append(data, '\n')
	}
	_, err = p.w.Write(data)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// roundtripJSON converts v through JSON so the yaml encoder sees the
// same field names as the json output.
func roundtripJSON(v any) (any, error) {
	jsonData, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var result any
	if err := json.Unmarshal(jsonData, &result); err != nil {
		return nil, err
	}

	return result, nil
}

type HumanReadablePrinter struct {
	w io.Writer
}

func NewHumanReadablePrinter(w io.Writer) *HumanReadablePrinter {
	return &HumanReadablePrinter{
		w: w,
	}
}

func (p *HumanReadablePrinter) Print(v any) error {
	var output string
	var err error

	switch v := v.(type) {
	case *engine.PlanReport:
		output, err = renderer.RenderPlan(v)
		if err != nil {
			return fmt.Errorf("render plan: %w", err)
		}
	case *engine.ApplyResult:
		output = renderer.RenderApplyResult(v)
	default:
		return fmt.Errorf("unsupported type: %T", v)
	}

	_, err = p.w.Write([]byte(output))
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}
