package main

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
	"github.com/xeipuuv/gojsonschema"
)

const allGroup = "all"

//go:embed schema/inventory.schema.json
var inventorySchema []byte

// InventoryGroup is a group of a YAML inventory.
// https://docs.ansible.com/ansible/latest/inventory_guide/intro_inventory.html#inventory-basics-formats-hosts-and-groups
type InventoryGroup struct {
	Hosts    map[string]any `mapstructure:"hosts"`
	Children map[string]any `mapstructure:"children"`
	Vars     Variables      `mapstructure:"vars"`
}

func decodeInventoryGroup(raw any) (InventoryGroup, error) {
	var group InventoryGroup
	if err := mapstructure.Decode(raw, &group); err != nil {
		return group, err
	}
	return group, nil
}

// checkInventory requires the inventory, when present, to be a mapping with
// the "all" group. A missing inventory passes.
func checkInventory(c *CheckContext) error {
	if !isPathExists(c.fsys, c.Path()) {
		c.logger.Debug().Msg("Inventory not present")
		return nil
	}

	c.Checked()
	var doc any
	if err := c.loader.decodeYAMLFile(c.Path(), &doc); err != nil {
		return err
	}

	doc = normalizeYAML(doc)
	issues, err := validateAgainstSchema(inventorySchema, doc)
	if err != nil {
		return fmt.Errorf("failed to validate inventory %q: %w", c.Path(), err)
	}
	if len(issues) > 0 {
		return &ShapeError{
			Path:   c.Path(),
			Reason: fmt.Sprintf("inventory should have %q group: %s", allGroup, strings.Join(issues, "; ")),
		}
	}

	// the schema guarantees an object
	group, err := decodeInventoryGroup(doc.(map[string]any)[allGroup])
	if err != nil {
		c.logger.Warn().Err(err).Msg("Unexpected layout of the all group")
		return nil
	}
	c.logger.Debug().
		Int("hosts", len(group.Hosts)).
		Int("children", len(group.Children)).
		Int("vars", len(group.Vars)).
		Msg("Parsed inventory")
	return nil
}

// checkGroupVars parses every file in the case directory that matches
// pattern. The check is skipped when the directory does not exist.
func checkGroupVars(pattern string) CheckFunc {
	return func(c *CheckContext) error {
		if !isPathExists(c.fsys, c.Path()) {
			return c.Skip("group_vars directory does not exist")
		}

		matches, err := doublestar.Glob(c.fsys, path.Join(c.Path(), pattern), doublestar.WithFilesOnly())
		if err != nil {
			return fmt.Errorf("failed to glob %q: %w", pattern, err)
		}

		var errs []error
		for _, varsFile := range matches {
			c.Checked()
			if _, err := c.loader.parseVarsFile(varsFile); err != nil {
				errs = append(errs, err)
				continue
			}
			c.logger.Debug().Str("file", varsFile).Msg("Parsed group vars")
		}
		return errors.Join(errs...)
	}
}

// validateAgainstSchema returns the schema violations of doc.
// doc must already be normalized to JSON-compatible types.
func validateAgainstSchema(schema []byte, doc any) ([]string, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schema),
		gojsonschema.NewBytesLoader(payload),
	)
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}

	return lo.Map(result.Errors(), func(issue gojsonschema.ResultError, _ int) string {
		return issue.String()
	}), nil
}

// normalizeYAML converts mappings with non-string keys into string-keyed
// maps and non-finite floats into strings so that the value can be
// marshaled as JSON.
func normalizeYAML(v any) any {
	switch x := v.(type) {
	case float64:
		if math.IsInf(x, 0) || math.IsNaN(x) {
			return fmt.Sprint(x)
		}
		return x
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, value := range x {
			out[k] = normalizeYAML(value)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, value := range x {
			out[fmt.Sprint(k)] = normalizeYAML(value)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i := range x {
			out[i] = normalizeYAML(x[i])
		}
		return out
	default:
		return x
	}
}
