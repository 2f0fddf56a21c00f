package main

import (
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

type Variables map[string]any

// Playbook is the ordered list of plays in a playbook file.
type Playbook []*Play

// Play is a single play of a playbook. Only the fields needed for reporting
// are read; a play that is not a mapping is kept with its position only.
type Play struct {
	metadata Metadata
	raw      map[string]any
}

func (p *Play) GetMetadata() Metadata {
	return p.metadata
}

func (p *Play) Name() string {
	name, _ := p.raw["name"].(string)
	return name
}

// RoleNames returns the roles listed under "roles". A role can be a string
// or a dictionary with a "role" key.
func (p *Play) RoleNames() []string {
	defs, ok := p.raw["roles"].([]any)
	if !ok {
		return nil
	}
	return lo.FilterMap(defs, func(def any, _ int) (string, bool) {
		switch v := def.(type) {
		case string:
			return v, v != ""
		case map[string]any:
			name, ok := v["role"].(string)
			return name, ok && name != ""
		}
		return "", false
	})
}

func (p *Play) UnmarshalYAML(node *yaml.Node) error {
	p.metadata = Metadata{
		rng: RangeFromNode(node),
	}
	if node.Kind != yaml.MappingNode {
		return nil
	}
	return node.Decode(&p.raw)
}
