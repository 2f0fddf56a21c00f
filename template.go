package main

import (
	"fmt"

	"github.com/flosch/pongo2/v6"
)

// Templater renders pongo2 templates, compiling each source once.
type Templater struct {
	compiled map[string]*pongo2.Template
}

func NewTemplater() *Templater {
	return &Templater{
		compiled: make(map[string]*pongo2.Template),
	}
}

func (t *Templater) Evaluate(source string, vars Variables) (string, error) {
	tpl, ok := t.compiled[source]
	if !ok {
		var err error
		tpl, err = pongo2.FromString(source)
		if err != nil {
			return "", fmt.Errorf("failed to load template from %q: %w", source, err)
		}
		t.compiled[source] = tpl
	}

	out, err := tpl.Execute(pongo2.Context(vars))
	if err != nil {
		return "", fmt.Errorf("failed to execute template %q: %w", source, err)
	}
	return out, nil
}
