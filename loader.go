package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// DataLoader reads the YAML documents of an infrastructure tree.
type DataLoader struct {
	fsys fs.FS
}

func NewDataloader(fsys fs.FS) *DataLoader {
	return &DataLoader{
		fsys: fsys,
	}
}

// LoadPlaybook parses the playbook at path. The document must be a non-empty
// list; the plays themselves are not validated.
func (l *DataLoader) LoadPlaybook(path string) (Playbook, error) {
	var doc yaml.Node
	if err := l.decodeYAMLFile(path, &doc); err != nil {
		return nil, err
	}

	node := &doc
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}

	if node.Kind != yaml.SequenceNode {
		return nil, &ShapeError{
			Path:   path,
			Line:   node.Line,
			Reason: fmt.Sprintf("should be a list of plays, got %s", nodeKindName(node)),
		}
	}

	if len(node.Content) == 0 {
		return nil, &ShapeError{
			Path:   path,
			Line:   node.Line,
			Reason: "should have at least one play",
		}
	}

	var playbook Playbook
	if err := node.Decode(&playbook); err != nil {
		return nil, &ShapeError{Path: path, Line: node.Line, Reason: err.Error()}
	}

	// null items decode to nil plays
	playbook = lo.Filter(playbook, func(play *Play, _ int) bool {
		return play != nil
	})
	for _, play := range playbook {
		play.metadata.path = path
	}
	return playbook, nil
}

// ListRoles returns one role per subdirectory of dir.
func (l *DataLoader) ListRoles(dir string) ([]Role, error) {
	entries, err := fs.ReadDir(l.fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read roles directory %q: %w", dir, err)
	}

	dirs := lo.Filter(entries, func(entry fs.DirEntry, _ int) bool {
		return entry.IsDir()
	})

	return lo.Map(dirs, func(entry fs.DirEntry, _ int) Role {
		return Role{
			name: entry.Name(),
			path: path.Join(dir, entry.Name()),
		}
	}), nil
}

func (l *DataLoader) parseVarsFile(path string) (any, error) {
	var vars any
	if err := l.decodeYAMLFile(path, &vars); err != nil {
		return nil, err
	}
	return vars, nil
}

// decodeYAMLFile decodes the single document of the file into dst.
// An empty file leaves dst untouched. A file with more than one document
// is a parse error.
func (l *DataLoader) decodeYAMLFile(path string, dst any) error {
	f, err := l.fsys.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &MissingFileError{Path: path}
	} else if err != nil {
		return fmt.Errorf("failed to open %q: %w", path, err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &ParseError{Path: path, Err: err}
	}

	var next yaml.Node
	switch err := decoder.Decode(&next); {
	case errors.Is(err, io.EOF):
		return nil
	case err != nil:
		return &ParseError{Path: path, Err: err}
	default:
		return &ParseError{Path: path, Err: fmt.Errorf("expected a single document, found another at line %d", next.Line)}
	}
}

func nodeKindName(node *yaml.Node) string {
	switch node.Kind {
	case yaml.MappingNode:
		return "a mapping"
	case yaml.SequenceNode:
		return "a list"
	case yaml.AliasNode:
		return "an alias"
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return "null"
		}
		return "a scalar"
	default:
		return "an empty document"
	}
}

func isPathExists(fsys fs.FS, path string) bool {
	_, err := fs.Stat(fsys, path)
	return err == nil
}
