package main

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPlaybook(t *testing.T) {
	fsys := fstest.MapFS{
		"playbook.yaml": {
			Data: []byte(`---
- name: Prepare nodes
  hosts: all
  roles:
    - common

- name: Install k3s
  hosts: k3s_cluster
`),
		},
	}

	loader := NewDataloader(fsys)
	playbook, err := loader.LoadPlaybook("playbook.yaml")
	require.NoError(t, err)
	require.Len(t, playbook, 2)

	assert.Equal(t, "Prepare nodes", playbook[0].Name())
	assert.Equal(t, []string{"common"}, playbook[0].RoleNames())
	assert.Equal(t, "playbook.yaml", playbook[0].GetMetadata().Path())
	assert.Equal(t, 2, playbook[0].GetMetadata().Range().StartLine())

	assert.Equal(t, "Install k3s", playbook[1].Name())
	assert.Equal(t, 7, playbook[1].GetMetadata().Range().StartLine())
}

func TestLoadPlaybookShape(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		plays     int
		shapeErr  string
		wantParse bool
	}{
		{
			name:   "list of plays",
			source: "- hosts: all\n",
			plays:  1,
		},
		{
			name:   "list of scalars",
			source: "- 1\n- 2\n",
			plays:  2,
		},
		{
			name:   "null items are dropped",
			source: "-\n- hosts: all\n",
			plays:  1,
		},
		{
			name:     "empty list",
			source:   "[]\n",
			shapeErr: "playbook.yaml:1: should have at least one play",
		},
		{
			name:     "mapping",
			source:   "hosts: all\n",
			shapeErr: "playbook.yaml:1: should be a list of plays, got a mapping",
		},
		{
			name:     "scalar",
			source:   "just a string\n",
			shapeErr: "playbook.yaml:1: should be a list of plays, got a scalar",
		},
		{
			name:     "empty file",
			source:   "",
			shapeErr: "playbook.yaml: should be a list of plays, got an empty document",
		},
		{
			name:      "invalid yaml",
			source:    "- hosts: [all\n",
			wantParse: true,
		},
		{
			name:      "broken second document",
			source:    "a: 1\n---\nk: [unclosed\n",
			wantParse: true,
		},
		{
			name:      "broken second play list",
			source:    "- hosts: all\n---\n- hosts: [x\n",
			wantParse: true,
		},
		{
			name:      "two documents",
			source:    "- hosts: all\n---\n- hosts: k3s_cluster\n",
			wantParse: true,
		},
		{
			name:   "leading document marker",
			source: "---\n- hosts: all\n",
			plays:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{
				"playbook.yaml": {Data: []byte(tt.source)},
			}

			playbook, err := NewDataloader(fsys).LoadPlaybook("playbook.yaml")

			switch {
			case tt.wantParse:
				var parseErr *ParseError
				require.ErrorAs(t, err, &parseErr)
				assert.Equal(t, "playbook.yaml", parseErr.Path)
			case tt.shapeErr != "":
				var shapeErr *ShapeError
				require.ErrorAs(t, err, &shapeErr)
				assert.EqualError(t, err, tt.shapeErr)
			default:
				require.NoError(t, err)
				assert.Len(t, playbook, tt.plays)
			}
		})
	}
}

func TestLoadPlaybookMissing(t *testing.T) {
	_, err := NewDataloader(fstest.MapFS{}).LoadPlaybook("playbooks/absent.yaml")

	var missing *MissingFileError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "playbooks/absent.yaml", missing.Path)
}

func TestListRoles(t *testing.T) {
	fsys := fstest.MapFS{
		"roles/k3s/tasks/main.yaml":     {},
		"roles/k3s/defaults/main.yaml":  {},
		"roles/common/tasks/main.yaml":  {},
		"roles/README.md":               {Data: []byte("# roles")},
		"other/ignored/tasks/main.yaml": {},
	}

	roles, err := NewDataloader(fsys).ListRoles("roles")
	require.NoError(t, err)
	require.Len(t, roles, 2)

	assert.Equal(t, "common", roles[0].Name())
	assert.Equal(t, "roles/common/tasks/main.yaml", roles[0].TasksFile())
	assert.Equal(t, "k3s", roles[1].Name())
	assert.Equal(t, "roles/k3s/defaults/main.yaml", roles[1].DefaultsFile())
}

func TestParseVarsFile(t *testing.T) {
	fsys := fstest.MapFS{
		"vars/valid.yaml":   {Data: []byte("k3s_version: v1.30.0+k3s1\n")},
		"vars/list.yaml":    {Data: []byte("- a\n- b\n")},
		"vars/empty.yaml":   {Data: []byte("")},
		"vars/invalid.yaml": {Data: []byte("key: value\n  bad indent: [\n")},
		"vars/broken.yaml":  {Data: []byte("a: 1\n---\nk: [unclosed\n")},
		"vars/multi.yaml":   {Data: []byte("a: 1\n---\nb: 2\n")},
	}
	loader := NewDataloader(fsys)

	vars, err := loader.parseVarsFile("vars/valid.yaml")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"k3s_version": "v1.30.0+k3s1"}, vars)

	_, err = loader.parseVarsFile("vars/list.yaml")
	require.NoError(t, err)

	vars, err = loader.parseVarsFile("vars/empty.yaml")
	require.NoError(t, err)
	assert.Nil(t, vars)

	_, err = loader.parseVarsFile("vars/invalid.yaml")
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.NotNil(t, errors.Unwrap(err))

	_, err = loader.parseVarsFile("vars/broken.yaml")
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "vars/broken.yaml", parseErr.Path)

	_, err = loader.parseVarsFile("vars/multi.yaml")
	require.ErrorAs(t, err, &parseErr)
	assert.ErrorContains(t, err, "expected a single document, found another at line")
}
