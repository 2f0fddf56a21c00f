package main

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAnsibleConfig(t *testing.T) {
	tests := []struct {
		name     string
		fsys     fstest.MapFS
		expected AnsibleConfig
	}{
		{
			name:     "no config",
			fsys:     fstest.MapFS{},
			expected: AnsibleConfig{},
		},
		{
			name: "roles path",
			fsys: fstest.MapFS{
				"ansible.cfg": {Data: []byte(`[defaults]
inventory = inventory/lab/hosts.yaml
roles_path = roles:vendor/roles
`)},
			},
			expected: AnsibleConfig{RolesPath: []string{"roles", "vendor/roles"}},
		},
		{
			name: "empty entries are dropped",
			fsys: fstest.MapFS{
				"ansible.cfg": {Data: []byte("[defaults]\nroles_path = :roles::\n")},
			},
			expected: AnsibleConfig{RolesPath: []string{"roles"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := readAnsibleConfig(tt.fsys, ".")
			require.NoError(t, err)
			if len(tt.expected.RolesPath) == 0 {
				assert.Empty(t, cfg.RolesPath)
			} else {
				assert.Equal(t, tt.expected, cfg)
			}
		})
	}
}

func TestReadAnsibleConfigInvalid(t *testing.T) {
	fsys := fstest.MapFS{
		"ansible.cfg": {Data: []byte("[defaults\nroles_path = roles\n")},
	}

	_, err := readAnsibleConfig(fsys, ".")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ansible.cfg")

	// the harness keeps going with defaults
	fsys["roles/k3s/tasks/main.yaml"] = &fstest.MapFile{}
	res := runSingleCheck(t, fsys, rolesCase())
	assert.Equal(t, StatusPass, res.Status)
	assert.Equal(t, 1, res.Checked)
}
