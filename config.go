package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/ini.v1"
)

const ansibleCfgFile = "ansible.cfg"

type AnsibleConfig struct {
	RolesPath []string
}

// readAnsibleConfig reads the project's ansible.cfg from the infrastructure
// root. Only the project file is consulted; a missing file yields defaults.
// https://docs.ansible.com/ansible/latest/reference_appendices/config.html#the-configuration-file
func readAnsibleConfig(fsys fs.FS, root string) (AnsibleConfig, error) {
	ansibleCfg := AnsibleConfig{}

	cfgpath := path.Join(root, ansibleCfgFile)
	data, err := fs.ReadFile(fsys, cfgpath)
	if errors.Is(err, fs.ErrNotExist) {
		return ansibleCfg, nil
	} else if err != nil {
		return ansibleCfg, err
	}

	cfg, err := ini.Load(data)
	if err != nil {
		return ansibleCfg, fmt.Errorf("failed to parse %q: %w", cfgpath, err)
	}

	ansibleCfg.RolesPath = lo.Filter(cfg.Section("defaults").Key("roles_path").Strings(":"), func(p string, _ int) bool {
		return strings.TrimSpace(p) != ""
	})

	return ansibleCfg, nil
}
