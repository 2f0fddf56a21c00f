package main

import (
	"errors"
	"path"
)

const (
	playbooksDir     = "playbooks"
	k3sInstallFile   = "k3s-install.yaml"
	k3sUninstallFile = "k3s-uninstall.yaml"

	rolesDir      = "roles"
	inventoryFile = "inventory/lab/hosts.yaml"
	groupVarsDir  = "inventory/lab/group_vars"
)

// DefaultChecks returns the checks for the k3s bootstrap project.
func DefaultChecks() []CheckCase {
	return []CheckCase{
		{
			Name:  "k3s install playbook exists",
			Path:  path.Join(playbooksDir, k3sInstallFile),
			Check: checkFileExists,
		},
		{
			Name:  "playbook syntax valid",
			Path:  playbooksDir,
			Check: checkPlaybookSyntax(k3sInstallFile, k3sUninstallFile),
		},
		{
			Name:  "roles have required files",
			Path:  rolesDir,
			Check: checkRoleStructure,
		},
		{
			Name:  "inventory has all group",
			Path:  inventoryFile,
			Check: checkInventory,
		},
		{
			Name:  "group_vars syntax valid",
			Path:  groupVarsDir,
			Check: checkGroupVars("*.yaml"),
		},
		{
			Name:  "k3s version format",
			Check: checkVersionFormat(k3sVersion),
		},
		{
			Name:  "lab resource requirements",
			Check: checkResources(labResources),
		},
	}
}

func checkFileExists(c *CheckContext) error {
	c.Checked()
	if !isPathExists(c.fsys, c.Path()) {
		return &MissingFileError{Path: c.Path()}
	}
	return nil
}

// checkPlaybookSyntax parses each of the named playbooks under the case path.
// Playbooks that are not present are skipped.
func checkPlaybookSyntax(playbooks ...string) CheckFunc {
	return func(c *CheckContext) error {
		var errs []error
		for _, name := range playbooks {
			playbookPath := path.Join(c.Path(), name)
			if !isPathExists(c.fsys, playbookPath) {
				c.logger.Debug().Str("playbook", playbookPath).Msg("Playbook not present")
				continue
			}

			c.Checked()
			playbook, err := c.loader.LoadPlaybook(playbookPath)
			if err != nil {
				errs = append(errs, err)
				continue
			}

			for _, play := range playbook {
				c.logger.Debug().
					Str("playbook", playbookPath).
					Str("play", play.Name()).
					Int("line", play.GetMetadata().Range().StartLine()).
					Strs("roles", play.RoleNames()).
					Msg("Parsed play")
				for _, role := range play.RoleNames() {
					if !c.roleExists(role) {
						c.logger.Warn().Str("playbook", playbookPath).Str("role", role).Msg("Play references a role that is not in the roles path")
					}
				}
			}
		}
		return errors.Join(errs...)
	}
}
