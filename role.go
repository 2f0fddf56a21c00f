package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/samber/lo"
)

const (
	roleTasksFile    = "tasks/main.yaml"
	roleDefaultsFile = "defaults/main.yaml"
)

// Role is a role directory under one of the roles paths.
type Role struct {
	name string
	path string
}

func (r Role) Name() string {
	return r.name
}

// TasksFile is the entry point every role must provide.
func (r Role) TasksFile() string {
	return path.Join(r.path, roleTasksFile)
}

// DefaultsFile holds the role's default variables. It is optional.
func (r Role) DefaultsFile() string {
	return path.Join(r.path, roleDefaultsFile)
}

// rolesDirs returns the directories that hold roles: the relative entries of
// roles_path from ansible.cfg, or "roles" under the root when unset.
func (c *CheckContext) rolesDirs() []string {
	if len(c.cfg.RolesPath) == 0 {
		return []string{path.Join(c.root, rolesDir)}
	}

	dirs := lo.FilterMap(c.cfg.RolesPath, func(p string, _ int) (string, bool) {
		p = strings.TrimSpace(p)
		dir := path.Join(c.root, p)
		if path.IsAbs(p) || !fs.ValidPath(dir) || !isUnderRoot(c.root, dir) {
			c.logger.Warn().Str("roles_path", p).Msg("Ignoring roles path outside the infrastructure root")
			return "", false
		}
		return dir, true
	})
	return lo.Uniq(dirs)
}

// isUnderRoot reports whether the cleaned path dir is root or below it.
func isUnderRoot(root, dir string) bool {
	if root == "." {
		return true
	}
	return dir == root || strings.HasPrefix(dir, root+"/")
}

func (c *CheckContext) roleExists(name string) bool {
	return lo.SomeBy(c.rolesDirs(), func(dir string) bool {
		return isPathExists(c.fsys, path.Join(dir, name))
	})
}

// checkRoleStructure requires tasks/main.yaml in every role and, when
// present, a parseable defaults/main.yaml. Every role is evaluated and all
// failures are reported.
func checkRoleStructure(c *CheckContext) error {
	dirs := lo.Filter(c.rolesDirs(), func(dir string, _ int) bool {
		return isPathExists(c.fsys, dir)
	})
	if len(dirs) == 0 {
		return c.Skip("roles directory does not exist")
	}

	var errs []error
	for _, dir := range dirs {
		roles, err := c.loader.ListRoles(dir)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		for _, role := range roles {
			c.Checked()
			c.logger.Debug().Str("role", role.Name()).Msg("Checking role")

			if !isPathExists(c.fsys, role.TasksFile()) {
				errs = append(errs, fmt.Errorf("role %q missing %s: %w", role.Name(), roleTasksFile, &MissingFileError{Path: role.TasksFile()}))
			}

			if !isPathExists(c.fsys, role.DefaultsFile()) {
				continue
			}
			if _, err := c.loader.parseVarsFile(role.DefaultsFile()); err != nil {
				errs = append(errs, fmt.Errorf("role %q defaults: %w", role.Name(), err))
			}
		}
	}
	return errors.Join(errs...)
}
