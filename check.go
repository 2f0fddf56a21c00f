package main

import (
	"io/fs"
	"path"

	"github.com/rs/zerolog"
)

type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
	StatusSkip Status = "skip"
)

// CheckFunc evaluates one case. Returning nil passes the case, returning
// CheckContext.Skip skips it and any other error fails it.
type CheckFunc func(c *CheckContext) error

// CheckCase is a single named check against a path under the
// infrastructure root. Path is empty for checks that read no files.
type CheckCase struct {
	Name  string
	Path  string
	Check CheckFunc
}

// CheckContext carries the state of one case evaluation.
type CheckContext struct {
	fsys   fs.FS
	root   string
	path   string
	cfg    AnsibleConfig
	loader *DataLoader
	logger zerolog.Logger

	checked int
}

func newCheckContext(h *Harness, root string, cfg AnsibleConfig, cc CheckCase) *CheckContext {
	c := &CheckContext{
		fsys:   h.fsys,
		root:   root,
		cfg:    cfg,
		loader: h.loader,
		logger: h.logger.With().Str("check", cc.Name).Logger(),
	}
	if cc.Path != "" {
		c.path = path.Join(root, cc.Path)
		c.logger = c.logger.With().Str("path", c.path).Logger()
	}
	return c
}

// Path returns the case's target path joined with the infrastructure root.
func (c *CheckContext) Path() string {
	return c.path
}

// Checked records that one sub-check (a file, a role, a literal) was evaluated.
func (c *CheckContext) Checked() {
	c.checked++
}

// Skip ends the case as skipped with the given reason.
func (c *CheckContext) Skip(reason string) error {
	return &skipError{reason: reason}
}

type skipError struct {
	reason string
}

func (e *skipError) Error() string {
	return "skipped: " + e.reason
}

// CheckResult is the outcome of one case.
type CheckResult struct {
	Name    string `json:"name"`
	Path    string `json:"path,omitempty"`
	Status  Status `json:"status"`
	Checked int    `json:"checked"`
	Message string `json:"message,omitempty"`

	Err error `json:"-"`
}
