package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/rs/zerolog"
)

type HarnessOption func(h *Harness)

func WithLogger(logger zerolog.Logger) HarnessOption {
	return func(h *Harness) {
		h.logger = logger
	}
}

// WithChecks replaces the default check cases.
func WithChecks(cases ...CheckCase) HarnessOption {
	return func(h *Harness) {
		h.cases = cases
	}
}

// Harness runs an ordered set of independent checks against an
// infrastructure tree.
type Harness struct {
	fsys   fs.FS
	cases  []CheckCase
	loader *DataLoader
	logger zerolog.Logger
}

func NewHarness(fsys fs.FS, opts ...HarnessOption) *Harness {
	h := &Harness{
		fsys:   fsys,
		cases:  DefaultChecks(),
		loader: NewDataloader(fsys),
		logger: zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Run evaluates every case once against root, a directory inside the
// harness file system. A failing case never stops the remaining ones.
func (h *Harness) Run(root string) Report {
	cfg, err := readAnsibleConfig(h.fsys, root)
	if err != nil {
		h.logger.Warn().Err(err).Msg("Ignoring unreadable Ansible config")
	}

	report := Report{
		Root:    root,
		Results: make([]CheckResult, 0, len(h.cases)),
	}
	for _, cc := range h.cases {
		report.Results = append(report.Results, h.runCase(root, cfg, cc))
	}
	report.tally()
	return report
}

func (h *Harness) runCase(root string, cfg AnsibleConfig, cc CheckCase) (res CheckResult) {
	c := newCheckContext(h, root, cfg, cc)
	res = CheckResult{
		Name: cc.Name,
		Path: c.path,
	}

	defer func() {
		if r := recover(); r != nil {
			res.Status = StatusFail
			res.Checked = c.checked
			res.Err = fmt.Errorf("check panicked: %v", r)
			res.Message = res.Err.Error()
			c.logger.Error().Err(res.Err).Msg("Check failed")
		}
	}()

	err := cc.Check(c)
	res.Checked = c.checked

	var skip *skipError
	switch {
	case err == nil:
		res.Status = StatusPass
		c.logger.Debug().Int("checked", res.Checked).Msg("Check passed")
	case errors.As(err, &skip):
		res.Status = StatusSkip
		res.Message = skip.reason
		c.logger.Info().Str("reason", skip.reason).Msg("Check skipped")
	default:
		res.Status = StatusFail
		res.Err = err
		res.Message = err.Error()
		c.logger.Warn().Err(err).Msg("Check failed")
	}
	return res
}
