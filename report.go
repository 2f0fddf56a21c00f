package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/samber/lo"
)

const (
	resultLineTemplate = `{{ status|upper }} {{ name|safe }}{% if checked %} [{{ checked }}]{% endif %}{% if message %}: {{ message|safe }}{% endif %}`
	summaryTemplate    = `{{ passed }} passed, {{ failed }} failed, {{ skipped }} skipped`
)

// Report is the outcome of one harness run.
type Report struct {
	Root    string        `json:"root"`
	Results []CheckResult `json:"results"`
	Passed  int           `json:"passed"`
	Failed  int           `json:"failed"`
	Skipped int           `json:"skipped"`
}

// OK reports whether no check failed. Skipped checks do not count as failures.
func (r Report) OK() bool {
	return r.Failed == 0
}

func (r Report) Failures() []CheckResult {
	return lo.Filter(r.Results, func(res CheckResult, _ int) bool {
		return res.Status == StatusFail
	})
}

func (r *Report) tally() {
	count := func(status Status) int {
		return lo.CountBy(r.Results, func(res CheckResult) bool {
			return res.Status == status
		})
	}
	r.Passed = count(StatusPass)
	r.Failed = count(StatusFail)
	r.Skipped = count(StatusSkip)
}

// WriteText renders a human-readable report. Only failures are listed unless
// verbose is set.
func (r Report) WriteText(w io.Writer, verbose bool) error {
	templater := NewTemplater()

	results := r.Results
	if !verbose {
		results = r.Failures()
	}

	for _, res := range results {
		line, err := templater.Evaluate(resultLineTemplate, Variables{
			"status":  string(res.Status),
			"name":    res.Name,
			"checked": res.Checked,
			"message": res.Message,
		})
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	summary, err := templater.Evaluate(summaryTemplate, Variables{
		"passed":  r.Passed,
		"failed":  r.Failed,
		"skipped": r.Skipped,
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, summary)
	return err
}

func (r Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
