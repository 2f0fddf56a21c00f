package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportWriteText(t *testing.T) {
	report := NewHarness(brokenInfra()).Run(".")

	t.Run("failures only", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, report.WriteText(&buf, false))

		expected := `FAIL playbook syntax valid [2]: playbooks/k3s-uninstall.yaml:1: should be a list of plays, got a mapping
FAIL roles have required files [2]: role "broken" missing tasks/main.yaml: roles/broken/tasks/main.yaml: file not found
4 passed, 2 failed, 1 skipped
`
		assert.Equal(t, expected, buf.String())
	})

	t.Run("verbose", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, report.WriteText(&buf, true))

		out := buf.String()
		assert.Contains(t, out, "PASS k3s install playbook exists [1]\n")
		assert.Contains(t, out, "SKIP group_vars syntax valid: group_vars directory does not exist\n")
		assert.Contains(t, out, "PASS lab resource requirements [1]\n")
		assert.Equal(t, 8, bytes.Count(buf.Bytes(), []byte("\n")))
	})
}

func TestReportWriteJSON(t *testing.T) {
	report := NewHarness(brokenInfra()).Run(".")

	var buf bytes.Buffer
	require.NoError(t, report.WriteJSON(&buf))

	var decoded Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, report.Failed, decoded.Failed)
	require.Len(t, decoded.Results, len(report.Results))
	assert.Nil(t, decoded.Results[1].Err)
	assert.Equal(t, report.Results[1].Message, decoded.Results[1].Message)
}

func TestReportOK(t *testing.T) {
	report := Report{Results: []CheckResult{
		{Name: "a", Status: StatusPass},
		{Name: "b", Status: StatusSkip},
	}}
	report.tally()

	assert.True(t, report.OK())
	assert.Equal(t, 1, report.Passed)
	assert.Equal(t, 1, report.Skipped)
	assert.Empty(t, report.Failures())
}

func TestTemplaterEvaluate(t *testing.T) {
	templater := NewTemplater()

	out, err := templater.Evaluate(`{{ version|safe }} on {{ nodes }} nodes`, Variables{"version": "v1.30.0+k3s1", "nodes": 3})
	require.NoError(t, err)
	assert.Equal(t, "v1.30.0+k3s1 on 3 nodes", out)

	_, err = templater.Evaluate(`{% if %}`, nil)
	assert.Error(t, err)
}
