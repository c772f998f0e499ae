package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMainWritesReport(t *testing.T) {
	dir := t.TempDir()
	report := filepath.Join(dir, "report.md")

	var stdout, stderr bytes.Buffer
	code := runMain([]string{"-duration", "20ms", "-entities", "20", "-churn", "2", "-report", report}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	data, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# ECS Stress Test Report")
	assert.Contains(t, string(data), "**Churn Per Frame:** 2")
}

func TestRunMainFlushesProfileOnFailure(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing", "report.md")

	var stdout, stderr bytes.Buffer
	code := runMain([]string{
		"-duration", "20ms",
		"-entities", "20",
		"-profile", "cpu",
		"-profile-dir", dir,
		"-report", missing,
	}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.FileExists(t, filepath.Join(dir, "cpu.pprof"))
}

func TestRunMainRejectsUnknownProfile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := runMain([]string{"-duration", "10ms", "-entities", "1", "-profile", "gpu"}, &stdout, &stderr)
	assert.Equal(t, 2, code)
}

func TestRunMainBadFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, runMain([]string{"-nope"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "nope")
}
