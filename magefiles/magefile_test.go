//go:build mage

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeGo(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCollectStats(t *testing.T) {
	root := t.TempDir()
	internal := filepath.Join(root, "internal")
	writeGo(t, filepath.Join(internal, "trend", "trend.go"), "package trend\n\nfunc A() {}\n")
	writeGo(t, filepath.Join(internal, "trend", "trend_test.go"), "package trend\n\n\nfunc TestA() {}\n")
	writeGo(t, filepath.Join(internal, "graph", "graph.go"), "package graph\n")
	writeGo(t, filepath.Join(internal, "graph", "testdata", "x.go"), "package x\n")
	writeGo(t, filepath.Join(internal, ".cache", "y.go"), "package y\n")
	writeGo(t, filepath.Join(internal, "graph", "README.md"), "words\n")

	stats, err := collectStats([]string{internal, filepath.Join(root, "missing")})
	require.NoError(t, err)

	require.Len(t, stats, 2)
	assert.Equal(t, pkgStats{files: 2, prod: 2, test: 2}, *stats[filepath.Join(internal, "trend")])
	assert.Equal(t, pkgStats{files: 1, prod: 1}, *stats[filepath.Join(internal, "graph")])
}
