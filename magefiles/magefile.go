//go:build mage

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main contains Mage build targets for techscope developer tooling.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// projectDirs lists the working directories the pipeline expects.
var projectDirs = []string{
	"data/tech",
	"data/global",
	"data/snapshots",
	".secrets",
}

// Init creates the project directory structure for the pipeline.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "techscope"
	cmdPkg  = "./cmd/techscope"
)

func binPath() string {
	return filepath.Join(binDir, binName)
}

// buildVersion describes the checkout, or "dev" outside a git work tree.
func buildVersion() string {
	v, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || v == "" {
		return "dev"
	}
	return v
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	ldflags := "-X main.version=" + buildVersion()
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", binPath(), cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", binPath())
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Pipeline builds the CLI and analyses one technology, e.g.
// mage pipeline "solid state battery".
func Pipeline(tech string) error {
	mg.Deps(Init, Build)
	return sh.RunV(binPath(), "run", tech)
}

// Pulse builds the CLI and refreshes the global pulse.
func Pulse() error {
	mg.Deps(Init, Build)
	return sh.RunV(binPath(), "pulse")
}

// sourceRoots are the directories holding this module's packages.
var sourceRoots = []string{"cmd", "internal", "pkg", "magefiles"}

// pkgStats counts non-blank Go lines for one package directory.
type pkgStats struct {
	files int
	prod  int
	test  int
}

// Stats prints non-blank Go lines per package, split into production and
// test code, with totals.
func Stats() error {
	stats, err := collectStats(sourceRoots)
	if err != nil {
		return err
	}
	pkgs := make([]string, 0, len(stats))
	for pkg := range stats {
		pkgs = append(pkgs, pkg)
	}
	sort.Strings(pkgs)

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "PACKAGE\tFILES\tPROD\tTEST\t")
	var total pkgStats
	for _, pkg := range pkgs {
		st := stats[pkg]
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t\n", filepath.ToSlash(pkg), st.files, st.prod, st.test)
		total.files += st.files
		total.prod += st.prod
		total.test += st.test
	}
	fmt.Fprintf(tw, "total\t%d\t%d\t%d\t\n", total.files, total.prod, total.test)
	return tw.Flush()
}

// collectStats walks roots and groups Go files by their directory. Missing
// roots are skipped, as are testdata and hidden directories.
func collectStats(roots []string) (map[string]*pkgStats, error) {
	stats := make(map[string]*pkgStats)
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return fs.SkipDir
				}
				return err
			}
			if d.IsDir() {
				if path != root && (d.Name() == "testdata" || strings.HasPrefix(d.Name(), ".")) {
					return fs.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) != ".go" {
				return nil
			}
			n, err := nonBlankLines(path)
			if err != nil {
				return err
			}
			pkg := filepath.Dir(path)
			st, ok := stats[pkg]
			if !ok {
				st = &pkgStats{}
				stats[pkg] = st
			}
			st.files++
			if strings.HasSuffix(path, "_test.go") {
				st.test += n
			} else {
				st.prod += n
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", root, err)
		}
	}
	return stats, nil
}

func nonBlankLines(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	n := 0
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n, nil
}
