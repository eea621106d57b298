// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/techscope/pkg/types"
)

// ErrNotFound is returned by the readers when an artifact does not exist.
var ErrNotFound = errors.New("artifact not found")

// Artifact locations relative to the data directory.
const (
	techDir   = "tech"
	globalDir = "global"
	pulseFile = "global_tech_pulse.json"
)

// Writer stores artifacts under Dir:
//
//	<Dir>/tech/<slug>.json       dashboard
//	<Dir>/tech/<slug>_kg.json    knowledge graph
//	<Dir>/global/global_tech_pulse.json
type Writer struct {
	Dir string
}

// DashboardPath returns the dashboard file for slug.
func (w Writer) DashboardPath(slug string) string {
	return filepath.Join(w.Dir, techDir, slug+".json")
}

// GraphPath returns the knowledge graph file for slug.
func (w Writer) GraphPath(slug string) string {
	return filepath.Join(w.Dir, techDir, slug+"_kg.json")
}

// PulsePath returns the global pulse file.
func (w Writer) PulsePath() string {
	return filepath.Join(w.Dir, globalDir, pulseFile)
}

// WriteResult writes the dashboard and knowledge graph of res and returns
// the dashboard it wrote.
func (w Writer) WriteResult(res *types.TechResult) (types.Dashboard, error) {
	d := Dashboard(res)
	if err := w.WriteDashboard(d); err != nil {
		return d, err
	}
	if err := w.WriteGraph(d.Technology, res.Graph); err != nil {
		return d, err
	}
	return d, nil
}

// WriteDashboard writes d under its technology slug.
func (w Writer) WriteDashboard(d types.Dashboard) error {
	if err := CheckSlug(d.Technology); err != nil {
		return err
	}
	return WriteJSON(w.DashboardPath(d.Technology), d)
}

// WriteGraph writes g for slug. Nil node or edge lists are written as [].
func (w Writer) WriteGraph(slug string, g types.KnowledgeGraph) error {
	if err := CheckSlug(slug); err != nil {
		return err
	}
	if g.Nodes == nil {
		g.Nodes = []types.GraphNode{}
	}
	if g.Edges == nil {
		g.Edges = []types.GraphEdge{}
	}
	return WriteJSON(w.GraphPath(slug), g)
}

// WritePulse writes the global pulse artifact.
func (w Writer) WritePulse(p *types.PulseResult) error {
	return WriteJSON(w.PulsePath(), p)
}

// ReadDashboard loads the dashboard saved for slug.
func (w Writer) ReadDashboard(slug string) (*types.Dashboard, error) {
	if err := CheckSlug(slug); err != nil {
		return nil, err
	}
	var d types.Dashboard
	if err := readJSON(w.DashboardPath(slug), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// ReadGraph loads the knowledge graph saved for slug.
func (w Writer) ReadGraph(slug string) (*types.KnowledgeGraph, error) {
	if err := CheckSlug(slug); err != nil {
		return nil, err
	}
	var g types.KnowledgeGraph
	if err := readJSON(w.GraphPath(slug), &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// ReadPulse loads the saved global pulse.
func (w Writer) ReadPulse() (*types.PulseResult, error) {
	var p types.PulseResult
	if err := readJSON(w.PulsePath(), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// WriteJSON writes v to path as 2-space indented JSON via a temporary file
// and rename, creating parent directories. HTML characters are not escaped.
func WriteJSON(path string, v any) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "tmp-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("setting permissions: %w", err)
	}
	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("renaming into %s: %w", path, err)
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", filepath.Base(path), ErrNotFound)
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}
