// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package graph builds the entity graph linking a technology to its
// patents, papers, companies and their countries.
package graph

import (
	"strings"

	"github.com/pdiddy/techscope/pkg/types"
)

// Builder accumulates an undirected graph. Nodes are keyed by id and edges
// by their unordered endpoint pair; re-adding either is a no-op. Insertion
// order is kept for serialization.
type Builder struct {
	nodes     []types.GraphNode
	nodeIndex map[string]struct{}
	edges     []types.GraphEdge
	edgeIndex map[[2]string]struct{}
}

// NewBuilder returns an empty graph builder.
func NewBuilder() *Builder {
	return &Builder{
		nodeIndex: make(map[string]struct{}),
		edgeIndex: make(map[[2]string]struct{}),
	}
}

// AddNode adds a node unless one with the same id exists. The first type
// recorded for an id is kept.
func (b *Builder) AddNode(id string, typ types.NodeType) {
	if _, ok := b.nodeIndex[id]; ok {
		return
	}
	b.nodeIndex[id] = struct{}{}
	b.nodes = append(b.nodes, types.GraphNode{ID: id, Type: typ})
}

// AddEdge links source and target unless they are already linked in either
// direction. The first relation for a pair is kept.
func (b *Builder) AddEdge(source, target string, rel types.Relation) {
	key := [2]string{source, target}
	if target < source {
		key = [2]string{target, source}
	}
	if _, ok := b.edgeIndex[key]; ok {
		return
	}
	b.edgeIndex[key] = struct{}{}
	b.edges = append(b.edges, types.GraphEdge{Source: source, Target: target, Relation: rel})
}

// Graph returns the serialized node and edge lists.
func (b *Builder) Graph() types.KnowledgeGraph {
	g := types.KnowledgeGraph{
		Nodes: make([]types.GraphNode, len(b.nodes)),
		Edges: make([]types.GraphEdge, len(b.edges)),
	}
	copy(g.Nodes, b.nodes)
	copy(g.Edges, b.edges)
	return g
}

// link adds an entity node hanging off the technology and, when the country
// is non-empty, a country node hanging off the entity. Unknown is a country
// node like any other.
func (b *Builder) link(tech, entity string, typ types.NodeType, rel types.Relation, country string, countryRel types.Relation) {
	entity = strings.TrimSpace(entity)
	if entity == "" {
		return
	}
	b.AddNode(entity, typ)
	b.AddEdge(tech, entity, rel)

	country = strings.TrimSpace(country)
	if country == "" {
		return
	}
	b.AddNode(country, types.NodeCountry)
	b.AddEdge(entity, country, countryRel)
}

// Build assembles the graph for one technology run.
func Build(tech string, patents []types.Patent, papers []types.Paper, companies []types.Company) types.KnowledgeGraph {
	b := NewBuilder()
	b.AddNode(tech, types.NodeTechnology)
	for _, p := range patents {
		b.link(tech, p.Title, types.NodePatent, types.RelHasPatent, p.Country, types.RelFiledIn)
	}
	for _, p := range papers {
		b.link(tech, p.Title, types.NodePaper, types.RelHasPaper, p.Country, types.RelPublishedIn)
	}
	for _, c := range companies {
		b.link(tech, c.Name, types.NodeCompany, types.RelInvolvesCompany, c.Country, types.RelLocatedIn)
	}
	return b.Graph()
}
