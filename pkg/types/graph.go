// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// NodeType classifies knowledge graph nodes.
type NodeType string

const (
	NodeTechnology NodeType = "technology"
	NodePatent     NodeType = "patent"
	NodePaper      NodeType = "paper"
	NodeCompany    NodeType = "company"
	NodeCountry    NodeType = "country"
)

// Relation labels a knowledge graph edge.
type Relation string

const (
	RelHasPatent       Relation = "HAS_PATENT"
	RelHasPaper        Relation = "HAS_PAPER"
	RelInvolvesCompany Relation = "INVOLVES_COMPANY"
	RelFiledIn         Relation = "FILED_IN"
	RelPublishedIn     Relation = "PUBLISHED_IN"
	RelLocatedIn       Relation = "LOCATED_IN"
)

// GraphNode is a vertex keyed by its display string.
type GraphNode struct {
	ID   string   `json:"id" yaml:"id"`
	Type NodeType `json:"type" yaml:"type"`
}

// GraphEdge connects two node ids. The graph is undirected; Source and
// Target record the order in which the edge was first added.
type GraphEdge struct {
	Source   string   `json:"source" yaml:"source"`
	Target   string   `json:"target" yaml:"target"`
	Relation Relation `json:"relation" yaml:"relation"`
}

// KnowledgeGraph is the serialized entity graph for one technology.
type KnowledgeGraph struct {
	Nodes []GraphNode `json:"nodes" yaml:"nodes"`
	Edges []GraphEdge `json:"edges" yaml:"edges"`
}
