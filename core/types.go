// SPDX-License-Identifier: MIT

package core

import (
	"errors"
	"time"
)

// Sentinel errors for core graph operations.
var (
	// ErrEmptyNodeID indicates that a node was added with an empty ID.
	ErrEmptyNodeID = errors.New("core: node ID is empty")

	// ErrDuplicateNode indicates that a node ID occurs more than once.
	ErrDuplicateNode = errors.New("core: duplicate node ID")

	// ErrDanglingLink indicates a link whose source or target is not a node.
	ErrDanglingLink = errors.New("core: link endpoint not found")

	// ErrNodeNotFound indicates an operation referenced a non-existent node.
	ErrNodeNotFound = errors.New("core: node not found")

	// ErrBadWeight indicates a link weight below 1.
	ErrBadWeight = errors.New("core: link weight must be >= 1")
)

// Message is one entry of a conversation log.
type Message struct {
	// Author is the sender identifier; messages with an empty author are ignored.
	Author string `json:"author"`

	// Timestamp orders the conversation.
	Timestamp time.Time `json:"timestamp"`

	// Text is the message body.
	Text string `json:"text"`
}

// Node is one participant of the interaction graph.
//
// Metric fields are zero until the metrics stage fills them in; Community
// stays nil until community detection assigns one. Size, Color and the
// highlight flags belong to the customization stage.
type Node struct {
	ID       string `json:"id"`
	Messages int    `json:"messages"`

	Degree    int `json:"degree"`
	InDegree  int `json:"inDegree"`
	OutDegree int `json:"outDegree"`

	Closeness   float64 `json:"closeness"`
	Betweenness float64 `json:"betweenness"`
	Eigenvector float64 `json:"eigenvector"`
	PageRank    float64 `json:"pagerank"`

	Community *int `json:"community,omitempty"`

	Size                   float64 `json:"size,omitempty"`
	Color                  string  `json:"color,omitempty"`
	Highlighted            bool    `json:"highlighted,omitempty"`
	IsHighlightedCommunity bool    `json:"isHighlightedCommunity,omitempty"`
	IsCommon               bool    `json:"isCommon,omitempty"`
}

// CommunityID returns the assigned community and whether one is set.
func (n Node) CommunityID() (int, bool) {
	if n.Community == nil {
		return 0, false
	}
	return *n.Community, true
}

// Link is a directed, weighted interaction Source → Target.
// Weight counts how many times the interaction occurred.
type Link struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Weight int    `json:"weight"`
}

// Graph is an arena of nodes and links. See the package documentation for
// the invariants a valid Graph satisfies.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// NewGraph returns an empty, non-nil Graph.
func NewGraph() *Graph {
	return &Graph{Nodes: []Node{}, Links: []Link{}}
}
