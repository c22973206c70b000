package anim

import (
	"fmt"
	"sort"

	"github.com/Faultbox/midgard-geom/pkg/math"
)

// Node is one entry of a transform hierarchy.
type Node struct {
	Name   string
	Parent string // empty for roots
	Rest   Transform
}

// Hierarchy resolves world matrices from local ones.
type Hierarchy struct {
	nodes map[string]*Node
	order []string
}

// NewHierarchy indexes copies of nodes by name. Duplicate names are rejected.
func NewHierarchy(nodes []Node) (*Hierarchy, error) {
	h := &Hierarchy{nodes: make(map[string]*Node, len(nodes))}
	for _, n := range nodes {
		if _, dup := h.nodes[n.Name]; dup {
			return nil, fmt.Errorf("duplicate node %q", n.Name)
		}
		h.nodes[n.Name] = &n
		h.order = append(h.order, n.Name)
	}
	return h, nil
}

// Names returns node names in declaration order.
func (h *Hierarchy) Names() []string {
	return append([]string(nil), h.order...)
}

// Node returns the named node, or nil.
func (h *Hierarchy) Node(name string) *Node {
	return h.nodes[name]
}

// RestPose returns every node's rest transform, for use as animation
// fallback values.
func (h *Hierarchy) RestPose() map[string]Transform {
	out := make(map[string]Transform, len(h.nodes))
	for name, n := range h.nodes {
		out[name] = n.Rest
	}
	return out
}

// WorldMatrices combines local matrices up the parent chain as
// parent * local. Nodes without an entry in locals use their rest pose.
// A parent cycle is cut where it closes; the node that closes it is
// treated as a root.
func (h *Hierarchy) WorldMatrices(locals map[string]math.Mat4) map[string]math.Mat4 {
	world := make(map[string]math.Mat4, len(h.nodes))
	for _, name := range h.order {
		h.resolve(name, locals, world, make(map[string]bool))
	}
	return world
}

func (h *Hierarchy) resolve(name string, locals, world map[string]math.Mat4, visited map[string]bool) math.Mat4 {
	if m, ok := world[name]; ok {
		return m
	}
	n := h.nodes[name]
	local, ok := locals[name]
	if !ok {
		local = n.Rest.Matrix()
	}
	visited[name] = true

	result := local
	if n.Parent != "" && n.Parent != n.Name && !visited[n.Parent] {
		if _, exists := h.nodes[n.Parent]; exists {
			result = h.resolve(n.Parent, locals, world, visited).Mul(local)
		}
	}
	world[name] = result
	return result
}

// Roots returns the names of nodes without a known parent, sorted.
func (h *Hierarchy) Roots() []string {
	var roots []string
	for name, n := range h.nodes {
		if _, ok := h.nodes[n.Parent]; !ok || n.Parent == name {
			roots = append(roots, name)
		}
	}
	sort.Strings(roots)
	return roots
}
