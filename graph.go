package jolt

import (
	"fmt"
	"slices"
)

// Node is a property-graph node. Nodes are owned by a [Graph]; create them
// with [Graph.PutNode] and treat them as immutable afterwards.
type Node struct {
	ID         int64
	Labels     []string
	Properties *Map
}

// Kind implements [Value].
func (*Node) Kind() Kind { return KindNode }

// Equal implements [Value]. Nodes compare by id, labels in order, and
// properties.
func (n *Node) Equal(other Value) bool {
	o, ok := other.(*Node)
	if !ok {
		return false
	}

	return n.ID == o.ID &&
		slices.Equal(n.Labels, o.Labels) &&
		n.Properties.Equal(o.Properties)
}

// Relationship is a directed property-graph relationship between two node
// ids. Relationships are owned by a [Graph]; create them with
// [Graph.PutRelationship] and treat them as immutable afterwards.
type Relationship struct {
	ID         int64
	Type       string
	StartID    int64
	EndID      int64
	Properties *Map
}

// Kind implements [Value].
func (*Relationship) Kind() Kind { return KindRelationship }

// Equal implements [Value].
func (r *Relationship) Equal(other Value) bool {
	o, ok := other.(*Relationship)
	if !ok {
		return false
	}

	return r.ID == o.ID &&
		r.Type == o.Type &&
		r.StartID == o.StartID &&
		r.EndID == o.EndID &&
		r.Properties.Equal(o.Properties)
}

// Graph is an element store mapping ids to nodes and relationships. A
// Graph owns its elements; [Path] values borrow them by id. Graphs are
// populated during construction or during a single decode pass and are
// not safe for concurrent mutation.
type Graph struct {
	nodes map[int64]*Node
	rels  map[int64]*Relationship
}

// NewGraph creates an empty [Graph].
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[int64]*Node),
		rels:  make(map[int64]*Relationship),
	}
}

// PutNode stores a node under id. Storing an id that already exists is a
// no-op when the content matches the existing element on all fields;
// differing content returns [ErrElementConflict]. A nil properties map is
// normalized to an empty one.
func (g *Graph) PutNode(id int64, labels []string, properties *Map) (*Node, error) {
	if properties == nil {
		properties = NewMap()
	}

	candidate := &Node{ID: id, Labels: slices.Clone(labels), Properties: properties}

	if existing, ok := g.nodes[id]; ok {
		if !existing.Equal(candidate) {
			return nil, fmt.Errorf("%w: node %d", ErrElementConflict, id)
		}

		return existing, nil
	}

	g.nodes[id] = candidate

	return candidate, nil
}

// PutRelationship stores a relationship under id, connecting two nodes
// already present in the graph. The duplicate-id rule of [Graph.PutNode]
// applies.
func (g *Graph) PutRelationship(id int64, start, end *Node, typ string, properties *Map) (*Relationship, error) {
	if start == nil || end == nil {
		return nil, fmt.Errorf("%w: relationship %d endpoint", ErrGraphReferenceMissing, id)
	}

	for _, nodeID := range []int64{start.ID, end.ID} {
		if _, ok := g.nodes[nodeID]; !ok {
			return nil, fmt.Errorf("%w: node %d", ErrGraphReferenceMissing, nodeID)
		}
	}

	return g.putRelationship(id, start.ID, end.ID, typ, properties)
}

// putRelationship stores a relationship by endpoint ids without requiring
// the endpoints to be present. The decoder uses this form: a standalone
// relationship element carries ids of nodes it never ships.
func (g *Graph) putRelationship(id, startID, endID int64, typ string, properties *Map) (*Relationship, error) {
	if properties == nil {
		properties = NewMap()
	}

	candidate := &Relationship{
		ID:         id,
		Type:       typ,
		StartID:    startID,
		EndID:      endID,
		Properties: properties,
	}

	if existing, ok := g.rels[id]; ok {
		if !existing.Equal(candidate) {
			return nil, fmt.Errorf("%w: relationship %d", ErrElementConflict, id)
		}

		return existing, nil
	}

	g.rels[id] = candidate

	return candidate, nil
}

// Node returns the node stored under id.
func (g *Graph) Node(id int64) (*Node, bool) {
	n, ok := g.nodes[id]

	return n, ok
}

// Relationship returns the relationship stored under id.
func (g *Graph) Relationship(id int64) (*Relationship, bool) {
	r, ok := g.rels[id]

	return r, ok
}

// Path builds a [Path] starting at the node with startID and traversing
// the given relationships in order. Every referenced element must exist in
// the graph, and each relationship must touch the node the traversal stands
// on; traversal may run against a relationship's intrinsic direction.
func (g *Graph) Path(startID int64, relIDs ...int64) (*Path, error) {
	if len(relIDs) == 0 {
		return nil, fmt.Errorf("%w: a path needs at least one relationship", ErrInvalidPath)
	}

	if _, ok := g.nodes[startID]; !ok {
		return nil, fmt.Errorf("%w: node %d", ErrGraphReferenceMissing, startID)
	}

	current := startID

	for _, relID := range relIDs {
		r, ok := g.rels[relID]
		if !ok {
			return nil, fmt.Errorf("%w: relationship %d", ErrGraphReferenceMissing, relID)
		}

		switch current {
		case r.StartID:
			current = r.EndID
		case r.EndID:
			current = r.StartID
		default:
			return nil, fmt.Errorf("%w: relationship %d does not touch node %d",
				ErrInvalidPath, relID, current)
		}

		if _, ok := g.nodes[current]; !ok {
			return nil, fmt.Errorf("%w: node %d", ErrGraphReferenceMissing, current)
		}
	}

	return &Path{graph: g, start: startID, rels: slices.Clone(relIDs)}, nil
}

// Path is a walk through a [Graph]: a start node and one or more
// relationships, each connecting the node the walk stands on to the next.
// A Path borrows its elements from the owning Graph by id.
type Path struct {
	graph *Graph
	start int64
	rels  []int64
}

// Kind implements [Value].
func (*Path) Kind() Kind { return KindPath }

// Equal implements [Value]. Paths compare by topology: node sequence and
// relationship sequence, element contents included.
func (p *Path) Equal(other Value) bool {
	o, ok := other.(*Path)
	if !ok {
		return false
	}

	pn, po := p.Nodes(), o.Nodes()
	if len(pn) != len(po) {
		return false
	}

	for i := range pn {
		if !pn[i].Equal(po[i]) {
			return false
		}
	}

	pr, or := p.Relationships(), o.Relationships()
	if len(pr) != len(or) {
		return false
	}

	for i := range pr {
		if !pr[i].Equal(or[i]) {
			return false
		}
	}

	return true
}

// Len returns the number of relationships in the path.
func (p *Path) Len() int { return len(p.rels) }

// Start returns the node the path begins at.
func (p *Path) Start() *Node {
	n := p.graph.nodes[p.start]

	return n
}

// Nodes returns the k+1 node positions of a k-relationship path, in
// traversal order. The next node after each relationship is the endpoint
// the walk is not standing on, which permits traversal against the
// relationship's intrinsic direction.
func (p *Path) Nodes() []*Node {
	nodes := make([]*Node, 0, len(p.rels)+1)
	nodes = append(nodes, p.graph.nodes[p.start])

	current := p.start

	for _, relID := range p.rels {
		r := p.graph.rels[relID]
		if r == nil {
			continue
		}

		if current == r.StartID {
			current = r.EndID
		} else {
			current = r.StartID
		}

		nodes = append(nodes, p.graph.nodes[current])
	}

	return nodes
}

// Relationships returns the path's relationships in traversal order.
func (p *Path) Relationships() []*Relationship {
	rels := make([]*Relationship, 0, len(p.rels))

	for _, relID := range p.rels {
		rels = append(rels, p.graph.rels[relID])
	}

	return rels
}
