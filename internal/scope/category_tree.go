// Package scope resolves which categories and products an authorization
// grant covers, and builds the payload for requesting new grants.
package scope

// Category is one node of a manufacturer's category forest as returned by
// the backend. ParentID is empty for roots; a ParentID that references no
// known node is treated as a root.
type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ParentID string `json:"parentId"`
	Count    int    `json:"count"`
}

// Node is a category with resolved children.
type Node struct {
	ID       string
	Name     string
	ParentID string
	Count    int
	Children []*Node
}

// Tree indexes a category forest for lookup and descendant expansion. It is
// built once per view load and never mutated afterwards.
type Tree struct {
	roots    []*Node
	nodeByID map[string]*Node
}

// BuildTree constructs a Tree from a flat category list.
func BuildTree(categories []Category) *Tree {
	tree := &Tree{
		nodeByID: make(map[string]*Node, len(categories)),
	}

	for _, cat := range categories {
		if cat.ID == "" {
			continue
		}
		tree.nodeByID[cat.ID] = &Node{
			ID:       cat.ID,
			Name:     cat.Name,
			ParentID: cat.ParentID,
			Count:    cat.Count,
		}
	}

	// Link children to parents; orphans become roots.
	for _, node := range tree.nodeByID {
		if node.ParentID == "" {
			tree.roots = append(tree.roots, node)
			continue
		}
		parent, exists := tree.nodeByID[node.ParentID]
		if exists {
			parent.Children = append(parent.Children, node)
		} else {
			tree.roots = append(tree.roots, node)
		}
	}

	return tree
}

// Roots returns the top-level category nodes.
func (t *Tree) Roots() []*Node {
	return t.roots
}

// Node returns the node for a category id, or nil if unknown.
func (t *Tree) Node(id string) *Node {
	return t.nodeByID[id]
}

// Name returns the display name for a category id, or "" if unknown.
func (t *Tree) Name(id string) string {
	if node := t.nodeByID[id]; node != nil {
		return node.Name
	}
	return ""
}

// DescendantIDs returns the ids of the category and every descendant, via an
// iterative walk of the children links. A visited set guards against cycles
// in malformed input, so the walk always terminates. Unknown ids yield a set
// containing only the id itself.
func (t *Tree) DescendantIDs(id string) map[string]bool {
	ids := map[string]bool{id: true}

	node := t.nodeByID[id]
	if node == nil {
		return ids
	}

	stack := []*Node{node}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, child := range n.Children {
			if ids[child.ID] {
				continue
			}
			ids[child.ID] = true
			stack = append(stack, child)
		}
	}

	return ids
}
