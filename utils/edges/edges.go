// Package edges flattens Relay-style connections returned by the storefront API.
package edges

// Edge wraps a single node of a connection.
type Edge[T any] struct {
	Node T `json:"node"`
}

// Connection is the `{ edges { node { ... } } }` shape used for every list field.
type Connection[T any] struct {
	Edges []Edge[T] `json:"edges"`
}

// RemoveEdgesAndNodes returns the nodes of c in order. A nil connection or nil
// edge list yields an empty, non-nil slice.
func RemoveEdgesAndNodes[T any](c *Connection[T]) []T {
	if c == nil {
		return []T{}
	}
	nodes := make([]T, 0, len(c.Edges))
	for _, edge := range c.Edges {
		nodes = append(nodes, edge.Node)
	}
	return nodes
}
