package chunk

// Children returns the nested lists owned by c, in document order. Kinds that
// cannot contain chunks return nil.
func Children(c Chunk) []List {
	switch node := c.(type) {
	case Conditional:
		return []List{node.Body}
	case ForEach:
		return []List{node.Body}
	case Scope:
		return []List{node.Body}
	case Content:
		return []List{node.Body}
	case UseContent:
		return []List{node.Default}
	case Macro:
		return []List{node.Body}
	case Opaque:
		return []List{node.Children}
	default:
		return nil
	}
}

// Walk visits every chunk of list depth-first in document order. When fn
// returns false the children of that chunk are skipped. Walk never modifies
// the tree.
func Walk(list List, fn func(Chunk) bool) {
	for _, c := range list {
		if c == nil {
			continue
		}
		if !fn(c) {
			continue
		}
		for _, child := range Children(c) {
			Walk(child, fn)
		}
	}
}

// Count returns the number of chunks in list, nested chunks included.
func Count(list List) int {
	n := 0
	Walk(list, func(Chunk) bool {
		n++
		return true
	})
	return n
}
