package css

// WalkDecls calls fn for every declaration below c, depth-first in document
// order. Nodes inserted after the one being visited are visited as well;
// nodes removed before being reached are not. A non-nil error from fn stops
// the walk and is returned.
func WalkDecls(c Container, fn func(*Declaration) error) error {
	return Walk(c, func(n Node) error {
		if decl, ok := n.(*Declaration); ok {
			return fn(decl)
		}
		return nil
	})
}

// WalkRules calls fn for every rule below c, depth-first in document order
func WalkRules(c Container, fn func(*Rule) error) error {
	return Walk(c, func(n Node) error {
		if rule, ok := n.(*Rule); ok {
			return fn(rule)
		}
		return nil
	})
}

// Walk calls fn for every node below c, parents before their children
func Walk(c Container, fn func(Node) error) error {
	for i := 0; i < len(c.Nodes()); i++ {
		n := c.Nodes()[i]
		if err := fn(n); err != nil {
			return err
		}
		if child, ok := n.(Container); ok && n.Parent() == c {
			if err := Walk(child, fn); err != nil {
				return err
			}
		}
		// fn may have inserted or removed siblings; continue after n
		// wherever it is now, or at the same index if it is gone
		i = relocate(c, n, i)
	}
	return nil
}

// relocate returns the index n has in c now; it was at i when visited.
// An unmoved or removed n is answered without scanning c.
func relocate(c Container, n Node, i int) int {
	if nodes := c.Nodes(); i < len(nodes) && nodes[i] == n {
		return i
	}
	if n.Parent() != c {
		return i - 1
	}
	return c.Index(n)
}
