package ast

// Comments is the side table mapping AST nodes to their leading doc
// comments, verbatim text including the /** ... */ delimiters. The
// pipeline driver owns one Comments value per compilation and lends it to
// whichever pass needs to read or move entries.
type Comments struct {
	byNode map[*Node]string
}

func NewComments() *Comments {
	return &Comments{byNode: map[*Node]string{}}
}

func (c *Comments) Get(n *Node) (string, bool) {
	text, ok := c.byNode[n]
	return text, ok
}

func (c *Comments) Set(n *Node, text string) {
	c.byNode[n] = text
}

// ReplaceWithComment moves (not copies) whatever comment was attached to
// old onto replacement. Used when a pass swaps a NAME parameter node for a
// REST or retagged NAME node — the comment belongs to the position, not
// the node identity, so it must travel with the replacement.
func (c *Comments) ReplaceWithComment(old, replacement *Node) {
	if text, ok := c.byNode[old]; ok {
		delete(c.byNode, old)
		c.byNode[replacement] = text
	}
}
