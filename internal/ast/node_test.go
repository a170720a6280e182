package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetPropAndHasProp(t *testing.T) {
	n := NewLeaf(TName, "x")
	assert.False(t, n.HasProp(PropOptES6Typed))
	n.SetProp(PropOptES6Typed, true)
	assert.True(t, n.HasProp(PropOptES6Typed))
}

func TestFirstAndLastChildOnEmptyChildrenReturnNil(t *testing.T) {
	n := NewLeaf(TName, "x")
	assert.Nil(t, n.FirstChild())
	assert.Nil(t, n.LastChild())
}

func TestFirstAndLastChildWithMultipleChildren(t *testing.T) {
	a, b, c := NewLeaf(TName, "a"), NewLeaf(TName, "b"), NewLeaf(TName, "c")
	n := NewNode(TParamList, a, b, c)
	assert.Same(t, a, n.FirstChild())
	assert.Same(t, c, n.LastChild())
}

func TestReplaceChildPreservesPosition(t *testing.T) {
	a, b := NewLeaf(TName, "a"), NewLeaf(TName, "b")
	n := NewNode(TParamList, a, b)
	replacement := NewLeaf(TRest, "rest")
	n.ReplaceChild(1, replacement)
	assert.Same(t, a, n.Children[0])
	assert.Same(t, replacement, n.Children[1])
}

func TestIndexOfChildFindsByIdentity(t *testing.T) {
	a, b := NewLeaf(TName, "a"), NewLeaf(TName, "b")
	n := NewNode(TParamList, a, b)
	assert.Equal(t, 0, n.IndexOfChild(a))
	assert.Equal(t, 1, n.IndexOfChild(b))
	assert.Equal(t, -1, n.IndexOfChild(NewLeaf(TName, "a")))
}
