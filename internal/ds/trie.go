package ds

import (
	"slices"
	"strings"
)

type Node[T any] struct {
	name     string
	value    T
	setted   bool
	children map[string]*Node[T]
}

func createNode[T any](name string) *Node[T] {
	return &Node[T]{
		name:     name,
		children: make(map[string]*Node[T]),
	}
}

type Trie[T any] struct {
	root *Node[T]
}

func NewTrie[T any]() *Trie[T] {
	trie := Trie[T]{
		root: createNode[T](""),
	}
	return &trie
}

// Split cuts a dotted path into its parts.
func Split(path string) []string {
	return strings.Split(path, ".")
}

func (t *Trie[T]) Get(path []string) (T, bool) {
	var (
		node = t.root
		ok   bool
	)
	for _, name := range path {
		node, ok = node.children[name]
		if !ok {
			var z T
			return z, ok
		}
	}
	return node.value, node.setted
}

// Walk calls fn for every value registered under prefix. Children are
// visited in lexical order.
func (t *Trie[T]) Walk(prefix []string, fn func(path []string, v T)) {
	node := t.root
	for _, name := range prefix {
		n, ok := node.children[name]
		if !ok {
			return
		}
		node = n
	}

	var walk func(n *Node[T], path []string)

	walk = func(n *Node[T], path []string) {
		if n.setted {
			fn(slices.Clone(path), n.value)
		}
		names := make([]string, 0, len(n.children))
		for name := range n.children {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			walk(n.children[name], append(path, name))
		}
	}

	walk(node, slices.Clone(prefix))
}

func (t *Trie[T]) Register(path []string, value T) {
	node := t.root
	for _, name := range path {
		if node.children[name] == nil {
			node.children[name] = createNode[T](name)
		}
		node = node.children[name]
	}
	node.value = value
	node.setted = true
}
