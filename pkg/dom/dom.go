// Package dom provides small helpers for searching and mutating golang.org/x/net/html trees.
//
// Queries are plain predicates over nodes instead of a selector engine: the
// newsletter rewriter only needs "first node matching X" lookups.
package dom

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Predicate reports whether a node matches
type Predicate func(n *html.Node) bool

// Parse parses a complete HTML document
func Parse(r io.Reader) (*html.Node, error) {
	return html.Parse(r)
}

// ParseString parses a complete HTML document from a string
func ParseString(s string) (*html.Node, error) {
	return Parse(strings.NewReader(s))
}

// Render serializes the tree rooted at n
func Render(n *html.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Find returns the first node in document order, starting with root itself, that matches pred
func Find(root *html.Node, pred Predicate) *html.Node {
	if root == nil {
		return nil
	}
	if pred(root) {
		return root
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if found := Find(c, pred); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every node under root, in document order, that matches pred
func FindAll(root *html.Node, pred Predicate) []*html.Node {
	var matches []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if pred(n) {
			matches = append(matches, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	if root != nil {
		walk(root)
	}
	return matches
}

// IsElement reports whether n is an element of the given type
func IsElement(n *html.Node, a atom.Atom) bool {
	return n != nil && n.Type == html.ElementNode && n.DataAtom == a
}

// Tag matches elements of the given type
func Tag(a atom.Atom) Predicate {
	return func(n *html.Node) bool {
		return IsElement(n, a)
	}
}

// ID matches the element with the given id attribute
func ID(id string) Predicate {
	return func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		v, ok := Attr(n, "id")
		return ok && v == id
	}
}

// Class matches elements carrying the given class
func Class(class string) Predicate {
	return func(n *html.Node) bool {
		return HasClass(n, class)
	}
}

// AttrContains matches elements whose attribute key contains substr
func AttrContains(key, substr string) Predicate {
	return func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		v, ok := Attr(n, key)
		return ok && strings.Contains(v, substr)
	}
}

// AttrEquals matches elements whose attribute key equals value
func AttrEquals(key, value string) Predicate {
	return func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		v, ok := Attr(n, key)
		return ok && v == value
	}
}

// TextEquals matches elements whose trimmed text content equals text
func TextEquals(text string) Predicate {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && strings.TrimSpace(Text(n)) == text
	}
}

// TextContains matches elements whose text content contains text
func TextContains(text string) Predicate {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && strings.Contains(Text(n), text)
	}
}

// And matches nodes that satisfy every predicate
func And(preds ...Predicate) Predicate {
	return func(n *html.Node) bool {
		for _, p := range preds {
			if !p(n) {
				return false
			}
		}
		return true
	}
}

// Attr returns the value of the attribute key
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets the attribute key, replacing an existing value
func SetAttr(n *html.Node, key, value string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}

// HasClass reports whether n's class attribute lists class
func HasClass(n *html.Node, class string) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	v, ok := Attr(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

// Text returns the concatenated text content of n
func Text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// InnerHTML serializes the children of n
func InnerHTML(n *html.Node) string {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&buf, c)
	}
	return buf.String()
}

// OuterHTML serializes n including its own tag
func OuterHTML(n *html.Node) string {
	var buf bytes.Buffer
	_ = html.Render(&buf, n)
	return buf.String()
}

// RemoveChildren detaches every child of n
func RemoveChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
}

// SetChildren replaces the children of n with nodes
func SetChildren(n *html.Node, nodes ...*html.Node) {
	RemoveChildren(n)
	for _, c := range nodes {
		n.AppendChild(c)
	}
}

// Remove detaches n from its parent
func Remove(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// RemoveRedundant detaches n together with every ancestor that wraps nothing but it.
// An ancestor is redundant when its trimmed inner HTML equals the trimmed outer
// HTML of the subtree already marked for removal. The walk stops below <body>.
// It returns the root of the detached subtree, or nil if n has no parent.
func RemoveRedundant(n *html.Node) *html.Node {
	if n == nil || n.Parent == nil {
		return nil
	}

	target := n
	for p := target.Parent; p != nil && p.Parent != nil; p = target.Parent {
		if p.Type != html.ElementNode || p.DataAtom == atom.Body || p.DataAtom == atom.Html {
			break
		}
		if strings.TrimSpace(InnerHTML(p)) != strings.TrimSpace(OuterHTML(target)) {
			break
		}
		target = p
	}

	Remove(target)
	return target
}

// Wrap replaces n in the tree with wrapper and makes n wrapper's last child
func Wrap(n, wrapper *html.Node) {
	if n.Parent != nil {
		n.Parent.InsertBefore(wrapper, n)
		n.Parent.RemoveChild(n)
	}
	wrapper.AppendChild(n)
}

// InsertAfter inserts nodes directly after ref, keeping their order
func InsertAfter(ref *html.Node, nodes ...*html.Node) {
	next := ref.NextSibling
	for _, n := range nodes {
		ref.Parent.InsertBefore(n, next)
	}
}

// Element builds a detached element node
func Element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

// TextNode builds a detached text node
func TextNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Link builds an <a href> element around children
func Link(href string, children ...*html.Node) *html.Node {
	a := Element(atom.A, html.Attribute{Key: "href", Val: href})
	for _, c := range children {
		a.AppendChild(c)
	}
	return a
}
