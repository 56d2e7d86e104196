// Package htmlquery implements textgrab.Parser using antchfx/htmlquery for
// XPath evaluation over golang.org/x/net/html trees.
package htmlquery

import (
	"cmp"
	"slices"
	"strings"
	"sync"

	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xpath"
	"github.com/fwojciec/textgrab"
	"golang.org/x/net/html"
)

// Ensure Parser implements textgrab.Parser at compile time.
var _ textgrab.Parser = (*Parser)(nil)

// Parser parses HTML into XPath-queryable documents.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses decoded HTML. Malformed markup is repaired the way browsers
// do it, so only reader failures produce errors.
func (p *Parser) Parse(s string) (textgrab.Document, error) {
	root, err := htmlquery.Parse(strings.NewReader(s))
	if err != nil {
		return nil, textgrab.Errorf(textgrab.EINVALID, "failed to parse HTML: %v", err)
	}
	return &node{
		nav: htmlquery.CreateXPathNavigator(root),
		doc: &document{root: root},
	}, nil
}

// document holds the tree shared by all nodes of one parse.
type document struct {
	root *html.Node

	once  sync.Once
	order map[nodeKey]int
}

// nodeKey identifies an element, text node or attribute. Attributes are
// keyed by their owner element and name.
type nodeKey struct {
	n    *html.Node
	attr string
}

// position returns the document-order index of every node and attribute.
// An element's attributes follow the element and precede its children.
func (d *document) position(k nodeKey) int {
	d.once.Do(func() {
		d.order = make(map[nodeKey]int)
		var walk func(*html.Node)
		walk = func(n *html.Node) {
			d.order[nodeKey{n: n}] = len(d.order)
			for _, a := range n.Attr {
				d.order[nodeKey{n: n, attr: a.Key}] = len(d.order)
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
		}
		walk(d.root)
	})
	return d.order[k]
}

// node is a navigator positioned on one match. The navigator stays rooted
// at the document, so absolute expressions evaluated with a node as context
// start at the top of the document.
type node struct {
	nav *htmlquery.NodeNavigator
	doc *document
}

func (n *node) key() nodeKey {
	if n.nav.NodeType() == xpath.AttributeNode {
		return nodeKey{n: n.nav.Current(), attr: n.nav.LocalName()}
	}
	return nodeKey{n: n.nav.Current()}
}

// Text returns the concatenated text of all descendant text nodes, or the
// value of an attribute node.
func (n *node) Text() string {
	if n.nav.NodeType() == xpath.AttributeNode {
		return n.nav.Value()
	}
	return htmlquery.InnerText(n.nav.Current())
}

// Query evaluates expr with this node as context. Each matched node is
// returned once, in document order.
func (n *node) Query(expr string) ([]textgrab.Node, error) {
	e, err := xpath.Compile(expr)
	if err != nil {
		return nil, err
	}

	var found []*node
	seen := make(map[nodeKey]bool)
	it := e.Select(n.nav.Copy())
	for it.MoveNext() {
		nav, ok := it.Current().Copy().(*htmlquery.NodeNavigator)
		if !ok {
			continue
		}
		m := &node{nav: nav, doc: n.doc}
		if k := m.key(); !seen[k] {
			seen[k] = true
			found = append(found, m)
		}
	}

	if len(found) > 1 {
		slices.SortStableFunc(found, func(a, b *node) int {
			return cmp.Compare(n.doc.position(a.key()), n.doc.position(b.key()))
		})
	}

	nodes := make([]textgrab.Node, len(found))
	for i, f := range found {
		nodes[i] = f
	}
	return nodes, nil
}
