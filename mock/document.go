package mock

import "github.com/fwojciec/textgrab"

var (
	_ textgrab.Document = (*Node)(nil)
	_ textgrab.Parser   = (*Parser)(nil)
)

// Node is a mock implementation of textgrab.Node and textgrab.Document.
type Node struct {
	TextFn  func() string
	QueryFn func(expr string) ([]textgrab.Node, error)
}

func (n *Node) Text() string {
	return n.TextFn()
}

func (n *Node) Query(expr string) ([]textgrab.Node, error) {
	return n.QueryFn(expr)
}

// TextNode returns a Node with fixed text that matches nothing.
func TextNode(text string) *Node {
	return &Node{
		TextFn:  func() string { return text },
		QueryFn: func(string) ([]textgrab.Node, error) { return nil, nil },
	}
}

// Parser is a mock implementation of textgrab.Parser.
type Parser struct {
	ParseFn func(html string) (textgrab.Document, error)
}

func (p *Parser) Parse(html string) (textgrab.Document, error) {
	return p.ParseFn(html)
}
