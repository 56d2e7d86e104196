package textgrab

// Node is an element, text or attribute node of a parsed document.
type Node interface {
	// Text returns the text content of the node and all its descendants.
	// For attribute nodes this is the attribute value.
	Text() string

	// Query evaluates an XPath expression with the node as context and
	// returns matches in document order. Absolute expressions are evaluated
	// from the document root, as XPath defines them.
	Query(expr string) ([]Node, error)
}

// Document is a parsed HTML page. Querying a document evaluates expressions
// against its root node.
type Document interface {
	Node
}

// Parser turns decoded HTML into a queryable Document.
type Parser interface {
	Parse(html string) (Document, error)
}
