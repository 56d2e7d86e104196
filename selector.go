package textgrab

// DefaultSelectorKey is the SelectorConfig entry used when a host has no
// usable selector set of its own.
const DefaultSelectorKey = "default"

// SelectorSet holds the XPath expressions used to extract content from one site.
//
// Title and Text are evaluated against the document. LinkText is appended to
// Text to find link nodes inside each text block, and Link is appended to
// that to find the link targets.
type SelectorSet struct {
	Title    string `yaml:"title" json:"title"`
	Text     string `yaml:"text" json:"text"`
	LinkText string `yaml:"link_text" json:"link_text"`
	Link     string `yaml:"link" json:"link"`
}

// Valid reports whether all four expressions are set.
func (s SelectorSet) Valid() bool {
	return s.Title != "" && s.Text != "" && s.LinkText != "" && s.Link != ""
}

// LinkTextPath returns the expression locating link text nodes.
func (s SelectorSet) LinkTextPath() string {
	return s.Text + s.LinkText
}

// LinkPath returns the expression locating link targets.
func (s SelectorSet) LinkPath() string {
	return s.LinkTextPath() + s.Link
}

// SelectorConfig maps host names to selector sets. It must contain a valid
// DefaultSelectorKey entry.
type SelectorConfig map[string]SelectorSet

// DefaultSelectorConfig returns the built-in configuration used when no
// settings file is present.
func DefaultSelectorConfig() SelectorConfig {
	return SelectorConfig{
		DefaultSelectorKey: {
			Title:    "//title",
			Text:     "//div//p",
			LinkText: "/a",
			Link:     "/@href",
		},
	}
}

// Validate returns an error if the configuration has no usable default set.
func (c SelectorConfig) Validate() error {
	def, ok := c[DefaultSelectorKey]
	if !ok {
		return Errorf(EINVALID, "selector config requires a %q entry", DefaultSelectorKey)
	}
	if !def.Valid() {
		return Errorf(EINVALID, "selector config %q entry requires title, text, link_text and link", DefaultSelectorKey)
	}
	return nil
}

// Resolve returns the selector set for host, falling back to the default
// set when the host is unknown or its set is incomplete.
func (c SelectorConfig) Resolve(host string) SelectorSet {
	if s, ok := c[host]; ok && s.Valid() {
		return s
	}
	return c[DefaultSelectorKey]
}
