package textgrab

import "strings"

// LinkAnnotation pairs the visible text of a link with its target.
type LinkAnnotation struct {
	Text string
	Href string
}

// Extraction is the content extracted from one page.
type Extraction struct {
	// Titles holds the text of every node matched by the title selector.
	Titles []string

	// Blocks holds one reflowed, link-annotated text block per container
	// matched by the text selector, in document order.
	Blocks []string
}

// Lines returns the output lines of the extraction: titles first, then blocks.
func (e *Extraction) Lines() []string {
	lines := make([]string, 0, len(e.Titles)+len(e.Blocks))
	lines = append(lines, e.Titles...)
	lines = append(lines, e.Blocks...)
	return lines
}

// Extract applies set to doc and returns the page title lines and text
// blocks, each block reflowed to width.
func Extract(doc Document, set SelectorSet, width int) (*Extraction, error) {
	titles, err := doc.Query(set.Title)
	if err != nil {
		return nil, Errorf(EINVALID, "title selector %q: %v", set.Title, err)
	}

	containers, err := doc.Query(set.Text)
	if err != nil {
		return nil, Errorf(EINVALID, "text selector %q: %v", set.Text, err)
	}

	e := &Extraction{
		Titles: make([]string, 0, len(titles)),
		Blocks: make([]string, 0, len(containers)),
	}
	for _, n := range titles {
		e.Titles = append(e.Titles, n.Text())
	}

	linkTextPath, linkPath := set.LinkTextPath(), set.LinkPath()
	for _, c := range containers {
		links, err := containerLinks(c, linkTextPath, linkPath)
		if err != nil {
			return nil, err
		}
		e.Blocks = append(e.Blocks, Reflow(AnnotateLinks(c.Text(), links), width))
	}

	return e, nil
}

// containerLinks queries link texts and targets separately and pairs them by
// position. Unpaired entries on the longer side are dropped.
func containerLinks(c Node, linkTextPath, linkPath string) ([]LinkAnnotation, error) {
	names, err := c.Query(linkTextPath)
	if err != nil {
		return nil, Errorf(EINVALID, "link text selector %q: %v", linkTextPath, err)
	}
	hrefs, err := c.Query(linkPath)
	if err != nil {
		return nil, Errorf(EINVALID, "link selector %q: %v", linkPath, err)
	}

	n := min(len(names), len(hrefs))
	links := make([]LinkAnnotation, n)
	for i := range n {
		links[i] = LinkAnnotation{Text: names[i].Text(), Href: hrefs[i].Text()}
	}
	return links, nil
}

// AnnotateLinks inserts "[href]" right after the first occurrence of each
// link text. Links are applied in order and each lookup runs against the
// text as modified by the previous insertions, so a link text repeated by an
// earlier marker can match inside that marker. Link texts that do not occur
// are skipped.
//
// TODO: look up positions in the unannotated text once output files from
// earlier runs no longer need to be reproduced byte for byte.
func AnnotateLinks(text string, links []LinkAnnotation) string {
	for _, l := range links {
		i := strings.Index(text, l.Text)
		if i < 0 {
			continue
		}
		end := i + len(l.Text)
		text = text[:end] + "[" + l.Href + "]" + text[end:]
	}
	return text
}
