// Package page models the portfolio document: its sections and cards, the
// vertical layout they occupy, which of them have been revealed, and which
// navigation link is active for the current scroll position.
package page

import (
	_ "embed"
	"strings"
)

//go:embed content/portfolio.md
var defaultContent []byte

// Card is a project or skill entry inside a section.
type Card struct {
	ID    string
	Title string
	Lines []string
}

// Section is a top-level block of the page, reachable from the nav.
type Section struct {
	ID    string
	Title string
	Lines []string
	Cards []Card
}

// Document is the parsed page content.
type Document struct {
	Title    string
	Sections []Section
}

// Link is a navigation anchor. Href is "#" followed by a section id.
type Link struct {
	Label string
	Href  string
}

// Target returns the section id the link points to.
func (l Link) Target() string {
	return strings.TrimPrefix(l.Href, "#")
}

// DefaultDocument parses the embedded portfolio content.
func DefaultDocument() (*Document, error) {
	return ParseMarkdown(defaultContent)
}

// NavLinks returns one link per section.
func (d *Document) NavLinks() []Link {
	links := make([]Link, 0, len(d.Sections))
	for _, s := range d.Sections {
		links = append(links, Link{Label: s.Title, Href: "#" + s.ID})
	}
	return links
}

// Section returns the section with the given id.
func (d *Document) Section(id string) (Section, bool) {
	for _, s := range d.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}
