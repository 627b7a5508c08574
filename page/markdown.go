package page

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

var markdown = goldmark.New(
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
		parser.WithAttribute(),
	),
)

// ParseMarkdown builds a Document from markdown. "#" sets the page title,
// "##" starts a section, "###" starts a card inside the current section;
// paragraphs and list items become text lines of the innermost block.
func ParseMarkdown(src []byte) (*Document, error) {
	root := markdown.Parser().Parse(text.NewReader(src))

	doc := &Document{}
	var section *Section
	var card *Card

	addLine := func(line string) {
		switch {
		case card != nil:
			card.Lines = append(card.Lines, line)
		case section != nil:
			section.Lines = append(section.Lines, line)
		}
	}

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			title := inlineText(node, src)
			id := headingID(node)
			switch node.Level {
			case 1:
				doc.Title = title
			case 2:
				doc.Sections = append(doc.Sections, Section{ID: id, Title: title})
				section = &doc.Sections[len(doc.Sections)-1]
				card = nil
			case 3:
				if section == nil {
					return nil, fmt.Errorf("card %q appears before any section", title)
				}
				section.Cards = append(section.Cards, Card{ID: id, Title: title})
				card = &section.Cards[len(section.Cards)-1]
			}
		case *ast.Paragraph:
			addLine(inlineText(node, src))
		case *ast.List:
			for item := node.FirstChild(); item != nil; item = item.NextSibling() {
				addLine("- " + inlineText(item, src))
			}
		}
	}

	if len(doc.Sections) == 0 {
		return nil, fmt.Errorf("content has no sections")
	}
	return doc, nil
}

func headingID(h *ast.Heading) string {
	v, ok := h.AttributeString("id")
	if !ok {
		return ""
	}
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return ""
}

// inlineText flattens the text of n's inline descendants.
func inlineText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := child.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
