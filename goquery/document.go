// Package goquery implements structural feature extraction over goquery
// document trees.
package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagevec"
	"golang.org/x/net/html"
)

// Document is a parsed HTML document tree answering tag-level queries.
// It is read-only after Parse.
type Document struct {
	doc *goquery.Document

	// imageTags counts <image> start tags as written in the source.
	// Tree construction renames them to <img> outside SVG.
	imageTags int

	cache map[string]*goquery.Selection
}

// Parse builds a Document from raw HTML.
// Scripting is disabled so that <noscript> content is parsed as markup.
func Parse(src string) (*Document, error) {
	root, err := html.ParseWithOptions(strings.NewReader(src), html.ParseOptionEnableScripting(false))
	if err != nil {
		return nil, pagevec.Errorf(pagevec.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Document{
		doc:       goquery.NewDocumentFromNode(root),
		imageTags: countStartTags(src, "image"),
		cache:     make(map[string]*goquery.Selection),
	}, nil
}

// all returns every element named tag, including nested ones.
func (d *Document) all(tag string) *goquery.Selection {
	if sel, ok := d.cache[tag]; ok {
		return sel
	}
	sel := d.doc.Find(tag)
	d.cache[tag] = sel
	return sel
}

// Count returns the number of elements named tag.
func (d *Document) Count(tag string) int {
	return d.all(tag).Length()
}

// Any reports whether at least one element named tag exists.
func (d *Document) Any(tag string) bool {
	return d.Count(tag) > 0
}

// AnyAttr reports whether an element named tag has attr equal to value.
// The scan stops at the first match.
func (d *Document) AnyAttr(tag, attr, value string) bool {
	found := false
	d.all(tag).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if v, ok := s.Attr(attr); ok && v == value {
			found = true
			return false
		}
		return true
	})
	return found
}

// CountAttr returns the number of elements named tag whose attr equals value.
func (d *Document) CountAttr(tag, attr, value string) int {
	n := 0
	d.all(tag).Each(func(_ int, s *goquery.Selection) {
		if v, ok := s.Attr(attr); ok && v == value {
			n++
		}
	})
	return n
}

// CountNonEmptyAttr returns the number of elements named tag carrying a
// non-empty attr.
func (d *Document) CountNonEmptyAttr(tag, attr string) int {
	n := 0
	d.all(tag).Each(func(_ int, s *goquery.Selection) {
		if s.AttrOr(attr, "") != "" {
			n++
		}
	})
	return n
}

// Title returns the trimmed text of the first <title> element.
func (d *Document) Title() string {
	return strings.TrimSpace(d.all("title").First().Text())
}

// TextLength returns the number of characters of visible text: every text
// node trimmed, empty ones dropped, concatenated.
func (d *Document) TextLength() int {
	n := 0
	for _, node := range d.doc.Nodes {
		n += textLength(node)
	}
	return n
}

func textLength(n *html.Node) int {
	switch n.Type {
	case html.TextNode:
		return utf8.RuneCountInString(strings.TrimSpace(n.Data))
	case html.ElementNode:
		switch n.Data {
		case "script", "style", "template":
			return 0
		}
	case html.CommentNode, html.DoctypeNode:
		return 0
	}
	total := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		total += textLength(c)
	}
	return total
}

// ImageCount returns the number of <image> elements as written in the source.
func (d *Document) ImageCount() int {
	return d.imageTags
}

// ImgCount returns the number of <img> elements as written in the source,
// excluding those the parser renamed from <image>.
func (d *Document) ImgCount() int {
	renamed := max(0, d.imageTags-d.Count("image"))
	return max(0, d.Count("img")-renamed)
}

// countStartTags counts start tags named name with the tokenizer, which
// keeps tag names as written and skips raw text such as script bodies.
// Like Parse, it reads <noscript> content as markup.
func countStartTags(src, name string) int {
	z := html.NewTokenizer(strings.NewReader(src))
	n := 0
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return n
		case html.StartTagToken, html.SelfClosingTagToken:
			tn, _ := z.TagName()
			if string(tn) == name {
				n++
			}
			if tt == html.StartTagToken && string(tn) == "noscript" {
				z.NextIsNotRawText()
			}
		}
	}
}
