package goquery

import (
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagevec"
)

// Ensure Extractor implements pagevec.Extractor at compile time.
var _ pagevec.Extractor = (*Extractor)(nil)

// Extractor computes structural feature vectors from raw HTML.
// It is stateless and safe for concurrent use.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses html and returns its feature vector.
func (e *Extractor) Extract(html string) (pagevec.Vector, error) {
	doc, err := Parse(html)
	if err != nil {
		return nil, err
	}
	return doc.Vector(), nil
}

// Vector computes the feature vector of the document.
// The result always has pagevec.FeatureCount values.
func (d *Document) Vector() pagevec.Vector {
	v := pagevec.NewVector()
	title := d.Title()

	v.Flag(pagevec.HasTitle, title != "")
	v.Flag(pagevec.HasInput, d.Any("input"))
	v.Flag(pagevec.HasButton, d.Any("button"))
	v.Flag(pagevec.HasImage, d.ImageCount() > 0)
	v.Flag(pagevec.HasSubmit, d.AnyAttr("input", "type", "submit"))
	v.Flag(pagevec.HasLink, d.Any("link"))
	v.Flag(pagevec.HasPassword, d.AnyAttr("input", "type", "password"))
	v.Flag(pagevec.HasEmailInput, d.AnyAttr("input", "type", "email"))
	v.Flag(pagevec.HasHiddenElement, d.AnyAttr("input", "type", "hidden"))
	v.Flag(pagevec.HasAudio, d.Any("audio"))
	v.Flag(pagevec.HasVideo, d.Any("video"))

	v.Set(pagevec.NumberOfInputs, d.Count("input"))
	v.Set(pagevec.NumberOfButtons, d.Count("button"))
	v.Set(pagevec.NumberOfImages, d.ImageCount()+d.metaImages())
	v.Set(pagevec.NumberOfOption, d.Count("option"))
	v.Set(pagevec.NumberOfList, d.Count("li"))
	v.Set(pagevec.NumberOfTH, d.Count("th"))
	v.Set(pagevec.NumberOfTR, d.Count("tr"))
	v.Set(pagevec.NumberOfHref, d.CountNonEmptyAttr("link", "href"))
	v.Set(pagevec.NumberOfParagraph, d.Count("p"))
	v.Set(pagevec.NumberOfScript, d.Count("script"))
	v.Set(pagevec.LengthOfTitle, utf8.RuneCountInString(title))

	v.Flag(pagevec.HasH1, d.Any("h1"))
	v.Flag(pagevec.HasH2, d.Any("h2"))
	v.Flag(pagevec.HasH3, d.Any("h3"))
	v.Set(pagevec.LengthOfText, d.TextLength())

	v.Set(pagevec.NumberOfClickableButton, d.CountAttr("button", "type", "button"))
	v.Set(pagevec.NumberOfA, d.Count("a"))
	v.Set(pagevec.NumberOfImg, d.ImgCount())
	v.Set(pagevec.NumberOfDiv, d.Count("div"))
	v.Set(pagevec.NumberOfFigure, d.Count("figure"))

	v.Flag(pagevec.HasFooter, d.Any("footer"))
	v.Flag(pagevec.HasForm, d.Any("form"))
	v.Flag(pagevec.HasTextArea, d.Any("textarea"))
	v.Flag(pagevec.HasIframe, d.Any("iframe"))
	v.Flag(pagevec.HasTextInput, d.AnyAttr("input", "type", "text"))
	v.Set(pagevec.NumberOfMeta, d.Count("meta"))
	v.Flag(pagevec.HasNav, d.Any("nav"))
	v.Flag(pagevec.HasObject, d.Any("object"))
	v.Flag(pagevec.HasPicture, d.Any("picture"))
	v.Set(pagevec.NumberOfSources, d.Count("source"))
	v.Set(pagevec.NumberOfSpan, d.Count("span"))
	v.Set(pagevec.NumberOfTable, d.Count("table"))

	return v
}

// metaImages counts <meta> elements declaring an image: the type attribute,
// or the name attribute when type is missing or empty, equals "image".
func (d *Document) metaImages() int {
	n := 0
	d.all("meta").Each(func(_ int, s *goquery.Selection) {
		kind := s.AttrOr("type", "")
		if kind == "" {
			kind = s.AttrOr("name", "")
		}
		if kind == "image" {
			n++
		}
	})
	return n
}
