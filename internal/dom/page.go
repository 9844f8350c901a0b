package dom

import (
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Timestamp elements are GitHub's <relative-time> custom elements. The
// element renders itself from its attributes; formatting a page means
// writing presentation attributes onto these nodes, never touching text.
const (
	TagTimestamp = "relative-time"

	// AttrDatetime is the raw machine-readable instant, owned by the host
	// page. It is read, never written.
	AttrDatetime = "datetime"

	// Presentation attributes written by the formatter. format="datetime"
	// switches the element from relative to absolute rendering;
	// format-style picks the verbosity; the rest are Intl-style display
	// toggles understood by the element.
	AttrFormat      = "format"
	AttrFormatStyle = "format-style"
	AttrWeekday     = "weekday"
	AttrHour        = "hour"
	AttrMinute      = "minute"
	AttrSecond      = "second"

	// AttrMarker is the private "already formatted" marker. An element
	// carries it iff formatter-written attributes are present on it.
	AttrMarker = "data-abstime"

	FormatDatetime = "datetime"
	WeekdayShort   = "short"
	HourNumeric    = "numeric"
	TwoDigit       = "2-digit"
)

// OwnedAttrs are the attributes the formatter is responsible for. Reverting
// an element removes exactly these, restoring the host page's own rendering.
var OwnedAttrs = []string{
	AttrFormat,
	AttrFormatStyle,
	AttrWeekday,
	AttrHour,
	AttrMinute,
	AttrSecond,
	AttrMarker,
}

// Page is one parsed document plus the path it was served under. The path
// drives the route rules; the document carries the timestamp elements.
type Page struct {
	Doc  *goquery.Document
	Path string
}

func NewPage(r io.Reader, path string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return &Page{Doc: doc, Path: path}, nil
}

func NewPageFromString(html, path string) (*Page, error) {
	return NewPage(strings.NewReader(html), path)
}

// Timestamps selects every timestamp element carrying a raw instant.
func (p *Page) Timestamps() *goquery.Selection {
	return p.Doc.Find(TagTimestamp + "[" + AttrDatetime + "]")
}

// Marked selects every element the formatter previously formatted.
func (p *Page) Marked() *goquery.Selection {
	return p.Doc.Find("[" + AttrMarker + "]")
}

func (p *Page) Html() (string, error) {
	return p.Doc.Html()
}

// Revert strips the formatter-owned attributes from sel.
func Revert(sel *goquery.Selection) {
	for _, attr := range OwnedAttrs {
		sel.RemoveAttr(attr)
	}
}

// SetOrRemove writes attr=value when present is true and removes attr
// otherwise, keeping passes idempotent regardless of prior state.
func SetOrRemove(sel *goquery.Selection, attr, value string, present bool) {
	if present {
		sel.SetAttr(attr, value)
	} else {
		sel.RemoveAttr(attr)
	}
}

// ElementYear derives the year of sel's raw instant. A missing or
// unparseable instant yields fallbackYear, so year-sensitive policy treats
// the element as current-year.
func ElementYear(sel *goquery.Selection, fallbackYear int) int {
	raw, ok := sel.Attr(AttrDatetime)
	if !ok {
		return fallbackYear
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return fallbackYear
	}
	return t.Year()
}
