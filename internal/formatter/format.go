package formatter

import (
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/frzip09/absolute-time/internal/dom"
	"github.com/frzip09/absolute-time/internal/settings"
)

// FormatAll runs one full pass over the page and returns the number of
// elements touched.
//
// Disabled settings revert every marked element. An excluded route returns
// zero without touching the DOM. Otherwise every timestamp element gets its
// attribute set recomputed from its raw instant and the current settings,
// which makes the pass idempotent and self-healing: prior state is never
// trusted, only recomputed over.
func FormatAll(page *dom.Page, s settings.Settings, now time.Time) int {
	if !s.Enabled {
		marked := page.Marked()
		marked.Each(func(_ int, sel *goquery.Selection) {
			dom.Revert(sel)
		})
		return marked.Length()
	}

	if ExcludedPath(page.Path) {
		return 0
	}

	currentYear := now.Year()
	actions := ActionsPath(page.Path)

	elements := page.Timestamps()
	elements.Each(func(_ int, sel *goquery.Selection) {
		apply(sel, Decide(s, dom.ElementYear(sel, currentYear), currentYear, actions))
	})
	return elements.Length()
}

func apply(sel *goquery.Selection, d Decision) {
	sel.SetAttr(dom.AttrFormat, dom.FormatDatetime)
	sel.SetAttr(dom.AttrFormatStyle, d.Style)
	dom.SetOrRemove(sel, dom.AttrWeekday, dom.WeekdayShort, d.Weekday)
	dom.SetOrRemove(sel, dom.AttrHour, dom.HourNumeric, d.Time)
	dom.SetOrRemove(sel, dom.AttrMinute, dom.TwoDigit, d.Time)
	dom.SetOrRemove(sel, dom.AttrSecond, dom.TwoDigit, d.Seconds)
	sel.SetAttr(dom.AttrMarker, "true")
}
