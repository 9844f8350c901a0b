package dom

import "golang.org/x/net/html"

// MutationType mirrors the two observer record kinds the formatter cares
// about: subtree insertions and attribute rewrites.
type MutationType int

const (
	MutationChildList MutationType = iota
	MutationAttributes
)

// Mutation is one observer record. For MutationChildList, Added holds the
// inserted nodes; for MutationAttributes, Attr names the changed attribute
// on Target.
type Mutation struct {
	Type   MutationType
	Target *html.Node
	Added  []*html.Node
	Attr   string
}

// NavigationEvent is a host-page lifecycle event announcing a client-side
// page transition.
type NavigationEvent struct {
	Name string
	Path string
}

// The four lifecycle events GitHub emits around client-side navigation:
// full page load, render completion, partial frame load, and the legacy
// pagination replacement.
const (
	NavTurboLoad      = "turbo:load"
	NavTurboRender    = "turbo:render"
	NavTurboFrameLoad = "turbo:frame-load"
	NavPjaxEnd        = "pjax:end"
)

// IsTimestamp reports whether n is a timestamp element.
func IsTimestamp(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && n.Data == TagTimestamp
}

// ContainsTimestamp reports whether n is a timestamp element or has one
// anywhere in its subtree.
func ContainsTimestamp(n *html.Node) bool {
	if n == nil {
		return false
	}
	if IsTimestamp(n) {
		return true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if ContainsTimestamp(c) {
			return true
		}
	}
	return false
}
