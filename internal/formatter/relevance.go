package formatter

import "github.com/frzip09/absolute-time/internal/dom"

// IsFormatRelevant classifies one mutation record: an insertion whose
// subtree contains a timestamp element, or a raw-instant attribute change
// on a timestamp element. Everything else is noise.
func IsFormatRelevant(m dom.Mutation) bool {
	switch m.Type {
	case dom.MutationChildList:
		for _, n := range m.Added {
			if dom.ContainsTimestamp(n) {
				return true
			}
		}
		return false
	case dom.MutationAttributes:
		return m.Attr == dom.AttrDatetime && dom.IsTimestamp(m.Target)
	default:
		return false
	}
}

// AnyFormatRelevant reports whether a batch contains at least one
// qualifying record.
func AnyFormatRelevant(batch []dom.Mutation) bool {
	for _, m := range batch {
		if IsFormatRelevant(m) {
			return true
		}
	}
	return false
}
