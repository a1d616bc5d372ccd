package translations

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Ordering sorts sibling nodes for display using a locale-aware collation.
// A collate.Collator is not safe for concurrent use, so one is built per sort.
type Ordering struct {
	tag language.Tag
}

// NewOrdering parses a BCP 47 locale such as "ko" or "en-US".
// Unparseable locales fall back to the root collation.
func NewOrdering(locale string) Ordering {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Und
	}
	return Ordering{tag: tag}
}

// SortSiblings orders nodes in place: directories before files, then by name,
// with path as the final tie-break so the order is total and repeatable.
func (o Ordering) SortSiblings(nodes []*Node) {
	c := collate.New(o.tag)
	slices.SortStableFunc(nodes, func(a, b *Node) int {
		if a.IsDir != b.IsDir {
			if a.IsDir {
				return -1
			}
			return 1
		}
		if r := c.CompareString(a.Name, b.Name); r != 0 {
			return r
		}
		return cmp.Compare(a.Path, b.Path)
	})
}

// SortByName orders nodes in place by name only, as done for the top level.
func (o Ordering) SortByName(nodes []*Node) {
	c := collate.New(o.tag)
	slices.SortStableFunc(nodes, func(a, b *Node) int {
		if r := c.CompareString(a.Name, b.Name); r != 0 {
			return r
		}
		return cmp.Compare(a.Path, b.Path)
	})
}
