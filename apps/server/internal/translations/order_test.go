package translations_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tilsley/docstatus/apps/server/internal/translations"
)

func nodeList() []*translations.Node {
	return []*translations.Node{
		{Name: "index.md", Path: "d/index.md"},
		{Name: "Zeta", Path: "d/Zeta", IsDir: true},
		{Name: "도구", Path: "d/도구", IsDir: true},
		{Name: "alpha", Path: "d/alpha", IsDir: true},
		{Name: "INDEX.md", Path: "d/INDEX.md"},
		{Name: "beta", Path: "d/beta", IsDir: true},
	}
}

func TestSortSiblings(t *testing.T) {
	o := translations.NewOrdering("ko")
	nodes := nodeList()

	o.SortSiblings(nodes)

	got := make([]string, len(nodes))
	for i, n := range nodes {
		got[i] = n.Path
	}
	assert.Equal(t, []string{"d/alpha", "d/beta", "d/Zeta", "d/도구", "d/index.md", "d/INDEX.md"}, got)
}

func TestSortSiblings_Idempotent(t *testing.T) {
	o := translations.NewOrdering("ko")
	once := nodeList()
	o.SortSiblings(once)

	twice := nodeList()
	o.SortSiblings(twice)
	o.SortSiblings(twice)

	assert.Equal(t, once, twice)
}

func TestSortSiblings_InputOrderIrrelevant(t *testing.T) {
	o := translations.NewOrdering("en")
	a := nodeList()
	b := nodeList()
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}

	o.SortSiblings(a)
	o.SortSiblings(b)

	assert.Equal(t, a, b)
}

func TestSortByName_IgnoresKind(t *testing.T) {
	o := translations.NewOrdering("ko")
	nodes := []*translations.Node{
		{Name: "index.md", Path: "index.md"},
		{Name: "guide", Path: "guide", IsDir: true},
		{Name: "reference", Path: "reference", IsDir: true},
	}

	o.SortByName(nodes)

	assert.Equal(t, "guide", nodes[0].Name)
	assert.Equal(t, "index.md", nodes[1].Name)
	assert.Equal(t, "reference", nodes[2].Name)
}

func TestNewOrdering_BadLocale(t *testing.T) {
	o := translations.NewOrdering("!!not a locale!!")
	nodes := []*translations.Node{{Name: "b", Path: "b"}, {Name: "a", Path: "a"}}

	o.SortByName(nodes)

	assert.Equal(t, "a", nodes[0].Name)
}
