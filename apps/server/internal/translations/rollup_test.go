package translations

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRollup(t *testing.T) {
	const (
		g = StatusGreen
		y = StatusYellow
		r = StatusRed
	)
	tests := []struct {
		name string
		in   []Status
		want Status
	}{
		{"empty", nil, r},
		{"single green", []Status{g}, g},
		{"all green", []Status{g, g, g}, g},
		{"single red", []Status{r}, r},
		{"all red", []Status{r, r}, r},
		{"mixed", []Status{r, g, r}, y},
		{"yellow alone", []Status{y}, y},
		{"yellow with red", []Status{r, y}, y},
		{"yellow with green", []Status{g, y}, y},
		{"unknown counts as red", []Status{"", g}, y},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Rollup(tt.in))
		})
	}
}

func TestIndexStatuses(t *testing.T) {
	file := func(name string, s Status) *Node {
		return &Node{Name: name, Status: s, Children: []*Node{}}
	}
	dir := func(name string, s Status, children ...*Node) *Node {
		return &Node{Name: name, Status: s, IsDir: true, Children: children}
	}

	nodes := []*Node{
		dir("a", StatusYellow,
			file("index.md", StatusGreen),
			dir("b", StatusRed, file("Index.MD", StatusRed)),
		),
		dir("broken", StatusRed),
		file("index.md", StatusGreen),
		file("other.md", StatusRed),
	}

	assert.Equal(t, []Status{StatusGreen, StatusRed, StatusGreen}, indexStatuses(nodes))
	assert.Empty(t, indexStatuses([]*Node{dir("empty", StatusRed)}))
}
