package translations

import "strings"

// DefaultExclusions lists infrastructure and asset entries that never carry docs.
var DefaultExclusions = []string{
	".github", ".vuepress", "readme.md", "contributing.md", "license",
	"package.json", "package-lock.json", "netlify.toml", "node_modules",
	"images", "img", "assets",
}

// Filter is the exclusion predicate applied before every visit.
type Filter struct {
	names map[string]struct{}
}

// NewFilter builds a Filter from a list of names. Matching is case-insensitive.
func NewFilter(names []string) Filter {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n != "" {
			set[n] = struct{}{}
		}
	}
	return Filter{names: set}
}

// Excluded reports whether an entry with this name is skipped: it is in the
// exclusion set or starts with an underscore.
func (f Filter) Excluded(name string) bool {
	if strings.HasPrefix(name, "_") {
		return true
	}
	_, ok := f.names[strings.ToLower(name)]
	return ok
}
