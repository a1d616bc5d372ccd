package translations

// Rollup derives a directory status from the statuses of the index.md files
// found in its subtree:
//
//	none         → red
//	all green    → green
//	any green or
//	yellow       → yellow
//	otherwise    → red
func Rollup(statuses []Status) Status {
	if len(statuses) == 0 {
		return StatusRed
	}
	allGreen, someTranslated := true, false
	for _, s := range statuses {
		switch s {
		case StatusGreen:
			someTranslated = true
		case StatusYellow:
			allGreen = false
			someTranslated = true
		default:
			allGreen = false
		}
	}
	switch {
	case allGreen:
		return StatusGreen
	case someTranslated:
		return StatusYellow
	default:
		return StatusRed
	}
}

// indexStatuses collects the status of every index.md file node beneath nodes.
// Directories contribute only through the files they contain, so a directory
// whose listing failed adds nothing.
func indexStatuses(nodes []*Node) []Status {
	var out []Status
	var walk func([]*Node)
	walk = func(ns []*Node) {
		for _, n := range ns {
			if n.IsDir {
				walk(n.Children)
				continue
			}
			if isIndexFile(n.Name) {
				out = append(out, n.Status)
			}
		}
	}
	walk(nodes)
	return out
}
