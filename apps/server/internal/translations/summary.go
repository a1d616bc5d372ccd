package translations

// Summary counts directories by status and index files by outcome.
type Summary struct {
	Green      int `json:"green"`
	Yellow     int `json:"yellow"`
	Red        int `json:"red"`
	IndexFiles int `json:"indexFiles"`
	Translated int `json:"translated"`
}

// Summarize walks a report and tallies it.
func Summarize(nodes []*Node) Summary {
	var s Summary
	var walk func([]*Node)
	walk = func(ns []*Node) {
		for _, n := range ns {
			if !n.IsDir {
				s.IndexFiles++
				if n.Status == StatusGreen {
					s.Translated++
				}
				continue
			}
			switch n.Status {
			case StatusGreen:
				s.Green++
			case StatusYellow:
				s.Yellow++
			default:
				s.Red++
			}
			walk(n.Children)
		}
	}
	walk(nodes)
	return s
}

// Complete reports whether every top-level node is green.
func Complete(nodes []*Node) bool {
	for _, n := range nodes {
		if n.Status != StatusGreen {
			return false
		}
	}
	return len(nodes) > 0
}
