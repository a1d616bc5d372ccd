package translations

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultMarker is the token translators add to a translated index.md.
const DefaultMarker = "번역:"

// DetectorFunc adapts a plain function to the Detector interface.
type DetectorFunc func(text string) bool

// IsTranslated implements Detector.
func (f DetectorFunc) IsTranslated(text string) bool { return f(text) }

// MarkerDetector treats a file as translated when any marker occurs in its text.
type MarkerDetector struct {
	Markers []string
}

// NewMarkerDetector returns a MarkerDetector, falling back to DefaultMarker
// when no non-empty marker is given.
func NewMarkerDetector(markers ...string) MarkerDetector {
	var kept []string
	for _, m := range markers {
		if m != "" {
			kept = append(kept, m)
		}
	}
	if len(kept) == 0 {
		kept = []string{DefaultMarker}
	}
	return MarkerDetector{Markers: kept}
}

// IsTranslated implements Detector.
func (d MarkerDetector) IsTranslated(text string) bool {
	for _, m := range d.Markers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}

// FrontMatterDetector reads a YAML front-matter block at the top of the file
// and treats it as translated when Field holds a truthy value.
type FrontMatterDetector struct {
	Field string
}

// IsTranslated implements Detector.
func (d FrontMatterDetector) IsTranslated(text string) bool {
	block, ok := frontMatter(text)
	if !ok {
		return false
	}
	var meta map[string]any
	if err := yaml.Unmarshal([]byte(block), &meta); err != nil {
		return false
	}
	switch v := meta[d.Field].(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "", "false", "no", "0":
			return false
		}
		return true
	case nil:
		return false
	default:
		// dates, numbers and mappings all count as "present"
		return true
	}
}

// frontMatter returns the text between a leading "---" line and the next "---" line.
func frontMatter(text string) (string, bool) {
	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if !strings.HasPrefix(text, "---\n") {
		return "", false
	}
	rest := text[len("---\n"):]
	if strings.HasPrefix(rest, "---\n") || rest == "---" {
		return "", true
	}
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}
