package translations_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tilsley/docstatus/apps/server/internal/translations"
)

func TestMarkerDetector(t *testing.T) {
	d := translations.NewMarkerDetector()

	assert.True(t, d.IsTranslated("번역: 홍길동\n# 제목"))
	assert.True(t, d.IsTranslated("# Title\n\n> 번역: someone"))
	assert.False(t, d.IsTranslated("# Title"))
	assert.False(t, d.IsTranslated("번역 홍길동"), "colon is part of the marker")
	assert.False(t, d.IsTranslated(""))
}

func TestMarkerDetector_MultipleMarkers(t *testing.T) {
	d := translations.NewMarkerDetector("TRANSLATED:", "", "번역:")

	assert.Equal(t, []string{"TRANSLATED:", "번역:"}, d.Markers)
	assert.True(t, d.IsTranslated("TRANSLATED: yes"))
	assert.True(t, d.IsTranslated("번역: 네"))
	assert.False(t, d.IsTranslated("translated: lowercase"))
}

func TestNewMarkerDetector_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, []string{translations.DefaultMarker}, translations.NewMarkerDetector("", "").Markers)
}

func TestDetectorFunc(t *testing.T) {
	var d translations.Detector = translations.DetectorFunc(func(s string) bool { return s == "ok" })
	assert.True(t, d.IsTranslated("ok"))
	assert.False(t, d.IsTranslated("no"))
}

func TestFrontMatterDetector(t *testing.T) {
	d := translations.FrontMatterDetector{Field: "translated"}

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"bool true", "---\ntranslated: true\n---\nbody", true},
		{"bool false", "---\ntranslated: false\n---\nbody", false},
		{"translator name", "---\ntranslated: 홍길동\n---\n", true},
		{"quoted no", "---\ntranslated: \"no\"\n---\n", false},
		{"empty string", "---\ntranslated: \"\"\n---\n", false},
		{"date", "---\ntranslated: 2024-05-01\n---\n", true},
		{"null", "---\ntranslated:\n---\n", false},
		{"missing field", "---\ntitle: x\n---\ntranslated: true", false},
		{"no front matter", "translated: true\n", false},
		{"unterminated", "---\ntranslated: true\n", false},
		{"empty block", "---\n---\nbody", false},
		{"crlf", "---\r\ntranslated: true\r\n---\r\nbody", true},
		{"bom", "\ufeff---\ntranslated: true\n---\n", true},
		{"invalid yaml", "---\ntranslated: [\n---\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.IsTranslated(tt.text))
		})
	}
}
