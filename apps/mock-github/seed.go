package main

import (
	"fmt"

	"github.com/tilsley/docstatus/pkg/githubfake"
)

const (
	seedOwner = "krfoss"
	seedRepo  = "kali-docs"
	seedRef   = "master"
)

const (
	translatedIndex = `---
title: %s
---

번역: 김철수
검수: 이영희

# %s
`
	untranslatedIndex = `---
title: %s
---

# %s

This page has not been translated yet.
`
)

type seedDoc struct {
	title      string
	translated bool
}

// docsTree is a small documentation site with every status represented:
// "introduction" is green, "tools" is yellow, "policy" is red and
// "community" has no index.md at all.
var docsTree = map[string]seedDoc{
	"introduction/index.md":                {"소개", true},
	"introduction/what-is-kali/index.md":   {"칼리 리눅스란?", true},
	"introduction/kali-features/index.md":  {"칼리 기능", true},
	"tools/index.md":                       {"도구", true},
	"tools/nmap/index.md":                  {"Nmap", true},
	"tools/sqlmap/index.md":                {"sqlmap", false},
	"tools/wireless/aircrack-ng/index.md":  {"Aircrack-ng", false},
	"installation/index.md":                {"설치", true},
	"installation/hard-disk/index.md":      {"하드 디스크 설치", false},
	"installation/dual-boot/index.md":      {"듀얼 부팅", true},
	"installation/virtualization/index.md": {"가상화", true},
	"policy/index.md":                      {"정책", false},
	"policy/network-services/index.md":     {"네트워크 서비스 정책", false},
	"_drafts/index.md":                     {"초안", false},
}

// otherFiles are served but never classified: they are either not index.md
// or sit in excluded locations.
var otherFiles = map[string]string{
	"README.md":                    "# kali-docs\n",
	"LICENSE":                      "MIT\n",
	"package.json":                 `{"name":"kali-docs","private":true}`,
	".vuepress/config.js":          "module.exports = {}\n",
	".github/workflows/deploy.yml": "on: push\n",
	"images/logo.png":              "\x89PNG\r\n",
	"tools/nmap/scan-types.md":     "# Scan types\n",
	"community/contributors.md":    "# Contributors\n",
	"community/assets/banner.svg":  "<svg/>\n",
}

// seedRepos populates the store before the server accepts requests.
func seedRepos(s *githubfake.Store) {
	for path, doc := range docsTree {
		s.SetFile(seedOwner, seedRepo, path, render(doc))
	}
	for path, content := range otherFiles {
		s.SetFile(seedOwner, seedRepo, path, content)
	}
}

func render(doc seedDoc) string {
	tmpl := untranslatedIndex
	if doc.translated {
		tmpl = translatedIndex
	}
	return fmt.Sprintf(tmpl, doc.title, doc.title)
}
