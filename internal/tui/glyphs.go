package tui

import (
	"os"
	"strings"
	"sync"
)

// Terminal apps can't change the user's actual font. Instead, we can choose
// between Unicode and ASCII glyph sets for sort arrows, pager arrows and the
// ellipsis. This helps on terminals/fonts that don't render some glyphs cleanly.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

// applyGlyphPreference picks the glyph set. ITENS_TUI_GLYPHS wins over the
// configured value.
func applyGlyphPreference(configured string) {
	v := strings.TrimSpace(os.Getenv("ITENS_TUI_GLYPHS"))
	if v == "" {
		v = configured
	}
	if gs, ok := parseGlyphSet(v); ok {
		setGlyphs(gs)
	}
}

func parseGlyphSet(s string) (glyphSet, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unicode", "utf8":
		return glyphSetUnicode, true
	case "ascii":
		return glyphSetASCII, true
	default:
		return glyphSetUnicode, false
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func glyphSortAsc() string {
	if glyphs() == glyphSetASCII {
		return "^"
	}
	return "▲"
}

func glyphSortDesc() string {
	if glyphs() == glyphSetASCII {
		return "v"
	}
	return "▼"
}

func glyphEllipsis() string {
	if glyphs() == glyphSetASCII {
		return "..."
	}
	return "…"
}

func glyphPrev() string {
	if glyphs() == glyphSetASCII {
		return "<"
	}
	return "‹"
}

func glyphNext() string {
	if glyphs() == glyphSetASCII {
		return ">"
	}
	return "›"
}

func glyphBullet() string {
	if glyphs() == glyphSetASCII {
		return "*"
	}
	return "•"
}
