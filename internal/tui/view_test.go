package tui

import (
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestViewPager_EllipsisAndCurrentPage(t *testing.T) {
	t.Parallel()

	m := start(t, newFakeGateway(100))
	m = press(t, m, runes("]"))
	m = press(t, m, runes("]"))
	m = press(t, m, runes("]"))
	m = press(t, m, runes("]"))

	got := ansi.Strip(m.viewPager())
	for _, want := range []string{"1 " + glyphEllipsis() + " 4 [5] 6 " + glyphEllipsis() + " 10", "page 5 of 10"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in pager; got %q", want, got)
		}
	}
}

func TestViewPager_SinglePageShowsOnlySummary(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 3} {
		m := start(t, newFakeGateway(n))
		got := ansi.Strip(m.viewPager())
		if !strings.HasPrefix(got, "page 1 of 1") {
			t.Fatalf("%d items: expected summary only; got %q", n, got)
		}
		if strings.Contains(got, "[1]") || strings.Contains(got, glyphNext()) {
			t.Fatalf("%d items: page buttons should be hidden; got %q", n, got)
		}
	}
}

func TestParseGlyphSet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want glyphSet
		ok   bool
	}{
		{"", glyphSetUnicode, true},
		{"ASCII", glyphSetASCII, true},
		{" utf8 ", glyphSetUnicode, true},
		{"emoji", glyphSetUnicode, false},
	}
	for _, tt := range tests {
		got, ok := parseGlyphSet(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("parseGlyphSet(%q) = %v,%v; want %v,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

// Not parallel: switches the process-wide glyph set.
func TestASCIIGlyphs_InHeaders(t *testing.T) {
	setGlyphs(glyphSetASCII)
	defer setGlyphs(glyphSetUnicode)

	m := newAppModel(context.Background(), newFakeGateway(0), nil, false)
	if got := m.header("id"); got != "ID ^" {
		t.Fatalf("expected ASCII asc arrow; got %q", got)
	}
}

func TestHelpMarkdown_ListsBindings(t *testing.T) {
	t.Parallel()

	md := helpMarkdown(defaultKeyMap())
	for _, want := range []string{"sort by price", "page size", "reload", "`/`"} {
		if !strings.Contains(md, want) {
			t.Fatalf("expected %q in help markdown", want)
		}
	}
}

func TestNextPageSize_Cycles(t *testing.T) {
	t.Parallel()

	seq := []int{nextPageSize(5), nextPageSize(10), nextPageSize(20), nextPageSize(50), nextPageSize(7)}
	want := []int{10, 20, 50, 5, 5}
	for i := range want {
		if seq[i] != want[i] {
			t.Fatalf("nextPageSize cycle = %v; want %v", seq, want)
		}
	}
}
