package paging

import (
	"reflect"
	"testing"
)

const e = Ellipsis

func TestWindow_SmallTotalsAreUnabridged(t *testing.T) {
	t.Parallel()

	for total := 0; total <= 7; total++ {
		want := []Token{}
		for p := 1; p <= total; p++ {
			want = append(want, Token(p))
		}
		for current := 1; current <= max(total, 1); current++ {
			got := Window(current, total)
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("Window(%d, %d) = %v; want %v", current, total, got, want)
			}
		}
	}
}

func TestWindow_TenPages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		current int
		want    []Token
	}{
		{current: 1, want: []Token{1, 2, 3, e, 10}},
		{current: 2, want: []Token{1, 2, 3, e, 10}},
		{current: 3, want: []Token{1, 2, 3, 4, e, 10}},
		{current: 4, want: []Token{1, e, 3, 4, 5, e, 10}},
		{current: 5, want: []Token{1, e, 4, 5, 6, e, 10}},
		{current: 7, want: []Token{1, e, 6, 7, 8, e, 10}},
		{current: 8, want: []Token{1, e, 7, 8, 9, 10}},
		{current: 9, want: []Token{1, e, 8, 9, 10}},
		{current: 10, want: []Token{1, e, 8, 9, 10}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run("", func(t *testing.T) {
			t.Parallel()
			got := Window(tt.current, 10)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Window(%d, 10) = %v; want %v", tt.current, got, tt.want)
			}
		})
	}
}

func TestWindow_EllipsisInvariants(t *testing.T) {
	t.Parallel()

	for total := 8; total <= 40; total++ {
		for current := 1; current <= total; current++ {
			got := Window(current, total)
			if got[0] != 1 || got[len(got)-1] != Token(total) {
				t.Fatalf("Window(%d, %d) = %v; must start at 1 and end at %d", current, total, got, total)
			}
			seen := map[Token]bool{}
			prev := 0
			for i, tok := range got {
				if tok.IsEllipsis() {
					if i > 0 && got[i-1].IsEllipsis() {
						t.Fatalf("Window(%d, %d) = %v; adjacent ellipses", current, total, got)
					}
					next := got[i+1].Page()
					if next-prev < 2 {
						t.Fatalf("Window(%d, %d) = %v; ellipsis over empty gap", current, total, got)
					}
					continue
				}
				if seen[tok] {
					t.Fatalf("Window(%d, %d) = %v; duplicate page %d", current, total, got, tok)
				}
				seen[tok] = true
				if tok.Page() <= prev {
					t.Fatalf("Window(%d, %d) = %v; pages not increasing", current, total, got)
				}
				prev = tok.Page()
			}
			if !seen[Token(current)] {
				t.Fatalf("Window(%d, %d) = %v; current page missing", current, total, got)
			}
		}
	}
}
