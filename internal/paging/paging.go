// Package paging computes the compressed page-number sequence shown by
// pagination controls.
package paging

// Token is either a page number (>= 1) or Ellipsis.
type Token int

// Ellipsis marks an elided, non-empty range of pages.
const Ellipsis Token = 0

// maxUnabridged is the largest page count rendered without elision.
const maxUnabridged = 7

func (t Token) IsEllipsis() bool { return t == Ellipsis }

// Page returns the page number, or 0 for Ellipsis.
func (t Token) Page() int { return int(t) }

// Window returns the tokens to render for the given position.
//
// Up to seven pages are listed in full. Beyond that the first and last pages
// are always shown, together with the neighbours of current; gaps become a
// single Ellipsis. On the first and last page the neighbour range reaches one
// page further inward so two numeric neighbours stay visible: Window(1, 10) is
// 1 2 3 … 10 and Window(10, 10) is 1 … 8 9 10. This intentionally departs from
// the plain [current-1, current+1] clamp, which would show only one neighbour
// at either end.
func Window(current, total int) []Token {
	if total <= 0 {
		return []Token{}
	}
	if total <= maxUnabridged {
		out := make([]Token, 0, total)
		for p := 1; p <= total; p++ {
			out = append(out, Token(p))
		}
		return out
	}

	out := make([]Token, 0, 7)
	out = append(out, 1)
	if current > 3 {
		out = append(out, Ellipsis)
	}

	start := max(current-1, 2)
	end := min(current+1, total-1)
	if current <= 1 {
		end = 3
	}
	if current >= total {
		start = total - 2
	}
	for p := start; p <= end; p++ {
		if !contains(out, Token(p)) {
			out = append(out, Token(p))
		}
	}

	if current < total-2 {
		out = append(out, Ellipsis)
	}
	if !contains(out, Token(total)) {
		out = append(out, Token(total))
	}
	return out
}

func contains(ts []Token, t Token) bool {
	for _, x := range ts {
		if x == t {
			return true
		}
	}
	return false
}
