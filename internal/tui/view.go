package tui

import (
	"fmt"
	"strconv"
	"strings"

	"itens-cli/internal/model"
	"itens-cli/internal/paging"
	"itens-cli/internal/viewstate"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	idColWidth    = 6
	priceColWidth = 12
	minNameWidth  = 10
	// Lines used by everything except the table body.
	chromeHeight = 9
)

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorMuted).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)
	return s
}

func (m *appModel) layout() {
	h := m.height - chromeHeight
	if h < 3 {
		h = 3
	}
	m.table.SetHeight(h)
	m.table.SetWidth(m.width)
	m.search.Width = max(m.width-len(m.search.Prompt)-2, 10)
	m.syncColumns()
}

func (m appModel) nameColWidth() int {
	// Each default table cell carries one column of padding on both sides.
	w := m.width - idColWidth - priceColWidth - 6
	if w < minNameWidth {
		w = minNameWidth
	}
	return w
}

func (m *appModel) syncColumns() {
	m.table.SetColumns([]table.Column{
		{Title: m.header(model.SortByID), Width: idColWidth},
		{Title: m.header(model.SortByName), Width: m.nameColWidth()},
		{Title: m.header(model.SortByPrice), Width: priceColWidth},
	})
}

// header labels a column, marking the active sort with an arrow.
func (m appModel) header(f model.SortField) string {
	label := f.Label()
	if m.state.SortField != f {
		return label
	}
	if m.state.SortDirection == model.Desc {
		return label + " " + glyphSortDesc()
	}
	return label + " " + glyphSortAsc()
}

func (m *appModel) syncTable() {
	m.syncColumns()
	nameW := m.nameColWidth()
	rows := make([]table.Row, 0, len(m.state.Items))
	for _, it := range m.state.Items {
		rows = append(rows, table.Row{
			strconv.Itoa(it.ID),
			ansi.Truncate(it.Name, nameW, glyphEllipsis()),
			viewstate.FormatPrice(it.Price),
		})
	}
	m.table.SetRows(rows)
	// The table parks its cursor at -1 while empty; bring it back onto a row.
	if len(rows) > 0 {
		if c := m.table.Cursor(); c < 0 || c >= len(rows) {
			m.table.SetCursor(min(max(c, 0), len(rows)-1))
		}
	}
}

func (m appModel) View() string {
	var body string
	switch sc := m.state.Screen.(type) {
	case viewstate.CreateScreen:
		body = m.viewForm("New item")
	case viewstate.EditScreen:
		body = m.viewForm(fmt.Sprintf("Edit item #%d", sc.ID))
	default:
		body = m.viewList()
	}

	switch {
	case m.showHelp:
		return m.overlay(renderHelpModal(m.width, renderMarkdown(helpMarkdown(m.keys), modalBodyWidth(m.width))))
	case m.confirmDelete != nil:
		it := m.confirmDelete
		text := fmt.Sprintf("Delete item #%d %q (%s)?", it.ID, ansi.Truncate(it.Name, modalBodyWidth(m.width)-24, glyphEllipsis()), viewstate.FormatPrice(it.Price))
		return m.overlay(renderConfirmModal(m.width, "Delete item", text, "Delete", "Cancel", m.confirmFocus))
	}
	return body
}

func (m appModel) overlay(modal string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

func (m appModel) statusLine() string {
	if m.state.Loading() {
		return m.spinner.View() + " " + styleMuted().Render("Loading…")
	}
	return ""
}

func (m appModel) errorLine() string {
	if m.state.Err == "" {
		return ""
	}
	return styleError().Render(ansi.Truncate("Error: "+m.state.Err, m.width, glyphEllipsis()))
}

func (m appModel) viewList() string {
	st := m.state

	count := "1 item"
	if st.Total != 1 {
		count = fmt.Sprintf("%d items", st.Total)
	}
	title := lipgloss.JoinHorizontal(lipgloss.Top, styleTitle().Render("Items"), " ", styleTag().Render(count))
	if s := m.statusLine(); s != "" {
		title += "  " + s
	}

	search := m.search.View()
	if applied := strings.TrimSpace(st.SearchApplied); applied != "" {
		search += "  " + styleMuted().Render(fmt.Sprintf("(filter: %q)", applied))
	}

	var grid string
	if len(st.Items) == 0 && !st.ListLoading {
		grid = styleMuted().Render("No items found.")
	} else {
		grid = m.table.View()
	}

	help := styleMuted().Render(ansi.Truncate(shortHelpLine(m.keys.listShortHelp()), m.width, glyphEllipsis()))

	lines := []string{
		title,
		search,
		"",
		grid,
		"",
		m.viewPager(),
	}
	if e := m.errorLine(); e != "" {
		lines = append(lines, e)
	}
	lines = append(lines, help)
	return strings.Join(lines, "\n")
}

// viewPager renders the page buttons with ellipses, plus the page-size and
// page position summary. The buttons are only shown when there is more than
// one page.
func (m appModel) viewPager() string {
	st := m.state
	summary := styleMuted().Render(fmt.Sprintf("page %d of %d %s %d per page", st.Page, max(st.TotalPages, 1), glyphBullet(), st.PageSize))
	if st.TotalPages <= 1 {
		return summary
	}
	tokens := paging.Window(st.Page, st.TotalPages)

	prev := glyphPrev()
	if st.Page <= 1 {
		prev = styleMuted().Render(prev)
	}
	next := glyphNext()
	if st.Page >= st.TotalPages {
		next = styleMuted().Render(next)
	}

	parts := []string{prev}
	for _, tok := range tokens {
		switch {
		case tok.IsEllipsis():
			parts = append(parts, styleMuted().Render(glyphEllipsis()))
		case tok.Page() == st.Page:
			parts = append(parts, styleCurrentPage().Render("["+strconv.Itoa(tok.Page())+"]"))
		default:
			parts = append(parts, strconv.Itoa(tok.Page()))
		}
	}
	parts = append(parts, next)
	return strings.Join(parts, " ") + "   " + summary
}

func (m appModel) viewForm(title string) string {
	lines := []string{styleTitle().Render(title)}
	if s := m.statusLine(); s != "" {
		lines[0] += "  " + s
	}
	lines = append(lines,
		"",
		m.nameInput.View(),
		m.priceInput.View(),
		"",
	)
	if e := m.errorLine(); e != "" {
		lines = append(lines, e)
	}
	lines = append(lines, styleMuted().Render(shortHelpLine(m.keys.formShortHelp())))
	return strings.Join(lines, "\n")
}
