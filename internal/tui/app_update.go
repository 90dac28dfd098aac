package tui

import (
	"itens-cli/internal/model"
	"itens-cli/internal/viewstate"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.showHelp {
		switch {
		case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Cancel), msg.String() == "q":
			m.showHelp = false
		}
		return m, nil
	}
	if m.confirmDelete != nil {
		return m.updateConfirmDelete(msg)
	}

	switch m.state.Screen.(type) {
	case viewstate.CreateScreen, viewstate.EditScreen:
		return m.updateForm(msg)
	default:
		if m.focus == focusSearch {
			return m.updateSearch(msg)
		}
		return m.updateList(msg)
	}
}

func (m appModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := m.state
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Search):
		m.setFocus(focusSearch)
		m.search.CursorEnd()
		return m, nil
	case key.Matches(msg, m.keys.SortID):
		return m.dispatch(viewstate.ActivateSort{Field: model.SortByID})
	case key.Matches(msg, m.keys.SortName):
		return m.dispatch(viewstate.ActivateSort{Field: model.SortByName})
	case key.Matches(msg, m.keys.SortPrice):
		return m.dispatch(viewstate.ActivateSort{Field: model.SortByPrice})
	case key.Matches(msg, m.keys.PageSize):
		return m.dispatch(viewstate.ChangePageSize{Size: nextPageSize(st.PageSize)})
	case key.Matches(msg, m.keys.PrevPage):
		if st.Page <= 1 {
			return m, nil
		}
		return m.dispatch(viewstate.GoToPage{Page: st.Page - 1})
	case key.Matches(msg, m.keys.NextPage):
		if st.Page >= st.TotalPages {
			return m, nil
		}
		return m.dispatch(viewstate.GoToPage{Page: st.Page + 1})
	case key.Matches(msg, m.keys.FirstPage):
		return m.dispatch(viewstate.GoToPage{Page: 1})
	case key.Matches(msg, m.keys.LastPage):
		return m.dispatch(viewstate.GoToPage{Page: st.TotalPages})
	case key.Matches(msg, m.keys.New):
		return m.dispatch(viewstate.OpenCreate{})
	case key.Matches(msg, m.keys.Edit):
		it, ok := m.selectedItem()
		if !ok {
			return m, nil
		}
		return m.dispatch(viewstate.OpenEdit{Item: it})
	case key.Matches(msg, m.keys.Delete):
		it, ok := m.selectedItem()
		if !ok {
			return m, nil
		}
		m.confirmDelete = &it
		m.confirmFocus = confirmFocusCancel
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		return m.dispatch(viewstate.Reload{})
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m appModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.setFocus(focusTable)
		return m.dispatch(viewstate.ApplySearch{})
	case "esc", "ctrl+g":
		m.setFocus(focusTable)
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if v := m.search.Value(); v != before {
		var dcmd tea.Cmd
		m, dcmd = m.dispatch(viewstate.SetSearchDraft{Text: v})
		return m, tea.Batch(cmd, dcmd)
	}
	return m, cmd
}

func (m appModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		return m.dispatch(viewstate.Cancel{})
	case key.Matches(msg, m.keys.Submit):
		return m.dispatch(viewstate.Submit{})
	case key.Matches(msg, m.keys.NextField), key.Matches(msg, m.keys.PrevField):
		if m.focus == focusName {
			m.setFocus(focusPrice)
		} else {
			m.setFocus(focusName)
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == focusPrice {
		m.priceInput, cmd = m.priceInput.Update(msg)
	} else {
		m.nameInput, cmd = m.nameInput.Update(msg)
	}
	d := m.draftFromInputs()
	if cur, _ := m.state.CurrentDraft(); cur != d {
		var dcmd tea.Cmd
		m, dcmd = m.dispatch(viewstate.SetDraft{Draft: d})
		return m, tea.Batch(cmd, dcmd)
	}
	return m, cmd
}

func (m appModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "left", "right", "h", "l":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
		return m, nil
	case "enter":
		if m.confirmFocus == confirmFocusConfirm {
			return m.confirmDeleteNow()
		}
		m.confirmDelete = nil
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.ConfirmYes):
		return m.confirmDeleteNow()
	case key.Matches(msg, m.keys.ConfirmNo), msg.String() == "q":
		m.confirmDelete = nil
	}
	return m, nil
}

func (m appModel) confirmDeleteNow() (appModel, tea.Cmd) {
	id := m.confirmDelete.ID
	m.confirmDelete = nil
	return m.dispatch(viewstate.Delete{ID: id})
}

// nextPageSize cycles through model.PageSizes.
func nextPageSize(cur int) int {
	for i, s := range model.PageSizes {
		if s == cur {
			return model.PageSizes[(i+1)%len(model.PageSizes)]
		}
	}
	return model.PageSizes[0]
}
