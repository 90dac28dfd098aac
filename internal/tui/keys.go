package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Quit       key.Binding
	Help       key.Binding
	Search     key.Binding
	SortID     key.Binding
	SortName   key.Binding
	SortPrice  key.Binding
	PageSize   key.Binding
	PrevPage   key.Binding
	NextPage   key.Binding
	FirstPage  key.Binding
	LastPage   key.Binding
	New        key.Binding
	Edit       key.Binding
	Delete     key.Binding
	Reload     key.Binding
	Submit     key.Binding
	Cancel     key.Binding
	NextField  key.Binding
	PrevField  key.Binding
	ConfirmYes key.Binding
	ConfirmNo  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		SortID:     key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "sort by id")),
		SortName:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "sort by name")),
		SortPrice:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "sort by price")),
		PageSize:   key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "page size")),
		PrevPage:   key.NewBinding(key.WithKeys("left", "["), key.WithHelp("←/[", "previous page")),
		NextPage:   key.NewBinding(key.WithKeys("right", "]"), key.WithHelp("→/]", "next page")),
		FirstPage:  key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first page")),
		LastPage:   key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last page")),
		New:        key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new item")),
		Edit:       key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e/enter", "edit")),
		Delete:     key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Reload:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Submit:     key.NewBinding(key.WithKeys("enter", "ctrl+s"), key.WithHelp("enter", "save")),
		Cancel:     key.NewBinding(key.WithKeys("esc", "ctrl+g"), key.WithHelp("esc", "cancel")),
		NextField:  key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		PrevField:  key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
		ConfirmYes: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "confirm")),
		ConfirmNo:  key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n/esc", "cancel")),
	}
}

func (k keyMap) listShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.New, k.Edit, k.Delete, k.PrevPage, k.NextPage, k.Help, k.Quit}
}

func (k keyMap) listFullHelp() []key.Binding {
	return []key.Binding{
		k.Search, k.SortID, k.SortName, k.SortPrice, k.PageSize,
		k.PrevPage, k.NextPage, k.FirstPage, k.LastPage,
		k.New, k.Edit, k.Delete, k.Reload, k.Help, k.Quit,
	}
}

func (k keyMap) formShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.NextField, k.Cancel}
}

func shortHelpLine(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+": "+h.Desc)
	}
	return strings.Join(parts, "   ")
}

// helpMarkdown is the source of the `?` overlay.
func helpMarkdown(k keyMap) string {
	var b strings.Builder
	b.WriteString("# Keys\n\n")
	b.WriteString("| Key | Action |\n|---|---|\n")
	for _, kb := range k.listFullHelp() {
		h := kb.Help()
		b.WriteString("| `" + h.Key + "` | " + h.Desc + " |\n")
	}
	b.WriteString("\n## Forms\n\n")
	b.WriteString("`tab` moves between *Name* and *Price*, `enter` saves, `esc` goes back to the list.\n")
	b.WriteString("\nSearch matches the item id or part of its name and is only sent when you press `enter`.\n")
	return b.String()
}
