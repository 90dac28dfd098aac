package tui

import (
	"context"
	"encoding/json"
	"io"

	"itens-cli/internal/model"
	"itens-cli/internal/viewstate"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// Gateway is the remote item service the TUI talks to.
type Gateway interface {
	List(ctx context.Context, q model.ListQuery) (model.ListResult, error)
	Create(ctx context.Context, in model.ItemInput) (model.Item, error)
	Update(ctx context.Context, id int, in model.ItemInput) (model.Item, error)
	Delete(ctx context.Context, id int) error
}

type focusArea int

const (
	focusTable focusArea = iota
	focusSearch
	focusName
	focusPrice
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

// Gateway outcomes. Each is mapped back to a viewstate result action.
type listResultMsg struct {
	seq int
	res model.ListResult
	err error
}

type saveResultMsg struct {
	item model.Item
	err  error
}

type deleteResultMsg struct {
	id  int
	err error
}

type appModel struct {
	ctx       context.Context
	gw        Gateway
	logger    *log.Logger
	dumpState bool

	state   viewstate.State
	pending []viewstate.Effect

	width  int
	height int

	keys       keyMap
	focus      focusArea
	search     textinput.Model
	nameInput  textinput.Model
	priceInput textinput.Model
	table      table.Model
	spinner    spinner.Model

	// confirmDelete is the item awaiting delete confirmation.
	confirmDelete *model.Item
	confirmFocus  confirmModalFocus
	showHelp      bool
}

func newTextInput(prompt, placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	_ = ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

func newAppModel(ctx context.Context, gw Gateway, logger *log.Logger, dumpState bool) appModel {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	st, effects := viewstate.Init()

	m := appModel{
		ctx:        ctx,
		gw:         gw,
		logger:     logger,
		dumpState:  dumpState,
		state:      st,
		pending:    effects,
		width:      80,
		height:     24,
		keys:       defaultKeyMap(),
		search:     newTextInput("Search: ", "id or name", 200),
		nameInput:  newTextInput("Name:  ", "item name", 200),
		priceInput: newTextInput("Price: ", "0.00", 32),
		table: table.New(
			table.WithFocused(true),
			table.WithHeight(10),
		),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	m.table.SetStyles(tableStyles())
	m.layout()
	m.syncTable()
	m.logState("init", m.state)
	return m
}

// Init starts the initial list fetch and the spinner.
func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.runEffects(m.pending), m.spinner.Tick)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case listResultMsg:
		if msg.err != nil {
			return m.dispatch(viewstate.ListFailed{Seq: msg.seq, Err: msg.err})
		}
		return m.dispatch(viewstate.ListLoaded{Seq: msg.seq, Result: msg.res})

	case saveResultMsg:
		if msg.err != nil {
			return m.dispatch(viewstate.SaveFailed{Err: msg.err})
		}
		return m.dispatch(viewstate.ItemSaved{Item: msg.item})

	case deleteResultMsg:
		if msg.err != nil {
			return m.dispatch(viewstate.DeleteFailed{Err: msg.err})
		}
		return m.dispatch(viewstate.ItemDeleted{ID: msg.id})

	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

// dispatch runs one action through the reducer and turns the resulting
// effects into commands.
func (m appModel) dispatch(a viewstate.Action) (appModel, tea.Cmd) {
	prev := m.state
	next, effects := viewstate.Reduce(prev, a)
	m.state = next
	m.logState(viewstate.ActionName(a), next)

	if _, wasList := prev.Screen.(viewstate.ListScreen); wasList {
		if d, ok := next.CurrentDraft(); ok {
			m.openForm(d)
		}
	}
	if _, isList := next.Screen.(viewstate.ListScreen); isList {
		if _, wasList := prev.Screen.(viewstate.ListScreen); !wasList {
			m.closeForm()
		}
	}
	m.syncTable()
	return m, m.runEffects(effects)
}

func (m appModel) runEffects(effects []viewstate.Effect) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(effects))
	for _, e := range effects {
		m.logger.Debug("effect", "name", viewstate.EffectName(e))
		cmds = append(cmds, m.effectCmd(e))
	}
	return tea.Batch(cmds...)
}

func (m appModel) effectCmd(e viewstate.Effect) tea.Cmd {
	ctx, gw := m.ctx, m.gw
	switch e := e.(type) {
	case viewstate.FetchList:
		return func() tea.Msg {
			res, err := gw.List(ctx, e.Query)
			return listResultMsg{seq: e.Seq, res: res, err: err}
		}
	case viewstate.CreateItem:
		return func() tea.Msg {
			it, err := gw.Create(ctx, e.Input)
			return saveResultMsg{item: it, err: err}
		}
	case viewstate.UpdateItem:
		return func() tea.Msg {
			it, err := gw.Update(ctx, e.ID, e.Input)
			return saveResultMsg{item: it, err: err}
		}
	case viewstate.DeleteItem:
		return func() tea.Msg {
			err := gw.Delete(ctx, e.ID)
			return deleteResultMsg{id: e.ID, err: err}
		}
	default:
		return nil
	}
}

func (m appModel) logState(action string, st viewstate.State) {
	if !m.dumpState {
		m.logger.Debug("action", "name", action, "page", st.Page, "seq", st.ListSeq, "loading", st.Loading())
		return
	}
	b, err := json.Marshal(st)
	if err != nil {
		m.logger.Warn("state dump failed", "err", err)
		return
	}
	m.logger.Debug("action", "name", action, "state", string(b))
}

func (m *appModel) openForm(d viewstate.Draft) {
	m.nameInput.SetValue(d.Name)
	m.priceInput.SetValue(d.Price)
	m.nameInput.CursorEnd()
	m.priceInput.CursorEnd()
	m.search.Blur()
	m.setFocus(focusName)
}

func (m *appModel) closeForm() {
	m.nameInput.SetValue("")
	m.priceInput.SetValue("")
	m.setFocus(focusTable)
}

func (m *appModel) setFocus(f focusArea) {
	m.focus = f
	m.search.Blur()
	m.nameInput.Blur()
	m.priceInput.Blur()
	switch f {
	case focusSearch:
		_ = m.search.Focus()
		m.table.Blur()
	case focusName:
		_ = m.nameInput.Focus()
		m.table.Blur()
	case focusPrice:
		_ = m.priceInput.Focus()
		m.table.Blur()
	default:
		m.table.Focus()
	}
}

// selectedItem returns the item under the table cursor.
func (m appModel) selectedItem() (model.Item, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.state.Items) {
		return model.Item{}, false
	}
	return m.state.Items[i], true
}

func (m appModel) draftFromInputs() viewstate.Draft {
	return viewstate.Draft{Name: m.nameInput.Value(), Price: m.priceInput.Value()}
}
