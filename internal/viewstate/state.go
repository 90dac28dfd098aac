// Package viewstate holds the list client's view state and the pure
// transition table that turns user actions into the next state plus the
// side effects (remote calls) the controller must run.
package viewstate

import (
	"encoding/json"
	"fmt"

	"itens-cli/internal/model"
)

// Screen is one of ListScreen, CreateScreen or EditScreen.
type Screen interface {
	screenKind() string
}

type ListScreen struct{}

// CreateScreen is the new-item form.
type CreateScreen struct {
	Draft Draft
}

// EditScreen is the edit form for the item with ID.
type EditScreen struct {
	ID    int
	Draft Draft
}

func (ListScreen) screenKind() string   { return "list" }
func (CreateScreen) screenKind() string { return "create" }
func (EditScreen) screenKind() string   { return "edit" }

// Draft is unsaved form input. Price is kept as typed and parsed on submit.
type Draft struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

const (
	DefaultPageSize = 10
)

// State is everything the renderer needs. It is a plain value: Reduce never
// mutates its input.
type State struct {
	Screen Screen `json:"-"`

	// SearchDraft is the text in the search box; only SearchApplied reaches
	// the server.
	SearchDraft   string `json:"searchDraft"`
	SearchApplied string `json:"searchApplied"`

	SortField     model.SortField     `json:"sortField"`
	SortDirection model.SortDirection `json:"sortDirection"`
	Page          int                 `json:"page"`
	PageSize      int                 `json:"pageSize"`

	// Last known totals, from the most recent applied list result.
	Total      int          `json:"total"`
	TotalPages int          `json:"totalPages"`
	Items      []model.Item `json:"items"`

	Err string `json:"error,omitempty"`

	// ListLoading is set while the latest issued list fetch is in flight.
	ListLoading bool `json:"listLoading"`
	// Mutations counts create/update/delete calls in flight.
	Mutations int `json:"mutations"`

	// ReloadCount is bumped to force a fetch even when the query is unchanged.
	ReloadCount int `json:"reloadCount"`

	// ListSeq is the sequence number of the most recently issued fetch.
	ListSeq int `json:"listSeq"`
	// Issued is the query of the most recently issued fetch and IssuedReload
	// the ReloadCount it was issued at.
	Issued       *model.ListQuery `json:"issued,omitempty"`
	IssuedReload int              `json:"issuedReload"`
}

// New returns the start-up state: list screen, first page of ten, sorted by
// id ascending, no search.
func New() State {
	return State{
		Screen:        ListScreen{},
		SortField:     model.SortByID,
		SortDirection: model.Asc,
		Page:          1,
		PageSize:      DefaultPageSize,
	}
}

// Loading reports whether any remote call the user is waiting on is in flight.
func (s State) Loading() bool {
	return s.ListLoading || s.Mutations > 0
}

// EditingID returns the id under edit, if the edit screen is active.
func (s State) EditingID() (int, bool) {
	if e, ok := s.Screen.(EditScreen); ok {
		return e.ID, true
	}
	return 0, false
}

// CurrentDraft returns the draft of the active form screen.
func (s State) CurrentDraft() (Draft, bool) {
	switch sc := s.Screen.(type) {
	case CreateScreen:
		return sc.Draft, true
	case EditScreen:
		return sc.Draft, true
	default:
		return Draft{}, false
	}
}

type screenJSON struct {
	Kind  string `json:"kind"`
	ID    int    `json:"id,omitempty"`
	Draft *Draft `json:"draft,omitempty"`
}

func encodeScreen(sc Screen) screenJSON {
	switch v := sc.(type) {
	case CreateScreen:
		d := v.Draft
		return screenJSON{Kind: v.screenKind(), Draft: &d}
	case EditScreen:
		d := v.Draft
		return screenJSON{Kind: v.screenKind(), ID: v.ID, Draft: &d}
	default:
		return screenJSON{Kind: ListScreen{}.screenKind()}
	}
}

func decodeScreen(j screenJSON) (Screen, error) {
	var d Draft
	if j.Draft != nil {
		d = *j.Draft
	}
	switch j.Kind {
	case "", "list":
		return ListScreen{}, nil
	case "create":
		return CreateScreen{Draft: d}, nil
	case "edit":
		return EditScreen{ID: j.ID, Draft: d}, nil
	default:
		return nil, fmt.Errorf("unknown screen kind: %q", j.Kind)
	}
}

type stateAlias State

func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		stateAlias
		Screen screenJSON `json:"screen"`
	}{stateAlias(s), encodeScreen(s.Screen)})
}

func (s *State) UnmarshalJSON(b []byte) error {
	var v struct {
		stateAlias
		Screen screenJSON `json:"screen"`
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	sc, err := decodeScreen(v.Screen)
	if err != nil {
		return err
	}
	*s = State(v.stateAlias)
	s.Screen = sc
	return nil
}
