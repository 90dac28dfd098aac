package viewstate

import "itens-cli/internal/model"

// Action is a user interaction or the outcome of a remote call.
type Action interface {
	actionName() string
}

type SetSearchDraft struct{ Text string }

// ApplySearch makes the search draft the active filter.
type ApplySearch struct{}

type ChangePageSize struct{ Size int }

// ActivateSort is a click on a sortable column header.
type ActivateSort struct{ Field model.SortField }

type GoToPage struct{ Page int }

type OpenCreate struct{}

type OpenEdit struct{ Item model.Item }

// SetDraft replaces the form draft of the active create/edit screen.
type SetDraft struct{ Draft Draft }

type Cancel struct{}

type Submit struct{}

type Delete struct{ ID int }

// Reload re-fetches the current page even though the query is unchanged.
type Reload struct{}

type ListLoaded struct {
	Seq    int
	Result model.ListResult
}

type ListFailed struct {
	Seq int
	Err error
}

type ItemSaved struct{ Item model.Item }

type SaveFailed struct{ Err error }

type ItemDeleted struct{ ID int }

type DeleteFailed struct{ Err error }

func (SetSearchDraft) actionName() string { return "set-search-draft" }
func (ApplySearch) actionName() string    { return "apply-search" }
func (ChangePageSize) actionName() string { return "change-page-size" }
func (ActivateSort) actionName() string   { return "activate-sort" }
func (GoToPage) actionName() string       { return "go-to-page" }
func (OpenCreate) actionName() string     { return "open-create" }
func (OpenEdit) actionName() string       { return "open-edit" }
func (SetDraft) actionName() string       { return "set-draft" }
func (Cancel) actionName() string         { return "cancel" }
func (Submit) actionName() string         { return "submit" }
func (Delete) actionName() string         { return "delete" }
func (Reload) actionName() string         { return "reload" }
func (ListLoaded) actionName() string     { return "list-loaded" }
func (ListFailed) actionName() string     { return "list-failed" }
func (ItemSaved) actionName() string      { return "item-saved" }
func (SaveFailed) actionName() string     { return "save-failed" }
func (ItemDeleted) actionName() string    { return "item-deleted" }
func (DeleteFailed) actionName() string   { return "delete-failed" }

// ActionName is a short, stable label for logging.
func ActionName(a Action) string {
	if a == nil {
		return ""
	}
	return a.actionName()
}

// Effect is a remote call the controller must perform.
type Effect interface {
	effectName() string
}

// FetchList loads one page. Seq tags the request so late answers to
// superseded fetches can be dropped.
type FetchList struct {
	Seq   int
	Query model.ListQuery
}

type CreateItem struct{ Input model.ItemInput }

type UpdateItem struct {
	ID    int
	Input model.ItemInput
}

type DeleteItem struct{ ID int }

func (FetchList) effectName() string  { return "fetch-list" }
func (CreateItem) effectName() string { return "create-item" }
func (UpdateItem) effectName() string { return "update-item" }
func (DeleteItem) effectName() string { return "delete-item" }

func EffectName(e Effect) string {
	if e == nil {
		return ""
	}
	return e.effectName()
}
