package viewstate

import (
	"itens-cli/internal/model"
)

// Init returns the start-up state together with the initial list fetch.
func Init() (State, []Effect) {
	return reconcile(New(), nil)
}

// Reduce applies a to s. The returned effects must be run by the caller, and
// their outcomes fed back as ListLoaded/ListFailed/ItemSaved/... actions.
func Reduce(s State, a Action) (State, []Effect) {
	var effects []Effect

	switch a := a.(type) {
	case SetSearchDraft:
		s.SearchDraft = a.Text

	case ApplySearch:
		s.SearchApplied = s.SearchDraft
		s.Page = 1

	case ChangePageSize:
		if !model.ValidPageSize(a.Size) {
			return s, nil
		}
		s.PageSize = a.Size
		s.Page = 1

	case ActivateSort:
		if !validSortField(a.Field) {
			return s, nil
		}
		if a.Field == s.SortField {
			s.SortDirection = s.SortDirection.Toggle()
		} else {
			s.SortField = a.Field
			s.SortDirection = model.Asc
		}
		s.Page = 1

	case GoToPage:
		if a.Page < 1 || a.Page > s.TotalPages {
			return s, nil
		}
		s.Page = a.Page

	case OpenCreate:
		s.Screen = CreateScreen{}

	case OpenEdit:
		s.Screen = EditScreen{
			ID:    a.Item.ID,
			Draft: Draft{Name: a.Item.Name, Price: FormatPrice(a.Item.Price)},
		}

	case SetDraft:
		switch sc := s.Screen.(type) {
		case CreateScreen:
			sc.Draft = a.Draft
			s.Screen = sc
		case EditScreen:
			sc.Draft = a.Draft
			s.Screen = sc
		}

	case Cancel:
		s.Screen = ListScreen{}

	case Submit:
		return submit(s)

	case Delete:
		s = startMutation(s)
		effects = append(effects, DeleteItem{ID: a.ID})

	case Reload:
		s.ReloadCount++

	case ListLoaded:
		if a.Seq != s.ListSeq {
			return s, nil
		}
		s.ListLoading = false
		s.Items = a.Result.Items
		s.Total = a.Result.Total
		s.TotalPages = a.Result.TotalPages

	case ListFailed:
		if a.Seq != s.ListSeq {
			return s, nil
		}
		s.ListLoading = false
		s.Err = errText(a.Err)

	case ItemSaved:
		s = endMutation(s)
		s.Screen = ListScreen{}
		s.ReloadCount++

	case SaveFailed:
		s = endMutation(s)
		s.Err = errText(a.Err)

	case ItemDeleted:
		s = endMutation(s)
		s.ReloadCount++

	case DeleteFailed:
		s = endMutation(s)
		s.Err = errText(a.Err)

	default:
		return s, nil
	}

	return reconcile(s, effects)
}

func submit(s State) (State, []Effect) {
	switch sc := s.Screen.(type) {
	case CreateScreen:
		in, err := ParseDraft(sc.Draft)
		if err != nil {
			s.Err = err.Error()
			return s, nil
		}
		s = startMutation(s)
		return s, []Effect{CreateItem{Input: in}}
	case EditScreen:
		in, err := ParseDraft(sc.Draft)
		if err != nil {
			s.Err = err.Error()
			return s, nil
		}
		s = startMutation(s)
		return s, []Effect{UpdateItem{ID: sc.ID, Input: in}}
	default:
		return s, nil
	}
}

// reconcile issues a fetch when the derived query differs from the last one
// issued or a reload was requested since.
func reconcile(s State, effects []Effect) (State, []Effect) {
	q := BuildQuery(s)
	if s.Issued != nil && *s.Issued == q && s.IssuedReload == s.ReloadCount {
		return s, effects
	}
	s.ListSeq++
	s.Issued = &q
	s.IssuedReload = s.ReloadCount
	s.ListLoading = true
	s.Err = ""
	return s, append(effects, FetchList{Seq: s.ListSeq, Query: q})
}

func startMutation(s State) State {
	s.Mutations++
	s.Err = ""
	return s
}

func endMutation(s State) State {
	if s.Mutations > 0 {
		s.Mutations--
	}
	return s
}

func validSortField(f model.SortField) bool {
	for _, x := range model.SortFields {
		if x == f {
			return true
		}
	}
	return false
}

func errText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
