package viewstate

import (
	"strings"

	"itens-cli/internal/model"
)

// BuildQuery derives the list request for s. The search term is included
// only when the applied search is not blank.
func BuildQuery(s State) model.ListQuery {
	q := model.ListQuery{
		Page:          s.Page,
		PageSize:      s.PageSize,
		SortField:     s.SortField,
		SortDirection: s.SortDirection,
	}
	if strings.TrimSpace(s.SearchApplied) != "" {
		q.Search = s.SearchApplied
	}
	return q
}
