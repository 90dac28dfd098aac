package model

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Item is a priced catalog entry. The server owns it; the client never patches
// one locally and only ever replaces its copy through a list reload.
type Item struct {
	ID    int     `json:"id"`
	Name  string  `json:"nome"`
	Price float64 `json:"preco"`
}

// ItemInput is the body of create and update requests.
type ItemInput struct {
	Name  string  `json:"nome"`
	Price float64 `json:"preco"`
}

type SortField string

const (
	SortByID    SortField = "id"
	SortByName  SortField = "name"
	SortByPrice SortField = "price"
)

// SortFields lists the sortable columns in display order.
var SortFields = []SortField{SortByID, SortByName, SortByPrice}

// Wire returns the ordenar_por value the REST service expects.
func (f SortField) Wire() string {
	switch f {
	case SortByName:
		return "nome"
	case SortByPrice:
		return "preco"
	default:
		return "id"
	}
}

func (f SortField) Label() string {
	switch f {
	case SortByName:
		return "Name"
	case SortByPrice:
		return "Price"
	default:
		return "ID"
	}
}

// ParseSortField accepts both the client names (id|name|price) and the wire
// names (id|nome|preco).
func ParseSortField(s string) (SortField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "id":
		return SortByID, nil
	case "name", "nome":
		return SortByName, nil
	case "price", "preco":
		return SortByPrice, nil
	default:
		return "", fmt.Errorf("invalid sort field: %q (want id|name|price)", s)
	}
}

type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// Toggle flips asc and desc.
func (d SortDirection) Toggle() SortDirection {
	if d == Asc {
		return Desc
	}
	return Asc
}

func ParseSortDirection(s string) (SortDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc":
		return Asc, nil
	case "desc":
		return Desc, nil
	default:
		return "", fmt.Errorf("invalid sort direction: %q (want asc|desc)", s)
	}
}

// PageSizes are the page sizes offered by the list screen.
var PageSizes = []int{5, 10, 20, 50}

func ValidPageSize(n int) bool {
	for _, s := range PageSizes {
		if s == n {
			return true
		}
	}
	return false
}

// ListQuery is the server-side list request derived from view state.
// An empty Search means the busca parameter is omitted.
type ListQuery struct {
	Page          int           `json:"page"`
	PageSize      int           `json:"pageSize"`
	SortField     SortField     `json:"sortField"`
	SortDirection SortDirection `json:"sortDirection"`
	Search        string        `json:"search,omitempty"`
}

// Encode renders q as the GET /itens query string. Parameter order is fixed
// (pagina, por_pagina, ordenar_por, ordem, busca) and busca is absent when q
// has no search term.
func (q ListQuery) Encode() string {
	var b strings.Builder
	b.WriteString("pagina=")
	b.WriteString(strconv.Itoa(q.Page))
	b.WriteString("&por_pagina=")
	b.WriteString(strconv.Itoa(q.PageSize))
	b.WriteString("&ordenar_por=")
	b.WriteString(url.QueryEscape(q.SortField.Wire()))
	b.WriteString("&ordem=")
	b.WriteString(url.QueryEscape(string(q.SortDirection)))
	if q.Search != "" {
		b.WriteString("&busca=")
		b.WriteString(url.QueryEscape(q.Search))
	}
	return b.String()
}

// ListResult is one page of items as returned by GET /itens.
type ListResult struct {
	Items      []Item `json:"itens"`
	Total      int    `json:"total"`
	Page       int    `json:"pagina"`
	PageSize   int    `json:"por_pagina"`
	TotalPages int    `json:"total_paginas"`
}

// TotalPagesFor returns ceil(total/pageSize), or 0 when pageSize is not positive.
func TotalPagesFor(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
