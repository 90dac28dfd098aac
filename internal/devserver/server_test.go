package devserver

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"itens-cli/internal/gateway"
	"itens-cli/internal/model"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(context.Background(), filepath.Join(t.TempDir(), "itens.sqlite"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func newClient(t *testing.T, st *Store) *gateway.Client {
	t.Helper()
	srv := httptest.NewServer(NewServer(st, nil).Handler())
	t.Cleanup(srv.Close)
	c, err := gateway.New(srv.URL)
	if err != nil {
		t.Fatalf("gateway.New: %v", err)
	}
	return c
}

func create(t *testing.T, c *gateway.Client, name string, price float64) model.Item {
	t.Helper()
	it, err := c.Create(context.Background(), model.ItemInput{Name: name, Price: price})
	if err != nil {
		t.Fatalf("Create(%q): %v", name, err)
	}
	return it
}

func TestStore_ListPaginatesAndSorts(t *testing.T) {
	t.Parallel()

	st := newStore(t)
	c := newClient(t, st)
	create(t, c, "banana", 3)
	create(t, c, "Apple", 10)
	create(t, c, "cherry", 1)

	res, err := c.List(context.Background(), model.ListQuery{Page: 1, PageSize: 2, SortField: model.SortByName, SortDirection: model.Asc})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if res.Total != 3 || res.TotalPages != 2 || res.Page != 1 || res.PageSize != 2 {
		t.Fatalf("unexpected paging: %+v", res)
	}
	if len(res.Items) != 2 || res.Items[0].Name != "Apple" || res.Items[1].Name != "banana" {
		t.Fatalf("expected case-insensitive name order; got %+v", res.Items)
	}

	res, err = c.List(context.Background(), model.ListQuery{Page: 2, PageSize: 2, SortField: model.SortByPrice, SortDirection: model.Desc})
	if err != nil {
		t.Fatalf("List page 2: %v", err)
	}
	if len(res.Items) != 1 || res.Items[0].Name != "cherry" {
		t.Fatalf("expected cheapest item on last page; got %+v", res.Items)
	}
}

func TestStore_Search(t *testing.T) {
	t.Parallel()

	st := newStore(t)
	c := newClient(t, st)
	chair := create(t, c, "Chair", 49.9)
	create(t, c, "Armchair", 120)
	create(t, c, "Desk 100%", 200)

	tests := []struct {
		search string
		want   int
	}{
		{"chair", 2},
		{"100%", 1},
		{"%", 1},
		{"nothing", 0},
	}
	for _, tt := range tests {
		res, err := c.List(context.Background(), model.ListQuery{Page: 1, PageSize: 10, SortField: model.SortByID, SortDirection: model.Asc, Search: tt.search})
		if err != nil {
			t.Fatalf("List(%q): %v", tt.search, err)
		}
		if res.Total != tt.want {
			t.Fatalf("search %q: expected %d; got %d (%+v)", tt.search, tt.want, res.Total, res.Items)
		}
	}

	res, err := c.List(context.Background(), model.ListQuery{Page: 1, PageSize: 10, SortField: model.SortByID, SortDirection: model.Asc, Search: "1"})
	if err != nil {
		t.Fatalf("List by id: %v", err)
	}
	found := false
	for _, it := range res.Items {
		if it.ID == chair.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected numeric search to match id %d; got %+v", chair.ID, res.Items)
	}
}

func TestServer_UpdateAndDelete(t *testing.T) {
	t.Parallel()

	st := newStore(t)
	c := newClient(t, st)
	it := create(t, c, "Lamp", 15)

	updated, err := c.Update(context.Background(), it.ID, model.ItemInput{Name: "Desk lamp", Price: 19.5})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.ID != it.ID || updated.Name != "Desk lamp" || updated.Price != 19.5 {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	if err := c.Delete(context.Background(), it.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var appErr *gateway.ApplicationError
	err = c.Delete(context.Background(), it.ID)
	if !errors.As(err, &appErr) || appErr.Status != http.StatusNotFound {
		t.Fatalf("expected 404 application error; got %v", err)
	}
	_, err = c.Update(context.Background(), it.ID, model.ItemInput{Name: "x", Price: 1})
	if !errors.As(err, &appErr) || appErr.Status != http.StatusNotFound {
		t.Fatalf("expected 404 on update of missing item; got %v", err)
	}
}

func TestServer_RejectsBadInput(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(NewServer(newStore(t), nil).Handler())
	t.Cleanup(srv.Close)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{name: "bad page", method: http.MethodGet, path: "/itens?pagina=0", want: http.StatusBadRequest},
		{name: "bad size", method: http.MethodGet, path: "/itens?por_pagina=1000", want: http.StatusBadRequest},
		{name: "bad sort", method: http.MethodGet, path: "/itens?ordenar_por=cor", want: http.StatusBadRequest},
		{name: "bad order", method: http.MethodGet, path: "/itens?ordem=up", want: http.StatusBadRequest},
		{name: "empty name", method: http.MethodPost, path: "/itens", body: `{"nome":"  ","preco":1}`, want: http.StatusBadRequest},
		{name: "bad json", method: http.MethodPost, path: "/itens", body: `{`, want: http.StatusBadRequest},
		{name: "bad id", method: http.MethodDelete, path: "/itens/abc", want: http.StatusBadRequest},
		{name: "defaults", method: http.MethodGet, path: "/itens", want: http.StatusOK},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			req, err := http.NewRequest(tt.method, srv.URL+tt.path, body)
			if err != nil {
				t.Fatalf("NewRequest: %v", err)
			}
			resp, err := srv.Client().Do(req)
			if err != nil {
				t.Fatalf("Do: %v", err)
			}
			_ = resp.Body.Close()
			if resp.StatusCode != tt.want {
				t.Fatalf("expected %d; got %d", tt.want, resp.StatusCode)
			}
		})
	}
}

func TestStore_Seed(t *testing.T) {
	t.Parallel()

	st := newStore(t)
	if err := st.Seed(context.Background(), 23); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	res, err := st.List(context.Background(), model.ListQuery{Page: 3, PageSize: 10, SortField: model.SortByID, SortDirection: model.Asc})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if res.Total != 23 || res.TotalPages != 3 || len(res.Items) != 3 {
		t.Fatalf("unexpected seeded page: total=%d pages=%d items=%d", res.Total, res.TotalPages, len(res.Items))
	}
}
