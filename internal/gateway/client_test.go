package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"itens-cli/internal/model"
)

type recorded struct {
	method   string
	rawQuery string
	path     string
	body     string
	ctype    string
	reqID    string
}

func newTestServer(t *testing.T, h func(w http.ResponseWriter, r *http.Request)) (*Client, *[]recorded) {
	t.Helper()

	var mu sync.Mutex
	var reqs []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, recorded{
			method:   r.Method,
			rawQuery: r.URL.RawQuery,
			path:     r.URL.Path,
			body:     string(b),
			ctype:    r.Header.Get("Content-Type"),
			reqID:    r.Header.Get("X-Request-Id"),
		})
		mu.Unlock()
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL + "/")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, &reqs
}

func TestList_SendsCanonicalQuery(t *testing.T) {
	t.Parallel()

	c, reqs := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"itens":[{"id":1,"nome":"Chair","preco":49.9}],"total":11,"pagina":1,"por_pagina":10,"total_paginas":2}`)
	})

	res, err := c.List(context.Background(), model.ListQuery{Page: 1, PageSize: 10, SortField: model.SortByID, SortDirection: model.Asc})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(*reqs) != 1 {
		t.Fatalf("expected one request; got %d", len(*reqs))
	}
	got := (*reqs)[0]
	if got.method != http.MethodGet || got.path != "/itens" || got.rawQuery != "pagina=1&por_pagina=10&ordenar_por=id&ordem=asc" {
		t.Fatalf("unexpected request: %#v", got)
	}
	if got.reqID == "" {
		t.Fatalf("expected X-Request-Id header")
	}
	want := model.ListResult{
		Items:      []model.Item{{ID: 1, Name: "Chair", Price: 49.9}},
		Total:      11,
		Page:       1,
		PageSize:   10,
		TotalPages: 2,
	}
	if len(res.Items) != 1 || res.Items[0] != want.Items[0] || res.Total != want.Total || res.TotalPages != want.TotalPages {
		t.Fatalf("List = %#v; want %#v", res, want)
	}
}

func TestList_DecodeError(t *testing.T) {
	t.Parallel()

	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"itens": "nope"}`)
	})
	_, err := c.List(context.Background(), model.ListQuery{Page: 1, PageSize: 10, SortField: model.SortByID, SortDirection: model.Asc})
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected DecodeError; got %T %v", err, err)
	}
}

func TestList_ServerErrorIsApplicationError(t *testing.T) {
	t.Parallel()

	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	_, err := c.List(context.Background(), model.ListQuery{Page: 1, PageSize: 10, SortField: model.SortByID, SortDirection: model.Asc})
	var ae *ApplicationError
	if !errors.As(err, &ae) || ae.Status != http.StatusInternalServerError {
		t.Fatalf("expected ApplicationError 500; got %T %v", err, err)
	}
}

func TestTransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c, err := New(base)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = c.Delete(context.Background(), 1)
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError; got %T %v", err, err)
	}
}

func TestCreateAndUpdate_SendJSON(t *testing.T) {
	t.Parallel()

	c, reqs := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var in model.ItemInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(model.Item{ID: 5, Name: "Desk", Price: 10})
	})

	it, err := c.Create(context.Background(), model.ItemInput{Name: "Desk", Price: 10})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if it.ID != 5 {
		t.Fatalf("Create returned %#v", it)
	}
	if _, err := c.Update(context.Background(), 5, model.ItemInput{Name: "Desk", Price: 12.5}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if len(*reqs) != 2 {
		t.Fatalf("expected two requests; got %d", len(*reqs))
	}
	post, put := (*reqs)[0], (*reqs)[1]
	if post.method != http.MethodPost || post.path != "/itens" || post.body != `{"nome":"Desk","preco":10}` {
		t.Fatalf("unexpected POST: %#v", post)
	}
	if put.method != http.MethodPut || put.path != "/itens/5" || put.body != `{"nome":"Desk","preco":12.5}` {
		t.Fatalf("unexpected PUT: %#v", put)
	}
	if post.ctype != "application/json" || put.ctype != "application/json" {
		t.Fatalf("expected JSON content type; got %q / %q", post.ctype, put.ctype)
	}
}

func TestDelete_OnlyNoContentSucceeds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status  int
		wantErr bool
	}{
		{status: http.StatusNoContent, wantErr: false},
		{status: http.StatusOK, wantErr: true},
		{status: http.StatusAccepted, wantErr: true},
		{status: http.StatusNotFound, wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			t.Parallel()

			c, reqs := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})
			err := c.Delete(context.Background(), 3)
			if (*reqs)[0].method != http.MethodDelete || (*reqs)[0].path != "/itens/3" {
				t.Fatalf("unexpected request: %#v", (*reqs)[0])
			}
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("Delete: %v", err)
				}
				return
			}
			var ae *ApplicationError
			if !errors.As(err, &ae) || ae.Status != tt.status {
				t.Fatalf("expected ApplicationError %d; got %T %v", tt.status, err, err)
			}
		})
	}
}

func TestNew_RejectsBadBaseURL(t *testing.T) {
	t.Parallel()

	if _, err := New("ftp://example.com"); err == nil {
		t.Fatalf("expected error for non-http scheme")
	}
	c, err := New("")
	if err != nil || c.BaseURL() != DefaultBaseURL {
		t.Fatalf("expected default base url; got %v %v", c, err)
	}
}
