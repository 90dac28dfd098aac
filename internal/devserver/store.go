// Package devserver is a small SQLite-backed implementation of the /itens
// REST service, used by `itens serve` and by integration tests.
package devserver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"itens-cli/internal/model"

	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("item not found")

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the sqlite database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One connection keeps ":memory:" databases coherent and serializes writers.
	db.SetMaxOpenConns(1)

	stmts := []string{
		"PRAGMA busy_timeout=5000;",
		`CREATE TABLE IF NOT EXISTS itens (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			nome TEXT NOT NULL,
			preco REAL NOT NULL
		);`,
	}
	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite init: %w", err)
		}
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

var sortColumns = map[model.SortField]string{
	model.SortByID:    "id",
	model.SortByName:  "nome COLLATE NOCASE",
	model.SortByPrice: "preco",
}

// List returns one page. A numeric search matches the id exactly or the name
// as a substring; any other search matches the name only.
func (s *Store) List(ctx context.Context, q model.ListQuery) (model.ListResult, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 10
	}
	col, ok := sortColumns[q.SortField]
	if !ok {
		col = "id"
	}
	dir := "ASC"
	if q.SortDirection == model.Desc {
		dir = "DESC"
	}

	where := ""
	var args []any
	if term := strings.TrimSpace(q.Search); term != "" {
		like := "%" + escapeLike(term) + "%"
		if id, err := strconv.Atoi(term); err == nil {
			where = ` WHERE id = ? OR nome LIKE ? ESCAPE '\'`
			args = append(args, id, like)
		} else {
			where = ` WHERE nome LIKE ? ESCAPE '\'`
			args = append(args, like)
		}
	}

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM itens"+where, args...).Scan(&total); err != nil {
		return model.ListResult{}, err
	}

	query := fmt.Sprintf("SELECT id, nome, preco FROM itens%s ORDER BY %s %s, id %s LIMIT ? OFFSET ?", where, col, dir, dir)
	rows, err := s.db.QueryContext(ctx, query, append(args, q.PageSize, (q.Page-1)*q.PageSize)...)
	if err != nil {
		return model.ListResult{}, err
	}
	defer rows.Close()

	items := []model.Item{}
	for rows.Next() {
		var it model.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Price); err != nil {
			return model.ListResult{}, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return model.ListResult{}, err
	}

	return model.ListResult{
		Items:      items,
		Total:      total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: model.TotalPagesFor(total, q.PageSize),
	}, nil
}

func (s *Store) Create(ctx context.Context, in model.ItemInput) (model.Item, error) {
	res, err := s.db.ExecContext(ctx, "INSERT INTO itens (nome, preco) VALUES (?, ?)", in.Name, in.Price)
	if err != nil {
		return model.Item{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Item{}, err
	}
	return model.Item{ID: int(id), Name: in.Name, Price: in.Price}, nil
}

func (s *Store) Update(ctx context.Context, id int, in model.ItemInput) (model.Item, error) {
	res, err := s.db.ExecContext(ctx, "UPDATE itens SET nome = ?, preco = ? WHERE id = ?", in.Name, in.Price, id)
	if err != nil {
		return model.Item{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.Item{}, ErrNotFound
	}
	return model.Item{ID: id, Name: in.Name, Price: in.Price}, nil
}

func (s *Store) Delete(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM itens WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

var seedNouns = []string{"Chair", "Desk", "Lamp", "Shelf", "Sofa", "Table", "Rug", "Mirror", "Stool", "Cabinet"}
var seedAdjectives = []string{"Oak", "Steel", "Compact", "Vintage", "Folding", "Glass", "Walnut", "Modern"}

// Seed inserts n demo items in one transaction.
func (s *Store) Seed(ctx context.Context, n int) error {
	if n <= 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for i := 0; i < n; i++ {
		name := seedAdjectives[rand.IntN(len(seedAdjectives))] + " " + seedNouns[rand.IntN(len(seedNouns))]
		price := float64(rand.IntN(100000)) / 100
		if _, err := tx.ExecContext(ctx, "INSERT INTO itens (nome, preco) VALUES (?, ?)", name, price); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
