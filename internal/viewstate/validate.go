package viewstate

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"itens-cli/internal/model"
)

// ValidationError is raised before any request is sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// ParseDraft validates d and converts it to a request body. The name must not
// be blank and the price must parse as a finite number.
func ParseDraft(d Draft) (model.ItemInput, error) {
	if strings.TrimSpace(d.Name) == "" {
		return model.ItemInput{}, ValidationError{Field: "name", Message: "name and price are required"}
	}
	price, err := ParsePrice(d.Price)
	if err != nil {
		return model.ItemInput{}, err
	}
	return model.ItemInput{Name: d.Name, Price: price}, nil
}

func ParsePrice(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ValidationError{Field: "price", Message: "name and price are required"}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ValidationError{Field: "price", Message: fmt.Sprintf("invalid price: %q", s)}
	}
	return v, nil
}

// FormatPrice renders a price the way the edit form pre-fills it.
func FormatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64)
}

// ParseID parses an item id given as text (CLI arguments).
func ParseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, ValidationError{Field: "id", Message: fmt.Sprintf("invalid id: %q", s)}
	}
	return id, nil
}
