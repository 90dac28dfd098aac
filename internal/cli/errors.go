package cli

import (
	"errors"
	"fmt"

	"itens-cli/internal/gateway"
)

type unreachableError struct {
	baseURL string
	err     error
}

func (e unreachableError) Error() string {
	return fmt.Sprintf("%v (is the service running at %s? `itens serve` starts a local one)", e.err, e.baseURL)
}

func (e unreachableError) Unwrap() error { return e.err }

// apiError adds a hint to transport failures; other errors pass through.
func apiError(baseURL string, err error) error {
	var te *gateway.TransportError
	if errors.As(err, &te) {
		return unreachableError{baseURL: baseURL, err: err}
	}
	return err
}
