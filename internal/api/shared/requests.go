package shared

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/phrazzld/gemini-proxy/internal/domain"
)

// ReadBody reads the whole request body, refusing more than limit bytes.
// An oversized body yields an error wrapping domain.ErrRequestTooLarge.
func ReadBody(w http.ResponseWriter, r *http.Request, limit int64) ([]byte, error) {
	if limit > 0 && r.ContentLength > limit {
		return nil, tooLarge(limit, nil)
	}

	body := io.Reader(r.Body)
	if limit > 0 {
		body = http.MaxBytesReader(w, r.Body, limit)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, tooLarge(limit, err)
		}
		return nil, fmt.Errorf("reading request body: %w", err)
	}
	return data, nil
}

func tooLarge(limit int64, cause error) error {
	return domain.NewRequestError(
		domain.ErrRequestTooLarge,
		fmt.Sprintf("Request body exceeds %d bytes", limit),
		cause,
	)
}
