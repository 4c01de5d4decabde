package helpers

import (
	"net/http"
	"strconv"

	"churchconnect/internal/domain"
)

// PathID parses the named path parameter as a positive int64.
func PathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(domain.KindInvalidFormat, name, "%s must be a positive integer", name)
	}
	return id, nil
}
