package helpers

import (
	"encoding/json"
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"churchconnect/internal/domain"
)

// DecodeAndValidate decodes the JSON body into dest (with DisallowUnknownFields)
// and, if dest implements validation.Validatable, runs Validate(). On failure it
// writes a 400 and returns false. Callers should return immediately when it does.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	v, ok := dest.(validation.Validatable)
	if !ok {
		return true
	}
	err := v.Validate()
	if err == nil {
		return true
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		WriteValidationError(w, ve)
		return false
	}
	WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	return false
}
