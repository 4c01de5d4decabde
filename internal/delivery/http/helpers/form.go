package helpers

import (
	"errors"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"churchconnect/internal/domain"
)

// Accepted date layouts for form fields, tried in order.
var (
	DateLayouts     = []string{"2006-01-02", time.RFC3339}
	DateTimeLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02 15:04", "2006-01-02"}
)

// Form reads typed fields from a parsed url-encoded or multipart body. A field
// that is absent from the body yields nil, so the result can fill a patch.
type Form struct {
	values map[string][]string
}

// ParseForm parses the request body. Multipart bodies keep at most maxMemory
// bytes of file data in memory.
func ParseForm(r *http.Request, maxMemory int64) (*Form, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	var err error
	if mediaType == "multipart/form-data" {
		err = r.ParseMultipartForm(maxMemory)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, domain.NewValidationError(domain.KindOutOfRange, "body", "request body must be at most %d MB", tooLarge.Limit>>20)
		}
		return nil, domain.NewValidationError(domain.KindInvalidFormat, "body", "could not parse form: %v", err)
	}
	return &Form{values: r.PostForm}, nil
}

// Has reports whether the field was sent, even if empty.
func (f *Form) Has(key string) bool {
	_, ok := f.values[key]
	return ok
}

// String returns the first value of key, untrimmed.
func (f *Form) String(key string) *string {
	vals, ok := f.values[key]
	if !ok || len(vals) == 0 {
		return nil
	}
	v := vals[0]
	return &v
}

// Int parses key as an integer. An empty value counts as absent.
func (f *Form) Int(key string) (*int, error) {
	s := f.String(key)
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(*s))
	if err != nil {
		return nil, domain.NewValidationError(domain.KindInvalidFormat, key, "%s must be a whole number", key)
	}
	return &n, nil
}

// Bool accepts true/false, 1/0, on/off and yes/no.
func (f *Form) Bool(key string) (*bool, error) {
	s := f.String(key)
	if s == nil {
		return nil, nil
	}
	var b bool
	switch strings.ToLower(strings.TrimSpace(*s)) {
	case "true", "1", "on", "yes":
		b = true
	case "false", "0", "off", "no", "":
		b = false
	default:
		return nil, domain.NewValidationError(domain.KindInvalidFormat, key, "%s must be true or false", key)
	}
	return &b, nil
}

// Time parses key with the first matching layout. An empty value counts as absent.
func (f *Form) Time(key string, layouts []string) (*time.Time, error) {
	s := f.String(key)
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	raw := strings.TrimSpace(*s)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, domain.NewValidationError(domain.KindInvalidFormat, key, "%s must be a date like %s", key, layouts[0])
}

// List splits a comma-separated field. Entries are returned untrimmed; callers normalize.
func (f *Form) List(key string) []string {
	s := f.String(key)
	if s == nil || *s == "" {
		return nil
	}
	return strings.Split(*s, ",")
}

// FormFile returns the uploaded file under key, or nil when none was sent.
// The caller must call the returned close function.
func FormFile(r *http.Request, key string) (*domain.Upload, func() error, error) {
	file, header, err := r.FormFile(key)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, func() error { return nil }, nil
		}
		return nil, nil, domain.NewValidationError(domain.KindInvalidFormat, key, "could not read %s: %v", key, err)
	}
	u := &domain.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	}
	return u, file.Close, nil
}
