package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	h "churchconnect/internal/delivery/http/helpers"
	"churchconnect/internal/domain"
)

// RegisterRequest is the request body for POST /api/events/{id}/register
type RegisterRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

var _ validation.Validatable = RegisterRequest{}

// Validate implements validation.Validatable.
func (r RegisterRequest) Validate() error {
	return r.registration().Validate()
}

func (r RegisterRequest) registration() domain.Registration {
	return domain.Registration{Name: strings.TrimSpace(r.Name), Email: strings.TrimSpace(r.Email)}
}

type EventController struct {
	Logger         *slog.Logger
	Service        domain.EventService
	Media          domain.MediaService
	MaxUploadBytes int64
}

func NewEventController(logger *slog.Logger, svc domain.EventService, media domain.MediaService, maxUploadBytes int64) *EventController {
	return &EventController{
		Logger:         logger,
		Service:        svc,
		Media:          media,
		MaxUploadBytes: maxUploadBytes,
	}
}

// List godoc
// @Summary List events
// @Description Every event, latest start date first.
// @Tags events
// @Produce json
// @Success 200 {array} domain.EventProjection
// @Router /events [get]
func (c *EventController) List(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.List(r.Context())
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, eventProjections(events))
}

// Upcoming godoc
// @Summary Upcoming events
// @Description Up to five events starting after now, soonest first.
// @Tags events
// @Produce json
// @Success 200 {array} domain.EventProjection
// @Router /events/upcoming [get]
func (c *EventController) Upcoming(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.Upcoming(r.Context(), 0)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, eventProjections(events))
}

// Get godoc
// @Summary Get an event
// @Tags events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} domain.EventProjection
// @Failure 404 {object} helpers.APIError
// @Router /events/{id} [get]
func (c *EventController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	event, err := c.Service.Get(r.Context(), id)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, event.Projection())
}

// Create godoc
// @Summary Create an event
// @Description Form fields: title, description, startDate, endDate (RFC 3339 or YYYY-MM-DDTHH:MM), location, category, imageUrl, isRecurring, recurrenceRule, requiresRegistration, maxAttendees, currentAttendees. An image_file upload replaces imageUrl.
// @Tags events
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param startDate formData string true "Start"
// @Param endDate formData string true "End"
// @Param location formData string true "Location"
// @Param category formData string true "Category"
// @Param maxAttendees formData int false "Attendee cap"
// @Param image_file formData file false "Cover image"
// @Success 201 {object} domain.EventProjection
// @Failure 400 {object} helpers.APIError
// @Failure 401 {object} helpers.APIError
// @Router /events [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	patch, stored, ok := c.readPatch(w, r)
	if !ok {
		return
	}
	event, err := c.Service.Create(r.Context(), eventAttrs(patch))
	if err != nil {
		discardUpload(r, c.Logger, c.Media, stored)
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, event.Projection())
}

// Update godoc
// @Summary Update an event
// @Description Same form as create; absent fields are left unchanged and an empty maxAttendees removes the cap. When version is sent it must match the stored version, otherwise 409.
// @Tags events
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param version formData int false "Expected version"
// @Success 200 {object} domain.EventProjection
// @Failure 400 {object} helpers.APIError
// @Failure 404 {object} helpers.APIError
// @Failure 409 {object} helpers.APIError "code: conflict"
// @Router /events/{id} [put]
func (c *EventController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	patch, stored, ok := c.readPatch(w, r)
	if !ok {
		return
	}
	event, err := c.Service.Update(r.Context(), id, patch)
	if err != nil {
		discardUpload(r, c.Logger, c.Media, stored)
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, event.Projection())
}

// Delete godoc
// @Summary Delete an event
// @Tags events
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 204
// @Failure 404 {object} helpers.APIError
// @Router /events/{id} [delete]
func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if err := c.Service.Delete(r.Context(), id); err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Register godoc
// @Summary Register for an event
// @Description Counts one attendee and emails a confirmation. Fails with 409 once the attendee cap is reached.
// @Tags events
// @Accept json
// @Produce json
// @Param id path int true "Event ID"
// @Param body body RegisterRequest true "Registrant"
// @Success 200 {object} domain.EventProjection
// @Failure 400 {object} helpers.APIError
// @Failure 404 {object} helpers.APIError
// @Failure 409 {object} helpers.APIError "code: event_full"
// @Router /events/{id}/register [post]
func (c *EventController) Register(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	var req RegisterRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.Register(r.Context(), id, req.registration())
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, event.Projection())
}

// readPatch parses the event form and stores an attached image, returned so the
// caller can discard it if the event is not saved.
func (c *EventController) readPatch(w http.ResponseWriter, r *http.Request) (domain.EventPatch, *domain.StoredMedia, bool) {
	if c.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, c.MaxUploadBytes)
	}
	form, err := h.ParseForm(r, 32<<20)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return domain.EventPatch{}, nil, false
	}
	patch, err := eventPatchFromForm(form)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return domain.EventPatch{}, nil, false
	}

	upload, closeFile, err := h.FormFile(r, "image_file")
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return domain.EventPatch{}, nil, false
	}
	defer closeFile()
	if upload == nil || c.Media == nil {
		return patch, nil, true
	}
	stored, err := c.Media.StoreImage(r.Context(), *upload)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return domain.EventPatch{}, nil, false
	}
	patch.ImageURL = &stored.URL
	return patch, &stored, true
}

func eventPatchFromForm(f *h.Form) (domain.EventPatch, error) {
	var p domain.EventPatch
	var err error
	p.Title = f.String("title")
	p.Description = f.String("description")
	p.Location = f.String("location")
	p.Category = f.String("category")
	p.ImageURL = f.String("imageUrl")
	p.RecurrenceRule = f.String("recurrenceRule")
	if p.StartDate, err = f.Time("startDate", h.DateTimeLayouts); err != nil {
		return p, err
	}
	if p.EndDate, err = f.Time("endDate", h.DateTimeLayouts); err != nil {
		return p, err
	}
	if p.IsRecurring, err = f.Bool("isRecurring"); err != nil {
		return p, err
	}
	if p.RequiresRegistration, err = f.Bool("requiresRegistration"); err != nil {
		return p, err
	}
	if p.MaxAttendees, err = f.Int("maxAttendees"); err != nil {
		return p, err
	}
	p.ClearMaxAttendees = f.Has("maxAttendees") && p.MaxAttendees == nil
	if p.CurrentAttendees, err = f.Int("currentAttendees"); err != nil {
		return p, err
	}
	if p.Version, err = f.Int("version"); err != nil {
		return p, err
	}
	return p, nil
}

// eventAttrs turns a form patch into constructor input; absent fields are zero.
func eventAttrs(p domain.EventPatch) domain.EventAttrs {
	attrs := domain.EventAttrs{MaxAttendees: p.MaxAttendees}
	deref(&attrs.Title, p.Title)
	deref(&attrs.Description, p.Description)
	deref(&attrs.Location, p.Location)
	deref(&attrs.ImageURL, p.ImageURL)
	deref(&attrs.Category, p.Category)
	deref(&attrs.RecurrenceRule, p.RecurrenceRule)
	deref(&attrs.StartDate, p.StartDate)
	deref(&attrs.EndDate, p.EndDate)
	deref(&attrs.IsRecurring, p.IsRecurring)
	deref(&attrs.RequiresRegistration, p.RequiresRegistration)
	deref(&attrs.CurrentAttendees, p.CurrentAttendees)
	return attrs
}

func deref[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func eventProjections(events []*domain.Event) []domain.EventProjection {
	out := make([]domain.EventProjection, 0, len(events))
	for _, e := range events {
		out = append(out, e.Projection())
	}
	return out
}
