package controllers

import (
	"log/slog"
	"net/http"

	h "churchconnect/internal/delivery/http/helpers"
	"churchconnect/internal/domain"
)

type SermonController struct {
	Logger         *slog.Logger
	Service        domain.SermonService
	Media          domain.MediaService
	MaxUploadBytes int64
}

func NewSermonController(logger *slog.Logger, svc domain.SermonService, media domain.MediaService, maxUploadBytes int64) *SermonController {
	return &SermonController{
		Logger:         logger,
		Service:        svc,
		Media:          media,
		MaxUploadBytes: maxUploadBytes,
	}
}

// List godoc
// @Summary List sermons
// @Description All sermons, newest first.
// @Tags sermons
// @Produce json
// @Success 200 {array} domain.SermonProjection
// @Failure 500 {object} helpers.APIError
// @Router /sermons [get]
func (c *SermonController) List(w http.ResponseWriter, r *http.Request) {
	sermons, err := c.Service.List(r.Context())
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, sermonProjections(sermons))
}

// Recent godoc
// @Summary Recent sermons
// @Description Up to five sermons, newest first.
// @Tags sermons
// @Produce json
// @Success 200 {array} domain.SermonProjection
// @Router /sermons/recent [get]
func (c *SermonController) Recent(w http.ResponseWriter, r *http.Request) {
	sermons, err := c.Service.Recent(r.Context(), 0)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, sermonProjections(sermons))
}

// Search godoc
// @Summary Search sermons
// @Description Case-insensitive match on title, preacher and description. An empty query returns every sermon.
// @Tags sermons
// @Produce json
// @Param q query string false "Search text"
// @Success 200 {array} domain.SermonProjection
// @Router /sermons/search [get]
func (c *SermonController) Search(w http.ResponseWriter, r *http.Request) {
	sermons, err := c.Service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, sermonProjections(sermons))
}

// Categories godoc
// @Summary Sermon categories
// @Description Distinct categories in use, sorted.
// @Tags sermons
// @Produce json
// @Success 200 {array} string
// @Router /sermons/categories [get]
func (c *SermonController) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.Service.Categories(r.Context())
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, categories)
}

// Get godoc
// @Summary Get a sermon
// @Tags sermons
// @Produce json
// @Param id path int true "Sermon ID"
// @Success 200 {object} domain.SermonProjection
// @Failure 400 {object} helpers.APIError "code: invalid_format"
// @Failure 404 {object} helpers.APIError "code: not_found"
// @Router /sermons/{id} [get]
func (c *SermonController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	sermon, err := c.Service.Get(r.Context(), id)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, sermon.Projection())
}

// Create godoc
// @Summary Create a sermon
// @Description Form fields: title, preacher, category, description, audioUrl, date (YYYY-MM-DD), duration (seconds), topics (comma-separated). An audio_file upload replaces audioUrl and marks the sermon as locally hosted.
// @Tags sermons
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param preacher formData string true "Preacher"
// @Param category formData string true "Category"
// @Param description formData string false "Description"
// @Param audioUrl formData string false "Audio URL (.mp3, .wav, .m4a)"
// @Param date formData string false "Date, YYYY-MM-DD"
// @Param duration formData int true "Duration in seconds"
// @Param topics formData string false "Comma-separated topic names"
// @Param audio_file formData file false "Audio file"
// @Success 201 {object} domain.SermonProjection
// @Failure 400 {object} helpers.APIError
// @Failure 401 {object} helpers.APIError
// @Router /sermons [post]
func (c *SermonController) Create(w http.ResponseWriter, r *http.Request) {
	in, stored, ok := c.readInput(w, r)
	if !ok {
		return
	}
	sermon, err := c.Service.Create(r.Context(), in)
	if err != nil {
		discardUpload(r, c.Logger, c.Media, stored)
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, sermon.Projection())
}

// Update godoc
// @Summary Update a sermon
// @Description Same form as create; absent fields are left unchanged. Sending topics replaces the topic list, an empty value clears it. When version is sent it must match the stored version, otherwise 409.
// @Tags sermons
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Sermon ID"
// @Param version formData int false "Expected version"
// @Success 200 {object} domain.SermonProjection
// @Failure 400 {object} helpers.APIError
// @Failure 404 {object} helpers.APIError
// @Failure 409 {object} helpers.APIError
// @Router /sermons/{id} [put]
func (c *SermonController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	in, stored, ok := c.readInput(w, r)
	if !ok {
		return
	}
	sermon, err := c.Service.Update(r.Context(), id, in)
	if err != nil {
		discardUpload(r, c.Logger, c.Media, stored)
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, sermon.Projection())
}

// Delete godoc
// @Summary Delete a sermon
// @Tags sermons
// @Security BearerAuth
// @Param id path int true "Sermon ID"
// @Success 204
// @Failure 404 {object} helpers.APIError
// @Router /sermons/{id} [delete]
func (c *SermonController) Delete(w http.ResponseWriter, r *http.Request) {
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

// readInput parses the sermon form and stores an attached audio file, returned
// so the caller can discard it if the sermon is not saved. On failure it writes
// the error response and returns false.
func (c *SermonController) readInput(w http.ResponseWriter, r *http.Request) (domain.SermonInput, *domain.StoredMedia, bool) {
	if c.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, c.MaxUploadBytes)
	}
	form, err := h.ParseForm(r, 32<<20)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return domain.SermonInput{}, nil, false
	}
	in, err := sermonInputFromForm(form)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return domain.SermonInput{}, nil, false
	}

	upload, closeFile, err := h.FormFile(r, "audio_file")
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return domain.SermonInput{}, nil, false
	}
	defer closeFile()
	if upload == nil || c.Media == nil {
		return in, nil, true
	}
	stored, err := c.Media.StoreAudio(r.Context(), *upload)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return domain.SermonInput{}, nil, false
	}
	in.AudioURL = &stored.URL
	in.IsLocal = &stored.IsLocal
	return in, &stored, true
}

func sermonInputFromForm(f *h.Form) (domain.SermonInput, error) {
	var in domain.SermonInput
	var err error
	in.Title = f.String("title")
	in.Preacher = f.String("preacher")
	in.Category = f.String("category")
	in.Description = f.String("description")
	in.AudioURL = f.String("audioUrl")
	if in.IsLocal, err = f.Bool("isLocal"); err != nil {
		return in, err
	}
	if in.Date, err = f.Time("date", h.DateLayouts); err != nil {
		return in, err
	}
	if in.Duration, err = f.Int("duration"); err != nil {
		return in, err
	}
	if in.Version, err = f.Int("version"); err != nil {
		return in, err
	}
	if f.Has("topics") {
		in.ReplaceTopics = true
		in.TopicNames = f.List("topics")
	}
	return in, nil
}

func sermonProjections(sermons []*domain.Sermon) []domain.SermonProjection {
	out := make([]domain.SermonProjection, 0, len(sermons))
	for _, s := range sermons {
		out = append(out, s.Projection())
	}
	return out
}
