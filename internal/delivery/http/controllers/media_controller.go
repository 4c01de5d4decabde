package controllers

import (
	"context"
	"log/slog"
	"net/http"

	h "churchconnect/internal/delivery/http/helpers"
	"churchconnect/internal/domain"
)

type MediaController struct {
	Logger         *slog.Logger
	Service        domain.MediaService
	MaxUploadBytes int64
}

func NewMediaController(logger *slog.Logger, svc domain.MediaService, maxUploadBytes int64) *MediaController {
	return &MediaController{Logger: logger, Service: svc, MaxUploadBytes: maxUploadBytes}
}

// Upload godoc
// @Summary Upload a media file
// @Description Stores an audio (.mp3, .wav, .m4a) or image (.jpg, .jpeg, .png, .gif, .webp) file and returns its public URL.
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "File to upload"
// @Success 201 {object} domain.StoredMedia
// @Failure 400 {object} helpers.APIError
// @Failure 401 {object} helpers.APIError
// @Router /upload [post]
func (c *MediaController) Upload(w http.ResponseWriter, r *http.Request) {
	if c.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, c.MaxUploadBytes)
	}
	if _, err := h.ParseForm(r, 32<<20); err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	upload, closeFile, err := h.FormFile(r, "file")
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	defer closeFile()
	if upload == nil {
		h.WriteServiceError(w, r, c.Logger, domain.NewValidationError(domain.KindMissingField, "file", "file is required"))
		return
	}
	stored, err := c.Service.Store(r.Context(), *upload)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, stored)
}

// discardUpload removes a file stored for an entity that was not saved. The
// request context may already be cancelled, so the delete runs without it.
func discardUpload(r *http.Request, logger *slog.Logger, media domain.MediaService, stored *domain.StoredMedia) {
	if stored == nil || media == nil {
		return
	}
	if err := media.Discard(context.WithoutCancel(r.Context()), *stored); err != nil {
		logger.WarnContext(r.Context(), "failed to discard upload", "key", stored.Key, "err", err)
	}
}
