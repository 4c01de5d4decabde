package controllers

import (
	"log/slog"
	"net/http"

	h "churchconnect/internal/delivery/http/helpers"
	"churchconnect/internal/domain"
)

type TopicController struct {
	Logger  *slog.Logger
	Service domain.TopicService
}

func NewTopicController(logger *slog.Logger, svc domain.TopicService) *TopicController {
	return &TopicController{Logger: logger, Service: svc}
}

// List godoc
// @Summary List topics
// @Description Every topic with the number of sermons citing it, ordered by name.
// @Tags topics
// @Produce json
// @Success 200 {array} domain.TopicProjection
// @Router /topics [get]
func (c *TopicController) List(w http.ResponseWriter, r *http.Request) {
	topics, err := c.Service.List(r.Context())
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	out := make([]domain.TopicProjection, 0, len(topics))
	for _, t := range topics {
		out = append(out, t.Topic.Projection(t.SermonCount))
	}
	h.WriteJSON(w, http.StatusOK, out)
}

// Get godoc
// @Summary Get a topic
// @Tags topics
// @Produce json
// @Param id path int true "Topic ID"
// @Success 200 {object} domain.TopicProjection
// @Failure 404 {object} helpers.APIError
// @Router /topics/{id} [get]
func (c *TopicController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	topic, count, err := c.Service.Get(r.Context(), id)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, topic.Projection(count))
}

// Sermons godoc
// @Summary Sermons for a topic
// @Tags topics
// @Produce json
// @Param id path int true "Topic ID"
// @Success 200 {array} domain.SermonProjection
// @Failure 404 {object} helpers.APIError
// @Router /topics/{id}/sermons [get]
func (c *TopicController) Sermons(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	sermons, err := c.Service.Sermons(r.Context(), id)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, sermonProjections(sermons))
}
