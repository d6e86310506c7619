// Copyright (c) 2026 Mecra. All rights reserved.
// Author: umut.kirgoz@posteo.net

package feed

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/umutkirgoz/mecra/internal/platform/respond"
)

// Handler implements the public feed endpoints.
type Handler struct {
	feedService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{feedService: service}
}

// Routes returns a [chi.Router] configured with feed routes.
//
// # Endpoints
//   - GET /trends : Trending titles of the last 24 hours.
//   - GET /today  : Titles active since midnight.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/trends", handler.trends)
	router.Get("/today", handler.today)

	return router
}

// trends handles GET /api/v1/feed/trends requests.
func (handler *Handler) trends(writer http.ResponseWriter, request *http.Request) {
	items, err := handler.feedService.Trends(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, items)
}

// today handles GET /api/v1/feed/today requests.
func (handler *Handler) today(writer http.ResponseWriter, request *http.Request) {
	items, err := handler.feedService.Today(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, items)
}
