// Copyright (c) 2026 Mecra. All rights reserved.
// Author: umut.kirgoz@posteo.net

package title

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/umutkirgoz/mecra/internal/platform/ctxutil"
	"github.com/umutkirgoz/mecra/internal/platform/middleware"
	"github.com/umutkirgoz/mecra/internal/platform/respond"
	"github.com/umutkirgoz/mecra/internal/platform/validate"
	"github.com/umutkirgoz/mecra/pkg/pagination"
)

// Handler implements title-related HTTP endpoints.
type Handler struct {
	titleService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{titleService: service}
}

// Routes returns a [chi.Router] configured with title-specific routes.
//
// # Endpoints
//   - GET   /               : Lists titles (hidden ones for staff only).
//   - GET   /{slug}         : Returns one title by slug.
//   - PATCH /{id}/visibility: Hides or reveals a title (staff only).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{slug}", handler.get)

	router.Group(func(staff chi.Router) {
		staff.Use(middleware.RequireStaff())
		staff.Patch("/{id}/visibility", handler.setVisibility)
	})

	return router
}

// list handles GET /api/v1/titles requests.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	claims := ctxutil.GetAuthUser(request.Context())

	titles, meta, err := handler.titleService.List(request.Context(), claims, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, titles, meta)
}

// get handles GET /api/v1/titles/{slug} requests.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	slugValue := chi.URLParam(request, "slug")
	claims := ctxutil.GetAuthUser(request.Context())

	title, err := handler.titleService.GetBySlug(request.Context(), claims, slugValue)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, title)
}

// visibilityRequest represents the JSON payload for the visibility toggle.
type visibilityRequest struct {
	Hidden bool `json:"hidden"`
}

// setVisibility handles PATCH /api/v1/titles/{id}/visibility requests.
func (handler *Handler) setVisibility(writer http.ResponseWriter, request *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(request, "id"), 10, 64)
	if err != nil {
		respond.Error(writer, request, validate.RequiredError("id", "must be a valid numeric ID"))
		return
	}

	var input visibilityRequest
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	claims := ctxutil.GetAuthUser(request.Context())

	if err := handler.titleService.SetVisibility(request.Context(), claims, id, input.Hidden); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
