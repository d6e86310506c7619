// Copyright (c) 2026 Mecra. All rights reserved.
// Author: umut.kirgoz@posteo.net

package entry

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

// Handler implements entry-related HTTP endpoints.
type Handler struct {
	entryService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{entryService: service}
}

// Routes returns a [chi.Router] configured with entry-specific routes.
//
// # Endpoints
//   - GET    /{id}            : Returns one entry.
//   - POST   /                : Posts a new entry (authenticated).
//   - PUT    /{id}            : Edits an entry (owner or staff).
//   - DELETE /{id}            : Soft-deletes an entry into the bin.
//   - POST   /{id}/recover    : Restores an entry from the bin.
//   - DELETE /{id}/permanent  : Removes an entry permanently (staff).
//   - POST   /{id}/migrate    : Moves an entry to another title (staff).
//   - GET    /bin             : Lists the caller's binned entries.
//   - DELETE /bin             : Empties the caller's bin.
//   - PUT    /{id}/vote       : Casts or changes a vote.
//   - DELETE /{id}/vote       : Clears the caller's vote.
//   - PUT    /{id}/favorite   : Adds the entry to favorites.
//   - DELETE /{id}/favorite   : Removes the entry from favorites.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{id}", handler.get)

	router.Group(func(member chi.Router) {
		member.Use(middleware.RequireAuth())

		member.Post("/", handler.create)
		member.Put("/{id}", handler.update)
		member.Delete("/{id}", handler.softDelete)
		member.Post("/{id}/recover", handler.recover)
		member.Delete("/{id}/permanent", handler.hardDelete)
		member.Post("/{id}/migrate", handler.migrate)

		member.Get("/bin", handler.bin)
		member.Delete("/bin", handler.emptyBin)

		member.Put("/{id}/vote", handler.vote)
		member.Delete("/{id}/vote", handler.unvote)
		member.Put("/{id}/favorite", handler.favorite)
		member.Delete("/{id}/favorite", handler.unfavorite)
	})

	return router
}

// ListByTitle handles GET /api/v1/titles/{slug}/entries requests.
//
// Exported because it is mounted under the title route tree by the server,
// not under /entries.
func (handler *Handler) ListByTitle(writer http.ResponseWriter, request *http.Request) {
	slugValue := chi.URLParam(request, "slug")
	params := pagination.FromRequest(request)
	claims := ctxutil.GetAuthUser(request.Context())

	entries, meta, err := handler.entryService.ListByTitle(request.Context(), claims, slugValue, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, entries, meta)
}

// parseID reads the {id} URL parameter as an int64.
func parseID(request *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(request, "id"), 10, 64)
	if err != nil {
		return 0, validate.RequiredError("id", "must be a valid numeric ID")
	}
	return id, nil
}

// get handles GET /api/v1/entries/{id} requests.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := parseID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims := ctxutil.GetAuthUser(request.Context())

	entry, err := handler.entryService.Get(request.Context(), claims, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entry)
}

// createRequest represents the JSON payload for posting an entry.
type createRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// create handles POST /api/v1/entries requests.
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	claims := ctxutil.GetAuthUser(request.Context())

	entry, err := handler.entryService.Create(request.Context(), claims, CreateInput{
		TitleName: input.Title,
		Content:   input.Content,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, entry)
}

// updateRequest represents the JSON payload for editing an entry.
type updateRequest struct {
	Content string `json:"content"`
}

// update handles PUT /api/v1/entries/{id} requests.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id, err := parseID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	claims := ctxutil.GetAuthUser(request.Context())

	entry, err := handler.entryService.Update(request.Context(), claims, id, input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entry)
}

// softDelete handles DELETE /api/v1/entries/{id} requests.
func (handler *Handler) softDelete(writer http.ResponseWriter, request *http.Request) {
	id, err := parseID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims := ctxutil.GetAuthUser(request.Context())

	if err := handler.entryService.SoftDelete(request.Context(), claims, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// recover handles POST /api/v1/entries/{id}/recover requests.
func (handler *Handler) recover(writer http.ResponseWriter, request *http.Request) {
	id, err := parseID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims := ctxutil.GetAuthUser(request.Context())

	entry, err := handler.entryService.Recover(request.Context(), claims, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entry)
}

// hardDelete handles DELETE /api/v1/entries/{id}/permanent requests.
func (handler *Handler) hardDelete(writer http.ResponseWriter, request *http.Request) {
	id, err := parseID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims := ctxutil.GetAuthUser(request.Context())

	if err := handler.entryService.HardDelete(request.Context(), claims, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// migrateRequest represents the JSON payload for moving an entry.
type migrateRequest struct {
	TitleID int64 `json:"title_id"`
}

// migrate handles POST /api/v1/entries/{id}/migrate requests.
func (handler *Handler) migrate(writer http.ResponseWriter, request *http.Request) {
	id, err := parseID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input migrateRequest
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	claims := ctxutil.GetAuthUser(request.Context())

	entry, err := handler.entryService.Migrate(request.Context(), claims, id, input.TitleID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entry)
}

// bin handles GET /api/v1/entries/bin requests.
func (handler *Handler) bin(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	claims := ctxutil.GetAuthUser(request.Context())

	entries, meta, err := handler.entryService.Bin(request.Context(), claims, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, entries, meta)
}

// emptyBin handles DELETE /api/v1/entries/bin requests.
func (handler *Handler) emptyBin(writer http.ResponseWriter, request *http.Request) {
	claims := ctxutil.GetAuthUser(request.Context())

	purged, err := handler.entryService.EmptyBin(request.Context(), claims)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{"purged": purged})
}

// voteRequest represents the JSON payload for casting a vote.
type voteRequest struct {
	Value int `json:"value"`
}

// vote handles PUT /api/v1/entries/{id}/vote requests.
func (handler *Handler) vote(writer http.ResponseWriter, request *http.Request) {
	id, err := parseID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input voteRequest
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	claims := ctxutil.GetAuthUser(request.Context())

	if err := handler.entryService.Vote(request.Context(), claims, id, input.Value); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// unvote handles DELETE /api/v1/entries/{id}/vote requests.
func (handler *Handler) unvote(writer http.ResponseWriter, request *http.Request) {
	id, err := parseID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims := ctxutil.GetAuthUser(request.Context())

	if err := handler.entryService.Unvote(request.Context(), claims, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// favorite handles PUT /api/v1/entries/{id}/favorite requests.
func (handler *Handler) favorite(writer http.ResponseWriter, request *http.Request) {
	id, err := parseID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims := ctxutil.GetAuthUser(request.Context())

	if err := handler.entryService.Favorite(request.Context(), claims, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// unfavorite handles DELETE /api/v1/entries/{id}/favorite requests.
func (handler *Handler) unfavorite(writer http.ResponseWriter, request *http.Request) {
	id, err := parseID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims := ctxutil.GetAuthUser(request.Context())

	if err := handler.entryService.Unfavorite(request.Context(), claims, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
