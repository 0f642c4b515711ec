// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

package title

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/serg350/yamdb-final/internal/platform/constants"
	"github.com/serg350/yamdb-final/internal/platform/middleware"
	requestutil "github.com/serg350/yamdb-final/internal/platform/request"
	"github.com/serg350/yamdb-final/internal/platform/respond"
	"github.com/serg350/yamdb-final/internal/platform/sec"
	"github.com/serg350/yamdb-final/internal/platform/validate"
	"github.com/serg350/yamdb-final/pkg/convert"
	"github.com/serg350/yamdb-final/pkg/pagination"
	queryutil "github.com/serg350/yamdb-final/pkg/query"
)

// Handler implements the title HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches the title routes to an existing router. The
// review routes hang off the same subtree, so the policy middleware is
// scoped to a group instead of the whole router.
// Reads are public; writes require an administrator.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequirePolicy(sec.AdminOrReadOnly))
		r.Get("/", handler.list)
		r.Post("/", handler.create)
		r.Get("/{title_id}", handler.get)
		r.Patch("/{title_id}", handler.update)
		r.Delete("/{title_id}", handler.delete)
	})
}

type createRequest struct {
	Name        string   `json:"name"`
	Year        int      `json:"year"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Genre       []string `json:"genre"`
}

type updateRequest struct {
	Name        *string   `json:"name"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Genre       *[]string `json:"genre"`
}

/*
list returns a page of titles.

GET /api/v1/titles

Query parameters:
  - page, limit: pagination
  - category: taxonomy slug
  - genre: comma-separated taxonomy slugs, any-of semantics
  - name: name substring
  - year: exact release year
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	query := request.URL.Query()

	filter := Filter{
		CategorySlug: query.Get("category"),
		GenreSlugs:   queryutil.StringSlice(query.Get("genre")),
		Name:         query.Get("name"),
		Year:         convert.ToInt(query.Get("year")),
	}

	titles, total, err := handler.service.List(request.Context(), params, filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, titles, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, constants.NameMaxLength).
		Year(FieldYear, input.Year).
		Required(FieldCategory, input.Category).
		Custom(FieldGenre, len(input.Genre) == 0, "This field is required")

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.Create(request.Context(), CreateInput{
		Name:         input.Name,
		Year:         input.Year,
		Description:  input.Description,
		CategorySlug: input.Category,
		GenreSlugs:   input.Genre,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "title_id", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, title)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "title_id", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if input.Name != nil {
		validator.Required(FieldName, *input.Name).
			MaxLen(FieldName, *input.Name, constants.NameMaxLength)
	}
	if input.Year != nil {
		validator.Year(FieldYear, *input.Year)
	}
	if input.Genre != nil {
		validator.Custom(FieldGenre, len(*input.Genre) == 0, "Must contain at least one genre")
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.Update(request.Context(), id, UpdateInput{
		Name:         input.Name,
		Year:         input.Year,
		Description:  input.Description,
		CategorySlug: input.Category,
		GenreSlugs:   input.Genre,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "title_id", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
