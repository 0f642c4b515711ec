// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/serg350/yamdb-final/internal/platform/constants"
	"github.com/serg350/yamdb-final/internal/platform/middleware"
	requestutil "github.com/serg350/yamdb-final/internal/platform/request"
	"github.com/serg350/yamdb-final/internal/platform/respond"
	"github.com/serg350/yamdb-final/internal/platform/sec"
	"github.com/serg350/yamdb-final/internal/platform/validate"
	"github.com/serg350/yamdb-final/pkg/pagination"
)

// Handler implements the review HTTP endpoints, mounted under a title.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches the review routes to a router already scoped to
// /titles/{title_id}/reviews. The comment routes hang off the same subtree,
// so the policy middleware is scoped to a group.
// Reads are public; writes require authentication, with object-level
// ownership checked in the service.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequirePolicy(sec.AdminModeratorOrAuthor))
		r.Get("/", handler.list)
		r.Post("/", handler.create)
		r.Get("/{review_id}", handler.get)
		r.Patch("/{review_id}", handler.update)
		r.Delete("/{review_id}", handler.delete)
	})
}

type createRequest struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

type updateRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "title_id", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	reviews, total, err := handler.service.List(request.Context(), titleID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "title_id", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldText, input.Text).
		Range(FieldScore, input.Score, constants.ScoreMin, constants.ScoreMax)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	actor := requestutil.Actor(request)
	created, err := handler.service.Create(request.Context(), titleID, actor, CreateInput{
		Text:  input.Text,
		Score: input.Score,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := pathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.Get(request.Context(), titleID, reviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := pathIDs(request)
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
	if input.Text != nil {
		validator.Required(FieldText, *input.Text)
	}
	if input.Score != nil {
		validator.Range(FieldScore, *input.Score, constants.ScoreMin, constants.ScoreMax)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	actor := requestutil.Actor(request)
	updated, err := handler.service.Update(request.Context(), titleID, reviewID, actor, UpdateInput{
		Text:  input.Text,
		Score: input.Score,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := pathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	actor := requestutil.Actor(request)
	if err := handler.service.Delete(request.Context(), titleID, reviewID, actor); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func pathIDs(request *http.Request) (titleID, reviewID int, err error) {
	titleID, err = requestutil.IntParam(request, "title_id", "Title")
	if err != nil {
		return 0, 0, err
	}
	reviewID, err = requestutil.IntParam(request, "review_id", "Review")
	if err != nil {
		return 0, 0, err
	}
	return titleID, reviewID, nil
}
