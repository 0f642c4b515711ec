// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/serg350/yamdb-final/internal/platform/middleware"
	requestutil "github.com/serg350/yamdb-final/internal/platform/request"
	"github.com/serg350/yamdb-final/internal/platform/respond"
	"github.com/serg350/yamdb-final/internal/platform/sec"
	"github.com/serg350/yamdb-final/internal/platform/validate"
	"github.com/serg350/yamdb-final/pkg/pagination"
)

// Handler implements the comment HTTP endpoints, mounted under a review.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the comment router, mounted at
// /titles/{title_id}/reviews/{review_id}/comments.
// Reads are public; writes require authentication, with object-level
// ownership checked in the service.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequirePolicy(sec.AdminModeratorOrAuthor))

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/{comment_id}", handler.get)
	router.Patch("/{comment_id}", handler.update)
	router.Delete("/{comment_id}", handler.delete)

	return router
}

type createRequest struct {
	Text string `json:"text"`
}

type updateRequest struct {
	Text *string `json:"text"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := parentIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	comments, total, err := handler.service.List(request.Context(), titleID, reviewID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := parentIDs(request)
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
	validator.Required(FieldText, input.Text)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	actor := requestutil.Actor(request)
	created, err := handler.service.Create(request.Context(), titleID, reviewID, actor, input.Text)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, commentID, err := pathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.Get(request.Context(), titleID, reviewID, commentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, commentID, err := pathIDs(request)
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
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	actor := requestutil.Actor(request)
	updated, err := handler.service.Update(request.Context(), titleID, reviewID, commentID, actor, input.Text)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, commentID, err := pathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	actor := requestutil.Actor(request)
	if err := handler.service.Delete(request.Context(), titleID, reviewID, commentID, actor); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func parentIDs(request *http.Request) (titleID, reviewID int, err error) {
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

func pathIDs(request *http.Request) (titleID, reviewID, commentID int, err error) {
	titleID, reviewID, err = parentIDs(request)
	if err != nil {
		return 0, 0, 0, err
	}
	commentID, err = requestutil.IntParam(request, "comment_id", "Comment")
	if err != nil {
		return 0, 0, 0, err
	}
	return titleID, reviewID, commentID, nil
}
