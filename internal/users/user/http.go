// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

package user

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

// # Definitions & Constructors

// Handler implements the user management HTTP endpoints.
type Handler struct {
	userService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{userService: service}
}

// Routes returns a [chi.Router] configured with the user management routes.
//
// # Endpoints
//   - GET    /me         : Own profile (any authenticated member).
//   - PATCH  /me         : Update own profile; role changes are ignored.
//   - GET    /           : Directory listing (admin only).
//   - POST   /           : Create an account (admin only).
//   - GET    /{username} : Fetch an account (admin only).
//   - PATCH  /{username} : Update an account (admin only).
//   - DELETE /{username} : Remove an account (admin only).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Self-service profile
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth())
		r.Get("/me", handler.me)
		r.Patch("/me", handler.updateMe)
	})

	// Administrative directory
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequirePolicy(sec.SelfOrAdmin))
		r.Get("/", handler.list)
		r.Post("/", handler.create)
		r.Get("/{username}", handler.get)
		r.Patch("/{username}", handler.update)
		r.Delete("/{username}", handler.delete)
	})

	return router
}

// # Request Payloads

type createRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
}

type updateRequest struct {
	Email     *string `json:"email"`
	Role      *string `json:"role"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
}

// profileRequest mirrors updateRequest minus the role: members cannot
// promote themselves. An incoming "role" key is silently dropped.
type profileRequest struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
}

// validateIdentity runs the shared username/email rules used by both the
// signup flow and the administrative directory.
func validateIdentity(validator *validate.Validator, username, email string) {
	validator.Required(FieldUsername, username).
		Username(FieldUsername, username).
		MaxLen(FieldUsername, username, constants.UsernameMaxLength).
		Required(FieldEmail, email).
		Email(FieldEmail, email).
		MaxLen(FieldEmail, email, constants.EmailMaxLength)
}

/*
list returns a page of accounts.

GET /api/v1/users

Query parameters:
  - page, limit: pagination
  - search: optional username substring filter

Response:
  - 200: Paginated list of users
  - 403: ErrForbidden: Caller is not an administrator
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	search := request.URL.Query().Get("search")

	users, total, err := handler.userService.List(request.Context(), params, search)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
create enrolls a new account on behalf of an administrator.

POST /api/v1/users

Response:
  - 201: User: Created account
  - 400: ErrValidation or Conflict (username/email taken)
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validateIdentity(validator, input.Username, input.Email)
	if input.Role != "" {
		validator.OneOf(FieldRole, input.Role,
			string(sec.RoleUser), string(sec.RoleModerator), string(sec.RoleAdmin))
	}
	validator.MaxLen(FieldFirstName, input.FirstName, constants.UsernameMaxLength).
		MaxLen(FieldLastName, input.LastName, constants.UsernameMaxLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.userService.Create(request.Context(), CreateInput{
		Username:  input.Username,
		Email:     input.Email,
		Role:      input.Role,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

/*
get fetches a single account by username.

GET /api/v1/users/{username}

Response:
  - 200: User
  - 404: ErrNotFound: No such account
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	account, err := handler.userService.Get(request.Context(), username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, account)
}

/*
update applies a partial update to an account.

PATCH /api/v1/users/{username}

Response:
  - 200: User: Updated account
  - 400: ErrValidation or Conflict (email collision)
  - 404: ErrNotFound: No such account
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if input.Email != nil {
		validator.Email(FieldEmail, *input.Email).
			MaxLen(FieldEmail, *input.Email, constants.EmailMaxLength)
	}
	if input.Role != nil {
		validator.OneOf(FieldRole, *input.Role,
			string(sec.RoleUser), string(sec.RoleModerator), string(sec.RoleAdmin))
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.userService.Update(request.Context(), username, UpdateInput{
		Email:     input.Email,
		Role:      input.Role,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

/*
delete removes an account.

DELETE /api/v1/users/{username}

Response:
  - 204: No Content
  - 404: ErrNotFound: No such account
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	if err := handler.userService.Delete(request.Context(), username); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
me returns the caller's own profile.

GET /api/v1/users/me

Response:
  - 200: User
  - 401: ErrUnauthorized: Missing or invalid token
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.userService.Me(request.Context(), actor.ID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, account)
}

/*
updateMe applies a partial update to the caller's own profile.

PATCH /api/v1/users/me

Description: The payload intentionally has no role field, so role changes
submitted by the member never reach the service layer.

Response:
  - 200: User: Updated profile
  - 400: ErrValidation or Conflict (email collision)
  - 401: ErrUnauthorized: Missing or invalid token
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input profileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if input.Email != nil {
		validator.Email(FieldEmail, *input.Email).
			MaxLen(FieldEmail, *input.Email, constants.EmailMaxLength)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.userService.UpdateMe(request.Context(), actor.ID, ProfileInput{
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}
