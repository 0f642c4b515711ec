// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

package sec

import "github.com/serg350/yamdb-final/internal/platform/apperr"

// # Authorization Policies

// Policy is a declarative authorization rule evaluated before every mutating
// handler. A single parameterized type covers all resource families instead
// of one ad hoc evaluator per resource.
//
// # Parameters
//
//   - readOpen: side-effect-free requests are allowed for everyone, including
//     anonymous callers.
//   - moderatorWrite: the moderator role may mutate.
//   - ownerWrite: the resource's author may mutate (object-level check).
//
// Admins may always mutate under every policy.
type Policy struct {
	name           string
	readOpen       bool
	moderatorWrite bool
	ownerWrite     bool
}

var (
	// SelfOrAdmin gates the user-management collection: every method,
	// including reads, requires an authenticated admin.
	SelfOrAdmin = Policy{name: "self_or_admin"}

	// AdminOrReadOnly gates the catalog collections (categories, genres,
	// titles): reads are public, writes require an admin.
	AdminOrReadOnly = Policy{name: "admin_or_read_only", readOpen: true}

	// AdminModeratorOrAuthor gates reviews and comments: reads are public,
	// writes require admin, moderator, or the resource's author.
	AdminModeratorOrAuthor = Policy{
		name:           "admin_moderator_or_author",
		readOpen:       true,
		moderatorWrite: true,
		ownerWrite:     true,
	}
)

// Name returns the policy identifier used in logs.
func (p Policy) Name() string { return p.name }

// AllowsRead reports whether the actor may perform a side-effect-free request.
func (p Policy) AllowsRead(actor *Actor) bool {
	if p.readOpen {
		return true
	}
	return actor.IsAdmin()
}

// AuthorizeCollection evaluates the policy for a mutating request that is
// not bound to an existing resource instance (e.g. create). Policies that
// grant author writes only require authentication here; ownership is
// established by the server at creation time.
func (p Policy) AuthorizeCollection(actor *Actor) error {
	if actor == nil {
		return apperr.Unauthorized("Authentication required")
	}

	if p.ownerWrite {
		return nil
	}

	if actor.IsAdmin() || (p.moderatorWrite && actor.IsModerator()) {
		return nil
	}

	return apperr.Forbidden("Insufficient permissions")
}

// Authorize evaluates the policy for a mutating request against a resource
// owned by ownerID (empty for collection-level checks).
//
// # Contract
//
// Must be called before any model state is touched. A non-nil result
// short-circuits the request: [apperr.Unauthorized] when the caller is
// anonymous, [apperr.Forbidden] otherwise.
func (p Policy) Authorize(actor *Actor, ownerID string) error {
	if actor == nil {
		return apperr.Unauthorized("Authentication required")
	}

	if actor.IsAdmin() {
		return nil
	}

	if p.moderatorWrite && actor.IsModerator() {
		return nil
	}

	if p.ownerWrite && ownerID != "" && actor.ID == ownerID {
		return nil
	}

	return apperr.Forbidden("Insufficient permissions")
}
