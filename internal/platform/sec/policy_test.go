// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serg350/yamdb-final/internal/platform/apperr"
	"github.com/serg350/yamdb-final/internal/platform/sec"
)

func anonymous() *sec.Actor { return nil }

func member(id string) *sec.Actor {
	return &sec.Actor{ID: id, Username: "member", Role: sec.RoleUser}
}

func moderator() *sec.Actor {
	return &sec.Actor{ID: "mod-1", Username: "mod", Role: sec.RoleModerator}
}

func admin() *sec.Actor {
	return &sec.Actor{ID: "adm-1", Username: "adm", Role: sec.RoleAdmin}
}

/*
TestPolicy_AllowsRead verifies the read gates of the three policies.
*/
func TestPolicy_AllowsRead(t *testing.T) {
	tests := []struct {
		name    string
		policy  sec.Policy
		actor   *sec.Actor
		allowed bool
	}{
		{"catalog_anonymous", sec.AdminOrReadOnly, anonymous(), true},
		{"reviews_anonymous", sec.AdminModeratorOrAuthor, anonymous(), true},
		{"users_anonymous", sec.SelfOrAdmin, anonymous(), false},
		{"users_member", sec.SelfOrAdmin, member("u1"), false},
		{"users_moderator", sec.SelfOrAdmin, moderator(), false},
		{"users_admin", sec.SelfOrAdmin, admin(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.policy.AllowsRead(tt.actor))
		})
	}
}

/*
TestPolicy_AuthorizeCollection verifies the create-level write gates.
*/
func TestPolicy_AuthorizeCollection(t *testing.T) {
	tests := []struct {
		name       string
		policy     sec.Policy
		actor      *sec.Actor
		wantStatus int // 0 means allowed
	}{
		{"catalog_anonymous", sec.AdminOrReadOnly, anonymous(), 401},
		{"catalog_member", sec.AdminOrReadOnly, member("u1"), 403},
		{"catalog_moderator", sec.AdminOrReadOnly, moderator(), 403},
		{"catalog_admin", sec.AdminOrReadOnly, admin(), 0},
		{"reviews_anonymous", sec.AdminModeratorOrAuthor, anonymous(), 401},
		{"reviews_member", sec.AdminModeratorOrAuthor, member("u1"), 0},
		{"users_member", sec.SelfOrAdmin, member("u1"), 403},
		{"users_admin", sec.SelfOrAdmin, admin(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.policy.AuthorizeCollection(tt.actor)

			if tt.wantStatus == 0 {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, tt.wantStatus, ae.HTTPStatus)
		})
	}
}

/*
TestPolicy_Authorize verifies object-level checks against a resource owner.
*/
func TestPolicy_Authorize(t *testing.T) {
	const ownerID = "owner-1"

	tests := []struct {
		name       string
		policy     sec.Policy
		actor      *sec.Actor
		wantStatus int
	}{
		{"review_author", sec.AdminModeratorOrAuthor, member(ownerID), 0},
		{"review_other_member", sec.AdminModeratorOrAuthor, member("intruder"), 403},
		{"review_moderator", sec.AdminModeratorOrAuthor, moderator(), 0},
		{"review_admin", sec.AdminModeratorOrAuthor, admin(), 0},
		{"review_anonymous", sec.AdminModeratorOrAuthor, anonymous(), 401},
		// Moderators get no write grant on catalog resources.
		{"catalog_moderator", sec.AdminOrReadOnly, moderator(), 403},
		// Ownership grants nothing under a policy without ownerWrite.
		{"catalog_owner", sec.AdminOrReadOnly, member(ownerID), 403},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.policy.Authorize(tt.actor, ownerID)

			if tt.wantStatus == 0 {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, tt.wantStatus, ae.HTTPStatus)
		})
	}
}

/*
TestActor_AdminUnion verifies that role, staff flag, and superuser flag each
independently grant administrative power.
*/
func TestActor_AdminUnion(t *testing.T) {
	tests := []struct {
		name    string
		actor   *sec.Actor
		isAdmin bool
	}{
		{"role_admin", &sec.Actor{Role: sec.RoleAdmin}, true},
		{"staff_flag", &sec.Actor{Role: sec.RoleUser, IsStaff: true}, true},
		{"superuser_flag", &sec.Actor{Role: sec.RoleUser, IsSuperuser: true}, true},
		{"superuser_moderator", &sec.Actor{Role: sec.RoleModerator, IsSuperuser: true}, true},
		{"plain_member", &sec.Actor{Role: sec.RoleUser}, false},
		{"plain_moderator", &sec.Actor{Role: sec.RoleModerator}, false},
		{"nil_actor", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isAdmin, tt.actor.IsAdmin())
		})
	}
}
