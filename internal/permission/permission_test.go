package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleAtLeast(t *testing.T) {
	assert.True(t, RoleAdmin.AtLeast(RoleModerator))
	assert.True(t, RoleAdmin.AtLeast(RoleAdmin))
	assert.True(t, RoleModerator.AtLeast(RoleUser))
	assert.False(t, RoleUser.AtLeast(RoleModerator))
	assert.False(t, RoleModerator.AtLeast(RoleAdmin))
	assert.False(t, Role("ghost").AtLeast(RoleUser))
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleModerator.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("staff").Valid())
	assert.False(t, Role("").Valid())
}

func TestAnonymousAccess(t *testing.T) {
	for _, res := range []Resource{ResourceCategory, ResourceGenre, ResourceTitle, ResourceReview, ResourceComment} {
		assert.True(t, Allowed(nil, ActionList, res, ""))
		assert.True(t, Allowed(nil, ActionRetrieve, res, ""))
		assert.False(t, Allowed(nil, ActionCreate, res, ""))
		assert.False(t, Allowed(nil, ActionUpdate, res, ""))
		assert.False(t, Allowed(nil, ActionDelete, res, ""))
	}
}

func TestCatalogWritesRequireAdmin(t *testing.T) {
	user := &Actor{ID: "u1", Role: RoleUser}
	mod := &Actor{ID: "m1", Role: RoleModerator}
	adm := &Actor{ID: "a1", Role: RoleAdmin}

	for _, res := range []Resource{ResourceCategory, ResourceGenre, ResourceTitle} {
		for _, act := range []Action{ActionCreate, ActionUpdate, ActionDelete} {
			assert.False(t, Allowed(user, act, res, ""))
			assert.False(t, Allowed(mod, act, res, ""))
			assert.True(t, Allowed(adm, act, res, ""))
		}
	}
}

func TestReviewCreateRequiresAuthentication(t *testing.T) {
	assert.False(t, Allowed(nil, ActionCreate, ResourceReview, ""))
	assert.True(t, Allowed(&Actor{ID: "u1", Role: RoleUser}, ActionCreate, ResourceReview, ""))
	assert.True(t, Allowed(&Actor{ID: "m1", Role: RoleModerator}, ActionCreate, ResourceComment, ""))
}

func TestReviewUpdateIsOwnerOnly(t *testing.T) {
	author := &Actor{ID: "u1", Role: RoleUser}
	other := &Actor{ID: "u2", Role: RoleUser}
	adm := &Actor{ID: "a1", Role: RoleAdmin}

	assert.True(t, Allowed(author, ActionUpdate, ResourceReview, "u1"))
	assert.False(t, Allowed(other, ActionUpdate, ResourceReview, "u1"))
	// Ownership is strict: even an admin without authorship is denied here.
	assert.False(t, Allowed(adm, ActionUpdate, ResourceReview, "u1"))
	assert.True(t, Allowed(adm, ActionUpdate, ResourceComment, "a1"))
}

func TestReviewDeleteIsModeration(t *testing.T) {
	author := &Actor{ID: "u1", Role: RoleUser}
	mod := &Actor{ID: "m1", Role: RoleModerator}
	adm := &Actor{ID: "a1", Role: RoleAdmin}

	// Authorship is irrelevant for deletion.
	assert.False(t, Allowed(author, ActionDelete, ResourceReview, "u1"))
	assert.True(t, Allowed(mod, ActionDelete, ResourceReview, "u1"))
	assert.True(t, Allowed(adm, ActionDelete, ResourceComment, "u1"))
}

func TestUserRecordsAreAdminOnly(t *testing.T) {
	user := &Actor{ID: "u1", Role: RoleUser}
	adm := &Actor{ID: "a1", Role: RoleAdmin}

	for _, act := range []Action{ActionList, ActionRetrieve, ActionCreate, ActionUpdate, ActionDelete} {
		assert.False(t, Allowed(nil, act, ResourceUser, ""))
		assert.False(t, Allowed(user, act, ResourceUser, ""))
		assert.True(t, Allowed(adm, act, ResourceUser, ""))
	}
}

func TestProfilePathAllowsAnyAuthenticatedActor(t *testing.T) {
	assert.False(t, Allowed(nil, ActionRetrieve, ResourceProfile, ""))
	assert.True(t, Allowed(&Actor{ID: "u1", Role: RoleUser}, ActionRetrieve, ResourceProfile, ""))
	assert.True(t, Allowed(&Actor{ID: "u1", Role: RoleUser}, ActionUpdate, ResourceProfile, ""))
	assert.False(t, Allowed(&Actor{ID: "u1", Role: RoleUser}, ActionDelete, ResourceProfile, ""))
}
