package policy

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Lee_Groups/internal/apperr"
	"Lee_Groups/internal/model"
)

var (
	alice = Identity{UserID: 1}
	bob   = Identity{UserID: 2}
	admin = Identity{UserID: 9, Role: model.RoleAdmin}
)

func TestEveryActionHasRule(t *testing.T) {
	all := []Action{
		UserCreate, UserSelf, UserRead, UserUpdate, UserDelete,
		GroupList, GroupRead, GroupCreate, GroupUpdate, GroupDelete,
		PostList, PostRead, PostCreate, PostUpdate, PostDelete,
	}
	assert.ElementsMatch(t, all, Actions())
}

func TestAnonymousAccess(t *testing.T) {
	for _, act := range []Action{UserCreate, GroupList, GroupRead, PostList, PostRead} {
		assert.NoError(t, Authorize(act, Anonymous(), 0), act)
	}
	for _, act := range []Action{UserSelf, UserRead, UserUpdate, UserDelete, GroupCreate, GroupUpdate, GroupDelete, PostCreate, PostUpdate, PostDelete} {
		err := Authorize(act, Anonymous(), 1)
		require.Error(t, err, act)
		assert.Equal(t, apperr.KindAuthentication, apperr.KindOf(err), act)
	}
}

func TestOwnerRules(t *testing.T) {
	assert.NoError(t, Authorize(GroupUpdate, alice, alice.UserID))
	assert.NoError(t, Authorize(GroupDelete, alice, alice.UserID))
	assert.NoError(t, Authorize(PostUpdate, alice, alice.UserID))

	for _, act := range []Action{GroupUpdate, GroupDelete, PostUpdate, PostDelete} {
		err := Authorize(act, bob, alice.UserID)
		assert.True(t, errors.Is(err, apperr.Authorization("", apperr.CodePermissionDenied)), act)
	}

	// 管理员对小组和帖子没有特权
	assert.Error(t, Authorize(GroupDelete, admin, alice.UserID))
	assert.Error(t, Authorize(PostDelete, admin, alice.UserID))
}

func TestUserRecordOwnerOrAdmin(t *testing.T) {
	assert.NoError(t, Authorize(UserUpdate, alice, alice.UserID))
	assert.NoError(t, Authorize(UserDelete, admin, alice.UserID))
	assert.NoError(t, Authorize(UserRead, admin, bob.UserID))
	assert.Error(t, Authorize(UserRead, bob, alice.UserID))
}

func TestOwnerZeroNeverMatches(t *testing.T) {
	assert.Error(t, Authorize(GroupUpdate, alice, 0))
}

func TestUnknownActionDenied(t *testing.T) {
	err := Authorize(Action("group.transfer"), admin, admin.UserID)
	assert.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))
}

func TestCanPostInto(t *testing.T) {
	g := &model.Group{ID: 7, CreatorID: alice.UserID}

	assert.NoError(t, CanPostInto(alice, g))

	err := CanPostInto(bob, g)
	require.Error(t, err)
	e := apperr.As(err)
	require.NotNil(t, e)
	assert.Equal(t, apperr.KindAuthorization, e.Kind)
	assert.Equal(t, apperr.CodeNotGroupOwner, e.Code)
	assert.Equal(t, []string{apperr.CodeNotGroupOwner}, e.Fields["group"])

	assert.Equal(t, apperr.KindAuthentication, apperr.KindOf(CanPostInto(Anonymous(), g)))
}
