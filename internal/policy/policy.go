// Package policy 鉴权规则表：操作 -> 规则，在访问存储之前统一判定
package policy

import (
	"Lee_Groups/internal/apperr"
	"Lee_Groups/internal/model"
)

// Identity 当前请求的身份，UserID 为 0 表示匿名
type Identity struct {
	UserID uint64
	Role   int
}

func Anonymous() Identity { return Identity{} }

func (i Identity) Authenticated() bool { return i.UserID != 0 }

func (i Identity) IsAdmin() bool { return i.Authenticated() && i.Role >= model.RoleAdmin }

type Action string

const (
	UserCreate Action = "user.create"
	UserSelf   Action = "user.self"
	UserRead   Action = "user.read"
	UserUpdate Action = "user.update"
	UserDelete Action = "user.delete"

	GroupList   Action = "group.list"
	GroupRead   Action = "group.read"
	GroupCreate Action = "group.create"
	GroupUpdate Action = "group.update"
	GroupDelete Action = "group.delete"

	PostList   Action = "post.list"
	PostRead   Action = "post.read"
	PostCreate Action = "post.create"
	PostUpdate Action = "post.update"
	PostDelete Action = "post.delete"
)

type rule int

const (
	allowAny rule = iota + 1
	requireAuth
	requireOwner
	requireOwnerOrAdmin
)

var table = map[Action]rule{
	UserCreate: allowAny,
	UserSelf:   requireAuth,
	UserRead:   requireOwnerOrAdmin,
	UserUpdate: requireOwnerOrAdmin,
	UserDelete: requireOwnerOrAdmin,

	GroupList:   allowAny,
	GroupRead:   allowAny,
	GroupCreate: requireAuth,
	GroupUpdate: requireOwner,
	GroupDelete: requireOwner,

	PostList:   allowAny,
	PostRead:   allowAny,
	PostCreate: requireAuth,
	// 帖子只有作者本人可以修改/删除，小组创建者不行
	PostUpdate: requireOwner,
	PostDelete: requireOwner,
}

// Actions 返回规则表里登记的全部操作
func Actions() []Action {
	out := make([]Action, 0, len(table))
	for a := range table {
		out = append(out, a)
	}
	return out
}

// Authorize ownerID 是目标实体的拥有者（用户本身/小组创建者/帖子作者），创建类操作传 0
func Authorize(act Action, id Identity, ownerID uint64) error {
	r, ok := table[act]
	if !ok {
		return apperr.Authorization("", apperr.CodePermissionDenied)
	}
	if r == allowAny {
		return nil
	}
	if !id.Authenticated() {
		return apperr.Authentication(apperr.CodeNotAuthenticated)
	}
	switch r {
	case requireAuth:
		return nil
	case requireOwner:
		if ownerID != 0 && ownerID == id.UserID {
			return nil
		}
	case requireOwnerOrAdmin:
		if id.IsAdmin() || (ownerID != 0 && ownerID == id.UserID) {
			return nil
		}
	}
	return apperr.Authorization("", apperr.CodePermissionDenied)
}

// CanPostInto 只有小组创建者本人能在组内发帖，成员身份不算
func CanPostInto(id Identity, g *model.Group) error {
	if err := Authorize(PostCreate, id, 0); err != nil {
		return err
	}
	if g == nil || g.CreatorID != id.UserID {
		return apperr.Authorization("group", apperr.CodeNotGroupOwner)
	}
	return nil
}
