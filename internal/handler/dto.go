package handler

import (
	"time"

	"Lee_Groups/internal/model"
)

// UserResp 只在本人或管理员视角下返回
type UserResp struct {
	ID         uint64    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	DateJoined time.Time `json:"date_joined"`
}

// CreatorResp 嵌在小组和帖子里的作者信息，不含邮箱
type CreatorResp struct {
	ID         uint64    `json:"id"`
	Username   string    `json:"username"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	DateJoined time.Time `json:"date_joined"`
}

type GroupResp struct {
	ID          uint64      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Creator     CreatorResp `json:"creator"`
	CreatedAt   time.Time   `json:"created_at"`
}

type PostResp struct {
	ID        uint64      `json:"id"`
	Group     uint64      `json:"group"`
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	Creator   CreatorResp `json:"creator"`
	CreatedAt time.Time   `json:"created_at"`
}

func toUser(u *model.User) UserResp {
	return UserResp{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		DateJoined: u.CreatedAt,
	}
}

func toCreator(u model.User) CreatorResp {
	return CreatorResp{
		ID:         u.ID,
		Username:   u.Username,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		DateJoined: u.CreatedAt,
	}
}

func toGroup(g *model.Group) GroupResp {
	return GroupResp{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Creator:     toCreator(g.Creator),
		CreatedAt:   g.CreatedAt,
	}
}

func toPost(p *model.Post) PostResp {
	return PostResp{
		ID:        p.ID,
		Group:     p.GroupID,
		Title:     p.Title,
		Content:   p.Content,
		Creator:   toCreator(p.Creator),
		CreatedAt: p.CreatedAt,
	}
}

func toGroups(list []model.Group) []GroupResp {
	out := make([]GroupResp, 0, len(list))
	for i := range list {
		out = append(out, toGroup(&list[i]))
	}
	return out
}

func toPosts(list []model.Post) []PostResp {
	out := make([]PostResp, 0, len(list))
	for i := range list {
		out = append(out, toPost(&list[i]))
	}
	return out
}
