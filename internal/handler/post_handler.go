package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"Lee_Groups/internal/apperr"
	"Lee_Groups/internal/repository"
	"Lee_Groups/internal/service"
)

type PostHandler struct {
	svc *service.PostService
}

// PostReq 作者取自登录身份
type PostReq struct {
	Group   *uint64 `json:"group"`
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func NewPostHandler(svc *service.PostService) *PostHandler {
	return &PostHandler{svc: svc}
}

func (r PostReq) input() service.PostInput {
	return service.PostInput{GroupID: r.Group, Title: r.Title, Content: r.Content}
}

// CreatePost 只能发到自己创建的小组
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req PostReq
	if !requireAuth(c) || !bind(c, &req) {
		return
	}
	post, err := h.svc.Create(c.Request.Context(), identity(c), req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPost(post))
}

// ListPosts 支持 ?group= ?creator= ?page= ?size=
func (h *PostHandler) ListPosts(c *gin.Context) {
	groupID, ok := queryID(c, "group")
	if !ok {
		return
	}
	creatorID, ok := queryID(c, "creator")
	if !ok {
		return
	}
	page, size := pageQuery(c)

	list, err := h.svc.List(c.Request.Context(), identity(c), repository.PostFilter{GroupID: groupID, CreatorID: creatorID}, page, size)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPosts(list))
}

func (h *PostHandler) GetPost(c *gin.Context) {
	id, ok := pathID(c, apperr.CodePostNotFound)
	if !ok {
		return
	}
	post, err := h.svc.Get(c.Request.Context(), identity(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPost(post))
}

func (h *PostHandler) UpdatePost(c *gin.Context) {
	id, ok := pathID(c, apperr.CodePostNotFound)
	if !ok {
		return
	}
	var req PostReq
	if !requireAuth(c) || !bind(c, &req) {
		return
	}
	post, err := h.svc.Update(c.Request.Context(), identity(c), id, req.input(), partial(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPost(post))
}

// DeletePost 仅作者本人
func (h *PostHandler) DeletePost(c *gin.Context) {
	id, ok := pathID(c, apperr.CodePostNotFound)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), identity(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
