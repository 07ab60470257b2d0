package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"Lee_Groups/internal/apperr"
	"Lee_Groups/internal/service"
)

type GroupHandler struct {
	svc *service.GroupService
}

// GroupReq creator 字段即使传了也会被忽略
type GroupReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func NewGroupHandler(svc *service.GroupService) *GroupHandler {
	return &GroupHandler{svc: svc}
}

func (r GroupReq) input() service.GroupInput {
	return service.GroupInput{Name: r.Name, Description: r.Description}
}

func (h *GroupHandler) Create(c *gin.Context) {
	var req GroupReq
	if !requireAuth(c) || !bind(c, &req) {
		return
	}
	g, err := h.svc.Create(c.Request.Context(), identity(c), req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toGroup(g))
}

// List 按创建时间倒序
func (h *GroupHandler) List(c *gin.Context) {
	page, size := pageQuery(c)
	list, err := h.svc.List(c.Request.Context(), identity(c), page, size)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toGroups(list))
}

func (h *GroupHandler) Get(c *gin.Context) {
	id, ok := pathID(c, apperr.CodeGroupNotFound)
	if !ok {
		return
	}
	g, err := h.svc.Get(c.Request.Context(), identity(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toGroup(g))
}

func (h *GroupHandler) Update(c *gin.Context) {
	id, ok := pathID(c, apperr.CodeGroupNotFound)
	if !ok {
		return
	}
	var req GroupReq
	if !requireAuth(c) || !bind(c, &req) {
		return
	}
	g, err := h.svc.Update(c.Request.Context(), identity(c), id, req.input(), partial(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toGroup(g))
}

func (h *GroupHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, apperr.CodeGroupNotFound)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), identity(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
