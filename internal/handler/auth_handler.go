package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"Lee_Groups/internal/apperr"
	"Lee_Groups/internal/service"
)

type AuthHandler struct {
	svc *service.AuthService
}

// LoginReq username 也可以填邮箱
type LoginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshReq struct {
	RefreshToken string `json:"refresh_token"`
	Refresh      string `json:"refresh"`
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login 登录接口
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginReq
	if !bind(c, &req) {
		return
	}

	pair, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

// Refresh 利用 refresh 来更新 access
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshReq
	if !bind(c, &req) {
		return
	}
	token := req.RefreshToken
	if token == "" {
		token = req.Refresh
	}
	if token == "" {
		writeError(c, apperr.Validation("refresh_token", apperr.CodeRequired))
		return
	}

	access, err := h.svc.Refresh(c.Request.Context(), token)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": access})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.svc.Logout(c.Request.Context(), identity(c)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}
