package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"Lee_Groups/internal/apperr"
	"Lee_Groups/internal/service"
)

type UserHandler struct {
	svc *service.UserService
}

// RegisterReq 注册请求体，password2 兼容旧客户端
// 不加 binding 约束，保证两次密码不一致最先报出
type RegisterReq struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Password2       string `json:"password2"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
}

type UpdateUserReq struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

type ChangePasswordReq struct {
	OldPassword     string `json:"old_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Register 注册接口
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterReq
	if !bind(c, &req) {
		return
	}
	confirm := req.ConfirmPassword
	if confirm == "" {
		confirm = req.Password2
	}

	user, err := h.svc.Register(c.Request.Context(), service.RegisterInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: confirm,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toUser(user))
}

// Me 只返回调用者自己
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.svc.GetSelf(c.Request.Context(), identity(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUser(user))
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c, apperr.CodeUserNotFound)
	if !ok {
		return
	}
	user, err := h.svc.Get(c.Request.Context(), identity(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUser(user))
}

// Update PUT 全量，PATCH 部分
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c, apperr.CodeUserNotFound)
	if !ok {
		return
	}
	var req UpdateUserReq
	if !requireAuth(c) || !bind(c, &req) {
		return
	}

	user, err := h.svc.Update(c.Request.Context(), identity(c), id, service.UpdateUserInput{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}, partial(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUser(user))
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, apperr.CodeUserNotFound)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), identity(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordReq
	if !requireAuth(c) || !bind(c, &req) {
		return
	}

	err := h.svc.ChangePassword(c.Request.Context(), identity(c), service.ChangePasswordInput{
		OldPassword:     req.OldPassword,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}
