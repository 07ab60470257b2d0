package handler

import (
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"Lee_Groups/internal/apperr"
	"Lee_Groups/internal/middleware"
	"Lee_Groups/internal/policy"
)

func init() {
	// 字段错误用 json 名返回
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// writeError 业务错误按类型映射状态码，其它错误只记日志返回 500
func writeError(c *gin.Context, err error) {
	if e := apperr.As(err); e != nil {
		body := gin.H{"msg": e.Code}
		if len(e.Fields) > 0 {
			body["errors"] = e.Fields
		}
		c.JSON(e.Kind.Status(), body)
		return
	}
	middleware.LoggerFrom(c).ErrorContext(c.Request.Context(), "request failed", "path", c.FullPath(), "err", err)
	c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal_error"})
}

// bindError 把 gin 绑定错误转成字段错误
func bindError(err error) error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		e := &apperr.Error{Kind: apperr.KindValidation, Code: apperr.CodeInvalid}
		for _, fe := range ve {
			e.Add(fe.Field(), tagCode(fe.Tag()))
		}
		return e
	}
	return apperr.Validation("", "invalid_params")
}

func tagCode(tag string) string {
	switch tag {
	case "required":
		return apperr.CodeRequired
	case "max":
		return apperr.CodeTooLong
	default:
		return tag
	}
}

// requireAuth 写接口先确认登录，再解析请求体
func requireAuth(c *gin.Context) bool {
	if !identity(c).Authenticated() {
		writeError(c, apperr.Authentication(apperr.CodeNotAuthenticated))
		return false
	}
	return true
}

func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		writeError(c, bindError(err))
		return false
	}
	return true
}

// pathID 非法 id 当作不存在处理
func pathID(c *gin.Context, notFound string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		writeError(c, apperr.NotFound(notFound))
		return 0, false
	}
	return id, true
}

// queryID 可选的数字查询参数，缺省为 0
func queryID(c *gin.Context, key string) (uint64, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		writeError(c, apperr.Validation(key, apperr.CodeInvalid))
		return 0, false
	}
	return id, true
}

func pageQuery(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("size"))
	return page, size
}

func identity(c *gin.Context) policy.Identity {
	return middleware.IdentityFrom(c)
}

// partial PATCH 为部分更新
func partial(c *gin.Context) bool {
	return c.Request.Method == http.MethodPatch
}
