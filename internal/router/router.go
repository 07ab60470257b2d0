package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"Lee_Groups/internal/handler"
	"Lee_Groups/internal/middleware"
	"Lee_Groups/internal/service"
)

// Services 路由依赖的业务层
type Services struct {
	Users  *service.UserService
	Auth   *service.AuthService
	Groups *service.GroupService
	Posts  *service.PostService
	Checks map[string]handler.Check
}

func InitRouter(svc Services, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(logger), middleware.Recovery())

	user := handler.NewUserHandler(svc.Users)
	auth := handler.NewAuthHandler(svc.Auth)
	group := handler.NewGroupHandler(svc.Groups)
	post := handler.NewPostHandler(svc.Posts)
	health := handler.NewHealthHandler(svc.Checks)

	r.GET("/healthz", health.Healthz)

	// 其余接口都可以带 token，是否必须登录由 policy 判定
	api := r.Group("/")
	api.Use(middleware.Authenticate(svc.Auth))

	// 登录 / token 相关接口
	api.POST("/login/", auth.Login)
	api.POST("/logout/", auth.Logout)
	api.POST("/token/refresh/", auth.Refresh)

	// 用户相关接口
	userGroup := api.Group("/users")
	{
		userGroup.POST("/", user.Register)
		userGroup.GET("/", user.Me)
		userGroup.POST("/change-password/", user.ChangePassword)
		userGroup.GET("/:id/", user.Get)
		userGroup.PUT("/:id/", user.Update)
		userGroup.PATCH("/:id/", user.Update)
		userGroup.DELETE("/:id/", user.Delete)
	}

	// 小组相关接口
	groupGroup := api.Group("/groups")
	{
		groupGroup.GET("/", group.List)
		groupGroup.POST("/", group.Create)
		groupGroup.GET("/:id/", group.Get)
		groupGroup.PUT("/:id/", group.Update)
		groupGroup.PATCH("/:id/", group.Update)
		groupGroup.DELETE("/:id/", group.Delete)
	}

	// 帖子相关接口
	postGroup := api.Group("/posts")
	{
		postGroup.GET("/", post.ListPosts)
		postGroup.POST("/", post.CreatePost)
		postGroup.GET("/:id/", post.GetPost)
		postGroup.PUT("/:id/", post.UpdatePost)
		postGroup.PATCH("/:id/", post.UpdatePost)
		postGroup.DELETE("/:id/", post.DeletePost)
	}

	return r
}
