package httpapi

import (
	"context"
	"net/http"

	"localinfo/internal/adapters/httpapi/middleware"
	categoryPort "localinfo/internal/ports/category"
	commentPort "localinfo/internal/ports/comment"
	postPort "localinfo/internal/ports/post"
	userPort "localinfo/internal/ports/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserUseCase interface {
	LoginUser(ctx context.Context, email, password string) (*userPort.LoginResponse, error)
	RegisterUser(ctx context.Context, req userPort.RegisterRequest) (*userPort.UserResponse, error)
	FindUser(ctx context.Context, id uint) (*userPort.UserResponse, error)
	FindUsers(ctx context.Context) ([]*userPort.UserResponse, error)
	EditUser(ctx context.Context, id uint, req userPort.RegisterRequest) (*userPort.UserResponse, error)
	DeleteUser(ctx context.Context, id uint) error
}

type CategoryUseCase interface {
	Create(ctx context.Context, req categoryPort.CreateRequest) (*categoryPort.CategoryDTO, error)
	FindAll(ctx context.Context) ([]categoryPort.CategoryDTO, error)
}

type PostUseCase interface {
	CreatePost(ctx context.Context, req postPort.CreateRequest) (uint, error)
	FindDetailPost(ctx context.Context, id uint) (*postPort.PostResponse, error)
	FindAllByCategory(ctx context.Context, categoryID uint) ([]*postPort.PostResponse, error)
	UpdatePost(ctx context.Context, id uint, req postPort.UpdateRequest) (uint, error)
	DeletePost(ctx context.Context, id uint) (uint, error)
}

type CommentUseCase interface {
	Save(ctx context.Context, req commentPort.SaveRequest, postID uint) (*commentPort.CommentResponse, error)
	FindAllByPostID(ctx context.Context, postID uint) ([]*commentPort.CommentResponse, error)
	ChangeComment(ctx context.Context, req commentPort.ChangeRequest) (*commentPort.CommentResponse, error)
	DeleteComment(ctx context.Context, id uint) error
}

type UseCases struct {
	Users      UserUseCase
	Categories CategoryUseCase
	Posts      PostUseCase
	Comments   CommentUseCase
}

type Options struct {
	JWTSecret      []byte
	CORSOrigin     string
	RateLimitRPS   float64
	RateLimitBurst int
	MaxUploadBytes int64
	// UploadsDir is served under /uploads when set.
	UploadsDir string
	Logger     *zap.Logger
}

// SetupRoutes only wires routing; the use cases are injected from outside.
func SetupRoutes(uc UseCases, opts Options) *gin.Engine {
	registerValidatorTagNames()

	r := gin.New()
	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{opts.CORSOrigin},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Location"},
	}))
	if opts.UploadsDir != "" {
		r.Static("/uploads", opts.UploadsDir)
	}

	userCtl := NewUserController(uc.Users)
	categoryCtl := NewCategoryController(uc.Categories, uc.Posts)
	postCtl := NewPostController(uc.Posts, opts.MaxUploadBytes)
	commentCtl := NewCommentController(uc.Comments, opts.MaxUploadBytes)

	auth := middleware.JWTAuth(opts.JWTSecret)
	limit := middleware.RateLimit(middleware.NewIPRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst))

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Registration and login stay public.
	r.POST("/users", limit, userCtl.RegisterUser)
	r.POST("/login", limit, userCtl.LoginUser)
	r.GET("/users", userCtl.FindUsers)
	r.GET("/users/:id", userCtl.FindUser)
	r.PUT("/users/:id", limit, auth, userCtl.EditUser)
	r.DELETE("/users/:id", limit, auth, userCtl.DeleteUser)

	r.GET("/categories", categoryCtl.FindAll)
	r.POST("/categories", limit, auth, categoryCtl.Create)
	r.GET("/categories/:id/posts", categoryCtl.FindPosts)

	r.POST("/posts", limit, auth, postCtl.CreatePost)
	r.GET("/posts/:id", postCtl.FindDetailPost)
	r.PUT("/posts/:id", limit, auth, postCtl.UpdatePost)
	r.DELETE("/posts/:id", limit, auth, postCtl.DeletePost)

	r.POST("/posts/:id/comments", limit, auth, commentCtl.Save)
	r.GET("/posts/:id/comments", commentCtl.FindAllByPostID)
	r.PUT("/comments/:id", limit, auth, commentCtl.ChangeComment)
	r.DELETE("/comments/:id", limit, auth, commentCtl.DeleteComment)

	return r
}
