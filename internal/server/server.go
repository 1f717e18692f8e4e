package server

import (
	"fmt"
	"strings"
	"time"

	"anoa.com/schoolboard/internal/config"
	"anoa.com/schoolboard/internal/handler"
	"anoa.com/schoolboard/internal/middleware"
	"anoa.com/schoolboard/internal/model"
	"anoa.com/schoolboard/internal/repository"
	"anoa.com/schoolboard/internal/service"
	"anoa.com/schoolboard/pkg/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Server struct {
	engine *gin.Engine
	db     *gorm.DB
}

func New(cfg *config.Config, db *gorm.DB) (*Server, error) {
	fileStorage, err := newFileStorage(cfg)
	if err != nil {
		return nil, err
	}

	userRepo := repository.NewUserRepository(db)
	articleRepo := repository.NewArticleRepository(db)

	hasher := service.NewBcryptHasher()
	factory := service.NewProfileFactory(userRepo)

	authService := service.NewAuthService(userRepo, hasher, cfg.JWTSecret, cfg.JWTTTL)
	authHandler := handler.NewAuthHandler(authService)

	userService := service.NewUserService(userRepo, factory, hasher)
	userHandler := handler.NewUserHandler(userService)

	articleService := service.NewArticleService(articleRepo, fileStorage)
	articleHandler := handler.NewArticleHandler(articleService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	setupCORS(router, cfg.AllowedOrigins)

	if cfg.StorageDriver == "local" {
		router.Static("/storage", cfg.MediaRoot)
	}

	identity := middleware.NewHeaderIdentity(userRepo, cfg.JWTSecret)
	authMiddleware := middleware.NewAuthMiddleware(identity)

	api := router.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/admin/login", authHandler.StaffLogin)
	}
	api.POST("/users", userHandler.Register)

	// Protected routes
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		admin := protected.Group("/admin")
		admin.Use(authMiddleware.RequireRoles(model.RoleAdmin))
		{
			admin.GET("/users", userHandler.GetAllUsers)
			admin.DELETE("/users/:id", userHandler.DeleteUser)
			admin.GET("/articles", articleHandler.GetAllArticles)
			admin.DELETE("/articles/:id", articleHandler.DeleteArticle)
		}

		users := protected.Group("/users")
		{
			users.GET("/profile", userHandler.GetOwnProfile)
			users.GET("/students", authMiddleware.RequireRoles(model.RoleTeacher), userHandler.GetOwnStudents)
		}

		articles := protected.Group("/articles")
		{
			authorRoles := authMiddleware.RequireRoles(model.RoleTeacher, model.RoleStudent)
			articles.POST("", authorRoles, articleHandler.CreateArticle)
			articles.GET("/own", authorRoles, articleHandler.GetOwnArticles)
			articles.GET("/own/:id", authorRoles, articleHandler.GetOwnArticle)
			articles.DELETE("/own/:id", authorRoles, articleHandler.DeleteOwnArticle)

			teacherOnly := authMiddleware.RequireRoles(model.RoleTeacher)
			articles.GET("/students", teacherOnly, articleHandler.GetStudentArticles)
			articles.GET("/students/:id", teacherOnly, articleHandler.GetStudentArticle)
		}
	}

	return &Server{engine: router, db: db}, nil
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

// Engine exposes the underlying router, mainly for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func newFileStorage(cfg *config.Config) (storage.FileStorage, error) {
	switch cfg.StorageDriver {
	case "cloudinary":
		return storage.NewCloudinaryStorage(cfg.CloudinaryUploadFolder)
	case "local":
		return storage.NewLocalStorage(cfg.MediaRoot)
	}
	return nil, fmt.Errorf("unknown storage driver: %s", cfg.StorageDriver)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "User-Id"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
