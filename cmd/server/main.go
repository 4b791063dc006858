package main

import (
	"log"
	"strings"

	"anoa.com/communityhub/internal/config"
	"anoa.com/communityhub/internal/handler"
	"anoa.com/communityhub/internal/middleware"
	"anoa.com/communityhub/internal/model"
	"anoa.com/communityhub/internal/repository"
	"anoa.com/communityhub/internal/service"
	"anoa.com/communityhub/pkg/database"
	"anoa.com/communityhub/pkg/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db := database.Connect(cfg.DatabaseURL)
	if err := migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if cfg.AppEnv == "development" {
		if err := seedAdminUser(db); err != nil {
			log.Fatalf("failed to seed admin user: %v", err)
		}
	}

	imageStorage, err := newImageStorage(cfg)
	if err != nil {
		log.Fatalf("failed to initialize image storage: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	authHandler := handler.NewAuthHandler(authService)

	profileService := service.NewProfileService(userRepo, postRepo, followRepo, imageStorage)
	profileHandler := handler.NewProfileHandler(profileService)

	followService := service.NewFollowService(db, followRepo, userRepo)
	followHandler := handler.NewFollowHandler(followService, userRepo)

	postService := service.NewPostService(db, postRepo, commentRepo, likeRepo, followRepo, userRepo, imageStorage)
	postHandler := handler.NewPostHandler(postService)

	likeService := service.NewLikeService(db, likeRepo, postRepo, userRepo)
	likeHandler := handler.NewLikeHandler(likeService)

	notificationService := service.NewNotificationService(db)
	notificationHandler := handler.NewNotificationHandler(notificationService)

	dashboardService := service.NewDashboardService(userRepo, postRepo, commentRepo)
	adminService := service.NewAdminService(userRepo)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, adminService)

	router := gin.Default()
	router.MaxMultipartMemory = cfg.MaxUploadMB << 20

	router.Use(middleware.MaxBodySize(cfg.MaxUploadMB << 20))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.AllowedOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	if cfg.StorageDriver == "local" {
		router.Static("/uploads", cfg.UploadDir)
	}

	authMiddleware := middleware.NewAuthMiddleware(userRepo, cfg.JWTSecret)

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)

		// Public reads resolve the viewer when a token is present.
		public := api.Group("")
		public.Use(authMiddleware.OptionalAuth())
		{
			public.GET("/posts", postHandler.Feed)
			public.GET("/posts/:id", postHandler.GetPost)
			public.GET("/search", postHandler.Search)
			public.GET("/users/:username", profileHandler.GetByUsername)
		}

		protected := api.Group("")
		protected.Use(authMiddleware.RequireAuth())
		{
			protected.POST("/posts", postHandler.CreatePost)
			protected.PUT("/posts/:id", postHandler.UpdatePost)
			protected.DELETE("/posts/:id", postHandler.DeletePost)
			protected.POST("/posts/:id/comments", postHandler.AddComment)
			protected.POST("/posts/:id/like", likeHandler.Like)
			protected.DELETE("/posts/:id/like", likeHandler.Unlike)

			protected.POST("/users/:username/follow", followHandler.Follow)
			protected.DELETE("/users/:username/follow", followHandler.Unfollow)

			protected.PUT("/profile", profileHandler.UpdateProfile)

			protected.GET("/notifications", notificationHandler.List)
			protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
			protected.POST("/notifications/read-all", notificationHandler.MarkAllAsRead)

			admin := protected.Group("/admin")
			admin.Use(authMiddleware.RequireAdmin())
			{
				admin.GET("/dashboard", dashboardHandler.Dashboard)
				admin.DELETE("/users/:id", dashboardHandler.DeleteUser)
			}
		}
	}

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Follow{},
		&model.Post{},
		&model.Comment{},
		&model.PostLike{},
		&model.Notification{},
	)
}

func newImageStorage(cfg *config.Config) (storage.ImageStorage, error) {
	if cfg.StorageDriver == "cloudinary" {
		return storage.NewCloudinaryStorage()
	}
	return storage.NewLocalStorage(cfg.UploadDir)
}

func seedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).
		Where("username = ?", "admin").
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin user already exists, skipping seed")
		return nil
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	adminUser := model.User{
		Username:     "admin",
		Email:        "admin@example.com",
		PasswordHash: string(hashedPasswordBytes),
		IsAdmin:      true,
	}

	if err := db.Create(&adminUser).Error; err != nil {
		return err
	}

	log.Println("Admin user seeded (admin / admin123)")
	return nil
}
