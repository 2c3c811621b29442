package main

import (
	"context"
	_ "intranet-portal/docs"
	"intranet-portal/config"
	"intranet-portal/internal/handler"
	"intranet-portal/internal/notifier"
	"intranet-portal/internal/repository"
	"intranet-portal/internal/security"
	"intranet-portal/internal/service"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Intranet-portal
// @version 1.0
// @description REST API корпоративного интранет-портала: лента, календарь, диск, проекты

// @host localhost:8080

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := godotenv.Load(); err != nil {
		log.Println("файл .env не найден, используется только config.yaml")
	}

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка при закрытии БД: %v", err)
		}
	}()

	redisClient, err := config.SetupRedis(&cfg.RedisConfig)
	if err != nil {
		log.Fatalf("Ошибка подключения к Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Ошибка при закрытии Redis: %v", err)
		}
	}()

	srv, router := config.SetupServer(cfg.ServerAddr)

	userRepo := repository.NewUserRepository(db)
	jwtRepo := repository.NewJWTRepository(db)
	postRepo := repository.NewPostRepository(db)
	eventRepo := repository.NewEventRepository(db)
	folderRepo := repository.NewFolderRepository(db)
	fileRepo := repository.NewFileRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	personalRepo := repository.NewPersonalRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, time.Duration(cfg.TTL.HolidayCache)*time.Second)

	s3Service, err := service.NewS3Service(ctx, &cfg.S3Config)
	if err != nil {
		log.Fatalf("Ошибка создания S3 сервиса: %v", err)
	}

	webhookNotifier := notifier.NewWebhookNotifier(&cfg.Webhook)
	jwtService := security.NewJWTService(&cfg.JWT)
	presignTTL := time.Duration(cfg.TTL.S3AndRedis) * time.Second

	userService := service.NewUserService(userRepo, jwtService, jwtRepo, s3Service, db, &cfg.Admin, presignTTL)
	authService := service.NewAuthenticationService(jwtRepo, cfg, db, jwtService, userRepo, webhookNotifier)
	postService := service.NewPostService(postRepo, userRepo, s3Service, db, presignTTL)
	feedService := service.NewFeedService(postRepo, eventRepo, db)
	eventService := service.NewEventService(eventRepo, userRepo, webhookNotifier, db)
	driveService := service.NewDriveService(folderRepo, fileRepo, userRepo, webhookNotifier, s3Service, db, presignTTL)
	projectService := service.NewProjectService(projectRepo, userRepo, webhookNotifier, db)
	taskService := service.NewTaskService(taskRepo, projectRepo, webhookNotifier, db)
	personalService := service.NewPersonalService(personalRepo, db)
	adminService := service.NewAdminService(settingsRepo, cacheRepo, s3Service, db, &cfg.LDAP, presignTTL)
	holidayService := service.NewHolidayService(cacheRepo, &cfg.Holiday)

	authHandler := handler.NewAuthenticationHandler(authService, jwtService, jwtRepo)
	userHandler := handler.NewUserHandler(userService)
	postHandler := handler.NewPostHandler(postService, feedService)
	eventHandler := handler.NewEventHandler(eventService)
	driveHandler := handler.NewDriveHandler(driveService)
	projectHandler := handler.NewProjectHandler(projectService)
	taskHandler := handler.NewTaskHandler(taskService)
	personalHandler := handler.NewPersonalHandler(personalService)
	adminHandler := handler.NewAdminHandler(adminService, holidayService)

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	authMiddleware := security.JWTMiddleware([]byte(cfg.JWT.SecretKey), jwtRepo, jwtService, cfg.Admin.AdminToken)

	router.Route("/api/auth", func(r chi.Router) {
		r.Post("/", authHandler.Login)
		r.Post("/refresh", authHandler.RefreshToken)
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/logout", authHandler.Logout)
		})
	})

	router.Route("/api", func(r chi.Router) {
		r.Post("/register", userHandler.RegisterUser)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)

			r.Get("/users", userHandler.ListUsers)
			r.Route("/users/{uuid}", func(r chi.Router) {
				r.Get("/", userHandler.GetUser)
				r.Put("/", userHandler.UpdateProfile)
				r.Put("/password", userHandler.UpdatePassword)
				r.Put("/avatar", userHandler.UploadAvatar)
				r.Delete("/", userHandler.DeleteUser)
			})

			r.Get("/feed", postHandler.GetFeed)
			r.Route("/posts", func(r chi.Router) {
				r.Post("/", postHandler.CreatePost)
				r.Delete("/comments/{commentUUID}", postHandler.DeleteComment)
				r.Route("/{uuid}", func(r chi.Router) {
					r.Get("/", postHandler.GetPost)
					r.Delete("/", postHandler.DeletePost)
					r.Put("/like", postHandler.LikePost)
					r.Delete("/like", postHandler.UnlikePost)
					r.Post("/comments", postHandler.AddComment)
					r.Get("/comments", postHandler.ListComments)
				})
			})

			r.Route("/events", func(r chi.Router) {
				r.Post("/", eventHandler.CreateEvent)
				r.Get("/", eventHandler.ListEvents)
				r.Route("/{uuid}", func(r chi.Router) {
					r.Get("/", eventHandler.GetEvent)
					r.Put("/", eventHandler.UpdateEvent)
					r.Delete("/", eventHandler.DeleteEvent)
				})
			})

			r.Route("/drive", func(r chi.Router) {
				r.Get("/", driveHandler.ListDrive)
				r.Post("/folders", driveHandler.CreateFolder)
				r.Route("/folders/{uuid}", func(r chi.Router) {
					r.Get("/", driveHandler.GetFolder)
					r.Put("/", driveHandler.RenameFolder)
					r.Delete("/", driveHandler.DeleteFolder)
					r.Post("/share", driveHandler.ShareFolder)
					r.Delete("/share", driveHandler.RemoveFolderShare)
				})
				r.Post("/files", driveHandler.UploadFile)
				r.Get("/files/{uuid}", driveHandler.GetFile)
				r.Delete("/files/{uuid}", driveHandler.DeleteFile)
			})

			r.Route("/projects", func(r chi.Router) {
				r.Post("/", projectHandler.CreateProject)
				r.Get("/", projectHandler.ListProjects)
				r.Route("/{uuid}", func(r chi.Router) {
					r.Get("/", projectHandler.GetProject)
					r.Put("/", projectHandler.UpdateProject)
					r.Delete("/", projectHandler.DeleteProject)
					r.Post("/members", projectHandler.AddMember)
					r.Delete("/members/{userUUID}", projectHandler.RemoveMember)
				})
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Post("/", taskHandler.CreateTask)
				r.Get("/", taskHandler.ListTasks)
				r.Route("/{uuid}", func(r chi.Router) {
					r.Get("/", taskHandler.GetTask)
					r.Put("/", taskHandler.UpdateTask)
					r.Put("/status", taskHandler.UpdateTaskStatus)
					r.Put("/reorder", taskHandler.ReorderTask)
					r.Delete("/", taskHandler.DeleteTask)
					r.Post("/comments", taskHandler.AddTaskComment)
					r.Get("/comments", taskHandler.ListTaskComments)
				})
			})

			r.Route("/shortcuts", func(r chi.Router) {
				r.Post("/", personalHandler.CreateShortcut)
				r.Get("/", personalHandler.ListShortcuts)
				r.Put("/{uuid}", personalHandler.UpdateShortcut)
				r.Delete("/{uuid}", personalHandler.DeleteShortcut)
			})
			r.Post("/system-shortcuts", personalHandler.CreateSystemShortcut)
			r.Get("/system-shortcuts", personalHandler.ListSystemShortcuts)

			r.Route("/todos", func(r chi.Router) {
				r.Post("/", personalHandler.CreateTodo)
				r.Get("/", personalHandler.ListTodos)
				r.Put("/{uuid}", personalHandler.UpdateTodo)
				r.Delete("/{uuid}", personalHandler.DeleteTodo)
			})

			r.Route("/notes", func(r chi.Router) {
				r.Post("/", personalHandler.CreateNote)
				r.Get("/", personalHandler.ListNotes)
				r.Put("/{uuid}", personalHandler.UpdateNote)
				r.Delete("/{uuid}", personalHandler.DeleteNote)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Route("/settings/{key}", func(r chi.Router) {
					r.Get("/", adminHandler.GetSetting)
					r.Put("/", adminHandler.SetSetting)
					r.Put("/field", adminHandler.SetSettingField)
					r.Post("/file", adminHandler.UploadSettingFile)
				})
				r.Post("/ldap-test", adminHandler.TestLDAP)
			})

			r.Get("/holidays", adminHandler.ListHolidays)
		})
	})

	runServer(ctx, srv)
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		log.Println("сервер запущен на " + server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			log.Fatalf("ошибка работы сервера: %v", err)
		}
	case sig := <-signalChannel:
		log.Printf("получен сигнал %v остановки работы сервера ", sig)
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		log.Printf("ошибка при остановке сервера: %v", err)
	} else {
		log.Println("Сервер успешно остановлен")
	}
}
