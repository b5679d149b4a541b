/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"portal/internal/config"
	"portal/internal/entity"
	"portal/internal/hub"
	"portal/internal/logging"
	"portal/internal/repository"
	"portal/internal/service"
	"portal/internal/web"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load("portal.cfg")
	if err != nil {
		fmt.Printf("Could not load the configuration (%v), using defaults\n", err)
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appLogger, err := logging.NewAppLogger(cfg.LogDirectory, cfg.EnableLogging)
	if err != nil {
		fmt.Printf("Could not start the logger: %v\n", err)
		os.Exit(1)
	}
	go appLogger.Run(ctx)
	defer appLogger.CloseAll()

	webLog, _ := appLogger.RegisterSubsystem("web")
	hubLog, _ := appLogger.RegisterSubsystem("hub")
	svcLog, _ := appLogger.RegisterSubsystem("service")

	db, err := gorm.Open(sqlite.Open(cfg.DBName), &gorm.Config{})
	if err != nil {
		fmt.Printf("Could not open the database: %v\n", err)
		os.Exit(1)
	}
	if err := db.AutoMigrate(
		&entity.User{},
		&entity.UserSecret{},
		&entity.Document{},
		&entity.ChatMessage{},
		&entity.Task{},
		&entity.StoredFile{},
	); err != nil {
		fmt.Printf("Could not migrate the database: %v\n", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := repository.NewSQLiteUserRepository(db)
	documentRepo := repository.NewSQLiteDocumentRepository(db)
	messageRepo := repository.NewSQLiteMessageRepository(db)
	taskRepo := repository.NewSQLiteTaskRepository(db)
	fileRepo := repository.NewSQLiteFileRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, svcLog)
	documentService := service.NewDocumentService(documentRepo, svcLog)
	taskService := service.NewTaskService(taskRepo, svcLog)
	fileService, err := service.NewFileService(fileRepo, cfg.UploadDirectory, svcLog)
	if err != nil {
		fmt.Printf("Could not prepare the upload directory: %v\n", err)
		os.Exit(1)
	}
	collabStore := service.NewCollabStore(messageRepo, documentRepo, svcLog)

	// Collaboration hub
	opts := hub.Options{
		HistoryLimit:  cfg.HistoryLimit,
		SendQueueSize: cfg.SendQueueSize,
		MaxViolations: cfg.MaxViolations,
	}
	router := hub.NewRouter(hubLog)
	rooms := hub.NewRoomManager(collabStore, router, cfg.HistoryLimit, hubLog)
	router.SetMemberSource(rooms)
	registry := hub.NewRegistry(hubLog)
	dispatcher := hub.NewDispatcher(registry, rooms, router, collabStore, opts, hubLog)

	// Web server
	server := web.NewWebServer()
	server.SetLogger(webLog)
	server.SetAuthService(authService)
	server.SetDocumentService(documentService)
	server.SetTaskService(taskService)
	server.SetFileService(fileService)
	server.SetUserRepository(userRepo)
	server.SetDispatcher(dispatcher)

	if err := server.Run(ctx, cfg); err != nil {
		fmt.Printf("Server error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Shutting off...\n")
}
