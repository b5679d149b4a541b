/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package web

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"portal/internal/config"
	"portal/internal/handler"
	"portal/internal/hub"
	"portal/internal/logging"
	"portal/internal/middleware"
	"portal/internal/repository"
	"portal/internal/service"
	"portal/internal/view"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
)

type WebServer struct { // Manages the HTTP surface of the portal
	running atomic.Bool

	logger logging.Logger
	server *http.Server

	stopFromOutsideChan chan struct{}
	doneFromInsideChan  chan struct{}

	authService     service.AuthService
	documentService service.DocumentService
	taskService     service.TaskService
	fileService     service.FileService
	userRepository  repository.UserRepository
	dispatcher      *hub.Dispatcher
}

func NewWebServer() *WebServer {
	return &WebServer{
		running:             atomic.Bool{},
		stopFromOutsideChan: make(chan struct{}),
		doneFromInsideChan:  make(chan struct{}),
	}
}

func (ws *WebServer) IsReady() bool {
	return ws.logger != nil &&
		ws.authService != nil &&
		ws.documentService != nil &&
		ws.taskService != nil &&
		ws.fileService != nil &&
		ws.userRepository != nil &&
		ws.dispatcher != nil
}

func (ws *WebServer) IsRunning() bool {
	return ws.running.Load()
}

func (ws *WebServer) SetLogger(l logging.Logger) {
	ws.logger = l
}

func (ws *WebServer) SetAuthService(as service.AuthService) {
	ws.authService = as
}

func (ws *WebServer) SetDocumentService(ds service.DocumentService) {
	ws.documentService = ds
}

func (ws *WebServer) SetTaskService(ts service.TaskService) {
	ws.taskService = ts
}

func (ws *WebServer) SetFileService(fs service.FileService) {
	ws.fileService = fs
}

func (ws *WebServer) SetUserRepository(ur repository.UserRepository) {
	ws.userRepository = ur
}

func (ws *WebServer) SetDispatcher(d *hub.Dispatcher) {
	ws.dispatcher = d
}

func (ws *WebServer) Logf(format string, a ...any) {
	ws.logger.Logf(format, a...)
}

func (ws *WebServer) Run(ctx context.Context, cfg *config.AppConfig) error {
	ws.Logf("Web service started...")

	if !ws.IsReady() {
		return fmt.Errorf("The Web server is not ready... Missing components")
	}

	exePath, err := os.Executable()
	if err != nil {
		return err
	}
	exeDir := filepath.Dir(exePath)

	cookieStore := sessions.NewCookieStore([]byte(cfg.SecretKey))
	cookieStore.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(7 * 24 * time.Hour.Seconds()),
	}

	// Load templates and page renderer
	templates, err := view.RetrieveWebTemplates(filepath.Join(exeDir, cfg.TemplateDirectory))
	if err != nil {
		return err
	}
	renderer := view.NewPageRenderer(templates)

	// Handlers
	authHandler := handler.NewAuthHandler(ws.authService, cookieStore, renderer)
	pageHandler := handler.NewPageHandler(renderer)
	documentHandler := handler.NewDocumentHandler(ws.documentService)
	taskHandler := handler.NewTaskHandler(ws.taskService)
	fileHandler := handler.NewFileHandler(ws.fileService)
	adminHandler := handler.NewAdminHandler(ws.userRepository)
	collabHandler := handler.NewCollabHandler(ws.dispatcher, ws.logger)

	authed := func(next func(w http.ResponseWriter, r *http.Request)) func(w http.ResponseWriter, r *http.Request) {
		return middleware.AuthMiddleware(cookieStore, next)
	}

	// Router
	r := mux.NewRouter()

	// Authentication routes
	r.HandleFunc("/register", authHandler.Register).Methods("POST", "GET")
	r.HandleFunc("/login", authHandler.Login).Methods("POST", "GET")
	r.HandleFunc("/logout", authHandler.Logout).Methods("GET")

	// Portal page
	r.HandleFunc("/", authed(pageHandler.Portal)).Methods("GET")

	// Document routes
	r.HandleFunc("/documents", authed(documentHandler.CreateDocument)).Methods("POST")
	r.HandleFunc("/documents", authed(documentHandler.GetOwnDocuments)).Methods("GET")
	r.HandleFunc("/documents/{uuid}", authed(documentHandler.GetDocument)).Methods("GET")
	r.HandleFunc("/documents/{uuid}", authed(documentHandler.RenameDocument)).Methods("PUT")
	r.HandleFunc("/documents/{uuid}", authed(documentHandler.DeleteDocument)).Methods("DELETE")

	// Task routes
	r.HandleFunc("/tasks", authed(taskHandler.CreateTask)).Methods("POST")
	r.HandleFunc("/tasks", authed(taskHandler.GetOwnTasks)).Methods("GET")
	r.HandleFunc("/tasks/{uuid}/move", authed(taskHandler.MoveTask)).Methods("PUT")
	r.HandleFunc("/tasks/{uuid}", authed(taskHandler.DeleteTask)).Methods("DELETE")

	// File routes
	r.HandleFunc("/files", authed(fileHandler.UploadFile)).Methods("POST")
	r.HandleFunc("/files", authed(fileHandler.GetOwnFiles)).Methods("GET")
	r.HandleFunc("/files/{uuid}", authed(fileHandler.DownloadFile)).Methods("GET")

	// Admin routes
	r.HandleFunc("/admin/users", authed(middleware.AdminMiddleware(adminHandler.GetUsers))).Methods("GET")
	r.HandleFunc("/admin/users/{uuid}", authed(middleware.AdminMiddleware(adminHandler.DeleteUser))).Methods("DELETE")

	// Collaboration websocket
	r.HandleFunc("/ws", authed(collabHandler.Connect)).Methods("GET")

	ws.server = &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:        r,
		ReadTimeout:    time.Duration(cfg.ReadTimeout * int64(time.Second)),
		WriteTimeout:   time.Duration(cfg.WriteTimeout * int64(time.Second)),
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		select {
		case <-ctx.Done():
			ws.Logf("Received stop signal. Shutting down...")
		case <-ws.stopFromOutsideChan:
			ws.Logf("Server was asked to stop. Shutting down...")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := ws.server.Shutdown(shutdownCtx); err != nil {
			ws.Logf("Error during shutdown... %v\n", err)
		}
		close(ws.doneFromInsideChan)
	}()

	ws.running.Store(true)
	ws.Logf("Http server started on port {%d}", cfg.ServerPort)

	if err := ws.server.ListenAndServe(); err != http.ErrServerClosed {
		ws.Logf("FATAL: HTTP Server error{%v}\n", err)
		return err
	}

	return nil
}

func (ws *WebServer) Stop() {
	close(ws.stopFromOutsideChan)
	<-ws.doneFromInsideChan
	ws.running.Store(false)
}
