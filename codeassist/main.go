package main

import (
	"codeassist/codeassist/config"
	"codeassist/codeassist/controllers"
	"codeassist/codeassist/routes"
	"codeassist/codeassist/services/agent"
	"codeassist/codeassist/services/llm"
	"codeassist/codeassist/sources/psql"
	"codeassist/codeassist/sources/psql/dao"
	"codeassist/codeassist/sources/storage"
	"codeassist/codeassist/utils/logging"
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func main() {
	logging.InitLogger()
	cfg := config.LoadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := psql.NewDatabase(ctx, cfg)
	if err != nil {
		logging.ErrorLogger.Error("database connection error", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	store, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		logging.ErrorLogger.Error("upload dir error", zap.Error(err))
		os.Exit(1)
	}

	userDAO := dao.NewUserDAO(db.DB)
	sessionDAO := dao.NewSessionDAO(db.DB)
	messageDAO := dao.NewMessageDAO(db.DB)
	fileDAO := dao.NewSessionFileDAO(db.DB)

	assistant := agent.NewCodeAssistAgent(llm.NewOllamaClient(cfg.OllamaBaseURL), cfg.OllamaModel)

	authCtrl := controllers.NewAuthController(userDAO)
	sessionCtrl := controllers.NewSessionController(sessionDAO, messageDAO, store)
	fileCtrl := controllers.NewFileController(sessionDAO, fileDAO, store)
	chatCtrl := controllers.NewChatController(userDAO, sessionDAO, messageDAO, fileDAO, store, assistant)
	healthCtrl := controllers.NewHealthController(cfg.OllamaModel)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Group(func(gr chi.Router) {
		// The chat relay stays outside this group: a streaming response must
		// not be cut off by the request timeout.
		gr.Use(middleware.Timeout(60 * time.Second))
		gr.Mount("/auth", routes.AuthRoutes(authCtrl))
		gr.Mount("/sessions", routes.SessionRoutes(sessionCtrl, fileCtrl, userDAO))
		gr.Mount("/health", routes.HealthRoutes(healthCtrl))
	})
	r.Mount("/chat", routes.ChatRoutes(chatCtrl))

	if fh := routes.FrontendHandler(cfg.FrontendDir); fh != nil {
		r.Handle("/app/*", http.StripPrefix("/app/", fh))
	}

	srv := &http.Server{
		Addr:    net.JoinHostPort(cfg.Host, cfg.Port),
		Handler: r,
	}
	go func() {
		logging.AppLogger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.ErrorLogger.Error("server listen error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLogger.Error("server shutdown error", zap.Error(err))
	}
	logging.AppLogger.Info("server shutdown complete")
}
