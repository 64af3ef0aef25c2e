package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"miniblog/cmd/app"
	"miniblog/internal/config"
	handlers "miniblog/internal/handler"
	"miniblog/internal/middleware"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("APP_ENV") == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal().Msg("JWT_SECRET_KEY не установлен в .env файле")
	}

	db, repo, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(repo, services, cfg)

	authOnly := middleware.RequireAuth(cfg)

	// setting up routes
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(handlers.NotFoundHandler)

	router.HandleFunc("/", handler.Index).Methods(http.MethodGet)
	router.HandleFunc("/health", handlers.HealthHandler).Methods(http.MethodGet)
	router.HandleFunc("/stats", handler.Stats).Methods(http.MethodGet)

	router.HandleFunc("/auth/signup/", handler.Signup).Methods(http.MethodPost)
	router.HandleFunc("/auth/login/", handler.Login).Methods(http.MethodPost)
	router.HandleFunc("/auth/refresh-token/", handler.RefreshToken).Methods(http.MethodPost)
	router.HandleFunc("/auth/logout/", handler.Logout).Methods(http.MethodPost)
	router.Handle("/auth/me/", authOnly(http.HandlerFunc(handler.Me))).Methods(http.MethodGet)

	router.HandleFunc("/group/{slug}/", handler.GroupPosts).Methods(http.MethodGet)

	router.Handle("/create/", authOnly(http.HandlerFunc(handler.CreatePost))).Methods(http.MethodGet, http.MethodPost)
	router.Handle("/posts/{id}/edit/", authOnly(http.HandlerFunc(handler.EditPost))).Methods(http.MethodGet, http.MethodPost)
	router.Handle("/posts/{id}/comment/", authOnly(http.HandlerFunc(handler.AddComment))).Methods(http.MethodPost)
	router.HandleFunc("/posts/{id}/", handler.PostDetail).Methods(http.MethodGet)

	router.Handle("/profile/{username}/follow/", authOnly(http.HandlerFunc(handler.Follow))).Methods(http.MethodGet)
	router.Handle("/profile/{username}/unfollow/", authOnly(http.HandlerFunc(handler.Unfollow))).Methods(http.MethodGet)
	router.HandleFunc("/profile/{username}/", handler.Profile).Methods(http.MethodGet)

	router.Handle("/follow/", authOnly(http.HandlerFunc(handler.Feed))).Methods(http.MethodGet)

	handlerChain := middleware.Chain(
		router,
		middleware.WithUser(services.Auth),
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware,
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	log.Info().Str("addr", addr).Str("db", cfg.DB.DbNAME).Msg("Сервер запущен")

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatal().Err(err).Msg("Ошибка запуска сервера")
	}
}
