package server

import (
	"log/slog"
	"net/http"

	"freelancer-server/internal/auth"
	authHandlers "freelancer-server/internal/auth/handlers"
	"freelancer-server/internal/middleware"
	"freelancer-server/internal/save"
	saveHandlers "freelancer-server/internal/save/handlers"
	serverHandlers "freelancer-server/internal/server/handlers"
	"freelancer-server/internal/shared/config"
	"freelancer-server/internal/shared/database"
	"freelancer-server/internal/universe"
	universeHandlers "freelancer-server/internal/universe/handlers"
	"freelancer-server/internal/user"
	userHandlers "freelancer-server/internal/user/handlers"
)

type Routes struct {
	db              *database.DB
	authService     *auth.Service
	saveService     *save.Service
	universeService *universe.Service
	userRepo        *user.Repository
	revocation      *auth.RevocationStore
	logger          *slog.Logger
}

func NewRoutes(
	db *database.DB,
	authService *auth.Service,
	saveService *save.Service,
	universeService *universe.Service,
	userRepo *user.Repository,
	revocation *auth.RevocationStore,
	logger *slog.Logger,
) *Routes {
	return &Routes{
		db:              db,
		authService:     authService,
		saveService:     saveService,
		universeService: universeService,
		userRepo:        userRepo,
		revocation:      revocation,
		logger:          logger,
	}
}

func (r *Routes) Setup() *http.ServeMux {
	logger := slog.With("component", "routes", "operation", "setup")
	logger.Debug("Setting up application routes")

	mux := http.NewServeMux()

	healthHandler := serverHandlers.NewHealthHandler(r.db)
	authHandler := authHandlers.NewAuthHandler(r.authService, r.revocation, config.GlobalConfig.Game)
	usersHandler := userHandlers.NewUsersHandler(r.userRepo)
	savesHandler := saveHandlers.NewSavesHandler(r.saveService)

	systemsHandler := universeHandlers.NewSystemsHandler(r.universeService)
	stationsHandler := universeHandlers.NewStationsHandler(r.universeService)
	gatesHandler := universeHandlers.NewGatesHandler(r.universeService)
	factionsHandler := universeHandlers.NewFactionsHandler(r.universeService)

	// Public endpoints
	mux.Handle("/api/server/health", healthHandler)
	mux.HandleFunc("/api/auth/register", authHandler.Register)
	mux.HandleFunc("/api/auth/login", authHandler.Login)
	mux.HandleFunc("/api/auth/logout", authHandler.Logout)

	// Universe catalog; visibility rules decide what each response contains
	mux.Handle("/api/universe/systems", middleware.JWTMiddleware(http.HandlerFunc(systemsHandler.List)))
	mux.Handle("/api/universe/systems/{id}", middleware.JWTMiddleware(http.HandlerFunc(systemsHandler.GetByID)))
	mux.Handle("/api/universe/stations", middleware.JWTMiddleware(http.HandlerFunc(stationsHandler.List)))
	mux.Handle("/api/universe/stations/{id}", middleware.JWTMiddleware(http.HandlerFunc(stationsHandler.GetByID)))
	mux.Handle("/api/universe/jumpgates", middleware.JWTMiddleware(http.HandlerFunc(gatesHandler.List)))
	mux.Handle("/api/universe/factions", middleware.JWTMiddleware(http.HandlerFunc(factionsHandler.List)))

	// Refresh endpoint authenticates with the refresh token itself
	mux.Handle("/api/auth/refresh", middleware.RefreshJWTMiddleware(http.HandlerFunc(authHandler.Refresh)))

	// Protected endpoints (authenticated users)
	mux.Handle("/api/auth/profile", middleware.JWTMiddleware(http.HandlerFunc(authHandler.Profile)))
	mux.Handle("/api/auth/change-password", middleware.JWTMiddleware(http.HandlerFunc(authHandler.ChangePassword)))
	mux.Handle("/api/users", middleware.JWTMiddleware(http.HandlerFunc(usersHandler.List)))
	mux.Handle("/api/users/{id}", middleware.JWTMiddleware(http.HandlerFunc(usersHandler.GetByID)))
	mux.Handle("/api/game-saves", middleware.JWTMiddleware(http.HandlerFunc(savesHandler.Collection)))
	mux.Handle("/api/game-saves/{id}", middleware.JWTMiddleware(http.HandlerFunc(savesHandler.Item)))
	mux.Handle("/api/game-saves/{id}/load", middleware.JWTMiddleware(http.HandlerFunc(savesHandler.Load)))

	logger.Info("Routes configured successfully",
		"public_endpoints", []string{"/api/server/health", "/api/auth/register", "/api/auth/login", "/api/auth/logout"},
		"protected_endpoints", []string{"/api/auth/profile", "/api/auth/change-password", "/api/users", "/api/game-saves", "/api/universe"},
	)

	return mux
}
