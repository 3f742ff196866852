package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"atmosaether/internal/ai"
	appsvc "atmosaether/internal/app"
	"atmosaether/internal/bootstrap"
	"atmosaether/internal/identity"
	"atmosaether/internal/repository"
	"atmosaether/internal/transport/http/handler"
	"atmosaether/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	// The frontend lives on another origin and sends the session cookie, so
	// CORS must echo the caller's origin rather than use a wildcard.
	router.Use(cors.New(cors.Config{
		AllowOriginFunc:  func(origin string) bool { return true },
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	userRepo := repository.NewUserRepository(app.MySQL)
	sessionRepo := repository.NewSessionRepository(app.MySQL)
	contactRepo := repository.NewContactRepository(app.MySQL)
	turnRepo := repository.NewChatTurnRepository(app.MySQL)

	identityClient := identity.NewClient(app.Config.Auth.ExchangeBaseURL)
	authService := appsvc.NewAuthService(userRepo, sessionRepo, identityClient)
	contactService := appsvc.NewContactService(contactRepo, app.Notifier, app.NotifierDeferred)
	chatService := appsvc.NewChatService(turnRepo, ai.ChatConfig{
		BaseURL:     app.Config.LLM.BaseURL,
		APIKey:      app.Config.LLM.APIKey,
		Model:       app.Config.LLM.Model,
		Temperature: app.Config.LLM.Temperature,
		MaxTokens:   app.Config.LLM.MaxTokens,
	}, app.Config.LLM.MaxContextTurns)

	healthHandler := handler.NewHealthHandler(app)
	authHandler := handler.NewAuthHandler(authService)
	contactHandler := handler.NewContactHandler(contactService)
	chatHandler := handler.NewChatHandler(chatService)

	api := router.Group("/api")
	api.GET("/health", healthHandler.Check)
	api.POST("/contact", contactHandler.Submit)
	api.GET("/suggested-questions", handler.SuggestedQuestions)

	authGroup := api.Group("/auth")
	authGroup.POST("/session", authHandler.ExchangeSession)
	authGroup.GET("/me", middleware.AuthSession(authService), authHandler.Me)
	authGroup.POST("/logout", middleware.AuthSession(authService), authHandler.Logout)

	chatGroup := api.Group("/chat")
	chatGroup.Use(middleware.AuthSession(authService))
	chatGroup.POST("", chatHandler.SendMessage)
	chatGroup.GET("/history", chatHandler.GetHistory)
	chatGroup.DELETE("/history", chatHandler.ClearHistory)

	return router
}
