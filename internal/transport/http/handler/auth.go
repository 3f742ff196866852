package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"atmosaether/internal/app"
	"atmosaether/internal/model"
	"atmosaether/internal/transport/http/middleware"
	"atmosaether/internal/transport/http/response"
)

type AuthHandler struct {
	authService *app.AuthService
}

type ExchangeSessionRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

func NewAuthHandler(authService *app.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// ExchangeSession trades the external session id for a local session and
// hands the token back as a cross-site cookie. The cookie carries no Domain
// attribute: its origin must come from the live request, never from config.
func (h *AuthHandler) ExchangeSession(c *gin.Context) {
	var req ExchangeSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	result, err := h.authService.ExchangeSession(c.Request.Context(), req.SessionID)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, app.ErrInvalidExternalSession):
			response.Error(c, http.StatusUnauthorized, "Invalid session ID")
		default:
			response.Error(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(middleware.SessionCookieName, result.Token, int(app.SessionTTL.Seconds()), "/", "", true, true)

	response.OK(c, gin.H{"user": userJSON(result.User)})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Not authenticated")
		return
	}
	response.OK(c, gin.H{"user": userJSON(user)})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token := c.GetString(middleware.ContextTokenKey)
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	if err := h.authService.Logout(token); err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", true, true)

	response.OK(c, gin.H{"message": "Logged out successfully"})
}

func userJSON(user *model.User) gin.H {
	return gin.H{
		"user_id": user.UserID,
		"email":   user.Email,
		"name":    user.Name,
		"picture": user.Picture,
	}
}

func getUserFromContext(c *gin.Context) (*model.User, bool) {
	userAny, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := userAny.(*model.User)
	return user, ok
}
