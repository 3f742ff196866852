package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"atmosaether/internal/app"
	"atmosaether/internal/model"
	"atmosaether/internal/transport/http/response"
)

type ChatHandler struct {
	chatService *app.ChatService
}

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
	Model   string `json:"model"`
}

func NewChatHandler(chatService *app.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	result, err := h.chatService.SendMessage(c.Request.Context(), user.UserID, req.Message, req.Model)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput), errors.Is(err, app.ErrMessageEmpty):
			response.Error(c, http.StatusBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	response.OK(c, gin.H{
		"message": result.Reply,
		"model":   result.Model,
	})
}

func (h *ChatHandler) GetHistory(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	history, err := h.chatService.History(user.UserID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	if history == nil {
		history = []model.ChatTurn{}
	}

	response.OK(c, gin.H{"history": history})
}

func (h *ChatHandler) ClearHistory(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	if err := h.chatService.ClearHistory(user.UserID); err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.OK(c, gin.H{"message": "Chat history cleared"})
}
