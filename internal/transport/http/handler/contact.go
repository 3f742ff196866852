package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"atmosaether/internal/app"
	"atmosaether/internal/transport/http/response"
)

type ContactHandler struct {
	contactService *app.ContactService
}

// ContactRequest validation runs before anything touches the store: a
// malformed email never reaches persistence.
type ContactRequest struct {
	Name         string `json:"name" binding:"required,max=128"`
	Email        string `json:"email" binding:"required,email,max=128"`
	Organization string `json:"organization" binding:"max=128"`
	Message      string `json:"message" binding:"required"`
}

func NewContactHandler(contactService *app.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

func (h *ContactHandler) Submit(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	result, err := h.contactService.Submit(c.Request.Context(), app.SubmitContactInput{
		Name:         req.Name,
		Email:        req.Email,
		Organization: req.Organization,
		Message:      req.Message,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	response.OK(c, gin.H{
		"message":               "Thank you for your interest! We'll get back to you soon.",
		"whatsapp_notification": string(result.Notification),
	})
}
