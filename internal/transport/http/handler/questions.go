package handler

import (
	"github.com/gin-gonic/gin"

	"atmosaether/internal/transport/http/response"
)

var suggestedQuestions = []string{
	"How does the ionized atmospheric harvester work?",
	"What pollutants can AtmosAether remove from urban air?",
	"How much area does a single AtmosAether unit cover?",
	"How does AtmosAether compare to traditional air filtration?",
	"What does a city-scale deployment look like?",
	"How can my organization partner with AtmosAether?",
}

// SuggestedQuestions serves the static prompt list shown on an empty chat.
func SuggestedQuestions(c *gin.Context) {
	response.OK(c, gin.H{"suggestions": suggestedQuestions})
}
