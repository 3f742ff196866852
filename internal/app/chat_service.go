package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"atmosaether/internal/ai"
	"atmosaether/internal/model"
	"atmosaether/internal/repository"
)

var (
	ErrMessageEmpty = errors.New("message content is empty")
	ErrLLMConfig    = errors.New("llm config is invalid")
)

const systemPrompt = "You are the AtmosAether AI assistant. AtmosAether builds ionized " +
	"atmospheric harvesters that purify urban air through advanced ionization and " +
	"molecular filtration. Answer questions about the technology, its deployment, " +
	"environmental impact, and partnership opportunities. Be concise and helpful."

// historyLimit caps what the history endpoint returns, not what is stored.
const historyLimit = 50

type ChatService struct {
	turnRepo        *repository.ChatTurnRepository
	llmClient       *ai.OpenAICompatibleClient
	defaultLLM      ai.ChatConfig
	maxContextTurns int
}

type SendMessageResult struct {
	Reply string
	Model string
}

func NewChatService(turnRepo *repository.ChatTurnRepository, defaultLLM ai.ChatConfig, maxContextTurns int) *ChatService {
	if maxContextTurns <= 0 {
		maxContextTurns = 10
	}
	return &ChatService{
		turnRepo:        turnRepo,
		llmClient:       ai.NewOpenAICompatibleClient(),
		defaultLLM:      defaultLLM,
		maxContextTurns: maxContextTurns,
	}
}

// SendMessage replays the user's recent turns under the fixed system prompt,
// forwards the new message, and persists the completed turn.
func (s *ChatService) SendMessage(ctx context.Context, userID, content, modelOverride string) (*SendMessageResult, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrMessageEmpty
	}

	cfg := s.defaultLLM
	if override := strings.TrimSpace(modelOverride); override != "" {
		cfg.Model = override
	}
	if cfg.BaseURL == "" || cfg.APIKey == "" || cfg.Model == "" {
		return nil, ErrLLMConfig
	}

	promptMessages, err := s.buildPromptMessages(userID, content)
	if err != nil {
		return nil, err
	}

	reply, err := s.llmClient.Complete(ctx, cfg, promptMessages)
	if err != nil {
		return nil, err
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		reply = "The model returned an empty response."
	}

	turn := &model.ChatTurn{
		UserID:           userID,
		UserMessage:      content,
		AssistantMessage: reply,
		Model:            cfg.Model,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.turnRepo.Create(turn); err != nil {
		return nil, err
	}

	return &SendMessageResult{
		Reply: reply,
		Model: cfg.Model,
	}, nil
}

// History returns at most the 50 most recent turns, oldest first.
func (s *ChatService) History(userID string) ([]model.ChatTurn, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	recent, err := s.turnRepo.ListRecentByUserID(userID, historyLimit)
	if err != nil {
		return nil, err
	}
	reverseTurns(recent)
	return recent, nil
}

func (s *ChatService) ClearHistory(userID string) error {
	if userID == "" {
		return ErrInvalidInput
	}
	return s.turnRepo.DeleteByUserID(userID)
}

func (s *ChatService) buildPromptMessages(userID, currentUserInput string) ([]ai.ChatMessage, error) {
	recent, err := s.turnRepo.ListRecentByUserID(userID, s.maxContextTurns)
	if err != nil {
		return nil, err
	}
	reverseTurns(recent)

	messages := make([]ai.ChatMessage, 0, 2*len(recent)+2)
	messages = append(messages, ai.ChatMessage{
		Role:    "system",
		Content: systemPrompt,
	})
	for _, turn := range recent {
		messages = append(messages, ai.ChatMessage{
			Role:    "user",
			Content: turn.UserMessage,
		})
		messages = append(messages, ai.ChatMessage{
			Role:    "assistant",
			Content: turn.AssistantMessage,
		})
	}
	messages = append(messages, ai.ChatMessage{
		Role:    "user",
		Content: currentUserInput,
	})
	return messages, nil
}

func reverseTurns(turns []model.ChatTurn) {
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
}
