package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"pantrychef/constants"
	"pantrychef/internal/cache"
	"pantrychef/internal/common"
	"pantrychef/internal/llm"
	"pantrychef/internal/repository"
)

// ChatResult is an assistant reply plus any recipes parsed out of it.
type ChatResult struct {
	Message string   `json:"message"`
	Recipes []Recipe `json:"recipes"`
}

// Service generates and manages recipe suggestions.
type Service struct {
	inventory repository.InventoryRepository
	users     repository.UserRepository
	ratings   repository.RatingRepository
	chats     repository.ChatRepository
	gen       llm.Generator
	cache     *cache.Cache
	log       *slog.Logger
}

func NewService(
	inventory repository.InventoryRepository,
	users repository.UserRepository,
	ratings repository.RatingRepository,
	chats repository.ChatRepository,
	gen llm.Generator,
	c *cache.Cache,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		inventory: inventory,
		users:     users,
		ratings:   ratings,
		chats:     chats,
		gen:       gen,
		cache:     c,
		log:       logger,
	}
}

// Suggest generates recipe suggestions from the user's pantry, honoring
// filters and the user's cooking preferences. Results are cached per
// (user, inventory, filters) until the pantry changes.
func (s *Service) Suggest(ctx context.Context, userID uuid.UUID, filters Filters) ([]Recipe, error) {
	start := time.Now()

	items, err := s.inventory.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		s.log.Info("recipe.suggest.empty_inventory", "user_id", userID)
		return []Recipe{}, nil
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	methods := constants.CookingMethodNames(user.CookingMethods)
	tools := constants.KitchenToolNames(user.KitchenTools)
	userPrompt := buildSuggestionPrompt(items, filters, methods, tools)

	key := cache.Key("suggest", userID.String(), fingerprint(items), mustJSON(filters))
	if cached, ok := s.cache.Get(ctx, key); ok {
		var recipes []Recipe
		if err := json.Unmarshal([]byte(cached), &recipes); err == nil {
			s.log.Info("recipe.suggest.cache_hit", "user_id", userID, "recipes", len(recipes))
			return recipes, nil
		}
	}

	content, err := s.gen.Generate(ctx, llm.ChatRequest{
		System:      suggestionSystemPrompt,
		User:        userPrompt,
		Temperature: 0.8,
		MaxTokens:   4000,
	})
	if err != nil {
		return nil, err
	}

	recipes := ParseSuggestions(content)
	if len(recipes) == 0 {
		s.log.Error("recipe.suggest.no_recipes_parsed", "user_id", userID, "content_len", len(content))
		return nil, fmt.Errorf("%w: no recipes in model output", common.ErrMalformedResponse)
	}

	s.cache.Set(ctx, key, mustJSON(recipes))
	s.log.Info("recipe.suggest.ok",
		"user_id", userID,
		"recipes", len(recipes),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return recipes, nil
}

// Refresh generates one replacement variation of a named recipe.
func (s *Service) Refresh(ctx context.Context, userID uuid.UUID, recipeName string) (*Recipe, error) {
	recipeName = strings.TrimSpace(recipeName)
	if recipeName == "" {
		return nil, fmt.Errorf("%w: recipe name is required", common.ErrInvalidInput)
	}

	items, err := s.inventory.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	content, err := s.gen.Generate(ctx, llm.ChatRequest{
		System:      "You are a helpful cooking assistant.",
		User:        buildRefreshPrompt(items, recipeName),
		Temperature: 0.8,
		MaxTokens:   1000,
	})
	if err != nil {
		return nil, err
	}

	recipes := ParseSuggestions(content)
	if len(recipes) == 0 {
		return nil, fmt.Errorf("%w: no recipe variation in model output", common.ErrMalformedResponse)
	}

	s.log.Info("recipe.refresh.ok", "user_id", userID, "recipe", recipes[0].Name)
	return &recipes[0], nil
}

// Chat answers a free-form cooking question grounded in the user's pantry,
// stores the exchange, and returns any recipes found in the reply.
func (s *Service) Chat(ctx context.Context, userID uuid.UUID, message string) (*ChatResult, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("%w: message is required", common.ErrInvalidInput)
	}

	items, err := s.inventory.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	content, err := s.gen.Generate(ctx, llm.ChatRequest{
		System:      chatSystemPrompt,
		User:        buildChatPrompt(items, message),
		Temperature: 0.7,
		MaxTokens:   2000,
	})
	if err != nil {
		return nil, err
	}

	if err := s.chats.Insert(ctx, userID, message, content); err != nil {
		s.log.Warn("recipe.chat.save_failed", "user_id", userID, "error", err)
	}

	return &ChatResult{
		Message: content,
		Recipes: ParseSuggestions(content),
	}, nil
}

// Rate records a like or dislike for a recipe name.
func (s *Service) Rate(ctx context.Context, userID uuid.UUID, recipeName string, liked bool) error {
	recipeName = strings.TrimSpace(recipeName)
	if recipeName == "" {
		return fmt.Errorf("%w: recipe name is required", common.ErrInvalidInput)
	}
	if err := s.ratings.Upsert(ctx, userID, recipeName, liked); err != nil {
		return err
	}
	s.log.Info("recipe.rate.ok", "user_id", userID, "recipe", recipeName, "liked", liked)
	return nil
}

// fingerprint summarizes inventory contents so cache keys change when the
// pantry does.
func fingerprint(items []repository.InventoryItem) string {
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "%s|%g|%s;", item.Name, item.Quantity, item.Unit)
	}
	return b.String()
}

func mustJSON(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}
