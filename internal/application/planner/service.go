package planner

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mealforge/v1/internal/domain/meal"
	"github.com/mealforge/v1/internal/ports/outbound"
	"github.com/mealforge/v1/pkg/errors"
	"go.uber.org/zap"
)

// Options tunes the service; zero values get sensible defaults.
type Options struct {
	// MaxAttempts is the number of chat completion attempts per request
	// (first try plus retries).
	MaxAttempts int
	// CacheTTL bounds how long parsed suggestion payloads are cached.
	CacheTTL time.Duration
	// Zone is the timezone for day-window computations.
	Zone *time.Location
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Service is the suggestion and planning engine. It owns no mutable
// state across requests; everything request-scoped lives on the stack.
type Service struct {
	assembler *ContextAssembler
	chat      outbound.ChatService
	plans     outbound.PlanRepository
	shopping  outbound.ShoppingRepository
	inventory outbound.InventoryRepository
	cache     outbound.CacheRepository

	maxAttempts int
	cacheTTL    time.Duration
	now         func() time.Time
	logger      *zap.Logger
}

// NewService creates the planning service. cache may be nil to disable
// suggestion caching.
func NewService(
	assembler *ContextAssembler,
	chat outbound.ChatService,
	plans outbound.PlanRepository,
	shopping outbound.ShoppingRepository,
	inventory outbound.InventoryRepository,
	cache outbound.CacheRepository,
	opts Options,
	logger *zap.Logger,
) *Service {
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 2
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = time.Hour
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{
		assembler:   assembler,
		chat:        chat,
		plans:       plans,
		shopping:    shopping,
		inventory:   inventory,
		cache:       cache,
		maxAttempts: opts.MaxAttempts,
		cacheTTL:    opts.CacheTTL,
		now:         opts.Now,
		logger:      logger.Named("planner"),
	}
}

// SuggestResponse is the caller-facing result of one suggestion request.
type SuggestResponse struct {
	Suggestions []Suggestion  `json:"suggestions"`
	CalorieInfo CalorieBudget `json:"calorieInfo"`
}

// Suggest runs the full suggestion pipeline: assemble context, compose
// the prompt, drive the model, enforce the hard constraints locally and
// post-process. LLM failures degrade to the curated fallback set and
// are never surfaced; storage failures propagate.
func (s *Service) Suggest(ctx context.Context, req SuggestRequest) (*SuggestResponse, error) {
	if err := validateSuggestRequest(req); err != nil {
		return nil, err
	}

	bundle, err := s.assembler.Build(ctx, s.now())
	if err != nil {
		return nil, err
	}

	prompt := Compose(req, bundle)

	payloads := s.completeSuggestions(ctx, prompt)
	payloads = enforceConstraints(payloads, req, bundle)

	if len(payloads) == 0 {
		s.logger.Warn("no usable model suggestions, serving fallback set",
			zap.String("time_available", req.TimeAvailable))
		payloads = s.fallbackSuggestions(req, bundle)
	}

	return &SuggestResponse{
		Suggestions: Process(payloads, bundle),
		CalorieInfo: bundle.Budget,
	}, nil
}

func validateSuggestRequest(req SuggestRequest) error {
	if req.Cuisine != "" && !req.Cuisine.IsValid() {
		return errors.NewValidationError(fmt.Sprintf("cuisine: %q is not an allowed value", req.Cuisine))
	}
	if req.MealType != "" && !req.MealType.IsValid() {
		return errors.NewValidationError(fmt.Sprintf("mealType: %q is not an allowed value", req.MealType))
	}
	return nil
}

// completeSuggestions drives the chat endpoint and returns the
// schema-valid payloads, or nil when the model was unusable. Parsed
// results are cached under a hash of the deterministic prompt.
func (s *Service) completeSuggestions(ctx context.Context, prompt Prompt) []meal.Payload {
	cacheKey := suggestCacheKey(prompt)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil && len(data) > 0 {
			var cached []meal.Payload
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached
			}
		}
	}

	messages := []outbound.ChatMessage{
		{Role: "system", Content: prompt.System},
		{Role: "user", Content: prompt.User},
	}

	var payloads []meal.Payload
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		content, err := s.chat.Complete(ctx, messages)
		if err != nil {
			s.logger.Warn("chat completion failed",
				zap.Int("attempt", attempt),
				zap.Error(err))
			continue
		}

		payloads, err = parseSuggestions(content)
		if err != nil {
			s.logger.Warn("chat completion returned malformed suggestions",
				zap.Int("attempt", attempt),
				zap.Error(err))
			continue
		}
		break
	}

	if len(payloads) > 0 && s.cache != nil {
		if data, err := json.Marshal(payloads); err == nil {
			if err := s.cache.Set(ctx, cacheKey, data, s.cacheTTL); err != nil {
				s.logger.Warn("suggestion cache write failed", zap.Error(err))
			}
		}
	}

	return payloads
}

func suggestCacheKey(prompt Prompt) string {
	sum := sha256.Sum256([]byte(prompt.System + "\x00" + prompt.User))
	return "mealforge:suggest:" + hex.EncodeToString(sum[:])
}

// parseSuggestions extracts the JSON object from the completion text
// and returns the payloads that validate. Invalid elements are dropped,
// never repaired.
func parseSuggestions(content string) ([]meal.Payload, error) {
	jsonStr, err := extractJSON(content)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Suggestions []json.RawMessage `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(jsonStr), &envelope); err != nil {
		return nil, fmt.Errorf("parsing suggestions envelope: %w", err)
	}

	payloads := make([]meal.Payload, 0, len(envelope.Suggestions))
	for _, raw := range envelope.Suggestions {
		var p meal.Payload
		if err := json.Unmarshal(raw, &p); err != nil {
			continue
		}
		if err := p.Validate(); err != nil {
			continue
		}
		payloads = append(payloads, p)
	}
	return payloads, nil
}

// extractJSON finds the outermost JSON object in a completion; models
// occasionally wrap the object in extra prose.
func extractJSON(content string) (string, error) {
	content = strings.TrimSpace(content)
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found in completion")
	}
	return content[start : end+1], nil
}

// enforceConstraints applies the hard constraints a second time,
// locally: the model's promise is not trusted.
func enforceConstraints(payloads []meal.Payload, req SuggestRequest, sctx *SuggestionContext) []meal.Payload {
	blocked := blockedNames(req, sctx)

	out := make([]meal.Payload, 0, len(payloads))
	for _, p := range payloads {
		if _, ok := blocked[meal.CaseFold(p.Name)]; ok {
			continue
		}
		if req.Cuisine != "" && p.Cuisine != req.Cuisine {
			continue
		}
		if req.MealType != "" && p.MealType != req.MealType {
			continue
		}
		out = append(out, p)
	}
	return out
}

func blockedNames(req SuggestRequest, sctx *SuggestionContext) map[string]struct{} {
	blocked := make(map[string]struct{}, len(sctx.RecentMealNames)+len(req.RejectedMeals))
	for _, name := range sctx.RecentMealNames {
		blocked[meal.CaseFold(name)] = struct{}{}
	}
	for _, rej := range req.RejectedMeals {
		blocked[meal.CaseFold(rej.Name)] = struct{}{}
	}
	return blocked
}

// fallbackSuggestions serves the curated set under the same hard
// constraints. When a caller filter would empty the set, the generic
// curated meals are restamped with the requested cuisine and meal type
// so the request still returns something without breaking the filter
// guarantees.
func (s *Service) fallbackSuggestions(req SuggestRequest, sctx *SuggestionContext) []meal.Payload {
	set := fallbackSet(req.TimeAvailable)

	blocked := blockedNames(req, sctx)
	unblocked := make([]meal.Payload, 0, len(set))
	for _, p := range set {
		if _, ok := blocked[meal.CaseFold(p.Name)]; ok {
			continue
		}
		unblocked = append(unblocked, p)
	}

	filtered := enforceConstraints(unblocked, req, sctx)
	if len(filtered) > 0 {
		return filtered
	}

	restamped := make([]meal.Payload, 0, len(unblocked))
	for _, p := range unblocked {
		if req.Cuisine != "" {
			p.Cuisine = req.Cuisine
		}
		if req.MealType != "" {
			p.MealType = req.MealType
		}
		restamped = append(restamped, p)
	}
	return restamped
}
