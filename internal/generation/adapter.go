// Package generation builds recipe prompts and calls the text-generation
// collaborator, containing every collaborator failure.
package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"recipe-rag/internal/domain"
)

// Defaults used when Config leaves fields empty.
const (
	DefaultModel        = "deepseek-chat"
	DefaultSystemPrompt = "You are a chef creating delicious recipes."
)

// ErrorTitlePrefix starts the title of every failure recipe.
const ErrorTitlePrefix = "Error generating recipe for "

var (
	errNoChoices    = errors.New("response has no choices")
	errEmptyContent = errors.New("response message is empty")
)

// Config configures an Adapter.
type Config struct {
	Model        string
	SystemPrompt string
}

// Request is one generation request.
type Request struct {
	Keywords            []string
	SampleIngredients   []string
	DietaryRestrictions string
	// Model overrides Config.Model when set.
	Model     string
	RequestID string
}

// Adapter turns keywords and ingredient hints into a chat request and returns
// the raw generated text. It never returns an error: failures become a
// KindFailed outcome carrying a sentinel recipe.
type Adapter struct {
	client ChatCompleter
	cfg    Config
	logger *zap.Logger
}

// NewAdapter creates an adapter around client.
func NewAdapter(client ChatCompleter, cfg Config, logger *zap.Logger) *Adapter {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = DefaultSystemPrompt
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{client: client, cfg: cfg, logger: logger}
}

// Generate requests a recipe. On KindOK the outcome holds RawText; on
// KindFailed it holds the failure recipe and Reason.
func (a *Adapter) Generate(ctx context.Context, req Request) (out domain.Outcome) {
	model := req.Model
	if model == "" {
		model = a.cfg.Model
	}
	log := a.logger.With(zap.String("request_id", req.RequestID), zap.String("model", model))

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("collaborator panic: %v", r)
			log.Error("generation failed", zap.Error(err))
			out = failure(req, err)
		}
	}()

	chat := ChatRequest{
		Model: model,
		Messages: []Message{
			{Role: RoleSystem, Content: a.cfg.SystemPrompt},
			{Role: RoleUser, Content: BuildPrompt(req.Keywords, req.SampleIngredients, req.DietaryRestrictions)},
		},
		Stream: false,
	}
	log.Debug("sending generation request", zap.Strings("keywords", req.Keywords))

	if a.client == nil {
		return failure(req, errors.New("no generation client configured"))
	}
	resp, err := a.client.Complete(ctx, chat)
	if err == nil {
		err = validate(resp)
	}
	if err != nil {
		log.Warn("generation failed", zap.Error(err))
		return failure(req, err)
	}
	text := resp.Choices[0].Message.Content
	log.Debug("generation succeeded", zap.Int("content_length", len(text)))
	return domain.Outcome{Kind: domain.KindOK, RawText: text, RequestID: req.RequestID}
}

func validate(resp *ChatResponse) error {
	if resp == nil || len(resp.Choices) == 0 {
		return errNoChoices
	}
	if strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return errEmptyContent
	}
	return nil
}

func failure(req Request, err error) domain.Outcome {
	return domain.Outcome{
		Kind:      domain.KindFailed,
		Recipe:    FailureRecipe(req.Keywords, err),
		Reason:    err.Error(),
		RequestID: req.RequestID,
	}
}

// FailureRecipe is the sentinel recipe reported when generation fails.
func FailureRecipe(keywords []string, err error) domain.GeneratedRecipe {
	return domain.GeneratedRecipe{
		Title:        ErrorTitlePrefix + strings.Join(keywords, ", "),
		Ingredients:  []string{"API Error"},
		Instructions: []string{"Could not generate recipe: " + err.Error()},
	}
}

// BuildPrompt renders the user prompt for a generation request.
func BuildPrompt(keywords, sample []string, dietaryRestrictions string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a recipe using these keywords: %s.\n", strings.Join(keywords, ", "))
	fmt.Fprintf(&b, "Some ingredients you might consider: %s\n", strings.Join(sample, ", "))
	if d := strings.TrimSpace(dietaryRestrictions); d != "" {
		fmt.Fprintf(&b, "The recipe should be suitable for %s diets.\n", d)
	}
	b.WriteString("Format the recipe with a title, ingredients list with measurements, and step-by-step instructions.")
	return b.String()
}
