package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/lshigami/dailydose/config"
	"github.com/lshigami/dailydose/internal/apperror"
	"github.com/lshigami/dailydose/internal/model"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"google.golang.org/api/option"
)

var ErrDrafterDisabled = apperror.Unavailable("explanation drafting is not configured", nil)

// ExplanationDrafter asks an LLM for a draft explanation of a question. Drafts
// are suggestions only and are never stored by the drafter.
type ExplanationDrafter interface {
	Draft(ctx context.Context, question *model.Question, subjectName string) (string, error)
}

type geminiDrafter struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewExplanationDrafter builds the Gemini-backed drafter; its client is closed
// when the fx application stops.
func NewExplanationDrafter(lc fx.Lifecycle, cfg *config.Config) (ExplanationDrafter, error) {
	d := &geminiDrafter{}
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Explanation drafts are disabled.")
		return d, nil
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	d.client = client
	d.model = client.GenerativeModel(cfg.GeminiModel)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Closing Gemini client...")
			return d.Close()
		},
	})
	return d, nil
}

func (d *geminiDrafter) Close() error {
	if d.client == nil {
		return nil
	}
	return d.client.Close()
}

func (d *geminiDrafter) Draft(ctx context.Context, question *model.Question, subjectName string) (string, error) {
	if d.model == nil {
		return "", ErrDrafterDisabled
	}

	resp, err := d.model.GenerateContent(ctx, genai.Text(explanationPrompt(question, subjectName)))
	if err != nil {
		log.Error().Err(err).Uint("questionID", question.ID).Msg("Gemini API error while drafting explanation")
		return "", apperror.Unavailable("explanation service failed", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		log.Warn().Uint("questionID", question.ID).Msg("Gemini returned no candidates")
		return "", apperror.Unavailable("explanation service returned no content", nil)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	draft := strings.TrimSpace(sb.String())
	if draft == "" {
		return "", apperror.Unavailable("explanation service returned no text", nil)
	}
	return draft, nil
}

func explanationPrompt(q *model.Question, subjectName string) string {
	var b strings.Builder
	b.WriteString("You are an experienced tutor preparing students for competitive exams")
	if q.ExamCategory != "" {
		b.WriteString(" (" + q.ExamCategory + ")")
	}
	b.WriteString(".\n")
	if subjectName != "" {
		b.WriteString("Subject: " + subjectName + "\n")
	}
	b.WriteString("Write a concise explanation (at most 150 words) of why the correct option is right and why each other option is wrong.\n\n")
	b.WriteString("Question:\n---\n")
	b.WriteString(q.Content)
	b.WriteString("\n---\n")
	fmt.Fprintf(&b, "A. %s\nB. %s\nC. %s\nD. %s\n\n", q.OptionA, q.OptionB, q.OptionC, q.OptionD)
	fmt.Fprintf(&b, "Correct option: %s\n", q.CorrectOption)
	b.WriteString("Reply with the explanation text only.")
	return b.String()
}
