package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"foundermatch/internal/domain"
	"foundermatch/internal/infrastructure/llm"
	"foundermatch/internal/ports"
)

const (
	minEmailLength = 20
	maxEmailLength = 50000
)

// ErrInvalidInput marks client mistakes that map to a 400 and are never
// retried upstream.
var ErrInvalidInput = errors.New("invalid input")

const decodeSystemPrompt = `You are an expert at reading between the lines of investor and founder emails.
Analyze the email thread and return ONLY a JSON object with exactly these fields:
{
  "hotTake": string or null,
  "realMeaning": string,
  "confidenceScore": integer 1-10,
  "confidenceLabel": string,
  "nextMove": string,
  "shouldFollowUp": boolean,
  "followUpReasoning": string
}
confidenceScore buckets: 1-2 means a pass, 3-4 a soft pass, 5-6 lukewarm,
7-8 genuine interest, 9-10 high priority. confidenceLabel is the bucket name.
realMeaning decodes what the sender actually means. nextMove is one concrete
recommended action. Return the JSON object and nothing else.`

const sassInstruction = `
Set hotTake to one brutally honest, irreverent sentence about this thread.`

const noSassInstruction = `
Set hotTake to null.`

// EmailDecoder turns a raw email thread into a structured verdict via the
// LLM gateway.
type EmailDecoder struct {
	completer ports.CompletionClient
	logger    *slog.Logger
}

// NewEmailDecoder wires the gateway client.
func NewEmailDecoder(completer ports.CompletionClient, logger *slog.Logger) *EmailDecoder {
	if logger == nil {
		logger = slog.Default()
	}
	return &EmailDecoder{completer: completer, logger: logger}
}

// Decode validates the content, queries the model, and parses its reply.
// Length bounds are enforced before any upstream call is made.
func (d *EmailDecoder) Decode(ctx context.Context, emailContent string, includeSass bool) (domain.EmailAnalysis, error) {
	if len(emailContent) < minEmailLength {
		return domain.EmailAnalysis{}, fmt.Errorf("%w: email content must be at least %d characters", ErrInvalidInput, minEmailLength)
	}
	if len(emailContent) > maxEmailLength {
		return domain.EmailAnalysis{}, fmt.Errorf("%w: email content must be at most %d characters", ErrInvalidInput, maxEmailLength)
	}

	prompt := decodeSystemPrompt
	if includeSass {
		prompt += sassInstruction
	} else {
		prompt += noSassInstruction
	}

	content, err := d.completer.Complete(ctx, prompt, flattenHTML(emailContent))
	if err != nil {
		return domain.EmailAnalysis{}, fmt.Errorf("decode email: %w", err)
	}

	var analysis domain.EmailAnalysis
	if err := llm.ExtractObject(content, &analysis); err != nil {
		// Raw model output stays server-side for diagnosis.
		d.logger.Error("unparseable analysis", "error", err, "raw", content)
		return domain.EmailAnalysis{}, fmt.Errorf("decode email: %w", err)
	}

	if analysis.ConfidenceScore < 1 || analysis.ConfidenceScore > 10 {
		d.logger.Error("confidence score out of range", "score", analysis.ConfidenceScore, "raw", content)
		return domain.EmailAnalysis{}, fmt.Errorf("decode email: %w: confidence score out of range", llm.ErrAnalysisParse)
	}

	// The model occasionally editorializes anyway; the flag wins.
	if !includeSass {
		analysis.HotTake = nil
	}

	return analysis, nil
}

// flattenHTML reduces an HTML email body to readable text before it is
// handed to the model. Plain-text threads pass through untouched.
func flattenHTML(content string) string {
	lowered := strings.ToLower(content)
	if !strings.Contains(lowered, "<html") && !strings.Contains(lowered, "<body") && !strings.Contains(lowered, "<div") {
		return content
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return content
	}
	doc.Find("style, script").Remove()

	text := strings.TrimSpace(doc.Text())
	if text == "" {
		return content
	}

	return text
}
