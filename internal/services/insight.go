package service

import (
	"context"
	"fmt"
	"strings"

	appErrors "github.com/mandilink/mandilink/internal/errors"
	"github.com/mandilink/mandilink/internal/utils"
	"github.com/mandilink/mandilink/pkg/gemini"
)

const maxQuestionLength = 1000

// InsightService proxies vendor questions to the Gemini API with a fixed
// marketplace-assistant framing.
type InsightService struct {
	client gemini.Client
}

func NewInsightService(client gemini.Client) *InsightService {
	return &InsightService{client: client}
}

func (s *InsightService) Ask(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", appErrors.ValidationError("Question must not be empty")
	}

	if len(question) > maxQuestionLength {
		return "", appErrors.ValidationError("Question is too long")
	}

	prompt := fmt.Sprintf(
		"You are a helpful assistant for street food vendors sourcing raw materials from a wholesale marketplace. Answer briefly and practically.\n\nQuestion: %s",
		question)

	ctx, cancel := utils.WithUpstreamTimeout(ctx)
	defer cancel()

	answer, err := s.client.GenerateContent(ctx, prompt)
	if err != nil {
		return "", appErrors.ThirdPartyError("Assistant is unavailable right now").WithError(err)
	}

	return answer, nil
}
