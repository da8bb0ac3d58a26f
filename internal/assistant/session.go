package assistant

import (
	"context"
	"errors"
	"fmt"

	"github.com/pocketledger/backend/internal/config"
	"google.golang.org/genai"
)

// Role of a conversation turn.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one message of the conversation history.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session generates assistant replies for a conversation grounded on the
// current financial context. Implementations must be safe for concurrent
// use, the conversation history is owned by the caller.
type Session interface {
	// Send returns the complete reply for the conversation.
	Send(ctx context.Context, turns []Turn, grounding string) (string, error)

	// Stream sends the reply incrementally. The text channel is closed
	// when the reply is complete, the error channel carries at most one
	// error and is closed afterwards.
	Stream(ctx context.Context, turns []Turn, grounding string) (<-chan string, <-chan error)
}

// ErrSessionUnconfigured is returned when no model client is available.
var ErrSessionUnconfigured = errors.New("no assistant model is configured")

// UnconfiguredSession is the Session used when no model credentials are
// available. Every call fails with ErrSessionUnconfigured, which the HTTP
// layer turns into a conversational reply.
type UnconfiguredSession struct{}

var _ Session = UnconfiguredSession{}

func (UnconfiguredSession) Send(_ context.Context, _ []Turn, _ string) (string, error) {
	return "", ErrSessionUnconfigured
}

func (UnconfiguredSession) Stream(_ context.Context, _ []Turn, _ string) (<-chan string, <-chan error) {
	chunks := make(chan string)
	close(chunks)

	errs := make(chan error, 1)
	errs <- ErrSessionUnconfigured
	close(errs)

	return chunks, errs
}

// GeminiSession generates replies with the Gemini API. The API key is read
// from the environment by the genai client.
type GeminiSession struct {
	client   *genai.Client
	model    string
	maxTurns int
}

var _ Session = (*GeminiSession)(nil)

// NewGeminiSession creates a Session backed by the configured Gemini model.
func NewGeminiSession(ctx context.Context, cfg config.AssistantConfig) (*GeminiSession, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return &GeminiSession{
		client:   client,
		model:    cfg.Model,
		maxTurns: cfg.MaxTurns,
	}, nil
}

// contents maps the grounding document and the capped conversation history
// to the model's content format. The grounding document leads the
// conversation as its own user turn so that a fresh document can be
// injected on every request.
func (s *GeminiSession) contents(turns []Turn, grounding string) []*genai.Content {
	if s.maxTurns > 0 && len(turns) > s.maxTurns {
		turns = turns[len(turns)-s.maxTurns:]
	}

	contents := make([]*genai.Content, 0, len(turns)+1)
	contents = append(contents, &genai.Content{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: grounding}},
	})

	for _, turn := range turns {
		role := genai.RoleUser
		if turn.Role == RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: turn.Content}},
		})
	}

	return contents
}

func (s *GeminiSession) Send(ctx context.Context, turns []Turn, grounding string) (string, error) {
	resp, err := s.client.Models.GenerateContent(ctx, s.model, s.contents(turns, grounding), nil)
	if err != nil {
		return "", fmt.Errorf("generating reply: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}

	return text, nil
}

func (s *GeminiSession) Stream(ctx context.Context, turns []Turn, grounding string) (<-chan string, <-chan error) {
	chunks := make(chan string)
	errs := make(chan error, 1)

	go func() {
		defer close(chunks)
		defer close(errs)

		for resp, err := range s.client.Models.GenerateContentStream(ctx, s.model, s.contents(turns, grounding), nil) {
			if err != nil {
				errs <- fmt.Errorf("streaming reply: %w", err)
				return
			}

			text := resp.Text()
			if text == "" {
				continue
			}

			select {
			case chunks <- text:
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			}
		}
	}()

	return chunks, errs
}
