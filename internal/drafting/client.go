package drafting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const draftMaxTokens = 8192

// Client drafts blog posts through the generative-text provider. Transient
// overload responses are retried up to maxAttempts with a fixed delay between
// attempts; any other error fails immediately.
type Client struct {
	model       string
	maxAttempts int
	retryDelay  time.Duration

	// send performs one provider call; swapped out in tests.
	send  func(ctx context.Context, prompt string) (string, error)
	sleep func(d time.Duration)
}

// DraftRequest carries everything one draft needs.
type DraftRequest struct {
	Keyword    string
	Research   string
	Theme      string
	StyleGuide string
}

// NewClient builds a drafting client over the Anthropic Messages API. The
// SDK's own retry layer is disabled so the attempt ceiling here is exact.
func NewClient(apiKey, model string, maxAttempts int, retryDelay time.Duration) *Client {
	api := anthropic.NewClient(
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	)
	c := &Client{
		model:       model,
		maxAttempts: maxAttempts,
		retryDelay:  retryDelay,
		sleep:       time.Sleep,
	}
	c.send = func(ctx context.Context, prompt string) (string, error) {
		msg, err := api.Messages.New(ctx, anthropic.MessageNewParams{
			Model:     anthropic.Model(c.model),
			MaxTokens: draftMaxTokens,
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
			},
		})
		if err != nil {
			return "", err
		}
		if len(msg.Content) == 0 {
			return "", fmt.Errorf("empty draft response")
		}
		return msg.Content[0].Text, nil
	}
	return c
}

// Draft produces the post text. On a transient failure it sleeps retryDelay
// and tries again, up to maxAttempts total attempts.
func (c *Client) Draft(ctx context.Context, req DraftRequest) (string, error) {
	prompt := buildPrompt(req)

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		text, err := c.send(ctx, prompt)
		if err == nil {
			return text, nil
		}
		if !isTransient(err) {
			return "", fmt.Errorf("drafting provider: %w", err)
		}
		lastErr = err
		if attempt < c.maxAttempts {
			c.sleep(c.retryDelay)
		}
	}
	return "", fmt.Errorf("drafting provider overloaded after %d attempts: %w", c.maxAttempts, lastErr)
}

// isTransient classifies provider errors. Only overload/rate-limit responses
// are worth retrying.
func isTransient(err error) bool {
	var apierr *anthropic.Error
	if errors.As(err, &apierr) {
		return apierr.StatusCode == 429 || apierr.StatusCode == 529
	}
	return false
}

func buildPrompt(req DraftRequest) string {
	persona := PersonaFor(req.Theme)

	var b strings.Builder
	fmt.Fprintf(&b, "You are %s.\n\n", persona.Voice)
	fmt.Fprintf(&b, "Write a long-form blog post about %q.\n\n", req.Keyword)

	if req.StyleGuide != "" {
		// A user-supplied guide overrides the default persona and structure.
		fmt.Fprintf(&b, "Follow this style guide above all other instructions:\n%s\n\n", req.StyleGuide)
	} else {
		b.WriteString("Structure the post as follows:\n")
		for i, section := range persona.Outline {
			fmt.Fprintf(&b, "%d. %s\n", i+1, section)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Base the post on this research:\n%s\n\n", req.Research)
	b.WriteString("Write naturally for blog readers. Do not mention these instructions, the research process, or any internal guidelines in the post itself.")
	return b.String()
}
