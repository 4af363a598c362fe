// internal/newsletter/prose/openai.go
package prose

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/courtpost/internal/domain/models"
	"go.uber.org/zap"
)

// OpenAIConfig configures the chat-completions client. Only APIKey is
// required; everything else has a sensible default.
type OpenAIConfig struct {
	APIKey     string
	BaseURL    string        // default https://api.openai.com
	Model      string        // default gpt-4o
	Timeout    time.Duration // per-request; default 30s
	MaxRetries int           // on 429/5xx; default 2
}

// ErrNoAPIKey is returned by NewOpenAI when no key is configured.
// Callers should fall back to the Fallback generator.
var ErrNoAPIKey = errors.New("prose: no OpenAI API key configured")

// OpenAI is a Generator backed by the OpenAI chat-completions API.
type OpenAI struct {
	cfg        OpenAIConfig
	httpClient *http.Client
	log        *zap.Logger
}

// NewOpenAI builds the client or reports that no key is configured.
func NewOpenAI(cfg OpenAIConfig, logger *zap.Logger) (*OpenAI, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNoAPIKey
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Model == "" {
		cfg.Model = "gpt-4o"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	} else if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 2
	}

	return &OpenAI{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger,
	}, nil
}

const (
	defaultMaxTokens = 150
	temperature      = 0.7
)

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// generate sends one prompt and returns the cleaned response text.
func (c *OpenAI) generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	body, err := json.Marshal(chatRequest{
		Model:       c.cfg.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}

	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * 500 * time.Millisecond
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		text, retryable, err := c.doRequest(ctx, body)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !retryable {
			break
		}
		c.log.Warn("prose: retrying OpenAI call",
			zap.Int("attempt", attempt+1),
			zap.Error(err))
	}
	return "", lastErr
}

func (c *OpenAI) doRequest(ctx context.Context, body []byte) (text string, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", false, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", true, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", true, err
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return "", true, fmt.Errorf("prose: OpenAI status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("prose: OpenAI status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", false, err
	}
	if parsed.Error != nil {
		return "", false, fmt.Errorf("prose: OpenAI error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", false, errors.New("prose: OpenAI returned no choices")
	}
	return Clean(parsed.Choices[0].Message.Content), false, nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| Generator implementation                                                    |
*─────────────────────────────────────────────────────────────────────────────*/

func (c *OpenAI) SubjectLine(ctx context.Context, newsletterText string) (string, error) {
	prompt := fmt.Sprintf(`Generate a subject line for a friendly community tennis newsletter in Belair and Dulwich in South East London.

Newsletter content: %s
Tone: upbeat, clear, slightly playful but not cheesy
Audience: casual tennis players, families with kids

Examples:
- 🎾 Book Your Spot: Junior Courses Start Next Week
- ☀️ Still time to join! Adult courses, junior camps & tournament
- 📅 August Courses Now Open — Find Your Level

Return only the subject line, without quotes or numbering:`, newsletterText)
	return c.generate(ctx, prompt, 100)
}

func (c *OpenAI) PreviewText(ctx context.Context, newsletterText string) (string, error) {
	prompt := fmt.Sprintf(`Write a single preview text for a community tennis newsletter.

Requirements:
- Keep under 150 characters
- Audience: families and adults interested in local tennis
- Tone: warm, informative, lightly enthusiastic
- Highlight the following: %s
- Return only ONE preview text, not multiple options

Examples:
- New courses and fun events this July
- Summer tennis is here — join a course, camp or tournament

Return only the preview text:`, newsletterText)
	return c.generate(ctx, prompt, 100)
}

func (c *OpenAI) Summary(ctx context.Context, newsletterText string) (string, error) {
	prompt := fmt.Sprintf(`Write a short introductory paragraph (max 2 lines) for a friendly tennis newsletter.

Audience: local players and parents in South London
Tone: welcoming, friendly, lightly seasonal
Newsletter includes: %s

Mention Wimbledon or the weather if relevant. Avoid emojis at the start, but 1 is fine elsewhere. Make it sound like a friendly coach giving you a quick update.

Return only the summary:`, newsletterText)
	return c.generate(ctx, prompt, 150)
}

func (c *OpenAI) SectionIntro(ctx context.Context, section Section) (string, error) {
	prompt := fmt.Sprintf(`You are helping write short introductory text for a section in a community tennis newsletter. The section lists courses or events.

Write 1-2 warm, friendly lines introducing what's on offer, to go just above the bullet list.

Audience: casual adult players or parents of juniors
Tone: inviting, clear, and upbeat, like a trusted local coach
Do not start with an emoji.

Here is the section: %s

Return only the introductory paragraph:`, string(section))
	return c.generate(ctx, prompt, defaultMaxTokens)
}

func (c *OpenAI) TierDescription(ctx context.Context, tier models.SkillTier) (string, error) {
	prompt := fmt.Sprintf(`Generate a short, engaging description for a tennis skill level called %q.

Requirements:
- Keep under 100 characters
- Be encouraging and motivating
- Explain what this level is for
- Use natural, friendly tone
- No emojis

Examples:
- Perfect for those new to tennis or returning after a break.
- For players who are confident rallying and ready to level up.

Return only the description (no level name, no quotes):`, string(tier))
	return c.generate(ctx, prompt, 50)
}

func (c *OpenAI) EventDescription(ctx context.Context, title, details string) (string, error) {
	prompt := fmt.Sprintf(`You are writing a short, friendly description of an event for a community tennis newsletter.

Event title: %s
Staff notes: %s

Keep the key details but make it sound inviting and natural.
Style: max 3 sentences, with clear mention of date, time, and location.
Audience: adult recreational tennis players and parents of junior players in South London.
Tone: warm, clear, and lightly enthusiastic, not salesy.

Return only the rewritten event description:`, title, details)
	return c.generate(ctx, prompt, defaultMaxTokens)
}
