// Package genai is a thin binding over an OpenAI-compatible generative
// service, used for constrained lecture recommendation. It is a peer of the
// scoring core, not part of it: the two only share the catalog's lecture
// shape. All credentials arrive through injected configuration.
package genai

import (
	"context"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/kaptinlin/jsonrepair"
	openai "github.com/sashabaranov/go-openai"

	"github.com/microlearn/sessionrank/internal/adapters/catalog"
)

// Generation parameters for the constrained recommendation prompt.
const (
	genTemperature = 0.2
	genMaxTokens   = 512
)

// Config carries the injected connection settings. No defaults are embedded
// in code.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Client issues constrained-choice recommendation calls.
type Client struct {
	api   *openai.Client
	model string
}

// NewClient builds a client from injected configuration. BaseURL is optional
// and supports OpenAI-compatible gateways.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Model == "" {
		return nil, ErrMissingModel
	}
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return &Client{
		api:   openai.NewClientWithConfig(clientConfig),
		model: cfg.Model,
	}, nil
}

// availableLecture is the slim shape exposed to the model: enough to choose
// from, nothing to leak transcripts.
type availableLecture struct {
	LectureID string `json:"lecture_id"`
	Title     string `json:"title"`
	Course    string `json:"course"`
}

type recommendation struct {
	RecommendedLectureIDs []string `json:"recommended_lecture_ids"`
}

// RecommendLectures asks the generative service to pick at most topK lecture
// ids for the query, constrained to the given catalog entries. Ids the model
// invents are dropped by a hard safety filter before returning.
func (c *Client) RecommendLectures(ctx context.Context, query string, lectures []catalog.Lecture, topK int) ([]string, error) {
	prompt, err := buildPrompt(query, lectures, topK)
	if err != nil {
		return nil, err
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: genTemperature,
		MaxTokens:   genMaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerate, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty response", ErrGenerate)
	}

	ids, err := parseRecommendation(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	// Hard safety filter: only ids that exist in the catalog survive.
	valid := make(map[string]bool, len(lectures))
	for _, lec := range lectures {
		valid[lec.LectureID] = true
	}
	var safe []string
	for _, id := range ids {
		if valid[id] {
			safe = append(safe, id)
		}
	}
	if len(safe) > topK {
		safe = safe[:topK]
	}
	return safe, nil
}

func buildPrompt(query string, lectures []catalog.Lecture, topK int) (string, error) {
	available := make([]availableLecture, len(lectures))
	for i, lec := range lectures {
		available[i] = availableLecture{
			LectureID: lec.LectureID,
			Title:     lec.Title,
			Course:    lec.Course,
		}
	}
	list, err := json.MarshalIndent(available, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerate, err)
	}

	return fmt.Sprintf(`You are a course recommendation system.

The student query is:
%q

You are ONLY allowed to choose from the following lectures:

%s

Return ONLY a JSON object in this format:

{
  "recommended_lecture_ids": ["ID1","ID2","ID3"]
}

Choose at most %d lecture ids.
Do NOT invent any ids.
`, query, list, topK), nil
}

// parseRecommendation tolerates fenced or slightly broken JSON output.
func parseRecommendation(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.ReplaceAll(raw, "```json", "")
		raw = strings.ReplaceAll(raw, "```", "")
		raw = strings.TrimSpace(raw)
	}
	if repaired, err := jsonrepair.JSONRepair(raw); err == nil {
		raw = repaired
	}

	var rec recommendation
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return rec.RecommendedLectureIDs, nil
}
