package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/oukeidos/promise/internal/apperrors"
	"github.com/oukeidos/promise/internal/metadata"
	"google.golang.org/api/option"
)

// Client handles communication with the Gemini API.
type Client struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	timeout time.Duration
}

// NewClient creates a new Gemini client that answers with a {text, reference} object.
func NewClient(ctx context.Context, apiKey string, modelName string) (*Client, error) {
	// option.WithHTTPClient breaks the API key header injection in genai, so
	// deadlines are applied through the context instead.
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(modelName) == "" {
		modelName = metadata.DefaultGeminiModel
	}

	model := client.GenerativeModel(modelName)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = quoteSchema()

	return &Client{
		client: client,
		model:  model,
	}, nil
}

func quoteSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"text": {
				Type:        genai.TypeString,
				Description: "The quote text or prayer body.",
			},
			"reference": {
				Type:        genai.TypeString,
				Description: "The source, author, or book/chapter:verse.",
			},
		},
		Required: []string{"text", "reference"},
	}
}

// Close closes the underlying genai client.
func (c *Client) Close() error {
	return c.client.Close()
}

// SetSystemInstruction sets the system prompt for the model.
func (c *Client) SetSystemInstruction(prompt string) {
	c.model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(prompt)},
	}
}

// SetTimeout bounds each Generate call. Zero means no deadline.
func (c *Client) SetTimeout(d time.Duration) {
	c.timeout = d
}

// Generator is the seam used by the quote fetcher.
type Generator interface {
	Generate(ctx context.Context, request RequestData) (*ResponseData, error)
	SetSystemInstruction(prompt string)
}

var _ Generator = (*Client)(nil)

// Generate sends the prompt to Gemini and decodes the structured answer.
func (c *Client) Generate(ctx context.Context, request RequestData) (*ResponseData, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.model.GenerateContent(ctx, genai.Text(request.Prompt))
	if err != nil {
		return nil, classifyGeminiError(err)
	}

	text, err := extractResponseText(resp)
	if err != nil {
		return nil, apperrors.Validation(err)
	}
	data, err := decodeResponse(text)
	if err != nil {
		return nil, apperrors.Validation(err)
	}

	if resp.UsageMetadata != nil {
		data.Usage = UsageMetadata{
			PromptTokenCount:     int(resp.UsageMetadata.PromptTokenCount),
			CandidatesTokenCount: int(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokenCount:      int(resp.UsageMetadata.TotalTokenCount),
		}
	}
	return data, nil
}

// decodeResponse parses the JSON object and requires both fields to be non-blank.
func decodeResponse(text string) (*ResponseData, error) {
	text = stripCodeFence(text)
	if text == "" {
		return nil, fmt.Errorf("empty response payload")
	}
	var data ResponseData
	if err := json.Unmarshal([]byte(text), &data); err != nil {
		// raw model output is not echoed into the error
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	data.Text = strings.TrimSpace(data.Text)
	data.Reference = strings.TrimSpace(data.Reference)
	if data.Text == "" {
		return nil, fmt.Errorf("response is missing text")
	}
	if data.Reference == "" {
		return nil, fmt.Errorf("response is missing reference")
	}
	return &data, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

var (
	errNoResponse   = errors.New("no response received from Gemini")
	errNoCandidates = errors.New("no candidates returned from Gemini")
	errNoText       = errors.New("no text parts found in Gemini response")
)

// extractResponseText joins the text parts of the first candidate that has any.
func extractResponseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", errNoResponse
	}
	if len(resp.Candidates) == 0 {
		return "", errNoCandidates
	}
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		var combined strings.Builder
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				combined.WriteString(string(text))
			}
		}
		if combined.Len() > 0 {
			return combined.String(), nil
		}
	}
	return "", errNoText
}
