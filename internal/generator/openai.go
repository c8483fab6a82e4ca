package generator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/hedlaron/microadventures/config"
	"github.com/hedlaron/microadventures/internal/utils"
)

// Client talks to an OpenAI-compatible chat completions API and turns the
// response into a validated AdventureDocument. Any failure (transport,
// malformed JSON, missing fields) is returned as an error so the caller can
// substitute the fallback document.
type Client struct {
	httpClient *http.Client
	apiKey     string
	model      string
	baseURL    string
	images     *ImageClient
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		httpClient: utils.NewHTTPClient(60 * time.Second),
		apiKey:     cfg.OpenAIAPIKey,
		model:      cfg.OpenAIModel,
		baseURL:    cfg.OpenAIBaseURL,
		images:     NewImageClient(cfg),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
	Temperature float64 `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate calls the upstream model with the trip parameters and returns the
// structured itinerary. The image URL is filled in best-effort.
func (c *Client) Generate(req Request) (*AdventureDocument, error) {
	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildUserPrompt(req)},
		},
		Temperature: 0.7,
	}
	payload.ResponseFormat.Type = "json_object"

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequest(http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("api returned error status: %d, body: %s", resp.StatusCode, string(respBody))
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return nil, errors.New("empty completion response")
	}

	var doc AdventureDocument
	if err := json.Unmarshal([]byte(chat.Choices[0].Message.Content), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse itinerary document: %w", err)
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}

	activityContext := req.ActivityType
	if req.CustomActivity != "" {
		activityContext = req.CustomActivity
	}
	imageURL, err := c.images.AdventureImage(activityContext, req.Location, doc.Title, doc.Description)
	if err != nil {
		zap.L().Warn("image lookup failed, using fallback image", zap.Error(err))
		imageURL = c.images.FallbackImage()
	}
	doc.ImageURL = imageURL

	return &doc, nil
}
