package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// deploymentHeader identifies the model deployment behind the endpoint.
const deploymentHeader = "azureml-model-deployment"

// Message is one prior conversation turn in the wire format the chat
// endpoint expects.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type askRequest struct {
	ChatInput   string    `json:"chat_input"`
	ChatHistory []Message `json:"chat_history"`
}

// Reference mirrors the endpoint's reference shape. Text may be null.
type Reference struct {
	Metadata struct {
		Source struct {
			Filename string `json:"filename"`
		} `json:"source"`
		PageNumber int `json:"page_number"`
	} `json:"metadata"`
	Text *string `json:"text"`
}

// Answer is the parsed endpoint response.
type Answer struct {
	ChatOutput string      `json:"chat_output"`
	References []Reference `json:"references"`
}

// Client relays one question at a time to the hosted chat endpoint. The
// endpoint does retrieval and generation; this client only speaks its JSON
// protocol.
type Client struct {
	endpoint   string
	apiKey     string
	deployment string
	httpClient *http.Client
}

func NewClient(endpoint, apiKey, deployment string, timeout time.Duration) *Client {
	return &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		deployment: deployment,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Ask sends one prompt and blocks until the endpoint answers or the timeout
// fires. Every failure mode (network, non-2xx, malformed body, missing
// answer) comes back as a *Error so callers can degrade gracefully.
func (c *Client) Ask(ctx context.Context, prompt string, history []Message) (*Answer, error) {
	if history == nil {
		// The endpoint requires the field to be present, even when empty.
		history = []Message{}
	}

	jsonData, err := json.Marshal(askRequest{ChatInput: prompt, ChatHistory: history})
	if err != nil {
		return nil, &Error{Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, &Error{Err: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	}
	if c.deployment != "" {
		req.Header.Set(deploymentHeader, c.deployment)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("chat endpoint error (status %d): %s", resp.StatusCode, string(bodyBytes)),
		}
	}

	var answer Answer
	if err := json.Unmarshal(bodyBytes, &answer); err != nil {
		return nil, &Error{Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	if answer.ChatOutput == "" {
		return nil, &Error{Err: fmt.Errorf("chat endpoint returned no chat_output")}
	}

	return &answer, nil
}
