package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrRemoteService covers every failure of the language-model collaborator:
// network trouble, non-success status, malformed reply. Callers retry or
// degrade; local journal data is never affected.
var ErrRemoteService = errors.New("remote language service unavailable")

// LLMClient posts structured journal payloads to the external
// language-model endpoint and returns the generated text. The endpoint is
// a relay the user configures; the client never sends credentials.
type LLMClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewLLMClient(baseURL string, timeout time.Duration) *LLMClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &LLMClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type llmResponse struct {
	Text string `json:"text"`
}

// Generate posts the payload to the named route ("report" or "echo") and
// returns the text field of the reply.
func (client *LLMClient) Generate(ctx context.Context, route string, payload any) (string, error) {
	if client.baseURL == "" {
		return "", fmt.Errorf("%w: no endpoint configured", ErrRemoteService)
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode %s payload: %w", route, err)
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, client.baseURL+"/"+route, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRemoteService, err)
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := client.httpClient.Do(request)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRemoteService, err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d", ErrRemoteService, response.StatusCode)
	}
	decoded := llmResponse{}
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRemoteService, err)
	}
	if strings.TrimSpace(decoded.Text) == "" {
		return "", fmt.Errorf("%w: empty reply", ErrRemoteService)
	}
	return decoded.Text, nil
}
