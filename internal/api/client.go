// Package api is the HTTP client the CLI and MCP server use to talk to
// snipitd.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/CuriouslyCory/snippit.fyi/internal/crypto"
	"github.com/CuriouslyCory/snippit.fyi/internal/models"
)

const defaultBaseURL = "http://localhost:8080/v1"

// Client talks to the snipitd HTTP API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	APIKey     string
}

// NewClient creates a new API client
func NewClient() *Client {
	baseURL := os.Getenv("SNIPIT_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		BaseURL: baseURL,
		APIKey:  crypto.LoadAPIKey(),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (c *Client) makeRequest(method, endpoint string, body interface{}) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, c.BaseURL+endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp errorResponse
		if json.Unmarshal(data, &errResp) == nil && errResp.Error != "" {
			return nil, fmt.Errorf("%s", errResp.Error)
		}
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return data, nil
}

// Login exchanges credentials for an API key and sets it on the client.
func (c *Client) Login(email, password string) (string, error) {
	data, err := c.makeRequest(http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return "", err
	}
	var resp struct {
		APIKey string `json:"api_key"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("failed to decode login response: %w", err)
	}
	c.APIKey = resp.APIKey
	return resp.APIKey, nil
}

// Register creates an account and sets the returned API key on the client.
func (c *Client) Register(name, email, password string) (string, error) {
	data, err := c.makeRequest(http.MethodPost, "/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	if err != nil {
		return "", err
	}
	var resp struct {
		APIKey string `json:"api_key"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("failed to decode register response: %w", err)
	}
	c.APIKey = resp.APIKey
	return resp.APIKey, nil
}

// GetNext fetches the next feed card. A nil snipit means the pool is empty.
// not excludes the card just shown; pass 0 for none.
func (c *Client) GetNext(feed string, not uint) (*models.Snipit, error) {
	endpoint := "/feed/next?feed=" + feed
	if not != 0 {
		endpoint = fmt.Sprintf("%s&not=%d", endpoint, not)
	}
	data, err := c.makeRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Snipit *models.Snipit `json:"snipit"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode feed response: %w", err)
	}
	return resp.Snipit, nil
}

// Check acknowledges a snipit.
func (c *Client) Check(id uint) error {
	_, err := c.makeRequest(http.MethodPost, fmt.Sprintf("/snipits/%d/check", id), nil)
	return err
}

// Skip dismisses a snipit permanently.
func (c *Client) Skip(id uint) error {
	_, err := c.makeRequest(http.MethodPost, fmt.Sprintf("/snipits/%d/skip", id), nil)
	return err
}

// CreateSnipit creates a new snipit.
func (c *Client) CreateSnipit(prompt string, isPublic bool, tags []string) (*models.Snipit, error) {
	data, err := c.makeRequest(http.MethodPost, "/snipits", map[string]interface{}{
		"prompt":    prompt,
		"is_public": isPublic,
		"tags":      tags,
	})
	if err != nil {
		return nil, err
	}
	var snipit models.Snipit
	if err := json.Unmarshal(data, &snipit); err != nil {
		return nil, fmt.Errorf("failed to decode snipit: %w", err)
	}
	return &snipit, nil
}
