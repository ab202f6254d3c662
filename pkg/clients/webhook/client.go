package webhook

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/geotree/internal/config"
)

// Client posts report notifications to an HTTP endpoint.
type Client interface {
	PostReport(ctx context.Context, req ReportMessage) error
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
	url        string
}

// NewClient builds a webhook client using the provided configuration values.
func NewClient(cfg config.WebhookConfig) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)
	if cfg.Token != "" {
		restyClient.SetAuthToken(cfg.Token)
	}

	return &APIClient{
		httpClient: restyClient,
		url:        cfg.URL,
	}
}

// ReportMessage is the JSON body sent to the webhook.
type ReportMessage struct {
	Text   string `json:"text"`
	Date   string `json:"date"`
	Report any    `json:"report,omitempty"`
}

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// PostReport delivers one report message.
func (c *APIClient) PostReport(ctx context.Context, req ReportMessage) error {
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		SetError(apiErr).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("post report webhook: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := apiErr.Message
		if message == "" {
			message = apiErr.Error
		}
		return fmt.Errorf("report webhook error: status=%d, message=%s", resp.StatusCode(), message)
	}

	return nil
}
