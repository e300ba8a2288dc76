package msgraph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
)

const graphBaseURL = "https://graph.microsoft.com/v1.0"

// Client is an authenticated Microsoft Graph API client.
type Client struct {
	httpClient *http.Client
}

// NewAuthenticatedClient returns a Graph client for the signed-in user. It
// loads the stored token, refreshes it, or walks the device code flow as
// needed; the client's transport then keeps refreshing and persisting tokens
// as a side effect of use.
func NewAuthenticatedClient(ctx context.Context, tenantID, clientID string) (*Client, error) {
	cfg := oauth2Config(tenantID, clientID)
	tok, err := startingToken(ctx, cfg)
	if err != nil {
		return nil, err
	}
	ts := &savingTokenSource{ts: cfg.TokenSource(ctx, tok)}
	return &Client{httpClient: oauth2.NewClient(ctx, ts)}, nil
}

// savingTokenSource owns token persistence: every token it hands out,
// refreshed or not, is written back to disk so the next invocation starts
// from the freshest grant.
type savingTokenSource struct {
	ts oauth2.TokenSource
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.ts.Token()
	if err != nil {
		return nil, err
	}
	// Best-effort save; ignore errors.
	_ = saveToken(tok)
	return tok, nil
}

// DateTimeTimeZone is Graph's {dateTime, timeZone} pair.
type DateTimeTimeZone struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

// ItemBody is Graph's event body payload.
type ItemBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

// CalendarEvent is the payload for creating a calendar event. TransactionID
// makes the create idempotent: Graph returns the original event when the
// same transactionId is posted again.
type CalendarEvent struct {
	Subject       string           `json:"subject"`
	Body          *ItemBody        `json:"body,omitempty"`
	Start         DateTimeTimeZone `json:"start"`
	End           DateTimeTimeZone `json:"end"`
	Categories    []string         `json:"categories,omitempty"`
	TransactionID string           `json:"transactionId,omitempty"`
}

// CreateEvent posts a new event to the signed-in user's default calendar.
func (c *Client) CreateEvent(ctx context.Context, ev CalendarEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, graphBaseURL+"/me/events", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("graph request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("graph create event: %s: %s", resp.Status, string(body))
	}
	return nil
}
