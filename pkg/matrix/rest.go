package matrix

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RestClient talks to a Matrix homeserver over the client-server API.
// Only the pieces the notification path needs: whoami as the connect
// probe and m.room.message sends.
type RestClient struct {
	homeserver  string
	accessToken string
	httpClient  *http.Client
}

func NewRestClient(homeserver, accessToken string) (*RestClient, error) {
	if homeserver == "" {
		return nil, fmt.Errorf("matrix homeserver URL is empty")
	}
	if accessToken == "" {
		return nil, fmt.Errorf("matrix access token is empty")
	}

	return &RestClient{
		homeserver:  strings.TrimRight(homeserver, "/"),
		accessToken: accessToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

func (c *RestClient) Connect(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.homeserver+"/_matrix/client/v3/account/whoami", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("matrix connect failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("matrix connect failed: homeserver returned %d", resp.StatusCode)
	}

	return nil
}

func (c *RestClient) SendMessage(ctx context.Context, roomID, body string) error {
	payload, err := json.Marshal(map[string]string{
		"msgtype": "m.text",
		"body":    body,
	})
	if err != nil {
		return err
	}

	// Transaction ID makes the send idempotent on the homeserver side.
	txnID := uuid.NewString()
	endpoint := fmt.Sprintf("%s/_matrix/client/v3/rooms/%s/send/m.room.message/%s",
		c.homeserver, url.PathEscape(roomID), txnID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("matrix send failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("matrix send failed: homeserver returned %d for room %s", resp.StatusCode, roomID)
	}

	return nil
}

func (c *RestClient) Disconnect() {
	c.httpClient.CloseIdleConnections()
}
