// Package transport delivers captured notifications to the backend's
// ingestion endpoint. Sends are fire-and-forget: a failure is logged and the
// message is lost, by design.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jolucode/fin-guard/internal/common"
	"github.com/jolucode/fin-guard/internal/model"
)

// Sender is the outbound side of the capture pipeline.
type Sender interface {
	Send(ctx context.Context, msg model.OutboundMessage)
}

// Client posts captured messages over HTTP. Each invocation is independent;
// there is no queue and no ordering across concurrent sends.
type Client struct {
	httpClient *http.Client
	endpoint   string
}

// NewClient creates a transport client for the given ingestion endpoint.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Send posts one captured message. The HTTP status is inspected purely for
// logging; callers never consume a result.
func (c *Client) Send(ctx context.Context, msg model.OutboundMessage) {
	body, err := json.Marshal(msg)
	if err != nil {
		common.LogError(err, "failed to encode outbound message", nil)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		common.LogError(err, "failed to build ingestion request", common.Fields{"endpoint": c.endpoint})
		return
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		common.LogError(err, "capture send failed", common.Fields{"endpoint": c.endpoint})
		return
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		common.LogError(fmt.Errorf("%w: %d", common.ErrBackendStatus, resp.StatusCode),
			"capture rejected by backend", common.Fields{"status": resp.StatusCode})
		return
	}

	common.LogDebug("capture sent", common.Fields{"status": resp.StatusCode, "device_id": msg.DeviceID})
}
