// Package repository talks to the backend's notification API: one-shot
// ingestion and the historical log fetch that feeds the dashboard.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jolucode/fin-guard/internal/common"
	"github.com/jolucode/fin-guard/internal/model"
	"github.com/jolucode/fin-guard/internal/parser"
)

// NotificationRepository is the backend-facing data access interface.
type NotificationRepository interface {
	SendNotification(ctx context.Context, message, deviceID string) (string, error)
	GetNotificationLogs(ctx context.Context, deviceID string) ([]model.NotificationLog, error)
}

// HTTPRepository implements NotificationRepository against the JSON API.
type HTTPRepository struct {
	httpClient *http.Client
	endpoint   string
}

// NewHTTPRepository creates a repository for the given notifications endpoint.
func NewHTTPRepository(endpoint string, timeout time.Duration) *HTTPRepository {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPRepository{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// wireID carries the record id as a string. Older backends issued numeric
// ids, newer ones ObjectId strings; both shapes arrive on the same endpoint.
type wireID string

func (w *wireID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*w = wireID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id is neither string nor number: %s", data)
	}
	*w = wireID(n.String())
	return nil
}

// notificationLogDTO mirrors one wire record.
type notificationLogDTO struct {
	ID          wireID         `json:"id"`
	PackageName string         `json:"packageName"`
	Title       string         `json:"title"`
	Text        string         `json:"text"`
	DeviceID    string         `json:"deviceId"`
	CreatedAt   string         `json:"createdAt"`
	ParsedData  *parsedDataDTO `json:"parsedData"`
}

type parsedDataDTO struct {
	PackageName string   `json:"packageName"`
	Title       string   `json:"title"`
	Text        string   `json:"text"`
	Amount      *float64 `json:"amount"`
	Sender      *string  `json:"sender"`
}

type sendRequestDTO struct {
	Message  string `json:"message"`
	DeviceID string `json:"deviceId,omitempty"`
}

// SendNotification posts a raw message and returns the backend-assigned id.
func (r *HTTPRepository) SendNotification(ctx context.Context, message, deviceID string) (string, error) {
	body, err := json.Marshal(sendRequestDTO{Message: message, DeviceID: deviceID})
	if err != nil {
		return "", fmt.Errorf("failed to encode notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, strings.NewReader(string(body)))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrBackendUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %d", common.ErrBackendStatus, resp.StatusCode)
	}

	// The backend returns a bare identifier, sometimes JSON-quoted.
	id := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	return id, nil
}

// GetNotificationLogs fetches and maps the historical log for a device.
// One malformed record degrades to Parsed == nil instead of failing the list.
func (r *HTTPRepository) GetNotificationLogs(ctx context.Context, deviceID string) ([]model.NotificationLog, error) {
	endpoint := r.endpoint
	if deviceID != "" {
		endpoint += "?deviceId=" + url.QueryEscape(deviceID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrBackendUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %d", common.ErrBackendStatus, resp.StatusCode)
	}

	var dtos []notificationLogDTO
	if err := json.NewDecoder(resp.Body).Decode(&dtos); err != nil {
		return nil, fmt.Errorf("failed to decode logs: %w", err)
	}

	logs := make([]model.NotificationLog, 0, len(dtos))
	for _, dto := range dtos {
		logs = append(logs, mapLog(dto))
	}
	return logs, nil
}

func mapLog(dto notificationLogDTO) model.NotificationLog {
	return model.NotificationLog{
		ID:          string(dto.ID),
		PackageName: dto.PackageName,
		Title:       dto.Title,
		Text:        dto.Text,
		DeviceID:    dto.DeviceID,
		CreatedAt:   dto.CreatedAt,
		Parsed:      parsedFor(dto),
	}
}

// parsedFor prefers backend-precomputed fields and falls back to local
// parsing. Any failure in the fallback isolates to this record.
func parsedFor(dto notificationLogDTO) (parsed *model.ParsedTransaction) {
	defer func() {
		if r := recover(); r != nil {
			common.LogDebug("parse fallback failed for record", common.Fields{"id": string(dto.ID), "panic": r})
			parsed = nil
		}
	}()

	if dto.ParsedData != nil {
		return &model.ParsedTransaction{
			PackageName: dto.ParsedData.PackageName,
			Title:       dto.ParsedData.Title,
			Text:        dto.ParsedData.Text,
			Amount:      dto.ParsedData.Amount,
			Sender:      dto.ParsedData.Sender,
		}
	}

	p := parser.Parse(dto.PackageName, dto.Title, dto.Text)
	return &p
}
