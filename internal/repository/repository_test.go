package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendNotification_ReturnsID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`"6650f1c2ab34cd56ef789012"`))
	}))
	defer server.Close()

	repo := NewHTTPRepository(server.URL, 5*time.Second)
	id, err := repo.SendNotification(context.Background(), "package=x | title=y | text=z", "device-1")

	require.NoError(t, err)
	assert.Equal(t, "6650f1c2ab34cd56ef789012", id, "quoted id should be unwrapped")
}

func TestSendNotification_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	repo := NewHTTPRepository(server.URL, time.Second)
	_, err := repo.SendNotification(context.Background(), "m", "")

	assert.Error(t, err)
}

func TestGetNotificationLogs_MapsAndParses(t *testing.T) {
	payload := `[
		{
			"id": 12,
			"packageName": "com.bcp.innovacxion.yapeapp",
			"title": "Yape!",
			"text": "Juan Perez te envió S/ 50.00",
			"createdAt": "2026-08-24T10:30:00"
		},
		{
			"id": "6650f1c2ab34cd56ef789012",
			"packageName": "com.bbva.plin",
			"title": "Plin",
			"text": "Recibiste S/ 20,5",
			"createdAt": "2026-08-23T08:00:00Z",
			"parsedData": {
				"packageName": "com.bbva.plin",
				"title": "Plin",
				"text": "Recibiste S/ 20,5",
				"amount": 20.5,
				"sender": null
			}
		},
		{
			"id": 14,
			"text": "sin monto ni remitente",
			"createdAt": "not-a-date"
		}
	]`

	var gotDeviceID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotDeviceID = r.URL.Query().Get("deviceId")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}))
	defer server.Close()

	repo := NewHTTPRepository(server.URL, 5*time.Second)
	logs, err := repo.GetNotificationLogs(context.Background(), "device-1")

	require.NoError(t, err)
	assert.Equal(t, "device-1", gotDeviceID)
	require.Len(t, logs, 3)

	// Numeric id carried as string; parsed locally as fallback.
	assert.Equal(t, "12", logs[0].ID)
	require.NotNil(t, logs[0].Parsed)
	require.NotNil(t, logs[0].Parsed.Amount)
	assert.InDelta(t, 50.0, *logs[0].Parsed.Amount, 0.001)
	require.NotNil(t, logs[0].Parsed.Sender)
	assert.Equal(t, "Juan Perez", *logs[0].Parsed.Sender)

	// Backend-precomputed fields win over local parsing.
	assert.Equal(t, "6650f1c2ab34cd56ef789012", logs[1].ID)
	require.NotNil(t, logs[1].Parsed)
	assert.InDelta(t, 20.5, *logs[1].Parsed.Amount, 0.001)
	assert.Nil(t, logs[1].Parsed.Sender)

	// A record with nothing parseable still survives in the list.
	require.NotNil(t, logs[2].Parsed)
	assert.Nil(t, logs[2].Parsed.Amount)
	assert.Nil(t, logs[2].Parsed.Sender)
	_, ok := logs[2].LocalTime()
	assert.False(t, ok, "malformed createdAt should not parse")
}

func TestWireID_AcceptsStringAndNumber(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "objectid string", raw: `"68a4f0c2e1b2c3d4e5f60718"`, want: "68a4f0c2e1b2c3d4e5f60718"},
		{name: "integer", raw: `12`, want: "12"},
		{name: "large integer keeps digits", raw: `9007199254740993`, want: "9007199254740993"},
		{name: "object rejected", raw: `{"oid":"x"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id wireID
			err := json.Unmarshal([]byte(tt.raw), &id)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(id))
		})
	}
}

func TestGetNotificationLogs_BackendDown(t *testing.T) {
	repo := NewHTTPRepository("http://127.0.0.1:1", time.Second)
	_, err := repo.GetNotificationLogs(context.Background(), "")
	assert.Error(t, err)
}
