package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jolucode/fin-guard/internal/dashboard"
	"github.com/jolucode/fin-guard/internal/model"
)

func exampleAggregates() dashboard.Aggregates {
	return dashboard.Aggregates{
		TotalTransactions: 2,
		TotalAmount:       70.5,
		Distribution: dashboard.Distribution{
			YapeAmount: 50,
			PlinAmount: 20.5,
		},
	}
}

func TestTransactionRows(t *testing.T) {
	amount := 50.0
	sender := "Juan Perez"
	logs := []model.NotificationLog{
		{
			ID:          "1",
			PackageName: "com.bcp.innovacxion.yapeapp",
			CreatedAt:   "2026-08-24T10:30:00",
			Parsed: &model.ParsedTransaction{
				Amount: &amount,
				Sender: &sender,
			},
		},
		{
			ID:        "2",
			CreatedAt: "not-a-date",
			Parsed:    &model.ParsedTransaction{},
		},
	}

	rows := transactionRows(logs)
	require.Len(t, rows, 3, "header plus one row per log")

	assert.Equal(t, []any{"Fecha", "Fuente", "Remitente", "Monto"}, rows[0])
	assert.Equal(t, "24/08/2026 10:30", rows[1][0])
	assert.Equal(t, "Juan Perez", rows[1][2])
	assert.Equal(t, 50.0, rows[1][3])

	// Unparseable timestamp falls back to the raw string, missing amount to blank.
	assert.Equal(t, "not-a-date", rows[2][0])
	assert.Equal(t, "", rows[2][3])
}
