package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "service account path is sufficient",
			config:  Config{ServiceAccountPath: "/keys/sa.json"},
			wantErr: false,
		},
		{
			name: "full oauth2 credentials are sufficient",
			config: Config{
				ClientID:     "id",
				ClientSecret: "secret",
				RefreshToken: "token",
			},
			wantErr: false,
		},
		{
			name:    "nothing configured",
			config:  Config{},
			wantErr: true,
		},
		{
			name: "partial oauth2 credentials",
			config: Config{
				ClientID:     "id",
				ClientSecret: "secret",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSummaryRows_IncludesDistribution(t *testing.T) {
	rows := summaryRows(exampleAggregates(), "Agosto 2026")

	assert.Equal(t, []any{"Período", "Agosto 2026"}, rows[0])
	assert.Equal(t, "Yape", rows[5][0])
	assert.Equal(t, "Plin", rows[6][0])
	assert.Equal(t, "Otros", rows[7][0])
}
