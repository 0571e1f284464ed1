package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jolucode/fin-guard/internal/dashboard"
	"github.com/jolucode/fin-guard/internal/model"
	"github.com/jolucode/fin-guard/internal/refresh"
)

var testNow = time.Date(2026, time.August, 27, 12, 0, 0, 0, time.Local)

type stubRepo struct {
	logs []model.NotificationLog
	err  error
}

func (s *stubRepo) SendNotification(_ context.Context, _, _ string) (string, error) {
	return "", s.err
}

func (s *stubRepo) GetNotificationLogs(_ context.Context, _ string) ([]model.NotificationLog, error) {
	return s.logs, s.err
}

func testLogs() []model.NotificationLog {
	amount := 50.0
	sender := "Juan Perez"
	return []model.NotificationLog{
		{
			ID:          "1",
			PackageName: "com.bcp.innovacxion.yapeapp",
			CreatedAt:   testNow.Format("2006-01-02T15:04:05"),
			Parsed: &model.ParsedTransaction{
				PackageName: "com.bcp.innovacxion.yapeapp",
				Amount:      &amount,
				Sender:      &sender,
			},
		},
	}
}

func newTestModel(repo *stubRepo) Model {
	return NewModel(Config{
		Repository: repo,
		DeviceID:   "device-1",
		Now:        func() time.Time { return testNow },
	})
}

func TestModel_LogsLoadedRecomputesAggregates(t *testing.T) {
	m := newTestModel(&stubRepo{logs: testLogs()})

	updated, _ := m.Update(logsLoadedMsg{logs: testLogs()})
	got := updated.(Model)

	assert.False(t, got.loading)
	assert.Empty(t, got.errMsg)
	assert.Equal(t, 1, got.aggregates.TotalTransactions)
	assert.InDelta(t, 50.0, got.aggregates.TotalAmount, 0.001)
	assert.InDelta(t, 50.0, got.aggregates.Today.Amount, 0.001)
}

func TestModel_FetchFailureZeroesAggregates(t *testing.T) {
	m := newTestModel(&stubRepo{})
	updated, _ := m.Update(logsLoadedMsg{logs: testLogs()})
	m = updated.(Model)

	updated, _ = m.Update(logsFailedMsg{err: errors.New("connection refused")})
	got := updated.(Model)

	assert.NotEmpty(t, got.errMsg, "fetch failure must surface a user-facing error")
	assert.Zero(t, got.aggregates.TotalTransactions)
	assert.Zero(t, got.aggregates.TotalAmount)
	assert.Zero(t, got.aggregates.Distribution.Total())
	for i, a := range got.aggregates.Daily.Amounts {
		assert.Zerof(t, a, "day bucket %d", i)
	}
}

func TestModel_PeriodNavigationKeys(t *testing.T) {
	m := newTestModel(&stubRepo{})
	originalWeek := m.filter.WeekStart

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	got := updated.(Model)
	assert.True(t, got.filter.WeekStart.Before(originalWeek), "left should step one week back")

	updated, _ = got.Update(tea.KeyMsg{Type: tea.KeyRight})
	got = updated.(Model)
	assert.True(t, got.filter.WeekStart.Equal(originalWeek), "right should return to the original week")

	updated, _ = got.Update(tea.KeyMsg{Type: tea.KeyRight})
	got = updated.(Model)
	assert.True(t, got.filter.WeekStart.Equal(originalWeek), "navigating into the future must be blocked")
}

func TestModel_ModeKeysSwitchFilterMode(t *testing.T) {
	m := newTestModel(&stubRepo{})

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	got := updated.(Model)
	assert.Equal(t, dashboard.FilterMonth, got.filter.Mode)

	updated, _ = got.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'w'}})
	got = updated.(Model)
	assert.Equal(t, dashboard.FilterWeek, got.filter.Mode)
}

func TestModel_RefreshTagTriggersReload(t *testing.T) {
	bus := refresh.NewBus()
	m := NewModel(Config{
		Repository: &stubRepo{logs: testLogs()},
		Bus:        bus,
		Now:        func() time.Time { return testNow },
	})
	require.NotNil(t, m.refreshCh)
	defer m.refreshCancel()

	updated, cmd := m.Update(refreshMsg{scope: refresh.ScopeAll})
	got := updated.(Model)

	assert.True(t, got.loading, "an ALL-scope tag must reload the dashboard")
	assert.NotNil(t, cmd)

	// A home-only tag re-arms the watch without reloading.
	got.loading = false
	updated, cmd = got.Update(refreshMsg{scope: refresh.ScopeHome})
	got = updated.(Model)
	assert.False(t, got.loading)
	assert.NotNil(t, cmd)
}

func TestModel_ViewRendersWithoutData(t *testing.T) {
	m := newTestModel(&stubRepo{})
	out := m.View()
	assert.Contains(t, out, "FinGuard")
	assert.Contains(t, out, "Sem ")
}
