package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jolucode/fin-guard/internal/dashboard"
	"github.com/jolucode/fin-guard/internal/model"
)

var dayLabels = [7]string{"Lun", "Mar", "Mié", "Jue", "Vie", "Sáb", "Dom"}

const maxListRows = 10

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.renderHeader(),
		m.renderCards(),
		m.renderDistribution(),
		m.renderHistogram(),
		m.renderTransactions(),
		m.renderFooter(),
	}
	return strings.Join(sections, "\n\n") + "\n"
}

func (m Model) renderHeader() string {
	title := TitleStyle.Render("FinGuard — Ventas")
	period := SubtitleStyle.Render(m.filter.PeriodLabel())

	line := lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", period)
	if m.loading {
		line += SubtleStyle.Render("  cargando…")
	}
	if m.errMsg != "" {
		banner := ErrorStyle.Render("⚠ " + m.errMsg + " (r para reintentar)")
		return line + "\n" + banner
	}
	return line
}

func (m Model) renderCards() string {
	total := CardStyle.Render(fmt.Sprintf("Total vendido\n%s", SuccessStyle.Render(formatAmount(m.aggregates.TotalAmount))))
	count := CardStyle.Render(fmt.Sprintf("Transacciones\n%d", m.aggregates.TotalTransactions))

	today := m.aggregates.Today
	todayCard := CardStyle.Render(fmt.Sprintf("Hoy\n%s en %d ops", formatAmount(today.Amount), today.Count))

	last := "—"
	if today.Last != nil {
		last = describeLog(today.Last)
	}
	lastCard := CardStyle.Render("Última\n" + last)

	return lipgloss.JoinHorizontal(lipgloss.Top, total, count, todayCard, lastCard)
}

func (m Model) renderDistribution() string {
	d := m.aggregates.Distribution
	rows := []string{
		TitleStyle.Render("Por fuente de pago"),
		distributionRow(YapeStyle, "Yape", d.YapeAmount, d.YapePercentage()),
		distributionRow(PlinStyle, "Plin", d.PlinAmount, d.PlinPercentage()),
		distributionRow(OtherStyle, "Otros", d.OtherAmount, d.OtherPercentage()),
	}
	return strings.Join(rows, "\n")
}

func distributionRow(style lipgloss.Style, label string, amount, pct float64) string {
	barWidth := int(pct / 100 * 30)
	bar := strings.Repeat("█", barWidth)
	return fmt.Sprintf("%-6s %s %5.1f%%  %s",
		style.Render(label), style.Render(bar), pct, formatAmount(amount))
}

// renderHistogram draws one column per day of the selected week. Bar heights
// come from the aggregation engine's clamped fractions so empty days stay
// visible.
func (m Model) renderHistogram() string {
	const barHeight = 6

	h := m.aggregates.Daily
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Semana seleccionada"))
	b.WriteString("\n")

	for row := barHeight; row >= 1; row-- {
		threshold := float64(row) / barHeight
		for day := 0; day < 7; day++ {
			if h.HeightFraction(day) >= threshold {
				b.WriteString(YapeStyle.Render(" ██ "))
			} else {
				b.WriteString("    ")
			}
		}
		b.WriteString("\n")
	}
	for day := 0; day < 7; day++ {
		b.WriteString(fmt.Sprintf(" %s", dayLabels[day]))
	}
	b.WriteString("\n")
	for day := 0; day < 7; day++ {
		b.WriteString(SubtleStyle.Render(fmt.Sprintf("%4.0f", h.Amounts[day])))
	}
	return b.String()
}

func (m Model) renderTransactions() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Transacciones"))
	b.WriteString("  ")
	b.WriteString(SubtleStyle.Render(fmt.Sprintf("filtro: %s", searchFilterLabel(m.filter.Filter))))
	b.WriteString("\n")

	if m.searching || m.filter.Query != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}

	filtered := m.aggregates.Filtered
	if len(filtered) == 0 {
		if m.filter.Query != "" {
			b.WriteString(SubtleStyle.Render(fmt.Sprintf("Sin resultados para %q", m.filter.Query)))
		} else {
			b.WriteString(SubtleStyle.Render("Sin transacciones registradas"))
		}
		return b.String()
	}

	rows := filtered
	if len(rows) > maxListRows {
		rows = rows[:maxListRows]
	}
	for i := range rows {
		b.WriteString(renderLogRow(&rows[i]))
		b.WriteString("\n")
	}
	if len(filtered) > maxListRows {
		b.WriteString(SubtleStyle.Render(fmt.Sprintf("… y %d más", len(filtered)-maxListRows)))
	}
	return b.String()
}

func renderLogRow(log *model.NotificationLog) string {
	style := OtherStyle
	source := "otro"
	pkg := strings.ToLower(log.PackageName)
	switch {
	case strings.Contains(pkg, "yape"):
		style, source = YapeStyle, "yape"
	case strings.Contains(pkg, "plin"):
		style, source = PlinStyle, "plin"
	}

	when := "--/--"
	if ts, ok := log.LocalTime(); ok {
		when = ts.Format("02/01/2006 - 15:04")
	}

	amount := "      —"
	if log.HasAmount() {
		amount = formatAmount(log.Amount())
	}

	sender := log.Sender()
	if sender == "" {
		sender = SubtleStyle.Render("(sin remitente)")
	}

	return fmt.Sprintf("%s  %s  %10s  %s", style.Render(fmt.Sprintf("%-4s", source)), when, amount, sender)
}

func (m Model) renderFooter() string {
	help := "w/m período · ←/→ navegar · / buscar · tab campo · r refrescar · q salir"
	return SubtleStyle.Render(help)
}

func describeLog(log *model.NotificationLog) string {
	sender := log.Sender()
	if sender == "" {
		sender = "desconocido"
	}
	if log.HasAmount() {
		return fmt.Sprintf("%s de %s", formatAmount(log.Amount()), sender)
	}
	return sender
}

func formatAmount(v float64) string {
	return fmt.Sprintf("S/ %.2f", v)
}

func searchFilterLabel(f dashboard.SearchFilter) string {
	switch f {
	case dashboard.SearchAmount:
		return "monto"
	case dashboard.SearchDate:
		return "fecha"
	case dashboard.SearchSender:
		return "remitente"
	default:
		return "todos"
	}
}
