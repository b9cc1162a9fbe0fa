package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alejandrodnm/agentboard/internal/domain"
	"github.com/alejandrodnm/agentboard/internal/readmodel"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// Console implementa ports.Notifier pintando el dashboard en la terminal.
// En modo compacto imprime una línea de métricas por ciclo; en modo tabla
// re-renderiza cada vista que cambió. El filtro de fecha/agente se aplica a
// la tabla de trades y al decision log, nunca a las queries.
type Console struct {
	out    io.Writer
	table  bool
	filter readmodel.TradeFilter

	profit *color.Color
	loss   *color.Color
}

// NewConsole crea un renderer que escribe a stdout.
func NewConsole(table bool, filter readmodel.TradeFilter) *Console {
	return newConsole(os.Stdout, table, filter)
}

// NewConsoleWriter crea un renderer para tests.
func NewConsoleWriter(w io.Writer, table bool, filter readmodel.TradeFilter) *Console {
	return newConsole(w, table, filter)
}

func newConsole(w io.Writer, table bool, filter readmodel.TradeFilter) *Console {
	return &Console{
		out:    w,
		table:  table,
		filter: filter,
		profit: color.New(color.FgGreen),
		loss:   color.New(color.FgRed),
	}
}

// Notify pinta las vistas marcadas como cambiadas en el update.
// Un ciclo sin datos imprime el placeholder, nunca tablas viejas.
func (c *Console) Notify(_ context.Context, up domain.Update) error {
	if up.DataUnavailable {
		fmt.Fprintf(c.out, "[%s] no data yet (store unavailable)\n", time.Now().Format("15:04:05"))
		return nil
	}
	if !up.Changed.Any() {
		return nil
	}

	if !c.table {
		if up.Changed.Summary {
			c.printSummaryLine(up.Snapshot.Summary)
		}
		return nil
	}

	if up.Changed.Summary {
		c.printSummaryLine(up.Snapshot.Summary)
	}
	if up.Changed.Performance {
		c.printLeaderboard(up.Snapshot.Performance)
	}
	if up.Changed.Equity {
		c.printEquity(up.Snapshot.Equity)
	}
	if up.Changed.Trades {
		filtered := c.filter.Apply(up.Snapshot.Trades)
		c.printTrades(filtered)
		c.printDecisionLog(filtered)
	}
	return nil
}

// printSummaryLine imprime las métricas de cabecera en una línea.
func (c *Console) printSummaryLine(s domain.Summary) {
	now := time.Now().Format("15:04:05")
	fmt.Fprintf(c.out, "[%s] trades:%d pnl:%s win:%.1f%% sentiment:%s\n",
		now, s.TotalTrades, c.colorProfit(s.TotalProfit), s.WinRate, s.LatestSentiment)
}

// printLeaderboard pinta el ranking de agentes por profit total.
func (c *Console) printLeaderboard(perfs []domain.AgentPerformance) {
	if len(perfs) == 0 {
		fmt.Fprintln(c.out, "  (no agent performance yet)")
		return
	}

	fmt.Fprintln(c.out, "\n=== AGENT LEADERBOARD ===")
	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Agent", "Trades", "Wins", "Win%", "Total", "Avg", "AvgConf")

	for i, p := range perfs {
		table.Append(
			fmt.Sprintf("%d", i+1),
			p.AgentName,
			fmt.Sprintf("%d", p.TotalTrades),
			fmt.Sprintf("%d", p.Wins),
			fmt.Sprintf("%.1f%%", p.WinRate()),
			c.colorProfit(p.TotalProfit),
			fmt.Sprintf("%.0f", p.AvgProfit),
			fmtConfidence(p.AvgConfidence),
		)
	}
	table.Render()
}

// printEquity imprime el estado actual de la curva: puntos y último acumulado.
func (c *Console) printEquity(curve []domain.EquityPoint) {
	if len(curve) == 0 {
		fmt.Fprintln(c.out, "  (no equity yet)")
		return
	}
	last := curve[len(curve)-1]
	fmt.Fprintf(c.out, "\n=== EQUITY === %d closed trades, cumulative %s (as of %s)\n",
		len(curve), c.colorProfit(last.Cumulative), last.Timestamp.Format("2006-01-02 15:04"))
}

// printTrades pinta la tabla de histórico con la celda de profit coloreada
// según domain.ProfitStyle.
func (c *Console) printTrades(trades []domain.Trade) {
	if len(trades) == 0 {
		fmt.Fprintln(c.out, "  (no trades yet)")
		return
	}

	fmt.Fprintln(c.out, "\n=== TRADE HISTORY ===")
	table := tablewriter.NewWriter(c.out)
	table.Header("Time", "Symbol", "Action", "Entry", "SL", "TP", "Exit", "Profit", "Agent", "Conf")

	for _, t := range trades {
		table.Append(
			t.Timestamp.Format("01-02 15:04"),
			t.Symbol,
			t.Action,
			fmtPrice(t.Entry),
			fmtPrice(t.StopLoss),
			fmtPrice(t.TakeProfit),
			fmtPrice(t.ExitPrice),
			c.profitCell(t.Profit),
			t.AgentName,
			fmtConfidence(t.Confidence),
		)
	}
	table.Render()
}

// printDecisionLog imprime el razonamiento de los últimos trades filtrados,
// con la reflexión post-trade si el agente dejó una.
func (c *Console) printDecisionLog(trades []domain.Trade) {
	const maxEntries = 5

	fmt.Fprintln(c.out, "\n=== DECISION LOG ===")
	if len(trades) == 0 {
		fmt.Fprintln(c.out, "  (no decision logs yet)")
		return
	}

	shown := trades
	if len(shown) > maxEntries {
		shown = shown[:maxEntries]
	}
	for _, t := range shown {
		fmt.Fprintf(c.out, "%s — %s by %s (conf %s)\n",
			t.Timestamp.Format("2006-01-02 15:04:05"), t.Action, t.AgentName, fmtConfidence(t.Confidence))
		reason := t.Reason
		if reason == "" {
			reason = "No reason provided"
		}
		fmt.Fprintf(c.out, "  Reason: %s\n", reason)
		if t.HasReflection() {
			fmt.Fprintf(c.out, "  Reflection: %s\n", t.Reflection)
		}
	}
}

// --- formato ---

func (c *Console) profitCell(p *float64) string {
	if p == nil {
		return "-"
	}
	return c.colorProfit(*p)
}

// colorProfit aplica el StyleTag del dominio al valor formateado.
func (c *Console) colorProfit(v float64) string {
	s := fmt.Sprintf("%.0f", v)
	switch domain.ProfitStyle(&v) {
	case domain.StyleProfit:
		return c.profit.Sprint(s)
	case domain.StyleLoss:
		return c.loss.Sprint(s)
	default:
		return s
	}
}

func fmtPrice(p *float64) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *p)
}

func fmtConfidence(p *float64) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *p)
}
