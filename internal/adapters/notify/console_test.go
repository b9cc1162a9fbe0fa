package notify_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alejandrodnm/agentboard/internal/adapters/notify"
	"github.com/alejandrodnm/agentboard/internal/domain"
	"github.com/alejandrodnm/agentboard/internal/readmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pf(v float64) *float64 { return &v }

func sampleUpdate() domain.Update {
	t0 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	trades := []domain.Trade{
		{ID: 2, Timestamp: t0.Add(time.Minute), Symbol: "XAUUSD", Action: "SELL",
			AgentName: "Contrarian", Profit: pf(-40), Reason: "overbought RSI",
			Reflection: "stop was too tight", Confidence: pf(0.6)},
		{ID: 1, Timestamp: t0, Symbol: "XAUUSD", Action: "BUY",
			AgentName: "Momentum", Profit: pf(100), Confidence: pf(0.8)},
	}
	perfs := []domain.AgentPerformance{
		{AgentName: "Momentum", TotalTrades: 1, Wins: 1, TotalProfit: 100, AvgProfit: 100, AvgConfidence: pf(0.8)},
		{AgentName: "Contrarian", TotalTrades: 1, Wins: 0, TotalProfit: -40, AvgProfit: -40, AvgConfidence: pf(0.6)},
	}
	sentiment := domain.SentimentHistory{{Timestamp: t0, SentimentScore: 70, SentimentSignal: domain.SignalBullish}}
	equity := []domain.EquityPoint{{Timestamp: t0, Cumulative: 100}, {Timestamp: t0.Add(time.Minute), Cumulative: 60}}

	snap := domain.Snapshot{
		Summary:     domain.BuildSummary(trades, perfs, sentiment),
		Trades:      trades,
		Performance: perfs,
		Sentiment:   sentiment,
		Equity:      equity,
	}
	return domain.Update{Snapshot: snap, Changed: domain.AllViews()}
}

func TestConsole_TableMode(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf, true, readmodel.TradeFilter{})

	require.NoError(t, c.Notify(context.Background(), sampleUpdate()))
	out := buf.String()

	assert.Contains(t, out, "AGENT LEADERBOARD")
	assert.Contains(t, out, "Momentum")
	assert.Contains(t, out, "Contrarian")
	assert.Contains(t, out, "TRADE HISTORY")
	assert.Contains(t, out, "DECISION LOG")
	assert.Contains(t, out, "overbought RSI")
	assert.Contains(t, out, "Reflection: stop was too tight")
	assert.Contains(t, out, "sentiment:BULLISH")
	// El trade sin reason usa el placeholder
	assert.Contains(t, out, "No reason provided")
}

func TestConsole_CompactMode(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf, false, readmodel.TradeFilter{})

	require.NoError(t, c.Notify(context.Background(), sampleUpdate()))
	out := buf.String()

	assert.Contains(t, out, "trades:2")
	assert.Contains(t, out, "win:50.0%")
	assert.NotContains(t, out, "LEADERBOARD")
}

func TestConsole_AgentFilter(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf, true, readmodel.TradeFilter{Agent: "Momentum"})

	require.NoError(t, c.Notify(context.Background(), sampleUpdate()))
	out := buf.String()

	// El decision log del agente filtrado no incluye al otro
	assert.NotContains(t, out, "overbought RSI")
	assert.Contains(t, out, "BUY by Momentum")
}

func TestConsole_NoChanges_Silent(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf, true, readmodel.TradeFilter{})

	up := sampleUpdate()
	up.Changed = domain.ViewSet{}
	require.NoError(t, c.Notify(context.Background(), up))
	assert.Empty(t, buf.String())
}

func TestConsole_StoreDown_Placeholder(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf, true, readmodel.TradeFilter{})

	up := domain.Update{DataUnavailable: true}
	require.NoError(t, c.Notify(context.Background(), up))

	assert.Contains(t, buf.String(), "no data yet (store unavailable)")
	assert.NotContains(t, buf.String(), "LEADERBOARD")
}

func TestConsole_EmptySnapshot(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf, true, readmodel.TradeFilter{})

	snap := domain.Snapshot{Summary: domain.BuildSummary(nil, nil, nil)}
	up := domain.Update{Snapshot: snap, Changed: domain.AllViews()}

	require.NoError(t, c.Notify(context.Background(), up))
	out := buf.String()
	assert.Contains(t, out, "no trades yet")
	assert.Contains(t, out, "no equity yet")
	assert.Contains(t, out, "sentiment:N/A")
}
