package readmodel

import (
	"testing"
	"time"

	"github.com/alejandrodnm/agentboard/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestTradeFilter_Zero_PassesEverything(t *testing.T) {
	t0 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	trades := []domain.Trade{
		makeTrade(1, t0, "BUY", "A", pf(10)),
		makeTrade(2, t0.Add(time.Hour), "SELL", "B", nil),
	}

	assert.True(t, TradeFilter{}.IsZero())
	assert.Equal(t, trades, TradeFilter{}.Apply(trades))
	assert.Equal(t, trades, TradeFilter{Agent: AllAgents}.Apply(trades))
}

func TestTradeFilter_ByAgent(t *testing.T) {
	t0 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	trades := []domain.Trade{
		makeTrade(1, t0, "BUY", "Momentum", pf(10)),
		makeTrade(2, t0.Add(time.Minute), "SELL", "Contrarian", pf(-5)),
		makeTrade(3, t0.Add(2*time.Minute), "BUY", "Momentum", nil),
	}

	got := TradeFilter{Agent: "momentum"}.Apply(trades)
	assert.Len(t, got, 2)
	for _, tr := range got {
		assert.Equal(t, "Momentum", tr.AgentName)
	}
}

func TestTradeFilter_DateRange(t *testing.T) {
	t0 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	trades := []domain.Trade{
		makeTrade(1, t0, "BUY", "A", pf(10)),
		makeTrade(2, t0.Add(time.Hour), "SELL", "A", pf(-5)),
		makeTrade(3, t0.Add(2*time.Hour), "BUY", "A", pf(20)),
	}

	f := TradeFilter{From: t0.Add(30 * time.Minute), To: t0.Add(90 * time.Minute)}
	got := f.Apply(trades)
	assert.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)

	// Límites inclusivos
	f = TradeFilter{From: t0, To: t0}
	got = f.Apply(trades)
	assert.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
}

func TestTradeFilter_NoMatches_EmptyNotNil(t *testing.T) {
	t0 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	trades := []domain.Trade{makeTrade(1, t0, "BUY", "A", pf(10))}

	got := TradeFilter{Agent: "Nadie"}.Apply(trades)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
