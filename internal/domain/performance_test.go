package domain_test

import (
	"testing"

	"github.com/alejandrodnm/agentboard/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestAgentPerformance_WinRate(t *testing.T) {
	p := domain.AgentPerformance{TotalTrades: 4, Wins: 3}
	assert.InDelta(t, 75, p.WinRate(), 0.001)

	// Sin trades: 0, no división por cero
	assert.Zero(t, domain.AgentPerformance{}.WinRate())
}

func TestSortLeaderboard(t *testing.T) {
	perfs := []domain.AgentPerformance{
		{AgentName: "Contrarian", TotalProfit: 50},
		{AgentName: "Momentum", TotalProfit: 60},
		{AgentName: "Breakout", TotalProfit: 50},
	}
	domain.SortLeaderboard(perfs)

	assert.Equal(t, "Momentum", perfs[0].AgentName)
	// Empate a 50: orden alfabético
	assert.Equal(t, "Breakout", perfs[1].AgentName)
	assert.Equal(t, "Contrarian", perfs[2].AgentName)
}

func TestProfitStyle(t *testing.T) {
	win, loss, flat := 12.0, -3.0, 0.0

	assert.Equal(t, domain.StyleProfit, domain.ProfitStyle(&win))
	assert.Equal(t, domain.StyleLoss, domain.ProfitStyle(&loss))
	assert.Equal(t, domain.StyleDefault, domain.ProfitStyle(&flat))
	assert.Equal(t, domain.StyleDefault, domain.ProfitStyle(nil))
}

func TestBuildSummary_Empty(t *testing.T) {
	sum := domain.BuildSummary(nil, nil, nil)
	assert.Zero(t, sum.TotalTrades)
	assert.Zero(t, sum.TotalProfit)
	assert.Zero(t, sum.WinRate)
	assert.Equal(t, domain.NoSentiment, sum.LatestSentiment)
	assert.Zero(t, sum.Window)
}
