package domain

import "sort"

// AgentPerformance agrega los trades cerrados de un agente.
// Los trades abiertos (profit NULL) no aparecen aquí: todavía no
// realizaron resultado.
type AgentPerformance struct {
	AgentName     string
	TotalTrades   int
	Wins          int // profit > 0 estricto
	TotalProfit   float64
	AvgProfit     float64
	AvgConfidence *float64 // NULL si ningún trade del agente traía confidence
}

// WinRate devuelve el porcentaje de trades ganadores (0 si no hay trades).
func (p AgentPerformance) WinRate() float64 {
	if p.TotalTrades == 0 {
		return 0
	}
	return float64(p.Wins) / float64(p.TotalTrades) * 100
}

// SortLeaderboard ordena in-place por total_profit descendente.
// Empates se resuelven por agent_name ascendente — el leaderboard
// tiene que ser determinista entre refrescos.
func SortLeaderboard(perfs []AgentPerformance) {
	sort.Slice(perfs, func(i, j int) bool {
		if perfs[i].TotalProfit != perfs[j].TotalProfit {
			return perfs[i].TotalProfit > perfs[j].TotalProfit
		}
		return perfs[i].AgentName < perfs[j].AgentName
	})
}
