package domain

// NoSentiment es el placeholder cuando todavía no hay lecturas de sentimiento.
const NoSentiment = "N/A"

// Summary son las métricas de cabecera del dashboard.
// TotalTrades y TotalProfit se calculan sobre la ventana de trades cargada,
// no sobre el histórico completo — decisión de producto documentada en DESIGN.md.
type Summary struct {
	TotalTrades     int     // acciones BUY/SELL en la ventana
	TotalProfit     float64 // suma de profit no-NULL en la ventana
	WinRate         float64 // porcentaje, 0 si no hay trades
	LatestSentiment string  // última señal, o NoSentiment
	Window          int     // trades cargados en la ventana
}

// BuildSummary deriva las métricas de cabecera de las vistas ya cargadas.
// Una entrada vacía produce métricas a cero, nunca un error.
func BuildSummary(trades []Trade, perfs []AgentPerformance, sentiment SentimentHistory) Summary {
	s := Summary{LatestSentiment: NoSentiment, Window: len(trades)}

	for _, t := range trades {
		if t.IsExecution() {
			s.TotalTrades++
		}
		if t.Profit != nil {
			s.TotalProfit += *t.Profit
		}
	}

	var wins int
	for _, p := range perfs {
		wins += p.Wins
	}
	if s.TotalTrades > 0 {
		s.WinRate = float64(wins) / float64(s.TotalTrades) * 100
	}

	if latest, ok := sentiment.Latest(); ok {
		s.LatestSentiment = string(latest.SentimentSignal)
	}
	return s
}
