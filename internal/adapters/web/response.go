package web

import (
	"time"

	"github.com/alejandrodnm/agentboard/internal/domain"
)

// DTOs de la API. Los campos NULL del store viajan como null en JSON
// (punteros), nunca como cero.

type summaryResponse struct {
	TotalTrades     int     `json:"total_trades"`
	TotalProfit     float64 `json:"total_profit"`
	WinRate         float64 `json:"win_rate"`
	LatestSentiment string  `json:"latest_sentiment"`
	Window          int     `json:"window"`
}

func newSummaryResponse(s domain.Summary) summaryResponse {
	return summaryResponse{
		TotalTrades:     s.TotalTrades,
		TotalProfit:     s.TotalProfit,
		WinRate:         s.WinRate,
		LatestSentiment: s.LatestSentiment,
		Window:          s.Window,
	}
}

type tradeResponse struct {
	ID         int64     `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Symbol     string    `json:"symbol"`
	Action     string    `json:"action"`
	Entry      *float64  `json:"entry"`
	StopLoss   *float64  `json:"sl"`
	TakeProfit *float64  `json:"tp"`
	ExitPrice  *float64  `json:"exit_price"`
	Profit     *float64  `json:"profit"`
	Reason     string    `json:"reason,omitempty"`
	Reflection string    `json:"reflection,omitempty"`
	AgentName  string    `json:"agent_name"`
	Confidence *float64  `json:"confidence"`
	Style      string    `json:"style"`
}

func newTradeResponse(t domain.Trade) tradeResponse {
	return tradeResponse{
		ID:         t.ID,
		Timestamp:  t.Timestamp,
		Symbol:     t.Symbol,
		Action:     t.Action,
		Entry:      t.Entry,
		StopLoss:   t.StopLoss,
		TakeProfit: t.TakeProfit,
		ExitPrice:  t.ExitPrice,
		Profit:     t.Profit,
		Reason:     t.Reason,
		Reflection: t.Reflection,
		AgentName:  t.AgentName,
		Confidence: t.Confidence,
		Style:      styleName(domain.ProfitStyle(t.Profit)),
	}
}

// styleName serializa el StyleTag para el renderer del front.
func styleName(s domain.StyleTag) string {
	switch s {
	case domain.StyleProfit:
		return "profit"
	case domain.StyleLoss:
		return "loss"
	default:
		return "default"
	}
}

type performanceResponse struct {
	AgentName     string   `json:"agent_name"`
	TotalTrades   int      `json:"total_trades"`
	Wins          int      `json:"wins"`
	WinRate       float64  `json:"win_rate"`
	TotalProfit   float64  `json:"total_profit"`
	AvgProfit     float64  `json:"avg_profit"`
	AvgConfidence *float64 `json:"avg_confidence"`
}

func newPerformanceResponse(p domain.AgentPerformance) performanceResponse {
	return performanceResponse{
		AgentName:     p.AgentName,
		TotalTrades:   p.TotalTrades,
		Wins:          p.Wins,
		WinRate:       p.WinRate(),
		TotalProfit:   p.TotalProfit,
		AvgProfit:     p.AvgProfit,
		AvgConfidence: p.AvgConfidence,
	}
}

type sentimentResponse struct {
	Timestamp         time.Time `json:"timestamp"`
	SentimentScore    float64   `json:"sentiment_score"`
	SentimentSignal   string    `json:"sentiment_signal"`
	SignalValue       float64   `json:"signal_value"`
	FundamentalScore  float64   `json:"fundamental_score"`
	FundamentalSignal string    `json:"fundamental_signal"`
	FundamentalValue  float64   `json:"fundamental_value"`
}

func newSentimentResponse(r domain.SentimentRecord) sentimentResponse {
	return sentimentResponse{
		Timestamp:         r.Timestamp,
		SentimentScore:    r.SentimentScore,
		SentimentSignal:   string(r.SentimentSignal),
		SignalValue:       r.SentimentSignal.AxisValue(),
		FundamentalScore:  r.FundamentalScore,
		FundamentalSignal: string(r.FundamentalSignal),
		FundamentalValue:  r.FundamentalSignal.AxisValue(),
	}
}

type equityResponse struct {
	Timestamp  time.Time `json:"timestamp"`
	Cumulative float64   `json:"cumulative_profit"`
}
