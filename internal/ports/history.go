package ports

import (
	"context"

	"github.com/alejandrodnm/agentboard/internal/domain"
)

// HistoryReader es el acceso de solo lectura al histórico persistido por el
// bot. Este servicio nunca escribe: el productor es externo y es el único
// dueño de las dos tablas.
type HistoryReader interface {
	// RecentTrades devuelve los últimos trades, del más reciente al más
	// antiguo. Sin trades devuelve slice vacío, no error.
	RecentTrades(ctx context.Context, limit int) ([]domain.Trade, error)

	// AgentPerformance agrega los trades cerrados por agente.
	AgentPerformance(ctx context.Context) ([]domain.AgentPerformance, error)

	// SentimentHistory devuelve las últimas lecturas de sentimiento,
	// de la más reciente a la más antigua.
	SentimentHistory(ctx context.Context, limit int) (domain.SentimentHistory, error)

	// EquityCurve devuelve la suma acumulada de profit por trade cerrado,
	// en orden cronológico. Se recalcula entera en cada llamada.
	EquityCurve(ctx context.Context) ([]domain.EquityPoint, error)

	// AgentNames devuelve los nombres de agente distintos, para el selector.
	AgentNames(ctx context.Context) ([]string, error)

	// Close cierra la conexión a la base de datos limpiamente.
	Close() error
}
