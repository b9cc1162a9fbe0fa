package readmodel

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/alejandrodnm/agentboard/internal/domain"
	"github.com/alejandrodnm/agentboard/internal/ports"
)

// Config controla ventanas y TTLs del servicio.
type Config struct {
	TradeLimit     int
	SentimentLimit int
	TradesTTL      time.Duration
	PerformanceTTL time.Duration
	SentimentTTL   time.Duration
}

// DefaultConfig devuelve los valores observados en producción: ventana de
// 100 trades, 50 lecturas de sentimiento, TTLs de 10s/60s/300s.
func DefaultConfig() Config {
	return Config{
		TradeLimit:     100,
		SentimentLimit: 50,
		TradesTTL:      10 * time.Second,
		PerformanceTTL: 60 * time.Second,
		SentimentTTL:   300 * time.Second,
	}
}

// Service es la fachada de lectura sobre el histórico del bot: traduce las
// tablas persistidas en las cuatro vistas derivadas más las métricas de
// cabecera. Stateless salvo las entradas de cache por operación; acepta
// staleness hasta el TTL como tradeoff explícito de carga de lectura.
//
// La curva de equity nunca se cachea: el contrato exige recalcular la suma
// de prefijos completa en cada llamada.
type Service struct {
	cfg    Config
	reader ports.HistoryReader
	now    func() time.Time

	mu        sync.Mutex
	trades    entry[[]domain.Trade]
	perf      entry[[]domain.AgentPerformance]
	sentiment entry[domain.SentimentHistory]
}

// New crea el servicio sobre un lector de histórico.
func New(cfg Config, reader ports.HistoryReader) *Service {
	s := &Service{cfg: cfg, reader: reader, now: time.Now}
	s.trades.ttl = cfg.TradesTTL
	s.perf.ttl = cfg.PerformanceTTL
	s.sentiment.ttl = cfg.SentimentTTL
	return s
}

// RecentTrades devuelve la ventana de trades más recientes (fresca o
// cacheada). Sin trades devuelve slice vacío, no error.
func (s *Service) RecentTrades(ctx context.Context) ([]domain.Trade, error) {
	s.mu.Lock()
	if v, ok := s.trades.get(s.now()); ok {
		s.mu.Unlock()
		return v, nil
	}
	s.mu.Unlock()

	trades, err := s.reader.RecentTrades(ctx, s.cfg.TradeLimit)
	if err != nil {
		return nil, fmt.Errorf("readmodel.RecentTrades: %w", err)
	}

	s.mu.Lock()
	s.trades.put(trades, s.now())
	s.mu.Unlock()
	return trades, nil
}

// AgentPerformance devuelve el leaderboard: agregados por agente ordenados
// por total_profit descendente, empates por nombre.
func (s *Service) AgentPerformance(ctx context.Context) ([]domain.AgentPerformance, error) {
	s.mu.Lock()
	if v, ok := s.perf.get(s.now()); ok {
		s.mu.Unlock()
		return v, nil
	}
	s.mu.Unlock()

	perfs, err := s.reader.AgentPerformance(ctx)
	if err != nil {
		return nil, fmt.Errorf("readmodel.AgentPerformance: %w", err)
	}
	domain.SortLeaderboard(perfs)

	s.mu.Lock()
	s.perf.put(perfs, s.now())
	s.mu.Unlock()
	return perfs, nil
}

// SentimentHistory devuelve la ventana de sentimiento, de la lectura más
// reciente a la más antigua.
func (s *Service) SentimentHistory(ctx context.Context) (domain.SentimentHistory, error) {
	s.mu.Lock()
	if v, ok := s.sentiment.get(s.now()); ok {
		s.mu.Unlock()
		return v, nil
	}
	s.mu.Unlock()

	history, err := s.reader.SentimentHistory(ctx, s.cfg.SentimentLimit)
	if err != nil {
		return nil, fmt.Errorf("readmodel.SentimentHistory: %w", err)
	}

	s.mu.Lock()
	s.sentiment.put(history, s.now())
	s.mu.Unlock()
	return history, nil
}

// EquityCurve recalcula la curva completa contra el store en cada llamada.
func (s *Service) EquityCurve(ctx context.Context) ([]domain.EquityPoint, error) {
	curve, err := s.reader.EquityCurve(ctx)
	if err != nil {
		return nil, fmt.Errorf("readmodel.EquityCurve: %w", err)
	}
	return curve, nil
}

// AgentNames devuelve los agentes distintos para el selector de filtro.
func (s *Service) AgentNames(ctx context.Context) ([]string, error) {
	names, err := s.reader.AgentNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("readmodel.AgentNames: %w", err)
	}
	return names, nil
}

// Summary deriva las métricas de cabecera de las vistas ya cargadas.
// Scope: la ventana de trades cargada, no el histórico completo.
func (s *Service) Summary(ctx context.Context) (domain.Summary, error) {
	trades, err := s.RecentTrades(ctx)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("readmodel.Summary: %w", err)
	}
	perfs, err := s.AgentPerformance(ctx)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("readmodel.Summary: %w", err)
	}
	sentiment, err := s.SentimentHistory(ctx)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("readmodel.Summary: %w", err)
	}
	return domain.BuildSummary(trades, perfs, sentiment), nil
}

// Snapshot carga las cuatro vistas más las métricas de cabecera para un
// ciclo de refresco. Cada vista puede reflejar un instante distinto del
// store; no hay requisito transaccional entre queries.
func (s *Service) Snapshot(ctx context.Context) (domain.Snapshot, error) {
	var snap domain.Snapshot
	var err error

	if snap.Trades, err = s.RecentTrades(ctx); err != nil {
		return domain.Snapshot{}, fmt.Errorf("readmodel.Snapshot: %w", err)
	}
	if snap.Performance, err = s.AgentPerformance(ctx); err != nil {
		return domain.Snapshot{}, fmt.Errorf("readmodel.Snapshot: %w", err)
	}
	if snap.Sentiment, err = s.SentimentHistory(ctx); err != nil {
		return domain.Snapshot{}, fmt.Errorf("readmodel.Snapshot: %w", err)
	}
	if snap.Equity, err = s.EquityCurve(ctx); err != nil {
		return domain.Snapshot{}, fmt.Errorf("readmodel.Snapshot: %w", err)
	}
	snap.Summary = domain.BuildSummary(snap.Trades, snap.Performance, snap.Sentiment)
	return snap, nil
}

// Invalidate descarta todas las entradas cacheadas. Lo dispara el refresh
// manual del usuario; la siguiente lectura vuelve al store.
func (s *Service) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trades.invalidate()
	s.perf.invalidate()
	s.sentiment.invalidate()
}
