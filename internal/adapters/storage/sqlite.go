package storage

// sqlite.go — lector de solo lectura sobre la base que escribe el bot.
//
// Estrategia:
//   - Una única conexión reutilizada para todas las queries (SetMaxOpenConns(1)):
//     SQLite no necesita más para un lector único y evita churn de conexiones.
//   - Cero escrituras: el schema es del productor. Si la tabla todavía no
//     existe (el bot no arrancó nunca), la query falla y se marca como
//     ErrDataUnavailable — la presentación muestra "no data yet".
//   - La curva de equity se calcula en SQL con una window function, fijando
//     el orden de empates por (timestamp, id) para que la suma de prefijos
//     sea un orden total estable.

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/alejandrodnm/agentboard/internal/domain"
	_ "modernc.org/sqlite"
)

// Reader implementa ports.HistoryReader usando SQLite (pure Go, sin CGo).
type Reader struct {
	db *sql.DB
}

// NewReader abre la base de datos en la ruta dada en modo lector único.
// No crea schema ni escribe nada: la base pertenece al bot.
func NewReader(path string) (*Reader, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewReader: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	return &Reader{db: db}, nil
}

// RecentTrades devuelve los últimos `limit` trades, del más reciente al más
// antiguo. Sin filas devuelve slice vacío y error nil.
func (r *Reader) RecentTrades(ctx context.Context, limit int) ([]domain.Trade, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, timestamp, symbol, action, entry, sl, tp, exit_price, profit,
		       reason, reflection, agent_name, confidence
		FROM trades
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("storage.RecentTrades: query: %w: %w", domain.ErrDataUnavailable, err)
	}
	defer rows.Close()

	trades := []domain.Trade{}
	for rows.Next() {
		var (
			t                  domain.Trade
			ts                 string
			symbol, action     sql.NullString
			entry, sl, tp      sql.NullFloat64
			exit, profit, conf sql.NullFloat64
			reason, refl       sql.NullString
			agent              sql.NullString
		)
		if err := rows.Scan(&t.ID, &ts, &symbol, &action, &entry, &sl, &tp,
			&exit, &profit, &reason, &refl, &agent, &conf); err != nil {
			return nil, fmt.Errorf("storage.RecentTrades: scan row: %w: %w", domain.ErrDataUnavailable, err)
		}
		t.Timestamp = parseTime(ts)
		t.Symbol = symbol.String
		t.Action = action.String
		t.Entry = nullableFloat(entry)
		t.StopLoss = nullableFloat(sl)
		t.TakeProfit = nullableFloat(tp)
		t.ExitPrice = nullableFloat(exit)
		t.Profit = nullableFloat(profit)
		t.Reason = reason.String
		t.Reflection = refl.String
		t.AgentName = agent.String
		t.Confidence = nullableFloat(conf)
		trades = append(trades, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage.RecentTrades: rows: %w: %w", domain.ErrDataUnavailable, err)
	}
	return trades, nil
}

// AgentPerformance agrega los trades con profit no-NULL por agente.
// Los trades abiertos quedan fuera de la agregación: no realizaron resultado.
// AVG(confidence) ignora NULLs; si todos son NULL, AvgConfidence queda nil.
func (r *Reader) AgentPerformance(ctx context.Context) ([]domain.AgentPerformance, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT agent_name,
		       COUNT(*)                                   AS total_trades,
		       SUM(CASE WHEN profit > 0 THEN 1 ELSE 0 END) AS wins,
		       SUM(profit)                                AS total_profit,
		       AVG(profit)                                AS avg_profit,
		       AVG(confidence)                            AS avg_confidence
		FROM trades
		WHERE profit IS NOT NULL
		GROUP BY agent_name
	`)
	if err != nil {
		return nil, fmt.Errorf("storage.AgentPerformance: query: %w: %w", domain.ErrDataUnavailable, err)
	}
	defer rows.Close()

	perfs := []domain.AgentPerformance{}
	for rows.Next() {
		var (
			p     domain.AgentPerformance
			agent sql.NullString
			conf  sql.NullFloat64
		)
		if err := rows.Scan(&agent, &p.TotalTrades, &p.Wins,
			&p.TotalProfit, &p.AvgProfit, &conf); err != nil {
			return nil, fmt.Errorf("storage.AgentPerformance: scan row: %w: %w", domain.ErrDataUnavailable, err)
		}
		p.AgentName = agent.String
		p.AvgConfidence = nullableFloat(conf)
		perfs = append(perfs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage.AgentPerformance: rows: %w: %w", domain.ErrDataUnavailable, err)
	}
	return perfs, nil
}

// SentimentHistory devuelve las últimas `limit` lecturas, de la más reciente
// a la más antigua — el orden para "último valor"; los charts reordenan
// con Chronological().
func (r *Reader) SentimentHistory(ctx context.Context, limit int) (domain.SentimentHistory, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT timestamp, sentiment_score, sentiment_signal,
		       fundamental_score, fundamental_signal
		FROM market_sentiment
		ORDER BY timestamp DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("storage.SentimentHistory: query: %w: %w", domain.ErrDataUnavailable, err)
	}
	defer rows.Close()

	history := domain.SentimentHistory{}
	for rows.Next() {
		var (
			rec        domain.SentimentRecord
			ts         string
			score      sql.NullFloat64
			signal     sql.NullString
			fundScore  sql.NullFloat64
			fundSignal sql.NullString
		)
		if err := rows.Scan(&ts, &score, &signal, &fundScore, &fundSignal); err != nil {
			return nil, fmt.Errorf("storage.SentimentHistory: scan row: %w: %w", domain.ErrDataUnavailable, err)
		}
		rec.Timestamp = parseTime(ts)
		rec.SentimentScore = score.Float64
		rec.SentimentSignal = domain.Signal(signal.String)
		rec.FundamentalScore = fundScore.Float64
		rec.FundamentalSignal = domain.Signal(fundSignal.String)
		history = append(history, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage.SentimentHistory: rows: %w: %w", domain.ErrDataUnavailable, err)
	}
	return history, nil
}

// EquityCurve devuelve la suma acumulada de profit por trade cerrado en
// orden cronológico. El frame ROWS fija los empates de timestamp por id:
// cada punto acumula exactamente los trades anteriores en ese orden total.
// Se recalcula entera en cada llamada — no hay estado incremental.
func (r *Reader) EquityCurve(ctx context.Context) ([]domain.EquityPoint, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT timestamp,
		       SUM(profit) OVER (
		           ORDER BY timestamp, id
		           ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW
		       ) AS cumulative_profit
		FROM trades
		WHERE profit IS NOT NULL
		ORDER BY timestamp, id
	`)
	if err != nil {
		return nil, fmt.Errorf("storage.EquityCurve: query: %w: %w", domain.ErrDataUnavailable, err)
	}
	defer rows.Close()

	curve := []domain.EquityPoint{}
	for rows.Next() {
		var (
			p  domain.EquityPoint
			ts string
		)
		if err := rows.Scan(&ts, &p.Cumulative); err != nil {
			return nil, fmt.Errorf("storage.EquityCurve: scan row: %w: %w", domain.ErrDataUnavailable, err)
		}
		p.Timestamp = parseTime(ts)
		curve = append(curve, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage.EquityCurve: rows: %w: %w", domain.ErrDataUnavailable, err)
	}
	return curve, nil
}

// AgentNames devuelve los nombres de agente distintos, ordenados, para el
// selector de filtro del dashboard.
func (r *Reader) AgentNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT agent_name FROM trades
		WHERE agent_name IS NOT NULL
		ORDER BY agent_name
	`)
	if err != nil {
		return nil, fmt.Errorf("storage.AgentNames: query: %w: %w", domain.ErrDataUnavailable, err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("storage.AgentNames: scan row: %w: %w", domain.ErrDataUnavailable, err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage.AgentNames: rows: %w: %w", domain.ErrDataUnavailable, err)
	}
	return names, nil
}

// Close cierra la conexión a la base de datos.
func (r *Reader) Close() error {
	return r.db.Close()
}

// --- helpers internos ---

// timeLayouts cubre los formatos que escriben el driver Go (RFC3339) y el
// bot productor (DATETIME de SQLite, "2006-01-02 15:04:05").
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// parseTime intenta cada layout conocido. Un valor ilegible devuelve el
// time.Time cero y queda loggeado: ordenaría la fila al principio de las
// vistas cronológicas sin aviso.
func parseTime(s string) time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	slog.Warn("unparseable timestamp in store", "value", s)
	return time.Time{}
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
