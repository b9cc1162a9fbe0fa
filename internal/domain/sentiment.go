package domain

import (
	"sort"
	"time"
)

// Signal es la señal enumerada que acompaña cada lectura de sentimiento.
type Signal string

const (
	SignalBullish Signal = "BULLISH"
	SignalNeutral Signal = "NEUTRAL"
	SignalBearish Signal = "BEARISH"
)

// AxisValue mapea la señal al eje numérico de los charts.
// El mapeo es total: cualquier valor no reconocido (incluido NULL) vale 0.
func (s Signal) AxisValue() float64 {
	switch s {
	case SignalBullish:
		return 1
	case SignalBearish:
		return -1
	default:
		return 0
	}
}

// SentimentRecord es una lectura de sentimiento de mercado, append-only,
// independiente de los trades.
type SentimentRecord struct {
	Timestamp         time.Time
	SentimentScore    float64 // 0–100
	SentimentSignal   Signal
	FundamentalScore  float64
	FundamentalSignal Signal
}

// SentimentHistory es una ventana de lecturas ordenada de más reciente a
// más antigua — el orden natural para consultar "el último valor".
type SentimentHistory []SentimentRecord

// Latest devuelve la lectura más reciente, si existe.
func (h SentimentHistory) Latest() (SentimentRecord, bool) {
	if len(h) == 0 {
		return SentimentRecord{}, false
	}
	return h[0], true
}

// Chronological devuelve una copia ordenada por timestamp ascendente.
// Las series temporales de los charts requieren orden cronológico; el sort
// es estable para no reordenar lecturas con el mismo timestamp.
func (h SentimentHistory) Chronological() []SentimentRecord {
	out := make([]SentimentRecord, len(h))
	copy(out, h)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}
