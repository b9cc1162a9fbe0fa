package domain

// Snapshot agrupa el resultado de un ciclo de refresco: las cuatro vistas
// más las métricas de cabecera. Cada vista puede reflejar un instante
// ligeramente distinto del store — consistencia eventual entre vistas.
type Snapshot struct {
	Summary     Summary
	Trades      []Trade
	Performance []AgentPerformance
	Sentiment   SentimentHistory
	Equity      []EquityPoint
}

// ViewSet marca qué vistas cambiaron entre dos snapshots consecutivos.
// El poller solo re-renderiza las marcadas.
type ViewSet struct {
	Summary     bool
	Trades      bool
	Performance bool
	Sentiment   bool
	Equity      bool
}

// AllViews devuelve un ViewSet con todas las vistas marcadas.
func AllViews() ViewSet {
	return ViewSet{Summary: true, Trades: true, Performance: true, Sentiment: true, Equity: true}
}

// Any devuelve true si alguna vista cambió.
func (v ViewSet) Any() bool {
	return v.Summary || v.Trades || v.Performance || v.Sentiment || v.Equity
}

// Update es lo que el poller entrega a cada notifier tras un ciclo.
// DataUnavailable marca un ciclo que no pudo leer el store: el snapshot
// viene vacío y la presentación muestra el placeholder en vez de tablas
// viejas sin avisar.
type Update struct {
	Snapshot        Snapshot
	Changed         ViewSet
	DataUnavailable bool
}
