package readmodel

import (
	"strings"
	"time"

	"github.com/alejandrodnm/agentboard/internal/domain"
)

// AllAgents es el centinela del selector que significa "todos los agentes".
const AllAgents = "all"

// TradeFilter es el filtro de presentación sobre la ventana de trades ya
// cargada: rango de fechas y agente. No genera queries nuevas al store.
// Límites zero significan rango abierto; agente vacío (o el centinela)
// acepta todos.
type TradeFilter struct {
	From  time.Time
	To    time.Time
	Agent string
}

// IsZero devuelve true si el filtro no restringe nada.
func (f TradeFilter) IsZero() bool {
	return f.From.IsZero() && f.To.IsZero() && f.allAgents()
}

// Apply devuelve los trades de la ventana que pasan el filtro,
// conservando el orden de entrada.
func (f TradeFilter) Apply(trades []domain.Trade) []domain.Trade {
	if f.IsZero() {
		return trades
	}
	out := []domain.Trade{}
	for _, t := range trades {
		if f.matches(t) {
			out = append(out, t)
		}
	}
	return out
}

func (f TradeFilter) matches(t domain.Trade) bool {
	if !f.From.IsZero() && t.Timestamp.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && t.Timestamp.After(f.To) {
		return false
	}
	if !f.allAgents() && !strings.EqualFold(t.AgentName, f.Agent) {
		return false
	}
	return true
}

func (f TradeFilter) allAgents() bool {
	return f.Agent == "" || strings.EqualFold(f.Agent, AllAgents)
}
