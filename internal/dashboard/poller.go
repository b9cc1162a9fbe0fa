package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alejandrodnm/agentboard/internal/domain"
	"github.com/alejandrodnm/agentboard/internal/ports"
	"github.com/alejandrodnm/agentboard/internal/readmodel"
)

// Poller es el loop cooperativo de refresco: invoca las cuatro operaciones
// en cada tick, compara contra el snapshot anterior y notifica solo las
// vistas que cambiaron. Un ciclo que falla se loggea y se descarta — el
// siguiente tick lo supersede, nunca tumba el loop.
type Poller struct {
	svc       *readmodel.Service
	interval  time.Duration
	notifiers []ports.Notifier
	prev      *domain.Snapshot
}

// New crea un Poller con sus sinks de presentación.
func New(svc *readmodel.Service, interval time.Duration, notifiers ...ports.Notifier) *Poller {
	return &Poller{svc: svc, interval: interval, notifiers: notifiers}
}

// Run ejecuta el loop de refresco hasta que el contexto se cancele.
// El primer ciclo corre inmediatamente; los siguientes, en cada tick.
func (p *Poller) Run(ctx context.Context) error {
	slog.Info("dashboard poller starting", "interval", p.interval)

	if err := p.runCycle(ctx); err != nil {
		slog.Error("refresh cycle failed", "err", err)
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("dashboard poller stopped")
			return nil
		case <-ticker.C:
			if err := p.runCycle(ctx); err != nil {
				slog.Error("refresh cycle failed", "err", err)
			}
		}
	}
}

// RunOnce ejecuta exactamente un ciclo de refresco.
func (p *Poller) RunOnce(ctx context.Context) error {
	return p.runCycle(ctx)
}

// runCycle carga el snapshot, calcula el diff y notifica a los sinks.
// Si el store no responde, los sinks reciben el marcador de no-disponible
// para pintar el placeholder en vez de quedarse con tablas viejas.
func (p *Poller) runCycle(ctx context.Context) error {
	start := time.Now()

	snap, err := p.svc.Snapshot(ctx)
	if err != nil {
		p.notifyAll(ctx, domain.Update{DataUnavailable: true})
		return fmt.Errorf("dashboard.runCycle: %w", err)
	}

	changed := domain.AllViews()
	if p.prev != nil {
		changed = diff(*p.prev, snap)
	}
	p.prev = &snap

	p.notifyAll(ctx, domain.Update{Snapshot: snap, Changed: changed})

	slog.Debug("refresh cycle complete",
		"trades", len(snap.Trades),
		"agents", len(snap.Performance),
		"changed", changed.Any(),
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return nil
}

func (p *Poller) notifyAll(ctx context.Context, up domain.Update) {
	for _, n := range p.notifiers {
		if err := n.Notify(ctx, up); err != nil {
			slog.Warn("notifier error", "err", err)
		}
	}
}

// diff marca las vistas cuyo contenido cambió entre dos snapshots.
func diff(prev, cur domain.Snapshot) domain.ViewSet {
	return domain.ViewSet{
		Summary:     prev.Summary != cur.Summary,
		Trades:      !tradesEqual(prev.Trades, cur.Trades),
		Performance: !perfsEqual(prev.Performance, cur.Performance),
		Sentiment:   !sentimentEqual(prev.Sentiment, cur.Sentiment),
		Equity:      !equityEqual(prev.Equity, cur.Equity),
	}
}

// tradesEqual compara la ventana por identidad y estado de cierre.
// Un trade es inmutable salvo el cierre (exit_price y profit se fijan una
// sola vez), con lo que (id, cerrado, profit) determina su contenido visible.
func tradesEqual(a, b []domain.Trade) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].IsClosed() != b[i].IsClosed() {
			return false
		}
		if a[i].IsClosed() && *a[i].Profit != *b[i].Profit {
			return false
		}
	}
	return true
}

func perfsEqual(a, b []domain.AgentPerformance) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].AgentName != b[i].AgentName ||
			a[i].TotalTrades != b[i].TotalTrades ||
			a[i].Wins != b[i].Wins ||
			a[i].TotalProfit != b[i].TotalProfit {
			return false
		}
	}
	return true
}

// sentimentEqual aprovecha que la tabla es append-only: misma longitud y
// misma lectura más reciente implican la misma ventana.
func sentimentEqual(a, b domain.SentimentHistory) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return a[0].Timestamp.Equal(b[0].Timestamp) && a[0].SentimentSignal == b[0].SentimentSignal
}

// equityEqual: con la ley de suma de prefijos, misma longitud y mismo último
// acumulado implican la misma curva.
func equityEqual(a, b []domain.EquityPoint) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	last := len(a) - 1
	return a[last].Cumulative == b[last].Cumulative && a[last].Timestamp.Equal(b[last].Timestamp)
}
