package ports

import (
	"context"

	"github.com/alejandrodnm/agentboard/internal/domain"
)

// Notifier presenta al usuario las vistas que cambiaron en un ciclo.
// Implementaciones: tabla en consola, push por websocket.
type Notifier interface {
	// Notify recibe el snapshot del ciclo y el set de vistas cambiadas.
	// Solo debería re-renderizar las marcadas.
	Notify(ctx context.Context, up domain.Update) error
}
