package appointment

import (
	"context"

	"github.com/MedAgendaServices/clinic-scheduler/internal/audit"
)

// Portas mínimas das dependências ambientais dos casos de uso.
// Satisfeitas por *audit.Dispatcher e *cacheversion.Counter.

type AuditSink interface {
	Dispatch(ev audit.Event)
}

type VersionBumper interface {
	Bump(ctx context.Context)
}
