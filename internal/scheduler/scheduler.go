// Package scheduler dispara corridas de sincronización a intervalo fijo
// (el equivalente del cron del sistema de origen).
package scheduler

import (
	"context"
	"errors"
	"time"

	appsync "github.com/jhoicas/warehouse-sync/internal/application/sync"
	"github.com/jhoicas/warehouse-sync/internal/domain"
	"github.com/jhoicas/warehouse-sync/pkg/logger"
)

// Runner ejecuta el sync periódicamente como usuario system.
// Las corridas nunca se superponen: si el tick llega con una corrida en
// curso, ese tick se omite.
type Runner struct {
	uc       *appsync.UseCase
	interval time.Duration
	log      *logger.Logger
}

// New construye el runner. interval <= 0 deja el runner inerte (Start retorna de inmediato).
func New(uc *appsync.UseCase, interval time.Duration, log *logger.Logger) *Runner {
	return &Runner{uc: uc, interval: interval, log: log}
}

// Start bloquea ejecutando corridas hasta que ctx se cancele.
// Pensado para correr en su propia goroutine.
func (r *Runner) Start(ctx context.Context) {
	if r.interval <= 0 {
		return
	}
	r.log.Info().Dur("interval", r.interval).Msg("scheduler de sincronización iniciado")

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Info().Msg("scheduler detenido")
			return
		case <-ticker.C:
			if _, err := r.uc.RunSync(ctx, appsync.SystemUserID); err != nil {
				if errors.Is(err, domain.ErrSyncRunning) {
					r.log.Warn().Msg("corrida anterior aún en curso; tick omitido")
					continue
				}
				r.log.Error().Err(err).Msg("corrida programada falló")
			}
		}
	}
}
