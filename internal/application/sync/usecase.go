// Package sync implementa el motor de reconciliación contra la bodega remota:
// fetch del feed, matching de productos, tabla de niveles, actualización de
// existencias, visibilidad de venta y rastro de auditoría.
package sync

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/warehouse-sync/internal/domain"
	"github.com/jhoicas/warehouse-sync/internal/domain/entity"
	"github.com/jhoicas/warehouse-sync/internal/domain/repository"
	"github.com/jhoicas/warehouse-sync/internal/domain/stock"
	"github.com/jhoicas/warehouse-sync/pkg/logger"
)

// SystemUserID identifica las corridas disparadas por el scheduler.
const SystemUserID = "system"

// ItemOutcome clasifica el resultado del procesamiento de un ítem del feed.
type ItemOutcome string

const (
	OutcomeUpdated   ItemOutcome = "updated"   // cantidad cambió y se escribió
	OutcomeUnchanged ItemOutcome = "unchanged" // cantidad igual, sin escritura de stock
	OutcomeSkipped   ItemOutcome = "skipped"   // sin producto local; omitido en silencio
	OutcomeFailed    ItemOutcome = "failed"    // error aislado; la corrida continúa
)

// ItemResult resultado individual de un ítem; Err solo aplica a OutcomeFailed.
type ItemResult struct {
	SKU     string
	Barcode string
	Outcome ItemOutcome
	Err     error
}

// BatchSummary agrega los resultados de una corrida.
type BatchSummary struct {
	Total     int
	Updated   int
	Unchanged int
	Skipped   int
	Failed    int
	FirstErr  error
}

// UseCase es el orquestador del sync: una invocación = una corrida completa,
// secuencial y sin transacción global (cada escritura commitea por separado).
// Las invocaciones concurrentes se rechazan con domain.ErrSyncRunning.
type UseCase struct {
	feed     FeedClient
	matcher  *ProductMatcher
	updater  *InventoryUpdater
	products repository.ProductRepository
	logs     repository.SyncLogRepository
	reports  *ReportGenerator
	log      *logger.Logger

	running atomic.Bool
}

// NewUseCase construye el orquestador con todas sus dependencias explícitas.
func NewUseCase(
	feed FeedClient,
	matcher *ProductMatcher,
	updater *InventoryUpdater,
	products repository.ProductRepository,
	logs repository.SyncLogRepository,
	reports *ReportGenerator,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		feed:     feed,
		matcher:  matcher,
		updater:  updater,
		products: products,
		logs:     logs,
		reports:  reports,
		log:      log,
	}
}

// RunSync ejecuta una corrida completa en nombre de userID y devuelve el
// registro de corrida persistido. Siempre se crea exactamente un
// SyncRunRecord y siempre se dispara el reporte, sin importar el resultado;
// los fallos del reporte nunca cambian el estado ya registrado.
func (uc *UseCase) RunSync(ctx context.Context, userID string) (*entity.SyncRunRecord, error) {
	if !uc.running.CompareAndSwap(false, true) {
		return nil, domain.ErrSyncRunning
	}
	defer uc.running.Store(false)

	start := time.Now()
	uc.log.Info().Str("user_id", userID).Msg("iniciando sincronización de bodega")

	summary, syncErr := uc.syncProducts(ctx)

	status := entity.RunStatusSuccess
	message := "Sync successful"
	switch {
	case syncErr != nil:
		// Fallo de fetch o de payload: corrida fallida, cero ítems procesados.
		status = entity.RunStatusFail
		message = syncErr.Error()
	case summary.Failed > 0:
		status = entity.RunStatusFail
		message = fmt.Sprintf("%d de %d ítems fallaron; primer error: %v",
			summary.Failed, summary.Total, summary.FirstErr)
	}

	run := &entity.SyncRunRecord{
		ID:        uuid.New().String(),
		UserID:    userID,
		Status:    status,
		Message:   message,
		CreatedAt: time.Now(),
	}
	if err := uc.logs.CreateRun(run); err != nil {
		uc.log.Error().Err(err).Msg("no se pudo persistir el registro de corrida")
		return nil, fmt.Errorf("registrar corrida: %w", err)
	}

	uc.log.Info().
		Str("status", status).
		Int("total", summary.Total).
		Int("updated", summary.Updated).
		Int("skipped", summary.Skipped).
		Int("failed", summary.Failed).
		Dur("elapsed", time.Since(start)).
		Msg("sincronización finalizada")

	// El reporte se genera siempre, después de registrar la corrida.
	if err := uc.reports.SendSummary(userID); err != nil {
		uc.log.Warn().Err(err).Msg("el reporte del sync falló; la corrida ya quedó registrada")
	}

	return run, nil
}

// syncProducts trae el feed y procesa cada ítem en orden. Los errores por ítem
// quedan aislados en el resumen; solo los fallos de fetch/payload abortan.
func (uc *UseCase) syncProducts(ctx context.Context) (BatchSummary, error) {
	items, err := uc.feed.Fetch(ctx)
	if err != nil {
		uc.log.Error().Err(err).Msg("no se pudo obtener el feed remoto")
		return BatchSummary{}, err
	}

	summary := BatchSummary{Total: len(items)}
	for _, item := range items {
		result := uc.processItem(item)
		switch result.Outcome {
		case OutcomeUpdated:
			summary.Updated++
		case OutcomeUnchanged:
			summary.Unchanged++
		case OutcomeSkipped:
			summary.Skipped++
		case OutcomeFailed:
			summary.Failed++
			if summary.FirstErr == nil {
				summary.FirstErr = result.Err
			}
			uc.log.Error().Err(result.Err).
				Str("sku", result.SKU).
				Str("barcode", result.Barcode).
				Msg("ítem del feed falló; se continúa con el resto")
		}
	}
	return summary, nil
}

// processItem ejecuta el pipeline de un ítem: match → tabla de niveles →
// nota y registro de auditoría → actualización de stock (si cambió) →
// visibilidad (siempre).
func (uc *UseCase) processItem(item FeedItem) ItemResult {
	fail := func(err error) ItemResult {
		return ItemResult{SKU: item.SKU, Barcode: item.Barcode, Outcome: OutcomeFailed, Err: err}
	}

	product, err := uc.matcher.Match(item.SKU, item.Barcode)
	if err != nil {
		return fail(err)
	}
	if product == nil {
		// Sin producto local: omisión silenciosa, sin log ni escrituras.
		return ItemResult{SKU: item.SKU, Barcode: item.Barcode, Outcome: OutcomeSkipped}
	}

	current := product.QtyAvailable
	normalized := stock.NormalizeQuantity(item.Quantity, current)
	alert := stock.IsLowStock(normalized)
	changed := !normalized.Equal(current)

	// El registro de auditoría se escribe siempre, cambie o no la cantidad.
	entry := &entity.SyncLogEntry{
		ID:        uuid.New().String(),
		SKU:       item.SKU,
		MainID:    item.MainID,
		Barcode:   item.Barcode,
		Quantity:  normalized,
		Alert:     alert,
		Note:      stock.BuildNote(normalized, current, alert),
		CreatedAt: time.Now(),
	}
	if err := uc.logs.CreateEntry(entry); err != nil {
		return fail(fmt.Errorf("registrar auditoría: %w", err))
	}

	if changed {
		if err := uc.updater.Apply(product.ID, normalized); err != nil {
			return fail(err)
		}
	}

	// La visibilidad se fija en cada ítem procesado: el stock bajo suspende
	// la venta y el stock adecuado la restaura.
	if err := uc.products.SetWebsitePublished(product.ID, !alert); err != nil {
		return fail(fmt.Errorf("fijar visibilidad: %w", err))
	}

	outcome := OutcomeUnchanged
	if changed {
		outcome = OutcomeUpdated
	}
	return ItemResult{SKU: item.SKU, Barcode: item.Barcode, Outcome: outcome}
}
