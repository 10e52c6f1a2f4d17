// Package undo implementa el motor de acciones compensatorias: localiza la
// acción sin consumir más reciente del actor, despacha al procedimiento
// inverso según su tipo y restaura Stock Store y libro de movimientos al
// estado previo, todo como una unidad de trabajo. Si el inverso falla a
// mitad de camino, la transacción completa se revierte y la acción queda
// sin consumir para poder reintentar.
package undo

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Botiquin-api/internal/application/dto"
	"github.com/jhoicas/Botiquin-api/internal/application/ports"
	"github.com/jhoicas/Botiquin-api/internal/application/stock"
	"github.com/jhoicas/Botiquin-api/internal/domain"
	"github.com/jhoicas/Botiquin-api/internal/domain/entity"
	"github.com/jhoicas/Botiquin-api/internal/domain/packaging"
	"github.com/jhoicas/Botiquin-api/internal/domain/repository"
	"github.com/jhoicas/Botiquin-api/pkg/logger"
)

// UseCase el motor de deshacer.
type UseCase struct {
	tx       ports.TxRunner
	undoRepo repository.UndoRepository // consultas fuera de transacción
	log      *logger.Logger
}

// NewUseCase construye el motor.
func NewUseCase(tx ports.TxRunner, undoRepo repository.UndoRepository, log *logger.Logger) *UseCase {
	return &UseCase{tx: tx, undoRepo: undoRepo, log: log}
}

// Status indica si el actor tiene una acción deshacible (para el indicador
// "deshacer disponible" de la capa externa).
func (uc *UseCase) Status(ctx context.Context, actor string) (*dto.UndoStatusDTO, error) {
	action, err := uc.undoRepo.LatestUnconsumed(actor)
	if err != nil {
		return nil, err
	}
	if action == nil {
		return &dto.UndoStatusDTO{Available: false}, nil
	}
	return &dto.UndoStatusDTO{Available: true, Description: action.Description}, nil
}

// UndoLast revierte la acción sin consumir más reciente del actor. Si no
// hay ninguna devuelve Undone=false ("nada que deshacer" no es un error).
// Al consumir la acción, las anteriores del actor quedan permanentemente
// inutilizables; no hay rehacer.
func (uc *UseCase) UndoLast(ctx context.Context, actor string) (*dto.UndoResultDTO, error) {
	now := time.Now().UTC()
	result := &dto.UndoResultDTO{}

	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		action, err := r.Undo.LatestUnconsumed(actor)
		if err != nil {
			return err
		}
		if action == nil {
			return nil
		}

		switch action.Kind {
		case entity.ActionAddition:
			err = uc.reverseAddition(r, action, now)
		case entity.ActionTransfer:
			err = uc.reverseTransfer(r, action, now)
		case entity.ActionUsage, entity.ActionDisposal:
			err = uc.reverseConsumption(r, action, now)
		case entity.ActionLocationDeletion:
			err = uc.reverseLocationDeletion(r, action, now)
		case entity.ActionBulkAdjustment:
			err = uc.reverseBulkAdjustment(r, action, now)
		default:
			err = fmt.Errorf("tipo de acción desconocido %q: %w", action.Kind, domain.ErrUndoPayloadStale)
		}
		if err != nil {
			return err
		}

		if err := r.Undo.MarkConsumed(action.ID); err != nil {
			return err
		}
		if err := r.Undo.InvalidateOthers(actor, action.ID); err != nil {
			return err
		}
		result.Undone = true
		result.Description = action.Description
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Undone {
		uc.log.Info().Str("actor", actor).Str("action", result.Description).Msg("acción revertida")
	}
	return result, nil
}

// addToRecord suma piezas a un registro existente y lo renormaliza.
func addToRecord(r ports.Repos, rec *entity.StockRecord, pieces int, now time.Time) error {
	q := packaging.AddPieces(packaging.Quantity{Boxes: rec.Boxes, Loose: rec.Loose}, pieces, rec.UnitsPerBox)
	rec.Boxes, rec.Loose = q.Boxes, q.Loose
	rec.UpdatedAt = now
	return r.Stock.Update(rec)
}

// shrinkRecord resta piezas de un registro, eliminándolo si queda en cero.
// Un faltante significa que el estado vivo derivó desde que se capturó el
// payload: se reporta como reversión fallida, no se ignora.
func shrinkRecord(r ports.Repos, rec *entity.StockRecord, pieces int, now time.Time) error {
	q, err := packaging.RemovePieces(packaging.Quantity{Boxes: rec.Boxes, Loose: rec.Loose}, pieces, rec.UnitsPerBox)
	if err != nil {
		return fmt.Errorf("el registro %s ya no tiene la cantidad a revertir: %w", rec.ID, domain.ErrUndoPayloadStale)
	}
	rec.Boxes, rec.Loose = q.Boxes, q.Loose
	if rec.Total() == 0 {
		return r.Stock.Delete(rec.ID)
	}
	rec.UpdatedAt = now
	return r.Stock.Update(rec)
}

// retractMovement retira del libro el asiento exacto creado por la acción,
// emparejado por clave + cantidad + tipo (+ sujeto) dentro de la ventana.
func retractMovement(r ports.Repos, key entity.ItemKey, quantity int, kind, subject string, at time.Time) error {
	_, err := r.Movements.DeleteMatching(key, quantity, kind, subject, at, stock.UndoMatchWindow)
	return err
}
