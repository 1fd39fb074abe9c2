package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/davicafu/academylab/shared/domain"
)

// WithTx ejecuta fn en una transacción: commit si devuelve nil, rollback si no.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return TranslateError(err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return TranslateError(err)
	}

	return TranslateError(tx.Commit())
}

// ------------------ Helper DRY para insertar en outbox ------------------

func InsertOutboxTx(ctx context.Context, tx *sql.Tx, d Dialect, evt domain.OutboxEvent) error {
	payloadBytes, err := json.Marshal(evt.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal outbox payload: %w", err)
	}

	_, err = tx.ExecContext(ctx, d.Rebind(
		`INSERT INTO outbox (id,aggregate_type,aggregate_id,event_type,payload,created_at,processed)
		 VALUES (?,?,?,?,?,?,?)`),
		evt.ID.String(), evt.AggregateType, evt.AggregateID, evt.EventType, string(payloadBytes), evt.CreatedAt, false,
	)
	if err != nil {
		return fmt.Errorf("failed to insert outbox event: %w", err)
	}

	return nil
}

// InsertOutboxBatchTx inserta varios eventos dentro de la misma transacción.
func InsertOutboxBatchTx(ctx context.Context, tx *sql.Tx, d Dialect, evts []domain.OutboxEvent) error {
	for _, evt := range evts {
		if err := InsertOutboxTx(ctx, tx, d, evt); err != nil {
			return err
		}
	}
	return nil
}
