package clickhouse

import (
	"context"
	"fmt"

	"nft-ledger/internal/domain"
	"nft-ledger/internal/storage"
)

// EventStore implements storage.EventStore using ClickHouse. The archive is
// append-only; MergeTree ordering by (token_id, timestamp_ms) serves the
// per-token history reads.
type EventStore struct {
	conn *Conn
}

// NewEventStore creates a new EventStore.
func NewEventStore(conn *Conn) *EventStore {
	return &EventStore{conn: conn}
}

// Compile-time interface check.
var _ storage.EventStore = (*EventStore)(nil)

// Insert appends one executed-message event.
func (s *EventStore) Insert(ctx context.Context, e *domain.LedgerEvent) error {
	if e == nil || e.Kind == "" {
		return storage.ErrInvalidInput
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO ledger_events (
			kind, token_id, sender, recipient, attributes, timestamp_ms
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	err = batch.Append(
		e.Kind,
		e.TokenID,
		e.Sender.String(),
		e.Recipient.String(),
		e.Attributes,
		uint64(e.TimestampMs),
	)
	if err != nil {
		return fmt.Errorf("append to batch: %w", err)
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

// GetByTokenID retrieves all events for a token, ordered by timestamp ASC.
func (s *EventStore) GetByTokenID(ctx context.Context, tokenID string) ([]*domain.LedgerEvent, error) {
	query := `
		SELECT kind, token_id, sender, recipient, attributes, timestamp_ms
		FROM ledger_events
		WHERE token_id = ?
		ORDER BY timestamp_ms ASC
	`

	rows, err := s.conn.Query(ctx, query, tokenID)
	if err != nil {
		return nil, fmt.Errorf("get events by token_id: %w", err)
	}
	defer rows.Close()

	var events []*domain.LedgerEvent
	for rows.Next() {
		var e domain.LedgerEvent
		var sender, recipient string
		var ts uint64

		err := rows.Scan(&e.Kind, &e.TokenID, &sender, &recipient, &e.Attributes, &ts)
		if err != nil {
			return nil, fmt.Errorf("scan event row: %w", err)
		}

		e.Sender = domain.Address(sender)
		e.Recipient = domain.Address(recipient)
		e.TimestampMs = int64(ts)
		events = append(events, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate event rows: %w", err)
	}
	return events, nil
}
