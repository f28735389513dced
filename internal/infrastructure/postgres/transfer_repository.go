package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/fieldops-api/internal/domain"
	"github.com/jhoicas/fieldops-api/internal/domain/entity"
	"github.com/jhoicas/fieldops-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación sobre PostgreSQL (usable con pool o tx).
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

const transferColumns = `id, from_agent, to_agent, to_market_id, pack_id, quantity, reason, status, approver_id, processed, created_at, updated_at`

// Create persiste una solicitud de traslado.
func (r *TransferRepo) Create(transfer *entity.Transfer) error {
	if transfer.ID == "" {
		transfer.ID = uuid.New().String()
	}
	query := `
		INSERT INTO transfers (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())`
	toAgent := nullable(transfer.ToAgent)
	toMarket := nullable(transfer.ToMarketID)
	approver := nullable(transfer.ApproverID)
	_, err := r.q.Exec(context.Background(), query,
		transfer.ID, transfer.FromAgent, toAgent, toMarket, transfer.PackID,
		transfer.Quantity, transfer.Reason, transfer.Status, approver, transfer.Processed,
	)
	if err != nil {
		return fmt.Errorf("create transfer: %w", err)
	}
	return nil
}

// GetByID obtiene un traslado por ID.
func (r *TransferRepo) GetByID(id string) (*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE id = $1`
	t, err := scanTransferRow(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	return t, nil
}

// ListByStatus lista traslados por estado, más antiguos primero (cola de
// aprobación). Estado vacío = todos.
func (r *TransferRepo) ListByStatus(status string, limit, offset int) ([]*entity.Transfer, error) {
	if status == "" {
		query := `
			SELECT ` + transferColumns + ` FROM transfers
			ORDER BY created_at ASC LIMIT $1 OFFSET $2`
		return r.list(query, limit, offset)
	}
	query := `
		SELECT ` + transferColumns + ` FROM transfers
		WHERE status = $1 ORDER BY created_at ASC LIMIT $2 OFFSET $3`
	return r.list(query, status, limit, offset)
}

// ListByAgent lista traslados donde el agente es origen o destino.
func (r *TransferRepo) ListByAgent(agentID string, limit, offset int) ([]*entity.Transfer, error) {
	query := `
		SELECT ` + transferColumns + ` FROM transfers
		WHERE from_agent = $1 OR to_agent = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, agentID, limit, offset)
}

// UpdateStatus actualiza estado, aprobador y marca de procesado.
func (r *TransferRepo) UpdateStatus(id, status, approverID string, processed bool) error {
	query := `
		UPDATE transfers SET status = $2, approver_id = $3, processed = $4, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status, nullable(approverID), processed)
	if err != nil {
		return fmt.Errorf("update transfer status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TransferRepo) list(query string, args ...any) ([]*entity.Transfer, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transfer
	for rows.Next() {
		t, err := scanTransferRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func scanTransferRow(row pgx.Row) (*entity.Transfer, error) {
	var t entity.Transfer
	var toAgent, toMarket, approver *string
	err := row.Scan(
		&t.ID, &t.FromAgent, &toAgent, &toMarket, &t.PackID, &t.Quantity,
		&t.Reason, &t.Status, &approver, &t.Processed, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if toAgent != nil {
		t.ToAgent = *toAgent
	}
	if toMarket != nil {
		t.ToMarketID = *toMarket
	}
	if approver != nil {
		t.ApproverID = *approver
	}
	return &t, nil
}

// nullable devuelve nil para strings vacíos (columnas NULL).
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
