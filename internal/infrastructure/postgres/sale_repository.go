package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/fieldops-api/internal/domain"
	"github.com/jhoicas/fieldops-api/internal/domain/entity"
	"github.com/jhoicas/fieldops-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, agent_id, market_id, visit_id, pack_id, quantity, unit_price, discount_amount, promo_code_id, campaign_id, revenue, ledger_ref, sold_at, created_at, updated_at`

// Create persiste una venta. Revenue ya viene derivado por el caso de uso.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, now(), now())`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.AgentID, sale.MarketID, nullable(sale.VisitID), sale.PackID,
		sale.Quantity, sale.UnitPrice, sale.DiscountAmount, nullable(sale.PromoCodeID),
		nullable(sale.CampaignID), sale.Revenue, nullable(sale.LedgerRef), sale.SoldAt,
	)
	if err != nil {
		return fmt.Errorf("create sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	s, err := scanSaleRow(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// ListByAgent lista ventas de un agente en un rango de fechas.
func (r *SaleRepo) ListByAgent(agentID string, from, to *time.Time, limit, offset int) ([]*entity.Sale, error) {
	return r.listBy("agent_id", agentID, from, to, limit, offset)
}

// ListByMarket lista ventas de un mercado en un rango de fechas.
func (r *SaleRepo) ListByMarket(marketID string, from, to *time.Time, limit, offset int) ([]*entity.Sale, error) {
	return r.listBy("market_id", marketID, from, to, limit, offset)
}

func (r *SaleRepo) listBy(column, value string, from, to *time.Time, limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE ` + column + ` = $1`
	args := []any{value}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND sold_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND sold_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY sold_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSaleRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanSaleRow(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var visitID, promoID, campaignID, ledgerRef *string
	err := row.Scan(
		&s.ID, &s.AgentID, &s.MarketID, &visitID, &s.PackID, &s.Quantity,
		&s.UnitPrice, &s.DiscountAmount, &promoID, &campaignID, &s.Revenue,
		&ledgerRef, &s.SoldAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if visitID != nil {
		s.VisitID = *visitID
	}
	if promoID != nil {
		s.PromoCodeID = *promoID
	}
	if campaignID != nil {
		s.CampaignID = *campaignID
	}
	if ledgerRef != nil {
		s.LedgerRef = *ledgerRef
	}
	return &s, nil
}

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implementación sobre PostgreSQL (usable con pool o tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

const paymentColumns = `id, sale_id, method, amount, status, transaction_ref, processed_at, notes, created_at, updated_at`

// Create persiste un pago.
func (r *PaymentRepo) Create(payment *entity.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.SaleID, payment.Method, payment.Amount, payment.Status,
		nullable(payment.TransactionRef), payment.ProcessedAt, payment.Notes,
	)
	if err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

// GetByID obtiene un pago por ID.
func (r *PaymentRepo) GetByID(id string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	p, err := scanPaymentRow(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return p, nil
}

// ListBySale lista los pagos de una venta.
func (r *PaymentRepo) ListBySale(saleID string) ([]*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE sale_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		p, err := scanPaymentRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// UpdateStatus actualiza estado, referencia externa y fecha de procesamiento.
func (r *PaymentRepo) UpdateStatus(id, status, transactionRef string, processedAt *time.Time) error {
	query := `
		UPDATE payments SET status = $2, transaction_ref = $3, processed_at = $4, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status, nullable(transactionRef), processedAt)
	if err != nil {
		return fmt.Errorf("update payment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanPaymentRow(row pgx.Row) (*entity.Payment, error) {
	var p entity.Payment
	var ref *string
	err := row.Scan(
		&p.ID, &p.SaleID, &p.Method, &p.Amount, &p.Status, &ref,
		&p.ProcessedAt, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if ref != nil {
		p.TransactionRef = *ref
	}
	return &p, nil
}
