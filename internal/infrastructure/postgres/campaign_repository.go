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

var _ repository.CampaignRepository = (*CampaignRepo)(nil)

// CampaignRepo implementación sobre PostgreSQL (usable con pool o tx).
type CampaignRepo struct {
	q Querier
}

// NewCampaignRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCampaignRepository(q Querier) *CampaignRepo {
	return &CampaignRepo{q: q}
}

const campaignColumns = `id, name, type, budget_total, budget_spent, start_date, end_date, objectives, status, owner_id, created_at, updated_at`

// Create persiste una campaña.
func (r *CampaignRepo) Create(campaign *entity.Campaign) error {
	if campaign.ID == "" {
		campaign.ID = uuid.New().String()
	}
	query := `
		INSERT INTO campaigns (` + campaignColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())`
	var objectives any
	if len(campaign.Objectives) > 0 {
		objectives = campaign.Objectives
	}
	_, err := r.q.Exec(context.Background(), query,
		campaign.ID, campaign.Name, campaign.Type, campaign.BudgetTotal, campaign.BudgetSpent,
		campaign.StartDate, campaign.EndDate, objectives, campaign.Status, campaign.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("create campaign: %w", err)
	}
	return nil
}

// GetByID obtiene una campaña por ID.
func (r *CampaignRepo) GetByID(id string) (*entity.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = $1`
	var c entity.Campaign
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Name, &c.Type, &c.BudgetTotal, &c.BudgetSpent, &c.StartDate,
		&c.EndDate, &c.Objectives, &c.Status, &c.OwnerID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	return &c, nil
}

// List lista campañas, opcionalmente filtradas por estado.
func (r *CampaignRepo) List(status string, limit, offset int) ([]*entity.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns`
	args := []any{}
	pos := 1
	if status != "" {
		query += fmt.Sprintf(" WHERE status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY start_date DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()
	var list []*entity.Campaign
	for rows.Next() {
		var c entity.Campaign
		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &c.BudgetTotal, &c.BudgetSpent,
			&c.StartDate, &c.EndDate, &c.Objectives, &c.Status, &c.OwnerID,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update actualiza una campaña.
func (r *CampaignRepo) Update(campaign *entity.Campaign) error {
	query := `
		UPDATE campaigns SET name = $2, type = $3, budget_total = $4, budget_spent = $5,
			start_date = $6, end_date = $7, objectives = $8, status = $9, updated_at = now()
		WHERE id = $1`
	var objectives any
	if len(campaign.Objectives) > 0 {
		objectives = campaign.Objectives
	}
	tag, err := r.q.Exec(context.Background(), query,
		campaign.ID, campaign.Name, campaign.Type, campaign.BudgetTotal, campaign.BudgetSpent,
		campaign.StartDate, campaign.EndDate, objectives, campaign.Status,
	)
	if err != nil {
		return fmt.Errorf("update campaign: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ repository.PromoCodeRepository = (*PromoCodeRepo)(nil)

// PromoCodeRepo implementación sobre PostgreSQL (usable con pool o tx).
type PromoCodeRepo struct {
	q Querier
}

// NewPromoCodeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPromoCodeRepository(q Querier) *PromoCodeRepo {
	return &PromoCodeRepo{q: q}
}

const promoColumns = `id, code, campaign_id, discount_type, discount_value, valid_from, valid_to, usage_limit, used_count, created_at, updated_at`

// Create persiste un código promocional. Código único.
func (r *PromoCodeRepo) Create(code *entity.PromoCode) error {
	if code.ID == "" {
		code.ID = uuid.New().String()
	}
	query := `
		INSERT INTO promo_codes (` + promoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())`
	_, err := r.q.Exec(context.Background(), query,
		code.ID, code.Code, code.CampaignID, code.DiscountType, code.DiscountValue,
		code.ValidFrom, code.ValidTo, code.UsageLimit, code.UsedCount,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create promo code: %w", err)
	}
	return nil
}

// GetByCode obtiene un código promocional por su código.
func (r *PromoCodeRepo) GetByCode(code string) (*entity.PromoCode, error) {
	query := `SELECT ` + promoColumns + ` FROM promo_codes WHERE code = $1`
	var p entity.PromoCode
	err := r.q.QueryRow(context.Background(), query, code).Scan(
		&p.ID, &p.Code, &p.CampaignID, &p.DiscountType, &p.DiscountValue,
		&p.ValidFrom, &p.ValidTo, &p.UsageLimit, &p.UsedCount, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get promo code: %w", err)
	}
	return &p, nil
}

// ListByCampaign lista los códigos de una campaña.
func (r *PromoCodeRepo) ListByCampaign(campaignID string) ([]*entity.PromoCode, error) {
	query := `SELECT ` + promoColumns + ` FROM promo_codes WHERE campaign_id = $1 ORDER BY code`
	rows, err := r.q.Query(context.Background(), query, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list promo codes: %w", err)
	}
	defer rows.Close()
	var list []*entity.PromoCode
	for rows.Next() {
		var p entity.PromoCode
		if err := rows.Scan(&p.ID, &p.Code, &p.CampaignID, &p.DiscountType, &p.DiscountValue,
			&p.ValidFrom, &p.ValidTo, &p.UsageLimit, &p.UsedCount, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan promo code: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// IncrementUsage incrementa el contador de usos de forma atómica.
func (r *PromoCodeRepo) IncrementUsage(id string) error {
	query := `UPDATE promo_codes SET used_count = used_count + 1, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("increment promo usage: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
