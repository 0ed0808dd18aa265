package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/pixecom/ads-performance-api/infrastructure/database/postgres"
	"github.com/pixecom/ads-performance-api/internal/domain"
)

const (
	campaignsTable = "campaigns c"
)

// CampaignPageParams são os parâmetros da busca paginada de campanhas.
// Limit é o número literal de linhas pedido ao banco; o motor de agregação
// pede limit+1 para detectar a existência de próxima página.
type CampaignPageParams struct {
	SellerID   string
	Statuses   []domain.CampaignStatus
	SellpageID *string
	Cursor     *string
	Limit      int
}

type CampaignRepository interface {
	ListPage(params CampaignPageParams) ([]*domain.Campaign, error)
}

type campaignRepository struct {
	conn *postgres.Connection
}

func NewCampaignRepository(conn *postgres.Connection) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

const campaignColumns = `c.id, c.seller_id, c.name, c.status, c.daily_budget, c.budget_type, c.created_at,
	sp.id, sp.slug, d.hostname, fc.id, fc.ad_account_external_id`

func (r *campaignRepository) ListPage(params CampaignPageParams) ([]*domain.Campaign, error) {
	queryBuilder := squirrel.
		Select(campaignColumns).
		From(campaignsTable).
		Join("sellpages sp ON sp.id = c.sellpage_id").
		LeftJoin("domains d ON d.id = sp.domain_id").
		Join("fb_connections fc ON fc.id = c.fb_connection_id").
		Where(squirrel.Eq{"c.seller_id": params.SellerID}).
		OrderBy("c.created_at DESC").
		Limit(uint64(params.Limit)).
		PlaceholderFormat(squirrel.Dollar)

	if len(params.Statuses) > 0 {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"c.status": params.Statuses})
	}

	if params.SellpageID != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"c.sellpage_id": *params.SellpageID})
	}

	// Cursor opaco: id da última linha da página anterior. Um cursor que não
	// referencia linha existente apenas casa menos linhas, não é erro.
	if params.Cursor != nil {
		queryBuilder = queryBuilder.Where(squirrel.Lt{"c.id": *params.Cursor})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	campaigns := make([]*domain.Campaign, 0)
	for rows.Next() {
		campaign, err := r.scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear campanha: %w", err)
		}
		campaigns = append(campaigns, campaign)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return campaigns, nil
}

func (r *campaignRepository) scanCampaign(rows *sql.Rows) (*domain.Campaign, error) {
	campaign := &domain.Campaign{}
	var hostname sql.NullString

	err := rows.Scan(
		&campaign.ID,
		&campaign.SellerID,
		&campaign.Name,
		&campaign.Status,
		&campaign.DailyBudget,
		&campaign.BudgetType,
		&campaign.CreatedAt,
		&campaign.Sellpage.ID,
		&campaign.Sellpage.Slug,
		&hostname,
		&campaign.FbConnection.ID,
		&campaign.FbConnection.AdAccountExternalID,
	)
	if err != nil {
		return nil, err
	}

	if hostname.Valid {
		campaign.Sellpage.DomainHostname = &hostname.String
	}

	return campaign, nil
}
