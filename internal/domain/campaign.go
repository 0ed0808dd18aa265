package domain

import (
	"fmt"
	"time"
)

type CampaignStatus string

const (
	CampaignStatusActive   CampaignStatus = "ACTIVE"
	CampaignStatusPaused   CampaignStatus = "PAUSED"
	CampaignStatusArchived CampaignStatus = "ARCHIVED"
	CampaignStatusDeleted  CampaignStatus = "DELETED"
)

// ParseCampaignStatusFilter valida um status vindo do cliente.
// DELETED não faz parte do vocabulário de filtro: campanhas removidas
// nunca aparecem na listagem, nem quando solicitadas explicitamente.
func ParseCampaignStatusFilter(raw string) (CampaignStatus, error) {
	switch CampaignStatus(raw) {
	case CampaignStatusActive, CampaignStatusPaused, CampaignStatusArchived:
		return CampaignStatus(raw), nil
	default:
		return "", fmt.Errorf("status de campanha inválido: %q", raw)
	}
}

type BudgetType string

const (
	BudgetTypeDaily    BudgetType = "DAILY"
	BudgetTypeLifetime BudgetType = "LIFETIME"
)

// Sellpage é a referência da página de venda vinculada à campanha.
// DomainHostname é nulo enquanto o seller não atribui um domínio próprio.
type Sellpage struct {
	ID             string
	Slug           string
	DomainHostname *string
}

// FbConnection é a referência da conexão com a conta de anúncios externa.
type FbConnection struct {
	ID                  string
	AdAccountExternalID string
}

// Campaign é a projeção de leitura de uma campanha. Toda campanha pertence
// a exatamente um seller; as queries são sempre escopadas por SellerID.
type Campaign struct {
	ID           string
	SellerID     string
	Name         string
	Status       CampaignStatus
	DailyBudget  float64
	BudgetType   BudgetType
	CreatedAt    time.Time
	Sellpage     Sellpage
	FbConnection FbConnection
}

type SortField string

const (
	SortFieldSpend     SortField = "spend"
	SortFieldRoas      SortField = "roas"
	SortFieldPurchases SortField = "purchases"
)

func ParseSortField(raw string) (SortField, error) {
	switch SortField(raw) {
	case SortFieldSpend, SortFieldRoas, SortFieldPurchases:
		return SortField(raw), nil
	default:
		return "", fmt.Errorf("campo de ordenação inválido: %q", raw)
	}
}

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

func ParseSortDirection(raw string) (SortDirection, error) {
	switch SortDirection(raw) {
	case SortAsc, SortDesc:
		return SortDirection(raw), nil
	default:
		return "", fmt.Errorf("direção de ordenação inválida: %q", raw)
	}
}

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 200
)

// CampaignListFilters carrega os filtros já validados pela camada HTTP.
type CampaignListFilters struct {
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *CampaignStatus
	IncludeArchived bool
	SellpageID      *string
	Cursor          *string
	Limit           int
	SortBy          SortField
	SortDir         SortDirection
}

// Shapes de resposta. Os nomes de campo e a semântica de nulos fazem parte
// do contrato público e precisam permanecer estáveis.

type SellpageResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type FbConnectionResponse struct {
	ID                  string `json:"id"`
	AdAccountExternalID string `json:"adAccountExternalId"`
}

type CampaignRow struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Status       CampaignStatus       `json:"status"`
	DailyBudget  float64              `json:"dailyBudget"`
	BudgetType   BudgetType           `json:"budgetType"`
	Sellpage     SellpageResponse     `json:"sellpage"`
	FbConnection FbConnectionResponse `json:"fbConnection"`
	Stats        *CampaignStats       `json:"stats"`
}

type CampaignListResponse struct {
	DateFrom   string         `json:"dateFrom"`
	DateTo     string         `json:"dateTo"`
	Rows       []*CampaignRow `json:"rows"`
	NextCursor *string        `json:"nextCursor"`
}
