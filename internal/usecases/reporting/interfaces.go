package reporting

import (
	"time"

	"github.com/pixecom/ads-performance-api/internal/domain"
)

// CampaignReporter produz páginas de campanhas enriquecidas com métricas de
// performance e os totais consolidados da conta.
type CampaignReporter interface {
	// GetCampaigns retorna uma página de campanhas do seller com as
	// estatísticas agregadas do período e a ordenação por métrica aplicada
	// dentro da página.
	GetCampaigns(sellerID string, filters *domain.CampaignListFilters) (*domain.CampaignListResponse, error)

	// GetAccountSummary retorna os totais de nível CAMPAIGN do seller no
	// período, com as métricas derivadas (ROAS, CTR, CPC, CPM, conversão).
	GetAccountSummary(sellerID string, startDate, endDate time.Time) (*domain.AccountSummary, error)
}
