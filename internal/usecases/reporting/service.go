package reporting

import (
	"fmt"
	"sort"
	"time"

	"github.com/pixecom/ads-performance-api/infrastructure/repository"
	"github.com/pixecom/ads-performance-api/internal/domain"
	"github.com/pixecom/ads-performance-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

// Host sentinela para sellpages sem domínio atribuído; o frontend usa esse
// marcador para sinalizar páginas ainda sem domínio próprio.
const unassignedDomainHost = "unassigned-domain"

// sortAccessors é o mapeamento finito de campo de ordenação para acessor.
// Chaves inválidas são rejeitadas na camada HTTP, antes de chegar aqui.
var sortAccessors = map[domain.SortField]func(*domain.CampaignStats) float64{
	domain.SortFieldSpend:     func(s *domain.CampaignStats) float64 { return s.Spend },
	domain.SortFieldRoas:      func(s *domain.CampaignStats) float64 { return s.Roas },
	domain.SortFieldPurchases: func(s *domain.CampaignStats) float64 { return float64(s.Purchases) },
}

type Service struct {
	campaignRepo repository.CampaignRepository
	statRepo     repository.DailyStatRepository
}

func NewService(
	campaignRepo repository.CampaignRepository,
	statRepo repository.DailyStatRepository,
) CampaignReporter {
	return &Service{
		campaignRepo: campaignRepo,
		statRepo:     statRepo,
	}
}

// GetCampaigns monta uma página de campanhas com métricas do período.
//
// A ordenação por métrica acontece em memória, sobre as linhas da página
// apenas: o campo de ordenação é derivado e não existe como coluna. Isso é
// uma decisão de produto acoplada à paginação por cursor — ordenar
// globalmente exigiria repaginar sobre uma visão materializada com os stats.
func (s *Service) GetCampaigns(sellerID string, filters *domain.CampaignListFilters) (*domain.CampaignListResponse, error) {
	if sellerID == "" {
		return nil, fmt.Errorf("é necessário informar o seller")
	}

	filters = normalizeFilters(filters)
	startDate, endDate := resolveDateRange(filters)

	response := &domain.CampaignListResponse{
		DateFrom: startDate.Format(time.DateOnly),
		DateTo:   endDate.Format(time.DateOnly),
		Rows:     make([]*domain.CampaignRow, 0),
	}

	// Busca limit+1 linhas: a linha extra sinaliza próxima página sem uma
	// segunda query de contagem.
	page, err := s.campaignRepo.ListPage(repository.CampaignPageParams{
		SellerID:   sellerID,
		Statuses:   resolveStatusFilter(filters),
		SellpageID: filters.SellpageID,
		Cursor:     filters.Cursor,
		Limit:      filters.Limit + 1,
	})
	if err != nil {
		logrus.WithError(err).WithField("seller_id", sellerID).Error("Erro ao buscar página de campanhas")
		return nil, err
	}

	if len(page) > filters.Limit {
		page = page[:filters.Limit]
		nextCursor := page[len(page)-1].ID
		response.NextCursor = &nextCursor
	}

	// Página vazia: retorna direto, sem consultar a agregação de stats.
	if len(page) == 0 {
		return response, nil
	}

	ids := make([]string, 0, len(page))
	for _, campaign := range page {
		ids = append(ids, campaign.ID)
	}

	// A agregação é escopada aos ids desta página, nunca a todas as
	// campanhas do seller, mantendo a query limitada independente do volume.
	totals, err := s.statRepo.SumByEntityIDs(domain.EntityLevelCampaign, ids, startDate, endDate)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"seller_id": sellerID,
			"campaigns": len(ids),
		}).Error("Erro ao agregar estatísticas da página de campanhas")
		return nil, err
	}

	for _, campaign := range page {
		response.Rows = append(response.Rows, assembleRow(campaign, totals))
	}

	sortRows(response.Rows, filters.SortBy, filters.SortDir)

	return response, nil
}

func (s *Service) GetAccountSummary(sellerID string, startDate, endDate time.Time) (*domain.AccountSummary, error) {
	if sellerID == "" {
		return nil, fmt.Errorf("é necessário informar o seller")
	}

	totals, err := s.statRepo.SumSellerCampaigns(sellerID, startDate, endDate)
	if err != nil {
		logrus.WithError(err).WithField("seller_id", sellerID).Error("Erro ao somar totais do seller")
		return nil, err
	}

	summary := &domain.AccountSummary{
		DateFrom:    startDate.Format(time.DateOnly),
		DateTo:      endDate.Format(time.DateOnly),
		Spend:       utils.RoundWithTwoDecimalPlace(totals.Spend),
		Impressions: totals.Impressions,
		Clicks:      totals.LinkClicks,
		Purchases:   totals.Purchases,
		Revenue:     utils.RoundWithTwoDecimalPlace(totals.PurchaseValue),
	}

	if totals.Spend > 0 {
		summary.Roas = utils.RoundWithFourDecimalPlace(totals.PurchaseValue / totals.Spend)
	}
	if totals.Impressions > 0 {
		summary.Ctr = utils.RoundWithFourDecimalPlace(float64(totals.LinkClicks) / float64(totals.Impressions))
		summary.Cpm = utils.RoundWithTwoDecimalPlace(totals.Spend / float64(totals.Impressions) * 1000)
	}
	if totals.LinkClicks > 0 {
		summary.Cpc = utils.RoundWithTwoDecimalPlace(totals.Spend / float64(totals.LinkClicks))
		summary.ConversionRate = utils.RoundWithFourDecimalPlace(float64(totals.Purchases) / float64(totals.LinkClicks))
	}

	return summary, nil
}

// normalizeFilters aplica os defaults defensivamente; a camada HTTP já
// valida limites e enums antes de chegar aqui.
func normalizeFilters(filters *domain.CampaignListFilters) *domain.CampaignListFilters {
	if filters == nil {
		filters = &domain.CampaignListFilters{}
	}

	if filters.Limit <= 0 {
		filters.Limit = domain.DefaultPageLimit
	}
	if filters.Limit > domain.MaxPageLimit {
		filters.Limit = domain.MaxPageLimit
	}
	if filters.SortBy == "" {
		filters.SortBy = domain.SortFieldSpend
	}
	if filters.SortDir == "" {
		filters.SortDir = domain.SortDesc
	}

	return filters
}

func resolveDateRange(filters *domain.CampaignListFilters) (time.Time, time.Time) {
	today := utils.TodayUTC()

	startDate := today
	if filters.StartDate != nil {
		startDate = *filters.StartDate
	}

	endDate := today
	if filters.EndDate != nil {
		endDate = *filters.EndDate
	}

	return startDate, endDate
}

// resolveStatusFilter aplica a política de status da listagem: um status
// explícito vale sozinho; sem filtro explícito, ARCHIVED entra apenas sob
// demanda. DELETED nunca é retornado, sob nenhuma combinação de entrada.
func resolveStatusFilter(filters *domain.CampaignListFilters) []domain.CampaignStatus {
	if filters.Status != nil {
		return []domain.CampaignStatus{*filters.Status}
	}

	if filters.IncludeArchived {
		return []domain.CampaignStatus{
			domain.CampaignStatusActive,
			domain.CampaignStatusPaused,
			domain.CampaignStatusArchived,
		}
	}

	return []domain.CampaignStatus{
		domain.CampaignStatusActive,
		domain.CampaignStatusPaused,
	}
}

// buildCampaignStats deriva as métricas a partir dos totais somados.
// Campanhas ausentes do mapa de totais recebem o objeto zerado explícito —
// a linha nunca sai sem stats.
func buildCampaignStats(totals map[string]domain.StatTotals, campaignID string) *domain.CampaignStats {
	t, ok := totals[campaignID]
	if !ok {
		return domain.ZeroCampaignStats()
	}

	stats := &domain.CampaignStats{
		Spend:       t.Spend,
		Impressions: t.Impressions,
		Clicks:      t.LinkClicks,
		Purchases:   t.Purchases,
		Revenue:     t.PurchaseValue,
	}

	// ROAS seguro para divisão: spend zero resulta em exatamente 0, nunca
	// NaN ou Inf, independente da receita.
	if t.Spend > 0 {
		stats.Roas = utils.RoundWithFourDecimalPlace(t.PurchaseValue / t.Spend)
	}

	return stats
}

func assembleRow(campaign *domain.Campaign, totals map[string]domain.StatTotals) *domain.CampaignRow {
	return &domain.CampaignRow{
		ID:          campaign.ID,
		Name:        campaign.Name,
		Status:      campaign.Status,
		DailyBudget: campaign.DailyBudget,
		BudgetType:  campaign.BudgetType,
		Sellpage: domain.SellpageResponse{
			ID:  campaign.Sellpage.ID,
			URL: sellpageURL(campaign.Sellpage),
		},
		FbConnection: domain.FbConnectionResponse{
			ID:                  campaign.FbConnection.ID,
			AdAccountExternalID: campaign.FbConnection.AdAccountExternalID,
		},
		Stats: buildCampaignStats(totals, campaign.ID),
	}
}

func sellpageURL(sellpage domain.Sellpage) string {
	host := unassignedDomainHost
	if sellpage.DomainHostname != nil && *sellpage.DomainHostname != "" {
		host = *sellpage.DomainHostname
	}

	return fmt.Sprintf("https://%s/%s", host, sellpage.Slug)
}

// sortRows ordena as linhas da página pelo acessor do campo escolhido.
// Ordenação estável para não embaralhar empates da ordem de criação.
func sortRows(rows []*domain.CampaignRow, sortBy domain.SortField, sortDir domain.SortDirection) {
	accessor, ok := sortAccessors[sortBy]
	if !ok {
		accessor = sortAccessors[domain.SortFieldSpend]
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if sortDir == domain.SortAsc {
			return accessor(rows[i].Stats) < accessor(rows[j].Stats)
		}
		return accessor(rows[i].Stats) > accessor(rows[j].Stats)
	})
}
