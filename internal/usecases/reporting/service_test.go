package reporting

import (
	"fmt"
	"testing"
	"time"

	"github.com/pixecom/ads-performance-api/infrastructure/repository"
	"github.com/pixecom/ads-performance-api/infrastructure/repository/mocks"
	"github.com/pixecom/ads-performance-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func stringPtr(s string) *string {
	return &s
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func statusPtr(s domain.CampaignStatus) *domain.CampaignStatus {
	return &s
}

// makeCampaign cria uma campanha mínima para os testes de listagem.
func makeCampaign(id string) *domain.Campaign {
	return &domain.Campaign{
		ID:          id,
		SellerID:    "SELLER1",
		Name:        "Campanha " + id,
		Status:      domain.CampaignStatusActive,
		DailyBudget: 50,
		BudgetType:  domain.BudgetTypeDaily,
		CreatedAt:   time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Sellpage: domain.Sellpage{
			ID:             "SP1",
			Slug:           "oferta-verao",
			DomainHostname: stringPtr("loja.exemplo.com"),
		},
		FbConnection: domain.FbConnection{
			ID:                  "FB1",
			AdAccountExternalID: "act_123",
		},
	}
}

func TestService_GetCampaigns_PoliticaDeStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	startDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name             string
		filters          *domain.CampaignListFilters
		expectedStatuses []domain.CampaignStatus
	}{
		{
			name: "Sem filtro explícito - retorna ACTIVE e PAUSED",
			filters: &domain.CampaignListFilters{
				StartDate: timePtr(startDate),
				EndDate:   timePtr(endDate),
			},
			expectedStatuses: []domain.CampaignStatus{
				domain.CampaignStatusActive,
				domain.CampaignStatusPaused,
			},
		},
		{
			name: "Com includeArchived - adiciona ARCHIVED ao conjunto padrão",
			filters: &domain.CampaignListFilters{
				StartDate:       timePtr(startDate),
				EndDate:         timePtr(endDate),
				IncludeArchived: true,
			},
			expectedStatuses: []domain.CampaignStatus{
				domain.CampaignStatusActive,
				domain.CampaignStatusPaused,
				domain.CampaignStatusArchived,
			},
		},
		{
			name: "Status explícito vale sozinho",
			filters: &domain.CampaignListFilters{
				StartDate: timePtr(startDate),
				EndDate:   timePtr(endDate),
				Status:    statusPtr(domain.CampaignStatusPaused),
			},
			expectedStatuses: []domain.CampaignStatus{domain.CampaignStatusPaused},
		},
		{
			name: "Status explícito ignora includeArchived",
			filters: &domain.CampaignListFilters{
				StartDate:       timePtr(startDate),
				EndDate:         timePtr(endDate),
				Status:          statusPtr(domain.CampaignStatusArchived),
				IncludeArchived: true,
			},
			expectedStatuses: []domain.CampaignStatus{domain.CampaignStatusArchived},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
			mockStatRepo := mocks.NewMockDailyStatRepository(ctrl)
			service := NewService(mockCampaignRepo, mockStatRepo)

			mockCampaignRepo.EXPECT().
				ListPage(gomock.Any()).
				DoAndReturn(func(params repository.CampaignPageParams) ([]*domain.Campaign, error) {
					assert.Equal(t, "SELLER1", params.SellerID)
					assert.Equal(t, tt.expectedStatuses, params.Statuses)
					return []*domain.Campaign{}, nil
				})

			_, err := service.GetCampaigns("SELLER1", tt.filters)
			assert.NoError(t, err)
		})
	}
}

func TestService_GetCampaigns_Paginacao(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	startDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	t.Run("Banco retorna limit+1 linhas - corta a página e publica o cursor", func(t *testing.T) {
		mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
		mockStatRepo := mocks.NewMockDailyStatRepository(ctrl)
		service := NewService(mockCampaignRepo, mockStatRepo)

		// 51 campanhas para um limit de 50
		page := make([]*domain.Campaign, 0, 51)
		for i := 1; i <= 51; i++ {
			page = append(page, makeCampaign(fmt.Sprintf("CAMP%03d", i)))
		}

		mockCampaignRepo.EXPECT().
			ListPage(gomock.Any()).
			DoAndReturn(func(params repository.CampaignPageParams) ([]*domain.Campaign, error) {
				assert.Equal(t, 51, params.Limit)
				return page, nil
			})

		mockStatRepo.EXPECT().
			SumByEntityIDs(domain.EntityLevelCampaign, gomock.Any(), startDate, endDate).
			DoAndReturn(func(_ domain.EntityLevel, ids []string, _, _ time.Time) (map[string]domain.StatTotals, error) {
				// A agregação é escopada às 50 linhas da página, não às 51
				assert.Len(t, ids, 50)
				return map[string]domain.StatTotals{}, nil
			})

		result, err := service.GetCampaigns("SELLER1", &domain.CampaignListFilters{
			StartDate: timePtr(startDate),
			EndDate:   timePtr(endDate),
			Limit:     50,
		})

		assert.NoError(t, err)
		assert.Len(t, result.Rows, 50)
		if assert.NotNil(t, result.NextCursor) {
			assert.Equal(t, "CAMP050", *result.NextCursor)
		}
	})

	t.Run("Banco retorna exatamente limit linhas - última página, sem cursor", func(t *testing.T) {
		mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
		mockStatRepo := mocks.NewMockDailyStatRepository(ctrl)
		service := NewService(mockCampaignRepo, mockStatRepo)

		page := []*domain.Campaign{makeCampaign("CAMP001"), makeCampaign("CAMP002")}

		mockCampaignRepo.EXPECT().
			ListPage(gomock.Any()).
			DoAndReturn(func(params repository.CampaignPageParams) ([]*domain.Campaign, error) {
				assert.Equal(t, 3, params.Limit)
				return page, nil
			})

		mockStatRepo.EXPECT().
			SumByEntityIDs(domain.EntityLevelCampaign, []string{"CAMP001", "CAMP002"}, startDate, endDate).
			Return(map[string]domain.StatTotals{}, nil)

		result, err := service.GetCampaigns("SELLER1", &domain.CampaignListFilters{
			StartDate: timePtr(startDate),
			EndDate:   timePtr(endDate),
			Limit:     2,
		})

		assert.NoError(t, err)
		assert.Len(t, result.Rows, 2)
		assert.Nil(t, result.NextCursor)
	})

	t.Run("Página vazia - retorna sem consultar a agregação de stats", func(t *testing.T) {
		mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
		mockStatRepo := mocks.NewMockDailyStatRepository(ctrl)
		service := NewService(mockCampaignRepo, mockStatRepo)

		mockCampaignRepo.EXPECT().
			ListPage(gomock.Any()).
			Return([]*domain.Campaign{}, nil)

		// Nenhum EXPECT em SumByEntityIDs: qualquer chamada falha o teste

		result, err := service.GetCampaigns("SELLER1", &domain.CampaignListFilters{
			StartDate: timePtr(startDate),
			EndDate:   timePtr(endDate),
		})

		assert.NoError(t, err)
		assert.Empty(t, result.Rows)
		assert.Nil(t, result.NextCursor)
		assert.Equal(t, "2024-01-01", result.DateFrom)
		assert.Equal(t, "2024-01-31", result.DateTo)
	})
}

func TestService_GetCampaigns_MontagemDeStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	startDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
	mockStatRepo := mocks.NewMockDailyStatRepository(ctrl)
	service := NewService(mockCampaignRepo, mockStatRepo)

	withSpend := makeCampaign("CAMP001")
	zeroSpend := makeCampaign("CAMP002")
	semAtividade := makeCampaign("CAMP003")
	semAtividade.Sellpage.DomainHostname = nil
	dizima := makeCampaign("CAMP004")

	mockCampaignRepo.EXPECT().
		ListPage(gomock.Any()).
		Return([]*domain.Campaign{withSpend, zeroSpend, semAtividade, dizima}, nil)

	mockStatRepo.EXPECT().
		SumByEntityIDs(domain.EntityLevelCampaign, []string{"CAMP001", "CAMP002", "CAMP003", "CAMP004"}, startDate, endDate).
		Return(map[string]domain.StatTotals{
			"CAMP001": {
				Spend:         1000,
				Impressions:   50000,
				LinkClicks:    1200,
				Purchases:     90,
				PurchaseValue: 3003,
			},
			// Receita sem gasto: ROAS precisa sair exatamente 0, nunca Inf
			"CAMP002": {
				Spend:         0,
				PurchaseValue: 500,
				Purchases:     5,
			},
			// Divisão com dízima: 1000 / 333 = 3.003003... arredonda em 3.003
			"CAMP004": {
				Spend:         333,
				PurchaseValue: 1000,
				Purchases:     10,
			},
		}, nil)

	result, err := service.GetCampaigns("SELLER1", &domain.CampaignListFilters{
		StartDate: timePtr(startDate),
		EndDate:   timePtr(endDate),
	})
	assert.NoError(t, err)
	assert.Len(t, result.Rows, 4)

	byID := make(map[string]*domain.CampaignRow, len(result.Rows))
	for _, row := range result.Rows {
		byID[row.ID] = row
	}

	// ROAS arredondado em 4 casas: 3003 / 1000 = 3.003
	assert.Equal(t, 3.003, byID["CAMP001"].Stats.Roas)
	assert.Equal(t, float64(1000), byID["CAMP001"].Stats.Spend)
	assert.Equal(t, int64(1200), byID["CAMP001"].Stats.Clicks)
	assert.Equal(t, "https://loja.exemplo.com/oferta-verao", byID["CAMP001"].Sellpage.URL)

	assert.Equal(t, float64(0), byID["CAMP002"].Stats.Roas)
	assert.Equal(t, float64(500), byID["CAMP002"].Stats.Revenue)

	// Campanha ausente do mapa de totais recebe o objeto zerado, nunca nil
	if assert.NotNil(t, byID["CAMP003"].Stats) {
		assert.Equal(t, domain.ZeroCampaignStats(), byID["CAMP003"].Stats)
	}
	assert.Equal(t, "https://unassigned-domain/oferta-verao", byID["CAMP003"].Sellpage.URL)

	assert.Equal(t, 3.003, byID["CAMP004"].Stats.Roas)
}

func TestService_GetCampaigns_Ordenacao(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	startDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	totals := map[string]domain.StatTotals{
		"CAMP001": {Spend: 100, PurchaseValue: 350, Purchases: 10},
		"CAMP002": {Spend: 300, PurchaseValue: 300, Purchases: 2},
		"CAMP003": {Spend: 200, PurchaseValue: 1000, Purchases: 7},
	}

	tests := []struct {
		name          string
		sortBy        domain.SortField
		sortDir       domain.SortDirection
		expectedOrder []string
	}{
		{
			name:          "Ordenação padrão por spend desc",
			sortBy:        domain.SortFieldSpend,
			sortDir:       domain.SortDesc,
			expectedOrder: []string{"CAMP002", "CAMP003", "CAMP001"},
		},
		{
			name:          "Por roas asc - derivado, calculado em memória",
			sortBy:        domain.SortFieldRoas,
			sortDir:       domain.SortAsc,
			expectedOrder: []string{"CAMP002", "CAMP001", "CAMP003"},
		},
		{
			name:          "Por purchases desc",
			sortBy:        domain.SortFieldPurchases,
			sortDir:       domain.SortDesc,
			expectedOrder: []string{"CAMP001", "CAMP003", "CAMP002"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
			mockStatRepo := mocks.NewMockDailyStatRepository(ctrl)
			service := NewService(mockCampaignRepo, mockStatRepo)

			mockCampaignRepo.EXPECT().
				ListPage(gomock.Any()).
				Return([]*domain.Campaign{
					makeCampaign("CAMP001"),
					makeCampaign("CAMP002"),
					makeCampaign("CAMP003"),
				}, nil)

			mockStatRepo.EXPECT().
				SumByEntityIDs(domain.EntityLevelCampaign, gomock.Any(), startDate, endDate).
				Return(totals, nil)

			result, err := service.GetCampaigns("SELLER1", &domain.CampaignListFilters{
				StartDate: timePtr(startDate),
				EndDate:   timePtr(endDate),
				SortBy:    tt.sortBy,
				SortDir:   tt.sortDir,
			})
			assert.NoError(t, err)

			order := make([]string, 0, len(result.Rows))
			for _, row := range result.Rows {
				order = append(order, row.ID)
			}
			assert.Equal(t, tt.expectedOrder, order)
		})
	}
}

func TestService_GetCampaigns_SemSeller(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
	mockStatRepo := mocks.NewMockDailyStatRepository(ctrl)
	service := NewService(mockCampaignRepo, mockStatRepo)

	result, err := service.GetCampaigns("", nil)
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestService_GetAccountSummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	startDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	t.Run("Totais com atividade - deriva roas, ctr, cpc, cpm e conversão", func(t *testing.T) {
		mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
		mockStatRepo := mocks.NewMockDailyStatRepository(ctrl)
		service := NewService(mockCampaignRepo, mockStatRepo)

		mockStatRepo.EXPECT().
			SumSellerCampaigns("SELLER1", startDate, endDate).
			Return(domain.StatTotals{
				Spend:         2000,
				Impressions:   100000,
				LinkClicks:    4000,
				Purchases:     200,
				PurchaseValue: 7000,
			}, nil)

		summary, err := service.GetAccountSummary("SELLER1", startDate, endDate)
		assert.NoError(t, err)

		assert.Equal(t, "2024-01-01", summary.DateFrom)
		assert.Equal(t, "2024-01-31", summary.DateTo)
		assert.Equal(t, 3.5, summary.Roas)            // 7000 / 2000
		assert.Equal(t, 0.04, summary.Ctr)            // 4000 / 100000
		assert.Equal(t, 0.5, summary.Cpc)             // 2000 / 4000
		assert.Equal(t, 20.0, summary.Cpm)            // 2000 / 100000 * 1000
		assert.Equal(t, 0.05, summary.ConversionRate) // 200 / 4000
	})

	t.Run("Totais zerados - métricas derivadas ficam em 0, sem divisão por zero", func(t *testing.T) {
		mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
		mockStatRepo := mocks.NewMockDailyStatRepository(ctrl)
		service := NewService(mockCampaignRepo, mockStatRepo)

		mockStatRepo.EXPECT().
			SumSellerCampaigns("SELLER1", startDate, endDate).
			Return(domain.StatTotals{}, nil)

		summary, err := service.GetAccountSummary("SELLER1", startDate, endDate)
		assert.NoError(t, err)

		assert.Equal(t, float64(0), summary.Roas)
		assert.Equal(t, float64(0), summary.Ctr)
		assert.Equal(t, float64(0), summary.Cpc)
		assert.Equal(t, float64(0), summary.Cpm)
		assert.Equal(t, float64(0), summary.ConversionRate)
	})

	t.Run("Seller vazio - retorna erro sem consultar o repositório", func(t *testing.T) {
		mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
		mockStatRepo := mocks.NewMockDailyStatRepository(ctrl)
		service := NewService(mockCampaignRepo, mockStatRepo)

		summary, err := service.GetAccountSummary("", startDate, endDate)
		assert.Error(t, err)
		assert.Nil(t, summary)
	})
}
