package domain

// EntityLevel é a granularidade de agregação de estatísticas de anúncios.
type EntityLevel string

const (
	EntityLevelCampaign EntityLevel = "CAMPAIGN"
	EntityLevelAdset    EntityLevel = "ADSET"
	EntityLevelAd       EntityLevel = "AD"
)

// AllEntityLevels na ordem em que os jobs de sincronização são enfileirados.
var AllEntityLevels = []EntityLevel{EntityLevelCampaign, EntityLevelAdset, EntityLevelAd}

// StatTotals são os acumuladores somados de uma entidade em um período.
// A tabela daily_stats guarda no máximo uma linha por (entity_type,
// entity_id, stat_date); totais de período são sempre somas dessas linhas,
// nunca médias.
type StatTotals struct {
	Spend         float64
	Impressions   int64
	LinkClicks    int64
	Purchases     int64
	PurchaseValue float64
}

// CampaignStats é o objeto de métricas exposto por linha de campanha.
type CampaignStats struct {
	Spend       float64 `json:"spend"`
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	Purchases   int64   `json:"purchases"`
	Revenue     float64 `json:"revenue"`
	Roas        float64 `json:"roas"`
}

// ZeroCampaignStats é o default explícito para campanhas sem atividade no
// período: a linha sempre sai com stats preenchidas, nunca nulas.
func ZeroCampaignStats() *CampaignStats {
	return &CampaignStats{}
}

// AccountSummary são os totais do seller no período com as métricas derivadas.
type AccountSummary struct {
	DateFrom       string  `json:"dateFrom"`
	DateTo         string  `json:"dateTo"`
	Spend          float64 `json:"spend"`
	Impressions    int64   `json:"impressions"`
	Clicks         int64   `json:"clicks"`
	Purchases      int64   `json:"purchases"`
	Revenue        float64 `json:"revenue"`
	Roas           float64 `json:"roas"`
	Ctr            float64 `json:"ctr"`
	Cpc            float64 `json:"cpc"`
	Cpm            float64 `json:"cpm"`
	ConversionRate float64 `json:"conversionRate"`
}
