package domain

import "strings"

// SyncJobIDSeparator separa os componentes da identidade de um job.
// A sintaxe de id da fila proíbe o dois-pontos convencional, então usamos
// underscore duplo, que não colide com nenhum dos campos constituintes.
const SyncJobIDSeparator = "__"

// BuildSyncJobID monta a identidade determinística de um job de sincronização.
// Duas chamadas com os mesmos argumentos produzem o mesmo id byte a byte;
// é isso que permite à fila colapsar enfileiramentos repetidos.
func BuildSyncJobID(sellerID, dateFrom, dateTo string, level EntityLevel) string {
	return strings.Join([]string{"sync", sellerID, dateFrom, dateTo, string(level)}, SyncJobIDSeparator)
}

// SyncJobPayload é o corpo consumido pelo worker de sincronização.
type SyncJobPayload struct {
	SellerID string      `json:"sellerId"`
	DateFrom string      `json:"dateFrom"`
	DateTo   string      `json:"dateTo"`
	Level    EntityLevel `json:"level"`
}
