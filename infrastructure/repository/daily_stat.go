package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pixecom/ads-performance-api/infrastructure/database/postgres"
	"github.com/pixecom/ads-performance-api/internal/domain"
)

const (
	dailyStatsTable = "daily_stats ds"
)

type DailyStatRepository interface {
	// SumByEntityIDs agrega as linhas diárias das entidades informadas no
	// período [startDate, endDate], agrupadas por entity_id. Entidades sem
	// linhas no período simplesmente não aparecem no mapa.
	SumByEntityIDs(entityType domain.EntityLevel, entityIDs []string, startDate, endDate time.Time) (map[string]domain.StatTotals, error)

	// SumSellerCampaigns soma as linhas de nível CAMPAIGN de todas as
	// campanhas do seller no período.
	SumSellerCampaigns(sellerID string, startDate, endDate time.Time) (domain.StatTotals, error)

	// DeleteOlderThan remove linhas diárias fora da janela de retenção e
	// retorna quantas foram apagadas.
	DeleteOlderThan(days int) (int64, error)
}

type dailyStatRepository struct {
	conn *postgres.Connection
}

func NewDailyStatRepository(conn *postgres.Connection) DailyStatRepository {
	return &dailyStatRepository{
		conn: conn,
	}
}

func (r *dailyStatRepository) SumByEntityIDs(
	entityType domain.EntityLevel,
	entityIDs []string,
	startDate, endDate time.Time,
) (map[string]domain.StatTotals, error) {
	totals := make(map[string]domain.StatTotals, len(entityIDs))
	if len(entityIDs) == 0 {
		return totals, nil
	}

	query, args, err := squirrel.
		Select(`ds.entity_id,
			COALESCE(SUM(ds.spend), 0),
			COALESCE(SUM(ds.impressions), 0),
			COALESCE(SUM(ds.link_clicks), 0),
			COALESCE(SUM(ds.purchases), 0),
			COALESCE(SUM(ds.purchase_value), 0)`).
		From(dailyStatsTable).
		Where(squirrel.Eq{"ds.entity_type": entityType, "ds.entity_id": entityIDs}).
		Where(squirrel.GtOrEq{"ds.stat_date": startDate.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"ds.stat_date": endDate.Format(time.DateOnly)}).
		GroupBy("ds.entity_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return totals, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entityID string
		var t domain.StatTotals

		if err := rows.Scan(
			&entityID,
			&t.Spend,
			&t.Impressions,
			&t.LinkClicks,
			&t.Purchases,
			&t.PurchaseValue,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear totais agregados: %w", err)
		}

		totals[entityID] = t
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return totals, nil
}

func (r *dailyStatRepository) SumSellerCampaigns(
	sellerID string,
	startDate, endDate time.Time,
) (domain.StatTotals, error) {
	var t domain.StatTotals

	query, args, err := squirrel.
		Select(`COALESCE(SUM(ds.spend), 0),
			COALESCE(SUM(ds.impressions), 0),
			COALESCE(SUM(ds.link_clicks), 0),
			COALESCE(SUM(ds.purchases), 0),
			COALESCE(SUM(ds.purchase_value), 0)`).
		From(dailyStatsTable).
		Join("campaigns c ON c.id = ds.entity_id").
		Where(squirrel.Eq{"ds.entity_type": domain.EntityLevelCampaign, "c.seller_id": sellerID}).
		Where(squirrel.GtOrEq{"ds.stat_date": startDate.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"ds.stat_date": endDate.Format(time.DateOnly)}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return t, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	if err := row.Scan(
		&t.Spend,
		&t.Impressions,
		&t.LinkClicks,
		&t.Purchases,
		&t.PurchaseValue,
	); err != nil {
		return t, fmt.Errorf("erro ao escanear totais do seller: %w", err)
	}

	return t, nil
}

func (r *dailyStatRepository) DeleteOlderThan(days int) (int64, error) {
	cutoffDate := time.Now().AddDate(0, 0, -days).Format(time.DateOnly)

	query, args, err := squirrel.
		Delete("daily_stats").
		Where(squirrel.Lt{"stat_date": cutoffDate}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}
