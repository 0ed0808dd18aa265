package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/pixecom/ads-performance-api/infrastructure/database/postgres"
	"github.com/pixecom/ads-performance-api/internal/domain"
)

const (
	sellersTable = "sellers s"
)

type SellerRepository interface {
	ListSellers(availableStatus []domain.SellerStatus) ([]*domain.Seller, error)
}

type sellerRepository struct {
	conn *postgres.Connection
}

func NewSellerRepository(conn *postgres.Connection) SellerRepository {
	return &sellerRepository{
		conn: conn,
	}
}

func (r *sellerRepository) ListSellers(availableStatus []domain.SellerStatus) ([]*domain.Seller, error) {
	queryBuilder := squirrel.
		Select("s.id, s.name, s.email, s.status").
		From(sellersTable).
		OrderBy("s.created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	if len(availableStatus) > 0 {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"s.status": availableStatus})
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

	sellers := make([]*domain.Seller, 0)
	for rows.Next() {
		seller := &domain.Seller{}
		if err := rows.Scan(&seller.ID, &seller.Name, &seller.Email, &seller.Status); err != nil {
			return nil, fmt.Errorf("erro ao escanear seller: %w", err)
		}
		sellers = append(sellers, seller)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return sellers, nil
}
