package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/teamsyntaxerror/selyo-api/internal/models"
)

// RequestTypeRepository reads the request-type catalog.
type RequestTypeRepository struct {
	db *sqlx.DB
}

// NewRequestTypeRepository creates the repository.
func NewRequestTypeRepository(db *sqlx.DB) *RequestTypeRepository {
	return &RequestTypeRepository{db: db}
}

// List returns the catalog in display order.
func (r *RequestTypeRepository) List(ctx context.Context) ([]models.RequestType, error) {
	const query = `SELECT key, label, requires_appointment, required_documents, position
FROM request_types ORDER BY position, key`
	var types []models.RequestType
	if err := r.db.SelectContext(ctx, &types, query); err != nil {
		return nil, fmt.Errorf("list request types: %w", err)
	}
	return types, nil
}
