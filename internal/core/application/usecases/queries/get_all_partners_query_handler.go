package queries

import (
	"context"
	"database/sql"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAllPartnersQueryHandler retrieves all delivery partner information from
// the database. Uses direct SQL queries for optimal read performance in the
// CQRS pattern.
type GetAllPartnersQueryHandler struct {
	db *gorm.DB
}

// NewGetAllPartnersQueryHandler creates a handler for partner retrieval
// queries. Requires a GORM database connection for query execution.
func NewGetAllPartnersQueryHandler(db *gorm.DB) GetAllPartnersQueryHandler {
	return GetAllPartnersQueryHandler{db: db}
}

// Handle executes the query to retrieve all partners, sorted by name.
func (h GetAllPartnersQueryHandler) Handle(
	ctx context.Context,
	query GetAllPartnersQuery,
) ([]GetAllPartnersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	partners := make([]GetAllPartnersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			is_available,
			eta
		FROM delivery_partners
		ORDER BY name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var partnerResp GetAllPartnersQueryResponse
		var id uuid.UUID
		var eta sql.NullInt64

		err = rows.Scan(
			&id,
			&partnerResp.Name,
			&partnerResp.IsAvailable,
			&eta,
		)
		if err != nil {
			return nil, err
		}

		partnerID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		partnerResp.ID = partnerID

		if eta.Valid {
			minutes := int(eta.Int64)
			partnerResp.ETA = &minutes
		}

		partners = append(partners, partnerResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return partners, nil
}
