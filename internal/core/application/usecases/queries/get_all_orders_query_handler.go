package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAllOrdersQueryHandler retrieves the full order book from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetAllOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetAllOrdersQueryHandler creates a handler for order book queries.
// Requires a GORM database connection for query execution.
func NewGetAllOrdersQueryHandler(db *gorm.DB) GetAllOrdersQueryHandler {
	return GetAllOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all orders, oldest first.
func (h GetAllOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAllOrdersQuery,
) ([]GetAllOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetAllOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			items,
			prep_time,
			status,
			created_at,
			dispatch_time,
			partner_id
		FROM orders
		ORDER BY created_at
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		orderResp, scanErr := scanOrderRow(rows.Scan)
		if scanErr != nil {
			return nil, scanErr
		}
		orders = append(orders, orderResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

// scanOrderRow maps one result row onto the order read model. Shared by the
// order queries, which all select the same column list.
func scanOrderRow(scan func(dest ...any) error) (GetAllOrdersQueryResponse, error) {
	var orderResp GetAllOrdersQueryResponse
	var id uuid.UUID
	var status int
	var partnerID uuid.NullUUID

	err := scan(
		&id,
		&orderResp.Items,
		&orderResp.PrepTime,
		&status,
		&orderResp.CreatedAt,
		&orderResp.DispatchTime,
		&partnerID,
	)
	if err != nil {
		return GetAllOrdersQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetAllOrdersQueryResponse{}, err
	}
	orderResp.ID = orderID
	orderResp.Status = order.Status(status)

	if partnerID.Valid {
		boundID, idErr := kernel.UUIDFromBytes(partnerID.UUID[:])
		if idErr != nil {
			return GetAllOrdersQueryResponse{}, idErr
		}
		orderResp.PartnerID = &boundID
	}

	return orderResp, nil
}
