package http

import (
	"time"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/partner"
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrderRequest is the JSON body for creating an order.
type NewOrderRequest struct {
	Items    string `json:"items"`
	PrepTime int    `json:"prepTime"`
}

// NewPartnerRequest is the JSON body for registering a delivery partner.
type NewPartnerRequest struct {
	Name string `json:"name"`
	ETA  *int   `json:"eta,omitempty"`
}

// OrderResponse is the JSON representation of an order.
type OrderResponse struct {
	ID           string    `json:"id"`
	Items        string    `json:"items"`
	PrepTime     int       `json:"prepTime"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	DispatchTime time.Time `json:"dispatchTime"`
	PartnerID    *string   `json:"partnerId,omitempty"`
}

// PartnerResponse is the JSON representation of a delivery partner.
type PartnerResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IsAvailable bool   `json:"isAvailable"`
	ETA         *int   `json:"eta,omitempty"`
}

func orderToResponse(o *order.Order) OrderResponse {
	var partnerID *string
	if o.Partner() != nil {
		id := o.Partner().String()
		partnerID = &id
	}

	return OrderResponse{
		ID:           o.ID().String(),
		Items:        o.Items(),
		PrepTime:     o.PrepTime(),
		Status:       o.Status().String(),
		CreatedAt:    o.CreatedAt(),
		DispatchTime: o.DispatchTime(),
		PartnerID:    partnerID,
	}
}

func orderReadModelToResponse(o queries.GetAllOrdersQueryResponse) OrderResponse {
	var partnerID *string
	if o.PartnerID != nil {
		id := o.PartnerID.String()
		partnerID = &id
	}

	return OrderResponse{
		ID:           o.ID.String(),
		Items:        o.Items,
		PrepTime:     o.PrepTime,
		Status:       o.Status.String(),
		CreatedAt:    o.CreatedAt,
		DispatchTime: o.DispatchTime,
		PartnerID:    partnerID,
	}
}

func partnerToResponse(p *partner.DeliveryPartner) PartnerResponse {
	return PartnerResponse{
		ID:          p.ID().String(),
		Name:        p.Name(),
		IsAvailable: p.IsAvailable(),
		ETA:         p.ETA(),
	}
}

func partnerReadModelToResponse(p queries.GetAllPartnersQueryResponse) PartnerResponse {
	return PartnerResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		IsAvailable: p.IsAvailable,
		ETA:         p.ETA,
	}
}
