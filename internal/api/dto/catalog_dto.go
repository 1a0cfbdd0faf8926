package dto

import (
	"time"

	"github.com/impulse-lab/lab-booking-service/internal/domain"
)

// ServiceRequest payload for catalog create/update.
type ServiceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
}

// ServiceResponse is the catalog entry shape.
type ServiceResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewServiceResponse maps a domain service.
func NewServiceResponse(svc *domain.Service) ServiceResponse {
	return ServiceResponse{
		ID:          svc.ID,
		Name:        svc.Name,
		Description: svc.Description,
		Price:       svc.Price,
		CreatedAt:   svc.CreatedAt,
		UpdatedAt:   svc.UpdatedAt,
	}
}
