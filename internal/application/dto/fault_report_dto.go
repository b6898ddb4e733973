package dto

import "time"

// CreateFaultReportRequest entrada para crear una parte de avería (residentes).
type CreateFaultReportRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"required,max=4000"`
	Location    string `json:"location" validate:"required,max=200"`
	Urgency     string `json:"urgency" validate:"required,oneof=low normal high"`
}

// UpdateFaultReportRequest campos editables por el creador mientras la parte está abierta.
type UpdateFaultReportRequest struct {
	Description *string `json:"description" validate:"omitempty,max=4000"`
}

// TransitionFaultReportRequest entrada para aplicar una transición de estado.
type TransitionFaultReportRequest struct {
	Status string `json:"status" validate:"required"`
}

// FaultReportResponse salida de una parte de avería.
type FaultReportResponse struct {
	ID          string     `json:"id"`
	TenantID    string     `json:"tenant_id"`
	BuildingID  string     `json:"building_id,omitempty"`
	CreatedBy   string     `json:"created_by"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	Urgency     string     `json:"urgency"`
	Status      string     `json:"status"`
	ImagePaths  []string   `json:"image_paths,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	UpdatedBy   string     `json:"updated_by,omitempty"`
	ResolvedBy  string     `json:"resolved_by,omitempty"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}

// FaultReportListResponse lista paginada de partes.
type FaultReportListResponse struct {
	Items []FaultReportResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// AllowedStatusesResponse estados alcanzables desde el estado actual para el llamador.
type AllowedStatusesResponse struct {
	Current string   `json:"current"`
	Allowed []string `json:"allowed"`
}
