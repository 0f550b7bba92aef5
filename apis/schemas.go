package apis

import "invitation_backend/service"

/* offers */

type OfferInfo struct {
	Name           string `json:"name"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	TotalCount     int    `json:"total_count"`
	RemainingCount int    `json:"remaining_count"`
	IsActive       bool   `json:"is_active"`
}

type OfferInfoResponse struct {
	Success bool      `json:"success"`
	Data    OfferInfo `json:"data"`
}

/* claim */

type ClaimRequest struct {
	UserIP    string `json:"user_ip" validate:"omitempty,max=45"`
	UserAgent string `json:"user_agent" validate:"omitempty"`
}

type ClaimData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ClaimResponse struct {
	Success bool      `json:"success"`
	Data    ClaimData `json:"data"`
}

/* stats */

type StatsResponse struct {
	Success bool               `json:"success"`
	Data    service.OfferStats `json:"data"`
}
