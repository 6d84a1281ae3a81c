package dto

import "time"

type CompanySessionResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Company   CompanyResponse `json:"company"`
}

type InstitutionSessionResponse struct {
	Token       string              `json:"token"`
	ExpiresAt   time.Time           `json:"expires_at"`
	Institution InstitutionResponse `json:"institution"`
}
