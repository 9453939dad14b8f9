package models

import (
	"github.com/mudasar10147/sportsarena-backend/internal/domain"
)

// Request модели

// UpdateCourtPolicyRequest запрос на переопределение политики корта
// Частичное обновление: nil-поле оставляет значение уровнем ниже
// (комплекс либо системный дефолт)
type UpdateCourtPolicyRequest struct {
	MaxAdvanceBookingDays   *int `json:"maxAdvanceBookingDays,omitempty"`
	MinDurationMinutes      *int `json:"minDurationMinutes,omitempty"`
	MaxDurationMinutes      *int `json:"maxDurationMinutes,omitempty"`
	BufferMinutes           *int `json:"bufferMinutes,omitempty"`
	MinAdvanceNoticeMinutes *int `json:"minAdvanceNoticeMinutes,omitempty"`
	PendingExpirationHours  *int `json:"pendingExpirationHours,omitempty"`
}

// ToDomainOverride конвертирует request в domain переопределение
func (r *UpdateCourtPolicyRequest) ToDomainOverride(courtID, facilityID int64) *domain.PolicyOverride {
	return &domain.PolicyOverride{
		FacilityID:              &facilityID,
		CourtID:                 &courtID,
		MaxAdvanceBookingDays:   r.MaxAdvanceBookingDays,
		MinDurationMinutes:      r.MinDurationMinutes,
		MaxDurationMinutes:      r.MaxDurationMinutes,
		MinAdvanceNoticeMinutes: r.MinAdvanceNoticeMinutes,
		BufferMinutes:           r.BufferMinutes,
		PendingExpirationHours:  r.PendingExpirationHours,
	}
}

// Response модели

// PolicyResponse действующая политика корта после разрешения иерархии
type PolicyResponse struct {
	CourtID                 int64 `json:"courtId"`
	MaxAdvanceBookingDays   int   `json:"maxAdvanceBookingDays"`
	MinDurationMinutes      int   `json:"minDurationMinutes"`
	MaxDurationMinutes      int   `json:"maxDurationMinutes"`
	BufferMinutes           int   `json:"bufferMinutes"`
	MinAdvanceNoticeMinutes int   `json:"minAdvanceNoticeMinutes"`
	PendingExpirationHours  int   `json:"pendingExpirationHours"`
}

// FromDomainPolicy конвертирует разрешенную политику в DTO
func FromDomainPolicy(courtID int64, p domain.BookingPolicy) *PolicyResponse {
	return &PolicyResponse{
		CourtID:                 courtID,
		MaxAdvanceBookingDays:   p.MaxAdvanceBookingDays,
		MinDurationMinutes:      p.MinDurationMinutes,
		MaxDurationMinutes:      p.MaxDurationMinutes,
		BufferMinutes:           p.BufferMinutes,
		MinAdvanceNoticeMinutes: p.MinAdvanceNoticeMinutes,
		PendingExpirationHours:  p.PendingExpirationHours,
	}
}
