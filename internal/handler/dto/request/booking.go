package request

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	PropertyID uuid.UUID `json:"property_id" binding:"required"`
	StartTime  time.Time `json:"start_time" binding:"required"`
	EndTime    time.Time `json:"end_time" binding:"required"`
}

type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

func (r CancelBookingRequest) GetReason() *string {
	if r.Reason == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.Reason)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

type AvailabilityQuery struct {
	StartTime        time.Time `form:"start_time" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	EndTime          time.Time `form:"end_time" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	ExcludeBookingID *string   `form:"exclude_booking_id"`
}

func (q AvailabilityQuery) GetExcludeBookingID() (uuid.UUID, error) {
	if q.ExcludeBookingID == nil || *q.ExcludeBookingID == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(*q.ExcludeBookingID)
}

type QuoteQuery struct {
	StartTime time.Time `form:"start_time" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	EndTime   time.Time `form:"end_time" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}

type UpcomingQuery struct {
	HoursAhead int `form:"hours_ahead"`
}
