package response

import (
	"time"

	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID                 uuid.UUID  `json:"id"`
	PropertyID         uuid.UUID  `json:"propertyId"`
	PropertyName       string     `json:"propertyName"`
	GuestID            uuid.UUID  `json:"guestId"`
	StartTime          time.Time  `json:"startTime"`
	EndTime            time.Time  `json:"endTime"`
	Status             string     `json:"status"`
	TotalPriceCents    int64      `json:"totalPriceCents"`
	PricingType        string     `json:"pricingType"`
	UnitPriceCents     int64      `json:"unitPriceCents"`
	Units              int32      `json:"units"`
	CancelledBy        *string    `json:"cancelledBy,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

type BookingListResponse struct {
	ID              uuid.UUID `json:"id"`
	PropertyID      uuid.UUID `json:"propertyId"`
	PropertyName    string    `json:"propertyName"`
	GuestID         uuid.UUID `json:"guestId"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	Status          string    `json:"status"`
	TotalPriceCents int64     `json:"totalPriceCents"`
	CreatedAt       time.Time `json:"createdAt"`
}

type CancelBookingResponse struct {
	Booking          *BookingResponse `json:"booking"`
	RefundEligible   bool             `json:"refundEligible"`
	RefundPercentage int              `json:"refundPercentage"`
	HoursUntilStart  float64          `json:"hoursUntilStart"`
	CancelledByParty string           `json:"cancelledByParty"`
}

type AvailabilityResponse struct {
	Available bool    `json:"available"`
	Reason    *string `json:"reason,omitempty"`
}

type QuoteResponse struct {
	TotalCents     int64  `json:"totalCents"`
	PricingType    string `json:"pricingType"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Units          int32  `json:"units"`
}

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:                 rm.ID,
		PropertyID:         rm.PropertyID,
		PropertyName:       rm.PropertyName,
		GuestID:            rm.GuestID,
		StartTime:          rm.StartTime,
		EndTime:            rm.EndTime,
		Status:             rm.Status,
		TotalPriceCents:    rm.TotalPriceCents,
		PricingType:        rm.PricingType,
		UnitPriceCents:     rm.UnitPriceCents,
		Units:              rm.Units,
		CancelledBy:        rm.CancelledBy,
		CancelledAt:        rm.CancelledAt,
		CancellationReason: rm.CancellationReason,
		CreatedAt:          rm.CreatedAt,
		UpdatedAt:          rm.UpdatedAt,
	}
}

func FromBookingListItem(rm *queries.BookingListItem) *BookingListResponse {
	return &BookingListResponse{
		ID:              rm.ID,
		PropertyID:      rm.PropertyID,
		PropertyName:    rm.PropertyName,
		GuestID:         rm.GuestID,
		StartTime:       rm.StartTime,
		EndTime:         rm.EndTime,
		Status:          rm.Status,
		TotalPriceCents: rm.TotalPriceCents,
		CreatedAt:       rm.CreatedAt,
	}
}

func FromCancelResult(result *commands.CancelBookingResult) *CancelBookingResponse {
	return &CancelBookingResponse{
		Booking:          FromBookingView(result.Booking),
		RefundEligible:   result.Cancellation.RefundEligible,
		RefundPercentage: result.Cancellation.RefundPercentage,
		HoursUntilStart:  result.Cancellation.HoursUntilStart,
		CancelledByParty: string(result.Cancellation.CancelledBy),
	}
}

func FromAvailabilityResult(rm *queries.AvailabilityResult) *AvailabilityResponse {
	return &AvailabilityResponse{
		Available: rm.Available,
		Reason:    rm.Reason,
	}
}

func FromPriceQuote(rm *queries.PriceQuote) *QuoteResponse {
	return &QuoteResponse{
		TotalCents:     rm.TotalCents,
		PricingType:    rm.PricingType,
		UnitPriceCents: rm.UnitPriceCents,
		Units:          rm.Units,
	}
}
