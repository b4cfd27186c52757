package response

import "pitchbook/internal/usecase/queries"

type CreateBookingResponse struct {
	Booking *queries.BookingView `json:"booking"`
	// VoucherWarning explains a voucher that was submitted but not applied.
	VoucherWarning *string `json:"voucher_warning,omitempty"`
}
