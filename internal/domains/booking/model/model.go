package model

import (
	gModel "heritage/shared/model"
)

const (
	EntityName = "booking"
)

const (
	StatusConfirmed = "CONFIRMED"
	StatusHold      = "HOLD"
	StatusWaitlist  = "WAITLIST"
	StatusTentative = "TENTATIVE"
	StatusCanceled  = "CANCELED"
	// StatusCancelled appears in the older sheets; both spellings mean
	// the same terminal state.
	StatusCancelled = "CANCELLED"
)

// IsCanceled reports whether a status value marks the booking canceled,
// accepting both spellings.
func IsCanceled(status string) bool {
	return status == StatusCanceled || status == StatusCancelled
}

const (
	PlanAP  = "AP"
	PlanCP  = "CP"
	PlanMAP = "MAP"
	PlanEP  = "EP"
)

// Booking is one guest stay intent. A stay occupies the nights
// [check-in, check-out); cancellation is a status value, never a row
// removal. ID and EntryTime are immutable after creation.
type Booking struct {
	ID           gModel.Int   `csv:"id" json:"id"`
	CheckIn      gModel.Date  `csv:"check_in" json:"check_in"`
	CheckOut     gModel.Date  `csv:"check_out" json:"check_out"`
	GuestName    string       `csv:"guest_name" json:"guest_name"`
	Contact      string       `csv:"contact" json:"contact"`
	Pax          gModel.Int   `csv:"pax" json:"pax"`
	Plan         string       `csv:"plan" json:"plan"`
	Agent        string       `csv:"agent" json:"agent"`
	Company      string       `csv:"company" json:"company"`
	Status       string       `csv:"status" json:"status"`
	PickupDetail string       `csv:"pickup_detail" json:"pickup_detail"`
	SafariDetail string       `csv:"safari_detail" json:"safari_detail"`
	ConfirmBy    string       `csv:"confirm_by" json:"confirm_by"`
	Remark       string       `csv:"remark" json:"remark"`
	EntryTime    gModel.Stamp `csv:"entry_time" json:"entry_time"`
}

// Nights is derived, not stored.
func (b Booking) Nights() int {
	if b.CheckIn.IsZero() || b.CheckOut.IsZero() {
		return 0
	}

	return int(b.CheckOut.Sub(b.CheckIn.Time).Hours() / 24)
}

// RoomLine is one room-category allocation within a booking. The stay dates
// and guest name duplicate the owning booking's for sheet compatibility and
// are rewritten from it on every mutation.
type RoomLine struct {
	BookingID gModel.Int   `csv:"booking_id" json:"booking_id"`
	CheckIn   gModel.Date  `csv:"check_in" json:"check_in"`
	CheckOut  gModel.Date  `csv:"check_out" json:"check_out"`
	GuestName string       `csv:"guest_name" json:"guest_name"`
	RoomType  string       `csv:"room_type" json:"room_type"`
	Qty       gModel.Int   `csv:"qty" json:"qty"`
	Rate      gModel.Float `csv:"rate" json:"rate"`
}

// AdvancePayment is one deposit record. Rows are append-only: once written
// they are never modified or deleted.
type AdvancePayment struct {
	BookingID gModel.Int   `csv:"booking_id" json:"booking_id"`
	Amount    gModel.Float `csv:"amount" json:"amount"`
	Date      gModel.Stamp `csv:"date" json:"date"`
	Mode      string       `csv:"mode" json:"mode"`
}
