package dto

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"heritage/internal/domains/booking/model"
	"heritage/shared"
	"heritage/shared/constant"
	gDto "heritage/shared/dto"
	gModel "heritage/shared/model"
)

type RoomLineRequest struct {
	RoomType string  `json:"room_type" validate:"required"`
	Qty      int     `json:"qty" validate:"required,gte=1"`
	Rate     float64 `json:"rate" validate:"gte=0"`
}

type AdvanceRequest struct {
	Amount float64 `json:"amount" validate:"gte=0"`
	Date   string  `json:"date" validate:"omitempty,staydate"`
	Mode   string  `json:"mode"`
}

type CreateBookingRequest struct {
	CheckIn      string            `json:"check_in" validate:"required,staydate"`
	CheckOut     string            `json:"check_out" validate:"required,staydate"`
	GuestName    string            `json:"guest_name" validate:"required"`
	Contact      string            `json:"contact"`
	Pax          int               `json:"pax" validate:"omitempty,gte=1"`
	Plan         string            `json:"plan" validate:"omitempty,oneof=AP CP MAP EP"`
	Agent        string            `json:"agent"`
	Company      string            `json:"company"`
	Status       string            `json:"status" validate:"required,oneof=CONFIRMED HOLD WAITLIST TENTATIVE CANCELED CANCELLED"`
	PickupDetail string            `json:"pickup_detail"`
	SafariDetail string            `json:"safari_detail"`
	ConfirmBy    string            `json:"confirm_by"`
	Remark       string            `json:"remark"`
	Confirmed    bool              `json:"confirmed" validate:"required"`
	Rooms        []RoomLineRequest `json:"rooms" validate:"required,min=1,dive"`
	Advance      *AdvanceRequest   `json:"advance" validate:"omitempty"`
}

var errStayOrder = errors.New("check-out must be after check-in")

// ToModel builds the three-table aggregate for a new booking. Free-entry
// fields are uppercased at this boundary before they reach storage.
func (r CreateBookingRequest) ToModel(id int, entry time.Time) (model.Booking, []model.RoomLine, *model.AdvancePayment, error) {
	checkIn, checkOut, err := parseStay(r.CheckIn, r.CheckOut)
	if err != nil {
		return model.Booking{}, nil, nil, err
	}

	booking := model.Booking{
		ID:           gModel.Int(id),
		CheckIn:      gModel.NewDate(checkIn),
		CheckOut:     gModel.NewDate(checkOut),
		GuestName:    shared.UpperTrim(r.GuestName),
		Contact:      shared.UpperTrim(r.Contact),
		Pax:          gModel.Int(r.Pax),
		Plan:         shared.UpperTrim(r.Plan),
		Agent:        strings.TrimSpace(r.Agent),
		Company:      strings.TrimSpace(r.Company),
		Status:       shared.UpperTrim(r.Status),
		PickupDetail: shared.UpperTrim(r.PickupDetail),
		SafariDetail: shared.UpperTrim(r.SafariDetail),
		ConfirmBy:    shared.UpperTrim(r.ConfirmBy),
		Remark:       shared.UpperTrim(r.Remark),
		EntryTime:    gModel.Stamp{Time: entry},
	}

	lines := buildLines(booking, r.Rooms)
	advance := buildAdvance(booking.ID, r.Advance, entry)

	return booking, lines, advance, nil
}

type UpdateBookingRequest struct {
	CheckIn      string            `json:"check_in" validate:"required,staydate"`
	CheckOut     string            `json:"check_out" validate:"required,staydate"`
	GuestName    string            `json:"guest_name" validate:"required"`
	Contact      string            `json:"contact"`
	Pax          int               `json:"pax" validate:"omitempty,gte=1"`
	Plan         string            `json:"plan" validate:"omitempty,oneof=AP CP MAP EP"`
	Agent        string            `json:"agent"`
	Company      string            `json:"company"`
	Status       string            `json:"status" validate:"required,oneof=CONFIRMED HOLD WAITLIST TENTATIVE CANCELED CANCELLED"`
	PickupDetail string            `json:"pickup_detail"`
	SafariDetail string            `json:"safari_detail"`
	ConfirmBy    string            `json:"confirm_by"`
	Remark       string            `json:"remark"`
	Rooms        []RoomLineRequest `json:"rooms" validate:"required,min=1,dive"`
	Advance      *AdvanceRequest   `json:"advance" validate:"omitempty"`
}

// ApplyTo replaces every mutable field of the existing booking and rebuilds
// its room lines. The identifier and entry time stay untouched. A new
// advance row comes back only when a positive amount was supplied.
func (r UpdateBookingRequest) ApplyTo(existing model.Booking, now time.Time) (model.Booking, []model.RoomLine, *model.AdvancePayment, error) {
	checkIn, checkOut, err := parseStay(r.CheckIn, r.CheckOut)
	if err != nil {
		return model.Booking{}, nil, nil, err
	}

	updated := existing
	updated.CheckIn = gModel.NewDate(checkIn)
	updated.CheckOut = gModel.NewDate(checkOut)
	updated.GuestName = shared.UpperTrim(r.GuestName)
	updated.Contact = shared.UpperTrim(r.Contact)
	updated.Pax = gModel.Int(r.Pax)
	updated.Plan = shared.UpperTrim(r.Plan)
	updated.Agent = strings.TrimSpace(r.Agent)
	updated.Company = strings.TrimSpace(r.Company)
	updated.Status = shared.UpperTrim(r.Status)
	updated.PickupDetail = shared.UpperTrim(r.PickupDetail)
	updated.SafariDetail = shared.UpperTrim(r.SafariDetail)
	updated.ConfirmBy = shared.UpperTrim(r.ConfirmBy)
	updated.Remark = shared.UpperTrim(r.Remark)

	lines := buildLines(updated, r.Rooms)
	advance := buildAdvance(updated.ID, r.Advance, now)

	return updated, lines, advance, nil
}

func parseStay(in, out string) (time.Time, time.Time, error) {
	checkIn, err := time.Parse(constant.DateFormat, in)
	if err != nil {
		return time.Time{}, time.Time{}, err //nolint:wrapcheck
	}

	checkOut, err := time.Parse(constant.DateFormat, out)
	if err != nil {
		return time.Time{}, time.Time{}, err //nolint:wrapcheck
	}

	if !checkOut.After(checkIn) {
		return time.Time{}, time.Time{}, errStayOrder
	}

	return checkIn, checkOut, nil
}

func buildLines(owner model.Booking, rooms []RoomLineRequest) []model.RoomLine {
	lines := make([]model.RoomLine, 0, len(rooms))

	for _, room := range rooms {
		lines = append(lines, model.RoomLine{
			BookingID: owner.ID,
			CheckIn:   owner.CheckIn,
			CheckOut:  owner.CheckOut,
			GuestName: owner.GuestName,
			RoomType:  strings.TrimSpace(room.RoomType),
			Qty:       gModel.Int(room.Qty),
			Rate:      gModel.Float(room.Rate),
		})
	}

	return lines
}

func buildAdvance(bookingID gModel.Int, req *AdvanceRequest, now time.Time) *model.AdvancePayment {
	if req == nil || req.Amount <= 0 {
		return nil
	}

	paidAt := now
	if req.Date != constant.Empty {
		if t, err := time.Parse(constant.DateFormat, req.Date); err == nil {
			paidAt = t
		}
	}

	return &model.AdvancePayment{
		BookingID: bookingID,
		Amount:    gModel.Float(req.Amount),
		Date:      gModel.Stamp{Time: paidAt},
		Mode:      shared.UpperTrim(req.Mode),
	}
}

// ListFilter narrows the booking listing. Filters compose with AND and
// empty or "All" selections are no-ops.
type ListFilter struct {
	Guest   string
	Agent   string
	Company string
	Status  string
	From    string
	To      string
}

func (f *ListFilter) FromRequest(r *http.Request) {
	query := r.URL.Query()

	f.Guest = query.Get(constant.RequestParamGuest)
	f.Agent = query.Get(constant.RequestParamAgent)
	f.Company = query.Get(constant.RequestParamCompany)
	f.Status = query.Get(constant.RequestParamStatus)
	f.From = query.Get(constant.RequestParamFrom)
	f.To = query.Get(constant.RequestParamTo)
}

// Fragments feeds the cache key so distinct filter combinations never share
// an entry.
func (f ListFilter) Fragments() []string {
	return []string{f.Guest, f.Agent, f.Company, f.Status, f.From, f.To}
}

func selected(value string) bool {
	return value != constant.Empty && !strings.EqualFold(value, "all")
}

// Predicate compiles the filter into one AND-composed predicate. Date
// bounds use the wire format; an unreadable bound is an error rather than a
// silently ignored filter.
func (f ListFilter) Predicate() (gDto.Predicate[model.Booking], error) {
	predicates := []gDto.Predicate[model.Booking]{}

	if selected(f.Guest) {
		needle := strings.ToUpper(strings.TrimSpace(f.Guest))
		predicates = append(predicates, func(b model.Booking) bool {
			return strings.Contains(strings.ToUpper(b.GuestName), needle)
		})
	}

	if selected(f.Agent) {
		agent := strings.TrimSpace(f.Agent)
		predicates = append(predicates, func(b model.Booking) bool {
			return b.Agent == agent
		})
	}

	if selected(f.Company) {
		company := strings.TrimSpace(f.Company)
		predicates = append(predicates, func(b model.Booking) bool {
			return b.Company == company
		})
	}

	if selected(f.Status) {
		status := shared.UpperTrim(f.Status)
		predicates = append(predicates, func(b model.Booking) bool {
			return b.Status == status
		})
	}

	if f.From != constant.Empty {
		from, err := time.Parse(constant.DateFormat, f.From)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}

		predicates = append(predicates, func(b model.Booking) bool {
			return !b.CheckIn.Before(from)
		})
	}

	if f.To != constant.Empty {
		to, err := time.Parse(constant.DateFormat, f.To)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}

		predicates = append(predicates, func(b model.Booking) bool {
			return !b.CheckOut.After(to)
		})
	}

	return gDto.And(predicates...), nil
}

type BookingSummary struct {
	ID           int     `json:"id"`
	CheckIn      string  `json:"check_in"`
	CheckOut     string  `json:"check_out"`
	Nights       int     `json:"nights"`
	GuestName    string  `json:"guest_name"`
	Contact      string  `json:"contact"`
	Pax          int     `json:"pax"`
	Plan         string  `json:"plan"`
	Agent        string  `json:"agent"`
	Company      string  `json:"company"`
	Status       string  `json:"status"`
	PickupDetail string  `json:"pickup_detail"`
	SafariDetail string  `json:"safari_detail"`
	ConfirmBy    string  `json:"confirm_by"`
	Remark       string  `json:"remark"`
	TotalRooms   int     `json:"total_rooms"`
	TotalAdvance float64 `json:"total_advance"`
	EntryTime    string  `json:"entry_time"`
}

func (s *BookingSummary) FromModel(b model.Booking, totalRooms int, totalAdvance float64) {
	s.ID = int(b.ID)
	s.CheckIn = formatDate(b.CheckIn)
	s.CheckOut = formatDate(b.CheckOut)
	s.Nights = b.Nights()
	s.GuestName = b.GuestName
	s.Contact = b.Contact
	s.Pax = int(b.Pax)
	s.Plan = b.Plan
	s.Agent = b.Agent
	s.Company = b.Company
	s.Status = b.Status
	s.PickupDetail = b.PickupDetail
	s.SafariDetail = b.SafariDetail
	s.ConfirmBy = b.ConfirmBy
	s.Remark = b.Remark
	s.TotalRooms = totalRooms
	s.TotalAdvance = totalAdvance

	if !b.EntryTime.IsZero() {
		s.EntryTime = b.EntryTime.Format(constant.StampFormat)
	}
}

type ListBookingsResponse struct {
	Bookings  []BookingSummary `json:"bookings"`
	Total     int              `json:"total"`
	TotalPage int              `json:"total_page"`
	Warnings  []string         `json:"warnings,omitempty"`
}

// FromModels builds the merged listing view: each booking joined to the sum
// of its room quantities and advance amounts, both defaulting to zero.
func (r *ListBookingsResponse) FromModels(bookings []model.Booking, roomSums map[int]int, advanceSums map[int]float64, total, limit int) {
	r.Bookings = make([]BookingSummary, 0, len(bookings))

	for _, b := range bookings {
		summary := BookingSummary{}
		summary.FromModel(b, roomSums[int(b.ID)], advanceSums[int(b.ID)])
		r.Bookings = append(r.Bookings, summary)
	}

	r.Total = total
	r.TotalPage = shared.CalculateTotalPage(total, limit)
}

type RoomLineResponse struct {
	RoomType string  `json:"room_type"`
	Qty      int     `json:"qty"`
	Rate     float64 `json:"rate"`
}

type AdvanceResponse struct {
	Amount float64 `json:"amount"`
	Date   string  `json:"date"`
	Mode   string  `json:"mode"`
}

// BookingAggregateResponse is one booking with its owned rows and derived
// totals, the unit the edit screen works on.
type BookingAggregateResponse struct {
	BookingSummary
	Rooms    []RoomLineResponse `json:"rooms"`
	Advances []AdvanceResponse  `json:"advances"`
}

func (r *BookingAggregateResponse) FromModel(b model.Booking, lines []model.RoomLine, advances []model.AdvancePayment) {
	totalRooms := 0
	r.Rooms = make([]RoomLineResponse, 0, len(lines))

	for _, line := range lines {
		totalRooms += int(line.Qty)
		r.Rooms = append(r.Rooms, RoomLineResponse{
			RoomType: line.RoomType,
			Qty:      int(line.Qty),
			Rate:     float64(line.Rate),
		})
	}

	totalAdvance := 0.0
	r.Advances = make([]AdvanceResponse, 0, len(advances))

	for _, advance := range advances {
		totalAdvance += float64(advance.Amount)

		date := constant.Empty
		if !advance.Date.IsZero() {
			date = advance.Date.Format(constant.DateFormat)
		}

		r.Advances = append(r.Advances, AdvanceResponse{
			Amount: float64(advance.Amount),
			Date:   date,
			Mode:   advance.Mode,
		})
	}

	r.BookingSummary.FromModel(b, totalRooms, totalAdvance)
}

type RoomAvailability struct {
	RoomType  string `json:"room_type"`
	Remaining int    `json:"remaining"`
	Class     string `json:"class"`
}

type AvailabilityResponse struct {
	CheckIn  string             `json:"check_in"`
	CheckOut string             `json:"check_out"`
	Rooms    []RoomAvailability `json:"rooms"`
}

type CalendarRow struct {
	RoomType   string   `json:"room_type"`
	TotalUnits int      `json:"total_units"`
	Remaining  []int    `json:"remaining"`
	Classes    []string `json:"classes"`
}

type CalendarResponse struct {
	Year  int           `json:"year"`
	Month int           `json:"month"`
	Days  int           `json:"days"`
	Rooms []CalendarRow `json:"rooms"`
}

func formatDate(d gModel.Date) string {
	if d.IsZero() {
		return constant.Empty
	}

	return d.Format(constant.DateFormat)
}
