package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"heritage/config"
	"heritage/infras/otel"
	"heritage/infras/s3"
	"heritage/internal/domains/booking/model"
	"heritage/internal/domains/booking/model/dto"
	"heritage/internal/domains/booking/repository"
	invModel "heritage/internal/domains/inventory/model"
	invService "heritage/internal/domains/inventory/service"
	"heritage/shared"
	"heritage/shared/cache"
	"heritage/shared/constant"
	gDto "heritage/shared/dto"
	"heritage/shared/failure"
	"heritage/shared/timezone"
)

const (
	cacheGetBooking     = "booking:get"
	cacheGetAllBookings = "booking:gets"
	cacheAvailability   = "booking:availability"
	cacheCalendar       = "booking:calendar"

	warnTableDegraded = "%s table could not be read and was treated as empty"
)

type Booking interface {
	List(ctx context.Context, params gDto.QueryParams, filter dto.ListFilter) (dto.ListBookingsResponse, error)
	Get(ctx context.Context, id int) (dto.BookingAggregateResponse, error)
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingAggregateResponse, error)
	Update(ctx context.Context, id int, req dto.UpdateBookingRequest) (dto.BookingAggregateResponse, error)
	Availability(ctx context.Context, checkIn, checkOut string) (dto.AvailabilityResponse, error)
	CalendarMonth(ctx context.Context, year, month int) (dto.CalendarResponse, error)
}

type serviceImpl struct {
	bookings  repository.Table[model.Booking]
	lines     repository.Table[model.RoomLine]
	advances  repository.Table[model.AdvancePayment]
	inventory invService.Inventory
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	s3        s3.S3
}

func New(
	bookings repository.Table[model.Booking],
	lines repository.Table[model.RoomLine],
	advances repository.Table[model.AdvancePayment],
	inventory invService.Inventory,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	s3 s3.S3,
) Booking {
	return &serviceImpl{
		bookings:  bookings,
		lines:     lines,
		advances:  advances,
		inventory: inventory,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		s3:        s3,
	}
}

// List merges the three tables into a filtered, paginated booking view. A
// table that fails to decode degrades to empty and surfaces as a warning
// instead of failing the listing.
func (s *serviceImpl) List(ctx context.Context, params gDto.QueryParams, filter dto.ListFilter) (res dto.ListBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBookings, params, filter.Fragments()...)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	predicate, err := filter.Predicate()
	if err != nil {
		return res, failure.BadRequestFromString("date filters must look like 01-Jun-2024") //nolint:wrapcheck
	}

	warnings := []string{}

	bookings, err := s.bookings.LoadAll(ctx)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf(warnTableDegraded, "bookings"))
	}

	lines, err := s.lines.LoadAll(ctx)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf(warnTableDegraded, "room lines"))
	}

	advances, err := s.advances.LoadAll(ctx)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf(warnTableDegraded, "advances"))
	}

	filtered := gDto.Apply(bookings, predicate)

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].ID < filtered[j].ID
	})

	total := len(filtered)
	from, to := params.Slice(total)

	res.FromModels(filtered[from:to], sumRooms(lines), sumAdvances(advances), total, params.Limit)
	res.Warnings = warnings

	// A degraded view must never be served from cache after the tables heal.
	if len(warnings) == 0 {
		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save bookings to cache")
			}
		}()
	}

	return res, nil
}

// Get returns one booking with its owned room lines and advances.
func (s *serviceImpl) Get(ctx context.Context, id int) (res dto.BookingAggregateResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, strconv.Itoa(id))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	lines, advances, err := s.ownedRows(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking, lines, advances)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

// Create appends a new aggregate: the booking row, its room lines, and an
// advance row when a positive amount was supplied. The identifier is the
// current maximum plus one.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingAggregateResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	existing, err := s.bookings.LoadAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("refusing to create booking over an unreadable table")

		return res, fmt.Errorf("failed to load bookings: %w", err)
	}

	booking, lines, advance, err := req.ToModel(nextID(existing), timezone.Now())
	if err != nil {
		return res, failure.BadRequest(err) //nolint:wrapcheck
	}

	if err = s.bookings.Append(ctx, []model.Booking{booking}); err != nil {
		log.Error().Err(err).Msg("failed to append booking")

		return res, fmt.Errorf("failed to append booking: %w", err)
	}

	if err = s.lines.Append(ctx, lines); err != nil {
		log.Error().Err(err).Msg("failed to append room lines")

		return res, fmt.Errorf("failed to append room lines: %w", err)
	}

	advances := []model.AdvancePayment{}
	if advance != nil {
		if err = s.advances.Append(ctx, []model.AdvancePayment{*advance}); err != nil {
			log.Error().Err(err).Msg("failed to append advance")

			return res, fmt.Errorf("failed to append advance: %w", err)
		}

		advances = append(advances, *advance)
	}

	s.invalidate(ctx, int(booking.ID))

	res.FromModel(booking, lines, advances)

	return res, nil
}

// Update rewrites one aggregate in place. Every affected table is backed up
// before its first write; the identifier and entry time never change, and a
// new advance row is appended rather than replacing history.
func (s *serviceImpl) Update(ctx context.Context, id int, req dto.UpdateBookingRequest) (res dto.BookingAggregateResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	existing, err := s.bookings.LoadAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("refusing to update booking over an unreadable table")

		return res, fmt.Errorf("failed to load bookings: %w", err)
	}

	index := -1

	for i := range existing {
		if int(existing[i].ID) == id {
			index = i

			break
		}
	}

	if index < 0 {
		return res, failure.NotFound("booking not found") //nolint:wrapcheck
	}

	updated, lines, advance, err := req.ApplyTo(existing[index], timezone.Now())
	if err != nil {
		return res, failure.BadRequest(err) //nolint:wrapcheck
	}

	if err = s.backupOne(ctx, s.bookings); err != nil {
		return res, err
	}

	if err = s.backupOne(ctx, s.lines); err != nil {
		return res, err
	}

	if advance != nil {
		if err = s.backupOne(ctx, s.advances); err != nil {
			return res, err
		}
	}

	existing[index] = updated
	if err = s.bookings.ReplaceAll(ctx, existing); err != nil {
		log.Error().Err(err).Msg("failed to rewrite bookings")

		return res, fmt.Errorf("failed to rewrite bookings: %w", err)
	}

	if err = s.replaceLines(ctx, id, lines); err != nil {
		return res, err
	}

	if advance != nil {
		if err = s.advances.Append(ctx, []model.AdvancePayment{*advance}); err != nil {
			log.Error().Err(err).Msg("failed to append advance")

			return res, fmt.Errorf("failed to append advance: %w", err)
		}
	}

	s.invalidate(ctx, id)

	_, advances, err := s.ownedRows(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(updated, lines, advances)

	return res, nil
}

// Availability reports the worst-day remaining units per room category over
// the half-open stay interval.
func (s *serviceImpl) Availability(ctx context.Context, checkIn, checkOut string) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Availability")
	defer scope.End()
	defer scope.TraceIfError(err)

	from, err := time.Parse(constant.DateFormat, checkIn)
	if err != nil {
		return res, failure.BadRequestFromString("check_in must be a date like 01-Jun-2024") //nolint:wrapcheck
	}

	to, err := time.Parse(constant.DateFormat, checkOut)
	if err != nil {
		return res, failure.BadRequestFromString("check_out must be a date like 01-Jun-2024") //nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheAvailability, checkIn, checkOut)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for availability")

		return res, nil
	}

	remaining, err := s.inventory.RangeCheck(ctx, from, to, s.stayLines(ctx))
	if err != nil {
		return res, err
	}

	res.CheckIn = checkIn
	res.CheckOut = checkOut
	res.Rooms = []dto.RoomAvailability{}

	for _, category := range s.inventory.Categories(ctx) {
		left := remaining[category.Name]
		res.Rooms = append(res.Rooms, dto.RoomAvailability{
			RoomType:  category.Name,
			Remaining: left,
			Class:     invModel.Classify(left),
		})
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save availability to cache")
		}
	}()

	return res, nil
}

// CalendarMonth returns the per-day availability grid for one month.
func (s *serviceImpl) CalendarMonth(ctx context.Context, year, month int) (res dto.CalendarResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CalendarMonth")
	defer scope.End()
	defer scope.TraceIfError(err)

	if month < 1 || month > 12 {
		return res, failure.BadRequestFromString("month must be between 1 and 12") //nolint:wrapcheck
	}

	if year < 2000 || year > 2200 {
		return res, failure.BadRequestFromString("year is out of range") //nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheCalendar, strconv.Itoa(year), strconv.Itoa(month))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for calendar")

		return res, nil
	}

	remaining := s.inventory.Calendar(ctx, year, time.Month(month), s.stayLines(ctx))

	res.Year = year
	res.Month = month
	res.Rooms = []dto.CalendarRow{}

	for _, category := range s.inventory.Categories(ctx) {
		days := remaining[category.Name]
		res.Days = len(days)

		classes := make([]string, len(days))
		for i, left := range days {
			classes[i] = invModel.Classify(left)
		}

		res.Rooms = append(res.Rooms, dto.CalendarRow{
			RoomType:   category.Name,
			TotalUnits: category.TotalUnits,
			Remaining:  days,
			Classes:    classes,
		})
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save calendar to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id int) (model.Booking, error) {
	bookings, err := s.bookings.LoadAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to load bookings")

		return model.Booking{}, fmt.Errorf("failed to load bookings: %w", err)
	}

	for _, booking := range bookings {
		if int(booking.ID) == id {
			return booking, nil
		}
	}

	return model.Booking{}, failure.NotFound("booking not found") //nolint:wrapcheck
}

func (s *serviceImpl) ownedRows(ctx context.Context, id int) ([]model.RoomLine, []model.AdvancePayment, error) {
	allLines, err := s.lines.LoadAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to load room lines")

		return nil, nil, fmt.Errorf("failed to load room lines: %w", err)
	}

	allAdvances, err := s.advances.LoadAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to load advances")

		return nil, nil, fmt.Errorf("failed to load advances: %w", err)
	}

	lines := []model.RoomLine{}

	for _, line := range allLines {
		if int(line.BookingID) == id {
			lines = append(lines, line)
		}
	}

	advances := []model.AdvancePayment{}

	for _, advance := range allAdvances {
		if int(advance.BookingID) == id {
			advances = append(advances, advance)
		}
	}

	return lines, advances, nil
}

func (s *serviceImpl) replaceLines(ctx context.Context, id int, lines []model.RoomLine) error {
	existing, err := s.lines.LoadAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("refusing to rewrite room lines over an unreadable table")

		return fmt.Errorf("failed to load room lines: %w", err)
	}

	kept := []model.RoomLine{}

	for _, line := range existing {
		if int(line.BookingID) != id {
			kept = append(kept, line)
		}
	}

	if err = s.lines.ReplaceAll(ctx, append(kept, lines...)); err != nil {
		log.Error().Err(err).Msg("failed to rewrite room lines")

		return fmt.Errorf("failed to rewrite room lines: %w", err)
	}

	return nil
}

type backuper interface {
	Backup(ctx context.Context) (string, error)
	Path() string
}

func (s *serviceImpl) backupOne(ctx context.Context, table backuper) error {
	backupPath, err := table.Backup(ctx)
	if err != nil {
		log.Error().Err(err).Str("file", table.Path()).Msg("failed to back up table")

		return fmt.Errorf("failed to back up table %s: %w", table.Path(), err)
	}

	if backupPath != constant.Empty && s.cfg.External.S3.Enable {
		go func() {
			c := context.WithoutCancel(ctx)

			if _, err := s.s3.ArchiveFile(c, backupPath); err != nil {
				log.Error().Err(err).Str("backup", backupPath).Msg("failed to archive backup")
			}
		}()
	}

	return nil
}

// stayLines joins every room line to its owning booking's status. A line
// whose booking is missing counts as live; the line's own dates drive
// occupancy.
func (s *serviceImpl) stayLines(ctx context.Context) []invModel.StayLine {
	bookings, err := s.bookings.LoadAll(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("bookings table degraded, availability computed without statuses")
	}

	lines, err := s.lines.LoadAll(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("room lines table degraded, availability computed as empty")
	}

	canceled := make(map[int]bool, len(bookings))
	for _, booking := range bookings {
		canceled[int(booking.ID)] = model.IsCanceled(booking.Status)
	}

	stayLines := make([]invModel.StayLine, 0, len(lines))

	for _, line := range lines {
		stayLines = append(stayLines, invModel.StayLine{
			RoomType: line.RoomType,
			Qty:      int(line.Qty),
			CheckIn:  line.CheckIn.Time,
			CheckOut: line.CheckOut.Time,
			Canceled: canceled[int(line.BookingID)],
		})
	}

	return stayLines
}

func (s *serviceImpl) invalidate(ctx context.Context, id int) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, strconv.Itoa(id))); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("failed to delete booking cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBookings)
		shared.InvalidateCaches(c, s.cache, cacheAvailability)
		shared.InvalidateCaches(c, s.cache, cacheCalendar)
	}()
}

func nextID(bookings []model.Booking) int {
	next := 1

	for _, booking := range bookings {
		if int(booking.ID) >= next {
			next = int(booking.ID) + 1
		}
	}

	return next
}

func sumRooms(lines []model.RoomLine) map[int]int {
	sums := make(map[int]int, len(lines))
	for _, line := range lines {
		sums[int(line.BookingID)] += int(line.Qty)
	}

	return sums
}

func sumAdvances(advances []model.AdvancePayment) map[int]float64 {
	sums := make(map[int]float64, len(advances))
	for _, advance := range advances {
		sums[int(advance.BookingID)] += float64(advance.Amount)
	}

	return sums
}
