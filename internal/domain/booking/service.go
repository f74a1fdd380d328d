package booking

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/lumenstudio/lumen-api/internal/domain/catalog"
	"github.com/lumenstudio/lumen-api/internal/domain/customer"
	"github.com/lumenstudio/lumen-api/internal/domain/location"
	"github.com/lumenstudio/lumen-api/internal/domain/notify"
	"github.com/lumenstudio/lumen-api/internal/domain/settings"
	"github.com/lumenstudio/lumen-api/internal/pkg/email"
	"github.com/lumenstudio/lumen-api/internal/pkg/robokassa"
)

// BookingRepository defines booking persistence operations
type BookingRepository interface {
	NextInvID(ctx context.Context) (int64, error)
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetByInvID(ctx context.Context, invID int64) (*Booking, error)
	List(ctx context.Context) ([]Booking, error)
	TakenTimes(ctx context.Context, date string, locationID uuid.NullUUID) ([]string, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status, reason sql.NullString) error
	MarkPaid(ctx context.Context, id uuid.UUID, at time.Time) error
	Counters(ctx context.Context, today string) (*DashboardCounters, error)
}

// CatalogStore resolves packages and add-ons
type CatalogStore interface {
	GetPackageByID(ctx context.Context, id uuid.UUID) (*catalog.Package, error)
	GetAddonsByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Addon, error)
}

// LocationStore resolves shooting locations
type LocationStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*location.Location, error)
}

// CustomerStore deduplicates customers by email
type CustomerStore interface {
	Upsert(ctx context.Context, name, email, phone string) (*customer.Customer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error)
}

// PolicySource yields the effective booking policy
type PolicySource interface {
	Resolved(ctx context.Context) (settings.Resolved, error)
}

// PaymentGateway initializes gateway payments
type PaymentGateway interface {
	CreatePayment(ctx context.Context, req robokassa.PaymentRequest) (*robokassa.PaymentLink, error)
}

// Mailer sends customer notifications
type Mailer interface {
	SendBookingConfirmation(to string, details email.BookingDetails)
	SendBookingPaid(to string, details email.BookingDetails)
}

// Service handles booking business logic
type Service struct {
	repo      BookingRepository
	catalog   CatalogStore
	locations LocationStore
	customers CustomerStore
	policy    PolicySource
	gateway   PaymentGateway
	gatewayCf robokassa.Config
	mailer    Mailer
	events    notify.Publisher
	tz        *time.Location
	now       func() time.Time
}

// NewService creates a new booking service
func NewService(
	repo BookingRepository,
	catalogStore CatalogStore,
	locations LocationStore,
	customers CustomerStore,
	policy PolicySource,
	gateway PaymentGateway,
	gatewayCf robokassa.Config,
	mailer Mailer,
	events notify.Publisher,
	tz *time.Location,
) *Service {
	return &Service{
		repo:      repo,
		catalog:   catalogStore,
		locations: locations,
		customers: customers,
		policy:    policy,
		gateway:   gateway,
		gatewayCf: gatewayCf,
		mailer:    mailer,
		events:    events,
		tz:        tz,
		now:       time.Now,
	}
}

// Availability returns open start times for a date, with already-booked
// slots removed.
func (s *Service) Availability(ctx context.Context, date string, locationID, packageID *uuid.UUID) (*AvailabilityResponse, error) {
	loc, err := s.resolveLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}
	pkg, err := s.resolvePackage(ctx, packageID)
	if err != nil {
		return nil, err
	}

	policy, err := s.policy.Resolved(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().In(s.tz)
	times := AvailableTimes(date, loc, pkg, policy, now)

	if date < now.Format("2006-01-02") {
		times = []string{}
	}

	if len(times) > 0 {
		taken, err := s.repo.TakenTimes(ctx, date, nullUUID(locationID))
		if err != nil {
			return nil, err
		}
		times = subtract(times, taken)
	}

	return &AvailabilityResponse{
		Date:            date,
		Times:           times,
		DurationMinutes: SessionDuration(pkg),
	}, nil
}

// QuoteFor prices a wizard selection without reserving anything.
func (s *Service) QuoteFor(ctx context.Context, req *QuoteRequest) (*QuoteResponse, error) {
	pkg, loc, addons, err := s.resolveSelection(ctx, req.PackageID, req.LocationID, req.AddonIDs)
	if err != nil {
		return nil, err
	}

	resp := &QuoteResponse{PackagePrice: pkg.Price}
	for _, a := range addons {
		resp.AddonsPrice += a.Price
	}
	if loc != nil && loc.ExtraFee > 0 {
		resp.LocationFee = loc.ExtraFee
	}
	resp.Total = Quote(pkg, addons, loc)
	return resp, nil
}

// Create reserves a slot, stores the booking and returns the payment
// redirect.
func (s *Service) Create(ctx context.Context, req *CreateBookingRequest) (*Booking, string, error) {
	pkg, loc, addons, err := s.resolveSelection(ctx, req.PackageID, req.LocationID, req.AddonIDs)
	if err != nil {
		return nil, "", err
	}

	policy, err := s.policy.Resolved(ctx)
	if err != nil {
		return nil, "", err
	}

	now := s.now().In(s.tz)
	if err := s.checkDate(req.Date, now, policy); err != nil {
		return nil, "", err
	}

	times := AvailableTimes(req.Date, loc, pkg, policy, now)
	if !contains(times, req.StartTime) {
		return nil, "", ErrSlotUnavailable
	}

	var locationID uuid.NullUUID
	if loc != nil {
		locationID = uuid.NullUUID{UUID: loc.ID, Valid: true}
	}
	taken, err := s.repo.TakenTimes(ctx, req.Date, locationID)
	if err != nil {
		return nil, "", err
	}
	if contains(taken, req.StartTime) {
		return nil, "", ErrSlotTaken
	}

	cust, err := s.customers.Upsert(ctx, req.CustomerName, req.CustomerEmail, req.CustomerPhone)
	if err != nil {
		return nil, "", err
	}

	invID, err := s.repo.NextInvID(ctx)
	if err != nil {
		return nil, "", err
	}

	b := &Booking{
		ID:            uuid.New(),
		InvID:         invID,
		CustomerID:    cust.ID,
		PackageID:     pkg.ID,
		LocationID:    locationID,
		Date:          req.Date,
		StartTime:     req.StartTime,
		Total:         Quote(pkg, addons, loc),
		Status:        StatusPending,
		PaymentStatus: PaymentUnpaid,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, a := range addons {
		b.AddonIDs = append(b.AddonIDs, a.ID)
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, "", err
	}

	link, err := s.gateway.CreatePayment(ctx, robokassa.PaymentRequest{
		Amount:      b.Total,
		InvID:       invID,
		Description: fmt.Sprintf("Lumen Studio: %s on %s %s", pkg.Name, b.Date, b.StartTime),
		Email:       cust.Email,
		Shp:         map[string]string{"Shp_booking": b.ID.String()},
	})
	if err != nil {
		log.Error().Err(err).Int64("inv_id", invID).Msg("Payment init failed")
		return nil, "", ErrPaymentInitFailed
	}

	s.mailer.SendBookingConfirmation(cust.Email, s.details(b, pkg, loc, cust.Name, link.PaymentURL))
	s.events.Publish(notify.NewEvent(notify.EventBookingCreated, map[string]interface{}{
		"booking_id": b.ID.String(),
		"date":       b.Date,
		"start_time": b.StartTime,
		"total":      b.Total,
	}))

	log.Info().
		Str("booking_id", b.ID.String()).
		Int64("inv_id", invID).
		Str("date", b.Date).
		Str("start_time", b.StartTime).
		Msg("Booking created")

	return b, link.PaymentURL, nil
}

// HandleResult processes the RoboKassa ResultURL webhook. Returns the
// acknowledgement body the gateway expects. Repeat deliveries are
// acknowledged without side effects.
func (s *Service) HandleResult(ctx context.Context, payload *robokassa.WebhookPayload) (string, error) {
	if !robokassa.VerifyResultSignature(payload.OutSum, payload.InvID, payload.SignatureValue, s.gatewayCf.Password2, payload.Shp, s.gatewayCf.HashAlgo) {
		return "", ErrInvalidSignature
	}

	b, err := s.repo.GetByInvID(ctx, payload.InvID)
	if err != nil {
		return "", err
	}
	if b == nil {
		return "", ErrBookingNotFound
	}

	expected, err := robokassa.ParseAmount(fmt.Sprintf("%.2f", b.Total))
	if err != nil {
		return "", err
	}
	actual, err := robokassa.ParseAmount(payload.OutSum)
	if err != nil {
		return "", ErrAmountMismatch
	}
	if !robokassa.AmountsEqual(expected, actual) {
		return "", ErrAmountMismatch
	}

	alreadyPaid := b.PaymentStatus == PaymentPaid
	if !alreadyPaid {
		if err := s.repo.MarkPaid(ctx, b.ID, s.now().In(s.tz)); err != nil {
			return "", err
		}

		s.events.Publish(notify.NewEvent(notify.EventBookingPaid, map[string]interface{}{
			"booking_id": b.ID.String(),
			"total":      b.Total,
		}))
		s.notifyPaid(ctx, b)

		log.Info().Str("booking_id", b.ID.String()).Int64("inv_id", b.InvID).Msg("Booking paid")
	}

	return fmt.Sprintf("OK%d", payload.InvID), nil
}

// HandleSuccess validates the customer's SuccessURL redirect.
func (s *Service) HandleSuccess(ctx context.Context, payload *robokassa.WebhookPayload) (*Booking, error) {
	if !robokassa.VerifySuccessSignature(payload.OutSum, payload.InvID, payload.SignatureValue, s.gatewayCf.Password1, payload.Shp, s.gatewayCf.HashAlgo) {
		return nil, ErrInvalidSignature
	}

	b, err := s.repo.GetByInvID(ctx, payload.InvID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}
	return b, nil
}

// UpdateStatus applies an admin status transition.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status Status, reason string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}
	if !b.CanTransition(status) {
		return nil, ErrInvalidTransition
	}

	var cancelReason sql.NullString
	if status == StatusCancelled {
		reason = strings.TrimSpace(reason)
		if reason == "" {
			return nil, ErrCancelReasonNeeded
		}
		cancelReason = sql.NullString{String: reason, Valid: true}
	}

	if err := s.repo.UpdateStatus(ctx, id, status, cancelReason); err != nil {
		return nil, err
	}

	b.Status = status
	b.CancelReason = cancelReason
	return b, nil
}

// GetByID returns one booking.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}
	return b, nil
}

// List returns all bookings.
func (s *Service) List(ctx context.Context) ([]Booking, error) {
	return s.repo.List(ctx)
}

// Counters returns dashboard totals for today in studio time.
func (s *Service) Counters(ctx context.Context) (*DashboardCounters, error) {
	return s.repo.Counters(ctx, s.now().In(s.tz).Format("2006-01-02"))
}

func (s *Service) checkDate(date string, now time.Time, policy settings.Resolved) error {
	today := now.Format("2006-01-02")
	if date < today {
		return ErrDateInPast
	}
	if policy.MaximumAdvanceBookingDays > 0 {
		limit := now.AddDate(0, 0, policy.MaximumAdvanceBookingDays).Format("2006-01-02")
		if date > limit {
			return ErrDateTooFar
		}
	}
	return nil
}

func (s *Service) resolveSelection(ctx context.Context, packageID, locationID string, addonIDs []string) (*catalog.Package, *location.Location, []catalog.Addon, error) {
	pkgID, err := uuid.Parse(packageID)
	if err != nil {
		return nil, nil, nil, ErrPackageNotFound
	}
	pkg, err := s.catalog.GetPackageByID(ctx, pkgID)
	if err != nil {
		return nil, nil, nil, err
	}
	if pkg == nil {
		return nil, nil, nil, ErrPackageNotFound
	}

	var loc *location.Location
	if locationID != "" {
		locID, err := uuid.Parse(locationID)
		if err != nil {
			return nil, nil, nil, ErrLocationNotFound
		}
		loc, err = s.locations.GetByID(ctx, locID)
		if err != nil {
			return nil, nil, nil, err
		}
		if loc == nil {
			return nil, nil, nil, ErrLocationNotFound
		}
	}

	var addons []catalog.Addon
	if len(addonIDs) > 0 {
		ids := make([]uuid.UUID, 0, len(addonIDs))
		for _, raw := range addonIDs {
			id, err := uuid.Parse(raw)
			if err != nil {
				return nil, nil, nil, ErrAddonNotFound
			}
			ids = append(ids, id)
		}
		addons, err = s.catalog.GetAddonsByIDs(ctx, ids)
		if err != nil {
			return nil, nil, nil, err
		}
		if len(addons) != len(ids) {
			return nil, nil, nil, ErrAddonNotFound
		}
	}

	return pkg, loc, addons, nil
}

func (s *Service) resolveLocation(ctx context.Context, id *uuid.UUID) (*location.Location, error) {
	if id == nil {
		return nil, nil
	}
	loc, err := s.locations.GetByID(ctx, *id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, ErrLocationNotFound
	}
	return loc, nil
}

func (s *Service) resolvePackage(ctx context.Context, id *uuid.UUID) (*catalog.Package, error) {
	if id == nil {
		return nil, nil
	}
	pkg, err := s.catalog.GetPackageByID(ctx, *id)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, ErrPackageNotFound
	}
	return pkg, nil
}

func (s *Service) notifyPaid(ctx context.Context, b *Booking) {
	cust, err := s.customers.GetByID(ctx, b.CustomerID)
	if err != nil || cust == nil {
		return
	}
	pkg, err := s.catalog.GetPackageByID(ctx, b.PackageID)
	if err != nil || pkg == nil {
		return
	}
	var loc *location.Location
	if b.LocationID.Valid {
		loc, _ = s.locations.GetByID(ctx, b.LocationID.UUID)
	}
	s.mailer.SendBookingPaid(cust.Email, s.details(b, pkg, loc, cust.Name, ""))
}

func (s *Service) details(b *Booking, pkg *catalog.Package, loc *location.Location, customerName, paymentURL string) email.BookingDetails {
	d := email.BookingDetails{
		CustomerName: customerName,
		PackageName:  pkg.Name,
		Date:         b.Date,
		StartTime:    b.StartTime,
		Total:        fmt.Sprintf("%.2f", b.Total),
		PaymentURL:   paymentURL,
	}
	if loc != nil {
		d.LocationName = loc.Name
	}
	return d
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func subtract(list, remove []string) []string {
	if len(remove) == 0 {
		return list
	}
	kept := make([]string, 0, len(list))
	for _, s := range list {
		if !contains(remove, s) {
			kept = append(kept, s)
		}
	}
	return kept
}
