package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/lumenstudio/lumen-api/internal/domain/catalog"
	"github.com/lumenstudio/lumen-api/internal/domain/customer"
	"github.com/lumenstudio/lumen-api/internal/domain/location"
	"github.com/lumenstudio/lumen-api/internal/domain/notify"
	"github.com/lumenstudio/lumen-api/internal/domain/settings"
	"github.com/lumenstudio/lumen-api/internal/pkg/email"
	"github.com/lumenstudio/lumen-api/internal/pkg/robokassa"
)

type fakeBookingRepo struct {
	bookings  map[uuid.UUID]*Booking
	taken     []string
	nextInv   int64
	paidCalls int
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*Booking), nextInv: 41}
}

func (r *fakeBookingRepo) NextInvID(ctx context.Context) (int64, error) {
	r.nextInv++
	return r.nextInv, nil
}

func (r *fakeBookingRepo) Create(ctx context.Context, b *Booking) error {
	copied := *b
	r.bookings[b.ID] = &copied
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookingRepo) GetByInvID(ctx context.Context, invID int64) (*Booking, error) {
	for _, b := range r.bookings {
		if b.InvID == invID {
			copied := *b
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeBookingRepo) List(ctx context.Context) ([]Booking, error) {
	out := make([]Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeBookingRepo) TakenTimes(ctx context.Context, date string, locationID uuid.NullUUID) ([]string, error) {
	return r.taken, nil
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status Status, reason sql.NullString) error {
	if b, ok := r.bookings[id]; ok {
		b.Status = status
		b.CancelReason = reason
	}
	return nil
}

func (r *fakeBookingRepo) MarkPaid(ctx context.Context, id uuid.UUID, at time.Time) error {
	r.paidCalls++
	if b, ok := r.bookings[id]; ok {
		b.PaymentStatus = PaymentPaid
		b.Status = StatusConfirmed
		b.PaidAt = sql.NullTime{Time: at, Valid: true}
	}
	return nil
}

func (r *fakeBookingRepo) Counters(ctx context.Context, today string) (*DashboardCounters, error) {
	return &DashboardCounters{}, nil
}

type fakeCatalogStore struct {
	pkg    *catalog.Package
	addons []catalog.Addon
}

func (f *fakeCatalogStore) GetPackageByID(ctx context.Context, id uuid.UUID) (*catalog.Package, error) {
	if f.pkg != nil && f.pkg.ID == id {
		return f.pkg, nil
	}
	return nil, nil
}

func (f *fakeCatalogStore) GetAddonsByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Addon, error) {
	var found []catalog.Addon
	for _, id := range ids {
		for _, a := range f.addons {
			if a.ID == id {
				found = append(found, a)
			}
		}
	}
	return found, nil
}

type fakeLocationStore struct {
	loc *location.Location
}

func (f *fakeLocationStore) GetByID(ctx context.Context, id uuid.UUID) (*location.Location, error) {
	if f.loc != nil && f.loc.ID == id {
		return f.loc, nil
	}
	return nil, nil
}

type fakeCustomerStore struct {
	upserts int
	cust    *customer.Customer
}

func (f *fakeCustomerStore) Upsert(ctx context.Context, name, mail, phone string) (*customer.Customer, error) {
	f.upserts++
	f.cust = &customer.Customer{ID: uuid.New(), Name: name, Email: mail}
	return f.cust, nil
}

func (f *fakeCustomerStore) GetByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	if f.cust != nil && f.cust.ID == id {
		return f.cust, nil
	}
	return nil, nil
}

type fakePolicySource struct {
	policy settings.Resolved
}

func (f *fakePolicySource) Resolved(ctx context.Context) (settings.Resolved, error) {
	return f.policy, nil
}

type fakeGateway struct {
	calls int
	fail  bool
}

func (f *fakeGateway) CreatePayment(ctx context.Context, req robokassa.PaymentRequest) (*robokassa.PaymentLink, error) {
	f.calls++
	if f.fail {
		return nil, errors.New("gateway down")
	}
	return &robokassa.PaymentLink{
		PaymentURL: fmt.Sprintf("https://pay.example/%d", req.InvID),
		InvID:      req.InvID,
	}, nil
}

type fakeMailer struct {
	confirmations int
	paid          int
}

func (f *fakeMailer) SendBookingConfirmation(to string, details email.BookingDetails) {
	f.confirmations++
}

func (f *fakeMailer) SendBookingPaid(to string, details email.BookingDetails) {
	f.paid++
}

type testEnv struct {
	service   *Service
	repo      *fakeBookingRepo
	catalog   *fakeCatalogStore
	customers *fakeCustomerStore
	gateway   *fakeGateway
	mailer    *fakeMailer
	config    robokassa.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	pkg := &catalog.Package{ID: uuid.New(), Name: "Portrait", Price: 1000, DurationMinutes: 60}
	addons := []catalog.Addon{
		{ID: uuid.New(), Price: 200},
		{ID: uuid.New(), Price: 150},
	}

	repo := newFakeBookingRepo()
	catalogStore := &fakeCatalogStore{pkg: pkg, addons: addons}
	locations := &fakeLocationStore{loc: &location.Location{ID: uuid.New(), Name: "Studio A", ExtraFee: 50}}
	customers := &fakeCustomerStore{}
	policy := &fakePolicySource{policy: settings.DefaultResolved()}
	gateway := &fakeGateway{}
	mailer := &fakeMailer{}
	cfg := robokassa.Config{MerchantLogin: "lumen", Password1: "pass1", Password2: "pass2"}

	svc := NewService(repo, catalogStore, locations, customers, policy, gateway, cfg, mailer, notify.NopPublisher{}, time.UTC)
	svc.now = func() time.Time {
		return time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	}

	return &testEnv{
		service:   svc,
		repo:      repo,
		catalog:   catalogStore,
		customers: customers,
		gateway:   gateway,
		mailer:    mailer,
		config:    cfg,
	}
}

func validCreateRequest(env *testEnv) *CreateBookingRequest {
	return &CreateBookingRequest{
		CustomerName:  "Aigerim",
		CustomerEmail: "aigerim@example.com",
		PackageID:     env.catalog.pkg.ID.String(),
		AddonIDs:      []string{env.catalog.addons[0].ID.String(), env.catalog.addons[1].ID.String()},
		Date:          "2026-09-10",
		StartTime:     "11:00",
	}
}

func TestCreateBooking(t *testing.T) {
	env := newTestEnv(t)

	b, paymentURL, err := env.service.Create(context.Background(), validCreateRequest(env))
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	if b.Status != StatusPending {
		t.Errorf("status = %s, want pending", b.Status)
	}
	if b.PaymentStatus != PaymentUnpaid {
		t.Errorf("payment status = %s, want unpaid", b.PaymentStatus)
	}
	if b.Total != 1350 {
		t.Errorf("total = %v, want 1350 (package + add-ons, no location)", b.Total)
	}
	if paymentURL == "" {
		t.Error("expected a payment URL")
	}
	if env.customers.upserts != 1 {
		t.Errorf("customer upserts = %d, want 1", env.customers.upserts)
	}
	if env.mailer.confirmations != 1 {
		t.Errorf("confirmation emails = %d, want 1", env.mailer.confirmations)
	}
}

func TestCreateBookingSlotNotOffered(t *testing.T) {
	env := newTestEnv(t)
	req := validCreateRequest(env)
	req.StartTime = "11:30"

	_, _, err := env.service.Create(context.Background(), req)
	if !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("err = %v, want ErrSlotUnavailable", err)
	}
}

func TestCreateBookingSlotTaken(t *testing.T) {
	env := newTestEnv(t)
	env.repo.taken = []string{"11:00"}

	_, _, err := env.service.Create(context.Background(), validCreateRequest(env))
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("err = %v, want ErrSlotTaken", err)
	}
}

func TestCreateBookingDateInPast(t *testing.T) {
	env := newTestEnv(t)
	req := validCreateRequest(env)
	req.Date = "2026-08-31"

	_, _, err := env.service.Create(context.Background(), req)
	if !errors.Is(err, ErrDateInPast) {
		t.Fatalf("err = %v, want ErrDateInPast", err)
	}
}

func TestCreateBookingDateTooFar(t *testing.T) {
	env := newTestEnv(t)
	req := validCreateRequest(env)
	req.Date = "2027-01-01"

	_, _, err := env.service.Create(context.Background(), req)
	if !errors.Is(err, ErrDateTooFar) {
		t.Fatalf("err = %v, want ErrDateTooFar", err)
	}
}

func TestCreateBookingUnknownPackage(t *testing.T) {
	env := newTestEnv(t)
	req := validCreateRequest(env)
	req.PackageID = uuid.NewString()

	_, _, err := env.service.Create(context.Background(), req)
	if !errors.Is(err, ErrPackageNotFound) {
		t.Fatalf("err = %v, want ErrPackageNotFound", err)
	}
}

func TestCreateBookingGatewayFailure(t *testing.T) {
	env := newTestEnv(t)
	env.gateway.fail = true

	_, _, err := env.service.Create(context.Background(), validCreateRequest(env))
	if !errors.Is(err, ErrPaymentInitFailed) {
		t.Fatalf("err = %v, want ErrPaymentInitFailed", err)
	}
}

func signedResultPayload(t *testing.T, env *testEnv, b *Booking) *robokassa.WebhookPayload {
	t.Helper()

	outSum := fmt.Sprintf("%.2f", b.Total)
	invID := fmt.Sprintf("%d", b.InvID)
	base := robokassa.BuildResultSignatureBase(outSum, invID, env.config.Password2, nil)
	algo := env.config.HashAlgo
	if algo == "" {
		algo = robokassa.HashSHA256
	}
	sig, err := robokassa.Sign(base, algo)
	if err != nil {
		t.Fatalf("sign payload: %v", err)
	}
	return &robokassa.WebhookPayload{OutSum: outSum, InvID: b.InvID, SignatureValue: sig}
}

func TestHandleResultMarksPaid(t *testing.T) {
	env := newTestEnv(t)
	b, _, err := env.service.Create(context.Background(), validCreateRequest(env))
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	ack, err := env.service.HandleResult(context.Background(), signedResultPayload(t, env, b))
	if err != nil {
		t.Fatalf("handle result: %v", err)
	}
	if want := fmt.Sprintf("OK%d", b.InvID); ack != want {
		t.Errorf("ack = %q, want %q", ack, want)
	}

	stored := env.repo.bookings[b.ID]
	if stored.PaymentStatus != PaymentPaid {
		t.Errorf("payment status = %s, want paid", stored.PaymentStatus)
	}
	if stored.Status != StatusConfirmed {
		t.Errorf("status = %s, want confirmed", stored.Status)
	}
	if env.mailer.paid != 1 {
		t.Errorf("paid emails = %d, want 1", env.mailer.paid)
	}
}

func TestHandleResultHonorsConfiguredAlgorithm(t *testing.T) {
	env := newTestEnv(t)
	env.config.HashAlgo = robokassa.HashMD5
	env.service.gatewayCf.HashAlgo = robokassa.HashMD5

	b, _, err := env.service.Create(context.Background(), validCreateRequest(env))
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	ack, err := env.service.HandleResult(context.Background(), signedResultPayload(t, env, b))
	if err != nil {
		t.Fatalf("MD5-signed webhook rejected: %v", err)
	}
	if want := fmt.Sprintf("OK%d", b.InvID); ack != want {
		t.Errorf("ack = %q, want %q", ack, want)
	}
	if env.repo.bookings[b.ID].PaymentStatus != PaymentPaid {
		t.Error("MD5-signed webhook must mark the booking paid")
	}
}

func TestHandleResultIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	b, _, err := env.service.Create(context.Background(), validCreateRequest(env))
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	payload := signedResultPayload(t, env, b)
	if _, err := env.service.HandleResult(context.Background(), payload); err != nil {
		t.Fatalf("first delivery: %v", err)
	}
	if _, err := env.service.HandleResult(context.Background(), payload); err != nil {
		t.Fatalf("repeat delivery: %v", err)
	}

	if env.repo.paidCalls != 1 {
		t.Errorf("paid writes = %d, want 1", env.repo.paidCalls)
	}
	if env.mailer.paid != 1 {
		t.Errorf("paid emails = %d, want 1", env.mailer.paid)
	}
}

func TestHandleResultRejectsBadSignature(t *testing.T) {
	env := newTestEnv(t)
	b, _, err := env.service.Create(context.Background(), validCreateRequest(env))
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	payload := signedResultPayload(t, env, b)
	payload.SignatureValue = "deadbeef"

	if _, err := env.service.HandleResult(context.Background(), payload); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("err = %v, want ErrInvalidSignature", err)
	}
	if env.repo.paidCalls != 0 {
		t.Error("forged webhook must not mark anything paid")
	}
}

func TestHandleResultRejectsAmountMismatch(t *testing.T) {
	env := newTestEnv(t)
	b, _, err := env.service.Create(context.Background(), validCreateRequest(env))
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	outSum := "1.00"
	base := robokassa.BuildResultSignatureBase(outSum, fmt.Sprintf("%d", b.InvID), env.config.Password2, nil)
	sig, err := robokassa.Sign(base, robokassa.HashSHA256)
	if err != nil {
		t.Fatalf("sign payload: %v", err)
	}
	payload := &robokassa.WebhookPayload{OutSum: outSum, InvID: b.InvID, SignatureValue: sig}

	if _, err := env.service.HandleResult(context.Background(), payload); !errors.Is(err, ErrAmountMismatch) {
		t.Fatalf("err = %v, want ErrAmountMismatch", err)
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	env := newTestEnv(t)
	b, _, err := env.service.Create(context.Background(), validCreateRequest(env))
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	if _, err := env.service.UpdateStatus(context.Background(), b.ID, StatusCompleted, ""); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("pending -> completed should fail, got %v", err)
	}

	if _, err := env.service.UpdateStatus(context.Background(), b.ID, StatusConfirmed, ""); err != nil {
		t.Fatalf("pending -> confirmed: %v", err)
	}

	if _, err := env.service.UpdateStatus(context.Background(), b.ID, StatusCancelled, ""); !errors.Is(err, ErrCancelReasonNeeded) {
		t.Fatalf("cancel without reason should fail, got %v", err)
	}

	updated, err := env.service.UpdateStatus(context.Background(), b.ID, StatusCancelled, "client request")
	if err != nil {
		t.Fatalf("confirmed -> cancelled: %v", err)
	}
	if updated.CancelReason.String != "client request" {
		t.Errorf("cancel reason = %q", updated.CancelReason.String)
	}

	if _, err := env.service.UpdateStatus(context.Background(), b.ID, StatusConfirmed, ""); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("cancelled is terminal, got %v", err)
	}
}

func TestAvailabilityExcludesTakenSlots(t *testing.T) {
	env := newTestEnv(t)
	env.repo.taken = []string{"11:00", "15:00"}

	resp, err := env.service.Availability(context.Background(), "2026-09-10", nil, nil)
	if err != nil {
		t.Fatalf("availability: %v", err)
	}

	want := []string{"09:00", "13:00", "17:00"}
	if len(resp.Times) != len(want) {
		t.Fatalf("times = %v, want %v", resp.Times, want)
	}
	for i := range want {
		if resp.Times[i] != want[i] {
			t.Fatalf("times = %v, want %v", resp.Times, want)
		}
	}
}

func TestAvailabilityPastDateIsEmpty(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.service.Availability(context.Background(), "2026-08-20", nil, nil)
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	if len(resp.Times) != 0 {
		t.Fatalf("past date should be empty, got %v", resp.Times)
	}
}
