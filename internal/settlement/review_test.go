package settlement

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"forecourt/internal/models"
	"forecourt/internal/query"
	"forecourt/internal/session"
)

type fakeBackend struct {
	daily    *models.DailySales
	readings *models.ReadingsForSettlement

	loadErr   error
	createErr error

	createCalls int
	lastReq     models.SettlementCreateRequest
}

func (f *fakeBackend) DailySales(_ context.Context, _, _ string) (*models.DailySales, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.daily, nil
}

func (f *fakeBackend) ReadingsForSettlement(_ context.Context, _, _ string) (*models.ReadingsForSettlement, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.readings, nil
}

func (f *fakeBackend) CreateSettlement(_ context.Context, _ string, req models.SettlementCreateRequest) (*models.Settlement, error) {
	f.createCalls++
	f.lastReq = req
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.Settlement{
		ID:        "se-1",
		StationID: "st-1",
		Date:      req.Date,
		Expected:  req.Expected,
		Actual:    req.Actual,
		Variance:  Variance(req.Actual, req.Expected),
		Notes:     req.Notes,
		IsFinal:   req.IsFinal,
		CreatedAt: time.Now(),
	}, nil
}

func (f *fakeBackend) ListSettlements(_ context.Context, _ string) ([]models.Settlement, error) {
	return nil, nil
}

func newFakeBackend() *fakeBackend {
	readings := &models.ReadingsForSettlement{}
	shared := models.PaymentBreakdown{Cash: 3000, Online: 1000, Credit: 500}
	readings.Unlinked.Readings = []models.SettlementReading{
		{ID: "rd-1", TransactionID: "tx-1", Payment: shared, SaleValue: 2000},
		{ID: "rd-2", TransactionID: "tx-1", Payment: shared, SaleValue: 2500},
		{ID: "rd-3", TransactionID: "tx-2", Payment: models.PaymentBreakdown{Cash: 500}, SaleValue: 500},
	}
	readings.Linked.Readings = []models.SettlementReading{
		{ID: "rd-0", TransactionID: "tx-0"},
	}
	return &fakeBackend{
		daily: &models.DailySales{
			StationID: "st-1",
			Date:      "2026-08-29",
			Litres:    55,
			SaleValue: 5000,
		},
		readings: readings,
	}
}

func loadedReview(t *testing.T, backend Backend) *Review {
	t.Helper()
	r := NewReview(backend, query.NewMemory(), zap.NewNop(), "st-1", "2026-08-29")
	if err := r.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return r
}

func manager() *session.Operator {
	return &session.Operator{Name: "Asha", Role: session.RoleManager}
}

func TestLoadDegradesToEmpty(t *testing.T) {
	backend := newFakeBackend()
	backend.loadErr = errors.New("boom")

	r := loadedReview(t, backend)
	if len(r.UnlinkedReadings()) != 0 {
		t.Fatalf("expected empty view on read failure")
	}
	if r.DailySales() == nil || r.DailySales().SaleValue != 0 {
		t.Fatalf("expected zero daily sales on read failure")
	}
}

func TestSubmitRequiresSelection(t *testing.T) {
	r := loadedReview(t, newFakeBackend())

	_, err := r.Submit(context.Background(), breakdown(100, 0, 0), "", false, false, manager())
	if !errors.Is(err, ErrNoReadingsSelected) {
		t.Fatalf("expected ErrNoReadingsSelected, got %v", err)
	}
}

func TestSubmitRequiresAmounts(t *testing.T) {
	r := loadedReview(t, newFakeBackend())
	r.SelectAll()

	_, err := r.Submit(context.Background(), breakdown(0, 0, 0), "", false, false, manager())
	if !errors.Is(err, ErrNoAmountsEntered) {
		t.Fatalf("expected ErrNoAmountsEntered, got %v", err)
	}
}

func TestSubmitFinalRequiresManagerRole(t *testing.T) {
	backend := newFakeBackend()
	r := loadedReview(t, backend)
	r.SelectAll()
	employee := &session.Operator{Name: "Ravi", Role: session.RoleEmployee}

	_, err := r.Submit(context.Background(), breakdown(3500, 1000, 500), "", true, false, employee)
	if !errors.Is(err, session.ErrFinalizeForbidden) {
		t.Fatalf("expected finalize gate, got %v", err)
	}
	if backend.createCalls != 0 {
		t.Fatalf("gated submit must not reach the network")
	}

	// a draft from the same employee is fine
	if _, err := r.Submit(context.Background(), breakdown(3500, 1000, 500), "", false, false, employee); err != nil {
		t.Fatalf("draft submit: %v", err)
	}
}

func TestSubmitVarianceNeedsConfirmation(t *testing.T) {
	backend := newFakeBackend()
	r := loadedReview(t, backend)
	r.SelectAll()
	// expected: cash 3500, online 1000, credit 500; actual cash off by 10%
	actual := breakdown(3850, 1000, 500)

	_, err := r.Submit(context.Background(), actual, "", false, false, manager())
	var varErr *VarianceError
	if !errors.As(err, &varErr) {
		t.Fatalf("expected VarianceError, got %v", err)
	}
	if len(varErr.Channels) != 1 || varErr.Channels[0] != "cash" {
		t.Fatalf("unexpected channels %v", varErr.Channels)
	}
	if backend.createCalls != 0 {
		t.Fatalf("unconfirmed variance must not submit")
	}

	if _, err := r.Submit(context.Background(), actual, "till recount pending", false, true, manager()); err != nil {
		t.Fatalf("confirmed submit: %v", err)
	}
	if backend.lastReq.Notes != "till recount pending" {
		t.Fatalf("notes not carried, got %+v", backend.lastReq)
	}
}

func TestSubmitBuildsRequestAndInvalidates(t *testing.T) {
	backend := newFakeBackend()
	cache := query.NewMemory()
	_ = cache.Set(context.Background(), query.StationPrefix("st-1")+"pumps", []byte("x"), time.Minute)

	r := NewReview(backend, cache, zap.NewNop(), "st-1", "2026-08-29")
	if err := r.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	r.ToggleReading("rd-1")
	r.ToggleReading("rd-2")
	r.ToggleReading("rd-3")

	stmt, err := r.Submit(context.Background(), breakdown(3400, 1000, 500), "", true, false, manager())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !stmt.IsFinal {
		t.Fatalf("expected final settlement")
	}

	req := backend.lastReq
	if len(req.ReadingIDs) != 3 {
		t.Fatalf("expected 3 reading ids, got %v", req.ReadingIDs)
	}
	// tx-1 counted once despite two readings
	if req.Expected.Cash != 3500 || req.Expected.Online != 1000 || req.Expected.Credit != 500 {
		t.Fatalf("unexpected expected totals %+v", req.Expected)
	}

	if _, ok, _ := cache.Get(context.Background(), query.StationPrefix("st-1")+"pumps"); ok {
		t.Fatalf("station caches should be invalidated after settlement")
	}
}

func TestToggleReadingFlips(t *testing.T) {
	r := loadedReview(t, newFakeBackend())
	r.ToggleReading("rd-1")
	if got := r.Selected(); len(got) != 1 || got[0].ID != "rd-1" {
		t.Fatalf("unexpected selection %v", got)
	}
	r.ToggleReading("rd-1")
	if got := r.Selected(); len(got) != 0 {
		t.Fatalf("toggle must deselect, got %v", got)
	}
}
