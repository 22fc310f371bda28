package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"

	apperrors "salas/pkg/errors"
	"salas/pkg/logger"
	"salas/pkg/model"
)

// Mock service with function fields
type mockReservationService struct {
	createFunc         func(ctx context.Context, input *model.ReservationInput) (*model.Reservation, []string, error)
	getByIDFunc        func(ctx context.Context, id string) (*model.Reservation, error)
	getAllFunc         func(ctx context.Context, limit int, offset int64) ([]*model.Reservation, int64, error)
	deleteFunc         func(ctx context.Context, id string) error
	checkConflictsFunc func(ctx context.Context, day, startTime, endTime, room, excludeID string) ([]model.ConflictDetail, error)
}

func (m *mockReservationService) Create(ctx context.Context, input *model.ReservationInput) (*model.Reservation, []string, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, input)
	}
	return &model.Reservation{}, nil, nil
}

func (m *mockReservationService) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &model.Reservation{}, nil
}

func (m *mockReservationService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Reservation, int64, error) {
	if m.getAllFunc != nil {
		return m.getAllFunc(ctx, limit, offset)
	}
	return nil, 0, nil
}

func (m *mockReservationService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockReservationService) CheckConflicts(ctx context.Context, day, startTime, endTime, room, excludeID string) ([]model.ConflictDetail, error) {
	if m.checkConflictsFunc != nil {
		return m.checkConflictsFunc(ctx, day, startTime, endTime, room, excludeID)
	}
	return nil, nil
}

func newTestRouter(svc *mockReservationService) *httprouter.Router {
	log := logger.New(logger.Config{
		Level:  logger.ERROR,
		Format: logger.TEXT,
		Output: io.Discard,
	})

	router := httprouter.New()
	NewReservationHandler(svc, log).RegisterRoutes(router)
	return router
}

func sampleReservation() *model.Reservation {
	return &model.Reservation{
		ID:          "res-1",
		StartMinute: 9 * 60,
		EndMinute:   10*60 + 30,
		Room:        "Sala Norte",
		Area:        "Finanzas",
		Attendance:  4,
	}
}

func TestCreate_Returns201WithWarnings(t *testing.T) {
	svc := &mockReservationService{
		createFunc: func(ctx context.Context, input *model.ReservationInput) (*model.Reservation, []string, error) {
			return sampleReservation(), []string{"day could not be interpreted, today's date was used instead"}, nil
		},
	}
	router := newTestRouter(svc)

	body, _ := json.Marshal(model.ReservationInput{
		Day:       "garbage",
		StartTime: "9:00",
		EndTime:   "10:30",
		Room:      "Sala Norte",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data     model.ReservationView `json:"data"`
		Warnings []string              `json:"warnings"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Data.ID != "res-1" {
		t.Errorf("expected id res-1, got %s", resp.Data.ID)
	}
	if resp.Data.StartTime != "09:00" {
		t.Errorf("expected start 09:00, got %s", resp.Data.StartTime)
	}
	if len(resp.Warnings) != 1 {
		t.Errorf("expected 1 warning, got %v", resp.Warnings)
	}
}

func TestCreate_MalformedBodyReturns400(t *testing.T) {
	router := newTestRouter(&mockReservationService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCreate_ConflictReturns409(t *testing.T) {
	svc := &mockReservationService{
		createFunc: func(ctx context.Context, input *model.ReservationInput) (*model.Reservation, []string, error) {
			return nil, nil, apperrors.Conflict("Room is already reserved in the requested range")
		},
	}
	router := newTestRouter(svc)

	body, _ := json.Marshal(model.ReservationInput{
		Day:       "2026-03-05",
		StartTime: "9:00",
		EndTime:   "10:30",
		Room:      "Sala Norte",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}

	var resp struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Code != apperrors.CodeConflict {
		t.Errorf("expected code %s, got %s", apperrors.CodeConflict, resp.Code)
	}
}

func TestGetByID_NotFoundReturns404(t *testing.T) {
	svc := &mockReservationService{
		getByIDFunc: func(ctx context.Context, id string) (*model.Reservation, error) {
			return nil, apperrors.NotFoundWithID("Reservation", id)
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reservations/id/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestGetAll_ReturnsPaginatedViews(t *testing.T) {
	svc := &mockReservationService{
		getAllFunc: func(ctx context.Context, limit int, offset int64) ([]*model.Reservation, int64, error) {
			return []*model.Reservation{sampleReservation()}, 27, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reservations?limit=5&offset=10", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data       []model.ReservationView `json:"data"`
		TotalCount int64                   `json:"total_count"`
		Limit      int                     `json:"limit"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.TotalCount != 27 {
		t.Errorf("expected total 27, got %d", resp.TotalCount)
	}
	if len(resp.Data) != 1 || resp.Data[0].EndTime != "10:30" {
		t.Errorf("unexpected data: %v", resp.Data)
	}
}

func TestDelete_Returns204(t *testing.T) {
	router := newTestRouter(&mockReservationService{})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/reservations/id/res-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestCheckConflicts_ReportsAvailability(t *testing.T) {
	svc := &mockReservationService{
		checkConflictsFunc: func(ctx context.Context, day, startTime, endTime, room, excludeID string) ([]model.ConflictDetail, error) {
			if room != "Sala Norte" || excludeID != "res-9" {
				t.Errorf("unexpected probe params: room=%q exclude=%q", room, excludeID)
			}
			return []model.ConflictDetail{{ID: "res-1", Room: room, TimeRange: "09:00 - 10:30"}}, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/reservations/conflicts?day=2026-03-05&start_time=9:30&end_time=10:00&room=Sala+Norte&exclude_id=res-9", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data struct {
			Available bool                   `json:"available"`
			Conflicts []model.ConflictDetail `json:"conflicts"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Data.Available {
		t.Error("expected available=false when conflicts exist")
	}
	if len(resp.Data.Conflicts) != 1 || resp.Data.Conflicts[0].ID != "res-1" {
		t.Errorf("unexpected conflicts: %v", resp.Data.Conflicts)
	}
}
