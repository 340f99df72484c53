package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Syedfarrukh0/rfid-backend-prac/internal/attendance"
	"github.com/Syedfarrukh0/rfid-backend-prac/internal/dto"
	"github.com/Syedfarrukh0/rfid-backend-prac/internal/service"
	"github.com/Syedfarrukh0/rfid-backend-prac/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ── Mock AttendanceService ──

type mockAttendanceService struct {
	scanResult    *dto.ScanResponse
	scanErr       error
	cardResult    *dto.CardResponse
	cardErr       error
	todayResult   []dto.RecordResponse
	todayErr      error
	recordsResult []dto.RecordResponse
	recordsErr    error
}

func (m *mockAttendanceService) RecordScan(_ context.Context, _ string, _ *dto.ScanRequest) (*dto.ScanResponse, error) {
	return m.scanResult, m.scanErr
}
func (m *mockAttendanceService) RegisterCard(_ context.Context, _, _ string, _ *dto.RegisterCardRequest) (*dto.CardResponse, error) {
	return m.cardResult, m.cardErr
}
func (m *mockAttendanceService) TodayRecords(_ context.Context, _, _ string) ([]dto.RecordResponse, error) {
	return m.todayResult, m.todayErr
}
func (m *mockAttendanceService) UserRecords(_ context.Context, _, _, _ string, _ *dto.RecordRangeQuery) ([]dto.RecordResponse, error) {
	return m.recordsResult, m.recordsErr
}

// ── Mock AuthService ──

type mockAuthService struct {
	registerResult *dto.UserResponse
	registerErr    error
	loginResult    *dto.TokenResponse
	loginErr       error
	refreshResult  *dto.TokenResponse
	refreshErr     error
	logoutErr      error
	meResult       *dto.UserResponse
	meErr          error
	changePassErr  error
}

func (m *mockAuthService) Register(_ context.Context, _ *dto.RegisterRequest) (*dto.UserResponse, error) {
	return m.registerResult, m.registerErr
}
func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) RefreshToken(_ context.Context, _ string) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, _ string, _ time.Time, _ string) error {
	return m.logoutErr
}
func (m *mockAuthService) GetCurrentUser(_ context.Context, _ string) (*dto.UserResponse, error) {
	return m.meResult, m.meErr
}
func (m *mockAuthService) ChangePassword(_ context.Context, _ string, _ *dto.ChangePasswordRequest) error {
	return m.changePassErr
}

// ── helpers ──

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// injectDevice stands in for the device-auth middleware.
func injectDevice(c *gin.Context) {
	c.Set("device_uuid", "test-device")
}

// injectUser stands in for the JWT middleware.
func injectUser(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", "test-user-id")
		c.Set("role", role)
		c.Set("token_jti", "test-jti")
		c.Set("token_expiry", time.Now().Add(15*time.Minute))
	}
}

// ── AttendanceHandler.Scan ──

func TestScan_Accepted(t *testing.T) {
	mock := &mockAttendanceService{
		scanResult: &dto.ScanResponse{RecordType: "IN", Status: "PRESENT"},
	}
	h := NewAttendanceHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/attendance/scan", jsonBody(dto.ScanRequest{CardUUID: "badge-1"}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/attendance/scan", injectDevice, h.Scan)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestScan_BadJSON(t *testing.T) {
	h := NewAttendanceHandler(&mockAttendanceService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/attendance/scan", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/attendance/scan", injectDevice, h.Scan)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestScan_RejectionMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"unknown card", service.ErrCardNotRegistered, http.StatusNotFound, 12001},
		{"no schedule", attendance.ErrNoScheduleToday, http.StatusUnprocessableEntity, 12010},
		{"too early in", attendance.ErrTooEarlyForCheckIn, http.StatusUnprocessableEntity, 12011},
		{"duplicate", attendance.ErrDuplicateCheckIn, http.StatusConflict, 12012},
		{"too early out", attendance.ErrTooEarlyForCheckOut, http.StatusUnprocessableEntity, 12013},
		{"window closed", attendance.ErrCheckOutWindowClosed, http.StatusUnprocessableEntity, 12014},
		{"out without in", attendance.ErrCheckOutWithoutCheckIn, http.StatusUnprocessableEntity, 12015},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAttendanceHandler(&mockAttendanceService{scanErr: tt.err})

			w := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/attendance/scan", jsonBody(dto.ScanRequest{CardUUID: "badge-1"}))
			req.Header.Set("Content-Type", "application/json")

			r := gin.New()
			r.POST("/attendance/scan", injectDevice, h.Scan)
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, w.Code)
			}
			if resp := parseResponse(w); resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

func TestScan_MissingDeviceContext(t *testing.T) {
	h := NewAttendanceHandler(&mockAttendanceService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/attendance/scan", jsonBody(dto.ScanRequest{CardUUID: "badge-1"}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/attendance/scan", h.Scan) // no device middleware
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

// ── AuthHandler ──

func TestLogin_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{AccessToken: "at", RefreshToken: "rt"},
	}
	h := NewAuthHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "asif@example.com",
		Password: "hunter2hunter2",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "asif@example.com",
		Password: "wrong-password",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 11001 {
		t.Errorf("expected code 11001, got %d", resp.Code)
	}
}

func TestRegister_EmailTaken(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{registerErr: service.ErrEmailTaken})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/register", jsonBody(dto.RegisterRequest{
		Name:     "Asif",
		Email:    "asif@example.com",
		Password: "hunter2hunter2",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}

// ── ScheduleHandler ──

type mockScheduleService struct {
	setResult *dto.ScheduleResponse
	setErr    error
	getResult *dto.ScheduleResponse
	getErr    error
}

func (m *mockScheduleService) Set(_ context.Context, _, _ string, _ *dto.SetScheduleRequest) (*dto.ScheduleResponse, error) {
	return m.setResult, m.setErr
}
func (m *mockScheduleService) Get(_ context.Context, _, _, _ string) (*dto.ScheduleResponse, error) {
	return m.getResult, m.getErr
}

func TestSetSchedule_InvalidTime(t *testing.T) {
	h := NewScheduleHandler(&mockScheduleService{setErr: service.ErrInvalidScheduleTime})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/schedules", jsonBody(dto.SetScheduleRequest{
		Schedules: []dto.ScheduleEntryRequest{{
			DayOfWeek:    1,
			CheckInFrom:  "banana",
			CheckInTo:    "10:00:00",
			CheckOutFrom: "17:00:00",
			CheckOutTo:   "18:00:00",
		}},
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/schedules", injectUser("company"), h.Set)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 13001 {
		t.Errorf("expected code 13001, got %d", resp.Code)
	}
}

func TestGetSchedule_Forbidden(t *testing.T) {
	h := NewScheduleHandler(&mockScheduleService{getErr: service.ErrForbidden})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/schedules/user-2", nil)

	r := gin.New()
	r.GET("/schedules/:id", injectUser("company"), h.Get)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}
