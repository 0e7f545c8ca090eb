package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bitwise74/expense-api/db"
	"bitwise74/expense-api/internal"
	"bitwise74/expense-api/internal/ai"
	cat "bitwise74/expense-api/internal/category"
	"bitwise74/expense-api/internal/store"
	"bitwise74/expense-api/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type fakeModel struct {
	reply string
	err   error
	calls int
}

func (f *fakeModel) Generate(context.Context, string, ...ai.Image) (string, error) {
	f.calls++
	return f.reply, f.err
}

type fakeMailer struct {
	to, link string
	err      error
}

func (f *fakeMailer) SendPasswordReset(to, link string) error {
	f.to, f.link = to, link
	return f.err
}

// 1x1 transparent png
var pngPixel = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0a, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

type RouterTestSuite struct {
	suite.Suite
	router *gin.Engine
	model  *fakeModel
	mailer *fakeMailer
	cancel context.CancelFunc
}

func (s *RouterTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	conn, err := db.New("sqlite", ":memory:", false)
	require.NoError(s.T(), err, "failed to create test database")

	s.model = &fakeModel{}
	s.mailer = &fakeMailer{}

	d := &internal.Deps{
		DB:         conn,
		Argon:      security.NewFast(),
		Users:      store.NewUserStore(conn),
		Expenses:   store.NewExpenseStore(conn),
		Categories: store.NewCategoryStore(conn, cat.Defaults),
		Scanner:    ai.NewReceiptScanner(s.model, cat.Receipt),
		Forecaster: ai.NewForecaster(s.model, 5, 100),
		Mailer:     s.mailer,
		Settings: internal.Settings{
			JWTSecret:      "test-secret",
			TokenTTL:       time.Hour,
			ResetTokenTTL:  15 * time.Minute,
			FrontendURL:    "http://localhost:5173",
			MaxUploadSize:  1 << 20,
			MaxUploadFiles: 2,
		},
	}

	var ctx context.Context
	ctx, s.cancel = context.WithCancel(context.Background())
	s.router = NewEngine(ctx, d, EngineConfig{CORSOrigins: []string{"http://localhost:5173"}})
}

func (s *RouterTestSuite) TearDownTest() {
	s.cancel()
}

func (s *RouterTestSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var r *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(s.T(), err)
		r = bytes.NewReader(b)
	} else {
		r = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RouterTestSuite) decode(w *httptest.ResponseRecorder, v any) {
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func (s *RouterTestSuite) register(username string) string {
	w := s.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "correct horse",
	})
	require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())

	var res struct {
		Token string `json:"token"`
	}
	s.decode(w, &res)
	require.NotEmpty(s.T(), res.Token)

	return res.Token
}

func (s *RouterTestSuite) addExpense(token string, amount float64, category string) uint {
	w := s.do(http.MethodPost, "/api/expenses", token, gin.H{
		"description": "test " + category,
		"amount":      amount,
		"category":    category,
	})
	require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())

	var e struct {
		ID uint `json:"id"`
	}
	s.decode(w, &e)

	return e.ID
}

func (s *RouterTestSuite) TestHeartbeat() {
	w := s.do(http.MethodHead, "/api/heartbeat", "", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.NotEmpty(s.T(), w.Header().Get("X-Request-ID"))
}

func (s *RouterTestSuite) TestRegisterAndLogin() {
	token := s.register("alice")

	w := s.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "alice2",
		"email":    "alice@example.com",
		"password": "correct horse",
	})
	assert.Equal(s.T(), http.StatusConflict, w.Code)

	w = s.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "alice",
		"email":    "other@example.com",
		"password": "correct horse",
	})
	assert.Equal(s.T(), http.StatusConflict, w.Code)

	w = s.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "carol",
		"email":    "not an email",
		"password": "correct horse",
	})
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "carol",
		"email":    "carol@example.com",
		"password": "short",
	})
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "nobody@example.com", "password": "correct horse"})
	assert.Equal(s.T(), http.StatusNotFound, w.Code)

	w = s.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "alice@example.com", "password": "wrong password"})
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "alice@example.com", "password": "correct horse"})
	require.Equal(s.T(), http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(s.T(), http.StatusOK, w.Code)
	assert.Contains(s.T(), w.Body.String(), `"username":"alice"`)
	assert.NotContains(s.T(), w.Body.String(), "password")
	assert.NotContains(s.T(), w.Body.String(), "reset")

	w = s.do(http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodGet, "/api/validate", token, nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
}

func (s *RouterTestSuite) TestEmailIgnoresCase() {
	s.register("alice")

	w := s.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "alice2",
		"email":    "Alice@Example.com",
		"password": "correct horse",
	})
	assert.Equal(s.T(), http.StatusConflict, w.Code)

	w = s.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": " ALICE@example.com ", "password": "correct horse"})
	assert.Equal(s.T(), http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/api/auth/forgot-password", "", gin.H{"email": "aLiCe@example.COM"})
	require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())
	assert.Equal(s.T(), "alice@example.com", s.mailer.to)

	w = s.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "carol",
		"email":    "Carol@Example.com",
		"password": "correct horse",
	})
	require.Equal(s.T(), http.StatusCreated, w.Code)
	assert.Contains(s.T(), w.Body.String(), `"email":"carol@example.com"`)
}

func (s *RouterTestSuite) TestSubCentAmountRejected() {
	alice := s.register("alice")

	w := s.do(http.MethodPost, "/api/expenses", alice, gin.H{
		"description": "tiny",
		"amount":      0.004,
		"category":    "Food",
	})
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	assert.Contains(s.T(), w.Body.String(), "2 decimal places")
}

func (s *RouterTestSuite) TestErrorResponseCarriesRequestID() {
	w := s.do(http.MethodGet, "/api/expenses", "garbage", nil)
	require.Equal(s.T(), http.StatusUnauthorized, w.Code)

	var res map[string]string
	s.decode(w, &res)
	assert.NotEmpty(s.T(), res["error"])
	assert.Equal(s.T(), w.Header().Get("X-Request-ID"), res["requestID"])
}

func (s *RouterTestSuite) TestPasswordReset() {
	s.register("alice")

	w := s.do(http.MethodPost, "/api/auth/forgot-password", "", gin.H{"email": "nobody@example.com"})
	assert.Equal(s.T(), http.StatusNotFound, w.Code)

	w = s.do(http.MethodPost, "/api/auth/forgot-password", "", gin.H{"email": "alice@example.com"})
	require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())

	assert.Equal(s.T(), "alice@example.com", s.mailer.to)
	require.True(s.T(), strings.HasPrefix(s.mailer.link, "http://localhost:5173/reset-password/"))
	token := strings.TrimPrefix(s.mailer.link, "http://localhost:5173/reset-password/")
	assert.Len(s.T(), token, 64)

	w = s.do(http.MethodPut, "/api/auth/reset-password/not-a-real-token", "", gin.H{"password": "brand new password"})
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "alice@example.com", "password": "correct horse"})
	assert.Equal(s.T(), http.StatusOK, w.Code, "a bad token must leave the password alone")

	w = s.do(http.MethodPut, "/api/auth/reset-password/"+token, "", gin.H{"password": "brand new password"})
	require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())
	assert.Contains(s.T(), w.Body.String(), `"token"`)

	w = s.do(http.MethodPut, "/api/auth/reset-password/"+token, "", gin.H{"password": "another password"})
	assert.Equal(s.T(), http.StatusBadRequest, w.Code, "tokens are single use")

	w = s.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "alice@example.com", "password": "correct horse"})
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "alice@example.com", "password": "brand new password"})
	assert.Equal(s.T(), http.StatusOK, w.Code)
}

func (s *RouterTestSuite) TestPasswordResetMailFailure() {
	s.register("alice")
	s.mailer.err = errors.New("smtp down")

	w := s.do(http.MethodPost, "/api/auth/forgot-password", "", gin.H{"email": "alice@example.com"})
	require.Equal(s.T(), http.StatusInternalServerError, w.Code)

	token := strings.TrimPrefix(s.mailer.link, "http://localhost:5173/reset-password/")
	w = s.do(http.MethodPut, "/api/auth/reset-password/"+token, "", gin.H{"password": "brand new password"})
	assert.Equal(s.T(), http.StatusBadRequest, w.Code, "token of a failed mail must not work")
}

func (s *RouterTestSuite) TestExpenseCRUD() {
	alice := s.register("alice")
	bob := s.register("bob")

	id := s.addExpense(alice, 12.5, "  eating   OUT ")

	w := s.do(http.MethodGet, fmt.Sprintf("/api/expenses/%d", id), alice, nil)
	require.Equal(s.T(), http.StatusOK, w.Code)
	assert.Contains(s.T(), w.Body.String(), `"category":"Eating Out"`)

	w = s.do(http.MethodGet, fmt.Sprintf("/api/expenses/%d", id), bob, nil)
	assert.Equal(s.T(), http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, "/api/expenses/9999", alice, nil)
	assert.Equal(s.T(), http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/api/expenses/abc", alice, nil)
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPut, fmt.Sprintf("/api/expenses/%d", id), bob, gin.H{"amount": 1})
	assert.Equal(s.T(), http.StatusForbidden, w.Code)

	w = s.do(http.MethodPut, fmt.Sprintf("/api/expenses/%d", id), alice, gin.H{"amount": -1})
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPut, fmt.Sprintf("/api/expenses/%d", id), alice, gin.H{"amount": 20, "date": "2026-01-02"})
	require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())
	assert.Contains(s.T(), w.Body.String(), `"amount":20`)
	assert.Contains(s.T(), w.Body.String(), `"date":"2026-01-02T00:00:00Z"`)

	w = s.do(http.MethodPost, "/api/expenses", alice, gin.H{"description": "", "amount": 3})
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/expenses", alice, gin.H{"description": "x"})
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/expenses", bob, nil)
	require.Equal(s.T(), http.StatusOK, w.Code)
	assert.JSONEq(s.T(), `[]`, w.Body.String())

	w = s.do(http.MethodGet, "/api/expenses?sort=sideways", alice, nil)
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)

	w = s.do(http.MethodDelete, fmt.Sprintf("/api/expenses/%d", id), bob, nil)
	assert.Equal(s.T(), http.StatusForbidden, w.Code)

	w = s.do(http.MethodDelete, fmt.Sprintf("/api/expenses/%d", id), alice, nil)
	assert.Equal(s.T(), http.StatusNoContent, w.Code)

	w = s.do(http.MethodGet, fmt.Sprintf("/api/expenses/%d", id), alice, nil)
	assert.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *RouterTestSuite) TestExpenseListFilters() {
	alice := s.register("alice")

	for _, e := range []gin.H{
		{"description": "a", "amount": 5, "category": "food", "date": "2026-03-01"},
		{"description": "b", "amount": 50, "category": "travel", "date": "2026-03-02"},
		{"description": "c", "amount": 15, "category": "food", "date": "2026-03-03"},
	} {
		w := s.do(http.MethodPost, "/api/expenses", alice, e)
		require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())
	}

	var list []struct {
		Description string  `json:"description"`
		Amount      float64 `json:"amount"`
	}

	w := s.do(http.MethodGet, "/api/expenses?category=Food", alice, nil)
	require.Equal(s.T(), http.StatusOK, w.Code)
	s.decode(w, &list)
	require.Len(s.T(), list, 2)
	assert.Equal(s.T(), "c", list[0].Description, "newest first")

	w = s.do(http.MethodGet, "/api/expenses?sort=amount-desc&limit=1", alice, nil)
	require.Equal(s.T(), http.StatusOK, w.Code)
	s.decode(w, &list)
	require.Len(s.T(), list, 1)
	assert.Equal(s.T(), 50.0, list[0].Amount)

	w = s.do(http.MethodGet, "/api/expenses?from=2026-03-02&to=2026-03-02", alice, nil)
	require.Equal(s.T(), http.StatusOK, w.Code)
	s.decode(w, &list)
	require.Len(s.T(), list, 1)
	assert.Equal(s.T(), "b", list[0].Description)

	w = s.do(http.MethodGet, "/api/expenses?limit=1000", alice, nil)
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *RouterTestSuite) TestStatsAndTrend() {
	alice := s.register("alice")
	bob := s.register("bob")

	s.addExpense(alice, 100, "Food")
	s.addExpense(alice, 50, "food")
	s.addExpense(alice, 30, "Travel")
	s.addExpense(bob, 999, "Food")

	w := s.do(http.MethodGet, "/api/expenses/stats", alice, nil)
	require.Equal(s.T(), http.StatusOK, w.Code)
	assert.JSONEq(s.T(), `{"byCategory": {"Food": 150, "Travel": 30}, "total": 180}`, w.Body.String())

	w = s.do(http.MethodGet, "/api/expenses/trend", alice, nil)
	require.Equal(s.T(), http.StatusOK, w.Code)

	var trend []struct {
		Date  string  `json:"date"`
		Total float64 `json:"total"`
	}
	s.decode(w, &trend)
	require.Len(s.T(), trend, 1)
	assert.Equal(s.T(), time.Now().UTC().Format("2006-01-02"), trend[0].Date)
	assert.Equal(s.T(), 180.0, trend[0].Total)

	w = s.do(http.MethodGet, "/api/expenses/trend?days=7&fill=zero", alice, nil)
	require.Equal(s.T(), http.StatusOK, w.Code)
	s.decode(w, &trend)
	assert.Len(s.T(), trend, 7)

	w = s.do(http.MethodGet, "/api/expenses/trend?days=0", alice, nil)
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/expenses/trend?fill=maybe", alice, nil)
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *RouterTestSuite) TestCategories() {
	alice := s.register("alice")
	bob := s.register("bob")

	w := s.do(http.MethodGet, "/api/categories/defaults", "", nil)
	require.Equal(s.T(), http.StatusOK, w.Code)
	assert.Contains(s.T(), w.Body.String(), `"Subscription"`)

	w = s.do(http.MethodPost, "/api/categories", alice, gin.H{"name": "  pet   care ", "color": "#abc"})
	require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(s.T(), w.Body.String(), `"name":"Pet Care"`)

	w = s.do(http.MethodPost, "/api/categories", alice, gin.H{"name": "PET CARE"})
	assert.Equal(s.T(), http.StatusConflict, w.Code)

	w = s.do(http.MethodPost, "/api/categories", alice, gin.H{"name": "food"})
	assert.Equal(s.T(), http.StatusConflict, w.Code)

	w = s.do(http.MethodPost, "/api/categories", alice, gin.H{"name": "   "})
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/categories", alice, gin.H{"name": "Gym", "color": "red"})
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)

	var entries []cat.Entry

	w = s.do(http.MethodGet, "/api/categories", alice, nil)
	require.Equal(s.T(), http.StatusOK, w.Code)
	s.decode(w, &entries)
	require.Len(s.T(), entries, len(cat.Defaults)+1)
	for i, d := range cat.Defaults {
		assert.Equal(s.T(), d, entries[i].Name)
	}
	assert.Equal(s.T(), "Pet Care", entries[len(entries)-1].Name)
	assert.True(s.T(), entries[len(entries)-1].Custom)

	w = s.do(http.MethodGet, "/api/categories", bob, nil)
	require.Equal(s.T(), http.StatusOK, w.Code)
	s.decode(w, &entries)
	assert.Len(s.T(), entries, len(cat.Defaults), "custom categories are per user")

	w = s.do(http.MethodDelete, "/api/categories/Food", alice, nil)
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)

	w = s.do(http.MethodDelete, "/api/categories/Pet%20Care", bob, nil)
	assert.Equal(s.T(), http.StatusNotFound, w.Code)

	w = s.do(http.MethodDelete, "/api/categories/pet%20care", alice, nil)
	assert.Equal(s.T(), http.StatusNoContent, w.Code)
}

func (s *RouterTestSuite) TestBudget() {
	alice := s.register("alice")
	bob := s.register("bob")

	w := s.do(http.MethodGet, "/api/budget", alice, nil)
	require.Equal(s.T(), http.StatusOK, w.Code)
	assert.JSONEq(s.T(), `{"budget": 0}`, w.Body.String())

	w = s.do(http.MethodPut, "/api/budget", alice, gin.H{"budget": 1500})
	require.Equal(s.T(), http.StatusOK, w.Code)

	w = s.do(http.MethodPut, "/api/budget", alice, gin.H{"budget": -5})
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPut, "/api/budget", alice, gin.H{})
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/budget", alice, nil)
	assert.JSONEq(s.T(), `{"budget": 1500}`, w.Body.String())

	w = s.do(http.MethodGet, "/api/budget", bob, nil)
	assert.JSONEq(s.T(), `{"budget": 0}`, w.Body.String())
}

func (s *RouterTestSuite) TestPredict() {
	alice := s.register("alice")

	for i := range 4 {
		s.addExpense(alice, float64(10+i), "Food")
	}

	w := s.do(http.MethodGet, "/api/ai/predict", alice, nil)
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	assert.Zero(s.T(), s.model.calls, "short history must not reach the model")

	s.addExpense(alice, 99, "Travel")

	s.model.reply = "```json\n" + `{"predictedTotal": 420, "topCategories": [{"category": "Food", "amount": 300}], "insights": ["Cook more"], "confidence": 60}` + "\n```"

	w = s.do(http.MethodGet, "/api/ai/predict", alice, nil)
	require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())
	assert.Equal(s.T(), 1, s.model.calls)
	assert.Contains(s.T(), w.Body.String(), `"predictedTotal":420`)

	s.model.reply = "I can't do that"
	w = s.do(http.MethodGet, "/api/ai/predict", alice, nil)
	assert.Equal(s.T(), http.StatusBadGateway, w.Code)

	s.model.err = errors.New("quota exceeded")
	w = s.do(http.MethodGet, "/api/ai/predict", alice, nil)
	assert.Equal(s.T(), http.StatusBadGateway, w.Code)
	assert.Contains(s.T(), w.Body.String(), "quota exceeded")
}

func (s *RouterTestSuite) upload(token string, files map[string][]byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for name, data := range files {
		fw, err := mw.CreateFormFile("receipts", name)
		require.NoError(s.T(), err)
		_, err = fw.Write(data)
		require.NoError(s.T(), err)
	}
	require.NoError(s.T(), mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/ocr/scan", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RouterTestSuite) TestScan() {
	alice := s.register("alice")
	s.model.reply = `{"amount": 12.3, "date": "2026-10-01", "merchant": "Cafe", "category": "food"}`

	w := s.upload(alice, map[string][]byte{"a.png": pngPixel, "b.png": pngPixel})
	require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())
	assert.Equal(s.T(), 2, s.model.calls)

	var res struct {
		Results []ai.Receipt `json:"results"`
	}
	s.decode(w, &res)
	require.Len(s.T(), res.Results, 2)
	require.NotNil(s.T(), res.Results[0].Category)
	assert.Equal(s.T(), "Food", *res.Results[0].Category)
	assert.Equal(s.T(), "Cafe", res.Results[0].Merchant)

	w = s.upload(alice, map[string][]byte{})
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)

	w = s.upload(alice, map[string][]byte{"a.png": pngPixel, "b.png": pngPixel, "c.png": pngPixel})
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)

	w = s.upload(alice, map[string][]byte{"notes.txt": []byte("definitely not an image")})
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)

	s.model.reply = "not json"
	w = s.upload(alice, map[string][]byte{"a.png": pngPixel})
	assert.Equal(s.T(), http.StatusBadGateway, w.Code)

	w = s.upload("", map[string][]byte{"a.png": pngPixel})
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
