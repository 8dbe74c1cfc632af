package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/jodijonatan/cashnote/internal/analytics"
	"github.com/jodijonatan/cashnote/internal/middleware"
	"github.com/jodijonatan/cashnote/internal/models"
	"github.com/jodijonatan/cashnote/internal/oauth"
	"github.com/jodijonatan/cashnote/internal/pagination"
	"github.com/jodijonatan/cashnote/internal/services"
	"github.com/jodijonatan/cashnote/internal/validator"
)

const (
	testUserID = "0190a6e2-6f3c-7c4e-9b5e-1f2a3b4c5d6e"
	testItemID = "0190a6e2-7000-7abc-8def-0123456789ab"
)

// --- mock services ---

type mockUserService struct {
	createUserFn             func(name, email, password string) (*models.User, error)
	getUserByEmailFn         func(email string) (*models.User, error)
	getUserByIDFn            func(id string) (*models.User, error)
	attemptLoginFn           func(email, password string) (*models.User, error)
	findOrCreateGoogleUserFn func(email, name string) (*models.User, error)
}

func (m *mockUserService) CreateUser(name, email, password string) (*models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(name, email, password)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByEmail(email string) (*models.User, error) {
	if m.getUserByEmailFn != nil {
		return m.getUserByEmailFn(email)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByID(id string) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(id)
	}
	return &models.User{}, nil
}

func (m *mockUserService) VerifyPassword(_ *models.User, _ string) bool { return true }

func (m *mockUserService) AttemptLogin(email, password string) (*models.User, error) {
	if m.attemptLoginFn != nil {
		return m.attemptLoginFn(email, password)
	}
	return &models.User{}, nil
}

func (m *mockUserService) FindOrCreateGoogleUser(email, name string) (*models.User, error) {
	if m.findOrCreateGoogleUserFn != nil {
		return m.findOrCreateGoogleUserFn(email, name)
	}
	return &models.User{}, nil
}

var _ services.UserServicer = (*mockUserService)(nil)

type mockTransactionService struct {
	createTransactionFn    func(userID string, in services.TransactionInput) (*models.Transaction, error)
	getUserTransactionsFn  func(userID string, filter services.TransactionFilter, page *pagination.PageRequest) ([]models.Transaction, int64, error)
	getTransactionByIDFn   func(userID, transactionID string) (*models.Transaction, error)
	updateTransactionFn    func(userID, transactionID string, in services.TransactionInput) (*models.Transaction, error)
	deleteTransactionFn    func(userID, transactionID string) error
	getSummaryFn           func(userID string, window analytics.Window) (*analytics.PeriodSummary, error)
	getChartFn             func(userID string, window analytics.Window) ([]analytics.ChartPoint, error)
	getCategoryBreakdownFn func(userID string, days int) (*analytics.Breakdown, error)
}

func (m *mockTransactionService) CreateTransaction(userID string, in services.TransactionInput) (*models.Transaction, error) {
	if m.createTransactionFn != nil {
		return m.createTransactionFn(userID, in)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) GetUserTransactions(userID string, filter services.TransactionFilter, page *pagination.PageRequest) ([]models.Transaction, int64, error) {
	if m.getUserTransactionsFn != nil {
		return m.getUserTransactionsFn(userID, filter, page)
	}
	return []models.Transaction{}, 0, nil
}

func (m *mockTransactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	if m.getTransactionByIDFn != nil {
		return m.getTransactionByIDFn(userID, transactionID)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) UpdateTransaction(userID, transactionID string, in services.TransactionInput) (*models.Transaction, error) {
	if m.updateTransactionFn != nil {
		return m.updateTransactionFn(userID, transactionID, in)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) DeleteTransaction(userID, transactionID string) error {
	if m.deleteTransactionFn != nil {
		return m.deleteTransactionFn(userID, transactionID)
	}
	return nil
}

func (m *mockTransactionService) GetSummary(userID string, window analytics.Window) (*analytics.PeriodSummary, error) {
	if m.getSummaryFn != nil {
		return m.getSummaryFn(userID, window)
	}
	return &analytics.PeriodSummary{}, nil
}

func (m *mockTransactionService) GetChart(userID string, window analytics.Window) ([]analytics.ChartPoint, error) {
	if m.getChartFn != nil {
		return m.getChartFn(userID, window)
	}
	return []analytics.ChartPoint{}, nil
}

func (m *mockTransactionService) GetCategoryBreakdown(userID string, days int) (*analytics.Breakdown, error) {
	if m.getCategoryBreakdownFn != nil {
		return m.getCategoryBreakdownFn(userID, days)
	}
	return &analytics.Breakdown{}, nil
}

var _ services.TransactionServicer = (*mockTransactionService)(nil)

type mockTargetService struct {
	createTargetFn   func(userID string, in services.TargetInput) (*services.TargetView, error)
	getUserTargetsFn func(userID string) ([]services.TargetView, error)
	getTargetByIDFn  func(userID, targetID string) (*services.TargetView, error)
	updateTargetFn   func(userID, targetID string, upd services.TargetUpdate) (*services.TargetView, error)
	addProgressFn    func(userID, targetID string, amount decimal.Decimal) (*services.TargetView, error)
	deleteTargetFn   func(userID, targetID string) error
	getSummaryFn     func(userID string) (*analytics.TargetSummary, error)
}

func (m *mockTargetService) CreateTarget(userID string, in services.TargetInput) (*services.TargetView, error) {
	if m.createTargetFn != nil {
		return m.createTargetFn(userID, in)
	}
	return &services.TargetView{}, nil
}

func (m *mockTargetService) GetUserTargets(userID string) ([]services.TargetView, error) {
	if m.getUserTargetsFn != nil {
		return m.getUserTargetsFn(userID)
	}
	return []services.TargetView{}, nil
}

func (m *mockTargetService) GetTargetByID(userID, targetID string) (*services.TargetView, error) {
	if m.getTargetByIDFn != nil {
		return m.getTargetByIDFn(userID, targetID)
	}
	return &services.TargetView{}, nil
}

func (m *mockTargetService) UpdateTarget(userID, targetID string, upd services.TargetUpdate) (*services.TargetView, error) {
	if m.updateTargetFn != nil {
		return m.updateTargetFn(userID, targetID, upd)
	}
	return &services.TargetView{}, nil
}

func (m *mockTargetService) AddProgress(userID, targetID string, amount decimal.Decimal) (*services.TargetView, error) {
	if m.addProgressFn != nil {
		return m.addProgressFn(userID, targetID, amount)
	}
	return &services.TargetView{}, nil
}

func (m *mockTargetService) DeleteTarget(userID, targetID string) error {
	if m.deleteTargetFn != nil {
		return m.deleteTargetFn(userID, targetID)
	}
	return nil
}

func (m *mockTargetService) GetSummary(userID string) (*analytics.TargetSummary, error) {
	if m.getSummaryFn != nil {
		return m.getSummaryFn(userID)
	}
	return &analytics.TargetSummary{}, nil
}

var _ services.TargetServicer = (*mockTargetService)(nil)

type mockAdvisorService struct {
	adviseFn  func(ctx context.Context, userID, question string) (*services.AdviceResult, error)
	analyzeFn func(ctx context.Context, userID string) (*services.AnalysisResult, error)
}

func (m *mockAdvisorService) Advise(ctx context.Context, userID, question string) (*services.AdviceResult, error) {
	if m.adviseFn != nil {
		return m.adviseFn(ctx, userID, question)
	}
	return &services.AdviceResult{}, nil
}

func (m *mockAdvisorService) Analyze(ctx context.Context, userID string) (*services.AnalysisResult, error) {
	if m.analyzeFn != nil {
		return m.analyzeFn(ctx, userID)
	}
	return &services.AnalysisResult{}, nil
}

var _ services.AdvisorServicer = (*mockAdvisorService)(nil)

type auditEntry struct {
	userID, action, resourceType, resourceID string
}

type mockAuditService struct {
	entries []auditEntry
}

func (m *mockAuditService) Log(userID, action, resourceType, resourceID, _ string, _ map[string]interface{}) {
	m.entries = append(m.entries, auditEntry{userID, action, resourceType, resourceID})
}

type mockGoogle struct {
	authURL    string
	authErr    error
	validState bool
	profile    *oauth.GoogleUser
	err        error
}

func (m *mockGoogle) AuthURL() (string, error) { return m.authURL, m.authErr }
func (m *mockGoogle) ValidState(_ string) bool { return m.validState }
func (m *mockGoogle) Exchange(_ context.Context, _ string) (*oauth.GoogleUser, error) {
	return m.profile, m.err
}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func testIssuer() *middleware.TokenIssuer {
	return middleware.NewTokenIssuer("test-secret", time.Hour)
}

func injectUserID(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	if _, ok := result["error"].(string); !ok {
		t.Fatalf("expected error message in response, got: %v", result)
	}
	if result["code"] != code {
		t.Errorf("expected error code %q, got %q", code, result["code"])
	}
}
