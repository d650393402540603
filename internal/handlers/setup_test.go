package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/company-tracker-api/internal/database"
	"github.com/yukikurage/company-tracker-api/internal/models"
	"github.com/yukikurage/company-tracker-api/internal/repository"
	"github.com/yukikurage/company-tracker-api/internal/services"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testWebhookSecret = "webhook-secret"
	testFrontendURL   = "https://app.example.com"
)

type sentMessage struct {
	ChatID int64
	Text   string
}

// recordingNotifier captures outbound messages and optionally fails them.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentMessage
	err  error
}

func (n *recordingNotifier) SendMessage(_ context.Context, chatID int64, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentMessage{ChatID: chatID, Text: text})
	return n.err
}

func (n *recordingNotifier) messages() []sentMessage {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sentMessage(nil), n.sent...)
}

type testEnv struct {
	db       *gorm.DB
	router   *gin.Engine
	tokens   *services.TokenService
	notifier *recordingNotifier
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	log := zap.NewNop()
	notifier := &recordingNotifier{}

	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	tokens := services.NewTokenService("test-secret")
	companyService := services.NewCompanyService(companyRepo)
	authService := services.NewAuthService(userRepo, companyRepo, tokens)

	router := NewRouter(Dependencies{
		Tokens:        tokens,
		Auth:          authService,
		Companies:     companyService,
		Employees:     services.NewEmployeeService(repository.NewEmployeeRepository(db)),
		OrgStructure:  services.NewOrgStructureService(repository.NewOrgNodeRepository(db)),
		Processes:     services.NewProcessService(repository.NewProcessRepository(db), companyService),
		Instructions:  services.NewInstructionService(repository.NewInstructionRepository(db), companyService),
		Tasks:         services.NewTaskService(repository.NewTaskRepository(db)),
		Results:       services.NewResultService(repository.NewResultRepository(db)),
		Telegram:      services.NewTelegramService(repository.NewTelegramRepository(db), companyService, authService, notifier, testFrontendURL, log),
		WebhookSecret: testWebhookSecret,
		Log:           log,
	})

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return &testEnv{
		db:       db,
		router:   router,
		tokens:   tokens,
		notifier: notifier,
	}
}

func (e *testEnv) createUser(t *testing.T, firstName string) *models.User {
	t.Helper()
	user := &models.User{FirstName: firstName, LastName: "Test"}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

// createCompany creates a company owned by owner with the owner membership.
func (e *testEnv) createCompany(t *testing.T, owner *models.User, name string) *models.Company {
	t.Helper()
	company := &models.Company{Name: name, OwnerID: owner.ID}
	require.NoError(t, repository.NewCompanyRepository(e.db).CreateWithOwner(company))
	return company
}

func (e *testEnv) sessionToken(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := e.tokens.IssueSession(user.ID)
	require.NoError(t, err)
	return token
}

func (e *testEnv) temporaryToken(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := e.tokens.IssueTemporary(user.ID)
	require.NoError(t, err)
	return token
}

// do sends a request. body may be nil, a raw string, or a value to marshal.
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var payload []byte
	switch b := body.(type) {
	case nil:
	case string:
		payload = []byte(b)
	default:
		var err error
		payload, err = json.Marshal(b)
		require.NoError(t, err)
	}

	req := newRequest(t, method, path, payload)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return serve(e, req)
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst), w.Body.String())
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	decodeJSON(t, w, &body)
	return body.Code
}

func newRequest(t *testing.T, method, path string, payload []byte) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func serve(e *testEnv, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}
