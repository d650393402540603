package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/company-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/company-tracker-api/internal/errors"
	"github.com/yukikurage/company-tracker-api/internal/models"
	"github.com/yukikurage/company-tracker-api/internal/services"
)

func (e *testEnv) webhook(t *testing.T, secret, body string) int {
	t.Helper()
	req := newRequest(t, http.MethodPost, "/telegram/webhook", []byte(body))
	if secret != "" {
		req.Header.Set(constants.TelegramSecretHeader, secret)
	}
	w := serve(e, req)
	return w.Code
}

func privateMessage(telegramID int64, text string) string {
	return fmt.Sprintf(`{
		"update_id": 1,
		"message": {
			"message_id": 10,
			"from": {"id": %d, "is_bot": false, "first_name": "Ada", "last_name": "Lovelace", "username": "ada"},
			"chat": {"id": %d, "type": "private"},
			"text": %q
		}
	}`, telegramID, telegramID, text)
}

func groupMessage(chatID, telegramID int64, firstName string) string {
	return fmt.Sprintf(`{
		"update_id": 2,
		"message": {
			"message_id": 11,
			"from": {"id": %d, "is_bot": false, "first_name": %q},
			"chat": {"id": %d, "type": "supergroup", "title": "Team"},
			"text": "hello"
		}
	}`, telegramID, firstName, chatID)
}

func TestWebhook_SecretRequired(t *testing.T) {
	env := setupTestEnv(t)

	req := newRequest(t, http.MethodPost, "/telegram/webhook", []byte(privateMessage(42, "/start")))
	w := serve(env, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, apierrors.ErrCodeSecretMismatch, errorCode(t, w))

	req = newRequest(t, http.MethodPost, "/telegram/webhook", []byte(privateMessage(42, "/start")))
	req.Header.Set(constants.TelegramSecretHeader, "wrong")
	w = serve(env, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, apierrors.ErrCodeSecretMismatch, errorCode(t, w))

	assert.Empty(t, env.notifier.messages())
}

func TestWebhook_StartSendsLoginLink(t *testing.T) {
	env := setupTestEnv(t)

	for _, text := range []string{"/start", "/start auth", "/start@company_tracker_bot"} {
		assert.Equal(t, http.StatusOK, env.webhook(t, testWebhookSecret, privateMessage(42, text)), text)
	}

	sent := env.notifier.messages()
	require.Len(t, sent, 3)
	for _, msg := range sent {
		assert.Equal(t, int64(42), msg.ChatID)
		assert.Contains(t, msg.Text, "https://app.example.com/telegram-login?token=")
		assert.Contains(t, msg.Text, "Ada")
	}

	// The same account is reused across logins
	var users []models.User
	require.NoError(t, env.db.Where("telegram_user_id = ?", 42).Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, "Lovelace", users[0].LastName)

	// The link carries a temporary token for that user
	_, escaped, found := strings.Cut(sent[0].Text, "token=")
	require.True(t, found)
	raw, err := url.QueryUnescape(strings.TrimSpace(escaped))
	require.NoError(t, err)
	claims, err := env.tokens.Verify(raw, services.TokenTemporary)
	require.NoError(t, err)
	assert.Equal(t, users[0].ID, claims.UserID)
}

func TestWebhook_IgnoresOtherMessages(t *testing.T) {
	env := setupTestEnv(t)

	assert.Equal(t, http.StatusOK, env.webhook(t, testWebhookSecret, privateMessage(42, "hello")))
	assert.Equal(t, http.StatusOK, env.webhook(t, testWebhookSecret, privateMessage(42, "/help")))
	assert.Equal(t, http.StatusOK, env.webhook(t, testWebhookSecret, `{"update_id": 3}`))
	assert.Equal(t, http.StatusOK, env.webhook(t, testWebhookSecret, `{not json`))

	assert.Empty(t, env.notifier.messages())
	var count int64
	env.db.Model(&models.User{}).Count(&count)
	assert.Zero(t, count)
}

func TestWebhook_DeliveryFailureStillAcknowledged(t *testing.T) {
	env := setupTestEnv(t)
	env.notifier.err = errors.New("telegram unavailable")

	assert.Equal(t, http.StatusOK, env.webhook(t, testWebhookSecret, privateMessage(42, "/start")))
	assert.Len(t, env.notifier.messages(), 1)
}

func TestTelegramGroups_LinkAndRecordMembers(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.createUser(t, "Alice")
	acme := env.createCompany(t, alice, "Acme")
	globex := env.createCompany(t, alice, "Globex")
	token := env.sessionToken(t, alice)

	w := env.do(t, http.MethodPost, "/telegram/groups/link", token, map[string]interface{}{
		"chatId":    -1001,
		"companyId": acme.ID,
		"title":     "Acme team",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var group models.TelegramGroup
	decodeJSON(t, w, &group)
	assert.Equal(t, int64(-1001), group.ChatID)
	assert.Equal(t, acme.ID, group.CompanyID)

	// Relinking moves the chat instead of duplicating it
	w = env.do(t, http.MethodPost, "/telegram/groups/link", token, map[string]interface{}{
		"chatId":    -1001,
		"companyId": globex.ID,
		"title":     "Globex team",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var relinked models.TelegramGroup
	decodeJSON(t, w, &relinked)
	assert.Equal(t, group.ID, relinked.ID)
	assert.Equal(t, globex.ID, relinked.CompanyID)
	require.NotNil(t, relinked.Title)
	assert.Equal(t, "Globex team", *relinked.Title)

	w = env.do(t, http.MethodGet, "/telegram/groups", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var groups []models.TelegramGroup
	decodeJSON(t, w, &groups)
	require.Len(t, groups, 1)

	// Messages in the linked chat record their senders once
	assert.Equal(t, http.StatusOK, env.webhook(t, testWebhookSecret, groupMessage(-1001, 7, "Grace")))
	assert.Equal(t, http.StatusOK, env.webhook(t, testWebhookSecret, groupMessage(-1001, 7, "Grace")))
	assert.Equal(t, http.StatusOK, env.webhook(t, testWebhookSecret, groupMessage(-1001, 8, "Linus")))
	// Unlinked chats are ignored
	assert.Equal(t, http.StatusOK, env.webhook(t, testWebhookSecret, groupMessage(-2002, 9, "Ken")))

	w = env.do(t, http.MethodGet, fmt.Sprintf("/telegram/groups/%d/members", group.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var members []struct {
		UserID    uint64 `json:"userId"`
		FirstName string `json:"firstName"`
	}
	decodeJSON(t, w, &members)
	require.Len(t, members, 2)
	assert.Equal(t, "Grace", members[0].FirstName)
	assert.Equal(t, "Linus", members[1].FirstName)

	var kenCount int64
	env.db.Model(&models.User{}).Where("telegram_user_id = ?", 9).Count(&kenCount)
	assert.Zero(t, kenCount)
}

func TestTelegramGroups_Scoped(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.createUser(t, "Alice")
	bob := env.createUser(t, "Bob")
	initech := env.createCompany(t, bob, "Initech")

	w := env.do(t, http.MethodPost, "/telegram/groups/link", env.sessionToken(t, bob), map[string]interface{}{
		"chatId":    -3003,
		"companyId": initech.ID,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var group models.TelegramGroup
	decodeJSON(t, w, &group)

	token := env.sessionToken(t, alice)

	w = env.do(t, http.MethodPost, "/telegram/groups/link", token, map[string]interface{}{
		"chatId":    -3003,
		"companyId": initech.ID,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodGet, "/telegram/groups", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = env.do(t, http.MethodGet, fmt.Sprintf("/telegram/groups/%d/members", group.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apierrors.ErrCodeNotFound, errorCode(t, w))

	w = env.do(t, http.MethodPost, "/telegram/groups/link", token, map[string]interface{}{"companyId": initech.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apierrors.ErrCodeMissingField, errorCode(t, w))
}

func TestHealth(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestMetricsEndpoint(t *testing.T) {
	env := setupTestEnv(t)

	env.do(t, http.MethodGet, "/health", "", nil)
	w := env.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `company_tracker_http_requests_total{method="GET",route="/health",status="200"}`)
}
