package handlers

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	svix "github.com/svix/svix-webhooks/go"

	"habitTrackerAPI/internal/user"
	"habitTrackerAPI/services"
)

type fakeUsers struct {
	created []*user.CreateUserRequest
	deleted []string
	delErr  error
}

func (f *fakeUsers) CreateUser(_ context.Context, req *user.CreateUserRequest) (*user.User, error) {
	f.created = append(f.created, req)
	return &user.User{ClerkID: req.ClerkID, Name: req.Name}, nil
}

func (f *fakeUsers) DeleteUserByClerkID(_ context.Context, clerkID string) error {
	f.deleted = append(f.deleted, clerkID)
	return f.delErr
}

var testSecret = "whsec_" + base64.StdEncoding.EncodeToString([]byte("super-secret-signing-key"))

const userCreated = `{
	"type": "user.created",
	"object": "event",
	"data": {
		"id": "user_123",
		"first_name": "Ana",
		"last_name": "López",
		"primary_email_address_id": "idn_2",
		"email_addresses": [
			{"id": "idn_1", "email_address": "old@example.com"},
			{"id": "idn_2", "email_address": "ana@example.com"}
		],
		"public_metadata": {"timezone": "America/Mexico_City", "locale": "es-MX"}
	}
}`

// sign returns the "v1,<base64>" entry Clerk would send for body at at.
func sign(t *testing.T, body string, at time.Time) string {
	t.Helper()
	signer, err := svix.NewWebhook(testSecret)
	require.NoError(t, err)
	sig, err := signer.Sign("msg_1", at, []byte(body))
	require.NoError(t, err)
	return sig
}

func signedRequest(t *testing.T, body string, at time.Time, sig string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/clerk", strings.NewReader(body))
	req.Header.Set("svix-id", "msg_1")
	req.Header.Set("svix-timestamp", strconv.FormatInt(at.Unix(), 10))
	if sig == "" {
		sig = sign(t, body, at)
	}
	req.Header.Set("svix-signature", sig)
	return req
}

func newTestWebhook(t *testing.T, users UserSync) *WebhookHandler {
	t.Helper()
	h, err := NewWebhookHandler(users, testSecret)
	require.NoError(t, err)
	return h
}

func TestWebhook_UserCreated(t *testing.T) {
	users := &fakeUsers{}
	h := newTestWebhook(t, users)

	rr := httptest.NewRecorder()
	h.HandleClerkWebhook(rr, signedRequest(t, userCreated, time.Now(), ""))

	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, users.created, 1)
	got := users.created[0]
	assert.Equal(t, "user_123", got.ClerkID)
	assert.Equal(t, "Ana López", got.Name)
	assert.Equal(t, "ana@example.com", got.Email)
	assert.Equal(t, "America/Mexico_City", got.Timezone)
	assert.Equal(t, "es-MX", got.Locale)
}

func TestWebhook_AcceptsAnyRotatedSignature(t *testing.T) {
	users := &fakeUsers{}
	h := newTestWebhook(t, users)

	now := time.Now()
	rr := httptest.NewRecorder()
	h.HandleClerkWebhook(rr, signedRequest(t, userCreated, now, "v1,bm9wZQ== "+sign(t, userCreated, now)))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, users.created, 1)
}

func TestWebhook_RejectsBadSignatures(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		req  func(t *testing.T) *http.Request
	}{
		{"wrong signature", func(t *testing.T) *http.Request { return signedRequest(t, userCreated, now, "v1,bm9wZQ==") }},
		{"tampered body", func(t *testing.T) *http.Request {
			req := signedRequest(t, userCreated, now, "")
			req.Body = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Replace(userCreated, "Ana", "Eve", 1))).Body
			return req
		}},
		{"stale timestamp", func(t *testing.T) *http.Request { return signedRequest(t, userCreated, now.Add(-time.Hour), "") }},
		{"future timestamp", func(t *testing.T) *http.Request { return signedRequest(t, userCreated, now.Add(time.Hour), "") }},
		{"missing headers", func(t *testing.T) *http.Request {
			return httptest.NewRequest(http.MethodPost, "/webhooks/clerk", strings.NewReader(userCreated))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &fakeUsers{}
			h := newTestWebhook(t, users)
			rr := httptest.NewRecorder()
			h.HandleClerkWebhook(rr, tt.req(t))
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Empty(t, users.created)
		})
	}
}

func TestWebhook_UserDeletedIgnoresUnknownUser(t *testing.T) {
	users := &fakeUsers{delErr: services.ErrNotFound}
	h := newTestWebhook(t, users)

	body := `{"type":"user.deleted","data":{"id":"user_404","deleted":true}}`
	rr := httptest.NewRecorder()
	h.HandleClerkWebhook(rr, signedRequest(t, body, time.Now(), ""))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"user_404"}, users.deleted)
}

func TestWebhook_NoSecretSkipsVerification(t *testing.T) {
	users := &fakeUsers{}
	h, err := NewWebhookHandler(users, "")
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	h.HandleClerkWebhook(rr, httptest.NewRequest(http.MethodPost, "/webhooks/clerk", strings.NewReader(userCreated)))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, users.created, 1)
}

func TestNewWebhookHandler_BadSecret(t *testing.T) {
	_, err := NewWebhookHandler(&fakeUsers{}, "whsec_***not base64***")
	assert.Error(t, err)
}
