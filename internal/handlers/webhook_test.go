// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"codeberg.org/oliverandrich/bpvoice/internal/i18n"
	"codeberg.org/oliverandrich/bpvoice/internal/testutil"
	"codeberg.org/oliverandrich/bpvoice/internal/webhook"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func webhookBody(t *testing.T, utterance string, tokens []string, userID string, newSession bool) string {
	t.Helper()
	payload := webhook.Request{
		Request: webhook.RequestBody{
			OriginalUtterance: utterance,
			NLU:               &webhook.NLU{Tokens: tokens},
		},
		Session: webhook.Session{
			SessionID: "session-1",
			UserID:    userID,
			New:       newSession,
		},
		Version: "1.0",
	}
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return string(raw)
}

func postWebhook(t *testing.T, body string) (*webhook.Response, int) {
	t.Helper()
	h, _, _, e := newFixture(t)
	path := fmt.Sprintf("/webhook?token=%s", testWebhookSecret)
	c, rec := testutil.NewEchoContext(e, http.MethodPost, path, strings.NewReader(body))

	err := h.Webhook(c)
	if err != nil {
		he := &echo.HTTPError{}
		require.ErrorAs(t, err, &he)
		return nil, he.Code
	}

	var resp webhook.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return &resp, rec.Code
}

func TestWebhook_Greeting(t *testing.T) {
	resp, code := postWebhook(t, webhookBody(t, "", nil, "voice-1", true))

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, i18n.T("Greeting"), resp.Response.Text)
	assert.False(t, resp.Response.EndSession)
	assert.Equal(t, "session-1", resp.Session.SessionID)
}

func TestWebhook_RecordsReading(t *testing.T) {
	body := webhookBody(t, "давление 120 на 80",
		[]string{"давление", "120", "на", "80"}, "voice-1", false)

	resp, code := postWebhook(t, body)

	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, resp.Response.Text, "120 на 80")
}

func TestWebhook_NormalizesHomoglyphs(t *testing.T) {
	// Latin а, е, о inside Cyrillic words, as ASR sometimes delivers.
	body := webhookBody(t, "дaвлeниe 120 нa 80", nil, "voice-1", false)

	resp, code := postWebhook(t, body)

	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, resp.Response.Text, "120 на 80")
}

func TestWebhook_Fallback(t *testing.T) {
	body := webhookBody(t, "какая сегодня погода", []string{"какая", "сегодня", "погода"}, "voice-1", false)

	resp, code := postWebhook(t, body)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, i18n.T("Fallback"), resp.Response.Text)
}

func TestWebhook_AnonymousUserStillAnswers(t *testing.T) {
	body := webhookBody(t, "давление 120 на 80", nil, "", false)

	resp, code := postWebhook(t, body)

	assert.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, resp.Response.Text)
}

func TestWebhook_WrongSecret(t *testing.T) {
	h, _, _, e := newFixture(t)
	body := webhookBody(t, "", nil, "voice-1", true)
	c, _ := testutil.NewEchoContext(e, http.MethodPost, "/webhook?token=wrong", strings.NewReader(body))

	err := h.Webhook(c)

	he := &echo.HTTPError{}
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusForbidden, he.Code)
}

func TestWebhook_MalformedBody(t *testing.T) {
	h, _, _, e := newFixture(t)
	path := fmt.Sprintf("/webhook?token=%s", testWebhookSecret)
	c, _ := testutil.NewEchoContext(e, http.MethodPost, path, strings.NewReader("{not json"))

	err := h.Webhook(c)

	he := &echo.HTTPError{}
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestWebhook_CommandFallbackWhenNoUtterance(t *testing.T) {
	payload := `{"request":{"command":"давление 130 на 85"},"session":{"session_id":"s","user_id":"voice-1"},"version":"1.0"}`

	resp, code := postWebhook(t, payload)

	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, resp.Response.Text, "130 на 85")
}
