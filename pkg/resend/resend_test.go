package resend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/network/standard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, endpoint string) *Client {
	t.Helper()

	hc, err := client.NewClient(
		client.WithDialer(standard.NewDialer()),
		client.WithDialTimeout(2*time.Second),
	)
	require.NoError(t, err)

	return &Client{
		endpoint: endpoint,
		apiKey:   "test-key",
		hc:       hc,
	}
}

func TestSend(t *testing.T) {
	var gotAuth, gotIdem string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotIdem = r.Header.Get("Idempotency-Key")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"re_123"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	err := c.Send(context.Background(), &Email{
		From:           "老人签到系统 <notify@example.com>",
		To:             []string{"guardian@example.com"},
		Subject:        "老人签到通知 - 2025-03-01",
		HTML:           "<p>ok</p>",
		IdempotencyKey: "42",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "42", gotIdem)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(gotBody, &payload))
	assert.Equal(t, []interface{}{"guardian@example.com"}, payload["to"])
	assert.Equal(t, "老人签到通知 - 2025-03-01", payload["subject"])
	assert.Contains(t, payload, "html")
	// 幂等键只走请求头
	assert.NotContains(t, payload, "IdempotencyKey")
}

func TestSendNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid to address"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	err := c.Send(context.Background(), &Email{To: []string{"bad"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
}
