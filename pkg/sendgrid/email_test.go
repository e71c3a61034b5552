package sendgrid_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/pawpair-storefront/internal/models"
	sendgrid_client "github.com/aaravmahajanofficial/pawpair-storefront/pkg/sendgrid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	apiKey    = "SG.test-api-key"
	fromEmail = "orders@pawpair.shop"
	fromName  = "PawPair"
)

type sendgridV3Payload struct {
	Personalizations []struct {
		To      []map[string]string `json:"to"`
		Cc      []map[string]string `json:"cc,omitempty"`
		Bcc     []map[string]string `json:"bcc,omitempty"`
		Subject string              `json:"subject"`
	} `json:"personalizations"`
	From    map[string]string `json:"from"`
	Content []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"content"`
}

// startServer records the last payload and answers with status.
func startServer(t *testing.T, status int) (*httptest.Server, *sendgridV3Payload, *http.Header) {
	t.Helper()

	payload := &sendgridV3Payload{}
	header := &http.Header{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, payload))
		*header = r.Header.Clone()

		w.WriteHeader(status)
	}))
	t.Cleanup(server.Close)

	return server, payload, header
}

func TestNewEmailService(t *testing.T) {
	assert.NotNil(t, sendgrid_client.NewEmailService(apiKey, fromEmail, fromName))
}

func TestEmailService_Send(t *testing.T) {
	t.Run("Success - Order Confirmation", func(t *testing.T) {
		// Arrange
		server, payload, header := startServer(t, http.StatusAccepted)
		svc := sendgrid_client.NewEmailServiceWithBaseURL(apiKey, fromEmail, fromName, server.URL)

		// Act
		err := svc.Send(t.Context(), &models.EmailNotificationRequest{
			To:          "owner@example.com",
			Subject:     "Your PawPair order",
			Content:     "Thanks for your order",
			HTMLContent: "<p>Thanks for your order</p>",
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Bearer "+apiKey, header.Get("Authorization"))

		require.Len(t, payload.Personalizations, 1)
		pers := payload.Personalizations[0]
		require.Len(t, pers.To, 1)
		assert.Equal(t, "owner@example.com", pers.To[0]["email"])
		assert.Empty(t, pers.Cc)
		assert.Equal(t, "Your PawPair order", pers.Subject)
		assert.Equal(t, fromEmail, payload.From["email"])
		assert.Equal(t, fromName, payload.From["name"])

		require.Len(t, payload.Content, 2)
		assert.Equal(t, "text/plain", payload.Content[0].Type)
		assert.Equal(t, "text/html", payload.Content[1].Type)
	})

	t.Run("Success - CC, BCC and text only", func(t *testing.T) {
		server, payload, _ := startServer(t, http.StatusAccepted)
		svc := sendgrid_client.NewEmailServiceWithBaseURL(apiKey, fromEmail, fromName, server.URL)

		err := svc.Send(t.Context(), &models.EmailNotificationRequest{
			To:      "owner@example.com",
			CC:      []string{"cc@example.com"},
			BCC:     []string{"audit@pawpair.shop"},
			Subject: "Receipt",
			Content: "Plain only",
		})

		require.NoError(t, err)
		pers := payload.Personalizations[0]
		require.Len(t, pers.Cc, 1)
		assert.Equal(t, "cc@example.com", pers.Cc[0]["email"])
		require.Len(t, pers.Bcc, 1)
		assert.Equal(t, "audit@pawpair.shop", pers.Bcc[0]["email"])
		require.Len(t, payload.Content, 1)
		assert.Equal(t, "Plain only", payload.Content[0].Value)
	})

	for _, status := range []int{http.StatusBadRequest, http.StatusInternalServerError} {
		t.Run("Failure - API status "+http.StatusText(status), func(t *testing.T) {
			server, _, _ := startServer(t, status)
			svc := sendgrid_client.NewEmailServiceWithBaseURL(apiKey, fromEmail, fromName, server.URL)

			err := svc.Send(t.Context(), &models.EmailNotificationRequest{To: "owner@example.com", Subject: "x", Content: "x"})

			require.Error(t, err)
			assert.Contains(t, err.Error(), "failed to send email, status code:")
		})
	}

	t.Run("Failure - Network Error", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		svc := sendgrid_client.NewEmailServiceWithBaseURL(apiKey, fromEmail, fromName, server.URL)
		server.Close()

		err := svc.Send(t.Context(), &models.EmailNotificationRequest{To: "owner@example.com", Subject: "x", Content: "x"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to send email")
	})
}
