package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

// ErrNotConfigured is returned when the gateway credentials are missing.
// The conversation continues in degraded mode: the reply is simply not
// delivered.
var ErrNotConfigured = errors.New("zapi not configured")

// Sender delivers a text message to a phone number through the
// messaging gateway.
type Sender interface {
	SendText(phone, message string) error
}

// ZAPIService sends WhatsApp messages through the Z-API send-text
// endpoint.
type ZAPIService struct {
	sendURL     string
	clientToken string
	httpClient  *http.Client
}

// NewZAPIService builds the sender from environment configuration.
// Missing credentials are not fatal here; they surface as
// ErrNotConfigured on the first send.
func NewZAPIService() *ZAPIService {
	instance := strings.TrimSpace(os.Getenv("ZAPI_INSTANCE"))
	token := strings.TrimSpace(os.Getenv("ZAPI_TOKEN"))
	clientToken := strings.TrimSpace(os.Getenv("ZAPI_CLIENT_TOKEN"))
	if clientToken == "" {
		clientToken = token
	}

	sendURL := strings.TrimSpace(os.Getenv("ZAPI_BASE"))
	if sendURL != "" {
		sendURL = strings.TrimRight(sendURL, "/")
	} else if instance != "" && token != "" {
		sendURL = fmt.Sprintf("https://api.z-api.io/instances/%s/token/%s/send-text", instance, token)
	}

	return &ZAPIService{
		sendURL:     sendURL,
		clientToken: clientToken,
		// Bounds worst-case latency from the gateway; there is no retry.
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
}

// Configured reports whether the gateway credentials are present.
func (z *ZAPIService) Configured() bool {
	return z.sendURL != "" && z.clientToken != ""
}

// SendText posts one message to the gateway. Failures are logged and
// returned; callers treat them as best-effort.
func (z *ZAPIService) SendText(phone, message string) error {
	if !z.Configured() {
		log.Println("❌ Z-API not configured (ZAPI_INSTANCE/ZAPI_TOKEN)")
		return ErrNotConfigured
	}

	payload, err := json.Marshal(map[string]string{
		"phone":   phone,
		"message": message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, z.sendURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Client-Token", z.clientToken)

	resp, err := z.httpClient.Do(req)
	if err != nil {
		log.Printf("❌ Z-API request failed: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Printf("❌ Z-API error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		return fmt.Errorf("zapi status %d", resp.StatusCode)
	}

	log.Printf("✅ Message sent to %s", phone)
	return nil
}
