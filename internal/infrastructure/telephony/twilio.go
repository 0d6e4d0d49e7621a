// Package telephony places escalation phone calls through a Twilio-compatible REST API.
package telephony

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nxtrohith/Micro-Task-sub000/internal/domain/escalation"
	"github.com/nxtrohith/Micro-Task-sub000/internal/domain/issue"
	sharedConfig "github.com/nxtrohith/Micro-Task-sub000/internal/shared/config"
	"github.com/nxtrohith/Micro-Task-sub000/internal/shared/logger"
)

const (
	defaultBaseURL = "https://api.twilio.com"
	defaultTimeout = 15 * time.Second
	defaultMessage = "Attention. A civic issue has been waiting for admin review."

	// maxErrorBody bounds how much of a failed response is kept as the failure reason.
	maxErrorBody = 4096
)

// TwilioNotifier creates one outbound call per Trigger.
type TwilioNotifier struct {
	config     sharedConfig.TelephonyConfig
	httpClient *http.Client
	baseURL    string
	logger     logger.Interface
	now        func() time.Time
}

// NewTwilioNotifier creates a notifier for the configured account.
func NewTwilioNotifier(config sharedConfig.TelephonyConfig, log logger.Interface) *TwilioNotifier {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &TwilioNotifier{
		config: config,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		logger:  log,
		now:     time.Now,
	}
}

type callResponse struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Trigger places the call. Non-2xx responses are a Failed result; network errors are returned.
func (n *TwilioNotifier) Trigger(ctx context.Context, i *issue.Issue) (escalation.CallResult, error) {
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Calls.json", n.baseURL, url.PathEscape(n.config.AccountSID))

	form := url.Values{}
	form.Set("To", n.config.ToNumber)
	form.Set("From", n.config.FromNumber)
	form.Set("Twiml", n.buildTwiml(i))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return escalation.CallResult{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(n.config.AccountSID, n.config.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return escalation.CallResult{}, fmt.Errorf("failed to send call request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return escalation.CallResult{}, fmt.Errorf("failed to read call response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reason := fmt.Sprintf("provider returned status %d", resp.StatusCode)
		var apiErr errorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			reason = fmt.Sprintf("provider error %d: %s", apiErr.Code, apiErr.Message)
		}
		n.logger.Warnw("call request rejected",
			"issue_id", i.SID(),
			"status_code", resp.StatusCode,
			"reason", reason)
		return escalation.Failed(reason), nil
	}

	var call callResponse
	if err := json.Unmarshal(body, &call); err != nil {
		return escalation.CallResult{}, fmt.Errorf("failed to decode call response: %w", err)
	}
	if call.SID == "" {
		return escalation.Failed("provider response missing call sid"), nil
	}

	n.logger.Infow("escalation call created",
		"issue_id", i.SID(),
		"call_sid", call.SID,
		"call_status", call.Status)
	return escalation.Sent(call.SID, n.now().UTC()), nil
}

// buildTwiml renders the spoken message. Issue text is XML-escaped.
func (n *TwilioNotifier) buildTwiml(i *issue.Issue) string {
	message := n.config.Message
	if message == "" {
		message = defaultMessage
	}
	spoken := fmt.Sprintf("%s Issue: %s. Severity: %s.", message, i.Title(), i.Severity())

	var buf bytes.Buffer
	buf.WriteString("<Response><Say>")
	_ = xml.EscapeText(&buf, []byte(spoken))
	buf.WriteString("</Say></Response>")
	return buf.String()
}
