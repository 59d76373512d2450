// File: services/notify/msg91.go
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/sripavantejb/GuideXpert-Backend/config"
	"github.com/sripavantejb/GuideXpert-Backend/utils"
)

const (
	msg91OTPURL  = "https://control.msg91.com/api/v5/otp"
	msg91FlowURL = "https://control.msg91.com/api/v5/flow/"

	gatewayTimeout = 15 * time.Second
)

// MSG91Gateway delivers SMS through the MSG91 REST API.
type MSG91Gateway struct {
	Client *http.Client
}

// NewMSG91Gateway constructs a gateway with the bounded default timeout.
func NewMSG91Gateway() *MSG91Gateway {
	return &MSG91Gateway{
		Client: &http.Client{Timeout: gatewayTimeout},
	}
}

func templateID(tpl Template) string {
	cfg := config.AppConfig
	switch tpl {
	case TemplateOTP:
		return cfg.MSG91OTPTemplateID
	case TemplateConfirmation:
		return cfg.MSG91ConfirmTemplateID
	case TemplateReminder4h:
		return cfg.MSG91ReminderTemplateID
	case TemplateMeetLink:
		return cfg.MSG91MeetLinkTemplateID
	case TemplateReminder30m:
		return cfg.MSG91Reminder30TemplateID
	}
	return ""
}

// withCountryCode prefixes the 10-digit national number with 91.
func withCountryCode(phone string) string {
	return "91" + utils.NormalizePhone(phone)
}

func (g *MSG91Gateway) Send(ctx context.Context, tpl Template, phone string, vars map[string]string) error {
	if tpl == TemplateOTP {
		return g.sendOTP(ctx, phone, vars["otp"])
	}
	return g.sendFlow(ctx, tpl, []string{phone}, vars)
}

func (g *MSG91Gateway) SendBulk(ctx context.Context, tpl Template, phones []string, vars map[string]string) error {
	return g.sendFlow(ctx, tpl, phones, vars)
}

// sendOTP uses MSG91's dedicated OTP endpoint.
func (g *MSG91Gateway) sendOTP(ctx context.Context, phone, otp string) error {
	cfg := config.AppConfig
	if cfg.MSG91AuthKey == "" || cfg.MSG91OTPTemplateID == "" {
		return fmt.Errorf("MSG91 not configured")
	}

	params := url.Values{}
	params.Set("mobile", withCountryCode(phone))
	params.Set("authkey", cfg.MSG91AuthKey)
	params.Set("otp_expiry", fmt.Sprintf("%d", cfg.OTPExpiryMinutes))
	params.Set("template_id", cfg.MSG91OTPTemplateID)
	params.Set("otp", otp)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, msg91OTPURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build otp request: %w", err)
	}
	err = g.do(req)
	g.logResult("otp send", phone, err)
	return err
}

// sendFlow uses MSG91's flow endpoint, which accepts multiple recipients per
// call with shared template variables.
func (g *MSG91Gateway) sendFlow(ctx context.Context, tpl Template, phones []string, vars map[string]string) error {
	cfg := config.AppConfig
	tplID := templateID(tpl)
	if cfg.MSG91AuthKey == "" || tplID == "" {
		return fmt.Errorf("MSG91 template %q not configured", tpl)
	}
	if len(phones) == 0 {
		return nil
	}

	recipients := make([]map[string]string, len(phones))
	for i, p := range phones {
		rec := map[string]string{"mobiles": withCountryCode(p)}
		for k, v := range vars {
			rec[k] = v
		}
		recipients[i] = rec
	}
	payload := map[string]interface{}{
		"template_id": tplID,
		"recipients":  recipients,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal flow payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, msg91FlowURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build flow request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("authkey", cfg.MSG91AuthKey)

	err = g.do(req)
	for _, p := range phones {
		g.logResult(string(tpl)+" send", p, err)
	}
	return err
}

// do executes the request and folds HTTP and API-level failures into one
// error. MSG91 reports errors both via status codes and a type field.
func (g *MSG91Gateway) do(req *http.Request) error {
	resp, err := g.Client.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return fmt.Errorf("read gateway response: %w", err)
	}

	var body struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(raw, &body)

	if resp.StatusCode >= 400 {
		if body.Message != "" {
			return fmt.Errorf("gateway returned %d: %s", resp.StatusCode, body.Message)
		}
		return fmt.Errorf("gateway returned %d", resp.StatusCode)
	}
	if body.Type == "error" {
		return fmt.Errorf("gateway error: %s", body.Message)
	}
	return nil
}

// logResult logs an outcome without sensitive data (no OTP, masked phone).
func (g *MSG91Gateway) logResult(op, phone string, err error) {
	logger := utils.GetLogger()
	if err != nil {
		logger.Warn("MSG91 "+op+" failed",
			zap.String("phone", utils.MaskPhone(phone)),
			zap.Error(err),
		)
		return
	}
	logger.Info("MSG91 "+op+" ok", zap.String("phone", utils.MaskPhone(phone)))
}
