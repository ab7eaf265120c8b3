package services

import (
  "bytes"
  "context"
  "encoding/json"
  "fmt"
  "io"
  "net/http"
  "os"
  "strings"
  "time"

  "github.com/matchwise/matchwise-backend/internal/logger"
  "github.com/matchwise/matchwise-backend/internal/types"
  "github.com/matchwise/matchwise-backend/internal/utils"
)

// EmailService sends transactional mail through the SendGrid v3 API. All
// sends are best-effort: callers log failures and move on.
type EmailService interface {
  SendWelcome(ctx context.Context, user *types.User) error
  SendExportNotice(ctx context.Context, user *types.User, percentageComplete int) error
}

type emailService struct {
  log        *logger.Logger
  baseURL    string
  apiKey     string
  fromEmail  string
  fromName   string
  httpClient *http.Client
}

func NewEmailService(log *logger.Logger) (EmailService, error) {
  apiKey := strings.TrimSpace(os.Getenv("SENDGRID_API_KEY"))
  if apiKey == "" {
    return nil, fmt.Errorf("missing SENDGRID_API_KEY")
  }
  baseURL := strings.TrimRight(utils.GetEnv("SENDGRID_BASE_URL", "https://api.sendgrid.com", log), "/")
  fromEmail := strings.TrimSpace(os.Getenv("SENDGRID_FROM_EMAIL"))
  if fromEmail == "" {
    return nil, fmt.Errorf("missing SENDGRID_FROM_EMAIL")
  }
  fromName := utils.GetEnv("SENDGRID_FROM_NAME", "Matchwise", log)
  timeoutSec := utils.GetEnvAsInt("SENDGRID_TIMEOUT_SECONDS", 30, log)

  return &emailService{
    log:        log.With("service", "EmailService"),
    baseURL:    baseURL,
    apiKey:     apiKey,
    fromEmail:  fromEmail,
    fromName:   fromName,
    httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
  }, nil
}

type emailAddress struct {
  Email string `json:"email"`
  Name  string `json:"name,omitempty"`
}

type mailContent struct {
  Type  string `json:"type"`
  Value string `json:"value"`
}

type personalization struct {
  To []emailAddress `json:"to"`
}

type mailSendRequest struct {
  Personalizations []personalization `json:"personalizations"`
  From             emailAddress      `json:"from"`
  Subject          string            `json:"subject"`
  Content          []mailContent     `json:"content"`
}

func (es *emailService) SendWelcome(ctx context.Context, user *types.User) error {
  if user == nil || user.Email == "" {
    return fmt.Errorf("No recipient for welcome email")
  }
  body := fmt.Sprintf(
    "Hi %s,\n\nWelcome to Matchwise. Work through each application section and your dashboard will track your progress toward a complete application.\n",
    user.FirstName,
  )
  return es.send(ctx, user, "Welcome to Matchwise", body)
}

func (es *emailService) SendExportNotice(ctx context.Context, user *types.User, percentageComplete int) error {
  if user == nil || user.Email == "" {
    return fmt.Errorf("No recipient for export notice")
  }
  body := fmt.Sprintf(
    "Hi %s,\n\nYour application packet was exported at %d%% completion. Keep a copy for your records.\n",
    user.FirstName, percentageComplete,
  )
  return es.send(ctx, user, "Your application packet was exported", body)
}

func (es *emailService) send(ctx context.Context, user *types.User, subject, text string) error {
  payload := mailSendRequest{
    Personalizations: []personalization{
      {To: []emailAddress{{Email: user.Email, Name: strings.TrimSpace(user.FirstName + " " + user.LastName)}}},
    },
    From:    emailAddress{Email: es.fromEmail, Name: es.fromName},
    Subject: subject,
    Content: []mailContent{{Type: "text/plain", Value: text}},
  }

  var buf bytes.Buffer
  if err := json.NewEncoder(&buf).Encode(payload); err != nil {
    return err
  }

  req, err := http.NewRequestWithContext(ctx, http.MethodPost, es.baseURL+"/v3/mail/send", &buf)
  if err != nil {
    return err
  }
  req.Header.Set("Authorization", "Bearer "+es.apiKey)
  req.Header.Set("Content-Type", "application/json")

  resp, err := es.httpClient.Do(req)
  if err != nil {
    return err
  }
  raw, _ := io.ReadAll(resp.Body)
  _ = resp.Body.Close()

  if resp.StatusCode < 200 || resp.StatusCode >= 300 {
    return fmt.Errorf("sendgrid http %d: %s", resp.StatusCode, string(raw))
  }
  es.log.Debug("Email sent", "to", user.Email, "subject", subject)
  return nil
}
