package smtpmail

import (
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"

	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/nations-league/internal/domain/match"
	"github.com/riskibarqy/nations-league/internal/platform/logging"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Logger   *logging.Logger
}

// Notifier emails match results to federation representatives over
// plain SMTP.
type Notifier struct {
	addr   string
	auth   smtp.Auth
	from   string
	send   func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
	logger *logging.Logger
}

func NewNotifier(cfg Config) *Notifier {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return &Notifier{
		addr:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		auth:   auth,
		from:   cfg.From,
		send:   smtp.SendMail,
		logger: logger,
	}
}

var resultTemplate = template.Must(template.New("result").Parse(`<html>
<body>
  <h2>{{.Team1}} {{.Score1}} - {{.Score2}} {{.Team2}}</h2>
  <p>{{.Round}} result: <strong>{{.Winner}}</strong> advance{{if .OnPenalties}} on penalties ({{.PenScore1}}-{{.PenScore2}}){{end}}.</p>
  {{if .Goals}}<ul>
  {{range .Goals}}<li>{{.Minute}}' {{.Player}} ({{.Team}})</li>
  {{end}}</ul>{{end}}
</body>
</html>`))

type resultView struct {
	Team1, Team2   string
	Score1, Score2 int
	Round          string
	Winner         string
	OnPenalties    bool
	PenScore1      int
	PenScore2      int
	Goals          []match.Goal
}

// SendResult mails the completed match to all recipients in one
// message.
func (n *Notifier) SendResult(ctx context.Context, m match.Match, recipients []string) error {
	if len(recipients) == 0 {
		return nil
	}
	if m.Winner == nil || m.Score == nil {
		return fmt.Errorf("match %s is not completed", m.ID)
	}

	view := resultView{
		Team1:  m.Team1.Country,
		Team2:  m.Team2.Country,
		Score1: m.Score.Team1,
		Score2: m.Score.Team2,
		Round:  string(m.Round),
		Winner: m.Winner.Country,
		Goals:  m.GoalScorers,
	}
	if m.Winner.WonBy == match.WonByPenalties && m.Shootout != nil {
		view.OnPenalties = true
		view.PenScore1 = m.Shootout.Score.Team1
		view.PenScore2 = m.Shootout.Score.Team2
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	subject := fmt.Sprintf("%s: %s %d-%d %s", m.Round, m.Team1.Country, m.Score.Team1, m.Score.Team2, m.Team2.Country)
	fmt.Fprintf(buf, "From: %s\r\n", n.from)
	fmt.Fprintf(buf, "To: %s\r\n", strings.Join(recipients, ", "))
	fmt.Fprintf(buf, "Subject: %s\r\n", subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	buf.WriteString("\r\n")
	if err := resultTemplate.Execute(buf, view); err != nil {
		return fmt.Errorf("render result email: %w", err)
	}

	if err := n.send(n.addr, n.auth, n.from, recipients, buf.Bytes()); err != nil {
		return fmt.Errorf("send result email: %w", err)
	}

	n.logger.InfoContext(ctx, "result email sent",
		"match_id", m.ID,
		"recipients", len(recipients),
	)

	return nil
}
