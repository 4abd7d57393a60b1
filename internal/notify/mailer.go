package notify

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/huyquangvevo/vcs-chamcong-report/attendance"
)

// Sender delivers prepared messages. *gomail.Dialer satisfies it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type Mailer struct {
	Sender   Sender
	From     string
	Subject  string
	Template string
	Log      *zap.Logger
}

// NewDialer returns an SMTP dialer that does not verify the server
// certificate, which internal relays commonly require.
func NewDialer(host string, port int, user, pass string) *gomail.Dialer {
	d := gomail.NewDialer(host, port, user, pass)
	d.TLSConfig = &tls.Config{InsecureSkipVerify: true}
	return d
}

// RenderSummary fills the $PLACEHOLDERS of tpl from a department summary.
// $NOT_CHECK_IN and $NOT_ENOUGH_WORK are older names kept for existing
// templates: they count Absent and SameInOut rows.
func RenderSummary(tpl string, date time.Time, s attendance.DepartmentSummary) string {
	n := func(st attendance.Status) string { return strconv.Itoa(s.Count(st)) }
	r := strings.NewReplacer(
		"$DEPT_NAME", s.Department,
		"$DATE", attendance.FormatDate(date),
		"$TOTAL", strconv.Itoa(s.Total),
		"$PRESENT", n(attendance.Present),
		"$ABSENT", n(attendance.Absent),
		"$CHECK_IN_LATE", n(attendance.Latecomer),
		"$CHECK_OUT_SOON", n(attendance.HalfDay),
		"$SAME_IN_OUT", n(attendance.SameInOut),
		"$WEEKEND", n(attendance.Weekend),
		"$HOLIDAY", n(attendance.Holiday),
		"$NOT_CHECK_IN", n(attendance.Absent),
		"$NOT_ENOUGH_WORK", n(attendance.SameInOut),
	)
	return r.Replace(tpl)
}

// SendDepartmentAlerts mails each department's summary for date to its
// managers, with the rest of the department in Cc. Departments without a
// manager are skipped. Delivery errors do not stop the remaining mails;
// they are returned joined.
func (m *Mailer) SendDepartmentAlerts(ctx context.Context, date time.Time, rows []attendance.Row, employees []attendance.Employee) (int, error) {
	log := m.Log
	if log == nil {
		log = zap.NewNop()
	}

	type recipients struct{ to, cc []string }
	byDept := map[string]*recipients{}
	for _, e := range employees {
		if e.Email == "" {
			continue
		}
		r, ok := byDept[e.Department]
		if !ok {
			r = &recipients{}
			byDept[e.Department] = r
		}
		if e.Manager {
			r.to = append(r.to, e.Email)
		} else {
			r.cc = append(r.cc, e.Email)
		}
	}

	var errs []error
	sent := 0
	for _, s := range attendance.Summarize(rows) {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		r := byDept[s.Department]
		if r == nil || len(r.to) == 0 {
			log.Warn("department has no manager to alert", zap.String("department", s.Department))
			continue
		}

		msg := gomail.NewMessage()
		msg.SetHeader("From", m.From)
		msg.SetHeader("To", r.to...)
		if len(r.cc) > 0 {
			msg.SetHeader("Cc", r.cc...)
		}
		msg.SetHeader("Subject", m.Subject)
		msg.SetBody("text/html", RenderSummary(m.Template, date, s))

		if err := m.Sender.DialAndSend(msg); err != nil {
			log.Error("send alert mail", zap.String("department", s.Department), zap.Error(err))
			errs = append(errs, fmt.Errorf("notify: %s: %w", s.Department, err))
			continue
		}
		sent++
	}
	return sent, errors.Join(errs...)
}
