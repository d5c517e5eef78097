// Package emailsvc sends the application's emails: through SendGrid in production,
// to the standard logger in development, and to memory in tests.
package emailsvc

import (
	"fmt"
	"log"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/timetable/core"
)

var (
	// SentMessages holds every message the mock delivered, oldest first.
	SentMessages = make([]core.EmailMessage, 0)
	mu           sync.Mutex
)

func subject(conf *core.Config, subj string) string {
	return "[" + conf.AppName + "] " + subj
}

// consoleService writes the rendered messages to the standard logger.
type consoleService struct {
	conf   *core.Config
	from   mail.Address
	logger core.Logger
	quiet  bool // record only
}

var _ core.EmailService = (*consoleService)(nil)

func NewConsoleService(conf *core.Config, logger core.Logger) core.EmailService {
	return &consoleService{conf: conf, from: conf.DefaultFromEmail(), logger: logger}
}

func (svc *consoleService) SendMessages(messages ...*core.EmailMessage) {
	for _, msg := range messages {
		go svc.deliver(msg)
	}
}

func (svc *consoleService) deliver(msg *core.EmailMessage) {
	if err := msg.Render(svc.conf); err != nil {
		svc.logger.Error("rendering email: "+err.Error(), errors.Wrap(err, "rendering email"))
		return
	}
	if !msg.HasRecipients() || !msg.HasContent() {
		return
	}

	mu.Lock()
	SentMessages = append(SentMessages, *msg)
	mu.Unlock()

	if !svc.quiet {
		log.Print(svc.format(msg))
	}
}

// format lays the message out as headers followed by its plain text body.
func (svc *consoleService) format(msg *core.EmailMessage) string {
	var b strings.Builder
	header := func(name string, addrs []mail.Address) {
		if len(addrs) == 0 {
			return
		}
		list := make([]string, 0, len(addrs))
		for _, a := range addrs {
			list = append(list, a.String())
		}
		fmt.Fprintf(&b, "%s: %s\n", name, strings.Join(list, ", "))
	}

	fmt.Fprintf(&b, "From: %s\n", svc.from.String())
	header("To", msg.To)
	header("Cc", msg.Cc)
	header("Bcc", msg.Bcc)
	fmt.Fprintf(&b, "Date: %s\n", time.Now().Format(time.RFC1123Z))
	fmt.Fprintf(&b, "Subject: %s\n\n", subject(svc.conf, msg.Subject))
	b.WriteString(msg.TextContent)
	return b.String()
}

type consoleServiceMock struct {
	*consoleService
}

// NewConsoleServiceMock records the messages in SentMessages synchronously, without printing them.
func NewConsoleServiceMock(conf *core.Config, logger core.Logger) core.EmailService {
	svc := &consoleService{conf: conf, from: conf.DefaultFromEmail(), logger: logger, quiet: true}
	return consoleServiceMock{consoleService: svc}
}

func (svc consoleServiceMock) SendMessages(messages ...*core.EmailMessage) {
	for _, msg := range messages {
		svc.deliver(msg)
	}
}

// LastSentMessage returns the last message recorded by the mock.
func LastSentMessage() (core.EmailMessage, bool) {
	mu.Lock()
	defer mu.Unlock()
	if len(SentMessages) == 0 {
		return core.EmailMessage{}, false
	}
	return SentMessages[len(SentMessages)-1], true
}
