package emailsvc

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/timetable/core"
	logsvc "github.com/trezcool/timetable/services/logger"
	testutil "github.com/trezcool/timetable/tests"
)

func TestSendgridService_deliver(t *testing.T) {
	conf := testutil.NewConfig()
	conf.SendgridApiKey = "sg-key"
	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf)

	var got struct {
		Personalizations []struct {
			To      []struct{ Email string } `json:"to"`
			Subject string                   `json:"subject"`
		} `json:"personalizations"`
		Content []struct {
			Type  string `json:"type"`
			Value string `json:"value"`
		} `json:"content"`
	}
	status := http.StatusAccepted
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, sendgridEndpoint, r.URL.Path)
		assert.Equal(t, "Bearer sg-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)

	svc := newSendgridService(conf, logger, srv.URL)
	msg := &core.EmailMessage{To: []mail.Address{{Name: "Malee", Address: "malee@school.test"}}, Subject: "Hello", BodyStr: "hi there"}
	require.NoError(t, svc.deliver(msg))

	require.Len(t, got.Personalizations, 1)
	assert.Equal(t, "["+conf.AppName+"] Hello", got.Personalizations[0].Subject)
	require.Len(t, got.Personalizations[0].To, 1)
	assert.Equal(t, "malee@school.test", got.Personalizations[0].To[0].Email)
	require.Len(t, got.Content, 1)
	assert.Equal(t, "text/plain", got.Content[0].Type)
	assert.Equal(t, "hi there", got.Content[0].Value)

	status = http.StatusUnauthorized
	assert.Error(t, svc.deliver(msg))

	// nothing to send
	assert.NoError(t, svc.deliver(&core.EmailMessage{Subject: "no one", BodyStr: "hi"}))
}

func TestConsoleServiceMock(t *testing.T) {
	conf := testutil.NewConfig()
	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf)
	svc := NewConsoleServiceMock(conf, logger)

	svc.SendMessages(
		&core.EmailMessage{To: []mail.Address{{Address: "a@school.test"}}, Subject: "first", BodyStr: "one"},
		&core.EmailMessage{Subject: "dropped", BodyStr: "no recipient"},
		&core.EmailMessage{To: []mail.Address{{Address: "b@school.test"}}, Subject: "second", BodyStr: "two"},
	)

	last, ok := LastSentMessage()
	require.True(t, ok)
	assert.Equal(t, "second", last.Subject)
	assert.Equal(t, "two", last.TextContent)

	console := &consoleService{conf: conf, from: mail.Address{Address: "noreply@school.test"}, logger: logger}
	out := console.format(&last)
	assert.Contains(t, out, "From: <noreply@school.test>\n")
	assert.Contains(t, out, "To: <b@school.test>\n")
	assert.NotContains(t, out, "Cc:")
	assert.Contains(t, out, "Subject: ["+conf.AppName+"] second\n\ntwo")
}
