package mail

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var (
	from = mail.Address{Name: "OALASS", Address: "noreply@oalass.local"}
	msg  = Message{
		To:      []mail.Address{{Name: "Ana Reyes", Address: "ana@school.edu"}},
		Subject: "[OALASS] Hello",
		Text:    "hello",
		HTML:    "<p>hello</p>",
	}
)

func TestConsoleMailer_LogsMessage(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	m := NewConsoleMailer(from, zap.New(core))

	if err := m.Send(context.Background(), msg); err != nil {
		t.Fatalf("Send: %v", err)
	}
	entries := logs.FilterMessage("email").All()
	if len(entries) != 1 {
		t.Fatalf("want 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["subject"] != "[OALASS] Hello" || !strings.Contains(fields["to"].(string), "ana@school.edu") {
		t.Fatalf("unexpected fields: %+v", fields)
	}
}

func TestConsoleMailer_NoRecipients(t *testing.T) {
	m := NewConsoleMailer(from, zap.NewNop())
	if err := m.Send(context.Background(), Message{Subject: "x"}); !errors.Is(err, ErrNoRecipients) {
		t.Fatalf("want ErrNoRecipients, got %v", err)
	}
}

func TestSendgridMailer_PostsV3Payload(t *testing.T) {
	var gotAuth, gotPath string
	var payload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &payload)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	m := NewSendgridMailer("SG.key", from).WithHost(srv.URL)
	if err := m.Send(context.Background(), msg); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if gotAuth != "Bearer SG.key" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
	if gotPath != "/v3/mail/send" {
		t.Fatalf("path = %q", gotPath)
	}
	content, _ := payload["content"].([]any)
	if len(content) != 2 {
		t.Fatalf("want text+html content, got %+v", payload["content"])
	}
}

func TestSendgridMailer_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"message":"bad key"}]}`))
	}))
	defer srv.Close()

	m := NewSendgridMailer("bad", from).WithHost(srv.URL)
	err := m.Send(context.Background(), msg)
	if err == nil || !strings.Contains(err.Error(), "status 401") {
		t.Fatalf("want status 401 error, got %v", err)
	}
}

func TestMemoryMailer(t *testing.T) {
	m := &MemoryMailer{}
	if err := m.Send(context.Background(), msg); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got := m.Sent(); len(got) != 1 || got[0].Subject != msg.Subject {
		t.Fatalf("Sent = %+v", got)
	}
	m.Err = errors.New("down")
	if err := m.Send(context.Background(), msg); err == nil {
		t.Fatal("want injected error")
	}
}
