// Package notify renders the portal's email templates and hands them to a mailer.
package notify

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	htmltmpl "html/template"
	netmail "net/mail"
	"strings"
	"sync"
	texttmpl "text/template"
	"time"

	"go.uber.org/zap"

	"oalass-backend/internal/infrastructure/mail"
)

//go:embed templates/*
var templateFS embed.FS

const (
	TmplWelcome         = "welcome"
	TmplPasswordReset   = "password_reset"
	TmplLeaveSubmitted  = "leave_submitted"
	TmplLeaveReviewed   = "leave_reviewed"
	TmplTravelSubmitted = "travel_submitted"
	TmplTravelReviewed  = "travel_reviewed"
	TmplProbationDue    = "probation_due"
)

var allTemplates = []string{
	TmplWelcome, TmplPasswordReset,
	TmplLeaveSubmitted, TmplLeaveReviewed,
	TmplTravelSubmitted, TmplTravelReviewed,
	TmplProbationDue,
}

const sendTimeout = 15 * time.Second

type Notification struct {
	Template string
	To       []netmail.Address
	Cc       []netmail.Address
	Data     any
}

// Notifier never fails the caller; delivery problems are logged.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

type AccountData struct {
	Name         string
	Email        string
	TempPassword string
}

type RequestData struct {
	Kind          string // "leave application" | "travel order"
	ID            string
	ApplicantName string
	Summary       string
	StartDate     string
	EndDate       string
	Reason        string
	Stage         string
	Status        string
	ReviewerName  string
	Remarks       string
}

type ProbationData struct {
	ProbationID uint64
	Name        string
	EndDate     string
	DaysLeft    int
}

type contextData struct {
	AppName         string
	FrontendBaseURL string
	Data            any
}

type Options struct {
	AppName         string
	FrontendBaseURL string
	// Async sends from a goroutine; Wait drains them.
	Async bool
}

type Service struct {
	opts   Options
	mailer mail.Mailer
	log    *zap.Logger
	text   map[string]*texttmpl.Template
	html   map[string]*htmltmpl.Template
	wg     sync.WaitGroup
}

var _ Notifier = (*Service)(nil)

func New(m mail.Mailer, log *zap.Logger, opts Options) (*Service, error) {
	if opts.AppName == "" {
		opts.AppName = "OALASS"
	}
	opts.FrontendBaseURL = strings.TrimRight(opts.FrontendBaseURL, "/")
	s := &Service{
		opts:   opts,
		mailer: m,
		log:    log,
		text:   make(map[string]*texttmpl.Template, len(allTemplates)),
		html:   make(map[string]*htmltmpl.Template, len(allTemplates)),
	}
	for _, name := range allTemplates {
		tt, err := texttmpl.New(name).Option("missingkey=error").
			ParseFS(templateFS, "templates/_base.txt", "templates/"+name+".txt")
		if err != nil {
			return nil, fmt.Errorf("notify: parse %s.txt: %w", name, err)
		}
		ht, err := htmltmpl.New(name).Option("missingkey=error").
			ParseFS(templateFS, "templates/_base.gohtml", "templates/"+name+".gohtml")
		if err != nil {
			return nil, fmt.Errorf("notify: parse %s.gohtml: %w", name, err)
		}
		s.text[name] = tt
		s.html[name] = ht
	}
	return s, nil
}

// Render builds the message for n without sending it.
func (s *Service) Render(n Notification) (mail.Message, error) {
	tt, ok := s.text[n.Template]
	if !ok {
		return mail.Message{}, fmt.Errorf("notify: unknown template %q", n.Template)
	}
	data := contextData{AppName: s.opts.AppName, FrontendBaseURL: s.opts.FrontendBaseURL, Data: n.Data}

	var subj, text, html bytes.Buffer
	if err := tt.ExecuteTemplate(&subj, "subject", data); err != nil {
		return mail.Message{}, fmt.Errorf("notify: subject %s: %w", n.Template, err)
	}
	if err := tt.ExecuteTemplate(&text, "base", data); err != nil {
		return mail.Message{}, fmt.Errorf("notify: text %s: %w", n.Template, err)
	}
	if err := s.html[n.Template].ExecuteTemplate(&html, "base", data); err != nil {
		return mail.Message{}, fmt.Errorf("notify: html %s: %w", n.Template, err)
	}
	return mail.Message{
		To:      n.To,
		Cc:      n.Cc,
		Subject: "[" + s.opts.AppName + "] " + strings.TrimSpace(subj.String()),
		Text:    strings.TrimSpace(text.String()),
		HTML:    html.String(),
	}, nil
}

func (s *Service) Notify(ctx context.Context, n Notification) {
	if len(n.To) == 0 {
		s.log.Debug("notify: no recipients", zap.String("template", n.Template))
		return
	}
	msg, err := s.Render(n)
	if err != nil {
		s.log.Error("notify: render failed", zap.String("template", n.Template), zap.Error(err))
		return
	}
	send := func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, sendTimeout)
		defer cancel()
		if err := s.mailer.Send(ctx, msg); err != nil {
			s.log.Error("notify: send failed", zap.String("template", n.Template), zap.Error(err))
		}
	}
	if !s.opts.Async {
		send(ctx)
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		// request context ends with the response
		send(context.WithoutCancel(ctx))
	}()
}

// Wait blocks until queued sends finish.
func (s *Service) Wait() { s.wg.Wait() }

// Address formats a user as a mail recipient.
func Address(name, email string) netmail.Address { return netmail.Address{Name: name, Address: email} }
