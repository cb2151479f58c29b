package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/foodie-next/internal/config"
	"github.com/foodie-next/internal/models"
)

func TestBuildOrderNoticeContent(t *testing.T) {
	order := &models.Order{
		ID:      "o-1",
		Name:    "Alice",
		Phone:   "0123",
		Items:   "2x Pho",
		Price:   models.NewMoney(12.5),
		Address: "1 Main St",
		Status:  "preparing",
	}

	subject, body := buildOrderNoticeContent(order, true)
	if !strings.Contains(subject, "New order from Alice") {
		t.Fatalf("unexpected created subject: %s", subject)
	}
	if !strings.Contains(body, "Total: 12.50") || !strings.Contains(body, "Items: 2x Pho") {
		t.Fatalf("unexpected body: %s", body)
	}
	if strings.Contains(body, "Notes:") {
		t.Fatalf("empty notes should be omitted")
	}

	subject, _ = buildOrderNoticeContent(order, false)
	if subject != "Order o-1 is now Preparing" {
		t.Fatalf("unexpected status subject: %s", subject)
	}
}

func TestBuildEmailMessageEncodesSubject(t *testing.T) {
	msg := buildEmailMessage("shop@foodie.test", "bob@foodie.test", "Re: Phở", "hello")
	if !strings.Contains(msg, "Subject: =?UTF-8?q?") {
		t.Fatalf("subject should be Q-encoded: %s", msg)
	}
	if !strings.HasSuffix(msg, "\r\n\r\nhello") {
		t.Fatalf("body should follow headers: %q", msg)
	}
}

func TestSendEmailRequiresConfiguration(t *testing.T) {
	reply := "Thanks!"
	message := &models.Message{Name: "Bob", Email: "bob@foodie.test", Subject: "Hi", Reply: &reply}

	disabled := NewEmailService(&config.EmailConfig{Enabled: false})
	if err := disabled.SendMessageReply(message); !errors.Is(err, ErrEmailServiceDisabled) {
		t.Fatalf("expected disabled error, got %v", err)
	}

	missingHost := NewEmailService(&config.EmailConfig{Enabled: true, From: "shop@foodie.test"})
	if err := missingHost.SendMessageReply(message); !errors.Is(err, ErrEmailServiceNotConfigured) {
		t.Fatalf("expected not configured error, got %v", err)
	}

	bad := NewEmailService(&config.EmailConfig{Enabled: true, Host: "127.0.0.1", Port: 25, From: "shop@foodie.test"})
	message.Email = "not-an-address"
	if err := bad.SendMessageReply(message); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected invalid email error, got %v", err)
	}
}

func TestIsEmailRecipientRejected(t *testing.T) {
	cases := map[string]bool{
		"550 5.1.1 user unknown":          true,
		"550 mailbox not found":           true,
		"421 service not available":       false,
		"recipient address rejected: foo": true,
	}
	for message, want := range cases {
		if got := isEmailRecipientRejected(errors.New(message)); got != want {
			t.Fatalf("isEmailRecipientRejected(%q)=%v want %v", message, got, want)
		}
	}
}
