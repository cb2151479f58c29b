package service

import (
	"bytes"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/foodie-next/internal/config"
	"github.com/foodie-next/internal/constants"
	"github.com/foodie-next/internal/models"
)

// 邮件发送错误
var (
	ErrEmailServiceDisabled      = errors.New("email service is disabled")
	ErrEmailServiceNotConfigured = errors.New("email service is not configured")
	ErrInvalidEmail              = errors.New("invalid email address")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")
)

// EmailService SMTP 邮件发送服务
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// Enabled 是否启用邮件
func (s *EmailService) Enabled() bool {
	return s != nil && s.cfg != nil && s.cfg.Enabled
}

// SendMessageReply 将后台回复发送给留言顾客
func (s *EmailService) SendMessageReply(message *models.Message) error {
	if message == nil || message.Reply == nil {
		return ErrReplyEmpty
	}
	subject := "Re: " + message.Subject
	var body strings.Builder
	fmt.Fprintf(&body, "Hi %s,\n\n", message.Name)
	body.WriteString(*message.Reply)
	body.WriteString("\n\n----\n")
	fmt.Fprintf(&body, "Your message:\n%s\n", message.Message)
	return s.sendTextEmail(message.Email, subject, body.String())
}

// SendOrderNotice 向店铺通知邮箱发送订单提醒
func (s *EmailService) SendOrderNotice(order *models.Order, created bool) error {
	if order == nil {
		return ErrOrderNotFound
	}
	if s.cfg == nil || strings.TrimSpace(s.cfg.NotifyTo) == "" {
		return ErrEmailServiceNotConfigured
	}
	subject, body := buildOrderNoticeContent(order, created)
	return s.sendTextEmail(strings.TrimSpace(s.cfg.NotifyTo), subject, body)
}

func buildOrderNoticeContent(order *models.Order, created bool) (string, string) {
	subject := fmt.Sprintf("Order %s is now %s", order.ID, orderStatusLabel(order.Status))
	if created {
		subject = fmt.Sprintf("New order from %s", order.Name)
	}
	var body strings.Builder
	fmt.Fprintf(&body, "Order: %s\n", order.ID)
	fmt.Fprintf(&body, "Status: %s\n", orderStatusLabel(order.Status))
	fmt.Fprintf(&body, "Customer: %s (%s)\n", order.Name, order.Phone)
	fmt.Fprintf(&body, "Address: %s\n", order.Address)
	fmt.Fprintf(&body, "Items: %s\n", order.Items)
	fmt.Fprintf(&body, "Total: %s\n", order.Price.String())
	if order.Notes != "" {
		fmt.Fprintf(&body, "Notes: %s\n", order.Notes)
	}
	return subject, body.String()
}

func orderStatusLabel(status string) string {
	switch status {
	case constants.OrderStatusPending:
		return "Pending"
	case constants.OrderStatusPreparing:
		return "Preparing"
	case constants.OrderStatusCompleted:
		return "Completed"
	case constants.OrderStatusCancelled:
		return "Cancelled"
	default:
		return status
	}
}

func (s *EmailService) sendTextEmail(toEmail, subject, body string) error {
	if !s.Enabled() {
		return ErrEmailServiceDisabled
	}
	if s.cfg.Host == "" || s.cfg.Port == 0 || s.cfg.From == "" {
		return ErrEmailServiceNotConfigured
	}
	if _, err := mail.ParseAddress(toEmail); err != nil {
		return ErrInvalidEmail
	}

	from := buildFromAddress(s.cfg.From, s.cfg.FromName)
	msg := []byte(buildEmailMessage(from, toEmail, subject, body))
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" || s.cfg.Password != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	client, err := s.dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()
	return normalizeEmailSendError(deliver(client, auth, s.cfg.From, toEmail, msg))
}

// dial 按配置建立 SMTP 连接：SSL 直连、STARTTLS 或明文
func (s *EmailService) dial(addr string) (*smtp.Client, error) {
	tlsConfig := &tls.Config{ServerName: s.cfg.Host}
	if s.cfg.UseSSL {
		conn, err := tls.Dial("tcp", addr, tlsConfig)
		if err != nil {
			return nil, err
		}
		client, err := smtp.NewClient(conn, s.cfg.Host)
		if err != nil {
			_ = conn.Close()
			return nil, err
		}
		return client, nil
	}
	client, err := smtp.Dial(addr)
	if err != nil {
		return nil, err
	}
	if s.cfg.UseTLS {
		if err := client.StartTLS(tlsConfig); err != nil {
			_ = client.Close()
			return nil, err
		}
	}
	return client, nil
}

func deliver(client *smtp.Client, auth smtp.Auth, from, to string, msg []byte) error {
	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}
	if err := client.Mail(from); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func buildFromAddress(from, name string) string {
	if strings.TrimSpace(name) == "" {
		return from
	}
	return (&mail.Address{Name: name, Address: from}).String()
}

func buildEmailMessage(from, to, subject, body string) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.String()
}

func normalizeEmailSendError(err error) error {
	if err == nil {
		return nil
	}
	if isEmailRecipientRejected(err) {
		return fmt.Errorf("%w: %v", ErrEmailRecipientRejected, err)
	}
	return err
}

func isEmailRecipientRejected(err error) bool {
	message := strings.ToLower(err.Error())
	for _, keyword := range []string{"no such user", "user unknown", "recipient address rejected", "mailbox unavailable", "invalid recipient"} {
		if strings.Contains(message, keyword) {
			return true
		}
	}
	return strings.Contains(message, "550") && (strings.Contains(message, "recipient") || strings.Contains(message, "mailbox"))
}
