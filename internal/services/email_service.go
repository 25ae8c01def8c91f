package services

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"dolpcrm/internal/models"
	"dolpcrm/internal/pricing"
)

type EmailService interface {
	SendMovementEmail(to string, op *models.Opportunity, from, dest, resultado string) error
	SendTaskReminderEmail(to string, t *models.Task) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendMovementEmail(to string, op *models.Opportunity, from, dest, resultado string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Oportunidade %s: %s", op.Numero, resultado))

	body := fmt.Sprintf(`
		<h2>Movimentação de oportunidade</h2>
		<p><b>%s</b> (%s)</p>
		<p>Movida de <b>%s</b> para <b>%s</b> - Resultado: <b>%s</b></p>
		<p>Valor estimado: %s</p>
	`, op.Titulo, op.Numero, from, dest, resultado, pricing.FormatCurrency(op.Valor))

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("enviando email de movimentação: %w", err)
	}
	return nil
}

func (s *emailService) SendTaskReminderEmail(to string, t *models.Task) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Tarefa vencida no CRM")

	venc := ""
	if t.DataVencimento != nil {
		venc = t.DataVencimento.Format("02/01/2006")
	}
	body := fmt.Sprintf(`
		<h2>Tarefa vencida</h2>
		<p>%s</p>
		<p>Responsável: %s<br>Vencimento: %s</p>
	`, t.Descricao, t.Responsavel, venc)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("enviando lembrete de tarefa: %w", err)
	}
	return nil
}
