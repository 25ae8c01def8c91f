package services

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"dolpcrm/internal/models"
	"dolpcrm/internal/repositories"
)

// Notifier fans CRM events out to every configured channel: Telegram chats
// of linked users and an optional distribution email. Delivery is
// best-effort; the triggering operation never fails because of it.
type Notifier struct {
	Users     *repositories.UserRepository
	Email     EmailService
	Telegram  *TelegramService
	DistEmail string
}

func NewNotifier(users *repositories.UserRepository, email EmailService, tg *TelegramService, distEmail string) *Notifier {
	return &Notifier{Users: users, Email: email, Telegram: tg, DistEmail: distEmail}
}

func (n *Notifier) NotifyMovement(op *models.Opportunity, from, to, resultado string) {
	text := fmt.Sprintf("📌 <b>%s</b>\nMovida de <b>%s</b> para <b>%s</b> - Resultado: <b>%s</b>",
		op.Titulo, from, to, resultado)
	n.broadcast(text)

	if n.Email != nil && n.DistEmail != "" {
		if err := n.Email.SendMovementEmail(n.DistEmail, op, from, to, resultado); err != nil {
			logrus.WithError(err).Warn("falha ao enviar email de movimentação")
		}
	}
}

func (n *Notifier) NotifyTaskDue(t *models.Task) {
	venc := ""
	if t.DataVencimento != nil {
		venc = t.DataVencimento.Format("02/01/2006")
	}
	text := fmt.Sprintf("⏰ <b>Tarefa vencida</b>\n%s\nResponsável: %s\nVencimento: %s",
		t.Descricao, t.Responsavel, venc)
	n.broadcast(text)

	if n.Email != nil && n.DistEmail != "" {
		if err := n.Email.SendTaskReminderEmail(n.DistEmail, t); err != nil {
			logrus.WithError(err).Warn("falha ao enviar lembrete por email")
		}
	}
}

func (n *Notifier) broadcast(text string) {
	if n.Telegram == nil || n.Users == nil {
		return
	}
	users, err := n.Users.ListNotifiable()
	if err != nil {
		logrus.WithError(err).Warn("falha ao listar usuários notificáveis")
		return
	}
	for _, u := range users {
		if u.TelegramChatID == nil {
			continue
		}
		if err := n.Telegram.Send(*u.TelegramChatID, text); err != nil {
			logrus.WithError(err).WithField("user_id", u.ID).Warn("falha ao notificar via telegram")
		}
	}
}
