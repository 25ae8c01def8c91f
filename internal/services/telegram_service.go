package services

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"dolpcrm/internal/repositories"
)

// TelegramService pushes CRM notifications to linked chats and runs the
// pairing flow: the web client requests a one-time code, the user sends
// "/start <code>" to the bot, and the chat id is stored on the user.
type TelegramService struct {
	bot   *tgbotapi.BotAPI
	users *repositories.UserRepository
}

func NewTelegramService(token string, users *repositories.UserRepository) (*TelegramService, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("iniciando bot do telegram: %w", err)
	}
	return &TelegramService{bot: bot, users: users}, nil
}

func (t *TelegramService) Send(chatID int64, text string) error {
	if t == nil || chatID == 0 {
		return nil
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("enviando mensagem do telegram: %w", err)
	}
	return nil
}

// Run consumes bot updates until the context ends. Only the pairing command
// is handled; everything else gets a short hint.
func (t *TelegramService) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := t.bot.GetUpdatesChan(u)

	logrus.WithField("bot", t.bot.Self.UserName).Info("bot do telegram ouvindo")
	for {
		select {
		case <-ctx.Done():
			t.bot.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil {
				continue
			}
			t.handleMessage(update.Message)
		}
	}
}

func (t *TelegramService) handleMessage(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	if code, ok := strings.CutPrefix(text, "/start "); ok {
		t.link(chatID, strings.TrimSpace(code))
		return
	}
	if text == "/start" {
		_ = t.Send(chatID, "Envie <b>/start CÓDIGO</b> com o código gerado no CRM para vincular sua conta.")
		return
	}
	_ = t.Send(chatID, "Comando não reconhecido. Use /start CÓDIGO para vincular sua conta.")
}

func (t *TelegramService) link(chatID int64, code string) {
	userID, err := t.users.ConsumeLinkCode(code)
	if err != nil {
		logrus.WithError(err).Error("falha ao consumir código de vínculo")
		_ = t.Send(chatID, "Erro ao vincular. Tente novamente.")
		return
	}
	if userID == 0 {
		_ = t.Send(chatID, "Código inválido ou expirado. Gere um novo no CRM.")
		return
	}
	if err := t.users.SetTelegramChatID(userID, chatID); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("falha ao gravar chat do telegram")
		_ = t.Send(chatID, "Erro ao vincular. Tente novamente.")
		return
	}
	logrus.WithFields(logrus.Fields{"user_id": userID, "chat_id": chatID}).Info("telegram vinculado")
	_ = t.Send(chatID, "✅ Conta vinculada. Você receberá notificações do CRM por aqui.")
}
