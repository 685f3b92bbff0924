package services

import (
	"fmt"
	"log"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"backend_maquinaria/config"
)

// TelegramClient envía los avisos de la flota al canal de Telegram de la
// empresa. Es opcional: sin token configurado no se crea.
type TelegramClient struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramClient crea el cliente de Telegram a partir de la configuración
// de notificaciones
func NewTelegramClient(cfg config.NotificationsConfig) (*TelegramClient, error) {
	if cfg.TelegramBotToken == "" || cfg.TelegramChatID == "" {
		return nil, fmt.Errorf("Telegram no está configurado")
	}

	chatID, err := strconv.ParseInt(cfg.TelegramChatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("chat ID inválido: %s", cfg.TelegramChatID)
	}

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("error creando el bot de Telegram: %w", err)
	}

	bot.Debug = false

	log.Printf("✅ Bot de Telegram autorizado: %s", bot.Self.UserName)

	return &TelegramClient{bot: bot, chatID: chatID}, nil
}

// SendMessage envía un mensaje HTML al canal configurado
func (tc *TelegramClient) SendMessage(message string) error {
	msg := tgbotapi.NewMessage(tc.chatID, message)
	msg.ParseMode = tgbotapi.ModeHTML

	if _, err := tc.bot.Send(msg); err != nil {
		return fmt.Errorf("error enviando el mensaje: %w", err)
	}

	return nil
}
