package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// telegramNotifier sends replies as chat messages. Each chat is one session;
// message text stands in for the transcribed utterance.
type telegramNotifier struct {
	bot *bot.Bot
}

func (n *telegramNotifier) Notify(ctx context.Context, chatID int64, reply Reply) error {
	if reply.Text != "" {
		_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   reply.Text,
		})
		if err != nil {
			return fmt.Errorf("send message: %w", err)
		}
	}
	if reply.Document != nil {
		_, err := n.bot.SendDocument(ctx, &bot.SendDocumentParams{
			ChatID: chatID,
			Document: &models.InputFileUpload{
				Filename: reply.Document.Filename,
				Data:     bytes.NewReader(reply.Document.Data),
			},
			Caption: "Your railway ticket",
		})
		if err != nil {
			return fmt.Errorf("send document: %w", err)
		}
	}
	return nil
}

func readToken(path string) (string, error) {
	token, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("could not read bot token: %w", err)
	}
	return strings.TrimSpace(string(token)), nil
}

func runTelegram(ctx context.Context, cfg Config, store *Store, catalog []string, logger *slog.Logger) error {
	token, err := readToken(cfg.Telegram.TokenFile)
	if err != nil {
		return err
	}

	notifier := &telegramNotifier{}
	dialog := NewDialog(store, catalog, notifier, logger)

	// handle all non-command messages
	messageHandler := func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if update.Message == nil {
			return
		}
		dialog.HandleTurn(ctx, update.Message.Chat.ID, update.Message.Text)
	}

	// when user typed `/start`
	startHandler := func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if update.Message == nil {
			return
		}
		chatID := update.Message.Chat.ID
		if err := dialog.ResetSession(chatID); err != nil {
			logger.Error("Error: could not reset session", "chat", chatID, "err", err)
		}
		dialog.HandleTurn(ctx, chatID, "")
	}

	opts := []bot.Option{
		bot.WithDefaultHandler(messageHandler),
	}
	b, err := bot.New(token, opts...)
	if err != nil {
		return fmt.Errorf("could not create bot: %w", err)
	}
	notifier.bot = b

	b.RegisterHandler(bot.HandlerTypeMessageText, "start", bot.MatchTypeCommand, startHandler)

	logger.Info("telegram bot started")
	b.Start(ctx)
	return nil
}
