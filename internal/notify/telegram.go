// Package notify delivers reminder digests over Telegram. Delivery is
// one-way: the service never polls for updates, it only sends to chats the
// users have linked themselves.
package notify

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"jalali-planner/internal/logger"
	"jalali-planner/internal/repository"
	"jalali-planner/internal/service"
)

// TelegramNotifier sends each linked user their daily task digest.
type TelegramNotifier struct {
	api         *tgbotapi.BotAPI
	userRepo    *repository.UserRepository
	reminderSvc *service.ReminderService
}

func NewTelegramNotifier(token string, userRepo *repository.UserRepository, reminderSvc *service.ReminderService) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	logger.Info("telegram notifier authorized", zap.String("account", api.Self.UserName))

	return &TelegramNotifier{
		api:         api,
		userRepo:    userRepo,
		reminderSvc: reminderSvc,
	}, nil
}

// SendDailyDigests builds and delivers today's summary to every user with a
// linked chat. A failure for one user does not stop the rest.
func (n *TelegramNotifier) SendDailyDigests(ctx context.Context) error {
	users, err := n.userRepo.ListWithTelegram(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, user := range users {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		text, err := n.reminderSvc.DailySummary(ctx, user, now)
		if err != nil {
			logger.Error("build digest", err, zap.Uint("user_id", user.ID))
			continue
		}
		if text == "" {
			continue
		}
		if err := n.send(user.TelegramChatID, text); err != nil {
			logger.Error("send digest", err, zap.Uint("user_id", user.ID))
		}
	}
	return nil
}

func (n *TelegramNotifier) send(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}
