package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	tgmodels "github.com/go-telegram/bot/models"
	"github.com/yukikurage/company-tracker-api/internal/models"
	"github.com/yukikurage/company-tracker-api/internal/repository"
	"github.com/yukikurage/company-tracker-api/internal/telegram"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrTelegramGroupNotFound = errors.New("telegram group not found")

// TelegramService handles bot webhook updates and linked group chats.
type TelegramService struct {
	telegramRepo repository.TelegramRepository
	companies    *CompanyService
	auth         *AuthService
	notifier     telegram.Notifier
	frontendURL  string
	log          *zap.Logger
}

// NewTelegramService creates a new TelegramService.
func NewTelegramService(
	telegramRepo repository.TelegramRepository,
	companies *CompanyService,
	auth *AuthService,
	notifier telegram.Notifier,
	frontendURL string,
	log *zap.Logger,
) *TelegramService {
	return &TelegramService{
		telegramRepo: telegramRepo,
		companies:    companies,
		auth:         auth,
		notifier:     notifier,
		frontendURL:  strings.TrimRight(frontendURL, "/"),
		log:          log.Named("telegram"),
	}
}

// HandleUpdate processes one webhook update. Delivery failures are logged
// and never returned; only storage failures are.
func (s *TelegramService) HandleUpdate(ctx context.Context, update *tgmodels.Update) error {
	msg := update.Message
	if msg == nil || msg.From == nil || msg.From.IsBot {
		return nil
	}

	switch string(msg.Chat.Type) {
	case "private":
		if isStartCommand(msg.Text) {
			return s.sendLoginLink(ctx, msg)
		}
	case "group", "supergroup":
		return s.recordGroupMember(msg)
	}
	return nil
}

// LoginLink builds the frontend URL that finishes Telegram login.
func (s *TelegramService) LoginLink(token string) string {
	return fmt.Sprintf("%s/telegram-login?token=%s", s.frontendURL, url.QueryEscape(token))
}

func (s *TelegramService) sendLoginLink(ctx context.Context, msg *tgmodels.Message) error {
	user, token, err := s.auth.TelegramLogin(identityOf(msg.From))
	if err != nil {
		return err
	}

	text := fmt.Sprintf("Hi %s! Open this link within 5 minutes to sign in:\n%s", user.FirstName, s.LoginLink(token))
	if err := s.notifier.SendMessage(ctx, msg.Chat.ID, text); err != nil {
		s.log.Warn("failed to deliver login link",
			zap.Int64("chat_id", msg.Chat.ID),
			zap.Uint64("user_id", user.ID),
			zap.Error(err),
		)
	}
	return nil
}

func (s *TelegramService) recordGroupMember(msg *tgmodels.Message) error {
	group, err := s.telegramRepo.FindGroupByChatID(msg.Chat.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to find telegram group: %w", err)
	}

	user, err := s.auth.ResolveTelegramUser(identityOf(msg.From))
	if err != nil {
		return err
	}

	if err := s.telegramRepo.AddMember(group.ID, user.ID); err != nil {
		return fmt.Errorf("failed to record group member: %w", err)
	}
	return nil
}

// ListGroups lists the chats linked to the user's companies.
func (s *TelegramService) ListGroups(userID uint64) ([]models.TelegramGroup, error) {
	groups, err := s.telegramRepo.ListGroups(repository.MemberScope(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to list telegram groups: %w", err)
	}
	return groups, nil
}

// LinkGroupInput represents parameters to link a chat to a company.
type LinkGroupInput struct {
	ChatID    int64
	CompanyID uint64
	Title     *string
}

// LinkGroup links a chat to a company the user belongs to.
func (s *TelegramService) LinkGroup(userID uint64, input LinkGroupInput) (*models.TelegramGroup, error) {
	if err := s.companies.EnsureMember(input.CompanyID, userID); err != nil {
		return nil, err
	}

	group := &models.TelegramGroup{
		CompanyID: input.CompanyID,
		ChatID:    input.ChatID,
		Title:     input.Title,
	}
	if err := s.telegramRepo.LinkGroup(group); err != nil {
		return nil, fmt.Errorf("failed to link telegram group: %w", err)
	}
	return group, nil
}

// ListMembers lists the recorded members of a group the user can see.
func (s *TelegramService) ListMembers(userID, groupID uint64) ([]models.TelegramMember, error) {
	if _, err := s.telegramRepo.FindGroup(repository.MemberScope(userID), groupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTelegramGroupNotFound
		}
		return nil, fmt.Errorf("failed to find telegram group: %w", err)
	}

	members, err := s.telegramRepo.ListMembers(groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group members: %w", err)
	}
	return members, nil
}

func identityOf(from *tgmodels.User) TelegramIdentity {
	return TelegramIdentity{
		TelegramID: from.ID,
		Username:   from.Username,
		FirstName:  from.FirstName,
		LastName:   from.LastName,
	}
}

// isStartCommand matches "/start", "/start auth" and the @botname forms.
func isStartCommand(text string) bool {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return false
	}
	command, _, _ := strings.Cut(fields[0], "@")
	if command != "/start" {
		return false
	}
	return len(fields) == 1 || fields[1] == "auth"
}
