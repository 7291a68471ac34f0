package bot

import (
	"fmt"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/barbearia-urbana/barberbot/bookingapi"
	"github.com/barbearia-urbana/barberbot/config"
	"github.com/barbearia-urbana/barberbot/storage"
	"github.com/barbearia-urbana/barberbot/wizard"
)

// sessionIdleLimit is how long a chat may stay silent before its wizard
// session is dropped.
const sessionIdleLimit = 45 * time.Minute

// Bot is the Telegram front end of the booking wizard.
type Bot struct {
	api       *tgbotapi.BotAPI
	catalog   *wizard.Catalog
	backend   *bookingapi.Client
	adminView *wizard.AdminView
	store     storage.Store
	metrics   wizard.Metrics
	business  config.BusinessConfig
	admins    map[int64]bool
	log       *zap.SugaredLogger

	mu       sync.Mutex
	sessions map[int64]*chatSession
}

// Config wires a new Bot.
type Config struct {
	Token    string
	Debug    bool
	Catalog  *wizard.Catalog
	Backend  *bookingapi.Client
	Store    storage.Store
	Metrics  wizard.Metrics
	Business config.BusinessConfig
	Admins   []int64
	Log      *zap.SugaredLogger
}

// New creates a bot instance.
func New(cfg Config) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	api.Debug = cfg.Debug

	admins := make(map[int64]bool, len(cfg.Admins))
	for _, id := range cfg.Admins {
		admins[id] = true
	}

	return &Bot{
		api:       api,
		catalog:   cfg.Catalog,
		backend:   cfg.Backend,
		adminView: wizard.NewAdminView(cfg.Backend, cfg.Log),
		store:     cfg.Store,
		metrics:   cfg.Metrics,
		business:  cfg.Business,
		admins:    admins,
		log:       cfg.Log,
		sessions:  make(map[int64]*chatSession),
	}, nil
}

// Start runs the update loop until the updates channel closes.
func (b *Bot) Start() error {
	b.log.Infow("bot started", "username", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	for update := range updates {
		if update.Message != nil {
			b.handleMessage(update.Message)
		} else if update.CallbackQuery != nil {
			b.handleCallbackQuery(update.CallbackQuery)
		}
	}
	return nil
}

// Stop closes the update channel, letting Start return.
func (b *Bot) Stop() {
	b.api.StopReceivingUpdates()
}

// SendDigest delivers a staff digest message. Used by the daily worker.
func (b *Bot) SendDigest(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send digest to chat %d: %w", chatID, err)
	}
	return nil
}

// session returns the chat's session, creating one when needed and pruning
// idle ones on the way.
func (b *Bot) session(chatID int64) *chatSession {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	for id, s := range b.sessions {
		if id != chatID && now.Sub(s.lastActive) > sessionIdleLimit {
			delete(b.sessions, id)
		}
	}

	s, ok := b.sessions[chatID]
	if !ok {
		s = &chatSession{
			wiz: wizard.NewSession(wizard.SessionConfig{
				Backend: b.backend,
				Metrics: b.metrics,
				Log:     b.log,
			}),
		}
		b.sessions[chatID] = s
	}
	s.lastActive = now
	return s
}

func (b *Bot) isAdmin(chatID int64) bool {
	return b.admins[chatID]
}
