// Package bot drives the Telegram side of the storefront: the purchase
// intake conversation, the menu commands, the admin confirmation flow
// and the delivery of purchased materials.
package bot

import (
	"context"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/apopova/breathing-practice-bot/internal/catalog"
	"github.com/apopova/breathing-practice-bot/internal/orders"
)

// API is the slice of the Telegram client the bot uses. *tgbotapi.BotAPI
// satisfies it; tests substitute a recorder.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetChat(config tgbotapi.ChatInfoConfig) (tgbotapi.Chat, error)
}

type Bot struct {
	api       API
	store     *orders.Store
	catalog   *catalog.Catalog
	adminID   int64
	filesDir  string
	sendDelay time.Duration

	// Single-slot admin side conversation (recording link collection).
	// One admin, one slot; a second trigger overwrites the first.
	adminSession *recordingSession
}

func New(api API, store *orders.Store, cat *catalog.Catalog, adminID int64, filesDir string) *Bot {
	return &Bot{
		api:       api,
		store:     store,
		catalog:   cat,
		adminID:   adminID,
		filesDir:  filesDir,
		sendDelay: 500 * time.Millisecond,
	}
}

// Run processes updates one at a time until the context is cancelled or
// the channel closes. All order state is mutated from this loop only.
func (b *Bot) Run(ctx context.Context, updates <-chan tgbotapi.Update) {
	for {
		select {
		case <-ctx.Done():
			return
		case u, ok := <-updates:
			if !ok {
				return
			}
			b.HandleUpdate(u)
		}
	}
}

func (b *Bot) HandleUpdate(u tgbotapi.Update) {
	switch {
	case u.CallbackQuery != nil:
		b.handleCallback(u.CallbackQuery)
	case u.Message != nil:
		b.handleMessage(u.Message)
	}
}

func (b *Bot) handleCallback(cb *tgbotapi.CallbackQuery) {
	a := parseCallback(cb.Data)
	if a.adminOnly() && cb.From.ID != b.adminID {
		b.answerCallback(cb.ID, "⛔ У вас нет доступа к этой функции")
		return
	}

	chatID := cb.From.ID
	if cb.Message != nil {
		chatID = cb.Message.Chat.ID
	}

	switch a.kind {
	case actionShowProducts:
		b.sendProductsMenu(chatID)
		b.answerCallback(cb.ID, "")
	case actionBackToMenu:
		b.send(chatID, newMarkdownMessage(chatID, msgWelcome("друг"), mainKeyboard()))
		b.answerCallback(cb.ID, "")
	case actionShowInfo:
		b.sendInfo(chatID)
		b.answerCallback(cb.ID, "")
	case actionShowPurchases:
		b.sendPurchases(chatID, cb.From.ID)
		b.answerCallback(cb.ID, "")
	case actionInDevelopment:
		b.answerCallback(cb.ID, "🔄 Этот продукт скоро появится в продаже")
	case actionViewProduct:
		b.viewProduct(cb, a.productID)
	case actionStartOrder:
		b.startOrder(cb, a.productID)
	case actionConfirmPayment:
		b.confirmPayment(a.clientID)
		b.answerCallback(cb.ID, "✅ Оплата подтверждена")
	case actionCancelOrder:
		b.cancelOrder(a.clientID)
		b.answerCallback(cb.ID, "")
	case actionSendRecording:
		b.beginRecording(a.clientID)
		b.answerCallback(cb.ID, "")
	default:
		b.answerCallback(cb.ID, "")
	}
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	if msg.From == nil || msg.Text == "" {
		return
	}

	if msg.From.ID == b.adminID && b.handleAdminText(msg) {
		return
	}

	if msg.IsCommand() {
		b.handleCommand(msg)
		return
	}

	switch msg.Text {
	case btnBuy:
		b.sendProductsMenu(msg.Chat.ID)
	case btnInfo:
		b.sendInfo(msg.Chat.ID)
	case btnPurchases:
		b.sendPurchases(msg.Chat.ID, msg.From.ID)
	case btnContact:
		b.sendContact(msg.Chat.ID)
	default:
		b.handleIntakeText(msg)
	}
}

// viewProduct shows the product card. Stale buttons for removed products
// are answered with "not found", never treated as a failure.
func (b *Bot) viewProduct(cb *tgbotapi.CallbackQuery, productID string) {
	p, ok := b.catalog.Get(productID)
	if !ok {
		b.answerCallback(cb.ID, msgProductNotFound)
		return
	}

	b.editOrSend(cb, p.FullDescription, tgbotapi.ModeHTML, productCardKeyboard(p.ID))
	b.answerCallback(cb.ID, "✅ Информация о продукте")
	log.Printf("user %d viewed product %s", cb.From.ID, p.ID)
}

// startOrder opens a pending order and asks for the email. Any previous
// unfinished order of the same user is discarded by the store.
func (b *Bot) startOrder(cb *tgbotapi.CallbackQuery, productID string) {
	p, ok := b.catalog.Get(productID)
	if !ok {
		b.answerCallback(cb.ID, msgProductNotFound)
		return
	}

	b.store.StartOrder(cb.From.ID, p.ID)
	b.editOrSend(cb, msgEmailRequest(p.Name), tgbotapi.ModeMarkdown, backToProductsKeyboard())
	b.answerCallback(cb.ID, "✅ Начинаем оформление заказа")
	log.Printf("user %d started order for %s", cb.From.ID, p.ID)
}

// editOrSend tries to rewrite the message the button lives on and falls
// back to a fresh message when editing is not possible.
func (b *Bot) editOrSend(cb *tgbotapi.CallbackQuery, text, parseMode string, kb tgbotapi.InlineKeyboardMarkup) {
	if cb.Message != nil {
		edit := tgbotapi.NewEditMessageTextAndMarkup(cb.Message.Chat.ID, cb.Message.MessageID, text, kb)
		edit.ParseMode = parseMode
		_, err := b.api.Send(edit)
		if err == nil {
			return
		}
		log.Printf("edit message for user %d: %v", cb.From.ID, err)
	}

	msg := tgbotapi.NewMessage(cb.From.ID, text)
	msg.ParseMode = parseMode
	msg.ReplyMarkup = kb
	b.send(cb.From.ID, msg)
}

// send pushes one chattable and logs the failure instead of propagating
// it; a lost message must never corrupt order state.
func (b *Bot) send(chatID int64, c tgbotapi.Chattable) bool {
	if _, err := b.api.Send(c); err != nil {
		log.Printf("send to %d: %v", chatID, err)
		return false
	}
	return true
}

func (b *Bot) sendText(chatID int64, text string) bool {
	return b.send(chatID, tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) sendMarkdown(chatID int64, text string) bool {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	return b.send(chatID, msg)
}

func (b *Bot) answerCallback(id, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(id, text)); err != nil {
		log.Printf("answer callback: %v", err)
	}
}

// pause separates consecutive sends so material delivery does not burst
// into the Telegram API.
func (b *Bot) pause() {
	time.Sleep(b.sendDelay)
}

func newMarkdownMessage(chatID int64, text string, kb any) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = kb
	return msg
}
