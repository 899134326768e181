package bot

import (
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/apopova/breathing-practice-bot/internal/orders"
)

// handleIntakeText advances the purchase conversation: email, then
// phone, then hand-off to the admin. Invalid input re-prompts and leaves
// the order state untouched.
func (b *Bot) handleIntakeText(msg *tgbotapi.Message) {
	userID := msg.From.ID

	pending, ok := b.store.Pending(userID)
	if !ok {
		b.send(msg.Chat.ID, newMarkdownMessage(msg.Chat.ID, msgMenuHint, mainKeyboard()))
		return
	}

	switch pending.Status {
	case orders.StatusAwaitingEmail:
		b.intakeEmail(msg)
	case orders.StatusAwaitingPhone:
		b.intakePhone(msg)
	case orders.StatusAwaitingPayment:
		b.sendText(msg.Chat.ID, msgAwaitingPayment)
	}
}

func (b *Bot) intakeEmail(msg *tgbotapi.Message) {
	if !ValidEmail(msg.Text) {
		b.sendText(msg.Chat.ID, msgEmailInvalid)
		return
	}
	if err := b.store.RecordEmail(msg.From.ID, msg.Text); err != nil {
		log.Printf("record email for %d: %v", msg.From.ID, err)
		b.sendText(msg.Chat.ID, msgError)
		return
	}

	b.sendText(msg.Chat.ID, msgPhoneRequest)
	log.Printf("user %d entered email", msg.From.ID)
}

func (b *Bot) intakePhone(msg *tgbotapi.Message) {
	phone := CleanPhone(msg.Text)
	if !ValidPhone(phone) {
		b.sendText(msg.Chat.ID, msgPhoneInvalid)
		return
	}
	if err := b.store.RecordPhone(msg.From.ID, phone); err != nil {
		log.Printf("record phone for %d: %v", msg.From.ID, err)
		b.sendText(msg.Chat.ID, msgError)
		return
	}

	pending, _ := b.store.Pending(msg.From.ID)
	if p, ok := b.catalog.Get(pending.ProductID); ok {
		b.send(msg.Chat.ID, newMarkdownMessage(msg.Chat.ID, msgOrderReady(p.Name, p.Price), mainKeyboard()))
	}
	log.Printf("user %d entered phone, order awaiting payment", msg.From.ID)

	b.notifyAdminNewOrder(msg.From.ID)
}
