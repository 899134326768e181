package bot

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/apopova/breathing-practice-bot/internal/orders"
)

var (
	confirmCmdRe = regexp.MustCompile(`^/confirm_(\d+)$`)
	msgCmdRe     = regexp.MustCompile(`^/msg_(\d+) (.+)$`)
)

type recordingStage int

const (
	stageLink recordingStage = iota
	stageNotes
)

// recordingSession is the single-slot side conversation the admin enters
// to attach a consultation recording: first the link, then optional
// notes.
type recordingSession struct {
	stage    recordingStage
	clientID int64
	link     string
}

// handleAdminText intercepts admin-only input: the /confirm_<id> and
// /msg_<id> commands and the recording side conversation. Returns true
// when the message was consumed.
func (b *Bot) handleAdminText(msg *tgbotapi.Message) bool {
	if m := confirmCmdRe.FindStringSubmatch(msg.Text); m != nil {
		clientID, _ := strconv.ParseInt(m[1], 10, 64)
		b.confirmPayment(clientID)
		return true
	}
	if m := msgCmdRe.FindStringSubmatch(msg.Text); m != nil {
		clientID, _ := strconv.ParseInt(m[1], 10, 64)
		b.messageClient(clientID, m[2])
		return true
	}
	if b.adminSession != nil && !msg.IsCommand() {
		b.continueRecording(msg.Text)
		return true
	}
	return false
}

// notifyAdminNewOrder tells the admin a paid-up order is waiting. The
// buyer name lookup is best-effort; its failure never aborts the flow.
func (b *Bot) notifyAdminNewOrder(clientID int64) {
	if b.adminID == 0 {
		return
	}

	order, ok := b.store.Pending(clientID)
	if !ok {
		return
	}
	product, ok := b.catalog.Get(order.ProductID)
	if !ok {
		log.Printf("notify admin: unknown product %s for user %d", order.ProductID, clientID)
		return
	}

	name := "Пользователь"
	if chat, err := b.api.GetChat(tgbotapi.ChatInfoConfig{
		ChatConfig: tgbotapi.ChatConfig{ChatID: clientID},
	}); err != nil {
		log.Printf("get chat %d: %v", clientID, err)
	} else if chat.FirstName != "" {
		name = strings.TrimSpace(chat.FirstName + " " + chat.LastName)
	}

	text := fmt.Sprintf(`🔔 *НОВЫЙ ЗАКАЗ*

📦 Продукт: *%s*
💰 Цена: *%s*

👤 Клиент: %s
🆔 ID: %d
📧 Email: %s
📱 Телефон: %s
🕒 Время заказа: %s

Для подтверждения оплаты используйте команду:
/confirm_%d`,
		product.Name, product.Price, name, clientID,
		order.Email, order.Phone,
		order.CreatedAt.Format("02.01.2006 15:04"), clientID)

	b.send(b.adminID, newMarkdownMessage(b.adminID, text, adminOrderKeyboard(clientID)))
	log.Printf("admin notified about order from user %d", clientID)
}

// confirmPayment is the manual payment confirmation: congratulate the
// buyer, archive the order, then deliver. Completing before delivery
// keeps the archive correct even if every delivery send fails — the
// payment already happened.
func (b *Bot) confirmPayment(clientID int64) {
	order, ok := b.store.Pending(clientID)
	if !ok {
		b.sendText(b.adminID, "❌ Заказ не найден.")
		return
	}
	product, ok := b.catalog.Get(order.ProductID)
	if !ok {
		b.sendText(b.adminID, fmt.Sprintf("❌ Продукт %s не найден в каталоге.", order.ProductID))
		return
	}

	if product.Consultation {
		b.sendMarkdown(clientID, msgConsultationConfirmed(product.Name))
	} else {
		b.sendMarkdown(clientID, msgPaymentConfirmed(product.Name))
	}

	done, err := b.store.Complete(clientID)
	if err != nil {
		if errors.Is(err, orders.ErrNoPendingOrder) {
			b.sendText(b.adminID, "❌ Заказ не найден.")
		} else {
			b.sendText(b.adminID, fmt.Sprintf("❌ Ошибка: %v", err))
		}
		return
	}

	b.deliver(clientID, product)

	receipt := fmt.Sprintf("✅ Заказ %s завершен.\n\nКлиент: %d\nПродукт: %s\nМатериалы отправлены.",
		done.OrderID, clientID, product.Name)
	if product.Consultation {
		b.send(b.adminID, newMarkdownMessage(b.adminID, receipt, adminReceiptKeyboard(clientID)))
	} else {
		b.sendText(b.adminID, receipt)
	}
	log.Printf("order %s for user %d confirmed and delivered", done.OrderID, clientID)
}

func (b *Bot) cancelOrder(clientID int64) {
	order, ok := b.store.Pending(clientID)
	if !ok {
		b.sendText(b.adminID, "❌ Заказ не найден.")
		return
	}

	name := order.ProductID
	if p, ok := b.catalog.Get(order.ProductID); ok {
		name = p.Name
	}
	b.send(clientID, newMarkdownMessage(clientID, msgOrderCancelled(name), mainKeyboard()))

	b.store.Cancel(clientID)
	b.sendText(b.adminID, fmt.Sprintf("✅ Заказ клиента %d отменен.", clientID))
	log.Printf("order of user %d cancelled by admin", clientID)
}

// beginRecording opens the recording slot. Triggering it again before
// the previous conversation finished silently overwrites the slot.
func (b *Bot) beginRecording(clientID int64) {
	b.adminSession = &recordingSession{stage: stageLink, clientID: clientID}
	b.sendText(b.adminID, fmt.Sprintf("🎬 Отправка записи клиенту %d.\n\nПришлите ссылку на запись консультации.", clientID))
}

func (b *Bot) continueRecording(text string) {
	s := b.adminSession

	switch s.stage {
	case stageLink:
		link := strings.TrimSpace(text)
		if link == "" {
			b.sendText(b.adminID, "Ссылка не может быть пустой. Пришлите ссылку на запись.")
			return
		}
		s.link = link
		s.stage = stageNotes
		b.sendText(b.adminID, "📝 Добавьте заметки для клиента или отправьте «нет», чтобы пропустить.")
	case stageNotes:
		notes := strings.TrimSpace(text)
		if eq := strings.ToLower(notes); eq == "нет" || eq == "no" {
			notes = ""
		}
		b.finishRecording(s.clientID, s.link, notes)
		b.adminSession = nil
	}
}

func (b *Bot) finishRecording(clientID int64, link, notes string) {
	order, err := b.store.AttachRecording(clientID, link, notes, b.catalog.IsConsultation)
	if err != nil {
		if errors.Is(err, orders.ErrNotFound) {
			b.sendText(b.adminID, fmt.Sprintf("❌ У клиента %d нет завершенных консультаций.", clientID))
		} else {
			b.sendText(b.adminID, fmt.Sprintf("❌ Ошибка: %v", err))
		}
		return
	}

	b.sendMarkdown(clientID, msgRecording(link, notes))
	b.sendText(b.adminID, fmt.Sprintf("✅ Запись по заказу %s отправлена клиенту %d.", order.OrderID, clientID))
	log.Printf("recording attached to order %s for user %d", order.OrderID, clientID)
}

func (b *Bot) messageClient(clientID int64, text string) {
	if !b.sendMarkdown(clientID, fmt.Sprintf("📬 *Сообщение от Анастасии*:\n\n%s", text)) {
		b.sendText(b.adminID, "❌ Не удалось отправить сообщение клиенту.")
		return
	}
	b.sendText(b.adminID, "✅ Сообщение успешно отправлено клиенту.")
	log.Printf("admin messaged user %d", clientID)
}
