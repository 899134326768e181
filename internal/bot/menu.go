package bot

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var botCommands = []tgbotapi.BotCommand{
	{Command: "start", Description: "Начать работу с ботом"},
	{Command: "buy", Description: "Купить курс или консультацию"},
	{Command: "info", Description: "Информация о курсах"},
	{Command: "purchases", Description: "Мои покупки"},
	{Command: "consultations", Description: "Мои консультации"},
	{Command: "contact", Description: "Связаться с преподавателем"},
	{Command: "help", Description: "Получить помощь"},
}

// SetupCommands registers the command menu with Telegram.
func (b *Bot) SetupCommands() error {
	if _, err := b.api.Request(tgbotapi.NewSetMyCommands(botCommands...)); err != nil {
		return fmt.Errorf("set bot commands: %w", err)
	}
	return nil
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.handleStart(msg)
	case "buy":
		b.sendProductsMenu(msg.Chat.ID)
	case "info":
		b.sendInfo(msg.Chat.ID)
	case "purchases":
		b.sendPurchases(msg.Chat.ID, msg.From.ID)
	case "consultations":
		b.sendConsultations(msg.Chat.ID, msg.From.ID)
	case "contact":
		b.sendContact(msg.Chat.ID)
	case "help":
		b.sendMarkdown(msg.Chat.ID, msgHelp)
	default:
		// Unknown commands get the menu hint unless the user is
		// mid-purchase, where any stray command is simply ignored.
		if _, ok := b.store.Pending(msg.From.ID); !ok {
			b.send(msg.Chat.ID, newMarkdownMessage(msg.Chat.ID, msgMenuHint, mainKeyboard()))
		}
	}
}

func (b *Bot) handleStart(msg *tgbotapi.Message) {
	firstName := msg.From.FirstName
	if firstName == "" {
		firstName = "друг"
	}
	b.send(msg.Chat.ID, newMarkdownMessage(msg.Chat.ID, msgWelcome(firstName), mainKeyboard()))

	// New-user heads-up for the admin; best-effort only.
	if b.adminID != 0 && msg.From.ID != b.adminID {
		username := msg.From.UserName
		if username == "" {
			username = "отсутствует"
		}
		b.sendText(b.adminID, fmt.Sprintf(
			"🆕 Новый пользователь:\n- Имя: %s %s\n- Username: @%s\n- ID: %d",
			msg.From.FirstName, msg.From.LastName, username, msg.From.ID))
	}
	log.Printf("new /start from user %d (@%s)", msg.From.ID, msg.From.UserName)
}

func (b *Bot) sendProductsMenu(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "📚 Выберите продукт:")
	msg.ReplyMarkup = productsKeyboard(b.catalog)
	b.send(chatID, msg)
}

func (b *Bot) sendInfo(chatID int64) {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FilePath(filepath.Join(b.filesDir, "logo.jpg")))
	photo.Caption = msgAboutCaption
	b.send(chatID, photo)
	b.pause()
	b.send(chatID, newMarkdownMessage(chatID, msgAbout, mainKeyboard()))
}

func (b *Bot) sendContact(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, msgContact)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = contactKeyboard()
	b.send(chatID, msg)
}

func (b *Bot) sendPurchases(chatID, userID int64) {
	completed := b.store.Completed(userID)
	if len(completed) == 0 {
		b.send(chatID, newMarkdownMessage(chatID, msgNoPurchases, mainKeyboard()))
		return
	}

	var sb strings.Builder
	sb.WriteString("🛍 *Ваши покупки*:\n\n")
	for i, order := range completed {
		name := order.ProductID
		price := ""
		if p, ok := b.catalog.Get(order.ProductID); ok {
			name = p.Name
			price = p.Price
		}
		fmt.Fprintf(&sb, "*%d. %s*\n", i+1, name)
		fmt.Fprintf(&sb, "🆔 Заказ: %s\n", order.OrderID)
		fmt.Fprintf(&sb, "📅 Дата: %s\n", order.CompletedAt.Format("02.01.2006"))
		if price != "" {
			fmt.Fprintf(&sb, "💳 Цена: %s\n", price)
		}
		if order.RecordingSent {
			sb.WriteString("🎬 Запись консультации: ✅\n")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("Если вам нужны повторно какие-то материалы, просто напишите в чат.")

	b.send(chatID, newMarkdownMessage(chatID, sb.String(), mainKeyboard()))
	log.Printf("user %d viewed purchases (%d orders)", userID, len(completed))
}

func (b *Bot) sendConsultations(chatID, userID int64) {
	var consultations []int
	completed := b.store.Completed(userID)
	for i, order := range completed {
		if b.catalog.IsConsultation(order.ProductID) {
			consultations = append(consultations, i)
		}
	}
	if len(consultations) == 0 {
		b.send(chatID, newMarkdownMessage(chatID, msgNoConsultations, mainKeyboard()))
		return
	}

	var sb strings.Builder
	sb.WriteString("*Ваши консультации:*\n\n")
	for n, i := range consultations {
		order := completed[i]
		name := order.ProductID
		if p, ok := b.catalog.Get(order.ProductID); ok {
			name = p.Name
		}
		fmt.Fprintf(&sb, "*%d. %s*\n", n+1, name)
		fmt.Fprintf(&sb, "🆔 Заказ: %s\n", order.OrderID)
		fmt.Fprintf(&sb, "📅 Дата: %s\n", order.CompletedAt.Format("02.01.2006"))
		if order.RecordingSent {
			fmt.Fprintf(&sb, "🎬 Запись: ✅ [Доступна]\n🔗 Ссылка: %s\n", order.RecordingLink)
		} else {
			sb.WriteString("🎬 Запись: ⏳ [Ожидает отправки]\n")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("Для получения записи консультации или дополнительной информации, пожалуйста, свяжитесь с преподавателем.")

	b.send(chatID, newMarkdownMessage(chatID, sb.String(), contactKeyboard()))
	log.Printf("user %d viewed consultations (%d)", userID, len(consultations))
}
