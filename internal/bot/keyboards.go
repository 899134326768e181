package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/apopova/breathing-practice-bot/internal/catalog"
)

const (
	btnBuy       = "🛒 Купить курс"
	btnInfo      = "❓ Информация"
	btnPurchases = "📝 Мои покупки"
	btnContact   = "☎️ Связаться с преподавателем"
)

func mainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnBuy),
			tgbotapi.NewKeyboardButton(btnInfo),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnPurchases),
			tgbotapi.NewKeyboardButton(btnContact),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

func productsKeyboard(c *catalog.Catalog) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, p := range c.All() {
		label := fmt.Sprintf("%s - %s", p.Name, p.Price)
		data := "buy_" + p.ID
		if p.InDevelopment {
			label += " [🔄 В разработке]"
			data = "product_in_development"
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, data),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("◀️ Назад", "back_to_menu"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func productCardKeyboard(productID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💳 Оформить заказ", "confirm_buy_"+productID),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Назад к списку", "show_products"),
		),
	)
}

func backToProductsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Назад", "show_products"),
		),
	)
}

// adminOrderKeyboard is attached to the new-order notification: confirm,
// cancel, and a direct link into the chat with the client.
func adminOrderKeyboard(clientID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Подтвердить оплату", fmt.Sprintf("confirm_payment_%d", clientID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Отменить заказ", fmt.Sprintf("cancel_order_%d", clientID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("💬 Открыть чат с клиентом", fmt.Sprintf("tg://user?id=%d", clientID)),
		),
	)
}

func adminReceiptKeyboard(clientID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎬 Отправить запись", fmt.Sprintf("send_recording_%d", clientID)),
		),
	)
}

func contactKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("✉️ Написать преподавателю", teacherLink),
		),
	)
}
