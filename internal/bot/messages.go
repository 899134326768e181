package bot

import "fmt"

// User-facing message templates. Texts are sent with Markdown parse mode
// unless noted otherwise.

const teacherLink = "https://t.me/NastuPopova"

func msgWelcome(firstName string) string {
	return fmt.Sprintf("👋 Приветствую, %s!\n\nЯ бот Анастасии Поповой, инструктора по дыхательным практикам. Через меня вы можете приобрести курсы и получить материалы.\n\nЧем могу помочь?", firstName)
}

func msgEmailRequest(productName string) string {
	return fmt.Sprintf("📋 Вы выбрали: *%s*\n\nДля оформления заказа, пожалуйста, введите ваш email.\n\nПример: email@example.com", productName)
}

const msgPhoneRequest = "📱 Теперь, пожалуйста, введите ваш номер телефона для связи.\n\nПример: +7XXXXXXXXXX"

const msgEmailInvalid = "❌ Пожалуйста, введите корректный email адрес."

const msgPhoneInvalid = "❌ Пожалуйста, введите корректный номер телефона."

func msgOrderReady(productName, price string) string {
	return fmt.Sprintf("✅ Спасибо! Ваш заказ почти готов.\n\n*%s*\nСтоимость: *%s*\n\nОжидайте информацию об оплате от Анастасии в ближайшее время.", productName, price)
}

const msgAwaitingPayment = "⏳ Ваш заказ ожидает подтверждения оплаты. Анастасия свяжется с вами в ближайшее время."

func msgPaymentConfirmed(productName string) string {
	return fmt.Sprintf("🎉 *Оплата подтверждена!*\n\nСпасибо за покупку \"*%s*\". Ваши материалы будут отправлены через несколько секунд.", productName)
}

func msgConsultationConfirmed(productName string) string {
	return fmt.Sprintf("🎉 *Оплата подтверждена!*\n\nСпасибо за покупку \"*%s*\".\n\nАнастасия свяжется с вами в ближайшее время, чтобы согласовать удобное время занятия.", productName)
}

const msgOrderComplete = "📌 *Важная информация*:\n\n• Материалы доступны без ограничений по времени\n• При возникновении вопросов пишите прямо в этот чат\n• Для максимальной пользы рекомендуем заниматься в спокойной обстановке\n\nВсего доброго! 🙏"

func msgVideoLesson(link string) string {
	return fmt.Sprintf("🎬 *Видеоурок*\n\nСмотрите по ссылке: %s\n\nСсылка не имеет ограничений по времени.", link)
}

func msgOrderCancelled(productName string) string {
	return fmt.Sprintf("❌ Ваш заказ \"%s\" был отменен.\n\nЕсли у вас возникли вопросы, пожалуйста, свяжитесь с Анастасией.", productName)
}

const msgNoPurchases = "У вас пока нет завершенных покупок. Выберите \"🛒 Купить курс\", чтобы приобрести материалы."

const msgNoConsultations = "У вас пока нет индивидуальных консультаций. Выберите /buy, чтобы приобрести консультацию."

const msgError = "Произошла ошибка. Пожалуйста, попробуйте позже или свяжитесь с нами напрямую."

const msgMenuHint = "Используйте кнопки меню для навигации или напишите /start, чтобы начать заново."

const msgProductNotFound = "❌ Продукт не найден"

const msgDocumentMissing = "⚠️ Не удалось отправить PDF-инструкцию, мы вышлем ее вам вручную в ближайшее время."

func msgRecording(link, notes string) string {
	text := fmt.Sprintf("🎬 *Запись вашей консультации готова!*\n\n🔗 Ссылка: %s", link)
	if notes != "" {
		text += fmt.Sprintf("\n\n📝 Заметки от Анастасии:\n%s", notes)
	}
	return text
}

const msgAbout = "ℹ️ *О курсах дыхательных практик*\n\n*Анастасия Попова* - сертифицированный инструктор по дыхательным практикам.\n\nНаши курсы помогут вам:\n\n• Повысить жизненную энергию\n• Снизить уровень стресса\n• Улучшить качество сна\n• Повысить иммунитет\n• Улучшить работу дыхательной системы\n\nВыберите \"🛒 Купить курс\" в меню, чтобы ознакомиться с доступными программами."

const msgAboutCaption = "🌬️ Дыхательные практики Анастасии Поповой - Информация о курсах"

const msgContact = "👩‍🏫 *Анастасия Попова*\n\nЕсли у вас возникли вопросы о курсах, дыхательных практиках или вы хотите получить персональную консультацию, напишите мне напрямую.\n\nЯ отвечаю в течение 24 часов в рабочие дни."

const msgHelp = "🌬️ *Дыхательные практики Анастасии Поповой*\n\nДоступные команды:\n\n" +
	"• /start - Начать работу с ботом\n" +
	"• /buy - Купить курс или консультацию\n" +
	"• /info - Информация о курсах\n" +
	"• /purchases - Мои покупки\n" +
	"• /consultations - Мои консультации\n" +
	"• /contact - Связаться с преподавателем\n" +
	"• /help - Получить эту справку\n\n" +
	"Если у вас возникли вопросы, вы всегда можете связаться с Анастасией напрямую: @NastuPopova"
