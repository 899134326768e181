// Package catalog holds the static product definitions. Products are
// loaded once at startup and never mutated.
package catalog

// Product describes one purchasable item. Price is a display string,
// currency formatting included.
type Product struct {
	ID              string
	Name            string
	Price           string
	Description     string
	FullDescription string // HTML product card
	ProductInfo     string // short HTML summary
	PDFFile         string
	VideoLink       string
	Consultation    bool // true for products delivered as live sessions
	InDevelopment   bool
}

type Catalog struct {
	products map[string]Product
	order    []string
}

func New(products []Product) *Catalog {
	c := &Catalog{products: make(map[string]Product, len(products))}
	for _, p := range products {
		c.products[p.ID] = p
		c.order = append(c.order, p.ID)
	}
	return c
}

// Get looks up a product by id. A miss is a normal outcome (stale
// buttons reference removed products) and must be surfaced to the user,
// not treated as a failure.
func (c *Catalog) Get(id string) (Product, bool) {
	p, ok := c.products[id]
	return p, ok
}

func (c *Catalog) IsConsultation(id string) bool {
	p, ok := c.products[id]
	return ok && p.Consultation
}

// All returns products in menu order.
func (c *Catalog) All() []Product {
	out := make([]Product, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.products[id])
	}
	return out
}

// Default is the production catalog.
func Default() *Catalog {
	return New([]Product{
		{
			ID:          "starter",
			Name:        "Стартовый комплект дыхательных практик",
			Price:       "990 ₽",
			Description: "Видеоурок (40 минут) с базовыми техниками + PDF-инструкция + бонусные материалы",
			FullDescription: `<b>🔰 Стартовый комплект дыхательных практик</b>

<b>Для кого:</b> Базовый набор для начинающих

<b>Что входит:</b>
• Видеоурок длительностью 40 минут
• PDF-инструкция для самостоятельной практики
• Мгновенный доступ после оплаты

<b>Бонусы:</b>
• Урок по замеру контрольной паузы
• Аудиозапись для медитативного дыхания (15 минут)

<b>Стоимость:</b> <b>990 ₽</b> (вместо 2600 ₽)`,
			ProductInfo: "<b>Стартовый комплект дыхательных практик</b>\n\nВидеоурок (40 минут) с базовыми техниками + PDF-инструкция + бонусные материалы\n\nЦена: <b>990 ₽</b>",
			PDFFile:     "starter-kit-guide.pdf",
			VideoLink:   "https://rutube.ru/video/private/ee9b54060c99464e3b283beab77e9c68/?p=l2hPoyjux4Q8SHJnv7x4Sg",
		},
		{
			ID:          "individual",
			Name:        "Индивидуальное занятие",
			Price:       "2 000 ₽",
			Description: "Персональное 60-минутное занятие с разбором вашей техники дыхания и индивидуальными рекомендациями",
			FullDescription: `<b>👤 Индивидуальные консультации</b>

<b>Для кого:</b> Для тех, кто хочет разобрать свою технику и получить персональные рекомендации

<b>Что входит:</b>
• 1 консультации 60 минут
• Разбор вашей техники дыхания
• Работа с вашими запросами
• Видеозапись консультаций для повторного просмотра

<b>Бонус:</b>
• Бесплатный краткий анализ вашего дыхания перед первой консультацией

<b>Стоимость:</b> <b>2 000 ₽</b> (вместо 2 500 ₽)`,
			ProductInfo:  "<b>Индивидуальное занятие</b>\n\nПерсональное 60-минутное занятие с разбором вашей техники дыхания и индивидуальными рекомендациями\n\nЦена: <b>2 000 ₽</b>",
			Consultation: true,
		},
		{
			ID:          "package",
			Name:        "Пакет из 3-х индивидуальных занятий",
			Price:       "4500 ₽",
			Description: "Три персональных 45-минутных занятия + бесплатный доступ к базовым видеоурокам + индивидуальная программа тренировок",
			FullDescription: `<b>🎯 Пакет из 3-х индивидуальных занятий</b>

<b>Для кого:</b> Для тех, кто хочет достичь устойчивых результатов и получить полноценную программу

<b>Что входит:</b>
• 3 персональных 45-минутных занятия
• Оценка состояния дыхания
• Индивидуальная программа тренировок
• Видеозаписи всех занятий

<b>Преимущества:</b>
• Экономия 1500 ₽ по сравнению с покупкой отдельных занятий
• Возможность распределить занятия в течение 1 месяца
• Отслеживание прогресса с корректировкой программы

<b>Стоимость:</b> <b>4500 ₽</b> (экономия 1500 ₽!)`,
			ProductInfo:  "<b>Пакет из 3-х индивидуальных занятий</b>\n\nТри персональных 45-минутных занятия + Видеозаписи всех занятий + индивидуальная программа тренировок\n\nЦена: <b>4500 ₽</b> (экономия 1500 ₽!)",
			Consultation: true,
		},
		{
			ID:          "course",
			Name:        "Полный курс видеоуроков",
			Price:       "14 999 ₽",
			Description: "4 модуля с видеоуроками + персональные занятия + доступ к сообществу",
			FullDescription: `<b>🏆 Полный курс видеоуроков</b>

<b>Для кого:</b> Для тех, кто хочет комплексно освоить дыхательные практики и добиться максимальных результатов

<b>Что входит:</b>
• 4 модуля с видеоуроками общей продолжительностью более 8 часов
• Комплексное обучение с записями всех уроков
• Доступ к закрытому сообществу практикующих
• 2 бесплатные персональные консультации

<b>Модули курса:</b>
• Модуль 1: Основы дыхания - изучение базовых принципов правильного дыхания
• Модуль 2: Оздоравливающие практики - техники для профилактики более 100 заболеваний
• Модуль 3: Энергетические практики - методы для повышения энергии и работоспособности
• Модуль 4: Правильные привычки - интеграция техник в повседневную жизнь

<b>Бонус:</b>
• Урок по дыхательным практикам для детей

<b>Стоимость:</b> <b>14 999 ₽</b>`,
			ProductInfo:   "<b>Полный курс видеоуроков</b>\n\n4 модуля с видеоуроками + персональные занятия + доступ к сообществу\n\nЦена: <b>14 999 ₽</b>",
			PDFFile:       "full-course-guide.pdf",
			VideoLink:     "https://yourvideo.com/course-intro",
			InDevelopment: true,
		},
	})
}
