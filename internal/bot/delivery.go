package bot

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/apopova/breathing-practice-bot/internal/catalog"
)

// deliver sends the purchased assets to the buyer. Consultation products
// get only the confirmation (the session itself is scheduled off-band);
// material products get the photo, the PDF, the video link and a closing
// note, in that order. Each step recovers independently: a failed send
// is logged and reported, but the remaining steps still run and the
// order stays completed — payment already happened.
func (b *Bot) deliver(clientID int64, p catalog.Product) {
	if p.Consultation {
		return
	}

	failed := false

	photo := tgbotapi.NewPhoto(clientID, tgbotapi.FilePath(filepath.Join(b.filesDir, "logo.jpg")))
	photo.Caption = fmt.Sprintf("✅ Ваш заказ \"%s\" оплачен. Отправляю материалы.", p.Name)
	if !b.send(clientID, photo) {
		failed = true
	}
	b.pause()

	if p.PDFFile != "" {
		b.deliverDocument(clientID, p, &failed)
		b.pause()
	}

	if p.VideoLink != "" {
		if !b.sendMarkdown(clientID, msgVideoLesson(p.VideoLink)) {
			failed = true
		}
		b.pause()
	}

	if !b.sendMarkdown(clientID, msgOrderComplete) {
		failed = true
	}

	if failed {
		b.sendText(clientID, msgError)
		b.sendText(b.adminID, fmt.Sprintf("⚠️ Не все материалы по заказу клиента %d доставлены, проверьте логи.", clientID))
	}
}

// deliverDocument sends the PDF guide. A missing file on disk is a
// recoverable condition: both sides are told, the rest of the delivery
// continues.
func (b *Bot) deliverDocument(clientID int64, p catalog.Product, failed *bool) {
	path := filepath.Join(b.filesDir, p.PDFFile)
	if _, err := os.Stat(path); err != nil {
		log.Printf("pdf for product %s missing at %s: %v", p.ID, path, err)
		b.sendText(clientID, msgDocumentMissing)
		b.sendText(b.adminID, fmt.Sprintf("⚠️ Файл %s не найден, клиент %d не получил PDF.", path, clientID))
		return
	}

	doc := tgbotapi.NewDocument(clientID, tgbotapi.FilePath(path))
	doc.Caption = fmt.Sprintf("📄 PDF-инструкция к \"%s\"", p.Name)
	if !b.send(clientID, doc) {
		*failed = true
	}
}
