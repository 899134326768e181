package bot

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/apopova/breathing-practice-bot/internal/catalog"
	"github.com/apopova/breathing-practice-bot/internal/orders"
)

const (
	adminID int64 = 99
	buyerID int64 = 42
)

// fakeAPI records everything the bot tries to send.
type fakeAPI struct {
	sent       []tgbotapi.Chattable
	requests   []tgbotapi.Chattable
	getChatErr error
	sendErr    map[int]error // by send index
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	idx := len(f.sent)
	f.sent = append(f.sent, c)
	if err := f.sendErr[idx]; err != nil {
		return tgbotapi.Message{}, err
	}
	return tgbotapi.Message{MessageID: idx + 1}, nil
}

func (f *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeAPI) GetChat(tgbotapi.ChatInfoConfig) (tgbotapi.Chat, error) {
	if f.getChatErr != nil {
		return tgbotapi.Chat{}, f.getChatErr
	}
	return tgbotapi.Chat{FirstName: "Иван", LastName: "Петров"}, nil
}

func chatIDOf(c tgbotapi.Chattable) int64 {
	switch v := c.(type) {
	case tgbotapi.MessageConfig:
		return v.ChatID
	case tgbotapi.PhotoConfig:
		return v.ChatID
	case tgbotapi.DocumentConfig:
		return v.ChatID
	case tgbotapi.EditMessageTextConfig:
		return v.ChatID
	}
	return 0
}

func (f *fakeAPI) sentTo(chatID int64) []tgbotapi.Chattable {
	var out []tgbotapi.Chattable
	for _, c := range f.sent {
		if chatIDOf(c) == chatID {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeAPI) textsTo(chatID int64) []string {
	var out []string
	for _, c := range f.sentTo(chatID) {
		switch v := c.(type) {
		case tgbotapi.MessageConfig:
			out = append(out, v.Text)
		case tgbotapi.EditMessageTextConfig:
			out = append(out, v.Text)
		}
	}
	return out
}

func newTestBot(t *testing.T, api *fakeAPI) (*Bot, *orders.Store) {
	t.Helper()

	dir := t.TempDir()
	for _, name := range []string{"logo.jpg", "starter-kit-guide.pdf", "full-course-guide.pdf"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("stub"), 0o644); err != nil {
			t.Fatalf("write stub asset: %v", err)
		}
	}

	store := orders.NewStore()
	b := New(api, store, catalog.Default(), adminID, dir)
	b.sendDelay = 0
	return b, store
}

func textMessage(from, chat int64, text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		From: &tgbotapi.User{ID: from, FirstName: "Иван"},
		Chat: &tgbotapi.Chat{ID: chat},
		Text: text,
	}}
}

func command(from, chat int64, text string) tgbotapi.Update {
	u := textMessage(from, chat, text)
	u.Message.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(strings.Fields(text)[0])}}
	return u
}

func callback(from int64, data string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:   "cb",
		From: &tgbotapi.User{ID: from},
		Data: data,
		Message: &tgbotapi.Message{
			MessageID: 7,
			Chat:      &tgbotapi.Chat{ID: from},
		},
	}}
}

func placeOrder(t *testing.T, b *Bot, store *orders.Store, productID string) {
	t.Helper()

	b.HandleUpdate(callback(buyerID, "confirm_buy_"+productID))
	b.HandleUpdate(textMessage(buyerID, buyerID, "a@b.com"))
	b.HandleUpdate(textMessage(buyerID, buyerID, "+79991234567"))

	pending, ok := store.Pending(buyerID)
	if !ok {
		t.Fatal("pending order should exist")
	}
	if pending.Status != orders.StatusAwaitingPayment {
		t.Fatalf("expected awaiting_payment, got %s", pending.Status)
	}
}

func TestIntakeHappyPath(t *testing.T) {
	api := &fakeAPI{}
	b, store := newTestBot(t, api)

	b.HandleUpdate(callback(buyerID, "confirm_buy_starter"))
	pending, ok := store.Pending(buyerID)
	if !ok || pending.Status != orders.StatusAwaitingEmail {
		t.Fatalf("expected awaiting_email, got %+v (ok=%v)", pending, ok)
	}

	b.HandleUpdate(textMessage(buyerID, buyerID, "a@b.com"))
	pending, _ = store.Pending(buyerID)
	if pending.Status != orders.StatusAwaitingPhone {
		t.Fatalf("expected awaiting_phone, got %s", pending.Status)
	}

	adminBefore := len(api.sentTo(adminID))
	b.HandleUpdate(textMessage(buyerID, buyerID, "+7 999 123 45 67"))
	pending, _ = store.Pending(buyerID)
	if pending.Status != orders.StatusAwaitingPayment {
		t.Fatalf("expected awaiting_payment, got %s", pending.Status)
	}
	if pending.Phone != "+79991234567" {
		t.Fatalf("phone should be stored cleaned, got %q", pending.Phone)
	}

	adminMsgs := api.sentTo(adminID)[adminBefore:]
	if len(adminMsgs) != 1 {
		t.Fatalf("admin notification should fire exactly once, got %d", len(adminMsgs))
	}
	notif := adminMsgs[0].(tgbotapi.MessageConfig)
	for _, needle := range []string{"НОВЫЙ ЗАКАЗ", "a@b.com", "+79991234567", "Иван Петров", "/confirm_42"} {
		if !strings.Contains(notif.Text, needle) {
			t.Fatalf("admin notification missing %q:\n%s", needle, notif.Text)
		}
	}
}

func TestIntakeRejectsInvalidInput(t *testing.T) {
	api := &fakeAPI{}
	b, store := newTestBot(t, api)

	b.HandleUpdate(callback(buyerID, "confirm_buy_starter"))

	b.HandleUpdate(textMessage(buyerID, buyerID, "not-an-email"))
	pending, _ := store.Pending(buyerID)
	if pending.Status != orders.StatusAwaitingEmail {
		t.Fatalf("invalid email must not advance, got %s", pending.Status)
	}
	texts := api.textsTo(buyerID)
	if texts[len(texts)-1] != msgEmailInvalid {
		t.Fatalf("expected email re-prompt, got %q", texts[len(texts)-1])
	}

	b.HandleUpdate(textMessage(buyerID, buyerID, "a@b.com"))
	b.HandleUpdate(textMessage(buyerID, buyerID, "12345"))
	pending, _ = store.Pending(buyerID)
	if pending.Status != orders.StatusAwaitingPhone {
		t.Fatalf("invalid phone must not advance, got %s", pending.Status)
	}
	texts = api.textsTo(buyerID)
	if texts[len(texts)-1] != msgPhoneInvalid {
		t.Fatalf("expected phone re-prompt, got %q", texts[len(texts)-1])
	}
}

func TestTextWithoutOrderGetsMenuHint(t *testing.T) {
	api := &fakeAPI{}
	b, _ := newTestBot(t, api)

	b.HandleUpdate(textMessage(buyerID, buyerID, "привет"))

	texts := api.textsTo(buyerID)
	if len(texts) != 1 || texts[0] != msgMenuHint {
		t.Fatalf("expected menu hint, got %v", texts)
	}
}

func TestViewUnknownProduct(t *testing.T) {
	api := &fakeAPI{}
	b, _ := newTestBot(t, api)

	b.HandleUpdate(callback(buyerID, "buy_ghost"))

	if len(api.requests) == 0 {
		t.Fatal("stale button should still get a callback answer")
	}
	answer := api.requests[len(api.requests)-1].(tgbotapi.CallbackConfig)
	if answer.Text != msgProductNotFound {
		t.Fatalf("expected product-not-found answer, got %q", answer.Text)
	}
}

// Scenario A: materials product goes through the whole funnel and the
// buyer receives the full delivery sequence.
func TestConfirmDeliversMaterials(t *testing.T) {
	api := &fakeAPI{}
	b, store := newTestBot(t, api)
	placeOrder(t, b, store, "starter")

	buyerBefore := len(api.sentTo(buyerID))
	b.HandleUpdate(callback(adminID, "confirm_payment_42"))

	if _, ok := store.Pending(buyerID); ok {
		t.Fatal("pending slot should be cleared after confirm")
	}
	completed := store.Completed(buyerID)
	if len(completed) != 1 {
		t.Fatalf("expected 1 completed order, got %d", len(completed))
	}
	done := completed[0]
	if done.Status != orders.StatusCompleted {
		t.Fatalf("expected completed status, got %s", done.Status)
	}
	if done.ProductID != "starter" || done.Email != "a@b.com" || done.Phone != "+79991234567" {
		t.Fatalf("archive snapshot mismatch: %+v", done)
	}

	delivered := api.sentTo(buyerID)[buyerBefore:]
	if len(delivered) != 5 {
		t.Fatalf("expected 5 buyer sends (confirmation, photo, pdf, video, closing), got %d", len(delivered))
	}
	if _, ok := delivered[1].(tgbotapi.PhotoConfig); !ok {
		t.Fatalf("second send should be the photo, got %T", delivered[1])
	}
	if _, ok := delivered[2].(tgbotapi.DocumentConfig); !ok {
		t.Fatalf("third send should be the PDF, got %T", delivered[2])
	}
	video := delivered[3].(tgbotapi.MessageConfig)
	if !strings.Contains(video.Text, "rutube.ru") {
		t.Fatalf("video message should carry the link, got %q", video.Text)
	}

	receipt := api.textsTo(adminID)
	last := receipt[len(receipt)-1]
	if !strings.Contains(last, done.OrderID) {
		t.Fatalf("admin receipt should carry order id %s, got %q", done.OrderID, last)
	}
}

// Scenario B: consultation product gets a confirmation only.
func TestConfirmConsultationSendsNoAssets(t *testing.T) {
	api := &fakeAPI{}
	b, store := newTestBot(t, api)
	placeOrder(t, b, store, "individual")

	buyerBefore := len(api.sentTo(buyerID))
	b.HandleUpdate(callback(adminID, "confirm_payment_42"))

	delivered := api.sentTo(buyerID)[buyerBefore:]
	if len(delivered) != 1 {
		t.Fatalf("consultation delivery should be a single confirmation, got %d sends", len(delivered))
	}
	msg := delivered[0].(tgbotapi.MessageConfig)
	if !strings.Contains(msg.Text, "Оплата подтверждена") {
		t.Fatalf("expected confirmation text, got %q", msg.Text)
	}

	if len(store.Completed(buyerID)) != 1 {
		t.Fatal("consultation order should be archived")
	}
}

// Scenario C: confirming or cancelling with nothing pending reports
// "not found" and leaves the store untouched.
func TestAdminActionsOnMissingOrder(t *testing.T) {
	api := &fakeAPI{}
	b, store := newTestBot(t, api)

	b.HandleUpdate(callback(adminID, "cancel_order_42"))
	b.HandleUpdate(command(adminID, adminID, "/confirm_42"))

	texts := api.textsTo(adminID)
	if len(texts) != 2 {
		t.Fatalf("expected 2 admin replies, got %d", len(texts))
	}
	for _, text := range texts {
		if !strings.Contains(text, "не найден") {
			t.Fatalf("expected not-found reply, got %q", text)
		}
	}
	if pending, completed := store.Counts(); pending != 0 || completed != 0 {
		t.Fatalf("store must stay untouched, got %d/%d", pending, completed)
	}
}

func TestCancelPendingOrder(t *testing.T) {
	api := &fakeAPI{}
	b, store := newTestBot(t, api)
	placeOrder(t, b, store, "starter")

	b.HandleUpdate(callback(adminID, "cancel_order_42"))

	if _, ok := store.Pending(buyerID); ok {
		t.Fatal("pending order should be gone")
	}
	texts := api.textsTo(buyerID)
	if !strings.Contains(texts[len(texts)-1], "отменен") {
		t.Fatalf("buyer should see the cancellation, got %q", texts[len(texts)-1])
	}
}

func TestNonAdminCannotConfirm(t *testing.T) {
	api := &fakeAPI{}
	b, store := newTestBot(t, api)
	placeOrder(t, b, store, "starter")

	b.HandleUpdate(callback(buyerID, "confirm_payment_42"))

	if _, ok := store.Pending(buyerID); !ok {
		t.Fatal("order must stay pending")
	}
	answer := api.requests[len(api.requests)-1].(tgbotapi.CallbackConfig)
	if !strings.Contains(answer.Text, "нет доступа") {
		t.Fatalf("expected access denied, got %q", answer.Text)
	}
}

func TestAdminNameLookupFailureDoesNotAbort(t *testing.T) {
	api := &fakeAPI{getChatErr: errors.New("chat not found")}
	b, store := newTestBot(t, api)
	placeOrder(t, b, store, "starter")

	found := false
	for _, text := range api.textsTo(adminID) {
		if strings.Contains(text, "НОВЫЙ ЗАКАЗ") && strings.Contains(text, "Пользователь") {
			found = true
		}
	}
	if !found {
		t.Fatal("notification should fall back to the generic name")
	}
}

func TestRecordingFlow(t *testing.T) {
	api := &fakeAPI{}
	b, store := newTestBot(t, api)
	placeOrder(t, b, store, "individual")
	b.HandleUpdate(callback(adminID, "confirm_payment_42"))

	b.HandleUpdate(callback(adminID, "send_recording_42"))
	if b.adminSession == nil {
		t.Fatal("recording session should be open")
	}

	b.HandleUpdate(textMessage(adminID, adminID, "https://rec/42"))
	b.HandleUpdate(textMessage(adminID, adminID, "дышите глубже"))

	if b.adminSession != nil {
		t.Fatal("session should be closed")
	}
	completed := store.Completed(buyerID)
	if !completed[0].RecordingSent || completed[0].RecordingLink != "https://rec/42" {
		t.Fatalf("recording not attached: %+v", completed[0])
	}
	if completed[0].RecordingNotes != "дышите глубже" {
		t.Fatalf("notes not attached: %+v", completed[0])
	}

	texts := api.textsTo(buyerID)
	last := texts[len(texts)-1]
	if !strings.Contains(last, "https://rec/42") || !strings.Contains(last, "дышите глубже") {
		t.Fatalf("buyer should receive link and notes, got %q", last)
	}
}

func TestRecordingNotesSkipped(t *testing.T) {
	api := &fakeAPI{}
	b, store := newTestBot(t, api)
	placeOrder(t, b, store, "individual")
	b.HandleUpdate(callback(adminID, "confirm_payment_42"))

	b.HandleUpdate(callback(adminID, "send_recording_42"))
	b.HandleUpdate(textMessage(adminID, adminID, "https://rec/42"))
	b.HandleUpdate(textMessage(adminID, adminID, "нет"))

	completed := store.Completed(buyerID)
	if completed[0].RecordingNotes != "" {
		t.Fatalf("notes should be skipped, got %q", completed[0].RecordingNotes)
	}
}

func TestRecordingWithoutConsultationOrder(t *testing.T) {
	api := &fakeAPI{}
	b, store := newTestBot(t, api)
	placeOrder(t, b, store, "starter")
	b.HandleUpdate(callback(adminID, "confirm_payment_42"))

	b.HandleUpdate(callback(adminID, "send_recording_42"))
	b.HandleUpdate(textMessage(adminID, adminID, "https://rec/42"))
	b.HandleUpdate(textMessage(adminID, adminID, "нет"))

	texts := api.textsTo(adminID)
	if !strings.Contains(texts[len(texts)-1], "нет завершенных консультаций") {
		t.Fatalf("expected not-found report, got %q", texts[len(texts)-1])
	}
}

func TestSecondRecordingTriggerOverwritesSlot(t *testing.T) {
	api := &fakeAPI{}
	b, store := newTestBot(t, api)
	placeOrder(t, b, store, "individual")
	b.HandleUpdate(callback(adminID, "confirm_payment_42"))

	b.HandleUpdate(callback(adminID, "send_recording_41"))
	b.HandleUpdate(callback(adminID, "send_recording_42"))

	if b.adminSession.clientID != 42 {
		t.Fatalf("slot should hold the latest client, got %d", b.adminSession.clientID)
	}
}

func TestMissingPDFIsRecoverable(t *testing.T) {
	api := &fakeAPI{}
	b, store := newTestBot(t, api)
	if err := os.Remove(filepath.Join(b.filesDir, "starter-kit-guide.pdf")); err != nil {
		t.Fatalf("remove stub: %v", err)
	}
	placeOrder(t, b, store, "starter")

	b.HandleUpdate(callback(adminID, "confirm_payment_42"))

	if len(store.Completed(buyerID)) != 1 {
		t.Fatal("order must complete despite the missing asset")
	}
	foundBuyer, foundAdmin := false, false
	for _, text := range api.textsTo(buyerID) {
		if text == msgDocumentMissing {
			foundBuyer = true
		}
	}
	for _, text := range api.textsTo(adminID) {
		if strings.Contains(text, "не найден, клиент") {
			foundAdmin = true
		}
	}
	if !foundBuyer || !foundAdmin {
		t.Fatalf("both sides should hear about the missing PDF (buyer=%v admin=%v)", foundBuyer, foundAdmin)
	}
}

func TestDeliverySendFailureDoesNotAbort(t *testing.T) {
	api := &fakeAPI{sendErr: map[int]error{}}
	b, store := newTestBot(t, api)
	placeOrder(t, b, store, "starter")

	// Fail the photo send, the first delivery step after confirmation.
	api.sendErr[len(api.sent)+1] = errors.New("telegram: flood wait")
	b.HandleUpdate(callback(adminID, "confirm_payment_42"))

	if len(store.Completed(buyerID)) != 1 {
		t.Fatal("order must stay completed when a delivery step fails")
	}
	// The document, video and closing steps must still have gone out.
	var docs int
	for _, c := range api.sentTo(buyerID) {
		if _, ok := c.(tgbotapi.DocumentConfig); ok {
			docs++
		}
	}
	if docs != 1 {
		t.Fatalf("PDF should still be delivered, got %d documents", docs)
	}
	foundApology := false
	for _, text := range api.textsTo(buyerID) {
		if text == msgError {
			foundApology = true
		}
	}
	if !foundApology {
		t.Fatal("buyer should get the generic apology")
	}
}

func TestStartOrderReplacesPendingViaBot(t *testing.T) {
	api := &fakeAPI{}
	b, store := newTestBot(t, api)

	b.HandleUpdate(callback(buyerID, "confirm_buy_starter"))
	b.HandleUpdate(callback(buyerID, "confirm_buy_individual"))

	pending, _ := store.Pending(buyerID)
	if pending.ProductID != "individual" {
		t.Fatalf("latest order should win, got %s", pending.ProductID)
	}
}

func TestPurchasesListAfterConfirm(t *testing.T) {
	api := &fakeAPI{}
	b, store := newTestBot(t, api)
	placeOrder(t, b, store, "starter")
	b.HandleUpdate(callback(adminID, "confirm_payment_42"))
	done := store.Completed(buyerID)[0]

	b.HandleUpdate(command(buyerID, buyerID, "/purchases"))

	texts := api.textsTo(buyerID)
	list := texts[len(texts)-1]
	if !strings.Contains(list, "Стартовый комплект") || !strings.Contains(list, done.OrderID) {
		t.Fatalf("purchase list should show product and order id, got %q", list)
	}
}
