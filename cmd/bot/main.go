package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/apopova/breathing-practice-bot/internal/bot"
	"github.com/apopova/breathing-practice-bot/internal/catalog"
	"github.com/apopova/breathing-practice-bot/internal/config"
	"github.com/apopova/breathing-practice-bot/internal/httpx"
	"github.com/apopova/breathing-practice-bot/internal/keepalive"
	"github.com/apopova/breathing-practice-bot/internal/orders"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.BotToken == "" {
		log.Fatal("BOT_TOKEN is not set")
	}
	if cfg.AdminID == 0 {
		log.Println("WARN: ADMIN_ID is not set, admin notifications disabled")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatalf("telegram auth: %v", err)
	}
	log.Printf("authorized as @%s", api.Self.UserName)

	store := orders.NewStore()
	cat := catalog.Default()
	b := bot.New(api, store, cat, cfg.AdminID, cfg.FilesDir)

	if err := b.SetupCommands(); err != nil {
		log.Printf("WARN: %v", err)
	}

	// All inbound updates, webhook or polling, funnel into one channel
	// consumed by a single loop: order state has exactly one writer.
	var updates <-chan tgbotapi.Update
	startTime := time.Now()

	srvOpts := httpx.Options{
		StartTime:   startTime,
		Port:        cfg.Port,
		WebhookMode: cfg.WebhookMode(),
		OrderCounts: store.Counts,
	}

	if cfg.WebhookMode() {
		// A random secret in the path instead of the bot token: the
		// URL ends up in platform logs.
		path := "/webhook/" + uuid.NewString()
		ch := make(chan tgbotapi.Update, 128)
		srvOpts.WebhookPath = path
		srvOpts.WebhookHandler = func(w http.ResponseWriter, r *http.Request) {
			update, err := api.HandleUpdate(r)
			if err != nil {
				log.Printf("webhook: bad update: %v", err)
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			ch <- *update
			w.WriteHeader(http.StatusOK)
		}
		updates = ch

		if err := setupWebhook(api, cfg.AppURL+path); err != nil {
			log.Fatalf("webhook setup: %v", err)
		}
	} else {
		log.Println("WARN: APP_URL is not set, falling back to long polling")
		u := tgbotapi.NewUpdate(0)
		u.Timeout = 60
		updates = api.GetUpdatesChan(u)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		Handler: httpx.NewServer(srvOpts).Router(),
	}
	go func() {
		log.Printf("HTTP listening at %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	if cfg.WebhookMode() {
		go keepalive.SelfPing(ctx, cfg.AppURL, time.Duration(cfg.PingIntervalMin)*time.Minute)
	}
	sched := keepalive.NewScheduler(api, cfg.AdminID, store.Counts)
	go sched.Run(ctx)

	go b.Run(ctx, wrapActivity(ctx, updates, sched))

	notifyStartup(api, cfg, startTime)

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	if cfg.WebhookMode() {
		if _, err := api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
			log.Printf("delete webhook: %v", err)
		}
	}

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	cancel()
}

// setupWebhook points Telegram at our public URL, retrying a few times:
// free-tier DNS is often not ready right after a deploy.
func setupWebhook(api *tgbotapi.BotAPI, url string) error {
	var lastErr error
	for attempt := 1; attempt <= 5; attempt++ {
		log.Printf("webhook setup attempt %d/5", attempt)
		lastErr = trySetWebhook(api, url)
		if lastErr == nil {
			log.Printf("webhook configured at %s", url)
			return nil
		}
		log.Printf("webhook setup: %v", lastErr)
		time.Sleep(5 * time.Second)
	}
	return lastErr
}

func trySetWebhook(api *tgbotapi.BotAPI, url string) error {
	if _, err := api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		return fmt.Errorf("delete old webhook: %w", err)
	}

	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return fmt.Errorf("build webhook config: %w", err)
	}
	if _, err := api.Request(wh); err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}

	info, err := api.GetWebhookInfo()
	if err != nil {
		return fmt.Errorf("verify webhook: %w", err)
	}
	if info.URL != url {
		return fmt.Errorf("webhook url mismatch: telegram reports %q", info.URL)
	}
	return nil
}

// wrapActivity marks scheduler activity for every inbound update.
func wrapActivity(ctx context.Context, in <-chan tgbotapi.Update, sched *keepalive.Scheduler) <-chan tgbotapi.Update {
	out := make(chan tgbotapi.Update)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case u, ok := <-in:
				if !ok {
					return
				}
				sched.MarkActivity()
				out <- u
			}
		}
	}()
	return out
}

func notifyStartup(api *tgbotapi.BotAPI, cfg config.Config, startTime time.Time) {
	if cfg.AdminID == 0 {
		return
	}
	mode := "long polling"
	if cfg.WebhookMode() {
		mode = "webhook"
	}
	text := fmt.Sprintf("🤖 Бот запущен (%s)!\n\nВремя запуска: %s\nИмя бота: @%s\nPORT: %d",
		mode, startTime.Format("02.01.2006 15:04:05"), api.Self.UserName, cfg.Port)
	if _, err := api.Send(tgbotapi.NewMessage(cfg.AdminID, text)); err != nil {
		log.Printf("startup notice: %v", err)
	}
}
