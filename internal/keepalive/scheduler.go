package keepalive

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// telegramAPI is the slice of the Telegram client the scheduler needs.
type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetMe() (tgbotapi.User, error)
}

// Scheduler produces synthetic activity so the hosting platform sees a
// live process, probes the Telegram API connection, and sends the admin
// a periodic stats report during working hours.
type Scheduler struct {
	api         telegramAPI
	adminID     int64
	orderCounts func() (pending, completed int)
	start       time.Time

	probeEvery    time.Duration
	reportEvery   time.Duration
	activityEvery time.Duration

	mu           sync.Mutex
	pingCount    int
	apiCalls     int
	lastActivity time.Time
}

func NewScheduler(api telegramAPI, adminID int64, orderCounts func() (int, int)) *Scheduler {
	return &Scheduler{
		api:           api,
		adminID:       adminID,
		orderCounts:   orderCounts,
		start:         time.Now(),
		probeEvery:    30 * time.Minute,
		reportEvery:   4 * time.Hour,
		activityEvery: 10 * time.Minute,
		lastActivity:  time.Now(),
	}
}

func (s *Scheduler) Run(ctx context.Context) {
	probe := time.NewTicker(s.probeEvery)
	report := time.NewTicker(s.reportEvery)
	activity := time.NewTicker(s.activityEvery)
	defer probe.Stop()
	defer report.Stop()
	defer activity.Stop()

	log.Printf("scheduler started (probe %s, report %s, activity %s)",
		s.probeEvery, s.reportEvery, s.activityEvery)

	for {
		select {
		case <-ctx.Done():
			return
		case <-probe.C:
			s.probeAPI()
		case <-report.C:
			s.reportStats(time.Now())
		case <-activity.C:
			s.tick()
		}
	}
}

// MarkActivity records an inbound update; the stats report shows when
// the bot last did real work.
func (s *Scheduler) MarkActivity() {
	s.mu.Lock()
	s.lastActivity = time.Now()
	s.mu.Unlock()
}

func (s *Scheduler) probeAPI() {
	me, err := s.api.GetMe()
	if err != nil {
		log.Printf("telegram api probe: %v", err)
		return
	}
	s.mu.Lock()
	s.apiCalls++
	s.mu.Unlock()
	log.Printf("telegram api connection alive (bot @%s)", me.UserName)
}

func (s *Scheduler) tick() {
	s.mu.Lock()
	s.pingCount++
	n := s.pingCount
	s.mu.Unlock()
	log.Printf("synthetic activity tick #%d", n)
}

// reportStats messages the admin, but only between 09:00 and 21:00 so
// the report never wakes anyone up.
func (s *Scheduler) reportStats(now time.Time) {
	if s.adminID == 0 {
		return
	}
	if h := now.Hour(); h < 9 || h >= 21 {
		return
	}

	s.mu.Lock()
	pingCount := s.pingCount
	apiCalls := s.apiCalls
	lastActivity := s.lastActivity
	s.mu.Unlock()

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	pending, completed := 0, 0
	if s.orderCounts != nil {
		pending, completed = s.orderCounts()
	}

	text := fmt.Sprintf(`📊 *Статистика работы бота*

⏱ Время работы: %s
🔄 Количество пингов: %d
📡 Вызовы API Telegram: %d
🕒 Последняя активность: %s

🛒 Заказы в работе: %d
✅ Завершенные заказы: %d

💾 Использование памяти: %d МБ`,
		FormatUptime(time.Since(s.start)),
		pingCount, apiCalls,
		lastActivity.Format("02.01.2006 15:04"),
		pending, completed,
		mem.Sys/1024/1024)

	msg := tgbotapi.NewMessage(s.adminID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := s.api.Send(msg); err != nil {
		log.Printf("send stats report: %v", err)
		return
	}
	log.Printf("stats report sent to admin")
}
