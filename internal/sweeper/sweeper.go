package sweeper

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Таймаут на один проход очистки
const sweepTimeout = time.Minute

// Sweeper фоновая очистка устаревшего инвентаря слотов
//
// По расписанию удаляет свободные слоты, закончившиеся раньше порога
// хранения. Занятые слоты не трогает: история бронирований ссылается
// на них и остаётся доступной через API
type Sweeper struct {
	slotRepo      SlotRepository
	retentionDays int
	schedule      string
	cron          *cron.Cron
	logger        Logger
}

// New создает новый экземпляр очистки слотов
func New(slotRepo SlotRepository, retentionDays int, schedule string, logger Logger) *Sweeper {
	return &Sweeper{
		slotRepo:      slotRepo,
		retentionDays: retentionDays,
		schedule:      schedule,
		cron:          cron.New(),
		logger:        logger,
	}
}

// Start запускает очистку по расписанию
func (s *Sweeper) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.sweep); err != nil {
		return fmt.Errorf("sweeper: invalid schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	s.logger.Info("Sweeper started: schedule=%q, retention=%d days", s.schedule, s.retentionDays)
	return nil
}

// Stop останавливает планировщик и ждет завершения текущего прохода
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Sweeper stopped")
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	cutoff := time.Now().UTC().AddDate(0, 0, -s.retentionDays)

	purged, err := s.slotRepo.PurgeAvailableBefore(ctx, cutoff)
	if err != nil {
		s.logger.Error("Sweep failed: cutoff=%s, error=%v", cutoff.Format(time.RFC3339), err)
		return
	}

	s.logger.Info("Sweep completed: purged %d slots ended before %s", purged, cutoff.Format(time.RFC3339))
}
