package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/uzagro/omborbot/internal/config"
	"github.com/uzagro/omborbot/internal/domain/models"
	"github.com/uzagro/omborbot/internal/repository/agroapi"
	"github.com/uzagro/omborbot/internal/repository/mongodb"
	"github.com/uzagro/omborbot/internal/repository/sheets"
	"github.com/uzagro/omborbot/internal/service/bot"
	"github.com/uzagro/omborbot/internal/service/navigation"
	"github.com/uzagro/omborbot/internal/service/report"
)

// Scheduler runs the nightly by-district snapshot job: for each
// warehouse it pushes the report to the group chat, persists it to
// MongoDB and mirrors it to the spreadsheet when configured.
type Scheduler struct {
	cron     *cron.Cron
	api      agroapi.Client
	bot      bot.Service
	store    mongodb.Repository
	mirror   sheets.Repository
	cfg      config.Config
	location *time.Location
	logger   *zap.Logger
}

// NewScheduler creates a new scheduler instance. mirror may be nil when
// the spreadsheet mirror is disabled.
func NewScheduler(cfg config.Config, api agroapi.Client, botSvc bot.Service, store mongodb.Repository, mirror sheets.Repository, location *time.Location, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if location == nil {
		location = time.UTC
	}

	// robfig/cron/v3 default parser is standard cron (5 fields: min,
	// hour, dom, month, dow); the location pins "20:00" to local time.
	c := cron.New(cron.WithLocation(location))

	return &Scheduler{
		cron:     c,
		api:      api,
		bot:      botSvc,
		store:    store,
		mirror:   mirror,
		cfg:      cfg,
		location: location,
		logger:   logger,
	}
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.Reporting.CronSchedule))

	_, err := s.cron.AddFunc(s.cfg.Reporting.CronSchedule, s.runNightlySnapshot)
	if err != nil {
		s.logger.Error("failed to schedule nightly snapshot", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runNightlySnapshot() {
	s.logger.Info("generating nightly snapshots")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	warehouses, err := s.api.Warehouses(ctx)
	if err != nil {
		s.logger.Error("failed to list warehouses", zap.Error(err))
		return
	}

	for _, warehouse := range warehouses {
		if warehouse.ID == 0 {
			continue
		}
		if err := s.snapshotWarehouse(ctx, warehouse); err != nil {
			s.logger.Error("snapshot failed",
				zap.Int("warehouse_id", warehouse.ID),
				zap.String("warehouse", warehouse.Name),
				zap.Error(err))
		}
	}
}

func (s *Scheduler) snapshotWarehouse(ctx context.Context, warehouse models.Warehouse) error {
	today := time.Now().In(s.location)

	movements, err := s.api.Movements(ctx, string(navigation.SectionOut), warehouse.ID, 0, 0)
	if err != nil {
		return err
	}
	totals, err := s.api.Totals(ctx, warehouse.ID, 0, 0)
	if err != nil {
		return err
	}

	rows := report.DistrictRows(movements, today)
	if len(rows) == 0 {
		s.logger.Info("no issue rows for warehouse, skipping",
			zap.Int("warehouse_id", warehouse.ID))
		return nil
	}

	page := report.Paginate(rows, 1, len(rows))
	text := report.ReportPage(warehouse.Name, "Барча маҳсулотлар", totals, page, rows, today)
	if err := s.bot.SendText(ctx, s.cfg.Telegram.GroupChatID, "<pre>"+text+"</pre>"); err != nil {
		s.logger.Error("failed to push snapshot to group chat", zap.Error(err))
	}

	snapshot := buildSnapshot(warehouse, rows, today)
	if err := s.store.SaveDailySnapshot(ctx, snapshot); err != nil {
		return err
	}

	if s.mirror != nil {
		if err := s.mirror.AppendSnapshot(ctx, snapshot); err != nil {
			s.logger.Error("failed to mirror snapshot", zap.Error(err))
		}
	}

	s.logger.Info("snapshot stored",
		zap.Int("warehouse_id", warehouse.ID),
		zap.Int("districts", len(rows)))
	return nil
}

func buildSnapshot(warehouse models.Warehouse, rows []models.DistrictSummary, today time.Time) models.DailySnapshot {
	snapshotRows := make([]models.DistrictSnapshotRow, 0, len(rows))
	for _, row := range rows {
		snapshotRows = append(snapshotRows, models.DistrictSnapshotRow{
			DistrictName:  row.DistrictName,
			TodayQuantity: row.TodayQuantity.InexactFloat64(),
			TotalQuantity: row.TotalQuantity.InexactFloat64(),
		})
	}

	todayTotal, seasonTotal := report.GrandTotal(rows)

	return models.DailySnapshot{
		Date:          time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location()),
		WarehouseID:   warehouse.ID,
		WarehouseName: warehouse.Name,
		Rows:          snapshotRows,
		TodayTotal:    todayTotal.InexactFloat64(),
		SeasonTotal:   seasonTotal.InexactFloat64(),
		CreatedAt:     time.Now(),
	}
}
