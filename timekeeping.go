package main

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/huyquangvevo/vcs-chamcong-report/attendance"
	"github.com/huyquangvevo/vcs-chamcong-report/internal/config"
	"github.com/huyquangvevo/vcs-chamcong-report/internal/notify"
	"github.com/huyquangvevo/vcs-chamcong-report/internal/report"
	"github.com/huyquangvevo/vcs-chamcong-report/internal/storage"
)

// Timekeeping owns the connections a command needs.
type Timekeeping struct {
	Config  *config.Config
	Log     *zap.Logger
	SqlDB   *gorm.DB
	Mongo   *mongo.Client
	Reports *report.Service
	Mail    *notify.Mailer
}

func NewTimekeeping(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Timekeeping, error) {
	d := &Timekeeping{Config: cfg, Log: log}

	sqlDB, err := storage.OpenMySQL(cfg.MySQL.DSN(), log)
	if err != nil {
		return nil, err
	}
	d.SqlDB = sqlDB

	client, err := storage.OpenMongo(ctx, cfg.Mongo.URI)
	if err != nil {
		d.Close(ctx)
		return nil, err
	}
	d.Mongo = client

	var extra []string
	if cfg.HolidayFile != "" {
		if extra, err = storage.LoadHolidayFile(cfg.HolidayFile); err != nil {
			d.Close(ctx)
			return nil, err
		}
		log.Info("holiday file loaded", zap.String("path", cfg.HolidayFile), zap.Int("holidays", len(extra)))
	}

	dir := storage.NewDirectory(sqlDB)
	col := client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)
	d.Reports = &report.Service{
		Employees:     dir,
		Holidays:      dir,
		Punches:       storage.NewPunchStore(col, cfg.Location),
		ExtraHolidays: extra,
		Workers:       cfg.Workers,
		MaxRangeDays:  cfg.MaxDays,
		Log:           log.Named("report"),
	}
	d.Mail = &notify.Mailer{
		Sender:   notify.NewDialer(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Password),
		From:     cfg.Mail.User,
		Subject:  cfg.Mail.Subject,
		Template: cfg.Mail.Template,
		Log:      log.Named("mail"),
	}
	return d, nil
}

func (d *Timekeeping) Close(ctx context.Context) {
	if d.Mongo != nil {
		if err := d.Mongo.Disconnect(ctx); err != nil {
			d.Log.Warn("disconnect mongo", zap.Error(err))
		}
	}
	if d.SqlDB != nil {
		if sqlDB, err := d.SqlDB.DB(); err == nil {
			sqlDB.Close()
		}
	}
}

// alert classifies every employee for date and mails each department's
// summary to its manager.
func (d *Timekeeping) alert(ctx context.Context, date time.Time) error {
	res, err := d.Reports.Generate(ctx, report.Request{From: date, To: date})
	if err != nil {
		return err
	}
	sent, err := d.Mail.SendDepartmentAlerts(ctx, date, res.Rows, res.Employees)
	d.Log.Info("alerts sent",
		zap.String("date", attendance.FormatDate(date)),
		zap.Int("rows", len(res.Rows)),
		zap.Int("mails", sent),
	)
	if err != nil {
		return fmt.Errorf("send alerts: %w", err)
	}
	return nil
}
