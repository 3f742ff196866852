package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm"

	"atmosaether/internal/app"
	"atmosaether/internal/config"
	"atmosaether/internal/model"
	"atmosaether/internal/notify"
	mysqlClient "atmosaether/internal/platform/mysql"
	rabbitmqClient "atmosaether/internal/platform/rabbitmq"
	"atmosaether/internal/repository"
	"atmosaether/internal/worker"
)

// App holds the process-wide state: one store handle and one notifier
// wiring, created at startup and injected into every request handler.
type App struct {
	Config *config.Config
	MySQL  *gorm.DB
	MQConn *amqp.Connection

	// Notifier is nil when Twilio credentials are absent; the contact
	// endpoint then reports not_configured without failing.
	Notifier         app.ContactNotifier
	NotifierDeferred bool
	NotifyWorker     *worker.NotifyDispatchWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	mysqlDB, err := mysqlClient.New(ctx, cfg.MySQL.DSN)
	if err != nil {
		return nil, err
	}
	if err := mysqlDB.AutoMigrate(
		&model.ContactSubmission{},
		&model.User{},
		&model.Session{},
		&model.ChatTurn{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	a := &App{
		Config:    cfg,
		MySQL:     mysqlDB,
		StartedAt: time.Now(),
	}

	if !cfg.WhatsAppConfigured() {
		log.Printf("whatsapp credentials absent, contact notifications disabled")
		return a, nil
	}

	sender := notify.NewWhatsAppSender(
		cfg.WhatsApp.AccountSID,
		cfg.WhatsApp.AuthToken,
		cfg.WhatsApp.FromNumber,
		cfg.WhatsApp.ToNumber,
	)

	if cfg.RabbitMQ.URL == "" {
		a.Notifier = sender
		return a, nil
	}

	mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL)
	if err != nil {
		return nil, err
	}

	contactRepo := repository.NewContactRepository(mysqlDB)
	notifyWorker := worker.NewNotifyDispatchWorker(mqConn, sender, contactRepo, cfg.RabbitMQ.NotifyQueue)
	if err := notifyWorker.Start(ctx); err != nil {
		return nil, fmt.Errorf("start notify worker failed: %w", err)
	}

	a.MQConn = mqConn
	a.Notifier = rabbitmqClient.NewNotifyPublisher(mqConn, cfg.RabbitMQ.NotifyQueue)
	a.NotifierDeferred = true
	a.NotifyWorker = notifyWorker
	return a, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.NotifyWorker != nil {
		a.NotifyWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MySQL != nil {
		sqlDB, err := a.MySQL.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
