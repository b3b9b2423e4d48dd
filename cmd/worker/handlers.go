package main

import (
	"github.com/hibiken/asynq"

	paymentJob "stagelink-backend/internal/domains/payment/job"
	showJob "stagelink-backend/internal/domains/show/job"
	"stagelink-backend/internal/infrastructure/email"
	"stagelink-backend/internal/shared"
	"stagelink-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	notifyProducer *showJob.NotifyProducerHandler
	broadcastShow  *showJob.BroadcastShowHandler
	payments       *paymentJob.PaymentNotificationHandler
}

func initializeHandlers(c *container.Container, cfg *Config) *HandlerRegistry {
	emailSvc := email.NewSMTPEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailFrom)

	return &HandlerRegistry{
		notifyProducer: showJob.NewNotifyProducerHandler(c.ProfileRepo, emailSvc),
		broadcastShow:  showJob.NewBroadcastShowHandler(c.ShowRepo, c.ProfileRepo, emailSvc),
		payments:       paymentJob.NewPaymentNotificationHandler(c.ProfileRepo, emailSvc),
	}
}

func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeNotifyProducer, h.notifyProducer.ProcessTask)
	mux.HandleFunc(shared.TypeBroadcastShow, h.broadcastShow.ProcessTask)
	mux.HandleFunc(shared.TypePaymentSubmitted, h.payments.ProcessSubmitted)
	mux.HandleFunc(shared.TypePaymentReviewed, h.payments.ProcessReviewed)
}
