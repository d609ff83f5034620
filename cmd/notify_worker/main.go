package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/careloop/clinic-api/config"
	"github.com/careloop/clinic-api/pkg/notify"
)

func main() {
	cfg := config.Load()
	if cfg.RabbitMQURL == "" || cfg.RabbitMQNotifyQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	// Prefetch for fair dispatch
	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}

	if _, err := ch.QueueDeclare(cfg.RabbitMQNotifyQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQNotifyQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	var sms notify.SMSSender
	if cfg.SMSSendEnabled && cfg.SMSGatewayURL != "" {
		sms = notify.NewSMSGateway(cfg.SMSGatewayURL, cfg.SMSGatewayAPIKey)
	} else {
		log.Println("SMS sending disabled; sms jobs will be logged and acked")
	}

	var mail *notify.Mailer
	if cfg.MailgunDomain != "" && cfg.MailgunAPIKey != "" && cfg.MailgunSender != "" {
		mail = notify.NewMailer(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	} else {
		log.Println("Mailgun not configured; email jobs will be logged and acked")
	}

	ctx := context.Background()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			var job notify.Job
			if err := json.Unmarshal(msg.Body, &job); err != nil {
				log.Printf("bad message: %v", err)
				_ = msg.Nack(false, false)
				continue
			}

			c, cancel := context.WithTimeout(ctx, 15*time.Second)
			var sendErr error
			switch job.Channel {
			case notify.ChannelSMS:
				if sms == nil {
					log.Printf("sms (dry-run) to=%s body=%q", job.To, job.Body)
				} else {
					sendErr = sms.Send(c, job.To, job.Body)
				}
			case notify.ChannelEmail:
				if mail == nil {
					log.Printf("email (dry-run) to=%s subject=%q", job.To, job.Subject)
				} else {
					sendErr = mail.Send(c, job.To, job.Subject, job.Body)
				}
			default:
				log.Printf("unknown channel %q, dropping", job.Channel)
				cancel()
				_ = msg.Nack(false, false)
				continue
			}
			cancel()

			if sendErr != nil {
				log.Printf("send failed: %v", sendErr)
				_ = msg.Nack(false, true)
				continue
			}
			_ = msg.Ack(false)
		}
		close(done)
	}()

	log.Printf("notify worker listening on queue=%s", cfg.RabbitMQNotifyQueue)
	<-stop
	log.Printf("shutting down...")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
