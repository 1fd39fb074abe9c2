package main

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	batchDomain "github.com/davicafu/academylab/internal/batch/domain"
	"github.com/davicafu/academylab/internal/config"
	courseDomain "github.com/davicafu/academylab/internal/course/domain"
	infraCache "github.com/davicafu/academylab/internal/infra/cache"
	infraEvents "github.com/davicafu/academylab/internal/infra/events"
	infraMail "github.com/davicafu/academylab/internal/infra/mail"
	infraStorage "github.com/davicafu/academylab/internal/infra/storage"
	userDomain "github.com/davicafu/academylab/internal/user/domain"
	sharedEvents "github.com/davicafu/academylab/shared/events"
	sharedBus "github.com/davicafu/academylab/shared/platform/bus"
	sharedCache "github.com/davicafu/academylab/shared/platform/cache"
	sharedMail "github.com/davicafu/academylab/shared/platform/mail"
	sharedStorage "github.com/davicafu/academylab/shared/platform/storage"
)

// newCache intenta Redis y cae a memoria si no responde.
func newCache(ctx context.Context, cfg *config.Config, log *zap.Logger) (sharedCache.Cache, func()) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Warn("⚠️ Redis no disponible, cache en memoria", zap.Error(err))
		_ = rdb.Close()
		mem := infraCache.NewInMemoryCache(cfg.Redis.CacheTTL, 3*cfg.Redis.CacheTTL)
		return mem, mem.Stop
	}

	log.Info("✅ Redis conectado, cache habilitado")
	return infraCache.NewRedisCache(rdb, cfg.Redis.CacheTTL), func() { _ = rdb.Close() }
}

func newUploader(ctx context.Context, cfg *config.Config, log *zap.Logger) sharedStorage.Uploader {
	if cfg.S3.Bucket == "" {
		log.Warn("⚠️ S3_BUCKET vacío, subidas de ficheros deshabilitadas")
		return infraStorage.DisabledUploader{}
	}
	client, err := infraStorage.NewS3Client(ctx, cfg.S3)
	if err != nil {
		log.Fatal("failed to create S3 client", zap.Error(err))
	}
	return infraStorage.NewS3Uploader(client, cfg.S3, log)
}

func newMailer(cfg *config.Config, log *zap.Logger) sharedMail.Sender {
	if cfg.Mail.ResendAPIKey == "" {
		log.Warn("⚠️ RESEND_API_KEY vacío, los correos sólo se registran en el log")
		return infraMail.NewNoopSender(log)
	}
	return infraMail.NewResendSender(cfg.Mail.ResendAPIKey, cfg.Mail.From, log)
}

// eventRegistry fusiona los registros de cada dominio.
func eventRegistry() map[string]sharedEvents.EventMetadata {
	registry := make(map[string]sharedEvents.EventMetadata)
	for _, r := range []map[string]sharedEvents.EventMetadata{
		userDomain.NewEventRegistry(),
		courseDomain.NewEventRegistry(),
		batchDomain.NewEventRegistry(),
	} {
		for k, v := range r {
			registry[k] = v
		}
	}
	return registry
}

// startEventBus arranca Kafka o el bus en memoria y engancha los consumidores
// de los topics user y course.
func startEventBus(
	ctx context.Context,
	cfg *config.Config,
	log *zap.Logger,
	userConsumer infraEvents.MessageHandler,
	courseConsumer infraEvents.MessageHandler,
) (sharedBus.EventPublisher, func()) {
	handlers := map[string]infraEvents.MessageHandler{
		userDomain.UserTopic:     userConsumer,
		courseDomain.CourseTopic: courseConsumer,
	}

	if !cfg.Kafka.Enabled {
		log.Info("⚡️ Usando bus de eventos en memoria (canales de Go)")
		bus := infraEvents.NewInMemoryEventBus()
		for topic, h := range handlers {
			infraEvents.BackgroundConsumerChan(ctx, bus.Subscribe(topic, 100), h)
		}
		return bus, func() {}
	}

	log.Info("🚀 Usando Kafka como bus de eventos", zap.Strings("brokers", cfg.Kafka.Brokers))

	// Sin Topic fijo: cada mensaje lleva el suyo.
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Kafka.Brokers...),
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}

	readers := make([]*kafka.Reader, 0, len(handlers))
	for topic, h := range handlers {
		reader := kafka.NewReader(kafka.ReaderConfig{
			Brokers:  cfg.Kafka.Brokers,
			Topic:    topic,
			GroupID:  cfg.Kafka.GroupID,
			MinBytes: 10e3, // 10KB
			MaxBytes: 10e6, // 10MB
		})
		infraEvents.NewConsumerAdapter(reader, h, log).Start(ctx)
		readers = append(readers, reader)
	}

	return infraEvents.NewKafkaPublisher(writer, log), func() {
		_ = writer.Close()
		for _, r := range readers {
			_ = r.Close()
		}
	}
}
