package events

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	sharedUtils "github.com/davicafu/academylab/shared/utils"
)

const (
	minFetchDelay = 500 * time.Millisecond
	maxFetchDelay = 30 * time.Second
)

// MessageHandler lo implementan los consumidores de cada dominio.
type MessageHandler interface {
	HandleMessage(ctx context.Context, key string, payload []byte)
}

// MessageReader es la parte de *kafka.Reader que usamos.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
}

// ConsumerAdapter lee un topic y entrega cada mensaje a su handler.
// El offset se confirma después de manejar el mensaje.
type ConsumerAdapter struct {
	reader   MessageReader
	handler  MessageHandler
	minDelay time.Duration
	maxDelay time.Duration
	log      *zap.Logger
}

func NewConsumerAdapter(reader MessageReader, handler MessageHandler, log *zap.Logger) *ConsumerAdapter {
	return &ConsumerAdapter{
		reader:   reader,
		handler:  handler,
		minDelay: minFetchDelay,
		maxDelay: maxFetchDelay,
		log:      log.With(zap.String("topic", reader.Config().Topic)),
	}
}

// Start lanza el bucle en una goroutine; termina al cancelar ctx.
func (c *ConsumerAdapter) Start(ctx context.Context) {
	c.log.Info("🎧 Consumidor de Kafka iniciado", zap.Strings("brokers", c.reader.Config().Brokers))
	go c.run(ctx)
}

// run espera entre lecturas fallidas con backoff exponencial; un mensaje
// leído con éxito reinicia la espera.
func (c *ConsumerAdapter) run(ctx context.Context) {
	delay := c.minDelay
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.log.Info("Consumidor de Kafka detenido")
				return
			}
			c.log.Error("Error al leer mensaje de Kafka", zap.Duration("retry_in", delay), zap.Error(err))
			if sharedUtils.Wait(ctx, delay) != nil {
				c.log.Info("Consumidor de Kafka detenido")
				return
			}
			delay = sharedUtils.Backoff(delay, c.maxDelay)
			continue
		}
		delay = c.minDelay

		c.handler.HandleMessage(ctx, string(msg.Key), msg.Value)

		if err := c.reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			c.log.Warn("No se pudo confirmar el offset",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		}
	}
}
