// Package kafka consumes article payloads from a Kafka topic and indexes them
// through the article usecase. Messages that cannot be indexed are dead-lettered.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/kailas-cloud/esdocs/internal/domain"
	domart "github.com/kailas-cloud/esdocs/internal/domain/article"
)

// Header keys attached to dead-lettered messages.
const (
	HeaderOriginalPartition = "original_partition"
	HeaderOriginalOffset    = "original_offset"
	HeaderError             = "error"
	HeaderTimestamp         = "timestamp"
)

// ErrDLQExhausted is returned by Run when a failed message could not be dead-lettered.
// The message is left uncommitted so it is redelivered after a restart.
var ErrDLQExhausted = errors.New("dead-letter write retries exhausted")

// Reader is the consumer-group reader (kafka.Reader).
type Reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Writer publishes to the dead-letter topic (kafka.Writer).
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// ArticleCreator indexes a validated article.
type ArticleCreator interface {
	Create(ctx context.Context, a domart.Article) (domart.Article, error)
}

// articlePayload is the message body; same shape as POST /documents/articles.
type articlePayload struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Author   string   `json:"author"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Views    int      `json:"views"`
	Rating   float64  `json:"rating"`
}

// Worker runs the fetch, index, commit loop.
type Worker struct {
	reader      Reader
	dlq         Writer
	articles    ArticleCreator
	logger      *zap.Logger
	outcomes    *prometheus.CounterVec
	maxAttempts int
	backoff     time.Duration
	now         func() time.Time
}

// New creates a Worker with 5 dead-letter attempts and a 1s doubling backoff.
// outcomes may be nil.
func New(reader Reader, dlq Writer, articles ArticleCreator, outcomes *prometheus.CounterVec, logger *zap.Logger) *Worker {
	return &Worker{
		reader:      reader,
		dlq:         dlq,
		articles:    articles,
		logger:      logger,
		outcomes:    outcomes,
		maxAttempts: 5,
		backoff:     time.Second,
		now:         time.Now,
	}
}

// WithRetry overrides the dead-letter retry policy.
func (w *Worker) WithRetry(maxAttempts int, backoff time.Duration) *Worker {
	if maxAttempts > 0 {
		w.maxAttempts = maxAttempts
	}
	if backoff > 0 {
		w.backoff = backoff
	}
	return w
}

// Run consumes until ctx is canceled (returns nil) or a message can be neither
// indexed nor dead-lettered (returns ErrDLQExhausted).
func (w *Worker) Run(ctx context.Context) error {
	for {
		msg, err := w.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				w.logger.Info("context canceled, stopping")
				return nil
			}
			w.logger.Error("fetch message", zap.Error(err), zap.Duration("backoff", w.backoff))
			select {
			case <-time.After(w.backoff):
			case <-ctx.Done():
				w.logger.Info("context canceled, stopping")
				return nil
			}
			continue
		}

		if err := w.Handle(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

// Handle processes one message and commits it once it is indexed or dead-lettered.
func (w *Worker) Handle(ctx context.Context, msg kafka.Message) error {
	log := w.logger.With(zap.Int("partition", msg.Partition), zap.Int64("offset", msg.Offset))

	created, err := w.process(ctx, msg)
	if err == nil {
		w.count("indexed")
		log.Info("indexed article", zap.String("id", created.ID()))
		w.commit(ctx, log, msg)
		return nil
	}

	log.Warn("process message failed, sending to DLQ", zap.Error(err))
	if err := w.deadLetter(ctx, log, msg, err); err != nil {
		w.count("dlq_failed")
		log.Error("DLQ write exhausted retries, message left uncommitted", zap.Error(err))
		return err
	}
	w.count("dead_lettered")
	w.commit(ctx, log, msg)
	return nil
}

func (w *Worker) process(ctx context.Context, msg kafka.Message) (domart.Article, error) {
	var p articlePayload
	if err := json.Unmarshal(msg.Value, &p); err != nil {
		return domart.Article{}, fmt.Errorf("decode payload: %w: %w", err, domain.ErrValidation)
	}

	a, err := domart.New(domart.Fields{
		Title:    p.Title,
		Content:  p.Content,
		Author:   p.Author,
		Category: p.Category,
		Tags:     p.Tags,
		Views:    p.Views,
		Rating:   p.Rating,
	})
	if err != nil {
		return domart.Article{}, err
	}

	created, err := w.articles.Create(ctx, a)
	if err != nil {
		return domart.Article{}, err
	}
	return created, nil
}

func (w *Worker) deadLetter(ctx context.Context, log *zap.Logger, msg kafka.Message, cause error) error {
	headers := make([]kafka.Header, 0, len(msg.Headers)+4)
	headers = append(headers, msg.Headers...)
	headers = append(headers,
		kafka.Header{Key: HeaderOriginalPartition, Value: []byte(strconv.Itoa(msg.Partition))},
		kafka.Header{Key: HeaderOriginalOffset, Value: []byte(strconv.FormatInt(msg.Offset, 10))},
		kafka.Header{Key: HeaderError, Value: []byte(cause.Error())},
		kafka.Header{Key: HeaderTimestamp, Value: []byte(w.now().UTC().Format(time.RFC3339))},
	)
	dlqMsg := kafka.Message{Key: msg.Key, Value: msg.Value, Headers: headers}

	var lastErr error
	for attempt := range w.maxAttempts {
		lastErr = w.dlq.WriteMessages(ctx, dlqMsg)
		if lastErr == nil {
			log.Info("message sent to DLQ", zap.Int("attempt", attempt+1))
			return nil
		}
		if attempt == w.maxAttempts-1 {
			break
		}

		backoff := w.backoff << uint(attempt)
		log.Warn("DLQ write failed, retrying",
			zap.Error(lastErr),
			zap.Int("attempt", attempt+1),
			zap.Duration("backoff", backoff),
		)
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return fmt.Errorf("dead-letter: %w", ctx.Err())
		}
	}
	return fmt.Errorf("%w after %d attempts: %w", ErrDLQExhausted, w.maxAttempts, lastErr)
}

// commit failures are logged only: the message is redelivered and may be indexed twice under a new ID.
func (w *Worker) commit(ctx context.Context, log *zap.Logger, msg kafka.Message) {
	if err := w.reader.CommitMessages(ctx, msg); err != nil {
		log.Error("commit message", zap.Error(err))
	}
}

func (w *Worker) count(result string) {
	if w.outcomes != nil {
		w.outcomes.WithLabelValues(result).Inc()
	}
}
