package main

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// DefaultConsumerRetryDelay is the pause applied after a failed queue pop.
const DefaultConsumerRetryDelay = time.Second

type Consumer interface {
	Consume(ctx context.Context, qids ...string) error
}

type journalConsumer struct {
	logger     *zap.Logger
	queue      Queuer
	journal    JournalStorage
	retryDelay time.Duration
}

// NewJournalConsumer provides a consumer which archives every queued event.
func NewJournalConsumer(logger *zap.Logger, q Queuer, journal JournalStorage) Consumer {
	return &journalConsumer{logger, q, journal, DefaultConsumerRetryDelay}
}

// Consume pops events until the context is done and appends them to the journal.
func (jc *journalConsumer) Consume(ctx context.Context, qids ...string) error {
	var event Event
	var err error
	var qid string
	for {
		qid, event, err = jc.queue.Pop(ctx, qids...)
		if err != nil && ctx.Err() != nil {
			jc.logger.Info("consumer: queue pop call: context is done: exit", zap.String("reason", ctx.Err().Error()))
			return nil
		}

		if errors.Is(err, ErrQueueEmpty) {
			continue
		}

		if err != nil {
			jc.logger.Error("consumer: error on queue pop call", zap.Error(err), zap.Duration("retry.in", jc.retryDelay))
			select {
			case <-ctx.Done():
			case <-time.After(jc.retryDelay):
			}
			continue
		}

		switch qid {
		case CreateQueue, UpdateQueue, DeleteQueue:
			if err = jc.journal.Append(ctx, event); err != nil {
				jc.logger.Error("consumer: failed to archive", zap.String("qid", qid), zap.Any("event", event), zap.Error(err))
			}
		default:
			jc.logger.Warn("consumer: received event on unknow queue id", zap.String("qid", qid), zap.Any("event", event))
		}
	}
}
