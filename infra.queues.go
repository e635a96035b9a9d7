package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Predefinied Queue IDs.
const (
	CreateQueue = "creation"
	UpdateQueue = "updating"
	DeleteQueue = "deletion"
)

// DefaultPopTimeout bounds a single blocking pop so that a
// cancelled context is noticed even on idle queues.
const DefaultPopTimeout = time.Second

// ErrQueueEmpty is returned by Pop when no event arrived before the pop timeout.
var ErrQueueEmpty = errors.New("no event available on queues")

// Ensure *redisQueue implements Queuer.
var _ Queuer = (*redisQueue)(nil)

// Queuer describes a queue of journal events.
type Queuer interface {
	Push(ctx context.Context, qid string, event Event) error
	Pop(ctx context.Context, qids ...string) (string, Event, error)
}

// redisQueue represents a queue which implements the Queuer interface.
type redisQueue struct {
	client     *redis.Client
	prefix     string
	popTimeout time.Duration
}

// NewRedisQueue provides a redis lists backed queue. All lists
// names are namespaced with the configured prefix.
func NewRedisQueue(client *redis.Client, prefix string) Queuer {
	return &redisQueue{client: client, prefix: prefix, popTimeout: DefaultPopTimeout}
}

// GetRedisClient provides a ready to use redis client.
func GetRedisClient(config *Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", config.Redis.Host, config.Redis.Port),
		DialTimeout:  config.Redis.DialTimeout,
		ReadTimeout:  config.Redis.ReadTimeout,
		WriteTimeout: config.Redis.WriteTimeout,
		PoolSize:     config.Redis.PoolSize,
		PoolTimeout:  config.Redis.PoolTimeout,
		Password:     config.Redis.Password,
		Username:     config.Redis.Username,
		DB:           config.Redis.DatabaseIndex,

		ContextTimeoutEnabled: true,
	})

	// test connection.
	if pong, err := client.Ping(context.Background()).Result(); pong != "PONG" || err != nil {
		return client, fmt.Errorf("test connection failed: %v", err)
	}
	return client, nil
}

func (q *redisQueue) key(qid string) string {
	if q.prefix == "" {
		return qid
	}
	return q.prefix + ":" + qid
}

// Push enqueues an event onto the queue identified by qid.
func (q *redisQueue) Push(ctx context.Context, qid string, event Event) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return q.client.RPush(ctx, q.key(qid), eventBytes).Err()
}

// Pop waits up to the pop timeout for an event on one of the queues and returns
// the queue id (without prefix) with the dequeued event. It returns ErrQueueEmpty
// when the wait expired, or the context error once ctx is done.
func (q *redisQueue) Pop(ctx context.Context, qids ...string) (string, Event, error) {
	var event Event
	var qid string
	keys := make([]string, len(qids))
	names := make(map[string]string, len(qids))
	for i, id := range qids {
		keys[i] = q.key(id)
		names[keys[i]] = id
	}
	infos, err := q.client.BLPop(ctx, q.popTimeout, keys...).Result()
	if errors.Is(err, redis.Nil) {
		if ctx.Err() != nil {
			return qid, event, ctx.Err()
		}
		return qid, event, ErrQueueEmpty
	}
	if err != nil {
		return qid, event, err
	}

	if err = json.Unmarshal([]byte(infos[1]), &event); err != nil {
		return qid, event, err
	}
	qid = names[infos[0]]
	return qid, event, nil
}

// QueueForEvent returns the queue id an event kind is routed to.
func QueueForEvent(kind string) string {
	switch kind {
	case EventBookCreated:
		return CreateQueue
	case EventBookDeleted, EventBooksDeleted, EventBooksCleared:
		return DeleteQueue
	default:
		return UpdateQueue
	}
}
