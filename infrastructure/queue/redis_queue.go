package queue

import (
	"context"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// redisQueue implementa Queue sobre Redis.
//
// Layout de chaves (prefix vem da configuração):
//
//	{prefix}:dedup:{jobID}  marcador de deduplicação (SET NX com TTL)
//	{prefix}:job:{jobID}    hash com payload e opções do job
//	{prefix}:wait           lista de jobs aguardando o worker
//	{prefix}:completed      histórico de concluídos (aparado em KeepCompleted)
//	{prefix}:failed         histórico de falhos (aparado em KeepFailed)
//
// O marcador de deduplicação cobre tanto jobs na fila quanto jobs concluídos
// recentemente: enquanto ele existir, Enqueue com a mesma identidade é no-op.
type redisQueue struct {
	client   *redis.Client
	prefix   string
	dedupTTL time.Duration
}

func NewRedisQueue(client *redis.Client, prefix string, dedupTTL time.Duration) Queue {
	return &redisQueue{
		client:   client,
		prefix:   prefix,
		dedupTTL: dedupTTL,
	}
}

func (q *redisQueue) Enqueue(ctx context.Context, jobID string, payload any, opts EnqueueOptions) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao serializar payload do job %s: %w", jobID, err)
	}

	// SET NX no marcador decide se a identidade já existe. Qualquer falha de
	// comunicação aqui é classificada como indisponibilidade da fila.
	created, err := q.client.SetNX(ctx, q.key("dedup", jobID), 1, q.dedupTTL).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrQueueUnavailable, err)
	}

	if !created {
		logrus.WithField("job_id", jobID).Debug("Job já enfileirado ou concluído recentemente, ignorando")
		return nil
	}

	pipe := q.client.TxPipeline()
	pipe.HSet(ctx, q.key("job", jobID), map[string]any{
		"payload":        string(body),
		"attempts":       opts.Attempts,
		"backoff_type":   opts.Backoff.Type,
		"backoff_ms":     opts.Backoff.Delay.Milliseconds(),
		"keep_completed": opts.KeepCompleted,
		"keep_failed":    opts.KeepFailed,
		"enqueued_at":    time.Now().UTC().Format(time.RFC3339),
	})
	pipe.LPush(ctx, q.key("wait"), jobID)

	// Apara os históricos para os limites de retenção do job.
	if opts.KeepCompleted > 0 {
		pipe.LTrim(ctx, q.key("completed"), 0, int64(opts.KeepCompleted)-1)
	}
	if opts.KeepFailed > 0 {
		pipe.LTrim(ctx, q.key("failed"), 0, int64(opts.KeepFailed)-1)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		// Remove o marcador para não bloquear uma retentativa do chamador.
		q.client.Del(context.WithoutCancel(ctx), q.key("dedup", jobID))
		return fmt.Errorf("%w: %v", ErrQueueUnavailable, err)
	}

	return nil
}

func (q *redisQueue) Close() error {
	return q.client.Close()
}

func (q *redisQueue) key(parts ...string) string {
	key := q.prefix
	for _, part := range parts {
		key += ":" + part
	}
	return key
}
