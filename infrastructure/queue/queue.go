package queue

import (
	"context"
	"errors"
	"time"
)

// ErrQueueUnavailable indica que o backend da fila está inacessível.
// O enfileiramento é idempotente por identidade de job, então o chamador
// pode repetir a operação inteira com segurança.
var ErrQueueUnavailable = errors.New("fila de jobs indisponível")

// BackoffPolicy define a política de retentativa aplicada pelo worker.
type BackoffPolicy struct {
	Type  string        `json:"type"`
	Delay time.Duration `json:"delay"`
}

// EnqueueOptions controla retentativas e retenção de um job.
// KeepCompleted e KeepFailed limitam o histórico mantido pela fila para
// conter o crescimento de armazenamento.
type EnqueueOptions struct {
	Attempts      int           `json:"attempts"`
	Backoff       BackoffPolicy `json:"backoff"`
	KeepCompleted int           `json:"keepCompleted"`
	KeepFailed    int           `json:"keepFailed"`
}

// Queue é a capacidade de enfileiramento durável com entrega at-least-once.
// Jobs com o mesmo jobID dentro da janela de deduplicação colapsam em um
// único job lógico; o segundo Enqueue é um no-op silencioso.
type Queue interface {
	Enqueue(ctx context.Context, jobID string, payload any, opts EnqueueOptions) error
	Close() error
}
