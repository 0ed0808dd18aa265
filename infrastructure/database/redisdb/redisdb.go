package redisdb

import (
	"context"
	"fmt"

	"github.com/pixecom/ads-performance-api/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Connection encapsula o cliente Redis usado como backend da fila de jobs.
type Connection struct {
	Client *redis.Client
}

func NewConnection(ctx context.Context, cfg config.Redis) (*Connection, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("erro ao conectar ao Redis: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"addr": cfg.Addr,
		"db":   cfg.DB,
	}).Info("Conexão com Redis estabelecida com sucesso")

	return &Connection{Client: client}, nil
}

func (c *Connection) Close() error {
	if c.Client != nil {
		return c.Client.Close()
	}
	return nil
}

// Ping verifica se o Redis está acessível.
func (c *Connection) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}
