package repository

import (
	"holder-scan/internal/scanner/ledger"
	"holder-scan/pkg/httpclient"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

type RedisClient = *redis.Client
type MQClient = *kafka.Writer

// Repository 持有进程内共享的外部连接，未启用的组件返回 nil
type Repository interface {
	GetLedger() ledger.Client
	GetSolanaClient() *rpc.Client
	GetRDB() RedisClient
	GetMQ() MQClient
	GetLarkClient() *httpclient.HTTPClient
	Close() error
}
