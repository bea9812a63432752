package repository

import (
	"context"
	"strings"
	"time"

	"holder-scan/internal/scanner/config"
	"holder-scan/internal/scanner/ledger"
	"holder-scan/pkg/httpclient"
	"holder-scan/pkg/solana_client"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func New(cfg config.Config, logger *zap.Logger) (Repository, error) {
	r := &repositoryImpl{
		cfg:    cfg,
		logger: logger,
	}
	if err := r.init(); err != nil {
		return nil, err
	}
	return r, nil
}

type repositoryImpl struct {
	cfg          config.Config
	logger       *zap.Logger
	solanaClient *rpc.Client
	ledger       ledger.Client
	rdb          *redis.Client
	mq           *kafka.Writer
	lark         *httpclient.HTTPClient
}

func (r *repositoryImpl) init() error {
	commitment, err := ledger.ParseCommitment(r.cfg.Solana.Commitment)
	if err != nil {
		return err
	}

	// 初始化rpc client
	r.solanaClient = solana_client.Init(r.cfg.Solana.RpcUrl, r.cfg.Solana.RequestTimeoutDuration())
	r.ledger = ledger.NewRPCClient(r.solanaClient, commitment)

	if r.cfg.Redis.Enable {
		r.rdb = redis.NewClient(&redis.Options{
			Addr:     r.cfg.Redis.Address,
			Password: r.cfg.Redis.Password,
			DB:       r.cfg.Redis.DB,
			PoolSize: 10,
		})
		if err := r.rdb.Ping(context.Background()).Err(); err != nil {
			r.logger.Warn("failed to connect to redis, continue", zap.Error(err))
		}
	}

	if r.cfg.Kafka.Enable && strings.TrimSpace(r.cfg.Kafka.Brokers) != "" {
		brokers := strings.Split(r.cfg.Kafka.Brokers, ",")
		r.mq = &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.Hash{},
			BatchSize:    100,
			BatchBytes:   1024 * 1024, // 1MB
			RequiredAcks: kafka.RequireOne,
			Compression:  kafka.Snappy,
			MaxAttempts:  5,
			WriteTimeout: 2 * time.Second,
		}
	}

	if r.cfg.Lark.Webhook != "" {
		r.lark = httpclient.NewHTTPClient(httpclient.HTTPClientConfig{
			Timeout:    time.Duration(r.cfg.Lark.Timeout) * time.Second,
			RateLimit:  r.cfg.Lark.RateLimit,
			MaxRetries: 2,
			UserAgent:  "holder-scan",
		}, r.logger)
	}
	return nil
}

func (r *repositoryImpl) GetLedger() ledger.Client {
	return r.ledger
}

func (r *repositoryImpl) GetSolanaClient() *rpc.Client {
	return r.solanaClient
}

func (r *repositoryImpl) GetRDB() RedisClient {
	return r.rdb
}

func (r *repositoryImpl) GetMQ() MQClient {
	return r.mq
}

func (r *repositoryImpl) GetLarkClient() *httpclient.HTTPClient {
	return r.lark
}

func (r *repositoryImpl) Close() error {
	if r.rdb != nil {
		r.rdb.Close()
	}
	if r.mq != nil {
		r.mq.Close()
	}
	if r.solanaClient != nil {
		r.solanaClient.Close()
	}
	return nil
}
