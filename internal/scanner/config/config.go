package config

import (
	"errors"
	"fmt"
	"time"

	"holder-scan/internal/scanner/model"
	"holder-scan/pkg/logger"

	"github.com/fsnotify/fsnotify"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Config 定义整个配置的结构
type Config struct {
	Log     LogConfig       `mapstructure:"log"`
	Solana  SolanaConfig    `mapstructure:"solana"`
	Report  ReportConfig    `mapstructure:"report"`
	Discord DiscordConfig   `mapstructure:"discord"`
	Watch   WatchListConfig `mapstructure:"watch"`
	Kafka   KafkaConfig     `mapstructure:"kafka"`
	Redis   RedisConfig     `mapstructure:"redis"`
	Lark    LarkConfig      `mapstructure:"lark"`
	Monitor MonitorConfig   `mapstructure:"monitor"`
}

// LogConfig Log 日志配置
type LogConfig struct {
	Level string `mapstructure:"level"`
	Dir   string `mapstructure:"dir"`
}

// SolanaConfig RPC 配置
type SolanaConfig struct {
	RpcUrl         string `mapstructure:"rpc_url"`
	Commitment     string `mapstructure:"commitment"`
	RequestTimeout int    `mapstructure:"request_timeout"` // 秒
}

// ReportConfig 报告阈值与并发
type ReportConfig struct {
	MinDisplayAmount  float64 `mapstructure:"min_display_amount"`
	MaxWalletAgeHours uint64  `mapstructure:"max_wallet_age_hours"`
	MinWhaleSol       float64 `mapstructure:"min_whale_sol"`
	Concurrency       int     `mapstructure:"concurrency"`
	LookupTimeout     int     `mapstructure:"lookup_timeout"` // 秒，单个 holder 两次查询的总时限
	MaxSignaturePages int     `mapstructure:"max_signature_pages"`
	DefaultStyle      string  `mapstructure:"default_style"`
	EmptyMessage      string  `mapstructure:"empty_message"`
	RequestTimeout    int     `mapstructure:"request_timeout"` // 秒，整份报告的时限
}

// DiscordConfig 机器人配置
type DiscordConfig struct {
	Enable        bool    `mapstructure:"enable"`
	Token         string  `mapstructure:"token"`
	GuildID       string  `mapstructure:"guild_id"`
	RatePerMinute float64 `mapstructure:"rate_per_minute"`
	Burst         int     `mapstructure:"burst"`
}

// WatchListConfig 定时报告
type WatchListConfig struct {
	Enable   bool     `mapstructure:"enable"`
	Interval int      `mapstructure:"interval"` // 分钟
	Mints    []string `mapstructure:"mints"`
	Style    string   `mapstructure:"style"`
}

// KafkaConfig Kafka 配置
type KafkaConfig struct {
	Enable      bool   `mapstructure:"enable"`
	Brokers     string `mapstructure:"brokers"`
	TopicReport string `mapstructure:"topic_report"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Enable        bool   `mapstructure:"enable"`
	Address       string `mapstructure:"address"`
	Password      string `mapstructure:"password"`
	DB            int    `mapstructure:"db"`
	ChannelPrefix string `mapstructure:"channel_prefix"`
}

// LarkConfig Lark 配置
type LarkConfig struct {
	Webhook   string `mapstructure:"webhook"`
	RateLimit int    `mapstructure:"rate_limit"` // 每分钟
	Timeout   int    `mapstructure:"timeout"`    // 秒
}

type MonitorConfig struct {
	Enable         bool   `mapstructure:"enable"`
	PrometheusAddr string `mapstructure:"prometheus_addr"`
}

// Thresholds 转换为报告流程使用的只读阈值
func (c ReportConfig) Thresholds() model.Thresholds {
	return model.Thresholds{
		MinDisplayAmount:  c.MinDisplayAmount,
		MaxWalletAgeHours: c.MaxWalletAgeHours,
		MinWhaleSol:       c.MinWhaleSol,
	}
}

func (c ReportConfig) LookupTimeoutDuration() time.Duration {
	return time.Duration(c.LookupTimeout) * time.Second
}

func (c ReportConfig) RequestTimeoutDuration() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

func (c SolanaConfig) RequestTimeoutDuration() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

func (c WatchListConfig) IntervalDuration() time.Duration {
	return time.Duration(c.Interval) * time.Minute
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.dir", "logs")

	v.SetDefault("solana.rpc_url", "https://api.mainnet-beta.solana.com")
	v.SetDefault("solana.commitment", "confirmed")
	v.SetDefault("solana.request_timeout", 60)

	v.SetDefault("report.min_display_amount", 2_000_000.0)
	v.SetDefault("report.max_wallet_age_hours", 48)
	v.SetDefault("report.min_whale_sol", 40.0)
	v.SetDefault("report.concurrency", 16)
	v.SetDefault("report.lookup_timeout", 20)
	v.SetDefault("report.max_signature_pages", 1)
	v.SetDefault("report.default_style", string(model.ReportStyleFull))
	v.SetDefault("report.empty_message", "No holders found with the minimum balance.")
	v.SetDefault("report.request_timeout", 180)

	v.SetDefault("discord.enable", false)
	v.SetDefault("discord.token", "")
	v.SetDefault("discord.guild_id", "")
	v.SetDefault("discord.rate_per_minute", 6.0)
	v.SetDefault("discord.burst", 2)

	v.SetDefault("watch.enable", false)
	v.SetDefault("watch.interval", 60)
	v.SetDefault("watch.mints", []string{})
	v.SetDefault("watch.style", string(model.ReportStyleCompact))

	v.SetDefault("kafka.enable", false)
	v.SetDefault("kafka.brokers", "")
	v.SetDefault("kafka.topic_report", "holder_scan_report")

	v.SetDefault("redis.enable", false)
	v.SetDefault("redis.address", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.channel_prefix", "holder_scan")

	v.SetDefault("lark.webhook", "")
	v.SetDefault("lark.rate_limit", 30)
	v.SetDefault("lark.timeout", 10)

	v.SetDefault("monitor.enable", false)
	v.SetDefault("monitor.prometheus_addr", ":9100")
}

func InitConfig() Config {
	config, err := Load("./config/")
	if err != nil {
		panic(fmt.Errorf("fatal error config file: %s", err))
	}
	return config
}

// Load 从 configPath 下的 config.bot.yaml 读取配置，文件不存在时使用默认值和环境变量
func Load(configPath string) (Config, error) {
	return load(viper.GetViper(), configPath)
}

func load(v *viper.Viper, configPath string) (Config, error) {
	var config Config

	v.SetConfigName("config.bot")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	setDefaults(v)

	_ = v.BindEnv("solana.rpc_url", "SOLANA_RPC_URL")
	_ = v.BindEnv("discord.token", "DISCORD_BOT_TOKEN")
	_ = v.BindEnv("log.level", "LOG_LEVEL")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, err
		}
	}

	if err := mapstructure.WeakDecode(v.AllSettings(), &config); err != nil {
		return config, err
	}
	return config, config.validate()
}

func (c Config) validate() error {
	if c.Solana.RpcUrl == "" {
		return errors.New("solana.rpc_url is required")
	}
	if c.Report.Concurrency <= 0 {
		return fmt.Errorf("report.concurrency must be positive, got %d", c.Report.Concurrency)
	}
	if c.Report.MaxSignaturePages <= 0 {
		return fmt.Errorf("report.max_signature_pages must be positive, got %d", c.Report.MaxSignaturePages)
	}
	if _, err := model.ParseReportStyle(c.Report.DefaultStyle); err != nil {
		return err
	}
	if c.Discord.Enable && c.Discord.Token == "" {
		return errors.New("discord.token is required when discord is enabled")
	}
	if c.Watch.Enable {
		if c.Watch.Interval <= 0 {
			return fmt.Errorf("watch.interval must be positive, got %d", c.Watch.Interval)
		}
		if _, err := model.ParseReportStyle(c.Watch.Style); err != nil {
			return fmt.Errorf("watch.style: %w", err)
		}
	}
	return nil
}

// WatchConfig 热加载只调整日志级别，阈值在启动后保持不变
func WatchConfig() {
	viper.OnConfigChange(func(e fsnotify.Event) {
		logger.SetLogLevel(viper.GetString("log.level"))
	})
	viper.WatchConfig()
}
