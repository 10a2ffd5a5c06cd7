package kafka

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"marketplace-service/src/pkg/log"

	"github.com/IBM/sarama"
)

// Producer publishes keyed messages to a topic.
type Producer interface {
	Publish(topic string, key, value []byte) error
	Close() error
}

type Cfg struct {
	KafkaUrl      string
	KafkaUsername string
	KafkaPassword string
	KafkaCaCert   string
	AppName       string
}

type KafkaConfig struct {
	Brokers       []string
	Username      string
	Password      string
	SaslMechanism string
	AppName       string
	KafkaCaCert   string
}

var kafkaConfig KafkaConfig

func InitKafkaConfig(cfg Cfg) KafkaConfig {
	kafkaConfig = KafkaConfig{
		Brokers:       strings.Split(cfg.KafkaUrl, ","),
		Username:      cfg.KafkaUsername,
		Password:      cfg.KafkaPassword,
		AppName:       cfg.AppName,
		KafkaCaCert:   cfg.KafkaCaCert,
		SaslMechanism: sarama.SASLTypePlaintext,
	}
	return kafkaConfig
}

func GetConfig() KafkaConfig {
	return kafkaConfig
}

// SaramaConfig translates the service settings into a sarama producer config.
func (k KafkaConfig) SaramaConfig() (*sarama.Config, error) {
	cfg := sarama.NewConfig()
	cfg.ClientID = k.AppName
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Retry.Backoff = 250 * time.Millisecond
	cfg.Producer.Return.Successes = true
	cfg.Producer.Idempotent = true
	cfg.Net.MaxOpenRequests = 1

	if k.Username != "" {
		cfg.Net.SASL.Enable = true
		cfg.Net.SASL.Mechanism = sarama.SASLMechanism(k.SaslMechanism)
		cfg.Net.SASL.User = k.Username
		cfg.Net.SASL.Password = k.Password
	}
	if k.KafkaCaCert != "" {
		pem, err := base64.StdEncoding.DecodeString(k.KafkaCaCert)
		if err != nil {
			return nil, fmt.Errorf("decode kafka ca cert: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("kafka ca cert contains no certificates")
		}
		cfg.Net.TLS.Enable = true
		cfg.Net.TLS.Config = &tls.Config{RootCAs: pool, MinVersion: tls.VersionTLS12}
	}
	return cfg, nil
}

type syncProducer struct {
	producer sarama.SyncProducer
	log      log.Log
}

func NewProducer(cfg KafkaConfig, logger log.Log) (Producer, error) {
	saramaCfg, err := cfg.SaramaConfig()
	if err != nil {
		return nil, err
	}
	p, err := sarama.NewSyncProducer(cfg.Brokers, saramaCfg)
	if err != nil {
		return nil, err
	}
	return &syncProducer{producer: p, log: logger}, nil
}

func (p *syncProducer) Publish(topic string, key, value []byte) error {
	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.ByteEncoder(key),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		return err
	}
	p.log.Info("kafka", "message delivered", topic, fmt.Sprintf("partition=%d offset=%d", partition, offset))
	return nil
}

func (p *syncProducer) Close() error {
	return p.producer.Close()
}
