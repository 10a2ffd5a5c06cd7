package config

import (
	"fmt"
	"strings"

	"marketplace-service/src/internal/gateway/mail"
	"marketplace-service/src/pkg/log"

	"github.com/hibiken/asynq"
	"github.com/spf13/viper"
)

func asynqRedisOpt(v *viper.Viper) asynq.RedisClientOpt {
	host := v.GetString("redis.host")
	if host == "" {
		host = "127.0.0.1"
	}

	port := v.GetInt("redis.port")
	if port == 0 {
		port = 6379
	}

	return asynq.RedisClientOpt{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: v.GetString("redis.password"),
		DB:       v.GetInt("redis.db"),
	}
}

func NewAsynqClient(v *viper.Viper) *asynq.Client {
	return asynq.NewClient(asynqRedisOpt(v))
}

func NewAsynqServer(v *viper.Viper) *asynq.Server {
	return asynq.NewServer(asynqRedisOpt(v), asynq.Config{
		Concurrency: v.GetInt("asynq.concurrency"),
		Queues:      map[string]int{v.GetString("asynq.queue"): 1},
	})
}

// NewMailDispatcher is the producer side of the demo request email.
func NewMailDispatcher(v *viper.Viper, client *asynq.Client, log log.Log) *mail.Dispatcher {
	return mail.NewDispatcher(client, v.GetString("asynq.queue"), log)
}

// NewTaskMux registers the worker handlers.
func NewTaskMux(v *viper.Viper, log log.Log) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	handler := &mail.Handler{
		Sender: &mail.SMTPSender{
			Host:     v.GetString("mail.host"),
			Port:     v.GetInt("mail.port"),
			Username: v.GetString("mail.username"),
			Password: v.GetString("mail.password"),
			From:     v.GetString("mail.from"),
		},
		Recipients: splitList(v.GetString("mail.demo_recipients")),
		Log:        log,
	}
	handler.Register(mux)
	return mux
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
