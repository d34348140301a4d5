package scheduler

import (
	"context"
	"fmt"
	"net/http"

	"appointment-service/config"

	"github.com/hibiken/asynq"
	"github.com/hibiken/asynqmon"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

const (
	TypeSetPaymentExpired = "set_payment_expired"
)

type Scheduler struct {
	Log *otelzap.Logger
}

func redisClientOpt(cfg *config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

func (s *Scheduler) InitClient(cfg *config.RedisConfig) *asynq.Client {
	return asynq.NewClient(redisClientOpt(cfg))
}

func (s *Scheduler) InitInspector(cfg *config.RedisConfig) *asynq.Inspector {
	return asynq.NewInspector(redisClientOpt(cfg))
}

func (s *Scheduler) StartMonitoring(cfg *config.RedisConfig) {
	h := asynqmon.New(asynqmon.Options{
		RootPath:     "/monitoring",
		RedisConnOpt: redisClientOpt(cfg),
	})

	http.Handle(h.RootPath()+"/", h)

	err := http.ListenAndServe(":8080", nil)
	s.Log.Ctx(context.Background()).Error(fmt.Sprintf("error start monitoring scheduler: %v", err))
}

func (s *Scheduler) StartHandler(cfg *config.RedisConfig, taskTypes []string, handlerFuncs []func(ctx context.Context, t *asynq.Task) error) {
	srv := asynq.NewServer(
		redisClientOpt(cfg),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 10,
			},
		},
	)

	mux := asynq.NewServeMux()
	for i, taskType := range taskTypes {
		mux.HandleFunc(taskType, handlerFuncs[i])
	}

	if err := srv.Run(mux); err != nil {
		s.Log.Ctx(context.Background()).Error(fmt.Sprintf("error start handler scheduler: %v", err))
	}
}
