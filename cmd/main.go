package main

import (
	"context"
	"log"

	"appointment-service/config"
	"appointment-service/internal/module/booking/handler"
	"appointment-service/internal/module/booking/repositories"
	"appointment-service/internal/module/booking/usecases"
	"appointment-service/internal/pkg/database"
	"appointment-service/internal/pkg/http"
	"appointment-service/internal/pkg/httpclient"
	log_internal "appointment-service/internal/pkg/log"
	"appointment-service/internal/pkg/messagestream"
	"appointment-service/internal/pkg/middleware"
	redis_internal "appointment-service/internal/pkg/redis"
	"appointment-service/internal/pkg/scheduler"
	"appointment-service/internal/pkg/vnpay"
	router "appointment-service/internal/route"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-playground/validator/v10"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
)

func main() {
	cfg := config.InitConfig()

	app, messageRouters, taskScheduler, taskHandlers := initService(cfg)

	for _, messageRouter := range messageRouters {
		ctx := context.Background()
		go func(r *message.Router) {
			if err := r.Run(ctx); err != nil {
				log.Fatal(err)
			}
		}(messageRouter)
	}

	// scheduled payment expiry
	go taskScheduler.StartHandler(&cfg.Redis, []string{scheduler.TypeSetPaymentExpired}, taskHandlers)
	go taskScheduler.StartMonitoring(&cfg.Redis)

	// start http server
	http.StartHttpServer(app, cfg.HttpServer.Port)
}

func initService(cfg *config.Config) (*fiber.App, []*message.Router, *scheduler.Scheduler, []func(ctx context.Context, t *asynq.Task) error) {
	// init database
	db := database.GetConnection(&cfg.Database)
	// init redis
	redisClient := redis_internal.SetupClient(&cfg.Redis)
	// init logger
	logger := log_internal.Setup()
	// init http client
	cb := httpclient.InitCircuitBreaker(&cfg.HttpClient, cfg.HttpClient.Type)
	httpClient := httpclient.InitHttpClient(&cfg.HttpClient, cb)
	// init distributed lock
	pool := goredis.NewPool(redisClient)
	rs := redsync.New(pool)
	// init scheduler
	taskScheduler := &scheduler.Scheduler{Log: logger}
	schedulerClient := taskScheduler.InitClient(&cfg.Redis)
	schedulerInspector := taskScheduler.InitInspector(&cfg.Redis)

	ctx := context.Background()
	// init message stream
	amqp := messagestream.NewAmpq(&cfg.MessageStream)

	subscriber, err := amqp.NewSubscriber()
	if err != nil {
		logger.Ctx(ctx).Fatal("failed to create subscriber")
	}

	publisher, err := amqp.NewPublisher()
	if err != nil {
		logger.Ctx(ctx).Fatal("failed to create publisher")
	}

	gateway := vnpay.NewClient(&cfg.VNPay)

	bookingRepo := repositories.New(db, logger, httpClient, redisClient, rs, schedulerClient, schedulerInspector, &cfg.UserService)
	bookingUsecase := usecases.New(bookingRepo, logger, publisher, gateway, &cfg.Booking)
	m := &middleware.Middleware{
		Log:  logger,
		Repo: bookingRepo,
	}

	v := validator.New()
	bookingHandler := &handler.BookingHandler{
		Log:       logger,
		Validator: v,
		Usecase:   bookingUsecase,
		Publish:   publisher,
	}

	var messageRouters []*message.Router

	callbackRouter, err := messagestream.NewRouter(publisher, "payment_callback_poisoned", "payment_callback_handler", "payment_callback", subscriber, bookingHandler.ConsumePaymentCallbackQueue)
	if err != nil {
		logger.Ctx(ctx).Fatal("failed to create payment_callback router")
	}
	messageRouters = append(messageRouters, callbackRouter)

	serverHttp := http.SetupHttpEngine()
	app := router.Initialize(serverHttp, bookingHandler, m)

	taskHandlers := []func(ctx context.Context, t *asynq.Task) error{bookingHandler.SetPaymentExpired}

	return app, messageRouters, taskScheduler, taskHandlers
}
