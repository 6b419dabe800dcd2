package wire

import (
	"Pollhive/internal/api"
	"Pollhive/internal/api/config"
	"Pollhive/internal/api/handler"
	"Pollhive/internal/job"
	"Pollhive/internal/pkg/cron"
	"Pollhive/internal/pkg/kafka"
	"Pollhive/internal/pkg/sentiment"
	"Pollhive/internal/pkg/worker"
	"Pollhive/internal/recommend"
	"Pollhive/internal/repository"
	"Pollhive/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	KafkaManager *kafka.ConsumerManager
	Producer     *kafka.Producer
	CronMgr      *cron.Manager
}

func BuildApplication(client *mongo.Client, db *mongo.Database, pool *worker.Pool, cfg *config.Config) (*ApplicationContainer, error) {
	pollRepo := repository.NewPollRepo(db)
	userRepo := repository.NewUserRepo(db)
	interactionRepo := repository.NewInteractionRepo(db)
	commentRepo := repository.NewCommentRepo(db)
	paymentRepo := repository.NewPaymentRepo(db)

	producer, err := kafka.NewProducer(cfg)
	if err != nil {
		return nil, err
	}

	engine := recommend.NewHybrid(
		recommend.NewCollaborative(userRepo),
		recommend.NewContentBased(pollRepo),
		recommend.NewFallback(pollRepo),
	)
	analyzer := sentiment.NewHTTPAnalyzer(cfg)

	engagementService := service.NewEngagementService(client, userRepo, pollRepo, interactionRepo)
	recommendService := service.NewRecommendService(cfg, userRepo, engine, pool)
	interactionService := service.NewInteractionService(producer, interactionRepo)
	voteService := service.NewVoteService(client, pollRepo, userRepo, paymentRepo, producer)
	commentService := service.NewCommentService(client, commentRepo, pollRepo, userRepo, analyzer, pool, producer)
	pollService := service.NewPollService(client, pollRepo, userRepo, paymentRepo)
	userService := service.NewUserService(userRepo, paymentRepo)

	handlers := &api.HandlersGroup{
		UserHandler:           handler.NewUserHandler(userService),
		PollHandler:           handler.NewPollHandler(pollService, voteService),
		InteractionHandler:    handler.NewInteractionHandler(interactionService),
		CommentHandler:        handler.NewCommentHandler(commentService),
		RecommendationHandler: handler.NewRecommendationHandler(recommendService),
		WsHandler:             handler.NewWsHandler(),
	}

	router := api.SetupRouter(handlers)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, engagementService, recommendService)
	if err != nil {
		return nil, err
	}

	cronMgr := cron.NewCronManager(cfg, job.NewTrendingJob(pollRepo))

	return &ApplicationContainer{
		Router:       router,
		KafkaManager: kafkaMgr,
		Producer:     producer,
		CronMgr:      cronMgr,
	}, nil
}
