package wire

import (
	"Aidol/internal/api"
	"Aidol/internal/api/config"
	"Aidol/internal/api/handler"
	"Aidol/internal/pkg/datagw"
	"Aidol/internal/pkg/docstore"
	"Aidol/internal/pkg/es"
	"Aidol/internal/pkg/kafka"
	"Aidol/internal/pkg/workflow"
	"Aidol/internal/repository"
	"Aidol/internal/service"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router   *gin.Engine
	Producer *kafka.Producer
}

func BuildApplication(db *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	tables := docstore.TablesFromConfig(cfg.DocStore)
	store := docstore.NewMongoStore(db, tables)
	gateway := datagw.New(store, tables)

	wfClient := workflow.NewClient(workflow.Config{
		Targets:      cfg.Workflow.Targets,
		PollInterval: time.Duration(cfg.Workflow.PollIntervalMs) * time.Millisecond,
		Timeout:      time.Duration(cfg.Workflow.TimeoutMs) * time.Millisecond,
	}, time.Duration(cfg.Workflow.RequestTimeoutMs)*time.Millisecond)

	producer, err := kafka.NewProducer(cfg.Kafka)
	if err != nil {
		return nil, err
	}

	var esRepo es.PostRepo
	if es.Client != nil {
		esRepo = es.NewPostRepo(es.Client)
	}

	userRepo := repository.NewUserRepo(store, gateway)
	postRepo := repository.NewPostRepo(store, gateway)
	commentRepo := repository.NewCommentRepo(store, gateway)
	likeRepo := repository.NewLikeRepo(store, gateway)

	userService := service.NewUserService(userRepo)
	postService := service.NewPostService(postRepo, esRepo, producer)
	commentService := service.NewCommentService(commentRepo, postRepo, producer)
	likeService := service.NewLikeService(likeRepo, postRepo, producer)
	replyService := service.NewReplyService(commentRepo, postRepo, wfClient)

	handlers := &api.HandlersGroup{
		UserHandler:    handler.NewUserHandler(userService),
		PostHandler:    handler.NewPostHandler(postService),
		CommentHandler: handler.NewCommentHandler(commentService),
		LikeHandler:    handler.NewLikeHandler(likeService),
		ReplyHandler:   handler.NewReplyHandler(replyService),
		MediaHandler:   handler.NewMediaHandler(),
	}

	router := api.SetupRouter(handlers)

	return &ApplicationContainer{
		Router:   router,
		Producer: producer,
	}, nil
}
