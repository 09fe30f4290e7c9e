package httpserver

import (
	"database/sql"
	"errors"

	"renov-srv/config"
	"renov-srv/pkg/encrypter"
	pkgJWT "renov-srv/pkg/jwt"
	pkgKafka "renov-srv/pkg/kafka"
	"renov-srv/pkg/log"
	pkgRedis "renov-srv/pkg/redis"
	"renov-srv/pkg/storage"

	"github.com/gin-gonic/gin"
)

type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	host        string
	port        int
	mode        string
	environment string

	// Backends
	postgresDB  *sql.DB
	redisClient pkgRedis.IRedis
	storage     storage.IStorage

	// Messaging
	taskProducer  pkgKafka.IProducer
	eventProducer pkgKafka.IProducer

	// Security
	config     *config.Config
	jwtManager *pkgJWT.Manager
	encrypter  encrypter.Encrypter
}

type Config struct {
	// Server
	Logger      log.Logger
	Host        string
	Port        int
	Mode        string
	Environment string

	// Backends
	PostgresDB  *sql.DB
	RedisClient pkgRedis.IRedis
	Storage     storage.IStorage

	// Messaging
	TaskProducer  pkgKafka.IProducer
	EventProducer pkgKafka.IProducer

	// Security
	Config     *config.Config
	JWTManager *pkgJWT.Manager
	Encrypter  encrypter.Encrypter
}

// New creates a new HTTPServer instance with the provided configuration.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:           logger,
		gin:         gin.New(),
		host:        cfg.Host,
		port:        cfg.Port,
		mode:        cfg.Mode,
		environment: cfg.Environment,

		postgresDB:  cfg.PostgresDB,
		redisClient: cfg.RedisClient,
		storage:     cfg.Storage,

		taskProducer:  cfg.TaskProducer,
		eventProducer: cfg.EventProducer,

		config:     cfg.Config,
		jwtManager: cfg.JWTManager,
		encrypter:  cfg.Encrypter,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

// validate validates that all required dependencies are provided.
func (srv *HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	// host can be empty (listen on all interfaces)
	if srv.port == 0 {
		return errors.New("port is required")
	}

	if srv.postgresDB == nil {
		return errors.New("postgresDB is required")
	}
	if srv.redisClient == nil {
		return errors.New("redisClient is required")
	}
	if srv.storage == nil {
		return errors.New("storage is required")
	}

	if srv.taskProducer == nil {
		return errors.New("taskProducer is required")
	}
	if srv.eventProducer == nil {
		return errors.New("eventProducer is required")
	}

	if srv.config == nil {
		return errors.New("config is required")
	}
	if srv.jwtManager == nil {
		return errors.New("jwtManager is required")
	}
	if srv.encrypter == nil {
		return errors.New("encrypter is required")
	}

	return nil
}
