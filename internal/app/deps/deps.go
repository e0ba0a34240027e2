package deps

import (
	"authgate/internal/config"
	dl "authgate/internal/core/domain/logging"
	duow "authgate/internal/core/domain/unit_of_work"
	"authgate/internal/core/domain/user"
	uow "authgate/internal/db/unit_of_work"
	dbuser "authgate/internal/db/user"
	"authgate/internal/implementations/logging"
	passwordhasher "authgate/internal/implementations/password_hasher"
	restoreledger "authgate/internal/implementations/restore_ledger"
	restoretoken "authgate/internal/implementations/restore_token"
	"authgate/internal/implementations/session"
	"authgate/internal/rabbitmq"
	restorelinkdispatcher "authgate/internal/rabbitmq/publishers/restore_link_dispatcher"
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
)

type Deps struct {
	Config *config.Config
	Logger dl.Logger

	DB       *pgxpool.Pool
	Redis    *redis.Client
	Rabbitmq *rabbitmq.Connection

	Now func() time.Time

	UnitOfWork     duow.UnitOfWork
	UserRepository user.UserRepository

	PasswordHasher        user.PasswordHasher
	SessionTokenIssuer    user.SessionTokenIssuer
	RestoreTokenIssuer    user.RestoreTokenIssuer
	RestoreTokenLedger    user.RestoreTokenLedger
	RestoreLinkDispatcher user.RestoreLinkDispatcher
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()

	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()
	closeRabbitmqConn := deps.initRabbitmqConnection()

	deps.Now = func() time.Time { return time.Now().UTC() }

	deps.UnitOfWork = uow.NewPgxUnitOfWork(deps.DB)
	deps.UserRepository = dbuser.NewPgxRepository(deps.DB)

	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.BcryptHasherCost)
	deps.SessionTokenIssuer = session.NewJWT(deps.Config.SessionSecret, deps.Config.SessionTokenTTL, deps.Now)
	deps.RestoreTokenIssuer = restoretoken.NewJWT(deps.Config.RestoreSecret, deps.Config.RestoreTokenTTL, deps.Now)
	deps.RestoreTokenLedger = restoreledger.NewRedis(deps.Redis, deps.Logger, deps.Now)

	closeRestoreLinkDispatcher := deps.initRabbitmqRestoreLinkDispatcher()

	return deps, func() {
		// The dispatcher channel goes before the connection, the logger last.
		closeRestoreLinkDispatcher()
		closeInParallel(closeRabbitmqConn, closeRedisClient, closePgxPool)
		closeLogger()
	}
}

func closeInParallel(closeFuncs ...func()) {
	var wg sync.WaitGroup
	wg.Add(len(closeFuncs))
	for _, closeFunc := range closeFuncs {
		closeFunc := closeFunc
		go func() {
			closeFunc()
			wg.Done()
		}()
	}
	wg.Wait()
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger(deps.Config.IsTestMode)
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRedisClient() func() {
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initRabbitmqConnection() func() {
	deps.Rabbitmq = dialRabbitmq(deps.Config.RabbitMQ, deps.Logger)
	return closeRabbitmq(deps.Rabbitmq, deps.Logger)
}

func (deps *Deps) initRabbitmqRestoreLinkDispatcher() func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	deps.RestoreLinkDispatcher = restorelinkdispatcher.NewRabbitMQ(
		deps.Logger,
		rabbitmqChannel,
		deps.Config.RabbitMQ.RestoreLinkQueue,
		deps.Now,
	)

	return func() {
		deps.Logger.Info(context.Background(), "Shutting down restore link dispatcher.")
		rabbitmqChannel.Close()
		deps.Logger.Info(context.Background(), "Restore link dispatcher shut down.")
	}
}

// dialRabbitmq connects and declares the restore link queue. Both processes
// declare it, so they may start in any order.
func dialRabbitmq(cfg config.RabbitMQ, log dl.Logger) *rabbitmq.Connection {
	conn, err := rabbitmq.Dial(cfg.URL, log)
	if err != nil {
		log.Error(context.Background(), "Could not connect to RabbitMQ.", dl.Entry("err", err))
		panic("could not connect to RabbitMQ")
	}
	if err := conn.DeclareQueue(cfg.RestoreLinkQueue); err != nil {
		log.Error(
			context.Background(),
			"Could not create RabbitMQ queue.",
			dl.Entry("err", err),
			dl.Entry("queue", cfg.RestoreLinkQueue),
		)
		panic(err)
	}
	return conn
}

func closeRabbitmq(conn *rabbitmq.Connection, log dl.Logger) func() {
	return func() {
		log.Info(context.Background(), "Shutting down RabbitMQ connection.")
		conn.Close()
		log.Info(context.Background(), "RabbitMQ connection shut down.")
	}
}
