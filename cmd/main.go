package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/tcp_snm/leetlab/internal/api"
	"github.com/tcp_snm/leetlab/internal/database"
	"github.com/tcp_snm/leetlab/internal/email"
	"github.com/tcp_snm/leetlab/internal/judge"
	"github.com/tcp_snm/leetlab/internal/service/auth_service"
	"github.com/tcp_snm/leetlab/internal/service/problem_service"
	"github.com/tcp_snm/leetlab/internal/service/user_service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

var (
	apiConfig *api.Api
)

type dependencies struct {
	pool   *pgxpool.Pool
	rdb    *redis.Client
	mailer *email.EmailService
}

func initDatabase() *pgxpool.Pool {
	dbURL := os.Getenv(KeyDBURL)
	if dbURL == "" {
		panic("dbURL not found")
	}

	if err := database.Migrate(context.Background(), dbURL); err != nil {
		panic(err)
	}

	pool, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		panic(err)
	}
	return pool
}

func initRedis() *redis.Client {
	opts, err := redis.ParseURL(envOrDefault(KeyRedisURL, "redis://localhost:6379/0"))
	if err != nil {
		panic(err)
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = rdb.Ping(ctx).Err(); err != nil {
		panic(err)
	}
	return rdb
}

func initEmailService() *email.EmailService {
	es := email.NewEmailService(
		os.Getenv(email.KeyEmailSender),
		os.Getenv(email.KeyEmailSenderPassword),
	)
	es.StartEmailWorkers(envInt(KeyEmailWorkers, 1))
	return es
}

func initVerifier() *judge.Verifier {
	log.Info("initializing judge verifier")
	verifier, err := judge.NewVerifierFromConfig(judgeConfigFromEnv())
	if err != nil {
		panic(err)
	}
	return verifier
}

func initApi(deps dependencies) *api.Api {
	log.Info("initializing api config")
	db := database.New(deps.pool)

	us := user_service.NewUserService(db)
	log.Info("user service created")

	as := &auth_service.AuthService{
		DB:         db,
		UserConfig: us,
		Tokens:     auth_service.NewVerificationStore(deps.rdb, auth_service.DefaultVerificationTTL),
		Mailer:     deps.mailer,
		BaseURL:    envOrDefault(KeyPublicURL, "http://localhost:8080"),
	}
	log.Info("auth service created")

	ps := &problem_service.ProblemService{
		DB:                db,
		UserServiceConfig: us,
		Verifier:          initVerifier(),
	}
	log.Info("problem service created")

	return &api.Api{
		AuthServiceConfig:    as,
		UserServiceConfig:    us,
		ProblemServiceConfig: ps,
	}
}

func setup() dependencies {
	godotenv.Load()
	setLogging()
	deps := dependencies{
		pool:   initDatabase(),
		rdb:    initRedis(),
		mailer: initEmailService(),
	}
	apiConfig = initApi(deps)
	return deps
}

func setCors(router *chi.Mux) {
	router.Use(
		cors.Handler(
			cors.Options{
				AllowedOrigins:   []string{"https://*", "http://*"},
				AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
				AllowedHeaders:   []string{"*"},
				AllowCredentials: true,
				ExposedHeaders:   []string{"Link"},
				MaxAge:           300,
			},
		),
	)
	log.Info("cors options has been set")
}

func main() {
	deps := setup()

	router := chi.NewRouter()
	setCors(router)

	v1router := NewV1Router()
	router.Mount("/v1", v1router)
	log.Info("v1 router has been mounted")

	port := envOrDefault(KeyPort, "8080")
	apiAddress := os.Getenv(KeyApiURL) + ":" + port

	srv := http.Server{
		Handler: router,
		Addr:    apiAddress,
		// no write timeout, problem creation waits on the judge
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("server shutdown failed, %v", err)
		}
	}()

	log.Infof("starting server on %s", apiAddress)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server cannot be started. Error: %v", err)
	}

	deps.mailer.Stop()
	deps.rdb.Close()
	deps.pool.Close()
	log.Info("server stopped")
}
