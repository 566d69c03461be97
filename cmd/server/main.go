package main // Entry point package

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-auth-service/internal/config"
	"github.com/iliyamo/user-auth-service/internal/database"
	"github.com/iliyamo/user-auth-service/internal/handler"
	"github.com/iliyamo/user-auth-service/internal/middleware"
	"github.com/iliyamo/user-auth-service/internal/repository"
	"github.com/iliyamo/user-auth-service/internal/router"
	"github.com/iliyamo/user-auth-service/internal/service/audit"
	"github.com/iliyamo/user-auth-service/internal/service/auth"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env always wins
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	sessions := repository.NewSessionRepo(db)
	audits := repository.NewAuditRepo(db)

	// Security events go to the broker only when one is configured.
	publish := os.Getenv("RABBITMQ_URL") != "" || os.Getenv("AMQP_URL") != ""
	recorder := audit.NewRecorder(audits, publish)

	svc := auth.NewService(users, sessions, recorder, cfg)

	// Redis-backed rate limiting on the credential endpoints. When Redis is
	// unreachable the limiter degrades to a pass-through.
	rdb := config.NewRedisClient()
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	authn := middleware.Authenticate(cfg.JWTSecret, cfg.Issuer, users)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(svc), limiter)
	router.RegisterUsers(e, handler.NewUserHandler(svc), authn)
	router.RegisterAdmin(e, handler.NewAdminHandler(svc), authn)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
