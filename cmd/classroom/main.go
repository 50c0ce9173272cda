package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/tendant/chi-demo/app"
	dbutils "github.com/tendant/db-utils/db"

	"github.com/campushq/classroom-idm/pkg/account"
	"github.com/campushq/classroom-idm/pkg/audit"
	"github.com/campushq/classroom-idm/pkg/courses"
	"github.com/campushq/classroom-idm/pkg/iam"
	"github.com/campushq/classroom-idm/pkg/login"
	"github.com/campushq/classroom-idm/pkg/ratelimit"
	"github.com/campushq/classroom-idm/pkg/sessiontoken"
	"github.com/campushq/classroom-idm/pkg/signup"
)

type ClassroomDbConfig struct {
	Host     string `env:"CLASSROOM_PG_HOST" env-default:"localhost"`
	Port     uint16 `env:"CLASSROOM_PG_PORT" env-default:"5432"`
	Database string `env:"CLASSROOM_PG_DATABASE" env-default:"classroom_db"`
	User     string `env:"CLASSROOM_PG_USER" env-default:"classroom"`
	Password string `env:"CLASSROOM_PG_PASSWORD" env-default:"pwd"`
}

func (d ClassroomDbConfig) toDbConfig() dbutils.DbConfig {
	return dbutils.DbConfig{
		Host:     d.Host,
		Port:     d.Port,
		Database: d.Database,
		User:     d.User,
		Password: d.Password,
	}
}

type AuthConfig struct {
	// Secret signs every session token. Required: startup fails when it
	// is unset rather than falling back to a well-known default.
	Secret         string        `env:"AUTH_SECRET"`
	TokenExpiry    time.Duration `env:"SESSION_TOKEN_EXPIRY" env-default:"1h"`
	CookieHttpOnly bool          `env:"COOKIE_HTTP_ONLY" env-default:"true"`
	CookieSecure   bool          `env:"COOKIE_SECURE" env-default:"false"`
}

type CorsConfig struct {
	Origin string `env:"CORS_ORIGIN" env-default:"http://localhost:5173"`
}

type Config struct {
	DbConfig        ClassroomDbConfig
	AppConfig       app.AppConfig
	AuthConfig      AuthConfig
	CorsConfig      CorsConfig
	RateLimitConfig ratelimit.Config
}

func main() {

	config := Config{}
	cleanenv.ReadEnv(&config)

	if config.AuthConfig.Secret == "" {
		slog.Error("AUTH_SECRET is required")
		os.Exit(-1)
	}

	server := app.DefaultApp()

	app.RoutesHealthz(server.R)
	app.RoutesHealthzReady(server.R)

	dbConfig := config.DbConfig.toDbConfig()
	pool, err := dbutils.NewDbPool(context.Background(), dbConfig)
	if err != nil {
		slog.Error("Failed creating dbpool", "db", dbConfig.Database, "host", dbConfig.Host, "port", dbConfig.Port, "user", dbConfig.User)
		os.Exit(-1)
	}

	repo := account.NewPostgresRepository(pool)

	tokens := sessiontoken.NewService(
		config.AuthConfig.Secret,
		sessiontoken.WithExpiry(config.AuthConfig.TokenExpiry),
	)
	cookies := sessiontoken.NewCookieSetter(
		config.AuthConfig.CookieHttpOnly,
		config.AuthConfig.CookieSecure,
	)

	loginService := login.NewLoginService(repo, tokens)
	signupService := signup.NewSignupService(repo)

	loginHandle := login.NewHandle(loginService, tokens, cookies)
	signupHandle := signup.NewHandle(signupService)

	tokenAuth := jwtauth.New("HS256", []byte(config.AuthConfig.Secret), nil)
	auditMiddleware := audit.NewMiddleware(audit.Config{Source: "classroom-idm"})
	resolveSession := []func(http.Handler) http.Handler{
		login.Verifier(tokenAuth),
		login.AccountMiddleware(repo),
		auditMiddleware.AuditAuthMiddleware,
	}

	limiter := ratelimit.NewMiddleware(config.RateLimitConfig)

	corsMiddleware := cors.Handler(cors.Options{
		AllowedOrigins:   []string{config.CorsConfig.Origin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Custom-Header"},
		ExposedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           86400,
	})

	authRouter := chi.NewRouter()
	authRouter.Use(corsMiddleware, limiter.Handler)
	login.Routes(authRouter, loginHandle, resolveSession...)
	signup.Routes(authRouter, signupHandle, append(resolveSession, iam.StaffRoleMiddleware)...)
	server.R.Mount("/auth", authRouter)

	coursesRouter := chi.NewRouter()
	coursesRouter.Use(corsMiddleware)
	courses.Routes(coursesRouter, courses.NewHandle(), resolveSession...)
	server.R.Mount("/courses", coursesRouter)

	server.Run()

}
