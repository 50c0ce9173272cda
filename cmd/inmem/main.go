// Package main runs the classroom identity service without a database
// using the in-memory account repository. Useful for quick development,
// demos, and learning the API; all data is lost when the server stops.
// For production use cmd/classroom with PostgreSQL.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/tendant/chi-demo/app"

	"github.com/campushq/classroom-idm/pkg/account"
	"github.com/campushq/classroom-idm/pkg/audit"
	"github.com/campushq/classroom-idm/pkg/courses"
	"github.com/campushq/classroom-idm/pkg/iam"
	"github.com/campushq/classroom-idm/pkg/login"
	"github.com/campushq/classroom-idm/pkg/sessiontoken"
	"github.com/campushq/classroom-idm/pkg/signup"
)

const jwtSecret = "inmem-dev-secret-change-in-production"

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	slog.Info("Starting in-memory classroom identity service (no database required)")

	repo := account.NewInMemoryRepository()
	seedInitialData(repo)

	tokens := sessiontoken.NewService(jwtSecret)
	cookies := sessiontoken.NewCookieSetter(true, false)

	loginService := login.NewLoginService(repo, tokens)
	signupService := signup.NewSignupService(repo)

	loginHandle := login.NewHandle(loginService, tokens, cookies)
	signupHandle := signup.NewHandle(signupService)

	tokenAuth := jwtauth.New("HS256", []byte(jwtSecret), nil)
	auditMiddleware := audit.NewMiddleware(audit.Config{Source: "classroom-idm-inmem"})
	resolveSession := []func(http.Handler) http.Handler{
		login.Verifier(tokenAuth),
		login.AccountMiddleware(repo),
		auditMiddleware.AuditAuthMiddleware,
	}

	server := app.DefaultApp()
	app.RoutesHealthz(server.R)
	app.RoutesHealthzReady(server.R)

	authRouter := chi.NewRouter()
	login.Routes(authRouter, loginHandle, resolveSession...)
	signup.Routes(authRouter, signupHandle, append(resolveSession, iam.StaffRoleMiddleware)...)
	server.R.Mount("/auth", authRouter)

	coursesRouter := chi.NewRouter()
	courses.Routes(coursesRouter, courses.NewHandle(), resolveSession...)
	server.R.Mount("/courses", coursesRouter)

	server.Run()
}

// seedInitialData creates a bootstrap admin so the role-gated
// create_account endpoint is reachable on a fresh server.
func seedInitialData(repo *account.InMemoryRepository) {
	acct, err := repo.Create(context.Background(), account.CreateAccountParams{
		Username:  "sadmin",
		Password:  "Admin123!",
		FirstName: "Site",
		LastName:  "Admin",
		Role:      account.RoleAdmin,
	})
	if err != nil {
		slog.Error("Failed seeding admin account", "err", err)
		os.Exit(-1)
	}
	slog.Info("Seeded admin account", "username", acct.Username, "password", "Admin123!")
}
