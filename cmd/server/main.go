package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/shiftlyhq/shiftly/internal/config"
	"github.com/shiftlyhq/shiftly/internal/database"
	"github.com/shiftlyhq/shiftly/internal/handler"
	"github.com/shiftlyhq/shiftly/internal/middleware"
	"github.com/shiftlyhq/shiftly/internal/queue"
	"github.com/shiftlyhq/shiftly/internal/repository"
	"github.com/shiftlyhq/shiftly/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs the response cache and the rate limiter.  A nil client
	// (Redis down or unconfigured) disables both without failing startup.
	rdb := config.NewRedisClient()
	cacheCfg := config.LoadCacheConfig()
	rateCfg := config.LoadRateLimitConfig()

	var cacheMW, rateMW echo.MiddlewareFunc
	if rdb != nil && cacheCfg.Enabled {
		cacheMW = middleware.NewRedisCache(cacheCfg, rdb)
	}
	if rdb != nil && rateCfg.Enabled {
		rateMW = middleware.NewTokenBucket(rateCfg, rdb)
	}

	accounts := repository.NewAccountRepo(db)
	employees := repository.NewEmployeeRepo(db)
	invites := repository.NewInvitationRepo(db)
	events := repository.NewEventRepo(db)
	attendees := repository.NewAttendeeRepo(db)
	contacts := repository.NewContactRepo(db)
	issues := repository.NewShiftIssueRepo(db)
	avail := repository.NewAvailabilityRepo(db)
	convs := repository.NewConversationRepo(db)

	cacheBus := &handler.CacheBus{RDB: rdb, Cfg: cacheCfg}

	authH := handler.NewAuthHandler(cfg, accounts)
	onboardingH := handler.NewOnboardingHandler(cfg, accounts)
	rosterH := handler.NewRosterHandler(cfg, db, employees, invites, accounts, cacheBus)
	inviteH := handler.NewInviteHandler(db, invites, employees, accounts, cacheBus)
	companyH := handler.NewCompanyHandler(cfg, employees)
	eventH := handler.NewEventHandler(events, attendees, accounts, cacheBus)
	contactH := handler.NewContactHandler(contacts, cacheBus)
	issueH := handler.NewShiftIssueHandler(issues, employees, cacheBus)
	availH := handler.NewAvailabilityHandler(avail, employees)
	convH := handler.NewConversationHandler(convs, accounts)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, onboardingH, cfg.JWTSecret, rateMW)
	router.RegisterCompany(e, rosterH, eventH, issueH, avail, cfg.JWTSecret, cacheMW, rateMW)
	router.RegisterEmployee(e, inviteH, companyH, availH, issueH, eventH, cfg.JWTSecret, rateMW)
	router.RegisterShared(e, eventH, issueH, contactH, convH, cfg.JWTSecret, cacheMW, rateMW)

	// The notification consumer reconnects on its own; losing the broker
	// never takes the API down.
	go func() {
		if err := queue.StartNotificationConsumer(); err != nil {
			log.Printf("notification consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
