package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "prestamos-backend/internal/adapter/http"
	"prestamos-backend/internal/adapter/middleware"
	"prestamos-backend/internal/adapter/repository/mysql"
	"prestamos-backend/internal/config"
	"prestamos-backend/internal/infrastructure/cache"
	"prestamos-backend/internal/infrastructure/db"
	ucBorrower "prestamos-backend/internal/usecase/borrower"
	ucLoan "prestamos-backend/internal/usecase/loan"
	ucPayment "prestamos-backend/internal/usecase/payment"
	ucUser "prestamos-backend/internal/usecase/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	log.Printf("starting with options: %s", cfg)

	gdb, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer sqlDB.Close()
	if cfg.MigrateOnStart {
		if err := db.Migrate(sqlDB, cfg.DBDriver); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}

	rdb, err := cache.OpenRedis(context.Background(), cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	tx := mysql.NewGormUoW(gdb)
	repos := tx.Repos()
	loanUC := ucLoan.NewUsecase(repos.Loans, tx)
	userUC := ucUser.NewUsecase(repos.Users)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	// routes
	httpadp.Handlers{
		Health: httpadp.NewHandler(
			httpadp.Check{Name: "db", Fn: sqlDB.PingContext},
			httpadp.Check{Name: "redis", Fn: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
		),
		Borrowers: httpadp.NewBorrowerHandler(ucBorrower.NewUsecase(repos.Borrowers, repos.Loans)),
		Loans:     httpadp.NewLoanHandler(loanUC),
		Payments:  httpadp.NewPaymentHandler(loanUC, ucPayment.NewUsecase(repos.Loans, repos.Payments)),
		Users:     httpadp.NewUserHandler(userUC),
	}.Register(e,
		middleware.Identity(),
		middleware.RecordPrincipal(userUC),
		middleware.IdempotencyMiddleware(rdb, cfg.IdempotencyTTL),
	)

	addr := ":" + cfg.AppPort
	go func() {
		log.Printf("listening on %s", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
