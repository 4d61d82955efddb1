// Command tasks runs operational jobs against the same database as the
// API: the midnight rollover, status backfills, and report refreshes.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/timedesk/timeclock-backend-go/internal/config"
	"github.com/timedesk/timeclock-backend-go/internal/pkg/database"
	"github.com/timedesk/timeclock-backend-go/internal/repository/postgresql"
	serviceRollover "github.com/timedesk/timeclock-backend-go/internal/service/rollover"
	"github.com/timedesk/timeclock-backend-go/migrations"
)

func main() {
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	dsn := cfg.DatabaseURL()
	if err := database.Migrate(dsn, migrations.FS); err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}

	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	location, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal("Invalid APP_TIMEZONE: ", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	switch flag.Arg(0) {
	case "daily-rollover":
		timeRegisterRepo := postgresql.NewTimeRegisterRepository(db)
		rolloverService := serviceRollover.NewRolloverService(db, timeRegisterRepo, location)
		stats, err := rolloverService.Run(ctx, time.Now())
		if err != nil {
			log.Fatal("Rollover failed: ", err)
		}
		fmt.Printf("closed=%d reopened=%d skipped=%d failed=%d\n",
			stats.Closed, stats.Reopened, stats.Skipped, stats.Failed)

	case "backfill-status":
		timeRegisterRepo := postgresql.NewTimeRegisterRepository(db)
		affected, err := timeRegisterRepo.BackfillStatuses(ctx)
		if err != nil {
			log.Fatal("Backfill failed: ", err)
		}
		fmt.Printf("rows updated: %d\n", affected)

	case "employee-count":
		reportRepo := postgresql.NewReportRepository(db)
		written, err := reportRepo.MaterializeEmployeeCounts(ctx)
		if err != nil {
			log.Fatal("Report refresh failed: ", err)
		}
		slog.Info("Employee count report refreshed", "companies", written)

		counts, err := reportRepo.ListEmployeeCounts(ctx)
		if err != nil {
			log.Fatal("Failed to list employee counts: ", err)
		}
		for _, c := range counts {
			fmt.Printf("%-40s %d\n", c.CompanyName, c.ActiveCount)
		}

	default:
		fmt.Fprintf(os.Stderr, "unknown task: %s\n\n", flag.Arg(0))
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: tasks <task>

Tasks:
  daily-rollover    close yesterday's open slots and reopen today
  backfill-status   reconcile slot statuses with their timestamps
  employee-count    refresh and print the per-company headcount report
`)
	flag.PrintDefaults()
}
