package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentcal/core/internal/client"
	"github.com/agentcal/core/internal/dateutil"
	"github.com/agentcal/core/internal/domain/entities"
	"github.com/agentcal/core/internal/infrastructure/config"
	"github.com/agentcal/core/internal/infrastructure/logger"
	"github.com/agentcal/core/internal/infrastructure/server"
	"github.com/agentcal/core/internal/stats"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the AgentCalendar API server",
		Long:  "Start the AgentCalendar API server with all configured routes and middleware",
		Run: func(cmd *cobra.Command, args []string) {
			runServer(seed)
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", false, "Pre-populate the store with demo events for the past week")
	return cmd
}

// NewStatsCommand creates the stats command. It talks to a running server
// through the API client, aggregates the window locally and prints the
// overview.
func NewStatsCommand() *cobra.Command {
	var month, year string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print productivity statistics for a month or year",
		Run: func(cmd *cobra.Command, args []string) {
			runStats(month, year)
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Calendar month to summarize (YYYY-MM), defaults to the current month")
	cmd.Flags().StringVar(&year, "year", "", "Calendar year to summarize (YYYY); overrides --month")
	return cmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print AgentCalendar version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("AgentCalendar Core v1.0.0")
		},
	}
}

func runServer(seed bool) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Close()

	srv, err := server.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create server", "error", err)
	}

	if seed {
		if err := seedEvents(srv); err != nil {
			appLogger.Fatal("Failed to seed demo events", "error", err)
		}
		appLogger.Info("Demo events seeded")
	}

	go func() {
		if err := srv.Start(cfg.Server.Address()); err != nil {
			appLogger.Info("Server stopped", "reason", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Graceful shutdown failed", "error", err)
	}
}

// seedEvents fills the repository with a few recent days of plausible grid
// content so views and statistics have something to show.
func seedEvents(srv *server.Server) error {
	ctx := context.Background()
	today := dateutil.Truncate(time.Now())

	for i := 0; i < 7; i++ {
		day := today.AddDate(0, 0, -i)
		event := entities.CalendarEvent{
			Date:               dateutil.Format(day),
			Title:              "Daily plan",
			Morning9_10:        "work: inbox and planning",
			Morning10_11:       "work: project block",
			Afternoon14_15:     "meeting: team sync",
			Afternoon16_17:     "study: reading",
			Evening19_20:       "exercise: run",
			Evening21_22:       "rest",
			MorningCompleted:   true,
			AfternoonCompleted: i%2 == 0,
			EveningCompleted:   i%3 == 0,
			ProductivityScore:  float64(6 + i%4),
		}
		if _, err := srv.Repository().Create(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

func runStats(month, year string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Close()

	anchor := dateutil.Truncate(time.Now())
	yearly := false
	switch {
	case year != "":
		t, err := time.Parse("2006", year)
		if err != nil {
			log.Fatalf("Invalid --year %q, expected YYYY", year)
		}
		anchor = t
		yearly = true
	case month != "":
		t, err := time.Parse("2006-01", month)
		if err != nil {
			log.Fatalf("Invalid --month %q, expected YYYY-MM", month)
		}
		anchor = t
	}

	var start, end time.Time
	if yearly {
		start, end = dateutil.StartOfYear(anchor), dateutil.EndOfYear(anchor)
	} else {
		start, end = dateutil.StartOfMonth(anchor), dateutil.EndOfMonth(anchor)
	}

	store := client.NewEventStore(client.New(cfg.Client, appLogger), appLogger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := store.Fetch(ctx, &start, &end); err != nil {
		log.Fatalf("Failed to fetch events: %v", err)
	}

	events := store.Events()
	var overview stats.Overview
	if yearly {
		overview = stats.YearOverview(events, anchor)
	} else {
		overview = stats.MonthOverview(events, anchor)
	}

	fmt.Printf("Overview %s - %s\n", dateutil.Format(start), dateutil.Format(end))
	fmt.Printf("  Total hours:       %d\n", overview.TotalHours)
	fmt.Printf("  Completed tasks:   %d\n", overview.CompletedTasks)
	fmt.Printf("  Productivity:      %.1f\n", overview.ProductivityScore)
	fmt.Printf("  Time distribution: morning %d / afternoon %d / evening %d\n",
		overview.TimeDistribution.Morning,
		overview.TimeDistribution.Afternoon,
		overview.TimeDistribution.Evening)

	if len(overview.CategoryBreakdown) > 0 {
		fmt.Println("  Categories:")
		for _, cat := range []stats.Category{
			stats.CategoryMeeting, stats.CategoryStudy, stats.CategoryWork,
			stats.CategoryExercise, stats.CategoryRest, stats.CategoryOther,
		} {
			if n := overview.CategoryBreakdown[cat]; n > 0 {
				fmt.Printf("    %-10s %d\n", cat, n)
			}
		}
	}

	if len(overview.MonthlyData) > 0 {
		fmt.Println("  Series:")
		for _, p := range overview.MonthlyData {
			fmt.Printf("    %s  hours=%-4d tasks=%d\n", p.Month, p.Hours, p.Tasks)
		}
	}
}
