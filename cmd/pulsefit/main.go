package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pulsefit/core/internal"
	"github.com/pulsefit/core/internal/config"
	"github.com/pulsefit/core/internal/logging"
	"github.com/pulsefit/core/internal/nutrition"

	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Parse()

	command := flag.Arg(0)
	if command == "" {
		fmt.Println("usage: pulsefit [flags] <workouts | macros | streak>")
		os.Exit(1)
	}

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    false,
		Environment:      cfg.Environment,
		SentryEnabled:    false,
		SentryServerName: "pulsefit-cli",
	})

	if anonKey := os.Getenv("PULSEFIT_ANON_KEY"); anonKey != "" {
		cfg.BackendAnonKey = anonKey
	}
	if cfg.BackendAnonKey == "" {
		log.Errorf("backend anon key not set, use PULSEFIT_ANON_KEY env var to set it")
	}

	email := os.Getenv("PULSEFIT_EMAIL")
	password := os.Getenv("PULSEFIT_PASSWORD")
	if email == "" || password == "" {
		log.Fatalf("credentials not set, use PULSEFIT_EMAIL and PULSEFIT_PASSWORD env vars")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeoutDuration())
	defer cancel()

	clients := internal.NewRemoteClients(cfg, nil)
	session, err := clients.Auth.SignIn(ctx, email, password)
	if err != nil {
		log.Fatalf("sign in: %s", err)
	}
	log.Debugf("signed in as %s", session.Email)

	if err := run(ctx, clients, command); err != nil {
		log.Fatalf("%s: %s", command, err)
	}
}

func run(ctx context.Context, clients *internal.Clients, command string) error {
	session, err := clients.Auth.CurrentSession(ctx)
	if err != nil {
		return err
	}

	switch command {
	case "workouts":
		workoutList, err := clients.Workouts.FetchAll(ctx, session.UserID)
		if err != nil {
			return err
		}
		if len(workoutList) == 0 {
			fmt.Println("no workouts yet")
			return nil
		}
		for _, w := range workoutList {
			fmt.Printf("%s (%d exercises)\n", w.Name, len(w.Exercises))
			for _, e := range w.Exercises {
				fmt.Printf("  - %s: %dx%d [%s]\n", e.Name, e.TargetSets, e.TargetReps, e.TrackingType)
			}
		}
		return nil

	case "macros":
		entries, err := clients.Nutrition.EntriesForToday(ctx, session.UserID)
		if err != nil {
			return err
		}
		totals := nutrition.Totals(entries)
		fmt.Printf("today: %d kcal, %dg protein, %dg carbs, %dg fat (%d entries)\n",
			totals.Calories, totals.Protein, totals.Carbs, totals.Fat, len(entries))
		return nil

	case "streak":
		streak, err := clients.Stats.Streak(ctx, session.UserID, time.Now())
		if err != nil {
			return err
		}
		fmt.Printf("check-in streak: %d day(s)\n", streak)
		return nil

	default:
		return fmt.Errorf("unknown command %q", command)
	}
}
