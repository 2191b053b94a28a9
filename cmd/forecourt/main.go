package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"forecourt/internal/app"
	"forecourt/internal/config"
	"forecourt/libs/logging"
)

const usage = `usage: forecourt <command> [flags]

commands:
  stations    list or manage stations
  pumps       list or manage a station's pumps
  nozzles     manage nozzles on a pump
  prices      show or set fuel prices
  creditors   list or add credit customers
  readings    enter closing readings and submit a day's sale
  settlement  review and settle a day's collections
  export      write a settlement statement to PDF or XLSX
  whoami      show the configured operator identity
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := logging.NewLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to init forecourt client", zap.Error(err))
	}
	defer application.Close()

	if err := dispatch(ctx, application, os.Args[1], os.Args[2:]); err != nil {
		logger.Fatal("command failed", zap.String("command", os.Args[1]), zap.Error(err))
	}
}

func dispatch(ctx context.Context, a *app.App, command string, args []string) error {
	switch command {
	case "stations":
		return runStations(ctx, a, args)
	case "pumps":
		return runPumps(ctx, a, args)
	case "nozzles":
		return runNozzles(ctx, a, args)
	case "prices":
		return runPrices(ctx, a, args)
	case "creditors":
		return runCreditors(ctx, a, args)
	case "readings":
		return runReadings(ctx, a, args)
	case "settlement":
		return runSettlement(ctx, a, args)
	case "export":
		return runExport(ctx, a, args)
	case "whoami":
		return runWhoami(a)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

// stationOrDefault resolves the -station flag against the configured default.
func stationOrDefault(a *app.App, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if a.Config.Station.Default != "" {
		return a.Config.Station.Default, nil
	}
	return "", fmt.Errorf("no station given and FORECOURT_STATION is not set")
}
