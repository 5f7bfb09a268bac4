package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"postboard/app/config"
	"postboard/app/dbcmd"
	"postboard/app/logger"
	"postboard/app/repositories"
	"postboard/app/repositories/memory"
	"postboard/app/repositories/postgres"
	"postboard/app/routes"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const CliVersion = "1.0.0"

// exit is swapped out by tests.
var exit = os.Exit

func main() {
	RealMain()
}

func RealMain() {
	if len(os.Args) < 2 {
		printHelp()
		exit(1)
		return
	}

	var err error
	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("postboard version %s\n", CliVersion)
	case "serve":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		err = serve(ctx, os.Args[2:])
		stop()
	case "db":
		err = db(os.Args[2:])
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		exit(1)
		return
	}

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		exit(1)
	}
}

func printHelp() {
	helpText := `Usage: postboard <command> [options]
Commands:
  help                           Display this help message.
  version                        Show version information.
  serve [-config <file>]         Run the posts API.
  db [-config <file>] [-y] <command>
                                 Maintain the badger database:
                                   backup [file]    write a backup
                                   restore <file>   replace the database from a backup
                                   clean            delete every post and comment

Configuration is read from the file given by -config (default config.yaml,
optional) and from POSTBOARD_* environment variables, e.g.
POSTBOARD_SERVER_PORT=8080 or POSTBOARD_STORE_DRIVER=memory.
`
	fmt.Println(helpText)
}

// loadConfig parses the shared subcommand flags and loads the configuration.
func loadConfig(name string, args []string) (*config.Config, *flag.FlagSet, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stdout)
	configPath := fs.String("config", "config.yaml", "path to the configuration file")
	fs.Bool("y", false, "do not ask for confirmation (db only)")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, fs, nil
}

// serve runs the API until ctx is cancelled.
func serve(ctx context.Context, args []string) error {
	cfg, _, err := loadConfig("serve", args)
	if err != nil {
		return err
	}
	log := logger.New(cfg.Log.Level, cfg.Env)

	store, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.Close()

	log.Info().Str("driver", cfg.Store.Driver).Str("env", cfg.Env).Msg("store opened")
	return routes.StartServer(ctx, cfg.Server, routes.SetupRoutes(store, log), log)
}

func db(args []string) error {
	cfg, fs, err := loadConfig("db", args)
	if err != nil {
		return err
	}
	if cfg.Store.Driver != config.DriverBadger {
		return errors.Errorf("db commands need the %s store driver, configured driver is %s",
			config.DriverBadger, cfg.Store.Driver)
	}

	rest := fs.Args()
	if fs.Lookup("y").Value.String() == "true" {
		rest = append(rest, "-y")
	}

	log := logger.New(cfg.Log.Level, cfg.Env)
	return dbcmd.NewRunner(cfg.Store.Path, log).Run(rest)
}

// openStore opens the store selected by cfg.Store.Driver.
func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (repositories.Store, error) {
	switch cfg.Store.Driver {
	case config.DriverMemory:
		return memory.New(), nil
	case config.DriverPostgres:
		store, err := postgres.New(ctx, cfg.Store.DSN)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.DriverBadger:
		if err := os.MkdirAll(cfg.Store.Path, 0755); err != nil {
			return nil, errors.Wrap(err, "create badger directory")
		}
		store, err := repositories.NewBadgerStore(cfg.Store.Path, log)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, errors.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
