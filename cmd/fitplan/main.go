// Command fitplan is a single-device client for the fitness coach: it
// generates plans from a profile file, keeps them in a local SQLite store
// (mirrored to the remote store when configured) and exports, narrates or
// illustrates them.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/2beens/fitcoach/internal/config"
	"github.com/2beens/fitcoach/internal/logging"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const usage = `usage: fitplan [global flags] <command> [command flags]

commands:
  generate    -profile file.json   generate and save a new plan
  current                          print the current plan summary
  history                          list saved plans
  delete      -id <id>             delete a saved plan
  clear                            forget the current plan and local history
  export      -out file.pdf        export the current plan as PDF
  speak       -section s -voice v -out file.mp3
                                   narrate the current plan
  illustrate  -type t -subject s -out file.png
                                   generate an exercise or meal illustration
  models                           list generation models visible to the key

global flags:
`

func main() {
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	envFile := flag.String("env-file", ".env", "optional dotenv file with secrets")
	logLevel := flag.String("log-level", "warn", "log level [trace | debug | info | warn | error]")
	flag.Parse()

	log.SetOutput(os.Stderr)
	log.SetLevel(logging.GetLevel(*logLevel))

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(*envFile); err != nil && !os.IsNotExist(err) {
		log.Warnf("load env file [%s]: %s", *envFile, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *env, *configPath, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "fitplan: %s\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, env, configPath string, args []string) error {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return err
	}
	secrets, err := config.LoadSecrets(ctx)
	if err != nil {
		return err
	}

	a, err := newApp(ctx, cfg, secrets, os.Stdout)
	if err != nil {
		return err
	}
	defer a.close()

	return a.dispatch(ctx, args)
}
