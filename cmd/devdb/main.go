package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/localnerve/guau-api/internal/logging"
	"github.com/localnerve/guau-api/tests/helpers"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	flag.Parse()

	usage := `
Start a local development database (and optionally Authorizer) in containers,
configured by the environment variables from the .env file.

Usage:

devdb [-h] [-f ENV_FILE_PATH]

ENV_FILE_PATH: path to the .env file

Recognized variables: DB_TYPE (postgres|mariadb), DB_IMAGE, DB_DATABASE, DB_USER,
DB_PASSWORD, DB_ROOT_PASSWORD, AUTH_PROVIDER, AUTHZ_IMAGE, AUTHZ_PORT,
AUTHZ_CLIENT_ID, AUTHZ_DATABASE, AUTHZ_ADMIN_SECRET

example
  devdb -f /path/to/something/.env
`
	if showHelp {
		fmt.Println(usage)
		return
	}

	logger := logging.Setup(os.Getenv("LOG_LEVEL"), "text")

	if envFilename != "" {
		logger.Info("loading environment variables", "file", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			logger.Error("failed to load environment variables", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Info("no environment file specified, using current environment variables")
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// exits the process on failure
	testContainers, _ := helpers.CreateAllTestContainers(nil)
	logger.Info("development containers ready, press Ctrl+C to stop")

	sig := <-sigs
	logger.Info("terminating development containers", "signal", sig.String())
	testContainers.Terminate(nil)
}
