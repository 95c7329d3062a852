package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cratis/cratis-core/internal/application"
	"github.com/cratis/cratis-core/internal/config"
	"github.com/cratis/cratis-core/internal/logging"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, config.Default()); err != nil {
		fmt.Fprintf(os.Stderr, "cratis: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer, holder *config.Holder) error {
	kingpinApp := kingpin.New("cratis", "Cratis backup client")
	configFile := kingpinApp.Flag("config", "Path to YAML configuration file").Short('c').Default("config.yaml").String()
	logLevel := kingpinApp.Flag("log-level", "Log level").Default("info").Enum("debug", "info", "warn", "error")

	validateCmd := kingpinApp.Command("validate", "Load the configuration and report whether it is valid")
	showCmd := kingpinApp.Command("show", "Print the loaded configuration with secrets masked")

	command, err := kingpinApp.Parse(args)
	if err != nil {
		return err
	}

	logger, err := logging.New(*logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	app, err := application.New(*configFile, holder, logger)
	if err != nil {
		logger.Error("failed to load configuration", zap.String("path", *configFile), zap.Error(err))
		return err
	}

	switch command {
	case validateCmd.FullCommand():
		_, err = fmt.Fprintf(out, "%s: configuration is valid\n", *configFile)
		return err
	case showCmd.FullCommand():
		return show(out, app.Config())
	}
	return nil
}

func show(out io.Writer, cfg *config.Configuration) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode configuration: %w", err)
	}
	return enc.Close()
}
