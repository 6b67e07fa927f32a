package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"pump-fun-sdk-go/internal/config"
	"pump-fun-sdk-go/internal/logger"
)

// Version is the CLI release reported by "pumpfun version"
const Version = "0.3.0"

type command struct {
	name  string
	usage string
	flags func(fs *flag.FlagSet) func(ctx context.Context, app *App) error
}

var commands = []command{
	{name: "curve", usage: "fetch and analyze bonding curves", flags: curveFlags},
	{name: "quote", usage: "quote a buy or sell against a bonding curve", flags: quoteFlags},
	{name: "decode", usage: "decode a transaction document against an IDL", flags: decodeFlags},
	{name: "build", usage: "build an unsigned buy or sell instruction", flags: buildFlags},
	{name: "monitor", usage: "print websocket notifications of the pump.fun program", flags: monitorFlags},
}

// App holds what every subcommand needs
type App struct {
	config *config.Config
	logger *logger.Logger
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	name := os.Args[1]
	if name == "version" || name == "-version" {
		fmt.Println(Version)
		return
	}

	cmd, ok := findCommand(name)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", name)
		usage()
		os.Exit(2)
	}

	fs := flag.NewFlagSet(cmd.name, flag.ExitOnError)
	configFile := fs.String("config", "", "Path to config file")
	network := fs.String("network", "", "Network to use (mainnet/devnet)")
	logLevel := fs.String("log-level", "", "Log level (debug/info/warn/error)")
	run := cmd.flags(fs)
	_ = fs.Parse(os.Args[2:])

	app, err := NewApp(*configFile, *network, *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer app.logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, app); err != nil {
		app.logger.LogError(cmd.name, "run", err, nil)
		app.logger.Close()
		os.Exit(1)
	}
}

// NewApp loads configuration and builds the logger, applying CLI overrides
func NewApp(configFile, network, logLevel string) (*App, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	if network != "" {
		cfg.Network = network
		cfg.RPCUrl = config.GetRPCEndpoint(network)
		cfg.WSUrl = config.GetWSEndpoint(network)
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	log, err := logger.NewLogger(logger.LogConfig{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		LogToFile:   cfg.Logging.LogToFile,
		LogFilePath: cfg.Logging.LogFilePath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	log.WithComponent("cli").WithFields(logrus.Fields{
		"version":    Version,
		"network":    cfg.Network,
		"commitment": cfg.Commitment,
	}).Debug("Configuration loaded")

	return &App{config: cfg, logger: log}, nil
}

func findCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func usage() {
	fmt.Fprintf(os.Stderr, "pumpfun %s\n\nUsage: pumpfun <command> [flags]\n\nCommands:\n", Version)
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  %-8s %s\n", c.name, c.usage)
	}
	fmt.Fprintf(os.Stderr, "\nRun 'pumpfun <command> -h' for command flags.\n")
}
