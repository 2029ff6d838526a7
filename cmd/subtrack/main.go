package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/wessmexura1/subscription-calculator/internal/config"
	"github.com/wessmexura1/subscription-calculator/internal/metrics"
	"github.com/wessmexura1/subscription-calculator/internal/report"
	"github.com/wessmexura1/subscription-calculator/internal/server"
	"github.com/wessmexura1/subscription-calculator/internal/store"
	"github.com/wessmexura1/subscription-calculator/pkg/constants"
	"github.com/wessmexura1/subscription-calculator/pkg/exchange"
	"github.com/wessmexura1/subscription-calculator/pkg/output"
	"github.com/wessmexura1/subscription-calculator/pkg/validation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is set at build time via -ldflags.
var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = "json"
	}

	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	dataFileFlag := flag.String("data", "", "path to the subscription data file override")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, xlsx")
	xlsxOut := flag.String("xlsx-out", "subscriptions.xlsx", "destination for xlsx output")
	currencyFlag := flag.String("currency", "", "display currency override")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	serve := flag.Bool("serve", false, "run the HTTP server instead of printing a report")
	listen := flag.String("listen", "", "listen address override for -serve")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	// Initialize logging based on config and CLI override
	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := conf.Validate(); err != nil {
		logger.Fatal("invalid configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	dataFile := conf.Storage.DataFile
	if *dataFileFlag != "" {
		dataFile = *dataFileFlag
	}

	st, err := store.Open(dataFile, logger)
	if err != nil {
		logger.Fatal("failed to open subscription store",
			zap.String("op", "main"),
			zap.String("dataFile", dataFile),
			zap.Error(err),
		)
	}

	engine := metrics.NewEngine(exchange.NewConverter(conf.RateTable(), nil), logger)

	// Determine display currency (CLI override, then store, then config)
	displayCurrency := st.DisplayCurrency()
	if displayCurrency == "" {
		displayCurrency = conf.Display.Currency
	}
	if *currencyFlag != "" {
		displayCurrency = *currencyFlag
	}
	if err := validation.ValidateCurrency(displayCurrency); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	if *serve {
		address := conf.Server.Address
		if *listen != "" {
			address = *listen
		}
		if address == "" {
			address = constants.DefaultServerAddress
		}

		handler := server.NewHandler(logger, st, engine, server.Options{
			MaxUploadSize: conf.Server.MaxUploadBytes,
			Version:       version,
			ExposeMetrics: conf.Server.ExposeMetrics,
		})

		logger.Info("starting HTTP server",
			zap.String("op", "main"),
			zap.String("address", address),
			zap.String("version", version),
		)
		if err := http.ListenAndServe(address, handler); err != nil {
			logger.Fatal("HTTP server failed",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		return
	}

	subs := st.List()

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(os.Stdout, engine, subs, displayCurrency)
	case constants.OutputFormatCSV:
		output.CsvFormat(os.Stdout, engine, subs, displayCurrency)
	case constants.OutputFormatXLSX:
		if err := report.WriteFile(*xlsxOut, engine, subs, displayCurrency); err != nil {
			logger.Fatal("failed to write workbook",
				zap.String("op", "main"),
				zap.String("path", *xlsxOut),
				zap.Error(err),
			)
		}
		logger.Info("wrote workbook",
			zap.String("op", "main"),
			zap.String("path", *xlsxOut),
		)
	}
}
