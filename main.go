package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"fscrape/internal/batch"
	"fscrape/internal/config"
	"fscrape/internal/fetcher"
	"fscrape/internal/fighter"
	"fscrape/internal/formatter"
	"fscrape/internal/logger"
	"fscrape/internal/output"
	"fscrape/internal/scraper"
	_ "fscrape/internal/sites/sherdog"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var version = "dev"

var (
	site             string
	host             string
	outputFile       string
	showFile         string
	outputFormat     string
	start            int
	end              int
	timeout          time.Duration
	delay            time.Duration
	proxyURL         string
	render           bool
	waitFor          string
	waitTarget       string
	showUI           bool
	missing          string
	stopOnFetchError bool
	logLevel         string
)

func main() {
	cfg, dotenv := config.Load()
	if err := newRootCmd(cfg, dotenv).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config, dotenv bool) *cobra.Command {
	var rootCmd = &cobra.Command{
		Use:     "fscrape",
		Short:   "Scrape fighter profiles into a CSV file",
		Version: version,
		Long: `fscrape walks fighter profile ids in order, extracts each fighter's
name, birth date, measurements, nationality, team and record, and appends
one CSV row per fighter. It runs until the id range is exhausted or it is
interrupted (Ctrl-C), then flushes and closes the output.`,
		Example: `  # Scrape from id 1 until interrupted into sherdog-fighters.csv
  fscrape

  # Scrape a bounded range into a custom file, one request per second
  fscrape --start 1000 --end 2000 --delay 1s -o fighters.csv

  # Render pages in headless Chromium through a proxy
  fscrape --render --proxy http://127.0.0.1:7890

  # Show a single fighter as markdown
  fscrape show 1500 -f markdown`,
		Args:         cobra.NoArgs,
		RunE:         run,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if dotenv {
				log := newLogger()
				log.Debug().Msg("loaded .env")
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&site, "site", cfg.Site, "Site to scrape (available: "+strings.Join(scraper.Names(), ", ")+")")
	flags.StringVar(&host, "host", cfg.Host, "Site base URL (empty for the site default), defaults to FSCRAPE_HOST env var")
	flags.DurationVarP(&timeout, "timeout", "t", cfg.Timeout, "Per-page timeout")
	flags.StringVarP(&proxyURL, "proxy", "p", cfg.ProxyURL, "Proxy URL (e.g. http://127.0.0.1:7890), defaults to FSCRAPE_PROXY env var")
	flags.BoolVar(&render, "render", false, "Load pages in headless Chromium instead of plain HTTP")
	flags.StringVarP(&waitFor, "wait-for", "w", "load", "Wait strategy with --render (load, element, time)")
	flags.StringVarP(&waitTarget, "wait-target", "T", "", "Wait target (selector for 'element' strategy, milliseconds for 'time' strategy)")
	flags.BoolVar(&showUI, "showui", false, "Show browser UI with --render (disable headless mode)")
	flags.StringVar(&missing, "missing", fighter.DefaultMissing, "Text written for absent optional fields")
	flags.StringVar(&logLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")

	rootCmd.Flags().StringVarP(&outputFile, "output", "o", cfg.Output, "CSV output file (truncated at start)")
	rootCmd.Flags().IntVar(&start, "start", cfg.Start, "First fighter id")
	rootCmd.Flags().IntVar(&end, "end", 0, "Last fighter id (0 for no limit)")
	rootCmd.Flags().DurationVar(&delay, "delay", cfg.Delay, "Pause between fighters")
	rootCmd.Flags().BoolVar(&stopOnFetchError, "stop-on-fetch-error", false, "Stop the run on a network or server error instead of skipping the id")

	showCmd := &cobra.Command{
		Use:   "show <id|url>",
		Short: "Scrape a single fighter and print it",
		Args:  cobra.ExactArgs(1),
		RunE:  show,
	}
	showCmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format ("+strings.Join(formatter.Formats, ", ")+")")
	showCmd.Flags().StringVarP(&showFile, "output", "o", "", "Output file path (format inferred from extension if -f not specified)")
	rootCmd.AddCommand(showCmd)

	return rootCmd
}

func newLogger() zerolog.Logger {
	return logger.New(logLevel)
}

func scraperOptions(log zerolog.Logger) scraper.Options {
	return scraper.Options{
		Host:       host,
		Timeout:    timeout,
		ProxyURL:   proxyURL,
		Render:     render,
		ShowUI:     showUI,
		WaitFor:    waitFor,
		WaitTarget: waitTarget,
		Missing:    missing,
		Logger:     log,
	}
}

func validateFlags() error {
	if start < 1 {
		return fmt.Errorf("--start must be at least 1")
	}
	if end > 0 && end < start {
		return fmt.Errorf("--end (%d) is before --start (%d)", end, start)
	}
	if delay < 0 {
		return fmt.Errorf("--delay must not be negative")
	}
	if render {
		if _, err := fetcher.ParseWaitStrategy(waitFor, waitTarget); err != nil {
			return err
		}
	}
	return nil
}

func run(cmd *cobra.Command, args []string) error {
	if err := validateFlags(); err != nil {
		return err
	}
	log := newLogger()

	s, err := scraper.New(site, scraperOptions(log))
	if err != nil {
		return err
	}
	defer s.Close()

	src, ok := s.(batch.Source)
	if !ok {
		return fmt.Errorf("site %s does not support batch runs", s.Name())
	}

	w, err := output.Create(outputFile)
	if err != nil {
		return err
	}

	ctx, stop := interruptContext(cmd.Context())
	defer stop()

	log.Info().
		Str("site", s.Name()).
		Str("host", host).
		Str("output", outputFile).
		Int("start", start).
		Int("end", end).
		Bool("render", render).
		Msg("starting run")

	d := &batch.Driver{
		Source:           src,
		Writer:           w,
		Logger:           log,
		Status:           os.Stdout,
		Missing:          missing,
		Delay:            delay,
		StopOnFetchError: stopOnFetchError,
	}
	if _, err := d.Run(ctx, batch.Sequence(start, end)); err != nil {
		return fmt.Errorf("run failed: %w", err)
	}
	return nil
}

// interruptContext is cancelled by the first SIGINT or SIGTERM. The handlers
// are released right after, so a second signal kills the process.
func interruptContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	context.AfterFunc(ctx, stop)
	return ctx, stop
}

func show(cmd *cobra.Command, args []string) error {
	// If output file is specified but format is not, infer format from file extension
	if showFile != "" && !cmd.Flags().Changed("format") {
		if inferred := formatter.InferFormat(showFile); inferred != "" {
			outputFormat = inferred
		}
	}
	if render {
		if _, err := fetcher.ParseWaitStrategy(waitFor, waitTarget); err != nil {
			return err
		}
	}

	s, err := scraper.New(site, scraperOptions(newLogger()))
	if err != nil {
		return err
	}
	defer s.Close()

	content, err := s.Scrape(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to scrape: %w", err)
	}

	outputContent, err := formatter.Format(content, outputFormat)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if showFile != "" {
		if err := os.WriteFile(showFile, []byte(outputContent), 0644); err != nil {
			return fmt.Errorf("failed to write to file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Output written to: %s\n", showFile)
	} else {
		fmt.Println(outputContent)
	}
	return nil
}
