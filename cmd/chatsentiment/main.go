package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	chatsentiment "github.com/NextMind-AI/chat-sentiment"
	"github.com/NextMind-AI/chat-sentiment/config"
	"github.com/NextMind-AI/chat-sentiment/logger"
	"github.com/NextMind-AI/chat-sentiment/processor"
	"github.com/NextMind-AI/chat-sentiment/report"

	"github.com/rs/zerolog/log"
)

const previewRows = 5

func main() {
	if err := runCLI(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("chatsentiment failed")
	}
}

func runCLI(args []string) error {
	cfg := config.Load()
	logger.Setup(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	if len(args) < 1 {
		printUsage(os.Stdout)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch args[0] {
	case "serve":
		return runServeCmd(ctx, cfg, args[1:])
	case "run":
		return runReportCmd(ctx, cfg, args[1:])
	case "-h", "--help", "help":
		printUsage(os.Stdout)
		return nil
	default:
		printUsage(os.Stderr)
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func runServeCmd(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	port := fs.String("port", cfg.Port, "HTTP port")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg.Port = *port

	app, err := chatsentiment.New(ctx, cfg)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		log.Info().Msg("Shutting down")
		if err := app.Close(); err != nil {
			log.Error().Err(err).Msg("Shutdown error")
		}
	}()

	return app.Serve()
}

func runReportCmd(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	account := fs.String("account", os.Getenv("LIVECHAT_ACCOUNT_ID"), "LiveChat account id")
	token := fs.String("token", os.Getenv("LIVECHAT_TOKEN"), "LiveChat personal access token")
	start := fs.String("start", "", "Start date YYYY-MM-DD (default: 7 days ago)")
	end := fs.String("end", "", "End date YYYY-MM-DD (default: today)")
	outDir := fs.String("out", cfg.OutputDir, "Directory for the CSV report")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg.OutputDir = *outDir

	app, err := chatsentiment.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	result, err := app.Reports().Generate(ctx, processor.RunRequest{
		AccountID: *account,
		Token:     *token,
		StartDate: *start,
		EndDate:   *end,
	})
	if err != nil {
		return err
	}

	printSummary(os.Stdout, result)
	return nil
}

func printSummary(w io.Writer, result *processor.RunResult) {
	fmt.Fprintf(w, "report=%s\n", result.Path)
	fmt.Fprintf(w, "total_chats=%d with_customer_messages=%d without_customer_messages=%d\n",
		result.Counts.Total, result.Counts.WithMessages, result.Counts.WithoutMessages)
	if result.Location != "" {
		fmt.Fprintf(w, "archived=%s\n", result.Location)
	}

	rows := result.Report.Rows
	if len(rows) == 0 {
		return
	}
	if len(rows) > previewRows {
		rows = rows[:previewRows]
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, col := range report.Columns {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, col)
	}
	fmt.Fprintln(tw)
	for _, row := range rows {
		for i, cell := range row.Record() {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, cell)
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  chatsentiment serve [--port 8080]")
	fmt.Fprintln(w, "  chatsentiment run --account <id> --token <pat> [--start 2024-01-01 --end 2024-01-07] [--out reports]")
}
