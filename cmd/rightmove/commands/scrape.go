package commands

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/apwebber/rightmove-webscraper/internal/fetch"
	"github.com/apwebber/rightmove-webscraper/internal/logger"
	"github.com/apwebber/rightmove-webscraper/internal/output"
	"github.com/apwebber/rightmove-webscraper/pkg/rightmove"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape a rightmove search URL",
	Long: `Scrape every results page of a rightmove search and write the
listings to a file. With --details, each listing's own page is fetched as
well and written to a second file whose entries line up index-for-index
with the listings (failed fetches appear as null).

Examples:
  rightmove scrape -u "<search url>" -o results.json
  rightmove scrape -u "<search url>" --details --concurrency 12
  rightmove scrape -u "<search url>" --format yaml -o results.yaml`,
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	flags := scrapeCmd.Flags()

	flags.StringP("url", "u", "", "rightmove search URL (required)")
	flags.StringP("output", "o", "results.json", "listings output file")
	flags.String("format", "json", "output format: json, jsonl, yaml")

	flags.Bool("details", false, "also scrape each listing's detail page")
	flags.String("details-output", "details.json", "details output file")
	flags.IntP("concurrency", "c", rightmove.DetailWorkers, "detail fetch workers (1 = sequential)")

	flags.String("fetch-mode", "static", "fetch mode: static, dynamic")
	flags.Duration("timeout", 30*time.Second, "per-request timeout")
	flags.Duration("delay", 0, "pause between pagination requests")
	flags.String("user-agent", "", "override the user agent")

	_ = scrapeCmd.MarkFlagRequired("url")

	_ = viper.BindPFlag("user_agent", flags.Lookup("user-agent"))
}

func runScrape(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	url, _ := cmd.Flags().GetString("url")
	outPath, _ := cmd.Flags().GetString("output")
	formatStr, _ := cmd.Flags().GetString("format")
	wantDetails, _ := cmd.Flags().GetBool("details")
	detailsPath, _ := cmd.Flags().GetString("details-output")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	fetchMode, _ := cmd.Flags().GetString("fetch-mode")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	delay, _ := cmd.Flags().GetDuration("delay")

	opts := []rightmove.Option{
		rightmove.WithFetchMode(fetch.Mode(fetchMode)),
		rightmove.WithTimeout(timeout),
		rightmove.WithPageDelay(delay),
	}
	if concurrency > 0 {
		opts = append(opts, rightmove.WithDetailWorkers(concurrency))
	}
	if ua := viper.GetString("user_agent"); ua != "" {
		opts = append(opts, rightmove.WithUserAgent(ua))
	}

	scraper, err := rightmove.New(opts...)
	if err != nil {
		logError("%v", err)
		return err
	}
	defer scraper.Close()

	logInfo("Scraping %s ...", url)
	snap, err := scraper.Scrape(ctx, url)
	if err != nil {
		var verr *rightmove.ValidationError
		if errors.As(err, &verr) {
			logError("%v", verr)
		} else {
			logError("scrape failed: %v", err)
		}
		return err
	}

	logInfo("Collected %d of %d displayed listings across %d pages (%s search)",
		snap.ResultCount(), snap.DisplayedCount, snap.PagesFetched, snap.Channel())

	if avg, err := snap.AveragePrice(); err == nil {
		logInfo("Average price: %.0f", avg)
	}

	format := output.Format(formatStr)
	if err := output.WriteFile(outPath, format, listingsAsAny(snap)); err != nil {
		logError("write listings: %v", err)
		return err
	}
	logInfo("Wrote %s", outPath)

	if wantDetails {
		snap, err = scraper.ScrapeDetails(ctx, snap, concurrency > 1)
		if err != nil {
			logError("detail scrape failed: %v", err)
			return err
		}
		if err := output.WriteFile(detailsPath, format, detailsAsAny(snap)); err != nil {
			logError("write details: %v", err)
			return err
		}
		logInfo("Wrote %s", detailsPath)
	}

	return nil
}

func listingsAsAny(snap *rightmove.Snapshot) []any {
	out := make([]any, len(snap.Listings))
	for i, l := range snap.Listings {
		out[i] = l
	}
	return out
}

func detailsAsAny(snap *rightmove.Snapshot) []any {
	out := make([]any, len(snap.Details))
	for i, d := range snap.Details {
		if d != nil {
			out[i] = d
		}
	}
	return out
}
