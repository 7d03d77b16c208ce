// findash is the command-line companion to the API server: run one-off
// analyses and manage the watchlist from the terminal.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"findash/pkg/core/analysis"
	"findash/pkg/core/calc"
	"findash/pkg/core/ingest"
	"findash/pkg/core/rating"
	"findash/pkg/core/report"
	"findash/pkg/core/watchlist"
)

func newEngine() (*analysis.Engine, error) {
	dartKey := viper.GetString("DART_API_KEY")
	marketKey := viper.GetString("DATA_GO_KR_API_KEY")
	if dartKey == "" || marketKey == "" {
		return nil, fmt.Errorf("DART_API_KEY and DATA_GO_KR_API_KEY must be set")
	}

	dart := ingest.NewDARTClient(dartKey, viper.GetString("CACHE_DIR"))
	market := ingest.NewMarketClient(marketKey)
	engine := analysis.NewEngine(dart, dart, market)

	if path := viper.GetString("RATING_TABLES"); path != "" {
		classifier, err := rating.LoadTables(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load rating tables: %w", err)
		}
		engine.Classifier = classifier
	}
	return engine, nil
}

func metricCell(m calc.Metric, format string) string {
	if !m.Valid {
		return "-"
	}
	return fmt.Sprintf(format, m.Value)
}

func newAnalyzeCmd() *cobra.Command {
	var asMarkdown bool

	cmd := &cobra.Command{
		Use:   "analyze <corp-name>",
		Short: "Run a full analysis for one listed company",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine()
			if err != nil {
				return err
			}

			rep, err := engine.Analyze(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			if asMarkdown {
				fmt.Println(report.Markdown(rep))
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.SetTitle("%s (%s) FY%d", rep.CorpName, rep.StockCode, rep.Year)
			t.AppendHeader(table.Row{"Metric", "Value", "Assessment"})
			t.AppendRows([]table.Row{
				{"Debt ratio", metricCell(rep.Ratios.DebtRatio, "%.1f%%"), ""},
				{"Equity ratio", metricCell(rep.Ratios.EquityRatio, "%.1f%%"), ""},
				{"Current ratio", metricCell(rep.Ratios.CurrentRatio, "%.1f%%"), ""},
				{"ROE", metricCell(rep.Ratios.ROE, "%.1f%%"), ""},
			})
			t.AppendSeparator()
			t.AppendRows([]table.Row{
				{"PER", metricCell(rep.Metrics.PER, "%.2f"), rep.Ratings["per"].Message},
				{"PBR", metricCell(rep.Metrics.PBR, "%.2f"), rep.Ratings["pbr"].Message},
				{"PSR", metricCell(rep.Metrics.PSR, "%.2f"), rep.Ratings["psr"].Message},
				{"EV/EBITDA", metricCell(rep.Metrics.EVToEBITDA, "%.2f"), rep.Ratings["ev_to_ebitda"].Message},
				{"Dividend yield", metricCell(rep.Metrics.DividendYield, "%.2f%%"), rep.Ratings["dividend_yield"].Message},
			})
			t.SetStyle(table.StyleLight)
			t.Render()

			h := rep.Health
			ht := table.NewWriter()
			ht.SetOutputMirror(os.Stdout)
			ht.SetTitle("Health: %d/100 (%s)", h.TotalScore, h.Grade)
			ht.AppendHeader(table.Row{"Category", "Score", "Summary"})
			ht.AppendRows([]table.Row{
				{"Profitability", fmt.Sprintf("%d/%d", h.Category.Profitability.Score, h.Category.Profitability.MaxScore), h.Category.Profitability.Summary},
				{"Stability", fmt.Sprintf("%d/%d", h.Category.Stability.Score, h.Category.Stability.MaxScore), h.Category.Stability.Summary},
				{"Growth", fmt.Sprintf("%d/%d", h.Category.Growth.Score, h.Category.Growth.MaxScore), h.Category.Growth.Summary},
				{"Valuation", fmt.Sprintf("%d/%d", h.Category.Valuation.Score, h.Category.Valuation.MaxScore), h.Category.Valuation.Summary},
			})
			ht.SetStyle(table.StyleLight)
			ht.Render()

			fmt.Printf("\n%s: %s\n",
				text.Bold.Sprint(strings.ToUpper(h.Recommendation.Rating)),
				h.Recommendation.Reason)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asMarkdown, "markdown", false, "print the full Markdown report")
	return cmd
}

func watchlistManager(file string) (*watchlist.Manager, error) {
	path := file
	if path == "" {
		path = viper.GetString("WATCHLIST_PATH")
	}
	if path == "" {
		path = "data/watchlist.yaml"
	}
	return watchlist.NewManager(watchlist.NewFileRepository(path))
}

func newWatchlistCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:     "wl",
		Short:   "Manage the watchlist",
		Aliases: []string{"watchlist"},
	}
	cmd.PersistentFlags().StringVar(&file, "file", "", "watchlist YAML file (default $WATCHLIST_PATH or data/watchlist.yaml)")

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show watched companies",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := watchlistManager(file)
			if err != nil {
				return err
			}
			items := m.All()
			if len(items) == 0 {
				fmt.Println("Watchlist is empty.")
				return nil
			}
			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"", "Name", "Code", "Tags", "Score", "Memo"})
			for _, it := range items {
				mark := ""
				if it.Bookmarked {
					mark = "*"
				}
				score := "-"
				if it.LastHealthScore > 0 {
					score = fmt.Sprintf("%d", it.LastHealthScore)
				}
				t.AppendRow(table.Row{mark, it.CorpName, it.StockCode, strings.Join(it.Tags, ","), score, it.Memo})
			}
			t.SetStyle(table.StyleLight)
			t.Render()
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <corp-name>",
		Short: "Add a company by name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine()
			if err != nil {
				return err
			}
			company, err := engine.Directory.FindByName(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			m, err := watchlistManager(file)
			if err != nil {
				return err
			}
			item, err := m.Add(company.CorpCode, company.CorpName, company.StockCode)
			if err != nil {
				return err
			}
			fmt.Printf("Added %s (%s)\n", item.CorpName, item.StockCode)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <corp-code>",
		Short: "Remove a company by corp code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := watchlistManager(file)
			if err != nil {
				return err
			}
			return m.Remove(args[0])
		},
	})

	return cmd
}

func main() {
	godotenv.Load()
	viper.AutomaticEnv()

	root := &cobra.Command{
		Use:           "findash",
		Short:         "Financial statement analysis for Korean listed companies",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newWatchlistCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
