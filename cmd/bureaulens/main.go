// BureauLens — deterministic credit-bureau feature extraction & findings
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/seenimoa/bureaulens/api"
	"github.com/seenimoa/bureaulens/internal/bureau"
	"github.com/seenimoa/bureaulens/internal/config"
	"github.com/seenimoa/bureaulens/internal/report"
	"github.com/seenimoa/bureaulens/pkg/utils"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bureaulens",
	Short: "BureauLens — deterministic credit-bureau analysis",
	Long: `BureauLens turns raw bureau tradeline data into per-product feature
vectors, a customer-level executive summary, and a fixed battery of
rule-based key findings. Every output is a pure function of the input
rows: same data in, same report out.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if override, _ := cmd.Flags().GetString("log-level"); override != "" {
			cfg.Logging.Level = override
		}
		setupLogging(cfg.Logging)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(findingsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
}

func setupLogging(lc config.LoggingConfig) {
	level, err := log.ParseLevel(lc.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	if lc.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

func openData() *bureau.Data {
	return bureau.Open(cfg.Data.TradelineFile, cfg.Data.FeaturesFile)
}

func parseCustomerID(arg string) (int64, error) {
	var id int64
	if _, err := fmt.Sscanf(arg, "%d", &id); err != nil {
		return 0, fmt.Errorf("invalid customer id %q", arg)
	}
	return id, nil
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("BureauLens %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Extract Command ---

var extractCmd = &cobra.Command{
	Use:   "extract [customer-id]",
	Short: "Extract per-loan-type feature vectors for a customer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseCustomerID(args[0])
		if err != nil {
			return err
		}

		extractor := bureau.NewExtractor(openData())
		vectors, err := extractor.Extract(id)
		if err != nil {
			return err
		}
		if len(vectors) == 0 {
			fmt.Printf("No bureau tradelines found for customer %d\n", id)
			return nil
		}

		summary := bureau.Aggregate(vectors)
		out, err := json.MarshalIndent(map[string]any{
			"customer_id":       id,
			"feature_vectors":   vectors,
			"executive_summary": summary,
		}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

// --- Findings Command ---

var findingsCmd = &cobra.Command{
	Use:   "findings [customer-id]",
	Short: "Print key findings for a customer",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("provide exactly one customer id")
		}
		id, err := parseCustomerID(args[0])
		if err != nil {
			return err
		}

		rep, err := bureau.NewBuilder(openData()).Build(id)
		if err != nil {
			return err
		}

		if len(rep.KeyFindings) == 0 {
			fmt.Printf("No findings for customer %d\n", id)
			return nil
		}
		for _, f := range rep.KeyFindings {
			fmt.Printf("[%s] %s\n", f.Severity, f.Category)
			fmt.Printf("  %s\n", f.Finding)
			fmt.Printf("  → %s\n\n", f.Inference)
		}
		return nil
	},
}

// --- Report Command ---

var reportCmd = &cobra.Command{
	Use:   "report [customer-id]",
	Short: "Generate a full bureau report for a customer",
	Long: `Generate the complete bureau report: feature vectors, executive
summary, pre-computed tradeline features, key findings, and the
monthly exposure series.

Examples:
  bureaulens report 12345
  bureaulens report 12345 --format html --output report.html
  bureaulens report 12345 --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseCustomerID(args[0])
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")

		rep, err := bureau.NewBuilder(openData()).Build(id)
		if err != nil {
			return err
		}

		body, err := report.Render(rep, report.Format(format))
		if err != nil {
			return err
		}

		if output != "" {
			if err := os.WriteFile(output, body, 0o644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			fmt.Printf("Report written to %s\n", output)
			return nil
		}
		fmt.Println(string(body))
		return nil
	},
}

func init() {
	reportCmd.Flags().String("format", "text", "output format: text, html, json")
	reportCmd.Flags().String("output", "", "write report to file instead of stdout")
}

// --- Serve Command (API Server) ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := api.NewServer(cfg)
		if err != nil {
			return err
		}
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		return srv.ListenAndServe(addr)
	},
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show system status and configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  BureauLens — System Status")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Version:     %s (%s)\n", version, commit)
		fmt.Printf("  Time (IST):  %s\n", utils.NowIST().Format("02 Jan 2006 15:04:05"))
		fmt.Println()

		fmt.Println("  Configuration:")
		fmt.Printf("    Tradeline file:   %s\n", cfg.Data.TradelineFile)
		fmt.Printf("    Features file:    %s\n", cfg.Data.FeaturesFile)
		fmt.Printf("    Refresh schedule: %s\n", orNone(cfg.Data.RefreshSchedule))
		fmt.Printf("    API Server:       %s:%d\n", cfg.API.Host, cfg.API.Port)
		fmt.Printf("    Report store:     %s\n", storeStatus())
		fmt.Println()

		fmt.Println("  Datasets:")
		data := openData()
		rows, err := data.Tradelines()
		if err != nil {
			fmt.Printf("    Tradelines:  ❌ %v\n", err)
		} else {
			fmt.Printf("    Tradelines:  ✅ %d rows loaded\n", len(rows))
		}
		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}

func orNone(s string) string {
	if s == "" {
		return "(disabled)"
	}
	return s
}

func storeStatus() string {
	if !cfg.Store.Enabled {
		return "disabled"
	}
	return cfg.Store.Path
}
