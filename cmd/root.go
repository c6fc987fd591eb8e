package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/chrisdamba/menusight/internal/adapters"
	"github.com/chrisdamba/menusight/internal/engine"
	"github.com/chrisdamba/menusight/internal/models"
	"github.com/chrisdamba/menusight/internal/repositories"
	"github.com/chrisdamba/menusight/internal/repositories/postgres"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "menusight",
	Short: "Computes menu profitability from POS sales data and recipe costs",
	Long:  `menusight is a CLI tool that aggregates point-of-sale sales exports with ingredient-level recipe costs to produce per-item margins, a volume/margin quadrant breakdown, price suggestions and a profit leak report for restaurant menus.`,
	Run: func(cmd *cobra.Command, args []string) {
		runAnalysis()
	},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the analysis on generated demo fixtures",
	Run: func(cmd *cobra.Command, args []string) {
		viper.Set("input_source", "demo")
		runAnalysis()
	},
}

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load a POS sales CSV export into the Postgres mirror",
	Run: func(cmd *cobra.Command, args []string) {
		replace, _ := cmd.Flags().GetBool("replace")
		runLoad(replace)
	},
}

func runLoad(replace bool) {
	cfg, err := models.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	records, parseErrors, err := adapters.ParseSalesFile(cfg.SalesFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading sales file: %v\n", err)
		os.Exit(1)
	}
	for _, msg := range parseErrors {
		fmt.Fprintf(os.Stderr, "sales csv: %s\n", msg)
	}
	if len(parseErrors) > 0 {
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, &cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to postgres: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	var repo repositories.SalesRepository = postgres.NewSalesRepository(pool)
	count, err := engine.LoadSalesMirror(ctx, repo, records, replace)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading sales mirror: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d record(s); sales mirror now holds %d row(s)\n", len(records), count)
}

func runAnalysis() {
	cfg, err := models.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	analyzer := engine.NewAnalyzer(cfg)
	if err := analyzer.LoadInputs(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading inputs: %v\n", err)
		os.Exit(1)
	}
	result := analyzer.Run()
	if err := analyzer.WriteResults(ctx, result); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing results: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.menusight.yaml)")

	rootCmd.Flags().Int("seed", 42, "Random seed for demo fixture generation")
	rootCmd.Flags().String("sales-file", "", "Path to the POS sales CSV export")
	rootCmd.Flags().String("ingredients-file", "", "Path to the ingredient master list (JSON)")
	rootCmd.Flags().String("recipes-file", "", "Path to the recipe definitions (JSON)")
	rootCmd.Flags().String("menu-file", "", "Path to the menu definition with prices and categories (JSON)")
	rootCmd.Flags().Float64("target-margin", 0.75, "Default target gross margin as a decimal (0-1)")
	rootCmd.Flags().String("input-source", "csv", "Input source: csv, postgres or demo")
	rootCmd.Flags().String("output-format", "console", "Output format: console, json, csv or parquet")
	rootCmd.Flags().String("output-path", "", "Output base path (if not using Kafka)")
	rootCmd.Flags().String("output-folder", "reports", "Output folder under the base path")
	rootCmd.Flags().String("output-destination", "local", "Output destination: local, s3 or postgres")
	rootCmd.Flags().Bool("kafka-enabled", false, "Enable Kafka output")
	rootCmd.Flags().String("kafka-broker-list", "localhost:9092", "Kafka broker list")
	rootCmd.Flags().Int("demo-days", 30, "Days of sales to generate in demo mode")

	viper.BindPFlags(rootCmd.Flags())

	loadCmd.Flags().Bool("replace", false, "Clear the sales mirror before loading")
	loadCmd.Flags().String("sales-file", "", "Path to the POS sales CSV export")
	viper.BindPFlag("sales_file", loadCmd.Flags().Lookup("sales-file"))

	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(loadCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".menusight")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
