package models

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	BucketName string `mapstructure:"bucket_name"`
	Region     string `mapstructure:"region"`
}

type Config struct {
	Seed int `mapstructure:"seed"`

	// Input selection: "csv", "postgres" or "demo".
	InputSource     string `mapstructure:"input_source"`
	SalesFile       string `mapstructure:"sales_file"`
	IngredientsFile string `mapstructure:"ingredients_file"`
	RecipesFile     string `mapstructure:"recipes_file"`
	MenuFile        string `mapstructure:"menu_file"`

	// Analysis parameters.
	TargetMargin        float64            `mapstructure:"target_margin"`
	PerItemTargetMargin map[string]float64 `mapstructure:"per_item_target_margin"`
	MenuPrices          map[string]float64 `mapstructure:"menu_prices"`
	StrategicItems      []string           `mapstructure:"strategic_items"`
	ItemCategories      map[string]string  `mapstructure:"item_categories"`

	// Demo fixture generation.
	DemoDays int `mapstructure:"demo_days"`

	// Output.
	OutputFormat      string `mapstructure:"output_format"` // console, json, csv, parquet
	OutputPath        string `mapstructure:"output_path"`
	OutputFolder      string `mapstructure:"output_folder"`
	OutputDestination string `mapstructure:"output_destination"` // local, s3, postgres

	KafkaEnabled     bool   `mapstructure:"kafka_enabled"`
	KafkaBrokerList  string `mapstructure:"kafka_broker_list"`
	SessionTimeoutMs int    `mapstructure:"session_timeout_ms"`

	CloudStorage CloudStorageConfig `mapstructure:"cloud_storage"`
	Database     DatabaseConfig     `mapstructure:"database"`
}

// LoadConfig initializes and reads the configuration using Viper
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Default config location
		viper.AddConfigPath("examples")
		viper.SetConfigName("config")
		viper.SetConfigType("json")
	}

	viper.AutomaticEnv() // Read in environment variables that match

	viper.SetDefault("input_source", "csv")
	viper.SetDefault("target_margin", 0.75)
	viper.SetDefault("output_format", "console")
	viper.SetDefault("output_destination", "local")
	viper.SetDefault("demo_days", 30)

	if err := viper.ReadInConfig(); err != nil {
		// Demo mode and flag-only runs work without a config file.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	return &config, nil
}

// AnalysisParams converts the loaded configuration into the pass-by-value
// parameter struct the engine consumes.
func (cfg *Config) AnalysisParams() AnalysisParams {
	strategic := make(map[string]struct{}, len(cfg.StrategicItems))
	for _, name := range cfg.StrategicItems {
		strategic[name] = struct{}{}
	}
	return AnalysisParams{
		DefaultTargetMargin: cfg.TargetMargin,
		PerItemTargetMargin: cfg.PerItemTargetMargin,
		MenuPriceOverrides:  cfg.MenuPrices,
		StrategicItems:      strategic,
	}
}

// ApplyMenu merges a menu definition into the price override and category
// maps. Explicitly configured prices and categories win over the menu file.
func (cfg *Config) ApplyMenu(items []MenuItem) {
	for _, item := range items {
		if item.Price > 0 {
			if cfg.MenuPrices == nil {
				cfg.MenuPrices = make(map[string]float64)
			}
			if _, ok := cfg.MenuPrices[item.Name]; !ok {
				cfg.MenuPrices[item.Name] = item.Price
			}
		}
		if item.Category != "" {
			if cfg.ItemCategories == nil {
				cfg.ItemCategories = make(map[string]string)
			}
			if _, ok := cfg.ItemCategories[item.Name]; !ok {
				cfg.ItemCategories[item.Name] = item.Category
			}
		}
	}
}

// LoadMenuPriceData reads a two-column (item name, price) CSV of menu prices
// and merges it into the price override map.
func (cfg *Config) LoadMenuPriceData(filePath string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Read()

	if cfg.MenuPrices == nil {
		cfg.MenuPrices = make(map[string]float64)
	}
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if len(fields) < 2 {
			continue
		}
		price, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			continue
		}
		cfg.MenuPrices[fields[0]] = price
	}

	return nil
}
