package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/chrisdamba/menusight/internal/cloudwriter"
	"github.com/chrisdamba/menusight/internal/models"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

// Flat parquet schemas for each topic. Optional columns use pointers so an
// undefined margin stays NULL instead of collapsing to zero.

type parquetMarginRow struct {
	ItemName           string   `parquet:"name=item_name, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	UnitsSold          float64  `parquet:"name=units_sold, type=DOUBLE"`
	Revenue            float64  `parquet:"name=revenue, type=DOUBLE"`
	CostPerServing     float64  `parquet:"name=cost_per_serving, type=DOUBLE"`
	TotalCost          float64  `parquet:"name=total_cost, type=DOUBLE"`
	GrossMarginPct     *float64 `parquet:"name=gross_margin_pct, type=DOUBLE, repetitiontype=OPTIONAL"`
	ContributionMargin float64  `parquet:"name=contribution_margin, type=DOUBLE"`
	Price              *float64 `parquet:"name=price, type=DOUBLE, repetitiontype=OPTIONAL"`
}

type parquetCategoryRow struct {
	Category     string  `parquet:"name=category, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Revenue      float64 `parquet:"name=revenue, type=DOUBLE"`
	Contribution float64 `parquet:"name=contribution, type=DOUBLE"`
	MarginPct    float64 `parquet:"name=margin_pct, type=DOUBLE"`
}

type parquetQuadrantRow struct {
	ItemName           string   `parquet:"name=item_name, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Quadrant           string   `parquet:"name=quadrant, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	UnitsSold          float64  `parquet:"name=units_sold, type=DOUBLE"`
	Revenue            float64  `parquet:"name=revenue, type=DOUBLE"`
	GrossMarginPct     *float64 `parquet:"name=gross_margin_pct, type=DOUBLE, repetitiontype=OPTIONAL"`
	ContributionMargin float64  `parquet:"name=contribution_margin, type=DOUBLE"`
}

type parquetSuggestionRow struct {
	ItemName           string  `parquet:"name=item_name, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	CurrentPrice       float64 `parquet:"name=current_price, type=DOUBLE"`
	Cost               float64 `parquet:"name=cost, type=DOUBLE"`
	CurrentMarginPct   float64 `parquet:"name=current_margin_pct, type=DOUBLE"`
	TargetMarginPct    float64 `parquet:"name=target_margin_pct, type=DOUBLE"`
	SuggestedPrice     float64 `parquet:"name=suggested_price, type=DOUBLE"`
	SuggestedMarginPct float64 `parquet:"name=suggested_margin_pct, type=DOUBLE"`
	IncreasePct        float64 `parquet:"name=increase_pct, type=DOUBLE"`
	Capped             bool    `parquet:"name=capped, type=BOOLEAN"`
	Caution            bool    `parquet:"name=caution, type=BOOLEAN"`
}

type parquetLeakItemRow struct {
	ItemName                    string  `parquet:"name=item_name, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	CurrentMarginPct            float64 `parquet:"name=current_margin_pct, type=DOUBLE"`
	UnitsSold                   float64 `parquet:"name=units_sold, type=DOUBLE"`
	Revenue                     float64 `parquet:"name=revenue, type=DOUBLE"`
	CostPerServing              float64 `parquet:"name=cost_per_serving, type=DOUBLE"`
	CurrentContribution         float64 `parquet:"name=current_contribution, type=DOUBLE"`
	SuggestedPrice              float64 `parquet:"name=suggested_price, type=DOUBLE"`
	PotentialContribution       float64 `parquet:"name=potential_contribution, type=DOUBLE"`
	EstimatedLostProfitPerMonth float64 `parquet:"name=estimated_lost_profit_per_month, type=DOUBLE"`
	Role                        string  `parquet:"name=role, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
}

type parquetLeakSummaryRow struct {
	BottomMarginSKUs            int32   `parquet:"name=bottom_margin_skus, type=INT32"`
	EstimatedLostProfitPerMonth float64 `parquet:"name=estimated_lost_profit_per_month, type=DOUBLE"`
	LostFromItemsToFix          float64 `parquet:"name=lost_from_items_to_fix, type=DOUBLE"`
	LostFromStrategicCandidates float64 `parquet:"name=lost_from_strategic_candidates, type=DOUBLE"`
	ItemsToFixCount             int32   `parquet:"name=items_to_fix_count, type=INT32"`
	StrategicCandidateCount     int32   `parquet:"name=strategic_candidate_count, type=INT32"`
	Message                     string  `parquet:"name=message, type=BYTE_ARRAY, convertedtype=UTF8"`
	GeneratedAt                 string  `parquet:"name=generated_at, type=BYTE_ARRAY, convertedtype=UTF8"`
}

func marginPtr(m models.Margin) *float64 {
	if !m.Valid {
		return nil
	}
	pct := m.Pct
	return &pct
}

// schemaFor returns the empty schema object parquet-go derives column layout
// from, per topic.
func schemaFor(topic string) (interface{}, error) {
	switch topic {
	case TopicItemMargins:
		return new(parquetMarginRow), nil
	case TopicCategoryMargins:
		return new(parquetCategoryRow), nil
	case TopicQuadrants:
		return new(parquetQuadrantRow), nil
	case TopicPriceSuggestions:
		return new(parquetSuggestionRow), nil
	case TopicProfitLeakItems:
		return new(parquetLeakItemRow), nil
	case TopicProfitLeakReport:
		return new(parquetLeakSummaryRow), nil
	default:
		return nil, fmt.Errorf("no parquet schema for topic: %s", topic)
	}
}

// rowFor decodes a JSON message into the typed parquet row for its topic.
func rowFor(topic string, msg []byte) (interface{}, error) {
	switch topic {
	case TopicItemMargins:
		var r models.ItemMarginRow
		if err := json.Unmarshal(msg, &r); err != nil {
			return nil, err
		}
		return parquetMarginRow{
			ItemName:           r.ItemName,
			UnitsSold:          r.UnitsSold,
			Revenue:            r.Revenue,
			CostPerServing:     r.CostPerServing,
			TotalCost:          r.TotalCost,
			GrossMarginPct:     marginPtr(r.GrossMarginPct),
			ContributionMargin: r.ContributionMargin,
			Price:              r.Price,
		}, nil
	case TopicCategoryMargins:
		var r models.CategoryMargin
		if err := json.Unmarshal(msg, &r); err != nil {
			return nil, err
		}
		return parquetCategoryRow(r), nil
	case TopicQuadrants:
		var r models.QuadrantItem
		if err := json.Unmarshal(msg, &r); err != nil {
			return nil, err
		}
		return parquetQuadrantRow{
			ItemName:           r.ItemName,
			Quadrant:           r.Quadrant,
			UnitsSold:          r.UnitsSold,
			Revenue:            r.Revenue,
			GrossMarginPct:     marginPtr(r.GrossMarginPct),
			ContributionMargin: r.ContributionMargin,
		}, nil
	case TopicPriceSuggestions:
		var r models.ItemPriceSuggestion
		if err := json.Unmarshal(msg, &r); err != nil {
			return nil, err
		}
		return parquetSuggestionRow{
			ItemName:           r.ItemName,
			CurrentPrice:       r.CurrentPrice,
			Cost:               r.Cost,
			CurrentMarginPct:   r.CurrentMarginPct,
			TargetMarginPct:    r.TargetMarginPct,
			SuggestedPrice:     r.SuggestedPrice,
			SuggestedMarginPct: r.SuggestedMarginPct,
			IncreasePct:        r.IncreasePct,
			Capped:             r.Capped,
			Caution:            r.Caution,
		}, nil
	case TopicProfitLeakItems:
		var r models.ProfitLeakItem
		if err := json.Unmarshal(msg, &r); err != nil {
			return nil, err
		}
		return parquetLeakItemRow{
			ItemName:                    r.ItemName,
			CurrentMarginPct:            r.CurrentMarginPct,
			UnitsSold:                   r.UnitsSold,
			Revenue:                     r.Revenue,
			CostPerServing:              r.CostPerServing,
			CurrentContribution:         r.CurrentContribution,
			SuggestedPrice:              r.SuggestedPrice,
			PotentialContribution:       r.PotentialContribution,
			EstimatedLostProfitPerMonth: r.EstimatedLostProfitPerMonth,
			Role:                        r.Role,
		}, nil
	case TopicProfitLeakReport:
		var r models.ProfitLeakReport
		if err := json.Unmarshal(msg, &r); err != nil {
			return nil, err
		}
		return parquetLeakSummaryRow{
			BottomMarginSKUs:            int32(r.Summary.BottomMarginSKUs),
			EstimatedLostProfitPerMonth: r.Summary.EstimatedLostProfitPerMonth,
			LostFromItemsToFix:          r.Summary.LostFromItemsToFix,
			LostFromStrategicCandidates: r.Summary.LostFromStrategicCandidates,
			ItemsToFixCount:             int32(r.Summary.ItemsToFixCount),
			StrategicCandidateCount:     int32(r.Summary.StrategicCandidateCount),
			Message:                     r.Summary.Message,
			GeneratedAt:                 r.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"),
		}, nil
	default:
		return nil, fmt.Errorf("no parquet row mapping for topic: %s", topic)
	}
}

// ParquetOutput writes one parquet file per topic, locally or through a cloud
// writer when an S3 destination is configured.
type ParquetOutput struct {
	basePath           string
	folder             string
	mu                 sync.Mutex
	writers            map[string]*writer.ParquetWriter
	files              map[string]source.ParquetFile
	cloudWriterFactory cloudwriter.CloudWriterFactory
	cloudBucketName    string
}

func NewParquetOutput(config *models.Config) (*ParquetOutput, error) {
	p := &ParquetOutput{
		basePath: config.OutputPath,
		folder:   config.OutputFolder,
		writers:  make(map[string]*writer.ParquetWriter),
		files:    make(map[string]source.ParquetFile),
	}

	if config.OutputDestination == "s3" {
		factory, err := cloudwriter.NewS3WriterFactory(config.CloudStorage.Region)
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud writer factory: %w", err)
		}
		p.cloudWriterFactory = factory
		p.cloudBucketName = config.CloudStorage.BucketName
	} else if config.OutputDestination != "local" {
		return nil, fmt.Errorf("unsupported output destination: %s", config.OutputDestination)
	}

	return p, nil
}

func (p *ParquetOutput) WriteMessage(topic string, msg []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	pw, ok := p.writers[topic]
	if !ok {
		var err error
		pw, err = p.createWriter(topic)
		if err != nil {
			return fmt.Errorf("failed to create parquet writer: %w", err)
		}
	}

	row, err := rowFor(topic, msg)
	if err != nil {
		return err
	}
	if err := pw.Write(row); err != nil {
		return fmt.Errorf("failed to write parquet row: %w", err)
	}
	return nil
}

func (p *ParquetOutput) createWriter(topic string) (*writer.ParquetWriter, error) {
	var fw source.ParquetFile
	var err error
	if p.cloudWriterFactory != nil {
		objectPath := filepath.Join(p.folder, topic+".parquet")
		cw, err := p.cloudWriterFactory.NewWriter(p.cloudBucketName, objectPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud file writer: %w", err)
		}
		fw = cloudwriter.NewParquetFile(cw)
	} else {
		fullPath := filepath.Join(p.basePath, p.folder)
		if err := ensureDir(fullPath); err != nil {
			return nil, err
		}
		fw, err = local.NewLocalFileWriter(filepath.Join(fullPath, topic+".parquet"))
		if err != nil {
			return nil, fmt.Errorf("failed to create local file writer: %w", err)
		}
	}

	schema, err := schemaFor(topic)
	if err != nil {
		return nil, err
	}
	pw, err := writer.NewParquetWriter(fw, schema, 4)
	if err != nil {
		return nil, fmt.Errorf("failed to create ParquetWriter: %w", err)
	}

	p.writers[topic] = pw
	p.files[topic] = fw
	return pw, nil
}

func ensureDir(path string) error {
	return os.MkdirAll(path, os.ModePerm)
}

func (p *ParquetOutput) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var lastErr error
	for topic, pw := range p.writers {
		if err := pw.WriteStop(); err != nil {
			lastErr = fmt.Errorf("failed to finalize parquet writer for %s: %w", topic, err)
		}
		if f, ok := p.files[topic]; ok {
			if err := f.Close(); err != nil {
				lastErr = fmt.Errorf("failed to close parquet file for %s: %w", topic, err)
			}
		}
	}
	return lastErr
}
