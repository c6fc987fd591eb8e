package models

// SalesRecord is one normalized POS transaction line. Records are immutable
// inputs; the margin engine only aggregates them, never mutates them.
type SalesRecord struct {
	ItemName  string  `json:"item_name" mapstructure:"item_name"`
	UnitsSold float64 `json:"units_sold" mapstructure:"units_sold"`
	Revenue   float64 `json:"revenue" mapstructure:"revenue"`
	Timestamp string  `json:"timestamp,omitempty" mapstructure:"timestamp"`
}
