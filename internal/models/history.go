package models

import (
	"fmt"
	"time"
)

type Decision string

const (
	DecisionBought Decision = "bought"
	DecisionSaved  Decision = "saved"
)

// ParseDecision validates a decision string
func ParseDecision(s string) (Decision, error) {
	switch Decision(s) {
	case DecisionBought, DecisionSaved:
		return Decision(s), nil
	}
	return "", fmt.Errorf("invalid decision %q (must be bought or saved)", s)
}

// HistoryItem is one row of the append-only spending ledger
type HistoryItem struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	ProductName       string    `json:"product_name"`
	Price             float64   `json:"price"`
	Currency          string    `json:"currency"`
	TotalHoursDecimal float64   `json:"total_hours_decimal"`
	Decision          Decision  `json:"decision"`
	Date              time.Time `json:"date"`
	AdviceUsed        string    `json:"advice_used,omitempty"`
}
