package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/tivlo/internal/models"
	"github.com/julianstephens/tivlo/internal/storage"
)

const historyColumns = `id, user_id, product_name, price, currency, total_hours_decimal, decision, date, advice_used`

func (s *Store) AddHistoryItem(item models.HistoryItem) error {
	_, err := s.db.Exec(`INSERT INTO history (`+historyColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		item.ID, item.UserID, item.ProductName, item.Price, item.Currency,
		item.TotalHoursDecimal, string(item.Decision), item.Date.UTC(),
		sql.NullString{String: item.AdviceUsed, Valid: item.AdviceUsed != ""},
	)
	return err
}

func (s *Store) GetHistoryItem(id string) (models.HistoryItem, error) {
	row := s.db.QueryRow(`SELECT `+historyColumns+` FROM history WHERE id = $1`, id)
	item, err := scanHistory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.HistoryItem{}, fmt.Errorf("history item %s: %w", id, storage.ErrNotFound)
	}
	return item, err
}

func (s *Store) GetHistory(userID string) ([]models.HistoryItem, error) {
	rows, err := s.db.Query(`SELECT `+historyColumns+` FROM history WHERE user_id = $1 ORDER BY date DESC, id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.HistoryItem
	for rows.Next() {
		item, err := scanHistory(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Store) ClearHistory(userID string) (int, error) {
	res, err := s.db.Exec(`DELETE FROM history WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanHistory(row scanner) (models.HistoryItem, error) {
	var item models.HistoryItem
	var decision string
	var advice sql.NullString
	if err := row.Scan(&item.ID, &item.UserID, &item.ProductName, &item.Price, &item.Currency,
		&item.TotalHoursDecimal, &decision, &item.Date, &advice); err != nil {
		return models.HistoryItem{}, err
	}
	item.Decision = models.Decision(decision)
	item.AdviceUsed = advice.String
	return item, nil
}
