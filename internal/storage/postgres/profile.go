package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/tivlo/internal/models"
	"github.com/julianstephens/tivlo/internal/storage"
)

func (s *Store) GetProfile(userID string) (models.Settings, error) {
	var settings models.Settings
	var theme string
	err := s.db.QueryRow(`
		SELECT monthly_net_salary, weekly_hours, currency, city, age, theme
		FROM profiles WHERE user_id = $1`, userID).Scan(
		&settings.MonthlyNetSalary, &settings.WeeklyHours, &settings.Currency,
		&settings.City, &settings.Age, &theme,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Settings{}, fmt.Errorf("profile %s: %w", userID, storage.ErrNotFound)
	}
	if err != nil {
		return models.Settings{}, err
	}
	settings.Theme = models.Theme(theme)
	return settings, nil
}

func (s *Store) SaveProfile(userID string, settings models.Settings) error {
	_, err := s.db.Exec(`
		INSERT INTO profiles (user_id, monthly_net_salary, weekly_hours, currency, city, age, theme, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (user_id) DO UPDATE SET
			monthly_net_salary = EXCLUDED.monthly_net_salary,
			weekly_hours = EXCLUDED.weekly_hours,
			currency = EXCLUDED.currency,
			city = EXCLUDED.city,
			age = EXCLUDED.age,
			theme = EXCLUDED.theme,
			updated_at = now()`,
		userID, settings.MonthlyNetSalary, settings.WeeklyHours, settings.Currency,
		settings.City, settings.Age, string(settings.Theme),
	)
	return err
}
