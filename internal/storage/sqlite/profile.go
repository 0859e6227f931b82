package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/tivlo/internal/models"
	"github.com/julianstephens/tivlo/internal/storage"
)

func (s *Store) GetProfile(userID string) (models.Settings, error) {
	var settings models.Settings
	var theme string
	err := s.db.QueryRow(`
		SELECT monthly_net_salary, weekly_hours, currency, city, age, theme
		FROM profiles WHERE user_id = ?`, userID).Scan(
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
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			monthly_net_salary = excluded.monthly_net_salary,
			weekly_hours = excluded.weekly_hours,
			currency = excluded.currency,
			city = excluded.city,
			age = excluded.age,
			theme = excluded.theme,
			updated_at = excluded.updated_at`,
		userID, settings.MonthlyNetSalary, settings.WeeklyHours, settings.Currency,
		settings.City, settings.Age, string(settings.Theme),
		time.Now().UTC().Format(timestampFormat),
	)
	return err
}
