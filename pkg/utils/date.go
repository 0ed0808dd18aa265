package utils

import "time"

// ParseDate converte uma data no formato YYYY-MM-DD. String vazia retorna
// nil para que o chamador aplique o default (hoje em UTC).
func ParseDate(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}

	date, err := time.Parse(time.DateOnly, dateStr)
	if err != nil {
		return nil, err
	}

	return &date, nil
}

// TodayUTC retorna o dia corrente em UTC, truncado para meia-noite.
func TodayUTC() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
