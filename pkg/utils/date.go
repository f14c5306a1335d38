package utils

import "time"

// ParseDate aceita YYYY-MM-DD ou RFC3339. String vazia devolve nil, sem erro.
func ParseDate(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}

	date, err := time.Parse(time.DateOnly, dateStr)
	if err != nil {
		var rfcErr error
		date, rfcErr = time.Parse(time.RFC3339, dateStr)
		if rfcErr != nil {
			return nil, err
		}
	}

	return &date, nil
}
