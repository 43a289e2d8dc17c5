package calendar

import (
	"bytes"
	"encoding/csv"

	log "github.com/sirupsen/logrus"
)

var csvHeader = []string{"date", "time", "title", "category"}

// RenderCSV writes one row per event after a header row.
func RenderCSV(events []Event) (string, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	if err := writer.Write(csvHeader); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}
	for _, e := range events {
		err := writer.Write([]string{e.Date, e.Time, e.Title, string(e.Category)})
		if err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}
