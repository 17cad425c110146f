package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/kokpit/internal/store"
)

// Snapshot is everything a dump covers.
type Snapshot struct {
	Todos        []store.Todo
	Events       []store.Event
	Applications []store.Application
}

// ToCSV writes the snapshot as one flat table, one row per item, with a
// kind discriminator column.
func ToCSV(snap Snapshot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Kind", "ID", "Title", "Type", "Status", "Date", "Location", "Notes", "Created"}); err != nil {
		return err
	}

	for _, t := range snap.Todos {
		status := "open"
		date := ""
		if t.Completed {
			status = "completed"
			if t.CompletedAt != nil {
				date = t.CompletedAt.Local().Format(time.RFC3339)
			}
		}
		row := []string{
			"todo", fmt.Sprintf("%d", t.ID), t.Title, string(t.Type),
			status, date, "", "", t.CreatedAt.Local().Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	for _, e := range snap.Events {
		row := []string{
			"event", fmt.Sprintf("%d", e.ID), e.Name, string(e.Type),
			"", e.Deadline.Local().Format(time.RFC3339), e.Location, "",
			e.CreatedAt.Local().Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	for _, a := range snap.Applications {
		date := ""
		switch {
		case a.EventDate != nil:
			date = a.EventDate.Local().Format(time.RFC3339)
		case a.Deadline != nil:
			date = a.Deadline.Local().Format(time.RFC3339)
		case a.AnnouncementDate != nil:
			date = a.AnnouncementDate.Local().Format(time.RFC3339)
		}
		row := []string{
			"application", fmt.Sprintf("%d", a.ID), a.Title, string(a.Type),
			string(a.Status), date, "", a.Notes,
			a.CreatedAt.Local().Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
