package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type jsonExport struct {
	ExportedAt   string            `json:"exported_at"`
	Todos        []jsonTodo        `json:"todos"`
	Events       []jsonEvent       `json:"events"`
	Applications []jsonApplication `json:"applications"`
}

type jsonTodo struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Completed   bool   `json:"completed"`
	CompletedAt string `json:"completed_at,omitempty"`
	CreatedAt   string `json:"created_at"`
}

type jsonEvent struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Deadline string `json:"deadline"`
	Location string `json:"location,omitempty"`
}

type jsonApplication struct {
	ID               int64  `json:"id"`
	Title            string `json:"title"`
	Type             string `json:"type"`
	Status           string `json:"status"`
	AnnouncementDate string `json:"announcement_date,omitempty"`
	Deadline         string `json:"deadline,omitempty"`
	EventDate        string `json:"event_date,omitempty"`
	Notes            string `json:"notes,omitempty"`
}

// ToJSON writes the snapshot as a single pretty-printed document.
func ToJSON(snap Snapshot, path string) error {
	doc := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
	}

	for _, t := range snap.Todos {
		jt := jsonTodo{
			ID:        t.ID,
			Title:     t.Title,
			Type:      string(t.Type),
			Completed: t.Completed,
			CreatedAt: t.CreatedAt.Local().Format(time.RFC3339),
		}
		if t.CompletedAt != nil {
			jt.CompletedAt = t.CompletedAt.Local().Format(time.RFC3339)
		}
		doc.Todos = append(doc.Todos, jt)
	}

	for _, e := range snap.Events {
		doc.Events = append(doc.Events, jsonEvent{
			ID:       e.ID,
			Name:     e.Name,
			Type:     string(e.Type),
			Deadline: e.Deadline.Local().Format(time.RFC3339),
			Location: e.Location,
		})
	}

	for _, a := range snap.Applications {
		ja := jsonApplication{
			ID:     a.ID,
			Title:  a.Title,
			Type:   string(a.Type),
			Status: string(a.Status),
			Notes:  a.Notes,
		}
		if a.AnnouncementDate != nil {
			ja.AnnouncementDate = a.AnnouncementDate.Local().Format(time.RFC3339)
		}
		if a.Deadline != nil {
			ja.Deadline = a.Deadline.Local().Format(time.RFC3339)
		}
		if a.EventDate != nil {
			ja.EventDate = a.EventDate.Local().Format(time.RFC3339)
		}
		doc.Applications = append(doc.Applications, ja)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
