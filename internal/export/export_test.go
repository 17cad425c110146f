package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sadopc/kokpit/internal/domain"
	"github.com/sadopc/kokpit/internal/store"
)

func testSnapshot() Snapshot {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	done := now.Add(-time.Hour)
	deadline := now.AddDate(0, 0, 10)

	return Snapshot{
		Todos: []store.Todo{
			{ID: 1, Title: "open task", Type: domain.SizeBig, CreatedAt: now},
			{ID: 2, Title: "done task", Type: domain.SizeSmall, Completed: true, CompletedAt: &done, CreatedAt: now},
		},
		Events: []store.Event{
			{ID: 1, Name: "TEKNOFEST (Hackathon)", Type: domain.TypeHackathon, Deadline: deadline, Location: "Online/Yerinde", CreatedAt: now},
		},
		Applications: []store.Application{
			{ID: 1, Title: "Google STEP", Type: domain.TypeInternship, Status: domain.StatusPlanned, Deadline: &deadline, Notes: "portal", CreatedAt: now},
		},
	}
}

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := ToCSV(testSnapshot(), path); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	// header + 2 todos + 1 event + 1 application
	if len(rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(rows))
	}
	if rows[0][0] != "Kind" {
		t.Fatalf("bad header: %v", rows[0])
	}
	if rows[1][0] != "todo" || rows[1][2] != "open task" || rows[1][4] != "open" {
		t.Fatalf("bad todo row: %v", rows[1])
	}
	if rows[2][4] != "completed" {
		t.Fatalf("completed todo should say so: %v", rows[2])
	}
	if rows[3][0] != "event" || rows[3][6] != "Online/Yerinde" {
		t.Fatalf("bad event row: %v", rows[3])
	}
	if rows[4][0] != "application" || rows[4][4] != "planned" || rows[4][7] != "portal" {
		t.Fatalf("bad application row: %v", rows[4])
	}
}

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := ToJSON(testSnapshot(), path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var doc struct {
		ExportedAt   string `json:"exported_at"`
		Todos        []struct {
			Title       string `json:"title"`
			Completed   bool   `json:"completed"`
			CompletedAt string `json:"completed_at"`
		} `json:"todos"`
		Events []struct {
			Name string `json:"name"`
		} `json:"events"`
		Applications []struct {
			Title  string `json:"title"`
			Status string `json:"status"`
		} `json:"applications"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}

	if doc.ExportedAt == "" {
		t.Fatal("missing exported_at")
	}
	if len(doc.Todos) != 2 || len(doc.Events) != 1 || len(doc.Applications) != 1 {
		t.Fatalf("wrong counts: %d/%d/%d", len(doc.Todos), len(doc.Events), len(doc.Applications))
	}
	if !doc.Todos[1].Completed || doc.Todos[1].CompletedAt == "" {
		t.Fatal("completed todo should carry its timestamp")
	}
	if doc.Todos[0].CompletedAt != "" {
		t.Fatal("open todo should omit completed_at")
	}
	if doc.Applications[0].Status != "planned" {
		t.Fatalf("bad status %q", doc.Applications[0].Status)
	}
}
