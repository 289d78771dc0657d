package storage

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/sandeepkv93/tasklist/internal/model"
)

const recordTimeLayout = time.RFC3339Nano

// taskRecord is the persisted shape of a task under the "todos" key.
type taskRecord struct {
	ID        string  `json:"id"`
	Text      string  `json:"text"`
	Completed bool    `json:"completed"`
	Priority  string  `json:"priority"`
	DueDate   *string `json:"dueDate"`
	CreatedAt string  `json:"createdAt"`
}

// storedRecord accepts older layouts: numeric ids, missing priority or
// due date, and full timestamps in dueDate.
type storedRecord struct {
	ID        json.RawMessage `json:"id"`
	Text      string          `json:"text"`
	Completed bool            `json:"completed"`
	Priority  string          `json:"priority"`
	DueDate   *string         `json:"dueDate"`
	CreatedAt string          `json:"createdAt"`
}

func toRecord(t model.Task) taskRecord {
	rec := taskRecord{
		ID:        t.ID,
		Text:      t.Text,
		Completed: t.Completed,
		Priority:  string(t.Priority),
		CreatedAt: t.CreatedAt.UTC().Format(recordTimeLayout),
	}
	if t.DueDate != nil {
		due := t.DueDate.Format(model.DateLayout)
		rec.DueDate = &due
	}
	return rec
}

// toTask stamps loadedAt on records whose createdAt is missing or unreadable.
func (r storedRecord) toTask(loadedAt time.Time) (model.Task, bool) {
	id := decodeID(r.ID)
	text := strings.TrimSpace(r.Text)
	if id == "" || text == "" {
		return model.Task{}, false
	}
	out := model.Task{
		ID:        id,
		Text:      text,
		Completed: r.Completed,
		Priority:  model.PriorityMedium,
	}
	if p, err := model.ParsePriority(r.Priority); err == nil {
		out.Priority = p
	}
	if r.DueDate != nil {
		if due, ok := parseDue(*r.DueDate); ok {
			out.DueDate = &due
		}
	}
	if created, err := time.Parse(recordTimeLayout, strings.TrimSpace(r.CreatedAt)); err == nil {
		out.CreatedAt = created
	} else {
		out.CreatedAt = loadedAt
	}
	return out, true
}

func decodeID(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ""
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return ""
		}
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return ""
	}
	return n.String()
}

func parseDue(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if d, err := model.ParseDate(raw); err == nil {
		return d, true
	}
	if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return model.Day(ts), true
	}
	return time.Time{}, false
}

func encodeTasks(tasks []model.Task) ([]byte, error) {
	records := make([]taskRecord, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, toRecord(t))
	}
	return json.Marshal(records)
}

type decodeStats struct {
	dropped int
	undated int
}

// decodeTasks drops records without an id or text and repeated ids.
func decodeTasks(raw []byte, loadedAt time.Time) ([]model.Task, decodeStats, error) {
	var records []storedRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, decodeStats{}, err
	}
	out := make([]model.Task, 0, len(records))
	seen := make(map[string]bool, len(records))
	var stats decodeStats
	for _, rec := range records {
		task, ok := rec.toTask(loadedAt)
		if !ok || seen[task.ID] {
			stats.dropped++
			continue
		}
		if _, err := time.Parse(recordTimeLayout, strings.TrimSpace(rec.CreatedAt)); err != nil {
			stats.undated++
		}
		seen[task.ID] = true
		out = append(out, task)
	}
	return out, stats, nil
}
