package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// BacklogFile is the JSON structure accepted by `task import`. The file is
// either a bare array of tasks or an object with a "tasks" array.
type BacklogFile struct {
	Tasks []TaskImport `json:"tasks"`
}

// TaskImport defines one task in the import file. TaskName is the legacy
// spelling of Name written by older exports.
type TaskImport struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name,omitempty"`
	TaskName    string  `json:"task_name,omitempty"`
	DurationMin *int    `json:"duration_minutes,omitempty"`
	Priority    string  `json:"priority,omitempty"`
	Deadline    *string `json:"deadline,omitempty"`
}

// Title returns Name, falling back to the legacy field.
func (t TaskImport) Title() string {
	if t.Name != "" {
		return t.Name
	}
	return t.TaskName
}

// LoadBacklogFile reads and parses a backlog import file.
func LoadBacklogFile(path string) (*BacklogFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseBacklog(data)
}

func ParseBacklog(data []byte) (*BacklogFile, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var tasks []TaskImport
		if err := json.Unmarshal(trimmed, &tasks); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
		return &BacklogFile{Tasks: tasks}, nil
	}
	var file BacklogFile
	if err := json.Unmarshal(trimmed, &file); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &file, nil
}
