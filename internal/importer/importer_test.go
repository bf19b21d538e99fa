package importer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dubeymanas69-lgtm/ai-agent/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrStr(s string) *string { return &s }
func ptrInt(i int) *int       { return &i }

func TestParseBacklog_BareArrayAndObject(t *testing.T) {
	arr, err := ParseBacklog([]byte(` [{"name": "a"}, {"task_name": "b"}]`))
	require.NoError(t, err)
	require.Len(t, arr.Tasks, 2)
	assert.Equal(t, "b", arr.Tasks[1].Title())

	obj, err := ParseBacklog([]byte(`{"tasks": [{"name": "c", "duration_minutes": 30}]}`))
	require.NoError(t, err)
	require.Len(t, obj.Tasks, 1)
	assert.Equal(t, 30, *obj.Tasks[0].DurationMin)

	_, err = ParseBacklog([]byte(`{"tasks": [`))
	assert.Error(t, err)
}

func TestLoadBacklogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name": "from disk"}]`), 0o644))

	file, err := LoadBacklogFile(path)
	require.NoError(t, err)
	assert.Equal(t, "from disk", file.Tasks[0].Name)

	_, err = LoadBacklogFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidateBacklogFile_Valid(t *testing.T) {
	file := &BacklogFile{Tasks: []TaskImport{
		{ID: "a", Name: "Study", DurationMin: ptrInt(90), Priority: "HIGH", Deadline: ptrStr("2024-01-05")},
		{TaskName: "legacy", Deadline: ptrStr("")},
	}}
	assert.Empty(t, ValidateBacklogFile(file))
}

func TestValidateBacklogFile_CollectsAllErrors(t *testing.T) {
	file := &BacklogFile{Tasks: []TaskImport{
		{ID: "x", Name: "  "},
		{ID: "x", Name: "dup", DurationMin: ptrInt(-5)},
		{Name: "bad", Priority: "urgent", Deadline: ptrStr("05/01/2024")},
	}}

	errs := ValidateBacklogFile(file)
	require.Len(t, errs, 5)
	assert.Contains(t, errs[0].Error(), "tasks[0].name is required")
	assert.Contains(t, errs[1].Error(), "tasks[1].duration_minutes")
	assert.Contains(t, errs[2].Error(), `duplicates tasks[0]`)
	assert.Contains(t, errs[3].Error(), "tasks[2].priority")
	assert.Contains(t, errs[4].Error(), "tasks[2].deadline")
}

func TestValidateBacklogFile_Empty(t *testing.T) {
	errs := ValidateBacklogFile(&BacklogFile{})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "no tasks")
}

func TestConvert(t *testing.T) {
	file := &BacklogFile{Tasks: []TaskImport{
		{ID: "keep", Name: " Study ", DurationMin: ptrInt(45), Priority: "low", Deadline: ptrStr("2024-01-05")},
		{TaskName: "legacy"},
	}}

	tasks, err := Convert(file)
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	assert.Equal(t, "keep", tasks[0].ID)
	assert.Equal(t, "Study", tasks[0].Name)
	assert.Equal(t, 45, tasks[0].DurationMin)
	assert.Equal(t, domain.PriorityLow, tasks[0].Priority)
	require.NotNil(t, tasks[0].Deadline)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), *tasks[0].Deadline)

	assert.Empty(t, tasks[1].ID)
	assert.Equal(t, "legacy", tasks[1].Name)
	assert.Zero(t, tasks[1].DurationMin)
	assert.Nil(t, tasks[1].Deadline)
}
