package records

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/coursemap/pkg/catalog"
	"github.com/matzehuels/coursemap/pkg/errors"
	"github.com/matzehuels/coursemap/pkg/layout"
)

const sample = `{
  "courses": [
    {"course_number": "S101", "title": "Intro"},
    {"course_number": "S201", "title": "Next"},
    {"course_number": "", "title": "blank row"}
  ],
  "course_requisites": [
    {"course_number": "S201", "requisite_number": "S101", "is_primary": 1},
    {"course_number": "S201", "requisite_number": "M100", "is_primary": 0},
    {"course_number": "S201", "requisite_number": "M110", "is_primary": ""},
    {"course_number": "S201", "requisite_number": "M120"}
  ],
  "courses_program1": [
    {"course_number": "S101"}
  ],
  "requisites_program1": [
    {"course_number": "S201", "requisite_number": "S101"}
  ],
  "layout_metadata": {"algorithm": "old"}
}`

func decodeSample(t *testing.T) *Dataset {
	t.Helper()
	ds, err := Decode(strings.NewReader(sample), FormatJSON)
	require.NoError(t, err)
	return ds
}

func TestDecodeSplitsTablesAndExtras(t *testing.T) {
	ds := decodeSample(t)
	assert.Len(t, ds.Tables, 4)
	assert.Len(t, ds.Table("courses"), 3)
	assert.Contains(t, ds.Extra, "layout_metadata")
	assert.NotContains(t, ds.Tables, "layout_metadata")
}

func TestExtract(t *testing.T) {
	courses, reqs := Extract(decodeSample(t), DefaultSchema())
	assert.Equal(t, []string{"S101", "S201"}, courses)
	assert.Equal(t, []catalog.Requisite{
		{Course: "S201", Requisite: "S101", Primary: true},
		{Course: "S201", Requisite: "M100", Primary: false},
		{Course: "S201", Requisite: "M110", Primary: true},
		{Course: "S201", Requisite: "M120", Primary: true},
	}, reqs)
}

func TestExtract_CustomTables(t *testing.T) {
	schema := DefaultSchema()
	schema.CourseTables = []string{"courses_program1"}
	schema.RequisiteTables = []string{"requisites_program1"}

	courses, reqs := Extract(decodeSample(t), schema)
	assert.Equal(t, []string{"S101"}, courses)
	require.Len(t, reqs, 1)
	assert.Equal(t, "S101", reqs[0].Requisite)
}

func TestPrimaryFlag(t *testing.T) {
	tests := []struct {
		value any
		want  bool
	}{
		{nil, true},
		{true, true},
		{false, false},
		{float64(1), true},
		{float64(0), false},
		{"yes", true},
		{"TRUE", true},
		{"0", false},
		{"no", false},
		{"", true},
	}
	for _, tt := range tests {
		rec := Record{"is_primary": tt.value}
		assert.Equal(t, tt.want, primary(rec, "is_primary"), "primary(%v)", tt.value)
	}
	assert.True(t, primary(Record{"is_primary": false}, ""), "no primary field means primary")
}

func TestFieldNumbers(t *testing.T) {
	assert.Equal(t, "101", field(Record{"id": float64(101)}, "id"))
	assert.Equal(t, "S1", field(Record{"id": " S1 "}, "id"))
	assert.Equal(t, "", field(Record{}, "id"))
}

func TestMerge(t *testing.T) {
	ds := decodeSample(t)
	coords := layout.Coordinates{
		"S101": {X: 1, Y: 2},
		"S201": {X: 3, Y: 4, R: 5, Theta: 0, Polar: true},
	}

	out := Merge(ds, coords, DefaultSchema())

	c := out.Table("courses")
	assert.Equal(t, 1.0, c[0]["x"])
	assert.Equal(t, 2.0, c[0]["y"])
	assert.NotContains(t, c[0], "r")
	assert.Equal(t, 5.0, c[1]["r"])
	assert.Equal(t, 0.0, c[1]["theta"])
	assert.NotContains(t, c[2], "x", "blank row has no coordinate")

	assert.Equal(t, 1.0, out.Table("courses_program1")[0]["x"])

	r := out.Table("course_requisites")[0]
	assert.Equal(t, 3.0, r["course_x"])
	assert.Equal(t, 4.0, r["course_y"])
	assert.Equal(t, 1.0, r["requisite_x"])
	assert.Equal(t, 2.0, r["requisite_y"])
	assert.NotContains(t, out.Table("course_requisites")[1], "requisite_x")

	p := out.Table("requisites_program1")[0]
	assert.Equal(t, 1.0, p["requisite_x"])

	// The input is untouched.
	assert.NotContains(t, ds.Table("courses")[0], "x")
	assert.NotContains(t, ds.Table("course_requisites")[0], "course_x")
}

func TestClone(t *testing.T) {
	ds := decodeSample(t)
	c := ds.Clone()
	c.Table("courses")[0]["title"] = "changed"
	c.Extra["layout_metadata"].(map[string]any)["algorithm"] = "new"

	assert.Equal(t, "Intro", ds.Table("courses")[0]["title"])
	assert.Equal(t, "old", ds.Extra["layout_metadata"].(map[string]any)["algorithm"])
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"data.json", FormatJSON, false},
		{"DATA.JSON", FormatJSON, false},
		{"data.yaml", FormatYAML, false},
		{"data.yml", FormatYAML, false},
		{"data.xlsx", "", true},
	}
	for _, tt := range tests {
		got, err := FormatFor(tt.path)
		if tt.wantErr {
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat), "FormatFor(%q)", tt.path)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ds := decodeSample(t)

	for _, name := range []string{"out.json", "out.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, WriteFile(path, ds))

			back, err := ReadFile(path)
			require.NoError(t, err)
			courses, reqs := Extract(back, DefaultSchema())
			assert.Equal(t, []string{"S101", "S201"}, courses)
			assert.Len(t, reqs, 4)
			assert.Contains(t, back.Extra, "layout_metadata")
		})
	}
}

func TestReadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadFile(filepath.Join(dir, "missing.json"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound), "got %v", err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))
	_, err = ReadFile(bad)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat), "got %v", err)
}

func TestEncodeEmptyTable(t *testing.T) {
	ds := New()
	ds.Tables["courses"] = nil
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, ds, FormatJSON))
	assert.JSONEq(t, `{"courses": []}`, buf.String())
}
