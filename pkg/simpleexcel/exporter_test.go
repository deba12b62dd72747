package simpleexcel

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type row struct {
	Title string
	Years float64
}

func TestDataExporter_ProgrammaticSheet(t *testing.T) {
	exporter := NewDataExporter()
	exporter.AddSheet("People").
		AddSection(&SectionConfig{
			Title:      "Positions",
			ShowHeader: true,
			TitleStyle: &StyleTemplate{Font: &FontTemplate{Bold: true}},
			HeaderStyle: &StyleTemplate{
				Font: &FontTemplate{Bold: true, Color: "#FFFFFF"},
				Fill: &FillTemplate{Color: "#4F81BD"},
			},
			Data: []*row{{Title: "SAS Lead", Years: 3.6}, nil, {Title: "Clerk", Years: 12}},
			Columns: []ColumnConfig{
				{FieldName: "Title", Header: "Title", Width: 30},
				{FieldName: "Years", Header: "Years"},
				{FieldName: "Missing", Header: "Missing"},
			},
		})

	data, err := exporter.ToBytes()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("People")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 5)
	assert.Equal(t, "Positions", rows[0][0])
	assert.Equal(t, []string{"Title", "Years", "Missing"}, rows[1])
	assert.Equal(t, []string{"SAS Lead", "3.6"}, rows[2])
	assert.Empty(t, rows[3])
	assert.Equal(t, []string{"Clerk", "12"}, rows[4])

	width, err := f.GetColWidth("People", "A")
	require.NoError(t, err)
	assert.Equal(t, 30.0, width)

	merged, err := f.GetMergeCells("People")
	require.NoError(t, err)
	require.Len(t, merged, 1)
	assert.Equal(t, "A1", merged[0].GetStartAxis())
	assert.Equal(t, "C1", merged[0].GetEndAxis())

	styleID, err := f.GetCellStyle("People", "A2")
	require.NoError(t, err)
	assert.NotZero(t, styleID)
}

func TestDataExporter_MapRows(t *testing.T) {
	exporter := NewDataExporter()
	exporter.AddSheet("Maps").AddSection(&SectionConfig{
		Data: []map[string]interface{}{
			{"Line": 3, "Message": "bad"},
		},
		Columns: []ColumnConfig{
			{FieldName: "Line"},
			{FieldName: "Message"},
		},
	})

	f, err := exporter.BuildExcel()
	require.NoError(t, err)
	defer f.Close()

	a1, _ := f.GetCellValue("Maps", "A1")
	b1, _ := f.GetCellValue("Maps", "B1")
	assert.Equal(t, "3", a1)
	assert.Equal(t, "bad", b1)
}

func TestDataExporter_YamlFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
sheets:
  - name: "First"
    sections:
      - id: "a"
        show_header: true
        columns:
          - field_name: "Title"
            header: "Job"
  - name: "Second"
    sections:
      - id: "b"
        columns:
          - field_name: "Title"
`), 0o644))

	exporter, err := NewDataExporterFromYamlFile(path)
	require.NoError(t, err)
	exporter.BindSectionData("b", []row{{Title: "Bound"}})

	var buf bytes.Buffer
	require.NoError(t, exporter.ToWriter(&buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"First", "Second"}, f.GetSheetList())
	header, _ := f.GetCellValue("First", "A1")
	assert.Equal(t, "Job", header)
	unbound, _ := f.GetCellValue("First", "A2")
	assert.Empty(t, unbound)
	bound, _ := f.GetCellValue("Second", "A1")
	assert.Equal(t, "Bound", bound)
}

func TestDataExporter_Errors(t *testing.T) {
	t.Run("missing yaml file", func(t *testing.T) {
		_, err := NewDataExporterFromYamlFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := NewDataExporterFromYamlConfig("sheets: [")
		assert.Error(t, err)
	})

	t.Run("sheet without name", func(t *testing.T) {
		_, err := NewDataExporterFromYamlConfig("sheets:\n  - sections: []\n")
		assert.Error(t, err)
	})

	t.Run("nothing to export", func(t *testing.T) {
		_, err := NewDataExporter().ToBytes()
		assert.Error(t, err)
	})

	t.Run("unknown sheet", func(t *testing.T) {
		assert.Nil(t, NewDataExporter().GetSheet("nope"))
	})
}
