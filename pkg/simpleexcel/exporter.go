package simpleexcel

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// Types
// =============================================================================

// DataExporter is the main entry point for exporting data.
type DataExporter struct {
	template *ReportTemplate
	// data holds data bound to specific section IDs (for YAML flow)
	data map[string]interface{}
	// sheets holds manually added sheets (for programmatic flow)
	sheets []*SheetBuilder
}

// ReportTemplate represents the YAML structure.
type ReportTemplate struct {
	Sheets []SheetTemplate `yaml:"sheets"`
}

// SheetTemplate represents a sheet in the YAML.
type SheetTemplate struct {
	Name     string          `yaml:"name"`
	Sections []SectionConfig `yaml:"sections"`
}

// SectionConfig defines a block of rows in a sheet: optional title, optional
// header row, then one row per element of Data.
type SectionConfig struct {
	ID          string         `yaml:"id"`
	Title       string         `yaml:"title"`
	Data        interface{}    `yaml:"-"` // bound at runtime
	ShowHeader  bool           `yaml:"show_header"`
	TitleStyle  *StyleTemplate `yaml:"title_style"`
	HeaderStyle *StyleTemplate `yaml:"header_style"`
	Columns     []ColumnConfig `yaml:"columns"`
}

// ColumnConfig defines a column in a section.
type ColumnConfig struct {
	FieldName string  `yaml:"field_name"` // struct field name or map key
	Header    string  `yaml:"header"`
	Width     float64 `yaml:"width"`
}

// StyleTemplate defines basic styling.
type StyleTemplate struct {
	Font *FontTemplate `yaml:"font"`
	Fill *FillTemplate `yaml:"fill"`
}

type FontTemplate struct {
	Bold  bool   `yaml:"bold"`
	Color string `yaml:"color"` // hex color
}

type FillTemplate struct {
	Color string `yaml:"color"` // hex color
}

// =============================================================================
// Constructors
// =============================================================================

func NewDataExporter() *DataExporter {
	return &DataExporter{
		data:   make(map[string]interface{}),
		sheets: []*SheetBuilder{},
	}
}

func NewDataExporterFromYamlFile(path string) (*DataExporter, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open yaml file: %w", err)
	}
	defer f.Close()
	return newDataExporterFromYaml(f)
}

func NewDataExporterFromYamlConfig(config string) (*DataExporter, error) {
	return newDataExporterFromYaml(strings.NewReader(config))
}

func newDataExporterFromYaml(r io.Reader) (*DataExporter, error) {
	var tmpl ReportTemplate
	if err := yaml.NewDecoder(r).Decode(&tmpl); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	for _, sheet := range tmpl.Sheets {
		if sheet.Name == "" {
			return nil, fmt.Errorf("decode yaml: sheet name is required")
		}
	}

	e := NewDataExporter()
	e.template = &tmpl
	return e, nil
}

// =============================================================================
// Fluent API
// =============================================================================

// AddSheet starts a new sheet builder.
func (e *DataExporter) AddSheet(name string) *SheetBuilder {
	sb := &SheetBuilder{
		exporter: e,
		name:     name,
		sections: []*SectionConfig{},
	}
	e.sheets = append(e.sheets, sb)
	return sb
}

// GetSheet returns a builder for the named sheet so programmatic sections can
// be appended after the ones declared in the YAML template. It returns nil when
// no such sheet exists.
func (e *DataExporter) GetSheet(name string) *SheetBuilder {
	for _, sb := range e.sheets {
		if sb.name == name {
			return sb
		}
	}
	if e.template == nil {
		return nil
	}
	for _, st := range e.template.Sheets {
		if st.Name == name {
			return e.AddSheet(name)
		}
	}
	return nil
}

// BindSectionData binds data to a section ID (for YAML-based export).
func (e *DataExporter) BindSectionData(id string, data interface{}) *DataExporter {
	e.data[id] = data
	return e
}

// BuildExcel renders every sheet into a new workbook. Template sheets come
// first; programmatic sections for a template sheet are rendered below its
// template sections. The caller owns the returned file.
func (e *DataExporter) BuildExcel() (*excelize.File, error) {
	f := excelize.NewFile()

	order := []string{}
	sections := map[string][]*SectionConfig{}
	addSheet := func(name string) {
		if _, ok := sections[name]; !ok {
			order = append(order, name)
			sections[name] = []*SectionConfig{}
		}
	}

	if e.template != nil {
		for i := range e.template.Sheets {
			st := &e.template.Sheets[i]
			addSheet(st.Name)
			for j := range st.Sections {
				sec := st.Sections[j]
				if data, ok := e.data[sec.ID]; ok {
					sec.Data = data
				}
				sections[st.Name] = append(sections[st.Name], &sec)
			}
		}
	}
	for _, sb := range e.sheets {
		addSheet(sb.name)
		sections[sb.name] = append(sections[sb.name], sb.sections...)
	}

	if len(order) == 0 {
		return nil, fmt.Errorf("no sheets to export")
	}

	for i, name := range order {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				f.Close()
				return nil, fmt.Errorf("rename sheet %q: %w", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("create sheet %q: %w", name, err)
		}
		if err := renderSections(f, name, sections[name]); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}

// ToBytes exports the Excel file to an in-memory byte slice.
func (e *DataExporter) ToBytes() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := e.ToWriter(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToWriter writes the Excel file to the provided io.Writer.
func (e *DataExporter) ToWriter(w io.Writer) error {
	f, err := e.BuildExcel()
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteTo(w)
	return err
}

// =============================================================================
// SheetBuilder
// =============================================================================

type SheetBuilder struct {
	exporter *DataExporter
	name     string
	sections []*SectionConfig
}

func (sb *SheetBuilder) AddSection(config *SectionConfig) *SheetBuilder {
	sb.sections = append(sb.sections, config)
	return sb
}

func (sb *SheetBuilder) Build() *DataExporter {
	return sb.exporter
}

// =============================================================================
// Rendering Logic
// =============================================================================

// renderSections stacks sections vertically with one empty row between them.
func renderSections(f *excelize.File, sheet string, sections []*SectionConfig) error {
	row := 1

	for _, sec := range sections {
		if sec.Title != "" {
			cell, _ := excelize.CoordinatesToCellName(1, row)
			if err := f.SetCellValue(sheet, cell, sec.Title); err != nil {
				return fmt.Errorf("write title %q: %w", sec.Title, err)
			}
			if sec.TitleStyle != nil {
				styleID, err := createStyle(f, sec.TitleStyle)
				if err != nil {
					return err
				}
				endCell := cell
				if len(sec.Columns) > 1 {
					endCell, _ = excelize.CoordinatesToCellName(len(sec.Columns), row)
					if err := f.MergeCell(sheet, cell, endCell); err != nil {
						return fmt.Errorf("merge title %q: %w", sec.Title, err)
					}
				}
				f.SetCellStyle(sheet, cell, endCell, styleID)
			}
			row++
		}

		for i, col := range sec.Columns {
			if col.Width > 0 {
				colName, _ := excelize.ColumnNumberToName(i + 1)
				f.SetColWidth(sheet, colName, colName, col.Width)
			}
		}

		if sec.ShowHeader && len(sec.Columns) > 0 {
			headerStyle := -1
			if sec.HeaderStyle != nil {
				id, err := createStyle(f, sec.HeaderStyle)
				if err != nil {
					return err
				}
				headerStyle = id
			}
			for i, col := range sec.Columns {
				cell, _ := excelize.CoordinatesToCellName(i+1, row)
				f.SetCellValue(sheet, cell, col.Header)
				if headerStyle >= 0 {
					f.SetCellStyle(sheet, cell, cell, headerStyle)
				}
			}
			row++
		}

		dataVal := reflect.ValueOf(sec.Data)
		if dataVal.Kind() == reflect.Slice {
			for i := 0; i < dataVal.Len(); i++ {
				item := dataVal.Index(i)
				for j, col := range sec.Columns {
					cell, _ := excelize.CoordinatesToCellName(j+1, row)
					if err := f.SetCellValue(sheet, cell, extractValue(item, col.FieldName)); err != nil {
						return fmt.Errorf("write %s row %d: %w", sec.ID, i+1, err)
					}
				}
				row++
			}
		}

		// Spacing between sections
		row++
	}

	return nil
}

func extractValue(item reflect.Value, fieldName string) interface{} {
	for item.Kind() == reflect.Ptr || item.Kind() == reflect.Interface {
		if item.IsNil() {
			return ""
		}
		item = item.Elem()
	}

	switch item.Kind() {
	case reflect.Struct:
		f := item.FieldByName(fieldName)
		if f.IsValid() && f.CanInterface() {
			return f.Interface()
		}
	case reflect.Map:
		if item.Type().Key().Kind() != reflect.String {
			return ""
		}
		v := item.MapIndex(reflect.ValueOf(fieldName).Convert(item.Type().Key()))
		if v.IsValid() && v.CanInterface() {
			return v.Interface()
		}
	}
	return ""
}

func createStyle(f *excelize.File, tmpl *StyleTemplate) (int, error) {
	style := &excelize.Style{}
	if tmpl.Font != nil {
		style.Font = &excelize.Font{
			Bold:  tmpl.Font.Bold,
			Color: strings.TrimPrefix(tmpl.Font.Color, "#"),
		}
	}
	if tmpl.Fill != nil {
		style.Fill = excelize.Fill{
			Type:    "pattern",
			Color:   []string{strings.TrimPrefix(tmpl.Fill.Color, "#")},
			Pattern: 1,
		}
	}
	id, err := f.NewStyle(style)
	if err != nil {
		return 0, fmt.Errorf("create style: %w", err)
	}
	return id, nil
}
