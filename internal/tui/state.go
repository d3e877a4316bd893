package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/XII-A/Edit-KML-Files/internal/config"
	"github.com/XII-A/Edit-KML-Files/internal/kml"
	"github.com/XII-A/Edit-KML-Files/internal/pipeline"
	"github.com/XII-A/Edit-KML-Files/internal/sheet"
)

// Update form fields, in display order. The two rows after the last input
// are the merge toggle and the run/preview buttons.
const (
	fieldWorkbook = iota
	fieldSheet
	fieldNameColumn
	fieldNumberColumn
	fieldImageColumns
	fieldDescColumns
	fieldBorderColor
	formFields
)

const (
	rowMerge = formFields + iota
	rowRun
	rowPreview
	formRows
)

const (
	editFieldText = iota
	editFieldImages
	editFields
)

type promptPurpose int

const (
	promptSave promptPurpose = iota
	promptTemplate
)

type state struct {
	config  *config.Config
	session *pipeline.Session

	kmlInput  textinput.Model
	loadError error

	polygons []kml.Polygon
	cursor   int

	detail     kml.PolygonInfo
	detailBody viewport.Model

	form      []textinput.Model
	formFocus int
	merge     bool

	editForm  []textinput.Model
	editFocus int

	pathInput     textinput.Model
	promptPurpose promptPurpose

	preview  []pipeline.PreviewEntry
	progress *pipeline.Progress
	summary  *pipeline.Summary

	status string
	err    error
}

func newState(cfg *config.Config) *state {
	kmlInput := textinput.New()
	kmlInput.Placeholder = "Path to a .kml file..."
	kmlInput.CharLimit = 512
	kmlInput.Width = 60
	if cfg.KMLPath != "" {
		kmlInput.SetValue(cfg.KMLPath)
	}
	kmlInput.Focus()

	pathInput := textinput.New()
	pathInput.CharLimit = 512
	pathInput.Width = 60

	form := make([]textinput.Model, formFields)
	values := []struct {
		placeholder string
		value       string
	}{
		{"Path to the spreadsheet (.xlsx)", cfg.WorkbookPath},
		{"Sheet name or index (empty uses the first sheet)", cfg.Sheet.String()},
		{"Polygon name column", cfg.NameColumn},
		{"Sector number column (empty matches on names alone)", cfg.NumberColumn},
		{"Image URL columns, comma separated", strings.Join(cfg.ImageColumns, ", ")},
		{"Description columns, comma separated", strings.Join(cfg.DescriptionColumns, ", ")},
		{"Border color, e.g. #FF0000 (empty keeps styles)", cfg.BorderColor},
	}
	for i := range form {
		in := textinput.New()
		in.Placeholder = values[i].placeholder
		in.CharLimit = 512
		in.Width = 54
		if values[i].value != "" {
			in.SetValue(values[i].value)
		}
		form[i] = in
	}

	editForm := make([]textinput.Model, editFields)
	editForm[editFieldText] = textinput.New()
	editForm[editFieldText].Placeholder = "New description (blank clears it)"
	editForm[editFieldText].CharLimit = 2048
	editForm[editFieldText].Width = 54
	editForm[editFieldImages] = textinput.New()
	editForm[editFieldImages].Placeholder = "Image URLs to add, comma separated"
	editForm[editFieldImages].CharLimit = 2048
	editForm[editFieldImages].Width = 54

	return &state{
		config:     cfg,
		kmlInput:   kmlInput,
		pathInput:  pathInput,
		form:       form,
		merge:      cfg.Merge,
		editForm:   editForm,
		detailBody: viewport.New(72, 12),
	}
}

func (s *state) resize(width, height int) {
	s.detailBody.Width = min(width-8, 88)
	s.detailBody.Height = max(height-14, 4)
}

func (s *state) refreshPolygons() {
	if s.session == nil {
		return
	}
	s.polygons = s.session.Polygons()
	if s.cursor >= len(s.polygons) {
		s.cursor = 0
	}
}

func (s *state) focusForm(row int) {
	s.formFocus = row
	for i := range s.form {
		if i == row {
			s.form[i].Focus()
		} else {
			s.form[i].Blur()
		}
	}
}

func (s *state) focusEdit(field int) {
	s.editFocus = field
	for i := range s.editForm {
		if i == field {
			s.editForm[i].Focus()
		} else {
			s.editForm[i].Blur()
		}
	}
}

// jobFromForm snapshots the form into an update job. Stat mapping and
// labels come from the config file; the form covers the per-run choices.
func (s *state) jobFromForm() pipeline.Job {
	job := pipeline.Job{
		WorkbookPath: strings.TrimSpace(s.form[fieldWorkbook].Value()),
		Sheet:        sheet.ParseSelector(strings.TrimSpace(s.form[fieldSheet].Value())),
		NameColumn:   strings.TrimSpace(s.form[fieldNameColumn].Value()),
		NumberColumn: strings.TrimSpace(s.form[fieldNumberColumn].Value()),
		ImageColumns: splitList(s.form[fieldImageColumns].Value()),
		DescColumns:  splitList(s.form[fieldDescColumns].Value()),
		BorderColor:  strings.TrimSpace(s.form[fieldBorderColor].Value()),
		Merge:        s.merge,
		Labels:       s.config.Labels,
	}
	if s.config.Stats != nil {
		job.Stats = s.config.Stats
	}
	return job
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
