package pipeline

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/XII-A/Edit-KML-Files/internal/kml"
	"github.com/XII-A/Edit-KML-Files/internal/sheet"
)

const sessionKML = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
  <Document>
    <Placemark>
      <name>Zone A` + "‏" + `</name>
      <Polygon>
        <outerBoundaryIs>
          <LinearRing>
            <coordinates>0,0,0 2,0,0 2,2,0 0,2,0 0,0,0</coordinates>
          </LinearRing>
        </outerBoundaryIs>
      </Polygon>
    </Placemark>
    <Placemark>
      <name>Zone B</name>
      <Polygon>
        <outerBoundaryIs>
          <LinearRing>
            <coordinates>10,10,0 12,10,0 11,12,0</coordinates>
          </LinearRing>
        </outerBoundaryIs>
      </Polygon>
    </Placemark>
  </Document>
</kml>`

func writeKML(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "area.kml")
	if err := os.WriteFile(path, []byte(sessionKML), 0644); err != nil {
		t.Fatalf("write kml fixture: %v", err)
	}
	return path
}

func writeSurvey(t *testing.T, header []string, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheetName := f.GetSheetName(0)
	for c, h := range header {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			t.Fatalf("set header: %v", err)
		}
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
	path := filepath.Join(t.TempDir(), "survey.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save survey: %v", err)
	}
	return path
}

func simpleJob(workbook string) Job {
	return Job{
		WorkbookPath: workbook,
		NameColumn:   "Name",
		ImageColumns: []string{"Image"},
		DescColumns:  []string{"Desc"},
		Merge:        true,
	}
}

func TestUpdateFromWorkbook(t *testing.T) {
	s, err := NewSession(writeKML(t))
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	workbook := writeSurvey(t,
		[]string{"Name", "Image", "Desc"},
		[][]any{
			{"Zone A", "http://x/1.jpg", "hello"},
			{"Ghost", "http://x/2.jpg", "nobody home"},
		})

	sum := s.UpdateFromWorkbook(simpleJob(workbook))
	if !sum.Success {
		t.Fatalf("update failed: %s", sum.Message)
	}

	if len(sum.Updated) != 1 || sum.Updated[0] != "Zone A" {
		t.Errorf("Updated = %v, want [Zone A]", sum.Updated)
	}
	if len(sum.NotFound) != 1 || sum.NotFound[0] != "Ghost" {
		t.Errorf("NotFound = %v, want [Ghost]", sum.NotFound)
	}
	if sum.ImagesAdded != 1 {
		t.Errorf("ImagesAdded = %d, want 1 (nothing counted for missing keys)", sum.ImagesAdded)
	}
	if sum.DescriptionsAdded != 1 {
		t.Errorf("DescriptionsAdded = %d, want 1", sum.DescriptionsAdded)
	}
	if sum.Converted != 2 || sum.SkippedGeometry != 0 {
		t.Errorf("Converted/Skipped = %d/%d, want 2/0", sum.Converted, sum.SkippedGeometry)
	}

	info, ok := s.Info("Zone A")
	if !ok {
		t.Fatal("Zone A vanished after update")
	}
	if n := strings.Count(info.Description, "<img"); n != 1 {
		t.Errorf("description has %d image tags, want 1:\n%s", n, info.Description)
	}
	if !strings.Contains(info.Description, `src="http://x/1.jpg"`) {
		t.Error("image tag does not reference the sheet URL")
	}
	if !strings.HasSuffix(info.Description, "hello") {
		t.Errorf("description does not end with the note text:\n%s", info.Description)
	}
}

func TestUpdateMergeIdempotentImages(t *testing.T) {
	s, err := NewSession(writeKML(t))
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	workbook := writeSurvey(t,
		[]string{"Name", "Image", "Desc"},
		[][]any{{"Zone A", "http://x/1.jpg", "hello"}})

	job := simpleJob(workbook)
	if sum := s.UpdateFromWorkbook(job); !sum.Success {
		t.Fatalf("first update failed: %s", sum.Message)
	}
	if sum := s.UpdateFromWorkbook(job); !sum.Success {
		t.Fatalf("second update failed: %s", sum.Message)
	}

	info, _ := s.Info("Zone A")
	if len(info.Images) != 1 || info.Images[0] != "http://x/1.jpg" {
		t.Errorf("Images after two merged runs = %v, want a single URL", info.Images)
	}
}

func TestUpdateMissingColumnMutatesNothing(t *testing.T) {
	kmlPath := writeKML(t)
	s, err := NewSession(kmlPath)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	before := docBytes(t, s)

	workbook := writeSurvey(t,
		[]string{"Name", "Image"},
		[][]any{{"Zone A", "http://x/1.jpg"}})

	sum := s.UpdateFromWorkbook(simpleJob(workbook)) // Desc column absent
	if sum.Success {
		t.Fatal("update succeeded despite a missing required column")
	}
	if !strings.Contains(sum.Message, "Desc") {
		t.Errorf("Message = %q, want the missing column named", sum.Message)
	}
	if len(sum.Updated) != 0 {
		t.Errorf("Updated = %v, want none", sum.Updated)
	}
	if !bytes.Equal(before, docBytes(t, s)) {
		t.Error("document mutated despite fatal load error")
	}
}

func TestUpdateUnreadableWorkbook(t *testing.T) {
	s, err := NewSession(writeKML(t))
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	sum := s.UpdateFromWorkbook(simpleJob(filepath.Join(t.TempDir(), "absent.xlsx")))
	if sum.Success || sum.Message == "" {
		t.Errorf("Summary = %+v, want failure with message", sum)
	}
}

func TestUpdateAppliesBorderColor(t *testing.T) {
	s, err := NewSession(writeKML(t))
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	workbook := writeSurvey(t,
		[]string{"Name", "Image", "Desc"},
		[][]any{{"Zone A", "", "hello"}})

	job := simpleJob(workbook)
	job.BorderColor = "#FF0000"
	if sum := s.UpdateFromWorkbook(job); !sum.Success {
		t.Fatalf("update failed: %s", sum.Message)
	}

	out := string(docBytes(t, s))
	if !strings.Contains(out, "ff0000ff") {
		t.Error("converted border color not written")
	}
	if !strings.Contains(out, "shared_polygon_style") {
		t.Error("shared border style not created")
	}
}

func TestUpdateWithStatsMapping(t *testing.T) {
	s, err := NewSession(writeKML(t))
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	workbook := writeSurvey(t,
		[]string{"Sector", "Block", "Image", "Notes", "Floors", "Area", "Apartments", "Repair", "Damage"},
		[][]any{
			{"Zone A stripe", "", "", "", 2, 100, 4, 1000, "safe"},
			{"zone A stripe", "", "", "", 4, 300, 6, 2000, "destroyed"},
		})

	job := Job{
		WorkbookPath: workbook,
		NameColumn:   "Sector",
		NumberColumn: "Block",
		ImageColumns: []string{"Image"},
		DescColumns:  []string{"Notes"},
		Stats:        surveyMapping(),
		Merge:        false,
	}
	// Keys derive to "Z-" (first ASCII letter + empty block id); no polygon
	// is named that, so both rows land in NotFound.
	sum := s.UpdateFromWorkbook(job)
	if !sum.Success {
		t.Fatalf("update failed: %s", sum.Message)
	}
	if len(sum.NotFound) != 1 || sum.NotFound[0] != "Z-" {
		t.Errorf("NotFound = %v, want [Z-]", sum.NotFound)
	}
}

func TestPreviewMutatesNothing(t *testing.T) {
	s, err := NewSession(writeKML(t))
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	before := docBytes(t, s)

	workbook := writeSurvey(t,
		[]string{"Name", "Image", "Desc"},
		[][]any{
			{"Zone A", "http://x/1.jpg", "hello"},
			{"Ghost", "", "x"},
		})

	entries, err := s.Preview(simpleJob(workbook))
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Preview entries = %d, want 2", len(entries))
	}
	if !entries[0].Found || entries[0].MatchedName != "Zone A" {
		t.Errorf("entries[0] = %+v, want match on Zone A", entries[0])
	}
	if entries[1].Found {
		t.Error("Ghost reported as found")
	}

	if !bytes.Equal(before, docBytes(t, s)) {
		t.Error("Preview mutated the document")
	}
}

func TestUpdatePolygonManualEdit(t *testing.T) {
	s, err := NewSession(writeKML(t))
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	if err := s.UpdatePolygon("zone a", "manual note", []string{"http://x/9.jpg"}, false); err != nil {
		t.Fatalf("UpdatePolygon failed: %v", err)
	}
	info, _ := s.Info("Zone A")
	if len(info.Images) != 1 || info.Images[0] != "http://x/9.jpg" {
		t.Errorf("Images = %v", info.Images)
	}
	if !strings.HasSuffix(info.Description, "manual note") {
		t.Errorf("Description = %q", info.Description)
	}

	err = s.UpdatePolygon("Nowhere", "x", nil, false)
	if !errors.Is(err, ErrPolygonNotFound) {
		t.Errorf("err = %v, want ErrPolygonNotFound", err)
	}
}

func TestWriteTemplateFromSession(t *testing.T) {
	s, err := NewSession(writeKML(t))
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	path := filepath.Join(t.TempDir(), "template.xlsx")
	if err := s.WriteTemplate(path, simpleJob("")); err != nil {
		t.Fatalf("WriteTemplate failed: %v", err)
	}

	tbl, err := sheet.Read(path, sheet.Selector{})
	if err != nil {
		t.Fatalf("read template: %v", err)
	}
	if len(tbl.Rows) != 6 {
		t.Errorf("template rows = %d, want 6 (three per polygon)", len(tbl.Rows))
	}
}

func TestSessionSave(t *testing.T) {
	kmlPath := writeKML(t)
	s, err := NewSession(kmlPath)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	out := filepath.Join(t.TempDir(), "out.kml")
	if err := s.Save(out); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	reloaded, err := kml.Open(out)
	if err != nil {
		t.Fatalf("reload saved file: %v", err)
	}
	if len(reloaded.Polygons()) != 2 {
		t.Error("saved document lost polygons")
	}
}

func docBytes(t *testing.T, s *Session) []byte {
	t.Helper()
	data, err := s.doc.Bytes()
	if err != nil {
		t.Fatalf("serialize document: %v", err)
	}
	return data
}
