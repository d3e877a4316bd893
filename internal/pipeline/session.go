package pipeline

import (
	"fmt"

	"github.com/XII-A/Edit-KML-Files/internal/kml"
	"github.com/XII-A/Edit-KML-Files/internal/names"
	"github.com/XII-A/Edit-KML-Files/internal/sheet"
)

// Job configures one enrichment run against a loaded document.
type Job struct {
	WorkbookPath string
	Sheet        sheet.Selector
	NameColumn   string
	// NumberColumn, when set, switches key derivation to the sector shape
	// (first ASCII letter of the name cell + "-" + this column).
	NumberColumn string
	ImageColumns []string
	DescColumns  []string
	Stats        *StatMapping
	Labels       StatLabels
	Merge        bool
	BorderColor  string // HTML hex; empty leaves polygon styles alone
}

func (j Job) keyOptions() AggregateOptions {
	key := ColumnKey(j.NameColumn)
	required := []string{j.NameColumn}
	if j.NumberColumn != "" {
		key = SectorKey(j.NameColumn, j.NumberColumn)
		required = append(required, j.NumberColumn)
	}
	return AggregateOptions{
		Key:          key,
		Required:     required,
		ImageColumns: j.ImageColumns,
		DescColumns:  j.DescColumns,
		Stats:        j.Stats,
	}
}

func (j Job) labels() StatLabels {
	if j.Labels == (StatLabels{}) {
		return DefaultStatLabels()
	}
	return j.Labels
}

// Summary is the one-shot result of an update run. Fatal failures surface
// here as Success=false with a message; per-record misses accumulate in
// NotFound without aborting the batch.
type Summary struct {
	Success           bool
	Updated           []string
	NotFound          []string
	ImagesAdded       int
	DescriptionsAdded int
	Converted         int // polygons newly wrapped with a label point
	SkippedGeometry   int // polygons with unparseable coordinates
	Ambiguous         int // damage cells matching more than one category
	Message           string
}

// PreviewEntry describes what one polygon key would receive, without
// mutating anything.
type PreviewEntry struct {
	Key         string
	Found       bool
	MatchedName string
	Images      []string
	Notes       []string
	HasStats    bool
}

// Session owns one loaded KML document for the lifetime of an editing
// session. It replaces the ambient state of an interactive loop: every
// operation goes through the session, single-threaded, no globals.
type Session struct {
	doc        *kml.Document
	onProgress func(Progress)
}

// NewSession loads the document at path. A load failure is fatal: no
// session exists afterwards.
func NewSession(path string) (*Session, error) {
	doc, err := kml.Open(path)
	if err != nil {
		return nil, err
	}
	return &Session{doc: doc}, nil
}

// NewSessionFromDocument wraps an already-parsed document.
func NewSessionFromDocument(doc *kml.Document) *Session {
	return &Session{doc: doc}
}

// SetProgressCallback registers an observer for update progress.
func (s *Session) SetProgressCallback(fn func(Progress)) {
	s.onProgress = fn
}

func (s *Session) progress(p Progress) {
	if s.onProgress != nil {
		p.TotalStages = 4
		s.onProgress(p)
	}
}

// Path returns the path the document was loaded from.
func (s *Session) Path() string {
	return s.doc.Path()
}

// Polygons enumerates the document's polygon records.
func (s *Session) Polygons() []kml.Polygon {
	return s.doc.Polygons()
}

// Save writes the document; an empty path overwrites the source file.
func (s *Session) Save(path string) error {
	return s.doc.Save(path)
}

// Find resolves a polygon by fuzzy name matching: exact after
// normalization first, then case-insensitive.
func (s *Session) Find(name string) (kml.Polygon, bool) {
	polys := s.doc.Polygons()
	candidates := make([]string, len(polys))
	for i, p := range polys {
		candidates[i] = p.Name
	}
	idx := names.Match(name, candidates)
	if idx < 0 {
		return kml.Polygon{}, false
	}
	return polys[idx], true
}

// Info returns the live state of the named polygon.
func (s *Session) Info(name string) (kml.PolygonInfo, bool) {
	p, ok := s.Find(name)
	if !ok {
		return kml.PolygonInfo{}, false
	}
	return s.doc.Info(p), true
}

// UpdatePolygon applies a manual edit to a single polygon: replaces the
// description text, merges or replaces the image list, and labels the
// geometry. Unparseable coordinates skip only the relabeling.
func (s *Session) UpdatePolygon(name, text string, images []string, merge bool) error {
	p, ok := s.Find(name)
	if !ok {
		return fmt.Errorf("%q: %w", name, ErrPolygonNotFound)
	}

	final := images
	if merge {
		final = mergeImages(s.doc.Info(p).Images, images)
	}

	s.doc.EnsureHiddenIconStyle()
	s.doc.SetContent(p, text, final)
	_ = s.doc.Labelize(p) // coordinate failures never abort the edit
	return nil
}

// UpdateFromWorkbook runs the full enrichment pass: read the workbook,
// aggregate rows per polygon key, resolve each key against the document,
// rebuild matched descriptions and image lists, then label every remaining
// bare polygon and optionally apply a uniform border style.
func (s *Session) UpdateFromWorkbook(job Job) *Summary {
	sum := &Summary{}

	s.progress(Progress{Stage: StageReading, StageIndex: 0, Message: "Reading " + job.WorkbookPath})
	tbl, err := sheet.Read(job.WorkbookPath, job.Sheet)
	if err != nil {
		sum.Message = err.Error()
		return sum
	}

	s.progress(Progress{Stage: StageAggregating, StageIndex: 1,
		Message: fmt.Sprintf("Aggregating %d rows", len(tbl.Rows))})
	agg, err := Aggregate(tbl, job.keyOptions())
	if err != nil {
		sum.Message = err.Error()
		return sum
	}

	polys := s.doc.Polygons()
	candidates := make([]string, len(polys))
	for i, p := range polys {
		candidates[i] = p.Name
	}

	labels := job.labels()
	for i, key := range agg.Keys {
		s.progress(Progress{Stage: StageApplying, StageIndex: 2,
			ItemIndex: i + 1, TotalItems: len(agg.Keys),
			Message: fmt.Sprintf("Updating %s", key)})

		idx := names.Match(key, candidates)
		if idx < 0 {
			sum.NotFound = append(sum.NotFound, key)
			continue
		}
		p := polys[idx]
		e := agg.Entries[key]
		info := s.doc.Info(p)

		// Stored names may carry the very marks the matcher tolerates;
		// render and report the clean form.
		display := names.Normalize(p.Name)

		final := e.Images
		if job.Merge {
			final = mergeImages(info.Images, e.Images)
		}
		text := RenderDescription(display, e, info.Description, job.Merge, labels)

		s.doc.EnsureHiddenIconStyle()
		s.doc.SetContent(p, text, final)

		sum.Updated = append(sum.Updated, display)
		sum.ImagesAdded += len(e.Images)
		sum.DescriptionsAdded += len(e.Notes)
		if e.HasStats {
			sum.DescriptionsAdded++
		}
		sum.Ambiguous += e.Ambiguous
	}

	s.progress(Progress{Stage: StageStyling, StageIndex: 3, Message: "Labeling polygons"})
	sum.Converted, sum.SkippedGeometry = s.doc.LabelizeAll()
	if job.BorderColor != "" {
		s.doc.SetUniformBorderStyle(job.BorderColor)
	}

	s.progress(Progress{Stage: StageDone, StageIndex: 4, Message: "Update complete"})
	sum.Success = true
	return sum
}

// Preview reports what an update run would do, without mutating the
// document or the workbook.
func (s *Session) Preview(job Job) ([]PreviewEntry, error) {
	tbl, err := sheet.Read(job.WorkbookPath, job.Sheet)
	if err != nil {
		return nil, err
	}
	agg, err := Aggregate(tbl, job.keyOptions())
	if err != nil {
		return nil, err
	}

	polys := s.doc.Polygons()
	candidates := make([]string, len(polys))
	for i, p := range polys {
		candidates[i] = p.Name
	}

	out := make([]PreviewEntry, 0, len(agg.Keys))
	for _, key := range agg.Keys {
		e := agg.Entries[key]
		entry := PreviewEntry{
			Key:      key,
			Images:   e.Images,
			Notes:    e.Notes,
			HasStats: e.HasStats,
		}
		if idx := names.Match(key, candidates); idx >= 0 {
			entry.Found = true
			entry.MatchedName = names.Normalize(polys[idx].Name)
		}
		out = append(out, entry)
	}
	return out, nil
}

// WriteTemplate writes a blank survey workbook pre-seeded with the
// document's polygon names and the job's column layout.
func (s *Session) WriteTemplate(path string, job Job) error {
	return sheet.WriteTemplate(path, job.NameColumn, job.ImageColumns, job.DescColumns, s.doc.Names())
}

// mergeImages keeps the existing list and appends only fresh URLs not
// already present, preserving relative order. Exact string equality; the
// same URL applied twice never duplicates.
func mergeImages(existing, fresh []string) []string {
	out := append([]string(nil), existing...)
	seen := make(map[string]bool, len(existing))
	for _, u := range existing {
		seen[u] = true
	}
	for _, u := range fresh {
		if !seen[u] {
			out = append(out, u)
			seen[u] = true
		}
	}
	return out
}
