package pipeline

import (
	"fmt"
	"regexp"
	"strings"
)

// StatLabels are the rendered labels of the statistics block. They are
// operator configuration (the field teams label their maps in their own
// language), defaulting to English.
type StatLabels struct {
	Name          string `yaml:"name"`
	Buildings     string `yaml:"buildings"`
	AvgFloors     string `yaml:"avg_floors"`
	AvgArea       string `yaml:"avg_area"`
	AvgApartments string `yaml:"avg_apartments"`
	RepairTotal   string `yaml:"repair_total"`
	Safe          string `yaml:"safe"`
	Partial       string `yaml:"partial"`
	Damaged       string `yaml:"damaged"`
	Destroyed     string `yaml:"destroyed"`
}

// DefaultStatLabels returns the English label set.
func DefaultStatLabels() StatLabels {
	return StatLabels{
		Name:          "Housing block",
		Buildings:     "Buildings",
		AvgFloors:     "Average floors per building",
		AvgArea:       "Average area per building (m)",
		AvgApartments: "Average apartments per building",
		RepairTotal:   "Estimated total repair cost",
		Safe:          "Safe buildings",
		Partial:       "Partially damaged buildings",
		Damaged:       "Fully damaged buildings",
		Destroyed:     "Destroyed buildings",
	}
}

var markupTag = regexp.MustCompile(`<[^>]+>`)

// stripMarkup removes markup tags and collapses whitespace, recovering the
// plain text carried forward from an existing description.
func stripMarkup(s string) string {
	return strings.Join(strings.Fields(markupTag.ReplaceAllString(s, "")), " ")
}

// RenderDescription formats one polygon's aggregated data into the
// description text. With merge set and a non-empty existing description,
// its tag-stripped text is carried forward as a prefix. When statistics
// were accumulated, the block is a fixed sequence of labeled lines joined
// by <br/>; sum slots are averaged over the building count with floor
// division, and a zero denominator yields 0 instead of faulting. Without
// statistics the free-text notes are joined with blank lines.
//
// Image tags are never rendered here; embedding images is the document
// mutation's job.
func RenderDescription(polygonName string, e *Entry, existing string, merge bool, labels StatLabels) string {
	var prefix string
	if merge && existing != "" {
		prefix = stripMarkup(existing)
	}

	if !e.HasStats {
		parts := make([]string, 0, len(e.Notes)+1)
		if prefix != "" {
			parts = append(parts, prefix)
		}
		parts = append(parts, e.Notes...)
		return strings.Join(parts, "\n\n")
	}

	buildings := e.Stats[SlotBuildings]
	avg := func(sum int) int {
		if buildings == 0 {
			return 0
		}
		return sum / buildings
	}

	lines := []string{
		labels.Name + ": " + polygonName,
		fmt.Sprintf("%s: %d", labels.Buildings, buildings),
		fmt.Sprintf("%s: %d", labels.AvgFloors, avg(e.Stats[SlotFloorSum])),
		fmt.Sprintf("%s: %d", labels.AvgArea, avg(e.Stats[SlotAreaSum])),
		fmt.Sprintf("%s: %d", labels.AvgApartments, avg(e.Stats[SlotApartmentSum])),
		fmt.Sprintf("%s: %d", labels.RepairTotal, e.Stats[SlotRepairSum]),
		fmt.Sprintf("%s: %d", labels.Safe, e.Stats[SlotSafe]),
		fmt.Sprintf("%s: %d", labels.Partial, e.Stats[SlotPartial]),
		fmt.Sprintf("%s: %d", labels.Damaged, e.Stats[SlotDamaged]),
		fmt.Sprintf("%s: %d", labels.Destroyed, e.Stats[SlotDestroyed]),
	}
	block := strings.Join(lines, "<br/>")

	if prefix != "" {
		return prefix + "<br/>" + block
	}
	return block
}
