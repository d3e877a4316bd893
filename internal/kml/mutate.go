package kml

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// Shared style ids written into the output document. These are wire
// constants: existing files produced by earlier runs reference them.
const (
	hiddenIconStyleID = "noIconStyle"
	borderStyleID     = "shared_polygon_style"
)

// SetContent rebuilds the polygon's description: one image tag per URL,
// a separator, then the rendered text. Prior content is fully replaced.
func (d *Document) SetContent(p Polygon, text string, images []string) {
	desc := p.placemark.FindElement(".//description")
	if desc == nil {
		desc = p.placemark.CreateElement("description")
	}

	var b strings.Builder
	for _, u := range images {
		b.WriteString(`<img src="` + u + `" height="200" width="auto" /><br>`)
	}
	if len(images) > 0 {
		b.WriteString("<br>")
	}
	b.WriteString(text)

	desc.SetText(b.String())
	d.images[p.placemark] = append([]string(nil), images...)
}

// container returns the top-level Document element, creating it as the
// root's first child when absent.
func (d *Document) container() *etree.Element {
	root := d.tree.Root()
	if el := root.SelectElement("Document"); el != nil {
		return el
	}
	el := etree.NewElement("Document")
	root.InsertChildAt(0, el)
	return el
}

// EnsureHiddenIconStyle creates the shared invisible-marker style used by
// label points. Created at most once per document; safe to call repeatedly.
func (d *Document) EnsureHiddenIconStyle() {
	doc := d.container()
	if doc.FindElement("./Style[@id='" + hiddenIconStyleID + "']") != nil {
		return
	}
	style := doc.CreateElement("Style")
	style.CreateAttr("id", hiddenIconStyleID)
	style.CreateElement("IconStyle").CreateElement("scale").SetText("0")
}

// Labelize wraps the polygon's bare geometry in a MultiGeometry paired with
// a centroid label point and points the placemark at the hidden-icon style.
// Already-wrapped placemarks are left untouched, so repeated runs never
// double-wrap. Returns ErrMalformedCoordinates (wrapped) when the
// coordinate string cannot be parsed.
func (d *Document) Labelize(p Polygon) error {
	pm := p.placemark
	if pm.FindElement(".//MultiGeometry") != nil {
		return nil
	}
	poly := pm.FindElement(".//Polygon")
	if poly == nil {
		return nil
	}

	var coordText string
	if coords := poly.FindElement(".//coordinates"); coords != nil {
		coordText = coords.Text()
	}
	centroid, err := Centroid(coordText)
	if err != nil {
		return fmt.Errorf("placemark %q: %w", p.Name, err)
	}

	d.EnsureHiddenIconStyle()

	multi := etree.NewElement("MultiGeometry")
	multi.AddChild(poly) // reparents the polygon under the wrapper
	point := multi.CreateElement("Point")
	point.CreateElement("coordinates").SetText(centroid)
	pm.AddChild(multi)

	styleURL := pm.SelectElement("styleUrl")
	if styleURL == nil {
		styleURL = pm.CreateElement("styleUrl")
	}
	styleURL.SetText("#" + hiddenIconStyleID)
	return nil
}

// LabelizeAll converts every remaining unlabeled polygon. Coordinate
// failures are isolated per polygon: the placemark is skipped and the pass
// continues. Returns the number converted and the number skipped.
func (d *Document) LabelizeAll() (converted, skipped int) {
	for _, p := range d.Polygons() {
		wasWrapped := p.placemark.FindElement(".//MultiGeometry") != nil
		if err := d.Labelize(p); err != nil {
			skipped++
			continue
		}
		if !wasWrapped {
			converted++
		}
	}
	return converted, skipped
}

// SetUniformBorderStyle installs a shared border style (converted color,
// width 2.5, transparent fill) at Document level and applies it to every
// polygon whose name contains an ASCII letter. Those placemarks lose their
// inline styles; polygons without an ASCII letter keep their styling.
func (d *Document) SetUniformBorderStyle(htmlColor string) {
	kmlColor := HTMLColorToKML(htmlColor)
	doc := d.container()

	style := doc.FindElement("./Style[@id='" + borderStyleID + "']")
	if style == nil {
		style = etree.NewElement("Style")
		style.CreateAttr("id", borderStyleID)
		doc.InsertChildAt(0, style)
	}

	line := ensureChild(style, "LineStyle")
	ensureChild(line, "color").SetText(kmlColor)
	ensureChild(line, "width").SetText("2.5")

	poly := ensureChild(style, "PolyStyle")
	ensureChild(poly, "outline").SetText("1")
	ensureChild(poly, "fill").SetText("0")

	for _, p := range d.Polygons() {
		if !containsASCIILetter(p.Name) {
			continue
		}
		for _, inline := range p.placemark.SelectElements("Style") {
			p.placemark.RemoveChild(inline)
		}
		styleURL := p.placemark.SelectElement("styleUrl")
		if styleURL == nil {
			styleURL = p.placemark.CreateElement("styleUrl")
		}
		styleURL.SetText("#" + borderStyleID)
	}
}

func ensureChild(parent *etree.Element, tag string) *etree.Element {
	if el := parent.SelectElement(tag); el != nil {
		return el
	}
	return parent.CreateElement(tag)
}

func containsASCIILetter(s string) bool {
	for _, r := range s {
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
			return true
		}
	}
	return false
}
