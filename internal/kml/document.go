package kml

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/beevik/etree"
)

// Document is one loaded KML file. It owns the element tree for the
// lifetime of an editing session; there is no concurrent access.
//
// The per-placemark image lists are first-class state: seeded once from
// whatever the file already contains, then maintained by SetContent. Merges
// read this state instead of re-parsing previously rendered markup.
type Document struct {
	tree   *etree.Document
	path   string
	images map[*etree.Element][]string
}

// Polygon is a named placemark containing polygon geometry. Identity is the
// backing element; the name is read at enumeration time.
type Polygon struct {
	Name      string
	placemark *etree.Element
}

// PolygonInfo is the derived view of a polygon's current state. It is
// recomputed from the live tree on every call and never cached.
type PolygonInfo struct {
	Name        string
	Description string
	Images      []string
	MediaLink   string
}

var imgTagPattern = regexp.MustCompile(`(?i)<img[^>]+src=["']([^"']+)["'][^>]*>`)

// Open loads and parses a KML file. A failed load leaves no usable document.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load kml %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load kml %s: %w", path, err)
	}
	doc.path = path
	return doc, nil
}

// Parse builds a document from raw KML bytes.
func Parse(data []byte) (*Document, error) {
	tree := etree.NewDocument()
	if err := tree.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parse kml: %w", err)
	}
	if tree.Root() == nil {
		return nil, errors.New("parse kml: no root element")
	}
	return &Document{
		tree:   ensureDeclaration(tree),
		images: make(map[*etree.Element][]string),
	}, nil
}

// ensureDeclaration guarantees the serialized output carries an XML
// declaration even when the source file lacked one.
func ensureDeclaration(tree *etree.Document) *etree.Document {
	for _, tok := range tree.Child {
		if _, ok := tok.(*etree.ProcInst); ok {
			return tree
		}
	}
	wrapped := etree.NewDocument()
	wrapped.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	wrapped.SetRoot(tree.Root())
	return wrapped
}

// Path returns the path the document was loaded from, if any.
func (d *Document) Path() string {
	return d.path
}

// Save writes the document with two-space indentation. An empty path
// overwrites the source file.
func (d *Document) Save(path string) error {
	if path == "" {
		path = d.path
	}
	if path == "" {
		return errors.New("save kml: no output path")
	}
	d.tree.Indent(2)
	if err := d.tree.WriteToFile(path); err != nil {
		return fmt.Errorf("save kml %s: %w", path, err)
	}
	return nil
}

// Bytes serializes the document without touching disk.
func (d *Document) Bytes() ([]byte, error) {
	d.tree.Indent(2)
	return d.tree.WriteToBytes()
}

// Polygons enumerates every placemark containing polygon geometry, in
// document order. Names have whitespace collapsed. The scan is O(n) and
// runs fresh on every call; no index is maintained across mutations.
func (d *Document) Polygons() []Polygon {
	var out []Polygon
	for _, pm := range d.tree.FindElements("//Placemark") {
		if pm.FindElement(".//Polygon") == nil {
			continue
		}
		name := "Unnamed Polygon"
		if el := pm.SelectElement("name"); el != nil {
			if collapsed := strings.Join(strings.Fields(el.Text()), " "); collapsed != "" {
				name = collapsed
			}
		}
		out = append(out, Polygon{Name: name, placemark: pm})
	}
	return out
}

// Names returns the polygon names in document order.
func (d *Document) Names() []string {
	polys := d.Polygons()
	names := make([]string, len(polys))
	for i, p := range polys {
		names[i] = p.Name
	}
	return names
}

// Info reads the polygon's current description, its tracked image list, and
// the media link from ExtendedData when one exists. Description and media
// link come from the live tree on every call.
func (d *Document) Info(p Polygon) PolygonInfo {
	info := PolygonInfo{Name: p.Name}

	if desc := p.placemark.FindElement(".//description"); desc != nil {
		info.Description = desc.Text()
	}
	info.Images = append(info.Images, d.imagesOf(p.placemark)...)

	if v := p.placemark.FindElement(".//Data[@name='gx_media_links']/value"); v != nil {
		info.MediaLink = strings.TrimSpace(v.Text())
	}

	return info
}

// imagesOf returns the tracked image list for a placemark, seeding it from
// the pre-existing description on first access. Content written by an
// earlier run (or another tool) is recovered exactly once; after that the
// list is maintained by SetContent rather than scraped back out of markup.
func (d *Document) imagesOf(pm *etree.Element) []string {
	if urls, ok := d.images[pm]; ok {
		return urls
	}
	var urls []string
	if desc := pm.FindElement(".//description"); desc != nil {
		for _, m := range imgTagPattern.FindAllStringSubmatch(desc.Text(), -1) {
			urls = append(urls, m[1])
		}
	}
	d.images[pm] = urls
	return urls
}
