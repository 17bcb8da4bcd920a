// Package pptxdoc builds documents from PPTX presentations.
package pptxdoc

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/tsawler/folio/model"
)

// Reader-related errors.
var (
	ErrInvalidArchive = errors.New("pptx: invalid or corrupted archive")
	ErrNoPresentation = errors.New("pptx: missing presentation part")
	ErrNoSlides       = errors.New("pptx: no readable slides")
)

// presentationXML describes ppt/presentation.xml. The slide ID list
// carries presentation order; each entry's r:id resolves to a slide part
// through the relationships file.
type presentationXML struct {
	XMLName  xml.Name     `xml:"presentation"`
	SlideIDs []slideIDXML `xml:"sldIdLst>sldId"`
}

type slideIDXML struct {
	RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
}

type relationshipsXML struct {
	XMLName       xml.Name          `xml:"Relationships"`
	Relationships []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID     string `xml:"Id,attr"`
	Target string `xml:"Target,attr"`
}

type corePropsXML struct {
	XMLName xml.Name `xml:"coreProperties"`
	Title   string   `xml:"title"`
}

// Open parses a PPTX file into a document. Slides are read in
// presentation order and concatenated into a single element sequence. The
// document title comes from the presentation metadata, falling back to
// the file name.
func Open(filename string) (*model.Document, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("reading file info: %w", err)
	}

	doc, err := Parse(f, info.Size())
	if err != nil {
		return nil, err
	}
	if doc.Title == "" {
		doc.Title = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	return doc, nil
}

// Parse parses a PPTX archive from r into a document. Slide titles become
// heading paragraphs, body text becomes one paragraph per text paragraph,
// pictures become images and graphic-frame tables keep their cell grid.
func Parse(r io.ReaderAt, size int64) (*model.Document, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, ErrInvalidArchive
	}

	presData, err := readArchiveFile(zr, "ppt/presentation.xml")
	if err != nil {
		return nil, ErrNoPresentation
	}
	var pres presentationXML
	if err := xml.Unmarshal(presData, &pres); err != nil {
		return nil, ErrNoPresentation
	}

	doc := model.NewDocument()
	doc.Title = presentationTitle(zr)

	loaded := 0
	for _, slidePath := range slidePaths(zr, &pres) {
		data, err := readArchiveFile(zr, slidePath)
		if err != nil {
			continue
		}
		elems, err := slideElements(data, slideRels(zr, slidePath))
		if err != nil {
			continue
		}
		for _, elem := range elems {
			doc.AddElement(elem)
		}
		loaded++
	}
	if loaded == 0 {
		return nil, ErrNoSlides
	}

	return doc, nil
}

// slidePaths resolves the slide ID list against the presentation
// relationships. Archives without a resolvable list fall back to slide
// file numbering.
func slidePaths(zr *zip.Reader, pres *presentationXML) []string {
	rels := presentationRels(zr)
	var paths []string
	for _, id := range pres.SlideIDs {
		target := rels[id.RID]
		if target == "" {
			continue
		}
		paths = append(paths, partPath(target))
	}
	if len(paths) > 0 {
		return paths
	}

	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "ppt/slides/slide") &&
			strings.HasSuffix(f.Name, ".xml") &&
			!strings.Contains(f.Name, "_rels") {
			paths = append(paths, f.Name)
		}
	}
	sort.Slice(paths, func(i, j int) bool {
		return slideNumber(paths[i]) < slideNumber(paths[j])
	})
	return paths
}

// slideNumber extracts the numeric part of a path like ppt/slides/slide2.xml.
func slideNumber(p string) int {
	name := strings.TrimSuffix(strings.TrimPrefix(p, "ppt/slides/slide"), ".xml")
	n, _ := strconv.Atoi(name)
	return n
}

// partPath normalizes a relationship target to its archive entry name.
func partPath(target string) string {
	target = strings.TrimPrefix(target, "/")
	if !strings.HasPrefix(target, "ppt/") {
		target = "ppt/" + target
	}
	return target
}

// presentationRels maps the presentation's relationship IDs to targets.
func presentationRels(zr *zip.Reader) map[string]string {
	targets := make(map[string]string)
	data, err := readArchiveFile(zr, "ppt/_rels/presentation.xml.rels")
	if err != nil {
		return targets
	}
	var rels relationshipsXML
	if err := xml.Unmarshal(data, &rels); err != nil {
		return targets
	}
	for _, rel := range rels.Relationships {
		targets[rel.ID] = rel.Target
	}
	return targets
}

// slideRels maps a slide's relationship IDs to targets resolved against
// the slide directory, so "../media/image1.png" becomes "ppt/media/image1.png".
func slideRels(zr *zip.Reader, slidePath string) map[string]string {
	targets := make(map[string]string)
	name := path.Join(path.Dir(slidePath), "_rels", path.Base(slidePath)+".rels")
	data, err := readArchiveFile(zr, name)
	if err != nil {
		return targets
	}
	var rels relationshipsXML
	if err := xml.Unmarshal(data, &rels); err != nil {
		return targets
	}
	for _, rel := range rels.Relationships {
		targets[rel.ID] = path.Join(path.Dir(slidePath), rel.Target)
	}
	return targets
}

// presentationTitle reads the dc:title from the core properties, if present.
func presentationTitle(zr *zip.Reader) string {
	data, err := readArchiveFile(zr, "docProps/core.xml")
	if err != nil {
		return ""
	}
	var props corePropsXML
	if err := xml.Unmarshal(data, &props); err != nil {
		return ""
	}
	return props.Title
}

// readArchiveFile reads a single named file from the archive.
func readArchiveFile(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("file not found: %s", name)
}
