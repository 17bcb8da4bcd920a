package epubdoc

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"net/url"
	"path"
	"strings"
)

// Package document errors.
var (
	ErrNoOPF      = errors.New("epub: missing package document (OPF)")
	ErrInvalidOPF = errors.New("epub: invalid package document")
	ErrEmptySpine = errors.New("epub: no content in spine")
)

// opfPackage mirrors the parts of the OPF package document needed to
// read a book: the title and the manifest/spine pair that defines
// reading order.
type opfPackage struct {
	XMLName  xml.Name    `xml:"package"`
	Metadata opfMetadata `xml:"metadata"`
	Manifest opfManifest `xml:"manifest"`
	Spine    opfSpine    `xml:"spine"`
}

type opfMetadata struct {
	Title []string `xml:"title"`
}

type opfManifest struct {
	Items []opfItem `xml:"item"`
}

type opfItem struct {
	ID   string `xml:"id,attr"`
	Href string `xml:"href,attr"`
}

type opfSpine struct {
	ItemRefs []opfItemRef `xml:"itemref"`
}

type opfItemRef struct {
	IDRef string `xml:"idref,attr"`
}

// parseOPF parses the package document at opfPath. It returns the book
// title and the archive paths of the spine's content files in reading
// order, resolved against the OPF directory.
func parseOPF(zr *zip.Reader, opfPath string) (string, []string, error) {
	data, err := readArchiveFile(zr, opfPath)
	if err != nil {
		return "", nil, ErrNoOPF
	}

	var pkg opfPackage
	if err := xml.Unmarshal(data, &pkg); err != nil {
		return "", nil, ErrInvalidOPF
	}

	byID := make(map[string]string, len(pkg.Manifest.Items))
	for _, item := range pkg.Manifest.Items {
		byID[item.ID] = item.Href
	}

	baseDir := path.Dir(opfPath)
	if baseDir == "." {
		baseDir = ""
	}

	var hrefs []string
	for _, ref := range pkg.Spine.ItemRefs {
		href, ok := byID[ref.IDRef]
		if !ok || href == "" {
			// Spine entries without a manifest item are ignored
			continue
		}
		hrefs = append(hrefs, resolveHref(baseDir, href))
	}
	if len(hrefs) == 0 {
		return "", nil, ErrEmptySpine
	}

	title := ""
	if len(pkg.Metadata.Title) > 0 {
		title = strings.TrimSpace(pkg.Metadata.Title[0])
	}

	return title, hrefs, nil
}

// resolveHref resolves a manifest href against the OPF base directory.
func resolveHref(baseDir, href string) string {
	if decoded, err := url.QueryUnescape(href); err == nil {
		href = decoded
	}
	if baseDir == "" {
		return href
	}
	return path.Join(baseDir, href)
}
