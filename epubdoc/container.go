package epubdoc

import (
	"archive/zip"
	"encoding/xml"
	"errors"
)

// Container-related errors.
var (
	ErrNoContainer      = errors.New("epub: missing META-INF/container.xml")
	ErrInvalidContainer = errors.New("epub: invalid container.xml")
	ErrNoRootfile       = errors.New("epub: no rootfile in container.xml")
)

// containerXML mirrors the structure of META-INF/container.xml.
type containerXML struct {
	XMLName   xml.Name  `xml:"container"`
	Rootfiles rootfiles `xml:"rootfiles"`
}

type rootfiles struct {
	Rootfile []rootfile `xml:"rootfile"`
}

type rootfile struct {
	FullPath  string `xml:"full-path,attr"`
	MediaType string `xml:"media-type,attr"`
}

// parseContainer locates the package document by reading container.xml.
// It returns the archive path of the OPF file.
func parseContainer(zr *zip.Reader) (string, error) {
	data, err := readArchiveFile(zr, "META-INF/container.xml")
	if err != nil {
		return "", ErrNoContainer
	}

	var container containerXML
	if err := xml.Unmarshal(data, &container); err != nil {
		return "", ErrInvalidContainer
	}

	// Prefer the rootfile declared as a package document
	for _, rf := range container.Rootfiles.Rootfile {
		if rf.MediaType == "application/oebps-package+xml" && rf.FullPath != "" {
			return rf.FullPath, nil
		}
	}

	// Fall back to the first rootfile with a path
	for _, rf := range container.Rootfiles.Rootfile {
		if rf.FullPath != "" {
			return rf.FullPath, nil
		}
	}

	return "", ErrNoRootfile
}
