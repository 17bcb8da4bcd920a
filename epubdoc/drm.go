package epubdoc

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"io"
	"path"
	"strings"
)

// ErrDRMProtected is returned for books whose content cannot be read
// without a license.
var ErrDRMProtected = errors.New("epub: DRM-protected content cannot be read")

// encryptionXML mirrors the structure of META-INF/encryption.xml.
type encryptionXML struct {
	XMLName xml.Name         `xml:"encryption"`
	Entries []encryptionData `xml:"EncryptedData"`
}

type encryptionData struct {
	Method encryptionMethod `xml:"EncryptionMethod"`
	Cipher cipherData       `xml:"CipherData"`
}

type encryptionMethod struct {
	Algorithm string `xml:"Algorithm,attr"`
}

type cipherData struct {
	Reference cipherReference `xml:"CipherReference"`
}

type cipherReference struct {
	URI string `xml:"URI,attr"`
}

// checkForDRM rejects archives whose content files are encrypted.
// Font obfuscation entries are allowed; they protect embedded fonts,
// not the text.
func checkForDRM(zr *zip.Reader) error {
	for _, f := range zr.File {
		switch f.Name {
		case "META-INF/rights.xml":
			// Adobe ADEPT rights file, the book is licensed to a device
			return ErrDRMProtected

		case "META-INF/encryption.xml":
			encrypted, err := hasEncryptedContent(f)
			if err != nil {
				// An unreadable encryption manifest is treated as DRM
				return ErrDRMProtected
			}
			if encrypted {
				return ErrDRMProtected
			}
		}
	}
	return nil
}

// hasEncryptedContent reports whether encryption.xml lists any content
// file under a non-obfuscation algorithm.
func hasEncryptedContent(f *zip.File) (bool, error) {
	rc, err := f.Open()
	if err != nil {
		return false, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return false, err
	}

	var enc encryptionXML
	if err := xml.Unmarshal(data, &enc); err != nil {
		return false, err
	}

	for _, entry := range enc.Entries {
		if isFontObfuscation(entry.Method.Algorithm) {
			continue
		}
		if isContentPath(entry.Cipher.Reference.URI) {
			return true, nil
		}
	}
	return false, nil
}

// isFontObfuscation reports whether the algorithm is one of the Adobe
// or IDPF font mangling schemes rather than real encryption.
func isFontObfuscation(algorithm string) bool {
	if !strings.Contains(algorithm, "obfuscation") {
		return false
	}
	return strings.Contains(algorithm, "adobe.com") || strings.Contains(algorithm, "idpf.org")
}

// isContentPath reports whether the URI refers to a file that carries
// book content, as opposed to a font or image resource.
func isContentPath(uri string) bool {
	switch strings.ToLower(path.Ext(uri)) {
	case ".xhtml", ".html", ".htm", ".xml", ".css":
		return true
	}
	return false
}
