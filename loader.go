package folio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsawler/folio/chunk"
	"github.com/tsawler/folio/csvdoc"
	"github.com/tsawler/folio/docxdoc"
	"github.com/tsawler/folio/epubdoc"
	"github.com/tsawler/folio/format"
	"github.com/tsawler/folio/htmldoc"
	"github.com/tsawler/folio/imgmeta"
	"github.com/tsawler/folio/inspect"
	"github.com/tsawler/folio/mddoc"
	"github.com/tsawler/folio/model"
	"github.com/tsawler/folio/ocr"
	"github.com/tsawler/folio/odtdoc"
	"github.com/tsawler/folio/pdfdoc"
	"github.com/tsawler/folio/pptxdoc"
	"github.com/tsawler/folio/render"
	"github.com/tsawler/folio/textdoc"
	"github.com/tsawler/folio/xlsxdoc"
)

// Loader provides a fluent interface for loading documents and running
// operations over them. Each configuration method returns a new Loader
// instance, so chains are safe to share and fork. Terminal operations
// read the source anew on every call; no file handles are held between
// calls.
type Loader struct {
	// Source: a file to read, or a pre-built document
	filename string
	doc      *model.Document

	// Configuration
	options loadOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a copy of the Loader with copied options.
func (l *Loader) clone() *Loader {
	return &Loader{
		filename: l.filename,
		doc:      l.doc,
		options:  l.options.clone(),
		err:      l.err,
	}
}

// ============================================================================
// Configuration Methods (return new Loader instance)
// ============================================================================

// WithTitle overrides the document title derived from the source.
//
// Example:
//
//	doc, _, err := folio.Open("raw.txt").WithTitle("Field Notes").Document()
func (l *Loader) WithTitle(title string) *Loader {
	nl := l.clone()
	nl.options.title = title
	return nl
}

// WithFormat sets the source format explicitly, bypassing detection.
// Use this when the file extension is missing or misleading.
//
// Example:
//
//	doc, _, err := folio.Open("export.dat").WithFormat(format.CSV).Document()
func (l *Loader) WithFormat(f format.Format) *Loader {
	nl := l.clone()
	nl.options.format = f
	return nl
}

// ProbeImageSizes fills in missing image dimensions by reading the
// referenced files. Only images with a zero or negative width or height
// are probed, and only the missing dimensions are replaced. Relative
// image URLs resolve against the source file's directory; remote URLs
// are not fetched and produce a warning instead.
//
// Example:
//
//	ok, warnings, err := folio.Open("gallery.html").ProbeImageSizes().Validate()
func (l *Loader) ProbeImageSizes() *Loader {
	nl := l.clone()
	nl.options.probeImages = true
	return nl
}

// RecognizeImageAlt fills empty alt text on images by recognizing the
// text in the referenced files. Recognition needs a binary built with
// the ocr tag and a local Tesseract install; without them loading still
// succeeds and a warning reports that recognition is unavailable. As
// with ProbeImageSizes, only local image files are read.
//
// Example:
//
//	doc, warnings, err := folio.Open("scans.html").RecognizeImageAlt().Document()
func (l *Loader) RecognizeImageAlt() *Loader {
	nl := l.clone()
	nl.options.ocrAlt = true
	return nl
}

// ============================================================================
// Terminal Operations (load the document and return results)
// ============================================================================

// Document loads the source and returns the document model.
//
// Returns the document, any warnings encountered during loading, and an
// error if loading failed. Warnings indicate non-fatal issues where
// loading succeeded but results may be imperfect.
//
// Example:
//
//	doc, warnings, err := folio.Open("report.html").Document()
func (l *Loader) Document() (*model.Document, []Warning, error) {
	return l.load()
}

// HTML loads the document and renders every element to HTML in order.
// Paragraph text is emitted verbatim, without escaping.
//
// Example:
//
//	html, warnings, err := folio.Open("notes.md").HTML()
func (l *Loader) HTML() (string, []Warning, error) {
	doc, warnings, err := l.load()
	if err != nil {
		return "", warnings, err
	}

	exporter := render.NewHTMLExporter()
	doc.Accept(exporter)
	return exporter.Result(), warnings, nil
}

// Markdown loads the document and renders it as Markdown blocks.
//
// Example:
//
//	md, warnings, err := folio.Open("report.docx").Markdown()
func (l *Loader) Markdown() (string, []Warning, error) {
	doc, warnings, err := l.load()
	if err != nil {
		return "", warnings, err
	}

	exporter := render.NewMarkdownExporter()
	doc.Accept(exporter)
	return exporter.Result(), warnings, nil
}

// Text loads the document and renders its plain-text content.
//
// Example:
//
//	text, warnings, err := folio.Open("book.epub").Text()
func (l *Loader) Text() (string, []Warning, error) {
	doc, warnings, err := l.load()
	if err != nil {
		return "", warnings, err
	}

	exporter := render.NewTextExporter()
	doc.Accept(exporter)
	return exporter.Result(), warnings, nil
}

// WordCount loads the document and counts words across paragraphs and
// table cells. Words are runs of non-space characters separated by
// spaces.
//
// Example:
//
//	count, warnings, err := folio.Open("article.html").WordCount()
func (l *Loader) WordCount() (int, []Warning, error) {
	doc, warnings, err := l.load()
	if err != nil {
		return 0, warnings, err
	}

	counter := inspect.NewWordCounter()
	doc.Accept(counter)
	return counter.Count(), warnings, nil
}

// Validate loads the document and checks every element against the
// structural rules. The verdict is the conjunction over all elements;
// traversal never stops at the first problem.
//
// Example:
//
//	ok, warnings, err := folio.Open("report.html").Validate()
func (l *Loader) Validate() (bool, []Warning, error) {
	doc, warnings, err := l.load()
	if err != nil {
		return false, warnings, err
	}

	validator := inspect.NewValidator()
	doc.Accept(validator)
	return validator.Valid(), warnings, nil
}

// Stats loads the document and returns summary measurements: element
// counts by kind, word and character totals, and an estimated token
// count.
//
// Example:
//
//	stats, _, err := folio.Open("report.html").Stats()
//	fmt.Println("words:", stats.Words)
func (l *Loader) Stats() (*inspect.Stats, []Warning, error) {
	doc, warnings, err := l.load()
	if err != nil {
		return nil, warnings, err
	}

	stats := inspect.NewStats()
	doc.Accept(stats)
	return stats, warnings, nil
}

// Chunks loads the document and cuts it into retrieval-sized chunks
// using the default configuration.
//
// Example:
//
//	chunks, _, err := folio.Open("manual.docx").Chunks()
//	for _, c := range chunks {
//	    fmt.Println(c.ID, c.Metadata.Section)
//	}
func (l *Loader) Chunks() ([]*chunk.Chunk, []Warning, error) {
	return l.ChunksWithConfig(chunk.DefaultConfig())
}

// ChunksWithConfig loads the document and cuts it into chunks using
// the given configuration.
//
// Example:
//
//	config := chunk.DefaultConfig()
//	config.TargetSize = 500
//	chunks, _, err := folio.Open("manual.docx").ChunksWithConfig(config)
func (l *Loader) ChunksWithConfig(config chunk.Config) ([]*chunk.Chunk, []Warning, error) {
	doc, warnings, err := l.load()
	if err != nil {
		return nil, warnings, err
	}

	return chunk.NewChunker(config).ChunkDocument(doc), warnings, nil
}

// ============================================================================
// Internal helpers
// ============================================================================

// load reads and parses the source, applying configured overrides and
// the image passes.
func (l *Loader) load() (*model.Document, []Warning, error) {
	if l.err != nil {
		return nil, nil, l.err
	}

	var warnings []Warning

	doc := l.doc
	if doc == nil {
		var err error
		doc, err = l.read(&warnings)
		if err != nil {
			return nil, warnings, err
		}
	}

	if l.options.title != "" {
		doc.Title = l.options.title
	}

	if doc.ElementCount() == 0 {
		warnings = append(warnings, Warning{
			Code:    WarnEmptyDocument,
			Message: "document has no elements",
		})
	}

	if l.options.probeImages {
		warnings = append(warnings, l.probeImages(doc)...)
	}

	if l.options.ocrAlt {
		warnings = append(warnings, l.recognizeImageAlt(doc)...)
	}

	return doc, warnings, nil
}

// read parses the file according to the configured or detected format.
func (l *Loader) read(warnings *[]Warning) (*model.Document, error) {
	if l.filename == "" {
		return nil, fmt.Errorf("no filename specified")
	}

	f := l.options.format
	if f == format.Unknown {
		f = format.Detect(l.filename)
	}
	if f == format.Unknown {
		f = l.sniffFormat()
	}
	if f == format.Unknown {
		*warnings = append(*warnings, Warning{
			Code: WarnUnknownFormat,
			Message: fmt.Sprintf("cannot determine format of %s, reading as plain text",
				filepath.Base(l.filename)),
		})
		f = format.Text
	}

	switch f {
	case format.HTML:
		return htmldoc.Open(l.filename)
	case format.Markdown:
		return mddoc.Open(l.filename)
	case format.DOCX:
		return docxdoc.Open(l.filename)
	case format.PDF:
		return pdfdoc.Open(l.filename)
	case format.EPUB:
		return epubdoc.Open(l.filename)
	case format.XLSX:
		return xlsxdoc.Open(l.filename)
	case format.PPTX:
		return pptxdoc.Open(l.filename)
	case format.ODT:
		return odtdoc.Open(l.filename)
	case format.CSV:
		return csvdoc.Open(l.filename)
	case format.Text:
		return textdoc.Open(l.filename)
	default:
		return nil, fmt.Errorf("unsupported file format: %s", f)
	}
}

// sniffFormat inspects file content when the extension is unhelpful.
func (l *Loader) sniffFormat() format.Format {
	fh, err := os.Open(l.filename)
	if err != nil {
		return format.Unknown
	}
	defer fh.Close()

	info, err := fh.Stat()
	if err != nil {
		return format.Unknown
	}

	detected, err := format.DetectFromReader(fh, info.Size())
	if err != nil {
		return format.Unknown
	}
	return detected
}

// probeImages fills missing dimensions on image elements by reading the
// referenced files. Visitors are read-only, so this pass walks the
// element slice directly.
func (l *Loader) probeImages(doc *model.Document) []Warning {
	var warnings []Warning

	baseDir := ""
	if l.filename != "" {
		baseDir = filepath.Dir(l.filename)
	}

	for _, elem := range doc.Elements() {
		img, ok := elem.(*model.Image)
		if !ok {
			continue
		}
		if img.Width > 0 && img.Height > 0 {
			continue
		}
		if img.URL == "" || strings.Contains(img.URL, "://") {
			warnings = append(warnings, Warning{
				Code:    WarnImageProbe,
				Message: fmt.Sprintf("cannot probe image %q: only local files are read", img.URL),
			})
			continue
		}

		path := img.URL
		if !filepath.IsAbs(path) && baseDir != "" {
			path = filepath.Join(baseDir, path)
		}

		size, err := imgmeta.ProbeFile(path)
		if err != nil {
			warnings = append(warnings, Warning{
				Code:    WarnImageProbe,
				Message: fmt.Sprintf("cannot probe image %q: %v", img.URL, err),
			})
			continue
		}

		if img.Width <= 0 {
			img.Width = size.Width
		}
		if img.Height <= 0 {
			img.Height = size.Height
		}
	}

	return warnings
}

// recognizeImageAlt fills empty alt text on image elements by running
// text recognition over the referenced files. The client is only
// created when some image actually needs it.
func (l *Loader) recognizeImageAlt(doc *model.Document) []Warning {
	var candidates []*model.Image
	for _, elem := range doc.Elements() {
		if img, ok := elem.(*model.Image); ok && img.Alt == "" {
			candidates = append(candidates, img)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	var warnings []Warning

	client, err := ocr.New()
	if err != nil {
		return append(warnings, Warning{
			Code:    WarnImageText,
			Message: fmt.Sprintf("cannot recognize image text: %v", err),
		})
	}
	defer client.Close()

	baseDir := ""
	if l.filename != "" {
		baseDir = filepath.Dir(l.filename)
	}

	for _, img := range candidates {
		if img.URL == "" || strings.Contains(img.URL, "://") {
			warnings = append(warnings, Warning{
				Code:    WarnImageText,
				Message: fmt.Sprintf("cannot recognize text in %q: only local files are read", img.URL),
			})
			continue
		}

		path := img.URL
		if !filepath.IsAbs(path) && baseDir != "" {
			path = filepath.Join(baseDir, path)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			warnings = append(warnings, Warning{
				Code:    WarnImageText,
				Message: fmt.Sprintf("cannot recognize text in %q: %v", img.URL, err),
			})
			continue
		}

		text, err := client.ImageText(data)
		if err != nil {
			warnings = append(warnings, Warning{
				Code:    WarnImageText,
				Message: fmt.Sprintf("cannot recognize text in %q: %v", img.URL, err),
			})
			continue
		}
		if text != "" {
			// Alt text is a single line
			img.Alt = strings.Join(strings.Fields(text), " ")
		}
	}

	return warnings
}
