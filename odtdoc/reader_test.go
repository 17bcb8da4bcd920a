package odtdoc

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/tsawler/folio/model"
)

// odtEntry is one file inside a test ODT archive, in write order.
type odtEntry struct {
	name string
	data string
}

// writeODT builds an ODT file from the given entries and returns its path.
func writeODT(t *testing.T, entries []odtEntry) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "notes.odt")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for _, e := range entries {
		fw, err := w.Create(e.name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write([]byte(e.data)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	return path
}

const testContent = `<?xml version="1.0" encoding="UTF-8"?>
<office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0"
                         xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0"
                         xmlns:table="urn:oasis:names:tc:opendocument:xmlns:table:1.0">
  <office:body>
    <office:text>
      <text:h text:outline-level="1">Field Notes</text:h>
      <text:p>First <text:span>observation</text:span> logged.</text:p>
      <text:list>
        <text:list-item><text:p>north pier</text:p></text:list-item>
        <text:list-item><text:p>south pier</text:p></text:list-item>
      </text:list>
      <table:table table:name="Readings">
        <table:table-column table:number-columns-repeated="2"/>
        <table:table-row>
          <table:table-cell><text:p>Station</text:p></table:table-cell>
          <table:table-cell><text:p>Level</text:p></table:table-cell>
        </table:table-row>
        <table:table-row>
          <table:table-cell><text:p>North</text:p></table:table-cell>
          <table:table-cell><text:p>2.4</text:p></table:table-cell>
        </table:table-row>
      </table:table>
      <text:p/>
    </office:text>
  </office:body>
</office:document-content>`

const testMeta = `<?xml version="1.0" encoding="UTF-8"?>
<office:document-meta xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0"
                      xmlns:dc="http://purl.org/dc/elements/1.1/">
  <office:meta><dc:title>Harbor Log</dc:title></office:meta>
</office:document-meta>`

// testODT returns the entries of a minimal valid text document.
func testODT() []odtEntry {
	return []odtEntry{
		{"mimetype", odtMimetype},
		{"content.xml", testContent},
		{"meta.xml", testMeta},
	}
}

// contentWith wraps body markup in a complete content.xml document.
func contentWith(body string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0"
                         xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0"
                         xmlns:table="urn:oasis:names:tc:opendocument:xmlns:table:1.0">
  <office:body><office:text>` + body + `</office:text></office:body>
</office:document-content>`
}

func TestOpenReadsBodyInOrder(t *testing.T) {
	doc, err := Open(writeODT(t, testODT()))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if doc.Title != "Harbor Log" {
		t.Errorf("Title = %q, want %q", doc.Title, "Harbor Log")
	}
	if doc.ElementCount() != 4 {
		t.Fatalf("ElementCount() = %d, want 4", doc.ElementCount())
	}

	heading, ok := doc.Elements()[0].(*model.Paragraph)
	if !ok {
		t.Fatalf("elements[0] is %T, want *model.Paragraph", doc.Elements()[0])
	}
	if heading.Text != "Field Notes" {
		t.Errorf("heading = %q, want %q", heading.Text, "Field Notes")
	}
	if heading.FontSize != model.HeadingFontSize(1) {
		t.Errorf("heading FontSize = %d, want %d", heading.FontSize, model.HeadingFontSize(1))
	}

	para := doc.Elements()[1].(*model.Paragraph)
	if para.Text != "First observation logged." {
		t.Errorf("paragraph = %q, want span text merged in", para.Text)
	}

	list := doc.Elements()[2].(*model.Paragraph)
	if list.Text != "• north pier\n• south pier" {
		t.Errorf("list = %q, want bullet lines", list.Text)
	}

	table, ok := doc.Elements()[3].(*model.Table)
	if !ok {
		t.Fatalf("elements[3] is %T, want *model.Table", doc.Elements()[3])
	}
	if table.Rows != 2 || table.Columns != 2 {
		t.Errorf("table = %dx%d, want 2x2", table.Rows, table.Columns)
	}
	if got := table.CellAt(1, 1); got != "2.4" {
		t.Errorf("CellAt(1,1) = %q, want %q", got, "2.4")
	}
}

func TestParseRestoresSpacing(t *testing.T) {
	content := contentWith(`<text:p>a<text:s text:c="3"/>b<text:line-break/>c<text:tab/>d</text:p>`)

	doc, err := Open(writeODT(t, []odtEntry{{"content.xml", content}}))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	got := doc.Elements()[0].(*model.Paragraph).Text
	if got != "a   b\nc\td" {
		t.Errorf("text = %q, want %q", got, "a   b\nc\td")
	}
}

func TestParseDropsNotes(t *testing.T) {
	content := contentWith(`<text:p>Tide peaked<text:note text:note-class="footnote">` +
		`<text:note-citation>1</text:note-citation>` +
		`<text:note-body><text:p>At station four.</text:p></text:note-body>` +
		`</text:note>.</text:p>`)

	doc, err := Open(writeODT(t, []odtEntry{{"content.xml", content}}))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if doc.ElementCount() != 1 {
		t.Fatalf("ElementCount() = %d, want 1", doc.ElementCount())
	}
	got := doc.Elements()[0].(*model.Paragraph).Text
	if got != "Tide peaked." {
		t.Errorf("text = %q, want footnote body dropped", got)
	}
}

func TestParseFlattensNestedLists(t *testing.T) {
	content := contentWith(`<text:list>
  <text:list-item><text:p>alpha</text:p>
    <text:list><text:list-item><text:p>beta</text:p></text:list-item></text:list>
  </text:list-item>
  <text:list-item><text:p>gamma</text:p></text:list-item>
</text:list>`)

	doc, err := Open(writeODT(t, []odtEntry{{"content.xml", content}}))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	got := doc.Elements()[0].(*model.Paragraph).Text
	if got != "• alpha\n• beta\n• gamma" {
		t.Errorf("list = %q, want flattened bullets", got)
	}
}

func TestParseTableCellShapes(t *testing.T) {
	content := contentWith(`<table:table>
  <table:table-row>
    <table:table-cell table:number-columns-repeated="2"><text:p>x</text:p></table:table-cell>
    <table:table-cell><text:p>y</text:p></table:table-cell>
  </table:table-row>
  <table:table-row>
    <table:table-cell table:number-columns-spanned="2"><text:p>wide</text:p></table:table-cell>
    <table:covered-table-cell/>
  </table:table-row>
  <table:table-row>
    <table:table-cell table:number-columns-repeated="9"/>
  </table:table-row>
</table:table>`)

	doc, err := Open(writeODT(t, []odtEntry{{"content.xml", content}}))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	table, ok := doc.Elements()[0].(*model.Table)
	if !ok {
		t.Fatalf("elements[0] is %T, want *model.Table", doc.Elements()[0])
	}
	if table.Rows != 3 || table.Columns != 3 {
		t.Fatalf("table = %dx%d, want 3x3", table.Rows, table.Columns)
	}

	checks := []struct {
		row, col int
		want     string
	}{
		{0, 0, "x"},
		{0, 1, "x"},
		{0, 2, "y"},
		{1, 0, "wide"},
		{1, 1, ""},
		{2, 0, ""},
	}
	for _, c := range checks {
		if got := table.CellAt(c.row, c.col); got != c.want {
			t.Errorf("CellAt(%d,%d) = %q, want %q", c.row, c.col, got, c.want)
		}
	}
}

func TestOpenTitleFallsBackToFilename(t *testing.T) {
	entries := testODT()
	entries = entries[:2] // drop meta.xml

	doc, err := Open(writeODT(t, entries))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if doc.Title != "notes" {
		t.Errorf("Title = %q, want %q", doc.Title, "notes")
	}
}

func TestParseRejectsWrongMimetype(t *testing.T) {
	entries := testODT()
	entries[0] = odtEntry{"mimetype", "application/vnd.oasis.opendocument.spreadsheet"}

	if _, err := Open(writeODT(t, entries)); err != ErrInvalidMimetype {
		t.Errorf("Open() error = %v, want ErrInvalidMimetype", err)
	}
}

func TestParseToleratesMissingMimetype(t *testing.T) {
	entries := testODT()
	entries = entries[1:]

	doc, err := Open(writeODT(t, entries))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if doc.ElementCount() == 0 {
		t.Error("ElementCount() = 0, want body elements")
	}
}

func TestParseMissingContent(t *testing.T) {
	entries := []odtEntry{{"mimetype", odtMimetype}}

	if _, err := Open(writeODT(t, entries)); err != ErrNoContent {
		t.Errorf("Open() error = %v, want ErrNoContent", err)
	}
}

func TestParseNoBody(t *testing.T) {
	content := `<?xml version="1.0"?>
<office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0">
  <office:body/>
</office:document-content>`

	if _, err := Open(writeODT(t, []odtEntry{{"content.xml", content}})); err != ErrNoBody {
		t.Errorf("Open() error = %v, want ErrNoBody", err)
	}
}

func TestParseMalformedContent(t *testing.T) {
	entries := []odtEntry{{"content.xml", "<office:document-content"}}

	if _, err := Open(writeODT(t, entries)); err == nil {
		t.Error("Open() expected error for malformed content.xml")
	}
}

func TestOpenRejectsNonZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.odt")
	if err := os.WriteFile(path, []byte("not a zip file"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Open(path); err != ErrInvalidArchive {
		t.Errorf("Open() error = %v, want ErrInvalidArchive", err)
	}
}

func TestOpenNotFound(t *testing.T) {
	if _, err := Open("/nonexistent/notes.odt"); err == nil {
		t.Error("Open() expected error for nonexistent file")
	}
}

func TestParseFromReader(t *testing.T) {
	data, err := os.ReadFile(writeODT(t, testODT()))
	if err != nil {
		t.Fatal(err)
	}

	doc, err := Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if doc.ElementCount() != 4 {
		t.Errorf("ElementCount() = %d, want 4", doc.ElementCount())
	}
}
