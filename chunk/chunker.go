package chunk

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/folio/model"
)

// Config controls how documents are cut into chunks.
type Config struct {
	// TargetSize is the preferred chunk size in characters. A block
	// that would push the current chunk past it starts a new chunk.
	TargetSize int

	// MaxSize is the hard character limit. Paragraphs longer than this
	// split at sentence boundaries; tables never split.
	MaxSize int

	// MinSize is the smallest chunk worth keeping on its own. A final
	// chunk that comes out smaller merges into its predecessor when
	// both share a section and the result stays under MaxSize.
	MinSize int

	// SplitOnHeadings starts a new chunk at section headings.
	SplitOnHeadings bool

	// SplitLevel is the deepest heading level that starts a new chunk:
	// 1 splits only on top-level headings, 6 on every heading.
	SplitLevel int

	// IDPrefix prefixes generated chunk IDs.
	IDPrefix string
}

// DefaultConfig returns the configuration used by the fluent API:
// 1000-character chunks capped at 2000, splitting on headings down to
// level 3.
func DefaultConfig() Config {
	return Config{
		TargetSize:      1000,
		MaxSize:         2000,
		MinSize:         100,
		SplitOnHeadings: true,
		SplitLevel:      3,
		IDPrefix:        "chunk",
	}
}

// Chunker cuts documents into chunks according to its configuration.
type Chunker struct {
	config Config
}

// NewChunker creates a chunker. Zero numeric and string fields fall
// back to their defaults; SplitOnHeadings is taken as given, so start
// from DefaultConfig to get heading splits.
func NewChunker(config Config) *Chunker {
	def := DefaultConfig()
	if config.TargetSize <= 0 {
		config.TargetSize = def.TargetSize
	}
	if config.MaxSize <= 0 {
		config.MaxSize = def.MaxSize
	}
	if config.MaxSize < config.TargetSize {
		config.MaxSize = config.TargetSize
	}
	if config.MinSize < 0 {
		config.MinSize = 0
	}
	if config.SplitLevel <= 0 {
		config.SplitLevel = def.SplitLevel
	}
	if config.IDPrefix == "" {
		config.IDPrefix = def.IDPrefix
	}
	return &Chunker{config: config}
}

// ChunkDocument cuts the document's elements, in order, into chunks.
// Images contribute their alt text and set the HasImage flag; a chunk
// only exists once it holds some text.
func (c *Chunker) ChunkDocument(doc *model.Document) []*Chunk {
	var chunks []*Chunk

	cur := &builder{}
	flush := func() {
		if ch := c.finish(doc.Title, cur); ch != nil {
			chunks = append(chunks, ch)
		}
		cur = &builder{section: cur.section}
	}

	for _, elem := range doc.Elements() {
		switch e := elem.(type) {
		case *model.Paragraph:
			level := headingLevel(e)
			if level > 0 && c.config.SplitOnHeadings && level <= c.config.SplitLevel {
				flush()
				cur.section = e.Text
				cur.add(e.Text, model.ElementTypeParagraph)
				continue
			}
			for _, piece := range c.pieces(e.Text) {
				if cur.size > 0 && cur.size+utf8.RuneCountInString(piece) > c.config.TargetSize {
					flush()
				}
				cur.add(piece, model.ElementTypeParagraph)
			}
		case *model.Image:
			cur.addImage(e)
		case *model.Table:
			md := strings.TrimRight(e.ToMarkdown(), "\n")
			if md == "" {
				continue
			}
			if cur.size > 0 && cur.size+utf8.RuneCountInString(md) > c.config.TargetSize {
				flush()
			}
			cur.addTable(e, md)
		}
	}
	flush()

	chunks = c.mergeShortTail(chunks)

	for i, ch := range chunks {
		ch.ID = fmt.Sprintf("%s_%d", c.config.IDPrefix, i)
		ch.Metadata.Index = i
		ch.Metadata.Total = len(chunks)
	}

	return chunks
}

// pieces returns the text whole when it fits under MaxSize, and
// otherwise splits it at sentence boundaries into pieces packed up to
// TargetSize.
func (c *Chunker) pieces(text string) []string {
	if utf8.RuneCountInString(text) <= c.config.MaxSize {
		return []string{text}
	}

	var out []string
	var sb strings.Builder
	size := 0

	emit := func() {
		if sb.Len() > 0 {
			out = append(out, sb.String())
			sb.Reset()
			size = 0
		}
	}

	for _, sentence := range splitSentences(text) {
		n := utf8.RuneCountInString(sentence)
		if n > c.config.MaxSize {
			emit()
			out = append(out, splitWords(sentence, c.config.TargetSize)...)
			continue
		}
		if size > 0 && size+n+1 > c.config.TargetSize {
			emit()
		}
		if sb.Len() > 0 {
			sb.WriteString(" ")
			size++
		}
		sb.WriteString(sentence)
		size += n
	}
	emit()

	return out
}

// finish builds a chunk from the accumulated blocks, or nil when no
// text accumulated.
func (c *Chunker) finish(title string, b *builder) *Chunk {
	if len(b.blocks) == 0 {
		return nil
	}

	text := strings.Join(b.blocks, "\n\n")
	return &Chunk{
		Text:            text,
		TextWithContext: contextualText(text, b.section),
		Metadata: Metadata{
			DocumentTitle:   title,
			Section:         b.section,
			ElementTypes:    b.types,
			HasTable:        b.hasTable,
			HasImage:        b.hasImage,
			CharCount:       utf8.RuneCountInString(text),
			WordCount:       b.words,
			EstimatedTokens: int(float64(b.words) * 1.33),
		},
	}
}

// mergeShortTail folds a final chunk smaller than MinSize into its
// predecessor.
func (c *Chunker) mergeShortTail(chunks []*Chunk) []*Chunk {
	if c.config.MinSize <= 0 || len(chunks) < 2 {
		return chunks
	}
	last := chunks[len(chunks)-1]
	prev := chunks[len(chunks)-2]
	if last.Metadata.CharCount >= c.config.MinSize {
		return chunks
	}
	if last.Metadata.Section != prev.Metadata.Section {
		return chunks
	}
	if prev.Metadata.CharCount+last.Metadata.CharCount+2 > c.config.MaxSize {
		return chunks
	}

	text := prev.Text + "\n\n" + last.Text
	meta := prev.Metadata
	meta.HasTable = prev.Metadata.HasTable || last.Metadata.HasTable
	meta.HasImage = prev.Metadata.HasImage || last.Metadata.HasImage
	meta.ElementTypes = unionTypes(prev.Metadata.ElementTypes, last.Metadata.ElementTypes)
	meta.CharCount = utf8.RuneCountInString(text)
	meta.WordCount = prev.Metadata.WordCount + last.Metadata.WordCount
	meta.EstimatedTokens = int(float64(meta.WordCount) * 1.33)

	merged := &Chunk{
		Text:            text,
		TextWithContext: contextualText(text, meta.Section),
		Metadata:        meta,
	}
	return append(chunks[:len(chunks)-2], merged)
}

// unionTypes appends the names in extra that a is missing, keeping
// first-seen order.
func unionTypes(a, extra []string) []string {
	out := a
	for _, name := range extra {
		seen := false
		for _, have := range out {
			if have == name {
				seen = true
				break
			}
		}
		if !seen {
			out = append(out, name)
		}
	}
	return out
}

// headingLevel maps a paragraph font size back to its heading level, or
// 0 when the size is not one of the heading sizes.
func headingLevel(p *model.Paragraph) int {
	for level := 1; level <= 6; level++ {
		if p.FontSize == model.HeadingFontSize(level) {
			return level
		}
	}
	return 0
}

// builder accumulates the blocks of the chunk being assembled.
type builder struct {
	section  string
	blocks   []string
	types    []string
	hasTable bool
	hasImage bool
	size     int
	words    int
}

func (b *builder) add(text string, t model.ElementType) {
	b.blocks = append(b.blocks, text)
	b.size += utf8.RuneCountInString(text) + 2
	b.words += countWords(text)
	b.addType(t)
}

// addImage records the image; only its alt text contributes to the
// chunk body.
func (b *builder) addImage(img *model.Image) {
	b.hasImage = true
	b.addType(model.ElementTypeImage)
	if img.Alt != "" {
		b.blocks = append(b.blocks, img.Alt)
		b.size += utf8.RuneCountInString(img.Alt) + 2
		b.words += countWords(img.Alt)
	}
}

// addTable stores the table's markdown rendering. Words are counted
// per cell, matching the inspect rule; the markdown frame is layout,
// not words.
func (b *builder) addTable(t *model.Table, md string) {
	b.hasTable = true
	b.addType(model.ElementTypeTable)
	b.blocks = append(b.blocks, md)
	b.size += utf8.RuneCountInString(md) + 2
	for _, row := range t.Cells {
		for _, cell := range row {
			b.words += countWords(cell)
		}
	}
}

func (b *builder) addType(t model.ElementType) {
	name := t.String()
	for _, have := range b.types {
		if have == name {
			return
		}
	}
	b.types = append(b.types, name)
}
