package pptxdoc

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/tsawler/folio/model"
)

// EMUs per pixel: 914400 EMUs per inch at 96 DPI.
const emuPerPixel = 9525

// slideXML describes a ppt/slides/slide*.xml part.
type slideXML struct {
	XMLName xml.Name     `xml:"sld"`
	Tree    shapeTreeXML `xml:"cSld>spTree"`
}

// shapeTreeXML holds the shapes on a slide. Grouped shapes nest the same
// structure.
type shapeTreeXML struct {
	Shapes []shapeXML        `xml:"sp"`
	Pics   []picXML          `xml:"pic"`
	Frames []graphicFrameXML `xml:"graphicFrame"`
	Groups []shapeTreeXML    `xml:"grpSp"`
}

type shapeXML struct {
	Ph   *placeholderXML `xml:"nvSpPr>nvPr>ph"`
	Body *textBodyXML    `xml:"txBody"`
}

type placeholderXML struct {
	Type string `xml:"type,attr"`
}

type textBodyXML struct {
	Paragraphs []paragraphXML `xml:"p"`
}

type paragraphXML struct {
	Runs []runXML `xml:"r"`
}

type runXML struct {
	Text string `xml:"t"`
}

type picXML struct {
	Desc *pictureDescXML `xml:"nvPicPr>cNvPr"`
	Blip *blipXML        `xml:"blipFill>blip"`
	Ext  *extentXML      `xml:"spPr>xfrm>ext"`
}

type pictureDescXML struct {
	Name  string `xml:"name,attr"`
	Descr string `xml:"descr,attr"`
}

type blipXML struct {
	Embed string `xml:"embed,attr"`
}

type extentXML struct {
	Cx int64 `xml:"cx,attr"`
	Cy int64 `xml:"cy,attr"`
}

type graphicFrameXML struct {
	Table *tableXML `xml:"graphic>graphicData>tbl"`
}

type tableXML struct {
	Rows []tableRowXML `xml:"tr"`
}

type tableRowXML struct {
	Cells []tableCellXML `xml:"tc"`
}

type tableCellXML struct {
	Body *textBodyXML `xml:"txBody"`
}

// slideElements converts one slide into document elements.
func slideElements(data []byte, rels map[string]string) ([]model.Element, error) {
	var slide slideXML
	if err := xml.Unmarshal(data, &slide); err != nil {
		return nil, fmt.Errorf("parsing slide: %w", err)
	}
	return treeElements(&slide.Tree, rels), nil
}

// treeElements walks a shape tree. The title placeholder leads the slide
// regardless of markup order; text shapes follow, then pictures, tables
// and grouped shapes.
func treeElements(tree *shapeTreeXML, rels map[string]string) []model.Element {
	var elems []model.Element

	for i := range tree.Shapes {
		if isTitle(&tree.Shapes[i]) {
			elems = append(elems, shapeParagraphs(&tree.Shapes[i])...)
		}
	}
	for i := range tree.Shapes {
		if !isTitle(&tree.Shapes[i]) {
			elems = append(elems, shapeParagraphs(&tree.Shapes[i])...)
		}
	}

	for i := range tree.Pics {
		if img := pictureImage(&tree.Pics[i], rels); img != nil {
			elems = append(elems, img)
		}
	}

	for i := range tree.Frames {
		if tbl := tree.Frames[i].Table; tbl != nil {
			if table := frameTable(tbl); table != nil {
				elems = append(elems, table)
			}
		}
	}

	for i := range tree.Groups {
		elems = append(elems, treeElements(&tree.Groups[i], rels)...)
	}

	return elems
}

func isTitle(sp *shapeXML) bool {
	return sp.Ph != nil && (sp.Ph.Type == "title" || sp.Ph.Type == "ctrTitle")
}

// shapeParagraphs converts a shape's text body. Each non-empty text
// paragraph becomes one document paragraph; bullet glyphs are
// presentation styling and are not carried. Title placeholders render at
// heading size.
func shapeParagraphs(sp *shapeXML) []model.Element {
	if sp.Body == nil {
		return nil
	}
	var elems []model.Element
	for i := range sp.Body.Paragraphs {
		text := paragraphText(&sp.Body.Paragraphs[i])
		if text == "" {
			continue
		}
		para := model.NewParagraph(text)
		if isTitle(sp) {
			para.FontSize = model.HeadingFontSize(2)
		}
		elems = append(elems, para)
	}
	return elems
}

// paragraphText joins the text runs of one paragraph. Generated fields
// such as slide numbers are presentation chrome and are left out.
func paragraphText(p *paragraphXML) string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return strings.TrimSpace(sb.String())
}

// pictureImage converts a picture shape. The embed relationship supplies
// the archive path, the shape extent supplies display dimensions and the
// descr attribute supplies alt text.
func pictureImage(pic *picXML, rels map[string]string) *model.Image {
	if pic.Blip == nil {
		return nil
	}
	target := rels[pic.Blip.Embed]
	if target == "" {
		return nil
	}
	var width, height int
	if pic.Ext != nil {
		width = int(pic.Ext.Cx / emuPerPixel)
		height = int(pic.Ext.Cy / emuPerPixel)
	}
	img := model.NewImage(target, width, height)
	if pic.Desc != nil {
		img.Alt = pic.Desc.Descr
	}
	return img
}

// frameTable converts a graphic-frame table to a document table. Rows may
// vary in cell count; short rows pad with empty cells.
func frameTable(tbl *tableXML) *model.Table {
	if len(tbl.Rows) == 0 {
		return nil
	}
	cols := 0
	for _, row := range tbl.Rows {
		if len(row.Cells) > cols {
			cols = len(row.Cells)
		}
	}
	if cols == 0 {
		return nil
	}

	table := model.NewTable(len(tbl.Rows), cols)
	for i, row := range tbl.Rows {
		for j := 0; j < cols; j++ {
			text := ""
			if j < len(row.Cells) {
				text = cellText(&row.Cells[j])
			}
			table.SetCell(i, j, text)
		}
	}
	return table
}

// cellText joins a cell's paragraphs with newlines.
func cellText(tc *tableCellXML) string {
	if tc.Body == nil {
		return ""
	}
	var lines []string
	for i := range tc.Body.Paragraphs {
		if text := paragraphText(&tc.Body.Paragraphs[i]); text != "" {
			lines = append(lines, text)
		}
	}
	return strings.Join(lines, "\n")
}
