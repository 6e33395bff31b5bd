package pptx

import (
	"archive/zip"
	"fmt"
	"strings"
)

// slideRels maps a slide's shapes to the relationship IDs used both in
// the slide XML and its .rels part. Building the map once up front
// keeps the two in agreement.
type slideRels struct {
	pics  map[*Picture]string
	links map[*Run]string
	notes string
}

// buildSlideRels assigns rIds in shape order. rId1 is always the slide
// layout; pictures and external hyperlinks follow, then the notes
// slide.
func (d *Deck) buildSlideRels(slide *Slide, num int) *slideRels {
	rels := &slideRels{
		pics:  make(map[*Picture]string),
		links: make(map[*Run]string),
	}
	idx := 2
	for _, shape := range slide.Shapes {
		switch s := shape.(type) {
		case *Picture:
			if len(s.Data) > 0 {
				rels.pics[s] = fmt.Sprintf("rId%d", idx)
				idx++
			}
		case *TextBox:
			for _, para := range s.Paragraphs {
				for _, run := range para.Runs {
					if run.Hyperlink != "" {
						rels.links[run] = fmt.Sprintf("rId%d", idx)
						idx++
					}
				}
			}
		}
	}
	if slide.Notes != "" {
		rels.notes = fmt.Sprintf("rId%d", idx)
		idx++
	}
	return rels
}

func (d *Deck) writeSlide(zw *zip.Writer, slide *Slide, num int, rels *slideRels) error {
	var shapes strings.Builder
	shapeID := 2 // id 1 is the group shape
	for _, shape := range slide.Shapes {
		switch s := shape.(type) {
		case *TextBox:
			shapes.WriteString(d.textBoxXML(s, &shapeID, rels))
		case *Picture:
			shapes.WriteString(d.pictureXML(s, &shapeID, rels))
		case *Rect:
			shapes.WriteString(d.rectXML(s, &shapeID))
		}
	}

	bg := ""
	if slide.Background != "" {
		bg = fmt.Sprintf(`    <p:bg>
      <p:bgPr>
        <a:solidFill><a:srgbClr val="%s"/></a:solidFill>
        <a:effectLst/>
      </p:bgPr>
    </p:bg>
`, slide.Background)
	}

	content := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">
  <p:cSld>
%s    <p:spTree>
      <p:nvGrpSpPr>
        <p:cNvPr id="1" name=""/>
        <p:cNvGrpSpPr/>
        <p:nvPr/>
      </p:nvGrpSpPr>
      <p:grpSpPr>
        <a:xfrm>
          <a:off x="0" y="0"/>
          <a:ext cx="0" cy="0"/>
          <a:chOff x="0" y="0"/>
          <a:chExt cx="0" cy="0"/>
        </a:xfrm>
      </p:grpSpPr>
%s    </p:spTree>
  </p:cSld>
  <p:clrMapOvr>
    <a:masterClrMapping/>
  </p:clrMapOvr>
</p:sld>`, nsDrawingML, nsOfficeDocRels, nsPresentationML, bg, shapes.String())

	return writePart(zw, fmt.Sprintf("ppt/slides/slide%d.xml", num), content)
}

func (d *Deck) writeSlideRels(zw *zip.Writer, slide *Slide, num int, rels *slideRels) error {
	var b strings.Builder
	fmt.Fprintf(&b, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="%s">
  <Relationship Id="rId1" Type="%s" Target="../slideLayouts/slideLayout1.xml"/>`,
		nsRelationships, relTypeSlideLayout)

	for _, shape := range slide.Shapes {
		switch s := shape.(type) {
		case *Picture:
			if rid, ok := rels.pics[s]; ok {
				fmt.Fprintf(&b, `
  <Relationship Id="%s" Type="%s" Target="../media/image%d.%s"/>`,
					rid, relTypeImage, d.pictureIndex(s), imageExt(s.Format))
			}
		case *TextBox:
			for _, para := range s.Paragraphs {
				for _, run := range para.Runs {
					if rid, ok := rels.links[run]; ok {
						fmt.Fprintf(&b, `
  <Relationship Id="%s" Type="%s" Target="%s" TargetMode="External"/>`,
							rid, relTypeHyperlink, xmlEscape(run.Hyperlink))
					}
				}
			}
		}
	}

	if rels.notes != "" {
		fmt.Fprintf(&b, `
  <Relationship Id="%s" Type="%s" Target="../notesSlides/notesSlide%d.xml"/>`,
			rels.notes, relTypeNotesSlide, num)
	}

	b.WriteString("\n</Relationships>")
	return writePart(zw, fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", num), b.String())
}

// --- text box ---

func (d *Deck) textBoxXML(s *TextBox, shapeID *int, rels *slideRels) string {
	id := *shapeID
	*shapeID++

	name := s.Name
	if name == "" {
		name = fmt.Sprintf("TextBox %d", id)
	}

	var paras strings.Builder
	for _, para := range s.Paragraphs {
		paras.WriteString(paragraphXML(para, rels))
	}

	return fmt.Sprintf(`      <p:sp>
        <p:nvSpPr>
          <p:cNvPr id="%d" name="%s"/>
          <p:cNvSpPr txBox="1"/>
          <p:nvPr/>
        </p:nvSpPr>
        <p:spPr>
          <a:xfrm>
            <a:off x="%d" y="%d"/>
            <a:ext cx="%d" cy="%d"/>
          </a:xfrm>
          <a:prstGeom prst="rect">
            <a:avLst/>
          </a:prstGeom>
%s%s        </p:spPr>
        <p:txBody>
          <a:bodyPr wrap="square"/>
          <a:lstStyle/>
%s        </p:txBody>
      </p:sp>
`, id, xmlEscape(name),
		s.X, s.Y, s.CX, s.CY,
		fillXML(s.Fill), borderXML(s.BorderColor, s.BorderWidth),
		paras.String())
}

func paragraphXML(para *Paragraph, rels *slideRels) string {
	algn := ""
	if para.Align != "" {
		algn = fmt.Sprintf(` algn="%s"`, para.Align)
	}

	var runs strings.Builder
	for _, run := range para.Runs {
		runs.WriteString(runXML(run, rels))
	}

	return fmt.Sprintf(`          <a:p>
            <a:pPr%s/>
%s          </a:p>
`, algn, runs.String())
}

func runXML(run *Run, rels *slideRels) string {
	font := run.Font
	sz := int(font.SizePt * 100)
	if sz <= 0 {
		sz = 1200
	}
	attrs := fmt.Sprintf(` lang="en-US" sz="%d" dirty="0"`, sz)
	if font.Bold {
		attrs += ` b="1"`
	}
	if font.Italic {
		attrs += ` i="1"`
	}
	if font.Underline {
		attrs += ` u="sng"`
	}
	if font.Strikethrough {
		attrs += ` strike="sngStrike"`
	}

	fill := ""
	if font.Color != "" {
		fill = fmt.Sprintf(`
              <a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, font.Color)
	}

	latin := ""
	if font.Family != "" {
		latin = fmt.Sprintf(`
              <a:latin typeface="%s"/>`, xmlEscape(font.Family))
	}

	hlink := ""
	if rid, ok := rels.links[run]; ok {
		hlink = fmt.Sprintf(`
              <a:hlinkClick r:id="%s"/>`, rid)
	}

	return fmt.Sprintf(`            <a:r>
              <a:rPr%s>%s%s%s
              </a:rPr>
              <a:t>%s</a:t>
            </a:r>
`, attrs, fill, latin, hlink, xmlEscape(run.Text))
}

// --- picture ---

func (d *Deck) pictureXML(s *Picture, shapeID *int, rels *slideRels) string {
	id := *shapeID
	*shapeID++

	name := s.Name
	if name == "" {
		name = fmt.Sprintf("Picture %d", id)
	}

	return fmt.Sprintf(`      <p:pic>
        <p:nvPicPr>
          <p:cNvPr id="%d" name="%s" descr="%s"/>
          <p:cNvPicPr>
            <a:picLocks noChangeAspect="1"/>
          </p:cNvPicPr>
          <p:nvPr/>
        </p:nvPicPr>
        <p:blipFill>
          <a:blip r:embed="%s"/>
          <a:stretch>
            <a:fillRect/>
          </a:stretch>
        </p:blipFill>
        <p:spPr>
          <a:xfrm>
            <a:off x="%d" y="%d"/>
            <a:ext cx="%d" cy="%d"/>
          </a:xfrm>
          <a:prstGeom prst="rect">
            <a:avLst/>
          </a:prstGeom>
        </p:spPr>
      </p:pic>
`, id, xmlEscape(name), xmlEscape(s.AltText),
		rels.pics[s],
		s.X, s.Y, s.CX, s.CY)
}

// --- rect ---

func (d *Deck) rectXML(s *Rect, shapeID *int) string {
	id := *shapeID
	*shapeID++

	name := s.Name
	if name == "" {
		name = fmt.Sprintf("Rectangle %d", id)
	}

	return fmt.Sprintf(`      <p:sp>
        <p:nvSpPr>
          <p:cNvPr id="%d" name="%s"/>
          <p:cNvSpPr/>
          <p:nvPr/>
        </p:nvSpPr>
        <p:spPr>
          <a:xfrm>
            <a:off x="%d" y="%d"/>
            <a:ext cx="%d" cy="%d"/>
          </a:xfrm>
          <a:prstGeom prst="rect">
            <a:avLst/>
          </a:prstGeom>
%s%s        </p:spPr>
      </p:sp>
`, id, xmlEscape(name),
		s.X, s.Y, s.CX, s.CY,
		fillXML(s.Fill), borderXML(s.BorderColor, s.BorderWidth))
}

// --- fill and border helpers ---

func fillXML(color string) string {
	if color == "" {
		return "          <a:noFill/>\n"
	}
	return fmt.Sprintf("          <a:solidFill><a:srgbClr val=\"%s\"/></a:solidFill>\n", color)
}

func borderXML(color string, width int64) string {
	if color == "" || width <= 0 {
		return ""
	}
	return fmt.Sprintf("          <a:ln w=\"%d\"><a:solidFill><a:srgbClr val=\"%s\"/></a:solidFill></a:ln>\n",
		width, color)
}

// --- notes ---

func (d *Deck) writeNotesSlide(zw *zip.Writer, slide *Slide, num int) error {
	content := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:notes xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">
  <p:cSld>
    <p:spTree>
      <p:nvGrpSpPr>
        <p:cNvPr id="1" name=""/>
        <p:cNvGrpSpPr/>
        <p:nvPr/>
      </p:nvGrpSpPr>
      <p:grpSpPr>
        <a:xfrm>
          <a:off x="0" y="0"/>
          <a:ext cx="0" cy="0"/>
          <a:chOff x="0" y="0"/>
          <a:chExt cx="0" cy="0"/>
        </a:xfrm>
      </p:grpSpPr>
      <p:sp>
        <p:nvSpPr>
          <p:cNvPr id="2" name="Notes Placeholder"/>
          <p:cNvSpPr>
            <a:spLocks noGrp="1"/>
          </p:cNvSpPr>
          <p:nvPr>
            <p:ph type="body" idx="1"/>
          </p:nvPr>
        </p:nvSpPr>
        <p:spPr/>
        <p:txBody>
          <a:bodyPr/>
          <a:lstStyle/>
%s        </p:txBody>
      </p:sp>
    </p:spTree>
  </p:cSld>
</p:notes>`, nsDrawingML, nsOfficeDocRels, nsPresentationML, notesParagraphsXML(slide.Notes))

	if err := writePart(zw, fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", num), content); err != nil {
		return err
	}

	rels := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="%s">
  <Relationship Id="rId1" Type="%s" Target="../slides/slide%d.xml"/>
</Relationships>`, nsRelationships, relTypeSlide, num)
	return writePart(zw, fmt.Sprintf("ppt/notesSlides/_rels/notesSlide%d.xml.rels", num), rels)
}

// notesParagraphsXML renders speaker notes one paragraph per line so
// multi-line notes survive the round trip into PowerPoint's notes pane.
func notesParagraphsXML(notes string) string {
	var b strings.Builder
	for _, line := range strings.Split(notes, "\n") {
		fmt.Fprintf(&b, `          <a:p>
            <a:r>
              <a:rPr lang="en-US" dirty="0"/>
              <a:t>%s</a:t>
            </a:r>
          </a:p>
`, xmlEscape(line))
	}
	return b.String()
}
