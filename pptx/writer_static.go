package pptx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"strings"
)

const (
	nsRelationships  = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsContentTypes   = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsPresentationML = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsDrawingML      = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsOfficeDocRels  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsDCTerms        = "http://purl.org/dc/terms/"
	nsDC             = "http://purl.org/dc/elements/1.1/"
	nsCoreProperties = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsExtProperties  = "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"
	nsXSI            = "http://www.w3.org/2001/XMLSchema-instance"

	relTypeSlide       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	relTypeSlideMaster = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster"
	relTypeSlideLayout = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"
	relTypeTheme       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme"
	relTypePresProps   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/presProps"
	relTypeViewProps   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/viewProps"
	relTypeTableStyles = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/tableStyles"
	relTypeOfficeDoc   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relTypeCoreProps   = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relTypeExtProps    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"
	relTypeImage       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	relTypeHyperlink   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
	relTypeNotesSlide  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesSlide"

	ctPresentation = "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"
	ctSlide        = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
	ctSlideMaster  = "application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"
	ctSlideLayout  = "application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"
	ctTheme        = "application/vnd.openxmlformats-officedocument.theme+xml"
	ctPresProps    = "application/vnd.openxmlformats-officedocument.presentationml.presProps+xml"
	ctViewProps    = "application/vnd.openxmlformats-officedocument.presentationml.viewProps+xml"
	ctTableStyles  = "application/vnd.openxmlformats-officedocument.presentationml.tableStyles+xml"
	ctCoreProps    = "application/vnd.openxmlformats-package.core-properties+xml"
	ctExtProps     = "application/vnd.openxmlformats-officedocument.extended-properties+xml"
	ctRels         = "application/vnd.openxmlformats-package.relationships+xml"
	ctNotesSlide   = "application/vnd.openxmlformats-officedocument.presentationml.notesSlide+xml"
)

func xmlEscape(s string) string {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return s
	}
	return b.String()
}

func (d *Deck) writeContentTypes(zw *zip.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="%s">
  <Default Extension="rels" ContentType="%s"/>
  <Default Extension="xml" ContentType="application/xml"/>`, nsContentTypes, ctRels)

	seen := map[string]bool{}
	for _, p := range d.pictures() {
		ext := imageExt(p.Format)
		if !seen[ext] {
			seen[ext] = true
			fmt.Fprintf(&b, `
  <Default Extension="%s" ContentType="%s"/>`, ext, imageContentType(p.Format))
		}
	}

	fmt.Fprintf(&b, `
  <Override PartName="/ppt/presentation.xml" ContentType="%s"/>
  <Override PartName="/ppt/presProps.xml" ContentType="%s"/>
  <Override PartName="/ppt/viewProps.xml" ContentType="%s"/>
  <Override PartName="/ppt/tableStyles.xml" ContentType="%s"/>
  <Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="%s"/>
  <Override PartName="/ppt/slideLayouts/slideLayout1.xml" ContentType="%s"/>
  <Override PartName="/ppt/theme/theme1.xml" ContentType="%s"/>
  <Override PartName="/docProps/core.xml" ContentType="%s"/>
  <Override PartName="/docProps/app.xml" ContentType="%s"/>`,
		ctPresentation, ctPresProps, ctViewProps, ctTableStyles,
		ctSlideMaster, ctSlideLayout, ctTheme, ctCoreProps, ctExtProps)

	for i, slide := range d.Slides {
		fmt.Fprintf(&b, `
  <Override PartName="/ppt/slides/slide%d.xml" ContentType="%s"/>`, i+1, ctSlide)
		if slide.Notes != "" {
			fmt.Fprintf(&b, `
  <Override PartName="/ppt/notesSlides/notesSlide%d.xml" ContentType="%s"/>`, i+1, ctNotesSlide)
		}
	}

	b.WriteString("\n</Types>")
	return writePart(zw, "[Content_Types].xml", b.String())
}

func (d *Deck) writeRootRels(zw *zip.Writer) error {
	content := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="%s">
  <Relationship Id="rId1" Type="%s" Target="ppt/presentation.xml"/>
  <Relationship Id="rId2" Type="%s" Target="docProps/core.xml"/>
  <Relationship Id="rId3" Type="%s" Target="docProps/app.xml"/>
</Relationships>`, nsRelationships, relTypeOfficeDoc, relTypeCoreProps, relTypeExtProps)
	return writePart(zw, "_rels/.rels", content)
}

func (d *Deck) writeCoreProps(zw *zip.Writer) error {
	stamp := d.created().UTC().Format("2006-01-02T15:04:05Z")
	content := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<cp:coreProperties xmlns:cp="%s" xmlns:dc="%s" xmlns:dcterms="%s" xmlns:xsi="%s">
  <dc:title>%s</dc:title>
  <dc:creator>%s</dc:creator>
  <cp:lastModifiedBy>%s</cp:lastModifiedBy>
  <dcterms:created xsi:type="dcterms:W3CDTF">%s</dcterms:created>
  <dcterms:modified xsi:type="dcterms:W3CDTF">%s</dcterms:modified>
</cp:coreProperties>`,
		nsCoreProperties, nsDC, nsDCTerms, nsXSI,
		xmlEscape(d.Title), xmlEscape(d.Author), xmlEscape(d.Author),
		stamp, stamp)
	return writePart(zw, "docProps/core.xml", content)
}

func (d *Deck) writeAppProps(zw *zip.Writer) error {
	content := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Properties xmlns="%s" xmlns:vt="http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes">
  <Application>htmldeck</Application>
  <Slides>%d</Slides>
</Properties>`, nsExtProperties, len(d.Slides))
	return writePart(zw, "docProps/app.xml", content)
}

func (d *Deck) writePresentation(zw *zip.Writer) error {
	var slides strings.Builder
	for i := range d.Slides {
		// rId1 is the slide master; slides start at rId2 and ids at 256.
		fmt.Fprintf(&slides, `
    <p:sldId id="%d" r:id="rId%d"/>`, 256+i, i+2)
	}

	content := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:presentation xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">
  <p:sldMasterIdLst>
    <p:sldMasterId id="2147483648" r:id="rId1"/>
  </p:sldMasterIdLst>
  <p:sldIdLst>%s
  </p:sldIdLst>
  <p:sldSz cx="%d" cy="%d"/>
  <p:notesSz cx="6858000" cy="9144000"/>
  <p:defaultTextStyle>
    <a:defPPr>
      <a:defRPr lang="en-US"/>
    </a:defPPr>
  </p:defaultTextStyle>
</p:presentation>`, nsDrawingML, nsOfficeDocRels, nsPresentationML,
		slides.String(), d.slideWidth(), d.slideHeight())
	return writePart(zw, "ppt/presentation.xml", content)
}

func (d *Deck) writePresentationRels(zw *zip.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="%s">
  <Relationship Id="rId1" Type="%s" Target="slideMasters/slideMaster1.xml"/>`,
		nsRelationships, relTypeSlideMaster)

	idx := 2
	for i := range d.Slides {
		fmt.Fprintf(&b, `
  <Relationship Id="rId%d" Type="%s" Target="slides/slide%d.xml"/>`, idx, relTypeSlide, i+1)
		idx++
	}

	fmt.Fprintf(&b, `
  <Relationship Id="rId%d" Type="%s" Target="presProps.xml"/>
  <Relationship Id="rId%d" Type="%s" Target="viewProps.xml"/>
  <Relationship Id="rId%d" Type="%s" Target="tableStyles.xml"/>
  <Relationship Id="rId%d" Type="%s" Target="theme/theme1.xml"/>
</Relationships>`,
		idx, relTypePresProps, idx+1, relTypeViewProps,
		idx+2, relTypeTableStyles, idx+3, relTypeTheme)
	return writePart(zw, "ppt/_rels/presentation.xml.rels", b.String())
}

func (d *Deck) writePresProps(zw *zip.Writer) error {
	content := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:presentationPr xmlns:a="%s" xmlns:r="%s" xmlns:p="%s"/>`,
		nsDrawingML, nsOfficeDocRels, nsPresentationML)
	return writePart(zw, "ppt/presProps.xml", content)
}

func (d *Deck) writeViewProps(zw *zip.Writer) error {
	content := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:viewPr xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">
  <p:normalViewPr>
    <p:restoredLeft sz="15620"/>
    <p:restoredTop sz="94660"/>
  </p:normalViewPr>
  <p:gridSpacing cx="72008" cy="72008"/>
</p:viewPr>`, nsDrawingML, nsOfficeDocRels, nsPresentationML)
	return writePart(zw, "ppt/viewProps.xml", content)
}

func (d *Deck) writeTableStyles(zw *zip.Writer) error {
	content := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<a:tblStyleLst xmlns:a="%s" def="{5C22544A-7EE6-4342-B048-85BDC9FD1C3A}"/>`, nsDrawingML)
	return writePart(zw, "ppt/tableStyles.xml", content)
}

func (d *Deck) writeTheme(zw *zip.Writer) error {
	content := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<a:theme xmlns:a="%s" name="Office Theme">
  <a:themeElements>
    <a:clrScheme name="Office">
      <a:dk1><a:sysClr val="windowText" lastClr="000000"/></a:dk1>
      <a:lt1><a:sysClr val="window" lastClr="FFFFFF"/></a:lt1>
      <a:dk2><a:srgbClr val="44546A"/></a:dk2>
      <a:lt2><a:srgbClr val="E7E6E6"/></a:lt2>
      <a:accent1><a:srgbClr val="4472C4"/></a:accent1>
      <a:accent2><a:srgbClr val="ED7D31"/></a:accent2>
      <a:accent3><a:srgbClr val="A5A5A5"/></a:accent3>
      <a:accent4><a:srgbClr val="FFC000"/></a:accent4>
      <a:accent5><a:srgbClr val="5B9BD5"/></a:accent5>
      <a:accent6><a:srgbClr val="70AD47"/></a:accent6>
      <a:hlink><a:srgbClr val="0563C1"/></a:hlink>
      <a:folHlink><a:srgbClr val="954F72"/></a:folHlink>
    </a:clrScheme>
    <a:fontScheme name="Office">
      <a:majorFont>
        <a:latin typeface="Calibri Light"/>
        <a:ea typeface=""/>
        <a:cs typeface=""/>
      </a:majorFont>
      <a:minorFont>
        <a:latin typeface="Calibri"/>
        <a:ea typeface=""/>
        <a:cs typeface=""/>
      </a:minorFont>
    </a:fontScheme>
    <a:fmtScheme name="Office">
      <a:fillStyleLst>
        <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
        <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
        <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
      </a:fillStyleLst>
      <a:lnStyleLst>
        <a:ln w="6350" cap="flat" cmpd="sng" algn="ctr">
          <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
          <a:prstDash val="solid"/>
        </a:ln>
        <a:ln w="12700" cap="flat" cmpd="sng" algn="ctr">
          <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
          <a:prstDash val="solid"/>
        </a:ln>
        <a:ln w="19050" cap="flat" cmpd="sng" algn="ctr">
          <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
          <a:prstDash val="solid"/>
        </a:ln>
      </a:lnStyleLst>
      <a:effectStyleLst>
        <a:effectStyle><a:effectLst/></a:effectStyle>
        <a:effectStyle><a:effectLst/></a:effectStyle>
        <a:effectStyle><a:effectLst/></a:effectStyle>
      </a:effectStyleLst>
      <a:bgFillStyleLst>
        <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
        <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
        <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
      </a:bgFillStyleLst>
    </a:fmtScheme>
  </a:themeElements>
</a:theme>`, nsDrawingML)
	return writePart(zw, "ppt/theme/theme1.xml", content)
}

func (d *Deck) writeSlideMaster(zw *zip.Writer) error {
	content := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sldMaster xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">
  <p:cSld>
    <p:bg>
      <p:bgRef idx="1001">
        <a:schemeClr val="bg1"/>
      </p:bgRef>
    </p:bg>
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
    </p:spTree>
  </p:cSld>
  <p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>
  <p:sldLayoutIdLst>
    <p:sldLayoutId id="2147483649" r:id="rId1"/>
  </p:sldLayoutIdLst>
  <p:txStyles>
    <p:titleStyle/>
    <p:bodyStyle/>
    <p:otherStyle/>
  </p:txStyles>
</p:sldMaster>`, nsDrawingML, nsOfficeDocRels, nsPresentationML)

	if err := writePart(zw, "ppt/slideMasters/slideMaster1.xml", content); err != nil {
		return err
	}

	rels := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="%s">
  <Relationship Id="rId1" Type="%s" Target="../slideLayouts/slideLayout1.xml"/>
  <Relationship Id="rId2" Type="%s" Target="../theme/theme1.xml"/>
</Relationships>`, nsRelationships, relTypeSlideLayout, relTypeTheme)
	return writePart(zw, "ppt/slideMasters/_rels/slideMaster1.xml.rels", rels)
}

func (d *Deck) writeSlideLayout(zw *zip.Writer) error {
	content := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sldLayout xmlns:a="%s" xmlns:r="%s" xmlns:p="%s" type="blank" preserve="1">
  <p:cSld name="Blank">
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
    </p:spTree>
  </p:cSld>
  <p:clrMapOvr>
    <a:masterClrMapping/>
  </p:clrMapOvr>
</p:sldLayout>`, nsDrawingML, nsOfficeDocRels, nsPresentationML)

	if err := writePart(zw, "ppt/slideLayouts/slideLayout1.xml", content); err != nil {
		return err
	}

	rels := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="%s">
  <Relationship Id="rId1" Type="%s" Target="../slideMasters/slideMaster1.xml"/>
</Relationships>`, nsRelationships, relTypeSlideMaster)
	return writePart(zw, "ppt/slideLayouts/_rels/slideLayout1.xml.rels", rels)
}
