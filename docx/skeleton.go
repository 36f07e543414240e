package docx

import (
	"bytes"
	"encoding/xml"
	"strconv"
	"strings"
	"time"
)

// The skeleton parts below seed a draft package before the renderer fills
// in the document body. They carry the styles and numbering definitions
// the renderer refers to by name.

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// ContentTypesXML is the base content-type registry for a draft package.
func ContentTypesXML() []byte {
	return []byte(xmlHeader +
		`<Types xmlns="` + NSContentTypes + `">` +
		`<Default Extension="rels" ContentType="` + CTRels + `"/>` +
		`<Default Extension="xml" ContentType="` + CTXML + `"/>` +
		`<Override PartName="/word/document.xml" ContentType="` + CTDocument + `"/>` +
		`<Override PartName="/word/styles.xml" ContentType="` + CTStyles + `"/>` +
		`<Override PartName="/word/settings.xml" ContentType="` + CTSettings + `"/>` +
		`<Override PartName="/word/numbering.xml" ContentType="` + CTNumbering + `"/>` +
		`<Override PartName="/docProps/core.xml" ContentType="` + CTCore + `"/>` +
		`<Override PartName="/docProps/app.xml" ContentType="` + CTApp + `"/>` +
		`</Types>`)
}

// RootRelsXML is the package-level relationship part.
func RootRelsXML() []byte {
	return []byte(xmlHeader +
		`<Relationships xmlns="` + NSPackageRels + `">` +
		`<Relationship Id="rId1" Type="` + RelTypeDocument + `" Target="word/document.xml"/>` +
		`<Relationship Id="rId2" Type="` + RelTypeCore + `" Target="docProps/core.xml"/>` +
		`<Relationship Id="rId3" Type="` + RelTypeApp + `" Target="docProps/app.xml"/>` +
		`</Relationships>`)
}

// DocumentRelsXML is the main document part's relationship part.
func DocumentRelsXML() []byte {
	return []byte(xmlHeader +
		`<Relationships xmlns="` + NSPackageRels + `">` +
		`<Relationship Id="rId1" Type="` + RelTypeStyles + `" Target="styles.xml"/>` +
		`<Relationship Id="rId2" Type="` + RelTypeSettings + `" Target="settings.xml"/>` +
		`<Relationship Id="rId3" Type="` + RelTypeNumbering + `" Target="numbering.xml"/>` +
		`</Relationships>`)
}

// SettingsXML is the default settings part. Note numbering formats are
// applied onto it during post-processing.
func SettingsXML() []byte {
	return []byte(xmlHeader +
		`<w:settings xmlns:w="` + NSWordML + `">` +
		`<w:defaultTabStop w:val="720"/>` +
		`<w:characterSpacingControl w:val="doNotCompress"/>` +
		`</w:settings>`)
}

// StylesXML is the default styles part: the paragraph, character, and
// table styles the renderer references by id.
func StylesXML() []byte {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<w:styles xmlns:w="` + NSWordML + `">`)
	b.WriteString(`<w:docDefaults><w:rPrDefault><w:rPr>` +
		`<w:rFonts w:ascii="Calibri" w:eastAsia="宋体" w:hAnsi="Calibri" w:cs="Calibri"/>` +
		`<w:sz w:val="22"/><w:szCs w:val="22"/>` +
		`</w:rPr></w:rPrDefault><w:pPrDefault/></w:docDefaults>`)

	b.WriteString(`<w:style w:type="paragraph" w:default="1" w:styleId="Normal">` +
		`<w:name w:val="Normal"/><w:qFormat/></w:style>`)

	b.WriteString(`<w:style w:type="paragraph" w:styleId="Title">` +
		`<w:name w:val="Title"/><w:basedOn w:val="Normal"/><w:qFormat/>` +
		`<w:pPr><w:jc w:val="center"/><w:spacing w:after="300"/></w:pPr>` +
		`<w:rPr><w:b/><w:sz w:val="56"/><w:szCs w:val="56"/></w:rPr></w:style>`)

	headingSizes := []string{"32", "26", "24", "22"}
	for i, sz := range headingSizes {
		level := string(rune('1' + i))
		b.WriteString(`<w:style w:type="paragraph" w:styleId="Heading` + level + `">` +
			`<w:name w:val="heading ` + level + `"/><w:basedOn w:val="Normal"/><w:qFormat/>` +
			`<w:pPr><w:keepNext/><w:spacing w:before="240" w:after="120"/>` +
			`<w:outlineLvl w:val="` + string(rune('0'+i)) + `"/></w:pPr>` +
			`<w:rPr><w:b/><w:sz w:val="` + sz + `"/><w:szCs w:val="` + sz + `"/></w:rPr></w:style>`)
	}

	b.WriteString(`<w:style w:type="paragraph" w:styleId="ListBullet">` +
		`<w:name w:val="List Bullet"/><w:basedOn w:val="Normal"/><w:qFormat/>` +
		`<w:pPr><w:numPr><w:numId w:val="1"/></w:numPr></w:pPr></w:style>`)
	b.WriteString(`<w:style w:type="paragraph" w:styleId="ListNumber">` +
		`<w:name w:val="List Number"/><w:basedOn w:val="Normal"/><w:qFormat/>` +
		`<w:pPr><w:numPr><w:numId w:val="2"/></w:numPr></w:pPr></w:style>`)

	b.WriteString(`<w:style w:type="table" w:styleId="TableGrid">` +
		`<w:name w:val="Table Grid"/><w:basedOn w:val="TableNormal"/>` +
		`<w:tblPr><w:tblBorders>` +
		`<w:top w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		`<w:left w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		`<w:bottom w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		`<w:right w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		`<w:insideH w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		`<w:insideV w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
		`</w:tblBorders></w:tblPr></w:style>`)
	b.WriteString(`<w:style w:type="table" w:default="1" w:styleId="TableNormal">` +
		`<w:name w:val="Normal Table"/></w:style>`)

	b.WriteString(`<w:style w:type="paragraph" w:styleId="FootnoteText">` +
		`<w:name w:val="footnote text"/><w:basedOn w:val="Normal"/>` +
		`<w:rPr><w:sz w:val="18"/><w:szCs w:val="18"/></w:rPr></w:style>`)
	b.WriteString(`<w:style w:type="character" w:styleId="FootnoteReference">` +
		`<w:name w:val="footnote reference"/>` +
		`<w:rPr><w:vertAlign w:val="superscript"/></w:rPr></w:style>`)
	b.WriteString(`<w:style w:type="paragraph" w:styleId="EndnoteText">` +
		`<w:name w:val="endnote text"/><w:basedOn w:val="Normal"/>` +
		`<w:rPr><w:sz w:val="18"/><w:szCs w:val="18"/></w:rPr></w:style>`)
	b.WriteString(`<w:style w:type="character" w:styleId="EndnoteReference">` +
		`<w:name w:val="endnote reference"/>` +
		`<w:rPr><w:vertAlign w:val="superscript"/></w:rPr></w:style>`)

	b.WriteString(`</w:styles>`)
	return []byte(b.String())
}

// NumberingXML is the default numbering part: a three-level bullet
// definition wired to numId 1 and a three-level decimal definition wired
// to numId 2, matching the List Bullet and List Number styles.
func NumberingXML() []byte {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<w:numbering xmlns:w="` + NSWordML + `">`)

	bullets := []string{"\uF0B7", "o", "\uF0A7"}
	fonts := []string{"Symbol", "Courier New", "Wingdings"}
	b.WriteString(`<w:abstractNum w:abstractNumId="0">` +
		`<w:multiLevelType w:val="hybridMultilevel"/>`)
	for i := 0; i < 3; i++ {
		b.WriteString(`<w:lvl w:ilvl="` + strconv.Itoa(i) + `">` +
			`<w:start w:val="1"/><w:numFmt w:val="bullet"/>` +
			`<w:lvlText w:val="` + xmlEscape(bullets[i]) + `"/><w:lvlJc w:val="left"/>` +
			`<w:pPr><w:ind w:left="` + strconv.Itoa(720*(i+1)) + `" w:hanging="360"/></w:pPr>` +
			`<w:rPr><w:rFonts w:ascii="` + fonts[i] + `" w:hAnsi="` + fonts[i] + `" w:hint="default"/></w:rPr>` +
			`</w:lvl>`)
	}
	b.WriteString(`</w:abstractNum>`)

	formats := []string{"decimal", "lowerLetter", "lowerRoman"}
	b.WriteString(`<w:abstractNum w:abstractNumId="1">` +
		`<w:multiLevelType w:val="hybridMultilevel"/>`)
	for i := 0; i < 3; i++ {
		b.WriteString(`<w:lvl w:ilvl="` + strconv.Itoa(i) + `">` +
			`<w:start w:val="1"/><w:numFmt w:val="` + formats[i] + `"/>` +
			`<w:lvlText w:val="%` + strconv.Itoa(i+1) + `."/><w:lvlJc w:val="left"/>` +
			`<w:pPr><w:ind w:left="` + strconv.Itoa(720*(i+1)) + `" w:hanging="360"/></w:pPr>` +
			`</w:lvl>`)
	}
	b.WriteString(`</w:abstractNum>`)

	b.WriteString(`<w:num w:numId="1"><w:abstractNumId w:val="0"/></w:num>`)
	b.WriteString(`<w:num w:numId="2"><w:abstractNumId w:val="1"/></w:num>`)
	b.WriteString(`</w:numbering>`)
	return []byte(b.String())
}

// FootnotesXML is a fresh footnotes part holding only the two mandatory
// separator entries.
func FootnotesXML() []byte {
	return notesPartXML("footnotes", "footnote")
}

// EndnotesXML is a fresh endnotes part holding only the two mandatory
// separator entries.
func EndnotesXML() []byte {
	return notesPartXML("endnotes", "endnote")
}

func notesPartXML(root, entry string) []byte {
	return []byte(xmlHeader +
		`<w:` + root + ` xmlns:w="` + NSWordML + `">` +
		`<w:` + entry + ` w:type="separator" w:id="-1">` +
		`<w:p><w:r><w:separator/></w:r></w:p></w:` + entry + `>` +
		`<w:` + entry + ` w:type="continuationSeparator" w:id="0">` +
		`<w:p><w:r><w:continuationSeparator/></w:r></w:p></w:` + entry + `>` +
		`</w:` + root + `>`)
}

// CorePropertiesXML builds the core document-properties part.
func CorePropertiesXML(title, subject, creator string, keywords []string, now time.Time) []byte {
	stamp := now.UTC().Format("2006-01-02T15:04:05Z")
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<cp:coreProperties xmlns:cp="` + NSCoreProps + `"` +
		` xmlns:dc="` + NSDublinCore + `"` +
		` xmlns:dcterms="http://purl.org/dc/terms/"` +
		` xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`)
	b.WriteString(`<dc:title>` + xmlEscape(title) + `</dc:title>`)
	b.WriteString(`<dc:subject>` + xmlEscape(subject) + `</dc:subject>`)
	b.WriteString(`<dc:creator>` + xmlEscape(creator) + `</dc:creator>`)
	if len(keywords) > 0 {
		b.WriteString(`<cp:keywords>` + xmlEscape(strings.Join(keywords, ", ")) + `</cp:keywords>`)
	}
	b.WriteString(`<dcterms:created xsi:type="dcterms:W3CDTF">` + stamp + `</dcterms:created>`)
	b.WriteString(`<dcterms:modified xsi:type="dcterms:W3CDTF">` + stamp + `</dcterms:modified>`)
	b.WriteString(`</cp:coreProperties>`)
	return []byte(b.String())
}

// AppPropertiesXML is the extended-properties part.
func AppPropertiesXML() []byte {
	return []byte(xmlHeader +
		`<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"` +
		` xmlns:vt="http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes">` +
		`<Application>quire</Application>` +
		`</Properties>`)
}

func xmlEscape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
