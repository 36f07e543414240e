package docx

// Part names inside the package.
const (
	PartContentTypes = "[Content_Types].xml"
	PartRootRels     = "_rels/.rels"
	PartDocument     = "word/document.xml"
	PartDocumentRels = "word/_rels/document.xml.rels"
	PartStyles       = "word/styles.xml"
	PartSettings     = "word/settings.xml"
	PartNumbering    = "word/numbering.xml"
	PartFootnotes    = "word/footnotes.xml"
	PartEndnotes     = "word/endnotes.xml"
	PartCoreProps    = "docProps/core.xml"
	PartAppProps     = "docProps/app.xml"

	// MediaPrefix is the directory for embedded image parts.
	MediaPrefix = "word/media/"
)

// XML namespaces used across the package parts.
const (
	NSWordML       = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	NSRelationship = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	NSMath         = "http://schemas.openxmlformats.org/officeDocument/2006/math"
	NSDrawingWP    = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	NSDrawingMain  = "http://schemas.openxmlformats.org/drawingml/2006/main"
	NSPicture      = "http://schemas.openxmlformats.org/drawingml/2006/picture"
	NSPackageRels  = "http://schemas.openxmlformats.org/package/2006/relationships"
	NSContentTypes = "http://schemas.openxmlformats.org/package/2006/content-types"
	NSCoreProps    = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	NSDublinCore   = "http://purl.org/dc/elements/1.1/"
)

// Relationship types for the parts this engine creates or consumes.
const (
	RelTypeDocument  = NSRelationship + "/officeDocument"
	RelTypeStyles    = NSRelationship + "/styles"
	RelTypeSettings  = NSRelationship + "/settings"
	RelTypeNumbering = NSRelationship + "/numbering"
	RelTypeFootnotes = NSRelationship + "/footnotes"
	RelTypeEndnotes  = NSRelationship + "/endnotes"
	RelTypeHeader    = NSRelationship + "/header"
	RelTypeFooter    = NSRelationship + "/footer"
	RelTypeImage     = NSRelationship + "/image"
	RelTypeCore      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	RelTypeApp       = NSRelationship + "/extended-properties"
)

// Content types registered for each part kind.
const (
	ctPrefix = "application/vnd.openxmlformats-officedocument.wordprocessingml."

	CTDocument  = ctPrefix + "document.main+xml"
	CTStyles    = ctPrefix + "styles+xml"
	CTSettings  = ctPrefix + "settings+xml"
	CTNumbering = ctPrefix + "numbering+xml"
	CTFootnotes = ctPrefix + "footnotes+xml"
	CTEndnotes  = ctPrefix + "endnotes+xml"
	CTHeader    = ctPrefix + "header+xml"
	CTFooter    = ctPrefix + "footer+xml"
	CTCore      = "application/vnd.openxmlformats-package.core-properties+xml"
	CTApp       = "application/vnd.openxmlformats-officedocument.extended-properties+xml"
	CTRels      = "application/vnd.openxmlformats-package.relationships+xml"
	CTXML       = "application/xml"
)
