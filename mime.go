package cyprus

// Mime is a media type used as the value of the Content-Type header.
type Mime string

const (
	MimeJSON        Mime = "application/json"
	MimeJavaScript  Mime = "application/javascript"
	MimeOctetStream Mime = "application/octet-stream"
	MimePDF         Mime = "application/pdf"
	MimeXML         Mime = "application/xml"
	MimeZip         Mime = "application/zip"
	MimeGIF         Mime = "image/gif"
	MimeJPEG        Mime = "image/jpeg"
	MimeSVG         Mime = "image/svg+xml"
	MimeWebP        Mime = "image/webp"
	MimeIcon        Mime = "image/x-icon"
	MimeWOFF2       Mime = "font/woff2"
	MimeCSS         Mime = "text/css"
	MimeCSV         Mime = "text/csv"
	MimeHTML        Mime = "text/html"
	MimePlain       Mime = "text/plain"
)

// Branding header sent with every response unless branding is removed.
const (
	BrandingHeader = "X-Powered-By"
	BrandingValue  = "cyprus"
)
