package constants

// Attachment limits enforced before a log upload is attempted
const (
	MaxImageBytes int64 = 10 * 1024 * 1024
	MaxVideoBytes int64 = 100 * 1024 * 1024

	MimeJPEG      = "image/jpeg"
	MimePNG       = "image/png"
	MimeWebP      = "image/webp"
	MimeMP4       = "video/mp4"
	MimeQuickTime = "video/quicktime"
)

// AllowedMediaTypes lists the MIME types the backend accepts for log attachments
var AllowedMediaTypes = []string{MimeJPEG, MimePNG, MimeWebP, MimeMP4, MimeQuickTime}
