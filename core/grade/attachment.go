package grade

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
)

// Attachment kinds
const (
	AttachmentImage AttachmentKind = "image"
	AttachmentPDF   AttachmentKind = "pdf"
)

var (
	ErrInvalidDataURL     = errors.New("attachment must be a base64 data URL")
	ErrAttachmentKind     = errors.New("attachment content does not match its type")
	ErrUnknownAttachment  = errors.New("attachment type must be one of image, pdf")
	ErrAttachmentTooLarge = errors.New("attachment is too large")
)

type AttachmentKind string

// Attachment is a scanned copy of a graded assignment.
type Attachment struct {
	Kind      AttachmentKind
	MediaType string
	Content   []byte
	FileName  string
}

// NewAttachment decodes a base64 data URL into an Attachment of the given kind.
func NewAttachment(kind AttachmentKind, dataURL, fileName string) (*Attachment, error) {
	if kind != AttachmentImage && kind != AttachmentPDF {
		return nil, ErrUnknownAttachment
	}
	mediaType, content, err := ParseDataURL(dataURL)
	if err != nil {
		return nil, err
	}
	return &Attachment{
		Kind:      kind,
		MediaType: mediaType,
		Content:   content,
		FileName:  fileName,
	}, nil
}

// ParseDataURL splits a `data:<media type>;base64,<payload>` URL into its media type and decoded payload.
func ParseDataURL(dataURL string) (string, []byte, error) {
	if !strings.HasPrefix(dataURL, "data:") {
		return "", nil, ErrInvalidDataURL
	}
	sep := strings.IndexByte(dataURL, ',')
	if sep < 0 {
		return "", nil, ErrInvalidDataURL
	}
	meta, payload := dataURL[len("data:"):sep], dataURL[sep+1:]
	if !strings.HasSuffix(meta, ";base64") {
		return "", nil, ErrInvalidDataURL
	}
	mediaType := strings.TrimSuffix(meta, ";base64")

	content, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, errors.Wrap(ErrInvalidDataURL, err.Error())
	}
	return mediaType, content, nil
}

// DataURL encodes the attachment back into a base64 data URL.
func (a Attachment) DataURL() string {
	mediaType := a.MediaType
	if mediaType == "" {
		mediaType = mimetype.Detect(a.Content).String()
	}
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(a.Content)
}

// ContentType is the media type to serve the attachment with.
func (a Attachment) ContentType() string {
	if a.MediaType != "" {
		return a.MediaType
	}
	return mimetype.Detect(a.Content).String()
}

// Check makes sure the attachment content fits in maxSize bytes and that its sniffed type agrees with its Kind.
func (a *Attachment) Check(maxSize int) error {
	if maxSize > 0 && len(a.Content) > maxSize {
		return errors.Wrap(ErrAttachmentTooLarge, fmt.Sprintf("max %d bytes", maxSize))
	}

	detected := mimetype.Detect(a.Content)
	switch a.Kind {
	case AttachmentImage:
		if !strings.HasPrefix(detected.String(), "image/") {
			return ErrAttachmentKind
		}
	case AttachmentPDF:
		if !detected.Is("application/pdf") {
			return ErrAttachmentKind
		}
	default:
		return ErrUnknownAttachment
	}
	if a.MediaType == "" {
		a.MediaType = detected.String()
	}
	return nil
}
