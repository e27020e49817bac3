package grade

import (
	"encoding/base64"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngContent = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	pdfContent = []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")
)

func dataURL(mediaType string, content []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(content)
}

func TestParseDataURL(t *testing.T) {
	tests := []struct {
		name          string
		url           string
		wantMediaType string
		wantContent   []byte
		wantErr       bool
	}{
		{name: "png", url: dataURL("image/png", pngContent), wantMediaType: "image/png", wantContent: pngContent},
		{name: "no media type", url: dataURL("", pdfContent), wantMediaType: "", wantContent: pdfContent},
		{name: "not a data url", url: "https://example.com/a.png", wantErr: true},
		{name: "no payload separator", url: "data:image/png;base64", wantErr: true},
		{name: "not base64", url: "data:text/plain,hello", wantErr: true},
		{name: "bad base64", url: "data:image/png;base64,%%%", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mediaType, content, err := ParseDataURL(tt.url)
			if tt.wantErr {
				assert.Equal(t, ErrInvalidDataURL, errors.Cause(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMediaType, mediaType)
			assert.Equal(t, tt.wantContent, content)
		})
	}
}

func TestNewAttachment(t *testing.T) {
	att, err := NewAttachment(AttachmentImage, dataURL("image/png", pngContent), "scan.png")
	require.NoError(t, err)
	assert.Equal(t, &Attachment{Kind: AttachmentImage, MediaType: "image/png", Content: pngContent, FileName: "scan.png"}, att)
	assert.Equal(t, dataURL("image/png", pngContent), att.DataURL())

	_, err = NewAttachment("doc", dataURL("image/png", pngContent), "")
	assert.Equal(t, ErrUnknownAttachment, err)
}

func TestAttachment_Check(t *testing.T) {
	tests := []struct {
		name    string
		att     Attachment
		maxSize int
		wantErr error
	}{
		{name: "image", att: Attachment{Kind: AttachmentImage, Content: pngContent}, maxSize: 1000},
		{name: "pdf", att: Attachment{Kind: AttachmentPDF, Content: pdfContent}, maxSize: 1000},
		{name: "no limit", att: Attachment{Kind: AttachmentPDF, Content: pdfContent}},
		{name: "too large", att: Attachment{Kind: AttachmentImage, Content: pngContent}, maxSize: 10, wantErr: ErrAttachmentTooLarge},
		{name: "pdf sent as image", att: Attachment{Kind: AttachmentImage, Content: pdfContent}, maxSize: 1000, wantErr: ErrAttachmentKind},
		{name: "image sent as pdf", att: Attachment{Kind: AttachmentPDF, Content: pngContent}, maxSize: 1000, wantErr: ErrAttachmentKind},
		{name: "text", att: Attachment{Kind: AttachmentPDF, Content: []byte("hello")}, maxSize: 1000, wantErr: ErrAttachmentKind},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			att := tt.att
			err := att.Check(tt.maxSize)
			assert.Equal(t, tt.wantErr, errors.Cause(err))
		})
	}
}

func TestAttachment_Check_setsMediaType(t *testing.T) {
	att := Attachment{Kind: AttachmentPDF, Content: pdfContent}
	require.NoError(t, att.Check(0))
	assert.Equal(t, "application/pdf", att.MediaType)
	assert.Equal(t, "application/pdf", att.ContentType())
}
