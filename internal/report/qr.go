package report

import (
	"bytes"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// RejectionQRCode creates a QR code PNG encoding rep's filename and
// correlation ID, so a technician can scan it to pull up the full rejection
// record without retyping either.
func RejectionQRCode(rep RejectionReport, size int) ([]byte, error) {
	if rep.Filename == "" {
		return nil, fmt.Errorf("rejection report has no filename")
	}
	if size <= 0 {
		size = 128
	}
	payload := fmt.Sprintf("%s|%s", rep.Filename, rep.CorrelationID)
	png, err := qrcode.Encode(payload, qrcode.Medium, size)
	if err != nil {
		return nil, err
	}
	return png, nil
}

func newByteReader(b []byte) *bytes.Reader {
	return bytes.NewReader(b)
}
