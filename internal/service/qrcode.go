package service

import (
	"fmt"
	"net/url"

	"github.com/skip2/go-qrcode"
)

const (
	qrImageEndpoint = "https://api.qrserver.com/v1/create-qr-code/"
	qrImageSize     = "300x300"
	qrPNGSize       = 256
)

// QRResolver derives the per-table menu link and its QR image sources.
type QRResolver struct {
	BaseURL string
}

func (r QRResolver) Link(tableNumber int) string {
	return fmt.Sprintf("%s/menu?table=%d", r.BaseURL, tableNumber)
}

// ImageURL delegates rendering to the external QR image endpoint.
func (r QRResolver) ImageURL(link string) string {
	return qrImageEndpoint + "?size=" + qrImageSize + "&data=" + url.QueryEscape(link)
}

// PNG encodes the table link locally, for deployments that cannot reach
// the external endpoint.
func (r QRResolver) PNG(tableNumber int) ([]byte, error) {
	return qrcode.Encode(r.Link(tableNumber), qrcode.Medium, qrPNGSize)
}
