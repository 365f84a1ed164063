package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/scholarhub/internal/client/services"
	"github.com/dmitrijs2005/scholarhub/internal/logging"
	"github.com/skip2/go-qrcode"
)

// newTerminalOpener shows a URL in the terminal together with a QR code so
// it can be opened on another device.
func newTerminalOpener(w io.Writer, logger logging.Logger) services.Opener {
	return services.OpenerFunc(func(url string) {
		fmt.Fprintln(w, url)

		qr, err := qrcode.New(url, qrcode.Medium)
		if err != nil {
			logger.Warn(context.Background(), "qr code", "url", url, "error", err)
			return
		}
		fmt.Fprint(w, qr.ToSmallString(false))
	})
}
