package formatx

import (
	"context"
	"html"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/dmitrijs2005/scholarhub/internal/logging"
	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// PlainText strips markup from server-provided text so it can be printed
// in a terminal.
func PlainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

// CopyToClipboard puts text on the system clipboard. Failures are logged
// and reported as false.
func CopyToClipboard(ctx context.Context, log logging.Logger, text string) bool {
	if err := writeClipboard(text); err != nil {
		log.Warn(ctx, "failed to copy to clipboard", "error", err)
		return false
	}
	return true
}
