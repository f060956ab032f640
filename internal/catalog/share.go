package catalog

import (
	"net/url"
	"strings"
)

const DefaultShareBase = "https://wa.me/"

// ShareText renders the message handed to an external messaging app.
func ShareText(p Product) string {
	return p.Name + "\nPrice: " + p.Price + "\n" + p.Description
}

// ShareLink builds a click-to-chat style link carrying ShareText as the text
// query parameter.
func ShareLink(base string, p Product) string {
	if base == "" {
		base = DefaultShareBase
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + "text=" + url.QueryEscape(ShareText(p))
}
