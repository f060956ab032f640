package catalog

import (
	"net/url"
	"testing"
)

func TestShareText(t *testing.T) {
	p := Product{Name: "Pen", Price: "100", Description: "Blue ink"}
	if got := ShareText(p); got != "Pen\nPrice: 100\nBlue ink" {
		t.Fatalf("got %q", got)
	}

	p.Description = ""
	if got := ShareText(p); got != "Pen\nPrice: 100\n" {
		t.Fatalf("got %q", got)
	}
}

func TestShareLink(t *testing.T) {
	p := Product{Name: "Pen & Ink", Price: "100", Description: "50% off"}

	tests := []struct {
		base   string
		prefix string
	}{
		{base: "", prefix: "https://wa.me/"},
		{base: "https://wa.me/15551234567", prefix: "https://wa.me/15551234567"},
		{base: "https://share.example/send?app=1", prefix: "https://share.example/send"},
	}

	for _, tt := range tests {
		link := ShareLink(tt.base, p)

		u, err := url.Parse(link)
		if err != nil {
			t.Fatalf("parse %q: %v", link, err)
		}
		if got := u.Query().Get("text"); got != ShareText(p) {
			t.Fatalf("text=%q", got)
		}
		if got := u.Scheme + "://" + u.Host + u.Path; got != tt.prefix {
			t.Fatalf("link %q has base %q", link, got)
		}
	}
}
