package catalog

import (
	"context"
	"reflect"
	"testing"
)

func TestController_Search(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	pen, _ := f.ctl.CreateProduct(ctx, ProductInput{Name: "Fountain Pen", Price: "100", Description: "Steel nib"})
	ink, _ := f.ctl.CreateProduct(ctx, ProductInput{Name: "Ink", Price: "25", Description: "For any PEN"})
	pad, _ := f.ctl.CreateProduct(ctx, ProductInput{Name: "Notepad", Price: "1005"})

	tests := []struct {
		query string
		want  []string
	}{
		{query: "", want: []string{pad.ID, ink.ID, pen.ID}},
		{query: "   ", want: []string{pad.ID, ink.ID, pen.ID}},
		{query: "pen", want: []string{ink.ID, pen.ID}},
		{query: "PEN", want: []string{ink.ID, pen.ID}},
		{query: " nib ", want: []string{pen.ID}},
		{query: "100", want: []string{pad.ID, pen.ID}},
		{query: "pad", want: []string{pad.ID}},
		{query: "zzz", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := ids(f.ctl.Search(tt.query)); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Search(%q)=%v want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestController_SearchReturnsFreshSlice(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, _ = f.ctl.CreateProduct(ctx, ProductInput{Name: "A", Price: "1"})
	_, _ = f.ctl.CreateProduct(ctx, ProductInput{Name: "B", Price: "2"})

	got := f.ctl.Search("")
	got[0].Name = "mutated"
	got[0], got[1] = got[1], got[0]

	again := f.ctl.Search("")
	if again[0].Name != "B" || again[1].Name != "A" {
		t.Fatalf("catalog affected by caller: %+v", again)
	}
}
