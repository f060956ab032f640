package catalog

import "strings"

// Search returns, in catalog order, every product whose name, price or
// description contains query, ignoring case. A blank query matches all.
// The result is a new slice; the catalog is never reordered.
func (c *Controller) Search(query string) []Product {
	q := strings.ToLower(strings.TrimSpace(query))

	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Product, 0, len(c.doc.Products))
	for _, p := range c.doc.Products {
		if q == "" || matches(p, q) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p Product, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(p.Name), lowerQuery) ||
		strings.Contains(strings.ToLower(p.Price), lowerQuery) ||
		strings.Contains(strings.ToLower(p.Description), lowerQuery)
}
