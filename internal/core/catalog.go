package core

import "net/url"

// Product is one crop the farm sells. The catalog is fixed at startup;
// products are never created or removed at runtime.
type Product struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image"`
}

// FallbackImageURL derives a deterministic avatar image from the product
// name, used when the primary image cannot be loaded.
func (p Product) FallbackImageURL() string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(p.Name) +
		"&size=400&background=667eea&color=fff&bold=true&font-size=0.4"
}

// Catalog is the ordered, immutable product list.
type Catalog []Product

// ByID returns the product with the given id. A dangling reference
// resolves to the zero Product so display falls back to an empty name.
func (c Catalog) ByID(id int) (Product, bool) {
	for _, p := range c {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// DefaultCatalog returns the crops the farm tracks.
func DefaultCatalog() Catalog {
	return Catalog{
		{ID: 1, Name: "கோவக்காய்", ImageURL: "https://images.pexels.com/photos/1359326/pexels-photo-1359326.jpeg?auto=compress&cs=tinysrgb&w=400"},
		{ID: 2, Name: "புடலங்காய்", ImageURL: "https://images.pexels.com/photos/1435904/pexels-photo-1435904.jpeg?auto=compress&cs=tinysrgb&w=400"},
		{ID: 3, Name: "வேர்கடலை", ImageURL: "https://images.pexels.com/photos/1295572/pexels-photo-1295572.jpeg?auto=compress&cs=tinysrgb&w=400"},
		{ID: 4, Name: "பாகற்காய்", ImageURL: "https://images.pexels.com/photos/1414651/pexels-photo-1414651.jpeg?auto=compress&cs=tinysrgb&w=400"},
		{ID: 5, Name: "சுரைக்காய்", ImageURL: "https://images.pexels.com/photos/1656663/pexels-photo-1656663.jpeg?auto=compress&cs=tinysrgb&w=400"},
	}
}
