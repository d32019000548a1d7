package domain

// Product is one entry of the fixed bake-sale catalog.
type Product struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Catalog is the full product list offered at the event. Prices are in
// reais and do not change per reservation.
var Catalog = []Product{
	{ID: "palha-italiana", Name: "Palha Italiana", Price: 6.00},
	{ID: "cookie", Name: "Cookie", Price: 7.00},
	{ID: "cake-pop", Name: "Cake Pop", Price: 4.50},
	{ID: "biscoito-amantegado", Name: "Biscoito Amantegado", Price: 5.00},
}

// ProductByID looks a product up in the catalog.
func ProductByID(id string) (Product, bool) {
	for _, p := range Catalog {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
