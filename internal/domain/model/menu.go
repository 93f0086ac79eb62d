package model

// MenuItem is a sellable dish. The menu is the authoritative price source
// for order validation.
type MenuItem struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Desc  string  `json:"desc"`
	Price float64 `json:"price"`
}
