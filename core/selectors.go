package core

// Selectors locate the parts of the retailer's markup the pipeline reads.
type Selectors struct {
	ShopList  string `json:"shop_list"`
	ShopEntry string `json:"shop_entry"`

	PageBody    string `json:"page_body"`
	Fragment    string `json:"fragment"`
	Description string `json:"description"`
	Title       string `json:"title"`
	Dates       string `json:"dates"`
	Image       string `json:"image"`
}

// DefaultSelectors matches the markup of prospektmaschine.de.
func DefaultSelectors() Selectors {
	return Selectors{
		ShopList:    "ul#left-category-shops",
		ShopEntry:   "li",
		PageBody:    "div.page-body",
		Fragment:    "div.brochure-thumb",
		Description: "div.letak-description",
		Title:       "strong",
		Dates:       "small",
		Image:       "img",
	}
}
