package domain

// CategoryRef is one entry of an item's breadcrumb in the catalog
type CategoryRef struct {
	ID   string `json:"id"`   // Category ID extracted from the link
	Name string `json:"name"` // Display name like "Gift Ideas"
	URL  string `json:"url"`  // Full URL to the category page
}

// CatalogItem is a product or category resolved from the catalog search backend
type CatalogItem struct {
	ID               string        `json:"id"`
	Catalog          string        `json:"catalog"`
	Name             string        `json:"name,omitempty"`
	IsProduct        bool          `json:"is_product"`
	URL              string        `json:"url,omitempty"`
	ImageURL         string        `json:"image_url,omitempty"`
	ParentCategories []CategoryRef `json:"parent_categories,omitempty"`
}

// Storefront is the store configuration of the site being served
type Storefront struct {
	Name              string `json:"name"`
	Catalog           string `json:"catalog"`
	GiftCardPageLink  string `json:"gift_card_page_link,omitempty"`
	GiftCardProductID string `json:"gift_card_product_id,omitempty"`
}
