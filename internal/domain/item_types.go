package domain

// ItemType is the catalog role of the page being rendered.
type ItemType int

const (
	ItemTypeUnknown ItemType = iota
	ItemTypeCategory
	ItemTypeProduct
)

func (t ItemType) String() string {
	switch t {
	case ItemTypeCategory:
		return "Category"
	case ItemTypeProduct:
		return "Product"
	default:
		return "Unknown"
	}
}

// IsCatalogPage reports whether pages of this type are backed by a catalog item.
func (t ItemType) IsCatalogPage() bool {
	return t == ItemTypeCategory || t == ItemTypeProduct
}
