package enums

import "fmt"

// ProductSource marks where a merged catalog entry originated.
type ProductSource string

const (
	// ProductSourceCatalog tags items fetched from the external feed.
	ProductSourceCatalog ProductSource = "catalog"
	// ProductSourceAdmin tags items authored through the admin panel.
	ProductSourceAdmin ProductSource = "admin"
)

func (s ProductSource) String() string {
	return string(s)
}

func (s ProductSource) IsValid() bool {
	switch s {
	case ProductSourceCatalog, ProductSourceAdmin:
		return true
	}
	return false
}

func ParseProductSource(value string) (ProductSource, error) {
	source := ProductSource(value)
	if !source.IsValid() {
		return "", fmt.Errorf("invalid product source %q", value)
	}
	return source, nil
}
