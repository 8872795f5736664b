package domain

import (
	"fmt"
)

type ProductType string

const (
	ProductTypeHardwareBundle ProductType = "hardware-bundle"
	ProductTypeSubscription   ProductType = "subscription"
)

func ParseProductType(s string) (ProductType, error) {
	switch t := ProductType(s); t {
	case ProductTypeHardwareBundle, ProductTypeSubscription:
		return t, nil
	default:
		return "", fmt.Errorf("product type[%s] is not valid", s)
	}
}

type Product struct {
	ID       string
	Name     string
	Price    Money
	Type     ProductType
	Image    string
	Badge    string
	Popular  bool
	Period   string
	Features []string
}

func (p Product) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("product id is empty")
	}
	if p.Name == "" {
		return fmt.Errorf("product[%s] name is empty", p.ID)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("product[%s] price is negative", p.ID)
	}
	if _, err := ParseProductType(string(p.Type)); err != nil {
		return fmt.Errorf("product[%s]: %w", p.ID, err)
	}
	return nil
}
