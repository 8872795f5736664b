package domain

type CartItem struct {
	ID       string
	Name     string
	Price    Money
	Type     ProductType
	Image    string
	Quantity int
}

func (i CartItem) LineTotal() Money {
	return i.Price.Mul(i.Quantity)
}
