// Package catalog serves the storefront's product list: streaming-device
// bundles and subscription plans.
package catalog

import (
	"errors"
	"fmt"

	"github.com/nikolayk812/streamstick/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

var ErrProductNotFound = errors.New("product not found")

const ImageBucket = "images"

type Catalog struct {
	products []domain.Product
	byID     map[string]int
}

func New(products []domain.Product) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]int, len(products))}
	for _, p := range products {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("p.Validate: %w", err)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("product[%s] is duplicated", p.ID)
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c, nil
}

// Default builds the stock catalog with image URLs under storageBaseURL.
func Default(storageBaseURL string, unit currency.Unit) (*Catalog, error) {
	return New(defaultProducts(storageBaseURL, unit))
}

func (c *Catalog) List() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Catalog) ByType(t domain.ProductType) []domain.Product {
	var out []domain.Product
	for _, p := range c.products {
		if p.Type == t {
			out = append(out, p)
		}
	}
	return out
}

func (c *Catalog) Get(id string) (domain.Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("product[%s]: %w", id, ErrProductNotFound)
	}
	return c.products[i], nil
}

func defaultProducts(storageBaseURL string, unit currency.Unit) []domain.Product {
	price := func(s string) domain.Money {
		return domain.NewMoney(decimal.RequireFromString(s), unit)
	}

	firestickHD := StorageURL(storageBaseURL, ImageBucket, "firestick-hd.jpg")
	firestick4K := StorageURL(storageBaseURL, ImageBucket, "firestick-4k.jpg")
	firestick4KMax := StorageURL(storageBaseURL, ImageBucket, "firestick-4k-max.jpg")
	subscription := StorageURL(storageBaseURL, ImageBucket, "iptv-subscription.jpg")

	streaming := []string{
		"18,000+ Live TV Channels",
		"60,000+ Movies & TV Shows",
		"All Sports & PPV Events",
	}
	bundle := func(head []string, tail ...string) []string {
		out := append([]string{}, head...)
		out = append(out, "1 Year IPTV Subscription Included")
		out = append(out, streaming...)
		return append(out, tail...)
	}
	plan := func(support ...string) []string {
		out := append([]string{}, streaming...)
		out = append(out, "4K/HD Quality Streaming", "Works on All Devices")
		return append(out, support...)
	}

	return []domain.Product{
		{
			ID:       "firestick-hd",
			Name:     "Fire Stick HD - Jailbroken & Ready",
			Price:    price("140.00"),
			Type:     domain.ProductTypeHardwareBundle,
			Image:    firestickHD,
			Badge:    "STARTER",
			Features: bundle([]string{"Fire TV Stick HD Streaming", "1080p Full HD Resolution"}, "Pre-configured & Ready to Use", "24/7 Customer Support"),
		},
		{
			ID:       "firestick-4k",
			Name:     "Fire Stick 4K - Jailbroken & Ready",
			Price:    price("150.00"),
			Type:     domain.ProductTypeHardwareBundle,
			Image:    firestick4K,
			Badge:    "BEST VALUE",
			Popular:  true,
			Features: bundle([]string{"Fire TV Stick 4K Streaming", "4K Ultra HD Resolution", "Dolby Vision & HDR10+"}, "Pre-configured & Ready to Use", "24/7 Customer Support"),
		},
		{
			ID:       "firestick-4k-max",
			Name:     "Fire Stick 4K Max - Jailbroken & Ready",
			Price:    price("160.00"),
			Type:     domain.ProductTypeHardwareBundle,
			Image:    firestick4KMax,
			Badge:    "PREMIUM",
			Features: bundle([]string{"Fire TV Stick 4K Max - Fastest Model", "4K Ultra HD with Wi-Fi 6E", "Dolby Vision, Atmos & HDR10+"}, "Ambient Experience Support", "Pre-configured & Ready to Use", "24/7 Customer Support"),
		},
		{
			ID:       "iptv-1-month",
			Name:     "1 Month IPTV Subscription",
			Price:    price("15.00"),
			Type:     domain.ProductTypeSubscription,
			Image:    subscription,
			Badge:    "TRIAL",
			Period:   "/month",
			Features: plan("24/7 Customer Support"),
		},
		{
			ID:       "iptv-3-month",
			Name:     "3 Month IPTV Subscription",
			Price:    price("30.00"),
			Type:     domain.ProductTypeSubscription,
			Image:    subscription,
			Badge:    "POPULAR",
			Popular:  true,
			Period:   "/3 months",
			Features: plan("Priority Customer Support"),
		},
		{
			ID:       "iptv-6-month",
			Name:     "6 Month IPTV Subscription",
			Price:    price("50.00"),
			Type:     domain.ProductTypeSubscription,
			Image:    subscription,
			Badge:    "GREAT VALUE",
			Period:   "/6 months",
			Features: plan("VIP Customer Support"),
		},
		{
			ID:       "iptv-12-month",
			Name:     "1 Year IPTV Subscription",
			Price:    price("75.00"),
			Type:     domain.ProductTypeSubscription,
			Image:    subscription,
			Badge:    "BEST VALUE",
			Period:   "/year",
			Features: plan("Premium VIP Support", "Free Setup Assistance"),
		},
	}
}
