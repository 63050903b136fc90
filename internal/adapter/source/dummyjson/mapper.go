package dummyjson

import "github.com/mmcdole/aisle/internal/domain"

// MapProduct converts an API product to a domain.Product
func MapProduct(p ProductDTO) domain.Product {
	return domain.Product{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price,
		Description: p.Description,
		Category:    p.Category,
		Rating:      p.Rating,
		Thumbnail:   p.Thumbnail,
	}
}

// MapProductPage converts a listing response. The caller has already checked
// that resp.Products is present.
func MapProductPage(resp ProductsResponse) *domain.ProductPage {
	products := make([]domain.Product, 0, len(*resp.Products))
	for _, p := range *resp.Products {
		products = append(products, MapProduct(p))
	}
	return &domain.ProductPage{
		Products: products,
		Total:    resp.Total,
		Skip:     resp.Skip,
		Limit:    resp.Limit,
	}
}
