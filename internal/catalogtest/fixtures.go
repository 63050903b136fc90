package catalogtest

import "github.com/mmcdole/aisle/internal/domain"

// SampleCategories returns the category list served by NewServer
func SampleCategories() []string {
	return []string{"beauty", "furniture", "laptops", "smartphones"}
}

// SampleProducts returns a small catalog spanning every sample category
func SampleProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Title: "Essence Mascara Lash Princess", Price: 9.99, Description: "Volumizing mascara", Category: "beauty", Rating: 4.94, Thumbnail: "https://cdn.example/1.webp"},
		{ID: 2, Title: "Eyeshadow Palette with Mirror", Price: 19.99, Description: "Palette with a built-in mirror", Category: "beauty", Rating: 3.28, Thumbnail: "https://cdn.example/2.webp"},
		{ID: 11, Title: "Annibale Colombo Bed", Price: 1899.99, Description: "Luxurious bed frame", Category: "furniture", Rating: 4.14, Thumbnail: "https://cdn.example/11.webp"},
		{ID: 12, Title: "Annibale Colombo Sofa", Price: 2499.99, Description: "Sofa with a timeless design", Category: "furniture", Rating: 3.08, Thumbnail: "https://cdn.example/12.webp"},
		{ID: 78, Title: "Apple MacBook Pro 14 Inch Space Grey", Price: 1999.99, Description: "Laptop with M1 chip", Category: "laptops", Rating: 3.65, Thumbnail: "https://cdn.example/78.webp"},
		{ID: 121, Title: "iPhone 5s", Price: 199.99, Description: "Classic phone with fingerprint sensor", Category: "smartphones", Rating: 2.83, Thumbnail: "https://cdn.example/121.webp"},
		{ID: 122, Title: "iPhone 6", Price: 299.99, Description: "Stylish phone with a larger display", Category: "smartphones", Rating: 3.41, Thumbnail: "https://cdn.example/122.webp"},
		{ID: 123, Title: "iPhone 13 Pro", Price: 1099.99, Description: "Flagship phone with ProMotion", Category: "smartphones", Rating: 4.12, Thumbnail: "https://cdn.example/123.webp"},
	}
}
