package dummyjson

// ProductsResponse is the body of every /products listing endpoint.
// Products is a pointer so a missing or null field can be told apart from [].
type ProductsResponse struct {
	Products *[]ProductDTO `json:"products"`
	Total    int           `json:"total"`
	Skip     int           `json:"skip"`
	Limit    int           `json:"limit"`
}

// ProductDTO is one product as returned by the API
type ProductDTO struct {
	ID                 int      `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Category           string   `json:"category"`
	Price              float64  `json:"price"`
	DiscountPercentage float64  `json:"discountPercentage,omitempty"`
	Rating             float64  `json:"rating"`
	Stock              int      `json:"stock,omitempty"`
	Brand              string   `json:"brand,omitempty"`
	Tags               []string `json:"tags,omitempty"`
	Thumbnail          string   `json:"thumbnail"`
}
