package entity

// Order represents an order returned by the order-search API.
// Only the details are decoded; orderId is not typed consistently upstream.
type Order struct {
	Details OrderDetails `json:"orderDetails"`
}

// OrderDetails holds the nested order payload
type OrderDetails struct {
	Status   string    `json:"orderStatus"`
	Products []Product `json:"productsResults"`
}

// Product represents a single product line of an order
type Product struct {
	Name string `json:"productName"`
}

// Status is an order status understood by the order-search API
type Status string

const (
	StatusOnOrder         Status = "on_order"
	StatusWaitForDispatch Status = "wait_for_dispatch"
)

// Category is a grouping of orders counted independently
type Category string

const (
	CategoryRealizowane Category = "realizowane" // orders in progress
	CategoryOczekuje    Category = "oczekuje"    // orders waiting for dispatch
	CategoryWszystko    Category = "wszystko"    // both lists concatenated
)

// Row is a spreadsheet record keyed by header name
type Row map[string]string
