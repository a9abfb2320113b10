package models

import "time"

// Order is a single row of the administrative order list.
type Order struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Status       string    `json:"status"`
	CustomerName string    `json:"customer_name"`
	Total        int64     `json:"total"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// OrderStatus is a lifecycle state known to the shop.
type OrderStatus struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}
