package domain

type SellerStatus string

const (
	SellerStatusActive   SellerStatus = "ACTIVE"
	SellerStatusInactive SellerStatus = "INACTIVE"
)

type Seller struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Email  string       `json:"email"`
	Status SellerStatus `json:"status"`
}
