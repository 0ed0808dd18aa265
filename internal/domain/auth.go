package domain

import "github.com/golang-jwt/jwt/v5"

// Claims são as claims do token emitido pelo serviço de autenticação da
// plataforma. Este serviço apenas verifica o token; a emissão é upstream.
type Claims struct {
	SellerID string `json:"seller_id"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

const (
	RoleAdmin  = "admin"
	RoleSeller = "seller"
)
