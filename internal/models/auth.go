package models

import "github.com/golang-jwt/jwt/v5"

// RoleAdmin is the only role issued by the login endpoint.
const RoleAdmin = "admin"

// AdminClaims is the JWT payload of an admin session.
type AdminClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}
