package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims is the token payload carried by authenticated requests.
type JWTClaims struct {
	EmployeeID string `json:"employeeId"`
	Role       Role   `json:"role"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	jwt.RegisteredClaims
}

// LoginResult is the payload of a successful login mutation.
type LoginResult struct {
	Token    string    `json:"token"`
	Employee *Employee `json:"employee"`
}
