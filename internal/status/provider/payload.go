package provider

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidPayload is returned for any signed payload that fails
// verification or lacks a message.
var ErrInvalidPayload = errors.New("invalid signed status payload")

// Payload is the verified content of an approved status.
type Payload struct {
	Message   string
	ColorCode string
}

type payloadClaims struct {
	Status struct {
		Message   string `json:"message"`
		ColorCode string `json:"color_code"`
	} `json:"as_status"`
	jwt.RegisteredClaims
}

// PayloadDecoder verifies HMAC-signed status payloads with the shared secret.
type PayloadDecoder struct {
	secret []byte
}

func NewPayloadDecoder(secret string) *PayloadDecoder {
	return &PayloadDecoder{secret: []byte(secret)}
}

func (d *PayloadDecoder) Decode(signed string) (Payload, error) {
	if signed == "" {
		return Payload{}, fmt.Errorf("%w: empty payload", ErrInvalidPayload)
	}

	claims := &payloadClaims{}
	parsed, err := jwt.ParseWithClaims(signed, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return d.secret, nil
	})
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	if !parsed.Valid {
		return Payload{}, ErrInvalidPayload
	}
	if claims.Status.Message == "" {
		return Payload{}, fmt.Errorf("%w: missing as_status.message", ErrInvalidPayload)
	}

	return Payload{
		Message:   claims.Status.Message,
		ColorCode: claims.Status.ColorCode,
	}, nil
}
