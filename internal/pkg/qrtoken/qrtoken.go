package qrtoken

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// QR payloads are base64-encoded JSON objects with a `type` discriminant.
// The coupon variant wraps an HMAC-signed JWT; the signature is verified
// before any redemption write, so holding the encoding scheme is not enough
// to mint a redeemable coupon.

type PayloadType string

const (
	TypeEmployee      PayloadType = "employee"
	TypeVendorStation PayloadType = "vendor_station"
	TypeCoupon        PayloadType = "coupon"
)

var (
	ErrMalformedPayload = errors.New("malformed qr payload")
	ErrInvalidCoupon    = errors.New("coupon token failed verification")
)

type Payload interface {
	PayloadType() PayloadType
}

// EmployeePayload identifies an employee to a vendor kiosk.
type EmployeePayload struct {
	Type           PayloadType `json:"type"`
	UserID         string      `json:"user_id"`
	EmployeeNumber string      `json:"employee_number"`
}

func (p EmployeePayload) PayloadType() PayloadType { return TypeEmployee }

// VendorStationPayload identifies a redemption station to an employee app.
type VendorStationPayload struct {
	Type      PayloadType `json:"type"`
	StationID string      `json:"station_id"`
	Vendor    string      `json:"vendor"`
}

func (p VendorStationPayload) PayloadType() PayloadType { return TypeVendorStation }

// CouponPayload is the verified content of a signed coupon token.
type CouponPayload struct {
	UserID         string
	EmployeeNumber string
	Amount         int
	Date           string
	Issuer         string
	Nonce          string
	ExpiresAt      time.Time
}

func (p CouponPayload) PayloadType() PayloadType { return TypeCoupon }

// rawEnvelope is the common wire shape before the discriminant switch.
type rawEnvelope struct {
	Type           PayloadType `json:"type"`
	UserID         string      `json:"user_id,omitempty"`
	EmployeeNumber string      `json:"employee_number,omitempty"`
	StationID      string      `json:"station_id,omitempty"`
	Vendor         string      `json:"vendor,omitempty"`
	Token          string      `json:"token,omitempty"`
}

type Codec struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewCodec(secret string, issuer string, couponTTL time.Duration) *Codec {
	return &Codec{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    couponTTL,
	}
}

// CouponTTL returns the validity window applied to issued coupon tokens.
func (c *Codec) CouponTTL() time.Duration {
	return c.ttl
}

func encode(v interface{}) string {
	raw, _ := json.Marshal(v)
	return base64.StdEncoding.EncodeToString(raw)
}

// EncodeEmployee builds the identity payload shown in the employee app.
func (c *Codec) EncodeEmployee(userID, employeeNumber string) string {
	return encode(EmployeePayload{
		Type:           TypeEmployee,
		UserID:         userID,
		EmployeeNumber: employeeNumber,
	})
}

// EncodeVendorStation builds the payload printed at a vendor kiosk.
func (c *Codec) EncodeVendorStation(stationID, vendor string) string {
	return encode(VendorStationPayload{
		Type:      TypeVendorStation,
		StationID: stationID,
		Vendor:    vendor,
	})
}

// IssueCoupon mints a signed, expiring coupon token for the given employee
// and calendar date.
func (c *Codec) IssueCoupon(userID, employeeNumber string, amount int, date time.Time) (string, error) {
	now := time.Now()
	tok, err := jwt.NewBuilder().
		Issuer(c.issuer).
		JwtID(uuid.NewString()).
		IssuedAt(now).
		Expiration(now.Add(c.ttl)).
		Claim("type", string(TypeCoupon)).
		Claim("user_id", userID).
		Claim("employee_number", employeeNumber).
		Claim("amount", amount).
		Claim("date", date.Format("2006-01-02")).
		Build()
	if err != nil {
		return "", fmt.Errorf("build coupon token: %w", err)
	}

	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256, c.secret))
	if err != nil {
		return "", fmt.Errorf("sign coupon token: %w", err)
	}

	return encode(rawEnvelope{Type: TypeCoupon, Token: string(signed)}), nil
}

// Decode parses a scanned code into its structurally-typed payload. Coupon
// tokens have their signature and expiry verified here; a failure of either
// is indistinguishable from a malformed code to the caller.
func (c *Codec) Decode(code string) (Payload, error) {
	raw, err := base64.StdEncoding.DecodeString(code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	var env rawEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	switch env.Type {
	case TypeEmployee:
		if env.UserID == "" || env.EmployeeNumber == "" {
			return nil, fmt.Errorf("%w: employee payload missing fields", ErrMalformedPayload)
		}
		return EmployeePayload{Type: TypeEmployee, UserID: env.UserID, EmployeeNumber: env.EmployeeNumber}, nil

	case TypeVendorStation:
		if env.StationID == "" {
			return nil, fmt.Errorf("%w: station payload missing station_id", ErrMalformedPayload)
		}
		return VendorStationPayload{Type: TypeVendorStation, StationID: env.StationID, Vendor: env.Vendor}, nil

	case TypeCoupon:
		return c.verifyCoupon(env.Token)

	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrMalformedPayload, env.Type)
	}
}

func (c *Codec) verifyCoupon(token string) (CouponPayload, error) {
	if token == "" {
		return CouponPayload{}, fmt.Errorf("%w: empty coupon token", ErrMalformedPayload)
	}

	tok, err := jwt.Parse([]byte(token),
		jwt.WithKey(jwa.HS256, c.secret),
		jwt.WithValidate(true),
		jwt.WithIssuer(c.issuer),
	)
	if err != nil {
		return CouponPayload{}, fmt.Errorf("%w: %v", ErrInvalidCoupon, err)
	}

	payload := CouponPayload{
		Issuer:    tok.Issuer(),
		Nonce:     tok.JwtID(),
		ExpiresAt: tok.Expiration(),
	}
	if v, ok := tok.Get("user_id"); ok {
		payload.UserID, _ = v.(string)
	}
	if v, ok := tok.Get("employee_number"); ok {
		payload.EmployeeNumber, _ = v.(string)
	}
	if v, ok := tok.Get("amount"); ok {
		switch n := v.(type) {
		case float64:
			payload.Amount = int(n)
		case int64:
			payload.Amount = int(n)
		}
	}
	if v, ok := tok.Get("date"); ok {
		payload.Date, _ = v.(string)
	}

	if payload.EmployeeNumber == "" {
		return CouponPayload{}, fmt.Errorf("%w: coupon missing employee_number", ErrInvalidCoupon)
	}

	return payload, nil
}
