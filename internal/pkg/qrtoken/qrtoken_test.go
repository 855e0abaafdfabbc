package qrtoken

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-coupon-signing-secret"
	testIssuer = "mealcoupon-backend"
)

func newTestCodec(ttl time.Duration) *Codec {
	return NewCodec(testSecret, testIssuer, ttl)
}

func TestCodec_EmployeeRoundtrip(t *testing.T) {
	t.Parallel()
	codec := newTestCodec(10 * time.Minute)

	code := codec.EncodeEmployee("user-1", "100234")

	payload, err := codec.Decode(code)
	require.NoError(t, err)

	emp, ok := payload.(EmployeePayload)
	require.True(t, ok)
	assert.Equal(t, "user-1", emp.UserID)
	assert.Equal(t, "100234", emp.EmployeeNumber)
	assert.Equal(t, TypeEmployee, emp.PayloadType())
}

func TestCodec_VendorStationRoundtrip(t *testing.T) {
	t.Parallel()
	codec := newTestCodec(10 * time.Minute)

	code := codec.EncodeVendorStation("station-7", "Cafe Annex")

	payload, err := codec.Decode(code)
	require.NoError(t, err)

	station, ok := payload.(VendorStationPayload)
	require.True(t, ok)
	assert.Equal(t, "station-7", station.StationID)
	assert.Equal(t, "Cafe Annex", station.Vendor)
}

func TestCodec_CouponRoundtrip(t *testing.T) {
	t.Parallel()
	codec := newTestCodec(10 * time.Minute)
	date := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	code, err := codec.IssueCoupon("user-1", "100234", 160, date)
	require.NoError(t, err)

	payload, err := codec.Decode(code)
	require.NoError(t, err)

	coupon, ok := payload.(CouponPayload)
	require.True(t, ok)
	assert.Equal(t, "user-1", coupon.UserID)
	assert.Equal(t, "100234", coupon.EmployeeNumber)
	assert.Equal(t, 160, coupon.Amount)
	assert.Equal(t, "2026-01-05", coupon.Date)
	assert.Equal(t, testIssuer, coupon.Issuer)
	assert.NotEmpty(t, coupon.Nonce)
}

func TestCodec_Decode_Garbage(t *testing.T) {
	t.Parallel()
	codec := newTestCodec(10 * time.Minute)

	_, err := codec.Decode("not base64 at all!!")
	assert.ErrorIs(t, err, ErrMalformedPayload)

	_, err = codec.Decode(base64.StdEncoding.EncodeToString([]byte("not json")))
	assert.ErrorIs(t, err, ErrMalformedPayload)

	_, err = codec.Decode(base64.StdEncoding.EncodeToString([]byte(`{"type":"mystery"}`)))
	assert.ErrorIs(t, err, ErrMalformedPayload)
}

func TestCodec_Decode_MissingFields(t *testing.T) {
	t.Parallel()
	codec := newTestCodec(10 * time.Minute)

	_, err := codec.Decode(base64.StdEncoding.EncodeToString([]byte(`{"type":"employee"}`)))
	assert.ErrorIs(t, err, ErrMalformedPayload)

	_, err = codec.Decode(base64.StdEncoding.EncodeToString([]byte(`{"type":"coupon"}`)))
	assert.ErrorIs(t, err, ErrMalformedPayload)
}

func TestCodec_Coupon_TamperedSignature(t *testing.T) {
	t.Parallel()
	issuing := newTestCodec(10 * time.Minute)
	verifying := NewCodec("a-different-secret", testIssuer, 10*time.Minute)

	code, err := issuing.IssueCoupon("user-1", "100234", 160, time.Now())
	require.NoError(t, err)

	_, err = verifying.Decode(code)
	assert.ErrorIs(t, err, ErrInvalidCoupon)
}

func TestCodec_Coupon_WrongIssuer(t *testing.T) {
	t.Parallel()
	issuing := NewCodec(testSecret, "someone-else", 10*time.Minute)
	verifying := newTestCodec(10 * time.Minute)

	code, err := issuing.IssueCoupon("user-1", "100234", 160, time.Now())
	require.NoError(t, err)

	_, err = verifying.Decode(code)
	assert.ErrorIs(t, err, ErrInvalidCoupon)
}

func TestCodec_Coupon_Expired(t *testing.T) {
	t.Parallel()
	codec := newTestCodec(-1 * time.Minute)

	code, err := codec.IssueCoupon("user-1", "100234", 160, time.Now())
	require.NoError(t, err)

	_, err = codec.Decode(code)
	assert.ErrorIs(t, err, ErrInvalidCoupon)
}
