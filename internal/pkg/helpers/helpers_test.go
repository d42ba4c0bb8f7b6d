package helpers

import (
	"database/sql"
	"math"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/jobly/internal/pkg/apperrors"
)

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 90*time.Minute, ParseDuration("1h30m", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("soon", time.Hour))
}

func TestNullConversions(t *testing.T) {
	name := "C1"
	n := 3

	assert.Equal(t, sql.NullString{String: "C1", Valid: true}, GetNullString(&name))
	assert.Equal(t, sql.NullString{}, GetNullString(nil))
	assert.Equal(t, sql.NullInt64{Int64: 3, Valid: true}, GetNullInt(&n))
	assert.Equal(t, sql.NullInt64{}, GetNullInt(nil))

	assert.Equal(t, &name, StringPtr(sql.NullString{String: "C1", Valid: true}))
	assert.Nil(t, StringPtr(sql.NullString{}))
	assert.Equal(t, &n, IntPtr(sql.NullInt64{Int64: 3, Valid: true}))
	assert.Nil(t, IntPtr(sql.NullInt64{}))
}

func TestQueryNonNegativeInt(t *testing.T) {
	values := url.Values{
		"minSalary": {"150"}, "bad": {"lots"}, "neg": {"-1"}, "blank": {"  "},
		"max": {"2147483647"}, "huge": {"3000000000"},
	}

	n, err := QueryNonNegativeInt(values, "minSalary")
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, 150, *n)

	n, err = QueryNonNegativeInt(values, "missing")
	require.NoError(t, err)
	assert.Nil(t, n)

	n, err = QueryNonNegativeInt(values, "blank")
	require.NoError(t, err)
	assert.Nil(t, n)

	_, err = QueryNonNegativeInt(values, "bad")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = QueryNonNegativeInt(values, "neg")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	n, err = QueryNonNegativeInt(values, "max")
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt32, *n)

	_, err = QueryNonNegativeInt(values, "huge")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	assert.EqualError(t, err, "huge must be a non-negative integer")
}

func TestQueryBool(t *testing.T) {
	values := url.Values{"hasEquity": {"true"}, "off": {"false"}, "bad": {"maybe"}}

	b, err := QueryBool(values, "hasEquity")
	require.NoError(t, err)
	assert.True(t, b)

	b, err = QueryBool(values, "off")
	require.NoError(t, err)
	assert.False(t, b)

	b, err = QueryBool(values, "missing")
	require.NoError(t, err)
	assert.False(t, b)

	_, err = QueryBool(values, "bad")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}
