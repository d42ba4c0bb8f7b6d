package helpers

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/yigit/jobly/internal/pkg/apperrors"
)

// QueryString returns the trimmed value of key, or nil when it is absent or blank
func QueryString(values url.Values, key string) *string {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil
	}
	return &raw
}

// QueryNonNegativeInt parses key as an integer in [0, math.MaxInt32], the
// range of the INTEGER columns it is compared against. Absent keys yield nil;
// anything else is a bad request.
func QueryNonNegativeInt(values url.Values, key string) (*int, error) {
	raw := QueryString(values, key)
	if raw == nil {
		return nil, nil
	}
	n, err := strconv.ParseInt(*raw, 10, 32)
	if err != nil || n < 0 {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("%s must be a non-negative integer", key))
	}
	v := int(n)
	return &v, nil
}

// QueryBool parses key as a boolean; absent keys are false
func QueryBool(values url.Values, key string) (bool, error) {
	raw := QueryString(values, key)
	if raw == nil {
		return false, nil
	}
	b, err := strconv.ParseBool(*raw)
	if err != nil {
		return false, apperrors.NewBadRequestError(fmt.Sprintf("%s must be true or false", key))
	}
	return b, nil
}
