package models

import (
	"strconv"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// IsValid reports whether value can be converted to the type named by tc.
// Unknown type codes accept any value, like TypeString.
func (tc TypeCode) IsValid(value string) bool {
	var err error

	switch tc {
	case TypeBool:
		_, err = strconv.ParseBool(value)
	case TypeChar:
		// Exactly one rune; the empty string is not a char.
		return utf8.RuneCountInString(value) == 1
	case TypeByte:
		_, err = strconv.ParseUint(value, 10, 8)
	case TypeInt16:
		_, err = strconv.ParseInt(value, 10, 16)
	case TypeInt32:
		_, err = strconv.ParseInt(value, 10, 32)
	case TypeInt64:
		_, err = strconv.ParseInt(value, 10, 64)
	case TypeFloat:
		_, err = strconv.ParseFloat(value, 32)
	case TypeDouble:
		_, err = strconv.ParseFloat(value, 64)
	case TypeDecimal:
		_, err = decimal.NewFromString(value)
	case TypeDateTime:
		if value == "" {
			return false
		}

		_, err = cast.ToTimeE(value)
	default:
		return true
	}

	return err == nil
}
