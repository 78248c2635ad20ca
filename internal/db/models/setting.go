package models

// TypeCode is the declared value type of a catalog setting.
type TypeCode string

// Supported type codes.
const (
	TypeBool     TypeCode = "bool"
	TypeChar     TypeCode = "char"
	TypeByte     TypeCode = "byte"
	TypeInt16    TypeCode = "int16"
	TypeInt32    TypeCode = "int32"
	TypeInt64    TypeCode = "int64"
	TypeFloat    TypeCode = "float"
	TypeDouble   TypeCode = "double"
	TypeDecimal  TypeCode = "decimal"
	TypeDateTime TypeCode = "datetime"
	TypeString   TypeCode = "string"
)

// TypeCodes lists every supported type code.
var TypeCodes = []TypeCode{ //nolint:gochecknoglobals
	TypeBool, TypeChar, TypeByte, TypeInt16, TypeInt32, TypeInt64,
	TypeFloat, TypeDouble, TypeDecimal, TypeDateTime, TypeString,
}

// ParseTypeCode returns the type code named s and whether it is known.
// Unknown names map to TypeString.
func ParseTypeCode(s string) (TypeCode, bool) {
	for _, tc := range TypeCodes {
		if string(tc) == s {
			return tc, true
		}
	}

	return TypeString, false
}

// Setting is an entry of the global settings catalog.
type Setting struct {
	Entity
	Name         string   `gorm:"uniqueIndex;size:64;not null"`
	TypeCode     TypeCode `gorm:"size:16;not null;default:'string'"`
	DefaultValue *string  `gorm:"size:128"`
}

// Default returns the default value, or an empty string if none is defined.
func (s *Setting) Default() string {
	if s == nil || s.DefaultValue == nil {
		return ""
	}

	return *s.DefaultValue
}
