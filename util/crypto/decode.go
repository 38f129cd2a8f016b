package crypto

import (
	mbase "github.com/multiformats/go-multibase"
)

// EncodeKeyToString encodes raw key bytes as a base58btc multibase string.
func EncodeKeyToString[T Key](key T) string {
	return EncodeBytesToString(key.Raw())
}

func EncodeBytesToString(bytes []byte) string {
	str, err := mbase.Encode(mbase.Base58BTC, bytes)
	if err != nil {
		panic("should not error with hardcoded mbase: " + err.Error())
	}
	return str
}

// DecodeBytesFromString accepts any multibase prefix.
func DecodeBytesFromString(str string) ([]byte, error) {
	_, data, err := mbase.Decode(str)
	return data, err
}

func DecodeKeyFromString[T Key](str string, construct func([]byte) (T, error), def T) (T, error) {
	dec, err := DecodeBytesFromString(str)
	if err != nil {
		return def, err
	}
	return construct(dec)
}
