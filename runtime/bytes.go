package runtime

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
	"math/bits"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// BytesStripRight returns the longest prefix of data not ending with the
// pad byte.
func BytesStripRight(data []byte, pad byte) []byte {
	n := len(data)
	for n > 0 && data[n-1] == pad {
		n--
	}
	return data[:n]
}

// BytesTerminate returns the prefix of data ending at the first term
// byte, including the terminator itself when include is set. When term
// never occurs, data is returned unchanged.
func BytesTerminate(data []byte, term byte, include bool) []byte {
	i := bytes.IndexByte(data, term)
	if i < 0 {
		return data
	}
	if include {
		i++
	}
	return data[:i]
}

// BytesToStr decodes data to a string under the named encoding. The
// empty name and "ascii" map each byte directly to the code point of the
// same value; "utf8", "ucs2" and "utf16le" (with their hyphenated
// aliases) use the standard decoders.
func BytesToStr(data []byte, encoding string) (string, error) {
	switch strings.ToLower(encoding) {
	case "", "ascii":
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		return string(decoded), nil
	case "utf8", "utf-8":
		return string(data), nil
	case "ucs2", "ucs-2", "utf16le", "utf-16le":
		decoded, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		return string(decoded), nil
	default:
		return "", fmt.Errorf("unknown string encoding %q", encoding)
	}
}

// ProcessXOROne returns data with every byte XORed against key.
func ProcessXOROne(data []byte, key byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ key
	}
	return out
}

// ProcessXORMany returns data XORed against a repeating multi-byte key.
// The key must not be empty.
func ProcessXORMany(data, key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, fmt.Errorf("process xor: key must not be empty")
	}
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ key[i%len(key)]
	}
	return out, nil
}

// ProcessRotateLeft rotates every byte of data left by amount bits.
// Negative amounts rotate right. Only groupSize 1 is implemented.
func ProcessRotateLeft(data []byte, amount, groupSize int) ([]byte, error) {
	if groupSize != 1 {
		return nil, fmt.Errorf("process rotate left: group size %d is not yet supported", groupSize)
	}
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = bits.RotateLeft8(b, amount)
	}
	return out, nil
}

// ProcessZlib inflates a zlib-compressed byte run. Decompression errors
// propagate to the caller.
func ProcessZlib(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// ByteArrayCompare compares a and b lexicographically, with length as
// the tiebreak for equal prefixes. The result is negative, zero, or
// positive in the usual comparator convention.
func ByteArrayCompare(a, b []byte) int {
	return bytes.Compare(a, b)
}
