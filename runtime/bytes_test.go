package runtime_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Brecert/kaitai-impl/runtime"
)

func TestBytesStripRight(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		pad  byte
		want []byte
	}{
		{"padded", []byte{0x41, 0x42, 0x20, 0x20}, 0x20, []byte{0x41, 0x42}},
		{"no padding", []byte{0x41, 0x42}, 0x20, []byte{0x41, 0x42}},
		{"all padding", []byte{0x00, 0x00, 0x00}, 0x00, []byte{}},
		{"empty", []byte{}, 0x00, []byte{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := runtime.BytesStripRight(tt.data, tt.pad)
			require.Equal(t, tt.want, got)
			// Stripping is idempotent.
			require.Equal(t, got, runtime.BytesStripRight(got, tt.pad))
		})
	}
}

func TestBytesTerminate(t *testing.T) {
	data := []byte{0x41, 0x42, 0x00, 0x43}
	require.Equal(t, []byte{0x41, 0x42}, runtime.BytesTerminate(data, 0x00, false))
	require.Equal(t, []byte{0x41, 0x42, 0x00}, runtime.BytesTerminate(data, 0x00, true))
	require.Equal(t, data, runtime.BytesTerminate(data, 0x7f, false))
}

func TestBytesToStr(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		encoding string
		want     string
	}{
		{"ascii", []byte("hello"), "ascii", "hello"},
		{"ascii high bytes map to code points", []byte{0x63, 0x61, 0x66, 0xe9}, "ascii", "café"},
		{"default is ascii", []byte{0xff}, "", "ÿ"},
		{"utf8", []byte{0x63, 0x61, 0x66, 0xc3, 0xa9}, "utf8", "café"},
		{"utf-8 alias", []byte("ok"), "UTF-8", "ok"},
		{"utf16le", []byte{0x63, 0x00, 0x61, 0x00, 0x66, 0x00, 0xe9, 0x00}, "utf16le", "café"},
		{"ucs2 alias", []byte{0x41, 0x00, 0x42, 0x00}, "ucs-2", "AB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := runtime.BytesToStr(tt.data, tt.encoding)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	_, err := runtime.BytesToStr([]byte("x"), "ebcdic")
	require.Error(t, err)
}

func TestProcessXORRoundTrips(t *testing.T) {
	data := []byte{0x00, 0x01, 0xfe, 0xff, 0x42}

	one := runtime.ProcessXOROne(data, 0x5a)
	require.NotEqual(t, data, one)
	require.Equal(t, data, runtime.ProcessXOROne(one, 0x5a))

	key := []byte{0x13, 0x37, 0xc0}
	many, err := runtime.ProcessXORMany(data, key)
	require.NoError(t, err)
	back, err := runtime.ProcessXORMany(many, key)
	require.NoError(t, err)
	require.Equal(t, data, back)

	_, err = runtime.ProcessXORMany(data, nil)
	require.Error(t, err)
}

func TestProcessXORManyRepeatsKey(t *testing.T) {
	got, err := runtime.ProcessXORMany([]byte{0x01, 0x01, 0x01, 0x01}, []byte{0x01, 0x02})
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0x03, 0x00, 0x03}, got)
}

func TestProcessRotateLeft(t *testing.T) {
	got, err := runtime.ProcessRotateLeft([]byte{0x81}, 1, 1)
	require.NoError(t, err)
	require.Equal(t, []byte{0x03}, got)

	// A negative amount rotates right and undoes the left rotation.
	back, err := runtime.ProcessRotateLeft(got, -1, 1)
	require.NoError(t, err)
	require.Equal(t, []byte{0x81}, back)

	_, err = runtime.ProcessRotateLeft([]byte{0x00}, 1, 2)
	require.Error(t, err)
}

func TestProcessZlib(t *testing.T) {
	// zlib-compressed "hello".
	compressed := []byte{0x78, 0x9c, 0xcb, 0x48, 0xcd, 0xc9, 0xc9, 0x07, 0x00, 0x06, 0x2c, 0x02, 0x15}
	got, err := runtime.ProcessZlib(compressed)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), got)

	_, err = runtime.ProcessZlib([]byte{0x00, 0x01, 0x02})
	require.Error(t, err)
}

func TestByteArrayCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b []byte
		want int
	}{
		{"equal", []byte{0x01, 0x02}, []byte{0x01, 0x02}, 0},
		{"less by value", []byte{0x01}, []byte{0x02}, -1},
		{"greater by value", []byte{0x03}, []byte{0x02}, 1},
		{"prefix is less", []byte{0x01}, []byte{0x01, 0x00}, -1},
		{"empty vs empty", nil, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, runtime.ByteArrayCompare(tt.a, tt.b))
			// Antisymmetry.
			require.Equal(t, -tt.want, runtime.ByteArrayCompare(tt.b, tt.a))
		})
	}
}
