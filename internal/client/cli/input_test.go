package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain line", "alice\n", "alice"},
		{"surrounding spaces trimmed", "  bob  \n", "bob"},
		{"empty line", "\n", ""},
		{"partial line at EOF", "carol", "carol"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			reader := bufio.NewReader(strings.NewReader(tt.input))

			got, err := GetSimpleText(reader, "Enter name", &out)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.Contains(t, out.String(), "Enter name")
		})
	}
}

func TestGetSimpleText_EOFWithoutInput(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader(""))

	_, err := GetSimpleText(reader, "Enter name", &out)
	require.ErrorIs(t, err, io.EOF)
}

func TestGetOptionalText(t *testing.T) {
	t.Run("empty means keep current", func(t *testing.T) {
		var out bytes.Buffer
		reader := bufio.NewReader(strings.NewReader("\n"))

		got, err := GetOptionalText(reader, "New email", &out)
		require.NoError(t, err)
		require.Nil(t, got)
		require.Contains(t, out.String(), "empty to keep current")
	})

	t.Run("value returned as pointer", func(t *testing.T) {
		var out bytes.Buffer
		reader := bufio.NewReader(strings.NewReader("new@example.com\n"))

		got, err := GetOptionalText(reader, "New email", &out)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Equal(t, "new@example.com", *got)
	})
}

func TestGetPassword(t *testing.T) {
	orig := readPassword
	readPassword = func(fd int) ([]byte, error) { return []byte("s3cret"), nil }
	defer func() { readPassword = orig }()

	var out bytes.Buffer
	pw, err := GetPassword(&out)
	require.NoError(t, err)
	require.Equal(t, []byte("s3cret"), pw)
	require.Contains(t, out.String(), "Enter password")
}

func TestGetPassword_Error(t *testing.T) {
	orig := readPassword
	readPassword = func(fd int) ([]byte, error) { return nil, errors.New("not a terminal") }
	defer func() { readPassword = orig }()

	var out bytes.Buffer
	_, err := GetPassword(&out)
	require.Error(t, err)
}
