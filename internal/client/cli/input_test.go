package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAskLine(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "trims", input: "  hello world \n", want: "hello world"},
		{name: "first line only", input: "one\ntwo\n", want: "one"},
		{name: "no newline", input: "lastline", want: "lastline"},
		{name: "empty line", input: "\n", want: ""},
		{name: "nothing left", input: "", wantErr: io.EOF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := askLine(bufio.NewReader(strings.NewReader(tt.input)), &out, "Name")
			assert.Equal(t, "Name: ", out.String())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func stubTerminal(t *testing.T, pw []byte, err error) {
	t.Helper()
	origRead, origFd := readPassword, stdinFd
	t.Cleanup(func() { readPassword, stdinFd = origRead, origFd })

	stdinFd = func() int { return 7 }
	readPassword = func(fd int) ([]byte, error) {
		require.Equal(t, 7, fd)
		return pw, err
	}
}

func TestAskPassword(t *testing.T) {
	stubTerminal(t, []byte("s3cret"), nil)
	var out bytes.Buffer

	pw, err := askPassword(&out)
	require.NoError(t, err)
	assert.Equal(t, []byte("s3cret"), pw)
	assert.Equal(t, "Password: \n", out.String())
}

func TestAskPassword_Errors(t *testing.T) {
	stubTerminal(t, nil, errors.New("boom"))
	_, err := askPassword(io.Discard)
	require.ErrorContains(t, err, "read password: boom")

	stubTerminal(t, []byte{}, nil)
	_, err = askPassword(io.Discard)
	require.ErrorContains(t, err, "must not be empty")
}
