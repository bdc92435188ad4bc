package apperr

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
		msg  string
	}{
		{
			name: "config",
			err:  Config("upload entry 1", "path is required"),
			kind: ErrConfig,
			msg:  "upload entry 1: path is required",
		},
		{
			name: "network",
			err:  Network("export", errors.New("connection refused")),
			kind: ErrNetwork,
			msg:  "export: connection refused",
		},
		{
			name: "file system",
			err:  FileSystem("create directory", os.ErrPermission),
			kind: ErrFileSystem,
			msg:  "create directory: permission denied",
		},
		{
			name: "remote rejection",
			err:  RemoteRejection("import", 400, "invalid language"),
			kind: ErrRemoteRejection,
			msg:  "import: status 400: invalid language",
		},
		{
			name: "unusable response",
			err:  UnusableResponse("export fr", errors.New("no fileURL")),
			kind: ErrRemoteRejection,
			msg:  "export fr: no fileURL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.kind)
			assert.Equal(t, tt.msg, tt.err.Error())
		})
	}
}

func TestErrorKeepsCause(t *testing.T) {
	err := fmt.Errorf("writing fr: %w", FileSystem("rename", os.ErrNotExist))

	require.ErrorIs(t, err, ErrFileSystem)
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.NotErrorIs(t, err, ErrNetwork)

	var appErr *Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "rename", appErr.Op)
}
