package executor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemExecutor_Run(t *testing.T) {
	exec := NewSystemExecutor()

	t.Run("stdout captured", func(t *testing.T) {
		res, err := exec.Run("echo", "hello")
		require.NoError(t, err)
		assert.True(t, res.Success())
		assert.Equal(t, "hello\n", string(res.Stdout))
		assert.Empty(t, res.Stderr)
	})

	t.Run("stderr and exit code captured", func(t *testing.T) {
		res, err := exec.Run("sh", "-c", "echo oops >&2; exit 3")
		require.NoError(t, err)
		assert.False(t, res.Success())
		assert.Equal(t, 3, res.ExitCode)
		assert.Equal(t, "oops\n", string(res.Stderr))
	})

	t.Run("nonexistent command", func(t *testing.T) {
		_, err := exec.Run("nonexistent-command-xyz-12345")
		assert.Error(t, err)
	})
}

func TestResult_Combined(t *testing.T) {
	res := Result{Stdout: []byte("out\n"), Stderr: []byte("err\n")}
	assert.Equal(t, "out\nerr\n", res.Combined())
}

func TestSplit(t *testing.T) {
	tests := []struct {
		line     string
		wantName string
		wantArgs []string
		wantErr  bool
	}{
		{"nginx -t", "nginx", []string{"-t"}, false},
		{"systemctl reload nginx", "systemctl", []string{"reload", "nginx"}, false},
		{`sh -c "nginx -t 2>&1"`, "sh", []string{"-c", "nginx -t 2>&1"}, false},
		{"", "", nil, true},
		{`nginx "-t`, "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			name, args, err := Split(tt.line)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestRunLine(t *testing.T) {
	mock := &MockExecutor{}

	_, err := RunLine(mock, "systemctl is-active nginx")
	require.NoError(t, err)
	require.Len(t, mock.Calls, 1)
	assert.Equal(t, "systemctl", mock.Calls[0].Name)
	assert.Equal(t, []string{"is-active", "nginx"}, mock.Calls[0].Args)

	_, err = RunLine(mock, "   ")
	assert.Error(t, err)
	assert.Len(t, mock.Calls, 1)
}

func TestMockExecutor(t *testing.T) {
	t.Run("default behavior", func(t *testing.T) {
		mock := &MockExecutor{}
		res, err := mock.Run("test", "arg1")
		require.NoError(t, err)
		assert.True(t, res.Success())
		assert.Equal(t, 1, mock.CallCount("test arg1"))
	})

	t.Run("custom function", func(t *testing.T) {
		mock := &MockExecutor{
			RunFunc: func(name string, args ...string) (Result, error) {
				return Result{ExitCode: 1, Stderr: []byte("failed")}, nil
			},
		}
		res, err := mock.Run("nginx", "-t")
		require.NoError(t, err)
		assert.Equal(t, 1, res.ExitCode)
		assert.Equal(t, "failed", string(res.Stderr))
	})

	t.Run("start error", func(t *testing.T) {
		mock := &MockExecutor{
			RunFunc: func(name string, args ...string) (Result, error) {
				return Result{}, errors.New("not found")
			},
		}
		_, err := mock.Run("ss")
		assert.Error(t, err)
		assert.Equal(t, 0, mock.CallCount("nginx -t"))
		assert.Equal(t, 1, mock.CallCount("ss"))
	})
}
