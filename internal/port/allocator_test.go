package port

import (
	"errors"
	"testing"

	routeerrors "github.com/ksyq12/tenantrouter/internal/errors"
	"github.com/ksyq12/tenantrouter/internal/executor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func busyPorts(ports ...int) ProberFunc {
	set := make(map[int]bool, len(ports))
	for _, p := range ports {
		set[p] = true
	}
	return func(p int) (bool, error) { return set[p], nil }
}

func TestAllocator_Next(t *testing.T) {
	tests := []struct {
		name    string
		start   int
		step    int
		end     int
		busy    []int
		want    int
		wantErr bool
	}{
		{name: "first candidate free", start: 6001, step: 2, want: 6001},
		{name: "skips busy ports", start: 6001, step: 2, busy: []int{6001, 6003}, want: 6005},
		{name: "ignores busy ports off the step", start: 6001, step: 2, busy: []int{6001, 6002, 6004}, want: 6003},
		{name: "bounded range exhausted", start: 6001, step: 2, end: 6005, busy: []int{6001, 6003, 6005}, wantErr: true},
		{name: "bounded range last slot", start: 6001, step: 2, end: 6005, busy: []int{6001, 6003}, want: 6005},
		{name: "invalid step", start: 6001, step: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alloc := NewAllocator(tt.start, tt.step, tt.end, busyPorts(tt.busy...))
			got, err := alloc.Next()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, routeerrors.Is(err, routeerrors.ErrNoPortAvailable))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAllocator_NextStaysOnStep(t *testing.T) {
	busy := []int{}
	for p := 6001; p < 6101; p++ {
		busy = append(busy, p)
	}
	alloc := NewAllocator(6001, 2, 0, busyPorts(busy...))

	got, err := alloc.Next()
	require.NoError(t, err)
	assert.Equal(t, 6101, got)
	assert.Equal(t, 0, (got-6001)%2)
}

func TestAllocator_ProbeError(t *testing.T) {
	alloc := NewAllocator(6001, 2, 0, ProberFunc(func(int) (bool, error) {
		return false, errors.New("ss not found")
	}))

	_, err := alloc.Next()
	require.Error(t, err)
	assert.ErrorContains(t, err, "ss not found")
}

func TestAllocator_WithSocketProber(t *testing.T) {
	mock := &executor.MockExecutor{
		RunFunc: func(name string, args ...string) (executor.Result, error) {
			return executor.Result{Stdout: []byte(ssOutput)}, nil
		},
	}
	alloc := NewAllocator(6001, 2, 0, NewSocketProber(mock, "ss -tln"))

	got, err := alloc.Next()
	require.NoError(t, err)
	assert.Equal(t, 6005, got)
	assert.Equal(t, 3, mock.CallCount("ss -tln"))
}
