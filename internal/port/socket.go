package port

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/ksyq12/tenantrouter/internal/executor"
)

// SocketProber checks listening sockets by running a socket listing
// command such as "ss -tln" and scanning its local address column.
type SocketProber struct {
	exec    executor.CommandExecutor
	command string
}

// NewSocketProber creates a prober that runs command through exec.
func NewSocketProber(exec executor.CommandExecutor, command string) *SocketProber {
	return &SocketProber{exec: exec, command: command}
}

// Listening runs the listing command and reports whether any listed
// address ends in exactly ":<port>".
func (s *SocketProber) Listening(port int) (bool, error) {
	res, err := executor.RunLine(s.exec, s.command)
	if err != nil {
		return false, err
	}
	if !res.Success() {
		return false, fmt.Errorf("%s exited with status %d: %s",
			s.command, res.ExitCode, strings.TrimSpace(string(res.Stderr)))
	}
	return ListedPorts(string(res.Stdout))[port], nil
}

// ListedPorts extracts the ports of every address token in ss or netstat
// style output. Peer columns such as "0.0.0.0:*" are skipped.
func ListedPorts(out string) map[int]bool {
	ports := make(map[int]bool)
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		for _, field := range strings.Fields(scanner.Text()) {
			i := strings.LastIndexByte(field, ':')
			if i < 0 || i == len(field)-1 {
				continue
			}
			p, err := strconv.Atoi(field[i+1:])
			if err != nil || p < 1 || p > 65535 {
				continue
			}
			ports[p] = true
		}
	}
	return ports
}
