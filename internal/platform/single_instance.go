package platform

import (
	"bufio"
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"strings"
	"sync"
	"time"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

const (
	minGuardPort    = 20000
	maxGuardPort    = 39999
	activateCommand = "activate"
	requestTimeout  = time.Second
)

// InstanceGuard holds the single-instance lock for as long as it is open. A
// later launch can ask the holder to bring itself forward.
type InstanceGuard struct {
	mu       sync.Mutex
	listener net.Listener
}

// AcquireSingleInstance binds a localhost port derived from appID. A second
// process with the same ID gets ErrAlreadyRunning.
func AcquireSingleInstance(appID string) (*InstanceGuard, error) {
	address := guardAddress(appID)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%w on %s", ErrAlreadyRunning, address)
	}
	return &InstanceGuard{listener: listener}, nil
}

// OnActivate serves activation requests until Release. handler runs on the
// serving goroutine once per request.
func (guard *InstanceGuard) OnActivate(handler func()) {
	guard.mu.Lock()
	listener := guard.listener
	guard.mu.Unlock()
	if listener == nil || handler == nil {
		return
	}
	go serveActivations(listener, handler)
}

// Release frees the single instance lock and stops serving activations.
func (guard *InstanceGuard) Release() error {
	if guard == nil {
		return nil
	}
	guard.mu.Lock()
	defer guard.mu.Unlock()
	if guard.listener == nil {
		return nil
	}
	err := guard.listener.Close()
	guard.listener = nil
	return err
}

// Address returns the bound address, or "" once released.
func (guard *InstanceGuard) Address() string {
	if guard == nil {
		return ""
	}
	guard.mu.Lock()
	defer guard.mu.Unlock()
	if guard.listener == nil {
		return ""
	}
	return guard.listener.Addr().String()
}

// ActivateRunningInstance asks the instance holding the lock for appID to show itself.
func ActivateRunningInstance(appID string, timeout time.Duration) error {
	conn, err := net.DialTimeout("tcp", guardAddress(appID), timeout)
	if err != nil {
		return fmt.Errorf("reach running instance: %w", err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(timeout))
	if _, err := fmt.Fprintln(conn, activateCommand); err != nil {
		return fmt.Errorf("send activate request: %w", err)
	}
	return nil
}

func serveActivations(listener net.Listener, handler func()) {
	for {
		conn, err := listener.Accept()
		if err != nil {
			// Closed by Release.
			return
		}
		if readCommand(conn) == activateCommand {
			handler()
		}
	}
}

func readCommand(conn net.Conn) string {
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(requestTimeout))
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}

func guardAddress(appID string) string {
	return fmt.Sprintf("127.0.0.1:%d", portFromName(appID))
}

func portFromName(appID string) int {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appID))
	rangeSize := maxGuardPort - minGuardPort + 1
	return minGuardPort + int(hash.Sum32()%uint32(rangeSize))
}
