package nats

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/dispatch/internal/logger"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// portFile is written next to the JetStream store while a server owns it, so
// other dispatch processes (serve, CLI one-shots) can connect instead of
// opening the same store twice.
const portFile = "port"

// StartEmbeddedNATS starts an embedded NATS server with JetStream enabled
// using the specified data directory for file-based storage. The server
// listens on a random loopback port so sibling processes can connect.
func StartEmbeddedNATS(dataDir string) (*server.Server, int, error) {
	logger.Debug("Starting embedded NATS server with data dir: %s", dataDir)

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, 0, fmt.Errorf("creating data dir: %w", err)
	}

	opts := &server.Options{
		JetStream: true,
		StoreDir:  dataDir,
		Host:      "127.0.0.1",
		Port:      server.RANDOM_PORT,
		NoSigs:    true,
	}

	ns, err := server.NewServer(opts)
	if err != nil {
		logger.Error("Failed to create NATS server: %v", err)
		return nil, 0, err
	}

	go ns.Start()

	if !ns.ReadyForConnections(4 * time.Second) {
		logger.Error("NATS server failed to start within 4s timeout")
		ns.Shutdown()
		return nil, 0, errors.New("nats server failed to start within timeout")
	}

	addr, ok := ns.Addr().(*net.TCPAddr)
	if !ok {
		ns.Shutdown()
		return nil, 0, errors.New("nats server has no tcp listener")
	}

	if err := WritePort(dataDir, addr.Port); err != nil {
		ns.Shutdown()
		return nil, 0, err
	}

	logger.Debug("NATS server ready on port %d", addr.Port)
	return ns, addr.Port, nil
}

// WritePort records the port of the server owning dataDir.
func WritePort(dataDir string, port int) error {
	path := filepath.Join(dataDir, portFile)
	if err := os.WriteFile(path, []byte(strconv.Itoa(port)), 0644); err != nil {
		return fmt.Errorf("writing port file: %w", err)
	}
	return nil
}

// ReadPort returns the port recorded for dataDir.
func ReadPort(dataDir string) (int, error) {
	data, err := os.ReadFile(filepath.Join(dataDir, portFile))
	if err != nil {
		return 0, err
	}
	port, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("invalid port file: %w", err)
	}
	return port, nil
}

// RemovePort deletes the port file for dataDir.
func RemovePort(dataDir string) {
	_ = os.Remove(filepath.Join(dataDir, portFile))
}

// ConnectInProcess creates an in-process connection to the embedded NATS server.
func ConnectInProcess(ns *server.Server) (*nats.Conn, error) {
	logger.Debug("Connecting to NATS server in-process")
	conn, err := nats.Connect("", nats.InProcessServer(ns))
	if err != nil {
		logger.Error("Failed to connect to NATS in-process: %v", err)
		return nil, err
	}
	return conn, nil
}

// ConnectToPort connects to a dispatch NATS server on the loopback interface.
func ConnectToPort(port int) (*nats.Conn, error) {
	url := fmt.Sprintf("nats://127.0.0.1:%d", port)
	logger.Debug("Connecting to NATS server at %s", url)
	conn, err := nats.Connect(url, nats.Timeout(2*time.Second))
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// CreateJetStream creates a JetStream context from a NATS connection.
func CreateJetStream(nc *nats.Conn) (jetstream.JetStream, error) {
	return jetstream.New(nc)
}

// Shutdown gracefully shuts down the NATS connection and server.
// It first drains and closes the connection, then shuts down the server
// with a timeout to allow in-flight operations to complete.
func Shutdown(nc *nats.Conn, ns *server.Server) error {
	logger.Debug("Starting NATS shutdown")

	if nc != nil {
		// Drain waits for published messages to be acknowledged
		// and subscriptions to complete before closing
		drainDone := make(chan error, 1)
		go func() {
			drainDone <- nc.Drain()
		}()

		select {
		case err := <-drainDone:
			if err != nil {
				logger.Warn("NATS drain failed, forcing close: %v", err)
				nc.Close()
			}
		case <-time.After(2 * time.Second):
			logger.Warn("NATS drain timed out after 2s, forcing close")
			nc.Close()
		}
	}

	if ns != nil {
		ns.Shutdown()

		shutdownDone := make(chan struct{})
		go func() {
			ns.WaitForShutdown()
			close(shutdownDone)
		}()

		select {
		case <-shutdownDone:
			logger.Debug("NATS server shut down cleanly")
		case <-time.After(5 * time.Second):
			logger.Error("NATS server shutdown timed out after 5s")
			return errors.New("NATS server shutdown timed out")
		}
	}

	return nil
}
