package openrgb

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"strconv"
	"sync"
	"time"
)

// Client is a minimal OpenRGB SDK client. It supports the handful of
// requests the stage server needs: announcing itself, counting controllers
// and pushing per-LED colors to devices and zones. Writes are serialized;
// the server applies updates fire-and-forget.
type Client struct {
	mu sync.Mutex

	host string
	port int
	conn net.Conn

	dialTimeout time.Duration
	readTimeout time.Duration
}

// NewClient creates a client for the given server address. A port <= 0
// selects the default SDK port.
func NewClient(host string, port int) *Client {
	if host == "" {
		host = "127.0.0.1"
	}
	if port <= 0 {
		port = DefaultPort
	}
	return &Client{
		host:        host,
		port:        port,
		dialTimeout: 5 * time.Second,
		readTimeout: 5 * time.Second,
	}
}

// Connect dials the server and announces the client name.
func (c *Client) Connect(clientName string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return nil
	}

	addr := net.JoinHostPort(c.host, strconv.Itoa(c.port))
	conn, err := net.DialTimeout("tcp", addr, c.dialTimeout)
	if err != nil {
		return fmt.Errorf("openrgb: connecting to %s: %w", addr, err)
	}
	c.conn = conn

	if clientName != "" {
		if _, err := conn.Write(BuildClientNamePacket(clientName)); err != nil {
			_ = conn.Close()
			c.conn = nil
			return fmt.Errorf("openrgb: setting client name: %w", err)
		}
	}
	return nil
}

// Close closes the connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// IsConnected reports whether the client holds an open connection.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// ControllerCount asks the server how many RGB controllers it exposes.
func (c *Client) ControllerCount() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return 0, fmt.Errorf("openrgb: not connected")
	}

	if _, err := c.conn.Write(BuildControllerCountRequest()); err != nil {
		return 0, fmt.Errorf("openrgb: requesting controller count: %w", err)
	}

	_ = c.conn.SetReadDeadline(time.Now().Add(c.readTimeout))
	header := make([]byte, HeaderSize)
	if _, err := io.ReadFull(c.conn, header); err != nil {
		return 0, fmt.Errorf("openrgb: reading controller count header: %w", err)
	}
	_, _, dataLen, err := ParseHeader(header)
	if err != nil {
		return 0, err
	}
	if dataLen < 4 {
		return 0, fmt.Errorf("openrgb: short controller count payload: %d bytes", dataLen)
	}

	data := make([]byte, dataLen)
	if _, err := io.ReadFull(c.conn, data); err != nil {
		return 0, fmt.Errorf("openrgb: reading controller count: %w", err)
	}
	return int(binary.LittleEndian.Uint32(data[0:4])), nil
}

// UpdateLEDs sets every LED on a device.
func (c *Client) UpdateLEDs(deviceIndex uint32, colors []Color) error {
	return c.send(BuildUpdateLEDsPacket(deviceIndex, colors))
}

// UpdateZoneLEDs sets every LED in one zone of a device.
func (c *Client) UpdateZoneLEDs(deviceIndex, zoneIndex uint32, colors []Color) error {
	return c.send(BuildUpdateZoneLEDsPacket(deviceIndex, zoneIndex, colors))
}

func (c *Client) send(packet []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return fmt.Errorf("openrgb: not connected")
	}
	if _, err := c.conn.Write(packet); err != nil {
		return fmt.Errorf("openrgb: sending update: %w", err)
	}
	return nil
}
