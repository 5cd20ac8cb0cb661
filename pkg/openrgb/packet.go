// Package openrgb provides OpenRGB SDK protocol packet building and a
// minimal TCP client for pushing LED colors to an OpenRGB server.
package openrgb

import (
	"encoding/binary"
	"fmt"
)

const (
	// HeaderSize is the size of every OpenRGB packet header.
	HeaderSize = 16
	// DefaultPort is the standard OpenRGB SDK server port.
	DefaultPort = 6742
)

// Packet type identifiers from the OpenRGB SDK protocol.
const (
	CmdRequestControllerCount uint32 = 0
	CmdRequestControllerData  uint32 = 1
	CmdRequestProtocolVersion uint32 = 40
	CmdSetClientName          uint32 = 50
	CmdUpdateLEDs             uint32 = 1050
	CmdUpdateZoneLEDs         uint32 = 1051
)

// MagicID is the OpenRGB packet identifier.
var MagicID = []byte{'O', 'R', 'G', 'B'}

// Color is a single LED color on the wire. OpenRGB serializes each color
// as four bytes: red, green, blue and a padding byte.
type Color struct {
	R uint8
	G uint8
	B uint8
}

// BuildHeader creates the 16-byte packet header for the given device,
// command and payload length.
func BuildHeader(deviceIndex, command, dataLen uint32) []byte {
	header := make([]byte, HeaderSize)
	copy(header[0:4], MagicID)
	binary.LittleEndian.PutUint32(header[4:8], deviceIndex)
	binary.LittleEndian.PutUint32(header[8:12], command)
	binary.LittleEndian.PutUint32(header[12:16], dataLen)
	return header
}

// ParseHeader validates and decodes a packet header.
func ParseHeader(b []byte) (deviceIndex, command, dataLen uint32, err error) {
	if len(b) < HeaderSize {
		return 0, 0, 0, fmt.Errorf("openrgb: header too short: %d bytes", len(b))
	}
	for i, c := range MagicID {
		if b[i] != c {
			return 0, 0, 0, fmt.Errorf("openrgb: bad magic %q", b[0:4])
		}
	}
	deviceIndex = binary.LittleEndian.Uint32(b[4:8])
	command = binary.LittleEndian.Uint32(b[8:12])
	dataLen = binary.LittleEndian.Uint32(b[12:16])
	return deviceIndex, command, dataLen, nil
}

// BuildClientNamePacket creates a set-client-name packet. The name is
// null-terminated on the wire.
func BuildClientNamePacket(name string) []byte {
	data := append([]byte(name), 0)
	packet := BuildHeader(0, CmdSetClientName, uint32(len(data)))
	return append(packet, data...)
}

// BuildControllerCountRequest creates a request for the number of
// controllers the server exposes.
func BuildControllerCountRequest() []byte {
	return BuildHeader(0, CmdRequestControllerCount, 0)
}

// BuildUpdateLEDsPacket creates a packet setting every LED on a device.
// The payload leads with its own size, per the SDK protocol.
func BuildUpdateLEDsPacket(deviceIndex uint32, colors []Color) []byte {
	dataLen := 4 + 2 + 4*len(colors)
	data := make([]byte, dataLen)
	binary.LittleEndian.PutUint32(data[0:4], uint32(dataLen))
	binary.LittleEndian.PutUint16(data[4:6], uint16(len(colors)))
	writeColors(data[6:], colors)

	packet := BuildHeader(deviceIndex, CmdUpdateLEDs, uint32(dataLen))
	return append(packet, data...)
}

// BuildUpdateZoneLEDsPacket creates a packet setting every LED in one zone
// of a device.
func BuildUpdateZoneLEDsPacket(deviceIndex, zoneIndex uint32, colors []Color) []byte {
	dataLen := 4 + 4 + 2 + 4*len(colors)
	data := make([]byte, dataLen)
	binary.LittleEndian.PutUint32(data[0:4], uint32(dataLen))
	binary.LittleEndian.PutUint32(data[4:8], zoneIndex)
	binary.LittleEndian.PutUint16(data[8:10], uint16(len(colors)))
	writeColors(data[10:], colors)

	packet := BuildHeader(deviceIndex, CmdUpdateZoneLEDs, uint32(dataLen))
	return append(packet, data...)
}

// writeColors serializes colors as 4-byte RGB + padding entries.
func writeColors(dst []byte, colors []Color) {
	for i, c := range colors {
		dst[i*4+0] = c.R
		dst[i*4+1] = c.G
		dst[i*4+2] = c.B
		dst[i*4+3] = 0
	}
}
