package sensor

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"go.bug.st/serial"
)

// PortOptions describes the serial connection used by a skeleton bridge
// device that writes one JSON frame per line.
type PortOptions struct {
	BaudRate int    `json:"baud_rate"`
	DataBits int    `json:"data_bits"`
	StopBits int    `json:"stop_bits"`
	Parity   string `json:"parity"`
}

// Normalize validates the options and applies defaults for any unset values.
func (o PortOptions) Normalize() (PortOptions, error) {
	opts := o

	if opts.BaudRate <= 0 {
		opts.BaudRate = 115200
	}

	if opts.DataBits == 0 {
		opts.DataBits = 8
	}
	if opts.DataBits < 5 || opts.DataBits > 8 {
		return opts, fmt.Errorf("invalid data bits %d: must be between 5 and 8", opts.DataBits)
	}

	if opts.StopBits == 0 {
		opts.StopBits = 1
	}
	if opts.StopBits != 1 && opts.StopBits != 2 {
		return opts, fmt.Errorf("invalid stop bits %d: supported values are 1 or 2", opts.StopBits)
	}

	switch strings.TrimSpace(strings.ToUpper(opts.Parity)) {
	case "", "N", "NONE":
		opts.Parity = "N"
	case "E", "EVEN":
		opts.Parity = "E"
	case "O", "ODD":
		opts.Parity = "O"
	default:
		return opts, fmt.Errorf("unsupported parity %q: expected N, E, or O", o.Parity)
	}
	return opts, nil
}

// SerialMode converts the options into the go.bug.st/serial mode.
func (o PortOptions) SerialMode() (*serial.Mode, error) {
	opts, err := o.Normalize()
	if err != nil {
		return nil, err
	}

	mode := &serial.Mode{
		BaudRate: opts.BaudRate,
		DataBits: opts.DataBits,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	if opts.StopBits == 2 {
		mode.StopBits = serial.TwoStopBits
	}
	switch opts.Parity {
	case "E":
		mode.Parity = serial.EvenParity
	case "O":
		mode.Parity = serial.OddParity
	}
	return mode, nil
}

// PortOpener opens a serial port. Tests substitute an in-memory pipe.
type PortOpener func(path string, mode *serial.Mode) (io.ReadCloser, error)

// PortLister lists the serial ports present on the host.
type PortLister func() ([]string, error)

func openSerialPort(path string, mode *serial.Mode) (io.ReadCloser, error) {
	return serial.Open(path, mode)
}

// NewSerial reads JSON-lines frames from the serial port at path. A nil
// opener or lister uses the host's ports.
func NewSerial(path string, opts PortOptions, width, height int, open PortOpener, list PortLister) (*Stream, error) {
	mode, err := opts.SerialMode()
	if err != nil {
		return nil, fmt.Errorf("serial %s: %w", path, err)
	}
	if open == nil {
		open = openSerialPort
	}
	if list == nil {
		list = serial.GetPortsList
	}

	return newStream("serial:"+path, width, height, func() (io.ReadCloser, error) {
		return open(path, mode)
	}, func() bool {
		ports, err := list()
		if err != nil {
			opsf("list serial ports: %v", err)
			return false
		}
		return slices.Contains(ports, path)
	}), nil
}
