package servos

import (
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// From linux/i2c-dev.h
const i2cSlave = 0x0703

// I2CBus is a Linux i2c-dev device, such as /dev/i2c-1.
type I2CBus struct {
	mu       sync.Mutex
	fd       int
	addr     uint16
	selected bool
}

func OpenI2C(path string) (*I2CBus, error) {
	fd, err := unix.Open(path, unix.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("%w (while opening %s)", err, path)
	}

	return &I2CBus{fd: fd}, nil
}

// Tx writes w to the device at addr, then reads len(r) bytes back.
func (b *I2CBus) Tx(addr uint16, w, r []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.selected || addr != b.addr {
		err := unix.IoctlSetInt(b.fd, i2cSlave, int(addr))
		if err != nil {
			return fmt.Errorf("%w (while selecting 0x%02x)", err, addr)
		}

		b.addr = addr
		b.selected = true
	}

	if len(w) > 0 {
		_, err := unix.Write(b.fd, w)
		if err != nil {
			return fmt.Errorf("%w (while writing to 0x%02x)", err, addr)
		}
	}

	if len(r) > 0 {
		_, err := unix.Read(b.fd, r)
		if err != nil {
			return fmt.Errorf("%w (while reading from 0x%02x)", err, addr)
		}
	}

	return nil
}

func (b *I2CBus) Close() error {
	return unix.Close(b.fd)
}
