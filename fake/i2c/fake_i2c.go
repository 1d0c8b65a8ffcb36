package i2c

// Tx is a single transaction.
type Tx struct {
	Addr uint16
	W    []byte
}

// Bus records every write, and reads back zeros.
type Bus struct {
	Txs []Tx

	// Err, if set, is returned from every call.
	Err error
}

func New() *Bus {
	return &Bus{}
}

func (b *Bus) Tx(addr uint16, w, r []byte) error {
	if b.Err != nil {
		return b.Err
	}

	b.Txs = append(b.Txs, Tx{Addr: addr, W: append([]byte(nil), w...)})
	for i := range r {
		r[i] = 0
	}

	return nil
}

// Addrs returns the distinct addresses which were written to.
func (b *Bus) Addrs() map[uint16]bool {
	out := map[uint16]bool{}
	for _, tx := range b.Txs {
		out[tx.Addr] = true
	}

	return out
}
