// Package testsupport reúne utilidades compartidas por los tests de servicios.
package testsupport

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/infrastructure/bolt"
)

// NewBoltStore abre un store bbolt en un directorio temporal y lo cierra al terminar el test.
func NewBoltStore(t testing.TB) *bolt.Store {
	t.Helper()
	s, err := bolt.Open(filepath.Join(t.TempDir(), "inventario.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// Clock reloj manual para tests.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock crea un reloj detenido en t.
func NewClock(t time.Time) *Clock {
	return &Clock{now: t}
}

// Now devuelve la hora actual del reloj.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance adelanta el reloj.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
