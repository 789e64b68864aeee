package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShortcutLookup(t *testing.T) {
	s := NewShortcutService(nil, nil)

	reply, ok := s.Lookup("I")
	assert.True(t, ok)
	assert.Equal(t, "Cual es el monto del ingreso de dinero.", reply)

	reply, ok = s.Lookup("  S  ")
	assert.True(t, ok)
	assert.Equal(t, "Cual es el monto de la salida de dinero.", reply)

	_, ok = s.Lookup("X")
	assert.False(t, ok)

	// Exact match only, no prefixes
	_, ok = s.Lookup("Ingreso")
	assert.False(t, ok)
}

func TestShortcutLookupCustomTable(t *testing.T) {
	s := NewShortcutService(map[string]string{"HELP": "Comandos: A, I, S"}, nil)

	reply, ok := s.Lookup("HELP")
	assert.True(t, ok)
	assert.Equal(t, "Comandos: A, I, S", reply)

	_, ok = s.Lookup("I")
	assert.False(t, ok, "custom table replaces the defaults")
}

func TestIsPrivilegedSender(t *testing.T) {
	s := NewShortcutService(nil, []string{"3004356388"})

	assert.True(t, s.IsPrivilegedSender("573004356388"))
	assert.True(t, s.IsPrivilegedSender("+573004356388"))
	assert.True(t, s.IsPrivilegedSender("3004356388"))
	assert.False(t, s.IsPrivilegedSender("3004356399"))
	assert.False(t, s.IsPrivilegedSender(""))
	assert.False(t, s.IsPrivilegedSender("no-digits-here"))
}
