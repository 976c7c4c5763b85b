package list

import (
	"strconv"
	"strings"
)

// ID names an item uniquely across every replica that ever touches a list.
// It is a pair of an agent number (assigned once per replica, by the root,
// at snapshot time) and a number local to that agent (a per-replica
// counter). The pair is stable across id-remapping performed during
// transform: a remapped id is always some other agent's ID, never a
// synthesized value outside this space.
type ID struct {
	Agent uint32
	Local uint32
}

// NewID builds an ID from its parts.
func NewID(agent, local uint32) ID {
	return ID{Agent: agent, Local: local}
}

// String renders the wire form "<agent>:<local>".
func (id ID) String() string {
	var b strings.Builder
	b.WriteString(strconv.FormatUint(uint64(id.Agent), 10))
	b.WriteByte(':')
	b.WriteString(strconv.FormatUint(uint64(id.Local), 10))
	return b.String()
}

// MarshalText implements encoding.TextMarshaler so ID serializes as its wire
// form inside JSON maps and struct fields alike.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(text []byte) error {
	parsed, err := ParseID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// ParseID parses the wire form "<agent>:<local>" where both halves are
// unsigned decimal integers. Any other form yields InvalidIDError.
func ParseID(s string) (ID, error) {
	i := strings.IndexByte(s, ':')
	if i < 0 {
		return ID{}, InvalidIDError{Input: s}
	}

	agent, err := strconv.ParseUint(s[:i], 10, 32)
	if err != nil {
		return ID{}, InvalidIDError{Input: s}
	}
	local, err := strconv.ParseUint(s[i+1:], 10, 32)
	if err != nil {
		return ID{}, InvalidIDError{Input: s}
	}

	return ID{Agent: uint32(agent), Local: uint32(local)}, nil
}
