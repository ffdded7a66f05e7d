package memory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory_Get(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory(8)
	mem.data[0] = 16

	value, err := mem.Get(0)
	assert.NoError(err)
	assert.Equal(uint16(16), value)

	value, err = mem.Get(1)
	assert.NoError(err)
	assert.Equal(uint16(0), value)

	// Reads do not disturb the memory.
	value, err = mem.Get(0)
	assert.NoError(err)
	assert.Equal(uint16(16), value)
}

func TestMemory_OutOfRange(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory(8)

	for _, pos := range []uint16{8, 9, 0x100, 0xffff} {
		_, err := mem.Get(pos)
		assert.Equal(ErrPointerOutOfRange{Length: 8, Pos: pos}, err)

		for _, value := range []uint16{0, 1374, 0xffff} {
			err = mem.Set(pos, value)
			assert.Equal(ErrPointerOutOfRange{Length: 8, Pos: pos}, err)
		}
	}

	assert.Equal(make([]uint16, 8), mem.Words())
}

func TestMemory_SetGet(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory(8)

	for pos := range uint16(8) {
		value := 0x1111 * (pos + 1)
		assert.NoError(mem.Set(pos, value))
		got, err := mem.Get(pos)
		assert.NoError(err)
		assert.Equal(value, got)
	}
}

func TestMemory_GetRange(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory(8)
	copy(mem.data, []uint16{12, 13, 24, 33, 40, 41, 42, 43})

	values, err := mem.GetRange(0, 4)
	assert.NoError(err)
	assert.Equal([]uint16{12, 13, 24, 33}, values)

	values, err = mem.GetRange(4, 4)
	assert.NoError(err)
	assert.Equal([]uint16{40, 41, 42, 43}, values)

	// Returned window is a copy.
	values[0] = 0xdead
	values, err = mem.GetRange(4, 1)
	assert.NoError(err)
	assert.Equal([]uint16{40}, values)

	values, err = mem.GetRange(8, 0)
	assert.NoError(err)
	assert.Empty(values)
}

func TestMemory_GetRange_Overflow(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory(8)

	_, err := mem.GetRange(4, 5)
	assert.Equal(ErrPointerRangeOverflow{Length: 8, Pos: 4, End: 9}, err)

	_, err = mem.GetRange(9, 0)
	assert.Equal(ErrPointerRangeOverflow{Length: 8, Pos: 9, End: 9}, err)

	// The window end does not wrap at 16 bits.
	_, err = mem.GetRange(0xfff0, 0x20)
	assert.Equal(ErrPointerRangeOverflow{Length: 8, Pos: 0xfff0, End: 0x10010}, err)
}

func TestMemory_SetRange(t *testing.T) {
	assert := assert.New(t)

	data := []uint16{12, 13, 24, 33}

	mem := NewMemory(8)
	assert.NoError(mem.SetRange(0, data))
	assert.Equal(data, mem.data[0:4])

	assert.NoError(mem.SetRange(3, data))
	assert.Equal([]uint16{12, 13, 24, 12, 13, 24, 33, 0}, mem.Words())
}

func TestMemory_SetRange_Overflow(t *testing.T) {
	assert := assert.New(t)

	data := []uint16{12, 13, 24, 33}

	mem := NewMemory(8)
	err := mem.SetRange(9, data)
	assert.Equal(ErrPointerRangeOverflow{Length: 8, Pos: 9, End: 13}, err)

	// No partial writes.
	err = mem.SetRange(6, data)
	assert.Equal(ErrPointerRangeOverflow{Length: 8, Pos: 6, End: 10}, err)
	assert.Equal(make([]uint16, 8), mem.Words())

	var overflow ErrPointerRangeOverflow
	assert.True(errors.As(err, &overflow))
	assert.NotEmpty(err.Error())
}

func TestMemory_Clear(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory(4)
	assert.NoError(mem.SetRange(0, []uint16{1, 2, 3, 4}))
	mem.Clear()
	assert.Equal(make([]uint16, 4), mem.Words())
	assert.Equal(uint16(4), mem.Len())
}
