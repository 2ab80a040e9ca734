package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveRoomStatus(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		count    int
		expected RoomStatus
	}{
		{"empty room", 2, 0, RoomStatusAvailable},
		{"partially filled", 4, 2, RoomStatusAvailable},
		{"exactly at capacity", 2, 2, RoomStatusFull},
		{"overfilled still full", 2, 3, RoomStatusFull},
		{"single room occupied", 1, 1, RoomStatusFull},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeriveRoomStatus(tt.capacity, tt.count))
		})
	}
}

func TestValidRoomType(t *testing.T) {
	assert.True(t, ValidRoomType(RoomTypeSingle))
	assert.True(t, ValidRoomType(RoomTypeTripleAttach))
	assert.False(t, ValidRoomType(RoomType("penthouse")))
}

func TestValidRoomStatus(t *testing.T) {
	assert.True(t, ValidRoomStatus(RoomStatusMaintenance))
	assert.False(t, ValidRoomStatus(RoomStatus("occupied")))
}
