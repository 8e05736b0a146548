package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The accepted sets here mirror the CHECK constraints on the equipment table.

func TestEquipmentTypeValid(t *testing.T) {
	assert.True(t, EquipmentComputer.Valid())
	assert.True(t, EquipmentOther.Valid())

	assert.False(t, EquipmentType("PRINTER").Valid())
	assert.False(t, EquipmentType("computer").Valid())
	assert.False(t, EquipmentType("").Valid())
}

func TestEquipmentStatusValid(t *testing.T) {
	for _, s := range []EquipmentStatus{EquipmentActive, EquipmentMaintenance, EquipmentInactive} {
		assert.True(t, s.Valid(), "%s", s)
	}

	assert.False(t, EquipmentStatus("BROKEN").Valid())
	assert.False(t, EquipmentStatus("active").Valid())
	assert.False(t, EquipmentStatus("").Valid())
}
