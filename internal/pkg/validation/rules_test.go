package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEquipmentCode(t *testing.T) {
	assert.Equal(t, "EQ-0001", NormalizeEquipmentCode("  eq-0001 "))
	assert.Equal(t, "LAB204-PC01", NormalizeEquipmentCode("lab204-pc01"))
}

func TestValidEquipmentCode(t *testing.T) {
	valid := []string{"EQ-0001", "eq-1", "A", "204-PC-01"}
	for _, code := range valid {
		assert.True(t, ValidEquipmentCode(code), code)
	}

	invalid := []string{"", "   ", "-EQ1", "EQ 01", "EQ_01", "éq-1"}
	for _, code := range invalid {
		assert.False(t, ValidEquipmentCode(code), code)
	}
}

func TestValidDescription(t *testing.T) {
	assert.True(t, ValidDescription("mouse broken"))
	assert.True(t, ValidDescription("เมาส์เสีย"))
	assert.False(t, ValidDescription("bad"))
	assert.False(t, ValidDescription("    ab    "))
}

func TestValidUsername(t *testing.T) {
	assert.True(t, ValidUsername("somchai.w"))
	assert.True(t, ValidUsername("user_01"))
	assert.False(t, ValidUsername("ab"))
	assert.False(t, ValidUsername("Somchai"))
	assert.False(t, ValidUsername("user name"))
}

func TestBlankComment(t *testing.T) {
	assert.True(t, BlankComment(""))
	assert.True(t, BlankComment("  \t\n"))
	assert.False(t, BlankComment("no spare parts"))
}
