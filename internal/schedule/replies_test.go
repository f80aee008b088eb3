package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrdinalName(t *testing.T) {
	assert.Equal(t, "first", ordinalName(1))
	assert.Equal(t, "third", ordinalName(3))
	assert.Equal(t, "fifth", ordinalName(5))
	assert.Equal(t, "6th", ordinalName(6))
	assert.Equal(t, "12th", ordinalName(12))
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "class", plural(1))
	assert.Equal(t, "classes", plural(0))
	assert.Equal(t, "classes", plural(3))
}

func TestRoomOrTBD(t *testing.T) {
	assert.Equal(t, "TBD", roomOrTBD(""))
	assert.Equal(t, "N106", roomOrTBD("N106"))
}

func TestFullSubjectName(t *testing.T) {
	assert.Equal(t, "PRINCIPLES OF PL", fullSubjectName("ppl"))
	assert.Equal(t, "SOFTWARE ENGG", fullSubjectName("software engineering"))
	assert.Equal(t, "COMPUTER SECURITY", fullSubjectName("Security"))
	assert.Equal(t, "YOGA", fullSubjectName("yoga"))
}
