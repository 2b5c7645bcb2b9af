package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint_Stable(t *testing.T) {
	fp1 := Fingerprint("IT-001", "Dell R740", "SN12345")
	fp2 := Fingerprint("IT-001", "Dell R740", "SN12345")

	assert.Equal(t, fp1, fp2)
	assert.Len(t, fp1, 64) // sha256 hex
}

func TestFingerprint_TrimsWhitespace(t *testing.T) {
	fp1 := Fingerprint("IT-001", "Dell R740", "SN12345")
	fp2 := Fingerprint(" IT-001 ", "Dell R740\t", " SN12345")

	assert.Equal(t, fp1, fp2)
}

func TestFingerprint_SensitiveToEachField(t *testing.T) {
	base := Fingerprint("IT-001", "Dell R740", "SN12345")

	assert.NotEqual(t, base, Fingerprint("IT-002", "Dell R740", "SN12345"))
	assert.NotEqual(t, base, Fingerprint("IT-001", "Dell R750", "SN12345"))
	assert.NotEqual(t, base, Fingerprint("IT-001", "Dell R740", "SN99999"))
}

func TestFingerprint_EmptySerial(t *testing.T) {
	// Serial number is optional, empty serial still yields a valid fingerprint
	fp := Fingerprint("IT-001", "Dell R740", "")
	assert.Len(t, fp, 64)
	assert.NotEqual(t, fp, Fingerprint("IT-001", "Dell R740", "SN1"))
}
