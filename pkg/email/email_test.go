package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveNameFromEmail(t *testing.T) {
	tests := []struct {
		email string
		first string
		last  string
	}{
		{"jana.zelena@techstart.example", "Jana", "Zelena"},
		{"horak_m@example.com", "Horak", "M"},
		{"office@example.com", "Office", "Contact"},
		{"", "Contact", "Contact"},
		{"@example.com", "Contact", "Contact"},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			first, last := DeriveNameFromEmail(tt.email)
			assert.Equal(t, tt.first, first)
			assert.Equal(t, tt.last, last)
		})
	}
}
