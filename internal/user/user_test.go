package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Ana María López", "Ana"},
		{"Ana", "Ana"},
		{"", ""},
		{" leading", " leading"},
	}
	for _, tt := range tests {
		u := &User{Name: tt.name}
		assert.Equal(t, tt.want, u.FirstName(), tt.name)
	}
}
