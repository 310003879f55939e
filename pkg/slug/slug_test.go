package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"spaces become hyphens", "Hello World", "hello-world"},
		{"punctuation dropped and runs collapsed", "  Go -- Blog!! ", "go-blog"},
		{"unicode letters kept", "Мой Блог", "мой-блог"},
		{"underscore kept", "snake_case name", "snake_case-name"},
		{"compatibility forms normalised", "ﬁle №1", "file-no1"},
		{"nothing usable", "!!!", ""},
		{"digits", "Top 10 posts", "top-10-posts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.in))
		})
	}
}

func TestMakeIsDeterministic(t *testing.T) {
	assert.Equal(t, Make("Same Name"), Make("Same Name"))
	assert.Equal(t, Make("Same Name"), Make("same   name"))
}
