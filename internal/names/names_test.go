package names

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Foo-Bar", "foo-bar"},
		{"foo_bar", "foo-bar"},
		{"Foo.Bar", "foo-bar"},
		{"FOO__-._bar", "foo-bar"},
		{"zope.interface", "zope-interface"},
		{"requests", "requests"},
		{" Django ", "django"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, n := range []string{"Foo-Bar", "a.b_c", "X"} {
		once := Normalize(n)
		assert.Equal(t, once, Normalize(once))
	}
}
