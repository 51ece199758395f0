package symbols

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNameValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		text      string
		namespace []string
		base      string
		fqn       string
	}{
		{name: "bare class", text: "Foo", namespace: nil, base: "Foo", fqn: "Foo"},
		{name: "one namespace segment", text: `Foo\Bar`, namespace: []string{"Foo"}, base: "Bar", fqn: `Foo\Bar`},
		{name: "deep namespace", text: `App\Service\Mailer`, namespace: []string{"App", "Service"}, base: "Mailer", fqn: `App\Service\Mailer`},
		{name: "leading separator dropped", text: `\Foo\Bar`, namespace: []string{"Foo"}, base: "Bar", fqn: `Foo\Bar`},
		{name: "underscore start", text: `_Internal\X`, namespace: []string{"_Internal"}, base: "X", fqn: `_Internal\X`},
		{name: "digits after first character", text: `Api2\V3Handler`, namespace: []string{"Api2"}, base: "V3Handler", fqn: `Api2\V3Handler`},
		{name: "non-ascii letters", text: `Überwachung\Prüfer`, namespace: []string{"Überwachung"}, base: "Prüfer", fqn: `Überwachung\Prüfer`},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			id, err := ParseName(tc.text)
			require.NoError(t, err)

			assert.Equal(t, tc.namespace, id.Namespace)
			assert.Equal(t, tc.base, id.Name)
			assert.Equal(t, tc.fqn, id.FQN())
		})
	}
}

func TestParseNameInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
	}{
		{name: "empty", text: ""},
		{name: "only separator", text: `\`},
		{name: "digit start", text: "123Invalid"},
		{name: "digit start in segment", text: `Foo\1Bar`},
		{name: "empty segment", text: `Foo\\Bar`},
		{name: "trailing separator", text: `Foo\`},
		{name: "leading whitespace", text: " Foo"},
		{name: "trailing whitespace", text: "Foo "},
		{name: "inner space", text: "Foo Bar"},
		{name: "dash", text: "Foo-Bar"},
		{name: "dot separated", text: "Foo.Bar"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseName(tc.text)
			require.Error(t, err)
		})
	}
}

func TestParseNameErrorCitesText(t *testing.T) {
	t.Parallel()

	_, err := ParseName("123Invalid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "123Invalid")
}
