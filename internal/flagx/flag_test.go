package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	allowed := []string{"-c", "--config"}

	cases := map[string]struct {
		in   []string
		want []string
	}{
		"separate value":        {in: []string{"-c", "conf.json", "-a", "localhost"}, want: []string{"-c", "conf.json"}},
		"inline value":          {in: []string{"--config=alt.json", "-a", "localhost"}, want: []string{"--config=alt.json"}},
		"nothing allowed":       {in: []string{"-x", "1", "--y=2", "positional"}, want: []string{}},
		"value looks like flag": {in: []string{"-c", "-max-boards", "3"}, want: []string{"-c"}},
		"repeats kept":          {in: []string{"-c", "one.json", "-c", "two.json"}, want: []string{"-c", "one.json", "-c", "two.json"}},
		"empty":                 {in: nil, want: []string{}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, FilterArgs(tc.in, allowed))
		})
	}
}

func TestConfigPath(t *testing.T) {
	for want, args := range map[string][]string{
		"/etc/bingo.json": {"-c", "/etc/bingo.json", "-debounce", "1s"},
		"/etc/long.json":  {"-config=/etc/long.json"},
		"/2.json":         {"-c", "/1.json", "-config", "/2.json"},
	} {
		assert.Equal(t, want, ConfigPath(args))
	}
	assert.Empty(t, ConfigPath([]string{"-x", "1"}))
	assert.Empty(t, ConfigPath(nil))
}

func TestWithoutConfig(t *testing.T) {
	got := WithoutConfig([]string{"-c", "a.json", "-addr", ":1", "--config=b.json", "-v", "pos"})
	assert.Equal(t, []string{"-addr", ":1", "-v", "pos"}, got)
}
