package module

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type readyPort interface {
	Ready() bool
}

type readyImpl struct{ ok bool }

func (r readyImpl) Ready() bool { return r.ok }

type fakeModule struct {
	name  string
	ports any
}

func (m fakeModule) Name() string { return m.name }
func (m fakeModule) Ports() any   { return m.ports }

func TestPortsOf(t *testing.T) {
	t.Parallel()

	type bundle struct {
		Predictor readyPort
		Count     int
	}
	type hidden struct {
		predictor readyPort
	}

	cases := []struct {
		name  string
		ports any
		ok    bool
	}{
		{"nil", nil, false},
		{"direct", readyPort(readyImpl{ok: true}), true},
		{"struct field", bundle{Predictor: readyImpl{ok: true}}, true},
		{"pointer to struct", &bundle{Predictor: readyImpl{ok: true}}, true},
		{"nil field", bundle{}, false},
		{"nil pointer", (*bundle)(nil), false},
		{"unexported field", hidden{predictor: readyImpl{ok: true}}, false},
		{"scalar", 7, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := PortsOf[readyPort](fakeModule{name: tc.name, ports: tc.ports})
			require.Equal(t, tc.ok, ok)
			if ok {
				assert.True(t, got.Ready())
			}
		})
	}
}

func TestMustPortsOf(t *testing.T) {
	t.Parallel()

	got := MustPortsOf[readyPort](fakeModule{name: "detect", ports: readyImpl{ok: true}})
	assert.True(t, got.Ready())

	defer func() {
		r := recover()
		require.NotNil(t, r)
		assert.Contains(t, fmt.Sprint(r), "detect")
		assert.Contains(t, fmt.Sprint(r), "requested port")
	}()
	_ = MustPortsOf[readyPort](fakeModule{name: "detect"})
}
