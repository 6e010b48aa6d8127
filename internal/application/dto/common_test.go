package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber_AceptaNumeroYTexto(t *testing.T) {
	var in struct {
		A Number `json:"a"`
		B Number `json:"b"`
		C Number `json:"c"`
		D Number `json:"d"`
		E Number `json:"e"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 12.5, "b": " 7 ", "c": "10,25", "d": null, "e": true}`), &in))

	assert.Equal(t, "12.5", in.A.Raw())
	assert.Equal(t, "7", in.B.Raw())
	assert.Equal(t, "10.25", in.C.Raw())
	assert.False(t, in.D.IsSet())
	assert.True(t, in.E.IsSet())
	assert.Equal(t, "true", in.E.Raw(), "valores no numéricos se rechazan al validar, no al decodificar")
}

func TestNumber_CampoAusente(t *testing.T) {
	var in struct {
		A Number `json:"a"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &in))
	assert.False(t, in.A.IsSet())
}

func TestNumber_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(map[string]Number{"n": NumberOf("3.5"), "s": NumberOf("abc"), "z": {}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"n": 3.5, "s": "abc", "z": null}`, string(b))
}
