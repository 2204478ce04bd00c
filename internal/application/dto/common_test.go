package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantityUnmarshal_Coaccion(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
		coerced bool
	}{
		{"número plano", `{"quantity": 12.5}`, "12.5", false},
		{"número como string", `{"quantity": "7"}`, "7", false},
		{"cero explícito", `{"quantity": 0}`, "0", false},
		{"texto no numérico", `{"quantity": "abc"}`, "0", true},
		{"string vacío", `{"quantity": ""}`, "0", true},
		{"null", `{"quantity": null}`, "0", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body struct {
				Quantity Quantity `json:"quantity"`
			}
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &body),
				"la cantidad tolerante nunca rechaza el cuerpo")
			assert.Equal(t, tt.want, body.Quantity.String())
			assert.Equal(t, tt.coerced, body.Quantity.Coerced)
		})
	}
}

func TestQuantityUnmarshal_CampoAusente(t *testing.T) {
	var body struct {
		Quantity Quantity `json:"quantity"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &body))
	assert.True(t, body.Quantity.IsZero())
	assert.False(t, body.Quantity.Coerced, "un campo ausente es un cero legítimo, no coacción")
}

func TestQuantityMarshal_NumeroPlano(t *testing.T) {
	var body struct {
		Quantity Quantity `json:"quantity"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"quantity": "3.50"}`), &body))

	out, err := json.Marshal(body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"quantity": 3.5}`, string(out))
}

func TestPageRequest_Defaults(t *testing.T) {
	p := PageRequest{}
	p.DefaultPage()
	assert.Equal(t, 20, p.Limit)
	assert.Equal(t, 0, p.Offset)

	p = PageRequest{Limit: 50, Offset: 100}
	p.DefaultPage()
	assert.Equal(t, 50, p.Limit)
	assert.Equal(t, 100, p.Offset)
}
