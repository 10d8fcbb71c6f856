package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenontools/ppccalc"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	return NewAPIServer(ppccalc.New(), "test").Handler()
}

func postCalc(t *testing.T, h http.Handler, name, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/calc/"+name, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var data map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data), "body: %s", rec.Body.String())
	return data
}

func TestCalc_HexToDec(t *testing.T) {
	h := newTestHandler(t)

	rec := postCalc(t, h, "hex_to_dec", `{"hex": "0xFFFFFFFF"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	data := decodeBody(t, rec)
	assert.Equal(t, "-1", data["decimal"])
	assert.Equal(t, "4294967295", data["unsigned"])
	assert.Equal(t, float64(32), data["bits"])
}

func TestCalc_DefaultsApply(t *testing.T) {
	h := newTestHandler(t)

	// No bits field: width defaults to 32.
	rec := postCalc(t, h, "dec_to_hex", `{"decimal": "-1"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "0xFFFFFFFF", decodeBody(t, rec)["hex"])

	// allocation_units with geometry omitted uses 8 sectors of 512 bytes.
	rec = postCalc(t, h, "allocation_units", `{"bytes": "5000"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "2", decodeBody(t, rec)["units"])
}

func TestCalc_Rlwinm(t *testing.T) {
	h := newTestHandler(t)

	rec := postCalc(t, h, "rlwinm", `{"value": "0x80000000", "shift": 1, "mask_begin": 0, "mask_end": 31}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "0x00000001", decodeBody(t, rec)["hex"])
}

func TestCalc_Calculate(t *testing.T) {
	h := newTestHandler(t)

	rec := postCalc(t, h, "calculate", `{"expression": "1 << 16"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	data := decodeBody(t, rec)
	assert.Equal(t, "65536", data["decimal"])
	assert.Equal(t, "0x10000", data["hex"])
}

func TestCalc_UnknownOperation(t *testing.T) {
	h := newTestHandler(t)

	rec := postCalc(t, h, "no_such_op", `{}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeBody(t, rec)["error"])
}

func TestCalc_ParseErrorIs400(t *testing.T) {
	h := newTestHandler(t)

	rec := postCalc(t, h, "hex_to_dec", `{"hex": "not hex"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "parse_error", decodeBody(t, rec)["error"])
}

func TestCalc_DomainErrorIs422(t *testing.T) {
	h := newTestHandler(t)

	rec := postCalc(t, h, "calculate", `{"expression": "1 / 0"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	data := decodeBody(t, rec)
	assert.Equal(t, "domain_error", data["error"])
	assert.Contains(t, data["message"], "division by zero")
}

func TestCalc_RangeErrorIs422(t *testing.T) {
	h := newTestHandler(t)

	rec := postCalc(t, h, "bit_mask", `{"start_bit": 0, "end_bit": 99}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "range_error", decodeBody(t, rec)["error"])
}

func TestCalc_MalformedBodyIs400(t *testing.T) {
	h := newTestHandler(t)

	rec := postCalc(t, h, "hex_to_dec", `{not json`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListOperations(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/operations", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var data struct {
		Operations []struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		} `json:"operations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))

	assert.Len(t, data.Operations, 31)
	assert.Equal(t, "hex_to_dec", data.Operations[0].Name)
	assert.NotEmpty(t, data.Operations[0].Description)

	names := make(map[string]bool, len(data.Operations))
	for _, o := range data.Operations {
		names[o.Name] = true
	}
	for _, want := range []string{"rlwinm", "perf_ticks_to_ms", "ntstatus_decode", "calculate"} {
		assert.True(t, names[want], "missing operation %s", want)
	}
}
