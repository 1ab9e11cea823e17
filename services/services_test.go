package services

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartRequest(t *testing.T, fields map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/services", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestParseServiceForm(t *testing.T) {
	req := multipartRequest(t, map[string]string{
		"speciality":     "Italian",
		"place":          "Milan",
		"description":    "Homemade pasta at your place",
		"pricePerPerson": "25.5",
		"availability":   "weekends",
	})

	input, err := parseServiceForm(req)
	require.NoError(t, err)
	assert.Equal(t, "Italian", input.Speciality)
	assert.Equal(t, "Milan", input.Place)
	assert.Equal(t, 25.5, input.PricePerPerson)
	assert.Equal(t, "weekends", input.Availability)
}

func TestParseServiceFormMissingFields(t *testing.T) {
	cases := []struct {
		name   string
		fields map[string]string
	}{
		{"no speciality", map[string]string{
			"place": "Milan", "description": "d", "pricePerPerson": "10", "availability": "daily",
		}},
		{"no price", map[string]string{
			"speciality": "Italian", "place": "Milan", "description": "d", "availability": "daily",
		}},
		{"zero price", map[string]string{
			"speciality": "Italian", "place": "Milan", "description": "d", "pricePerPerson": "0", "availability": "daily",
		}},
		{"unparsable price", map[string]string{
			"speciality": "Italian", "place": "Milan", "description": "d", "pricePerPerson": "abc", "availability": "daily",
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := multipartRequest(t, tc.fields)
			_, err := parseServiceForm(req)
			assert.Error(t, err)
		})
	}
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "service:64a1f0aa1111222233334444", cacheKey("64a1f0aa1111222233334444"))
}
