package services

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const translateURL = "https://translate.example/translate_a/single"

func newMockedTranslator(t *testing.T) *Translator {
	t.Helper()
	client := &http.Client{}
	httpmock.ActivateNonDefault(client)
	t.Cleanup(httpmock.DeactivateAndReset)
	return NewTranslator(translateURL, client)
}

func TestTranslate(t *testing.T) {
	tr := newMockedTranslator(t)

	httpmock.RegisterResponder(http.MethodGet, translateURL,
		func(req *http.Request) (*http.Response, error) {
			q := req.URL.Query()
			assert.Equal(t, "gtx", q.Get("client"))
			assert.Equal(t, "id", q.Get("sl"))
			assert.Equal(t, "en", q.Get("tl"))
			assert.Equal(t, "t", q.Get("dt"))
			assert.Equal(t, "Distribusi farmasi. Logistik kesehatan.", q.Get("q"))
			return httpmock.NewStringResponse(http.StatusOK,
				`[[["Pharmaceutical distribution. ","Distribusi farmasi. ",null,null,10],["Healthcare logistics.","Logistik kesehatan.",null,null,10]],null,"id"]`), nil
		})

	out, err := tr.Translate(context.Background(), "Distribusi farmasi. Logistik kesehatan.", "id", "en")
	require.NoError(t, err)
	assert.Equal(t, "Pharmaceutical distribution. Healthcare logistics.", out)

	// Served from cache.
	out, err = tr.Translate(context.Background(), "Distribusi farmasi. Logistik kesehatan.", "id-ID", "en-US")
	require.NoError(t, err)
	assert.Equal(t, "Pharmaceutical distribution. Healthcare logistics.", out)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestTranslateShortCircuits(t *testing.T) {
	tr := newMockedTranslator(t)
	ctx := context.Background()

	out, err := tr.Translate(ctx, "   ", "id", "en")
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = tr.Translate(ctx, "Halo", "en", "en")
	require.NoError(t, err)
	assert.Equal(t, "Halo", out)

	_, err = tr.Translate(ctx, strings.Repeat("a", maxTranslateChars+1), "id", "en")
	assert.ErrorIs(t, err, ErrInvalidPayload)

	_, err = tr.Translate(ctx, "Halo", "id", "not a language!")
	assert.ErrorIs(t, err, ErrInvalidPayload)

	assert.Zero(t, httpmock.GetTotalCallCount())
}

func TestTranslateUpstreamFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusTooManyRequests, `rate limited`},
		{"not json", http.StatusOK, `<html>`},
		{"wrong shape", http.StatusOK, `{"text":"Hello"}`},
		{"no segments", http.StatusOK, `[[],null,"id"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newMockedTranslator(t)
			httpmock.RegisterResponder(http.MethodGet, translateURL, httpmock.NewStringResponder(tt.status, tt.body))

			_, err := tr.Translate(context.Background(), "Halo", "id", "en")
			assert.ErrorIs(t, err, ErrTranslate)
		})
	}
}

func TestTranslateFields(t *testing.T) {
	tr := newMockedTranslator(t)

	httpmock.RegisterResponder(http.MethodGet, translateURL,
		func(req *http.Request) (*http.Response, error) {
			switch req.URL.Query().Get("q") {
			case "Judul":
				return httpmock.NewStringResponse(http.StatusOK, `[[["Title","Judul"]]]`), nil
			case "Deskripsi":
				return httpmock.NewStringResponse(http.StatusOK, `[[["Description","Deskripsi"]]]`), nil
			default:
				return httpmock.NewStringResponse(http.StatusBadGateway, ``), nil
			}
		})

	out, err := tr.TranslateFields(context.Background(), map[string]string{
		"title_en":       "Judul",
		"description_en": "Deskripsi",
		"subtitle_en":    "Gagal",
		"cta_label_en":   "",
	}, "id", "en")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "subtitle_en")
	assert.Equal(t, map[string]string{
		"title_en":       "Title",
		"description_en": "Description",
		"cta_label_en":   "",
	}, out)
}
