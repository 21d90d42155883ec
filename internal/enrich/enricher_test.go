package enrich

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BetterCallFirewall/Identrecon/internal/config"
	"github.com/BetterCallFirewall/Identrecon/internal/models"
)

const profilePage = `<html><head>
	<title>Jane Doe</title>
	<meta name="description" content="Security researcher and gopher">
	<meta property="og:image" content="/img/jane.png">
</head><body></body></html>`

func TestFromHTML_FillsMissingBioAndImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, profilePage)
	}))
	defer server.Close()

	profiles := []models.SocialProfile{{
		URL:         server.URL + "/jane",
		Username:    "jane",
		NetworkName: "somesite",
		Existe:      true,
		Metadata:    map[string]any{},
	}}

	FromHTML(context.Background(), profiles, config.Default(), 4)

	p := profiles[0]
	assert.Equal(t, "Security researcher and gopher", p.Bio)
	assert.Equal(t, server.URL+"/img/jane.png", p.ImagenURL)
	assert.Equal(t, "Jane Doe", p.Metadata["title"])
	assert.Equal(t, "Security researcher and gopher", p.Metadata["meta_description"])
}

func TestFromHTML_DoesNotOverwriteExisting(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, profilePage)
	}))
	defer server.Close()

	profiles := []models.SocialProfile{{
		URL:         server.URL + "/jane",
		Username:    "jane",
		NetworkName: "somesite",
		Existe:      true,
		Bio:         "original bio",
		Metadata:    map[string]any{},
	}}

	FromHTML(context.Background(), profiles, config.Default(), 4)

	// Профиль с bio не трогаем вообще.
	assert.Equal(t, "original bio", profiles[0].Bio)
	assert.Empty(t, profiles[0].Metadata)
}

func TestFromHTML_SkipsNonCandidates(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		fmt.Fprint(w, profilePage)
	}))
	defer server.Close()

	profiles := []models.SocialProfile{
		{URL: server.URL, Username: "a", NetworkName: "n1", Existe: false, Metadata: map[string]any{}},
		{URL: "ftp://example.org/x", Username: "b", NetworkName: "n2", Existe: true, Metadata: map[string]any{}},
	}

	FromHTML(context.Background(), profiles, config.Default(), 4)

	assert.Zero(t, requests)
	assert.Empty(t, profiles[0].Bio)
	assert.Empty(t, profiles[1].Bio)
}

func TestFromHTML_SwallowsServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	profiles := []models.SocialProfile{{
		URL:         server.URL + "/jane",
		Username:    "jane",
		NetworkName: "somesite",
		Existe:      true,
		Metadata:    map[string]any{},
	}}

	require.NotPanics(t, func() {
		FromHTML(context.Background(), profiles, config.Default(), 4)
	})
	assert.Empty(t, profiles[0].Bio)
}
