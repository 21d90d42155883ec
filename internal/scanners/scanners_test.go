package scanners

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BetterCallFirewall/Identrecon/internal/config"
)

func TestRegistries(t *testing.T) {
	settings := config.Default()

	usernameScanners := UsernameScanners(settings)
	emailScanners := EmailScanners(settings)

	assert.Len(t, usernameScanners, 18)
	assert.Len(t, emailScanners, 4)

	seen := map[string]bool{}
	for _, s := range append(usernameScanners, emailScanners...) {
		require.NotEmpty(t, s.Name())
		assert.False(t, seen[s.Name()], "duplicate scanner name %q", s.Name())
		seen[s.Name()] = true
	}
}

func TestStatusScanner(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/octocat" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	scanner := &statusScanner{
		settings:    config.Default(),
		name:        "kaggle",
		urlTemplate: server.URL + "/%s",
	}

	profiles, err := scanner.Scan(context.Background(), "octocat")
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.True(t, profiles[0].Existe)
	assert.Equal(t, "kaggle", profiles[0].NetworkName)
	assert.Equal(t, 200, profiles[0].Metadata["status_code"])

	profiles, err = scanner.Scan(context.Background(), "ghost")
	require.NoError(t, err)
	assert.False(t, profiles[0].Existe)
	assert.Equal(t, 404, profiles[0].Metadata["status_code"])
}

func TestGitHubScanner(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/users/octocat", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"login": "octocat", "name": "The Octocat", "bio": "B",
			"location": "SF", "avatar_url": "https://avatars.example/u/1",
			"followers": 10, "public_repos": 8, "created_at": "2011-01-25T18:44:36Z"
		}`)
	})
	mux.HandleFunc("/users/octocat/events/public", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"type": "PushEvent", "created_at": "2024-05-01T03:12:00Z",
			 "payload": {"commits": [{"message": "fix race"}, {"message": "add tests"}]}},
			{"type": "WatchEvent", "created_at": "2024-05-02T00:00:00Z"}
		]`)
	})
	mux.HandleFunc("/users/ghost", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	scanner := &GitHubScanner{settings: config.Default(), baseURL: "https://github.com", apiBase: server.URL}

	profiles, err := scanner.Scan(context.Background(), "octocat")
	require.NoError(t, err)
	require.Len(t, profiles, 1)

	p := profiles[0]
	assert.True(t, p.Existe)
	assert.Equal(t, "github", p.NetworkName)
	assert.Equal(t, "https://github.com/octocat", p.URL)
	assert.Equal(t, "B", p.Bio)
	assert.Equal(t, "https://avatars.example/u/1", p.ImagenURL)
	assert.Equal(t, "github_api", p.Metadata["source"])

	commits, ok := p.Metadata["commits"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, commits, 2)
	assert.Equal(t, "fix race", commits[0]["message"])
	assert.Equal(t, "2024-05-01T03:12:00Z", commits[0]["timestamp"])

	// Несуществующий пользователь: existe=false со статусом в метадате.
	profiles, err = scanner.Scan(context.Background(), "ghost")
	require.NoError(t, err)
	assert.False(t, profiles[0].Existe)
	assert.Equal(t, 404, profiles[0].Metadata["status_code"])
}

func TestRedditScanner(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/user/spez/about.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": {
			"name": "spez", "id": "t2_1w72", "created_utc": 1118030400,
			"subreddit": {"public_description": "Reddit CEO", "title": "spez",
				"icon_img": "https://styles.example/icon.png", "subscribers": 100}
		}}`)
	})
	mux.HandleFunc("/user/spez/comments.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": {"children": [
			{"data": {"body": "hello world", "subreddit": "announcements",
				"created_utc": 1700000000, "permalink": "/r/announcements/x"}},
			{"data": {"body": "second", "subreddit": "golang",
				"created_utc": 1700000100, "permalink": "/r/golang/y"}}
		]}}`)
	})

	scanner := &RedditScanner{settings: config.Default(), baseURL: server.URL}

	profiles, err := scanner.Scan(context.Background(), "spez")
	require.NoError(t, err)
	require.Len(t, profiles, 1)

	p := profiles[0]
	assert.True(t, p.Existe)
	assert.Equal(t, "Reddit CEO", p.Bio)
	assert.Equal(t, []string{"announcements", "golang"}, p.Metadata["subreddits"])

	comments, ok := p.Metadata["comments"].([]map[string]any)
	require.True(t, ok)
	assert.Len(t, comments, 2)
	assert.Equal(t, "hello world", comments[0]["body"])
}

func TestGravatarScanner(t *testing.T) {
	// MD5("test@example.com")
	const wantHash = "55502f40dc8b7c769880b10874abc9d0"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/avatar/"+wantHash {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	scanner := &GravatarScanner{settings: config.Default(), baseURL: server.URL}

	// Нормализация: пробелы и регистр не влияют на хеш.
	profiles, err := scanner.Scan(context.Background(), "  Test@Example.COM ")
	require.NoError(t, err)
	require.Len(t, profiles, 1)

	p := profiles[0]
	assert.True(t, p.Existe)
	assert.Equal(t, "test@example.com", p.Username)
	assert.Equal(t, wantHash, p.Metadata["email_md5"])
	assert.NotEmpty(t, p.ImagenURL)
}

func TestGravatarProfileScanner(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"entry": [{
			"displayName": "Jane", "preferredUsername": "jane",
			"aboutMe": "hi there", "thumbnailUrl": "https://gravatar.example/t.png",
			"urls": [{"value": "https://jane.dev"}]
		}]}`)
	}))
	defer server.Close()

	scanner := &GravatarProfileScanner{settings: config.Default(), baseURL: server.URL}

	profiles, err := scanner.Scan(context.Background(), "jane@example.com")
	require.NoError(t, err)

	p := profiles[0]
	assert.True(t, p.Existe)
	assert.Equal(t, "hi there", p.Bio)
	assert.Equal(t, "https://gravatar.example/t.png", p.ImagenURL)
	assert.Equal(t, "Jane", p.Metadata["display_name"])
}

func TestPGPScanner_ContentHeuristic(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantExists bool
	}{
		{name: "keys found", body: "<html>pub rsa4096 ...</html>", wantExists: true},
		{name: "no results", body: "<html>No results found</html>", wantExists: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			scanner := &pgpScanner{
				settings:    config.Default(),
				name:        "openpgp_keys",
				urlTemplate: server.URL + "/search?q=%s",
			}

			profiles, err := scanner.Scan(context.Background(), "a@b.com")
			require.NoError(t, err)
			assert.Equal(t, tt.wantExists, profiles[0].Existe)
			assert.Equal(t, "content", profiles[0].Metadata["heuristic"])
		})
	}
}

func TestTelegramScanner(t *testing.T) {
	tests := []struct {
		name       string
		html       string
		wantExists bool
		wantName   string
	}{
		{
			name: "existing account",
			html: `<html><head>
				<meta property="og:title" content="Jane Doe">
				<meta property="og:image" content="https://cdn.example/p.jpg">
			</head><body><div class="tgme_page_title"><span>Jane Doe</span></div></body></html>`,
			wantExists: true,
			wantName:   "Jane Doe",
		},
		{
			name:       "missing account",
			html:       `<html><head><meta property="og:title" content="Telegram: Contact @ghost"></head></html>`,
			wantExists: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.html)
			}))
			defer server.Close()

			scanner := &TelegramScanner{settings: config.Default(), baseURL: server.URL}

			profiles, err := scanner.Scan(context.Background(), "jane")
			require.NoError(t, err)
			assert.Equal(t, tt.wantExists, profiles[0].Existe)
			if tt.wantName != "" {
				assert.Equal(t, tt.wantName, profiles[0].Metadata["name"])
			}
		})
	}
}

func TestMediumScanner_EmptyProfileIsNotAMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><meta property="og:title" content="Medium"></head></html>`)
	}))
	defer server.Close()

	scanner := &MediumScanner{settings: config.Default(), baseURL: server.URL}

	profiles, err := scanner.Scan(context.Background(), "nobody")
	require.NoError(t, err)
	assert.False(t, profiles[0].Existe)
}

func TestAboutMeScanner_EmitsSocialLinkProfiles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head>
			<title>Jane Doe - New Orleans, Louisiana | about.me</title>
			<meta property="og:description" content="Maker of things">
			<meta property="og:image" content="https://cdn.example/jane.jpg">
		</head><body>
		<script type="application/ld+json">
		{"address":"New Orleans","jobTitle":"Engineer",
		 "knowsAbout": ["golang", "osint"],
		 "sameAs": ["https://github.com/janedoe", "https://twitter.com/jane_d"]}
		</script>
		</body></html>`)
	}))
	defer server.Close()

	scanner := &AboutMeScanner{settings: config.Default(), baseURL: server.URL}

	profiles, err := scanner.Scan(context.Background(), "janedoe")
	require.NoError(t, err)
	require.Len(t, profiles, 3)

	main := profiles[0]
	assert.True(t, main.Existe)
	assert.Equal(t, "aboutme", main.NetworkName)
	assert.Equal(t, "Jane Doe", main.Metadata["name"])
	assert.Equal(t, "New Orleans", main.Metadata["location"])
	assert.Equal(t, "Engineer", main.Metadata["job_title"])

	derived := profiles[1]
	assert.Equal(t, "aboutme_social_link", derived.NetworkName)
	assert.Equal(t, "https://github.com/janedoe", derived.URL)
	assert.Equal(t, "janedoe", derived.Username)
	assert.True(t, derived.Existe)
	assert.Equal(t, "aboutme", derived.Metadata["source"])

	assert.Equal(t, "jane_d", profiles[2].Username)
}
