package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html><body><h1>Backend Engineer</h1></body></html>"))
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, server.URL, result.URL)
	assert.Contains(t, result.HTML, "<h1>Backend Engineer</h1>")
	assert.Equal(t, http.StatusOK, result.StatusCode)
}

func TestURL_InvalidURL(t *testing.T) {
	_, err := URL(context.Background(), "not-a-valid-url", nil)
	require.Error(t, err)

	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "invalid URL")
}

func TestURL_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.Error(t, err)
	assert.NotNil(t, result) // Result is returned even on error
	assert.Equal(t, http.StatusNotFound, result.StatusCode)

	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "404")
}

func TestPostingText_JobDescriptionSelector(t *testing.T) {
	html := `
	<html>
		<body>
			<div class="sidebar">Sidebar junk</div>
			<div class="job-description">
				<h2>Requirements</h2>
				<p>5 years experience in Go</p>
			</div>
		</body>
	</html>`

	text, err := PostingText(html)
	require.NoError(t, err)
	assert.Contains(t, text, "Requirements")
	assert.Contains(t, text, "5 years experience")
	assert.NotContains(t, text, "Sidebar junk")
}

func TestPostingText_NoiseRemoved(t *testing.T) {
	html := `
	<html>
		<body>
			<nav>Navigation</nav>
			<main>
				<h1>Senior Engineer at Acme</h1>
				<p>We are hiring.</p>
			</main>
			<footer>Footer</footer>
		</body>
	</html>`

	text, err := PostingText(html)
	require.NoError(t, err)
	assert.Contains(t, text, "Senior Engineer at Acme")
	assert.NotContains(t, text, "Navigation")
	assert.NotContains(t, text, "Footer")
}

func TestPostingText_FallbackToBody(t *testing.T) {
	html := `
	<html>
		<body>
			<div>Some posting content here.</div>
		</body>
	</html>`

	text, err := PostingText(html)
	require.NoError(t, err)
	assert.Contains(t, text, "Some posting content here")
}

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser(""))
	assert.True(t, ShouldUseBrowser("short page"))
	assert.False(t, ShouldUseBrowser(strings.Repeat("job posting content ", 50)))
}
