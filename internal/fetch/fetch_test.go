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

func TestExtractJobText_PrefersJobSelectors(t *testing.T) {
	html := `<html><body>
		<nav>Home | Jobs | About</nav>
		<div class="sidebar">unrelated links</div>
		<div class="job-description">
			<p>We are hiring a Go engineer.</p>
			<p>You will build backend services.</p>
		</div>
		<footer>Copyright</footer>
	</body></html>`

	text, err := extractJobText(html)
	require.NoError(t, err)
	assert.Contains(t, text, "We are hiring a Go engineer.")
	assert.Contains(t, text, "build backend services")
	assert.NotContains(t, text, "Copyright")
	assert.NotContains(t, text, "unrelated links")
}

func TestExtractJobText_FallsBackToBody(t *testing.T) {
	html := `<html><body><p>Plain posting text, no known containers.</p></body></html>`
	text, err := extractJobText(html)
	require.NoError(t, err)
	assert.Equal(t, "Plain posting text, no known containers.", text)
}

func TestExtractJobText_StripsScriptsAndStyle(t *testing.T) {
	html := `<html><body>
		<script>var tracking = true;</script>
		<style>.x { color: red }</style>
		<main>Engineer wanted.</main>
	</body></html>`

	text, err := extractJobText(html)
	require.NoError(t, err)
	assert.Equal(t, "Engineer wanted.", text)
}

func TestCleanWhitespace(t *testing.T) {
	in := "  line one  \n\n\t\n   line two\n"
	assert.Equal(t, "line one\nline two", cleanWhitespace(in))
	assert.Equal(t, "", cleanWhitespace("  \n \t \n"))
}

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser(""))
	assert.True(t, ShouldUseBrowser("short stub"))
	assert.False(t, ShouldUseBrowser(strings.Repeat("job description text ", 50)))
}

func TestJobDescription_PlainHTTP(t *testing.T) {
	body := `<html><body><div class="job-content">` +
		strings.Repeat("<p>Build distributed systems in Go with us.</p>", 30) +
		`</div></body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	text, err := JobDescription(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, text, "Build distributed systems in Go with us.")
}

func TestJobDescription_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := JobDescription(context.Background(), srv.URL)
	require.Error(t, err)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, fetchErr.Message, "404")
}

func TestFetchHTML_InvalidURL(t *testing.T) {
	_, err := fetchHTML(context.Background(), "not-a-url")
	require.Error(t, err)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "invalid URL", fetchErr.Message)
}
