package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"next2play/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionMiddlewareIssuesCookieOnce(t *testing.T) {
	store := services.NewSessionStore(services.DefaultBatchSize, time.Second)
	app := fiber.New()
	app.Use(SessionMiddleware(store, time.Hour))
	app.Get("/", func(c *fiber.Ctx) error {
		sess, ok := c.Locals(services.LocalSession).(*services.Session)
		require.True(t, ok)
		return c.SendString(sess.ID)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	cookies := resp.Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: cookies[0].Value})
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Empty(t, resp.Cookies())
	assert.Equal(t, 1, store.Len())
}

func TestViewerMiddleware(t *testing.T) {
	cases := []struct {
		name     string
		token    string
		viewOnly bool
		header   string
		cookie   string
		want     bool
	}{
		{name: "open instance", want: true},
		{name: "view only wins", viewOnly: true, header: "s3cret", token: "s3cret", want: false},
		{name: "missing token", token: "s3cret", want: false},
		{name: "header token", token: "s3cret", header: "s3cret", want: true},
		{name: "cookie token", token: "s3cret", cookie: "s3cret", want: true},
		{name: "wrong token", token: "s3cret", header: "nope", want: false},
		{name: "token prefix", token: "s3cret", header: "s3cre", want: false},
		{name: "token with suffix", token: "s3cret", header: "s3cret!", want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(ViewerMiddleware(tc.token, tc.viewOnly))
			var got bool
			app.Get("/", func(c *fiber.Ctx) error {
				got = c.Locals(services.LocalCanEdit).(bool)
				return nil
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set(EditTokenHeader, tc.header)
			}
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: EditTokenCookie, Value: tc.cookie})
			}
			_, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
