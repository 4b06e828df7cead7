package sanitize_test

import (
	"testing"

	"studio-site-backend/pkg/sanitize"

	"github.com/stretchr/testify/assert"
)

func TestRich(t *testing.T) {
	t.Run("Should keep page markup", func(t *testing.T) {
		out := sanitize.Rich(`<h1>Студия</h1><p>Мы делаем <strong>игры</strong></p><img src="team.jpg" alt="team">`)
		assert.Contains(t, out, "<h1>")
		assert.Contains(t, out, "<strong>")
		assert.Contains(t, out, `src="team.jpg"`)
	})

	t.Run("Should strip scripts and event handlers", func(t *testing.T) {
		out := sanitize.Rich(`<p onclick="alert(1)">Текст</p><script>steal()</script>`)
		assert.NotContains(t, out, "onclick")
		assert.NotContains(t, out, "script")
		assert.NotContains(t, out, "steal")
		assert.Contains(t, out, "Текст")
	})

	t.Run("Should drop javascript URLs", func(t *testing.T) {
		out := sanitize.Rich(`<a href="javascript:alert(1)">клик</a>`)
		assert.NotContains(t, out, "javascript:")
	})
}

func TestStrict(t *testing.T) {
	t.Run("Should keep plain prose", func(t *testing.T) {
		assert.Equal(t, "10 лет опыта в геймдеве", sanitize.Strict("10 лет опыта в геймдеве"))
	})

	t.Run("Should strip images that Rich allows", func(t *testing.T) {
		out := sanitize.Strict(`Текст<img src="x.jpg">`)
		assert.NotContains(t, out, "<img")
	})
}
