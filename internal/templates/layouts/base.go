package layouts

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/codr1/habitgrid/internal/models"
)

// Base wraps content in the full HTML document. Content is rendered inside
// #content, the target of in-page htmx navigation.
func Base(title string, content templ.Component, palette models.Palette) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		head := fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="utf-8"/>
	<meta name="viewport" content="width=device-width, initial-scale=1"/>
	<title>%s</title>
	<link rel="stylesheet" href="/static/css/main.css"/>
	<script src="/static/js/htmx.min.js" defer></script>
	<style>%s</style>
</head>
<body class="min-h-screen" style="background-color: var(--grid-background); color: var(--grid-text);">
	<header class="mx-auto flex max-w-3xl items-center justify-between px-6 pt-10">
		<a href="/" class="text-2xl font-extrabold" hx-get="/" hx-target="#content" hx-push-url="true">habitgrid</a>
	</header>
	<main id="content" class="mx-auto max-w-3xl px-6 py-8">`,
			html.EscapeString(title),
			getPaletteCssVars(palette),
		)
		if _, err := io.WriteString(w, head); err != nil {
			return err
		}
		if content != nil {
			if err := content.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</main>
</body>
</html>`)
		return err
	})
}
