package demo

import "html/template"

type pageData struct {
	Title   string
	Grid    template.HTML
	EventID string
	IDs     []string
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<link rel="stylesheet" href="/perk-grid.css">
</head>
<body>
<header><h1>{{.Title}}</h1></header>
<main>
{{if .Grid}}{{.Grid}}{{else}}<p>Pick a perk grid below.</p>{{end}}
</main>
<nav>
<ul>
{{range .IDs}}<li><a href="/grids/{{.}}"{{if eq . $.EventID}} aria-current="page"{{end}}>{{.}}</a> (<a href="/api/v1/perk_grids/{{.}}.json">json</a>)</li>
{{end}}</ul>
</nav>
</body>
</html>
`))
