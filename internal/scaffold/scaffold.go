// internal/scaffold/scaffold.go
package scaffold

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"versebook/internal/poem"
	"versebook/internal/util"
)

// CreateNewSite writes a starter site into name: config, theme, stylesheet,
// a poem archetype and a small sample library. It returns the files it wrote.
func CreateNewSite(name string) ([]string, error) {
	mkdir := func(path string) error { return os.MkdirAll(filepath.Join(name, path), 0755) }
	writeFile := func(path, content string) error {
		full := filepath.Join(name, path)
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			return err
		}
		return os.WriteFile(full, []byte(content), 0644)
	}
	dirs := []string{"poems", "static/css", "templates/simple", "archetypes"}
	for _, dir := range dirs {
		if err := mkdir(dir); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	files := map[string]string{
		"site.yaml":                        siteYamlContent,
		"static/css/style.css":             staticCssContent,
		"templates/simple/layout.html":     templateLayoutHtmlContent,
		"templates/simple/header.html":     templateHeaderHtmlContent,
		"templates/simple/footer.html":     templateFooterHtmlContent,
		"archetypes/poem.txt":              archetypePoemContent,
		"poems/index.md":                   sampleIntroContent,
		"poems/Saisons/1_Printemps.txt":    samplePoemContent,
		"poems/Saisons/2_Hiver.txt":        samplePoem2Content,
		"poems/Le_Dialogue/1_Dialogue.txt": sampleTheatreContent,
	}
	written := make([]string, 0, len(files))
	for path, content := range files {
		if err := writeFile(path, content); err != nil {
			return nil, fmt.Errorf("failed to write file %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// CreateNewPoem creates a poem file in poemsDir/target, where target is a
// book or "book/chapter". The file gets the next free numeric prefix and
// its content comes from archetypes/poem.txt when present.
func CreateNewPoem(poemsDir, archetypesDir, target, title, author string) (string, error) {
	parts := strings.Split(filepath.ToSlash(target), "/")
	if target == "" || len(parts) > 2 {
		return "", fmt.Errorf("target %q must be <book> or <book>/<chapter>", target)
	}
	dir := filepath.Join(append([]string{poemsDir}, parts...)...)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	next, err := nextPrefix(dir)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("%d%s%s.txt", next, util.NameSeparator, util.SafeName(title)))

	archetype := archetypePoemContent
	archetypePath := filepath.Join(archetypesDir, "poem.txt")
	tmplBytes, err := os.ReadFile(archetypePath)
	switch {
	case err == nil:
		archetype = string(tmplBytes)
	case !errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("could not read archetype file %s: %w", archetypePath, err)
	}

	tmpl, err := template.New("archetype").Parse(archetype)
	if err != nil {
		return "", fmt.Errorf("failed to parse archetype file %s: %w", archetypePath, err)
	}

	data := struct {
		Title  string
		Author string
	}{
		Title:  title,
		Author: author,
	}

	var output bytes.Buffer
	if err := tmpl.Execute(&output, data); err != nil {
		return "", fmt.Errorf("failed to execute archetype template: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := f.Write(output.Bytes()); err != nil {
		return "", err
	}
	return path, nil
}

// nextPrefix returns one more than the highest numeric prefix in dir.
func nextPrefix(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	highest := 0
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".txt" {
			continue
		}
		if key := poem.SortKey(strings.TrimSuffix(entry.Name(), ".txt")); key > highest {
			highest = key
		}
	}
	return highest + 1, nil
}

// Constants for default file contents
const siteYamlContent = `title: Mes poèmes
author: Votre nom
baseurl: /
description: Un recueil généré par versebook.
template: simple
language: fr
theatre_labels: [théâtre, theatre]
`

const archetypePoemContent = `Title: {{.Title}}
{{- if .Author}}
Author: {{.Author}}
{{- end}}

Écrivez vos vers ici.
`

const sampleIntroContent = `Bienvenue. Commencez par [le printemps](Saisons/1_Printemps.txt).
`

const samplePoemContent = `Title: Printemps
Author: Votre nom

Les bourgeons s'ouvrent,
le jour s'allonge.
`

const samplePoem2Content = `Title: Hiver

La neige tombe
sur les toits muets.
`

const sampleTheatreContent = `Title: Dialogue
Type: Théâtre

ACTE I
SCÈNE 1

Le jardin, au matin.

ALCESTE: Laissez-moi, je vous prie.
PHILINTE: Mais encore, dites-moi quelle bizarrerie...

Ils sortent.
`

const staticCssContent = `body {
  font-family: Georgia, serif;
  max-width: 700px;
  margin: 2em auto;
  padding: 0 1em;
  line-height: 1.6;
  color: #222;
  background: #fdfdfd;
}
.site-name { font-size: 0.9em; color: #777; font-style: italic; }
main { margin-bottom: 3em; }
footer { text-align: center; font-size: 0.9em; color: #555; }
footer nav a { color: #444; text-decoration: none; margin: 0 0.5em; }
.poem-title { font-weight: 400; }
.poem-author { color: #777; font-style: italic; }
.poem-nav { display: flex; justify-content: space-between; margin-top: 2em; }
.poem-list { padding-left: 1.2em; }
.theatre .act, .theatre .scene { text-align: center; font-weight: 400; }
.theatre .spacer { height: 1em; }
.theatre .speaker { font-variant: small-caps; font-weight: bold; }
.theatre .didascaly { text-align: center; }
`

const templateLayoutHtmlContent = `{{ define "main" }}
<!DOCTYPE html>
<html lang="{{ .Site.Language | default "fr" }}">
<head>
  <meta charset="utf-8">
  <title>{{ .Title }} | {{ .Site.Title }}</title>
  <link rel="stylesheet" href="{{ .BaseHref }}css/style.css">
  {{- with .Canonical }}
  <link rel="canonical" href="{{ . }}">
  {{- end }}
  <meta name="description" content="{{ .Description }}">
</head>
<body>
  {{ template "header" . }}
  <main>
    {{ .Content }}
  </main>
  {{ template "footer" . }}
</body>
</html>
{{ end }}`

const templateHeaderHtmlContent = `{{ define "header" }}
<header>
  <div class="site-name">{{ .Site.Title }}{{ with .Author }} · {{ . }}{{ end }}</div>
</header>
{{ end }}`

const templateFooterHtmlContent = `{{ define "footer" }}
<footer>
  <nav>
    <a href="{{ .BaseHref }}index.html">accueil</a>
  </nav>
  <div class="copyright">
    &copy; {{ now | date "2006" }} {{ .Site.Title }}
  </div>
</footer>
{{ end }}`
