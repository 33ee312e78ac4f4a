package builder

import "html/template"

var fragments = template.Must(template.New("fragments").Parse(fragmentTemplates))

const fragmentTemplates = `
{{- define "poem" -}}
<article class="poem{{ if .Theatrical }} theatre{{ end }}">
  <h1 class="poem-title">{{ .Title }}</h1>
  {{- with .Author }}
  <p class="poem-author">{{ . }}</p>
  {{- end }}
  <div class="poem-content">
{{ .Body }}
  </div>
</article>
<nav class="poem-nav">
  {{- with .Prev }}
  <a class="prev" href="{{ .Target }}">&larr; {{ .Label }}</a>
  {{- end }}
  {{- with .Next }}
  <a class="next" href="{{ .Target }}">{{ .Label }} &rarr;</a>
  {{- end }}
</nav>
<p class="back"><a href="{{ .Back.Target }}">{{ .Back.Label }}</a></p>
{{- end }}

{{- define "links" -}}
<ul class="poem-list">
  {{- range . }}
  <li><a href="{{ .Target }}">{{ .Label }}</a></li>
  {{- end }}
</ul>
{{- end }}

{{- define "listing" -}}
<section class="{{ .Class }}">
  <h1>{{ .Title }}</h1>
  {{- with .Preface }}
  <div class="preface">{{ . }}</div>
  {{- end }}
  {{- if .Items }}
  {{ template "links" .Items }}
  {{- end }}
  {{- range .Sections }}
  <div class="chapter">
    <h2><a href="{{ .Heading.Target }}">{{ .Heading.Label }}</a></h2>
    {{ template "links" .Items }}
  </div>
  {{- end }}
  {{- with .Back }}
  <p class="back"><a href="{{ .Target }}">{{ .Label }}</a></p>
  {{- end }}
</section>
{{- end }}
`
