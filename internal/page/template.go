package page

// PageTemplate is the HTML template for the proposal page.
// It is embedded as a Go constant; the stylesheet is either linked or
// inlined depending on Config.
const PageTemplate = `<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}} · {{.Subtitle}}</title>
<link rel="icon" type="image/svg+xml" href="{{.AssetBase}}favicon.svg">
{{if .InlineCSS}}<style>{{.InlineCSS}}</style>{{else}}<link rel="stylesheet" href="{{.AssetBase}}app.css">{{end}}
</head>
<body>

<a class="skipLink" href="#main">Bỏ qua điều hướng → Nội dung</a>

<!-- ═══════ TOP BAR ═══════ -->
<header class="topbar">
  <div class="container topbarInner">
    <div class="brand" aria-label="{{.Title}}">
      <span class="brandMark" aria-hidden="true"></span>
      <span>{{.Title}} <span class="brandSep">·</span> {{.Subtitle}}</span>
    </div>
    <nav class="nav" aria-label="Điều hướng">
      {{range .Nav}}<a href="#{{.ID}}">{{.Label}}</a>
      {{end}}
    </nav>
  </div>
</header>

<!-- ═══════ HERO ═══════ -->
<section class="hero">
  <div class="container heroGrid">
    <div class="heroCard">
      <div class="eyebrow">{{.Eyebrow}}</div>
      <h1 class="title">{{.Title}} <br><span class="titleSub">{{.Subtitle}}</span></h1>
      <p class="subtitle">{{.Intro}}</p>
      <div class="ctaRow">
        {{range .CTAs}}<a class="btn{{if .Primary}} btnPrimary{{end}}" href="{{.Href}}">{{.Label}}</a>
        {{end}}
      </div>
    </div>

    <aside class="asideCard" aria-label="{{.SummaryTitle}}">
      <div class="asideTitle">{{.SummaryTitle}}</div>
      <p class="asideText">{{.Summary}}</p>
      <div class="metricGrid" role="list">
        {{range .Metrics}}<div class="metric" role="listitem">
          <div class="metricLabel">{{.Label}}</div>
          <div class="metricValue">{{.Value}}</div>
        </div>
        {{end}}
      </div>
    </aside>
  </div>
</section>

<!-- ═══════ SECTIONS ═══════ -->
<main class="container" id="main">
{{range .Sections}}
<section id="{{.ID}}" class="section" aria-labelledby="{{.ID}}-title">
  <div class="sectionHeader">
    <h2 class="sectionTitle" id="{{.ID}}-title">{{.Title}}</h2>
    {{if .Hint}}<p class="sectionHint">{{.Hint}}</p>{{end}}
  </div>

  {{with .Chart}}
  <div class="card chartCard">
    <div>
      <h3>{{.Title}}</h3>
      {{if .Subtitle}}<p class="chartLead">{{.Subtitle}}</p>{{end}}
    </div>
    <div class="chartBody">
      {{.SVG}}
      <div>
        <ul class="legend">
          {{range .Legend}}<li>
            <span class="swatch" aria-hidden="true" style="background: {{.Color}}"></span>
            <strong>{{.Label}}</strong>: {{.Text}} <span class="pct">({{.Percent}}%)</span>
          </li>
          {{end}}
        </ul>
      </div>
    </div>
  </div>
  {{end}}

  {{if .Paragraphs}}
  <div class="card">
    {{range .Paragraphs}}<p>{{.}}</p>{{end}}
  </div>
  {{end}}

  {{if .Items}}
  <div class="card">
    <ul class="list">
      {{range .Items}}<li>{{.}}</li>
      {{end}}
    </ul>
  </div>
  {{end}}

  {{if .Cards}}
  <div class="cardGrid">
    {{range .Cards}}<article class="card">
      <h3>{{.Heading}}</h3>
      <p>{{.Text}}</p>
    </article>
    {{end}}
  </div>
  {{end}}
</section>
{{end}}
</main>

<!-- ═══════ FOOTER ═══════ -->
<footer class="footer">
  <div class="container">
    {{range .Footer}}<div>{{.}}</div>
    {{end}}
    {{if .Updated}}<div class="updated">Cập nhật {{.Updated}}</div>{{end}}
  </div>
</footer>

</body>
</html>`
