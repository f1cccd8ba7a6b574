package site

// pageTemplate is the html/template for the library page, with or without
// a selected sutra.
const pageTemplate = `<!DOCTYPE html>
<html lang="{{.Lang.Tag}}" data-theme="light">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{if .Selected}}{{.Entry.Title}} · {{end}}{{.Labels.Library}}</title>
  <link rel="stylesheet" href="{{.Links.Asset "style.css"}}">
</head>
<body data-search-mode="{{if .Links.Static}}index{{else}}api{{end}}" data-search-src="{{.Links.SearchSource}}" data-base="{{.Links.BasePath}}" data-lang="{{.Lang}}" data-include-body="{{.IncludeBody}}" data-no-results="{{.Labels.NoResults}}">
  <nav class="sidebar" id="sidebar">
    <div class="sidebar-header">
      <a href="{{.Links.Home}}" class="home-link">&larr; {{.Labels.ReturnToHome}}</a>
      <h2 class="project-title">{{.Labels.Library}}</h2>
      <p class="subtitle">{{.Labels.Subtitle}}</p>
      <div class="search-box">
        <input type="text" id="search-input" placeholder="{{.Labels.SearchPlaceholder}}" autocomplete="off">
        <ul class="search-results" id="search-results"></ul>
      </div>
    </div>
    <h3 class="toc-heading">{{.Labels.TableOfContents}}</h3>
    <div class="sidebar-tree" id="sidebar-tree">
      {{.TreeHTML}}
    </div>
  </nav>
  <div class="sidebar-overlay" id="sidebar-overlay"></div>
  <main class="content">
    <div class="top-bar">
      <button class="menu-toggle" id="menu-toggle" aria-label="{{.Labels.TableOfContents}}">
        <svg width="24" height="24" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2">
          <line x1="3" y1="6" x2="21" y2="6"/><line x1="3" y1="12" x2="21" y2="12"/><line x1="3" y1="18" x2="21" y2="18"/>
        </svg>
      </button>
      {{with .Links.Toggle .Entry.ID}}<a class="lang-toggle" href="{{.}}">{{$.Labels.SwitchLanguage}}</a>{{end}}
    </div>
    <article class="page-content">
    {{- if not .Selected}}
      <p class="placeholder">{{.Labels.SelectContent}}</p>
    {{- else}}
      <p class="group-title">{{.GroupTitle}}</p>
      <h1>{{.Entry.Title}}</h1>
      {{- if or .Date .Author}}
      <p class="signature">{{.Author}}{{if and .Author .Date}} · {{end}}{{.Date}}</p>
      {{- end}}
      {{- if .HasBody}}
      <div class="verse">{{.Body}}</div>
      {{- else}}
      <p class="placeholder">{{.Labels.NoContent}}</p>
      {{- end}}
      <nav class="pager">
        {{- if .Prev.ID}}<a class="prev" href="{{.Links.Read .Prev.ID}}">&larr; {{.Labels.Previous}}: {{.Prev.Title}}</a>{{end}}
        {{- if .Next.ID}}<a class="next" href="{{.Links.Read .Next.ID}}">{{.Labels.Next}}: {{.Next.Title}} &rarr;</a>{{end}}
      </nav>
    {{- end}}
    </article>
  </main>
  <script src="{{.Links.Asset "script.js"}}"></script>
</body>
</html>`

// cssContent is the stylesheet of the library site.
const cssContent = `/* ============ CSS Variables ============ */
:root {
  --bg: #fffdf8;
  --bg-sidebar: #f6f1e7;
  --text: #2b2620;
  --text-secondary: #5c5247;
  --text-muted: #8c8072;
  --border: #e4dccd;
  --accent: #a0522d;
  --accent-light: #f5e6da;
  --sidebar-width: 300px;
  --content-max-width: 760px;
  --shadow-lg: 0 4px 12px rgba(0,0,0,0.1);
}

/* ============ Reset & Base ============ */
*, *::before, *::after {
  box-sizing: border-box;
  margin: 0;
  padding: 0;
}

body {
  font-family: Georgia, "Times New Roman", serif;
  color: var(--text);
  background: var(--bg);
  line-height: 1.7;
  display: flex;
  min-height: 100vh;
}

/* ============ Sidebar ============ */
.sidebar {
  width: var(--sidebar-width);
  background: var(--bg-sidebar);
  border-right: 1px solid var(--border);
  position: fixed;
  top: 0;
  left: 0;
  bottom: 0;
  overflow-y: auto;
  z-index: 100;
  display: flex;
  flex-direction: column;
}

.sidebar-header {
  padding: 16px;
  border-bottom: 1px solid var(--border);
  position: sticky;
  top: 0;
  background: var(--bg-sidebar);
  z-index: 1;
}

.home-link {
  display: block;
  font-size: 0.8rem;
  color: var(--accent);
  text-decoration: none;
  margin-bottom: 8px;
}

.project-title {
  font-size: 1.3rem;
  letter-spacing: 0.1em;
  color: var(--accent);
}

.subtitle {
  font-size: 0.85rem;
  color: var(--text-muted);
  margin-bottom: 12px;
}

.search-box {
  position: relative;
}

#search-input {
  width: 100%;
  padding: 8px 12px;
  border: 1px solid var(--border);
  border-radius: 6px;
  font-size: 0.85rem;
  background: var(--bg);
  color: var(--text);
  outline: none;
}

#search-input:focus {
  border-color: var(--accent);
  box-shadow: 0 0 0 3px var(--accent-light);
}

.search-results {
  display: none;
  position: absolute;
  left: 0;
  right: 0;
  top: 100%;
  max-height: 60vh;
  overflow-y: auto;
  list-style: none;
  background: var(--bg);
  border: 1px solid var(--border);
  border-radius: 6px;
  box-shadow: var(--shadow-lg);
  z-index: 10;
}

.search-results.visible {
  display: block;
}

.search-results li a,
.search-results li.empty {
  display: block;
  padding: 6px 12px;
  font-size: 0.82rem;
  color: var(--text);
  text-decoration: none;
}

.search-results li a:hover {
  background: var(--accent-light);
}

.search-results .group,
.search-results .snippet {
  display: block;
  font-size: 0.72rem;
  color: var(--text-muted);
}

.toc-heading {
  padding: 12px 16px 4px;
  font-size: 0.9rem;
  color: var(--text-secondary);
}

.sidebar-tree {
  padding: 4px 0 16px;
  flex: 1;
}

.sidebar-tree ul {
  list-style: none;
}

.sidebar-tree ul ul {
  padding-left: 16px;
}

.sidebar-tree .dir > .dir-toggle {
  display: block;
  padding: 4px 16px;
  font-size: 0.85rem;
  font-weight: 600;
  color: var(--text-secondary);
  cursor: pointer;
  user-select: none;
}

.sidebar-tree .dir > .dir-toggle::before {
  content: "\25B6";
  display: inline-block;
  margin-right: 6px;
  font-size: 0.6rem;
  transition: transform 0.15s;
}

.sidebar-tree .dir.expanded > .dir-toggle::before {
  transform: rotate(90deg);
}

.sidebar-tree .dir > ul {
  display: none;
}

.sidebar-tree .dir.expanded > ul {
  display: block;
}

.sidebar-tree .file a {
  display: block;
  padding: 3px 16px 3px 22px;
  font-size: 0.82rem;
  color: var(--text-muted);
  text-decoration: none;
  border-radius: 4px;
}

.sidebar-tree .file a:hover,
.sidebar-tree .file a.active {
  background: var(--accent-light);
  color: var(--accent);
}

.sidebar-tree .file a.active {
  font-weight: 600;
}

/* ============ Overlay (mobile) ============ */
.sidebar-overlay {
  display: none;
  position: fixed;
  inset: 0;
  background: rgba(0,0,0,0.4);
  z-index: 99;
}

.sidebar-overlay.visible {
  display: block;
}

/* ============ Main Content ============ */
.content {
  margin-left: var(--sidebar-width);
  flex: 1;
  min-width: 0;
}

.top-bar {
  display: flex;
  justify-content: flex-end;
  align-items: center;
  gap: 12px;
  padding: 8px 24px;
  border-bottom: 1px solid var(--border);
  background: var(--bg);
  position: sticky;
  top: 0;
  z-index: 50;
}

.menu-toggle {
  display: none;
  margin-right: auto;
  background: none;
  border: none;
  color: var(--text);
}

.lang-toggle {
  font-size: 0.85rem;
  color: var(--accent);
  text-decoration: none;
}

.page-content {
  max-width: var(--content-max-width);
  margin: 0 auto;
  padding: 40px 32px 64px;
}

.page-content h1 {
  font-size: 1.8rem;
  margin-bottom: 8px;
}

.group-title,
.signature {
  font-size: 0.85rem;
  color: var(--text-muted);
}

.signature {
  margin-bottom: 24px;
}

.verse p {
  margin-bottom: 1.2em;
  text-align: center;
}

.placeholder {
  color: var(--text-muted);
  font-style: italic;
  text-align: center;
  margin-top: 80px;
}

.pager {
  display: flex;
  justify-content: space-between;
  gap: 16px;
  margin-top: 48px;
  padding-top: 16px;
  border-top: 1px solid var(--border);
  font-size: 0.85rem;
}

.pager a {
  color: var(--accent);
  text-decoration: none;
}

.pager .next {
  margin-left: auto;
  text-align: right;
}

/* ============ Responsive ============ */
@media (max-width: 768px) {
  .sidebar {
    transform: translateX(-100%);
    transition: transform 0.3s;
  }

  .sidebar.open {
    transform: translateX(0);
    box-shadow: var(--shadow-lg);
  }

  .content {
    margin-left: 0;
  }

  .menu-toggle {
    display: block;
  }

  .page-content {
    padding: 24px 16px 48px;
  }
}
`

// jsContent drives the sidebar and the search dropdown. Live pages query
// /api/search; exported pages filter search-index.json in the browser.
const jsContent = `(function() {
  "use strict";

  var body = document.body;

  // ===== Sidebar toggle (mobile) =====
  var menuToggle = document.getElementById("menu-toggle");
  var sidebar = document.getElementById("sidebar");
  var overlay = document.getElementById("sidebar-overlay");

  function toggleSidebar() {
    sidebar.classList.toggle("open");
    overlay.classList.toggle("visible");
  }

  if (menuToggle) menuToggle.addEventListener("click", toggleSidebar);
  if (overlay) overlay.addEventListener("click", toggleSidebar);

  // ===== Group toggle =====
  document.querySelectorAll(".dir-toggle").forEach(function(toggle) {
    toggle.addEventListener("click", function() {
      this.parentElement.classList.toggle("expanded");
    });
  });

  // ===== Search =====
  var searchInput = document.getElementById("search-input");
  var resultsPanel = document.getElementById("search-results");
  var mode = body.getAttribute("data-search-mode");
  var source = body.getAttribute("data-search-src");
  var base = body.getAttribute("data-base") || "";
  var lang = body.getAttribute("data-lang");
  var includeBody = body.getAttribute("data-include-body") === "true";
  var noResults = body.getAttribute("data-no-results");
  var searchIndex = null;
  var pending = 0;

  function fold(s) {
    return s.normalize("NFD").replace(/[\u0300-\u036f]/g, "").toLowerCase().replace(/đ/g, "d");
  }

  function escapeHtml(str) {
    var div = document.createElement("div");
    div.textContent = str;
    return div.innerHTML;
  }

  function readHref(id) {
    var href = "/read/" + encodeURIComponent(id);
    if (lang && lang !== "vi") href += "?lang=" + lang;
    return href;
  }

  function show(results) {
    if (!results.length) {
      resultsPanel.innerHTML = '<li class="empty">' + escapeHtml(noResults) + "</li>";
    } else {
      resultsPanel.innerHTML = results.map(function(r) {
        var snippet = r.snippet ? '<span class="snippet">' + escapeHtml(r.snippet) + "</span>" : "";
        return '<li><a href="' + escapeHtml(r.href) + '">' + escapeHtml(r.title) +
          '<span class="group">' + escapeHtml(r.group) + "</span>" + snippet + "</a></li>";
      }).join("");
    }
    resultsPanel.classList.add("visible");
  }

  function hide() {
    resultsPanel.classList.remove("visible");
    resultsPanel.innerHTML = "";
  }

  function searchIndexFor(query) {
    var needle = fold(query);
    var out = [];
    searchIndex.forEach(function(e) {
      if (e.folded_title.indexOf(needle) !== -1 || (includeBody && e.folded_body && e.folded_body.indexOf(needle) !== -1)) {
        out.push({ title: e.title, group: e.group_title, href: base + e.href });
      }
    });
    return out;
  }

  function searchAPI(query, ticket) {
    var url = source + "?q=" + encodeURIComponent(query) + (includeBody ? "&body=true" : "");
    fetch(url)
      .then(function(r) { return r.json(); })
      .then(function(data) {
        if (ticket !== pending) return;
        show((data.results || []).map(function(m) {
          return { title: m.entry.title, group: m.group_title, snippet: m.snippet, href: readHref(m.entry.id) };
        }));
      })
      .catch(function() { if (ticket === pending) show([]); });
  }

  if (mode === "index") {
    fetch(source)
      .then(function(r) { return r.json(); })
      .then(function(data) { searchIndex = data; })
      .catch(function() { searchIndex = []; });
  }

  if (searchInput && resultsPanel) {
    searchInput.addEventListener("input", function() {
      var query = this.value.trim();
      pending++;
      if (query === "") {
        hide();
        return;
      }
      if (mode === "index") {
        show(searchIndex ? searchIndexFor(query) : []);
      } else {
        searchAPI(query, pending);
      }
    });

    document.addEventListener("click", function(ev) {
      if (!resultsPanel.contains(ev.target) && ev.target !== searchInput) hide();
    });

    searchInput.addEventListener("keydown", function(ev) {
      if (ev.key === "Escape") {
        searchInput.value = "";
        hide();
      }
    });
  }
})();
`
