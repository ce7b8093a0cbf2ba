package site

// sectionTemplate renders one top-level section as an org chart. Data is marshalled to a
// JSON literal by html/template's script-context escaping.
const sectionTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="{{.AssetBaseURL}}/css/jquery.orgchart.min.css">
  <link rel="stylesheet" href="style.css">
</head>
<body>
  <nav class="sidebar" id="sidebar">
    <div class="sidebar-header">
      <h2 class="project-title"><a href="index.html">{{.SiteTitle}}</a></h2>
      <input type="text" id="search-input" placeholder="Search nav..." autocomplete="off">
    </div>
    <div class="sidebar-tree" id="sidebar-tree">
      {{.TreeHTML}}
    </div>
  </nav>
  <main class="content">
    <header class="page-header">
      <h1>{{.Title}}</h1>
      <ul class="legend">
        <li class="Simple">Simple</li>
        <li class="Menued">Menued</li>
        <li class="DetachedMenued">Detached menued</li>
        <li class="Hidden">Hidden</li>
      </ul>
    </header>
    <div id="chart-container"></div>
    <footer class="build-info">Build {{.BuildID}}</footer>
  </main>
  <script src="https://cdn.jsdelivr.net/npm/jquery@3.7.1/dist/jquery.min.js"></script>
  <script src="{{.AssetBaseURL}}/js/jquery.orgchart.min.js"></script>
  <script>
    $(function() {
      var datasource = {{.Data}};

      $('#chart-container').orgchart({
        'data': datasource,
        'nodeTitle': 'code',
        'nodeContent': 'title',
        'verticalDepth': {{.VerticalDepth}},
        'depth': {{.Depth}},
        'createNode': function($node, data) {
          $node.addClass(data.variant);
          if (data.url) {
            $node.attr('title', data.url + ' (' + data.leafPages + ' leaf pages)');
          }
        }
      });
    });
  </script>
  <script src="script.js"></script>
  {{if .LiveReload}}<script>window.NAVCHART_LIVE_RELOAD = true;</script>{{end}}
</body>
</html>`

// indexTemplate wraps the rendered Markdown landing page.
const indexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.SiteTitle}}</title>
  <link rel="stylesheet" href="style.css">
</head>
<body>
  <nav class="sidebar" id="sidebar">
    <div class="sidebar-header">
      <h2 class="project-title"><a href="index.html">{{.SiteTitle}}</a></h2>
      <input type="text" id="search-input" placeholder="Search nav..." autocomplete="off">
    </div>
    <div class="sidebar-tree" id="sidebar-tree">
      {{.TreeHTML}}
    </div>
  </nav>
  <main class="content">
    <article class="page-content">
      {{.Content}}
    </article>
    <footer class="build-info">Build {{.BuildID}}</footer>
  </main>
  <script src="script.js"></script>
  {{if .LiveReload}}<script>window.NAVCHART_LIVE_RELOAD = true;</script>{{end}}
</body>
</html>`

// cssContent styles the index and section pages.
const cssContent = `:root {
  --bg: #ffffff;
  --sidebar-bg: #f6f8fa;
  --text: #1f2328;
  --muted: #656d76;
  --border: #d0d7de;
  --accent: #0969da;
  --simple: #2da44e;
  --menued: #0969da;
  --detached: #8250df;
  --hidden: #8c959f;
}

* { box-sizing: border-box; }

body {
  margin: 0;
  display: flex;
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Helvetica, Arial, sans-serif;
  color: var(--text);
  background: var(--bg);
}

.sidebar {
  width: 300px;
  min-height: 100vh;
  padding: 16px;
  background: var(--sidebar-bg);
  border-right: 1px solid var(--border);
  overflow-y: auto;
}

.project-title a { color: var(--text); text-decoration: none; }

#search-input {
  width: 100%;
  padding: 6px 8px;
  border: 1px solid var(--border);
  border-radius: 6px;
}

.sidebar-tree ul { list-style: none; padding-left: 14px; margin: 4px 0; }
.sidebar-tree > ul { padding-left: 0; }
.sidebar-tree li { margin: 2px 0; }
.sidebar-tree li.collapsed > ul { display: none; }
.sidebar-tree .toggle { cursor: pointer; user-select: none; }
.sidebar-tree a { color: var(--accent); text-decoration: none; }
.sidebar-tree a.active { font-weight: 600; }
.sidebar-tree .code { color: var(--muted); font-size: 0.85em; margin-right: 4px; }
.sidebar-tree .nav-hidden > .label, .sidebar-tree .nav-hidden > a { color: var(--hidden); font-style: italic; }
.sidebar-tree li.hidden { display: none; }

.content { flex: 1; padding: 24px 32px; overflow-x: auto; }

.legend { list-style: none; padding: 0; display: flex; gap: 12px; }
.legend li { padding: 2px 8px; border-radius: 4px; color: #fff; font-size: 0.85em; }
.legend .Simple, .orgchart .node.Simple .title { background: var(--simple); }
.legend .Menued, .orgchart .node.Menued .title { background: var(--menued); }
.legend .DetachedMenued, .orgchart .node.DetachedMenued .title { background: var(--detached); }
.legend .Hidden, .orgchart .node.Hidden .title { background: var(--hidden); }

#chart-container { height: 620px; overflow: auto; border: 1px solid var(--border); border-radius: 6px; }
.orgchart { background: white; }

.build-info { margin-top: 24px; color: var(--muted); font-size: 0.8em; }

.page-content table { border-collapse: collapse; }
.page-content td, .page-content th { border: 1px solid var(--border); padding: 4px 8px; }
`

// jsContent handles sidebar toggling, nav search and live reload.
const jsContent = `(function() {
  "use strict";

  var tree = document.getElementById("sidebar-tree");

  if (tree) {
    tree.addEventListener("click", function(e) {
      var toggle = e.target.closest(".toggle");
      if (!toggle) return;
      toggle.parentElement.classList.toggle("collapsed");
    });
  }

  var searchInput = document.getElementById("search-input");
  var searchIndex = null;

  function loadIndex(cb) {
    if (searchIndex) return cb(searchIndex);
    fetch("search-index.json")
      .then(function(r) { return r.json(); })
      .then(function(data) { searchIndex = data; cb(data); })
      .catch(function() { searchIndex = []; cb(searchIndex); });
  }

  if (searchInput && tree) {
    searchInput.addEventListener("input", function() {
      var query = this.value.toLowerCase().trim();
      var items = tree.querySelectorAll("li");
      if (!query) {
        items.forEach(function(li) { li.classList.remove("hidden"); });
        return;
      }
      loadIndex(function(entries) {
        var matching = new Set();
        entries.forEach(function(e) {
          var hay = (e.code + " " + e.title + " " + e.url).toLowerCase();
          if (hay.indexOf(query) !== -1) {
            var parts = e.code.split(".");
            for (var i = 1; i <= parts.length; i++) {
              matching.add(parts.slice(0, i).join("."));
            }
          }
        });
        items.forEach(function(li) {
          li.classList.toggle("hidden", !matching.has(li.getAttribute("data-code")));
          if (matching.has(li.getAttribute("data-code"))) li.classList.remove("collapsed");
        });
      });
    });
  }

  if (window.NAVCHART_LIVE_RELOAD && window.WebSocket) {
    var proto = location.protocol === "https:" ? "wss://" : "ws://";
    var ws = new WebSocket(proto + location.host + "/ws");
    ws.onmessage = function(msg) {
      try {
        var ev = JSON.parse(msg.data);
        if (ev.type === "reload") location.reload();
      } catch (err) {}
    };
  }
})();
`
