package main

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/drover-dev/drover/pkg/delegate"
	"github.com/drover-dev/drover/pkg/dom"
	"github.com/drover-dev/drover/pkg/middleware"
	"github.com/drover-dev/drover/pkg/server"
)

const initialRows = 3

// demoTree builds the demo document: a toolbar and a list of removable
// rows, all under one #app container.
func demoTree() *dom.Node {
	list := dom.Ul(dom.ID("list"))
	for i := 1; i <= initialRows; i++ {
		list.AppendChild(demoRow(i))
	}
	return dom.Div(dom.ID("app"),
		dom.Button(dom.ID("add"), dom.Data("action", "add"), "Add row"),
		list,
	)
}

func demoRow(n int) *dom.Node {
	return dom.Li(dom.Class("item"), dom.ID(fmt.Sprintf("row-%d", n)),
		dom.Span(fmt.Sprintf("row %d", n)),
		dom.Button(dom.Class("remove"), dom.ID(fmt.Sprintf("remove-%d", n)), "×"),
	)
}

// demoSetup returns the per-session setup: build the document and
// register the delegated bindings. The middleware chain is built once so
// its Prometheus collectors register a single time.
func demoSetup(registry *prometheus.Registry, logger *slog.Logger) server.SetupFunc {
	metricsMW := middleware.Metrics(
		middleware.WithRegistry(registry),
		middleware.WithSubsystem("demo"),
	)
	tracingMW := middleware.Tracing()
	loggingMW := middleware.Logging(logger.With("component", "demo"))

	return func(s *server.Session) error {
		doc := s.Document()
		doc.Root().AppendChild(demoTree())

		router := s.Router()
		router.Use(metricsMW)
		router.Use(tracingMW)
		router.Use(loggingMW)

		app := doc.GetElementByID("app")
		list := doc.GetElementByID("list")
		nextRow := initialRows

		// One listener on #app covers the toolbar.
		if err := router.Register(app, "click", delegate.Attr("data-action", "add"), func(*delegate.Event) {
			nextRow++
			list.AppendChild(demoRow(nextRow))
		}); err != nil {
			return err
		}

		// One listener on #list covers every row, including rows added
		// later: remove buttons win because they sit closer to the click
		// target than their row.
		if err := router.Register(list, "click", delegate.MustSelector("button.remove"), func(e *delegate.Event) {
			if row := e.Matched.Parent(); row != nil {
				list.RemoveChild(row)
			}
		}); err != nil {
			return err
		}
		router.Bind(list, "click", delegate.Class("item"), func(e *delegate.Event) {
			for _, row := range list.Children() {
				row.RemoveClass("selected")
			}
			e.Matched.AddClass("selected")
		})

		return nil
	}
}

// demoIndex serves the demo page: the same tree rendered to HTML plus a
// small client that mirrors clicks over the websocket and prints each
// dispatch result.
func demoIndex() http.HandlerFunc {
	page := fmt.Sprintf(demoPage, dom.RenderHTML(demoTree()), initialRows)
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(page))
	}
}

const demoPage = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>drover demo</title>
<style>
body { font-family: sans-serif; max-width: 40rem; margin: 2rem auto; }
#list { list-style: none; padding: 0; }
#list li { padding: .5rem; border: 1px solid #ddd; margin: .25rem 0; cursor: pointer; }
#list li.selected { background: #eef; }
#log { background: #f6f6f6; padding: .5rem; min-height: 8rem; }
</style>
</head>
<body>
<h1>drover demo</h1>
%s
<h2>dispatch results</h2>
<pre id="log"></pre>
<script>
(function () {
  var seq = 0;
  var next = %d + 1;
  var log = document.getElementById("log");
  var ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");

  ws.onmessage = function (m) {
    var res = JSON.parse(m.data);
    log.textContent += JSON.stringify(res) + "\n";
  };

  document.getElementById("app").addEventListener("click", function (e) {
    var el = e.target.closest("[id]");
    if (!el || ws.readyState !== WebSocket.OPEN) return;
    ws.send(JSON.stringify({seq: ++seq, type: "click", target: el.id}));

    // Mirror the server-side mutations so both trees stay aligned.
    if (el.dataset.action === "add") {
      var li = document.createElement("li");
      li.className = "item";
      li.id = "row-" + next;
      li.innerHTML = "<span>row " + next + "</span><button class=\"remove\" id=\"remove-" + next + "\">×</button>";
      document.getElementById("list").appendChild(li);
      next++;
    } else if (el.classList.contains("remove")) {
      el.closest("li").remove();
    } else if (el.classList.contains("item")) {
      document.querySelectorAll("#list li").forEach(function (r) { r.classList.remove("selected"); });
      el.classList.add("selected");
    }
  });
})();
</script>
</body>
</html>
`
