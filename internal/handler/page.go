package handler

import (
	"bytes"
	"html/template"
	"net/http"

	"ecovision/internal/dashboard"

	"github.com/rs/zerolog/log"
)

type feedPost struct {
	ID       string
	Author   string
	Text     string
	Trending bool
}

var feedPosts = []feedPost{
	{ID: "post-1", Author: "Maya", Text: "Switched our office to a green energy tariff this month.", Trending: true},
	{ID: "post-2", Author: "Jonas", Text: "Cycling to work cut my transport footprint in half."},
	{ID: "post-3", Author: "Aiko", Text: "Community garden harvest day on Saturday, everyone welcome!", Trending: true},
}

type pageData struct {
	State          dashboard.State
	Panels         []dashboard.PanelID
	MapLayers      []dashboard.MapLayer
	DisasterKinds  []dashboard.DisasterKind
	FeedFilters    []dashboard.FeedFilter
	PostActions    []dashboard.PostAction
	Posts          []feedPost
	ActiveLayer    string
	ActiveDisaster string
	ActiveFeed     string
}

type PageHandler struct {
	board board
}

func NewPage(board board) *PageHandler {
	return &PageHandler{board: board}
}

// Handle renders the dashboard. The panel, layer, disaster and feed query
// parameters select the corresponding controls; unknown values are ignored.
func (h *PageHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	h.applyQuery(r)

	state := h.board.Snapshot()
	data := pageData{
		State:          state,
		Panels:         dashboard.Panels,
		MapLayers:      dashboard.MapLayers,
		DisasterKinds:  dashboard.DisasterKinds,
		FeedFilters:    dashboard.FeedFilters,
		PostActions:    dashboard.PostActions,
		Posts:          visiblePosts(dashboard.FeedFilter(state.ActiveControls[dashboard.GroupFeedFilter])),
		ActiveLayer:    state.ActiveControls[dashboard.GroupMapLayer],
		ActiveDisaster: state.ActiveControls[dashboard.GroupDisasterFilter],
		ActiveFeed:     state.ActiveControls[dashboard.GroupFeedFilter],
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		log.Error().Err(err).Msg("couldn't render dashboard page")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *PageHandler) applyQuery(r *http.Request) {
	query := r.URL.Query()

	apply := func(key string, fn func(string) error) {
		v := query.Get(key)
		if v == "" {
			return
		}
		if err := fn(v); err != nil {
			log.Warn().Err(err).Str("param", key).Msg("ignoring query parameter")
		}
	}

	apply("panel", func(v string) error { return h.board.ShowPanel(dashboard.PanelID(v)) })
	apply("layer", func(v string) error { return h.board.SelectMapLayer(dashboard.MapLayer(v)) })
	apply("disaster", func(v string) error { return h.board.FilterDisasters(dashboard.DisasterKind(v)) })
	apply("feed", func(v string) error { return h.board.FilterFeed(dashboard.FeedFilter(v)) })
}

// visiblePosts returns the feed posts shown under filter. The following
// feed is empty until accounts exist.
func visiblePosts(filter dashboard.FeedFilter) []feedPost {
	switch filter {
	case dashboard.FeedTrending:
		posts := make([]feedPost, 0, len(feedPosts))
		for _, p := range feedPosts {
			if p.Trending {
				posts = append(posts, p)
			}
		}
		return posts
	case dashboard.FeedFollowing:
		return nil
	default:
		return feedPosts
	}
}

var pageTmpl = template.Must(template.New("dashboard").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width, initial-scale=1" />
<title>EcoVision Climate Dashboard</title>
<style>
:root{
  --green:#27ae60; --orange:#f39c12; --red:#e74c3c;
  --bg:#f4f8f5; --card:#ffffff; --text:#1f2d27; --muted:#6b7f76;
}
*{box-sizing:border-box}
body{margin:0;font-family:ui-sans-serif,system-ui,-apple-system,Segoe UI,Roboto,Helvetica,Arial;background:var(--bg);color:var(--text)}
header{display:flex;justify-content:space-between;align-items:center;padding:16px 24px;background:#14532d;color:#fff}
nav a{color:#d1fae5;margin-right:14px;text-decoration:none;padding:6px 10px;border-radius:8px}
nav a.active{background:rgba(255,255,255,.18);color:#fff}
main{max-width:1100px;margin:24px auto;padding:0 16px}
.panel{display:none}
.panel.active{display:block}
.cards{display:grid;grid-template-columns:repeat(auto-fit,minmax(220px,1fr));gap:16px}
.card{background:var(--card);border-radius:12px;padding:16px;box-shadow:0 1px 3px rgba(0,0,0,.08)}
.value{font-size:28px;font-weight:700}
.muted{color:var(--muted);font-size:13px}
.chips a,.chips button{display:inline-block;margin:0 6px 6px 0;padding:6px 12px;border-radius:999px;border:1px solid #cfe3d8;background:#fff;color:var(--text);text-decoration:none;cursor:pointer}
.chips a.active,.chips button.active{background:#14532d;color:#fff;border-color:#14532d}
.notice{background:#ecfdf5;border:1px solid #a7f3d0;padding:10px 14px;border-radius:10px;margin-bottom:16px}
.bar{height:12px;background:#e5ece8;border-radius:6px;overflow:hidden}
.bar span{display:block;height:100%}
label{display:block;margin:8px 0 4px}
input{padding:8px;border-radius:8px;border:1px solid #cfe3d8;width:100%}
.badge-success{color:var(--green)} .badge-warning{color:var(--orange)} .badge-danger{color:var(--red)}
</style>
</head>
<body>
<header>
  <strong>EcoVision</strong>
  <nav>
    {{range .Panels}}<a href="/?panel={{.}}" class="{{if eq . $.State.ActivePanel}}active{{end}}">{{.}}</a>{{end}}
  </nav>
  <span class="muted" style="color:#d1fae5">{{.State.Date}}</span>
</header>
<main>
{{with .State.Notice}}<div class="notice">{{.}}</div>{{end}}

<section class="panel {{if eq .State.ActivePanel "dashboard"}}active{{end}}">
  <div class="cards">
    {{range .State.Indicators}}
    <div class="card">
      <div class="muted">{{.Label}}</div>
      <div class="value">{{.Display}} <small>{{.Unit}}</small></div>
      {{with .ObservedAt}}<div class="muted">observed {{.Format "2006-01-02 15:04"}}</div>{{end}}
    </div>
    {{end}}
  </div>
  <h3>Climate map</h3>
  <div class="chips">
    {{range .MapLayers}}<a href="/?panel=dashboard&layer={{.}}" class="{{if eq (print .) $.ActiveLayer}}active{{end}}">{{.}}</a>{{end}}
  </div>
  <form method="post" action="/api/v1/refresh">
    <button type="submit" {{if .State.Refreshing}}disabled{{end}}>Refresh data</button>
    {{with .State.LastRefresh}}<span class="muted">last refresh {{.Format "15:04:05"}}</span>{{end}}
  </form>
</section>

<section class="panel {{if eq .State.ActivePanel "footprint"}}active{{end}}">
  <div class="card">
    <form method="post" action="/api/v1/footprint">
      <label for="electricity">Electricity (kWh/month)</label>
      <input id="electricity" name="electricity" inputmode="decimal" />
      <label for="carTravel">Car travel (km/month)</label>
      <input id="carTravel" name="carTravel" inputmode="decimal" />
      <label for="meatMeals">Meat meals (per month)</label>
      <input id="meatMeals" name="meatMeals" inputmode="decimal" />
      <label for="flights">Flights (hours/month)</label>
      <input id="flights" name="flights" inputmode="decimal" />
      <p><button type="submit">Calculate</button></p>
    </form>
  </div>
  {{with .State.Footprint}}
  <div class="card" style="margin-top:16px">
    <p>Electricity: {{.Electricity}}</p>
    <p>Transport: {{.Transport}}</p>
    <p>Diet: {{.Diet}}</p>
    <p>Flights: {{.Flights}}</p>
    <p><strong>Total: {{.Total}}</strong> <span class="badge-{{.Severity}}">{{.Rating}}</span></p>
    <div class="bar"><span style="width:{{printf "%.1f" .ComparisonPercent}}%;background:{{.Color}}"></span></div>
    <div class="muted">compared with the average monthly footprint</div>
  </div>
  {{end}}
</section>

<section class="panel {{if eq .State.ActivePanel "solutions"}}active{{end}}">
  <div class="cards">
    {{range .State.Solutions}}
    <div class="card">
      <h4>{{.Title}}</h4>
      <form method="post" action="/api/v1/solutions/launch">
        <input type="hidden" name="id" value="{{.ID}}" />
        <button type="submit">Launch</button>
      </form>
    </div>
    {{end}}
  </div>
</section>

<section class="panel {{if eq .State.ActivePanel "disasters"}}active{{end}}">
  <div class="chips">
    {{range .DisasterKinds}}<a href="/?panel=disasters&disaster={{.}}" class="{{if eq (print .) $.ActiveDisaster}}active{{end}}">{{.}}</a>{{end}}
  </div>
  <div class="cards">
    {{range .State.Disasters}}
    <div class="card">
      <h4>{{.Title}}</h4>
      <div class="muted">{{.Kind}}</div>
      <form method="post" action="/api/v1/disasters/details">
        <input type="hidden" name="id" value="{{.ID}}" />
        <button type="submit">Details</button>
      </form>
    </div>
    {{else}}
    <p class="muted">No active events.</p>
    {{end}}
  </div>
</section>

<section class="panel {{if eq .State.ActivePanel "community"}}active{{end}}">
  <div class="chips">
    {{range .FeedFilters}}<a href="/?panel=community&feed={{.}}" class="{{if eq (print .) $.ActiveFeed}}active{{end}}">{{.}}</a>{{end}}
  </div>
  {{range $post := .Posts}}
  <div class="card" style="margin-bottom:12px">
    <strong>{{$post.Author}}</strong>
    <p>{{$post.Text}}</p>
    <div class="chips">
      {{range $.PostActions}}
      <form method="post" action="/api/v1/feed/action" style="display:inline">
        <input type="hidden" name="postId" value="{{$post.ID}}" />
        <button type="submit" name="id" value="{{.}}">{{.}}</button>
      </form>
      {{end}}
    </div>
  </div>
  {{else}}
  <p class="muted">Nothing to show yet.</p>
  {{end}}
</section>
</main>
</body>
</html>
`))
