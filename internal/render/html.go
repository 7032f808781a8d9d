package render

import (
	"fmt"
	"html/template"
	"io"
	"sync"

	"github.com/kailas-cloud/dinedash/internal/domain/query"
	"github.com/kailas-cloud/dinedash/internal/domain/restaurant"
)

var funcMap = template.FuncMap{
	"selected": func(cur, v string) template.HTMLAttr {
		if cur == v {
			return "selected"
		}
		return ""
	},
	"statuses": func() []string { return []string{string(restaurant.Open), string(restaurant.Closed)} },
	"awards": func() []string {
		return []string{string(query.AwardsMichelin), string(query.AwardsJamesBeard)}
	},
	"sorts": func() []string {
		return []string{string(query.SortRank), string(query.SortRating), string(query.SortName), string(query.SortCity)}
	},
}

var (
	pageTmpl     *template.Template
	pageTmplOnce sync.Once
)

func pageTemplate() *template.Template {
	pageTmplOnce.Do(func() {
		pageTmpl = template.Must(template.New("page").Funcs(funcMap).Parse(tmplPage))
	})
	return pageTmpl
}

// HTML writes the dashboard page.
func HTML(w io.Writer, d Dashboard) error {
	if err := pageTemplate().ExecuteTemplate(w, "page", d); err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}
	return nil
}

const tmplPage = `{{define "stars"}}<span class="stars">{{.String}}</span>{{end}}
{{define "page"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Restaurant Dashboard</title>
</head>
<body{{if .ScrollLocked}} class="modal-open" style="overflow:hidden"{{end}}>
<header><h1>Restaurant Dashboard</h1></header>
{{if not .Loaded}}<p class="loading">Restaurant data is not available.</p>{{end}}
<section id="topRestaurants">
{{range .Top}}<div class="top-restaurant-card">
<span class="category-badge">{{.Category}}</span>
<h4>{{.Name}}</h4>
<div class="rating-display">{{template "stars" .Stars}}<span class="rating-number">{{.RatingText}}</span></div>
</div>
{{end}}</section>
<form id="filters" method="get" action="/">
<select name="category"><option value="">All categories</option>{{$q := .Query}}{{range .Categories}}<option value="{{.}}" {{selected $q.Category .}}>{{.}}</option>{{end}}</select>
<select name="city"><option value="">All cities</option>{{range .Cities}}<option value="{{.}}" {{selected $q.City .}}>{{.}}</option>{{end}}</select>
<select name="status"><option value="">Any status</option>{{range statuses}}<option value="{{.}}" {{selected $q.Status .}}>{{.}}</option>{{end}}</select>
<select name="awards"><option value="">Any awards</option>{{range awards}}<option value="{{.}}" {{selected $q.Awards .}}>{{.}}</option>{{end}}</select>
<input type="search" name="search" value="{{.Query.Search}}" placeholder="Search restaurants">
<select name="sort">{{range sorts}}<option value="{{.}}" {{selected $q.Sort .}}>{{.}}</option>{{end}}</select>
<button type="submit">Apply</button>
</form>
<p id="resultsCount">{{.ResultsLabel}}</p>
{{with .Suggestion}}<p class="suggestion">Did you mean <em>{{.}}</em>?</p>{{end}}
<section id="restaurantCards">
{{if .EmptyMessage}}<p>{{.EmptyMessage}}</p>{{end}}
{{range .Cards}}<div class="restaurant-card" data-name="{{.Name}}">
<div class="restaurant-card-header"><h3 class="restaurant-name">{{.Name}}</h3>
<div class="status-indicator"><span class="status-dot {{if .Open}}open{{else}}closed{{end}}"></span><span>{{.Status}}</span></div></div>
<div class="restaurant-meta"><div class="category-rank">{{.RankLabel}} {{.Category}}</div>
<div class="rating-display">{{template "stars" .Stars}}<span class="rating-number">{{.RatingText}}</span></div></div>
<div class="location-info"><strong>{{.City}}</strong> • {{.Location}}</div>
<div class="hours-info">{{.Hours}}</div>
<div class="badges">{{range .Badges}}<span class="badge {{.Kind}}">{{.Label}}</span>{{end}}</div>
</div>
{{end}}</section>
<section id="awardWinners">
{{range .AwardWinners}}<div class="award-winner"><div class="award-winner-name">{{.Name}}</div><div class="award-winner-info">{{.Info}}</div></div>
{{end}}</section>
<section id="closedRestaurants">
{{range .Closed}}<div class="closed-restaurant"><div class="closed-restaurant-name">{{.Name}}</div><div class="closed-restaurant-info">{{.Info}}</div></div>
{{end}}</section>
{{with .Detail}}<div id="restaurant-detail" class="modal active">
<div class="modal-content">
<button class="modal-close" data-modal-close>&times;</button>
<h2 class="modal-restaurant-name">{{.Name}}</h2>
<div class="modal-section"><div class="category-rank">{{.RankLabel}} {{.Category}}</div>
<div class="rating-display">{{template "stars" .Stars}}<span class="rating-number">{{.RatingText}}</span></div></div>
<div class="modal-section"><h4>Location</h4><p>{{.LocationLine}}</p></div>
<div class="modal-section"><h4>Hours</h4><p>{{.Hours}}</p></div>
<div class="modal-section"><h4>Status</h4><p>{{.Status}}</p></div>
{{if .Badges}}<div class="modal-section"><h4>Awards &amp; Recognition</h4><div class="badges">{{range .Badges}}<span class="badge {{.Kind}}">{{.Label}}</span>{{end}}</div></div>{{end}}
<div class="modal-section"><h4>Notes</h4><p>{{.Notes}}</p></div>
</div>
</div>{{end}}
{{if .IsOpen "restaurant-chart"}}<div id="restaurant-chart" class="modal active">
<div class="modal-content">
<button class="modal-close" data-modal-close>&times;</button>
<h2>Restaurant Distribution</h2>
<table class="distribution">{{range .Distribution}}<tr><th>{{.Label}}</th><td>{{.Count}}</td></tr>{{end}}</table>
</div>
</div>{{end}}
</body>
</html>
{{end}}`
