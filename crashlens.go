// Package crashlens provides a cross-filter aggregation engine for
// road-traffic-accident dashboards.
//
// Usage:
//
//	import (
//		"github.com/spektr-org/crashlens/engine"
//		"github.com/spektr-org/crashlens/helpers"
//		"github.com/spektr-org/crashlens/render/echarts"
//		"github.com/spektr-org/crashlens/views"
//	)
//
//	ds, _ := helpers.LoadDataset("accidents.json")
//	dash := engine.NewDashboard(ds, engine.WithDefaultSeverities(engine.SeveritySevere, engine.SeverityFatal))
//	page := echarts.NewPage(echarts.WithTitle("London road accidents"))
//	set := views.Attach(dash, page)
//	set.Borough.Click("Camden")
//	page.Render(os.Stdout)
//
// The engine normalizes vehicle and casualty types once, derives the facet
// domains, keeps a single FilterState over four facets (severity, age, mode,
// borough) and re-aggregates per-view summary tables on every change.
// Drawing is left to renderer collaborators (see the render and views packages).
// The engine never performs I/O of its own.
package crashlens
