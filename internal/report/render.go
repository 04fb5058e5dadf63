// Package report renders the static pages that sit next to the data directory:
// the index.html bubble viewer and the overview.html chart.
package report

import (
	"embed"
	"encoding/json"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed template/index.html
var templateFS embed.FS

var yearDir = regexp.MustCompile(`^\d{4}$`)

// Renderer renders index.html from a data directory.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded template.
func NewRenderer() (*Renderer, error) {
	printer := message.NewPrinter(language.English)
	funcMap := template.FuncMap{
		"json": func(v any) template.JS {
			b, _ := json.Marshal(v)
			return template.JS(b)
		},
		"num": func(n int) string {
			return printer.Sprintf("%d", n)
		},
		"pct": func(f float64) string {
			return printer.Sprintf("%.1f%%", f)
		},
	}

	tmplContent, err := templateFS.ReadFile("template/index.html")
	if err != nil {
		return nil, err
	}
	tmpl, err := template.New("index").Funcs(funcMap).Parse(string(tmplContent))
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render loads the data directory and writes the page to w.
func (r *Renderer) Render(dataDir string, w io.Writer) error {
	data, err := LoadPageData(dataDir)
	if err != nil {
		return err
	}
	return r.tmpl.Execute(w, data)
}

// RenderToFile writes the page to outputPath.
func (r *Renderer) RenderToFile(dataDir, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	if err := r.Render(dataDir, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadPageData reads years.json and every year bucket below dataDir.
func LoadPageData(dataDir string) (*PageData, error) {
	data := &PageData{Title: "Commit bubbles", ActiveYears: []string{}}

	if err := loadJSON(filepath.Join(dataDir, "years.json"), &data.ActiveYears); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	buckets, err := loadYearBuckets(dataDir)
	if err != nil {
		return nil, err
	}

	data.Total.Year = "All years"
	for _, yb := range buckets {
		if data.Description == "" {
			data.Description = yb.Bucket.Description
			data.BaseURL = yb.Bucket.BaseURL
		}
		totals := YearTotals{Year: yb.Year}
		for _, c := range yb.Bucket.Commits {
			totals.add(c)
			data.Total.add(c)
		}
		totals.finish()
		data.Years = append(data.Years, totals)
	}
	data.Total.finish()
	return data, nil
}

// loadYearBuckets reads <dataDir>/<yyyy>/index.json for every year directory.
func loadYearBuckets(dataDir string) ([]yearBucket, error) {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var out []yearBucket
	for _, e := range entries {
		if !e.IsDir() || !yearDir.MatchString(e.Name()) {
			continue
		}
		var b yearBucket
		b.Year = e.Name()
		if err := loadJSON(filepath.Join(dataDir, e.Name(), "index.json"), &b.Bucket); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out, nil
}

func loadJSON(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return json.NewDecoder(f).Decode(v)
}
