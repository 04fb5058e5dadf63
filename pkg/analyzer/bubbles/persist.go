package bubbles

import (
	"fmt"
	"path"

	"github.com/panbanda/bubbles/internal/output"
)

// Write persists the result below store's root: one index.json per bucket,
// the navigation index as years.json, <year>/months.json and
// <year>/<month>/days.json, and, when change-sets were captured, one
// <yyyy>/<mm>/<dd>/<hh>-<mm>-<ss>-<id>.commit.json per change-set.
func (r *Result) Write(store *output.Store) error {
	agg := r.Aggregator
	for _, key := range agg.Keys() {
		b, _ := agg.Bucket(key)
		if err := store.WriteJSON(path.Join(key, "index.json"), b); err != nil {
			return err
		}
	}

	years := agg.Years()
	if err := store.WriteJSON("years.json", years); err != nil {
		return err
	}
	for _, year := range years {
		months := agg.Months(year)
		if err := store.WriteJSON(path.Join(year, "months.json"), months); err != nil {
			return err
		}
		for _, month := range months {
			if err := store.WriteJSON(path.Join(year, month, "days.json"), agg.Days(year, month)); err != nil {
				return err
			}
		}
	}

	for _, cs := range r.ChangeSets {
		if err := store.WriteJSON(ChangeSetPath(cs.When.Format("2006/01/02/15-04-05"), cs.ID), cs); err != nil {
			return err
		}
	}
	return nil
}

// ChangeSetPath returns the relative path of a captured change-set document.
func ChangeSetPath(stamp, id string) string {
	return fmt.Sprintf("%s-%s.commit.json", stamp, id)
}
