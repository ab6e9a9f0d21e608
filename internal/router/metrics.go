package router

import (
	"sync/atomic"

	"github.com/Cloud-Foundations/tricorder/go/tricorder"
	"github.com/Cloud-Foundations/tricorder/go/tricorder/units"
)

func (r *Router) registerMetrics(dir *tricorder.DirectorySpec) error {
	for index, category := range r.categories {
		categoryDir, err := dir.RegisterDirectory(category.Name)
		if err != nil {
			return err
		}
		value := &r.lines[index].value
		err = categoryDir.RegisterMetric("lines",
			func() uint64 { return atomic.LoadUint64(value) },
			units.None, "number of lines routed to "+category.Name)
		if err != nil {
			return err
		}
	}
	err := dir.RegisterMetric("unmatched",
		func() uint64 { return atomic.LoadUint64(&r.unmatched.value) },
		units.None, "number of lines matching no category")
	if err != nil {
		return err
	}
	return dir.RegisterMetric("dropped",
		func() uint64 { return atomic.LoadUint64(&r.dropped.value) },
		units.None, "number of unmatched lines with no default category")
}
